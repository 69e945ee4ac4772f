package cmd

import (
	"os"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/mitchellh/go-homedir"
	"github.com/pkg/errors"
	"github.com/spf13/viper"
)

const envPrefix = "ESFAKER"

// Config holds the connection and run settings resolved from flags,
// environment variables and the optional config file.
type Config struct {
	URL         string `mapstructure:"url" validate:"required_without=Cloud,omitempty,url"`
	Cloud       string `mapstructure:"cloud"`
	Username    string `mapstructure:"username"`
	Password    string `mapstructure:"password"`
	Batch       int    `mapstructure:"batch" validate:"min=1"`
	Append      bool   `mapstructure:"append"`
	Pushgateway string `mapstructure:"pushgateway" validate:"omitempty,url"`
	LogLevel    string `mapstructure:"log-level" validate:"oneof=trace debug info warn warning error"`
}

// loadConfig reads .env, the config file and ESFAKER_* variables into v.
// A missing config file is not an error.
func loadConfig(v *viper.Viper, cfgFile string) error {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		return errors.Wrap(err, "loading .env")
	}

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		home, err := homedir.Dir()
		if err != nil {
			return errors.Wrap(err, "finding home directory")
		}
		v.AddConfigPath(home)
		v.SetConfigName(".esfaker")
		v.SetConfigType("yaml")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if cfgFile != "" || !errors.As(err, &notFound) {
			return errors.Wrapf(err, "reading config file %s", v.ConfigFileUsed())
		}
	}
	return nil
}

// resolveConfig unmarshals and validates the settings held by v.
func resolveConfig(v *viper.Viper) (*Config, error) {
	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, errors.Wrap(err, "decoding configuration")
	}
	if err := validator.New().Struct(cfg); err != nil {
		return nil, errors.Wrap(err, "invalid configuration")
	}
	return cfg, nil
}
