package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/elastic/go-elasticsearch/v8"
	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/push"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	esfaker "github.com/kurakura967/go-elasticsearch-faker"
)

// Execute runs the root command and exits non-zero on failure.
// This is called by main.main().
func Execute() {
	if err := RootCmd().Execute(); err != nil {
		log.Error(err)
		os.Exit(1)
	}
}

// RootCmd builds the esfaker command tree.
func RootCmd() *cobra.Command {
	v := viper.New()
	var (
		cfgFile     string
		collections []string
		counts      []uint
		generators  bool
	)

	cmd := &cobra.Command{
		Use:   "esfaker [flags] TEMPLATE...",
		Short: "Generates random Elasticsearch documents based on templates",
		Long: `Generates random Elasticsearch documents based on templates.

Every template needs a matching --index and --count, given in the same order:

	esfaker -i users -c 1000 users.json -i logs -c 50000 logs.json

A template is a JSON (or YAML) file with an optional "index" section, sent as
the create index request body, and a "values" section rendered once per
document:

	{
	  "index": {"mappings": {"properties": {"created": {"type": "date"}}}},
	  "values": {"name": "{{Name}}", "created": "{{DateRange 30}}"}
	}

Run with --generators to list the available generators.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := loadConfig(v, cfgFile); err != nil {
				return err
			}
			return configureLogging(v.GetString("log-level"))
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			if generators {
				listGenerators(cmd.OutOrStdout(), esfaker.DefaultRegistry())
				return nil
			}
			if len(args) == 0 {
				return errors.New("at least one template is required")
			}
			return seed(cmd, v, collections, args, counts)
		},
	}

	addConnectionFlags(cmd, v)
	cmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.esfaker.yaml)")

	cmd.Flags().StringArrayVarP(&collections, "index", "i", nil, "Index to store documents in (once per template)")
	cmd.Flags().UintSliceVarP(&counts, "count", "c", nil, "How many documents to generate (once per template)")
	cmd.Flags().BoolVarP(&generators, "generators", "g", false, "List available generators and exit")
	cmd.Flags().IntP("batch", "b", esfaker.DefaultBatchSize, "Batch size for inserts")
	cmd.Flags().BoolP("append", "a", false, "Append to the existing indices, instead of recreating them")
	cmd.Flags().String("pushgateway", "", "Prometheus Pushgateway URL to push run metrics to")
	for _, name := range []string{"batch", "append", "pushgateway"} {
		_ = v.BindPFlag(name, cmd.Flags().Lookup(name))
	}

	cmd.AddCommand(cleanCmd(v))

	return cmd
}

// addConnectionFlags registers the flags shared by every command.
func addConnectionFlags(cmd *cobra.Command, v *viper.Viper) {
	flags := cmd.PersistentFlags()
	flags.StringP("username", "u", "elastic", "User name")
	flags.StringP("password", "p", "changeme", "Password")
	flags.String("url", "http://localhost:9200", "Elasticsearch URL")
	flags.String("cloud", "", "Elastic Cloud ID, takes precedence over --url")
	flags.String("log-level", "info", "Log level (trace, debug, info, warn, error)")
	for _, name := range []string{"username", "password", "url", "cloud", "log-level"} {
		_ = v.BindPFlag(name, flags.Lookup(name))
	}
}

func configureLogging(level string) error {
	lvl, err := log.ParseLevel(level)
	if err != nil {
		return errors.Wrap(err, "parsing log level")
	}
	log.SetFormatter(&log.TextFormatter{FullTimestamp: true})
	log.SetOutput(os.Stderr)
	log.SetLevel(lvl)
	return nil
}

func listGenerators(out io.Writer, reg *esfaker.Registry) {
	fmt.Fprintln(out, lipgloss.NewStyle().Bold(true).Render("Available generators:"))
	for _, name := range reg.Names() {
		fmt.Fprintln(out, name)
	}
	fmt.Fprintln(out)
}

func newStore(cfg *Config) (*esfaker.ElasticsearchStore, error) {
	esCfg := elasticsearch.Config{
		Username: cfg.Username,
		Password: cfg.Password,
	}
	if cfg.Cloud != "" {
		esCfg.CloudID = cfg.Cloud
	} else {
		esCfg.Addresses = []string{cfg.URL}
	}

	client, err := elasticsearch.NewClient(esCfg)
	if err != nil {
		return nil, errors.Wrap(err, "creating Elasticsearch client")
	}
	return esfaker.NewElasticsearchStore(client)
}

func seed(cmd *cobra.Command, v *viper.Viper, collections, templates []string, counts []uint) error {
	specs, err := esfaker.NewFixtureSpecs(collections, templates, counts)
	if err != nil {
		return err
	}

	cfg, err := resolveConfig(v)
	if err != nil {
		return err
	}

	store, err := newStore(cfg)
	if err != nil {
		return err
	}

	reg := prometheus.NewRegistry()
	metrics, err := esfaker.NewMetrics(reg)
	if err != nil {
		return errors.Wrap(err, "registering metrics")
	}

	bar := newProgressBar(cmd.ErrOrStderr(), 0)
	seeder, err := esfaker.New(store, specs,
		esfaker.WithBatchSize(cfg.Batch),
		esfaker.WithAppend(cfg.Append),
		esfaker.WithMetrics(metrics),
		esfaker.WithProgress(bar.Update),
	)
	if err != nil {
		return err
	}
	bar.total = seeder.Total()

	ctx := cmd.Context()
	log.Info("Setting up indices")
	if err := seeder.Prepare(ctx); err != nil {
		return err
	}
	log.Info("Indices ready")

	summary, err := seeder.Insert(ctx)
	bar.Done()
	if err != nil {
		return err
	}

	log.WithFields(log.Fields{
		"documents":     summary.Attempted,
		"batches":       summary.Batches,
		"failedBatches": summary.FailedBatches,
	}).Info("Done")

	if cfg.Pushgateway != "" {
		if err := push.New(cfg.Pushgateway, "esfaker").Gatherer(reg).Push(); err != nil {
			log.WithError(err).Warn("Could not push metrics")
		}
	}

	return nil
}
