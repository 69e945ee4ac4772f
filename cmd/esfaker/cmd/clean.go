package cmd

import (
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func cleanCmd(v *viper.Viper) *cobra.Command {
	var collections []string

	cmd := &cobra.Command{
		Use:   "clean --index NAME...",
		Short: "Delete indices",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(collections) == 0 {
				return errors.New("at least one --index is required")
			}

			cfg, err := resolveConfig(v)
			if err != nil {
				return err
			}
			store, err := newStore(cfg)
			if err != nil {
				return err
			}

			for _, name := range collections {
				if err := store.DropCollection(cmd.Context(), name); err != nil {
					return err
				}
				log.WithField("collection", name).Info("Deleted")
			}
			return nil
		},
	}

	cmd.Flags().StringArrayVarP(&collections, "index", "i", nil, "Index to delete")

	return cmd
}
