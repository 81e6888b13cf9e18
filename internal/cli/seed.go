package cli

import (
	"fmt"

	"github.com/Shivanand-hulikatti/event-ease/internal/app"
	"github.com/Shivanand-hulikatti/event-ease/internal/catalog"
	"github.com/spf13/cobra"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Load the event catalog into the configured store if it is empty",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		store, err := app.OpenStore(cmd.Context(), cfg.Store, nil)
		if err != nil {
			return err
		}
		defer store.Close()

		seeded, err := catalog.Seed(cmd.Context(), store)
		if err != nil {
			return err
		}
		n, err := store.CountEvents(cmd.Context())
		if err != nil {
			return err
		}
		if seeded {
			fmt.Fprintf(cmd.OutOrStdout(), "Seeded %d events into %s store.\n", n, cfg.Store.Driver)
		} else {
			fmt.Fprintf(cmd.OutOrStdout(), "Catalog already present (%d events); nothing to do.\n", n)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(seedCmd)
}
