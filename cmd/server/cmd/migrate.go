package cmd

import (
	"fmt"

	"github.com/The-UnknownHacker/daydream-sydney-db/internal/config"
	"github.com/The-UnknownHacker/daydream-sydney-db/internal/database"

	"github.com/spf13/cobra"
)

func newMigrateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create or update the database schema and exit",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return fmt.Errorf("config error: %w", err)
			}
			logger := config.NewLogger(cfg.Logging)

			// Open migrates as part of connecting.
			store, err := database.Open(cmd.Context(), cfg.Database, logger)
			if err != nil {
				return fmt.Errorf("migrate: %w", err)
			}
			defer store.Close()

			fmt.Fprintf(cmd.OutOrStdout(), "schema is up to date (%s)\n", cfg.Database.Driver)
			return nil
		},
	}
}
