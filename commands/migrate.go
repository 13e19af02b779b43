package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"rental-backend/config"
)

func MigrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create or update the listing tables",
		RunE: func(cmd *cobra.Command, args []string) error {
			settings := config.Load()

			// OpenDatabase migrates on open.
			if _, err := config.OpenDatabase(settings.DB); err != nil {
				return fmt.Errorf("migrate: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "migrated %s database\n", settings.DB.Driver)
			return nil
		},
	}
}
