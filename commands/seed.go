package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"rental-backend/config"
	"rental-backend/seed"
	"rental-backend/services"
)

func SeedCmd() *cobra.Command {
	var reset bool

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Load the demo listings and the admin from ADMIN_EMAIL/ADMIN_PASSWORD",
		RunE: func(cmd *cobra.Command, args []string) error {
			settings := config.Load()

			db, err := config.OpenDatabase(settings.DB)
			if err != nil {
				return fmt.Errorf("database connect failed: %w", err)
			}

			auth := services.NewAuthService(db, settings.JWTSecret)
			if err := auth.EnsureAdmin(settings.Admin.Email, settings.Admin.Password, settings.Admin.Name); err != nil {
				return err
			}

			n, err := seed.Properties(services.NewPropertyService(db), reset)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "seeded %d properties\n", n)
			return nil
		},
	}

	cmd.Flags().BoolVar(&reset, "reset", false, "delete every existing property first")
	return cmd
}
