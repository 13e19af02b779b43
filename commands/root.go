package commands

import (
	"github.com/spf13/cobra"
)

// NewRootCmd builds the rentals CLI. Running it without a subcommand serves
// the API.
func NewRootCmd() *cobra.Command {
	serve := ServeCmd()

	rootCmd := &cobra.Command{
		Use:          "rentals",
		Short:        "Rental listing API",
		SilenceUsage: true,
		RunE:         serve.RunE,
	}

	rootCmd.AddCommand(
		serve,
		MigrateCmd(),
		SeedCmd(),
	)
	return rootCmd
}
