package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/orris-inc/backoffice/internal/interfaces/cli/migrate"
	"github.com/orris-inc/backoffice/internal/interfaces/cli/server"
	"github.com/orris-inc/backoffice/internal/interfaces/cli/sweep"
	"github.com/orris-inc/backoffice/internal/interfaces/cli/token"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "backoffice",
		Short: "Backoffice - subscription and billing engine",
		Long:  `Backoffice runs the CRM/HRMS billing API, database migrations, the subscription expiry sweep and operator tooling.`,
	}

	rootCmd.AddCommand(
		server.NewCommand(),
		migrate.NewCommand(),
		sweep.NewCommand(),
		token.NewCommand(),
	)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
