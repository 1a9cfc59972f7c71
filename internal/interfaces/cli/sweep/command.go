package sweep

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/orris-inc/backoffice/internal/infrastructure/database"
	"github.com/orris-inc/backoffice/internal/interfaces/cli/bootstrap"
)

var env string

// NewCommand runs the subscription expiry sweep once, for cron-driven
// deployments that do not keep a worker running.
func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sweep",
		Short: "Expire subscriptions whose end date has passed",
		RunE:  run,
	}

	cmd.Flags().StringVarP(&env, "env", "e", "development", "Environment (development, test, production)")

	return cmd
}

func run(cmd *cobra.Command, args []string) error {
	cfg, log, err := bootstrap.Load(env)
	if err != nil {
		return err
	}

	db, err := bootstrap.OpenDatabase(cfg)
	if err != nil {
		return err
	}
	defer database.Close()

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, cancel := context.WithTimeout(ctx, cfg.Scheduler.ExpiryTimeout)
	defer cancel()

	count, err := bootstrap.NewExpiryUseCase(db, log).Execute(ctx)
	if err != nil {
		return err
	}

	cmd.Printf("expired %d subscription(s)\n", count)
	return nil
}
