package migrate

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/orris-inc/backoffice/internal/infrastructure/database"
	"github.com/orris-inc/backoffice/internal/infrastructure/migration"
	"github.com/orris-inc/backoffice/internal/interfaces/cli/bootstrap"
	"github.com/orris-inc/backoffice/internal/shared/logger"
)

var (
	env        string
	name       string
	scriptsDir string
	steps      int
)

func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Database migration tools",
		Long:  `Manage database migrations: apply, roll back, inspect status and create new scripts.`,
	}

	cmd.PersistentFlags().StringVarP(&env, "env", "e", "development", "Environment (development, test, production)")

	cmd.AddCommand(
		newUpCommand(),
		newDownCommand(),
		newStatusCommand(),
		newCreateCommand(),
	)

	return cmd
}

func newUpCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "up",
		Short: "Run all pending migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withMigrator(cmd, func(ctx context.Context, m *migration.Migrator, log logger.Interface) error {
				log.Infow("running up migrations", "environment", env)
				return m.Up(ctx)
			})
		},
	}
}

func newDownCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "down",
		Short: "Rollback migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			if steps < 1 {
				return fmt.Errorf("--steps must be at least 1")
			}
			return withMigrator(cmd, func(ctx context.Context, m *migration.Migrator, log logger.Interface) error {
				log.Infow("rolling back migrations", "environment", env, "steps", steps)
				return m.Down(ctx, steps)
			})
		},
	}

	cmd.Flags().IntVarP(&steps, "steps", "n", 1, "Number of migrations to rollback")

	return cmd
}

func newStatusCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show migration status",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withMigrator(cmd, func(ctx context.Context, m *migration.Migrator, log logger.Interface) error {
				version, err := m.Version(ctx)
				if err != nil {
					return err
				}
				log.Infow("current migration version", "version", version)
				return m.Status(ctx)
			})
		},
	}
}

func newCreateCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a new migration",
		Long:  `Create a timestamped SQL script in the scripts directory of the given dialect.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, err := filepath.Abs(scriptsDir)
			if err != nil {
				return fmt.Errorf("failed to resolve scripts path: %w", err)
			}
			if err := migration.CreateScript(dir, name); err != nil {
				return err
			}
			cmd.Printf("created migration %q in %s\n", name, dir)
			return nil
		},
	}

	cmd.Flags().StringVarP(&name, "name", "n", "", "Name of the migration (required)")
	cmd.Flags().StringVar(&scriptsDir, "dir", "./internal/infrastructure/migration/scripts/mysql", "Directory to write the script to")
	_ = cmd.MarkFlagRequired("name")

	return cmd
}

func withMigrator(cmd *cobra.Command, fn func(ctx context.Context, m *migration.Migrator, log logger.Interface) error) error {
	cfg, log, err := bootstrap.Load(env)
	if err != nil {
		return err
	}

	db, err := bootstrap.OpenDatabase(cfg)
	if err != nil {
		return err
	}
	defer database.Close()

	m, err := migration.NewMigrator(db, log)
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	if err := fn(ctx, m, log); err != nil {
		log.Errorw("migration command failed", "error", err)
		return err
	}
	return nil
}
