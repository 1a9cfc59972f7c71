package server

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"

	"github.com/orris-inc/backoffice/internal/infrastructure/database"
	"github.com/orris-inc/backoffice/internal/infrastructure/migration"
	"github.com/orris-inc/backoffice/internal/interfaces/cli/bootstrap"
	httpRouter "github.com/orris-inc/backoffice/internal/interfaces/http"
)

var (
	env           string
	autoMigrate   bool
	withScheduler bool
)

func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "server",
		Short: "Start the HTTP server",
		Long:  `Start the billing API server. With --with-scheduler the expiry sweep runs in the same process.`,
		RunE:  run,
	}

	cmd.Flags().StringVarP(&env, "env", "e", "development", "Environment (development, test, production)")
	cmd.Flags().BoolVar(&autoMigrate, "auto-migrate", false, "Apply pending migrations on startup")
	cmd.Flags().BoolVar(&withScheduler, "with-scheduler", false, "Run the subscription expiry scheduler in this process")

	return cmd
}

func run(cmd *cobra.Command, args []string) error {
	if envVar := os.Getenv("ENV"); envVar != "" {
		env = envVar
	}

	cfg, log, err := bootstrap.Load(env)
	if err != nil {
		return err
	}

	log.Infow("starting server",
		"environment", env,
		"version", httpRouter.Version,
		"auto_migrate", autoMigrate,
		"with_scheduler", withScheduler)

	gin.SetMode(cfg.Server.Mode)
	gin.DefaultWriter = io.Discard

	db, err := bootstrap.OpenDatabase(cfg)
	if err != nil {
		return err
	}
	defer database.Close()

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	migrator, err := migration.NewMigrator(db, log)
	if err != nil {
		return err
	}
	if autoMigrate {
		if err := migrator.Up(ctx); err != nil {
			return fmt.Errorf("auto-migration failed: %w", err)
		}
	} else if version, err := migrator.Version(ctx); err != nil {
		log.Warnw("failed to check migration status", "error", err)
	} else {
		log.Infow("current migration version", "version", version)
	}

	container, err := httpRouter.NewContainer(ctx, db, cfg, log)
	if err != nil {
		return fmt.Errorf("failed to build http container: %w", err)
	}
	defer container.Shutdown()

	if withScheduler {
		stop, err := bootstrap.StartExpiryScheduler(ctx, cfg, db, log)
		if err != nil {
			return err
		}
		defer stop()
	}

	srv := &http.Server{
		Addr:         cfg.Server.GetAddr(),
		Handler:      container.Engine(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		log.Infow("server starting", "address", cfg.Server.GetAddr(), "mode", cfg.Server.Mode)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serverErr:
		return fmt.Errorf("server failed: %w", err)
	case sig := <-quit:
		log.Infow("shutting down server", "signal", sig.String())
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Errorw("server forced to shutdown", "error", err)
		return err
	}

	log.Infow("server exited gracefully")
	return nil
}
