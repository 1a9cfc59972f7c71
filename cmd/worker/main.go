package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/orris-inc/backoffice/internal/infrastructure/database"
	"github.com/orris-inc/backoffice/internal/interfaces/cli/bootstrap"
)

func main() {
	env := "development"
	if len(os.Args) > 1 {
		env = os.Args[1]
	}
	if envVar := os.Getenv("ENV"); envVar != "" {
		env = envVar
	}

	cfg, log, err := bootstrap.Load(env)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	log.Infow("starting expiry worker", "environment", env)

	db, err := bootstrap.OpenDatabase(cfg)
	if err != nil {
		log.Fatalw("failed to initialize database", "error", err)
	}
	defer database.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	stop, err := bootstrap.StartExpiryScheduler(ctx, cfg, db, log)
	if err != nil {
		log.Fatalw("failed to start expiry scheduler", "error", err)
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigChan
	log.Infow("received shutdown signal", "signal", sig.String())

	cancel()
	stop()
	log.Infow("expiry worker stopped")
}
