// pg-migrator applies the schema migrations and exits. It runs as a one-shot
// container before the web service starts. With SEED_SAMPLE_CONTENT=true it
// also loads the sample gallery into an empty database.
package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"diamondband.live/site/internal/application"
	"diamondband.live/site/internal/config"
	"diamondband.live/site/internal/db"
	"diamondband.live/site/internal/seed"
)

func main() {
	if err := godotenv.Load(); err == nil {
		slog.Info("Loaded .env")
	}
	slog.Info("Starting database migrator")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	ctx, cancel := context.WithTimeout(ctx, 2*time.Minute)
	defer cancel()

	if err := run(ctx, seedRequested()); err != nil {
		slog.Error("migrator failed", "error", err)
		os.Exit(1)
	}
	slog.Info("Database ready")
}

func seedRequested() bool {
	v, err := strconv.ParseBool(os.Getenv("SEED_SAMPLE_CONTENT"))
	return err == nil && v
}

func run(ctx context.Context, withSeed bool) error {
	conf, err := config.LoadConfig(ctx)
	if err != nil {
		return err
	}

	pool, err := application.OpenDBPoolWithRetry(ctx, *conf)
	if err != nil {
		return err
	}
	dbc, err := db.NewDatabaseConnection(ctx, pool)
	if err != nil {
		pool.Close()
		return err
	}
	defer dbc.Close()

	if err := dbc.Migrate(ctx); err != nil {
		return err
	}
	slog.InfoContext(ctx, "Migrations applied")

	if !withSeed {
		return nil
	}
	q, tx, err := dbc.NewWithTX(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)
	if _, err := seed.Run(ctx, q, time.Now()); err != nil {
		return err
	}
	return tx.Commit(ctx)
}
