// Package commands implements bandctl, the operator CLI for the site.
package commands

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"diamondband.live/site/internal/application"
	"diamondband.live/site/internal/config"
	"diamondband.live/site/internal/db"
)

var (
	envFile string
	timeout time.Duration
	verbose bool
)

func Execute() error {
	root := newRootCmd()
	if err := root.Execute(); err != nil {
		slog.Error("bandctl failed", "error", err)
		return err
	}
	return nil
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "bandctl",
		Short:         "Operate the Diamond Band website",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			level := slog.LevelInfo
			if verbose {
				level = slog.LevelDebug
			}
			slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))

			if envFile != "" {
				if err := godotenv.Load(envFile); err != nil {
					return fmt.Errorf("load %s: %w", envFile, err)
				}
			} else if err := godotenv.Load(); err == nil {
				slog.Debug("Loaded .env")
			}
			return nil
		},
	}

	root.PersistentFlags().StringVar(&envFile, "env-file", "", "dotenv file to load (default .env when present)")
	root.PersistentFlags().DurationVar(&timeout, "timeout", 2*time.Minute, "overall command timeout")
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "debug logging")

	root.AddCommand(migrateCmd(), seedCmd(), createAdminCmd(), checkCmd())
	return root
}

// commandContext bounds a command by --timeout.
func commandContext(cmd *cobra.Command) (context.Context, context.CancelFunc) {
	return context.WithTimeout(cmd.Context(), timeout)
}

// connect loads the configuration and opens the database.
func connect(ctx context.Context) (*db.DatabaseConnection, error) {
	conf, err := config.LoadConfig(ctx)
	if err != nil {
		return nil, err
	}
	pool, err := application.OpenDBPoolWithRetry(ctx, *conf)
	if err != nil {
		return nil, fmt.Errorf("connect: %w", err)
	}
	dbc, err := db.NewDatabaseConnection(ctx, pool)
	if err != nil {
		pool.Close()
		return nil, err
	}
	return dbc, nil
}
