package commands

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"diamondband.live/site/internal/seed"
)

func seedCmd() *cobra.Command {
	var migrate bool

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Load the sample gallery, testimonials, members, services and posts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := commandContext(cmd)
			defer cancel()

			dbc, err := connect(ctx)
			if err != nil {
				return err
			}
			defer dbc.Close()

			if migrate {
				if err := dbc.Migrate(ctx); err != nil {
					return fmt.Errorf("migrate: %w", err)
				}
			}

			q, tx, err := dbc.NewWithTX(ctx)
			if err != nil {
				return err
			}
			defer tx.Rollback(ctx)

			report, err := seed.Run(ctx, q, time.Now())
			if err != nil {
				return err
			}
			if err := tx.Commit(ctx); err != nil {
				return fmt.Errorf("commit: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Seeded %s\n", report)
			return nil
		},
	}
	cmd.Flags().BoolVar(&migrate, "migrate", false, "apply migrations first")
	return cmd
}
