package commands

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"diamondband.live/site/internal/db"
)

// passwordEnv is read when --password is not given.
const passwordEnv = "BANDCTL_ADMIN_PASSWORD"

func createAdminCmd() *cobra.Command {
	var password string

	cmd := &cobra.Command{
		Use:   "create-admin <username>",
		Short: "Create an admin user or reset its password",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			pw, err := resolvePassword(password, cmd.InOrStdin())
			if err != nil {
				return err
			}

			ctx, cancel := commandContext(cmd)
			defer cancel()

			dbc, err := connect(ctx)
			if err != nil {
				return err
			}
			defer dbc.Close()

			user, err := dbc.Queries(ctx).NewAdminUser(ctx, db.NewAdminUserParams{Username: args[0], Password: pw})
			if err != nil {
				return fmt.Errorf("create admin: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Admin %q ready (id %s)\n", user.Username, db.UUIDString(user.ID))
			return nil
		},
	}
	cmd.Flags().StringVar(&password, "password", "", "password (default $"+passwordEnv+", then the first line of stdin)")
	return cmd
}

func resolvePassword(flag string, stdin io.Reader) (string, error) {
	if flag != "" {
		return flag, nil
	}
	if pw := os.Getenv(passwordEnv); pw != "" {
		return pw, nil
	}
	line, err := bufio.NewReader(stdin).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", fmt.Errorf("read password: %w", err)
	}
	pw := strings.TrimRight(line, "\r\n")
	if pw == "" {
		return "", errors.New("password is required")
	}
	return pw, nil
}
