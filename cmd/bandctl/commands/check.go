package commands

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"diamondband.live/site/pkg/siteclient"
)

func checkCmd() *cobra.Command {
	var (
		baseURL   string
		subscribe string
	)

	cmd := &cobra.Command{
		Use:   "check",
		Short: "Smoke test a running site over HTTP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if baseURL == "" {
				baseURL = os.Getenv("PUBLIC_URL")
			}
			if baseURL == "" {
				return errors.New("no site url: pass --url or set PUBLIC_URL")
			}

			ctx, cancel := commandContext(cmd)
			defer cancel()

			client, err := siteclient.New(baseURL)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()

			items, err := client.ListGallery(ctx)
			if err != nil {
				return fmt.Errorf("gallery: %w", err)
			}
			fmt.Fprintf(out, "gallery: %d items\n", len(items))

			ts, err := client.ListTestimonials(ctx)
			if err != nil {
				return fmt.Errorf("testimonials: %w", err)
			}
			fmt.Fprintf(out, "testimonials: %d\n", len(ts))

			if _, err := client.CSRFToken(ctx, "/booking/"); err != nil {
				return fmt.Errorf("booking page: %w", err)
			}
			fmt.Fprintln(out, "booking page: ok")

			if subscribe != "" {
				res, err := client.Subscribe(ctx, subscribe)
				if err != nil {
					return fmt.Errorf("newsletter: %w", err)
				}
				fmt.Fprintf(out, "newsletter: %s\n", res.Message)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&baseURL, "url", "", "site base url (default $PUBLIC_URL)")
	cmd.Flags().StringVar(&subscribe, "subscribe", "", "also sign this address up for the newsletter")
	return cmd
}
