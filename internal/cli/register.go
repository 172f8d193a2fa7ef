package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/marketplace/internal/sqlite"
)

func newRegisterCmd(a *app) *cobra.Command {
	var (
		creds   credentials
		contact string
	)
	cmd := &cobra.Command{
		Use:   "register",
		Short: "Register a new user",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if creds.username == "" {
				return usageErrorf("--username is required")
			}
			password, err := passwordOrPrompt(cmd, creds.password)
			if err != nil {
				return err
			}
			return a.withMarketplace(cmd, func(ctx context.Context, b *sqlite.Backend) error {
				id, err := b.RegisterUser(ctx, creds.username, password, contact)
				if err != nil {
					return err
				}
				out := cmd.OutOrStdout()
				if a.jsonMode {
					return printJSON(out, session{UserID: id, Username: creds.username})
				}
				fmt.Fprintf(out, "User registered successfully (id %d)\n", id)
				return nil
			})
		},
	}
	creds.register(cmd)
	cmd.Flags().StringVar(&contact, "contact", "", "contact info shown to other users")
	return cmd
}

func newLoginCmd(a *app) *cobra.Command {
	var creds credentials
	cmd := &cobra.Command{
		Use:   "login",
		Short: "Check credentials and print the user id",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.withSession(cmd, creds, func(_ context.Context, _ *sqlite.Backend, s session) error {
				out := cmd.OutOrStdout()
				if a.jsonMode {
					return printJSON(out, s)
				}
				fmt.Fprintf(out, "Login successful (user id %d)\n", s.UserID)
				return nil
			})
		},
	}
	creds.register(cmd)
	return cmd
}
