package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/marketplace/internal/sqlite"
)

func newMessageCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "message",
		Short: "Send messages about a listing",
	}
	cmd.AddCommand(newMessageSendCmd(a))
	return cmd
}

func newMessageSendCmd(a *app) *cobra.Command {
	var (
		creds    credentials
		to, item int64
		body     string
	)
	cmd := &cobra.Command{
		Use:   "send",
		Short: "Send a message to another user about a listing",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if to == 0 || item == 0 {
				return usageErrorf("--to and --item are required")
			}
			return a.withSession(cmd, creds, func(ctx context.Context, b *sqlite.Backend, s session) error {
				msg, err := b.SendMessage(ctx, s.UserID, to, item, body)
				if err != nil {
					return err
				}
				out := cmd.OutOrStdout()
				if a.jsonMode {
					return printJSON(out, messageView{
						ID:         msg.ID,
						SenderID:   msg.SenderID,
						ReceiverID: msg.ReceiverID,
						ItemID:     msg.ItemID,
						Body:       msg.Body,
						Timestamp:  msg.Timestamp(),
					})
				}
				fmt.Fprintf(out, "Message sent at %s\n", msg.Timestamp())
				return nil
			})
		},
	}
	creds.register(cmd)
	cmd.Flags().Int64Var(&to, "to", 0, "receiver user id")
	cmd.Flags().Int64Var(&item, "item", 0, "listing id the message is about")
	cmd.Flags().StringVar(&body, "body", "", "message text")
	return cmd
}

func newInboxCmd(a *app) *cobra.Command {
	var creds credentials
	cmd := &cobra.Command{
		Use:   "inbox",
		Short: "Show messages sent to the logged-in user",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.withSession(cmd, creds, func(ctx context.Context, b *sqlite.Backend, s session) error {
				messages, err := b.GetInbox(ctx, s.UserID)
				if err != nil {
					return err
				}
				return a.printMessages(cmd.OutOrStdout(), messages)
			})
		},
	}
	creds.register(cmd)
	return cmd
}
