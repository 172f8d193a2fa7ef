package cli

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/mesh-intelligence/marketplace/pkg/types"
)

func printJSON(w io.Writer, v any) error {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal output: %w", err)
	}
	_, err = fmt.Fprintln(w, string(out))
	return err
}

func (a *app) printListings(w io.Writer, listings []*types.Listing) error {
	if a.jsonMode {
		return printJSON(w, listings)
	}
	if len(listings) == 0 {
		fmt.Fprintln(w, "No listings found")
		return nil
	}
	for _, l := range listings {
		fmt.Fprintln(w, l.String())
	}
	return nil
}

type messageView struct {
	ID         int64  `json:"id"`
	SenderID   int64  `json:"sender_id"`
	ReceiverID int64  `json:"receiver_id"`
	ItemID     int64  `json:"item_id"`
	Body       string `json:"body"`
	Timestamp  string `json:"timestamp"`
}

func (a *app) printMessages(w io.Writer, messages []*types.Message) error {
	if a.jsonMode {
		views := make([]messageView, 0, len(messages))
		for _, m := range messages {
			views = append(views, messageView{
				ID:         m.ID,
				SenderID:   m.SenderID,
				ReceiverID: m.ReceiverID,
				ItemID:     m.ItemID,
				Body:       m.Body,
				Timestamp:  m.Timestamp(),
			})
		}
		return printJSON(w, views)
	}
	if len(messages) == 0 {
		fmt.Fprintln(w, "No messages")
		return nil
	}
	for _, m := range messages {
		fmt.Fprintf(w, "[%s] from user %d about listing %d: %s\n", m.Timestamp(), m.SenderID, m.ItemID, m.Body)
	}
	return nil
}
