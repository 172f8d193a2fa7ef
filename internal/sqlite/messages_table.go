// Direct messages about listings.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/mesh-intelligence/marketplace/pkg/types"
)

// SendMessage inserts a message stamped with the backend clock in local
// time and returns the stored record.
func (b *Backend) SendMessage(ctx context.Context, senderID, receiverID, itemID int64, body string) (*types.Message, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	if !b.attached {
		return nil, types.ErrDetached
	}
	log := b.opLogger("send_message")

	stamp := b.now().In(time.Local).Format(types.TimestampLayout)
	res, err := b.db.ExecContext(ctx,
		"INSERT INTO messages (sender_id, receiver_id, item_id, message, timestamp) VALUES (?, ?, ?, ?, ?)",
		senderID, receiverID, itemID, body, stamp,
	)
	if err != nil {
		log.Warn(ctx, "send message failed", "error", err)
		return nil, storageError("sending message", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("reading message id: %w", err)
	}
	sentAt, err := parseTimestamp(stamp)
	if err != nil {
		return nil, err
	}
	log.Debug(ctx, "message sent", "message_id", id, "receiver_id", receiverID, "item_id", itemID)

	return &types.Message{
		ID:         id,
		SenderID:   senderID,
		ReceiverID: receiverID,
		ItemID:     itemID,
		Body:       body,
		SentAt:     sentAt,
	}, nil
}

// GetInbox returns every message addressed to userID ordered by id.
func (b *Backend) GetInbox(ctx context.Context, userID int64) ([]*types.Message, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	if !b.attached {
		return nil, types.ErrDetached
	}

	rows, err := b.db.QueryContext(ctx,
		`SELECT id, COALESCE(sender_id, 0), COALESCE(receiver_id, 0), COALESCE(item_id, 0),
    COALESCE(message, ''), COALESCE(timestamp, '')
    FROM messages WHERE receiver_id = ? ORDER BY id`,
		userID,
	)
	if err != nil {
		b.log.Warn(ctx, "inbox query failed", "user_id", userID, "error", err)
		return nil, storageError("reading inbox", err)
	}
	defer rows.Close()

	results := []*types.Message{}
	for rows.Next() {
		m, err := hydrateMessage(rows)
		if err != nil {
			return nil, fmt.Errorf("hydrating message: %w", err)
		}
		results = append(results, m)
	}
	if err := rows.Err(); err != nil {
		return nil, storageError("reading inbox", err)
	}
	return results, nil
}

func hydrateMessage(rows *sql.Rows) (*types.Message, error) {
	var (
		m     types.Message
		stamp string
	)
	if err := rows.Scan(&m.ID, &m.SenderID, &m.ReceiverID, &m.ItemID, &m.Body, &stamp); err != nil {
		return nil, err
	}
	if stamp != "" {
		t, err := parseTimestamp(stamp)
		if err != nil {
			return nil, err
		}
		m.SentAt = t
	}
	return &m, nil
}

func parseTimestamp(s string) (time.Time, error) {
	t, err := time.ParseInLocation(types.TimestampLayout, s, time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("parsing message timestamp %q: %w", s, err)
	}
	return t, nil
}
