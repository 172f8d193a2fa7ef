package types

import "time"

// TimestampLayout is the sortable local-time format stored in
// messages.timestamp.
const TimestampLayout = "2006-01-02 15:04:05"

// Message is a direct message from one user to another about a listing.
// SentAt is assigned by the backend, never by the sender.
type Message struct {
	ID         int64     `json:"id"`
	SenderID   int64     `json:"sender_id"`
	ReceiverID int64     `json:"receiver_id"`
	ItemID     int64     `json:"item_id"`
	Body       string    `json:"body"`
	SentAt     time.Time `json:"sent_at"`
}

// Timestamp returns SentAt in the stored format.
func (m *Message) Timestamp() string {
	return m.SentAt.Format(TimestampLayout)
}
