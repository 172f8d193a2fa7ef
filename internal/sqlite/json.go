// JSONL record structures for Export and Import. Field names follow the
// table columns so files stay readable next to the database. Users are
// written as types.User, whose tags already match.
package sqlite

// JSONL file names written by Export.
const (
	usersJSONL    = "users.jsonl"
	itemsJSONL    = "items.jsonl"
	messagesJSONL = "messages.jsonl"
)

// itemJSON represents a row in items.jsonl.
type itemJSON struct {
	ID          int64   `json:"id"`
	UserID      int64   `json:"user_id"`
	Name        string  `json:"name"`
	Category    string  `json:"category"`
	Price       float64 `json:"price"`
	Description string  `json:"description"`
}

// messageJSON represents a row in messages.jsonl.
type messageJSON struct {
	ID         int64  `json:"id"`
	SenderID   int64  `json:"sender_id"`
	ReceiverID int64  `json:"receiver_id"`
	ItemID     int64  `json:"item_id"`
	Message    string `json:"message"`
	Timestamp  string `json:"timestamp"`
}
