// Export and Import move the whole marketplace between the database and a
// directory of JSONL files, one file per table.
package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/mesh-intelligence/marketplace/pkg/types"
)

// TransferStats counts the rows moved by Export or Import.
type TransferStats struct {
	Users    int `json:"users"`
	Listings int `json:"listings"`
	Messages int `json:"messages"`
	Skipped  int `json:"skipped"`
}

// Export writes users.jsonl, items.jsonl and messages.jsonl into dir. All
// three files are read from one snapshot of the database.
func (b *Backend) Export(ctx context.Context, dir string) (TransferStats, error) {
	var stats TransferStats

	b.mu.RLock()
	defer b.mu.RUnlock()

	if !b.attached {
		return stats, types.ErrDetached
	}
	log := b.opLogger("export")

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return stats, fmt.Errorf("creating export directory: %w", err)
	}

	tx, err := b.db.BeginTx(ctx, nil)
	if err != nil {
		return stats, storageError("beginning export", err)
	}
	defer tx.Rollback()

	users, err := collect(ctx, tx,
		"SELECT id, COALESCE(username, ''), COALESCE(password, ''), COALESCE(contact_info, '') FROM users ORDER BY id",
		func(rows *sql.Rows) (any, error) {
			var u types.User
			err := rows.Scan(&u.ID, &u.Username, &u.Password, &u.ContactInfo)
			return u, err
		})
	if err != nil {
		return stats, storageError("exporting users", err)
	}

	items, err := collect(ctx, tx,
		`SELECT id, COALESCE(user_id, 0), COALESCE(name, ''), COALESCE(category, ''),
    COALESCE(price, 0), COALESCE(description, '') FROM items ORDER BY id`,
		func(rows *sql.Rows) (any, error) {
			var it itemJSON
			err := rows.Scan(&it.ID, &it.UserID, &it.Name, &it.Category, &it.Price, &it.Description)
			return it, err
		})
	if err != nil {
		return stats, storageError("exporting listings", err)
	}

	messages, err := collect(ctx, tx,
		`SELECT id, COALESCE(sender_id, 0), COALESCE(receiver_id, 0), COALESCE(item_id, 0),
    COALESCE(message, ''), COALESCE(timestamp, '') FROM messages ORDER BY id`,
		func(rows *sql.Rows) (any, error) {
			var m messageJSON
			err := rows.Scan(&m.ID, &m.SenderID, &m.ReceiverID, &m.ItemID, &m.Message, &m.Timestamp)
			return m, err
		})
	if err != nil {
		return stats, storageError("exporting messages", err)
	}

	for _, out := range []struct {
		file    string
		records []json.RawMessage
	}{
		{usersJSONL, users},
		{itemsJSONL, items},
		{messagesJSONL, messages},
	} {
		if err := writeJSONL(filepath.Join(dir, out.file), out.records); err != nil {
			return stats, fmt.Errorf("writing %s: %w", out.file, err)
		}
	}

	stats.Users = len(users)
	stats.Listings = len(items)
	stats.Messages = len(messages)
	log.Info(ctx, "export complete", "dir", dir, "users", stats.Users, "listings", stats.Listings, "messages", stats.Messages)
	return stats, nil
}

// collect runs query and marshals each scanned row to JSON.
func collect(ctx context.Context, tx *sql.Tx, query string, scan func(*sql.Rows) (any, error)) ([]json.RawMessage, error) {
	rows, err := tx.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []json.RawMessage
	for rows.Next() {
		rec, err := scan(rows)
		if err != nil {
			return nil, err
		}
		data, err := json.Marshal(rec)
		if err != nil {
			return nil, fmt.Errorf("marshaling record: %w", err)
		}
		records = append(records, data)
	}
	return records, rows.Err()
}

// Import loads users.jsonl, items.jsonl and messages.jsonl from dir, in
// that order, inside one transaction. Ids are kept. Malformed lines and
// rows that violate a constraint (duplicate id or username, dangling
// reference) are skipped and counted. Missing files read as empty.
func (b *Backend) Import(ctx context.Context, dir string) (TransferStats, error) {
	var stats TransferStats

	b.mu.RLock()
	defer b.mu.RUnlock()

	if !b.attached {
		return stats, types.ErrDetached
	}
	log := b.opLogger("import")

	tx, err := b.db.BeginTx(ctx, nil)
	if err != nil {
		return stats, storageError("beginning import", err)
	}
	defer tx.Rollback()

	loads := []struct {
		file   string
		insert string
		args   func(json.RawMessage) ([]any, error)
		count  *int
	}{
		{
			file:   usersJSONL,
			insert: "INSERT INTO users (id, username, password, contact_info) VALUES (?, ?, ?, ?)",
			args: func(raw json.RawMessage) ([]any, error) {
				var u types.User
				if err := json.Unmarshal(raw, &u); err != nil {
					return nil, err
				}
				if u.Username == "" {
					return nil, types.ErrInvalidUsername
				}
				return []any{u.ID, u.Username, u.Password, u.ContactInfo}, nil
			},
			count: &stats.Users,
		},
		{
			file:   itemsJSONL,
			insert: "INSERT INTO items (id, user_id, name, category, price, description) VALUES (?, ?, ?, ?, ?, ?)",
			args: func(raw json.RawMessage) ([]any, error) {
				var it itemJSON
				if err := json.Unmarshal(raw, &it); err != nil {
					return nil, err
				}
				if err := types.CheckPrice(it.Price); err != nil {
					return nil, err
				}
				return []any{it.ID, it.UserID, it.Name, it.Category, it.Price, it.Description}, nil
			},
			count: &stats.Listings,
		},
		{
			file:   messagesJSONL,
			insert: "INSERT INTO messages (id, sender_id, receiver_id, item_id, message, timestamp) VALUES (?, ?, ?, ?, ?, ?)",
			args: func(raw json.RawMessage) ([]any, error) {
				var m messageJSON
				if err := json.Unmarshal(raw, &m); err != nil {
					return nil, err
				}
				if _, err := parseTimestamp(m.Timestamp); err != nil {
					return nil, err
				}
				return []any{m.ID, m.SenderID, m.ReceiverID, m.ItemID, m.Message, m.Timestamp}, nil
			},
			count: &stats.Messages,
		},
	}

	for _, load := range loads {
		records, skipped, err := readJSONL(filepath.Join(dir, load.file))
		if err != nil {
			return TransferStats{}, err
		}
		stats.Skipped += skipped

		stmt, err := tx.PrepareContext(ctx, load.insert)
		if err != nil {
			return TransferStats{}, storageError("preparing import of "+load.file, err)
		}
		for _, rec := range records {
			args, err := load.args(rec)
			if err != nil {
				stats.Skipped++
				continue
			}
			if _, err := stmt.ExecContext(ctx, args...); err != nil {
				switch classify(err) {
				case failureUnique, failureForeignKey:
					stats.Skipped++
					continue
				}
				stmt.Close()
				return TransferStats{}, storageError("importing "+load.file, err)
			}
			*load.count++
		}
		stmt.Close()
	}

	if err := tx.Commit(); err != nil {
		return TransferStats{}, storageError("committing import", err)
	}

	log.Info(ctx, "import complete", "dir", dir, "users", stats.Users, "listings", stats.Listings,
		"messages", stats.Messages, "skipped", stats.Skipped)
	return stats, nil
}
