// Schema DDL for the marketplace database. Every statement is idempotent so
// the schema can be applied on each start.
package sqlite

const (
	createUsers = `CREATE TABLE IF NOT EXISTS users (
    id INTEGER PRIMARY KEY,
    username TEXT UNIQUE NOT NULL,
    password TEXT,
    contact_info TEXT
);`

	createItems = `CREATE TABLE IF NOT EXISTS items (
    id INTEGER PRIMARY KEY,
    user_id INTEGER,
    name TEXT,
    category TEXT,
    price REAL,
    description TEXT,
    FOREIGN KEY (user_id) REFERENCES users(id)
);`

	createMessages = `CREATE TABLE IF NOT EXISTS messages (
    id INTEGER PRIMARY KEY,
    sender_id INTEGER,
    receiver_id INTEGER,
    item_id INTEGER,
    message TEXT,
    timestamp TEXT,
    FOREIGN KEY (sender_id) REFERENCES users(id),
    FOREIGN KEY (receiver_id) REFERENCES users(id),
    FOREIGN KEY (item_id) REFERENCES items(id)
);`
)

const (
	idxItemsUser        = `CREATE INDEX IF NOT EXISTS idx_items_user ON items(user_id);`
	idxMessagesReceiver = `CREATE INDEX IF NOT EXISTS idx_messages_receiver ON messages(receiver_id);`
)

// schemaDDL lists all CREATE TABLE statements in dependency order.
var schemaDDL = []string{
	createUsers,
	createItems,
	createMessages,
}

var indexDDL = []string{
	idxItemsUser,
	idxMessagesReceiver,
}
