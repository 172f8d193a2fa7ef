package types

import "context"

// Marketplace defines the persistence operations behind the marketplace.
// Callers attach to a backend, run operations, and detach when done. Each
// operation is a single statement round trip; none holds a connection or a
// transaction open across calls.
type Marketplace interface {
	// Attach connects to the backend described by config and creates the
	// schema if it is missing. Returns ErrAlreadyAttached if called twice.
	Attach(config Config) error

	// Detach releases backend resources. Idempotent.
	Detach() error

	// InitializeSchema creates the users, items and messages tables if they
	// do not exist. Safe to call on every start.
	InitializeSchema(ctx context.Context) error

	// RegisterUser creates a user and returns its id.
	// Returns ErrUsernameTaken if the username is already registered.
	RegisterUser(ctx context.Context, username, password, contactInfo string) (int64, error)

	// Authenticate returns the id of the user matching both username and
	// password exactly. Returns ErrNotFound on any mismatch.
	Authenticate(ctx context.Context, username, password string) (int64, error)

	// CreateListing stores a listing owned by ownerID and returns its id.
	// price must already be normalised by the caller.
	CreateListing(ctx context.Context, ownerID int64, name, category string, price float64, description string) (int64, error)

	// ListAllListings returns every listing.
	ListAllListings(ctx context.Context) ([]*Listing, error)

	// SearchListings returns listings whose name, category or description
	// contains keyword, ignoring case. An empty keyword matches all.
	SearchListings(ctx context.Context, keyword string) ([]*Listing, error)

	// SendMessage stores a message stamped with the current local time.
	SendMessage(ctx context.Context, senderID, receiverID, itemID int64, body string) (*Message, error)

	// GetInbox returns every message addressed to userID.
	GetInbox(ctx context.Context, userID int64) ([]*Message, error)
}
