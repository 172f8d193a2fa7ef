// Package sqlite implements the SQLite storage backend for the marketplace.
// The database is a single file in the configured data directory; tables are
// created on Attach if they are missing and existing data is kept.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/mesh-intelligence/marketplace/internal/logging"
	"github.com/mesh-intelligence/marketplace/pkg/types"
)

// DatabaseFile is the name of the database file inside DataDir.
const DatabaseFile = "community_marketplace.db"

var _ types.Marketplace = (*Backend)(nil)

// Backend implements types.Marketplace on a single SQLite file.
type Backend struct {
	mu       sync.RWMutex
	attached bool
	config   types.Config
	db       *sql.DB

	log logging.Logger
	now func() time.Time
}

// Option configures a Backend.
type Option func(*Backend)

// WithLogger sets the logger used for operation and failure logs.
func WithLogger(l logging.Logger) Option {
	return func(b *Backend) {
		if l != nil {
			b.log = l
		}
	}
}

// WithClock sets the clock used to stamp messages.
func WithClock(now func() time.Time) Option {
	return func(b *Backend) {
		if now != nil {
			b.now = now
		}
	}
}

// NewBackend creates a new SQLite backend instance.
// The backend is not attached; call Attach with a Config to initialize.
func NewBackend(opts ...Option) *Backend {
	b := &Backend{
		log: logging.Nop(),
		now: time.Now,
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Attach opens the database file under config.DataDir, creating the
// directory and the schema as needed.
// Returns ErrAlreadyAttached if already attached.
func (b *Backend) Attach(config types.Config) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.attached {
		return types.ErrAlreadyAttached
	}

	if err := config.Validate(); err != nil {
		return err
	}

	dataDir := config.DataDir
	if dataDir == "" {
		dataDir = "."
	}
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return fmt.Errorf("creating data directory: %w", err)
	}

	dbPath := filepath.Join(dataDir, DatabaseFile)
	dsn, err := dataSourceName(dbPath, config.BusyTimeoutMS)
	if err != nil {
		return err
	}
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return fmt.Errorf("opening %s: %w", dbPath, err)
	}
	// One connection at a time, never kept idle: each operation acquires
	// its own handle and releases it when the statement finishes.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(0)

	ctx := context.Background()
	if err := initSchema(ctx, db); err != nil {
		db.Close()
		return storageError("initializing schema", err)
	}

	b.db = db
	b.config = config
	b.attached = true

	b.log.Info(ctx, "marketplace attached", "path", dbPath, "password_scheme", config.GetPasswordScheme())
	return nil
}

// Detach closes the database. After Detach, all operations return
// ErrDetached. Detach is idempotent.
func (b *Backend) Detach() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if !b.attached {
		return nil
	}

	if b.db != nil {
		if err := b.db.Close(); err != nil {
			return err
		}
		b.db = nil
	}
	b.attached = false
	return nil
}

// InitializeSchema creates any missing tables and indexes.
func (b *Backend) InitializeSchema(ctx context.Context) error {
	b.mu.RLock()
	defer b.mu.RUnlock()

	if !b.attached {
		return types.ErrDetached
	}
	if err := initSchema(ctx, b.db); err != nil {
		return storageError("initializing schema", err)
	}
	return nil
}

func initSchema(ctx context.Context, db *sql.DB) error {
	for _, ddl := range schemaDDL {
		if _, err := db.ExecContext(ctx, ddl); err != nil {
			return err
		}
	}
	for _, ddl := range indexDDL {
		if _, err := db.ExecContext(ctx, ddl); err != nil {
			return err
		}
	}
	return nil
}

// dataSourceName builds a modernc DSN. Pragmas given this way run on every
// new connection, which matters because connections are not reused. The
// path is made absolute and percent-escaped so characters such as ?, # and
// % in the data directory stay part of the file name.
func dataSourceName(path string, busyTimeoutMS int) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("resolving %s: %w", path, err)
	}
	abs = filepath.ToSlash(abs)
	if !strings.HasPrefix(abs, "/") {
		abs = "/" + abs
	}
	u := url.URL{
		Scheme:   "file",
		Path:     abs,
		RawQuery: fmt.Sprintf("_pragma=foreign_keys(1)&_pragma=busy_timeout(%d)", busyTimeoutMS),
	}
	return u.String(), nil
}

// opLogger returns a logger tagged with the operation name and a fresh
// operation id.
func (b *Backend) opLogger(op string) logging.Logger {
	return b.log.With("op", op, "op_id", newOpID())
}

// newOpID generates a UUID v7 for log correlation.
func newOpID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.New().String()
	}
	return id.String()
}
