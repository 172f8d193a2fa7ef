// User registration and authentication.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"github.com/mesh-intelligence/marketplace/pkg/types"
)

// RegisterUser inserts a user row and returns its id.
// Returns ErrUsernameTaken if the username already exists.
func (b *Backend) RegisterUser(ctx context.Context, username, password, contactInfo string) (int64, error) {
	if username == "" {
		return 0, types.ErrInvalidUsername
	}

	b.mu.RLock()
	defer b.mu.RUnlock()

	if !b.attached {
		return 0, types.ErrDetached
	}
	log := b.opLogger("register_user")

	stored, err := b.storedPassword(password)
	if err != nil {
		return 0, err
	}

	res, err := b.db.ExecContext(ctx,
		"INSERT INTO users (username, password, contact_info) VALUES (?, ?, ?)",
		username, stored, contactInfo,
	)
	if err != nil {
		if classify(err) == failureUnique {
			log.Debug(ctx, "username taken", "username", username)
			return 0, types.ErrUsernameTaken
		}
		log.Warn(ctx, "register user failed", "error", err)
		return 0, storageError("registering user", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("reading user id: %w", err)
	}
	log.Debug(ctx, "user registered", "user_id", id)
	return id, nil
}

// Authenticate returns the id of the user whose username and password both
// match exactly. Returns ErrNotFound on any mismatch.
func (b *Backend) Authenticate(ctx context.Context, username, password string) (int64, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	if !b.attached {
		return 0, types.ErrDetached
	}
	log := b.opLogger("authenticate")

	var (
		id  int64
		err error
	)
	if b.config.GetPasswordScheme() == types.PasswordBcrypt {
		id, err = b.authenticateBcrypt(ctx, username, password)
	} else {
		err = b.db.QueryRowContext(ctx,
			"SELECT id FROM users WHERE username = ? AND password = ?",
			username, password,
		).Scan(&id)
	}
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) || errors.Is(err, types.ErrNotFound) {
			log.Debug(ctx, "authentication failed")
			return 0, types.ErrNotFound
		}
		log.Warn(ctx, "authenticate failed", "error", err)
		return 0, storageError("authenticating user", err)
	}
	return id, nil
}

func (b *Backend) authenticateBcrypt(ctx context.Context, username, password string) (int64, error) {
	var (
		id   int64
		hash sql.NullString
	)
	err := b.db.QueryRowContext(ctx,
		"SELECT id, password FROM users WHERE username = ?", username,
	).Scan(&id, &hash)
	if err != nil {
		return 0, err
	}
	if bcrypt.CompareHashAndPassword([]byte(hash.String), []byte(password)) != nil {
		return 0, types.ErrNotFound
	}
	return id, nil
}

// storedPassword returns the value written to users.password under the
// configured scheme.
func (b *Backend) storedPassword(password string) (string, error) {
	if b.config.GetPasswordScheme() != types.PasswordBcrypt {
		return password, nil
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("%w: %v", types.ErrValidation, err)
	}
	return string(hash), nil
}
