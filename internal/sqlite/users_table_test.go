// Tests for user registration and authentication.
package sqlite

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/marketplace/pkg/types"
)

func TestRegisterUser(t *testing.T) {
	tests := []struct {
		name  string
		check func(t *testing.T, b *Backend)
	}{
		{
			name: "register returns a positive id",
			check: func(t *testing.T, b *Backend) {
				id, err := b.RegisterUser(context.Background(), "alice", "secret", "alice@x.com")
				require.NoError(t, err)
				assert.Positive(t, id)
			},
		},
		{
			name: "duplicate username returns ErrUsernameTaken and leaves the first row",
			check: func(t *testing.T, b *Backend) {
				ctx := context.Background()
				first, err := b.RegisterUser(ctx, "bob", "pw1", "bob@x.com")
				require.NoError(t, err)

				_, err = b.RegisterUser(ctx, "bob", "pw2", "x")
				assert.ErrorIs(t, err, types.ErrUsernameTaken)

				var password, contact string
				require.NoError(t, b.db.QueryRow(
					"SELECT password, contact_info FROM users WHERE id = ?", first,
				).Scan(&password, &contact))
				assert.Equal(t, "pw1", password)
				assert.Equal(t, "bob@x.com", contact)

				var count int
				require.NoError(t, b.db.QueryRow("SELECT COUNT(*) FROM users").Scan(&count))
				assert.Equal(t, 1, count)
			},
		},
		{
			name: "usernames differing only in case are distinct",
			check: func(t *testing.T, b *Backend) {
				ctx := context.Background()
				_, err := b.RegisterUser(ctx, "carol", "pw", "")
				require.NoError(t, err)
				_, err = b.RegisterUser(ctx, "Carol", "pw", "")
				assert.NoError(t, err)
			},
		},
		{
			name: "empty username is a validation failure",
			check: func(t *testing.T, b *Backend) {
				_, err := b.RegisterUser(context.Background(), "", "pw", "")
				assert.ErrorIs(t, err, types.ErrValidation)
				assert.ErrorIs(t, err, types.ErrInvalidUsername)
			},
		},
		{
			name: "plain scheme stores the password verbatim",
			check: func(t *testing.T, b *Backend) {
				id, err := b.RegisterUser(context.Background(), "dave", "hunter2", "")
				require.NoError(t, err)

				var stored string
				require.NoError(t, b.db.QueryRow("SELECT password FROM users WHERE id = ?", id).Scan(&stored))
				assert.Equal(t, "hunter2", stored)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.check(t, newTestBackend(t))
		})
	}
}

func TestAuthenticate(t *testing.T) {
	b := newTestBackend(t)
	ctx := context.Background()

	aliceID, err := b.RegisterUser(ctx, "alice", "secret", "alice@x.com")
	require.NoError(t, err)
	_, err = b.RegisterUser(ctx, "eve", "other", "")
	require.NoError(t, err)

	tests := []struct {
		name     string
		username string
		password string
		wantID   int64
		wantErr  error
	}{
		{name: "exact match", username: "alice", password: "secret", wantID: aliceID},
		{name: "wrong password", username: "alice", password: "wrong", wantErr: types.ErrNotFound},
		{name: "unknown user", username: "mallory", password: "secret", wantErr: types.ErrNotFound},
		{name: "username case differs", username: "Alice", password: "secret", wantErr: types.ErrNotFound},
		{name: "password case differs", username: "alice", password: "SECRET", wantErr: types.ErrNotFound},
		{name: "password of another user", username: "alice", password: "other", wantErr: types.ErrNotFound},
		{name: "empty credentials", username: "", password: "", wantErr: types.ErrNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			id, err := b.Authenticate(ctx, tt.username, tt.password)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Zero(t, id)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantID, id)
		})
	}
}

func TestAuthenticate_Bcrypt(t *testing.T) {
	b := attachTestBackend(t, types.Config{
		Backend:        types.BackendSQLite,
		DataDir:        t.TempDir(),
		PasswordScheme: types.PasswordBcrypt,
	})
	ctx := context.Background()

	id, err := b.RegisterUser(ctx, "alice", "secret", "alice@x.com")
	require.NoError(t, err)

	var stored string
	require.NoError(t, b.db.QueryRow("SELECT password FROM users WHERE id = ?", id).Scan(&stored))
	assert.NotEqual(t, "secret", stored)

	got, err := b.Authenticate(ctx, "alice", "secret")
	require.NoError(t, err)
	assert.Equal(t, id, got)

	_, err = b.Authenticate(ctx, "alice", "wrong")
	assert.ErrorIs(t, err, types.ErrNotFound)
	_, err = b.Authenticate(ctx, "nobody", "secret")
	assert.ErrorIs(t, err, types.ErrNotFound)

	_, err = b.RegisterUser(ctx, "alice", "again", "")
	assert.ErrorIs(t, err, types.ErrUsernameTaken)
}
