// Tests for driver error paths using sqlmock.
package sqlite

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/marketplace/pkg/types"
)

func newMockBackend(t *testing.T, opts ...Option) (*Backend, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	b := NewBackend(opts...)
	b.db = db
	b.config = types.Config{Backend: types.BackendSQLite}
	b.attached = true
	return b, mock
}

func TestSendMessage_StoresFormattedLocalTimestamp(t *testing.T) {
	now := time.Date(2026, 10, 18, 9, 30, 0, 0, time.Local)
	b, mock := newMockBackend(t, WithClock(func() time.Time { return now }))

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO messages (sender_id, receiver_id, item_id, message, timestamp)")).
		WithArgs(int64(1), int64(2), int64(3), "hi", "2026-10-18 09:30:00").
		WillReturnResult(sqlmock.NewResult(7, 1))

	msg, err := b.SendMessage(context.Background(), 1, 2, 3, "hi")
	require.NoError(t, err)
	assert.Equal(t, int64(7), msg.ID)
	assert.True(t, now.Equal(msg.SentAt))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateListing_PassesNormalizedArgs(t *testing.T) {
	b, mock := newMockBackend(t)

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO items (user_id, name, category, price, description)")).
		WithArgs(int64(4), "Chair", "Furniture", 25.0, "Wooden chair").
		WillReturnResult(sqlmock.NewResult(11, 1))

	id, err := b.CreateListing(context.Background(), 4, "Chair", "Furniture", 25.0, "Wooden chair")
	require.NoError(t, err)
	assert.Equal(t, int64(11), id)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSearchListings_EscapesWildcards(t *testing.T) {
	b, mock := newMockBackend(t)

	pattern := `%50\%\_off\\%`
	mock.ExpectQuery(regexp.QuoteMeta("FROM items WHERE name LIKE ?")).
		WithArgs(pattern, pattern, pattern).
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "name", "category", "price", "description"}))

	got, err := b.SearchListings(context.Background(), `50%_off\`)
	require.NoError(t, err)
	assert.Empty(t, got)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDriverErrorsAreWrappedNotTyped(t *testing.T) {
	tests := []struct {
		name  string
		setup func(mock sqlmock.Sqlmock)
		call  func(b *Backend) error
		want  string
	}{
		{
			name: "list query error",
			setup: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery("SELECT id").WillReturnError(errors.New("disk I/O error"))
			},
			call: func(b *Backend) error {
				_, err := b.ListAllListings(context.Background())
				return err
			},
			want: "disk I/O error",
		},
		{
			name: "listing row scan error",
			setup: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery("SELECT id").WillReturnRows(
					sqlmock.NewRows([]string{"id", "user_id", "name", "category", "price", "description"}).
						AddRow(1, 1, "Chair", "Furniture", "not-a-number", "x"))
			},
			call: func(b *Backend) error {
				_, err := b.ListAllListings(context.Background())
				return err
			},
			want: "hydrating listing",
		},
		{
			name: "inbox row iteration error",
			setup: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery("SELECT id").WillReturnRows(
					sqlmock.NewRows([]string{"id", "sender_id", "receiver_id", "item_id", "message", "timestamp"}).
						AddRow(1, 2, 3, 4, "hi", "2026-10-18 09:30:00").
						RowError(0, errors.New("connection reset")))
			},
			call: func(b *Backend) error {
				_, err := b.GetInbox(context.Background(), 3)
				return err
			},
			want: "connection reset",
		},
		{
			name: "inbox malformed timestamp",
			setup: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery("SELECT id").WillReturnRows(
					sqlmock.NewRows([]string{"id", "sender_id", "receiver_id", "item_id", "message", "timestamp"}).
						AddRow(1, 2, 3, 4, "hi", "yesterday"))
			},
			call: func(b *Backend) error {
				_, err := b.GetInbox(context.Background(), 3)
				return err
			},
			want: "parsing message timestamp",
		},
		{
			name: "register exec error",
			setup: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec("INSERT INTO users").WillReturnError(errors.New("read-only file system"))
			},
			call: func(b *Backend) error {
				_, err := b.RegisterUser(context.Background(), "alice", "pw", "")
				return err
			},
			want: "read-only file system",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b, mock := newMockBackend(t)
			tt.setup(mock)

			err := tt.call(b)
			require.Error(t, err)
			assert.ErrorContains(t, err, tt.want)
			assert.NotErrorIs(t, err, types.ErrStorageUnavailable)
			assert.NotErrorIs(t, err, types.ErrUsernameTaken)
			assert.NotErrorIs(t, err, types.ErrNotFound)
		})
	}
}

func TestClassify_NonSQLiteError(t *testing.T) {
	assert.Equal(t, failureOther, classify(errors.New("boom")))
	assert.Equal(t, failureOther, classify(nil))
}
