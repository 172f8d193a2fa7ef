package sqlite_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/marketplace/pkg/sqlite"
	"github.com/mesh-intelligence/marketplace/pkg/types"
)

func TestNewBackend_ThroughInterface(t *testing.T) {
	var mp types.Marketplace = sqlite.NewBackend()
	require.NoError(t, mp.Attach(types.Config{Backend: types.BackendSQLite, DataDir: t.TempDir()}))
	defer mp.Detach()

	ctx := context.Background()
	require.NoError(t, mp.InitializeSchema(ctx))

	id, err := mp.RegisterUser(ctx, "bob", "pw1", "bob@x")
	require.NoError(t, err)
	got, err := mp.Authenticate(ctx, "bob", "pw1")
	require.NoError(t, err)
	assert.Equal(t, id, got)

	_, err = mp.CreateListing(ctx, id, "Chair", "Furniture", 25, "Wooden chair")
	require.NoError(t, err)
	listings, err := mp.SearchListings(ctx, "CHAIR")
	require.NoError(t, err)
	require.Len(t, listings, 1)
	assert.Equal(t, "Chair", listings[0].Name)
}

func TestNewBackend_NotAttached(t *testing.T) {
	mp := sqlite.NewBackend()
	_, err := mp.ListAllListings(context.Background())
	assert.ErrorIs(t, err, types.ErrDetached)
}
