// Package sqlite provides the public API for the SQLite marketplace
// backend. It exposes the factory while keeping implementation details
// internal.
package sqlite

import (
	"github.com/mesh-intelligence/marketplace/internal/sqlite"
	"github.com/mesh-intelligence/marketplace/pkg/types"
)

// NewBackend creates a new SQLite backend instance.
// The backend is not attached; call Attach with a Config to initialize.
//
// Example:
//
//	mp := sqlite.NewBackend()
//	err := mp.Attach(types.Config{
//	    Backend: types.BackendSQLite,
//	    DataDir: ".marketplace-db",
//	})
//	defer mp.Detach()
func NewBackend() types.Marketplace {
	return sqlite.NewBackend()
}
