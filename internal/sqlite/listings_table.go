// Listing creation, browsing and keyword search.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/mesh-intelligence/marketplace/pkg/types"
)

const selectListings = `SELECT id, COALESCE(user_id, 0), COALESCE(name, ''), COALESCE(category, ''),
    COALESCE(price, 0), COALESCE(description, '') FROM items`

// likeEscaper escapes LIKE wildcards so a keyword matches literally.
var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// CreateListing inserts a listing row and returns its id. price must be a
// normalised, non-negative number.
func (b *Backend) CreateListing(ctx context.Context, ownerID int64, name, category string, price float64, description string) (int64, error) {
	if err := types.CheckPrice(price); err != nil {
		return 0, err
	}
	if price == 0 {
		price = 0
	}

	b.mu.RLock()
	defer b.mu.RUnlock()

	if !b.attached {
		return 0, types.ErrDetached
	}
	log := b.opLogger("create_listing")

	res, err := b.db.ExecContext(ctx,
		"INSERT INTO items (user_id, name, category, price, description) VALUES (?, ?, ?, ?, ?)",
		ownerID, name, category, price, description,
	)
	if err != nil {
		log.Warn(ctx, "create listing failed", "owner_id", ownerID, "error", err)
		return 0, storageError("creating listing", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("reading listing id: %w", err)
	}
	log.Debug(ctx, "listing created", "listing_id", id, "owner_id", ownerID)
	return id, nil
}

// ListAllListings returns every listing ordered by id.
func (b *Backend) ListAllListings(ctx context.Context) ([]*types.Listing, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	if !b.attached {
		return nil, types.ErrDetached
	}
	return b.queryListings(ctx, "listing all", selectListings+" ORDER BY id")
}

// SearchListings returns listings whose name, category or description
// contains keyword. Matching ignores ASCII case; wildcard characters in
// keyword match themselves.
func (b *Backend) SearchListings(ctx context.Context, keyword string) ([]*types.Listing, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	if !b.attached {
		return nil, types.ErrDetached
	}

	pattern := "%" + likeEscaper.Replace(keyword) + "%"
	query := selectListings + ` WHERE name LIKE ? ESCAPE '\'
    OR category LIKE ? ESCAPE '\'
    OR description LIKE ? ESCAPE '\'
    ORDER BY id`
	return b.queryListings(ctx, "searching listings", query, pattern, pattern, pattern)
}

func (b *Backend) queryListings(ctx context.Context, op, query string, args ...any) ([]*types.Listing, error) {
	rows, err := b.db.QueryContext(ctx, query, args...)
	if err != nil {
		b.log.Warn(ctx, "listing query failed", "op", op, "error", err)
		return nil, storageError(op, err)
	}
	defer rows.Close()

	results := []*types.Listing{}
	for rows.Next() {
		l, err := hydrateListing(rows)
		if err != nil {
			return nil, fmt.Errorf("hydrating listing: %w", err)
		}
		results = append(results, l)
	}
	if err := rows.Err(); err != nil {
		return nil, storageError(op, err)
	}
	return results, nil
}

func hydrateListing(rows *sql.Rows) (*types.Listing, error) {
	var l types.Listing
	if err := rows.Scan(&l.ID, &l.OwnerID, &l.Name, &l.Category, &l.Price, &l.Description); err != nil {
		return nil, err
	}
	return &l, nil
}
