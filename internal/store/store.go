// Package store persists entity collections. Each collection is read and
// replaced as a whole JSON array, keyed by tenant and collection name; the
// engine never partially updates a collection. A failed write must leave the
// previously stored value intact.
package store

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/schoolbooks-dev/schoolbooks/internal/model"
)

// Collection names, one per entity type.
const (
	Categories  = "categories"
	Accounts    = "accounts"
	Overrides   = "overrides"
	Income      = "income"
	Expenditure = "expenditure"
	Vouchers    = "vouchers"
	Classes     = "classes"
	Students    = "students"
	FeePayments = "fee_payments"
)

// All lists every collection, in the order backups emit them.
var All = []string{
	Categories, Accounts, Overrides,
	Income, Expenditure, Vouchers,
	Classes, Students, FeePayments,
}

// Store reads and replaces whole collections for a tenant.
type Store interface {
	// Read returns the raw collection document, or nil if it was never written.
	Read(ctx context.Context, tenant, collection string) ([]byte, error)
	// Write replaces the collection document atomically.
	Write(ctx context.Context, tenant, collection string, data []byte) error
}

// Load reads and decodes a collection. An absent collection decodes as empty.
func Load[T any](ctx context.Context, s Store, tenant, collection string) ([]T, error) {
	raw, err := s.Read(ctx, tenant, collection)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w: %w", collection, model.ErrPersistence, err)
	}
	if len(raw) == 0 {
		return nil, nil
	}
	var items []T
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil, fmt.Errorf("decoding %s: %w: %w", collection, model.ErrPersistence, err)
	}
	return items, nil
}

// Save encodes and replaces a collection.
func Save[T any](ctx context.Context, s Store, tenant, collection string, items []T) error {
	if items == nil {
		items = []T{}
	}
	raw, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("encoding %s: %w: %w", collection, model.ErrPersistence, err)
	}
	if err := s.Write(ctx, tenant, collection, raw); err != nil {
		return fmt.Errorf("writing %s: %w: %w", collection, model.ErrPersistence, err)
	}
	return nil
}
