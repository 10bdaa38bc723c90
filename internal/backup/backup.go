// Package backup exports and restores a tenant's complete book as a single
// JSON document. A restore replaces every collection; callers must confirm
// before invoking it.
package backup

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/schoolbooks-dev/schoolbooks/internal/store"
)

// FormatVersion is bumped whenever the archive layout changes.
const FormatVersion = 1

// Archive is the on-disk backup document. Collections holds the raw JSON
// array for each collection name; collections never written are absent.
type Archive struct {
	Version     int                        `json:"version"`
	Tenant      string                     `json:"tenant"`
	ExportedAt  time.Time                  `json:"exported_at"`
	Collections map[string]json.RawMessage `json:"collections"`
}

// Export snapshots every collection for the tenant.
func Export(ctx context.Context, s store.Store, tenant string) (*Archive, error) {
	a := &Archive{
		Version:     FormatVersion,
		Tenant:      tenant,
		ExportedAt:  time.Now().UTC(),
		Collections: make(map[string]json.RawMessage, len(store.All)),
	}
	for _, name := range store.All {
		raw, err := s.Read(ctx, tenant, name)
		if err != nil {
			return nil, fmt.Errorf("exporting %s: %w", name, err)
		}
		if raw == nil {
			continue
		}
		a.Collections[name] = json.RawMessage(raw)
	}
	return a, nil
}

// Restore replaces the tenant's collections with the archive's contents.
// Collections absent from the archive are cleared so the restored book
// matches the snapshot exactly.
func Restore(ctx context.Context, s store.Store, tenant string, a *Archive) error {
	if a.Version > FormatVersion {
		return fmt.Errorf("backup format version %d is newer than this build supports (%d)", a.Version, FormatVersion)
	}
	for _, name := range store.All {
		raw, ok := a.Collections[name]
		if !ok {
			raw = json.RawMessage("[]")
		}
		if err := s.Write(ctx, tenant, name, raw); err != nil {
			return fmt.Errorf("restoring %s: %w", name, err)
		}
	}
	return nil
}

// Encode renders the archive as indented JSON for writing to a file.
func Encode(a *Archive) ([]byte, error) {
	data, err := json.MarshalIndent(a, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encoding backup: %w", err)
	}
	return data, nil
}

// Decode parses an archive file produced by Encode.
func Decode(data []byte) (*Archive, error) {
	var a Archive
	if err := json.Unmarshal(data, &a); err != nil {
		return nil, fmt.Errorf("decoding backup: %w", err)
	}
	return &a, nil
}
