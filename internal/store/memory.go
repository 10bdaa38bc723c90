package store

import (
	"context"
	"sync"
)

// Memory is an in-process Store. Reads are safe to run concurrently; writes
// replace documents under lock. Used by tests and by the importer's dry-run
// mode.
type Memory struct {
	mu   sync.RWMutex
	data map[string]map[string][]byte // tenant -> collection -> document

	// WriteErr, when set, makes every Write fail without touching stored
	// state. Tests use it to exercise fail-closed behavior.
	WriteErr error
}

// NewMemory creates an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{data: make(map[string]map[string][]byte)}
}

// Read returns the stored document, or nil if absent.
func (m *Memory) Read(_ context.Context, tenant, collection string) ([]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	doc, ok := m.data[tenant][collection]
	if !ok {
		return nil, nil
	}
	cp := make([]byte, len(doc))
	copy(cp, doc)
	return cp, nil
}

// Write replaces the stored document.
func (m *Memory) Write(_ context.Context, tenant, collection string, data []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.WriteErr != nil {
		return m.WriteErr
	}
	if m.data[tenant] == nil {
		m.data[tenant] = make(map[string][]byte)
	}
	cp := make([]byte, len(data))
	copy(cp, data)
	m.data[tenant][collection] = cp
	return nil
}
