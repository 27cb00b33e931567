package store

import (
	"context"
	"errors"
	"sync"
)

// ErrInjected is the failure returned by a MemoryStore put hook that has no
// more specific error to report.
var ErrInjected = errors.New("injected store failure")

// PutHook is consulted before every Put; a non-nil error aborts the write.
type PutHook func(ns Namespace, key string) error

// DeleteHook is consulted before every Delete; returning false refuses it.
type DeleteHook func(ns Namespace, key string) bool

// MemoryStore implements Store using in-memory maps. Failure hooks let tests
// reproduce a full or unwritable medium at precise points of a multi-step
// operation.
type MemoryStore struct {
	mu         sync.RWMutex
	slots      map[Namespace]map[string][]byte
	putHook    PutHook
	deleteHook DeleteHook
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{slots: make(map[Namespace]map[string][]byte)}
}

// SetPutHook installs h as the put failure hook; nil removes it.
func (m *MemoryStore) SetPutHook(h PutHook) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.putHook = h
}

// SetDeleteHook installs h as the delete hook; nil removes it.
func (m *MemoryStore) SetDeleteHook(h DeleteHook) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.deleteHook = h
}

// FailPuts makes every Put into ns fail until the hook is cleared.
func (m *MemoryStore) FailPuts(ns Namespace) {
	m.SetPutHook(func(n Namespace, _ string) error {
		if n == ns {
			return ErrInjected
		}
		return nil
	})
}

// Put stores a copy of data under ns/key.
func (m *MemoryStore) Put(ctx context.Context, ns Namespace, key string, data []byte) error {
	if err := ctx.Err(); err != nil {
		return Persistence("put", err)
	}
	if !ValidKey(key) {
		return ErrInvalidKey
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.putHook != nil {
		if err := m.putHook(ns, key); err != nil {
			return Persistence("put "+string(ns), err)
		}
	}
	bucket, ok := m.slots[ns]
	if !ok {
		bucket = make(map[string][]byte)
		m.slots[ns] = bucket
	}
	bucket[key] = append([]byte(nil), data...)
	return nil
}

// Get returns a copy of the content stored under ns/key.
func (m *MemoryStore) Get(_ context.Context, ns Namespace, key string) ([]byte, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	data, ok := m.slots[ns][key]
	if !ok {
		return nil, false
	}
	return append([]byte(nil), data...), true
}

// Delete removes ns/key.
func (m *MemoryStore) Delete(_ context.Context, ns Namespace, key string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.deleteHook != nil && !m.deleteHook(ns, key) {
		return false
	}
	if _, ok := m.slots[ns][key]; !ok {
		return false
	}
	delete(m.slots[ns], key)
	return true
}

// List returns copies of every slot in ns.
func (m *MemoryStore) List(_ context.Context, ns Namespace) [][]byte {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([][]byte, 0, len(m.slots[ns]))
	for _, data := range m.slots[ns] {
		out = append(out, append([]byte(nil), data...))
	}
	return out
}

// Len returns the number of slots in ns.
func (m *MemoryStore) Len(ns Namespace) int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.slots[ns])
}
