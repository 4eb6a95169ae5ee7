package session

import (
	"context"
	"sync"
)

// MemoryStore keeps snapshots for the life of the process. It backs the UI
// when no Redis is configured, so restore works across tab reloads but not
// across runs.
type MemoryStore struct {
	mu    sync.Mutex
	snaps map[string]Snapshot
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{snaps: make(map[string]Snapshot)}
}

func (m *MemoryStore) Load(_ context.Context, name string) (Snapshot, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	snap, ok := m.snaps[Key(name)]
	return snap, ok, nil
}

func (m *MemoryStore) Save(_ context.Context, name string, snap Snapshot) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.snaps[Key(name)] = snap
	return nil
}

func (m *MemoryStore) Clear(_ context.Context, name string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.snaps, Key(name))
	return nil
}

func (m *MemoryStore) Close() error {
	return nil
}
