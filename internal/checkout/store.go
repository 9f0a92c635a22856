package checkout

import (
	"context"
	"errors"
	"sync"
)

// ErrSessionNotFound is returned when no snapshot exists for an id.
var ErrSessionNotFound = errors.New("session not found")

// SessionStore persists session snapshots.
type SessionStore interface {
	Load(ctx context.Context, id string) (Snapshot, error)
	Save(ctx context.Context, snap Snapshot) error
	Delete(ctx context.Context, id string) error
}

// MemorySessionStore keeps snapshots in process memory.
type MemorySessionStore struct {
	mu       sync.RWMutex
	sessions map[string]Snapshot
}

// NewMemorySessionStore returns an empty in-memory store.
func NewMemorySessionStore() *MemorySessionStore {
	return &MemorySessionStore{sessions: make(map[string]Snapshot)}
}

func (m *MemorySessionStore) Load(_ context.Context, id string) (Snapshot, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	snap, ok := m.sessions[id]
	if !ok {
		return Snapshot{}, ErrSessionNotFound
	}
	return cloneSnapshot(snap), nil
}

func (m *MemorySessionStore) Save(_ context.Context, snap Snapshot) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sessions[snap.ID] = cloneSnapshot(snap)
	return nil
}

func (m *MemorySessionStore) Delete(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, id)
	return nil
}

func cloneSnapshot(snap Snapshot) Snapshot {
	out := snap
	out.Lines = append(snap.Lines[:0:0], snap.Lines...)
	if snap.LastCriteria != nil {
		criteria := *snap.LastCriteria
		criteria.SelectedCuisines = append([]string(nil), snap.LastCriteria.SelectedCuisines...)
		out.LastCriteria = &criteria
	}
	return out
}
