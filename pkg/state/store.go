// Package state persists per-source check state: the last fingerprint, HTTP
// validators and bookkeeping timestamps.
package state

import (
	"context"
	"sync"

	"github.com/kpus-tech/ai-updates-monitor/pkg/domain"
)

// Store is the durable per-source state contract. Get returns nil (not an
// error) for a source that was never seen. Put has single-key overwrite
// semantics: each source is processed by exactly one task per run, so last
// writer wins is acceptable.
type Store interface {
	Get(ctx context.Context, sourceID string) (*domain.SourceState, error)
	Put(ctx context.Context, st *domain.SourceState) error
	BatchGet(ctx context.Context, sourceIDs []string) (map[string]*domain.SourceState, error)
}

// MemoryStore keeps state in memory, used in tests and for dry runs
type MemoryStore struct {
	mu     sync.RWMutex
	states map[string]domain.SourceState
}

// NewMemoryStore creates an empty in-memory store
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{states: make(map[string]domain.SourceState)}
}

// Get returns the state for a source, nil when absent
func (m *MemoryStore) Get(_ context.Context, sourceID string) (*domain.SourceState, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if st, ok := m.states[sourceID]; ok {
		return &st, nil
	}
	return nil, nil
}

// Put stores the state for a source
func (m *MemoryStore) Put(_ context.Context, st *domain.SourceState) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.states[st.SourceID] = *st
	return nil
}

// BatchGet returns states for the given sources, missing keys are omitted
func (m *MemoryStore) BatchGet(_ context.Context, sourceIDs []string) (map[string]*domain.SourceState, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	result := make(map[string]*domain.SourceState, len(sourceIDs))
	for _, id := range sourceIDs {
		if st, ok := m.states[id]; ok {
			s := st
			result[id] = &s
		}
	}
	return result, nil
}
