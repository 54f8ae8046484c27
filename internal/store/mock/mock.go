// Package mock provides an in-memory Store implementation for testing.
package mock

import (
	"context"
	"sort"
	"sync"

	"github.com/facegate/facegate/internal/store"
)

// MockStore is an in-memory store.Store with optional error injection.
type MockStore struct {
	mu         sync.RWMutex
	embeddings map[string]store.StoredEmbedding

	// Error injection.
	GetError    error
	SaveError   error
	DeleteError error
	CountError  error
	AllError    error
}

// NewMockStore creates an empty mock store.
func NewMockStore() *MockStore {
	return &MockStore{embeddings: make(map[string]store.StoredEmbedding)}
}

// Get retrieves a subject's embedding, nil when absent.
func (m *MockStore) Get(ctx context.Context, subjectID string) (*store.StoredEmbedding, error) {
	if m.GetError != nil {
		return nil, m.GetError
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	emb, ok := m.embeddings[subjectID]
	if !ok {
		return nil, nil
	}
	return &emb, nil
}

// Save stores a subject's embedding.
func (m *MockStore) Save(ctx context.Context, emb store.StoredEmbedding) error {
	if m.SaveError != nil {
		return m.SaveError
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.embeddings[emb.SubjectID] = emb
	return nil
}

// Delete removes a subject's embedding.
func (m *MockStore) Delete(ctx context.Context, subjectID string) error {
	if m.DeleteError != nil {
		return m.DeleteError
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.embeddings, subjectID)
	return nil
}

// Count returns the number of stored embeddings.
func (m *MockStore) Count(ctx context.Context) (int, error) {
	if m.CountError != nil {
		return 0, m.CountError
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.embeddings), nil
}

// All returns every stored embedding ordered by subject ID.
func (m *MockStore) All(ctx context.Context) ([]store.StoredEmbedding, error) {
	if m.AllError != nil {
		return nil, m.AllError
	}
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]store.StoredEmbedding, 0, len(m.embeddings))
	for _, emb := range m.embeddings {
		out = append(out, emb)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].SubjectID < out[j].SubjectID })
	return out, nil
}

// Verify interface compliance.
var _ store.Store = (*MockStore)(nil)
