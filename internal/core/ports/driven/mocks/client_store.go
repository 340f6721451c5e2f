package mocks

import (
	"context"
	"sync"

	"github.com/custodia-labs/safeaudit-core/internal/core/domain"
	"github.com/custodia-labs/safeaudit-core/internal/core/ports/driven"
)

var _ driven.ClientStore = (*MockClientStore)(nil)

// MockClientStore is an in-memory ClientStore for testing
type MockClientStore struct {
	mu      sync.RWMutex
	clients map[string]*domain.APIClient
}

// NewMockClientStore creates a new MockClientStore
func NewMockClientStore(clients ...*domain.APIClient) *MockClientStore {
	m := &MockClientStore{clients: make(map[string]*domain.APIClient)}
	for _, c := range clients {
		m.clients[c.ID] = c
	}
	return m
}

func (m *MockClientStore) Get(ctx context.Context, id string) (*domain.APIClient, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	c, ok := m.clients[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return c, nil
}
