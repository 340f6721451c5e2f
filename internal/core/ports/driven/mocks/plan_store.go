package mocks

import (
	"context"
	"sync"

	"github.com/custodia-labs/safeaudit-core/internal/core/ports/driven"
)

var _ driven.PlanStore = (*MockPlanStore)(nil)

// MockPlanStore is an in-memory PlanStore for testing
type MockPlanStore struct {
	mu    sync.RWMutex
	plans map[string][]byte

	Err error
}

// NewMockPlanStore creates a new MockPlanStore
func NewMockPlanStore() *MockPlanStore {
	return &MockPlanStore{plans: make(map[string][]byte)}
}

// Set stores raw plan JSON for a project
func (m *MockPlanStore) Set(projectID string, raw []byte) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.plans[projectID] = raw
}

func (m *MockPlanStore) GetMasterPlan(ctx context.Context, projectID string) ([]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.Err != nil {
		return nil, m.Err
	}
	return m.plans[projectID], nil
}
