package mocks

import (
	"context"
	"sort"
	"sync"

	"github.com/custodia-labs/safeaudit-core/internal/core/domain"
	"github.com/custodia-labs/safeaudit-core/internal/core/ports/driven"
)

var _ driven.HistoryStore = (*MockHistoryStore)(nil)

// MockHistoryStore is an in-memory HistoryStore for testing
type MockHistoryStore struct {
	mu      sync.RWMutex
	reports map[string][]*domain.HistoricalReport
	calls   int

	// Err, when set, is returned by every ListRecent call
	Err error
	// Block makes ListRecent wait for ctx cancellation
	Block bool
}

// NewMockHistoryStore creates a new MockHistoryStore
func NewMockHistoryStore() *MockHistoryStore {
	return &MockHistoryStore{
		reports: make(map[string][]*domain.HistoricalReport),
	}
}

// Add stores reports under their project
func (m *MockHistoryStore) Add(reports ...*domain.HistoricalReport) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, r := range reports {
		m.reports[r.ProjectID] = append(m.reports[r.ProjectID], r)
	}
}

func (m *MockHistoryStore) ListRecent(ctx context.Context, q domain.HistoryQuery) ([]*domain.HistoricalReport, error) {
	m.mu.Lock()
	m.calls++
	block, err := m.Block, m.Err
	m.mu.Unlock()

	if block {
		<-ctx.Done()
		return nil, ctx.Err()
	}
	if err != nil {
		return nil, err
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	var result []*domain.HistoricalReport
	for _, r := range m.reports[q.ProjectID] {
		if r.ID == q.ExcludeReportID {
			continue
		}
		if !q.Since.IsZero() && r.CreatedAt.Before(q.Since) {
			continue
		}
		result = append(result, r)
	}
	sort.SliceStable(result, func(i, j int) bool {
		return result[i].CreatedAt.Before(result[j].CreatedAt)
	})
	if q.Limit > 0 && len(result) > q.Limit {
		result = result[len(result)-q.Limit:]
	}
	return result, nil
}

// Calls returns how many times ListRecent was invoked
func (m *MockHistoryStore) Calls() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.calls
}
