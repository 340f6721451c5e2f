package mocks

import (
	"context"
	"sync"

	"github.com/custodia-labs/safeaudit-core/internal/core/domain"
	"github.com/custodia-labs/safeaudit-core/internal/core/ports/driven"
)

var _ driven.ReportStore = (*MockReportStore)(nil)

// MockReportStore is an in-memory ReportStore for testing
type MockReportStore struct {
	mu      sync.RWMutex
	reports map[string]*domain.Report

	SaveErr error
}

// NewMockReportStore creates a new MockReportStore
func NewMockReportStore() *MockReportStore {
	return &MockReportStore{reports: make(map[string]*domain.Report)}
}

func (m *MockReportStore) Save(ctx context.Context, report *domain.Report) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.SaveErr != nil {
		return m.SaveErr
	}
	m.reports[report.ID] = report
	return nil
}

func (m *MockReportStore) Get(ctx context.Context, id string) (*domain.Report, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	report, ok := m.reports[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return report, nil
}

// Count returns the number of stored reports
func (m *MockReportStore) Count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.reports)
}
