package services

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/safeaudit-core/internal/core/domain"
	"github.com/custodia-labs/safeaudit-core/internal/core/ports/driven/mocks"
)

type recordingInvalidator struct {
	mu       sync.Mutex
	projects []string
	err      error
}

func (r *recordingInvalidator) Invalidate(ctx context.Context, projectID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.projects = append(r.projects, projectID)
	return r.err
}

func newTestReportService(t *testing.T) (*reportService, *mocks.MockReportStore, *mocks.MockHistoryStore, *recordingInvalidator) {
	t.Helper()
	p := newTestPipeline(t, true)
	store := mocks.NewMockReportStore()
	cache := &recordingInvalidator{}
	svc := NewReportService(ReportServiceConfig{
		Validator: p.svc,
		Reports:   store,
		Cache:     cache,
		Logger:    quietLogger(),
	}).(*reportService)
	return svc, store, p.history, cache
}

func TestReportService_Submit(t *testing.T) {
	svc, store, history, cache := newTestReportService(t)
	minutes := 12.5

	doc := validDocument()
	doc.Checklist[2].Value = domain.ValueUnchecked

	result, err := svc.Submit(context.Background(), domain.SubmitReportRequest{
		ValidationRequest: domain.ValidationRequest{
			ProjectID: "p1",
			Document:  doc,
		},
		CompletionMinutes: &minutes,
	})
	require.NoError(t, err)
	require.NotEmpty(t, result.ReportID)
	assert.Equal(t, 1, store.Count())
	assert.Equal(t, []string{"p1"}, cache.projects)
	assert.Equal(t, 2, history.Calls())

	report, err := svc.Get(context.Background(), result.ReportID)
	require.NoError(t, err)
	assert.Equal(t, "p1", report.ProjectID)
	assert.Equal(t, result.Issues, report.Issues)
	assert.Equal(t, &minutes, report.CompletionMinutes)
	assert.Equal(t, "Kim Minsu", report.Projection().InspectorName)
}

func TestReportService_Submit_KeepsCallerReportID(t *testing.T) {
	svc, _, _, _ := newTestReportService(t)

	result, err := svc.Submit(context.Background(), domain.SubmitReportRequest{
		ValidationRequest: domain.ValidationRequest{
			ReportID:  "r-42",
			ProjectID: "p1",
			Document:  validDocument(),
		},
	})
	require.NoError(t, err)
	assert.Equal(t, "r-42", result.ReportID)
}

func TestReportService_Submit_InvalidInput(t *testing.T) {
	svc, store, _, _ := newTestReportService(t)

	tests := []struct {
		name string
		req  domain.SubmitReportRequest
	}{
		{"no document", domain.SubmitReportRequest{ValidationRequest: domain.ValidationRequest{ProjectID: "p1"}}},
		{"no project", domain.SubmitReportRequest{ValidationRequest: domain.ValidationRequest{Document: validDocument()}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Submit(context.Background(), tt.req)
			assert.ErrorIs(t, err, domain.ErrInvalidInput)
		})
	}
	assert.Zero(t, store.Count())
}

func TestReportService_Submit_SaveError(t *testing.T) {
	svc, store, _, cache := newTestReportService(t)
	store.SaveErr = errors.New("disk full")

	_, err := svc.Submit(context.Background(), domain.SubmitReportRequest{
		ValidationRequest: domain.ValidationRequest{ProjectID: "p1", Document: validDocument()},
	})
	assert.ErrorContains(t, err, "disk full")
	assert.Empty(t, cache.projects)
}

func TestReportService_Submit_CacheErrorIsNotFatal(t *testing.T) {
	svc, store, _, cache := newTestReportService(t)
	cache.err = errors.New("redis down")

	_, err := svc.Submit(context.Background(), domain.SubmitReportRequest{
		ValidationRequest: domain.ValidationRequest{ProjectID: "p1", Document: validDocument()},
	})
	require.NoError(t, err)
	assert.Equal(t, 1, store.Count())
}

func TestReportService_Get(t *testing.T) {
	svc, _, _, _ := newTestReportService(t)

	_, err := svc.Get(context.Background(), "")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = svc.Get(context.Background(), "missing")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
