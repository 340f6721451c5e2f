package driving

import (
	"context"

	"github.com/custodia-labs/safeaudit-core/internal/core/domain"
)

// ReportService validates documents and persists the results
type ReportService interface {
	// Submit validates the document and stores it with its issues
	Submit(ctx context.Context, req domain.SubmitReportRequest) (*domain.ValidationResult, error)

	// Get retrieves a stored report
	Get(ctx context.Context, id string) (*domain.Report, error)
}
