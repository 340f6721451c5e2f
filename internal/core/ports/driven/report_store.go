package driven

import (
	"context"

	"github.com/custodia-labs/safeaudit-core/internal/core/domain"
)

// ReportStore persists validated reports and their issues (PostgreSQL)
type ReportStore interface {
	// Save stores a report together with its issues
	Save(ctx context.Context, report *domain.Report) error

	// Get retrieves a report with its issues by ID
	Get(ctx context.Context, id string) (*domain.Report, error)
}
