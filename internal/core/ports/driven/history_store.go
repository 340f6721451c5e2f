package driven

import (
	"context"

	"github.com/custodia-labs/safeaudit-core/internal/core/domain"
)

// HistoryStore reads the persisted report history of a project.
// Reads are bounded by HistoryQuery and never mutate anything.
type HistoryStore interface {
	// ListRecent returns reports created at or after q.Since, oldest first,
	// at most q.Limit of them, excluding q.ExcludeReportID
	ListRecent(ctx context.Context, q domain.HistoryQuery) ([]*domain.HistoricalReport, error)
}
