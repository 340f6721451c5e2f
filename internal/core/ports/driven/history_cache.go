package driven

import "context"

// HistoryInvalidator drops cached history for a project after a new report is stored
type HistoryInvalidator interface {
	Invalidate(ctx context.Context, projectID string) error
}
