package driven

import "context"

// PlanStore looks up the master safety plan persisted on a project record
type PlanStore interface {
	// GetMasterPlan returns the raw plan JSON for a project.
	// A project without a plan returns nil bytes and no error.
	GetMasterPlan(ctx context.Context, projectID string) ([]byte, error)
}
