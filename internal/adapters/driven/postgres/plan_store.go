package postgres

import (
	"context"
	"database/sql"

	"github.com/custodia-labs/safeaudit-core/internal/core/domain"
	"github.com/custodia-labs/safeaudit-core/internal/core/ports/driven"
)

// Verify interface compliance
var _ driven.PlanStore = (*PlanStore)(nil)

// PlanStore reads master safety plans from the projects table
type PlanStore struct {
	db *DB
}

// NewPlanStore creates a new PlanStore
func NewPlanStore(db *DB) *PlanStore {
	return &PlanStore{db: db}
}

// GetMasterPlan returns the raw plan JSON. A project without a plan returns
// nil bytes; an unknown project returns domain.ErrNotFound.
func (s *PlanStore) GetMasterPlan(ctx context.Context, projectID string) ([]byte, error) {
	var plan []byte
	err := s.db.QueryRowContext(ctx, `SELECT master_plan FROM projects WHERE id = $1`, projectID).Scan(&plan)
	if err == sql.ErrNoRows {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return plan, nil
}

// SaveMasterPlan creates the project if needed and replaces its plan
func (s *PlanStore) SaveMasterPlan(ctx context.Context, projectID string, plan []byte) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO projects (id, master_plan)
		VALUES ($1, $2)
		ON CONFLICT (id) DO UPDATE SET
			master_plan = EXCLUDED.master_plan,
			updated_at = NOW()
	`, projectID, plan)
	return err
}
