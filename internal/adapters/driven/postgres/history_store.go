package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/custodia-labs/safeaudit-core/internal/core/domain"
	"github.com/custodia-labs/safeaudit-core/internal/core/ports/driven"
)

// Verify interface compliance
var _ driven.HistoryStore = (*HistoryStore)(nil)

// HistoryStore reads the recent report history of a project
type HistoryStore struct {
	db *DB
}

// NewHistoryStore creates a new HistoryStore
func NewHistoryStore(db *DB) *HistoryStore {
	return &HistoryStore{db: db}
}

// ListRecent returns the newest reports matching q, oldest first
func (s *HistoryStore) ListRecent(ctx context.Context, q domain.HistoryQuery) ([]*domain.HistoricalReport, error) {
	limit := q.Limit
	if limit <= 0 {
		limit = 100
	}

	query := `
		SELECT id, project_id, created_at, inspector_name, inspection_date, site_name,
			work_description, risk_level, completion_minutes, document->'checklist'
		FROM reports
		WHERE project_id = $1
			AND ($2 = '' OR id <> $2)
			AND created_at >= $3
		ORDER BY created_at DESC
		LIMIT $4
	`

	rows, err := s.db.QueryContext(ctx, query, q.ProjectID, q.ExcludeReportID, q.Since, limit)
	if err != nil {
		return nil, fmt.Errorf("query history: %w", err)
	}
	defer rows.Close()

	var reports []*domain.HistoricalReport
	for rows.Next() {
		r, err := scanHistoricalReport(rows)
		if err != nil {
			return nil, err
		}
		reports = append(reports, r)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	// newest-first from the query; callers expect chronological order
	for i, j := 0, len(reports)-1; i < j; i, j = i+1, j-1 {
		reports[i], reports[j] = reports[j], reports[i]
	}
	return reports, nil
}

func scanHistoricalReport(rows *sql.Rows) (*domain.HistoricalReport, error) {
	var (
		r             domain.HistoricalReport
		date          sql.NullString
		site          sql.NullString
		work          sql.NullString
		riskLevel     sql.NullString
		minutes       sql.NullFloat64
		checklistJSON []byte
	)
	if err := rows.Scan(
		&r.ID,
		&r.ProjectID,
		&r.CreatedAt,
		&r.InspectorName,
		&date,
		&site,
		&work,
		&riskLevel,
		&minutes,
		&checklistJSON,
	); err != nil {
		return nil, err
	}

	r.Fields = domain.DocumentFields{
		InspectionDate:  StringPtr(date),
		SiteName:        StringPtr(site),
		WorkDescription: StringPtr(work),
	}
	r.RiskLevel = RiskLevelPtr(riskLevel)
	r.CompletionMinutes = FloatPtr(minutes)

	if len(checklistJSON) > 0 && string(checklistJSON) != "null" {
		if err := json.Unmarshal(checklistJSON, &r.Checklist); err != nil {
			return nil, fmt.Errorf("unmarshal checklist of report %s: %w", r.ID, err)
		}
	}
	return &r, nil
}
