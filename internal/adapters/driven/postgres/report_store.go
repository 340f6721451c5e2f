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
var _ driven.ReportStore = (*ReportStore)(nil)

// ReportStore implements driven.ReportStore using PostgreSQL.
// The document is stored whole as JSONB; the header fields used by history
// queries are denormalized into columns, and issues go to report_issues.
type ReportStore struct {
	db *DB
}

// NewReportStore creates a new ReportStore
func NewReportStore(db *DB) *ReportStore {
	return &ReportStore{db: db}
}

// Save inserts a report and its issues in one transaction
func (s *ReportStore) Save(ctx context.Context, report *domain.Report) error {
	documentJSON, err := json.Marshal(report.Document)
	if err != nil {
		return fmt.Errorf("marshal document: %w", err)
	}

	// risk stays SQL NULL when the calculation is absent
	var riskJSON any
	if report.Risk != nil {
		data, err := json.Marshal(report.Risk)
		if err != nil {
			return fmt.Errorf("marshal risk: %w", err)
		}
		riskJSON = data
	}

	return s.db.Transaction(ctx, func(tx *sql.Tx) error {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO reports (id, project_id, doc_type, inspector_name, inspection_date, site_name,
				work_description, risk_level, completion_minutes, document, risk, created_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		`,
			report.ID,
			report.ProjectID,
			string(report.Document.DocType),
			report.Document.Inspector(),
			NullString(report.Document.Fields.InspectionDate),
			NullString(report.Document.Fields.SiteName),
			NullString(report.Document.Fields.WorkDescription),
			NullRiskLevel(report.Document.RiskLevel),
			NullFloat(report.CompletionMinutes),
			documentJSON,
			riskJSON,
			report.CreatedAt,
		)
		if err != nil {
			return fmt.Errorf("insert report: %w", err)
		}

		stmt, err := tx.PrepareContext(ctx, `
			INSERT INTO report_issues (id, report_id, position, severity, title, message, rule_id, path, is_ai_fixable, stage)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		`)
		if err != nil {
			return fmt.Errorf("prepare issue insert: %w", err)
		}
		defer stmt.Close()

		for i, issue := range report.Issues {
			if _, err := stmt.ExecContext(ctx,
				issue.ID,
				report.ID,
				i,
				string(issue.Severity),
				issue.Title,
				issue.Message,
				issue.RuleID,
				issue.Path,
				issue.IsAIFixable,
				string(issue.Stage),
			); err != nil {
				return fmt.Errorf("insert issue %s: %w", issue.RuleID, err)
			}
		}
		return nil
	})
}

// Get retrieves a report with its issues in their stored order
func (s *ReportStore) Get(ctx context.Context, id string) (*domain.Report, error) {
	var (
		report       domain.Report
		documentJSON []byte
		riskJSON     []byte
		minutes      sql.NullFloat64
	)

	err := s.db.QueryRowContext(ctx, `
		SELECT id, project_id, completion_minutes, document, risk, created_at
		FROM reports
		WHERE id = $1
	`, id).Scan(
		&report.ID,
		&report.ProjectID,
		&minutes,
		&documentJSON,
		&riskJSON,
		&report.CreatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	if err := json.Unmarshal(documentJSON, &report.Document); err != nil {
		return nil, fmt.Errorf("unmarshal document: %w", err)
	}
	if len(riskJSON) > 0 {
		var risk domain.RiskCalculation
		if err := json.Unmarshal(riskJSON, &risk); err != nil {
			return nil, fmt.Errorf("unmarshal risk: %w", err)
		}
		report.Risk = &risk
	}
	report.CompletionMinutes = FloatPtr(minutes)

	issues, err := s.issues(ctx, id)
	if err != nil {
		return nil, err
	}
	report.Issues = issues
	return &report, nil
}

func (s *ReportStore) issues(ctx context.Context, reportID string) ([]domain.ValidationIssue, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, severity, title, message, rule_id, path, is_ai_fixable, stage
		FROM report_issues
		WHERE report_id = $1
		ORDER BY position
	`, reportID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	issues := []domain.ValidationIssue{}
	for rows.Next() {
		var issue domain.ValidationIssue
		if err := rows.Scan(
			&issue.ID,
			&issue.Severity,
			&issue.Title,
			&issue.Message,
			&issue.RuleID,
			&issue.Path,
			&issue.IsAIFixable,
			&issue.Stage,
		); err != nil {
			return nil, err
		}
		issues = append(issues, issue)
	}
	return issues, rows.Err()
}
