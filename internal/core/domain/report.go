package domain

import "time"

// Report is a validated document as persisted by the caller
type Report struct {
	ID        string             `json:"id"`
	ProjectID string             `json:"project_id"`
	Document  NormalizedDocument `json:"document"`
	Issues    []ValidationIssue  `json:"issues"`
	Risk      *RiskCalculation   `json:"risk,omitempty"`
	// CompletionMinutes is copied from the submission when the client recorded it
	CompletionMinutes *float64  `json:"completion_minutes,omitempty"`
	CreatedAt         time.Time `json:"created_at"`
}

// SubmitReportRequest validates and persists a document in one call
type SubmitReportRequest struct {
	ValidationRequest
	CompletionMinutes *float64 `json:"completion_minutes,omitempty"`
}

// Projection returns the read-only history view of the report
func (r *Report) Projection() *HistoricalReport {
	var risk *RiskLevel
	if r.Document.RiskLevel != nil {
		level := *r.Document.RiskLevel
		risk = &level
	}
	checklist := make([]ChecklistItem, len(r.Document.Checklist))
	copy(checklist, r.Document.Checklist)

	return &HistoricalReport{
		ID:                r.ID,
		ProjectID:         r.ProjectID,
		CreatedAt:         r.CreatedAt,
		InspectorName:     r.Document.Inspector(),
		Checklist:         checklist,
		Fields:            r.Document.Fields,
		RiskLevel:         risk,
		CompletionMinutes: r.CompletionMinutes,
	}
}
