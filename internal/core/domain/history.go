package domain

import "time"

// HistoricalReport is the read-only projection of a persisted report used by
// the cross-document and inspector pattern analyzers
type HistoricalReport struct {
	ID            string          `json:"id"`
	ProjectID     string          `json:"project_id"`
	CreatedAt     time.Time       `json:"created_at"`
	InspectorName string          `json:"inspector_name"`
	Checklist     []ChecklistItem `json:"checklist"`
	Fields        DocumentFields  `json:"fields"`
	RiskLevel     *RiskLevel      `json:"risk_level,omitempty"`
	// CompletionMinutes is the recorded time between opening and submitting the form
	CompletionMinutes *float64 `json:"completion_minutes,omitempty"`
}

// HistoryQuery bounds a history read to a recent window of one project
type HistoryQuery struct {
	ProjectID       string
	ExcludeReportID string
	Since           time.Time
	Limit           int
}
