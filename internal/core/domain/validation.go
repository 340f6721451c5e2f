package domain

import "time"

// ValidationRequest is one inbound validation of a normalized document
type ValidationRequest struct {
	// ReportID is pre-generated by the caller so history reads can exclude the in-flight report
	ReportID  string               `json:"report_id,omitempty"`
	ProjectID string               `json:"project_id,omitempty"`
	Document  *NormalizedDocument  `json:"document" validate:"required"`
	TBM       *TBMContext          `json:"tbm,omitempty"`
	Photo     *PhotoAnalysisResult `json:"photo,omitempty"`
	// PhotoLabel names the document in photo cross-check messages
	PhotoLabel string `json:"photo_label,omitempty"`
}

// StageFailure records an optional stage that contributed nothing because it failed
type StageFailure struct {
	Stage  Stage  `json:"stage"`
	Reason string `json:"reason"`
}

// ValidationResult is everything the pipeline produced for one document
type ValidationResult struct {
	ReportID      string                 `json:"report_id"`
	ProjectID     string                 `json:"project_id,omitempty"`
	Issues        []ValidationIssue      `json:"issues"`
	Counts        IssueCounts            `json:"counts"`
	Risk          *RiskCalculation       `json:"risk,omitempty"`
	Inspector     *InspectorAnalysis     `json:"inspector,omitempty"`
	CrossDocument []CrossDocumentIssue   `json:"cross_document,omitempty"`
	Photo         *PhotoCrossCheckResult `json:"photo,omitempty"`
	StageFailures []StageFailure         `json:"stage_failures,omitempty"`
	Skipped       []Stage                `json:"skipped,omitempty"`
	Duration      float64                `json:"duration_seconds"`
	ValidatedAt   time.Time              `json:"validated_at"`
}

// HasErrors reports whether any issue has error severity
func (r *ValidationResult) HasErrors() bool {
	return r.Counts.Error > 0
}
