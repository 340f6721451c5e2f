package domain

// CrossDocumentIssueType classifies findings across a project's history
type CrossDocumentIssueType string

const (
	CrossDocTimelineGap   CrossDocumentIssueType = "timeline-gap"
	CrossDocContradiction CrossDocumentIssueType = "contradiction"
	CrossDocRepetition    CrossDocumentIssueType = "repetition"
)

// CrossDocumentIssue is a finding spanning two or more reports
type CrossDocumentIssue struct {
	Type             CrossDocumentIssueType `json:"type"`
	Code             string                 `json:"code"`
	Severity         Severity               `json:"severity"`
	RelatedReportIDs []string               `json:"related_report_ids"`
	Details          string                 `json:"details"`
}
