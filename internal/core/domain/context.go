package domain

// TBMContext is what was extracted from a toolbox meeting transcript
type TBMContext struct {
	ExtractedHazards   []string `json:"extracted_hazards"`
	ExtractedInspector *string  `json:"extracted_inspector"`
	Summary            string   `json:"summary"`
}

// PhotoAnalysisResult is the checklist inferred from site photos
type PhotoAnalysisResult struct {
	Checklist []ChecklistItem `json:"checklist"`
}

// PhotoCrossCheckResult is the outcome of comparing a photo checklist with a document
type PhotoCrossCheckResult struct {
	Issues          []ValidationIssue `json:"issues"`
	MatchedCount    int               `json:"matched_count"`
	MismatchedCount int               `json:"mismatched_count"`
}

// PhotoCheckRequest compares a photo-derived checklist with a document checklist directly
type PhotoCheckRequest struct {
	PhotoChecklist    []ChecklistItem `json:"photo_checklist"`
	DocumentChecklist []ChecklistItem `json:"document_checklist"`
	DocumentLabel     string          `json:"document_label,omitempty"`
}
