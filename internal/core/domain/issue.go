package domain

// Severity is the importance of a validation issue
type Severity string

const (
	SeverityError Severity = "error"
	SeverityWarn  Severity = "warn"
	SeverityInfo  Severity = "info"
)

// Stage names a pipeline stage that can emit issues
type Stage string

const (
	StageRuleCatalog   Stage = "rule_catalog"
	StagePlan          Stage = "structured_plan"
	StageRisk          Stage = "risk_matrix"
	StageCrossDocument Stage = "cross_document"
	StagePattern       Stage = "inspector_pattern"
	StageTBM           Stage = "tbm"
	StagePhoto         Stage = "photo"
)

// StageOrder is the fixed presentation order used when issues are merged
var StageOrder = []Stage{
	StageRuleCatalog,
	StagePlan,
	StageRisk,
	StageCrossDocument,
	StagePattern,
	StageTBM,
	StagePhoto,
}

// Order returns the position of the stage in StageOrder, or len(StageOrder) if unknown
func (s Stage) Order() int {
	for i, st := range StageOrder {
		if st == s {
			return i
		}
	}
	return len(StageOrder)
}

// ValidationIssue is one finding about a document.
// ID is empty until the aggregator assigns it; issues are not modified afterwards.
type ValidationIssue struct {
	ID          string   `json:"id"`
	Severity    Severity `json:"severity"`
	Title       string   `json:"title"`
	Message     string   `json:"message"`
	RuleID      string   `json:"rule_id"`
	Path        string   `json:"path"`
	IsAIFixable bool     `json:"is_ai_fixable"`
	Stage       Stage    `json:"stage"`
}

// IssueCounts tallies issues by severity
type IssueCounts struct {
	Error int `json:"error"`
	Warn  int `json:"warn"`
	Info  int `json:"info"`
}

// CountIssues tallies issues by severity
func CountIssues(issues []ValidationIssue) IssueCounts {
	var c IssueCounts
	for _, issue := range issues {
		switch issue.Severity {
		case SeverityError:
			c.Error++
		case SeverityWarn:
			c.Warn++
		case SeverityInfo:
			c.Info++
		}
	}
	return c
}
