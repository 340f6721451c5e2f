package domain

// PatternType identifies a suspicious inspector behaviour
type PatternType string

const (
	PatternAlwaysCheck     PatternType = "always-check"
	PatternCopyPaste       PatternType = "copy-paste"
	PatternRapidCompletion PatternType = "rapid-completion"
)

// BasePoints returns the score contribution of the pattern at full confidence
func (p PatternType) BasePoints() float64 {
	switch p {
	case PatternAlwaysCheck:
		return 50
	case PatternCopyPaste:
		return 30
	case PatternRapidCompletion:
		return 20
	default:
		return 0
	}
}

// PatternWarning is one fired pattern for an inspector
type PatternWarning struct {
	Type          PatternType `json:"type"`
	Severity      Severity    `json:"severity"`
	Confidence    int         `json:"confidence"`
	Score         float64     `json:"score"`
	InspectorName string      `json:"inspector_name"`
	DocumentCount int         `json:"document_count"`
	// Statistic is the rate or count that triggered the pattern
	Statistic float64 `json:"statistic"`
	Details   string  `json:"details"`
}

// InspectorAnalysis is the result of analysing one inspector's history
type InspectorAnalysis struct {
	InspectorName  string           `json:"inspector_name"`
	NormalizedName string           `json:"normalized_name"`
	DocumentCount  int              `json:"document_count"`
	Warnings       []PatternWarning `json:"warnings"`
	Score          float64          `json:"score"`
	RiskLevel      RiskLevel        `json:"risk_level"`
}
