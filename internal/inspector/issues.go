package inspector

import (
	"fmt"

	"github.com/custodia-labs/safeaudit-core/internal/core/domain"
	"github.com/custodia-labs/safeaudit-core/internal/rules"
)

const (
	RuleAlwaysCheck     = "pattern_always_check"
	RuleCopyPaste       = "pattern_copy_paste"
	RuleRapidCompletion = "pattern_rapid_completion"
)

type patternText struct {
	ruleID         string
	title          string
	recommendation string
}

var patternTexts = map[domain.PatternType]patternText{
	domain.PatternAlwaysCheck: {
		ruleID:         RuleAlwaysCheck,
		title:          "Inspector marks nearly everything checked",
		recommendation: "Schedule an unannounced joint inspection with this inspector.",
	},
	domain.PatternCopyPaste: {
		ruleID:         RuleCopyPaste,
		title:          "Inspector reuses identical checklists",
		recommendation: "Compare the copied reports against site photos or attendance records.",
	},
	domain.PatternRapidCompletion: {
		ruleID:         RuleRapidCompletion,
		title:          "Inspections completed unusually fast",
		recommendation: "Check that inspections are carried out on site rather than filled in afterwards.",
	},
}

// ToIssues translates the fired patterns into validation issues
func ToIssues(analysis *domain.InspectorAnalysis) []domain.ValidationIssue {
	if analysis == nil || len(analysis.Warnings) == 0 {
		return nil
	}

	issues := make([]domain.ValidationIssue, 0, len(analysis.Warnings))
	for _, w := range analysis.Warnings {
		text, ok := patternTexts[w.Type]
		if !ok {
			continue
		}
		body := fmt.Sprintf("%s (inspector %q, confidence %d%%)", w.Details, w.InspectorName, w.Confidence)
		issues = append(issues, domain.ValidationIssue{
			Severity: w.Severity,
			Title:    text.title,
			Message:  rules.FormatMessage(body, text.recommendation, "INSP"),
			RuleID:   text.ruleID,
			Path:     "inspector_name",
			Stage:    domain.StagePattern,
		})
	}
	return issues
}
