package crossdoc

import (
	"github.com/custodia-labs/safeaudit-core/internal/core/domain"
	"github.com/custodia-labs/safeaudit-core/internal/rules"
)

var titles = map[string]string{
	CodeTimelineGap:      "Gap in inspection timeline",
	CodeSiteRiskConflict: "Conflicting risk levels for the same site",
	CodeSameDateWork:     "Different work recorded on the same date",
	CodeRepeatedWork:     "Work description repeated across reports",
	CodeChecklistCopy:    "Identical checklists across reports",
}

var recommendations = map[string]string{
	CodeTimelineGap:      "Confirm whether work paused or inspections were skipped.",
	CodeSiteRiskConflict: "Review the site's risk assessment and align the reported levels.",
	CodeSameDateWork:     "Check that each report describes the work actually done that day.",
	CodeRepeatedWork:     "Make sure reports are written for each day rather than reused.",
	CodeChecklistCopy:    "Audit the listed reports for copied checklists.",
}

// ToIssues translates cross-document findings into validation issues
func ToIssues(found []domain.CrossDocumentIssue) []domain.ValidationIssue {
	if len(found) == 0 {
		return nil
	}
	issues := make([]domain.ValidationIssue, 0, len(found))
	for _, f := range found {
		title, ok := titles[f.Code]
		if !ok {
			title = "Cross-document finding"
		}
		issues = append(issues, domain.ValidationIssue{
			Severity: f.Severity,
			Title:    title,
			Message:  rules.FormatMessage(f.Details, recommendations[f.Code], "XDOC"),
			RuleID:   f.Code,
			Path:     "history",
			Stage:    domain.StageCrossDocument,
		})
	}
	return issues
}
