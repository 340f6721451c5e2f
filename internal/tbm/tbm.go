// Package tbm checks that hazards discussed at the toolbox meeting are
// covered and confirmed on the document's checklist.
package tbm

import (
	"fmt"
	"strings"

	"github.com/custodia-labs/safeaudit-core/internal/core/domain"
	"github.com/custodia-labs/safeaudit-core/internal/hazard"
	"github.com/custodia-labs/safeaudit-core/internal/inspector"
	"github.com/custodia-labs/safeaudit-core/internal/rules"
)

const (
	RuleMissingCoverage   = "tbm_missing_coverage"
	RuleUnconfirmed       = "tbm_unconfirmed"
	RuleInspectorMismatch = "tbm_inspector_mismatch"
)

// Validate compares the briefing with the document
func Validate(doc *domain.NormalizedDocument, tbm *domain.TBMContext) []domain.ValidationIssue {
	if doc == nil || tbm == nil {
		return nil
	}

	var issues []domain.ValidationIssue
	for _, category := range hazard.BriefingCategories {
		mention, ok := firstMention(tbm.ExtractedHazards, category)
		if !ok {
			continue
		}

		matched, unchecked := 0, 0
		for _, item := range doc.Checklist {
			if !hazard.ItemInCategory(item, category) {
				continue
			}
			matched++
			if item.Value == domain.ValueUnchecked {
				unchecked++
			}
		}

		switch {
		case matched == 0:
			issues = append(issues, domain.ValidationIssue{
				Severity: domain.SeverityWarn,
				Title:    "Briefed hazard missing from checklist",
				Message: rules.FormatMessage(
					fmt.Sprintf("The toolbox meeting discussed %q (%s) but no checklist item covers it.", mention, category),
					"Add the matching checks to today's checklist.",
					"TBM-01",
				),
				RuleID: RuleMissingCoverage,
				Path:   "checklist",
				Stage:  domain.StageTBM,
			})
		case unchecked == matched:
			issues = append(issues, domain.ValidationIssue{
				Severity: domain.SeverityWarn,
				Title:    "Briefed hazard not confirmed",
				Message: rules.FormatMessage(
					fmt.Sprintf("The toolbox meeting discussed %q (%s) but every related checklist item is unchecked.", mention, category),
					"Confirm the controls discussed at the briefing are in place.",
					"TBM-02",
				),
				RuleID: RuleUnconfirmed,
				Path:   "checklist",
				Stage:  domain.StageTBM,
			})
		}
	}

	if issue, ok := inspectorMismatch(doc.Inspector(), domain.Deref(tbm.ExtractedInspector)); ok {
		issues = append(issues, issue)
	}
	return issues
}

func firstMention(hazards []string, category domain.HazardCategory) (string, bool) {
	for _, h := range hazards {
		if hazard.Mentions(h, category) {
			return strings.TrimSpace(h), true
		}
	}
	return "", false
}

// inspectorMismatch tolerates one name containing the other, so "Kim" matches "Kim Minsu"
func inspectorMismatch(docName, tbmName string) (domain.ValidationIssue, bool) {
	a, b := inspector.NormalizeName(docName), inspector.NormalizeName(tbmName)
	if a == "" || b == "" || strings.Contains(a, b) || strings.Contains(b, a) {
		return domain.ValidationIssue{}, false
	}
	return domain.ValidationIssue{
		Severity: domain.SeverityInfo,
		Title:    "Briefing led by a different inspector",
		Message: rules.FormatMessage(
			fmt.Sprintf("The toolbox meeting names %q as inspector but the document names %q.", tbmName, docName),
			"Confirm who carried out the inspection.",
			"TBM-03",
		),
		RuleID: RuleInspectorMismatch,
		Path:   "inspector_name",
		Stage:  domain.StageTBM,
	}, true
}
