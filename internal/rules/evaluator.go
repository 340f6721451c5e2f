// Package rules evaluates the declarative rule catalog against a single
// normalized document. Evaluation is pure: no I/O and no shared state, so an
// Evaluator can be used from any number of goroutines.
package rules

import (
	"fmt"

	"github.com/custodia-labs/safeaudit-core/internal/core/domain"
	"github.com/custodia-labs/safeaudit-core/internal/hazard"
)

// Evaluator runs the rule catalog with a fixed threshold set
type Evaluator struct {
	thresholds domain.Thresholds
}

// NewEvaluator validates the thresholds and returns an evaluator
func NewEvaluator(thresholds domain.Thresholds) (*Evaluator, error) {
	if err := thresholds.Validate(); err != nil {
		return nil, fmt.Errorf("rule catalog: %w", err)
	}
	return &Evaluator{thresholds: thresholds}, nil
}

// Thresholds returns the configuration the evaluator was built with
func (e *Evaluator) Thresholds() domain.Thresholds {
	return e.thresholds
}

// Evaluate returns every rule finding for the document, in catalog order.
// A nil document yields no findings.
func (e *Evaluator) Evaluate(doc *domain.NormalizedDocument) []domain.ValidationIssue {
	if doc == nil {
		return nil
	}

	idx := newChecklistIndex(doc.Checklist)

	var issues []domain.ValidationIssue
	issues = append(issues, e.safetyViolations(idx)...)
	issues = append(issues, e.contradictions(idx)...)
	issues = append(issues, e.suspiciousPatterns(idx)...)
	issues = append(issues, e.completeness(idx)...)
	issues = append(issues, e.fieldCompleteness(doc)...)
	return issues
}

// checklistIndex is the checklist grouped by classified hazard kind
type checklistIndex struct {
	items  []domain.ChecklistItem
	kinds  []domain.HazardKind
	byKind map[domain.HazardKind][]int
}

func newChecklistIndex(items []domain.ChecklistItem) *checklistIndex {
	idx := &checklistIndex{
		items:  items,
		kinds:  hazard.ClassifyAll(items),
		byKind: make(map[domain.HazardKind][]int),
	}
	for i, k := range idx.kinds {
		idx.byKind[k] = append(idx.byKind[k], i)
	}
	return idx
}

// state collapses all items of a kind into one value.
// Precedence is checked, unchecked, not-applicable, null; ok is false when no item has the kind.
func (idx *checklistIndex) state(kind domain.HazardKind) (value domain.ChecklistValue, pos int, ok bool) {
	positions := idx.byKind[kind]
	if len(positions) == 0 {
		return "", -1, false
	}

	best := -1
	pos = positions[0]
	for _, p := range positions {
		if r := valueRank(idx.items[p].Value); r > best {
			best = r
			pos = p
		}
	}
	return idx.items[pos].Value, pos, true
}

func valueRank(v domain.ChecklistValue) int {
	switch v {
	case domain.ValueChecked:
		return 3
	case domain.ValueUnchecked:
		return 2
	case domain.ValueNotApplicable:
		return 1
	default:
		return 0
	}
}

func (idx *checklistIndex) has(kind domain.HazardKind) bool {
	return len(idx.byKind[kind]) > 0
}

func (idx *checklistIndex) count(v domain.ChecklistValue) int {
	n := 0
	for _, item := range idx.items {
		if item.Value == v {
			n++
		}
	}
	return n
}

func itemPath(pos int) string {
	return fmt.Sprintf("checklist[%d]", pos)
}

func itemLabel(item domain.ChecklistItem) string {
	if item.DisplayName != "" {
		return item.DisplayName
	}
	return item.ID
}

func (e *Evaluator) safetyViolations(idx *checklistIndex) []domain.ValidationIssue {
	var issues []domain.ValidationIssue
	for _, pr := range pairRules {
		hazardValue, hazardPos, ok := idx.state(pr.pair.Indicator)
		if !ok || hazardValue != domain.ValueChecked {
			continue
		}

		mitigationValue, mitigationPos, present := idx.state(pr.pair.Mitigation)
		var body, path string
		switch {
		case !present:
			body = fmt.Sprintf("The checklist records %s but has no %s item.", pr.hazardLabel, pr.controlLabel)
			path = itemPath(hazardPos)
		case mitigationValue == domain.ValueUnchecked:
			body = fmt.Sprintf("The checklist records %s but %s is marked as not in place.", pr.hazardLabel, pr.controlLabel)
			path = itemPath(mitigationPos)
		default:
			continue
		}

		issues = append(issues, domain.ValidationIssue{
			Severity: domain.SeverityError,
			Title:    fmt.Sprintf("Missing %s for %s", pr.controlLabel, pr.hazardLabel),
			Message:  FormatMessage(body, pr.recommendFix, pr.ref),
			RuleID:   pr.violationID,
			Path:     path,
			Stage:    domain.StageRuleCatalog,
		})
	}
	return issues
}

func (e *Evaluator) contradictions(idx *checklistIndex) []domain.ValidationIssue {
	var issues []domain.ValidationIssue
	for _, pr := range pairRules {
		hazardValue, _, ok := idx.state(pr.pair.Indicator)
		if !ok || hazardValue != domain.ValueUnchecked {
			continue
		}
		mitigationValue, mitigationPos, ok := idx.state(pr.pair.Mitigation)
		if !ok || mitigationValue != domain.ValueChecked {
			continue
		}

		issues = append(issues, domain.ValidationIssue{
			Severity: domain.SeverityWarn,
			Title:    fmt.Sprintf("Contradiction: %s without %s", pr.controlLabel, pr.hazardLabel),
			Message: FormatMessage(
				fmt.Sprintf("%s is marked in place while %s is marked as not taking place.", pr.controlLabel, pr.hazardLabel),
				fmt.Sprintf("Check whether %s is actually happening and correct one of the two items.", pr.hazardLabel),
				pr.ref,
			),
			RuleID: pr.contradictID,
			Path:   itemPath(mitigationPos),
			Stage:  domain.StageRuleCatalog,
		})
	}
	return issues
}

// isCritical reports whether N/A on this kind is suspicious
func isCritical(kind domain.HazardKind) bool {
	return kind.IsMitigation() || kind == domain.HazardHelmet
}

func (e *Evaluator) suspiciousPatterns(idx *checklistIndex) []domain.ValidationIssue {
	var issues []domain.ValidationIssue
	for i, item := range idx.items {
		if item.Value != domain.ValueNotApplicable || !isCritical(idx.kinds[i]) {
			continue
		}
		issues = append(issues, domain.ValidationIssue{
			Severity: domain.SeverityWarn,
			Title:    "Critical safety item marked not applicable",
			Message: FormatMessage(
				fmt.Sprintf("%q is a critical control and should not be marked not applicable.", itemLabel(item)),
				"Confirm on site whether the control is required and record checked or unchecked.",
				"CHK-01",
			),
			RuleID: RuleSuspiciousCriticalNA,
			Path:   itemPath(i),
			Stage:  domain.StageRuleCatalog,
		})
	}

	total := len(idx.items)
	if total == 0 {
		return issues
	}
	na := idx.count(domain.ValueNotApplicable)
	ratio := float64(na) / float64(total)
	if ratio > e.thresholds.NAThreshold {
		issues = append(issues, domain.ValidationIssue{
			Severity: domain.SeverityWarn,
			Title:    "Too many items marked not applicable",
			Message: FormatMessage(
				fmt.Sprintf("%d of %d items (%.0f%%) are marked not applicable, above the %.0f%% limit.",
					na, total, ratio*100, e.thresholds.NAThreshold*100),
				"Review each not-applicable item against the actual work scope.",
				"CHK-02",
			),
			RuleID: RuleSuspiciousExcessiveNA,
			Path:   "checklist",
			Stage:  domain.StageRuleCatalog,
		})
	}
	return issues
}

func (e *Evaluator) completeness(idx *checklistIndex) []domain.ValidationIssue {
	var issues []domain.ValidationIssue

	if !idx.has(domain.HazardHelmet) {
		issues = append(issues, domain.ValidationIssue{
			Severity: domain.SeverityWarn,
			Title:    "Helmet check missing",
			Message: FormatMessage(
				"The checklist has no safety helmet item.",
				"Add a helmet (hard hat) check to the form.",
				"PPE-01",
			),
			RuleID: RuleCompletenessMissingHelmet,
			Path:   "checklist",
			Stage:  domain.StageRuleCatalog,
		})
	}

	if !idx.has(domain.HazardHeightWork) {
		issues = append(issues, domain.ValidationIssue{
			Severity: domain.SeverityInfo,
			Title:    "Work at height not assessed",
			Message: FormatMessage(
				"The checklist does not say whether work at height takes place.",
				"Add a work-at-height item so fall protection can be verified.",
				"FALL-01",
			),
			RuleID: RuleCompletenessMissingHeight,
			Path:   "checklist",
			Stage:  domain.StageRuleCatalog,
		})
	}

	total := len(idx.items)
	if total < e.thresholds.MinChecklistLength {
		issues = append(issues, domain.ValidationIssue{
			Severity: domain.SeverityInfo,
			Title:    "Checklist is unusually short",
			Message: FormatMessage(
				fmt.Sprintf("The checklist has %d items; at least %d are expected.", total, e.thresholds.MinChecklistLength),
				"Make sure every page of the form was captured.",
				"CHK-03",
			),
			RuleID:      RuleCompletenessShortChecklist,
			Path:        "checklist",
			IsAIFixable: true,
			Stage:       domain.StageRuleCatalog,
		})
	}

	if total == 0 {
		return issues
	}

	switch total {
	case idx.count(domain.ValueChecked):
		issues = append(issues, domain.ValidationIssue{
			Severity: domain.SeverityInfo,
			Title:    "Every item is checked",
			Message: FormatMessage(
				"All checklist items are marked checked.",
				"Spot-check a few items on site to confirm the inspection was performed.",
				"CHK-04",
			),
			RuleID: RuleCompletenessAllChecked,
			Path:   "checklist",
			Stage:  domain.StageRuleCatalog,
		})
	case idx.count(domain.ValueNotApplicable):
		issues = append(issues, domain.ValidationIssue{
			Severity: domain.SeverityInfo,
			Title:    "Every item is not applicable",
			Message: FormatMessage(
				"All checklist items are marked not applicable.",
				"Confirm the correct form was used for this work.",
				"CHK-05",
			),
			RuleID: RuleCompletenessAllNA,
			Path:   "checklist",
			Stage:  domain.StageRuleCatalog,
		})
	}
	return issues
}

func (e *Evaluator) fieldCompleteness(doc *domain.NormalizedDocument) []domain.ValidationIssue {
	var issues []domain.ValidationIssue

	if domain.Deref(doc.Fields.InspectionDate) == "" {
		issues = append(issues, domain.ValidationIssue{
			Severity:    domain.SeverityWarn,
			Title:       "Inspection date missing",
			Message:     FormatMessage("No inspection date was found on the document.", "Enter the date the inspection took place.", "DOC-01"),
			RuleID:      RuleFieldMissingInspectionDate,
			Path:        "fields.inspection_date",
			IsAIFixable: true,
			Stage:       domain.StageRuleCatalog,
		})
	}

	if domain.Deref(doc.Fields.SiteName) == "" {
		issues = append(issues, domain.ValidationIssue{
			Severity:    domain.SeverityWarn,
			Title:       "Site name missing",
			Message:     FormatMessage("No site name was found on the document.", "Enter the site or work area name.", "DOC-02"),
			RuleID:      RuleFieldMissingSiteName,
			Path:        "fields.site_name",
			IsAIFixable: true,
			Stage:       domain.StageRuleCatalog,
		})
	}

	if doc.Inspector() == "" {
		issues = append(issues, domain.ValidationIssue{
			Severity:    domain.SeverityInfo,
			Title:       "Inspector name missing",
			Message:     FormatMessage("No inspector name was found on the document.", "Record who performed the inspection.", "DOC-03"),
			RuleID:      RuleFieldMissingInspector,
			Path:        "inspector_name",
			IsAIFixable: true,
			Stage:       domain.StageRuleCatalog,
		})
	}

	for _, role := range []domain.SignatureRole{domain.SignatureRoleInspector, domain.SignatureRoleSupervisor} {
		if issue, ok := signatureIssue(doc.Signature, role); ok {
			issues = append(issues, issue)
		}
	}
	return issues
}

func signatureIssue(sig domain.Signature, role domain.SignatureRole) (domain.ValidationIssue, bool) {
	issue := domain.ValidationIssue{
		RuleID: RuleSignatureMissingPrefix + string(role),
		Path:   "signature." + string(role),
		Stage:  domain.StageRuleCatalog,
	}

	switch sig.Status(role) {
	case domain.SignatureMissing:
		issue.Severity = domain.SeverityWarn
		issue.Title = fmt.Sprintf("%s signature missing", roleTitle(role))
		issue.Message = FormatMessage(
			fmt.Sprintf("The %s signature box is empty.", role),
			fmt.Sprintf("Have the %s sign the document.", role),
			"DOC-04",
		)
	case domain.SignatureUnknown:
		issue.Severity = domain.SeverityInfo
		issue.Title = fmt.Sprintf("%s signature unreadable", roleTitle(role))
		issue.Message = FormatMessage(
			fmt.Sprintf("Could not tell whether the %s signed the document.", role),
			"Re-scan the signature area or confirm the signature manually.",
			"DOC-04",
		)
		issue.IsAIFixable = true
	default:
		return domain.ValidationIssue{}, false
	}
	return issue, true
}

func roleTitle(role domain.SignatureRole) string {
	switch role {
	case domain.SignatureRoleInspector:
		return "Inspector"
	case domain.SignatureRoleSupervisor:
		return "Supervisor"
	default:
		return string(role)
	}
}
