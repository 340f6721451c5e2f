// Package plancheck compares a document against its project's master safety plan.
package plancheck

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"unicode"

	"github.com/custodia-labs/safeaudit-core/internal/core/domain"
	"github.com/custodia-labs/safeaudit-core/internal/hazard"
	"github.com/custodia-labs/safeaudit-core/internal/rules"
)

const (
	RuleRequiredItemMissing   = "plan_required_item_missing"
	RuleRequiredItemUnchecked = "plan_required_item_unchecked"
	RuleRequiredItemNA        = "plan_required_item_na"
	RuleHazardNotCovered      = "plan_hazard_not_covered"
	RuleSignatureMissing      = "plan_signature_missing"
	RuleWorkerCountExceeded   = "plan_worker_count_exceeded"
	RuleDocTypeUnexpected     = "plan_doc_type_unexpected"
)

const planRef = "PLAN"

// Parse decodes a persisted plan. Empty input means the project has no plan
// and returns nil without error.
func Parse(raw []byte) (*domain.MasterSafetyPlan, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return nil, nil
	}

	var plan domain.MasterSafetyPlan
	if err := json.Unmarshal(trimmed, &plan); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrPlanMalformed, err)
	}
	for _, h := range plan.IdentifiedHazards {
		if !h.IsValid() {
			return nil, fmt.Errorf("%w: unknown hazard %q", domain.ErrPlanMalformed, h)
		}
	}
	return &plan, nil
}

// Validate returns every deviation of the document from the plan
func Validate(doc *domain.NormalizedDocument, plan *domain.MasterSafetyPlan) []domain.ValidationIssue {
	if doc == nil || plan == nil {
		return nil
	}

	kinds := hazard.ClassifyAll(doc.Checklist)

	var issues []domain.ValidationIssue
	for _, req := range plan.RequiredItems {
		if issue, ok := checkRequiredItem(doc.Checklist, kinds, req); ok {
			issues = append(issues, issue)
		}
	}
	issues = append(issues, checkHazardCoverage(doc.Checklist, plan.IdentifiedHazards)...)
	issues = append(issues, checkSignatures(doc.Signature, plan.RequiredSignatures)...)
	if issue, ok := checkWorkerCount(doc.Fields.WorkerCount, plan.MaxWorkerCount); ok {
		issues = append(issues, issue)
	}
	if issue, ok := checkDocType(doc.DocType, plan.AllowedDocTypes); ok {
		issues = append(issues, issue)
	}
	return issues
}

// findRequired returns the best matching checklist position for a plan item.
// Items match by id, or by hazard kind when the plan names one.
func findRequired(items []domain.ChecklistItem, kinds []domain.HazardKind, req domain.PlanRequiredItem) int {
	found := -1
	for i, item := range items {
		idMatch := req.ID != "" && strings.EqualFold(strings.TrimSpace(item.ID), req.ID)
		kindMatch := req.Hazard != "" && req.Hazard != domain.HazardOther && kinds[i] == req.Hazard
		if !idMatch && !kindMatch {
			continue
		}
		if found < 0 || rank(item.Value) > rank(items[found].Value) {
			found = i
		}
	}
	return found
}

func rank(v domain.ChecklistValue) int {
	switch v {
	case domain.ValueChecked:
		return 3
	case domain.ValueUnchecked:
		return 2
	case domain.ValueNotApplicable:
		return 1
	}
	return 0
}

func requiredLabel(req domain.PlanRequiredItem) string {
	switch {
	case req.Label != "":
		return req.Label
	case req.ID != "":
		return req.ID
	default:
		return string(req.Hazard)
	}
}

func checkRequiredItem(items []domain.ChecklistItem, kinds []domain.HazardKind, req domain.PlanRequiredItem) (domain.ValidationIssue, bool) {
	label := requiredLabel(req)
	pos := findRequired(items, kinds, req)
	if pos < 0 {
		return domain.ValidationIssue{
			Severity: domain.SeverityWarn,
			Title:    "Plan item missing from checklist",
			Message: rules.FormatMessage(
				fmt.Sprintf("The project safety plan requires %q but the checklist does not contain it.", label),
				"Use the checklist form issued for this project.",
				planRef,
			),
			RuleID: RuleRequiredItemMissing,
			Path:   "checklist",
			Stage:  domain.StagePlan,
		}, true
	}

	path := fmt.Sprintf("checklist[%d]", pos)
	switch items[pos].Value {
	case domain.ValueUnchecked:
		return domain.ValidationIssue{
			Severity: domain.SeverityError,
			Title:    "Plan item not satisfied",
			Message: rules.FormatMessage(
				fmt.Sprintf("The project safety plan requires %q, but it is marked as not in place.", label),
				"Put the control in place before work continues.",
				planRef,
			),
			RuleID: RuleRequiredItemUnchecked,
			Path:   path,
			Stage:  domain.StagePlan,
		}, true
	case domain.ValueNotApplicable:
		return domain.ValidationIssue{
			Severity: domain.SeverityWarn,
			Title:    "Plan item marked not applicable",
			Message: rules.FormatMessage(
				fmt.Sprintf("The project safety plan requires %q, but it is marked not applicable.", label),
				"Confirm with the site manager that the plan allows an exception.",
				planRef,
			),
			RuleID: RuleRequiredItemNA,
			Path:   path,
			Stage:  domain.StagePlan,
		}, true
	}
	return domain.ValidationIssue{}, false
}

func checkHazardCoverage(items []domain.ChecklistItem, hazards []domain.HazardKind) []domain.ValidationIssue {
	var issues []domain.ValidationIssue
	seen := make(map[domain.HazardCategory]bool)

	for _, h := range hazards {
		category := h.Category()
		if category == domain.CategoryGeneral || seen[category] {
			continue
		}
		seen[category] = true

		covered := false
		for _, item := range items {
			if hazard.ItemInCategory(item, category) {
				covered = true
				break
			}
		}
		if covered {
			continue
		}

		issues = append(issues, domain.ValidationIssue{
			Severity: domain.SeverityWarn,
			Title:    "Planned hazard not covered",
			Message: rules.FormatMessage(
				fmt.Sprintf("The project safety plan identifies %s hazards but no checklist item addresses them.", category),
				"Add the checks for this hazard from the project plan.",
				planRef,
			),
			RuleID: RuleHazardNotCovered,
			Path:   "checklist",
			Stage:  domain.StagePlan,
		})
	}
	return issues
}

func checkSignatures(sig domain.Signature, required []domain.SignatureRole) []domain.ValidationIssue {
	var issues []domain.ValidationIssue
	for _, role := range required {
		status := sig.Status(role)
		if status == domain.SignaturePresent {
			continue
		}
		issues = append(issues, domain.ValidationIssue{
			Severity: domain.SeverityError,
			Title:    "Required signature missing",
			Message: rules.FormatMessage(
				fmt.Sprintf("The project safety plan requires the %s signature (found: %s).", role, status),
				fmt.Sprintf("Obtain the %s signature before the document is filed.", role),
				planRef,
			),
			RuleID: RuleSignatureMissing,
			Path:   "signature." + string(role),
			Stage:  domain.StagePlan,
		})
	}
	return issues
}

func checkWorkerCount(raw *string, limit *int) (domain.ValidationIssue, bool) {
	if limit == nil {
		return domain.ValidationIssue{}, false
	}
	count, ok := ParseWorkerCount(domain.Deref(raw))
	if !ok || count <= *limit {
		return domain.ValidationIssue{}, false
	}
	return domain.ValidationIssue{
		Severity: domain.SeverityWarn,
		Title:    "Worker count above plan limit",
		Message: rules.FormatMessage(
			fmt.Sprintf("%d workers are recorded; the project safety plan allows at most %d.", count, *limit),
			"Reduce the crew or get the plan revised.",
			planRef,
		),
		RuleID: RuleWorkerCountExceeded,
		Path:   "fields.worker_count",
		Stage:  domain.StagePlan,
	}, true
}

func checkDocType(docType domain.DocType, allowed []domain.DocType) (domain.ValidationIssue, bool) {
	if len(allowed) == 0 {
		return domain.ValidationIssue{}, false
	}
	for _, a := range allowed {
		if a == docType {
			return domain.ValidationIssue{}, false
		}
	}
	return domain.ValidationIssue{
		Severity: domain.SeverityInfo,
		Title:    "Unexpected document type",
		Message: rules.FormatMessage(
			fmt.Sprintf("Document type %q is not one the project safety plan expects.", docType),
			"",
			planRef,
		),
		RuleID: RuleDocTypeUnexpected,
		Path:   "doc_type",
		Stage:  domain.StagePlan,
	}, true
}

// ParseWorkerCount reads the leading number of a worker count field such as "12" or "12 workers"
func ParseWorkerCount(s string) (int, bool) {
	s = strings.TrimSpace(s)
	end := strings.IndexFunc(s, func(r rune) bool { return !unicode.IsDigit(r) || r > unicode.MaxASCII })
	if end < 0 {
		end = len(s)
	}
	if end == 0 {
		return 0, false
	}
	n, err := strconv.Atoi(s[:end])
	if err != nil {
		return 0, false
	}
	return n, true
}
