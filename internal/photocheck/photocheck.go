// Package photocheck compares the checklist inferred from site photos with
// the checklist on the document, to catch controls that were ticked on paper
// but are not in place on site.
package photocheck

import (
	"fmt"
	"strings"

	"github.com/custodia-labs/safeaudit-core/internal/core/domain"
	"github.com/custodia-labs/safeaudit-core/internal/rules"
)

const (
	RuleFraudSuspected = "photo_fraud_suspected"
	RuleNAContradicted = "photo_na_contradicted"
	RuleImproved       = "photo_improved"

	DefaultDocumentLabel = "document"
)

// CrossCheck joins both checklists by item id and applies the decision table.
// Items without a recorded value on either side, or present on only one side,
// are skipped and not counted.
func CrossCheck(photo, document []domain.ChecklistItem, documentLabel string) domain.PhotoCrossCheckResult {
	result := domain.PhotoCrossCheckResult{Issues: []domain.ValidationIssue{}}
	if documentLabel == "" {
		documentLabel = DefaultDocumentLabel
	}

	photoByID := make(map[string]domain.ChecklistItem, len(photo))
	for _, item := range photo {
		if key := itemKey(item.ID); key != "" {
			if _, dup := photoByID[key]; !dup {
				photoByID[key] = item
			}
		}
	}

	for pos, docItem := range document {
		photoItem, ok := photoByID[itemKey(docItem.ID)]
		if !ok || !docItem.Value.IsRecorded() || !photoItem.Value.IsRecorded() {
			continue
		}

		issue, mismatch := decide(docItem, photoItem, documentLabel)
		if !mismatch {
			result.MatchedCount++
			continue
		}
		issue.Path = fmt.Sprintf("checklist[%d]", pos)
		issue.Stage = domain.StagePhoto
		result.MismatchedCount++
		result.Issues = append(result.Issues, issue)
	}
	return result
}

func itemKey(id string) string {
	return strings.ToLower(strings.TrimSpace(id))
}

func label(item domain.ChecklistItem) string {
	if item.DisplayName != "" {
		return item.DisplayName
	}
	return item.ID
}

func decide(doc, photo domain.ChecklistItem, documentLabel string) (domain.ValidationIssue, bool) {
	name := label(doc)
	switch {
	case doc.Value == domain.ValueChecked && photo.Value == domain.ValueUnchecked:
		return domain.ValidationIssue{
			Severity: domain.SeverityError,
			Title:    "Photo contradicts checked item",
			Message: rules.FormatMessage(
				fmt.Sprintf("The %s marks %q as in place, but the site photo shows it is not.", documentLabel, name),
				"Verify on site immediately and investigate how the item was checked.",
				"PHOTO-01",
			),
			RuleID: RuleFraudSuspected,
		}, true
	case doc.Value == domain.ValueNotApplicable && photo.Value == domain.ValueUnchecked:
		return domain.ValidationIssue{
			Severity: domain.SeverityWarn,
			Title:    "Photo shows a not-applicable item applies",
			Message: rules.FormatMessage(
				fmt.Sprintf("The %s marks %q as not applicable, but the site photo shows the activity and no control.", documentLabel, name),
				"Re-assess the item and put the control in place.",
				"PHOTO-02",
			),
			RuleID: RuleNAContradicted,
		}, true
	case doc.Value == domain.ValueUnchecked && photo.Value == domain.ValueChecked:
		return domain.ValidationIssue{
			Severity: domain.SeverityInfo,
			Title:    "Site improved since the document was filed",
			Message: rules.FormatMessage(
				fmt.Sprintf("The %s marks %q as not in place, but the site photo shows it now is.", documentLabel, name),
				"Update the document if the correction is confirmed.",
				"PHOTO-03",
			),
			RuleID:      RuleImproved,
			IsAIFixable: true,
		}, true
	}
	return domain.ValidationIssue{}, false
}
