package rules

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/safeaudit-core/internal/core/domain"
)

func item(id string, v domain.ChecklistValue) domain.ChecklistItem {
	return domain.ChecklistItem{ID: id, Value: v}
}

func validDocument() *domain.NormalizedDocument {
	return &domain.NormalizedDocument{
		DocType: domain.DocTypeSafetyChecklist,
		Fields: domain.DocumentFields{
			InspectionDate:  domain.StringPtr("2026-03-02"),
			SiteName:        domain.StringPtr("Block A"),
			WorkDescription: domain.StringPtr("Facade scaffolding"),
			WorkerCount:     domain.StringPtr("6"),
		},
		Signature: domain.Signature{
			Inspector:  domain.SignaturePresent,
			Supervisor: domain.SignaturePresent,
		},
		InspectorName: domain.StringPtr("Kim Minsu"),
		RiskLevel:     domain.RiskLevelPtr(domain.RiskLevelMedium),
		Checklist: []domain.ChecklistItem{
			item("ppe_01", domain.ValueChecked),
			item("fall_01", domain.ValueChecked),
			item("ppe_03", domain.ValueChecked),
			item("fire_01", domain.ValueNotApplicable),
			{ID: "gen_01", DisplayName: "Housekeeping", Value: domain.ValueUnchecked},
			{ID: "gen_02", DisplayName: "Tools inspected", Value: domain.ValueChecked},
		},
	}
}

func newTestEvaluator(t *testing.T) *Evaluator {
	t.Helper()
	e, err := NewEvaluator(domain.DefaultThresholds())
	require.NoError(t, err)
	return e
}

func byRule(issues []domain.ValidationIssue, ruleID string) []domain.ValidationIssue {
	var out []domain.ValidationIssue
	for _, issue := range issues {
		if issue.RuleID == ruleID {
			out = append(out, issue)
		}
	}
	return out
}

func TestNewEvaluator_InvalidThresholds(t *testing.T) {
	th := domain.DefaultThresholds()
	th.NAThreshold = 1.5

	e, err := NewEvaluator(th)
	assert.Nil(t, e)
	assert.ErrorIs(t, err, domain.ErrInvalidConfig)
}

func TestEvaluate_ValidDocument(t *testing.T) {
	e := newTestEvaluator(t)
	assert.Empty(t, e.Evaluate(validDocument()))
}

func TestEvaluate_RoutineLegacyItemsRaiseNoViolation(t *testing.T) {
	e := newTestEvaluator(t)
	doc := validDocument()
	doc.Checklist = append(doc.Checklist,
		domain.ChecklistItem{ID: "gen_03", DisplayName: "Electrical cords and power tools inspected", Value: domain.ValueChecked},
		domain.ChecklistItem{ID: "gen_04", DisplayName: "Oxygen and acetylene cylinders stored upright", Value: domain.ValueChecked},
		domain.ChecklistItem{ID: "gen_05", DisplayName: "Ladders inspected before use", Value: domain.ValueChecked},
	)

	issues := e.Evaluate(doc)
	for _, issue := range issues {
		assert.NotEqual(t, domain.SeverityError, issue.Severity, "unexpected %s", issue.RuleID)
	}
	assert.Empty(t, byRule(issues, "rule_electrical_lockout"))
}

func TestEvaluate_LegacyActivityWithoutControl(t *testing.T) {
	e := newTestEvaluator(t)
	doc := validDocument()
	doc.Checklist = append(doc.Checklist,
		domain.ChecklistItem{ID: "w1", DisplayName: "Electrical work on distribution panel", Value: domain.ValueChecked},
	)

	assert.Len(t, byRule(e.Evaluate(doc), "rule_electrical_lockout"), 1)
}

func TestEvaluate_NilDocument(t *testing.T) {
	e := newTestEvaluator(t)
	assert.Nil(t, e.Evaluate(nil))
}

func TestEvaluate_HeightWithoutHarness(t *testing.T) {
	e := newTestEvaluator(t)
	doc := &domain.NormalizedDocument{
		Checklist: []domain.ChecklistItem{
			item("fall_01", domain.ValueChecked),
			item("ppe_03", domain.ValueUnchecked),
		},
	}

	issues := byRule(e.Evaluate(doc), RuleHeightHarness)
	require.Len(t, issues, 1)
	assert.Equal(t, domain.SeverityError, issues[0].Severity)
	assert.Equal(t, "checklist[1]", issues[0].Path)
	assert.Equal(t, domain.StageRuleCatalog, issues[0].Stage)
	assert.Contains(t, issues[0].Message, RecommendationSeparator)
	assert.True(t, strings.HasSuffix(issues[0].Message, "[Ref: FALL-02]"))
}

func TestEvaluate_SafetyViolationPairs(t *testing.T) {
	e := newTestEvaluator(t)

	for _, pr := range pairRules {
		t.Run(pr.violationID, func(t *testing.T) {
			absent := &domain.NormalizedDocument{Checklist: []domain.ChecklistItem{
				{ID: "a", Hazard: pr.pair.Indicator, Value: domain.ValueChecked},
			}}
			unchecked := &domain.NormalizedDocument{Checklist: []domain.ChecklistItem{
				{ID: "a", Hazard: pr.pair.Indicator, Value: domain.ValueChecked},
				{ID: "b", Hazard: pr.pair.Mitigation, Value: domain.ValueUnchecked},
				{ID: "c", Hazard: pr.pair.Mitigation, Value: domain.ValueUnchecked},
			}}
			covered := &domain.NormalizedDocument{Checklist: []domain.ChecklistItem{
				{ID: "a", Hazard: pr.pair.Indicator, Value: domain.ValueChecked},
				{ID: "b", Hazard: pr.pair.Mitigation, Value: domain.ValueChecked},
			}}

			for _, doc := range []*domain.NormalizedDocument{absent, unchecked} {
				issues := byRule(e.Evaluate(doc), pr.violationID)
				require.Len(t, issues, 1)
				assert.Equal(t, domain.SeverityError, issues[0].Severity)
			}
			assert.Empty(t, byRule(e.Evaluate(covered), pr.violationID))
		})
	}
}

func TestEvaluate_Contradictions(t *testing.T) {
	e := newTestEvaluator(t)

	for _, pr := range pairRules {
		t.Run(pr.contradictID, func(t *testing.T) {
			doc := &domain.NormalizedDocument{Checklist: []domain.ChecklistItem{
				{ID: "a", Hazard: pr.pair.Indicator, Value: domain.ValueUnchecked},
				{ID: "b", Hazard: pr.pair.Mitigation, Value: domain.ValueChecked},
			}}
			issues := byRule(e.Evaluate(doc), pr.contradictID)
			require.Len(t, issues, 1)
			assert.Equal(t, domain.SeverityWarn, issues[0].Severity)
			assert.Empty(t, byRule(e.Evaluate(doc), pr.violationID))

			doc.Checklist[0].Value = domain.ValueNotApplicable
			assert.Empty(t, byRule(e.Evaluate(doc), pr.contradictID))
		})
	}
}

func TestEvaluate_ExcessiveNA(t *testing.T) {
	e := newTestEvaluator(t)

	build := func(na, total int) *domain.NormalizedDocument {
		doc := validDocument()
		doc.Checklist = nil
		for i := 0; i < total; i++ {
			v := domain.ValueUnchecked
			if i < na {
				v = domain.ValueNotApplicable
			}
			doc.Checklist = append(doc.Checklist, domain.ChecklistItem{ID: "gen", DisplayName: "General item", Value: v})
		}
		return doc
	}

	tests := []struct {
		na, total int
		fires     bool
	}{
		{na: 6, total: 10, fires: true},
		{na: 5, total: 10, fires: false},
		{na: 4, total: 10, fires: false},
		{na: 3, total: 5, fires: true},
		{na: 0, total: 0, fires: false},
	}

	for _, tt := range tests {
		issues := byRule(e.Evaluate(build(tt.na, tt.total)), RuleSuspiciousExcessiveNA)
		if tt.fires {
			require.Len(t, issues, 1, "na=%d total=%d", tt.na, tt.total)
			assert.Equal(t, domain.SeverityWarn, issues[0].Severity)
		} else {
			assert.Empty(t, issues, "na=%d total=%d", tt.na, tt.total)
		}
	}
}

func TestEvaluate_CriticalNA(t *testing.T) {
	e := newTestEvaluator(t)
	doc := validDocument()
	doc.Checklist[0].Value = domain.ValueNotApplicable // helmet
	doc.Checklist[2].Value = domain.ValueNotApplicable // harness

	issues := byRule(e.Evaluate(doc), RuleSuspiciousCriticalNA)
	require.Len(t, issues, 2)
	assert.Equal(t, "checklist[0]", issues[0].Path)
	assert.Equal(t, "checklist[2]", issues[1].Path)
}

func TestEvaluate_Completeness(t *testing.T) {
	e := newTestEvaluator(t)

	t.Run("missing helmet and height", func(t *testing.T) {
		doc := validDocument()
		doc.Checklist = doc.Checklist[3:]
		issues := e.Evaluate(doc)

		helmet := byRule(issues, RuleCompletenessMissingHelmet)
		require.Len(t, helmet, 1)
		assert.Equal(t, domain.SeverityWarn, helmet[0].Severity)

		height := byRule(issues, RuleCompletenessMissingHeight)
		require.Len(t, height, 1)
		assert.Equal(t, domain.SeverityInfo, height[0].Severity)

		short := byRule(issues, RuleCompletenessShortChecklist)
		require.Len(t, short, 1)
		assert.Equal(t, domain.SeverityInfo, short[0].Severity)
	})

	t.Run("all checked", func(t *testing.T) {
		doc := validDocument()
		for i := range doc.Checklist {
			doc.Checklist[i].Value = domain.ValueChecked
		}
		issues := e.Evaluate(doc)
		assert.Len(t, byRule(issues, RuleCompletenessAllChecked), 1)
		assert.Empty(t, byRule(issues, RuleCompletenessAllNA))
	})

	t.Run("all not applicable", func(t *testing.T) {
		doc := validDocument()
		for i := range doc.Checklist {
			doc.Checklist[i].Value = domain.ValueNotApplicable
		}
		issues := e.Evaluate(doc)
		assert.Len(t, byRule(issues, RuleCompletenessAllNA), 1)
		assert.Len(t, byRule(issues, RuleSuspiciousExcessiveNA), 1)
		assert.Empty(t, byRule(issues, RuleCompletenessAllChecked))
	})

	t.Run("empty checklist", func(t *testing.T) {
		doc := validDocument()
		doc.Checklist = nil
		issues := e.Evaluate(doc)
		assert.Len(t, byRule(issues, RuleCompletenessShortChecklist), 1)
		assert.Empty(t, byRule(issues, RuleCompletenessAllChecked))
		assert.Empty(t, byRule(issues, RuleCompletenessAllNA))
	})
}

func TestEvaluate_FieldsAndSignatures(t *testing.T) {
	e := newTestEvaluator(t)
	doc := validDocument()
	doc.Fields.InspectionDate = nil
	doc.Fields.SiteName = domain.StringPtr("   ")
	doc.InspectorName = nil
	doc.Signature = domain.Signature{Inspector: domain.SignatureMissing}

	issues := e.Evaluate(doc)

	date := byRule(issues, RuleFieldMissingInspectionDate)
	require.Len(t, date, 1)
	assert.Equal(t, domain.SeverityWarn, date[0].Severity)
	assert.Equal(t, "fields.inspection_date", date[0].Path)

	assert.Len(t, byRule(issues, RuleFieldMissingSiteName), 1)

	inspector := byRule(issues, RuleFieldMissingInspector)
	require.Len(t, inspector, 1)
	assert.Equal(t, domain.SeverityInfo, inspector[0].Severity)

	missing := byRule(issues, "signature_missing_inspector")
	require.Len(t, missing, 1)
	assert.Equal(t, domain.SeverityWarn, missing[0].Severity)
	assert.False(t, missing[0].IsAIFixable)

	unknown := byRule(issues, "signature_missing_supervisor")
	require.Len(t, unknown, 1)
	assert.Equal(t, domain.SeverityInfo, unknown[0].Severity)
	assert.True(t, unknown[0].IsAIFixable)
}

func TestEvaluate_PresetsChangeOutcome(t *testing.T) {
	doc := validDocument()
	doc.Checklist = doc.Checklist[:4]

	lenient, err := NewEvaluator(domain.LenientThresholds())
	require.NoError(t, err)
	strict, err := NewEvaluator(domain.StrictThresholds())
	require.NoError(t, err)

	assert.Empty(t, byRule(lenient.Evaluate(doc), RuleCompletenessShortChecklist))
	assert.Len(t, byRule(strict.Evaluate(doc), RuleCompletenessShortChecklist), 1)
}

func TestIDs_Unique(t *testing.T) {
	seen := make(map[string]bool)
	for _, id := range IDs() {
		assert.False(t, seen[id], "duplicate rule id %s", id)
		seen[id] = true
	}
	assert.Contains(t, IDs(), RuleHeightHarness)
}
