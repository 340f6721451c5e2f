package riskmatrix

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/safeaudit-core/internal/core/domain"
)

func doc(level *domain.RiskLevel, items ...domain.ChecklistItem) *domain.NormalizedDocument {
	return &domain.NormalizedDocument{RiskLevel: level, Checklist: items}
}

func it(id string, v domain.ChecklistValue) domain.ChecklistItem {
	return domain.ChecklistItem{ID: id, Value: v}
}

func TestTierFor(t *testing.T) {
	tests := []struct {
		score int
		want  domain.RiskLevel
	}{
		{0, domain.RiskLevelLow},
		{24, domain.RiskLevelLow},
		{25, domain.RiskLevelMedium},
		{49, domain.RiskLevelMedium},
		{50, domain.RiskLevelHigh},
		{74, domain.RiskLevelHigh},
		{75, domain.RiskLevelCritical},
		{100, domain.RiskLevelCritical},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, TierFor(tt.score), "score %d", tt.score)
	}
}

func TestCalculate(t *testing.T) {
	tests := []struct {
		name    string
		doc     *domain.NormalizedDocument
		score   int
		tier    domain.RiskLevel
		factors int
	}{
		{
			name:    "no hazards, helmet worn",
			doc:     doc(nil, it("ppe_01", domain.ValueChecked), it("fall_01", domain.ValueUnchecked)),
			score:   0,
			tier:    domain.RiskLevelLow,
			factors: 0,
		},
		{
			name:    "height covered",
			doc:     doc(nil, it("ppe_01", domain.ValueChecked), it("fall_01", domain.ValueChecked), it("ppe_03", domain.ValueChecked)),
			score:   25,
			tier:    domain.RiskLevelMedium,
			factors: 1,
		},
		{
			name:    "height without harness, no helmet item",
			doc:     doc(nil, it("fall_01", domain.ValueChecked), it("ppe_03", domain.ValueUnchecked)),
			score:   25 + 15 + 10,
			tier:    domain.RiskLevelHigh,
			factors: 3,
		},
		{
			name:    "mitigation marked not applicable adds nothing",
			doc:     doc(nil, it("ppe_01", domain.ValueChecked), it("fire_01", domain.ValueChecked), it("fire_02", domain.ValueNotApplicable)),
			score:   20,
			tier:    domain.RiskLevelLow,
			factors: 1,
		},
		{
			name: "clamped at 100",
			doc: doc(nil,
				it("fall_01", domain.ValueChecked),
				it("fire_01", domain.ValueChecked),
				it("conf_01", domain.ValueChecked),
				it("elec_01", domain.ValueChecked),
				it("exc_01", domain.ValueChecked),
			),
			score:   100,
			tier:    domain.RiskLevelCritical,
			factors: 11,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			calc := Calculate(tt.doc)
			assert.Equal(t, tt.score, calc.RiskScore)
			assert.Equal(t, tt.tier, calc.CalculatedTier)
			assert.Len(t, calc.Factors, tt.factors)
			assert.Nil(t, calc.DocumentedTier)
			assert.False(t, calc.Inconsistency)
		})
	}
}

func TestCalculate_Inconsistency(t *testing.T) {
	critical := doc(nil,
		it("fall_01", domain.ValueChecked),
		it("conf_01", domain.ValueChecked),
		it("ppe_03", domain.ValueUnchecked),
	) // 25+30+15+15+10 = 95

	tests := []struct {
		documented   domain.RiskLevel
		inconsistent bool
	}{
		{domain.RiskLevelLow, true},
		{domain.RiskLevelMedium, true},
		{domain.RiskLevelHigh, false},
		{domain.RiskLevelCritical, false},
	}
	for _, tt := range tests {
		critical.RiskLevel = domain.RiskLevelPtr(tt.documented)
		calc := Calculate(critical)
		assert.Equal(t, domain.RiskLevelCritical, calc.CalculatedTier)
		require.NotNil(t, calc.DocumentedTier)
		assert.Equal(t, tt.inconsistent, calc.Inconsistency, "documented %s", tt.documented)
	}
}

func TestIssues(t *testing.T) {
	t.Run("consistent yields nothing", func(t *testing.T) {
		calc := Calculate(doc(domain.RiskLevelPtr(domain.RiskLevelMedium), it("ppe_01", domain.ValueChecked)))
		assert.Nil(t, Issues(calc))
	})

	t.Run("under-reported", func(t *testing.T) {
		calc := Calculate(doc(domain.RiskLevelPtr(domain.RiskLevelLow),
			it("fall_01", domain.ValueChecked),
			it("conf_01", domain.ValueChecked),
		))
		issues := Issues(calc)
		require.Len(t, issues, 1+len(calc.Factors))
		assert.Equal(t, RuleTierUnderreported, issues[0].RuleID)
		assert.Equal(t, domain.SeverityError, issues[0].Severity)
		assert.Equal(t, "risk_factor_fall", issues[1].RuleID)
		assert.Equal(t, domain.SeverityInfo, issues[1].Severity)
		for _, issue := range issues {
			assert.Equal(t, domain.StageRisk, issue.Stage)
		}
	})

	t.Run("over-reported", func(t *testing.T) {
		calc := Calculate(doc(domain.RiskLevelPtr(domain.RiskLevelCritical), it("ppe_01", domain.ValueChecked)))
		issues := Issues(calc)
		require.Len(t, issues, 1)
		assert.Equal(t, RuleTierOverreported, issues[0].RuleID)
		assert.Equal(t, domain.SeverityWarn, issues[0].Severity)
	})
}
