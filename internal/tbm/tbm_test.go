package tbm

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/safeaudit-core/internal/core/domain"
)

func tbmDoc() *domain.NormalizedDocument {
	return &domain.NormalizedDocument{
		InspectorName: domain.StringPtr("Kim Minsu"),
		Checklist: []domain.ChecklistItem{
			{ID: "ppe_01", Value: domain.ValueChecked},
			{ID: "fall_01", Value: domain.ValueChecked},
			{ID: "ppe_03", Value: domain.ValueChecked},
			{ID: "fire_01", Value: domain.ValueUnchecked},
			{ID: "fire_02", Value: domain.ValueUnchecked},
		},
	}
}

func ruleIDs(issues []domain.ValidationIssue) []string {
	var out []string
	for _, i := range issues {
		out = append(out, i.RuleID)
	}
	return out
}

func TestValidate_NilInputs(t *testing.T) {
	assert.Nil(t, Validate(nil, &domain.TBMContext{}))
	assert.Nil(t, Validate(tbmDoc(), nil))
}

func TestValidate_Coverage(t *testing.T) {
	tests := []struct {
		name    string
		hazards []string
		want    []string
	}{
		{"covered and confirmed", []string{"Fall from scaffold edge"}, nil},
		{"korean mention covered", []string{"비계 추락 위험"}, nil},
		{"discussed but unchecked", []string{"Welding sparks"}, []string{RuleUnconfirmed}},
		{"not covered", []string{"Electric shock from temporary panel"}, []string{RuleMissingCoverage}},
		{"confined space not covered", []string{"맨홀 질식"}, []string{RuleMissingCoverage}},
		{
			"each category once",
			[]string{"fire near fuel", "hot work", "shock hazard", "live wire"},
			[]string{RuleUnconfirmed, RuleMissingCoverage},
		},
		{"unrelated mention", []string{"Heavy lifting"}, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			issues := Validate(tbmDoc(), &domain.TBMContext{ExtractedHazards: tt.hazards})
			assert.Equal(t, tt.want, ruleIDs(issues))
			for _, i := range issues {
				assert.Equal(t, domain.SeverityWarn, i.Severity)
				assert.Equal(t, domain.StageTBM, i.Stage)
			}
		})
	}
}

func TestValidate_PartiallyConfirmed(t *testing.T) {
	doc := tbmDoc()
	doc.Checklist[4].Value = domain.ValueChecked
	assert.Empty(t, Validate(doc, &domain.TBMContext{ExtractedHazards: []string{"welding"}}))
}

func TestValidate_InspectorMismatch(t *testing.T) {
	tests := []struct {
		name     string
		tbmName  *string
		docName  *string
		mismatch bool
	}{
		{"same person", domain.StringPtr("KIM MIN-SU"), domain.StringPtr("Kim Minsu"), false},
		{"substring", domain.StringPtr("Kim"), domain.StringPtr("Kim Minsu"), false},
		{"different person", domain.StringPtr("Lee Jiwon"), domain.StringPtr("Kim Minsu"), true},
		{"no tbm name", nil, domain.StringPtr("Kim Minsu"), false},
		{"no document name", domain.StringPtr("Lee Jiwon"), nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := tbmDoc()
			doc.InspectorName = tt.docName
			issues := Validate(doc, &domain.TBMContext{ExtractedInspector: tt.tbmName})
			if !tt.mismatch {
				assert.Empty(t, issues)
				return
			}
			require.Len(t, issues, 1)
			assert.Equal(t, RuleInspectorMismatch, issues[0].RuleID)
			assert.Equal(t, domain.SeverityInfo, issues[0].Severity)
		})
	}
}
