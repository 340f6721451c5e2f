package text

import (
	"strings"
	"testing"

	"github.com/custodia-labs/safeaudit-core/internal/core/domain"
	"github.com/custodia-labs/safeaudit-core/internal/rules"
)

func TestFormat_NoIssues(t *testing.T) {
	out := NewFormatter().Format(&domain.ValidationResult{}, Options{NoColor: true})

	if !strings.Contains(out, "No issues found.") {
		t.Errorf("expected no-issues line, got %q", out)
	}
	if !strings.Contains(out, "0 error(s), 0 warning(s), 0 info") {
		t.Errorf("expected summary, got %q", out)
	}
}

func TestFormat_Issues(t *testing.T) {
	documented := domain.RiskLevelLow
	result := &domain.ValidationResult{
		Issues: []domain.ValidationIssue{
			{
				Severity: domain.SeverityError,
				Title:    "Harness missing",
				Message:  rules.FormatMessage("Work at height without a harness.", "Stop work.", "FALL-02"),
				RuleID:   "rule_height_harness",
				Path:     "checklist[2]",
				Stage:    domain.StageRuleCatalog,
			},
			{
				Severity:    domain.SeverityInfo,
				Title:       "Inspector not recorded",
				Message:     "No inspector name.",
				RuleID:      "field_missing_inspector",
				IsAIFixable: true,
				Stage:       domain.StageRuleCatalog,
			},
		},
		Counts: domain.IssueCounts{Error: 1, Info: 1},
		Risk: &domain.RiskCalculation{
			RiskScore:      40,
			CalculatedTier: domain.RiskLevelMedium,
			DocumentedTier: &documented,
		},
		StageFailures: []domain.StageFailure{{Stage: domain.StagePlan, Reason: "plan malformed"}},
	}

	tests := []struct {
		name    string
		verbose bool
		want    []string
		notWant []string
	}{
		{
			name: "compact",
			want: []string{
				"RULE_CATALOG",
				"ERROR Harness missing (checklist[2])",
				"Work at height without a harness.",
				"[auto-fixable]",
				"Risk score 40 (medium), documented low",
				"stage failed structured_plan: plan malformed",
				"1 error(s), 0 warning(s), 1 info",
			},
			notWant: []string{"Stop work.", "FALL-02"},
		},
		{
			name:    "verbose",
			verbose: true,
			want:    []string{"-> Stop work.", "ref FALL-02, rule rule_height_harness"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := NewFormatter().Format(result, Options{NoColor: true, Verbose: tt.verbose})
			for _, w := range tt.want {
				if !strings.Contains(out, w) {
					t.Errorf("expected %q in output:\n%s", w, out)
				}
			}
			for _, w := range tt.notWant {
				if strings.Contains(out, w) {
					t.Errorf("did not expect %q in output:\n%s", w, out)
				}
			}
		})
	}
}
