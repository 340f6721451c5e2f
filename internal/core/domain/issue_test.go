package domain

import "testing"

func TestStageOrder(t *testing.T) {
	expected := []Stage{
		StageRuleCatalog,
		StagePlan,
		StageRisk,
		StageCrossDocument,
		StagePattern,
		StageTBM,
		StagePhoto,
	}

	for i, st := range expected {
		if st.Order() != i {
			t.Errorf("expected %s at position %d, got %d", st, i, st.Order())
		}
	}

	if Stage("unknown").Order() != len(StageOrder) {
		t.Error("unknown stage should sort last")
	}
}

func TestCountIssues(t *testing.T) {
	issues := []ValidationIssue{
		{Severity: SeverityError},
		{Severity: SeverityWarn},
		{Severity: SeverityWarn},
		{Severity: SeverityInfo},
	}

	c := CountIssues(issues)
	if c.Error != 1 || c.Warn != 2 || c.Info != 1 {
		t.Errorf("unexpected counts: %+v", c)
	}

	empty := CountIssues(nil)
	if empty != (IssueCounts{}) {
		t.Errorf("expected zero counts, got %+v", empty)
	}
}

func TestPatternType_BasePoints(t *testing.T) {
	if PatternAlwaysCheck.BasePoints() != 50 {
		t.Errorf("expected 50, got %v", PatternAlwaysCheck.BasePoints())
	}
	if PatternCopyPaste.BasePoints() != 30 {
		t.Errorf("expected 30, got %v", PatternCopyPaste.BasePoints())
	}
	if PatternRapidCompletion.BasePoints() != 20 {
		t.Errorf("expected 20, got %v", PatternRapidCompletion.BasePoints())
	}
	if PatternType("other").BasePoints() != 0 {
		t.Error("unknown pattern should score zero")
	}
}

func TestRiskCalculation_TierGap(t *testing.T) {
	calc := &RiskCalculation{CalculatedTier: RiskLevelCritical}
	if _, ok := calc.TierGap(); ok {
		t.Error("expected no gap without a documented tier")
	}

	calc.DocumentedTier = RiskLevelPtr(RiskLevelLow)
	gap, ok := calc.TierGap()
	if !ok || gap != 3 {
		t.Errorf("expected gap 3, got %d (ok=%t)", gap, ok)
	}
}
