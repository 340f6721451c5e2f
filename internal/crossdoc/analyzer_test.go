package crossdoc

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/safeaudit-core/internal/core/domain"
	"github.com/custodia-labs/safeaudit-core/internal/core/ports/driven/mocks"
)

var baseTime = time.Date(2026, 3, 20, 9, 0, 0, 0, time.UTC)

func report(id, date string) *domain.HistoricalReport {
	r := &domain.HistoricalReport{
		ID:        id,
		ProjectID: "p1",
		CreatedAt: baseTime,
	}
	if date != "" {
		r.Fields.InspectionDate = domain.StringPtr(date)
	}
	return r
}

func withCodes(issues []domain.CrossDocumentIssue, code string) []domain.CrossDocumentIssue {
	var out []domain.CrossDocumentIssue
	for _, i := range issues {
		if i.Code == code {
			out = append(out, i)
		}
	}
	return out
}

func TestParseInspectionDate(t *testing.T) {
	want := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)
	for _, in := range []string{
		"2026-03-02",
		"2026-03-02T14:30:00",
		"2026-03-02T14:30:00+09:00",
		"2026.03.02",
		"2026/03/02",
		"2026. 3. 2.",
		"2026년 3월 2일",
	} {
		got, ok := ParseInspectionDate(in)
		require.True(t, ok, in)
		assert.True(t, want.Equal(got), "%s parsed as %s", in, got)
	}

	for _, in := range []string{"", "yesterday", "03/02/2026"} {
		_, ok := ParseInspectionDate(in)
		assert.False(t, ok, in)
	}
}

func TestDetect_TimelineGap(t *testing.T) {
	tests := []struct {
		name   string
		second string
		want   []domain.Severity
	}{
		{"3 days", "2026-03-04", nil},
		{"5 days", "2026-03-06", nil},
		{"6 days", "2026-03-07", []domain.Severity{domain.SeverityInfo}},
		{"10 days", "2026-03-11", []domain.Severity{domain.SeverityInfo}},
		{"12 days", "2026-03-13", []domain.Severity{domain.SeverityWarn}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// listed newest first to prove sorting by date
			issues := withCodes(Detect([]*domain.HistoricalReport{
				report("b", tt.second),
				report("a", "2026-03-01"),
			}), CodeTimelineGap)

			require.Len(t, issues, len(tt.want))
			for i, sev := range tt.want {
				assert.Equal(t, sev, issues[i].Severity)
				assert.Equal(t, domain.CrossDocTimelineGap, issues[i].Type)
				assert.Equal(t, []string{"a", "b"}, issues[i].RelatedReportIDs)
			}
		})
	}
}

func TestDetect_UnparsableDatesIgnored(t *testing.T) {
	issues := Detect([]*domain.HistoricalReport{
		report("a", "2026-03-01"),
		report("b", "sometime"),
		report("c", ""),
	})
	assert.Empty(t, withCodes(issues, CodeTimelineGap))
}

func TestDetect_SiteRiskConflict(t *testing.T) {
	a := report("a", "")
	a.Fields.SiteName = domain.StringPtr("Block  A")
	a.RiskLevel = domain.RiskLevelPtr(domain.RiskLevelCritical)
	b := report("b", "")
	b.Fields.SiteName = domain.StringPtr("block a")
	b.RiskLevel = domain.RiskLevelPtr(domain.RiskLevelLow)
	c := report("c", "")
	c.Fields.SiteName = domain.StringPtr("Block B")
	c.RiskLevel = domain.RiskLevelPtr(domain.RiskLevelLow)

	issues := withCodes(Detect([]*domain.HistoricalReport{a, b, c}), CodeSiteRiskConflict)
	require.Len(t, issues, 1)
	assert.Equal(t, domain.SeverityWarn, issues[0].Severity)
	assert.Equal(t, domain.CrossDocContradiction, issues[0].Type)
	assert.Equal(t, []string{"a", "b"}, issues[0].RelatedReportIDs)
}

func TestDetect_SameDateWork(t *testing.T) {
	a := report("a", "2026-03-01")
	a.Fields.WorkDescription = domain.StringPtr("Rebar placement")
	b := report("b", "2026.03.01")
	b.Fields.WorkDescription = domain.StringPtr("Formwork removal")
	c := report("c", "2026-03-02")
	c.Fields.WorkDescription = domain.StringPtr("Rebar placement")

	issues := withCodes(Detect([]*domain.HistoricalReport{a, b, c}), CodeSameDateWork)
	require.Len(t, issues, 1)
	assert.Equal(t, domain.SeverityInfo, issues[0].Severity)
	assert.ElementsMatch(t, []string{"a", "b"}, issues[0].RelatedReportIDs)
}

func TestDetect_RepeatedWork(t *testing.T) {
	build := func(n int) []*domain.HistoricalReport {
		var reports []*domain.HistoricalReport
		for i := 0; i < n; i++ {
			r := report(fmt.Sprintf("r%d", i), "")
			desc := "Pipe  installation"
			if i%2 == 1 {
				desc = " PIPE installation "
			}
			r.Fields.WorkDescription = domain.StringPtr(desc)
			reports = append(reports, r)
		}
		return reports
	}

	assert.Empty(t, withCodes(Detect(build(3)), CodeRepeatedWork))

	info := withCodes(Detect(build(4)), CodeRepeatedWork)
	require.Len(t, info, 1)
	assert.Equal(t, domain.SeverityInfo, info[0].Severity)
	assert.Len(t, info[0].RelatedReportIDs, 4)

	warn := withCodes(Detect(build(6)), CodeRepeatedWork)
	require.Len(t, warn, 1)
	assert.Equal(t, domain.SeverityWarn, warn[0].Severity)
}

func TestDetect_ChecklistCopy(t *testing.T) {
	var reports []*domain.HistoricalReport
	for i := 0; i < 5; i++ {
		r := report(fmt.Sprintf("r%d", i), "")
		r.Checklist = []domain.ChecklistItem{
			{ID: "ppe_01", Value: domain.ValueChecked},
			{ID: "fall_01", Value: domain.ValueChecked},
		}
		reports = append(reports, r)
	}

	issues := withCodes(Detect(reports), CodeChecklistCopy)
	require.Len(t, issues, 1)
	assert.Equal(t, domain.SeverityWarn, issues[0].Severity)
	assert.Equal(t, domain.CrossDocRepetition, issues[0].Type)

	reports[4].Checklist[0].Value = domain.ValueUnchecked
	assert.Empty(t, withCodes(Detect(reports), CodeChecklistCopy))
}

func TestDetect_TooFewReports(t *testing.T) {
	assert.Nil(t, Detect(nil))
	assert.Nil(t, Detect([]*domain.HistoricalReport{report("a", "2026-03-01"), nil}))
}

func TestSafely_RecoversPanic(t *testing.T) {
	a := NewAnalyzer(Config{})
	out := a.safely("boom", func([]*domain.HistoricalReport) []domain.CrossDocumentIssue {
		panic("boom")
	}, nil)
	assert.Nil(t, out)
}

func TestAnalyze(t *testing.T) {
	store := mocks.NewMockHistoryStore()
	old := report("old", "2026-01-01")
	old.CreatedAt = baseTime.Add(-40 * 24 * time.Hour)
	a := report("a", "2026-03-01")
	a.CreatedAt = baseTime.Add(-10 * 24 * time.Hour)
	b := report("b", "2026-03-13")
	b.CreatedAt = baseTime.Add(-2 * 24 * time.Hour)
	inflight := report("inflight", "2026-03-19")
	inflight.CreatedAt = baseTime
	store.Add(old, a, b, inflight)

	analyzer := NewAnalyzer(Config{
		History: store,
		Now:     func() time.Time { return baseTime },
	})

	issues, err := analyzer.Analyze(context.Background(), "p1", "inflight")
	require.NoError(t, err)
	require.Len(t, issues, 1)
	assert.Equal(t, CodeTimelineGap, issues[0].Code)
	assert.Equal(t, []string{"a", "b"}, issues[0].RelatedReportIDs)
}

func TestAnalyze_Errors(t *testing.T) {
	_, err := NewAnalyzer(Config{}).Analyze(context.Background(), "", "x")
	assert.ErrorIs(t, err, domain.ErrStageSkipped)

	_, err = NewAnalyzer(Config{}).Analyze(context.Background(), "p1", "x")
	assert.ErrorIs(t, err, domain.ErrHistoryUnavailable)

	store := mocks.NewMockHistoryStore()
	store.Err = errors.New("connection refused")
	_, err = NewAnalyzer(Config{History: store}).Analyze(context.Background(), "p1", "x")
	assert.ErrorIs(t, err, domain.ErrHistoryUnavailable)
}

func TestToIssues(t *testing.T) {
	assert.Nil(t, ToIssues(nil))

	issues := ToIssues([]domain.CrossDocumentIssue{{
		Type:             domain.CrossDocTimelineGap,
		Code:             CodeTimelineGap,
		Severity:         domain.SeverityWarn,
		RelatedReportIDs: []string{"a", "b"},
		Details:          "No inspection recorded for 12 days.",
	}})
	require.Len(t, issues, 1)
	assert.Equal(t, CodeTimelineGap, issues[0].RuleID)
	assert.Equal(t, domain.SeverityWarn, issues[0].Severity)
	assert.Equal(t, domain.StageCrossDocument, issues[0].Stage)
	assert.Contains(t, issues[0].Message, "12 days")
}
