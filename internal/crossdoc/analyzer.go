// Package crossdoc looks for timeline gaps, contradictions and repetition
// across the recent report history of one project.
package crossdoc

import (
	"context"
	"fmt"
	"log/slog"
	"runtime/debug"
	"sort"
	"strings"
	"time"

	"github.com/custodia-labs/safeaudit-core/internal/core/domain"
	"github.com/custodia-labs/safeaudit-core/internal/core/ports/driven"
	"github.com/custodia-labs/safeaudit-core/internal/hazard"
)

// Stable codes of cross-document findings
const (
	CodeTimelineGap      = "crossdoc_timeline_gap"
	CodeSiteRiskConflict = "crossdoc_site_risk_conflict"
	CodeSameDateWork     = "crossdoc_same_date_work"
	CodeRepeatedWork     = "crossdoc_repeated_work"
	CodeChecklistCopy    = "crossdoc_checklist_copy"
)

// Detection cutoffs
const (
	GapInfoDays       = 5
	GapWarnDays       = 10
	RepeatInfoCount   = 4
	RepeatWarnCount   = 6
	CopyFingerprints  = 5
	DefaultWindow     = 30 * 24 * time.Hour
	DefaultMaxReports = 100
)

// Config holds analyzer dependencies
type Config struct {
	History    driven.HistoryStore
	Logger     *slog.Logger
	Window     time.Duration
	MaxReports int
	// Now is the clock used for the history window; defaults to time.Now
	Now func() time.Time
}

// Analyzer runs the cross-document checks
type Analyzer struct {
	history    driven.HistoryStore
	logger     *slog.Logger
	window     time.Duration
	maxReports int
	now        func() time.Time
}

// NewAnalyzer creates an Analyzer
func NewAnalyzer(cfg Config) *Analyzer {
	a := &Analyzer{
		history:    cfg.History,
		logger:     cfg.Logger,
		window:     cfg.Window,
		maxReports: cfg.MaxReports,
		now:        cfg.Now,
	}
	if a.logger == nil {
		a.logger = slog.Default()
	}
	if a.window <= 0 {
		a.window = DefaultWindow
	}
	if a.maxReports <= 0 {
		a.maxReports = DefaultMaxReports
	}
	if a.now == nil {
		a.now = time.Now
	}
	return a
}

// Analyze loads the project's recent history, minus the in-flight report, and runs Detect on it
func (a *Analyzer) Analyze(ctx context.Context, projectID, excludeReportID string) ([]domain.CrossDocumentIssue, error) {
	if projectID == "" {
		return nil, domain.ErrStageSkipped
	}
	if a.history == nil {
		return nil, fmt.Errorf("%w: no history store configured", domain.ErrHistoryUnavailable)
	}

	reports, err := a.history.ListRecent(ctx, domain.HistoryQuery{
		ProjectID:       projectID,
		ExcludeReportID: excludeReportID,
		Since:           a.now().Add(-a.window),
		Limit:           a.maxReports,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrHistoryUnavailable, err)
	}

	return a.Detect(reports), nil
}

// Detect runs every sub-analysis on the given reports. A sub-analysis that
// panics is logged and contributes nothing.
func (a *Analyzer) Detect(reports []*domain.HistoricalReport) []domain.CrossDocumentIssue {
	reports = compact(reports)
	if len(reports) < 2 {
		return nil
	}

	checks := []struct {
		name string
		fn   func([]*domain.HistoricalReport) []domain.CrossDocumentIssue
	}{
		{"timeline", timelineGaps},
		{"site_risk", siteRiskConflicts},
		{"same_date", sameDateWork},
		{"repeated_work", repeatedWork},
		{"checklist_copy", checklistCopies},
	}

	var issues []domain.CrossDocumentIssue
	for _, c := range checks {
		issues = append(issues, a.safely(c.name, c.fn, reports)...)
	}
	return issues
}

// Detect runs the sub-analyses with the default logger
func Detect(reports []*domain.HistoricalReport) []domain.CrossDocumentIssue {
	return NewAnalyzer(Config{}).Detect(reports)
}

func (a *Analyzer) safely(name string, fn func([]*domain.HistoricalReport) []domain.CrossDocumentIssue, reports []*domain.HistoricalReport) (out []domain.CrossDocumentIssue) {
	defer func() {
		if r := recover(); r != nil {
			a.logger.Error("cross-document check panicked",
				"check", name,
				"panic", r,
				"stack", string(debug.Stack()))
			out = nil
		}
	}()
	return fn(reports)
}

func compact(reports []*domain.HistoricalReport) []*domain.HistoricalReport {
	out := make([]*domain.HistoricalReport, 0, len(reports))
	for _, r := range reports {
		if r != nil {
			out = append(out, r)
		}
	}
	return out
}

// normalizeText folds case and width and collapses internal whitespace
func normalizeText(s string) string {
	return strings.Join(strings.Fields(hazard.Fold(s)), " ")
}

type datedReport struct {
	report *domain.HistoricalReport
	date   time.Time
}

func datedReports(reports []*domain.HistoricalReport) []datedReport {
	var dated []datedReport
	for _, r := range reports {
		if d, ok := ParseInspectionDate(domain.Deref(r.Fields.InspectionDate)); ok {
			dated = append(dated, datedReport{report: r, date: d})
		}
	}
	sort.SliceStable(dated, func(i, j int) bool {
		return dated[i].date.Before(dated[j].date)
	})
	return dated
}

func timelineGaps(reports []*domain.HistoricalReport) []domain.CrossDocumentIssue {
	dated := datedReports(reports)

	var issues []domain.CrossDocumentIssue
	for i := 1; i < len(dated); i++ {
		prev, cur := dated[i-1], dated[i]
		gap := daysBetween(prev.date, cur.date)

		var sev domain.Severity
		switch {
		case gap > GapWarnDays:
			sev = domain.SeverityWarn
		case gap > GapInfoDays:
			sev = domain.SeverityInfo
		default:
			continue
		}

		issues = append(issues, domain.CrossDocumentIssue{
			Type:             domain.CrossDocTimelineGap,
			Code:             CodeTimelineGap,
			Severity:         sev,
			RelatedReportIDs: []string{prev.report.ID, cur.report.ID},
			Details: fmt.Sprintf("No inspection recorded for %d days between %s and %s.",
				gap, prev.date.Format("2006-01-02"), cur.date.Format("2006-01-02")),
		})
	}
	return issues
}

// group keeps insertion order so findings come out deterministically
type group struct {
	keys  []string
	items map[string][]*domain.HistoricalReport
}

func newGroup() *group {
	return &group{items: make(map[string][]*domain.HistoricalReport)}
}

func (g *group) add(key string, r *domain.HistoricalReport) {
	if _, ok := g.items[key]; !ok {
		g.keys = append(g.keys, key)
	}
	g.items[key] = append(g.items[key], r)
}

func ids(reports []*domain.HistoricalReport) []string {
	out := make([]string, len(reports))
	for i, r := range reports {
		out[i] = r.ID
	}
	return out
}

func siteRiskConflicts(reports []*domain.HistoricalReport) []domain.CrossDocumentIssue {
	sites := newGroup()
	for _, r := range reports {
		if site := normalizeText(domain.Deref(r.Fields.SiteName)); site != "" {
			sites.add(site, r)
		}
	}

	var issues []domain.CrossDocumentIssue
	for _, site := range sites.keys {
		var high, low []*domain.HistoricalReport
		for _, r := range sites.items[site] {
			if r.RiskLevel == nil {
				continue
			}
			switch *r.RiskLevel {
			case domain.RiskLevelHigh, domain.RiskLevelCritical:
				high = append(high, r)
			case domain.RiskLevelLow:
				low = append(low, r)
			}
		}
		if len(high) == 0 || len(low) == 0 {
			continue
		}

		issues = append(issues, domain.CrossDocumentIssue{
			Type:             domain.CrossDocContradiction,
			Code:             CodeSiteRiskConflict,
			Severity:         domain.SeverityWarn,
			RelatedReportIDs: append(ids(high), ids(low)...),
			Details: fmt.Sprintf("Site %q is rated high/critical in %d report(s) and low in %d report(s).",
				site, len(high), len(low)),
		})
	}
	return issues
}

func sameDateWork(reports []*domain.HistoricalReport) []domain.CrossDocumentIssue {
	days := newGroup()
	for _, d := range datedReports(reports) {
		if normalizeText(domain.Deref(d.report.Fields.WorkDescription)) == "" {
			continue
		}
		days.add(d.date.Format("2006-01-02"), d.report)
	}

	var issues []domain.CrossDocumentIssue
	for _, day := range days.keys {
		distinct := make(map[string]bool)
		for _, r := range days.items[day] {
			distinct[normalizeText(domain.Deref(r.Fields.WorkDescription))] = true
		}
		if len(distinct) < 2 {
			continue
		}
		issues = append(issues, domain.CrossDocumentIssue{
			Type:             domain.CrossDocContradiction,
			Code:             CodeSameDateWork,
			Severity:         domain.SeverityInfo,
			RelatedReportIDs: ids(days.items[day]),
			Details:          fmt.Sprintf("%d different work descriptions were recorded on %s.", len(distinct), day),
		})
	}
	return issues
}

func repeatedWork(reports []*domain.HistoricalReport) []domain.CrossDocumentIssue {
	work := newGroup()
	for _, r := range reports {
		if desc := normalizeText(domain.Deref(r.Fields.WorkDescription)); desc != "" {
			work.add(desc, r)
		}
	}

	var issues []domain.CrossDocumentIssue
	for _, desc := range work.keys {
		matched := work.items[desc]
		var sev domain.Severity
		switch {
		case len(matched) >= RepeatWarnCount:
			sev = domain.SeverityWarn
		case len(matched) >= RepeatInfoCount:
			sev = domain.SeverityInfo
		default:
			continue
		}
		issues = append(issues, domain.CrossDocumentIssue{
			Type:             domain.CrossDocRepetition,
			Code:             CodeRepeatedWork,
			Severity:         sev,
			RelatedReportIDs: ids(matched),
			Details:          fmt.Sprintf("Work description %q appears in %d reports.", desc, len(matched)),
		})
	}
	return issues
}

func checklistCopies(reports []*domain.HistoricalReport) []domain.CrossDocumentIssue {
	prints := newGroup()
	for _, r := range reports {
		if fp := domain.Fingerprint(r.Checklist); fp != "" {
			prints.add(fp, r)
		}
	}

	var issues []domain.CrossDocumentIssue
	for _, fp := range prints.keys {
		matched := prints.items[fp]
		if len(matched) < CopyFingerprints {
			continue
		}
		issues = append(issues, domain.CrossDocumentIssue{
			Type:             domain.CrossDocRepetition,
			Code:             CodeChecklistCopy,
			Severity:         domain.SeverityWarn,
			RelatedReportIDs: ids(matched),
			Details:          fmt.Sprintf("%d reports have an identical checklist; possible copy-paste.", len(matched)),
		})
	}
	return issues
}
