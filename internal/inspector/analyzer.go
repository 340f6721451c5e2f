// Package inspector detects suspicious behaviour in one inspector's recent
// reports: checklists that are always fully checked, copied checklists, and
// forms completed implausibly fast.
package inspector

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"time"

	"github.com/custodia-labs/safeaudit-core/internal/core/domain"
	"github.com/custodia-labs/safeaudit-core/internal/core/ports/driven"
)

const (
	DefaultWindow     = 30 * 24 * time.Hour
	DefaultMaxReports = 200

	// AlwaysCheckedErrorRate is the rate above which always-check is an error
	AlwaysCheckedErrorRate = 0.98
	// CopyPasteErrorShare is the weighted share of copied reports that makes copy-paste an error
	CopyPasteErrorShare = 0.5

	RapidWarnCount = 10
	RapidInfoCount = 5
)

// Risk level cutoffs for the cumulative score
const (
	ScoreCritical = 80
	ScoreHigh     = 50
	ScoreMedium   = 30
)

// Config holds analyzer dependencies
type Config struct {
	History    driven.HistoryStore
	Logger     *slog.Logger
	Window     time.Duration
	MaxReports int
	Now        func() time.Time
}

// Analyzer evaluates inspector patterns against project history
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

// Analyze loads the project's recent reports, keeps those by the same
// (normalized) inspector and evaluates the patterns
func (a *Analyzer) Analyze(ctx context.Context, inspectorName, projectID string, th domain.Thresholds) (*domain.InspectorAnalysis, error) {
	normalized := NormalizeName(inspectorName)
	if normalized == "" || projectID == "" {
		return nil, domain.ErrStageSkipped
	}
	if a.history == nil {
		return nil, fmt.Errorf("%w: no history store configured", domain.ErrHistoryUnavailable)
	}

	now := a.now()
	reports, err := a.history.ListRecent(ctx, domain.HistoryQuery{
		ProjectID: projectID,
		Since:     now.Add(-a.window),
		Limit:     a.maxReports,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrHistoryUnavailable, err)
	}

	var mine []*domain.HistoricalReport
	for _, r := range reports {
		if r != nil && NormalizeName(r.InspectorName) == normalized {
			mine = append(mine, r)
		}
	}

	analysis := Detect(inspectorName, mine, now, th)
	if len(analysis.Warnings) > 0 {
		a.logger.Info("inspector patterns detected",
			"inspector", normalized,
			"project_id", projectID,
			"reports", analysis.DocumentCount,
			"score", analysis.Score)
	}
	return analysis, nil
}

// Detect evaluates the patterns over reports already filtered to one inspector.
// Fewer than MinPatternSample reports yields an analysis without warnings.
func Detect(inspectorName string, reports []*domain.HistoricalReport, now time.Time, th domain.Thresholds) *domain.InspectorAnalysis {
	analysis := &domain.InspectorAnalysis{
		InspectorName:  inspectorName,
		NormalizedName: NormalizeName(inspectorName),
		DocumentCount:  len(reports),
		Warnings:       []domain.PatternWarning{},
		RiskLevel:      domain.RiskLevelLow,
	}
	if len(reports) == 0 || len(reports) < th.MinPatternSample {
		return analysis
	}

	s := newSample(reports, now)
	for _, detect := range []func(*sample, domain.Thresholds) (domain.PatternWarning, bool){
		alwaysChecked,
		copyPaste,
		rapidCompletion,
	} {
		if w, ok := detect(s, th); ok {
			w.InspectorName = inspectorName
			w.DocumentCount = len(reports)
			w.Score = contribution(w)
			analysis.Warnings = append(analysis.Warnings, w)
		}
	}

	analysis.Score = Score(analysis.Warnings)
	analysis.RiskLevel = LevelFor(analysis.Score)
	return analysis
}

// sample is the weighted report set shared by the detectors
type sample struct {
	reports  []*domain.HistoricalReport
	weights  []float64
	spanDays float64
}

func newSample(reports []*domain.HistoricalReport, now time.Time) *sample {
	s := &sample{reports: reports, weights: make([]float64, len(reports))}
	first, last := reports[0].CreatedAt, reports[0].CreatedAt
	for i, r := range reports {
		s.weights[i] = TimeWeight(now.Sub(r.CreatedAt).Hours() / 24)
		if r.CreatedAt.Before(first) {
			first = r.CreatedAt
		}
		if r.CreatedAt.After(last) {
			last = r.CreatedAt
		}
	}
	s.spanDays = last.Sub(first).Hours() / 24
	return s
}

func alwaysChecked(s *sample, th domain.Thresholds) (domain.PatternWarning, bool) {
	var checked, total float64
	for i, r := range s.reports {
		for _, item := range r.Checklist {
			if !item.Value.IsRecorded() {
				continue
			}
			total += s.weights[i]
			if item.Value == domain.ValueChecked {
				checked += s.weights[i]
			}
		}
	}
	if total == 0 {
		return domain.PatternWarning{}, false
	}

	rate := checked / total
	if rate <= th.AlwaysCheckedRate {
		return domain.PatternWarning{}, false
	}

	sev := domain.SeverityWarn
	if rate > AlwaysCheckedErrorRate {
		sev = domain.SeverityError
	}
	extremity := (rate - th.AlwaysCheckedRate) / (1 - th.AlwaysCheckedRate)
	return domain.PatternWarning{
		Type:       domain.PatternAlwaysCheck,
		Severity:   sev,
		Confidence: Confidence(len(s.reports), s.spanDays, extremity),
		Statistic:  rate,
		Details: fmt.Sprintf("%.1f%% of checklist items were marked checked across %d reports (time-weighted).",
			rate*100, len(s.reports)),
	}, true
}

func copyPaste(s *sample, th domain.Thresholds) (domain.PatternWarning, bool) {
	groups := make(map[string][]int)
	for i, r := range s.reports {
		if fp := domain.Fingerprint(r.Checklist); fp != "" {
			groups[fp] = append(groups[fp], i)
		}
	}

	var copiedWeight, totalWeight float64
	copied, largest := 0, 0
	for _, w := range s.weights {
		totalWeight += w
	}
	for _, members := range groups {
		if len(members) > largest {
			largest = len(members)
		}
		if len(members) < th.CopyPasteCount {
			continue
		}
		copied += len(members)
		for _, i := range members {
			copiedWeight += s.weights[i]
		}
	}
	if copied == 0 || totalWeight == 0 {
		return domain.PatternWarning{}, false
	}

	share := copiedWeight / totalWeight
	sev := domain.SeverityWarn
	if share >= CopyPasteErrorShare {
		sev = domain.SeverityError
	}
	return domain.PatternWarning{
		Type:       domain.PatternCopyPaste,
		Severity:   sev,
		Confidence: Confidence(len(s.reports), s.spanDays, share),
		Statistic:  share,
		Details: fmt.Sprintf("%d of %d reports share an identical checklist (largest group %d, weighted share %.0f%%).",
			copied, len(s.reports), largest, share*100),
	}, true
}

func rapidCompletion(s *sample, th domain.Thresholds) (domain.PatternWarning, bool) {
	rapid := 0
	for _, r := range s.reports {
		if r.CompletionMinutes != nil && *r.CompletionMinutes < th.RapidCompletionMinutes {
			rapid++
		}
	}

	var sev domain.Severity
	switch {
	case rapid >= RapidWarnCount:
		sev = domain.SeverityWarn
	case rapid >= RapidInfoCount:
		sev = domain.SeverityInfo
	default:
		return domain.PatternWarning{}, false
	}

	return domain.PatternWarning{
		Type:       domain.PatternRapidCompletion,
		Severity:   sev,
		Confidence: Confidence(len(s.reports), s.spanDays, float64(rapid)/RapidWarnCount),
		Statistic:  float64(rapid),
		Details: fmt.Sprintf("%d reports were completed in under %.0f minutes.",
			rapid, th.RapidCompletionMinutes),
	}, true
}

func contribution(w domain.PatternWarning) float64 {
	return w.Type.BasePoints() * float64(w.Confidence) / 100
}

// Score sums base points scaled by confidence over the fired patterns
func Score(warnings []domain.PatternWarning) float64 {
	total := 0.0
	for _, w := range warnings {
		total += contribution(w)
	}
	return math.Round(total*100) / 100
}

// LevelFor maps a cumulative pattern score to a risk level
func LevelFor(score float64) domain.RiskLevel {
	switch {
	case score >= ScoreCritical:
		return domain.RiskLevelCritical
	case score >= ScoreHigh:
		return domain.RiskLevelHigh
	case score >= ScoreMedium:
		return domain.RiskLevelMedium
	default:
		return domain.RiskLevelLow
	}
}
