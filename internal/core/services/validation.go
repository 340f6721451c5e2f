package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"runtime/debug"
	"sort"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/custodia-labs/safeaudit-core/internal/aggregate"
	"github.com/custodia-labs/safeaudit-core/internal/core/domain"
	"github.com/custodia-labs/safeaudit-core/internal/core/ports/driven"
	"github.com/custodia-labs/safeaudit-core/internal/core/ports/driving"
	"github.com/custodia-labs/safeaudit-core/internal/crossdoc"
	"github.com/custodia-labs/safeaudit-core/internal/inspector"
	"github.com/custodia-labs/safeaudit-core/internal/photocheck"
	"github.com/custodia-labs/safeaudit-core/internal/plancheck"
	"github.com/custodia-labs/safeaudit-core/internal/riskmatrix"
	"github.com/custodia-labs/safeaudit-core/internal/rules"
	"github.com/custodia-labs/safeaudit-core/internal/tbm"
)

// DefaultStageTimeout bounds each optional stage, including its history or plan reads
const DefaultStageTimeout = 10 * time.Second

// Ensure ValidationService implements driving.ValidationService
var _ driving.ValidationService = (*ValidationService)(nil)

// ValidationService runs the validation pipeline:
//  1. Rule catalog (synchronous, cannot fail)
//  2. Structured plan, risk matrix, cross-document and TBM stages in parallel
//  3. Inspector pattern stage
//  4. Photo cross-check, when a photo analysis is supplied
//  5. Aggregation in fixed stage order
//
// Every stage after the rule catalog is optional: an error or panic is logged,
// recorded in ValidationResult.StageFailures and contributes no issues.
type ValidationService struct {
	evaluator    *rules.Evaluator
	crossDoc     *crossdoc.Analyzer
	inspector    *inspector.Analyzer
	history      driven.HistoryStore
	plans        driven.PlanStore
	aggregator   aggregate.Aggregator
	thresholds   domain.Thresholds
	stageTimeout time.Duration
	logger       *slog.Logger
	now          func() time.Time
	newID        func() string
}

// ValidationServiceConfig holds dependencies for ValidationService.
// History and Plans are optional; without them the stages that need them are skipped.
type ValidationServiceConfig struct {
	Thresholds   domain.Thresholds
	History      driven.HistoryStore
	Plans        driven.PlanStore
	StageTimeout time.Duration
	Logger       *slog.Logger
	Now          func() time.Time
	// NewID generates report and issue ids; defaults to uuid.NewString
	NewID func() string
}

// NewValidationService creates the pipeline. Invalid thresholds fail here
// rather than on every document.
func NewValidationService(cfg ValidationServiceConfig) (*ValidationService, error) {
	evaluator, err := rules.NewEvaluator(cfg.Thresholds)
	if err != nil {
		return nil, err
	}

	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	now := cfg.Now
	if now == nil {
		now = time.Now
	}
	newID := cfg.NewID
	if newID == nil {
		newID = uuid.NewString
	}
	timeout := cfg.StageTimeout
	if timeout <= 0 {
		timeout = DefaultStageTimeout
	}

	return &ValidationService{
		evaluator: evaluator,
		crossDoc: crossdoc.NewAnalyzer(crossdoc.Config{
			History: cfg.History,
			Logger:  logger,
			Now:     now,
		}),
		inspector: inspector.NewAnalyzer(inspector.Config{
			History: cfg.History,
			Logger:  logger,
			Now:     now,
		}),
		history:      cfg.History,
		plans:        cfg.Plans,
		aggregator:   aggregate.Aggregator{NewID: newID},
		thresholds:   cfg.Thresholds,
		stageTimeout: timeout,
		logger:       logger,
		now:          now,
		newID:        newID,
	}, nil
}

// Thresholds returns the configuration the pipeline runs with
func (s *ValidationService) Thresholds() domain.Thresholds {
	return s.thresholds
}

// StageResult is the outcome of one optional stage: its issues, or the
// reason it failed or was skipped
type StageResult struct {
	Stage   domain.Stage
	Issues  []domain.ValidationIssue
	Err     error
	Skipped bool
}

// Validate runs the pipeline on one document
func (s *ValidationService) Validate(ctx context.Context, req domain.ValidationRequest) (*domain.ValidationResult, error) {
	if req.Document == nil {
		return nil, fmt.Errorf("%w: document is required", domain.ErrInvalidInput)
	}

	start := s.now()
	doc := req.Document
	reportID := req.ReportID
	if reportID == "" {
		reportID = s.newID()
	}

	result := &domain.ValidationResult{
		ReportID:    reportID,
		ProjectID:   req.ProjectID,
		ValidatedAt: start,
	}

	// Stage 1-2
	ruleIssues := s.evaluator.Evaluate(doc)

	// Stage 3: independent stages
	var (
		planRes, riskRes, crossRes, tbmRes StageResult
		riskCalc                           domain.RiskCalculation
		crossFound                         []domain.CrossDocumentIssue
	)

	var g errgroup.Group
	g.Go(func() error {
		planRes = s.runStage(ctx, domain.StagePlan, func(ctx context.Context) ([]domain.ValidationIssue, error) {
			return s.planStage(ctx, doc, req.ProjectID)
		})
		return nil
	})
	g.Go(func() error {
		riskRes = s.runStage(ctx, domain.StageRisk, func(context.Context) ([]domain.ValidationIssue, error) {
			riskCalc = riskmatrix.Calculate(doc)
			return riskmatrix.Issues(riskCalc), nil
		})
		return nil
	})
	g.Go(func() error {
		crossRes = s.runStage(ctx, domain.StageCrossDocument, func(ctx context.Context) ([]domain.ValidationIssue, error) {
			if req.ProjectID == "" || s.history == nil {
				return nil, domain.ErrStageSkipped
			}
			found, err := s.crossDoc.Analyze(ctx, req.ProjectID, reportID)
			if err != nil {
				return nil, err
			}
			crossFound = found
			return crossdoc.ToIssues(found), nil
		})
		return nil
	})
	g.Go(func() error {
		tbmRes = s.runStage(ctx, domain.StageTBM, func(context.Context) ([]domain.ValidationIssue, error) {
			if req.TBM == nil {
				return nil, domain.ErrStageSkipped
			}
			return tbm.Validate(doc, req.TBM), nil
		})
		return nil
	})
	_ = g.Wait()

	if riskRes.Err == nil {
		calc := riskCalc
		result.Risk = &calc
	}
	result.CrossDocument = crossFound

	// Stage 4
	var analysis *domain.InspectorAnalysis
	patternRes := s.runStage(ctx, domain.StagePattern, func(ctx context.Context) ([]domain.ValidationIssue, error) {
		if req.ProjectID == "" || doc.Inspector() == "" || s.history == nil {
			return nil, domain.ErrStageSkipped
		}
		a, err := s.inspector.Analyze(ctx, doc.Inspector(), req.ProjectID, s.thresholds)
		if err != nil {
			return nil, err
		}
		analysis = a
		return inspector.ToIssues(a), nil
	})
	result.Inspector = analysis

	// Photo
	photoRes := s.runStage(ctx, domain.StagePhoto, func(context.Context) ([]domain.ValidationIssue, error) {
		if req.Photo == nil {
			return nil, domain.ErrStageSkipped
		}
		res := photocheck.CrossCheck(req.Photo.Checklist, doc.Checklist, req.PhotoLabel)
		result.Photo = &res
		return res.Issues, nil
	})

	stages := []StageResult{planRes, riskRes, crossRes, tbmRes, patternRes, photoRes}
	collected := []aggregate.StageIssues{{Stage: domain.StageRuleCatalog, Issues: ruleIssues}}
	for _, st := range stages {
		switch {
		case st.Skipped:
			result.Skipped = append(result.Skipped, st.Stage)
		case st.Err != nil:
			result.StageFailures = append(result.StageFailures, domain.StageFailure{
				Stage:  st.Stage,
				Reason: st.Err.Error(),
			})
			s.logger.Warn("validation stage failed",
				"stage", st.Stage,
				"report_id", reportID,
				"project_id", req.ProjectID,
				"error", st.Err)
		default:
			collected = append(collected, aggregate.StageIssues{Stage: st.Stage, Issues: st.Issues})
		}
	}
	sort.SliceStable(result.Skipped, func(i, j int) bool {
		return result.Skipped[i].Order() < result.Skipped[j].Order()
	})
	sort.SliceStable(result.StageFailures, func(i, j int) bool {
		return result.StageFailures[i].Stage.Order() < result.StageFailures[j].Stage.Order()
	})

	result.Issues = s.aggregator.Aggregate(collected...)
	if result.Photo != nil {
		result.Photo.Issues = stageIssues(result.Issues, domain.StagePhoto)
	}
	result.Counts = domain.CountIssues(result.Issues)
	result.Duration = s.now().Sub(start).Seconds()

	s.logger.Info("document validated",
		"report_id", reportID,
		"project_id", req.ProjectID,
		"issues", len(result.Issues),
		"errors", result.Counts.Error,
		"failed_stages", len(result.StageFailures),
		"duration", result.Duration)

	return result, nil
}

// stageIssues picks one stage's issues out of the aggregated list
func stageIssues(issues []domain.ValidationIssue, stage domain.Stage) []domain.ValidationIssue {
	out := []domain.ValidationIssue{}
	for _, issue := range issues {
		if issue.Stage == stage {
			out = append(out, issue)
		}
	}
	return out
}

func (s *ValidationService) planStage(ctx context.Context, doc *domain.NormalizedDocument, projectID string) ([]domain.ValidationIssue, error) {
	if projectID == "" || s.plans == nil {
		return nil, domain.ErrStageSkipped
	}
	raw, err := s.plans.GetMasterPlan(ctx, projectID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrStageSkipped
		}
		return nil, fmt.Errorf("load master plan: %w", err)
	}
	plan, err := plancheck.Parse(raw)
	if err != nil {
		return nil, err
	}
	if plan == nil {
		return nil, domain.ErrStageSkipped
	}
	return plancheck.Validate(doc, plan), nil
}

// runStage executes fn with a per-stage deadline, turning panics and errors
// into a failed StageResult
func (s *ValidationService) runStage(ctx context.Context, stage domain.Stage, fn func(context.Context) ([]domain.ValidationIssue, error)) (res StageResult) {
	res.Stage = stage

	sctx, cancel := context.WithTimeout(ctx, s.stageTimeout)
	defer cancel()

	defer func() {
		if r := recover(); r != nil {
			s.logger.Error("validation stage panicked",
				"stage", stage,
				"panic", r,
				"stack", string(debug.Stack()))
			res = StageResult{Stage: stage, Err: fmt.Errorf("panic: %v", r)}
		}
	}()

	issues, err := fn(sctx)
	switch {
	case errors.Is(err, domain.ErrStageSkipped):
		res.Skipped = true
	case err != nil:
		res.Err = err
	default:
		res.Issues = issues
	}
	return res
}

// CrossCheckPhoto compares a photo checklist with a document checklist
func (s *ValidationService) CrossCheckPhoto(req domain.PhotoCheckRequest) domain.PhotoCrossCheckResult {
	res := photocheck.CrossCheck(req.PhotoChecklist, req.DocumentChecklist, req.DocumentLabel)
	res.Issues = s.aggregator.Aggregate(aggregate.StageIssues{Stage: domain.StagePhoto, Issues: res.Issues})
	return res
}
