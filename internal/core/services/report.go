package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/custodia-labs/safeaudit-core/internal/core/domain"
	"github.com/custodia-labs/safeaudit-core/internal/core/ports/driven"
	"github.com/custodia-labs/safeaudit-core/internal/core/ports/driving"
)

// Ensure reportService implements ReportService
var _ driving.ReportService = (*reportService)(nil)

type reportService struct {
	validator driving.ValidationService
	reports   driven.ReportStore
	cache     driven.HistoryInvalidator
	logger    *slog.Logger
	now       func() time.Time
}

// ReportServiceConfig holds dependencies for the report service
type ReportServiceConfig struct {
	Validator driving.ValidationService
	Reports   driven.ReportStore
	// Cache is optional; when set, the project's cached history is dropped after each save
	Cache  driven.HistoryInvalidator
	Logger *slog.Logger
	Now    func() time.Time
}

// NewReportService creates a new ReportService
func NewReportService(cfg ReportServiceConfig) driving.ReportService {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	now := cfg.Now
	if now == nil {
		now = time.Now
	}
	return &reportService{
		validator: cfg.Validator,
		reports:   cfg.Reports,
		cache:     cfg.Cache,
		logger:    logger,
		now:       now,
	}
}

// Submit validates the document and persists it. The report id is generated
// before validation so history reads exclude the report being created.
func (s *reportService) Submit(ctx context.Context, req domain.SubmitReportRequest) (*domain.ValidationResult, error) {
	if req.Document == nil {
		return nil, fmt.Errorf("%w: document is required", domain.ErrInvalidInput)
	}
	if req.ProjectID == "" {
		return nil, fmt.Errorf("%w: project_id is required", domain.ErrInvalidInput)
	}
	if req.ReportID == "" {
		req.ReportID = uuid.NewString()
	}

	result, err := s.validator.Validate(ctx, req.ValidationRequest)
	if err != nil {
		return nil, err
	}

	report := &domain.Report{
		ID:                result.ReportID,
		ProjectID:         req.ProjectID,
		Document:          *req.Document,
		Issues:            result.Issues,
		Risk:              result.Risk,
		CompletionMinutes: req.CompletionMinutes,
		CreatedAt:         s.now(),
	}
	if err := s.reports.Save(ctx, report); err != nil {
		return nil, fmt.Errorf("save report: %w", err)
	}

	if s.cache != nil {
		if err := s.cache.Invalidate(ctx, req.ProjectID); err != nil {
			s.logger.Warn("failed to invalidate history cache",
				"project_id", req.ProjectID,
				"error", err)
		}
	}

	s.logger.Info("report stored",
		"report_id", report.ID,
		"project_id", report.ProjectID,
		"issues", len(report.Issues))
	return result, nil
}

// Get retrieves a stored report
func (s *reportService) Get(ctx context.Context, id string) (*domain.Report, error) {
	if id == "" {
		return nil, domain.ErrInvalidInput
	}
	return s.reports.Get(ctx, id)
}
