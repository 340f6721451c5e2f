package driving

import (
	"context"

	"github.com/custodia-labs/safeaudit-core/internal/core/domain"
)

// ValidationService runs the validation pipeline
type ValidationService interface {
	// Validate runs every applicable stage on the document. Optional stage
	// failures are reported in the result, never as an error.
	Validate(ctx context.Context, req domain.ValidationRequest) (*domain.ValidationResult, error)

	// CrossCheckPhoto compares a photo checklist with a document checklist
	CrossCheckPhoto(req domain.PhotoCheckRequest) domain.PhotoCrossCheckResult

	// Thresholds returns the configuration the pipeline runs with
	Thresholds() domain.Thresholds
}
