package driven

import (
	"context"

	"github.com/custodia-labs/safeaudit-core/internal/core/domain"
)

// ClientStore looks up API clients allowed to request tokens
type ClientStore interface {
	// Get retrieves a client by ID, returning domain.ErrNotFound if unknown
	Get(ctx context.Context, id string) (*domain.APIClient, error)
}
