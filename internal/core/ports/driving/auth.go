package driving

import (
	"context"

	"github.com/custodia-labs/safeaudit-core/internal/core/domain"
)

// AuthService issues and validates API access tokens
type AuthService interface {
	// IssueToken exchanges client credentials for a signed token
	IssueToken(ctx context.Context, req domain.TokenRequest) (*domain.TokenResponse, error)

	// ValidateToken validates a JWT token and returns the auth context
	ValidateToken(ctx context.Context, token string) (*domain.AuthContext, error)
}
