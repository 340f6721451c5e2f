package domain

import "time"

// Scope limits what an API client may do
type Scope string

const (
	ScopeValidate Scope = "validate"
	ScopeSubmit   Scope = "submit"
	ScopeRead     Scope = "read"
)

// APIClient is a machine client allowed to call the validation API
type APIClient struct {
	ID         string  `json:"id"`
	SecretHash string  `json:"-"`
	Scopes     []Scope `json:"scopes"`
}

// HasScope checks if the client was granted a scope
func (c *APIClient) HasScope(scope Scope) bool {
	for _, s := range c.Scopes {
		if s == scope {
			return true
		}
	}
	return false
}

// AuthContext contains authenticated client info for request context
type AuthContext struct {
	ClientID string  `json:"client_id"`
	Scopes   []Scope `json:"scopes"`
}

// HasScope checks if the authenticated client holds a scope
func (a *AuthContext) HasScope(scope Scope) bool {
	for _, s := range a.Scopes {
		if s == scope {
			return true
		}
	}
	return false
}

// TokenRequest exchanges client credentials for an access token
type TokenRequest struct {
	ClientID     string `json:"client_id" validate:"required"`
	ClientSecret string `json:"client_secret" validate:"required"`
}

// TokenResponse is returned after successful authentication
type TokenResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
	Scopes    []Scope   `json:"scopes"`
}

// TokenClaims represents the JWT token payload
type TokenClaims struct {
	ClientID  string  `json:"client_id"`
	Scopes    []Scope `json:"scopes"`
	IssuedAt  int64   `json:"iat"`
	ExpiresAt int64   `json:"exp"`
}
