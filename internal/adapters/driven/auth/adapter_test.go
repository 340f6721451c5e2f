package auth

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/custodia-labs/safeaudit-core/internal/core/domain"
)

func TestNewAdapter(t *testing.T) {
	adapter := NewAdapter("test-secret")
	if adapter == nil {
		t.Fatal("expected non-nil adapter")
	}
	if string(adapter.jwtSecret) != "test-secret" {
		t.Error("expected jwt secret to be set")
	}
}

func TestNewAdapterWithCost(t *testing.T) {
	adapter := NewAdapterWithCost("test-secret", 4)
	if adapter == nil {
		t.Fatal("expected non-nil adapter")
	}
	if adapter.bcryptCost != 4 {
		t.Errorf("expected bcrypt cost 4, got %d", adapter.bcryptCost)
	}
}

func TestHashPassword(t *testing.T) {
	adapter := NewAdapterWithCost("secret", 4) // Low cost for faster tests

	hash, err := adapter.HashPassword("mypassword")
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}

	if hash == "" {
		t.Error("expected non-empty hash")
	}

	if hash == "mypassword" {
		t.Error("hash should not equal plaintext password")
	}

	// Hash should start with bcrypt prefix
	if len(hash) < 60 {
		t.Error("expected bcrypt hash to be at least 60 characters")
	}
}

func TestHashPassword_DifferentHashesForSamePassword(t *testing.T) {
	adapter := NewAdapterWithCost("secret", 4)

	hash1, _ := adapter.HashPassword("password123")
	hash2, _ := adapter.HashPassword("password123")

	if hash1 == hash2 {
		t.Error("expected different hashes for same password (due to salt)")
	}
}

func TestVerifyPassword_CorrectPassword(t *testing.T) {
	adapter := NewAdapterWithCost("secret", 4)

	password := "correctpassword"
	hash, _ := adapter.HashPassword(password)

	if !adapter.VerifyPassword(password, hash) {
		t.Error("expected password verification to succeed")
	}
}

func TestVerifyPassword_IncorrectPassword(t *testing.T) {
	adapter := NewAdapterWithCost("secret", 4)

	hash, _ := adapter.HashPassword("correctpassword")

	if adapter.VerifyPassword("wrongpassword", hash) {
		t.Error("expected password verification to fail for wrong password")
	}
}

func TestVerifyPassword_InvalidHash(t *testing.T) {
	adapter := NewAdapter("secret")

	if adapter.VerifyPassword("password", "not-a-valid-hash") {
		t.Error("expected verification to fail for invalid hash")
	}
}

func testClaims(expires time.Duration) *domain.TokenClaims {
	now := time.Now()
	return &domain.TokenClaims{
		ClientID:  "field-app",
		Scopes:    []domain.Scope{domain.ScopeValidate, domain.ScopeRead},
		IssuedAt:  now.Unix(),
		ExpiresAt: now.Add(expires).Unix(),
	}
}

func TestGenerateToken(t *testing.T) {
	adapter := NewAdapter("test-jwt-secret")

	token, err := adapter.GenerateToken(testClaims(time.Hour))
	if err != nil {
		t.Fatalf("failed to generate token: %v", err)
	}

	// JWT tokens have 3 parts separated by dots
	if parts := strings.Count(token, "."); parts != 2 {
		t.Errorf("expected JWT with 2 dots (3 parts), got %d dots", parts)
	}
}

func TestParseToken_ValidToken(t *testing.T) {
	adapter := NewAdapter("test-jwt-secret")
	original := testClaims(time.Hour)

	token, _ := adapter.GenerateToken(original)

	parsed, err := adapter.ParseToken(token)
	if err != nil {
		t.Fatalf("failed to parse token: %v", err)
	}

	if parsed.ClientID != original.ClientID {
		t.Errorf("expected ClientID %s, got %s", original.ClientID, parsed.ClientID)
	}
	if len(parsed.Scopes) != 2 || parsed.Scopes[1] != domain.ScopeRead {
		t.Errorf("expected scopes %v, got %v", original.Scopes, parsed.Scopes)
	}
	if parsed.ExpiresAt != original.ExpiresAt {
		t.Errorf("expected ExpiresAt %d, got %d", original.ExpiresAt, parsed.ExpiresAt)
	}
}

func TestParseToken_ExpiredToken(t *testing.T) {
	adapter := NewAdapter("test-jwt-secret")

	// Expired 2 hours ago
	token, _ := adapter.GenerateToken(testClaims(-2 * time.Hour))

	_, err := adapter.ParseToken(token)
	if !errors.Is(err, domain.ErrTokenExpired) {
		t.Errorf("expected ErrTokenExpired, got %v", err)
	}
}

func TestParseToken_WrongSecret(t *testing.T) {
	adapter1 := NewAdapter("secret-1")
	adapter2 := NewAdapter("secret-2")

	// Generate token with adapter1's secret
	token, _ := adapter1.GenerateToken(testClaims(time.Hour))

	// Try to parse with adapter2's secret
	_, err := adapter2.ParseToken(token)
	if !errors.Is(err, domain.ErrTokenInvalid) {
		t.Errorf("expected ErrTokenInvalid, got %v", err)
	}
}

func TestParseToken_MalformedToken(t *testing.T) {
	adapter := NewAdapter("test-secret")

	testCases := []string{
		"",
		"not-a-jwt",
		"invalid.token.here",
		"only.two.parts.missing",
		"header.payload", // missing signature
	}

	for _, tc := range testCases {
		_, err := adapter.ParseToken(tc)
		if !errors.Is(err, domain.ErrTokenInvalid) {
			t.Errorf("expected ErrTokenInvalid for malformed token %q, got %v", tc, err)
		}
	}
}

func TestParseToken_MissingSubject(t *testing.T) {
	adapter := NewAdapter("test-secret")
	claims := testClaims(time.Hour)
	claims.ClientID = ""

	token, _ := adapter.GenerateToken(claims)
	if _, err := adapter.ParseToken(token); !errors.Is(err, domain.ErrTokenInvalid) {
		t.Errorf("expected ErrTokenInvalid, got %v", err)
	}
}

func TestParseStaticClients(t *testing.T) {
	adapter := NewAdapterWithCost("secret", 4)

	store, err := ParseStaticClients("field-app:s3cret:validate|submit, auditor:pw", adapter)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if store.Len() != 2 {
		t.Fatalf("expected 2 clients, got %d", store.Len())
	}

	client, err := store.Get(context.Background(), "field-app")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !adapter.VerifyPassword("s3cret", client.SecretHash) {
		t.Error("expected stored hash to verify")
	}
	if client.HasScope(domain.ScopeRead) {
		t.Error("field-app should not have read scope")
	}

	auditor, _ := store.Get(context.Background(), "auditor")
	if !auditor.HasScope(domain.ScopeRead) || !auditor.HasScope(domain.ScopeSubmit) {
		t.Errorf("expected all scopes by default, got %v", auditor.Scopes)
	}

	if _, err := store.Get(context.Background(), "nobody"); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestParseStaticClients_Invalid(t *testing.T) {
	adapter := NewAdapterWithCost("secret", 4)

	for _, spec := range []string{"no-secret", ":secret", "app:pw:admin"} {
		if _, err := ParseStaticClients(spec, adapter); !errors.Is(err, domain.ErrInvalidConfig) {
			t.Errorf("spec %q: expected ErrInvalidConfig, got %v", spec, err)
		}
	}
}

func TestParseStaticClients_Empty(t *testing.T) {
	store, err := ParseStaticClients("", NewAdapterWithCost("secret", 4))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if store.Len() != 0 {
		t.Errorf("expected no clients, got %d", store.Len())
	}
}
