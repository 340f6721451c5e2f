package auth

import (
	"context"
	"fmt"
	"strings"

	"github.com/custodia-labs/safeaudit-core/internal/core/domain"
	"github.com/custodia-labs/safeaudit-core/internal/core/ports/driven"
)

// Ensure StaticClientStore implements ClientStore
var _ driven.ClientStore = (*StaticClientStore)(nil)

// StaticClientStore serves API clients configured at startup, for
// deployments without a database
type StaticClientStore struct {
	clients map[string]*domain.APIClient
}

// ParseStaticClients reads clients from "id:secret:scope|scope" entries
// separated by commas and hashes each secret with the adapter.
// Entries without scopes get every scope.
func ParseStaticClients(spec string, hasher driven.AuthAdapter) (*StaticClientStore, error) {
	store := &StaticClientStore{clients: make(map[string]*domain.APIClient)}

	for _, entry := range strings.Split(spec, ",") {
		entry = strings.TrimSpace(entry)
		if entry == "" {
			continue
		}

		parts := strings.SplitN(entry, ":", 3)
		if len(parts) < 2 || parts[0] == "" || parts[1] == "" {
			return nil, fmt.Errorf("%w: client entry %q must be id:secret[:scopes]", domain.ErrInvalidConfig, entry)
		}

		scopes := []domain.Scope{domain.ScopeValidate, domain.ScopeSubmit, domain.ScopeRead}
		if len(parts) == 3 && parts[2] != "" {
			scopes = scopes[:0]
			for _, s := range strings.Split(parts[2], "|") {
				scope := domain.Scope(strings.TrimSpace(s))
				switch scope {
				case domain.ScopeValidate, domain.ScopeSubmit, domain.ScopeRead:
					scopes = append(scopes, scope)
				default:
					return nil, fmt.Errorf("%w: unknown scope %q for client %s", domain.ErrInvalidConfig, s, parts[0])
				}
			}
		}

		hash, err := hasher.HashPassword(parts[1])
		if err != nil {
			return nil, fmt.Errorf("hash secret for client %s: %w", parts[0], err)
		}
		store.clients[parts[0]] = &domain.APIClient{
			ID:         parts[0],
			SecretHash: hash,
			Scopes:     scopes,
		}
	}
	return store, nil
}

// Get returns a configured client
func (s *StaticClientStore) Get(ctx context.Context, id string) (*domain.APIClient, error) {
	client, ok := s.clients[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return client, nil
}

// Len returns the number of configured clients
func (s *StaticClientStore) Len() int {
	return len(s.clients)
}
