package postgres

import (
	"context"
	"database/sql"

	"github.com/lib/pq"

	"github.com/custodia-labs/safeaudit-core/internal/core/domain"
	"github.com/custodia-labs/safeaudit-core/internal/core/ports/driven"
)

// Verify interface compliance
var _ driven.ClientStore = (*ClientStore)(nil)

// ClientStore implements driven.ClientStore using PostgreSQL
type ClientStore struct {
	db *DB
}

// NewClientStore creates a new ClientStore
func NewClientStore(db *DB) *ClientStore {
	return &ClientStore{db: db}
}

// Get retrieves an API client by ID
func (s *ClientStore) Get(ctx context.Context, id string) (*domain.APIClient, error) {
	var (
		client domain.APIClient
		scopes []string
	)
	err := s.db.QueryRowContext(ctx, `
		SELECT id, secret_hash, scopes
		FROM api_clients
		WHERE id = $1
	`, id).Scan(&client.ID, &client.SecretHash, pq.Array(&scopes))
	if err == sql.ErrNoRows {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	client.Scopes = make([]domain.Scope, len(scopes))
	for i, sc := range scopes {
		client.Scopes[i] = domain.Scope(sc)
	}
	return &client, nil
}

// Save creates or updates an API client
func (s *ClientStore) Save(ctx context.Context, client *domain.APIClient) error {
	scopes := make([]string, len(client.Scopes))
	for i, sc := range client.Scopes {
		scopes[i] = string(sc)
	}
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO api_clients (id, secret_hash, scopes)
		VALUES ($1, $2, $3)
		ON CONFLICT (id) DO UPDATE SET
			secret_hash = EXCLUDED.secret_hash,
			scopes = EXCLUDED.scopes
	`, client.ID, client.SecretHash, pq.Array(scopes))
	return err
}
