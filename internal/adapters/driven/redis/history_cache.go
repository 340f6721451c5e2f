package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/custodia-labs/safeaudit-core/internal/core/domain"
	"github.com/custodia-labs/safeaudit-core/internal/core/ports/driven"
)

// Verify interface compliance
var (
	_ driven.HistoryStore       = (*HistoryCache)(nil)
	_ driven.HistoryInvalidator = (*HistoryCache)(nil)
)

const (
	historyPrefix = "safeaudit:history:"

	DefaultHistoryTTL   = 5 * time.Minute
	DefaultHistoryLimit = 200
)

// HistoryCache is a read-through cache in front of a HistoryStore.
// One entry per project holds the newest reports since the entry's window
// start; narrower queries are answered from it until the TTL expires or the
// project is invalidated.
type HistoryCache struct {
	client *redis.Client
	next   driven.HistoryStore
	ttl    time.Duration
	limit  int
	logger *slog.Logger
}

// HistoryCacheConfig holds cache settings
type HistoryCacheConfig struct {
	TTL time.Duration
	// Limit is the number of reports loaded per project; unbounded queries or queries asking for more bypass the cache
	Limit  int
	Logger *slog.Logger
}

// NewHistoryCache wraps next with a Redis cache
func NewHistoryCache(client *redis.Client, next driven.HistoryStore, cfg HistoryCacheConfig) *HistoryCache {
	c := &HistoryCache{
		client: client,
		next:   next,
		ttl:    cfg.TTL,
		limit:  cfg.Limit,
		logger: cfg.Logger,
	}
	if c.ttl <= 0 {
		c.ttl = DefaultHistoryTTL
	}
	if c.limit <= 0 {
		c.limit = DefaultHistoryLimit
	}
	if c.logger == nil {
		c.logger = slog.Default()
	}
	return c
}

// historyEntry is the cached JSON value
type historyEntry struct {
	Since time.Time `json:"since"`
	Limit int       `json:"limit"`
	// Reports is oldest first, as returned by the wrapped store
	Reports []*domain.HistoricalReport `json:"reports"`
}

// covers reports whether filtering the entry answers q exactly. A full entry
// holds the newest Limit reports, which also are the newest of any narrower
// window, so it covers queries up to its own limit. At exactly the limit an
// excluded report it holds would leave the answer one short.
func (e *historyEntry) covers(q domain.HistoryQuery) bool {
	if q.Since.Before(e.Since) {
		return false
	}
	if len(e.Reports) < e.Limit {
		return true
	}
	switch {
	case q.Limit <= 0 || q.Limit > e.Limit:
		return false
	case q.Limit == e.Limit:
		return !e.contains(q.ExcludeReportID)
	default:
		return true
	}
}

func (e *historyEntry) contains(id string) bool {
	if id == "" {
		return false
	}
	for _, r := range e.Reports {
		if r != nil && r.ID == id {
			return true
		}
	}
	return false
}

// ListRecent serves q from the cache when the cached window covers it.
// Redis failures fall through to the wrapped store.
func (c *HistoryCache) ListRecent(ctx context.Context, q domain.HistoryQuery) ([]*domain.HistoricalReport, error) {
	key := historyPrefix + q.ProjectID

	entry, err := c.get(ctx, key)
	if err != nil {
		c.logger.Warn("history cache read failed", "project_id", q.ProjectID, "error", err)
	}
	if entry != nil && entry.covers(q) {
		return filterHistory(entry.Reports, q), nil
	}

	if q.Limit <= 0 || q.Limit > c.limit {
		// unbounded or wider than an entry holds
		return c.next.ListRecent(ctx, q)
	}
	load := domain.HistoryQuery{
		ProjectID: q.ProjectID,
		Since:     q.Since,
		Limit:     c.limit,
	}

	reports, err := c.next.ListRecent(ctx, load)
	if err != nil {
		return nil, err
	}

	fresh := &historyEntry{Since: load.Since, Limit: load.Limit, Reports: reports}
	if err := c.set(ctx, key, fresh); err != nil {
		c.logger.Warn("history cache write failed", "project_id", q.ProjectID, "error", err)
	}
	if !fresh.covers(q) {
		return c.next.ListRecent(ctx, q)
	}
	return filterHistory(reports, q), nil
}

// Invalidate drops the cached history of a project
func (c *HistoryCache) Invalidate(ctx context.Context, projectID string) error {
	if err := c.client.Del(ctx, historyPrefix+projectID).Err(); err != nil {
		return fmt.Errorf("invalidate history %s: %w", projectID, err)
	}
	return nil
}

func (c *HistoryCache) get(ctx context.Context, key string) (*historyEntry, error) {
	data, err := c.client.Get(ctx, key).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get history: %w", err)
	}

	var entry historyEntry
	if err := json.Unmarshal(data, &entry); err != nil {
		return nil, fmt.Errorf("failed to unmarshal history: %w", err)
	}
	return &entry, nil
}

func (c *HistoryCache) set(ctx context.Context, key string, entry *historyEntry) error {
	data, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("failed to marshal history: %w", err)
	}
	return c.client.Set(ctx, key, data, c.ttl).Err()
}

// filterHistory applies the query to a chronological report list
func filterHistory(reports []*domain.HistoricalReport, q domain.HistoryQuery) []*domain.HistoricalReport {
	out := make([]*domain.HistoricalReport, 0, len(reports))
	for _, r := range reports {
		if r == nil || (q.ExcludeReportID != "" && r.ID == q.ExcludeReportID) {
			continue
		}
		if r.CreatedAt.Before(q.Since) {
			continue
		}
		out = append(out, r)
	}
	if q.Limit > 0 && len(out) > q.Limit {
		out = out[len(out)-q.Limit:]
	}
	return out
}
