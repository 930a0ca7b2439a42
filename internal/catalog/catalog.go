// Package catalog serves active keyword rules per institution, with a
// read-through cache in front of the database. Cache failures are absorbed:
// the catalog only errors when both the cache and the store fail.
package catalog

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"mindline/internal/models"
)

// Store is the database side of the catalog.
type Store interface {
	ListActiveRules(ctx context.Context, institutionID uuid.UUID) ([]models.KeywordRule, error)
}

// Cache is the subset of the fiber storage interface the catalog needs.
// A nil Cache turns the catalog into a passthrough to the store.
type Cache interface {
	Get(key string) ([]byte, error)
	Set(key string, val []byte, exp time.Duration) error
	Delete(key string) error
}

type Catalog struct {
	store  Store
	cache  Cache
	ttl    time.Duration
	logger *slog.Logger
}

func New(store Store, cache Cache, ttl time.Duration, logger *slog.Logger) *Catalog {
	if logger == nil {
		logger = slog.Default()
	}
	return &Catalog{store: store, cache: cache, ttl: ttl, logger: logger}
}

func cacheKey(institutionID uuid.UUID) string {
	return "rules:" + institutionID.String()
}

// ActiveRules returns the active keyword rules for an institution. A cache
// hit skips the database entirely; a cache miss or error falls through to
// the store and repopulates.
func (c *Catalog) ActiveRules(ctx context.Context, institutionID uuid.UUID) ([]models.KeywordRule, error) {
	key := cacheKey(institutionID)

	if c.cache != nil {
		if data, err := c.cache.Get(key); err == nil && len(data) > 0 {
			var rules []models.KeywordRule
			if err := json.Unmarshal(data, &rules); err == nil {
				return rules, nil
			}
			c.logger.Warn("discarding malformed catalog cache entry", "key", key)
			_ = c.cache.Delete(key)
		}
	}

	rules, err := c.store.ListActiveRules(ctx, institutionID)
	if err != nil {
		return nil, err
	}

	if c.cache != nil {
		if data, err := json.Marshal(rules); err == nil {
			if err := c.cache.Set(key, data, c.ttl); err != nil {
				c.logger.Warn("failed to populate catalog cache", "key", key, "error", err)
			}
		}
	}

	return rules, nil
}

// Invalidate drops the cached rule set for an institution. Called after any
// keyword rule write so the next analysis sees the change.
func (c *Catalog) Invalidate(institutionID uuid.UUID) {
	if c.cache == nil {
		return
	}
	if err := c.cache.Delete(cacheKey(institutionID)); err != nil {
		c.logger.Warn("failed to invalidate catalog cache", "institution", institutionID, "error", err)
	}
}
