// Package tokencache provides a Redis read-through cache for token lookups.
package tokencache

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"account_backend/internal/feature/auth/domain/entity"
	"account_backend/internal/feature/auth/usecase"
)

// CachingTokenRepository decorates a TokenRepository with Redis caching.
// Tokens are never rotated or revoked, so a cached key→token entry cannot go stale;
// the TTL only bounds memory use.
type CachingTokenRepository struct {
	inner     usecase.TokenRepository
	rdb       *redis.Client
	ttl       time.Duration
	namespace string
}

var _ usecase.TokenRepository = (*CachingTokenRepository)(nil)

// NewCachingTokenRepository decorates a TokenRepository with Redis caching.
// If ttl is 0, it defaults to 24 hours. If namespace is empty, it uses "tokens".
// A nil client disables caching.
func NewCachingTokenRepository(rdb *redis.Client, ttl time.Duration, inner usecase.TokenRepository, namespace string) *CachingTokenRepository {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	if namespace == "" {
		namespace = "tokens"
	}
	return &CachingTokenRepository{
		inner:     inner,
		rdb:       rdb,
		ttl:       ttl,
		namespace: namespace,
	}
}

// GetOrCreate delegates to the underlying repository and caches the surviving token.
func (c *CachingTokenRepository) GetOrCreate(ctx context.Context, token *entity.Token) (*entity.Token, error) {
	stored, err := c.inner.GetOrCreate(ctx, token)
	if err != nil {
		return nil, err
	}
	c.store(ctx, stored)
	return stored, nil
}

// FindByKey resolves a token, checking the cache first and then the database.
// Unknown keys are not cached.
func (c *CachingTokenRepository) FindByKey(ctx context.Context, key string) (*entity.Token, error) {
	// Bypass cache if Redis is not configured
	if c.rdb == nil {
		return c.inner.FindByKey(ctx, key)
	}

	cacheKey := c.cacheKey(key)

	// 1) Check cache
	if b, err := c.rdb.Get(ctx, cacheKey).Bytes(); err == nil && len(b) > 0 {
		var out entity.Token
		if err := json.Unmarshal(b, &out); err == nil && out.Key == key {
			return &out, nil
		}
		// Delete corrupted cache entry
		_ = c.rdb.Del(ctx, cacheKey).Err()
	}

	// 2) Fallback to database
	out, err := c.inner.FindByKey(ctx, key)
	if err != nil {
		return nil, err
	}

	// 3) Store in cache (best effort)
	c.store(ctx, out)
	return out, nil
}

func (c *CachingTokenRepository) store(ctx context.Context, token *entity.Token) {
	if c.rdb == nil || token == nil {
		return
	}
	if b, err := json.Marshal(token); err == nil {
		_ = c.rdb.Set(ctx, c.cacheKey(token.Key), b, c.ttl).Err()
	}
}

// cacheKey generates the cache key for a token key.
func (c *CachingTokenRepository) cacheKey(key string) string {
	return fmt.Sprintf("%s:key:%s", c.namespace, safe(key))
}

// safe escapes characters that are problematic for Redis keys.
func safe(s string) string {
	s = strings.ReplaceAll(s, " ", "_")
	s = strings.ReplaceAll(s, ":", "_")
	return s
}
