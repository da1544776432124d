package store

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	formservice "pulseform/internal/form/service"
)

// RedisDefinitionCache caches assembled form definitions in Redis so the
// hot form-load path skips the configuration queries. Entries expire on
// TTL; admins editing a form simply wait out (or delete) the key.
type RedisDefinitionCache struct {
	client *redis.Client
	ttl    time.Duration
	logger *slog.Logger
}

// NewRedisDefinitionCache constructs a Redis-backed definition cache.
func NewRedisDefinitionCache(client *redis.Client, ttl time.Duration, logger *slog.Logger) *RedisDefinitionCache {
	return &RedisDefinitionCache{client: client, ttl: ttl, logger: logger}
}

func cacheKey(formID string) string {
	return "form:definition:" + formID
}

// Get returns a cached definition, or false on miss or decode failure.
// Cache errors never fail the request; the caller falls through to the
// store.
func (c *RedisDefinitionCache) Get(ctx context.Context, formID string) (*formservice.Definition, bool) {
	data, err := c.client.Get(ctx, cacheKey(formID)).Result()
	if err != nil {
		if err != redis.Nil {
			c.logger.WarnContext(ctx, "definition cache read failed", "form_id", formID, "error", err.Error())
		}
		return nil, false
	}
	var def formservice.Definition
	if err := json.Unmarshal([]byte(data), &def); err != nil {
		c.logger.WarnContext(ctx, "definition cache entry corrupt", "form_id", formID, "error", err.Error())
		return nil, false
	}
	return &def, true
}

// Set stores a definition with the configured TTL, best effort.
func (c *RedisDefinitionCache) Set(ctx context.Context, def *formservice.Definition) {
	data, err := json.Marshal(def)
	if err != nil {
		return
	}
	if err := c.client.Set(ctx, cacheKey(def.FormID), data, c.ttl).Err(); err != nil {
		c.logger.WarnContext(ctx, "definition cache write failed", "form_id", def.FormID, "error", err.Error())
	}
}
