// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// badge.go caches rendered badge previews in Valkey. Rendering a badge
// means a theme lookup, QR encoding and a full layout pass; preview
// traffic from the configuration UI repeats the same subject over and
// over, so the finished document is cached whole.
package cache

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	// badgeKeyPrefix is the Valkey key prefix for cached documents.
	badgeKeyPrefix = "cracha:"

	// DefaultBadgeTTL is how long a rendered document stays cached.
	DefaultBadgeTTL = 5 * time.Minute
)

// BadgeCache stores rendered badge documents in Valkey. A nil *BadgeCache
// is valid: every operation becomes a no-op miss.
type BadgeCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewBadgeCache creates a badge cache backed by the given Valkey client.
func NewBadgeCache(client *redis.Client, ttl time.Duration) *BadgeCache {
	if ttl == 0 {
		ttl = DefaultBadgeTTL
	}
	return &BadgeCache{client: client, ttl: ttl}
}

// Key builds the cache key for one subject/theme/format rendition.
func Key(subjectID, themeID, formatID, ext string) string {
	return fmt.Sprintf("%s:%s:%s:%s", subjectID, themeID, formatID, ext)
}

// Get retrieves a cached document. Returns false on miss or any error.
func (bc *BadgeCache) Get(ctx context.Context, key string) ([]byte, bool) {
	if bc == nil {
		return nil, false
	}
	val, err := bc.client.Get(ctx, badgeKeyPrefix+key).Bytes()
	if err == redis.Nil {
		return nil, false
	}
	if err != nil {
		slog.Warn("badge cache get error", "key", key, "error", err)
		return nil, false
	}
	slog.Debug("badge cache hit", "key", key)
	return val, true
}

// Set stores a rendered document with the configured TTL. Best effort.
func (bc *BadgeCache) Set(ctx context.Context, key string, doc []byte) {
	if bc == nil {
		return
	}
	if err := bc.client.Set(ctx, badgeKeyPrefix+key, doc, bc.ttl).Err(); err != nil {
		slog.Warn("badge cache set error", "key", key, "error", err)
	}
}

// InvalidateAll removes every cached document by scanning for the
// prefix. Called after a theme or format mutation, since any cached
// badge could have been rendered from the changed row.
func (bc *BadgeCache) InvalidateAll(ctx context.Context) {
	if bc == nil {
		return
	}
	var cursor uint64
	var deleted int
	for {
		keys, nextCursor, err := bc.client.Scan(ctx, cursor, badgeKeyPrefix+"*", 100).Result()
		if err != nil {
			slog.Warn("badge cache scan error", "error", err)
			return
		}
		if len(keys) > 0 {
			if err := bc.client.Del(ctx, keys...).Err(); err != nil {
				slog.Warn("badge cache bulk delete error", "error", err)
			}
			deleted += len(keys)
		}
		cursor = nextCursor
		if cursor == 0 {
			break
		}
	}
	if deleted > 0 {
		slog.Info("badge cache cleared", "deleted", deleted)
	}
}
