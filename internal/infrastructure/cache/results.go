package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/vmihailenco/msgpack/v5"

	apperrors "github.com/alejandroruanova/text-cleaner-service/internal/pkg/errors"
)

const keyPrefix = "textcleaner:clean:"

// CleanedEntry is the cached result of cleaning one text
type CleanedEntry struct {
	Profile   string    `msgpack:"profile"`
	Cleaned   string    `msgpack:"cleaned"`
	CreatedAt time.Time `msgpack:"created_at"`
}

// ResultCache stores cleaned text keyed by profile fingerprint and input hash
type ResultCache struct {
	redis  *RedisCache
	ttl    time.Duration
	logger *slog.Logger
}

// NewResultCache creates a result cache on top of an open Redis connection
func NewResultCache(r *RedisCache, ttl time.Duration, logger *slog.Logger) *ResultCache {
	if logger == nil {
		logger = slog.Default()
	}
	return &ResultCache{redis: r, ttl: ttl, logger: logger}
}

// Fingerprint identifies a profile together with its effective configuration,
// so overrides never share entries with the plain profile
func Fingerprint(version string, cfg map[string]interface{}) string {
	data, err := json.Marshal(cfg)
	if err != nil {
		return version
	}
	sum := sha256.Sum256(data)
	return version + "-" + hex.EncodeToString(sum[:8])
}

// Key returns the Redis key for text cleaned with profile
func Key(profile, text string) string {
	sum := sha256.Sum256([]byte(text))
	return keyPrefix + profile + ":" + hex.EncodeToString(sum[:])
}

// Get returns the cached cleaned text. A miss returns ok == false and a nil error.
func (c *ResultCache) Get(ctx context.Context, profile, text string) (string, bool, error) {
	data, err := c.redis.GetBytes(ctx, Key(profile, text))
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, apperrors.CacheError(err)
	}

	var entry CleanedEntry
	if err := msgpack.Unmarshal(data, &entry); err != nil {
		c.logger.Warn("dropping undecodable cache entry", slog.Any("error", err))
		_ = c.redis.Delete(ctx, Key(profile, text))
		return "", false, nil
	}
	return entry.Cleaned, true, nil
}

// Put stores cleaned as the result for text under profile
func (c *ResultCache) Put(ctx context.Context, profile, text, cleaned string) error {
	data, err := msgpack.Marshal(CleanedEntry{
		Profile:   profile,
		Cleaned:   cleaned,
		CreatedAt: time.Now().UTC(),
	})
	if err != nil {
		return apperrors.CacheError(err)
	}
	if err := c.redis.Set(ctx, Key(profile, text), data, c.ttl); err != nil {
		return apperrors.CacheError(err)
	}
	return nil
}
