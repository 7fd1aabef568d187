package registry

import (
	"context"
	"time"

	"github.com/farxc/carteira-devedores/internal/logger"
)

// Config selects the BrasilAPI endpoint and the optional Redis cache.
type Config struct {
	BaseURL  string
	Timeout  time.Duration
	RedisURL string
	CacheTTL time.Duration
}

// New returns the BrasilAPI client, behind the Redis cache when RedisURL is
// set and reachable. An unusable Redis only disables the cache. The returned
// func releases the Redis connection and is never nil.
func New(ctx context.Context, cfg Config, l *logger.Logger) (Lookup, func()) {
	const component = "Registry"

	client := NewClient(cfg.BaseURL, cfg.Timeout)
	if cfg.RedisURL == "" {
		return client, func() {}
	}

	rdb, err := NewRedisClient(ctx, cfg.RedisURL)
	if err != nil {
		l.Warn(component, "Redis unavailable, registry cache disabled: error=%v", err)
		return client, func() {}
	}
	l.Info(component, "Registry cache enabled: ttl=%s", cfg.CacheTTL)
	return NewCachedLookup(client, rdb, cfg.CacheTTL, l), func() { rdb.Close() }
}
