package registry

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/farxc/carteira-devedores/internal/logger"
	"github.com/farxc/carteira-devedores/internal/store"
	"github.com/farxc/carteira-devedores/internal/utils"
	"github.com/redis/go-redis/v9"
)

const cacheKeyPrefix = "registry:cnpj:"

// CachedLookup keeps successful lookups in Redis. A nil client or a Redis
// error falls through to the wrapped Lookup.
type CachedLookup struct {
	next   Lookup
	rdb    *redis.Client
	ttl    time.Duration
	logger *logger.Logger
}

var _ Lookup = (*CachedLookup)(nil)

func NewCachedLookup(next Lookup, rdb *redis.Client, ttl time.Duration, l *logger.Logger) *CachedLookup {
	return &CachedLookup{next: next, rdb: rdb, ttl: ttl, logger: l}
}

func (c *CachedLookup) Fetch(ctx context.Context, taxID string) (*store.RegistryData, error) {
	const component = "RegistryCache"
	key := cacheKeyPrefix + utils.DigitsOnly(taxID)

	if data, ok, err := c.get(ctx, key); err != nil {
		c.logger.Warn(component, "Cache read failed: key=%s error=%v", key, err)
	} else if ok {
		return data, nil
	}

	data, err := c.next.Fetch(ctx, taxID)
	if err != nil {
		return nil, err
	}

	if err := c.set(ctx, key, data); err != nil {
		c.logger.Warn(component, "Cache write failed: key=%s error=%v", key, err)
	}
	return data, nil
}

func (c *CachedLookup) get(ctx context.Context, key string) (*store.RegistryData, bool, error) {
	if c.rdb == nil {
		return nil, false, nil
	}
	val, err := c.rdb.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}

	var data store.RegistryData
	if err := json.Unmarshal(val, &data); err != nil {
		return nil, false, err
	}
	return &data, true, nil
}

func (c *CachedLookup) set(ctx context.Context, key string, data *store.RegistryData) error {
	if c.rdb == nil {
		return nil
	}
	payload, err := json.Marshal(data)
	if err != nil {
		return err
	}
	return c.rdb.Set(ctx, key, payload, c.ttl).Err()
}

// NewRedisClient parses a redis:// URL and pings the server.
func NewRedisClient(ctx context.Context, url string) (*redis.Client, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, err
	}
	rdb := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		rdb.Close()
		return nil, err
	}
	return rdb, nil
}
