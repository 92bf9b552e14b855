package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	goredis "github.com/redis/go-redis/v9"
	"golang.org/x/sync/singleflight"

	"github.com/yungbote/moodlog-backend/internal/platform/logger"
)

// Cache is a byte-value store with TTLs. Misses are (nil, false, nil).
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, val []byte, ttl time.Duration) error
	Delete(ctx context.Context, keys ...string) error
	Close() error
}

type RedisConfig struct {
	Addr     string `yaml:"addr"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
	Prefix   string `yaml:"prefix"`
}

type redisCache struct {
	log    *logger.Logger
	rdb    *goredis.Client
	prefix string
}

// NewRedis connects and pings. Callers typically fall back to NewNop on error.
func NewRedis(ctx context.Context, log *logger.Logger, cfg RedisConfig) (Cache, error) {
	addr := strings.TrimSpace(cfg.Addr)
	if addr == "" {
		return nil, fmt.Errorf("missing REDIS_ADDR")
	}
	rdb := goredis.NewClient(&goredis.Options{
		Addr:        addr,
		Password:    cfg.Password,
		DB:          cfg.DB,
		DialTimeout: 5 * time.Second,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := rdb.Ping(pingCtx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}
	prefix := strings.TrimSpace(cfg.Prefix)
	if prefix == "" {
		prefix = "moodlog:"
	}
	return &redisCache{log: log.With("cache", "RedisCache"), rdb: rdb, prefix: prefix}, nil
}

func (c *redisCache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	val, err := c.rdb.Get(ctx, c.prefix+key).Bytes()
	if errors.Is(err, goredis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return val, true, nil
}

func (c *redisCache) Set(ctx context.Context, key string, val []byte, ttl time.Duration) error {
	return c.rdb.Set(ctx, c.prefix+key, val, ttl).Err()
}

func (c *redisCache) Delete(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	full := make([]string, 0, len(keys))
	for _, k := range keys {
		full = append(full, c.prefix+k)
	}
	return c.rdb.Del(ctx, full...).Err()
}

func (c *redisCache) Close() error { return c.rdb.Close() }

type nopCache struct{}

// NewNop returns a cache that never stores anything.
func NewNop() Cache { return nopCache{} }

func (nopCache) Get(context.Context, string) ([]byte, bool, error)        { return nil, false, nil }
func (nopCache) Set(context.Context, string, []byte, time.Duration) error { return nil }
func (nopCache) Delete(context.Context, ...string) error                  { return nil }
func (nopCache) Close() error                                             { return nil }

type entry struct {
	val     []byte
	expires time.Time
}

type memoryCache struct {
	mu    sync.Mutex
	items map[string]entry
	now   func() time.Time
}

// NewMemory is an in-process Cache for local runs and tests.
func NewMemory() Cache {
	return &memoryCache{items: map[string]entry{}, now: time.Now}
}

func (m *memoryCache) Get(_ context.Context, key string) ([]byte, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	e, ok := m.items[key]
	if !ok {
		return nil, false, nil
	}
	if !e.expires.IsZero() && m.now().After(e.expires) {
		delete(m.items, key)
		return nil, false, nil
	}
	return append([]byte(nil), e.val...), true, nil
}

func (m *memoryCache) Set(_ context.Context, key string, val []byte, ttl time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	e := entry{val: append([]byte(nil), val...)}
	if ttl > 0 {
		e.expires = m.now().Add(ttl)
	}
	m.items[key] = e
	return nil
}

func (m *memoryCache) Delete(_ context.Context, keys ...string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, k := range keys {
		delete(m.items, k)
	}
	return nil
}

func (m *memoryCache) Close() error { return nil }

// Loader reads JSON values through a Cache, collapsing concurrent misses for
// the same key into one load. Cache errors degrade to a direct load.
type Loader struct {
	cache Cache
	ttl   time.Duration
	log   *logger.Logger
	group singleflight.Group
}

func NewLoader(c Cache, ttl time.Duration, log *logger.Logger) *Loader {
	if c == nil {
		c = NewNop()
	}
	return &Loader{cache: c, ttl: ttl, log: log.With("cache", "Loader")}
}

// Load fills out from key, calling load on a miss and storing its result.
func (l *Loader) Load(ctx context.Context, key string, out any, load func(ctx context.Context) (any, error)) error {
	if raw, ok, err := l.cache.Get(ctx, key); err != nil {
		l.log.Warn("cache get failed", "key", key, "error", err)
	} else if ok {
		if err := json.Unmarshal(raw, out); err == nil {
			return nil
		}
		l.log.Warn("cache entry undecodable, reloading", "key", key)
	}

	raw, err, _ := l.group.Do(key, func() (any, error) {
		v, err := load(ctx)
		if err != nil {
			return nil, err
		}
		b, err := json.Marshal(v)
		if err != nil {
			return nil, err
		}
		if err := l.cache.Set(ctx, key, b, l.ttl); err != nil {
			l.log.Warn("cache set failed", "key", key, "error", err)
		}
		return b, nil
	})
	if err != nil {
		return err
	}
	return json.Unmarshal(raw.([]byte), out)
}

func (l *Loader) Invalidate(ctx context.Context, keys ...string) {
	if err := l.cache.Delete(ctx, keys...); err != nil {
		l.log.Warn("cache invalidate failed", "keys", keys, "error", err)
	}
}
