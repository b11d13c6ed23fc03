package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/yungbote/projectgate-backend/internal/platform/logger"
)

// ErrCacheMiss distinguishes an absent key from a transport failure.
var ErrCacheMiss = errors.New("cache miss")

// Cache is a small read-side cache for dashboard aggregations. Failures are
// the caller's cue to fall back to the database, never to fail the request.
type Cache interface {
	GetJSON(ctx context.Context, key string, out any) error
	SetJSON(ctx context.Context, key string, val any, ttl time.Duration) error
	Invalidate(ctx context.Context, keys ...string) error
	Close() error
}

type cache struct {
	log *logger.Logger
	rdb *goredis.Client
}

func NewCache(log *logger.Logger) (Cache, error) {
	if log == nil {
		return nil, fmt.Errorf("logger required")
	}

	addr := strings.TrimSpace(os.Getenv("REDIS_ADDR"))
	if addr == "" {
		return nil, fmt.Errorf("missing REDIS_ADDR")
	}

	rdb := goredis.NewClient(&goredis.Options{
		Addr:        addr,
		DialTimeout: 5 * time.Second,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}

	return &cache{log: log.With("service", "redis.Cache"), rdb: rdb}, nil
}

func (c *cache) GetJSON(ctx context.Context, key string, out any) error {
	raw, err := c.rdb.Get(ctx, key).Bytes()
	if errors.Is(err, goredis.Nil) {
		return ErrCacheMiss
	}
	if err != nil {
		return fmt.Errorf("redis get %s: %w", key, err)
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("decode cached %s: %w", key, err)
	}
	return nil
}

func (c *cache) SetJSON(ctx context.Context, key string, val any, ttl time.Duration) error {
	raw, err := json.Marshal(val)
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}
	if err := c.rdb.Set(ctx, key, raw, ttl).Err(); err != nil {
		return fmt.Errorf("redis set %s: %w", key, err)
	}
	return nil
}

func (c *cache) Invalidate(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	if err := c.rdb.Del(ctx, keys...).Err(); err != nil {
		return fmt.Errorf("redis del: %w", err)
	}
	return nil
}

func (c *cache) Close() error { return c.rdb.Close() }
