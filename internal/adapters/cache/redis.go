package cache

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"

	"github.com/obveznik/obveznik_backend/internal/core/ports"
	"github.com/obveznik/obveznik_backend/internal/middleware"
)

// Connect initializes a Redis client from URL or host:port input.
// Supporting both formats keeps local/dev and container config paths simple.
func Connect(ctx context.Context, redisURL string) (*redis.Client, error) {
	var client *redis.Client
	if strings.HasPrefix(redisURL, "redis://") {
		opt, parseErr := redis.ParseURL(redisURL)
		if parseErr != nil {
			return nil, fmt.Errorf("parse redis url: %w", parseErr)
		}
		client = redis.NewClient(opt)
	} else {
		client = redis.NewClient(&redis.Options{Addr: redisURL})
	}
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("ping redis: %w", err)
	}
	return client, nil
}

// RedisRateCache stores one daily rate list entry per (currency, date) key.
// All methods degrade to misses when Redis is unreachable, so the rate service
// keeps working off the source alone.
type RedisRateCache struct {
	client *redis.Client
}

// NewRedisRateCache creates a rate cache on top of an initialized client.
func NewRedisRateCache(client *redis.Client) *RedisRateCache {
	return &RedisRateCache{client: client}
}

var _ ports.RateCache = (*RedisRateCache)(nil)

func rateKey(currency string, date time.Time) string {
	return fmt.Sprintf("rate:%s:%s", currency, date.Format("2006-01-02"))
}

// Get returns the cached rate for (currency, date) and whether it was found.
func (c *RedisRateCache) Get(ctx context.Context, currency string, date time.Time) (decimal.Decimal, bool) {
	if c == nil || c.client == nil {
		return decimal.Zero, false
	}
	val, err := c.client.Get(ctx, rateKey(currency, date)).Result()
	if err != nil {
		if err != redis.Nil {
			middleware.GetLoggerFromCtx(ctx).Warn("Rate cache read failed", slog.String("error", err.Error()), slog.String("currency", currency))
		}
		return decimal.Zero, false
	}
	rate, err := decimal.NewFromString(val)
	if err != nil {
		middleware.GetLoggerFromCtx(ctx).Warn("Rate cache holds an unparsable value", slog.String("value", val), slog.String("currency", currency))
		return decimal.Zero, false
	}
	return rate, true
}

// Set stores the rate for (currency, date) with the given retention.
func (c *RedisRateCache) Set(ctx context.Context, currency string, date time.Time, rate decimal.Decimal, ttl time.Duration) {
	if c == nil || c.client == nil {
		return
	}
	if err := c.client.Set(ctx, rateKey(currency, date), rate.String(), ttl).Err(); err != nil {
		middleware.GetLoggerFromCtx(ctx).Warn("Rate cache write failed", slog.String("error", err.Error()), slog.String("currency", currency))
	}
}
