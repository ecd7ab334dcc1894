package orderevents

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	dedupKeyPrefix = "affiliate:event:"
	dedupTTL       = 7 * 24 * time.Hour
)

//go:generate mockgen -source=dedup.go -destination=mock_dedup.go -package=orderevents
type Dedup interface {
	Seen(ctx context.Context, eventID string) (bool, error)
	Mark(ctx context.Context, eventID string) error
}

type redisClient interface {
	Exists(ctx context.Context, keys ...string) *redis.IntCmd
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd
}

// ConnectRedis accepts either a redis:// URL or a bare host:port.
func ConnectRedis(redisURL string) (*redis.Client, error) {
	if strings.HasPrefix(redisURL, "redis://") || strings.HasPrefix(redisURL, "rediss://") {
		opt, err := redis.ParseURL(redisURL)
		if err != nil {
			return nil, fmt.Errorf("parse redis url: %w", err)
		}
		return redis.NewClient(opt), nil
	}
	return redis.NewClient(&redis.Options{Addr: redisURL}), nil
}

// RedisDedup remembers processed event ids for a week.
type RedisDedup struct {
	client redisClient
	ttl    time.Duration
}

func NewRedisDedup(client redisClient) *RedisDedup {
	return &RedisDedup{client: client, ttl: dedupTTL}
}

func (d *RedisDedup) Seen(ctx context.Context, eventID string) (bool, error) {
	n, err := d.client.Exists(ctx, dedupKeyPrefix+eventID).Result()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func (d *RedisDedup) Mark(ctx context.Context, eventID string) error {
	return d.client.Set(ctx, dedupKeyPrefix+eventID, 1, d.ttl).Err()
}

// NoopDedup is used when no redis is configured. Ledger operations are
// idempotent on their own, so redelivered events are still harmless.
type NoopDedup struct{}

func (NoopDedup) Seen(context.Context, string) (bool, error) { return false, nil }

func (NoopDedup) Mark(context.Context, string) error { return nil }
