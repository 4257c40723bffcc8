package joblock

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/riskibarqy/nfl-draft-league/internal/usecase"
)

// releaseScript deletes the key only while it still holds our token, so an
// expired lock that was taken over by another runner is left alone.
var releaseScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
    return redis.call("DEL", KEYS[1])
end
return 0`)

// RedisLocker is a job lock shared by every worker replica.
type RedisLocker struct {
	client redis.UniversalClient
	prefix string
}

func NewRedisLocker(client redis.UniversalClient, prefix string) *RedisLocker {
	return &RedisLocker{client: client, prefix: prefix}
}

// NewRedisClient parses a redis:// or rediss:// URL.
func NewRedisClient(rawURL string) (*redis.Client, error) {
	opts, err := redis.ParseURL(rawURL)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}
	return redis.NewClient(opts), nil
}

func (l *RedisLocker) Acquire(ctx context.Context, key string, ttl time.Duration) (func(context.Context) error, error) {
	if ttl <= 0 {
		return nil, fmt.Errorf("lock ttl must be > 0")
	}

	fullKey := l.prefix + key
	token := uuid.NewString()
	ok, err := l.client.SetNX(ctx, fullKey, token, ttl).Result()
	if err != nil {
		return nil, fmt.Errorf("acquire redis lock key=%s: %w", fullKey, err)
	}
	if !ok {
		return nil, usecase.ErrJobLocked
	}

	return func(ctx context.Context) error {
		if err := releaseScript.Run(ctx, l.client, []string{fullKey}, token).Err(); err != nil {
			return fmt.Errorf("release redis lock key=%s: %w", fullKey, err)
		}
		return nil
	}, nil
}
