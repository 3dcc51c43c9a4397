// pkg/store/redis.go

package store

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/arbeit-tech/billing-service/pkg/document"
)

const defaultKeyPrefix = "billing:seq:"

// RedisSequencer hands out sequence numbers with INCR on one key per kind.
type RedisSequencer struct {
	client redis.Cmdable
	prefix string
	seed   Counter
}

// RedisOption configures a RedisSequencer.
type RedisOption func(*RedisSequencer)

// WithKeyPrefix overrides the "billing:seq:" key prefix.
func WithKeyPrefix(prefix string) RedisOption {
	return func(s *RedisSequencer) { s.prefix = prefix }
}

// WithSeed initializes a missing counter key from the document count, so
// switching sequencers does not restart numbering at 1.
func WithSeed(c Counter) RedisOption {
	return func(s *RedisSequencer) { s.seed = c }
}

// NewRedisClient connects to addr and pings it.
func NewRedisClient(ctx context.Context, addr, password string, db int) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}
	return client, nil
}

// NewRedisSequencer wraps a Redis client.
func NewRedisSequencer(client redis.Cmdable, opts ...RedisOption) *RedisSequencer {
	s := &RedisSequencer{client: client, prefix: defaultKeyPrefix}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Next increments the kind's counter key.
func (s *RedisSequencer) Next(ctx context.Context, kind document.Kind) (int64, error) {
	key := s.prefix + kind.String()

	if s.seed != nil {
		exists, err := s.client.Exists(ctx, key).Result()
		if err != nil {
			return 0, wrap("redis exists", err)
		}
		if exists == 0 {
			n, err := s.seed.Count(ctx, kind)
			if err != nil {
				return 0, err
			}
			// SETNX: concurrent seeders race harmlessly, only one value lands.
			if err := s.client.SetNX(ctx, key, n, 0).Err(); err != nil {
				return 0, wrap("redis setnx", err)
			}
		}
	}

	v, err := s.client.Incr(ctx, key).Result()
	if err != nil {
		return 0, wrap("redis incr", err)
	}
	return v, nil
}

var _ Sequencer = (*RedisSequencer)(nil)
