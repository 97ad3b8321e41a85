package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/go-redsync/redsync/v4"
	"github.com/go-redsync/redsync/v4/redis/goredis/v9"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// RedisStore keeps entries in Redis as JSON strings with a TTL.
type RedisStore struct {
	client *redis.Client
	locker *redsync.Redsync
	ttl    time.Duration
	logger *zap.Logger
}

// NewRedisStore wraps client. A zero ttl stores entries without expiry.
func NewRedisStore(client *redis.Client, ttl time.Duration, logger *zap.Logger) *RedisStore {
	if logger == nil {
		logger = zap.NewNop()
	}
	pool := goredis.NewPool(client)

	return &RedisStore{
		client: client,
		locker: redsync.New(pool),
		ttl:    ttl,
		logger: logger,
	}
}

// Get returns the entry for key. A missing key is a miss, not an error.
func (s *RedisStore) Get(ctx context.Context, key string) (Entry, bool, error) {
	data, err := s.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return Entry{}, false, nil
	}
	if err != nil {
		return Entry{}, false, fmt.Errorf("cache: redis get: %w", err)
	}

	var e Entry
	if err := json.Unmarshal(data, &e); err != nil {
		// A corrupt value is treated as a miss and overwritten by the next Put
		s.logger.Warn("Dropping undecodable cache entry", zap.String("key", key), zap.Error(err))
		return Entry{}, false, nil
	}

	return e, true, nil
}

// Put stores e under key with the store's TTL.
func (s *RedisStore) Put(ctx context.Context, key string, e Entry) error {
	data, err := json.Marshal(e)
	if err != nil {
		return fmt.Errorf("cache: encode entry: %w", err)
	}
	if err := s.client.Set(ctx, key, data, s.ttl).Err(); err != nil {
		return fmt.Errorf("cache: redis set: %w", err)
	}

	return nil
}

// Lock takes a redsync mutex named after key. A failure wraps both
// ErrLockNotAcquired and the redsync or context error.
func (s *RedisStore) Lock(ctx context.Context, key string) (func(), error) {
	mutex := s.locker.NewMutex(key + ":lock")
	if err := mutex.LockContext(ctx); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLockNotAcquired, err)
	}

	return func() {
		if _, err := mutex.Unlock(); err != nil {
			s.logger.Warn("Releasing cache lock", zap.String("key", key), zap.Error(err))
		}
	}, nil
}

// Ping checks the connection.
func (s *RedisStore) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}
