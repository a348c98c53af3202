package redis

import (
	"context"

	"github.com/cockroachdb/errors"
	"github.com/redis/go-redis/v9"

	"github.com/mcoot/timeu6/internal/storage"
)

// scanBatch is the COUNT hint used when clearing the namespace
const scanBatch = 100

// Storage is a Redis-backed implementation of the key-value store
type Storage struct {
	client *redis.Client
	cfg    Config
}

// New creates a new Redis storage instance
func New(cfg Config) (*Storage, error) {
	opts, err := redis.ParseURL(cfg.URL)
	if err != nil {
		return nil, errors.Wrap(err, "parse redis url")
	}

	opts.PoolSize = cfg.PoolSize
	opts.MinIdleConns = cfg.MinIdleConns

	client := redis.NewClient(opts)

	// Verify connection
	ctx, cancel := context.WithTimeout(context.Background(), cfg.ConnectTimeout)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, errors.Wrap(err, "ping redis")
	}

	return &Storage{
		client: client,
		cfg:    cfg,
	}, nil
}

// NewWithClient creates a Redis storage with an existing client (for testing)
func NewWithClient(client *redis.Client, cfg Config) *Storage {
	return &Storage{
		client: client,
		cfg:    cfg,
	}
}

// Close closes the Redis connection
func (s *Storage) Close() error {
	return s.client.Close()
}

// Ensure Storage implements the interface
var _ storage.KeyValueStore = (*Storage)(nil)

func (s *Storage) SetItem(ctx context.Context, key, value string) error {
	if err := s.client.Set(ctx, itemKey(key), value, s.cfg.ItemTTL).Err(); err != nil {
		return errors.Wrapf(err, "set %q", key)
	}
	return nil
}

func (s *Storage) GetItem(ctx context.Context, key string) (string, bool, error) {
	value, err := s.client.Get(ctx, itemKey(key)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", false, nil
		}
		return "", false, errors.Wrapf(err, "get %q", key)
	}
	return value, true, nil
}

func (s *Storage) RemoveItem(ctx context.Context, key string) error {
	if err := s.client.Del(ctx, itemKey(key)).Err(); err != nil {
		return errors.Wrapf(err, "remove %q", key)
	}
	return nil
}

// Clear deletes every key in our namespace, leaving other data in the database alone
func (s *Storage) Clear(ctx context.Context) error {
	var keys []string
	iter := s.client.Scan(ctx, 0, itemPattern(), scanBatch).Iterator()
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		return errors.Wrap(err, "scan namespace")
	}

	if len(keys) == 0 {
		return nil
	}

	// Delete all keys in one pipeline
	pipe := s.client.Pipeline()
	for _, key := range keys {
		pipe.Del(ctx, key)
	}
	if _, err := pipe.Exec(ctx); err != nil {
		return errors.Wrap(err, "clear namespace")
	}
	return nil
}
