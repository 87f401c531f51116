package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/aretw0/wayfinder/pkg/domain"
	backend "github.com/redis/go-redis/v9"
)

// Store implements ports.ConfigCache using Redis, so several navigator
// processes can share the last fetched remote path configuration.
type Store struct {
	client *backend.Client
	prefix string
	ttl    time.Duration
}

type Option func(*Store)

// WithTTL sets the expiration for cached documents.
func WithTTL(ttl time.Duration) Option {
	return func(s *Store) {
		s.ttl = ttl
	}
}

// WithPrefix sets the key prefix for cached documents.
func WithPrefix(prefix string) Option {
	return func(s *Store) {
		s.prefix = prefix
	}
}

// New creates a new Redis store with options.
func New(address, password string, db int, opts ...Option) *Store {
	rdb := backend.NewClient(&backend.Options{
		Addr:     address,
		Password: password,
		DB:       db,
	})
	return NewFromClient(rdb, opts...)
}

// NewFromClient creates a new Redis store from an existing client.
func NewFromClient(client *backend.Client, opts ...Option) *Store {
	store := &Store{
		client: client,
		prefix: "wayfinder:config:",
		ttl:    0, // No expiration by default
	}

	for _, opt := range opts {
		opt(store)
	}

	return store
}

func (s *Store) key(key string) string {
	return s.prefix + key
}

func (s *Store) indexKey() string {
	return s.prefix + "index"
}

// Set stores a document and records its key in the index.
func (s *Store) Set(ctx context.Context, key string, data []byte) error {
	pipe := s.client.Pipeline()

	pipe.Set(ctx, s.key(key), data, s.ttl)

	// Score = Now + TTL. If TTL = 0, Score = +Inf (approx).
	score := float64(time.Now().Add(s.ttl).Unix())
	if s.ttl == 0 {
		score = 4102444800 // 2100-01-01
	}
	pipe.ZAdd(ctx, s.indexKey(), backend.Z{
		Score:  score,
		Member: key,
	})

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to save to redis: %w", err)
	}
	return nil
}

// Get retrieves a document, or domain.ErrCacheMiss.
func (s *Store) Get(ctx context.Context, key string) ([]byte, error) {
	val, err := s.client.Get(ctx, s.key(key)).Bytes()
	if err != nil {
		if errors.Is(err, backend.Nil) {
			return nil, domain.ErrCacheMiss
		}
		return nil, fmt.Errorf("failed to get from redis: %w", err)
	}
	return val, nil
}

// Delete removes a cached document.
func (s *Store) Delete(ctx context.Context, key string) error {
	pipe := s.client.Pipeline()

	pipe.Del(ctx, s.key(key))
	pipe.ZRem(ctx, s.indexKey(), key)

	_, err := pipe.Exec(ctx)
	return err
}

// Keys lists cached documents, pruning expired index entries first.
func (s *Store) Keys(ctx context.Context) ([]string, error) {
	now := float64(time.Now().Unix())
	err := s.client.ZRemRangeByScore(ctx, s.indexKey(), "-inf", fmt.Sprintf("%f", now)).Err()
	if err != nil {
		return nil, fmt.Errorf("failed to prune expired documents: %w", err)
	}

	keys, err := s.client.ZRange(ctx, s.indexKey(), 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to list documents: %w", err)
	}
	return keys, nil
}

// Close closes the redis client.
func (s *Store) Close() error {
	return s.client.Close()
}
