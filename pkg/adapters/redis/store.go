// Package redis implements ports.EntryStore on Redis.
package redis

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/aretw0/espalier/pkg/domain"
	backend "github.com/redis/go-redis/v9"
)

// Store persists the entry list as a single JSON document under one key,
// so each save replaces the whole document atomically (SET is atomic).
type Store struct {
	client *backend.Client
	key    string
}

// Option configures the Store.
type Option func(*Store)

// WithKey overrides the document key (default "espalier:entries").
func WithKey(key string) Option {
	return func(s *Store) {
		s.key = key
	}
}

// New creates a Redis store with its own client.
func New(address, password string, db int, opts ...Option) *Store {
	client := backend.NewClient(&backend.Options{
		Addr:     address,
		Password: password,
		DB:       db,
	})
	return NewFromClient(client, opts...)
}

// NewFromClient creates a Redis store from an existing client.
func NewFromClient(client *backend.Client, opts ...Option) *Store {
	store := &Store{
		client: client,
		key:    "espalier:entries",
	}
	for _, opt := range opts {
		opt(store)
	}
	return store
}

// Load reads the entry document.
func (s *Store) Load(ctx context.Context) ([]domain.ConfigEntry, error) {
	val, err := s.client.Get(ctx, s.key).Result()
	if err != nil {
		if err == backend.Nil {
			return nil, domain.ErrStoreNotFound
		}
		return nil, fmt.Errorf("failed to get from redis: %w", err)
	}

	var entries []domain.ConfigEntry
	if err := json.Unmarshal([]byte(val), &entries); err != nil {
		return nil, fmt.Errorf("failed to parse entries: %w", err)
	}
	return entries, nil
}

// Save replaces the entry document.
func (s *Store) Save(ctx context.Context, entries []domain.ConfigEntry) error {
	if entries == nil {
		entries = []domain.ConfigEntry{}
	}
	data, err := json.Marshal(entries)
	if err != nil {
		return fmt.Errorf("failed to marshal entries: %w", err)
	}

	if err := s.client.Set(ctx, s.key, data, 0).Err(); err != nil {
		return fmt.Errorf("failed to save to redis: %w", err)
	}
	return nil
}

// Close closes the redis client.
func (s *Store) Close() error {
	return s.client.Close()
}
