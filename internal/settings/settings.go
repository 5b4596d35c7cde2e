// Package settings holds the clinic-wide defaults the booking flow reads.
package settings

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/redis/go-redis/v9"
)

// Settings are the global clinic defaults applied to online bookings.
type Settings struct {
	DefaultPrice    float64 `json:"defaultPrice"`
	DefaultDuration int     `json:"defaultDuration"` // minutes
}

// Defaults returns the out-of-the-box configuration.
func Defaults() Settings {
	return Settings{DefaultPrice: 250, DefaultDuration: 50}
}

// Validate rejects settings the slot calculator could not work with.
func (s Settings) Validate() error {
	if s.DefaultPrice < 0 {
		return ErrInvalidPrice
	}
	if s.DefaultDuration <= 0 {
		return ErrInvalidDuration
	}
	return nil
}

var (
	// ErrInvalidPrice is returned for a negative default price
	ErrInvalidPrice = errors.New("default price must not be negative")

	// ErrInvalidDuration is returned for a non-positive default duration
	ErrInvalidDuration = errors.New("default duration must be positive")
)

// Store provides access to the global settings.
type Store interface {
	Get(ctx context.Context) (Settings, error)
	Set(ctx context.Context, s Settings) error
}

// MemoryStore keeps settings in process memory.
type MemoryStore struct {
	mu sync.RWMutex
	s  Settings
}

// NewMemoryStore creates a store seeded with the given settings.
func NewMemoryStore(initial Settings) *MemoryStore {
	if initial == (Settings{}) {
		initial = Defaults()
	}
	return &MemoryStore{s: initial}
}

// Get returns the current settings.
func (m *MemoryStore) Get(ctx context.Context) (Settings, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.s, nil
}

// Set replaces the settings.
func (m *MemoryStore) Set(ctx context.Context, s Settings) error {
	if err := s.Validate(); err != nil {
		return err
	}
	m.mu.Lock()
	m.s = s
	m.mu.Unlock()
	return nil
}

const redisKey = "clinic:settings"

// RedisStore persists settings as a JSON blob in Redis so they survive
// restarts and are shared across instances.
type RedisStore struct {
	client   *redis.Client
	fallback Settings
}

// NewRedisStore creates a Redis-backed settings store.
func NewRedisStore(client *redis.Client, fallback Settings) *RedisStore {
	if fallback == (Settings{}) {
		fallback = Defaults()
	}
	return &RedisStore{client: client, fallback: fallback}
}

// Get loads settings from Redis, falling back to the seed values when the
// key has never been written.
func (r *RedisStore) Get(ctx context.Context) (Settings, error) {
	raw, err := r.client.Get(ctx, redisKey).Result()
	if err == redis.Nil {
		return r.fallback, nil
	}
	if err != nil {
		return Settings{}, fmt.Errorf("settings: redis get: %w", err)
	}

	var s Settings
	if err := json.Unmarshal([]byte(raw), &s); err != nil {
		return Settings{}, fmt.Errorf("settings: decode: %w", err)
	}
	return s, nil
}

// Set stores settings in Redis.
func (r *RedisStore) Set(ctx context.Context, s Settings) error {
	if err := s.Validate(); err != nil {
		return err
	}
	raw, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("settings: encode: %w", err)
	}
	if err := r.client.Set(ctx, redisKey, raw, 0).Err(); err != nil {
		return fmt.Errorf("settings: redis set: %w", err)
	}
	return nil
}
