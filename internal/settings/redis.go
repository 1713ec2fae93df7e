package settings

import (
	"context"
	"encoding/json"

	"github.com/redis/go-redis/v9"
)

const keyPrefix = "settings:"

// RedisStore persists the named lists in Redis. A missing or corrupt
// payload silently falls back to the compiled-in defaults.
type RedisStore struct {
	client *redis.Client
}

// NewRedisStore constructs a RedisStore.
func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{client: client}
}

// Get returns the current list, or the defaults when absent or unreadable.
func (s *RedisStore) Get(ctx context.Context, list List) ([]string, error) {
	if !KnownList(list) {
		return nil, ErrUnknownList
	}
	payload, err := s.client.Get(ctx, keyPrefix+string(list)).Bytes()
	if err == redis.Nil {
		return Defaults(list), nil
	}
	if err != nil {
		return nil, err
	}
	var values []string
	if err := json.Unmarshal(payload, &values); err != nil {
		return Defaults(list), nil
	}
	return values, nil
}

// Add appends a value when not already present and returns the new list.
func (s *RedisStore) Add(ctx context.Context, list List, value string) ([]string, error) {
	values, err := s.Get(ctx, list)
	if err != nil {
		return nil, err
	}
	for _, v := range values {
		if v == value {
			return values, nil
		}
	}
	values = append(values, value)
	if err := s.save(ctx, list, values); err != nil {
		return nil, err
	}
	return values, nil
}

// Remove drops a value and returns the new list.
func (s *RedisStore) Remove(ctx context.Context, list List, value string) ([]string, error) {
	values, err := s.Get(ctx, list)
	if err != nil {
		return nil, err
	}
	out := values[:0]
	for _, v := range values {
		if v != value {
			out = append(out, v)
		}
	}
	if err := s.save(ctx, list, out); err != nil {
		return nil, err
	}
	return out, nil
}

// Reset restores the compiled-in defaults and returns them.
func (s *RedisStore) Reset(ctx context.Context, list List) ([]string, error) {
	if !KnownList(list) {
		return nil, ErrUnknownList
	}
	values := Defaults(list)
	if err := s.save(ctx, list, values); err != nil {
		return nil, err
	}
	return values, nil
}

func (s *RedisStore) save(ctx context.Context, list List, values []string) error {
	payload, err := json.Marshal(values)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, keyPrefix+string(list), payload, 0).Err()
}
