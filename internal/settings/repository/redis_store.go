package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/PyStatRPlus/pystatrplus-ai-portfolio/internal/settings/domain"
	"github.com/redis/go-redis/v9"
)

const (
	presetsKey       = "portfolio:settings:presets" // JSON object: preset name -> preset
	adminSettingsKey = "portfolio:settings:admin"   // JSON admin settings document
)

// RedisStore keeps both documents as JSON strings under fixed keys. The
// document shapes are the same as the files written by FileStore.
type RedisStore struct {
	client *redis.Client
}

// NewRedisStore creates a new RedisStore
func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{client: client}
}

func (s *RedisStore) LoadPresets(ctx context.Context) (domain.Presets, error) {
	presets := domain.Presets{}
	found, err := s.get(ctx, presetsKey, &presets)
	if err != nil {
		return nil, err
	}
	if !found || presets == nil {
		return domain.Presets{}, nil
	}
	return presets, nil
}

func (s *RedisStore) SavePresets(ctx context.Context, presets domain.Presets) error {
	if presets == nil {
		presets = domain.Presets{}
	}
	return s.set(ctx, presetsKey, presets)
}

func (s *RedisStore) LoadAdminSettings(ctx context.Context) (domain.AdminSettings, error) {
	settings := domain.DefaultAdminSettings()
	if _, err := s.get(ctx, adminSettingsKey, &settings); err != nil {
		return domain.AdminSettings{}, err
	}
	settings.Normalize()
	return settings, nil
}

func (s *RedisStore) SaveAdminSettings(ctx context.Context, settings domain.AdminSettings) error {
	return s.set(ctx, adminSettingsKey, settings)
}

func (s *RedisStore) get(ctx context.Context, key string, v any) (bool, error) {
	data, err := s.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to get %s: %w", key, err)
	}
	if err := json.Unmarshal(data, v); err != nil {
		return false, fmt.Errorf("failed to unmarshal %s: %w", key, err)
	}
	return true, nil
}

func (s *RedisStore) set(ctx context.Context, key string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to marshal %s: %w", key, err)
	}
	if err := s.client.Set(ctx, key, data, 0).Err(); err != nil {
		return fmt.Errorf("failed to set %s: %w", key, err)
	}
	return nil
}
