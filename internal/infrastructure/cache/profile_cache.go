package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"medsync/internal/delivery/dto"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

var (
	// ErrCacheMiss is returned when no snapshot is cached for a user
	ErrCacheMiss = errors.New("profile cache miss")
	// ErrStaleSnapshot is returned by Set when the profile changed after the snapshot was read
	ErrStaleSnapshot = errors.New("profile snapshot is stale")
)

const (
	profileKeyPrefix        = "profile:snapshot:"
	profileVersionKeyPrefix = "profile:version:"
)

// ProfileCache stores serialized profile snapshots in Redis
type ProfileCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewProfileCache(client *redis.Client, ttl time.Duration) *ProfileCache {
	return &ProfileCache{client: client, ttl: ttl}
}

func profileKey(userID uuid.UUID) string {
	return profileKeyPrefix + userID.String()
}

func profileVersionKey(userID uuid.UUID) string {
	return profileVersionKeyPrefix + userID.String()
}

func (c *ProfileCache) Get(ctx context.Context, userID uuid.UUID) (*dto.ProfileResponse, error) {
	if c.client == nil || c.ttl <= 0 {
		return nil, ErrCacheMiss
	}

	key := profileKey(userID)
	raw, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrCacheMiss
		}
		return nil, fmt.Errorf("redis get %s: %w", key, err)
	}

	var profile dto.ProfileResponse
	if err := json.Unmarshal(raw, &profile); err != nil {
		return nil, fmt.Errorf("unmarshal cache value for %s: %w", key, err)
	}
	return &profile, nil
}

// Version returns the profile generation a snapshot must be read under to be cached
func (c *ProfileCache) Version(ctx context.Context, userID uuid.UUID) (int64, error) {
	if c.client == nil || c.ttl <= 0 {
		return 0, nil
	}

	key := profileVersionKey(userID)
	version, err := c.client.Get(ctx, key).Int64()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return 0, nil
		}
		return 0, fmt.Errorf("redis get %s: %w", key, err)
	}
	return version, nil
}

// Set stores the snapshot only while the profile is still at version
func (c *ProfileCache) Set(ctx context.Context, userID uuid.UUID, version int64, profile *dto.ProfileResponse) error {
	if c.client == nil || c.ttl <= 0 {
		return nil
	}

	key := profileKey(userID)
	versionKey := profileVersionKey(userID)
	payload, err := json.Marshal(profile)
	if err != nil {
		return fmt.Errorf("marshal cache value for %s: %w", key, err)
	}

	err = c.client.Watch(ctx, func(tx *redis.Tx) error {
		current, err := tx.Get(ctx, versionKey).Int64()
		if err != nil && !errors.Is(err, redis.Nil) {
			return err
		}
		if current != version {
			return ErrStaleSnapshot
		}

		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, key, payload, c.ttl)
			return nil
		})
		return err
	}, versionKey)
	switch {
	case err == nil:
		return nil
	case errors.Is(err, ErrStaleSnapshot), errors.Is(err, redis.TxFailedErr):
		return ErrStaleSnapshot
	default:
		return fmt.Errorf("redis set %s: %w", key, err)
	}
}

// Invalidate drops the snapshot and bumps the profile version so snapshots read
// before the change can no longer be stored. It returns the new version.
func (c *ProfileCache) Invalidate(ctx context.Context, userID uuid.UUID) (int64, error) {
	if c.client == nil {
		return 0, nil
	}

	key := profileKey(userID)
	versionKey := profileVersionKey(userID)
	var incr *redis.IntCmd
	_, err := c.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		incr = pipe.Incr(ctx, versionKey)
		pipe.Del(ctx, key)
		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("redis invalidate %s: %w", key, err)
	}
	return incr.Val(), nil
}
