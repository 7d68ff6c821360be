package gateway

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const profileKeyPrefix = "user:profile:" // Cached profile record: user:profile:{uid}

// ProfileCache keeps a local copy of account profiles so reads can
// survive the document store being unreachable.
type ProfileCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewProfileCache(client *redis.Client, ttl time.Duration) *ProfileCache {
	return &ProfileCache{
		client: client,
		ttl:    ttl,
	}
}

func (c *ProfileCache) Put(ctx context.Context, uid string, p *Profile) error {
	data, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("failed to marshal profile: %w", err)
	}

	if err := c.client.Set(ctx, c.key(uid), data, c.ttl).Err(); err != nil {
		return fmt.Errorf("failed to cache profile: %w", err)
	}
	return nil
}

func (c *ProfileCache) Get(ctx context.Context, uid string) (*Profile, error) {
	data, err := c.client.Get(ctx, c.key(uid)).Result()
	if err == redis.Nil {
		return nil, ErrProfileNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read cached profile: %w", err)
	}

	var p Profile
	if err := json.Unmarshal([]byte(data), &p); err != nil {
		return nil, fmt.Errorf("failed to unmarshal cached profile: %w", err)
	}
	return &p, nil
}

func (c *ProfileCache) Delete(ctx context.Context, uid string) error {
	return c.client.Del(ctx, c.key(uid)).Err()
}

func (c *ProfileCache) key(uid string) string {
	return profileKeyPrefix + uid
}
