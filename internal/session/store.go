package session

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const sessionKeyPrefix = "session:user:" // Session record: session:user:{uid}

// Store keeps sessions in Redis, one per authenticated account, with a
// TTL so abandoned sessions expire on their own.
type Store struct {
	client *redis.Client
	ttl    time.Duration
}

func NewStore(client *redis.Client, ttl time.Duration) *Store {
	return &Store{
		client: client,
		ttl:    ttl,
	}
}

// Put creates or replaces the session for s.UID.
func (st *Store) Put(ctx context.Context, s *Session) error {
	if s.UID == "" {
		return fmt.Errorf("session uid required")
	}
	now := time.Now().UTC()
	if s.CreatedAt.IsZero() {
		s.CreatedAt = now
	}
	s.UpdatedAt = now

	data, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("failed to marshal session: %w", err)
	}

	if err := st.client.Set(ctx, st.key(s.UID), data, st.ttl).Err(); err != nil {
		return fmt.Errorf("failed to store session: %w", err)
	}
	return nil
}

func (st *Store) Get(ctx context.Context, uid string) (*Session, error) {
	data, err := st.client.Get(ctx, st.key(uid)).Result()
	if err == redis.Nil {
		return nil, ErrSessionNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get session: %w", err)
	}

	var s Session
	if err := json.Unmarshal([]byte(data), &s); err != nil {
		return nil, fmt.Errorf("failed to unmarshal session: %w", err)
	}
	return &s, nil
}

// SetLanguage updates only the display language, refreshing the TTL.
func (st *Store) SetLanguage(ctx context.Context, uid, language string) (*Session, error) {
	s, err := st.Get(ctx, uid)
	if err != nil {
		return nil, err
	}
	s.Language = language
	if err := st.Put(ctx, s); err != nil {
		return nil, err
	}
	return s, nil
}

// Delete tears the session down at sign-out. Deleting a missing
// session is not an error.
func (st *Store) Delete(ctx context.Context, uid string) error {
	if err := st.client.Del(ctx, st.key(uid)).Err(); err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}
	return nil
}

func (st *Store) key(uid string) string {
	return sessionKeyPrefix + uid
}
