package checkout

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	pkgredis "github.com/angelmondragon/storefront/pkg/redis"
)

type redisKV interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
	Del(ctx context.Context, keys ...string) error
	SessionKey(sessionID string) string
}

// RedisSessionStore keeps JSON snapshots in Redis. Every save refreshes the TTL.
type RedisSessionStore struct {
	client redisKV
	ttl    time.Duration
}

// NewRedisSessionStore builds a store on top of the shared redis client.
func NewRedisSessionStore(client redisKV, ttl time.Duration) (*RedisSessionStore, error) {
	if client == nil {
		return nil, fmt.Errorf("redis client required")
	}
	return &RedisSessionStore{client: client, ttl: ttl}, nil
}

func (r *RedisSessionStore) Load(ctx context.Context, id string) (Snapshot, error) {
	raw, err := r.client.Get(ctx, r.client.SessionKey(id))
	if err != nil {
		if pkgredis.IsNil(err) {
			return Snapshot{}, ErrSessionNotFound
		}
		return Snapshot{}, fmt.Errorf("load session %s: %w", id, err)
	}
	var snap Snapshot
	if err := json.Unmarshal([]byte(raw), &snap); err != nil {
		return Snapshot{}, fmt.Errorf("decode session %s: %w", id, err)
	}
	return snap, nil
}

func (r *RedisSessionStore) Save(ctx context.Context, snap Snapshot) error {
	payload, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("encode session %s: %w", snap.ID, err)
	}
	if err := r.client.Set(ctx, r.client.SessionKey(snap.ID), string(payload), r.ttl); err != nil {
		return fmt.Errorf("save session %s: %w", snap.ID, err)
	}
	return nil
}

func (r *RedisSessionStore) Delete(ctx context.Context, id string) error {
	if err := r.client.Del(ctx, r.client.SessionKey(id)); err != nil {
		return fmt.Errorf("delete session %s: %w", id, err)
	}
	return nil
}
