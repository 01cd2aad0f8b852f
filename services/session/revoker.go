package session

import (
	"context"
	"time"

	"github.com/go-redis/redis/v8"
)

// TokenRevoker records signed-out session tokens until they expire.
type TokenRevoker interface {
	Revoke(ctx context.Context, tokenHash string, ttl time.Duration) error
	IsRevoked(ctx context.Context, tokenHash string) (bool, error)
}

// RedisTokenRevoker stores revoked token hashes in Redis with a TTL equal to
// the token's remaining lifetime.
type RedisTokenRevoker struct {
	client *redis.Client
}

// NewRedisTokenRevoker creates a TokenRevoker on the given Redis client.
func NewRedisTokenRevoker(client *redis.Client) *RedisTokenRevoker {
	return &RedisTokenRevoker{client: client}
}

func revokedKey(tokenHash string) string {
	return "revoked:" + tokenHash
}

func (r *RedisTokenRevoker) Revoke(ctx context.Context, tokenHash string, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}
	return r.client.Set(ctx, revokedKey(tokenHash), "1", ttl).Err()
}

func (r *RedisTokenRevoker) IsRevoked(ctx context.Context, tokenHash string) (bool, error) {
	n, err := r.client.Exists(ctx, revokedKey(tokenHash)).Result()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}
