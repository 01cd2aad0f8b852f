package session

import (
	"context"
	"crypto/rand"
	"encoding/base32"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	"golang.org/x/crypto/bcrypt"
)

// Code purposes. The purpose partitions the key space so a reset code can
// never confirm a registration.
const (
	PurposeConfirm = "confirm"
	PurposeReset   = "reset"
)

var (
	// ErrCodeNotFound means no code is outstanding or it expired.
	ErrCodeNotFound = errors.New("code not found or expired")
	// ErrCodeMismatch means the provided code does not match.
	ErrCodeMismatch = errors.New("code does not match")
)

// CodeStore issues and verifies short-lived confirmation and reset codes.
type CodeStore interface {
	// Issue generates a fresh code, stores its hash with the TTL, and
	// returns the code for delivery.
	Issue(ctx context.Context, purpose, email string, ttl time.Duration) (string, error)
	// Verify compares the provided code against the stored hash and
	// consumes it on success.
	Verify(ctx context.Context, purpose, email, code string) error
}

// RedisCodeStore keeps bcrypt hashes of outstanding codes in Redis.
type RedisCodeStore struct {
	client *redis.Client
}

// NewRedisCodeStore creates a CodeStore on the given Redis client.
func NewRedisCodeStore(client *redis.Client) *RedisCodeStore {
	return &RedisCodeStore{client: client}
}

func codeKey(purpose, email string) string {
	return fmt.Sprintf("code:%s:%s", purpose, email)
}

// generateCode generates a secure random code of the specified length as a
// base32 string without padding.
func generateCode(length int) (string, error) {
	numBytes := (length*5 + 7) / 8
	randomBytes := make([]byte, numBytes)
	if _, err := rand.Read(randomBytes); err != nil {
		return "", fmt.Errorf("failed to generate random bytes: %w", err)
	}
	code := base32.StdEncoding.WithPadding(base32.NoPadding).EncodeToString(randomBytes)
	if len(code) > length {
		code = code[:length]
	}
	return code, nil
}

// Issue generates a 6-character code and stores its bcrypt hash under the
// purpose-scoped key, replacing any outstanding code.
func (s *RedisCodeStore) Issue(ctx context.Context, purpose, email string, ttl time.Duration) (string, error) {
	code, err := generateCode(6)
	if err != nil {
		return "", err
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(code), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash code: %w", err)
	}
	if err := s.client.Set(ctx, codeKey(purpose, email), string(hash), ttl).Err(); err != nil {
		return "", fmt.Errorf("failed to store code: %w", err)
	}
	return code, nil
}

// Verify compares the provided code with the stored hash and deletes it on
// success so a code can be used only once.
func (s *RedisCodeStore) Verify(ctx context.Context, purpose, email, code string) error {
	key := codeKey(purpose, email)
	stored, err := s.client.Get(ctx, key).Result()
	if err != nil {
		if err == redis.Nil {
			return ErrCodeNotFound
		}
		return fmt.Errorf("failed to retrieve code: %w", err)
	}
	if bcrypt.CompareHashAndPassword([]byte(stored), []byte(code)) != nil {
		return ErrCodeMismatch
	}
	return s.client.Del(ctx, key).Err()
}
