package mfa

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"time"

	"github.com/redis/go-redis/v9"
)

const emailCodeKeyPrefix = "mfa:email:"

// ErrCodeMismatch is returned when a presented code does not match or has expired.
var ErrCodeMismatch = errors.New("code invalid or expired")

// CodeStore issues and verifies single-use login codes.
type CodeStore interface {
	Issue(ctx context.Context, userID string, ttl time.Duration) (string, error)
	Verify(ctx context.Context, userID, code string) error
}

type redisCodeStore struct {
	client *redis.Client
}

// NewRedisCodeStore builds a CodeStore backed by Redis with per-code TTL.
func NewRedisCodeStore(client *redis.Client) CodeStore {
	return &redisCodeStore{client: client}
}

func (s *redisCodeStore) Issue(ctx context.Context, userID string, ttl time.Duration) (string, error) {
	code, err := randomDigits(6)
	if err != nil {
		return "", err
	}
	key := emailCodeKeyPrefix + userID
	if err := s.client.Set(ctx, key, HashCode(code), ttl).Err(); err != nil {
		return "", fmt.Errorf("store email code: %w", err)
	}
	return code, nil
}

func (s *redisCodeStore) Verify(ctx context.Context, userID, code string) error {
	key := emailCodeKeyPrefix + userID
	stored, err := s.client.Get(ctx, key).Result()
	if err == redis.Nil {
		return ErrCodeMismatch
	}
	if err != nil {
		return fmt.Errorf("load email code: %w", err)
	}
	if stored != HashCode(code) {
		return ErrCodeMismatch
	}
	// Single use.
	s.client.Del(ctx, key)
	return nil
}

func randomDigits(n int) (string, error) {
	buf := make([]byte, n)
	for i := range buf {
		d, err := rand.Int(rand.Reader, big.NewInt(10))
		if err != nil {
			return "", fmt.Errorf("random digit: %w", err)
		}
		buf[i] = byte('0' + d.Int64())
	}
	return string(buf), nil
}
