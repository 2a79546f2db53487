package redis

// Package redis provides Redis-based adapters for the notification system.

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/sb-patel/notification-system-backend/internal/ports"
)

// RevocationStore is a Redis-based token blacklist for production use.
// Entry TTL tracks the token's natural expiry, so Redis garbage-collects
// entries exactly when signature verification would reject the token anyway.
type RevocationStore struct {
	client redis.UniversalClient
	prefix string
	now    func() time.Time
}

var _ ports.RevocationStore = (*RevocationStore)(nil)

// revocationEntry is the persisted shape of a blacklist record.
type revocationEntry struct {
	ExpiresAt time.Time `json:"expires_at"`
	CreatedAt time.Time `json:"created_at"`
}

// NewRevocationStore creates a new Redis-based revocation store.
func NewRevocationStore(client redis.UniversalClient) *RevocationStore {
	return &RevocationStore{
		client: client,
		prefix: "revoked:",
		now:    time.Now,
	}
}

// NewRevocationStoreWithPrefix creates a revocation store with a custom key prefix.
func NewRevocationStoreWithPrefix(client redis.UniversalClient, prefix string) *RevocationStore {
	return &RevocationStore{
		client: client,
		prefix: prefix,
		now:    time.Now,
	}
}

// Record blacklists the token until expiresAt. Recording a token that is
// already blacklisted is treated as success, so logout stays idempotent.
func (s *RevocationStore) Record(ctx context.Context, token string, expiresAt time.Time) error {
	if token == "" {
		return errors.New("token cannot be empty")
	}

	ttl := expiresAt.Sub(s.now())
	if ttl <= 0 {
		// Already past natural expiry; verification rejects it regardless.
		return errors.New("token is already expired")
	}

	entry := revocationEntry{ExpiresAt: expiresAt, CreatedAt: s.now()}
	data, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("marshal revocation entry: %w", err)
	}

	key := s.prefix + token
	if err := s.client.SetNX(ctx, key, data, ttl).Err(); err != nil {
		return fmt.Errorf("redis setnx: %w", err)
	}
	return nil
}

// IsRevoked reports whether the token has a live blacklist entry.
func (s *RevocationStore) IsRevoked(ctx context.Context, token string) (bool, error) {
	if token == "" {
		return false, nil
	}

	key := s.prefix + token
	n, err := s.client.Exists(ctx, key).Result()
	if err != nil {
		return false, fmt.Errorf("redis exists: %w", err)
	}
	return n > 0, nil
}
