// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/taibuivan/eachday/internal/platform/constants"
	"github.com/taibuivan/eachday/internal/platform/ctxutil"
	"github.com/taibuivan/eachday/internal/platform/sec"
)

// revokedMarker is the cached value of a revoked token.
const revokedMarker = "1"

// CachedRevocationRepository puts Redis in front of another RevocationRepository.
//
// Only positive answers are cached: a token that is revoked stays revoked, so
// a cached "yes" never goes stale. Each key expires together with the token it
// describes. Redis failures degrade to the backing store.
type CachedRevocationRepository struct {
	next   RevocationRepository
	client redis.UniversalClient
	ttl    time.Duration
	now    func() time.Time
}

// NewCachedRevocationRepository wraps next with a Redis cache.
//
// # Parameters
//   - next: The authoritative revocation list.
//   - client: Redis client.
//   - tokenTTL: Token lifetime, used when a token's own expiry is unknown.
func NewCachedRevocationRepository(next RevocationRepository, client redis.UniversalClient, tokenTTL time.Duration) *CachedRevocationRepository {
	return &CachedRevocationRepository{
		next:   next,
		client: client,
		ttl:    tokenTTL,
		now:    time.Now,
	}
}

/*
Revoke writes the authoritative row, then primes the cache.

Parameters:
  - context: context.Context
  - token: string
  - expiresAt: time.Time

Returns:
  - error: Failures of the backing store only
*/
func (repository *CachedRevocationRepository) Revoke(context context.Context, token string, expiresAt time.Time) error {
	if err := repository.next.Revoke(context, token, expiresAt); err != nil {
		return err
	}

	remaining := expiresAt.Sub(repository.now())
	if remaining <= 0 {
		return nil
	}

	if err := repository.client.Set(context, cacheKey(token), revokedMarker, remaining).Err(); err != nil {
		ctxutil.GetLogger(context).WarnContext(context, "revocation_cache_set_failed", slog.Any("error", err))
	}

	return nil
}

/*
IsRevoked answers from Redis when possible and falls back to the backing store.

Parameters:
  - context: context.Context
  - token: string

Returns:
  - bool: true when revoked
  - error: Failures of the backing store only
*/
func (repository *CachedRevocationRepository) IsRevoked(context context.Context, token string) (bool, error) {
	key := cacheKey(token)

	value, err := repository.client.Get(context, key).Result()
	switch {
	case err == nil && value == revokedMarker:
		return true, nil
	case err != nil && !errors.Is(err, redis.Nil):
		ctxutil.GetLogger(context).WarnContext(context, "revocation_cache_get_failed", slog.Any("error", err))
	}

	revoked, err := repository.next.IsRevoked(context, token)
	if err != nil {
		return false, fmt.Errorf("revocation_lookup_failed: %w", err)
	}

	if remaining := repository.remaining(token); revoked && remaining > 0 {
		if err := repository.client.Set(context, key, revokedMarker, remaining).Err(); err != nil {
			ctxutil.GetLogger(context).WarnContext(context, "revocation_cache_set_failed", slog.Any("error", err))
		}
	}

	return revoked, nil
}

// PurgeExpired delegates to the backing store; cached keys expire on their own.
func (repository *CachedRevocationRepository) PurgeExpired(context context.Context, before time.Time) (int64, error) {
	return repository.next.PurgeExpired(context, before)
}

// remaining is the time left before token expires, or the configured token
// lifetime when the token carries no readable expiry.
func (repository *CachedRevocationRepository) remaining(token string) time.Duration {
	if expiresAt, ok := sec.ExpiryOf(token); ok {
		return expiresAt.Sub(repository.now())
	}
	return repository.ttl
}

// cacheKey namespaces the token digest.
func cacheKey(token string) string {
	return constants.RedisPrefixRevokedToken + sec.HashToken(token)
}
