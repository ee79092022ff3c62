// Copyright (c) 2026 Vidora. All rights reserved.
// Author: minh.vban@gmail.com

package auth

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/minhvban/vidora/internal/platform/constants"
)

// RedisTokenBlacklist implements TokenBlacklist using Redis.
//
// Each revoked token becomes a key with a TTL equal to the token's remaining
// lifetime, so the blacklist cleans itself up as tokens expire naturally.
type RedisTokenBlacklist struct {
	client *redis.Client
}

// NewTokenBlacklist creates a new Redis-backed TokenBlacklist.
func NewTokenBlacklist(client *redis.Client) *RedisTokenBlacklist {
	return &RedisTokenBlacklist{client: client}
}

/*
Add records a token as revoked for the given duration.

Parameters:
  - context: context.Context
  - token: string
  - ttl: time.Duration

Returns:
  - error: Execution errors
*/
func (repository *RedisTokenBlacklist) Add(context context.Context, token string, ttl time.Duration) error {

	// Use constants for key prefix
	key := constants.RedisPrefixTokenBlacklist + token

	// Set the marker with TTL matching the token's remaining lifetime
	if err := repository.client.Set(context, key, "1", ttl).Err(); err != nil {
		return fmt.Errorf("redis_blacklist_add_failed: %w", err)
	}

	// Return nil on success
	return nil
}

/*
Contains reports whether a token has been revoked.

Description: Redis EXISTS is read-after-write consistent on a single node, so
a just-revoked token is rejected on the very next request.

Parameters:
  - context: context.Context
  - token: string

Returns:
  - bool: true if the token is blacklisted
  - error: Connectivity errors (callers fail closed)
*/
func (repository *RedisTokenBlacklist) Contains(context context.Context, token string) (bool, error) {

	// Use constants for key prefix
	key := constants.RedisPrefixTokenBlacklist + token

	// Check key existence
	count, err := repository.client.Exists(context, key).Result()
	if err != nil {
		return false, fmt.Errorf("redis_blacklist_contains_failed: %w", err)
	}

	return count > 0, nil
}
