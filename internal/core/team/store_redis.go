// Copyright (c) 2026 VlogForge. All rights reserved.
// Author: platform@vlogforge.io

package team

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/vlogforge/api/internal/platform/apperr"
	"github.com/vlogforge/api/internal/platform/constants"
)

// RedisTokenIndex implements [TokenIndex] using Redis.
//
// Tokens expire alongside their invitation; a miss here falls back to the
// Postgres JSONB probe.
type RedisTokenIndex struct {
	client *redis.Client
}

// NewRedisTokenIndex creates a new Redis-backed invitation token index.
func NewRedisTokenIndex(client *redis.Client) *RedisTokenIndex {
	return &RedisTokenIndex{client: client}
}

/*
Set records a token to team mapping with a TTL.

Parameters:
  - context: context.Context
  - token: string
  - teamID: string
  - ttl: time.Duration

Returns:
  - error: Storage failures
*/
func (index *RedisTokenIndex) Set(context context.Context, token, teamID string, ttl time.Duration) error {

	key := constants.RedisPrefixInviteToken + token

	// Set the mapping with TTL
	if err := index.client.Set(context, key, teamID, ttl).Err(); err != nil {
		return fmt.Errorf("redis_invite_token_set_failed: %w", err)
	}

	// Return nil on success
	return nil
}

/*
Get resolves a token to its team ID.

Description: Returns apperr.NotFound if the token is absent or expired.

Parameters:
  - context: context.Context
  - token: string

Returns:
  - string: Team UUID
  - error: apperr.NotFound or connectivity errors
*/
func (index *RedisTokenIndex) Get(context context.Context, token string) (string, error) {

	key := constants.RedisPrefixInviteToken + token

	// Get the mapping from Redis
	teamID, err := index.client.Get(context, key).Result()

	// Handle errors
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", apperr.NotFound("Invitation")
		}
		return "", fmt.Errorf("redis_invite_token_get_failed: %w", err)
	}

	// Return the team ID
	return teamID, nil
}

/*
Delete drops a token mapping.

Parameters:
  - context: context.Context
  - token: string

Returns:
  - error: Deletion failures
*/
func (index *RedisTokenIndex) Delete(context context.Context, token string) error {

	key := constants.RedisPrefixInviteToken + token

	// Delete the mapping from Redis
	if err := index.client.Del(context, key).Err(); err != nil {
		return fmt.Errorf("redis_invite_token_delete_failed: %w", err)
	}

	// Return nil on success
	return nil
}
