package cache

import (
	"context"
	"fmt"
	"strconv"
	"time"

	redisv9 "github.com/redis/go-redis/v9"
)

// LoginGuard counts failed logins per account in Redis. Once maxAttempts
// failures land inside window the account stays locked until the counter
// key expires.
type LoginGuard struct {
	client      *redisv9.Client
	maxAttempts int
	window      time.Duration
}

func NewLoginGuard(client *redisv9.Client, maxAttempts int, window time.Duration) *LoginGuard {
	if maxAttempts <= 0 {
		maxAttempts = 5
	}
	if window <= 0 {
		window = 15 * time.Minute
	}
	return &LoginGuard{
		client:      client,
		maxAttempts: maxAttempts,
		window:      window,
	}
}

func (g *LoginGuard) Locked(ctx context.Context, key string) (bool, error) {
	raw, err := g.client.Get(ctx, g.failureKey(key)).Result()
	if err == redisv9.Nil {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("redis get login failures failed: %w", err)
	}
	count, err := strconv.Atoi(raw)
	if err != nil {
		return false, fmt.Errorf("parse login failures failed: %w", err)
	}
	return count >= g.maxAttempts, nil
}

// RecordFailure bumps the counter. The key gets its TTL in the same
// transaction that creates it, so a counter can never outlive the window.
func (g *LoginGuard) RecordFailure(ctx context.Context, key string) error {
	k := g.failureKey(key)
	_, err := g.client.TxPipelined(ctx, func(pipe redisv9.Pipeliner) error {
		pipe.SetNX(ctx, k, 0, g.window)
		pipe.Incr(ctx, k)
		return nil
	})
	if err != nil {
		return fmt.Errorf("redis record login failure failed: %w", err)
	}
	return nil
}

func (g *LoginGuard) Reset(ctx context.Context, key string) error {
	if err := g.client.Del(ctx, g.failureKey(key)).Err(); err != nil {
		return fmt.Errorf("redis reset login failures failed: %w", err)
	}
	return nil
}

func (g *LoginGuard) failureKey(key string) string {
	return fmt.Sprintf("auth:login:failures:%s", key)
}
