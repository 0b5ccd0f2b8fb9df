package service

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const throttleKeyPrefix = "login_attempts:"

// LoginThrottle counts failed login attempts per username in Redis. When
// Redis is unreachable the throttle fails open: availability of login is
// preferred over the rate limit.
type LoginThrottle struct {
	client *redis.Client
	limit  int
	window time.Duration
	logger *zap.Logger
}

// NewLoginThrottle builds a throttle. A nil client or non-positive limit
// disables throttling entirely.
func NewLoginThrottle(client *redis.Client, limit int, window time.Duration, logger *zap.Logger) *LoginThrottle {
	return &LoginThrottle{client: client, limit: limit, window: window, logger: logger}
}

// Blocked reports whether the username has exhausted its attempts.
func (t *LoginThrottle) Blocked(ctx context.Context, username string) bool {
	if t == nil || t.client == nil || t.limit <= 0 {
		return false
	}
	count, err := t.client.Get(ctx, throttleKeyPrefix+username).Int()
	if err != nil {
		if err != redis.Nil {
			t.logger.Warn("throttle lookup failed", zap.Error(err))
		}
		return false
	}
	return count >= t.limit
}

// RecordFailure increments the counter, starting the window on first failure.
func (t *LoginThrottle) RecordFailure(ctx context.Context, username string) int {
	if t == nil || t.client == nil || t.limit <= 0 {
		return 0
	}
	key := throttleKeyPrefix + username
	count, err := t.client.Incr(ctx, key).Result()
	if err != nil {
		t.logger.Warn("throttle increment failed", zap.Error(err))
		return 0
	}
	if count == 1 {
		t.client.Expire(ctx, key, t.window)
	}
	return int(count)
}

// Limit returns the configured attempt limit, zero when disabled.
func (t *LoginThrottle) Limit() int {
	if t == nil {
		return 0
	}
	return t.limit
}

// Reset clears the counter after a successful login.
func (t *LoginThrottle) Reset(ctx context.Context, username string) {
	if t == nil || t.client == nil {
		return
	}
	if err := t.client.Del(ctx, throttleKeyPrefix+username).Err(); err != nil {
		t.logger.Warn("throttle reset failed", zap.Error(err))
	}
}
