package auth

import (
	"context"
	"time"

	"go.uber.org/zap"
)

// AttemptCounter stores failed login counters with expiry.
type AttemptCounter interface {
	Incr(ctx context.Context, key string, window time.Duration) (int64, error)
	Count(ctx context.Context, key string) (int64, error)
	Reset(ctx context.Context, key string) error
}

// LoginThrottle limits failed logins per email and source IP. Counter errors
// are logged and do not block a login.
type LoginThrottle struct {
	counter     AttemptCounter
	maxAttempts int
	window      time.Duration
	logger      *zap.Logger
}

// NewLoginThrottle builds a throttle. A nil counter or non-positive max disables it.
func NewLoginThrottle(counter AttemptCounter, maxAttempts int, window time.Duration, logger *zap.Logger) *LoginThrottle {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &LoginThrottle{counter: counter, maxAttempts: maxAttempts, window: window, logger: logger}
}

func (t *LoginThrottle) enabled() bool {
	return t != nil && t.counter != nil && t.maxAttempts > 0
}

func throttleKey(email, ip string) string {
	return "login:fail:" + NormalizeEmail(email) + ":" + ip
}

// Allow reports whether another attempt may be made.
func (t *LoginThrottle) Allow(ctx context.Context, email, ip string) bool {
	if !t.enabled() {
		return true
	}
	n, err := t.counter.Count(ctx, throttleKey(email, ip))
	if err != nil {
		t.logger.Warn("login throttle unavailable", zap.Error(err))
		return true
	}
	return n < int64(t.maxAttempts)
}

// Failed records a failed attempt.
func (t *LoginThrottle) Failed(ctx context.Context, email, ip string) {
	if !t.enabled() {
		return
	}
	if _, err := t.counter.Incr(ctx, throttleKey(email, ip), t.window); err != nil {
		t.logger.Warn("login throttle unavailable", zap.Error(err))
	}
}

// Succeeded clears the counter after a good login.
func (t *LoginThrottle) Succeeded(ctx context.Context, email, ip string) {
	if !t.enabled() {
		return
	}
	if err := t.counter.Reset(ctx, throttleKey(email, ip)); err != nil {
		t.logger.Warn("login throttle unavailable", zap.Error(err))
	}
}
