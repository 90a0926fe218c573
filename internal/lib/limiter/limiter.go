// Package limiter rate-limits failed admin sign-ins per client address.
package limiter

import (
	"context"
	"log/slog"
	"time"

	"lavender_breeze/internal/lib/logger/sl"
)

const (
	DefaultAttempts = 5
	DefaultWindow   = time.Minute
)

// Store keeps failure counters. The window starts at the first failure.
type Store interface {
	CountAttempts(ctx context.Context, key string) (int, error)
	RecordAttempt(ctx context.Context, key string, window time.Duration) error
	ResetAttempts(ctx context.Context, key string) error
}

type LoginLimiter struct {
	log    *slog.Logger
	store  Store
	max    int
	window time.Duration
}

func New(log *slog.Logger, store Store, max int, window time.Duration) *LoginLimiter {
	if max <= 0 {
		max = DefaultAttempts
	}
	if window <= 0 {
		window = DefaultWindow
	}

	return &LoginLimiter{
		log:    log,
		store:  store,
		max:    max,
		window: window,
	}
}

// Check reports whether ip may try again. It does not record anything.
// A store failure lets the attempt through.
func (l *LoginLimiter) Check(ctx context.Context, ip string) bool {
	n, err := l.store.CountAttempts(ctx, ip)
	if err != nil {
		l.log.Warn("limiter store unavailable", slog.String("op", "limiter.Check"), sl.Err(err))
		return true
	}

	return n < l.max
}

// Record counts one failed attempt.
func (l *LoginLimiter) Record(ctx context.Context, ip string) {
	if err := l.store.RecordAttempt(ctx, ip, l.window); err != nil {
		l.log.Warn("failed to record attempt", slog.String("op", "limiter.Record"), sl.Err(err))
	}
}

// Reset forgets failures after a successful sign-in.
func (l *LoginLimiter) Reset(ctx context.Context, ip string) {
	if err := l.store.ResetAttempts(ctx, ip); err != nil {
		l.log.Warn("failed to reset attempts", slog.String("op", "limiter.Reset"), sl.Err(err))
	}
}
