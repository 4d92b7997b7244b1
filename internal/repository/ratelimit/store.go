// Package ratelimit counts requests per client in fixed windows.
package ratelimit

import (
	"context"
	"fmt"
	"time"
)

// Keys follow the pattern scanexplorer:rl:{scope}:{client}.
const keyPrefix = "scanexplorer:rl:"

// store is the consumer interface for counter operations (ISP).
type store interface {
	IncrWindow(ctx context.Context, key string, ttl time.Duration) (int64, error)
}

// Decision is the outcome of one counted request.
type Decision struct {
	Allowed   bool
	Limit     int64
	Remaining int64
	// Window is the configured window length; the real reset may be sooner.
	Window time.Duration
}

// Store implements a fixed-window limiter on top of expiring counters.
type Store struct {
	store  store
	limit  int64
	window time.Duration
}

// New creates a limiter allowing limit requests per window per client and scope.
func New(s store, limit int64, window time.Duration) *Store {
	return &Store{store: s, limit: limit, window: window}
}

// Allow counts one request for client in scope. The window starts at the
// first request and is not extended by later ones.
func (s *Store) Allow(ctx context.Context, scope, client string) (Decision, error) {
	key := keyPrefix + scope + ":" + client
	n, err := s.store.IncrWindow(ctx, key, s.window)
	if err != nil {
		return Decision{}, fmt.Errorf("rate limit %s: %w", key, err)
	}
	remaining := s.limit - n
	if remaining < 0 {
		remaining = 0
	}
	return Decision{
		Allowed:   n <= s.limit,
		Limit:     s.limit,
		Remaining: remaining,
		Window:    s.window,
	}, nil
}
