package ratelimit

import (
	"context"
	"time"
)

// Window is the state of one fixed window after an increment.
type Window struct {
	Count   int64
	ResetAt time.Time
}

// CounterStore counts hits per key inside fixed windows.
type CounterStore interface {
	// Increment adds one hit to key and returns the post-increment count together
	// with the instant the current window resets. A window that has elapsed starts over.
	Increment(ctx context.Context, key string, window time.Duration) (Window, error)
}
