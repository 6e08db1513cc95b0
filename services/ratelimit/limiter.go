package ratelimit

import (
	"context"
	"time"

	log "github.com/sirupsen/logrus"
)

const DefaultTimeout = 150 * time.Millisecond

// Decision is the outcome of one admission check.
type Decision struct {
	Allowed    bool
	Policy     string
	Limit      int
	Remaining  int
	ResetAt    time.Time
	RetryAfter time.Duration
	// Degraded is set when the store could not answer and the request was let through.
	Degraded bool
}

// RetryAfterSeconds is RetryAfter in whole seconds, as sent in the Retry-After header.
func (d Decision) RetryAfterSeconds() int {
	return int(d.RetryAfter / time.Second)
}

// Limiter applies fixed-window policies against a CounterStore.
type Limiter struct {
	policies Policies
	store    CounterStore
	local    *MemoryStore
	timeout  time.Duration
	now      func() time.Time
	logger   *log.Entry
}

type Option func(*Limiter)

func WithTimeout(d time.Duration) Option {
	return func(l *Limiter) { l.timeout = d }
}

func WithClock(now func() time.Time) Option {
	return func(l *Limiter) { l.now = now }
}

// WithLocalStore sets the store used by CheckLocal.
func WithLocalStore(s *MemoryStore) Option {
	return func(l *Limiter) { l.local = s }
}

func WithLogger(entry *log.Entry) Option {
	return func(l *Limiter) { l.logger = entry }
}

// NewLimiter builds a limiter over store. A nil store means process memory.
func NewLimiter(store CounterStore, policies Policies, opts ...Option) *Limiter {
	if policies == nil {
		policies = DefaultPolicies()
	}

	l := &Limiter{
		policies: policies,
		store:    store,
		timeout:  DefaultTimeout,
		now:      time.Now,
		logger:   log.WithField("component", "ratelimit"),
	}
	for _, opt := range opts {
		opt(l)
	}

	if l.local == nil {
		if mem, ok := store.(*MemoryStore); ok {
			l.local = mem
		} else {
			l.local = NewMemoryStore(WithMemoryClock(l.now))
		}
	}
	if l.store == nil {
		l.store = l.local
	}

	return l
}

// Key is the counter key for a client under a policy.
func Key(policy, clientKey string) string {
	return "rl:" + policy + ":" + clientKey
}

// Policy returns the named policy, panicking when it does not exist.
func (l *Limiter) Policy(name string) Policy {
	return l.policies.MustGet(name)
}

// Local reports whether the configured store is process memory, in which case
// CheckLocal gives the same answer as Check without a goroutine or timeout.
func (l *Limiter) Local() bool {
	return l.store == l.local
}

// CheckLocal decides against process memory only and never blocks on I/O.
func (l *Limiter) CheckLocal(clientKey, policy string) Decision {
	p := l.policies.MustGet(policy)
	w := l.local.Hit(Key(p.Name, clientKey), p.Window)
	return l.decide(p, w)
}

// Check decides against the configured store. Store errors and timeouts fail open.
func (l *Limiter) Check(ctx context.Context, clientKey, policy string) Decision {
	p := l.policies.MustGet(policy)

	ctx, cancel := context.WithTimeout(ctx, l.timeout)
	defer cancel()

	type result struct {
		w   Window
		err error
	}
	done := make(chan result, 1)
	go func() {
		w, err := l.store.Increment(ctx, Key(p.Name, clientKey), p.Window)
		done <- result{w, err}
	}()

	select {
	case r := <-done:
		if r.err != nil {
			return l.degraded(p, clientKey, r.err)
		}
		return l.decide(p, r.w)
	case <-ctx.Done():
		return l.degraded(p, clientKey, ctx.Err())
	}
}

func (l *Limiter) decide(p Policy, w Window) Decision {
	d := Decision{
		Allowed: w.Count <= int64(p.MaxRequests),
		Policy:  p.Name,
		Limit:   p.MaxRequests,
		ResetAt: w.ResetAt,
	}

	if remaining := int64(p.MaxRequests) - w.Count; remaining > 0 {
		d.Remaining = int(remaining)
	}

	if d.Allowed {
		decisionsTotal.WithLabelValues(p.Name, outcomeAllowed).Inc()
		return d
	}

	d.RetryAfter = retryAfter(w.ResetAt.Sub(l.now()))
	decisionsTotal.WithLabelValues(p.Name, outcomeRejected).Inc()
	return d
}

func (l *Limiter) degraded(p Policy, clientKey string, err error) Decision {
	decisionsTotal.WithLabelValues(p.Name, outcomeDegraded).Inc()
	l.logger.WithFields(log.Fields{
		"policy": p.Name,
		"client": clientKey,
	}).WithError(err).Warn("rate limit store unavailable, admitting request")

	return Decision{
		Allowed:   true,
		Policy:    p.Name,
		Limit:     p.MaxRequests,
		Remaining: p.MaxRequests,
		Degraded:  true,
	}
}

// retryAfter rounds up to whole seconds, never below one.
func retryAfter(d time.Duration) time.Duration {
	if d <= time.Second {
		return time.Second
	}
	secs := (d + time.Second - 1) / time.Second
	return secs * time.Second
}
