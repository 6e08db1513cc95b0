package ratelimit

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

const (
	PolicyRead    = "read"
	PolicyWrite   = "write"
	PolicyUpload  = "upload"
	PolicyContact = "contact"
	PolicyAuth    = "auth"
)

// Policy is a named fixed-window budget.
type Policy struct {
	Name        string
	MaxRequests int
	Window      time.Duration
	Message     string
}

// Policies maps a tier name to its budget.
type Policies map[string]Policy

// DefaultPolicies returns a fresh copy of the built-in tiers.
func DefaultPolicies() Policies {
	return Policies{
		PolicyRead: {
			Name:        PolicyRead,
			MaxRequests: 120,
			Window:      time.Minute,
			Message:     "Too many requests. Please slow down.",
		},
		PolicyWrite: {
			Name:        PolicyWrite,
			MaxRequests: 30,
			Window:      time.Minute,
			Message:     "Too many updates. Please try again shortly.",
		},
		PolicyUpload: {
			Name:        PolicyUpload,
			MaxRequests: 10,
			Window:      time.Minute,
			Message:     "Too many uploads. Please try again shortly.",
		},
		PolicyContact: {
			Name:        PolicyContact,
			MaxRequests: 5,
			Window:      10 * time.Minute,
			Message:     "Too many messages sent. Please try again later.",
		},
		PolicyAuth: {
			Name:        PolicyAuth,
			MaxRequests: 10,
			Window:      15 * time.Minute,
			Message:     "Too many login attempts. Please try again later.",
		},
	}
}

// PoliciesFromEnv applies RATE_LIMIT_<TIER>=<max>/<duration> overrides on top of the defaults.
func PoliciesFromEnv(getenv func(string) string) (Policies, error) {
	if getenv == nil {
		getenv = os.Getenv
	}

	policies := DefaultPolicies()
	for name, p := range policies {
		raw := strings.TrimSpace(getenv("RATE_LIMIT_" + strings.ToUpper(name)))
		if raw == "" {
			continue
		}

		maxRequests, window, err := ParseBudget(raw)
		if err != nil {
			return nil, fmt.Errorf("RATE_LIMIT_%s: %w", strings.ToUpper(name), err)
		}
		p.MaxRequests = maxRequests
		p.Window = window
		policies[name] = p
	}

	return policies, nil
}

// ParseBudget parses "60/1m" into (60, time.Minute). Both parts must be positive.
func ParseBudget(raw string) (int, time.Duration, error) {
	parts := strings.SplitN(raw, "/", 2)
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("invalid budget %q, want <max>/<duration>", raw)
	}

	maxRequests, err := strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil || maxRequests <= 0 {
		return 0, 0, fmt.Errorf("invalid max requests in %q", raw)
	}

	window, err := time.ParseDuration(strings.TrimSpace(parts[1]))
	if err != nil || window <= 0 {
		return 0, 0, fmt.Errorf("invalid window in %q", raw)
	}

	return maxRequests, window, nil
}

// MustGet panics on an unknown tier. Tiers are wired at route registration, so a
// miss is a programming error rather than a request-time condition.
func (p Policies) MustGet(name string) Policy {
	policy, ok := p[name]
	if !ok {
		panic(fmt.Sprintf("ratelimit: unknown policy %q", name))
	}
	return policy
}
