package middleware

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
	log "github.com/sirupsen/logrus"

	"github.com/lac-hong-legacy/ven_shop/dto"
	"github.com/lac-hong-legacy/ven_shop/services/ratelimit"
	"github.com/lac-hong-legacy/ven_shop/shared"
)

// ClientKey derives the rate limit identity of the caller from proxy headers.
func ClientKey(c *fiber.Ctx) string {
	return ratelimit.DeriveClientKey(func(key string) string {
		return c.Get(key)
	})
}

// RateLimit admits or rejects requests under the named policy. It panics at
// construction when the policy is unknown. Memory-backed limiters are checked
// synchronously; shared stores go through the bounded Check.
func RateLimit(limiter *ratelimit.Limiter, policy string) fiber.Handler {
	p := limiter.Policy(policy)
	local := limiter.Local()

	return func(c *fiber.Ctx) error {
		var decision ratelimit.Decision
		if local {
			decision = limiter.CheckLocal(ClientKey(c), p.Name)
		} else {
			decision = limiter.Check(c.UserContext(), ClientKey(c), p.Name)
		}
		WriteRateLimitHeaders(c, decision)

		if !decision.Allowed {
			return RejectRateLimited(c, decision, p.Message)
		}
		return c.Next()
	}
}

// WriteRateLimitHeaders sets the X-RateLimit-* headers. Degraded decisions carry
// no trustworthy numbers, so nothing is written for them.
func WriteRateLimitHeaders(c *fiber.Ctx, d ratelimit.Decision) {
	if d.Degraded {
		return
	}

	c.Set("X-RateLimit-Limit", strconv.Itoa(d.Limit))
	c.Set("X-RateLimit-Remaining", strconv.Itoa(d.Remaining))
	if !d.ResetAt.IsZero() {
		c.Set("X-RateLimit-Reset", strconv.FormatInt(d.ResetAt.Unix(), 10))
	}
}

// RejectRateLimited writes the 429 response for a rejected decision.
func RejectRateLimited(c *fiber.Ctx, d ratelimit.Decision, message string) error {
	if message == "" {
		message = "Too many requests. Please try again later."
	}

	secs := d.RetryAfterSeconds()
	if secs < 1 {
		secs = 1
	}

	log.WithFields(log.Fields{
		"policy": d.Policy,
		"path":   c.Path(),
	}).Debug("rate limit exceeded")

	c.Set(fiber.HeaderRetryAfter, strconv.Itoa(secs))
	return shared.ResponseRaw(c, fiber.StatusTooManyRequests, dto.RateLimitErrorResponse{
		Error:      message,
		Code:       dto.RateLimitExceededCode,
		RetryAfter: secs,
	})
}
