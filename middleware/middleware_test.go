package middleware

import (
	"context"
	"errors"
	"io"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lac-hong-legacy/ven_shop/services/ratelimit"
)

func newTestApp(handlers ...fiber.Handler) *fiber.App {
	app := fiber.New()
	handlers = append(handlers, func(c *fiber.Ctx) error {
		return c.SendString("ok")
	})
	app.Post("/", handlers...)
	return app
}

func readBody(t *testing.T, body io.Reader) string {
	t.Helper()
	b, err := io.ReadAll(body)
	require.NoError(t, err)
	return string(b)
}

func TestRateLimitRejectsOverBudget(t *testing.T) {
	limiter := ratelimit.NewLimiter(nil, ratelimit.Policies{
		"tiny": {Name: "tiny", MaxRequests: 2, Window: time.Minute, Message: "Slow down."},
	})
	app := newTestApp(RateLimit(limiter, "tiny"))

	for i := 0; i < 2; i++ {
		req := httptest.NewRequest(fiber.MethodPost, "/", nil)
		req.Header.Set("X-Forwarded-For", "203.0.113.7")
		resp, err := app.Test(req, -1)
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusOK, resp.StatusCode)
		assert.Equal(t, "2", resp.Header.Get("X-RateLimit-Limit"))
		assert.NotEmpty(t, resp.Header.Get("X-RateLimit-Reset"))
	}

	req := httptest.NewRequest(fiber.MethodPost, "/", nil)
	req.Header.Set("X-Forwarded-For", "203.0.113.7")
	resp, err := app.Test(req, -1)
	require.NoError(t, err)

	assert.Equal(t, fiber.StatusTooManyRequests, resp.StatusCode)
	assert.Equal(t, "0", resp.Header.Get("X-RateLimit-Remaining"))
	assert.Equal(t, "60", resp.Header.Get("Retry-After"))
	assert.JSONEq(t, `{"error":"Slow down.","code":"rate_limit_exceeded","retry_after":60}`, readBody(t, resp.Body))

	other := httptest.NewRequest(fiber.MethodPost, "/", nil)
	other.Header.Set("X-Forwarded-For", "203.0.113.8")
	resp, err = app.Test(other, -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}

type downStore struct{}

func (downStore) Increment(context.Context, string, time.Duration) (ratelimit.Window, error) {
	return ratelimit.Window{}, errors.New("connection refused")
}

func cancelledUserContext(c *fiber.Ctx) error {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	c.SetUserContext(ctx)
	return c.Next()
}

func TestRateLimitMemoryBackendDecidesSynchronously(t *testing.T) {
	limiter := ratelimit.NewLimiter(nil, ratelimit.Policies{
		"tiny": {Name: "tiny", MaxRequests: 1, Window: time.Minute},
	})
	app := newTestApp(cancelledUserContext, RateLimit(limiter, "tiny"))

	// A cancelled request context cannot degrade an in-process decision.
	resp, err := app.Test(httptest.NewRequest(fiber.MethodPost, "/", nil), -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, "0", resp.Header.Get("X-RateLimit-Remaining"))

	resp, err = app.Test(httptest.NewRequest(fiber.MethodPost, "/", nil), -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusTooManyRequests, resp.StatusCode)
}

func TestRateLimitSharedStoreFailsOpen(t *testing.T) {
	limiter := ratelimit.NewLimiter(downStore{}, nil)
	app := newTestApp(RateLimit(limiter, ratelimit.PolicyWrite))

	resp, err := app.Test(httptest.NewRequest(fiber.MethodPost, "/", nil), -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Empty(t, resp.Header.Get("X-RateLimit-Limit"))
}

func TestRateLimitPanicsOnUnknownPolicy(t *testing.T) {
	limiter := ratelimit.NewLimiter(nil, nil)
	assert.Panics(t, func() { RateLimit(limiter, "nope") })
}

func TestIsSameOrigin(t *testing.T) {
	const expected = "https://shop.example.com"

	cases := []struct {
		name                      string
		origin, referer, fetchSite string
		want                      bool
	}{
		{name: "matching origin", origin: "https://shop.example.com", want: true},
		{name: "origin case-insensitive", origin: "HTTPS://Shop.Example.com", want: true},
		{name: "foreign origin", origin: "https://evil.example.net", want: false},
		{name: "origin wins over referer", origin: "https://evil.example.net", referer: "https://shop.example.com/", want: false},
		{name: "matching referer", referer: "https://shop.example.com/cart?step=2", want: true},
		{name: "foreign referer", referer: "https://evil.example.net/shop.example.com", want: false},
		{name: "different port", origin: "https://shop.example.com:8443", want: false},
		{name: "no headers", want: true},
		{name: "no headers same-origin fetch", fetchSite: "same-origin", want: true},
		{name: "no headers cross-site fetch", fetchSite: "cross-site", want: false},
		{name: "garbage origin", origin: "null", want: false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, IsSameOrigin(tc.origin, tc.referer, tc.fetchSite, expected))
		})
	}
}

func TestIsSameOriginWithoutConfiguredOrigin(t *testing.T) {
	assert.True(t, IsSameOrigin("", "", "", ""))
	assert.True(t, IsSameOrigin("https://shop.example.com", "", "", ""))
	assert.True(t, IsSameOrigin("", "", "same-origin", ""))
	assert.False(t, IsSameOrigin("https://evil.example.net", "", "cross-site", ""))
	assert.False(t, IsSameOrigin("", "", "cross-site", ""))
}

func TestSameOriginWithoutConfiguredOriginAdmitsPlainRequests(t *testing.T) {
	app := newTestApp(SameOrigin(""))

	resp, err := app.Test(httptest.NewRequest(fiber.MethodPost, "/", nil), -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	req := httptest.NewRequest(fiber.MethodPost, "/", nil)
	req.Header.Set("Sec-Fetch-Site", "cross-site")
	resp, err = app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)
}

func TestSameOriginMiddleware(t *testing.T) {
	app := newTestApp(SameOrigin("https://shop.example.com/"))

	req := httptest.NewRequest(fiber.MethodPost, "/", nil)
	req.Header.Set("Origin", "https://evil.example.net")
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)
	assert.JSONEq(t, `{"error":"Forbidden"}`, readBody(t, resp.Body))

	req = httptest.NewRequest(fiber.MethodPost, "/", nil)
	req.Header.Set("Origin", "https://shop.example.com")
	resp, err = app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}

func TestBearerSecret(t *testing.T) {
	app := newTestApp(BearerSecret("s3cret"))

	cases := map[string]int{
		"":              fiber.StatusUnauthorized,
		"Bearer wrong":  fiber.StatusUnauthorized,
		"Basic s3cret":  fiber.StatusUnauthorized,
		"Bearer s3cret": fiber.StatusOK,
		"bearer s3cret": fiber.StatusOK,
	}

	for header, want := range cases {
		req := httptest.NewRequest(fiber.MethodPost, "/", nil)
		if header != "" {
			req.Header.Set("Authorization", header)
		}
		resp, err := app.Test(req, -1)
		require.NoError(t, err)
		assert.Equal(t, want, resp.StatusCode, header)
	}
}

func TestBearerSecretUnsetAlwaysRejects(t *testing.T) {
	app := newTestApp(BearerSecret(""))

	req := httptest.NewRequest(fiber.MethodPost, "/", nil)
	req.Header.Set("Authorization", "Bearer ")
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
	assert.JSONEq(t, `{"error":"Unauthorized"}`, readBody(t, resp.Body))
}

func TestBearerToken(t *testing.T) {
	token, err := BearerToken("Bearer abc.def")
	require.NoError(t, err)
	assert.Equal(t, "abc.def", token)

	_, err = BearerToken("abc.def")
	assert.ErrorIs(t, err, ErrMissingBearer)
}
