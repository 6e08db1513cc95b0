package services

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/lac-hong-legacy/ven_shop/services/mocks"
	"github.com/lac-hong-legacy/ven_shop/services/ratelimit"
	"github.com/lac-hong-legacy/ven_shop/services/repositories"
	"github.com/lac-hong-legacy/ven_shop/shared"
)

const (
	testOrigin     = "https://shop.example.com"
	testCronSecret = "cron-secret"
)

type routerFixture struct {
	app    *fiber.App
	carts  *repositories.CartRepository
	mailer *mocks.MockReminderMailer
	cart   *CartService
	now    time.Time
}

func newRouterFixture(t *testing.T, policies ratelimit.Policies) *routerFixture {
	t.Helper()

	db := newTestDB(t)
	ctrl := gomock.NewController(t)
	f := &routerFixture{
		carts:  repositories.NewCartRepository(db),
		mailer: mocks.NewMockReminderMailer(ctrl),
		now:    cartBase,
	}
	f.cart = NewCartService(f.carts, f.mailer, CartConfig{StaleAfter: time.Hour, BatchSize: 50},
		WithCartClock(func() time.Time { return f.now }))

	catalog := NewCatalogService(repositories.NewProductRepository(db), nil, 0)
	f.app = NewRouter(Router{
		AppOrigin:  testOrigin,
		CronSecret: testCronSecret,
		RateLimits: NewRateLimitService(ratelimit.NewLimiter(nil, policies)),
		Auth:       newTestAuth(t),
		Cart:       f.cart,
		Catalog:    catalog,
		Newsletter: NewNewsletterService(repositories.NewSubscriberRepository(db), mocks.NewMockWelcomeMailer(ctrl)),
		Contact:    NewContactService(mocks.NewMockContactMailer(ctrl), "shop@example.com"),
		Media:      NewMediaService(newMemoryObjectStore(), catalog),
	})
	return f
}

func (f *routerFixture) do(t *testing.T, method, path, body string, headers map[string]string) (*http.Response, string) {
	t.Helper()

	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Forwarded-For", "203.0.113.7")
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	resp, err := f.app.Test(req, -1)
	require.NoError(t, err)
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, string(raw)
}

var sameSite = map[string]string{"Origin": testOrigin}

const plateJSON = `{"sessionId":"s1","email":"x@y.com","items":[{"title":"Plate","quantity":2,"price":100}],"totalAmount":200}`

func TestCartEndpointsAlwaysAcknowledge(t *testing.T) {
	f := newRouterFixture(t, nil)

	resp, body := f.do(t, "POST", "/api/cart", plateJSON, sameSite)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.JSONEq(t, `{"ok":true}`, body)
	assert.Equal(t, "30", resp.Header.Get("X-RateLimit-Limit"))
	assert.Equal(t, "29", resp.Header.Get("X-RateLimit-Remaining"))

	cart, err := f.carts.FindBySessionID(context.Background(), "s1")
	require.NoError(t, err)
	assert.Equal(t, 200.0, cart.TotalAmount)

	for _, garbage := range []string{`{not json`, `{"items":[]}`, `{"sessionId":"s2","items":[{"quantity":0}]}`} {
		resp, body = f.do(t, "POST", "/api/cart", garbage, sameSite)
		assert.Equal(t, http.StatusOK, resp.StatusCode, garbage)
		assert.JSONEq(t, `{"ok":true}`, body)
	}

	resp, body = f.do(t, "DELETE", "/api/cart?sessionId=s1", "", sameSite)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.JSONEq(t, `{"ok":true}`, body)

	cart, err = f.carts.FindBySessionID(context.Background(), "s1")
	require.NoError(t, err)
	assert.NotNil(t, cart.ConvertedAt)
}

func TestCartRejectsCrossOrigin(t *testing.T) {
	f := newRouterFixture(t, nil)

	resp, body := f.do(t, "POST", "/api/cart", plateJSON, map[string]string{"Origin": "https://evil.example"})
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	assert.JSONEq(t, `{"error":"Forbidden"}`, body)

	_, err := f.carts.FindBySessionID(context.Background(), "s1")
	assert.Error(t, err)
}

func TestWriteTierRejectsOverBudget(t *testing.T) {
	policies := ratelimit.DefaultPolicies()
	write := policies[ratelimit.PolicyWrite]
	write.MaxRequests = 2
	policies[ratelimit.PolicyWrite] = write

	f := newRouterFixture(t, policies)

	for i := 0; i < 2; i++ {
		resp, _ := f.do(t, "POST", "/api/cart", plateJSON, sameSite)
		require.Equal(t, http.StatusOK, resp.StatusCode)
	}

	resp, body := f.do(t, "POST", "/api/cart", plateJSON, sameSite)
	assert.Equal(t, http.StatusTooManyRequests, resp.StatusCode)
	assert.NotEmpty(t, resp.Header.Get("Retry-After"))
	assert.Contains(t, body, `"code":"rate_limit_exceeded"`)

	// Another client has its own budget.
	resp, _ = f.do(t, "POST", "/api/cart", plateJSON, map[string]string{"Origin": testOrigin, "X-Forwarded-For": "198.51.100.2"})
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestCronEndpoint(t *testing.T) {
	f := newRouterFixture(t, nil)

	resp, body := f.do(t, "GET", "/api/cron/abandoned-cart", "", nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.JSONEq(t, `{"error":"Unauthorized"}`, body)

	resp, _ = f.do(t, "GET", "/api/cron/abandoned-cart", "", map[string]string{"Authorization": "Bearer wrong"})
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	_, _ = f.do(t, "POST", "/api/cart", plateJSON, sameSite)
	f.now = cartBase.Add(2 * time.Hour)
	f.mailer.EXPECT().SendCartReminder(gomock.Any(), "x@y.com", gomock.Any()).Return(nil)

	auth := map[string]string{"Authorization": "Bearer " + testCronSecret}
	resp, body = f.do(t, "GET", "/api/cron/abandoned-cart", "", auth)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.JSONEq(t, `{"ok":true,"sent":1,"failed":0,"skipped":0}`, body)

	resp, body = f.do(t, "GET", "/api/cron/abandoned-cart", "", auth)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.JSONEq(t, `{"ok":true,"sent":0,"failed":0,"skipped":0}`, body)
}

func TestCronEndpointReportsSweepFailure(t *testing.T) {
	f := newRouterFixture(t, nil)

	sqlDB, err := f.carts.DB().DB()
	require.NoError(t, err)
	require.NoError(t, sqlDB.Close())

	resp, body := f.do(t, "GET", "/api/cron/abandoned-cart", "", map[string]string{"Authorization": "Bearer " + testCronSecret})
	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
	assert.JSONEq(t, `{"error":"sweep failed"}`, body)
}

func TestProductNotFoundUsesEnvelope(t *testing.T) {
	f := newRouterFixture(t, nil)

	resp, body := f.do(t, "GET", "/api/products/missing", "", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.JSONEq(t, `{"code":404,"message":"Product not found"}`, body)

	resp, _ = f.do(t, "GET", "/nope", "", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestAdminRoutesRequireAdminToken(t *testing.T) {
	f := newRouterFixture(t, nil)

	resp, _ := f.do(t, "POST", "/api/admin/products", `{"slug":"plate","title":"Plate","price":10}`, sameSite)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	resp, body := f.do(t, "POST", "/api/admin/login", `{"email":"admin@example.com","password":"s3cret-pass"}`, sameSite)
	require.Equal(t, http.StatusOK, resp.StatusCode, body)

	var login struct {
		Data struct {
			AccessToken string `json:"access_token"`
		} `json:"data"`
	}
	require.NoError(t, shared.JSONUnmarshal([]byte(body), &login))

	headers := map[string]string{"Origin": testOrigin, "Authorization": "Bearer " + login.Data.AccessToken}
	resp, body = f.do(t, "POST", "/api/admin/products", `{"slug":"plate","title":"Plate","price":10,"stock":2}`, headers)
	assert.Equal(t, http.StatusCreated, resp.StatusCode, body)

	resp, _ = f.do(t, "POST", "/api/admin/products", `{"slug":"plate","title":"Plate","price":10}`, headers)
	assert.Equal(t, http.StatusConflict, resp.StatusCode)

	resp, _ = f.do(t, "POST", "/api/admin/products", `{"slug":"Not A Slug","title":"Plate"}`, headers)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestHandleErrorFallsBackTo500(t *testing.T) {
	app := fiber.New(fiber.Config{ErrorHandler: HandleError})
	app.Get("/", func(c *fiber.Ctx) error { return errors.New("boom") })

	resp, err := app.Test(httptest.NewRequest("GET", "/", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
}
