package handlers

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lac-hong-legacy/ven_shop/dto"
	"github.com/lac-hong-legacy/ven_shop/model"
	"github.com/lac-hong-legacy/ven_shop/shared"
)

type fakeCart struct {
	synced    []dto.CartSyncRequest
	userIDs   []string
	converted []string
}

func (f *fakeCart) SyncSnapshot(_ context.Context, req dto.CartSyncRequest, userID string) dto.SnapshotResult {
	f.synced = append(f.synced, req)
	f.userIDs = append(f.userIDs, userID)
	return dto.SnapshotResult{Outcome: dto.SnapshotStored}
}

func (f *fakeCart) MarkConverted(_ context.Context, sessionID string) dto.SnapshotResult {
	f.converted = append(f.converted, sessionID)
	return dto.SnapshotResult{Outcome: dto.SnapshotConverted}
}

type fakeSweeper struct {
	summary dto.SweepSummary
	err     error
}

func (f fakeSweeper) RunReminderSweep(context.Context) (dto.SweepSummary, error) {
	return f.summary, f.err
}

type fakeCatalog struct {
	products []model.Product
	created  int
	err      error
}

func (f *fakeCatalog) ListProducts(context.Context) ([]model.Product, error) {
	return f.products, f.err
}

func (f *fakeCatalog) GetProduct(_ context.Context, slug string) (*model.Product, error) {
	for i := range f.products {
		if f.products[i].Slug == slug {
			return &f.products[i], nil
		}
	}
	return nil, shared.NewNotFoundError(nil, "Product not found")
}

func (f *fakeCatalog) CreateProduct(_ context.Context, req dto.CreateProductRequest) (*model.Product, error) {
	f.created++
	return &model.Product{ID: "p-1", Slug: req.Slug, Title: req.Title}, f.err
}

func (f *fakeCatalog) UpdateStock(_ context.Context, id string, req dto.UpdateStockRequest) (*model.Product, error) {
	return &model.Product{ID: id, Stock: *req.Quantity}, f.err
}

type fakeNewsletter struct{ calls int }

func (f *fakeNewsletter) Subscribe(_ context.Context, email, source string) (*dto.NewsletterResponse, error) {
	f.calls++
	return &dto.NewsletterResponse{Subscribed: true}, nil
}

type fakeContact struct{ err error }

func (f fakeContact) Submit(context.Context, dto.ContactRequest) error { return f.err }

type fakeMedia struct{ calls int }

func (f *fakeMedia) UploadProductImage(context.Context, string, io.Reader, int64) (*dto.ProductImageResponse, error) {
	f.calls++
	return &dto.ProductImageResponse{}, nil
}

// renderErrors mirrors the server error handler closely enough for handler tests.
func renderErrors(c *fiber.Ctx, err error) error {
	if appErr, ok := shared.GetAppError(err); ok {
		return shared.ResponseJSON(c, appErr.StatusCode, appErr.Message, appErr.Data)
	}
	return shared.ResponseInternalError(c, err)
}

func newApp() *fiber.App {
	return fiber.New(fiber.Config{ErrorHandler: renderErrors})
}

func do(t *testing.T, app *fiber.App, method, target, body string) (int, string) {
	t.Helper()

	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, string(raw)
}

func TestCartHandler_SyncAlwaysAcknowledges(t *testing.T) {
	cart := &fakeCart{}
	h := NewCartHandler(cart)

	app := newApp()
	app.Post("/api/cart", func(c *fiber.Ctx) error {
		c.Locals(shared.UserID, "user-7")
		return c.Next()
	}, h.Sync)

	status, body := do(t, app, http.MethodPost, "/api/cart", `{not json`)
	assert.Equal(t, http.StatusOK, status)
	assert.JSONEq(t, `{"ok":true}`, body)
	assert.Empty(t, cart.synced)

	status, body = do(t, app, http.MethodPost, "/api/cart",
		`{"sessionId":"s-1","items":[{"productId":"mug","title":"Mug","price":20,"quantity":2}],"totalAmount":40}`)
	assert.Equal(t, http.StatusOK, status)
	assert.JSONEq(t, `{"ok":true}`, body)
	require.Len(t, cart.synced, 1)
	assert.Equal(t, "s-1", cart.synced[0].SessionID)
	assert.Equal(t, "user-7", cart.userIDs[0])
}

func TestCartHandler_ConvertPassesSessionID(t *testing.T) {
	cart := &fakeCart{}
	app := newApp()
	app.Delete("/api/cart", NewCartHandler(cart).Convert)

	status, body := do(t, app, http.MethodDelete, "/api/cart?sessionId=s-9", "")
	assert.Equal(t, http.StatusOK, status)
	assert.JSONEq(t, `{"ok":true}`, body)
	assert.Equal(t, []string{"s-9"}, cart.converted)
}

func TestCronHandler(t *testing.T) {
	t.Run("summary", func(t *testing.T) {
		app := newApp()
		app.Get("/cron", NewCronHandler(fakeSweeper{summary: dto.SweepSummary{Sent: 2, Failed: 1, Skipped: 3}}).AbandonedCart)

		status, body := do(t, app, http.MethodGet, "/cron", "")
		assert.Equal(t, http.StatusOK, status)
		assert.JSONEq(t, `{"ok":true,"sent":2,"failed":1,"skipped":3}`, body)
	})

	t.Run("failure", func(t *testing.T) {
		app := newApp()
		app.Get("/cron", NewCronHandler(fakeSweeper{err: errors.New("db down")}).AbandonedCart)

		status, body := do(t, app, http.MethodGet, "/cron", "")
		assert.Equal(t, http.StatusInternalServerError, status)
		assert.JSONEq(t, `{"error":"sweep failed"}`, body)
	})
}

func TestCatalogHandler(t *testing.T) {
	catalog := &fakeCatalog{products: []model.Product{{ID: "p-1", Slug: "mug", Title: "Mug"}}}
	h := NewCatalogHandler(catalog)

	app := newApp()
	app.Get("/products", h.ListProducts)
	app.Get("/products/:slug", h.GetProduct)

	req := httptest.NewRequest(http.MethodGet, "/products", nil)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "public, max-age=30", resp.Header.Get(fiber.HeaderCacheControl))

	status, body := do(t, app, http.MethodGet, "/products/mug", "")
	assert.Equal(t, http.StatusOK, status)
	assert.Contains(t, body, `"slug":"mug"`)

	status, body = do(t, app, http.MethodGet, "/products/teapot", "")
	assert.Equal(t, http.StatusNotFound, status)
	assert.Contains(t, body, "Product not found")
}

func TestAdminHandler_Validation(t *testing.T) {
	catalog := &fakeCatalog{}
	h := NewAdminHandler(nil, catalog)

	app := newApp()
	app.Post("/products", h.CreateProduct)
	app.Put("/products/:id/stock", h.UpdateStock)

	status, body := do(t, app, http.MethodPost, "/products", `{"slug":"Not A Slug!","title":"Mug","price":10}`)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Contains(t, body, "Validation failed")
	assert.Zero(t, catalog.created)

	status, _ = do(t, app, http.MethodPost, "/products", `{"slug":"stoneware-mug","title":"Mug","price":10,"stock":3}`)
	assert.Equal(t, http.StatusCreated, status)
	assert.Equal(t, 1, catalog.created)

	status, body = do(t, app, http.MethodPut, "/products/p-1/stock", `{}`)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Contains(t, body, dto.ErrStockChangeAmbiguous.Error())

	status, body = do(t, app, http.MethodPut, "/products/p-1/stock", `{"quantity":4}`)
	assert.Equal(t, http.StatusOK, status)
	assert.Contains(t, body, `"id":"p-1"`)
}

func TestNewsletterHandler(t *testing.T) {
	newsletter := &fakeNewsletter{}
	app := newApp()
	app.Post("/newsletter", NewNewsletterHandler(newsletter).Subscribe)

	status, _ := do(t, app, http.MethodPost, "/newsletter", `{"email":""}`)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Zero(t, newsletter.calls)

	status, body := do(t, app, http.MethodPost, "/newsletter", `{"email":"reader@example.com","source":"footer"}`)
	assert.Equal(t, http.StatusOK, status)
	assert.Contains(t, body, `"subscribed":true`)
	assert.Equal(t, 1, newsletter.calls)
}

func TestContactHandler_PropagatesServiceStatus(t *testing.T) {
	app := newApp()
	app.Post("/contact", NewContactHandler(fakeContact{
		err: shared.NewBadGatewayError(errors.New("smtp"), "Could not deliver message"),
	}).Submit)

	status, body := do(t, app, http.MethodPost, "/contact", `{"name":"Ada","email":"ada@example.com","message":"Hi"}`)
	assert.Equal(t, http.StatusBadGateway, status)
	assert.Contains(t, body, "Could not deliver message")
}

func TestMediaHandler_MissingFile(t *testing.T) {
	media := &fakeMedia{}
	app := newApp()
	app.Post("/products/:id/image", NewMediaHandler(media).UploadProductImage)

	status, body := do(t, app, http.MethodPost, "/products/p-1/image", `{}`)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Contains(t, body, "No image file provided")
	assert.Zero(t, media.calls)
}
