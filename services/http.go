package services

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	appContext "github.com/alphabatem/common/context"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/swagger"
	log "github.com/sirupsen/logrus"

	"github.com/lac-hong-legacy/ven_shop/docs"
	"github.com/lac-hong-legacy/ven_shop/middleware"
	"github.com/lac-hong-legacy/ven_shop/services/handlers"
	"github.com/lac-hong-legacy/ven_shop/services/ratelimit"
	"github.com/lac-hong-legacy/ven_shop/shared"
)

type HttpService struct {
	appContext.DefaultService

	port       int
	appOrigin  string
	cronSecret string
	app        *fiber.App
}

const HTTP_SVC = "http_svc"

func (svc HttpService) Id() string {
	return HTTP_SVC
}

func (svc *HttpService) Configure(ctx *appContext.Context) error {
	if port := os.Getenv("HTTP_PORT"); port != "" {
		var err error
		if svc.port, err = strconv.Atoi(port); err != nil {
			return err
		}
	} else {
		svc.port = 8000
	}

	svc.appOrigin = os.Getenv("APP_ORIGIN")
	svc.cronSecret = os.Getenv("CRON_SECRET")

	return svc.DefaultService.Configure(ctx)
}

func (svc *HttpService) Start() error {
	if svc.appOrigin == "" {
		log.Warn("APP_ORIGIN not set, same-origin checks only block explicit cross-site requests")
	}
	if svc.cronSecret == "" {
		log.Warn("CRON_SECRET not set, the abandoned cart cron endpoint rejects every call")
	}

	svc.app = NewRouter(Router{
		AppOrigin:  svc.appOrigin,
		CronSecret: svc.cronSecret,
		RateLimits: svc.Service(RATE_LIMIT_SVC).(*RateLimitService),
		Auth:       svc.Service(AUTH_SVC).(*AuthService),
		Cart:       svc.Service(CART_SVC).(*CartService),
		Catalog:    svc.Service(CATALOG_SVC).(*CatalogService),
		Newsletter: svc.Service(NEWSLETTER_SVC).(*NewsletterService),
		Contact:    svc.Service(CONTACT_SVC).(*ContactService),
		Media:      svc.Service(MEDIA_SVC).(*MediaService),
	})

	log.WithField("port", svc.port).Info("HTTP server listening")
	return svc.app.Listen(fmt.Sprintf(":%v", svc.port))
}

func (svc *HttpService) Shutdown() {
	if svc.app != nil {
		_ = svc.app.ShutdownWithTimeout(10 * time.Second)
	}
}

// Router holds everything the HTTP surface is wired to.
type Router struct {
	AppOrigin  string
	CronSecret string
	RateLimits *RateLimitService
	Auth       *AuthService
	Cart       *CartService
	Catalog    *CatalogService
	Newsletter *NewsletterService
	Contact    *ContactService
	Media      *MediaService
}

// NewRouter builds the fiber app with every route behind its admission tier.
func NewRouter(r Router) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:               SERVICE_NAME,
		JSONEncoder:           shared.JSONMarshal,
		JSONDecoder:           shared.JSONUnmarshal,
		ErrorHandler:          HandleError,
		BodyLimit:             MaxProductImageSize + 1024*1024,
		DisableStartupMessage: true,
	})

	docs.SwaggerInfo.BasePath = ""
	app.Use(recover.New())

	allowOrigins := r.AppOrigin
	if allowOrigins == "" {
		allowOrigins = "*"
	}
	app.Use(cors.New(cors.Config{
		AllowOrigins: allowOrigins,
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
		AllowMethods: "GET,POST,PUT,DELETE,OPTIONS",
	}))
	app.Use(MonitoringMiddleware())

	limit := r.RateLimits.RateLimit
	sameOrigin := middleware.SameOrigin(r.AppOrigin)

	cartHandler := handlers.NewCartHandler(r.Cart)
	cronHandler := handlers.NewCronHandler(r.Cart)
	catalogHandler := handlers.NewCatalogHandler(r.Catalog)
	adminHandler := handlers.NewAdminHandler(r.Auth, r.Catalog)
	mediaHandler := handlers.NewMediaHandler(r.Media)
	newsletterHandler := handlers.NewNewsletterHandler(r.Newsletter)
	contactHandler := handlers.NewContactHandler(r.Contact)

	//Validation endpoints
	app.Get("/ping", ping)
	app.Get("/swagger/*", swagger.HandlerDefault)

	api := app.Group("/api")

	api.Post("/cart", sameOrigin, limit(ratelimit.PolicyWrite), r.Auth.OptionalAuth(), cartHandler.Sync)
	api.Delete("/cart", sameOrigin, limit(ratelimit.PolicyWrite), cartHandler.Convert)

	api.Get("/products", limit(ratelimit.PolicyRead), catalogHandler.ListProducts)
	api.Get("/products/:slug", limit(ratelimit.PolicyRead), catalogHandler.GetProduct)

	api.Post("/newsletter", sameOrigin, limit(ratelimit.PolicyContact), newsletterHandler.Subscribe)
	api.Post("/contact", sameOrigin, limit(ratelimit.PolicyContact), contactHandler.Submit)

	api.Get("/cron/abandoned-cart", limit(ratelimit.PolicyAuth), middleware.BearerSecret(r.CronSecret), cronHandler.AbandonedCart)

	admin := api.Group("/admin", sameOrigin, ActiveRequests("admin"))
	admin.Post("/login", limit(ratelimit.PolicyAuth), adminHandler.Login)
	admin.Post("/products", limit(ratelimit.PolicyWrite), r.Auth.RequireAdmin(), adminHandler.CreateProduct)
	admin.Put("/products/:id/stock", limit(ratelimit.PolicyWrite), r.Auth.RequireAdmin(), adminHandler.UpdateStock)
	admin.Post("/products/:id/image", limit(ratelimit.PolicyUpload), r.Auth.RequireAdmin(), mediaHandler.UploadProductImage)

	app.Use(func(c *fiber.Ctx) error {
		return shared.NewNotFoundError(nil, "Not Found")
	})

	return app
}

// @Summary Ping
// @Description This endpoint checks the health of the service
// @Tags health
// @Accept  json
// @Produce json
// @Success 200 {object} shared.Response{data=string}
// @Router /ping [get]
func ping(c *fiber.Ctx) error {
	c.Set(fiber.HeaderCacheControl, "max-age=10")
	return shared.ResponseJSON(c, fiber.StatusOK, "Success", "pong")
}

// HandleError renders AppErrors with their status and anything else as a 500.
func HandleError(c *fiber.Ctx, err error) error {
	if appErr, ok := shared.GetAppError(err); ok {
		if appErr.StatusCode >= fiber.StatusInternalServerError {
			log.WithError(err).WithField("path", c.Path()).Error("Request failed")
		}
		return shared.ResponseJSON(c, appErr.StatusCode, appErr.Message, appErr.Data)
	}

	var fiberErr *fiber.Error
	if errors.As(err, &fiberErr) {
		return shared.ResponseJSON(c, fiberErr.Code, fiberErr.Message, nil)
	}

	log.WithError(err).WithField("path", c.Path()).Error("Unhandled error")
	return shared.ResponseInternalError(c, err)
}
