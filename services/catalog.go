package services

import (
	"context"
	"errors"
	"strings"
	"time"

	appContext "github.com/alphabatem/common/context"
	log "github.com/sirupsen/logrus"

	"github.com/lac-hong-legacy/ven_shop/dto"
	"github.com/lac-hong-legacy/ven_shop/model"
	"github.com/lac-hong-legacy/ven_shop/services/repositories"
	"github.com/lac-hong-legacy/ven_shop/shared"
)

const (
	CATALOG_SVC = "catalog_svc"

	catalogCacheKey = "catalog:products"
)

type CatalogService struct {
	appContext.DefaultService

	repo     *repositories.ProductRepository
	cache    *RedisService
	cacheTTL time.Duration
}

// NewCatalogService builds the service outside the container. cache may be nil.
func NewCatalogService(repo *repositories.ProductRepository, cache *RedisService, ttl time.Duration) *CatalogService {
	return &CatalogService{repo: repo, cache: cache, cacheTTL: ttl}
}

func (svc CatalogService) Id() string {
	return CATALOG_SVC
}

func (svc *CatalogService) Configure(ctx *appContext.Context) error {
	svc.cacheTTL = getEnvDuration("CATALOG_CACHE_TTL", time.Minute)
	return svc.DefaultService.Configure(ctx)
}

func (svc *CatalogService) Start() error {
	db := svc.Service(DATABASE_SVC).(Database)
	svc.repo = repositories.NewProductRepository(db.Db())
	svc.cache = svc.Service(REDIS_SVC).(*RedisService)
	return nil
}

func (svc *CatalogService) Repository() *repositories.ProductRepository {
	return svc.repo
}

func (svc *CatalogService) cacheEnabled() bool {
	return svc.cache.Enabled() && svc.cacheTTL > 0
}

// ListProducts returns the active catalog. Cache failures fall through to the database.
func (svc *CatalogService) ListProducts(ctx context.Context) ([]model.Product, error) {
	if svc.cacheEnabled() {
		var cached []model.Product
		found, err := svc.cache.GetJSON(ctx, catalogCacheKey, &cached)
		switch {
		case err != nil:
			catalogCacheTotal.WithLabelValues("error").Inc()
			log.WithError(err).Warn("Catalog cache read failed")
		case found:
			catalogCacheTotal.WithLabelValues("hit").Inc()
			return cached, nil
		default:
			catalogCacheTotal.WithLabelValues("miss").Inc()
		}
	}

	products, err := svc.repo.ListActive(ctx)
	if err != nil {
		return nil, HandleDBError(err)
	}
	if products == nil {
		products = []model.Product{}
	}

	if svc.cacheEnabled() {
		if err := svc.cache.SetJSON(ctx, catalogCacheKey, products, svc.cacheTTL); err != nil {
			log.WithError(err).Warn("Catalog cache write failed")
		}
	}
	return products, nil
}

func (svc *CatalogService) GetProduct(ctx context.Context, slug string) (*model.Product, error) {
	slug = strings.ToLower(shared.SanitizeString(slug))
	if slug == "" {
		return nil, shared.NewNotFoundError(nil, "Product not found")
	}

	product, err := svc.repo.GetBySlug(ctx, slug)
	if err != nil {
		appErr := HandleDBError(err)
		if e, ok := shared.GetAppError(appErr); ok && e.StatusCode == 404 {
			e.Message = "Product not found"
		}
		return nil, appErr
	}
	return product, nil
}

func (svc *CatalogService) CreateProduct(ctx context.Context, req dto.CreateProductRequest) (*model.Product, error) {
	product := &model.Product{
		Slug:        strings.ToLower(shared.SanitizeString(req.Slug)),
		Title:       shared.Truncate(shared.SanitizeString(req.Title), shared.MaxItemTitleLength),
		Description: shared.Truncate(shared.SanitizeMultiline(req.Description), 4000),
		Price:       req.Price,
		Currency:    strings.ToUpper(shared.SanitizeString(req.Currency)),
		Stock:       req.Stock,
		IsActive:    true,
	}
	if product.Currency == "" {
		product.Currency = "EUR"
	}

	created, err := svc.repo.Create(ctx, product)
	if err != nil {
		return nil, HandleDBError(err)
	}

	svc.InvalidateCache(ctx)
	log.WithFields(log.Fields{"product_id": created.ID, "slug": created.Slug}).Info("Product created")
	return created, nil
}

// UpdateStock applies an absolute or relative stock change. Stock never goes negative.
func (svc *CatalogService) UpdateStock(ctx context.Context, productID string, req dto.UpdateStockRequest) (*model.Product, error) {
	var (
		product *model.Product
		err     error
	)
	if req.Quantity != nil {
		product, err = svc.repo.SetStock(ctx, productID, *req.Quantity)
	} else if req.Delta != nil {
		product, err = svc.repo.AdjustStock(ctx, productID, *req.Delta)
	} else {
		return nil, shared.NewBadRequestError(dto.ErrStockChangeAmbiguous, dto.ErrStockChangeAmbiguous.Error())
	}

	if errors.Is(err, repositories.ErrNegativeStock) {
		return nil, shared.NewBadRequestError(err, "Stock cannot go below zero")
	}
	if err != nil {
		return nil, HandleDBError(err)
	}

	svc.InvalidateCache(ctx)
	return product, nil
}

func (svc *CatalogService) SetProductImages(ctx context.Context, productID, imageURL, thumbnailURL string) error {
	if err := svc.repo.UpdateImages(ctx, productID, imageURL, thumbnailURL); err != nil {
		return HandleDBError(err)
	}
	svc.InvalidateCache(ctx)
	return nil
}

func (svc *CatalogService) InvalidateCache(ctx context.Context) {
	if !svc.cache.Enabled() {
		return
	}
	if err := svc.cache.Delete(ctx, catalogCacheKey); err != nil {
		log.WithError(err).Warn("Catalog cache invalidation failed")
	}
}
