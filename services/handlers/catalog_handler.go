package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/lac-hong-legacy/ven_shop/shared"
)

type CatalogHandler struct {
	catalogSvc CatalogServiceInterface
}

func NewCatalogHandler(catalogSvc CatalogServiceInterface) *CatalogHandler {
	return &CatalogHandler{catalogSvc: catalogSvc}
}

// @Summary List products
// @Description Active products with their current stock
// @Tags catalog
// @Produce json
// @Success 200 {object} shared.Response{data=[]model.Product}
// @Failure 429 {object} dto.RateLimitErrorResponse
// @Router /api/products [get]
func (h *CatalogHandler) ListProducts(c *fiber.Ctx) error {
	products, err := h.catalogSvc.ListProducts(c.UserContext())
	if err != nil {
		return err
	}

	c.Set(fiber.HeaderCacheControl, "public, max-age=30")
	return shared.ResponseOK(c, products)
}

// @Summary Get product
// @Tags catalog
// @Produce json
// @Param slug path string true "Product slug"
// @Success 200 {object} shared.Response{data=model.Product}
// @Failure 404 {object} shared.Response
// @Router /api/products/{slug} [get]
func (h *CatalogHandler) GetProduct(c *fiber.Ctx) error {
	product, err := h.catalogSvc.GetProduct(c.UserContext(), c.Params("slug"))
	if err != nil {
		return err
	}

	return shared.ResponseOK(c, product)
}
