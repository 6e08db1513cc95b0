package handlers

import (
	"github.com/gofiber/fiber/v2"
	log "github.com/sirupsen/logrus"

	"github.com/lac-hong-legacy/ven_shop/dto"
	"github.com/lac-hong-legacy/ven_shop/shared"
)

var okResponse = dto.OKResponse{OK: true}

// CartHandler answers {"ok": true} no matter what happened to the snapshot:
// cart tracking must never break the storefront.
type CartHandler struct {
	cartSvc CartServiceInterface
}

func NewCartHandler(cartSvc CartServiceInterface) *CartHandler {
	return &CartHandler{cartSvc: cartSvc}
}

// @Summary Sync cart snapshot
// @Description Upsert the cart snapshot for a browser session. An empty item list marks the cart as converted.
// @Tags cart
// @Accept json
// @Produce json
// @Param Authorization header string false "Optional customer Bearer Token"
// @Param cartSyncRequest body dto.CartSyncRequest true "Cart snapshot"
// @Success 200 {object} dto.OKResponse
// @Failure 403 {object} dto.ErrorResponse
// @Failure 429 {object} dto.RateLimitErrorResponse
// @Router /api/cart [post]
func (h *CartHandler) Sync(c *fiber.Ctx) error {
	var req dto.CartSyncRequest
	if err := c.BodyParser(&req); err != nil {
		log.WithError(err).Debug("Unreadable cart snapshot ignored")
		return shared.ResponseRaw(c, fiber.StatusOK, okResponse)
	}

	userID, _ := c.Locals(shared.UserID).(string)
	h.cartSvc.SyncSnapshot(c.UserContext(), req, userID)

	return shared.ResponseRaw(c, fiber.StatusOK, okResponse)
}

// @Summary Mark cart converted
// @Description Record that the session placed an order. Idempotent.
// @Tags cart
// @Produce json
// @Param sessionId query string true "Browser session id"
// @Success 200 {object} dto.OKResponse
// @Failure 403 {object} dto.ErrorResponse
// @Failure 429 {object} dto.RateLimitErrorResponse
// @Router /api/cart [delete]
func (h *CartHandler) Convert(c *fiber.Ctx) error {
	h.cartSvc.MarkConverted(c.UserContext(), c.Query("sessionId"))
	return shared.ResponseRaw(c, fiber.StatusOK, okResponse)
}
