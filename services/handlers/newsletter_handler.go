package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/lac-hong-legacy/ven_shop/dto"
	"github.com/lac-hong-legacy/ven_shop/shared"
)

type NewsletterHandler struct {
	newsletterSvc NewsletterServiceInterface
}

func NewNewsletterHandler(newsletterSvc NewsletterServiceInterface) *NewsletterHandler {
	return &NewsletterHandler{newsletterSvc: newsletterSvc}
}

// @Summary Subscribe to the newsletter
// @Description Subscribing twice is not an error; only the first subscription gets a welcome mail.
// @Tags newsletter
// @Accept json
// @Produce json
// @Param newsletterRequest body dto.NewsletterRequest true "Subscriber"
// @Success 200 {object} shared.Response{data=dto.NewsletterResponse}
// @Failure 400 {object} shared.Response
// @Failure 403 {object} dto.ErrorResponse
// @Failure 429 {object} dto.RateLimitErrorResponse
// @Router /api/newsletter [post]
func (h *NewsletterHandler) Subscribe(c *fiber.Ctx) error {
	var req dto.NewsletterRequest
	if err := c.BodyParser(&req); err != nil {
		return shared.NewBadRequestError(err, "Invalid request body")
	}

	if err := req.Validate(); err != nil {
		validationResp := dto.CreateValidationErrorResponse(err)
		return c.Status(fiber.StatusBadRequest).JSON(validationResp)
	}

	resp, err := h.newsletterSvc.Subscribe(c.UserContext(), req.Email, req.Source)
	if err != nil {
		return err
	}

	return shared.ResponseOK(c, resp)
}
