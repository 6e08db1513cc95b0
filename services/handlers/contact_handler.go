package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/lac-hong-legacy/ven_shop/dto"
	"github.com/lac-hong-legacy/ven_shop/shared"
)

type ContactHandler struct {
	contactSvc ContactServiceInterface
}

func NewContactHandler(contactSvc ContactServiceInterface) *ContactHandler {
	return &ContactHandler{contactSvc: contactSvc}
}

// @Summary Send a contact message
// @Tags contact
// @Accept json
// @Produce json
// @Param contactRequest body dto.ContactRequest true "Message"
// @Success 200 {object} shared.Response
// @Failure 400 {object} shared.Response
// @Failure 502 {object} shared.Response
// @Failure 429 {object} dto.RateLimitErrorResponse
// @Router /api/contact [post]
func (h *ContactHandler) Submit(c *fiber.Ctx) error {
	var req dto.ContactRequest
	if err := c.BodyParser(&req); err != nil {
		return shared.NewBadRequestError(err, "Invalid request body")
	}

	if err := req.Validate(); err != nil {
		validationResp := dto.CreateValidationErrorResponse(err)
		return c.Status(fiber.StatusBadRequest).JSON(validationResp)
	}

	if err := h.contactSvc.Submit(c.UserContext(), req); err != nil {
		return err
	}

	return shared.ResponseJSON(c, fiber.StatusOK, "Message sent", nil)
}
