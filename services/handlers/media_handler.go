package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/lac-hong-legacy/ven_shop/shared"
)

type MediaHandler struct {
	mediaSvc MediaServiceInterface
}

func NewMediaHandler(mediaSvc MediaServiceInterface) *MediaHandler {
	return &MediaHandler{mediaSvc: mediaSvc}
}

// @Summary Upload product image (Admin)
// @Description Store the image and a 600px thumbnail, and attach both to the product
// @Tags admin
// @Accept multipart/form-data
// @Produce json
// @Security Bearer
// @Param Authorization header string true "Admin Bearer Token" default(Bearer <admin_token>)
// @Param id path string true "Product ID"
// @Param image formData file true "Image file (JPG, PNG, max 5MB)"
// @Success 200 {object} shared.Response{data=dto.ProductImageResponse}
// @Failure 400 {object} shared.Response
// @Router /api/admin/products/{id}/image [post]
func (h *MediaHandler) UploadProductImage(c *fiber.Ctx) error {
	file, err := c.FormFile("image")
	if err != nil {
		return shared.NewBadRequestError(err, "No image file provided")
	}

	src, err := file.Open()
	if err != nil {
		return shared.NewBadRequestError(err, "Failed to open uploaded file")
	}
	defer src.Close()

	response, err := h.mediaSvc.UploadProductImage(c.UserContext(), c.Params("id"), src, file.Size)
	if err != nil {
		return err
	}

	return shared.ResponseJSON(c, fiber.StatusOK, "Image uploaded successfully", response)
}
