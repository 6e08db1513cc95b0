package handlers

import (
	"errors"
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/lac-hong-legacy/ven_shop/dto"
	"github.com/lac-hong-legacy/ven_shop/shared"
)

type AdminHandler struct {
	authSvc    AdminAuthInterface
	catalogSvc CatalogServiceInterface
}

func NewAdminHandler(authSvc AdminAuthInterface, catalogSvc CatalogServiceInterface) *AdminHandler {
	return &AdminHandler{
		authSvc:    authSvc,
		catalogSvc: catalogSvc,
	}
}

// @Summary Admin login
// @Description Exchange the admin credentials for a bearer token
// @Tags admin
// @Accept json
// @Produce json
// @Param adminLoginRequest body dto.AdminLoginRequest true "Admin credentials"
// @Success 200 {object} shared.Response{data=dto.AdminLoginResponse}
// @Failure 401 {object} shared.Response
// @Failure 429 {object} dto.RateLimitErrorResponse
// @Router /api/admin/login [post]
func (h *AdminHandler) Login(c *fiber.Ctx) error {
	var req dto.AdminLoginRequest
	if err := c.BodyParser(&req); err != nil {
		return shared.NewBadRequestError(err, "Invalid request body")
	}

	if err := req.Validate(); err != nil {
		validationResp := dto.CreateValidationErrorResponse(err)
		return c.Status(fiber.StatusBadRequest).JSON(validationResp)
	}

	resp, err := h.authSvc.AdminLogin(c.UserContext(), req)
	if err != nil {
		return err
	}

	return shared.ResponseJSON(c, http.StatusOK, "Login successful", resp)
}

// @Summary Create product (Admin)
// @Tags admin
// @Accept json
// @Produce json
// @Security Bearer
// @Param Authorization header string true "Admin Bearer Token" default(Bearer <admin_token>)
// @Param createProductRequest body dto.CreateProductRequest true "Product"
// @Success 201 {object} shared.Response{data=model.Product}
// @Failure 409 {object} shared.Response
// @Router /api/admin/products [post]
func (h *AdminHandler) CreateProduct(c *fiber.Ctx) error {
	var req dto.CreateProductRequest
	if err := c.BodyParser(&req); err != nil {
		return shared.NewBadRequestError(err, "Invalid request body")
	}

	if err := req.Validate(); err != nil {
		validationResp := dto.CreateValidationErrorResponse(err)
		return c.Status(fiber.StatusBadRequest).JSON(validationResp)
	}

	product, err := h.catalogSvc.CreateProduct(c.UserContext(), req)
	if err != nil {
		return err
	}

	return shared.ResponseJSON(c, http.StatusCreated, "Product created successfully", product)
}

// @Summary Update product stock (Admin)
// @Description Set the stock with quantity, or shift it with delta. Stock never goes below zero.
// @Tags admin
// @Accept json
// @Produce json
// @Security Bearer
// @Param Authorization header string true "Admin Bearer Token" default(Bearer <admin_token>)
// @Param id path string true "Product ID"
// @Param updateStockRequest body dto.UpdateStockRequest true "Stock change"
// @Success 200 {object} shared.Response{data=model.Product}
// @Failure 400 {object} shared.Response
// @Failure 404 {object} shared.Response
// @Router /api/admin/products/{id}/stock [put]
func (h *AdminHandler) UpdateStock(c *fiber.Ctx) error {
	var req dto.UpdateStockRequest
	if err := c.BodyParser(&req); err != nil {
		return shared.NewBadRequestError(err, "Invalid request body")
	}

	if err := req.Validate(); err != nil {
		if errors.Is(err, dto.ErrStockChangeAmbiguous) {
			return shared.NewBadRequestError(err, err.Error())
		}
		validationResp := dto.CreateValidationErrorResponse(err)
		return c.Status(fiber.StatusBadRequest).JSON(validationResp)
	}

	product, err := h.catalogSvc.UpdateStock(c.UserContext(), c.Params("id"), req)
	if err != nil {
		return err
	}

	return shared.ResponseJSON(c, http.StatusOK, "Stock updated successfully", product)
}
