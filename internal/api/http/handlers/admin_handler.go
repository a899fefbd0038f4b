package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/catalog-service/internal/api/dto"
	"github.com/spec-kit/catalog-service/internal/auth"
	"github.com/spec-kit/catalog-service/internal/service"
	apperrors "github.com/spec-kit/catalog-service/pkg/util"
)

// AdminHandler exposes admin management endpoints.
type AdminHandler struct {
	authService  *service.AuthService
	adminService *service.AdminService
}

// NewAdminHandler constructs handler.
func NewAdminHandler(authService *service.AuthService, adminService *service.AdminService) *AdminHandler {
	return &AdminHandler{authService: authService, adminService: adminService}
}

// Add handles POST /api/admin/add. Re-adding an existing username returns the
// same success message; the insert ignores the conflict.
func (h *AdminHandler) Add(c *fiber.Ctx) error {
	var req dto.AdminAddRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload")
	}
	if req.Username == "" || req.Password == "" {
		return apperrors.NewValidationError("username and password are required")
	}

	if err := h.adminService.Add(c.Context(), req.Username, req.Password); err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"message": "Admin added successfully",
	})
}

// Login handles POST /api/admin/login.
func (h *AdminHandler) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload")
	}
	if req.Username == "" || req.Password == "" {
		return apperrors.NewValidationError("username and password are required")
	}

	admin, token, _, err := h.authService.LoginAdmin(c.Context(), req.Username, req.Password)
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"token":    token,
		"username": admin.Username,
	})
}

// Profile handles GET /api/admin/profile. The token is verified here rather
// than by the admin guard.
func (h *AdminHandler) Profile(c *fiber.Ctx) error {
	token, err := auth.BearerToken(c)
	if err != nil {
		return err
	}

	admin, err := h.authService.Profile(c.Context(), token)
	if err != nil {
		return err
	}

	return c.JSON(dto.NewAdminResponse(admin))
}

// List handles GET /api/admin/all. No authentication check.
func (h *AdminHandler) List(c *fiber.Ctx) error {
	admins, err := h.adminService.List(c.Context())
	if err != nil {
		return err
	}
	return c.JSON(dto.NewAdminResponses(admins))
}
