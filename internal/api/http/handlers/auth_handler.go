package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/catalog-service/internal/api/dto"
	"github.com/spec-kit/catalog-service/internal/service"
	apperrors "github.com/spec-kit/catalog-service/pkg/util"
)

// AuthHandler exposes registration and login endpoints.
type AuthHandler struct {
	auth *service.AuthService
}

// NewAuthHandler constructs handler.
func NewAuthHandler(authService *service.AuthService) *AuthHandler {
	return &AuthHandler{auth: authService}
}

// Register handles POST /api/auth/register.
func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var req dto.RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload")
	}
	if req.Username == "" || req.Password == "" || req.Role == "" {
		return apperrors.NewValidationError("username, password and role are required")
	}

	user, err := h.auth.Register(c.Context(), req.Username, req.Password, req.Role)
	if err != nil {
		return err
	}

	return c.Status(http.StatusCreated).JSON(fiber.Map{
		"user": dto.NewUserResponse(user),
	})
}

// Login handles POST /api/auth/login.
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload")
	}
	if req.Username == "" || req.Password == "" {
		return apperrors.NewValidationError("username and password are required")
	}

	user, token, _, err := h.auth.Login(c.Context(), req.Username, req.Password)
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"token":    token,
		"username": user.Username,
	})
}
