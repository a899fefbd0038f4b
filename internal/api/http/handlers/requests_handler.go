package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/catalog-service/internal/api/dto"
	"github.com/spec-kit/catalog-service/internal/service"
	apperrors "github.com/spec-kit/catalog-service/pkg/util"
)

// RequestsHandler exposes request submission and tracking endpoints.
type RequestsHandler struct {
	requests *service.RequestService
}

// NewRequestsHandler constructs handler.
func NewRequestsHandler(requestService *service.RequestService) *RequestsHandler {
	return &RequestsHandler{requests: requestService}
}

// Create handles POST /api/requests. A zero quantity is rejected along with
// the missing-field cases.
func (h *RequestsHandler) Create(c *fiber.Ctx) error {
	var req dto.RequestCreateRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload")
	}
	if req.Username == "" || req.ProductName == "" || req.Quantity == 0 {
		return apperrors.NewValidationError("username, product_name and quantity are required")
	}

	request, err := h.requests.Submit(c.Context(), req.Username, req.ProductName, req.Quantity)
	if err != nil {
		return err
	}

	return c.Status(http.StatusCreated).JSON(fiber.Map{
		"request": dto.NewRequestResponse(request),
	})
}

// List handles GET /api/requests. No authentication: any caller can enumerate
// every user's requests.
func (h *RequestsHandler) List(c *fiber.Ctx) error {
	requests, err := h.requests.List(c.Context())
	if err != nil {
		return err
	}
	return c.JSON(dto.NewRequestResponses(requests))
}

// ListByUsername handles GET /api/requests/:username.
func (h *RequestsHandler) ListByUsername(c *fiber.Ctx) error {
	username := c.Params("username")
	requests, err := h.requests.ListByUsername(c.Context(), username)
	if err != nil {
		return err
	}
	return c.JSON(dto.NewRequestResponses(requests))
}

// UpdateStatus handles PATCH /api/requests/:id.
func (h *RequestsHandler) UpdateStatus(c *fiber.Ctx) error {
	var req dto.RequestStatusUpdateRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload")
	}
	if req.Status == "" {
		return apperrors.NewValidationError("status is required")
	}

	request, err := h.requests.UpdateStatus(c.Context(), c.Params("id"), req.Status)
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"request": dto.NewRequestResponse(request),
	})
}
