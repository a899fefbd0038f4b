package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/catalog-service/internal/api/dto"
	"github.com/spec-kit/catalog-service/internal/service"
	apperrors "github.com/spec-kit/catalog-service/pkg/util"
)

// ServicesHandler exposes the catalog endpoints.
type ServicesHandler struct {
	catalog *service.CatalogService
}

// NewServicesHandler constructs handler.
func NewServicesHandler(catalogService *service.CatalogService) *ServicesHandler {
	return &ServicesHandler{catalog: catalogService}
}

// Create handles POST /api/services.
func (h *ServicesHandler) Create(c *fiber.Ctx) error {
	var req dto.ServiceCreateRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload")
	}
	if req.Category == "" || req.Name == "" {
		return apperrors.NewValidationError("category and name are required")
	}

	svc, err := h.catalog.Add(c.Context(), req.Category, req.Name, req.Price, req.ImageURL, req.Description)
	if err != nil {
		return err
	}

	return c.Status(http.StatusCreated).JSON(fiber.Map{
		"service": dto.NewServiceResponse(svc),
	})
}

// List handles GET /api/services.
func (h *ServicesHandler) List(c *fiber.Ctx) error {
	services, err := h.catalog.List(c.Context())
	if err != nil {
		return err
	}
	return c.JSON(dto.NewServiceResponses(services))
}
