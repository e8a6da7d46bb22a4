package handlers

import (
	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"

	"github.com/Ezra-Tech-EB/BAHIS/internal/models"
	"github.com/Ezra-Tech-EB/BAHIS/internal/services"
)

type DashboardHandler struct {
	dashboardService *services.DashboardService
	auditService     *services.AuditService
}

func NewDashboardHandler(dashboardService *services.DashboardService, auditService *services.AuditService) *DashboardHandler {
	return &DashboardHandler{
		dashboardService: dashboardService,
		auditService:     auditService,
	}
}

func (h *DashboardHandler) RegisterRoutes(app *fiber.App) {
	protectedGr := app.Group("inspection/protected/api/v1")

	protectedGr.Get("/dashboard/summary", h.GetSummary)
	protectedGr.Get("/audit/:entity_id", h.GetAuditTrail)
}

func (h *DashboardHandler) GetSummary(c fiber.Ctx) error {
	summary, err := h.dashboardService.Summary(c.Context(), actorFromHeaders(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(models.CreateSuccessResponse(summary))
}

func (h *DashboardHandler) GetAuditTrail(c fiber.Ctx) error {
	entityID, err := uuid.Parse(c.Params("entity_id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(
			models.CreateErrorResponse("BAD_REQUEST", "invalid entity id"))
	}

	trail, err := h.auditService.Trail(c.Context(), actorFromHeaders(c), entityID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(models.CreateSuccessResponse(trail))
}
