package handlers

import (
	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"

	"github.com/Ezra-Tech-EB/BAHIS/internal/models"
	"github.com/Ezra-Tech-EB/BAHIS/internal/services"
)

type SurveillanceHandler struct {
	surveillanceService *services.SurveillanceService
}

func NewSurveillanceHandler(surveillanceService *services.SurveillanceService) *SurveillanceHandler {
	return &SurveillanceHandler{surveillanceService: surveillanceService}
}

func (h *SurveillanceHandler) RegisterRoutes(app *fiber.App) {
	protectedGr := app.Group("inspection/protected/api/v1")

	protectedGr.Post("/surveillance", h.CreateRecord)
	protectedGr.Get("/surveillance", h.ListRecords)
	protectedGr.Get("/surveillance/:id", h.GetRecord)
}

func (h *SurveillanceHandler) CreateRecord(c fiber.Ctx) error {
	var req models.CreateSurveillanceRequest
	if err := c.Bind().Body(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(
			models.CreateErrorResponse("BAD_REQUEST", "invalid request body"))
	}

	record, err := h.surveillanceService.Create(c.Context(), actorFromHeaders(c), &req)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(models.CreateSuccessResponse(record))
}

func (h *SurveillanceHandler) GetRecord(c fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(
			models.CreateErrorResponse("BAD_REQUEST", "invalid surveillance id"))
	}

	record, err := h.surveillanceService.GetByID(c.Context(), actorFromHeaders(c), id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(models.CreateSuccessResponse(record))
}

func (h *SurveillanceHandler) ListRecords(c fiber.Ctx) error {
	records, err := h.surveillanceService.List(c.Context(), actorFromHeaders(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(models.CreateSuccessResponse(records))
}
