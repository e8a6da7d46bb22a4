package handlers

import (
	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"

	"github.com/Ezra-Tech-EB/BAHIS/internal/models"
	"github.com/Ezra-Tech-EB/BAHIS/internal/services"
)

type FarmHandler struct {
	farmService *services.FarmService
}

func NewFarmHandler(farmService *services.FarmService) *FarmHandler {
	return &FarmHandler{farmService: farmService}
}

func (h *FarmHandler) RegisterRoutes(app *fiber.App) {
	protectedGr := app.Group("inspection/protected/api/v1")

	protectedGr.Post("/farms", h.CreateFarm)
	protectedGr.Get("/farms", h.ListFarms)
	protectedGr.Get("/farms/:id", h.GetFarm)
}

func (h *FarmHandler) CreateFarm(c fiber.Ctx) error {
	var req models.CreateFarmRequest
	if err := c.Bind().Body(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(
			models.CreateErrorResponse("BAD_REQUEST", "invalid request body"))
	}

	farm, err := h.farmService.Create(c.Context(), actorFromHeaders(c), &req)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(models.CreateSuccessResponse(farm))
}

func (h *FarmHandler) GetFarm(c fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(
			models.CreateErrorResponse("BAD_REQUEST", "invalid farm id"))
	}

	farm, err := h.farmService.GetByID(c.Context(), actorFromHeaders(c), id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(models.CreateSuccessResponse(farm))
}

func (h *FarmHandler) ListFarms(c fiber.Ctx) error {
	farms, err := h.farmService.List(c.Context(), actorFromHeaders(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(models.CreateSuccessResponse(farms))
}
