package handlers

import (
	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"

	"github.com/Ezra-Tech-EB/BAHIS/internal/models"
	"github.com/Ezra-Tech-EB/BAHIS/internal/services"
)

type FarmInspectionHandler struct {
	farmInspService *services.FarmInspectionService
	reportService   *services.ReportService
}

func NewFarmInspectionHandler(farmInspService *services.FarmInspectionService, reportService *services.ReportService) *FarmInspectionHandler {
	return &FarmInspectionHandler{
		farmInspService: farmInspService,
		reportService:   reportService,
	}
}

func (h *FarmInspectionHandler) RegisterRoutes(app *fiber.App) {
	protectedGr := app.Group("inspection/protected/api/v1")

	protectedGr.Post("/farm-inspections", h.CreateInspection)
	protectedGr.Get("/farm-inspections", h.ListInspections)
	protectedGr.Get("/farm-inspections/:id", h.GetInspection)
	protectedGr.Post("/farm-inspections/:id/photos", h.AttachPhotos)
	protectedGr.Post("/farm-inspections/:id/report", h.GenerateReport)
}

func (h *FarmInspectionHandler) CreateInspection(c fiber.Ctx) error {
	var req models.CreateFarmInspectionRequest
	if err := c.Bind().Body(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(
			models.CreateErrorResponse("BAD_REQUEST", "invalid request body"))
	}

	inspection, err := h.farmInspService.Create(c.Context(), actorFromHeaders(c), &req)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(models.CreateSuccessResponse(inspection))
}

func (h *FarmInspectionHandler) GetInspection(c fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(
			models.CreateErrorResponse("BAD_REQUEST", "invalid inspection id"))
	}

	inspection, err := h.farmInspService.GetByID(c.Context(), actorFromHeaders(c), id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(models.CreateSuccessResponse(inspection))
}

func (h *FarmInspectionHandler) ListInspections(c fiber.Ctx) error {
	var status *models.FarmInspectionStatus
	if s := c.Query("status"); s != "" {
		v := models.FarmInspectionStatus(s)
		status = &v
	}

	inspections, err := h.farmInspService.List(c.Context(), actorFromHeaders(c), status)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(models.CreateSuccessResponse(inspections))
}

func (h *FarmInspectionHandler) AttachPhotos(c fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(
			models.CreateErrorResponse("BAD_REQUEST", "invalid inspection id"))
	}

	form, err := c.MultipartForm()
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(
			models.CreateErrorResponse("BAD_REQUEST", "invalid multipart form"))
	}

	uploads, err := photoUploadsFromForm(form)
	if err != nil {
		return respondError(c, err)
	}

	urls, failed, err := h.farmInspService.AttachPhotos(c.Context(), actorFromHeaders(c), id, uploads)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(models.CreateSuccessResponse(newPhotoBatchResponse(urls, failed)))
}

func (h *FarmInspectionHandler) GenerateReport(c fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(
			models.CreateErrorResponse("BAD_REQUEST", "invalid inspection id"))
	}

	url, err := h.reportService.GenerateFarmReport(c.Context(), actorFromHeaders(c), id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(models.CreateSuccessResponse(fiber.Map{"report_url": url}))
}
