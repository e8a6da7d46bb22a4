package handlers

import (
	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"

	"github.com/Ezra-Tech-EB/BAHIS/internal/models"
	"github.com/Ezra-Tech-EB/BAHIS/internal/services"
)

type ImportInspectionHandler struct {
	importService *services.ImportInspectionService
	reportService *services.ReportService
}

func NewImportInspectionHandler(importService *services.ImportInspectionService, reportService *services.ReportService) *ImportInspectionHandler {
	return &ImportInspectionHandler{
		importService: importService,
		reportService: reportService,
	}
}

func (h *ImportInspectionHandler) RegisterRoutes(app *fiber.App) {
	protectedGr := app.Group("inspection/protected/api/v1")

	protectedGr.Post("/import-inspections", h.CreateInspection)
	protectedGr.Get("/import-inspections", h.ListInspections)
	protectedGr.Get("/import-inspections/:id", h.GetInspection)
	protectedGr.Post("/import-inspections/:id/override-status", h.OverrideStatus)
	protectedGr.Post("/import-inspections/:id/photos", h.AttachPhotos)
	protectedGr.Post("/import-inspections/:id/report", h.GenerateReport)
}

func (h *ImportInspectionHandler) CreateInspection(c fiber.Ctx) error {
	var req models.CreateImportInspectionRequest
	if err := c.Bind().Body(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(
			models.CreateErrorResponse("BAD_REQUEST", "invalid request body"))
	}

	inspection, err := h.importService.Create(c.Context(), actorFromHeaders(c), &req)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(models.CreateSuccessResponse(inspection))
}

func (h *ImportInspectionHandler) GetInspection(c fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(
			models.CreateErrorResponse("BAD_REQUEST", "invalid inspection id"))
	}

	inspection, err := h.importService.GetByID(c.Context(), actorFromHeaders(c), id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(models.CreateSuccessResponse(inspection))
}

func (h *ImportInspectionHandler) ListInspections(c fiber.Ctx) error {
	var status *models.ImportInspectionStatus
	if s := c.Query("status"); s != "" {
		v := models.ImportInspectionStatus(s)
		if !v.IsValid() {
			return c.Status(fiber.StatusBadRequest).JSON(
				models.CreateErrorResponse("BAD_REQUEST", "unknown status filter"))
		}
		status = &v
	}

	inspections, err := h.importService.List(c.Context(), actorFromHeaders(c), status)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(models.CreateSuccessResponse(inspections))
}

func (h *ImportInspectionHandler) OverrideStatus(c fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(
			models.CreateErrorResponse("BAD_REQUEST", "invalid inspection id"))
	}

	var req models.OverrideImportStatusRequest
	if err := c.Bind().Body(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(
			models.CreateErrorResponse("BAD_REQUEST", "invalid request body"))
	}

	inspection, err := h.importService.OverrideStatus(c.Context(), actorFromHeaders(c), id, &req)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(models.CreateSuccessResponse(inspection))
}

func (h *ImportInspectionHandler) AttachPhotos(c fiber.Ctx) error {
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

	urls, failed, err := h.importService.AttachPhotos(c.Context(), actorFromHeaders(c), id, uploads)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(models.CreateSuccessResponse(newPhotoBatchResponse(urls, failed)))
}

func (h *ImportInspectionHandler) GenerateReport(c fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(
			models.CreateErrorResponse("BAD_REQUEST", "invalid inspection id"))
	}

	url, err := h.reportService.GenerateImportReport(c.Context(), actorFromHeaders(c), id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(models.CreateSuccessResponse(fiber.Map{"report_url": url}))
}
