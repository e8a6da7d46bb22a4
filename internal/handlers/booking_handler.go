package handlers

import (
	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"

	"github.com/Ezra-Tech-EB/BAHIS/internal/models"
	"github.com/Ezra-Tech-EB/BAHIS/internal/services"
)

type BookingHandler struct {
	bookingService *services.BookingService
}

func NewBookingHandler(bookingService *services.BookingService) *BookingHandler {
	return &BookingHandler{bookingService: bookingService}
}

func (h *BookingHandler) RegisterRoutes(app *fiber.App) {
	publicGr := app.Group("inspection/public/api/v1")
	publicGr.Post("/bookings", h.SubmitBooking)

	protectedGr := app.Group("inspection/protected/api/v1")
	protectedGr.Get("/bookings", h.ListBookings)
	protectedGr.Get("/bookings/:id", h.GetBooking)
	protectedGr.Post("/bookings/:id/confirm", h.ConfirmBooking)
	protectedGr.Post("/bookings/:id/reject", h.RejectBooking)
	protectedGr.Post("/bookings/:id/assign", h.AssignBooking)
	protectedGr.Post("/bookings/:id/complete", h.CompleteBooking)
}

// SubmitBooking is the public intake endpoint; no auth headers required.
func (h *BookingHandler) SubmitBooking(c fiber.Ctx) error {
	var req models.SubmitBookingRequest
	if err := c.Bind().Body(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(
			models.CreateErrorResponse("BAD_REQUEST", "invalid request body"))
	}

	booking, err := h.bookingService.Submit(c.Context(), actorFromHeaders(c), &req)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(models.CreateSuccessResponse(booking))
}

func (h *BookingHandler) GetBooking(c fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(
			models.CreateErrorResponse("BAD_REQUEST", "invalid booking id"))
	}

	booking, err := h.bookingService.GetBooking(c.Context(), actorFromHeaders(c), id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(models.CreateSuccessResponse(booking))
}

func (h *BookingHandler) ListBookings(c fiber.Ctx) error {
	var status *models.BookingStatus
	if s := c.Query("status"); s != "" {
		v := models.BookingStatus(s)
		status = &v
	}

	bookings, err := h.bookingService.ListBookings(c.Context(), actorFromHeaders(c), status)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(models.CreateSuccessResponse(bookings))
}

func (h *BookingHandler) ConfirmBooking(c fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(
			models.CreateErrorResponse("BAD_REQUEST", "invalid booking id"))
	}

	booking, err := h.bookingService.Confirm(c.Context(), actorFromHeaders(c), id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(models.CreateSuccessResponse(booking))
}

func (h *BookingHandler) RejectBooking(c fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(
			models.CreateErrorResponse("BAD_REQUEST", "invalid booking id"))
	}

	var req models.RejectBookingRequest
	if err := c.Bind().Body(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(
			models.CreateErrorResponse("BAD_REQUEST", "invalid request body"))
	}

	booking, err := h.bookingService.Reject(c.Context(), actorFromHeaders(c), id, req.Reason)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(models.CreateSuccessResponse(booking))
}

func (h *BookingHandler) AssignBooking(c fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(
			models.CreateErrorResponse("BAD_REQUEST", "invalid booking id"))
	}

	var req models.AssignBookingRequest
	if err := c.Bind().Body(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(
			models.CreateErrorResponse("BAD_REQUEST", "invalid request body"))
	}

	booking, err := h.bookingService.Assign(c.Context(), actorFromHeaders(c), id, req.InspectorID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(models.CreateSuccessResponse(booking))
}

func (h *BookingHandler) CompleteBooking(c fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(
			models.CreateErrorResponse("BAD_REQUEST", "invalid booking id"))
	}

	var req models.CompleteBookingRequest
	if err := c.Bind().Body(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(
			models.CreateErrorResponse("BAD_REQUEST", "invalid request body"))
	}

	booking, err := h.bookingService.Complete(c.Context(), actorFromHeaders(c), id, req.InspectionRef)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(models.CreateSuccessResponse(booking))
}
