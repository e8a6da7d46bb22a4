package handlers

import (
	"errors"
	"mime/multipart"

	"github.com/gofiber/fiber/v3"

	"github.com/Ezra-Tech-EB/BAHIS/internal/models"
	"github.com/Ezra-Tech-EB/BAHIS/internal/services"
)

// actorFromHeaders resolves the caller identity from the gateway headers. A
// request without them is treated as a public submitter.
func actorFromHeaders(c fiber.Ctx) models.Actor {
	role := c.Get("X-User-Role")
	if role == "" {
		return models.PublicActor()
	}
	return models.Actor{
		ID:   c.Get("X-User-ID"),
		Role: models.Role(role),
	}
}

// respondError maps the domain error taxonomy onto HTTP status codes. Every
// handler funnels failures through here so the wire contract stays uniform.
func respondError(c fiber.Ctx, err error) error {
	var (
		validation *models.ValidationError
		transition *models.InvalidTransition
		denied     *models.AccessDenied
		notFound   *models.NotFoundError
		storage    *models.StorageFailure
		exhausted  *models.ExhaustedSequence
	)

	switch {
	case errors.As(err, &validation):
		resp := models.CreateErrorResponse("VALIDATION_FAILED", validation.Message)
		resp.Error.Field = validation.Field
		return c.Status(fiber.StatusBadRequest).JSON(resp)
	case errors.As(err, &transition):
		return c.Status(fiber.StatusConflict).JSON(
			models.CreateErrorResponse("INVALID_TRANSITION", transition.Error()))
	case errors.As(err, &denied):
		return c.Status(fiber.StatusForbidden).JSON(
			models.CreateErrorResponse("ACCESS_DENIED", denied.Error()))
	case errors.As(err, &notFound):
		return c.Status(fiber.StatusNotFound).JSON(
			models.CreateErrorResponse("NOT_FOUND", notFound.Error()))
	case errors.As(err, &storage):
		return c.Status(fiber.StatusBadGateway).JSON(
			models.CreateErrorResponse("STORAGE_FAILURE", storage.Error()))
	case errors.As(err, &exhausted):
		return c.Status(fiber.StatusInternalServerError).JSON(
			models.CreateErrorResponse("SEQUENCE_EXHAUSTED", exhausted.Error()))
	}

	return c.Status(fiber.StatusInternalServerError).JSON(
		models.CreateErrorResponse("INTERNAL_ERROR", "internal server error"))
}

// photoUploadsFromForm converts the "photos" multipart field into service
// uploads. The request owns the file handles, so they stay valid until the
// batch is stored.
func photoUploadsFromForm(form *multipart.Form) ([]services.PhotoUpload, error) {
	headers := form.File["photos"]
	uploads := make([]services.PhotoUpload, 0, len(headers))

	for _, header := range headers {
		file, err := header.Open()
		if err != nil {
			return nil, &models.StorageFailure{Object: header.Filename, Err: err}
		}
		uploads = append(uploads, services.PhotoUpload{
			FileName:    header.Filename,
			Size:        header.Size,
			ContentType: header.Header.Get("Content-Type"),
			Content:     file,
		})
	}
	return uploads, nil
}

// photoBatchResponse is the wire shape of an attachment upload result: stored
// URLs plus per-file failures.
type photoBatchResponse struct {
	Stored []string           `json:"stored"`
	Failed []photoFailureItem `json:"failed"`
}

type photoFailureItem struct {
	FileName string `json:"file_name"`
	Reason   string `json:"reason"`
}

func newPhotoBatchResponse(urls []string, failed []*models.StorageFailure) photoBatchResponse {
	resp := photoBatchResponse{Stored: urls, Failed: []photoFailureItem{}}
	for _, f := range failed {
		resp.Failed = append(resp.Failed, photoFailureItem{FileName: f.Object, Reason: f.Err.Error()})
	}
	return resp
}
