package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/Ezra-Tech-EB/BAHIS/internal/auth"
	"github.com/Ezra-Tech-EB/BAHIS/internal/event"
	"github.com/Ezra-Tech-EB/BAHIS/internal/models"
	"github.com/Ezra-Tech-EB/BAHIS/internal/refseq"
	"github.com/Ezra-Tech-EB/BAHIS/internal/repository"
)

type ImportInspectionService struct {
	importRepo repository.IImportInspectionRepository
	refGen     *refseq.Generator
	photoSvc   *PhotoService
	publisher  *event.Publisher
}

func NewImportInspectionService(
	importRepo repository.IImportInspectionRepository,
	refGen *refseq.Generator,
	photoSvc *PhotoService,
	publisher *event.Publisher,
) *ImportInspectionService {
	return &ImportInspectionService{
		importRepo: importRepo,
		refGen:     refGen,
		photoSvc:   photoSvc,
		publisher:  publisher,
	}
}

// Create validates and commits a completed import inspection checklist. The
// status is derived from the phytosanitary actions; nothing is committed on
// validation failure. A missing GPS capture is recorded, not rejected.
func (s *ImportInspectionService) Create(ctx context.Context, actor models.Actor, req *models.CreateImportInspectionRequest) (*models.ImportInspection, error) {
	if err := auth.Require(actor, auth.ResourceInspections, auth.ActionCreate); err != nil {
		return nil, err
	}
	if err := validateImportInspection(req); err != nil {
		return nil, err
	}

	ref, err := s.generateReference(ctx)
	if err != nil {
		return nil, err
	}

	inspection := &models.ImportInspection{
		ReferenceNumber: ref,
		BookingID:       req.BookingID,
		InspectorID:     req.InspectorID,
		InspectionDate:  req.InspectionDate,
		InspectionTime:  req.InspectionTime,
		Location:        req.Location,
		GPSCoordinates:  req.GPSCoordinates,
		GPSUnavailable:  req.GPSCoordinates == nil,
		Consignment:     req.Consignment,
		Commodities:     req.Commodities,
		Compliance:      req.Compliance,
		Actions:         req.Actions,
		Photos:          []string{},
		Notes:           req.Notes,
	}
	inspection.Status = inspection.DeriveStatus()

	if err := s.importRepo.Create(ctx, inspection); err != nil {
		return nil, err
	}

	slog.Info("import inspection created",
		"reference", inspection.ReferenceNumber,
		"status", inspection.Status,
		"port", inspection.Consignment.PortOfEntry)
	return inspection, nil
}

func (s *ImportInspectionService) GetByID(ctx context.Context, actor models.Actor, id uuid.UUID) (*models.ImportInspection, error) {
	if err := auth.Require(actor, auth.ResourceInspections, auth.ActionRead); err != nil {
		return nil, err
	}
	return s.importRepo.GetByID(ctx, id)
}

func (s *ImportInspectionService) List(ctx context.Context, actor models.Actor, status *models.ImportInspectionStatus) ([]models.ImportInspection, error) {
	if err := auth.Require(actor, auth.ResourceInspections, auth.ActionRead); err != nil {
		return nil, err
	}
	return s.importRepo.List(ctx, status)
}

// OverrideStatus sets the consignment status directly, bypassing the action
// derivation. Admin only; the override is flagged on the record and logged in
// the audit trail, and wins over any later derivation.
func (s *ImportInspectionService) OverrideStatus(ctx context.Context, actor models.Actor, id uuid.UUID, req *models.OverrideImportStatusRequest) (*models.ImportInspection, error) {
	if err := auth.Require(actor, auth.ResourceInspections, auth.ActionManage); err != nil {
		return nil, err
	}
	if !req.Status.IsValid() {
		return nil, &models.ValidationError{Field: "status", Message: "unknown import inspection status"}
	}
	if req.Note == "" {
		return nil, &models.ValidationError{Field: "note", Message: "an override note is required"}
	}

	inspection, err := s.importRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	from := inspection.Status
	inspection.Status = req.Status
	inspection.StatusOverride = true

	entry := &models.AuditEntry{
		EntityType: models.EntityImportInspection,
		EntityID:   inspection.ID,
		ActorID:    actor.ID,
		ActorRole:  actor.Role,
		FromState:  string(from),
		ToState:    string(req.Status),
		Note:       &req.Note,
	}
	if err := s.importRepo.UpdateStatus(ctx, inspection, from, entry); err != nil {
		return nil, err
	}

	s.publisher.PublishStatusChanged(ctx, event.StatusChangedEvent{
		EntityType:      models.EntityImportInspection,
		EntityID:        inspection.ID,
		ReferenceNumber: inspection.ReferenceNumber,
		FromState:       string(from),
		ToState:         string(req.Status),
		ActorID:         actor.ID,
		OccurredAt:      time.Now(),
	})

	slog.Info("import inspection status overridden",
		"reference", inspection.ReferenceNumber,
		"from", from,
		"to", req.Status,
		"actor", actor.ID)
	return inspection, nil
}

// AttachPhotos stores a photo batch against the inspection. Failed
// attachments are returned alongside the stored URLs; the submission itself
// never fails on them.
func (s *ImportInspectionService) AttachPhotos(ctx context.Context, actor models.Actor, id uuid.UUID, uploads []PhotoUpload) ([]string, []*models.StorageFailure, error) {
	if err := auth.Require(actor, auth.ResourceInspections, auth.ActionCreate); err != nil {
		return nil, nil, err
	}

	inspection, err := s.importRepo.GetByID(ctx, id)
	if err != nil {
		return nil, nil, err
	}

	urls, failed := s.photoSvc.StorePhotos(ctx, inspection.ReferenceNumber, uploads)
	if len(urls) > 0 {
		if err := s.importRepo.AppendPhotos(ctx, id, urls); err != nil {
			return nil, nil, err
		}
	}
	return urls, failed, nil
}

func (s *ImportInspectionService) generateReference(ctx context.Context) (string, error) {
	ref, err := s.refGen.Generate(ctx, refseq.PrefixImportInspection, time.Now())
	if err != nil {
		var exhausted *models.ExhaustedSequence
		if !errors.As(err, &exhausted) {
			return "", fmt.Errorf("failed to generate inspection reference: %w", err)
		}
		ref = s.refGen.GenerateExtended(refseq.PrefixImportInspection, time.Now())
		slog.Warn("import inspection sequence exhausted, using extended reference", "reference", ref)
	}
	return ref, nil
}

func validateImportInspection(req *models.CreateImportInspectionRequest) error {
	if req.InspectorID == uuid.Nil {
		return &models.ValidationError{Field: "inspector_id", Message: "inspector id is required"}
	}
	if req.InspectionDate == "" {
		return &models.ValidationError{Field: "inspection_date", Message: "inspection date is required"}
	}
	if req.Consignment.PortOfEntry == "" {
		return &models.ValidationError{Field: "consignment_details.port_of_entry", Message: "port of entry is required"}
	}
	if req.Consignment.Importer == "" {
		return &models.ValidationError{Field: "consignment_details.importer", Message: "importer is required"}
	}
	if req.Consignment.OriginCountry == "" {
		return &models.ValidationError{Field: "consignment_details.origin_country", Message: "origin country is required"}
	}
	if len(req.Commodities) == 0 {
		return &models.ValidationError{Field: "commodities", Message: "at least one commodity is required"}
	}
	for i, commodity := range req.Commodities {
		if commodity.Name == "" {
			return &models.ValidationError{Field: fmt.Sprintf("commodities[%d].name", i), Message: "commodity name is required"}
		}
		if commodity.Quantity <= 0 {
			return &models.ValidationError{Field: fmt.Sprintf("commodities[%d].quantity", i), Message: "quantity must be greater than 0"}
		}
		if commodity.Unit == "" {
			return &models.ValidationError{Field: fmt.Sprintf("commodities[%d].unit", i), Message: "unit is required"}
		}
	}
	if req.Actions.Others && req.Actions.OthersText == "" {
		return &models.ValidationError{Field: "phytosanitary_actions.others_text", Message: "description is required when others is selected"}
	}
	return nil
}
