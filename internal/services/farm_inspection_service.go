package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/Ezra-Tech-EB/BAHIS/internal/auth"
	"github.com/Ezra-Tech-EB/BAHIS/internal/models"
	"github.com/Ezra-Tech-EB/BAHIS/internal/refseq"
	"github.com/Ezra-Tech-EB/BAHIS/internal/repository"
)

type FarmInspectionService struct {
	farmInspRepo repository.IFarmInspectionRepository
	farmRepo     repository.IFarmRepository
	refGen       *refseq.Generator
	photoSvc     *PhotoService
}

func NewFarmInspectionService(
	farmInspRepo repository.IFarmInspectionRepository,
	farmRepo repository.IFarmRepository,
	refGen *refseq.Generator,
	photoSvc *PhotoService,
) *FarmInspectionService {
	return &FarmInspectionService{
		farmInspRepo: farmInspRepo,
		farmRepo:     farmRepo,
		refGen:       refGen,
		photoSvc:     photoSvc,
	}
}

// Create validates and commits a completed farm inspection checklist. The
// compliance score is computed server-side from the sanitation and compliance
// boolean checks and the status derived from it; neither is accepted from the
// caller.
func (s *FarmInspectionService) Create(ctx context.Context, actor models.Actor, req *models.CreateFarmInspectionRequest) (*models.FarmInspection, error) {
	if err := auth.Require(actor, auth.ResourceInspections, auth.ActionCreate); err != nil {
		return nil, err
	}
	if err := validateFarmInspection(req); err != nil {
		return nil, err
	}

	if _, err := s.farmRepo.GetByID(ctx, req.FarmID); err != nil {
		return nil, err
	}

	ref, err := s.generateReference(ctx)
	if err != nil {
		return nil, err
	}

	inspection := &models.FarmInspection{
		ReferenceNumber: ref,
		BookingID:       req.BookingID,
		FarmID:          req.FarmID,
		InspectorID:     req.InspectorID,
		InspectionDate:  req.InspectionDate,
		InspectionTime:  req.InspectionTime,
		CropTypes:       req.CropTypes,
		Sanitation:      req.Sanitation,
		PestPresence:    req.PestPresence,
		Compliance:      req.Compliance,
		SoilHealth:      req.SoilHealth,
		Infrastructure:  req.Infrastructure,
		GPSCoordinates:  req.GPSCoordinates,
		GPSUnavailable:  req.GPSCoordinates == nil,
		Photos:          []string{},
		Recommendations: req.Recommendations,
		FollowUpNeeded:  req.FollowUpNeeded,
		FollowUpDate:    req.FollowUpDate,
	}
	inspection.ComplianceScore = inspection.ComputeComplianceScore()
	inspection.Status = models.DeriveFarmStatus(inspection.ComplianceScore)

	// A failing score forces the follow-up path even if the inspector left
	// the flag unset.
	if inspection.Status == models.FarmInspectionFollowUpRequired {
		inspection.FollowUpNeeded = true
	}
	if inspection.FollowUpNeeded && inspection.FollowUpDate == nil {
		return nil, &models.ValidationError{Field: "follow_up_date", Message: "follow-up date is required when follow-up is needed"}
	}

	if err := s.farmInspRepo.Create(ctx, inspection); err != nil {
		return nil, err
	}

	slog.Info("farm inspection created",
		"reference", inspection.ReferenceNumber,
		"farm_id", inspection.FarmID,
		"score", inspection.ComplianceScore,
		"status", inspection.Status)
	return inspection, nil
}

func (s *FarmInspectionService) GetByID(ctx context.Context, actor models.Actor, id uuid.UUID) (*models.FarmInspection, error) {
	if err := auth.Require(actor, auth.ResourceInspections, auth.ActionRead); err != nil {
		return nil, err
	}
	return s.farmInspRepo.GetByID(ctx, id)
}

func (s *FarmInspectionService) List(ctx context.Context, actor models.Actor, status *models.FarmInspectionStatus) ([]models.FarmInspection, error) {
	if err := auth.Require(actor, auth.ResourceInspections, auth.ActionRead); err != nil {
		return nil, err
	}
	return s.farmInspRepo.List(ctx, status)
}

func (s *FarmInspectionService) AttachPhotos(ctx context.Context, actor models.Actor, id uuid.UUID, uploads []PhotoUpload) ([]string, []*models.StorageFailure, error) {
	if err := auth.Require(actor, auth.ResourceInspections, auth.ActionCreate); err != nil {
		return nil, nil, err
	}

	inspection, err := s.farmInspRepo.GetByID(ctx, id)
	if err != nil {
		return nil, nil, err
	}

	urls, failed := s.photoSvc.StorePhotos(ctx, inspection.ReferenceNumber, uploads)
	if len(urls) > 0 {
		if err := s.farmInspRepo.AppendPhotos(ctx, id, urls); err != nil {
			return nil, nil, err
		}
	}
	return urls, failed, nil
}

func (s *FarmInspectionService) generateReference(ctx context.Context) (string, error) {
	ref, err := s.refGen.Generate(ctx, refseq.PrefixFarmInspection, time.Now())
	if err != nil {
		var exhausted *models.ExhaustedSequence
		if !errors.As(err, &exhausted) {
			return "", fmt.Errorf("failed to generate inspection reference: %w", err)
		}
		ref = s.refGen.GenerateExtended(refseq.PrefixFarmInspection, time.Now())
		slog.Warn("farm inspection sequence exhausted, using extended reference", "reference", ref)
	}
	return ref, nil
}

func validateFarmInspection(req *models.CreateFarmInspectionRequest) error {
	if req.FarmID == uuid.Nil {
		return &models.ValidationError{Field: "farm_id", Message: "farm id is required"}
	}
	if req.InspectorID == uuid.Nil {
		return &models.ValidationError{Field: "inspector_id", Message: "inspector id is required"}
	}
	if req.InspectionDate == "" {
		return &models.ValidationError{Field: "inspection_date", Message: "inspection date is required"}
	}
	if len(req.CropTypes) == 0 {
		return &models.ValidationError{Field: "crop_types", Message: "at least one crop type is required"}
	}
	if req.FollowUpNeeded && req.FollowUpDate == nil {
		return &models.ValidationError{Field: "follow_up_date", Message: "follow-up date is required when follow-up is needed"}
	}
	return nil
}
