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

type SurveillanceService struct {
	surveillanceRepo repository.ISurveillanceRepository
	farmInspRepo     repository.IFarmInspectionRepository
	refGen           *refseq.Generator
	photoSvc         *PhotoService
}

func NewSurveillanceService(
	surveillanceRepo repository.ISurveillanceRepository,
	farmInspRepo repository.IFarmInspectionRepository,
	refGen *refseq.Generator,
	photoSvc *PhotoService,
) *SurveillanceService {
	return &SurveillanceService{
		surveillanceRepo: surveillanceRepo,
		farmInspRepo:     farmInspRepo,
		refGen:           refGen,
		photoSvc:         photoSvc,
	}
}

// Create records a pest surveillance observation. When the observation is
// linked to a farm inspection, the link target must exist.
func (s *SurveillanceService) Create(ctx context.Context, actor models.Actor, req *models.CreateSurveillanceRequest) (*models.PestSurveillance, error) {
	if err := auth.Require(actor, auth.ResourceSurveillance, auth.ActionCreate); err != nil {
		return nil, err
	}
	if err := validateSurveillance(req); err != nil {
		return nil, err
	}

	if req.FarmInspectionID != nil {
		if _, err := s.farmInspRepo.GetByID(ctx, *req.FarmInspectionID); err != nil {
			return nil, err
		}
	}

	ref, err := s.refGen.Generate(ctx, refseq.PrefixSurveillance, time.Now())
	if err != nil {
		var exhausted *models.ExhaustedSequence
		if !errors.As(err, &exhausted) {
			return nil, fmt.Errorf("failed to generate surveillance reference: %w", err)
		}
		ref = s.refGen.GenerateExtended(refseq.PrefixSurveillance, time.Now())
		slog.Warn("surveillance sequence exhausted, using extended reference", "reference", ref)
	}

	record := &models.PestSurveillance{
		ReferenceNumber:     ref,
		InspectorID:         req.InspectorID,
		ObservationDate:     req.ObservationDate,
		ObservationTime:     req.ObservationTime,
		Location:            req.Location,
		GPSCoordinates:      req.GPSCoordinates,
		GPSUnavailable:      req.GPSCoordinates == nil,
		FarmInspectionID:    req.FarmInspectionID,
		PestType:            req.PestType,
		ScientificName:      req.ScientificName,
		PopulationDensity:   req.PopulationDensity,
		AffectedCrops:       req.AffectedCrops,
		Trap:                req.Trap,
		Weather:             req.Weather,
		VisualSigns:         req.VisualSigns,
		DamageAssessment:    req.DamageAssessment,
		DistributionPattern: req.DistributionPattern,
		ControlMeasures:     req.ControlMeasures,
		Photos:              []string{},
		Notes:               req.Notes,
		FollowUpNeeded:      req.FollowUpNeeded,
		FollowUpDate:        req.FollowUpDate,
	}

	if err := s.surveillanceRepo.Create(ctx, record); err != nil {
		return nil, err
	}

	slog.Info("pest surveillance record created",
		"reference", record.ReferenceNumber,
		"pest_type", record.PestType,
		"density", record.PopulationDensity)
	return record, nil
}

func (s *SurveillanceService) GetByID(ctx context.Context, actor models.Actor, id uuid.UUID) (*models.PestSurveillance, error) {
	if err := auth.Require(actor, auth.ResourceSurveillance, auth.ActionRead); err != nil {
		return nil, err
	}
	return s.surveillanceRepo.GetByID(ctx, id)
}

func (s *SurveillanceService) List(ctx context.Context, actor models.Actor) ([]models.PestSurveillance, error) {
	if err := auth.Require(actor, auth.ResourceSurveillance, auth.ActionRead); err != nil {
		return nil, err
	}
	return s.surveillanceRepo.List(ctx)
}

func validateSurveillance(req *models.CreateSurveillanceRequest) error {
	if req.InspectorID == uuid.Nil {
		return &models.ValidationError{Field: "inspector_id", Message: "inspector id is required"}
	}
	if req.ObservationDate == "" {
		return &models.ValidationError{Field: "observation_date", Message: "observation date is required"}
	}
	if req.Location == "" {
		return &models.ValidationError{Field: "location", Message: "location is required"}
	}
	if req.PestType == "" {
		return &models.ValidationError{Field: "pest_type", Message: "pest type is required"}
	}
	switch req.PopulationDensity {
	case models.PopulationNone, models.PopulationLow, models.PopulationMedium, models.PopulationHigh:
	default:
		return &models.ValidationError{Field: "population_density", Message: "population density must be none, low, medium or high"}
	}
	if req.FollowUpNeeded && req.FollowUpDate == nil {
		return &models.ValidationError{Field: "follow_up_date", Message: "follow-up date is required when follow-up is needed"}
	}
	return nil
}
