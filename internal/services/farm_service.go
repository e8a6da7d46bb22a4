package services

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"github.com/Ezra-Tech-EB/BAHIS/internal/auth"
	"github.com/Ezra-Tech-EB/BAHIS/internal/models"
	"github.com/Ezra-Tech-EB/BAHIS/internal/repository"
)

// FarmService maintains the registered farm directory that farm inspections
// are filed against.
type FarmService struct {
	farmRepo repository.IFarmRepository
}

func NewFarmService(farmRepo repository.IFarmRepository) *FarmService {
	return &FarmService{farmRepo: farmRepo}
}

func (s *FarmService) Create(ctx context.Context, actor models.Actor, req *models.CreateFarmRequest) (*models.Farm, error) {
	if err := auth.Require(actor, auth.ResourceFarms, auth.ActionManage); err != nil {
		return nil, err
	}
	if req.Name == "" {
		return nil, &models.ValidationError{Field: "name", Message: "farm name is required"}
	}
	if req.Owner == "" {
		return nil, &models.ValidationError{Field: "owner", Message: "owner is required"}
	}
	if req.Location == "" {
		return nil, &models.ValidationError{Field: "location", Message: "location is required"}
	}
	if req.RegistrationNumber == "" {
		return nil, &models.ValidationError{Field: "registration_number", Message: "registration number is required"}
	}

	farm := &models.Farm{
		Name:               req.Name,
		Owner:              req.Owner,
		Location:           req.Location,
		GPSCoordinates:     req.GPSCoordinates,
		RegistrationNumber: req.RegistrationNumber,
		CropTypes:          req.CropTypes,
	}
	if err := s.farmRepo.Create(ctx, farm); err != nil {
		return nil, err
	}

	slog.Info("farm registered", "farm_id", farm.ID, "name", farm.Name)
	return farm, nil
}

func (s *FarmService) GetByID(ctx context.Context, actor models.Actor, id uuid.UUID) (*models.Farm, error) {
	if err := auth.Require(actor, auth.ResourceFarms, auth.ActionRead); err != nil {
		return nil, err
	}
	return s.farmRepo.GetByID(ctx, id)
}

func (s *FarmService) List(ctx context.Context, actor models.Actor) ([]models.Farm, error) {
	if err := auth.Require(actor, auth.ResourceFarms, auth.ActionRead); err != nil {
		return nil, err
	}
	return s.farmRepo.List(ctx)
}
