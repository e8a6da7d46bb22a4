package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/Ezra-Tech-EB/BAHIS/internal/models"
)

type IFarmRepository interface {
	Create(ctx context.Context, farm *models.Farm) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Farm, error)
	List(ctx context.Context) ([]models.Farm, error)
}

const farmColumns = `
	id, name, owner, location,
	ST_AsBinary(gps_coordinates::geometry) AS gps_coordinates,
	registration_number, crop_types, created_at, updated_at`

type FarmRepository struct {
	db *sqlx.DB
}

func NewFarmRepository(db *sqlx.DB) IFarmRepository {
	return &FarmRepository{db: db}
}

func (r *FarmRepository) Create(ctx context.Context, farm *models.Farm) error {
	if farm.ID == uuid.Nil {
		farm.ID = uuid.New()
	}
	farm.CreatedAt = time.Now()
	farm.UpdatedAt = time.Now()

	query := `
		INSERT INTO farms (
			id, name, owner, location, gps_coordinates,
			registration_number, crop_types, created_at, updated_at
		) VALUES (
			:id, :name, :owner, :location, :gps_coordinates,
			:registration_number, :crop_types, :created_at, :updated_at
		)`

	_, err := r.db.NamedExecContext(ctx, query, farm)
	if err != nil {
		return fmt.Errorf("failed to create farm: %w", err)
	}
	return nil
}

func (r *FarmRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Farm, error) {
	var farm models.Farm
	err := r.db.GetContext(ctx, &farm,
		"SELECT "+farmColumns+" FROM farms WHERE id = $1", id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, &models.NotFoundError{Entity: models.EntityFarm, ID: id.String()}
		}
		return nil, fmt.Errorf("failed to get farm %s: %w", id, err)
	}
	return &farm, nil
}

func (r *FarmRepository) List(ctx context.Context) ([]models.Farm, error) {
	farms := []models.Farm{}
	err := r.db.SelectContext(ctx, &farms,
		"SELECT "+farmColumns+" FROM farms ORDER BY name ASC")
	if err != nil {
		return nil, fmt.Errorf("failed to list farms: %w", err)
	}
	return farms, nil
}
