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

type ISurveillanceRepository interface {
	Create(ctx context.Context, record *models.PestSurveillance) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.PestSurveillance, error)
	List(ctx context.Context) ([]models.PestSurveillance, error)
	Count(ctx context.Context) (int, error)
}

const surveillanceColumns = `
	id, reference_number, inspector_id, observation_date, observation_time,
	location, ST_AsBinary(gps_coordinates::geometry) AS gps_coordinates,
	gps_unavailable, farm_inspection_id, pest_type, scientific_name,
	population_density, affected_crops, trap_results, weather_conditions,
	visual_signs, damage_assessment, distribution_pattern, control_measures,
	photos, notes, follow_up_required, follow_up_date, created_at, updated_at`

type SurveillanceRepository struct {
	db *sqlx.DB
}

func NewSurveillanceRepository(db *sqlx.DB) ISurveillanceRepository {
	return &SurveillanceRepository{db: db}
}

func (r *SurveillanceRepository) Create(ctx context.Context, record *models.PestSurveillance) error {
	if record.ID == uuid.Nil {
		record.ID = uuid.New()
	}
	record.CreatedAt = time.Now()
	record.UpdatedAt = time.Now()

	query := `
		INSERT INTO pest_surveillance (
			id, reference_number, inspector_id, observation_date, observation_time,
			location, gps_coordinates, gps_unavailable, farm_inspection_id,
			pest_type, scientific_name, population_density, affected_crops,
			trap_results, weather_conditions, visual_signs, damage_assessment,
			distribution_pattern, control_measures, photos, notes,
			follow_up_required, follow_up_date, created_at, updated_at
		) VALUES (
			:id, :reference_number, :inspector_id, :observation_date, :observation_time,
			:location, :gps_coordinates, :gps_unavailable, :farm_inspection_id,
			:pest_type, :scientific_name, :population_density, :affected_crops,
			:trap_results, :weather_conditions, :visual_signs, :damage_assessment,
			:distribution_pattern, :control_measures, :photos, :notes,
			:follow_up_required, :follow_up_date, :created_at, :updated_at
		)`

	_, err := r.db.NamedExecContext(ctx, query, record)
	if err != nil {
		return fmt.Errorf("failed to create pest surveillance record: %w", err)
	}
	return nil
}

func (r *SurveillanceRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.PestSurveillance, error) {
	var record models.PestSurveillance
	err := r.db.GetContext(ctx, &record,
		"SELECT "+surveillanceColumns+" FROM pest_surveillance WHERE id = $1", id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, &models.NotFoundError{Entity: models.EntitySurveillance, ID: id.String()}
		}
		return nil, fmt.Errorf("failed to get pest surveillance record %s: %w", id, err)
	}
	return &record, nil
}

func (r *SurveillanceRepository) List(ctx context.Context) ([]models.PestSurveillance, error) {
	records := []models.PestSurveillance{}
	err := r.db.SelectContext(ctx, &records,
		"SELECT "+surveillanceColumns+" FROM pest_surveillance ORDER BY created_at DESC")
	if err != nil {
		return nil, fmt.Errorf("failed to list pest surveillance records: %w", err)
	}
	return records, nil
}

func (r *SurveillanceRepository) Count(ctx context.Context) (int, error) {
	var count int
	if err := r.db.GetContext(ctx, &count, `SELECT COUNT(*) FROM pest_surveillance`); err != nil {
		return 0, fmt.Errorf("failed to count pest surveillance records: %w", err)
	}
	return count, nil
}
