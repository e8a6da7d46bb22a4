package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/Ezra-Tech-EB/BAHIS/internal/models"
)

type IFarmInspectionRepository interface {
	Create(ctx context.Context, inspection *models.FarmInspection) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.FarmInspection, error)
	GetByReference(ctx context.Context, ref string) (*models.FarmInspection, error)
	List(ctx context.Context, status *models.FarmInspectionStatus) ([]models.FarmInspection, error)
	AppendPhotos(ctx context.Context, id uuid.UUID, urls []string) error
	Count(ctx context.Context) (int, error)
}

const farmInspectionColumns = `
	id, reference_number, booking_id, farm_id, inspector_id,
	inspection_date, inspection_time, crop_types,
	sanitation, pest_presence, compliance, soil_health, infrastructure,
	ST_AsBinary(gps_coordinates::geometry) AS gps_coordinates, gps_unavailable,
	photos, recommendations, follow_up_required, follow_up_date,
	compliance_score, status, created_at, updated_at`

type FarmInspectionRepository struct {
	db *sqlx.DB
}

func NewFarmInspectionRepository(db *sqlx.DB) IFarmInspectionRepository {
	return &FarmInspectionRepository{db: db}
}

func (r *FarmInspectionRepository) Create(ctx context.Context, inspection *models.FarmInspection) error {
	if inspection.ID == uuid.Nil {
		inspection.ID = uuid.New()
	}
	inspection.CreatedAt = time.Now()
	inspection.UpdatedAt = time.Now()

	query := `
		INSERT INTO farm_inspections (
			id, reference_number, booking_id, farm_id, inspector_id,
			inspection_date, inspection_time, crop_types,
			sanitation, pest_presence, compliance, soil_health, infrastructure,
			gps_coordinates, gps_unavailable,
			photos, recommendations, follow_up_required, follow_up_date,
			compliance_score, status, created_at, updated_at
		) VALUES (
			:id, :reference_number, :booking_id, :farm_id, :inspector_id,
			:inspection_date, :inspection_time, :crop_types,
			:sanitation, :pest_presence, :compliance, :soil_health, :infrastructure,
			:gps_coordinates, :gps_unavailable,
			:photos, :recommendations, :follow_up_required, :follow_up_date,
			:compliance_score, :status, :created_at, :updated_at
		)`

	_, err := r.db.NamedExecContext(ctx, query, inspection)
	if err != nil {
		return fmt.Errorf("failed to create farm inspection: %w", err)
	}
	return nil
}

func (r *FarmInspectionRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.FarmInspection, error) {
	var inspection models.FarmInspection
	err := r.db.GetContext(ctx, &inspection,
		"SELECT "+farmInspectionColumns+" FROM farm_inspections WHERE id = $1", id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, &models.NotFoundError{Entity: models.EntityFarmInspection, ID: id.String()}
		}
		return nil, fmt.Errorf("failed to get farm inspection %s: %w", id, err)
	}
	return &inspection, nil
}

func (r *FarmInspectionRepository) GetByReference(ctx context.Context, ref string) (*models.FarmInspection, error) {
	var inspection models.FarmInspection
	err := r.db.GetContext(ctx, &inspection,
		"SELECT "+farmInspectionColumns+" FROM farm_inspections WHERE reference_number = $1", ref)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, &models.NotFoundError{Entity: models.EntityFarmInspection, ID: ref}
		}
		return nil, fmt.Errorf("failed to get farm inspection %s: %w", ref, err)
	}
	return &inspection, nil
}

func (r *FarmInspectionRepository) List(ctx context.Context, status *models.FarmInspectionStatus) ([]models.FarmInspection, error) {
	inspections := []models.FarmInspection{}
	var err error
	if status != nil {
		err = r.db.SelectContext(ctx, &inspections,
			"SELECT "+farmInspectionColumns+" FROM farm_inspections WHERE status = $1 ORDER BY created_at DESC", *status)
	} else {
		err = r.db.SelectContext(ctx, &inspections,
			"SELECT "+farmInspectionColumns+" FROM farm_inspections ORDER BY created_at DESC")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to list farm inspections: %w", err)
	}
	return inspections, nil
}

func (r *FarmInspectionRepository) AppendPhotos(ctx context.Context, id uuid.UUID, urls []string) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE farm_inspections SET photos = photos || $1, updated_at = NOW() WHERE id = $2`,
		pq.StringArray(urls), id)
	if err != nil {
		return fmt.Errorf("failed to append photos to farm inspection %s: %w", id, err)
	}
	return nil
}

func (r *FarmInspectionRepository) Count(ctx context.Context) (int, error) {
	var count int
	if err := r.db.GetContext(ctx, &count, `SELECT COUNT(*) FROM farm_inspections`); err != nil {
		return 0, fmt.Errorf("failed to count farm inspections: %w", err)
	}
	return count, nil
}
