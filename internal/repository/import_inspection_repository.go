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

type IImportInspectionRepository interface {
	Create(ctx context.Context, inspection *models.ImportInspection) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.ImportInspection, error)
	GetByReference(ctx context.Context, ref string) (*models.ImportInspection, error)
	List(ctx context.Context, status *models.ImportInspectionStatus) ([]models.ImportInspection, error)
	// UpdateStatus persists the status and audit entry in one transaction.
	// The write only lands while the stored status still equals from.
	UpdateStatus(ctx context.Context, inspection *models.ImportInspection, from models.ImportInspectionStatus, entry *models.AuditEntry) error
	AppendPhotos(ctx context.Context, id uuid.UUID, urls []string) error
	Count(ctx context.Context) (int, error)
}

const importInspectionColumns = `
	id, reference_number, booking_id, inspector_id,
	inspection_date, inspection_time, location,
	ST_AsBinary(gps_coordinates::geometry) AS gps_coordinates, gps_unavailable,
	consignment_details, commodities, compliance_checks,
	phytosanitary_actions, photos, notes, status, status_override,
	created_at, updated_at`

type ImportInspectionRepository struct {
	db *sqlx.DB
}

func NewImportInspectionRepository(db *sqlx.DB) IImportInspectionRepository {
	return &ImportInspectionRepository{db: db}
}

func (r *ImportInspectionRepository) Create(ctx context.Context, inspection *models.ImportInspection) error {
	if inspection.ID == uuid.Nil {
		inspection.ID = uuid.New()
	}
	inspection.CreatedAt = time.Now()
	inspection.UpdatedAt = time.Now()

	query := `
		INSERT INTO import_inspections (
			id, reference_number, booking_id, inspector_id,
			inspection_date, inspection_time, location,
			gps_coordinates, gps_unavailable,
			consignment_details, commodities, compliance_checks,
			phytosanitary_actions, photos, notes, status, status_override,
			created_at, updated_at
		) VALUES (
			:id, :reference_number, :booking_id, :inspector_id,
			:inspection_date, :inspection_time, :location,
			:gps_coordinates, :gps_unavailable,
			:consignment_details, :commodities, :compliance_checks,
			:phytosanitary_actions, :photos, :notes, :status, :status_override,
			:created_at, :updated_at
		)`

	_, err := r.db.NamedExecContext(ctx, query, inspection)
	if err != nil {
		return fmt.Errorf("failed to create import inspection: %w", err)
	}
	return nil
}

func (r *ImportInspectionRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.ImportInspection, error) {
	var inspection models.ImportInspection
	err := r.db.GetContext(ctx, &inspection,
		"SELECT "+importInspectionColumns+" FROM import_inspections WHERE id = $1", id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, &models.NotFoundError{Entity: models.EntityImportInspection, ID: id.String()}
		}
		return nil, fmt.Errorf("failed to get import inspection %s: %w", id, err)
	}
	return &inspection, nil
}

func (r *ImportInspectionRepository) GetByReference(ctx context.Context, ref string) (*models.ImportInspection, error) {
	var inspection models.ImportInspection
	err := r.db.GetContext(ctx, &inspection,
		"SELECT "+importInspectionColumns+" FROM import_inspections WHERE reference_number = $1", ref)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, &models.NotFoundError{Entity: models.EntityImportInspection, ID: ref}
		}
		return nil, fmt.Errorf("failed to get import inspection %s: %w", ref, err)
	}
	return &inspection, nil
}

func (r *ImportInspectionRepository) List(ctx context.Context, status *models.ImportInspectionStatus) ([]models.ImportInspection, error) {
	inspections := []models.ImportInspection{}
	var err error
	if status != nil {
		err = r.db.SelectContext(ctx, &inspections,
			"SELECT "+importInspectionColumns+" FROM import_inspections WHERE status = $1 ORDER BY created_at DESC", *status)
	} else {
		err = r.db.SelectContext(ctx, &inspections,
			"SELECT "+importInspectionColumns+" FROM import_inspections ORDER BY created_at DESC")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to list import inspections: %w", err)
	}
	return inspections, nil
}

func (r *ImportInspectionRepository) UpdateStatus(ctx context.Context, inspection *models.ImportInspection, from models.ImportInspectionStatus, entry *models.AuditEntry) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	inspection.UpdatedAt = time.Now()
	res, err := tx.ExecContext(ctx, `
		UPDATE import_inspections SET
			status = $1,
			status_override = $2,
			updated_at = $3
		WHERE id = $4 AND status = $5`,
		inspection.Status, inspection.StatusOverride, inspection.UpdatedAt, inspection.ID, from)
	if err != nil {
		return fmt.Errorf("failed to update import inspection %s: %w", inspection.ID, err)
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read affected rows for import inspection %s: %w", inspection.ID, err)
	}
	if rows == 0 {
		return &models.InvalidTransition{
			Entity: models.EntityImportInspection,
			From:   string(from),
			To:     string(inspection.Status),
		}
	}

	if err := insertAuditEntry(ctx, tx, entry); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit import inspection status: %w", err)
	}
	return nil
}

func (r *ImportInspectionRepository) AppendPhotos(ctx context.Context, id uuid.UUID, urls []string) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE import_inspections SET photos = photos || $1, updated_at = NOW() WHERE id = $2`,
		pq.StringArray(urls), id)
	if err != nil {
		return fmt.Errorf("failed to append photos to import inspection %s: %w", id, err)
	}
	return nil
}

func (r *ImportInspectionRepository) Count(ctx context.Context) (int, error) {
	var count int
	if err := r.db.GetContext(ctx, &count, `SELECT COUNT(*) FROM import_inspections`); err != nil {
		return 0, fmt.Errorf("failed to count import inspections: %w", err)
	}
	return count, nil
}
