package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/Ezra-Tech-EB/BAHIS/internal/models"
)

type IBookingRepository interface {
	Create(ctx context.Context, booking *models.Booking) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Booking, error)
	GetBySubmissionToken(ctx context.Context, token string) (*models.Booking, error)
	List(ctx context.Context, status *models.BookingStatus) ([]models.Booking, error)
	// UpdateTransition persists the booking's new state and appends the audit
	// entry in a single transaction; a partial write is never observable. The
	// write only lands while the stored status still equals from, so two
	// concurrent transitions out of the same state cannot both commit.
	UpdateTransition(ctx context.Context, booking *models.Booking, from models.BookingStatus, entry *models.AuditEntry) error
	CountByStatus(ctx context.Context, status models.BookingStatus) (int, error)
}

type BookingRepository struct {
	db *sqlx.DB
}

func NewBookingRepository(db *sqlx.DB) IBookingRepository {
	return &BookingRepository{db: db}
}

func (r *BookingRepository) Create(ctx context.Context, booking *models.Booking) error {
	if booking.ID == uuid.Nil {
		booking.ID = uuid.New()
	}
	booking.CreatedAt = time.Now()
	booking.UpdatedAt = time.Now()

	query := `
		INSERT INTO bookings (
			id, reference_number, submission_token, contact, inspection_type,
			preferred_date, preferred_time, alternative_date, alternative_time,
			urgency, import_details, farm_details, special_requirements,
			additional_notes, status, assigned_inspector, rejection_reason,
			inspection_ref, created_at, updated_at
		) VALUES (
			:id, :reference_number, :submission_token, :contact, :inspection_type,
			:preferred_date, :preferred_time, :alternative_date, :alternative_time,
			:urgency, :import_details, :farm_details, :special_requirements,
			:additional_notes, :status, :assigned_inspector, :rejection_reason,
			:inspection_ref, :created_at, :updated_at
		)`

	_, err := r.db.NamedExecContext(ctx, query, booking)
	if err != nil {
		return fmt.Errorf("failed to create booking: %w", err)
	}
	return nil
}

func (r *BookingRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Booking, error) {
	var booking models.Booking
	err := r.db.GetContext(ctx, &booking, `SELECT * FROM bookings WHERE id = $1`, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, &models.NotFoundError{Entity: models.EntityBooking, ID: id.String()}
		}
		return nil, fmt.Errorf("failed to get booking %s: %w", id, err)
	}
	return &booking, nil
}

func (r *BookingRepository) GetBySubmissionToken(ctx context.Context, token string) (*models.Booking, error) {
	var booking models.Booking
	err := r.db.GetContext(ctx, &booking, `SELECT * FROM bookings WHERE submission_token = $1`, token)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, &models.NotFoundError{Entity: models.EntityBooking, ID: token}
		}
		return nil, fmt.Errorf("failed to get booking by token: %w", err)
	}
	return &booking, nil
}

func (r *BookingRepository) List(ctx context.Context, status *models.BookingStatus) ([]models.Booking, error) {
	bookings := []models.Booking{}
	var err error
	if status != nil {
		err = r.db.SelectContext(ctx, &bookings,
			`SELECT * FROM bookings WHERE status = $1 ORDER BY created_at DESC`, *status)
	} else {
		err = r.db.SelectContext(ctx, &bookings,
			`SELECT * FROM bookings ORDER BY created_at DESC`)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to list bookings: %w", err)
	}
	return bookings, nil
}

func (r *BookingRepository) UpdateTransition(ctx context.Context, booking *models.Booking, from models.BookingStatus, entry *models.AuditEntry) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	booking.UpdatedAt = time.Now()
	res, err := tx.ExecContext(ctx, `
		UPDATE bookings SET
			status = $1,
			assigned_inspector = $2,
			rejection_reason = $3,
			inspection_ref = $4,
			updated_at = $5
		WHERE id = $6 AND status = $7`,
		booking.Status, booking.AssignedTo, booking.RejectionReason,
		booking.InspectionRef, booking.UpdatedAt, booking.ID, from)
	if err != nil {
		return fmt.Errorf("failed to update booking %s: %w", booking.ID, err)
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read affected rows for booking %s: %w", booking.ID, err)
	}
	if rows == 0 {
		// Another transition landed since the booking was read.
		return &models.InvalidTransition{
			Entity: models.EntityBooking,
			From:   string(from),
			To:     string(booking.Status),
		}
	}

	if err := insertAuditEntry(ctx, tx, entry); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit booking transition: %w", err)
	}

	slog.Info("booking transition persisted",
		"booking_id", booking.ID,
		"from", entry.FromState,
		"to", entry.ToState)
	return nil
}

func (r *BookingRepository) CountByStatus(ctx context.Context, status models.BookingStatus) (int, error) {
	var count int
	err := r.db.GetContext(ctx, &count, `SELECT COUNT(*) FROM bookings WHERE status = $1`, status)
	if err != nil {
		return 0, fmt.Errorf("failed to count bookings: %w", err)
	}
	return count, nil
}
