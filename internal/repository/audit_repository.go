package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/Ezra-Tech-EB/BAHIS/internal/models"
)

type IAuditRepository interface {
	Append(ctx context.Context, entry *models.AuditEntry) error
	ListByEntity(ctx context.Context, entityID uuid.UUID) ([]models.AuditEntry, error)
}

type AuditRepository struct {
	db *sqlx.DB
}

func NewAuditRepository(db *sqlx.DB) IAuditRepository {
	return &AuditRepository{db: db}
}

// The audit log is append-only. There is no update or delete path.
func (r *AuditRepository) Append(ctx context.Context, entry *models.AuditEntry) error {
	_, err := r.db.NamedExecContext(ctx, auditInsertQuery, prepareAuditEntry(entry))
	if err != nil {
		return fmt.Errorf("failed to append audit entry: %w", err)
	}
	return nil
}

func (r *AuditRepository) ListByEntity(ctx context.Context, entityID uuid.UUID) ([]models.AuditEntry, error) {
	entries := []models.AuditEntry{}
	err := r.db.SelectContext(ctx, &entries,
		`SELECT * FROM audit_log WHERE entity_id = $1 ORDER BY timestamp ASC`, entityID)
	if err != nil {
		return nil, fmt.Errorf("failed to list audit entries for %s: %w", entityID, err)
	}
	return entries, nil
}

const auditInsertQuery = `
	INSERT INTO audit_log (
		id, entity_type, entity_id, actor_id, actor_role,
		from_state, to_state, note, timestamp
	) VALUES (
		:id, :entity_type, :entity_id, :actor_id, :actor_role,
		:from_state, :to_state, :note, :timestamp
	)`

func prepareAuditEntry(entry *models.AuditEntry) *models.AuditEntry {
	if entry.ID == uuid.Nil {
		entry.ID = uuid.New()
	}
	if entry.Timestamp.IsZero() {
		entry.Timestamp = time.Now()
	}
	return entry
}

// insertAuditEntry appends within an existing transaction so workflow
// transitions commit state change and audit entry together.
func insertAuditEntry(ctx context.Context, tx *sqlx.Tx, entry *models.AuditEntry) error {
	_, err := tx.NamedExecContext(ctx, auditInsertQuery, prepareAuditEntry(entry))
	if err != nil {
		return fmt.Errorf("failed to append audit entry: %w", err)
	}
	return nil
}
