package services

import (
	"context"

	"github.com/google/uuid"

	"github.com/Ezra-Tech-EB/BAHIS/internal/auth"
	"github.com/Ezra-Tech-EB/BAHIS/internal/models"
	"github.com/Ezra-Tech-EB/BAHIS/internal/repository"
)

// AuditService exposes the append-only transition history of a record.
type AuditService struct {
	auditRepo repository.IAuditRepository
}

func NewAuditService(auditRepo repository.IAuditRepository) *AuditService {
	return &AuditService{auditRepo: auditRepo}
}

// Trail returns every transition recorded against the entity, oldest first.
func (s *AuditService) Trail(ctx context.Context, actor models.Actor, entityID uuid.UUID) ([]models.AuditEntry, error) {
	if err := auth.Require(actor, auth.ResourceAnalytics, auth.ActionRead); err != nil {
		return nil, err
	}
	return s.auditRepo.ListByEntity(ctx, entityID)
}
