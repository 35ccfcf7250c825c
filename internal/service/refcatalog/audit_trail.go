package refcatalog

import (
	"context"

	"github.com/bhashasetu/corpus-catalog/internal/domain"
)

// GetAuditTrail returns the mutation history of one entity, newest first.
func (s *Service) GetAuditTrail(ctx context.Context, entityType domain.EntityType, uid int64, limit int) ([]domain.AuditRecord, error) {
	if uid <= 0 {
		return nil, domain.NewValidationError("uid", "required")
	}
	return s.audit.GetByEntity(ctx, entityType, uid, limit)
}

// GetActorTrail returns the mutations performed by one caller, newest first.
func (s *Service) GetActorTrail(ctx context.Context, actor string, limit, offset int) ([]domain.AuditRecord, error) {
	if actor == "" {
		return nil, domain.NewValidationError("actor", "required")
	}
	return s.audit.GetByActor(ctx, actor, limit, offset)
}
