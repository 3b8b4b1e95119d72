package services

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/tribopay/pix_admin_backend/internal/core/domain"
	portsrepo "github.com/tribopay/pix_admin_backend/internal/core/ports/repositories"
	portssvc "github.com/tribopay/pix_admin_backend/internal/core/ports/services"
)

// auditService writes the administrative audit trail. Recording is
// best-effort: a failed insert is logged and swallowed so the action that
// triggered it still completes.
type auditService struct {
	BaseService
	auditRepo portsrepo.AuditRepository
}

func NewAuditService(auditRepo portsrepo.AuditRepository) portssvc.AuditSvc {
	return &auditService{auditRepo: auditRepo}
}

var _ portssvc.AuditSvc = (*auditService)(nil)

// Record appends one audit entry describing an administrative action.
func (s *auditService) Record(ctx context.Context, actor domain.Actor, action, entity, entityID string, metadata map[string]any) {
	entry := domain.AuditLog{
		LogID:     uuid.NewString(),
		UserID:    actor.UserID,
		Action:    action,
		Entity:    entity,
		EntityID:  entityID,
		IPAddress: actor.IPAddress,
		UserAgent: actor.UserAgent,
		Metadata:  metadata,
		CreatedAt: time.Now(),
	}

	if err := s.auditRepo.SaveAuditLog(ctx, entry); err != nil {
		s.LogError(ctx, err, "Failed to record audit entry",
			slog.String("action", action),
			slog.String("entity", entity),
			slog.String("entity_id", entityID))
	}
}

// ListAuditLogs retrieves a page of entries, newest first.
func (s *auditService) ListAuditLogs(ctx context.Context, limit int, offset int, userID string) ([]domain.AuditLog, error) {
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}
	return s.auditRepo.ListAuditLogs(ctx, limit, offset, userID)
}
