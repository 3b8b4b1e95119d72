package services

import (
	"context"

	"github.com/tribopay/pix_admin_backend/internal/core/domain"
)

// AuditSvc is the best-effort audit side channel. Record never returns an
// error: persistence failures are logged internally and must not abort the
// caller's operation.
type AuditSvc interface {
	// Record appends one audit entry describing an administrative action.
	Record(ctx context.Context, actor domain.Actor, action, entity, entityID string, metadata map[string]any)

	// ListAuditLogs retrieves a page of entries, newest first, optionally
	// filtered by actor.
	ListAuditLogs(ctx context.Context, limit int, offset int, userID string) ([]domain.AuditLog, error)
}
