package repositories

import (
	"context"

	"github.com/tribopay/pix_admin_backend/internal/core/domain"
)

// AuditRepository defines persistence for the append-only audit log.
type AuditRepository interface {
	// SaveAuditLog appends one entry. Entries are never updated or deleted.
	SaveAuditLog(ctx context.Context, entry domain.AuditLog) error

	// ListAuditLogs retrieves a page of entries, newest first. userID filters
	// by actor when non-empty.
	ListAuditLogs(ctx context.Context, limit int, offset int, userID string) ([]domain.AuditLog, error)
}
