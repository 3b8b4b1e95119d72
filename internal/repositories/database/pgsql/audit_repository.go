package pgsql

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/tribopay/pix_admin_backend/internal/core/domain"
	portsrepo "github.com/tribopay/pix_admin_backend/internal/core/ports/repositories"
	"github.com/tribopay/pix_admin_backend/internal/models"
)

type PgxAuditRepository struct {
	pool *pgxpool.Pool
}

// newPgxAuditRepository creates a new repository for the append-only audit log.
func newPgxAuditRepository(pool *pgxpool.Pool) portsrepo.AuditRepository {
	return &PgxAuditRepository{pool: pool}
}

var _ portsrepo.AuditRepository = (*PgxAuditRepository)(nil)

// SaveAuditLog appends one entry. There are no update or delete paths.
func (r *PgxAuditRepository) SaveAuditLog(ctx context.Context, entry domain.AuditLog) error {
	metadata, err := json.Marshal(entry.Metadata)
	if err != nil {
		return fmt.Errorf("failed to encode audit metadata: %w", err)
	}

	var userID, entityID sql.NullString
	if entry.UserID != "" {
		userID = sql.NullString{String: entry.UserID, Valid: true}
	}
	if entry.EntityID != "" {
		entityID = sql.NullString{String: entry.EntityID, Valid: true}
	}

	query := `
		INSERT INTO audit_logs (log_id, user_id, action, entity, entity_id, ip_address, user_agent, metadata, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9);
	`
	_, err = r.pool.Exec(ctx, query,
		entry.LogID,
		userID,
		entry.Action,
		entry.Entity,
		entityID,
		entry.IPAddress,
		entry.UserAgent,
		metadata,
		entry.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to save audit log: %w", err)
	}
	return nil
}

// ListAuditLogs retrieves a page of entries, newest first, optionally
// filtered by actor.
func (r *PgxAuditRepository) ListAuditLogs(ctx context.Context, limit int, offset int, userID string) ([]domain.AuditLog, error) {
	query, args := auditListQuery(limit, offset, userID)
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list audit logs: %w", err)
	}
	defer rows.Close()

	entries := make([]domain.AuditLog, 0)
	for rows.Next() {
		var m models.AuditLog
		if err := rows.Scan(&m.LogID, &m.UserID, &m.Action, &m.Entity, &m.EntityID, &m.IPAddress, &m.UserAgent, &m.Metadata, &m.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan audit log row: %w", err)
		}
		entry := domain.AuditLog{
			LogID:     m.LogID,
			UserID:    m.UserID.String,
			Action:    m.Action,
			Entity:    m.Entity,
			EntityID:  m.EntityID.String,
			IPAddress: m.IPAddress,
			UserAgent: m.UserAgent,
			CreatedAt: m.CreatedAt,
		}
		if len(m.Metadata) > 0 {
			if err := json.Unmarshal(m.Metadata, &entry.Metadata); err != nil {
				return nil, fmt.Errorf("failed to decode audit metadata: %w", err)
			}
		}
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating audit log rows: %w", err)
	}
	return entries, nil
}

// auditListQuery builds the paged history query. The actor filter is only
// added when a user ID is given, and user_id is compared as text: the column
// is uuid, and a parameter first typed as text by an empty-string comparison
// would make the whole statement fail to plan.
func auditListQuery(limit, offset int, userID string) (string, []any) {
	query := `
		SELECT log_id, user_id, action, entity, entity_id, ip_address, user_agent, metadata, created_at
		FROM audit_logs`
	args := []any{limit, offset}
	if userID != "" {
		query += `
		WHERE user_id::text = $3`
		args = append(args, userID)
	}
	query += `
		ORDER BY created_at DESC
		LIMIT $1 OFFSET $2;`
	return query, args
}
