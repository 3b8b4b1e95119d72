package dto

import (
	"time"

	"github.com/tribopay/pix_admin_backend/internal/core/domain"
)

// AuditLogResponse defines the data returned for one audit entry.
type AuditLogResponse struct {
	LogID     string         `json:"logID"`
	UserID    string         `json:"userID,omitempty"`
	Action    string         `json:"action"`
	Entity    string         `json:"entity"`
	EntityID  string         `json:"entityID,omitempty"`
	IPAddress string         `json:"ipAddress"`
	UserAgent string         `json:"userAgent"`
	Metadata  map[string]any `json:"metadata,omitempty"`
	CreatedAt time.Time      `json:"createdAt"`
}

// ToListAuditLogResponse converts audit entries to response DTOs.
func ToListAuditLogResponse(entries []domain.AuditLog) []AuditLogResponse {
	res := make([]AuditLogResponse, len(entries))
	for i, e := range entries {
		res[i] = AuditLogResponse{
			LogID:     e.LogID,
			UserID:    e.UserID,
			Action:    e.Action,
			Entity:    e.Entity,
			EntityID:  e.EntityID,
			IPAddress: e.IPAddress,
			UserAgent: e.UserAgent,
			Metadata:  e.Metadata,
			CreatedAt: e.CreatedAt,
		}
	}
	return res
}

// ListAuditParams defines query parameters for the audit history.
type ListAuditParams struct {
	Page   int    `form:"page,default=1"`
	Limit  int    `form:"limit,default=50"`
	UserID string `form:"userId"`
}
