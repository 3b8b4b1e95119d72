package domain

import "time"

// Audit actions recorded by the panel. One constant per mutating operation,
// plus the failed-login action used for intrusion review.
const (
	AuditLogin            = "LOGIN"
	AuditLoginFailed      = "LOGIN_FAILED"
	AuditAccountCreated   = "ACCOUNT_CREATED"
	AuditAccountUpdated   = "ACCOUNT_UPDATED"
	AuditAccountDeleted   = "ACCOUNT_DELETED"
	AuditBalanceRefresh   = "BALANCE_REFRESH"
	AuditPixOutCreated    = "PIX_OUT_CREATED"
	AuditPixStatusChecked = "PIX_STATUS_CHECKED"
	AuditPixKeysConsulted = "PIX_KEYS_CONSULTED"
)

// Actor identifies who performed an administrative action and from where.
// UserID may be empty when the actor is unauthenticated or unknown.
type Actor struct {
	UserID    string
	IPAddress string
	UserAgent string
}

// AuditLog is an immutable record of one administrative action. Entries are
// appended and never mutated or deleted.
type AuditLog struct {
	LogID     string         `json:"logID"`
	UserID    string         `json:"userID"` // Empty when the actor is unknown
	Action    string         `json:"action"`
	Entity    string         `json:"entity"`
	EntityID  string         `json:"entityID"` // Empty when no single entity is affected
	IPAddress string         `json:"ipAddress"`
	UserAgent string         `json:"userAgent"`
	Metadata  map[string]any `json:"metadata"`
	CreatedAt time.Time      `json:"createdAt"`
}
