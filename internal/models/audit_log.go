package models

import (
	"database/sql"
	"encoding/json"
	"time"
)

// AuditLog is the DB representation of one administrative action. Rows are
// insert-only.
type AuditLog struct {
	LogID     string          `db:"log_id"`
	UserID    sql.NullString  `db:"user_id"`
	Action    string          `db:"action"`
	Entity    string          `db:"entity"`
	EntityID  sql.NullString  `db:"entity_id"`
	IPAddress string          `db:"ip_address"`
	UserAgent string          `db:"user_agent"`
	Metadata  json.RawMessage `db:"metadata"`
	CreatedAt time.Time       `db:"created_at"`
}
