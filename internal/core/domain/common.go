package domain

import "time"

// AuditFields holds standard audit columns shared by users and bank accounts.
// CreatedBy/LastUpdatedBy hold the acting user's ID, or "seed" for rows
// created by the install command.
type AuditFields struct {
	CreatedAt     time.Time `json:"createdAt"`
	CreatedBy     string    `json:"createdBy"`
	LastUpdatedAt time.Time `json:"lastUpdatedAt"`
	LastUpdatedBy string    `json:"lastUpdatedBy"`
}
