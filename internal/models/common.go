package models

import "time"

// AuditFields are the common persistence audit columns embedded in every row model.
type AuditFields struct {
	CreatedAt     time.Time `db:"created_at"`
	CreatedBy     string    `db:"created_by"`
	LastUpdatedAt time.Time `db:"updated_at"`
	LastUpdatedBy string    `db:"updated_by"`
}
