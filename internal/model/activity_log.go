package model

import (
	"time"

	"github.com/google/uuid"
)

// ActivityLog is the audit trail row behind the fire-and-forget sink. Writes
// are best-effort: a failed audit write never aborts the stock operation that
// emitted it.
type ActivityLog struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Action      string    `gorm:"not null;index"`
	Category    string    `gorm:"not null;index"` // "kitchen" | "counter" | "sales" | "inventory"
	Description string    `gorm:"not null"`
	// Details holds the JSON-encoded event payload.
	Details   string `gorm:"type:text"`
	Actor     string `gorm:"not null;index"`
	CreatedAt time.Time `gorm:"index"`
}
