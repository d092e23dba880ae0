package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// RawIngredient is the bottom tier of the stock hierarchy: unprocessed goods
// consumed by kitchen recipes (flour, chicken, oil). Stock is a single scalar
// pool in the ingredient's unit.
type RawIngredient struct {
	ID           uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Name         string          `gorm:"uniqueIndex;not null"`
	Unit         string          `gorm:"not null;default:'kg'"`
	CurrentStock decimal.Decimal `gorm:"type:decimal(12,3);not null;default:0"`
	ReorderLevel decimal.Decimal `gorm:"type:decimal(12,3);not null;default:0"`
	// CanReplenish=false means no supplier run is possible mid-event —
	// running out is terminal, so low-stock alerts are critical.
	CanReplenish bool `gorm:"not null;default:true"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
