package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// SkuItem is a sellable product at the stall counter. CurrentStallStock is
// incremented by counter transfers and decremented by sales; it must never go
// negative.
type SkuItem struct {
	ID   uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Name string    `gorm:"uniqueIndex;not null"`
	// TargetSkus is the planned total for the event, used by planning views only.
	TargetSkus        int             `gorm:"not null;default:0"`
	CurrentStallStock int             `gorm:"not null;default:0"`
	LowStockThreshold int             `gorm:"not null;default:5"`
	Price             decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	Category          string          `gorm:"index"`
	RequiresAssembly  bool            `gorm:"not null;default:false"`
	AssemblyLocation  string
	CreatedAt         time.Time
	UpdatedAt         time.Time
}
