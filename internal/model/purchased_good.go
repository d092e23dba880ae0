package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// PurchasedGood is ready-to-use stock bought from suppliers (buns, cups, sauce
// sachets). It lives in two independent pools: CurrentStock at the warehouse
// and CounterStock at the assembly counter. Total available is the sum of both;
// consumption drains CounterStock first and falls back to the warehouse for the
// remainder.
type PurchasedGood struct {
	ID           uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Name         string          `gorm:"uniqueIndex;not null"`
	Category     string          `gorm:"index"`
	Unit         string          `gorm:"not null;default:'pcs'"`
	CurrentStock decimal.Decimal `gorm:"type:decimal(12,3);not null;default:0"`
	CounterStock decimal.Decimal `gorm:"type:decimal(12,3);not null;default:0"`
	ReorderLevel decimal.Decimal `gorm:"type:decimal(12,3);not null;default:0"`
	PrepNotes    *string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
