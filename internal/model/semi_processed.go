package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// SemiProcessedItem is the middle tier: kitchen-cooked (type "batch") or
// pre-made (type "fixed") stock that perishes. CurrentStock must always equal
// the sum of the quantities of its live batches; zero-quantity batches are
// deleted rather than kept at 0.
type SemiProcessedItem struct {
	ID           uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Name         string          `gorm:"uniqueIndex;not null"`
	Type         string          `gorm:"type:varchar(10);not null;default:'batch'"` // "batch" | "fixed"
	Unit         string          `gorm:"not null;default:'kg'"`
	CurrentStock decimal.Decimal `gorm:"type:decimal(12,3);not null;default:0"`
	CreatedAt    time.Time
	UpdatedAt    time.Time

	Batches []SemiBatch `gorm:"foreignKey:ItemID"`
}

// SemiBatch is one dated, perishable production run of a semi-processed item.
// Consumable only while now < ExpiresAt; consumed oldest-first (FIFO).
type SemiBatch struct {
	ID       uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	ItemID   uuid.UUID `gorm:"type:uuid;not null;index"`
	// BatchID is the human-facing identifier printed on kitchen labels.
	// Unique across the whole store, not just within one item.
	BatchID   string          `gorm:"uniqueIndex;not null"`
	Quantity  decimal.Decimal `gorm:"type:decimal(12,3);not null"`
	CreatedAt time.Time       `gorm:"index"`
	ExpiresAt time.Time       `gorm:"index"`
}

func (SemiBatch) TableName() string { return "semi_batches" }
