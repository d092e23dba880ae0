package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Transaction is one checkout event at the stall counter.
// TotalAmount and ItemCount are recomputed from Items at write time — they are
// never trusted from caller input.
type Transaction struct {
	ID uuid.UUID `gorm:"type:uuid;primaryKey"`
	// TransactionID is the client-facing identifier; defaults to ID when the
	// client does not supply one (offline tills send their own).
	TransactionID   string          `gorm:"uniqueIndex;not null"`
	TotalAmount     decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	ItemCount       int             `gorm:"not null"`
	TransactionType string          `gorm:"type:varchar(20);not null"` // "single_item" | "cart"
	PaymentMethod   string          `gorm:"type:varchar(20);not null;default:'cash'"`
	CustomerName    *string
	Actor           string `gorm:"not null"`
	CreatedAt       time.Time

	Items []TransactionItem `gorm:"foreignKey:TransactionRef;references:ID"`
}

// TransactionItem is one sold line. UnitPrice is captured at sale time; later
// price changes never alter historical transactions.
type TransactionItem struct {
	ID             uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	TransactionRef uuid.UUID       `gorm:"type:uuid;not null;index"`
	SkuID          uuid.UUID       `gorm:"type:uuid;not null;index"`
	SkuName        string          `gorm:"not null"`
	Quantity       int             `gorm:"not null"`
	UnitPrice      decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	ItemTotal      decimal.Decimal `gorm:"type:decimal(12,2);not null"`
}
