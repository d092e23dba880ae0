package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// IngredientUsage is one ledger line: exactly what a cook or transfer deducted,
// post-scaling. Rows attach polymorphically to BatchCookingLog or TransferLog
// and are never mutated after creation.
type IngredientUsage struct {
	ID             uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	LogID          uuid.UUID       `gorm:"type:uuid;not null;index:idx_usage_owner"`
	LogType        string          `gorm:"not null;index:idx_usage_owner"`
	IngredientType string          `gorm:"type:varchar(20);not null"`
	IngredientID   uuid.UUID       `gorm:"type:uuid;not null"`
	IngredientName string          `gorm:"not null"`
	Quantity       decimal.Decimal `gorm:"type:decimal(12,3);not null"`
	Unit           string          `gorm:"not null"`
}

// BatchCookingLog is the append-only audit of one cook: which batch was
// produced and exactly which stock was consumed to produce it.
type BatchCookingLog struct {
	ID               uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	BatchID          string          `gorm:"uniqueIndex;not null"`
	RecipeID         uuid.UUID       `gorm:"type:uuid;not null;index"`
	OutputName       string          `gorm:"not null"`
	QuantityProduced decimal.Decimal `gorm:"type:decimal(12,3);not null"`
	Unit             string          `gorm:"not null"`
	Multiplier       decimal.Decimal `gorm:"type:decimal(8,3);not null"`
	ExpiresAt        time.Time
	Actor            string `gorm:"not null"`
	CreatedAt        time.Time

	IngredientsUsed []IngredientUsage `gorm:"polymorphic:Log;polymorphicValue:cook"`
}

func (BatchCookingLog) TableName() string { return "batch_cooking_logs" }

// TransferLog is the append-only audit of one send-to-counter. Status is always
// "completed": counter stock updates are synchronous; there is no pending /
// received workflow.
type TransferLog struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	SkuID     uuid.UUID `gorm:"type:uuid;not null;index"`
	SkuName   string    `gorm:"not null"`
	Quantity  int       `gorm:"not null"`
	HasRecipe bool      `gorm:"not null;default:true"`
	Status    string    `gorm:"type:varchar(20);not null;default:'completed'"`
	Actor     string    `gorm:"not null"`
	CreatedAt time.Time

	IngredientsUsed []IngredientUsage `gorm:"polymorphic:Log;polymorphicValue:transfer"`
}
