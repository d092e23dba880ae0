package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// RecipeIngredient is one line of a recipe: a polymorphic reference into one of
// the three stock tiers. IngredientName and Unit are denormalized copies taken
// at recipe-authoring time so ledger rows stay readable after renames.
type RecipeIngredient struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	RecipeID   uuid.UUID `gorm:"type:uuid;not null;index:idx_recipe_owner"`
	RecipeType string    `gorm:"not null;index:idx_recipe_owner"`
	// IngredientType: "raw" | "semiProcessed" | "purchasedGood"
	IngredientType string          `gorm:"type:varchar(20);not null"`
	IngredientID   uuid.UUID       `gorm:"type:uuid;not null"`
	IngredientName string          `gorm:"not null"`
	Quantity       decimal.Decimal `gorm:"type:decimal(12,3);not null"`
	Unit           string          `gorm:"not null"`
	// Position preserves the authored line order across reads; gen_random_uuid
	// primary keys carry no ordering of their own.
	Position int `gorm:"not null;default:0"`
}

// SemiProcessedRecipe turns raw/semi/purchased stock into one batch of a
// semi-processed item. OutputQuantity is the yield of a single batch (multiplier 1);
// HoldingTimeHours drives the cooked batch's expiry.
type SemiProcessedRecipe struct {
	ID             uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	OutputName     string          `gorm:"uniqueIndex;not null"`
	OutputQuantity decimal.Decimal `gorm:"type:decimal(12,3);not null"`
	OutputUnit     string          `gorm:"not null"`
	HoldingTimeHours float64       `gorm:"not null;default:24"`
	StorageTemp    string
	Level          string
	CreatedAt      time.Time
	UpdatedAt      time.Time

	Ingredients []RecipeIngredient `gorm:"polymorphic:Recipe;polymorphicValue:semi"`
}

// SkuRecipe maps a sellable SKU to the stock it consumes on counter transfer.
// HasRecipe=false marks pre-assembled SKUs that are stocked directly with no
// ingredient consumption — a legitimate variant, not an error.
type SkuRecipe struct {
	ID                   uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	SkuID                uuid.UUID `gorm:"type:uuid;uniqueIndex;not null"`
	HasRecipe            bool      `gorm:"not null;default:true"`
	AssemblyInstructions string
	CreatedAt            time.Time
	UpdatedAt            time.Time

	Ingredients []RecipeIngredient `gorm:"polymorphic:Recipe;polymorphicValue:sku"`

	Sku *SkuItem `gorm:"foreignKey:SkuID"`
}
