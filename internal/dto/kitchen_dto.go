package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// ─── Requests ────────────────────────────────────────────────────────────────

// CookBatchRequest triggers one kitchen batch-cook of a semi-processed recipe.
type CookBatchRequest struct {
	RecipeID string `json:"recipe_id" validate:"required,uuid"`
	// Multiplier scales the recipe; fractional values are allowed (0.5 = half batch).
	Multiplier decimal.Decimal `json:"multiplier" validate:"required"`
}

// AvailabilityQuery is bound from the query string of GET /v1/kitchen/availability.
// Exactly one of recipe_id / sku_id must be set.
type AvailabilityQuery struct {
	RecipeID string `form:"recipe_id" validate:"omitempty,uuid"`
	SkuID    string `form:"sku_id"    validate:"omitempty,uuid"`
	Quantity string `form:"quantity"` // multiplier for recipes, unit count for SKUs; default 1
}

// ─── Responses ───────────────────────────────────────────────────────────────

type IngredientUsageDTO struct {
	IngredientType string          `json:"ingredient_type"`
	IngredientID   string          `json:"ingredient_id"`
	IngredientName string          `json:"ingredient_name"`
	Quantity       decimal.Decimal `json:"quantity"`
	Unit           string          `json:"unit"`
}

type CookBatchResponse struct {
	BatchID          string               `json:"batch_id"`
	OutputName       string               `json:"output_name"`
	QuantityProduced decimal.Decimal      `json:"quantity_produced"`
	Unit             string               `json:"unit"`
	ExpiresAt        time.Time            `json:"expires_at"`
	IngredientsUsed  []IngredientUsageDTO `json:"ingredients_used"`
}

// IngredientAvailabilityDTO is one line of an availability breakdown.
type IngredientAvailabilityDTO struct {
	IngredientType string          `json:"ingredient_type"`
	IngredientName string          `json:"ingredient_name"`
	Unit           string          `json:"unit"`
	Required       decimal.Decimal `json:"required"`
	Available      decimal.Decimal `json:"available"`
	Expired        decimal.Decimal `json:"expired"`
	IsAvailable    bool            `json:"is_available"`
}

type AvailabilityResponse struct {
	AllAvailable bool                        `json:"all_available"`
	Ingredients  []IngredientAvailabilityDTO `json:"ingredients"`
}

// SweepItemResult reports one item's expired-batch removals.
type SweepItemResult struct {
	ItemName        string          `json:"item_name"`
	BatchesRemoved  int             `json:"batches_removed"`
	QuantityRemoved decimal.Decimal `json:"quantity_removed"`
}

type SweepResponse struct {
	ItemsAffected   int               `json:"items_affected"`
	BatchesRemoved  int               `json:"batches_removed"`
	QuantityRemoved decimal.Decimal   `json:"quantity_removed"`
	Details         []SweepItemResult `json:"details"`
}
