package dto

import "github.com/shopspring/decimal"

// ─── SKUs ────────────────────────────────────────────────────────────────────

type CreateSkuRequest struct {
	Name              string          `json:"name" validate:"required,min=2"`
	TargetSkus        int             `json:"target_skus" validate:"min=0"`
	LowStockThreshold int             `json:"low_stock_threshold" validate:"min=0"`
	Price             decimal.Decimal `json:"price" validate:"required"`
	Category          string          `json:"category"`
	RequiresAssembly  bool            `json:"requires_assembly"`
	AssemblyLocation  string          `json:"assembly_location"`
}

type UpdateSkuRequest struct {
	TargetSkus        *int             `json:"target_skus"`
	LowStockThreshold *int             `json:"low_stock_threshold"`
	Price             *decimal.Decimal `json:"price"`
	Category          *string          `json:"category"`
	RequiresAssembly  *bool            `json:"requires_assembly"`
	AssemblyLocation  *string          `json:"assembly_location"`
}

type SkuResponse struct {
	ID                string          `json:"id"`
	Name              string          `json:"name"`
	TargetSkus        int             `json:"target_skus"`
	CurrentStallStock int             `json:"current_stall_stock"`
	LowStockThreshold int             `json:"low_stock_threshold"`
	Price             decimal.Decimal `json:"price"`
	Category          string          `json:"category"`
	RequiresAssembly  bool            `json:"requires_assembly"`
	AssemblyLocation  string          `json:"assembly_location"`
}

// ─── Recipes ─────────────────────────────────────────────────────────────────

type RecipeIngredientRequest struct {
	IngredientType string          `json:"ingredient_type" validate:"required,oneof=raw semiProcessed purchasedGood"`
	IngredientID   string          `json:"ingredient_id"   validate:"required,uuid"`
	Quantity       decimal.Decimal `json:"quantity"        validate:"required"`
}

type CreateSemiRecipeRequest struct {
	OutputName       string                    `json:"output_name" validate:"required,min=2"`
	OutputQuantity   decimal.Decimal           `json:"output_quantity" validate:"required"`
	OutputUnit       string                    `json:"output_unit" validate:"required"`
	HoldingTimeHours float64                   `json:"holding_time_hours" validate:"required,gt=0"`
	StorageTemp      string                    `json:"storage_temp"`
	Level            string                    `json:"level"`
	Ingredients      []RecipeIngredientRequest `json:"ingredients" validate:"required,min=1,dive"`
}

type CreateSkuRecipeRequest struct {
	SkuID                string                    `json:"sku_id" validate:"required,uuid"`
	HasRecipe            *bool                     `json:"has_recipe"`
	AssemblyInstructions string                    `json:"assembly_instructions"`
	// Ingredients may be empty when has_recipe=false (pre-assembled SKU).
	Ingredients []RecipeIngredientRequest `json:"ingredients" validate:"omitempty,dive"`
}

type RecipeIngredientResponse struct {
	IngredientType string          `json:"ingredient_type"`
	IngredientID   string          `json:"ingredient_id"`
	IngredientName string          `json:"ingredient_name"`
	Quantity       decimal.Decimal `json:"quantity"`
	Unit           string          `json:"unit"`
}

type SemiRecipeResponse struct {
	ID               string                     `json:"id"`
	OutputName       string                     `json:"output_name"`
	OutputQuantity   decimal.Decimal            `json:"output_quantity"`
	OutputUnit       string                     `json:"output_unit"`
	HoldingTimeHours float64                    `json:"holding_time_hours"`
	StorageTemp      string                     `json:"storage_temp"`
	Level            string                     `json:"level"`
	Ingredients      []RecipeIngredientResponse `json:"ingredients"`
}

type SkuRecipeResponse struct {
	ID                   string                     `json:"id"`
	SkuID                string                     `json:"sku_id"`
	HasRecipe            bool                       `json:"has_recipe"`
	AssemblyInstructions string                     `json:"assembly_instructions"`
	Ingredients          []RecipeIngredientResponse `json:"ingredients"`
}
