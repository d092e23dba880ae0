package dto

import "github.com/shopspring/decimal"

// SkuAlert flags a SKU whose stall stock reached its low-stock threshold.
type SkuAlert struct {
	SkuID             string `json:"sku_id"`
	Name              string `json:"name"`
	CurrentStallStock int    `json:"current_stall_stock"`
	LowStockThreshold int    `json:"low_stock_threshold"`
}

// IngredientAlert flags a raw ingredient at or below its reorder level.
// Severity is "critical" when the ingredient cannot be replenished mid-event,
// "warning" otherwise.
type IngredientAlert struct {
	IngredientID string          `json:"ingredient_id"`
	Name         string          `json:"name"`
	CurrentStock decimal.Decimal `json:"current_stock"`
	ReorderLevel decimal.Decimal `json:"reorder_level"`
	Severity     string          `json:"severity"`
}

type AlertsResponse struct {
	Skus        []SkuAlert        `json:"skus"`
	Ingredients []IngredientAlert `json:"ingredients"`
}
