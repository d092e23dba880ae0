package dto

import "github.com/shopspring/decimal"

// ─── Raw ingredients ─────────────────────────────────────────────────────────

type CreateRawIngredientRequest struct {
	Name         string          `json:"name" validate:"required,min=2"`
	Unit         string          `json:"unit" validate:"required"`
	CurrentStock decimal.Decimal `json:"current_stock" validate:"min=0"`
	ReorderLevel decimal.Decimal `json:"reorder_level" validate:"min=0"`
	CanReplenish *bool           `json:"can_replenish"`
}

type UpdateRawIngredientRequest struct {
	Unit         *string          `json:"unit"`
	ReorderLevel *decimal.Decimal `json:"reorder_level"`
	CanReplenish *bool            `json:"can_replenish"`
}

// ReplenishRequest adds stock to a raw ingredient or purchased good.
type ReplenishRequest struct {
	Quantity decimal.Decimal `json:"quantity" validate:"required"`
}

type RawIngredientResponse struct {
	ID           string          `json:"id"`
	Name         string          `json:"name"`
	Unit         string          `json:"unit"`
	CurrentStock decimal.Decimal `json:"current_stock"`
	ReorderLevel decimal.Decimal `json:"reorder_level"`
	CanReplenish bool            `json:"can_replenish"`
}

// ─── Purchased goods ─────────────────────────────────────────────────────────

type CreatePurchasedGoodRequest struct {
	Name         string          `json:"name" validate:"required,min=2"`
	Category     string          `json:"category"`
	Unit         string          `json:"unit" validate:"required"`
	CurrentStock decimal.Decimal `json:"current_stock" validate:"min=0"`
	CounterStock decimal.Decimal `json:"counter_stock" validate:"min=0"`
	ReorderLevel decimal.Decimal `json:"reorder_level" validate:"min=0"`
	PrepNotes    *string         `json:"prep_notes"`
}

type PurchasedGoodResponse struct {
	ID           string          `json:"id"`
	Name         string          `json:"name"`
	Category     string          `json:"category"`
	Unit         string          `json:"unit"`
	CurrentStock decimal.Decimal `json:"current_stock"`
	CounterStock decimal.Decimal `json:"counter_stock"`
	// TotalAvailable = warehouse + counter.
	TotalAvailable decimal.Decimal `json:"total_available"`
	ReorderLevel   decimal.Decimal `json:"reorder_level"`
}

// ─── Semi-processed items ────────────────────────────────────────────────────

type SemiBatchDTO struct {
	BatchID   string          `json:"batch_id"`
	Quantity  decimal.Decimal `json:"quantity"`
	CreatedAt string          `json:"created_at"`
	ExpiresAt string          `json:"expires_at"`
}

type SemiProcessedItemResponse struct {
	ID           string          `json:"id"`
	Name         string          `json:"name"`
	Type         string          `json:"type"`
	Unit         string          `json:"unit"`
	CurrentStock decimal.Decimal `json:"current_stock"`
	Batches      []SemiBatchDTO  `json:"batches"`
}

// CreateSemiProcessedItemRequest registers a pre-made ("fixed") item directly;
// "batch" items normally come into existence through cooking.
type CreateSemiProcessedItemRequest struct {
	Name         string          `json:"name" validate:"required,min=2"`
	Type         string          `json:"type" validate:"required,oneof=batch fixed"`
	Unit         string          `json:"unit" validate:"required"`
	CurrentStock decimal.Decimal `json:"current_stock" validate:"min=0"`
}
