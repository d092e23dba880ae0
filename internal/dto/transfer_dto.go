package dto

// SendToCounterRequest moves finished SKUs to the stall counter, consuming the
// SKU recipe's ingredients when one exists.
type SendToCounterRequest struct {
	SkuID    string `json:"sku_id"   validate:"required,uuid"`
	Quantity int    `json:"quantity" validate:"required,min=1"`
}

type TransferResponse struct {
	TransferID string `json:"transfer_id,omitempty"`
	SkuName    string `json:"sku_name"`
	Quantity   int    `json:"quantity"`
	// CounterStock is the SKU's stall stock after the transfer.
	CounterStock int  `json:"counter_stock"`
	HasRecipe    bool `json:"has_recipe"`
	Status       string `json:"status,omitempty"`
	IngredientsUsed []IngredientUsageDTO `json:"ingredients_used,omitempty"`
}

type TransferListItem struct {
	ID        string `json:"id"`
	SkuName   string `json:"sku_name"`
	Quantity  int    `json:"quantity"`
	HasRecipe bool   `json:"has_recipe"`
	Status    string `json:"status"`
	Actor     string `json:"actor"`
	CreatedAt string `json:"created_at"`
}
