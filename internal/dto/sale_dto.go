package dto

import "github.com/shopspring/decimal"

// ─── Requests ────────────────────────────────────────────────────────────────

type SaleItemRequest struct {
	SkuID    string `json:"sku_id"   validate:"required,uuid"`
	Quantity int    `json:"quantity" validate:"required,min=1"`
}

type RecordTransactionRequest struct {
	// TransactionID is optional; offline tills supply their own, otherwise the
	// record's identity is used.
	TransactionID *string           `json:"transaction_id" validate:"omitempty,min=1"`
	Items         []SaleItemRequest `json:"items"          validate:"required,min=1,dive"`
	PaymentMethod string            `json:"payment_method" validate:"omitempty,oneof=cash card qr"`
	CustomerName  *string           `json:"customer_name"`
}

// SingleSaleRequest is the legacy one-item call shape, kept for older till
// builds. It is translated into a RecordTransactionRequest with one line.
type SingleSaleRequest struct {
	SkuID         string  `json:"sku_id"   validate:"required,uuid"`
	Quantity      int     `json:"quantity" validate:"required,min=1"`
	PaymentMethod string  `json:"payment_method" validate:"omitempty,oneof=cash card qr"`
	CustomerName  *string `json:"customer_name"`
}

// ─── Responses ───────────────────────────────────────────────────────────────

type SaleItemResponse struct {
	SkuID     string          `json:"sku_id"`
	SkuName   string          `json:"sku_name"`
	Quantity  int             `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	ItemTotal decimal.Decimal `json:"item_total"`
}

type TransactionResponse struct {
	ID              string             `json:"id"`
	TransactionID   string             `json:"transaction_id"`
	Items           []SaleItemResponse `json:"items"`
	TotalAmount     decimal.Decimal    `json:"total_amount"`
	ItemCount       int                `json:"item_count"`
	TransactionType string             `json:"transaction_type"`
	PaymentMethod   string             `json:"payment_method"`
	CreatedAt       string             `json:"created_at"`
}

type TransactionListResponse struct {
	Data  []TransactionResponse `json:"data"`
	Total int64                 `json:"total"`
	Page  int                   `json:"page"`
	Limit int                   `json:"limit"`
}
