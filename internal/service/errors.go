package service

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

// NotFoundError marks a missing recipe, SKU, or ingredient entity. Surfaced to
// the caller as a 404; never retried.
type NotFoundError struct {
	Kind string // "recipe" | "sku" | "ingredient" | "item"
	Ref  string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %s not found", e.Kind, e.Ref)
}

// InsufficientStockError carries the required/available/expired figures so the
// caller can display the shortfall. Not retried.
type InsufficientStockError struct {
	Name      string
	Required  decimal.Decimal
	Available decimal.Decimal
	Expired   decimal.Decimal
}

func (e *InsufficientStockError) Error() string {
	if e.Expired.IsPositive() {
		return fmt.Sprintf("insufficient stock of %s: required %s, available %s (%s expired)",
			e.Name, e.Required, e.Available, e.Expired)
	}
	return fmt.Sprintf("insufficient stock of %s: required %s, available %s",
		e.Name, e.Required, e.Available)
}

var (
	// ErrUnknownIngredientType marks a recipe line whose type tag is outside the
	// closed raw/semiProcessed/purchasedGood union. This is a data-integrity
	// defect, not a runtime condition — treated as fatal, never retried.
	ErrUnknownIngredientType = errors.New("unknown ingredient type")

	// ErrTransferReceiveRemoved: counter stock is updated synchronously at send
	// time; the old pending/received workflow no longer exists. The endpoint is
	// kept only so legacy tills get a definitive failure instead of a 404.
	ErrTransferReceiveRemoved = errors.New("transfer receive workflow was removed: counter stock is updated at send time")

	// ErrEmptyTransaction rejects a checkout with no line items before any
	// storage is touched.
	ErrEmptyTransaction = errors.New("transaction requires at least one item")
)
