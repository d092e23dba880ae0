package service

import (
	"context"
	"errors"
	"time"

	"stallpos/internal/model"
	"stallpos/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// IngredientType tags which of the three stock tiers a recipe line draws from.
// The union is closed: anything else is a data-integrity defect.
type IngredientType string

const (
	IngredientRaw           IngredientType = "raw"
	IngredientSemiProcessed IngredientType = "semiProcessed"
	IngredientPurchasedGood IngredientType = "purchasedGood"
)

// ParseIngredientType validates a type tag against the closed union.
func ParseIngredientType(s string) (IngredientType, error) {
	switch IngredientType(s) {
	case IngredientRaw, IngredientSemiProcessed, IngredientPurchasedGood:
		return IngredientType(s), nil
	}
	return "", ErrUnknownIngredientType
}

// ingredientState is the resolved view of one recipe line's backing entity:
// live name/unit plus the expiry-aware availability figures at a point in time.
type ingredientState struct {
	name      string
	unit      string
	available decimal.Decimal
	expired   decimal.Decimal

	// retained for deduction: semi needs the FIFO-ordered batches, purchased
	// needs the pool split.
	semi      *model.SemiProcessedItem
	purchased *model.PurchasedGood
}

// stockEngine resolves polymorphic ingredient references and performs
// expiry-aware validation and deduction against the three stock tiers.
// All other code mutates stock exclusively through this engine.
type stockEngine struct {
	raw       repository.RawIngredientRepository
	semi      repository.SemiProcessedRepository
	purchased repository.PurchasedGoodRepository
}

func newStockEngine(
	raw repository.RawIngredientRepository,
	semi repository.SemiProcessedRepository,
	purchased repository.PurchasedGoodRepository,
) *stockEngine {
	return &stockEngine{raw: raw, semi: semi, purchased: purchased}
}

func semiAvailability(item *model.SemiProcessedItem, now time.Time) (available, expired decimal.Decimal) {
	available, expired = decimal.Zero, decimal.Zero
	for _, b := range item.Batches {
		if b.ExpiresAt.After(now) {
			available = available.Add(b.Quantity)
		} else {
			expired = expired.Add(b.Quantity)
		}
	}
	return available, expired
}

// resolve loads the backing entity for one recipe line (read-only, no
// transaction) and computes its availability at now.
func (e *stockEngine) resolve(ctx context.Context, ing model.RecipeIngredient, now time.Time) (*ingredientState, error) {
	typ, err := ParseIngredientType(ing.IngredientType)
	if err != nil {
		return nil, err
	}
	switch typ {
	case IngredientRaw:
		r, err := e.raw.FindByID(ctx, ing.IngredientID)
		if err != nil {
			return nil, &NotFoundError{Kind: "ingredient", Ref: ing.IngredientName}
		}
		return &ingredientState{name: r.Name, unit: r.Unit, available: r.CurrentStock, expired: decimal.Zero}, nil
	case IngredientPurchasedGood:
		g, err := e.purchased.FindByID(ctx, ing.IngredientID)
		if err != nil {
			return nil, &NotFoundError{Kind: "ingredient", Ref: ing.IngredientName}
		}
		return &ingredientState{
			name:      g.Name,
			unit:      g.Unit,
			available: g.CurrentStock.Add(g.CounterStock),
			expired:   decimal.Zero,
			purchased: g,
		}, nil
	default: // IngredientSemiProcessed
		item, err := e.semi.FindByID(ctx, ing.IngredientID)
		if err != nil {
			return nil, &NotFoundError{Kind: "ingredient", Ref: ing.IngredientName}
		}
		available, expired := semiAvailability(item, now)
		return &ingredientState{name: item.Name, unit: item.Unit, available: available, expired: expired, semi: item}, nil
	}
}

// resolveTx is resolve against a live transaction, used by the deduction paths.
func (e *stockEngine) resolveTx(tx *gorm.DB, ing model.RecipeIngredient, now time.Time) (*ingredientState, error) {
	typ, err := ParseIngredientType(ing.IngredientType)
	if err != nil {
		return nil, err
	}
	switch typ {
	case IngredientRaw:
		r, err := e.raw.FindByIDTx(tx, ing.IngredientID)
		if err != nil {
			return nil, &NotFoundError{Kind: "ingredient", Ref: ing.IngredientName}
		}
		return &ingredientState{name: r.Name, unit: r.Unit, available: r.CurrentStock, expired: decimal.Zero}, nil
	case IngredientPurchasedGood:
		g, err := e.purchased.FindByIDTx(tx, ing.IngredientID)
		if err != nil {
			return nil, &NotFoundError{Kind: "ingredient", Ref: ing.IngredientName}
		}
		return &ingredientState{
			name:      g.Name,
			unit:      g.Unit,
			available: g.CurrentStock.Add(g.CounterStock),
			expired:   decimal.Zero,
			purchased: g,
		}, nil
	default:
		item, err := e.semi.FindByIDTx(tx, ing.IngredientID)
		if err != nil {
			return nil, &NotFoundError{Kind: "ingredient", Ref: ing.IngredientName}
		}
		available, expired := semiAvailability(item, now)
		return &ingredientState{name: item.Name, unit: item.Unit, available: available, expired: expired, semi: item}, nil
	}
}

// checkIngredients is the read-only availability breakdown for a scaled
// ingredient list. It never mutates stock, so calling it repeatedly without an
// intervening mutation yields identical results.
func (e *stockEngine) checkIngredients(ctx context.Context, ingredients []model.RecipeIngredient, factor decimal.Decimal, now time.Time) ([]IngredientAvailability, bool, error) {
	breakdown := make([]IngredientAvailability, 0, len(ingredients))
	all := true
	for _, ing := range ingredients {
		required := ing.Quantity.Mul(factor)
		st, err := e.resolve(ctx, ing, now)
		if err != nil {
			return nil, false, err
		}
		ok := st.available.GreaterThanOrEqual(required)
		if !ok {
			all = false
		}
		breakdown = append(breakdown, IngredientAvailability{
			Type:        IngredientType(ing.IngredientType),
			Name:        st.name,
			Unit:        st.unit,
			Required:    required,
			Available:   st.available,
			Expired:     st.expired,
			IsAvailable: ok,
		})
	}
	return breakdown, all, nil
}

// IngredientAvailability is one line of an availability breakdown.
type IngredientAvailability struct {
	Type        IngredientType
	Name        string
	Unit        string
	Required    decimal.Decimal
	Available   decimal.Decimal
	Expired     decimal.Decimal
	IsAvailable bool
}

// consumeIngredients validates EVERY scaled line before deducting ANY of them,
// then performs the deductions — partially deducted stock on a late
// insufficiency is impossible even before the transaction rollback is
// considered. Must run inside a transaction (tx may be nil in unit-test mode).
// Returns the exact usages for the ledger row.
func (e *stockEngine) consumeIngredients(tx *gorm.DB, ingredients []model.RecipeIngredient, factor decimal.Decimal, now time.Time) ([]model.IngredientUsage, error) {
	type line struct {
		ing      model.RecipeIngredient
		typ      IngredientType
		st       *ingredientState
		required decimal.Decimal
	}
	type entityKey struct {
		typ IngredientType
		id  uuid.UUID
	}

	// Fold duplicate lines referencing the same entity so the combined
	// requirement is validated against one snapshot and deducted exactly once.
	// Deducting per line would reuse stale in-memory batch state.
	lines := make([]line, 0, len(ingredients))
	byEntity := make(map[entityKey]int, len(ingredients))
	for _, ing := range ingredients {
		typ, err := ParseIngredientType(ing.IngredientType)
		if err != nil {
			return nil, err
		}
		required := ing.Quantity.Mul(factor)
		k := entityKey{typ: typ, id: ing.IngredientID}
		if i, seen := byEntity[k]; seen {
			lines[i].required = lines[i].required.Add(required)
			continue
		}
		byEntity[k] = len(lines)
		lines = append(lines, line{ing: ing, typ: typ, required: required})
	}

	// Phase 1: resolve + validate all lines
	for i := range lines {
		st, err := e.resolveTx(tx, lines[i].ing, now)
		if err != nil {
			return nil, err
		}
		if st.available.LessThan(lines[i].required) {
			return nil, &InsufficientStockError{
				Name:      st.name,
				Required:  lines[i].required,
				Available: st.available,
				Expired:   st.expired,
			}
		}
		lines[i].st = st
	}

	// Phase 2: deduct
	usages := make([]model.IngredientUsage, 0, len(lines))
	for _, l := range lines {
		if err := e.deduct(tx, l.typ, l.ing, l.st, l.required, now); err != nil {
			if errors.Is(err, repository.ErrStaleStock) {
				// A concurrent consumer won the race between our validation read
				// and the guarded update; the enclosing tx rolls back.
				return nil, &InsufficientStockError{
					Name:      l.st.name,
					Required:  l.required,
					Available: l.st.available,
					Expired:   l.st.expired,
				}
			}
			return nil, err
		}
		usages = append(usages, model.IngredientUsage{
			IngredientType: string(l.typ),
			IngredientID:   l.ing.IngredientID,
			IngredientName: l.st.name,
			Quantity:       l.required,
			Unit:           l.st.unit,
		})
	}
	return usages, nil
}

func (e *stockEngine) deduct(tx *gorm.DB, typ IngredientType, ing model.RecipeIngredient, st *ingredientState, required decimal.Decimal, now time.Time) error {
	switch typ {
	case IngredientRaw:
		return e.raw.DeductStockTx(tx, ing.IngredientID, required)

	case IngredientPurchasedGood:
		// Counter stock is physically closer to the assembly point — drain it
		// first, fall back to the warehouse pool for the remainder.
		fromCounter := decimal.Min(st.purchased.CounterStock, required)
		fromWarehouse := required.Sub(fromCounter)
		return e.purchased.DeductSplitTx(tx, ing.IngredientID, fromCounter, fromWarehouse)

	default: // IngredientSemiProcessed — FIFO batch consumption
		remaining := required
		for _, b := range st.semi.Batches { // preloaded in created_at order
			if !b.ExpiresAt.After(now) {
				// Expired batches are never consumable, whatever their quantity.
				continue
			}
			if !remaining.IsPositive() {
				break
			}
			if b.Quantity.LessThanOrEqual(remaining) {
				if err := e.semi.DeleteBatchTx(tx, b.ID); err != nil {
					return err
				}
				remaining = remaining.Sub(b.Quantity)
			} else {
				if err := e.semi.UpdateBatchQuantityTx(tx, b.ID, b.Quantity.Sub(remaining)); err != nil {
					return err
				}
				remaining = decimal.Zero
			}
		}
		if remaining.IsPositive() {
			return repository.ErrStaleStock
		}
		return e.semi.AddStockTx(tx, st.semi.ID, required.Neg())
	}
}

// pruneRecipeSemis eagerly removes expired batches of every semiProcessed
// ingredient of a recipe. Called OUTSIDE the deduction transaction on purpose:
// expired food is gone whether or not the cook that noticed it succeeds.
func (e *stockEngine) pruneRecipeSemis(ctx context.Context, ingredients []model.RecipeIngredient, now time.Time) {
	for _, ing := range ingredients {
		if IngredientType(ing.IngredientType) != IngredientSemiProcessed {
			continue
		}
		// Best effort: a prune failure surfaces later as an availability miss.
		_, _, _ = e.semi.PruneExpired(ctx, ing.IngredientID, now)
	}
}
