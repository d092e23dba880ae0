package service

import (
	"context"
	"fmt"
	"time"

	"stallpos/internal/dto"
	"stallpos/internal/model"
	"stallpos/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// runTx executes fn inside a database transaction. A nil db runs fn directly
// with a nil tx, which lets stub-backed unit tests exercise the full service
// flow without a database.
func runTx(ctx context.Context, db *gorm.DB, fn func(tx *gorm.DB) error) error {
	if db == nil {
		return fn(nil)
	}
	return db.WithContext(ctx).Transaction(fn)
}

func newBatchID(now time.Time) string {
	return fmt.Sprintf("BATCH-%s-%s", now.Format("20060102-150405"), uuid.NewString()[:8])
}

// KitchenService owns batch cooking and the expiry sweep.
type KitchenService struct {
	engine  *stockEngine
	recipes repository.RecipeRepository
	semi    repository.SemiProcessedRepository
	ledger  repository.LedgerRepository
	audit   AuditSink
}

func NewKitchenService(
	raw repository.RawIngredientRepository,
	semi repository.SemiProcessedRepository,
	purchased repository.PurchasedGoodRepository,
	recipes repository.RecipeRepository,
	ledger repository.LedgerRepository,
	audit AuditSink,
) *KitchenService {
	return &KitchenService{
		engine:  newStockEngine(raw, semi, purchased),
		recipes: recipes,
		semi:    semi,
		ledger:  ledger,
		audit:   audit,
	}
}

// CookBatch executes one kitchen cook: consumes the recipe's scaled
// ingredients, creates a dated batch of the output item and writes the cooking
// ledger row, all in one transaction. Expired batches of the recipe's
// semi-processed inputs are pruned up front, outside the transaction, so the
// pruning survives even when the cook itself fails.
func (s *KitchenService) CookBatch(ctx context.Context, req dto.CookBatchRequest, actor string) (*dto.CookBatchResponse, error) {
	recipeID, err := uuid.Parse(req.RecipeID)
	if err != nil {
		return nil, &NotFoundError{Kind: "recipe", Ref: req.RecipeID}
	}
	if !req.Multiplier.IsPositive() {
		return nil, fmt.Errorf("multiplier must be positive, got %s", req.Multiplier)
	}

	recipe, err := s.recipes.FindSemiRecipeByID(ctx, recipeID)
	if err != nil {
		return nil, &NotFoundError{Kind: "recipe", Ref: req.RecipeID}
	}

	now := time.Now().UTC()
	s.engine.pruneRecipeSemis(ctx, recipe.Ingredients, now)

	produced := recipe.OutputQuantity.Mul(req.Multiplier)
	expiresAt := now.Add(time.Duration(recipe.HoldingTimeHours * float64(time.Hour)))
	batchID := newBatchID(now)

	var usages []model.IngredientUsage
	err = runTx(ctx, s.semi.DB(), func(tx *gorm.DB) error {
		usages, err = s.engine.consumeIngredients(tx, recipe.Ingredients, req.Multiplier, now)
		if err != nil {
			return err
		}

		// Upsert the output item, then attach the new batch to it.
		item, findErr := s.semi.FindByNameTx(tx, recipe.OutputName)
		if findErr != nil {
			item = &model.SemiProcessedItem{
				ID:           uuid.New(),
				Name:         recipe.OutputName,
				Type:         "batch",
				Unit:         recipe.OutputUnit,
				CurrentStock: produced,
			}
			if createErr := s.semi.CreateTx(tx, item); createErr != nil {
				return createErr
			}
		} else if addErr := s.semi.AddStockTx(tx, item.ID, produced); addErr != nil {
			return addErr
		}

		batch := &model.SemiBatch{
			ID:        uuid.New(),
			ItemID:    item.ID,
			BatchID:   batchID,
			Quantity:  produced,
			CreatedAt: now,
			ExpiresAt: expiresAt,
		}
		if batchErr := s.semi.CreateBatchTx(tx, batch); batchErr != nil {
			return batchErr
		}

		return s.ledger.CreateCookingLogTx(tx, &model.BatchCookingLog{
			ID:               uuid.New(),
			BatchID:          batchID,
			RecipeID:         recipe.ID,
			OutputName:       recipe.OutputName,
			QuantityProduced: produced,
			Unit:             recipe.OutputUnit,
			Multiplier:       req.Multiplier,
			ExpiresAt:        expiresAt,
			Actor:            actor,
			IngredientsUsed:  usages,
		})
	})
	if err != nil {
		return nil, err
	}

	s.audit.Record(ctx, "cook_batch", "kitchen",
		fmt.Sprintf("cooked %s %s of %s", produced, recipe.OutputUnit, recipe.OutputName),
		map[string]any{"batch_id": batchID, "recipe_id": recipe.ID.String(), "multiplier": req.Multiplier.String()},
		actor)

	return &dto.CookBatchResponse{
		BatchID:          batchID,
		OutputName:       recipe.OutputName,
		QuantityProduced: produced,
		Unit:             recipe.OutputUnit,
		ExpiresAt:        expiresAt,
		IngredientsUsed:  usagesToDTO(usages),
	}, nil
}

// SweepExpired prunes expired batches of every semi-processed item. Idempotent:
// a second sweep with no intervening expiries removes nothing.
func (s *KitchenService) SweepExpired(ctx context.Context, actor string) (*dto.SweepResponse, error) {
	items, err := s.semi.List(ctx)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	resp := &dto.SweepResponse{QuantityRemoved: decimal.Zero, Details: []dto.SweepItemResult{}}
	for _, item := range items {
		removed, count, pruneErr := s.engine.semi.PruneExpired(ctx, item.ID, now)
		if pruneErr != nil {
			return nil, pruneErr
		}
		if count == 0 {
			continue
		}
		resp.ItemsAffected++
		resp.BatchesRemoved += count
		resp.QuantityRemoved = resp.QuantityRemoved.Add(removed)
		resp.Details = append(resp.Details, dto.SweepItemResult{
			ItemName:        item.Name,
			BatchesRemoved:  count,
			QuantityRemoved: removed,
		})
		// One audit event per affected item; an untouched item emits nothing,
		// which keeps a no-op sweep silent.
		s.audit.Record(ctx, "expiry_sweep", "kitchen",
			fmt.Sprintf("removed %d expired batches of %s", count, item.Name),
			map[string]any{
				"item_id":          item.ID.String(),
				"item_name":        item.Name,
				"batches_removed":  count,
				"quantity_removed": removed.String(),
			},
			actor)
	}

	return resp, nil
}

func usagesToDTO(usages []model.IngredientUsage) []dto.IngredientUsageDTO {
	out := make([]dto.IngredientUsageDTO, 0, len(usages))
	for _, u := range usages {
		out = append(out, dto.IngredientUsageDTO{
			IngredientType: u.IngredientType,
			IngredientID:   u.IngredientID.String(),
			IngredientName: u.IngredientName,
			Quantity:       u.Quantity,
			Unit:           u.Unit,
		})
	}
	return out
}
