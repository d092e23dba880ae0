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

// CounterService moves finished SKUs from the kitchen to the stall counter.
// A transfer consumes the SKU recipe's ingredients (when one exists), bumps
// the SKU's stall stock and writes a completed transfer ledger row, all in one
// transaction.
type CounterService struct {
	engine  *stockEngine
	recipes repository.RecipeRepository
	skus    repository.SkuRepository
	ledger  repository.LedgerRepository
	audit   AuditSink
}

func NewCounterService(
	raw repository.RawIngredientRepository,
	semi repository.SemiProcessedRepository,
	purchased repository.PurchasedGoodRepository,
	recipes repository.RecipeRepository,
	skus repository.SkuRepository,
	ledger repository.LedgerRepository,
	audit AuditSink,
) *CounterService {
	return &CounterService{
		engine:  newStockEngine(raw, semi, purchased),
		recipes: recipes,
		skus:    skus,
		ledger:  ledger,
		audit:   audit,
	}
}

// SendToCounter assembles quantity units of a SKU and stocks them at the
// counter. SKUs without a recipe skip ingredient consumption entirely.
func (s *CounterService) SendToCounter(ctx context.Context, req dto.SendToCounterRequest, actor string) (*dto.TransferResponse, error) {
	skuID, err := uuid.Parse(req.SkuID)
	if err != nil {
		return nil, &NotFoundError{Kind: "sku", Ref: req.SkuID}
	}
	sku, err := s.skus.FindByID(ctx, skuID)
	if err != nil {
		return nil, &NotFoundError{Kind: "sku", Ref: req.SkuID}
	}

	now := time.Now().UTC()
	var ingredients []model.RecipeIngredient
	hasRecipe := false
	if recipe, recErr := s.recipes.FindSkuRecipeBySkuID(ctx, skuID); recErr == nil && recipe.HasRecipe {
		hasRecipe = true
		ingredients = recipe.Ingredients
		s.engine.pruneRecipeSemis(ctx, ingredients, now)
	}

	transferID := uuid.New()
	var usages []model.IngredientUsage
	err = runTx(ctx, s.skus.DB(), func(tx *gorm.DB) error {
		if hasRecipe {
			usages, err = s.engine.consumeIngredients(tx, ingredients, decimal.NewFromInt(int64(req.Quantity)), now)
			if err != nil {
				return err
			}
		}
		if err := s.skus.AddStallStockTx(tx, skuID, req.Quantity); err != nil {
			return err
		}
		return s.ledger.CreateTransferLogTx(tx, &model.TransferLog{
			ID:              transferID,
			SkuID:           skuID,
			SkuName:         sku.Name,
			Quantity:        req.Quantity,
			HasRecipe:       hasRecipe,
			Status:          "completed",
			Actor:           actor,
			IngredientsUsed: usages,
		})
	})
	if err != nil {
		return nil, err
	}

	s.audit.Record(ctx, "send_to_counter", "counter",
		fmt.Sprintf("sent %d x %s to counter", req.Quantity, sku.Name),
		map[string]any{"transfer_id": transferID.String(), "sku_id": skuID.String(), "has_recipe": hasRecipe},
		actor)

	return &dto.TransferResponse{
		TransferID:      transferID.String(),
		SkuName:         sku.Name,
		Quantity:        req.Quantity,
		CounterStock:    sku.CurrentStallStock + req.Quantity,
		HasRecipe:       hasRecipe,
		Status:          "completed",
		IngredientsUsed: usagesToDTO(usages),
	}, nil
}

// ReceiveTransfer always fails. Counter stock is updated synchronously at send
// time; the endpoint survives only to give legacy clients a definitive error.
func (s *CounterService) ReceiveTransfer(ctx context.Context, transferID string) error {
	return ErrTransferReceiveRemoved
}

func (s *CounterService) ListTransfers(ctx context.Context, limit int) ([]dto.TransferListItem, error) {
	logs, err := s.ledger.ListTransferLogs(ctx, limit)
	if err != nil {
		return nil, err
	}
	items := make([]dto.TransferListItem, 0, len(logs))
	for _, l := range logs {
		items = append(items, dto.TransferListItem{
			ID:        l.ID.String(),
			SkuName:   l.SkuName,
			Quantity:  l.Quantity,
			HasRecipe: l.HasRecipe,
			Status:    l.Status,
			Actor:     l.Actor,
			CreatedAt: l.CreatedAt.Format(time.RFC3339),
		})
	}
	return items, nil
}
