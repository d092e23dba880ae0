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
)

// AvailabilityService answers "can we make this" questions. Checks are pure
// reads: no stock is mutated, no expired batch is pruned, and repeating a check
// without an intervening mutation yields the identical answer.
type AvailabilityService struct {
	engine  *stockEngine
	recipes repository.RecipeRepository
	skus    repository.SkuRepository
}

func NewAvailabilityService(
	raw repository.RawIngredientRepository,
	semi repository.SemiProcessedRepository,
	purchased repository.PurchasedGoodRepository,
	recipes repository.RecipeRepository,
	skus repository.SkuRepository,
) *AvailabilityService {
	return &AvailabilityService{
		engine:  newStockEngine(raw, semi, purchased),
		recipes: recipes,
		skus:    skus,
	}
}

// CheckRecipe reports whether a semi-processed recipe can be cooked at the
// given multiplier, with a per-ingredient breakdown.
func (s *AvailabilityService) CheckRecipe(ctx context.Context, recipeID string, multiplier decimal.Decimal) (*dto.AvailabilityResponse, error) {
	id, err := uuid.Parse(recipeID)
	if err != nil {
		return nil, &NotFoundError{Kind: "recipe", Ref: recipeID}
	}
	recipe, err := s.recipes.FindSemiRecipeByID(ctx, id)
	if err != nil {
		return nil, &NotFoundError{Kind: "recipe", Ref: recipeID}
	}
	if !multiplier.IsPositive() {
		return nil, fmt.Errorf("multiplier must be positive, got %s", multiplier)
	}
	return s.check(ctx, recipe.Ingredients, multiplier)
}

// CheckSku reports whether quantity units of a SKU can be assembled from its
// recipe. SKUs without a recipe (pre-assembled) are always assemblable.
func (s *AvailabilityService) CheckSku(ctx context.Context, skuID string, quantity int) (*dto.AvailabilityResponse, error) {
	id, err := uuid.Parse(skuID)
	if err != nil {
		return nil, &NotFoundError{Kind: "sku", Ref: skuID}
	}
	if _, err := s.skus.FindByID(ctx, id); err != nil {
		return nil, &NotFoundError{Kind: "sku", Ref: skuID}
	}
	if quantity < 1 {
		return nil, fmt.Errorf("quantity must be at least 1, got %d", quantity)
	}

	recipe, err := s.recipes.FindSkuRecipeBySkuID(ctx, id)
	if err != nil || !recipe.HasRecipe {
		return &dto.AvailabilityResponse{AllAvailable: true, Ingredients: []dto.IngredientAvailabilityDTO{}}, nil
	}
	return s.check(ctx, recipe.Ingredients, decimal.NewFromInt(int64(quantity)))
}

func (s *AvailabilityService) check(ctx context.Context, ingredients []model.RecipeIngredient, factor decimal.Decimal) (*dto.AvailabilityResponse, error) {
	breakdown, all, err := s.engine.checkIngredients(ctx, ingredients, factor, time.Now().UTC())
	if err != nil {
		return nil, err
	}
	lines := make([]dto.IngredientAvailabilityDTO, 0, len(breakdown))
	for _, b := range breakdown {
		lines = append(lines, dto.IngredientAvailabilityDTO{
			IngredientType: string(b.Type),
			IngredientName: b.Name,
			Unit:           b.Unit,
			Required:       b.Required,
			Available:      b.Available,
			Expired:        b.Expired,
			IsAvailable:    b.IsAvailable,
		})
	}
	return &dto.AvailabilityResponse{AllAvailable: all, Ingredients: lines}, nil
}
