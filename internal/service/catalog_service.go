package service

import (
	"context"
	"fmt"

	"stallpos/internal/dto"
	"stallpos/internal/model"
	"stallpos/internal/repository"

	"github.com/google/uuid"
)

// CatalogService manages the sellable surface: SKUs and both recipe kinds.
// Recipe lines denormalize the referenced ingredient's name and unit at
// authoring time, which requires resolving each line against its tier.
type CatalogService struct {
	skus      repository.SkuRepository
	recipes   repository.RecipeRepository
	raw       repository.RawIngredientRepository
	semi      repository.SemiProcessedRepository
	purchased repository.PurchasedGoodRepository
}

func NewCatalogService(
	skus repository.SkuRepository,
	recipes repository.RecipeRepository,
	raw repository.RawIngredientRepository,
	semi repository.SemiProcessedRepository,
	purchased repository.PurchasedGoodRepository,
) *CatalogService {
	return &CatalogService{skus: skus, recipes: recipes, raw: raw, semi: semi, purchased: purchased}
}

// ─── SKUs ────────────────────────────────────────────────────────────────────

func (s *CatalogService) CreateSku(ctx context.Context, req dto.CreateSkuRequest) (*dto.SkuResponse, error) {
	sku := &model.SkuItem{
		ID:                uuid.New(),
		Name:              req.Name,
		TargetSkus:        req.TargetSkus,
		LowStockThreshold: req.LowStockThreshold,
		Price:             req.Price,
		Category:          req.Category,
		RequiresAssembly:  req.RequiresAssembly,
		AssemblyLocation:  req.AssemblyLocation,
	}
	if err := s.skus.Create(ctx, sku); err != nil {
		return nil, err
	}
	resp := skuToDTO(sku)
	return &resp, nil
}

func (s *CatalogService) GetSku(ctx context.Context, id string) (*dto.SkuResponse, error) {
	skuID, err := uuid.Parse(id)
	if err != nil {
		return nil, &NotFoundError{Kind: "sku", Ref: id}
	}
	sku, err := s.skus.FindByID(ctx, skuID)
	if err != nil {
		return nil, &NotFoundError{Kind: "sku", Ref: id}
	}
	resp := skuToDTO(sku)
	return &resp, nil
}

func (s *CatalogService) ListSkus(ctx context.Context) ([]dto.SkuResponse, error) {
	skus, err := s.skus.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.SkuResponse, 0, len(skus))
	for i := range skus {
		out = append(out, skuToDTO(&skus[i]))
	}
	return out, nil
}

func (s *CatalogService) UpdateSku(ctx context.Context, id string, req dto.UpdateSkuRequest) (*dto.SkuResponse, error) {
	skuID, err := uuid.Parse(id)
	if err != nil {
		return nil, &NotFoundError{Kind: "sku", Ref: id}
	}
	sku, err := s.skus.FindByID(ctx, skuID)
	if err != nil {
		return nil, &NotFoundError{Kind: "sku", Ref: id}
	}
	if req.TargetSkus != nil {
		sku.TargetSkus = *req.TargetSkus
	}
	if req.LowStockThreshold != nil {
		sku.LowStockThreshold = *req.LowStockThreshold
	}
	if req.Price != nil {
		sku.Price = *req.Price
	}
	if req.Category != nil {
		sku.Category = *req.Category
	}
	if req.RequiresAssembly != nil {
		sku.RequiresAssembly = *req.RequiresAssembly
	}
	if req.AssemblyLocation != nil {
		sku.AssemblyLocation = *req.AssemblyLocation
	}
	if err := s.skus.Update(ctx, sku); err != nil {
		return nil, err
	}
	resp := skuToDTO(sku)
	return &resp, nil
}

func (s *CatalogService) DeleteSku(ctx context.Context, id string) error {
	skuID, err := uuid.Parse(id)
	if err != nil {
		return &NotFoundError{Kind: "sku", Ref: id}
	}
	return s.skus.Delete(ctx, skuID)
}

// ─── Recipes ─────────────────────────────────────────────────────────────────

func (s *CatalogService) CreateSemiRecipe(ctx context.Context, req dto.CreateSemiRecipeRequest) (*dto.SemiRecipeResponse, error) {
	recipeID := uuid.New()
	lines, err := s.resolveLines(ctx, recipeID, "semi", req.Ingredients)
	if err != nil {
		return nil, err
	}
	rec := &model.SemiProcessedRecipe{
		ID:               recipeID,
		OutputName:       req.OutputName,
		OutputQuantity:   req.OutputQuantity,
		OutputUnit:       req.OutputUnit,
		HoldingTimeHours: req.HoldingTimeHours,
		StorageTemp:      req.StorageTemp,
		Level:            req.Level,
		Ingredients:      lines,
	}
	if err := s.recipes.CreateSemiRecipe(ctx, rec); err != nil {
		return nil, err
	}
	resp := semiRecipeToDTO(rec)
	return &resp, nil
}

func (s *CatalogService) GetSemiRecipe(ctx context.Context, id string) (*dto.SemiRecipeResponse, error) {
	recipeID, err := uuid.Parse(id)
	if err != nil {
		return nil, &NotFoundError{Kind: "recipe", Ref: id}
	}
	rec, err := s.recipes.FindSemiRecipeByID(ctx, recipeID)
	if err != nil {
		return nil, &NotFoundError{Kind: "recipe", Ref: id}
	}
	resp := semiRecipeToDTO(rec)
	return &resp, nil
}

func (s *CatalogService) ListSemiRecipes(ctx context.Context) ([]dto.SemiRecipeResponse, error) {
	recs, err := s.recipes.ListSemiRecipes(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.SemiRecipeResponse, 0, len(recs))
	for i := range recs {
		out = append(out, semiRecipeToDTO(&recs[i]))
	}
	return out, nil
}

func (s *CatalogService) DeleteSemiRecipe(ctx context.Context, id string) error {
	recipeID, err := uuid.Parse(id)
	if err != nil {
		return &NotFoundError{Kind: "recipe", Ref: id}
	}
	return s.recipes.DeleteSemiRecipe(ctx, recipeID)
}

func (s *CatalogService) CreateSkuRecipe(ctx context.Context, req dto.CreateSkuRecipeRequest) (*dto.SkuRecipeResponse, error) {
	skuID, err := uuid.Parse(req.SkuID)
	if err != nil {
		return nil, &NotFoundError{Kind: "sku", Ref: req.SkuID}
	}
	if _, err := s.skus.FindByID(ctx, skuID); err != nil {
		return nil, &NotFoundError{Kind: "sku", Ref: req.SkuID}
	}

	hasRecipe := true
	if req.HasRecipe != nil {
		hasRecipe = *req.HasRecipe
	}
	if hasRecipe && len(req.Ingredients) == 0 {
		return nil, fmt.Errorf("a recipe-backed SKU needs at least one ingredient")
	}

	recipeID := uuid.New()
	var lines []model.RecipeIngredient
	if hasRecipe {
		lines, err = s.resolveLines(ctx, recipeID, "sku", req.Ingredients)
		if err != nil {
			return nil, err
		}
	}
	rec := &model.SkuRecipe{
		ID:                   recipeID,
		SkuID:                skuID,
		HasRecipe:            hasRecipe,
		AssemblyInstructions: req.AssemblyInstructions,
		Ingredients:          lines,
	}
	if err := s.recipes.CreateSkuRecipe(ctx, rec); err != nil {
		return nil, err
	}
	resp := skuRecipeToDTO(rec)
	return &resp, nil
}

func (s *CatalogService) GetSkuRecipe(ctx context.Context, skuID string) (*dto.SkuRecipeResponse, error) {
	id, err := uuid.Parse(skuID)
	if err != nil {
		return nil, &NotFoundError{Kind: "recipe", Ref: skuID}
	}
	rec, err := s.recipes.FindSkuRecipeBySkuID(ctx, id)
	if err != nil {
		return nil, &NotFoundError{Kind: "recipe", Ref: skuID}
	}
	resp := skuRecipeToDTO(rec)
	return &resp, nil
}

func (s *CatalogService) DeleteSkuRecipe(ctx context.Context, id string) error {
	recipeID, err := uuid.Parse(id)
	if err != nil {
		return &NotFoundError{Kind: "recipe", Ref: id}
	}
	return s.recipes.DeleteSkuRecipe(ctx, recipeID)
}

// resolveLines turns request lines into recipe rows, resolving each referenced
// entity to copy its live name and unit. A dangling reference fails the whole
// recipe.
func (s *CatalogService) resolveLines(ctx context.Context, recipeID uuid.UUID, recipeType string, reqs []dto.RecipeIngredientRequest) ([]model.RecipeIngredient, error) {
	lines := make([]model.RecipeIngredient, 0, len(reqs))
	for pos, r := range reqs {
		typ, err := ParseIngredientType(r.IngredientType)
		if err != nil {
			return nil, err
		}
		ingID, err := uuid.Parse(r.IngredientID)
		if err != nil {
			return nil, &NotFoundError{Kind: "ingredient", Ref: r.IngredientID}
		}
		if !r.Quantity.IsPositive() {
			return nil, fmt.Errorf("ingredient quantity must be positive, got %s", r.Quantity)
		}

		var name, unit string
		switch typ {
		case IngredientRaw:
			ing, err := s.raw.FindByID(ctx, ingID)
			if err != nil {
				return nil, &NotFoundError{Kind: "ingredient", Ref: r.IngredientID}
			}
			name, unit = ing.Name, ing.Unit
		case IngredientSemiProcessed:
			item, err := s.semi.FindByID(ctx, ingID)
			if err != nil {
				return nil, &NotFoundError{Kind: "ingredient", Ref: r.IngredientID}
			}
			name, unit = item.Name, item.Unit
		default:
			g, err := s.purchased.FindByID(ctx, ingID)
			if err != nil {
				return nil, &NotFoundError{Kind: "ingredient", Ref: r.IngredientID}
			}
			name, unit = g.Name, g.Unit
		}

		lines = append(lines, model.RecipeIngredient{
			ID:             uuid.New(),
			RecipeID:       recipeID,
			RecipeType:     recipeType,
			IngredientType: string(typ),
			IngredientID:   ingID,
			IngredientName: name,
			Quantity:       r.Quantity,
			Unit:           unit,
			Position:       pos,
		})
	}
	return lines, nil
}

// ─── Mapping ─────────────────────────────────────────────────────────────────

func skuToDTO(sku *model.SkuItem) dto.SkuResponse {
	return dto.SkuResponse{
		ID:                sku.ID.String(),
		Name:              sku.Name,
		TargetSkus:        sku.TargetSkus,
		CurrentStallStock: sku.CurrentStallStock,
		LowStockThreshold: sku.LowStockThreshold,
		Price:             sku.Price,
		Category:          sku.Category,
		RequiresAssembly:  sku.RequiresAssembly,
		AssemblyLocation:  sku.AssemblyLocation,
	}
}

func recipeLinesToDTO(lines []model.RecipeIngredient) []dto.RecipeIngredientResponse {
	out := make([]dto.RecipeIngredientResponse, 0, len(lines))
	for _, l := range lines {
		out = append(out, dto.RecipeIngredientResponse{
			IngredientType: l.IngredientType,
			IngredientID:   l.IngredientID.String(),
			IngredientName: l.IngredientName,
			Quantity:       l.Quantity,
			Unit:           l.Unit,
		})
	}
	return out
}

func semiRecipeToDTO(rec *model.SemiProcessedRecipe) dto.SemiRecipeResponse {
	return dto.SemiRecipeResponse{
		ID:               rec.ID.String(),
		OutputName:       rec.OutputName,
		OutputQuantity:   rec.OutputQuantity,
		OutputUnit:       rec.OutputUnit,
		HoldingTimeHours: rec.HoldingTimeHours,
		StorageTemp:      rec.StorageTemp,
		Level:            rec.Level,
		Ingredients:      recipeLinesToDTO(rec.Ingredients),
	}
}

func skuRecipeToDTO(rec *model.SkuRecipe) dto.SkuRecipeResponse {
	return dto.SkuRecipeResponse{
		ID:                   rec.ID.String(),
		SkuID:                rec.SkuID.String(),
		HasRecipe:            rec.HasRecipe,
		AssemblyInstructions: rec.AssemblyInstructions,
		Ingredients:          recipeLinesToDTO(rec.Ingredients),
	}
}
