package repository

import (
	"context"

	"stallpos/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// RecipeRepository is the data access contract for both recipe kinds.
// Ingredient lists are always preloaded: a recipe without its lines is useless
// to every caller.
type RecipeRepository interface {
	CreateSemiRecipe(ctx context.Context, rec *model.SemiProcessedRecipe) error
	FindSemiRecipeByID(ctx context.Context, id uuid.UUID) (*model.SemiProcessedRecipe, error)
	ListSemiRecipes(ctx context.Context) ([]model.SemiProcessedRecipe, error)
	DeleteSemiRecipe(ctx context.Context, id uuid.UUID) error

	CreateSkuRecipe(ctx context.Context, rec *model.SkuRecipe) error
	FindSkuRecipeBySkuID(ctx context.Context, skuID uuid.UUID) (*model.SkuRecipe, error)
	ListSkuRecipes(ctx context.Context) ([]model.SkuRecipe, error)
	DeleteSkuRecipe(ctx context.Context, id uuid.UUID) error
}

type recipeRepo struct{ db *gorm.DB }

func NewRecipeRepository(db *gorm.DB) RecipeRepository { return &recipeRepo{db: db} }

// orderByPosition keeps preloaded ingredient lists in their authored order.
func orderByPosition(db *gorm.DB) *gorm.DB { return db.Order("position ASC") }

func (r *recipeRepo) CreateSemiRecipe(ctx context.Context, rec *model.SemiProcessedRecipe) error {
	return r.db.WithContext(ctx).Create(rec).Error
}

func (r *recipeRepo) FindSemiRecipeByID(ctx context.Context, id uuid.UUID) (*model.SemiProcessedRecipe, error) {
	var rec model.SemiProcessedRecipe
	err := r.db.WithContext(ctx).Preload("Ingredients", orderByPosition).First(&rec, id).Error
	return &rec, err
}

func (r *recipeRepo) ListSemiRecipes(ctx context.Context) ([]model.SemiProcessedRecipe, error) {
	var recs []model.SemiProcessedRecipe
	err := r.db.WithContext(ctx).Preload("Ingredients", orderByPosition).Order("output_name ASC").Find(&recs).Error
	return recs, err
}

func (r *recipeRepo) DeleteSemiRecipe(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("recipe_id = ? AND recipe_type = ?", id, "semi").
			Delete(&model.RecipeIngredient{}).Error; err != nil {
			return err
		}
		return tx.Delete(&model.SemiProcessedRecipe{}, id).Error
	})
}

func (r *recipeRepo) CreateSkuRecipe(ctx context.Context, rec *model.SkuRecipe) error {
	return r.db.WithContext(ctx).Create(rec).Error
}

func (r *recipeRepo) FindSkuRecipeBySkuID(ctx context.Context, skuID uuid.UUID) (*model.SkuRecipe, error) {
	var rec model.SkuRecipe
	err := r.db.WithContext(ctx).Preload("Ingredients", orderByPosition).Where("sku_id = ?", skuID).First(&rec).Error
	return &rec, err
}

func (r *recipeRepo) ListSkuRecipes(ctx context.Context) ([]model.SkuRecipe, error) {
	var recs []model.SkuRecipe
	err := r.db.WithContext(ctx).Preload("Ingredients", orderByPosition).Preload("Sku").Find(&recs).Error
	return recs, err
}

func (r *recipeRepo) DeleteSkuRecipe(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("recipe_id = ? AND recipe_type = ?", id, "sku").
			Delete(&model.RecipeIngredient{}).Error; err != nil {
			return err
		}
		return tx.Delete(&model.SkuRecipe{}, id).Error
	})
}
