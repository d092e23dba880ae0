package service

import (
	"context"
	"testing"

	"stallpos/internal/dto"
	"stallpos/internal/model"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newCatalogFixture() (*CatalogService, *stubSkuRepo, *stubRecipeRepo, *stubRawRepo) {
	skus := newStubSkuRepo()
	recipes := newStubRecipeRepo()
	raw := newStubRawRepo()
	svc := NewCatalogService(skus, recipes, raw, newStubSemiRepo(), newStubPurchasedRepo())
	return svc, skus, recipes, raw
}

func TestCreateSemiRecipe_DenormalizesIngredientNames(t *testing.T) {
	svc, _, recipes, raw := newCatalogFixture()

	flour := &model.RawIngredient{ID: uuid.New(), Name: "flour", Unit: "kg", CurrentStock: dec("10")}
	require.NoError(t, raw.Create(context.Background(), flour))

	resp, err := svc.CreateSemiRecipe(context.Background(), dto.CreateSemiRecipeRequest{
		OutputName:       "dough",
		OutputQuantity:   dec("3"),
		OutputUnit:       "kg",
		HoldingTimeHours: 12,
		Ingredients: []dto.RecipeIngredientRequest{
			{IngredientType: "raw", IngredientID: flour.ID.String(), Quantity: dec("2")},
		},
	})
	require.NoError(t, err)
	require.Len(t, resp.Ingredients, 1)
	// Name and unit copied from the live entity, not from the request.
	assert.Equal(t, "flour", resp.Ingredients[0].IngredientName)
	assert.Equal(t, "kg", resp.Ingredients[0].Unit)

	stored, err := recipes.FindSemiRecipeByID(context.Background(), uuid.MustParse(resp.ID))
	require.NoError(t, err)
	assert.Equal(t, "semi", stored.Ingredients[0].RecipeType)
}

func TestCreateSemiRecipe_DanglingIngredientFails(t *testing.T) {
	svc, _, _, _ := newCatalogFixture()

	_, err := svc.CreateSemiRecipe(context.Background(), dto.CreateSemiRecipeRequest{
		OutputName:       "dough",
		OutputQuantity:   dec("3"),
		OutputUnit:       "kg",
		HoldingTimeHours: 12,
		Ingredients: []dto.RecipeIngredientRequest{
			{IngredientType: "raw", IngredientID: uuid.NewString(), Quantity: dec("2")},
		},
	})
	var notFound *NotFoundError
	require.ErrorAs(t, err, &notFound)
	assert.Equal(t, "ingredient", notFound.Kind)
}

func TestCreateSemiRecipe_RejectsUnknownIngredientType(t *testing.T) {
	svc, _, _, raw := newCatalogFixture()
	flour := &model.RawIngredient{ID: uuid.New(), Name: "flour", Unit: "kg"}
	require.NoError(t, raw.Create(context.Background(), flour))

	_, err := svc.CreateSemiRecipe(context.Background(), dto.CreateSemiRecipeRequest{
		OutputName:       "dough",
		OutputQuantity:   dec("3"),
		OutputUnit:       "kg",
		HoldingTimeHours: 12,
		Ingredients: []dto.RecipeIngredientRequest{
			{IngredientType: "frozen", IngredientID: flour.ID.String(), Quantity: dec("2")},
		},
	})
	assert.ErrorIs(t, err, ErrUnknownIngredientType)
}

func TestCreateSkuRecipe_PreAssembledNeedsNoIngredients(t *testing.T) {
	svc, skus, recipes, _ := newCatalogFixture()
	soda := seedSku(skus, "canned soda", 0, "2.00")

	no := false
	resp, err := svc.CreateSkuRecipe(context.Background(), dto.CreateSkuRecipeRequest{
		SkuID:     soda.ID.String(),
		HasRecipe: &no,
	})
	require.NoError(t, err)
	assert.False(t, resp.HasRecipe)
	assert.Empty(t, resp.Ingredients)

	stored, err := recipes.FindSkuRecipeBySkuID(context.Background(), soda.ID)
	require.NoError(t, err)
	assert.False(t, stored.HasRecipe)
}

func TestCreateSkuRecipe_RecipeBackedNeedsIngredients(t *testing.T) {
	svc, skus, _, _ := newCatalogFixture()
	burger := seedSku(skus, "chicken burger", 0, "8.50")

	_, err := svc.CreateSkuRecipe(context.Background(), dto.CreateSkuRecipeRequest{
		SkuID: burger.ID.String(),
	})
	assert.ErrorContains(t, err, "at least one ingredient")
}

func TestUpdateSku_PartialFields(t *testing.T) {
	svc, skus, _, _ := newCatalogFixture()
	burger := seedSku(skus, "chicken burger", 7, "8.50")

	newPrice := dec("9.00")
	resp, err := svc.UpdateSku(context.Background(), burger.ID.String(), dto.UpdateSkuRequest{Price: &newPrice})
	require.NoError(t, err)
	assert.True(t, resp.Price.Equal(dec("9.00")))
	// Untouched fields survive.
	assert.Equal(t, 7, resp.CurrentStallStock)
	assert.Equal(t, "chicken burger", resp.Name)
}

func TestCreateSemiRecipe_PreservesLineOrder(t *testing.T) {
	svc, _, recipes, raw := newCatalogFixture()

	flour := &model.RawIngredient{ID: uuid.New(), Name: "flour", Unit: "kg", CurrentStock: dec("10")}
	water := &model.RawIngredient{ID: uuid.New(), Name: "water", Unit: "l", CurrentStock: dec("50")}
	salt := &model.RawIngredient{ID: uuid.New(), Name: "salt", Unit: "kg", CurrentStock: dec("2")}
	for _, ing := range []*model.RawIngredient{flour, water, salt} {
		require.NoError(t, raw.Create(context.Background(), ing))
	}

	resp, err := svc.CreateSemiRecipe(context.Background(), dto.CreateSemiRecipeRequest{
		OutputName:       "dough",
		OutputQuantity:   dec("3"),
		OutputUnit:       "kg",
		HoldingTimeHours: 12,
		Ingredients: []dto.RecipeIngredientRequest{
			{IngredientType: "raw", IngredientID: flour.ID.String(), Quantity: dec("2")},
			{IngredientType: "raw", IngredientID: water.ID.String(), Quantity: dec("1.2")},
			{IngredientType: "raw", IngredientID: salt.ID.String(), Quantity: dec("0.05")},
		},
	})
	require.NoError(t, err)
	require.Len(t, resp.Ingredients, 3)
	assert.Equal(t, "flour", resp.Ingredients[0].IngredientName)
	assert.Equal(t, "water", resp.Ingredients[1].IngredientName)
	assert.Equal(t, "salt", resp.Ingredients[2].IngredientName)

	// Positions are assigned in authored order so reads can sort on them.
	stored, err := recipes.FindSemiRecipeByID(context.Background(), uuid.MustParse(resp.ID))
	require.NoError(t, err)
	for i, line := range stored.Ingredients {
		assert.Equal(t, i, line.Position)
	}
}
