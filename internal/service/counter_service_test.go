package service

import (
	"context"
	"testing"
	"time"

	"stallpos/internal/dto"
	"stallpos/internal/model"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type counterFixture struct {
	svc       *CounterService
	raw       *stubRawRepo
	semi      *stubSemiRepo
	purchased *stubPurchasedRepo
	skus      *stubSkuRepo
	recipes   *stubRecipeRepo
	ledger    *stubLedgerRepo
	audit     *recordingAudit
}

func newCounterFixture() *counterFixture {
	f := &counterFixture{
		raw:       newStubRawRepo(),
		semi:      newStubSemiRepo(),
		purchased: newStubPurchasedRepo(),
		skus:      newStubSkuRepo(),
		recipes:   newStubRecipeRepo(),
		ledger:    &stubLedgerRepo{},
		audit:     &recordingAudit{},
	}
	f.svc = NewCounterService(f.raw, f.semi, f.purchased, f.recipes, f.skus, f.ledger, f.audit)
	return f
}

func TestSendToCounter_WithRecipeConsumesIngredients(t *testing.T) {
	f := newCounterFixture()

	now := time.Now().UTC()
	chicken := seedSemiItem(f.semi, "marinated chicken",
		model.SemiBatch{ID: uuid.New(), BatchID: "B-1", Quantity: dec("5"), CreatedAt: now.Add(-time.Hour), ExpiresAt: now.Add(time.Hour)})
	buns := &model.PurchasedGood{ID: uuid.New(), Name: "burger buns", Unit: "pcs", CurrentStock: dec("50"), CounterStock: dec("0")}
	require.NoError(t, f.purchased.Create(context.Background(), buns))

	burger := seedSku(f.skus, "chicken burger", 0, "8.50")
	require.NoError(t, f.recipes.CreateSkuRecipe(context.Background(), &model.SkuRecipe{
		ID:        uuid.New(),
		SkuID:     burger.ID,
		HasRecipe: true,
		Ingredients: []model.RecipeIngredient{
			{ID: uuid.New(), IngredientType: "semiProcessed", IngredientID: chicken.ID, IngredientName: "marinated chicken", Quantity: dec("0.2"), Unit: "kg"},
			{ID: uuid.New(), IngredientType: "purchasedGood", IngredientID: buns.ID, IngredientName: "burger buns", Quantity: dec("1"), Unit: "pcs"},
		},
	}))

	resp, err := f.svc.SendToCounter(context.Background(), dto.SendToCounterRequest{
		SkuID:    burger.ID.String(),
		Quantity: 10,
	}, "runner-bo")
	require.NoError(t, err)

	assert.Equal(t, 10, resp.CounterStock)
	assert.True(t, resp.HasRecipe)
	assert.Equal(t, "completed", resp.Status)
	assert.Equal(t, 10, f.skus.skus[burger.ID].CurrentStallStock)

	// 10 * 0.2 kg chicken and 10 buns consumed.
	chickenAfter, _ := f.semi.FindByID(context.Background(), chicken.ID)
	assert.True(t, chickenAfter.CurrentStock.Equal(dec("3")))
	assert.True(t, f.purchased.goods[buns.ID].CurrentStock.Equal(dec("40")))

	require.Len(t, f.ledger.transferLogs, 1)
	logRow := f.ledger.transferLogs[0]
	assert.True(t, logRow.HasRecipe)
	assert.Equal(t, "completed", logRow.Status)
	assert.Len(t, logRow.IngredientsUsed, 2)
}

func TestSendToCounter_NoRecipeSkipsConsumption(t *testing.T) {
	f := newCounterFixture()
	soda := seedSku(f.skus, "canned soda", 2, "2.00")

	resp, err := f.svc.SendToCounter(context.Background(), dto.SendToCounterRequest{
		SkuID:    soda.ID.String(),
		Quantity: 10,
	}, "runner-bo")
	require.NoError(t, err)

	assert.False(t, resp.HasRecipe)
	assert.Equal(t, 12, resp.CounterStock)
	assert.Equal(t, 12, f.skus.skus[soda.ID].CurrentStallStock)
	assert.Empty(t, resp.IngredientsUsed)

	require.Len(t, f.ledger.transferLogs, 1)
	assert.False(t, f.ledger.transferLogs[0].HasRecipe)
}

func TestSendToCounter_InsufficientIngredientFailsWhole(t *testing.T) {
	f := newCounterFixture()

	now := time.Now().UTC()
	chicken := seedSemiItem(f.semi, "marinated chicken",
		model.SemiBatch{ID: uuid.New(), BatchID: "B-1", Quantity: dec("1"), CreatedAt: now, ExpiresAt: now.Add(time.Hour)})
	burger := seedSku(f.skus, "chicken burger", 0, "8.50")
	require.NoError(t, f.recipes.CreateSkuRecipe(context.Background(), &model.SkuRecipe{
		ID:        uuid.New(),
		SkuID:     burger.ID,
		HasRecipe: true,
		Ingredients: []model.RecipeIngredient{
			{ID: uuid.New(), IngredientType: "semiProcessed", IngredientID: chicken.ID, IngredientName: "marinated chicken", Quantity: dec("0.2"), Unit: "kg"},
		},
	}))

	_, err := f.svc.SendToCounter(context.Background(), dto.SendToCounterRequest{
		SkuID:    burger.ID.String(),
		Quantity: 10, // needs 2 kg, only 1 on hand
	}, "runner-bo")
	var insufficient *InsufficientStockError
	require.ErrorAs(t, err, &insufficient)

	assert.Equal(t, 0, f.skus.skus[burger.ID].CurrentStallStock)
	assert.Empty(t, f.ledger.transferLogs)
	assert.Empty(t, f.audit.events)
}

func TestReceiveTransfer_AlwaysGone(t *testing.T) {
	f := newCounterFixture()
	err := f.svc.ReceiveTransfer(context.Background(), uuid.NewString())
	assert.ErrorIs(t, err, ErrTransferReceiveRemoved)
}

func TestSendToCounter_UnknownSku(t *testing.T) {
	f := newCounterFixture()
	_, err := f.svc.SendToCounter(context.Background(), dto.SendToCounterRequest{
		SkuID:    uuid.NewString(),
		Quantity: 1,
	}, "runner-bo")
	var notFound *NotFoundError
	require.ErrorAs(t, err, &notFound)
	assert.Equal(t, "sku", notFound.Kind)
}

func TestListTransfers(t *testing.T) {
	f := newCounterFixture()
	soda := seedSku(f.skus, "canned soda", 0, "2.00")
	_, err := f.svc.SendToCounter(context.Background(), dto.SendToCounterRequest{SkuID: soda.ID.String(), Quantity: 5}, "runner-bo")
	require.NoError(t, err)

	items, err := f.svc.ListTransfers(context.Background(), 10)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "canned soda", items[0].SkuName)
	assert.Equal(t, 5, items[0].Quantity)
	assert.Equal(t, "runner-bo", items[0].Actor)
}
