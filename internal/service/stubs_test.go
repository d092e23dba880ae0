package service

import (
	"context"
	"errors"
	"sort"
	"time"

	"stallpos/internal/model"
	"stallpos/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

var errNotFound = errors.New("not found")

// ── stubRawRepo ───────────────────────────────────────────────────────────────

type stubRawRepo struct {
	ingredients map[uuid.UUID]*model.RawIngredient
}

func newStubRawRepo() *stubRawRepo {
	return &stubRawRepo{ingredients: make(map[uuid.UUID]*model.RawIngredient)}
}

func (r *stubRawRepo) Create(_ context.Context, ing *model.RawIngredient) error {
	if ing.ID == uuid.Nil {
		ing.ID = uuid.New()
	}
	r.ingredients[ing.ID] = ing
	return nil
}

func (r *stubRawRepo) FindByID(_ context.Context, id uuid.UUID) (*model.RawIngredient, error) {
	ing, ok := r.ingredients[id]
	if !ok {
		return nil, errNotFound
	}
	cp := *ing
	return &cp, nil
}

func (r *stubRawRepo) FindByName(_ context.Context, name string) (*model.RawIngredient, error) {
	for _, ing := range r.ingredients {
		if ing.Name == name {
			return ing, nil
		}
	}
	return nil, errNotFound
}

func (r *stubRawRepo) List(_ context.Context) ([]model.RawIngredient, error) {
	out := make([]model.RawIngredient, 0, len(r.ingredients))
	for _, ing := range r.ingredients {
		out = append(out, *ing)
	}
	return out, nil
}

func (r *stubRawRepo) Update(_ context.Context, ing *model.RawIngredient) error {
	r.ingredients[ing.ID] = ing
	return nil
}

func (r *stubRawRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(r.ingredients, id)
	return nil
}

func (r *stubRawRepo) AddStock(_ context.Context, id uuid.UUID, delta decimal.Decimal) error {
	ing, ok := r.ingredients[id]
	if !ok {
		return errNotFound
	}
	ing.CurrentStock = ing.CurrentStock.Add(delta)
	return nil
}

func (r *stubRawRepo) FindByIDTx(_ *gorm.DB, id uuid.UUID) (*model.RawIngredient, error) {
	return r.FindByID(context.Background(), id)
}

func (r *stubRawRepo) DeductStockTx(_ *gorm.DB, id uuid.UUID, qty decimal.Decimal) error {
	ing, ok := r.ingredients[id]
	if !ok {
		return repository.ErrStaleStock
	}
	if ing.CurrentStock.LessThan(qty) {
		return repository.ErrStaleStock
	}
	ing.CurrentStock = ing.CurrentStock.Sub(qty)
	return nil
}

func (r *stubRawRepo) ListBelowReorder(_ context.Context) ([]model.RawIngredient, error) {
	var out []model.RawIngredient
	for _, ing := range r.ingredients {
		if ing.CurrentStock.LessThanOrEqual(ing.ReorderLevel) {
			out = append(out, *ing)
		}
	}
	return out, nil
}

func (r *stubRawRepo) DB() *gorm.DB { return nil }

var _ repository.RawIngredientRepository = (*stubRawRepo)(nil)

// ── stubSemiRepo ──────────────────────────────────────────────────────────────

type stubSemiRepo struct {
	items   map[uuid.UUID]*model.SemiProcessedItem
	batches map[uuid.UUID]*model.SemiBatch // batch row id -> batch
}

func newStubSemiRepo() *stubSemiRepo {
	return &stubSemiRepo{
		items:   make(map[uuid.UUID]*model.SemiProcessedItem),
		batches: make(map[uuid.UUID]*model.SemiBatch),
	}
}

// withBatches returns a copy of the item carrying its live batches in
// created_at order, matching the repository's preload contract.
func (r *stubSemiRepo) withBatches(item *model.SemiProcessedItem) *model.SemiProcessedItem {
	cp := *item
	cp.Batches = nil
	for _, b := range r.batches {
		if b.ItemID == item.ID {
			cp.Batches = append(cp.Batches, *b)
		}
	}
	sort.Slice(cp.Batches, func(i, j int) bool {
		return cp.Batches[i].CreatedAt.Before(cp.Batches[j].CreatedAt)
	})
	return &cp
}

func (r *stubSemiRepo) Create(_ context.Context, item *model.SemiProcessedItem) error {
	if item.ID == uuid.Nil {
		item.ID = uuid.New()
	}
	for i := range item.Batches {
		b := item.Batches[i]
		r.batches[b.ID] = &b
	}
	stored := *item
	stored.Batches = nil
	r.items[item.ID] = &stored
	return nil
}

func (r *stubSemiRepo) FindByID(_ context.Context, id uuid.UUID) (*model.SemiProcessedItem, error) {
	item, ok := r.items[id]
	if !ok {
		return nil, errNotFound
	}
	return r.withBatches(item), nil
}

func (r *stubSemiRepo) List(_ context.Context) ([]model.SemiProcessedItem, error) {
	out := make([]model.SemiProcessedItem, 0, len(r.items))
	for _, item := range r.items {
		out = append(out, *r.withBatches(item))
	}
	return out, nil
}

func (r *stubSemiRepo) Update(_ context.Context, item *model.SemiProcessedItem) error {
	r.items[item.ID] = item
	return nil
}

func (r *stubSemiRepo) Delete(_ context.Context, id uuid.UUID) error {
	for bid, b := range r.batches {
		if b.ItemID == id {
			delete(r.batches, bid)
		}
	}
	delete(r.items, id)
	return nil
}

func (r *stubSemiRepo) PruneExpired(_ context.Context, itemID uuid.UUID, now time.Time) (decimal.Decimal, int, error) {
	item, ok := r.items[itemID]
	if !ok {
		return decimal.Zero, 0, errNotFound
	}
	removed := decimal.Zero
	count := 0
	for bid, b := range r.batches {
		if b.ItemID == itemID && !b.ExpiresAt.After(now) {
			removed = removed.Add(b.Quantity)
			count++
			delete(r.batches, bid)
		}
	}
	item.CurrentStock = item.CurrentStock.Sub(removed)
	return removed, count, nil
}

func (r *stubSemiRepo) FindByIDTx(_ *gorm.DB, id uuid.UUID) (*model.SemiProcessedItem, error) {
	return r.FindByID(context.Background(), id)
}

func (r *stubSemiRepo) FindByNameTx(_ *gorm.DB, name string) (*model.SemiProcessedItem, error) {
	for _, item := range r.items {
		if item.Name == name {
			return r.withBatches(item), nil
		}
	}
	return nil, errNotFound
}

func (r *stubSemiRepo) CreateTx(_ *gorm.DB, item *model.SemiProcessedItem) error {
	return r.Create(context.Background(), item)
}

func (r *stubSemiRepo) AddStockTx(_ *gorm.DB, id uuid.UUID, delta decimal.Decimal) error {
	item, ok := r.items[id]
	if !ok {
		return errNotFound
	}
	item.CurrentStock = item.CurrentStock.Add(delta)
	return nil
}

func (r *stubSemiRepo) CreateBatchTx(_ *gorm.DB, batch *model.SemiBatch) error {
	if batch.ID == uuid.Nil {
		batch.ID = uuid.New()
	}
	cp := *batch
	r.batches[batch.ID] = &cp
	return nil
}

func (r *stubSemiRepo) UpdateBatchQuantityTx(_ *gorm.DB, batchRowID uuid.UUID, qty decimal.Decimal) error {
	b, ok := r.batches[batchRowID]
	if !ok {
		return errNotFound
	}
	b.Quantity = qty
	return nil
}

func (r *stubSemiRepo) DeleteBatchTx(_ *gorm.DB, batchRowID uuid.UUID) error {
	delete(r.batches, batchRowID)
	return nil
}

func (r *stubSemiRepo) DB() *gorm.DB { return nil }

var _ repository.SemiProcessedRepository = (*stubSemiRepo)(nil)

// ── stubPurchasedRepo ─────────────────────────────────────────────────────────

type stubPurchasedRepo struct {
	goods map[uuid.UUID]*model.PurchasedGood
}

func newStubPurchasedRepo() *stubPurchasedRepo {
	return &stubPurchasedRepo{goods: make(map[uuid.UUID]*model.PurchasedGood)}
}

func (r *stubPurchasedRepo) Create(_ context.Context, g *model.PurchasedGood) error {
	if g.ID == uuid.Nil {
		g.ID = uuid.New()
	}
	r.goods[g.ID] = g
	return nil
}

func (r *stubPurchasedRepo) FindByID(_ context.Context, id uuid.UUID) (*model.PurchasedGood, error) {
	g, ok := r.goods[id]
	if !ok {
		return nil, errNotFound
	}
	return g, nil
}

func (r *stubPurchasedRepo) List(_ context.Context) ([]model.PurchasedGood, error) {
	out := make([]model.PurchasedGood, 0, len(r.goods))
	for _, g := range r.goods {
		out = append(out, *g)
	}
	return out, nil
}

func (r *stubPurchasedRepo) Update(_ context.Context, g *model.PurchasedGood) error {
	r.goods[g.ID] = g
	return nil
}

func (r *stubPurchasedRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(r.goods, id)
	return nil
}

func (r *stubPurchasedRepo) AddStock(_ context.Context, id uuid.UUID, delta decimal.Decimal) error {
	g, ok := r.goods[id]
	if !ok {
		return errNotFound
	}
	g.CurrentStock = g.CurrentStock.Add(delta)
	return nil
}

func (r *stubPurchasedRepo) FindByIDTx(_ *gorm.DB, id uuid.UUID) (*model.PurchasedGood, error) {
	return r.FindByID(context.Background(), id)
}

func (r *stubPurchasedRepo) DeductSplitTx(_ *gorm.DB, id uuid.UUID, fromCounter, fromWarehouse decimal.Decimal) error {
	g, ok := r.goods[id]
	if !ok {
		return repository.ErrStaleStock
	}
	if g.CounterStock.LessThan(fromCounter) || g.CurrentStock.LessThan(fromWarehouse) {
		return repository.ErrStaleStock
	}
	g.CounterStock = g.CounterStock.Sub(fromCounter)
	g.CurrentStock = g.CurrentStock.Sub(fromWarehouse)
	return nil
}

func (r *stubPurchasedRepo) ListBelowReorder(_ context.Context) ([]model.PurchasedGood, error) {
	var out []model.PurchasedGood
	for _, g := range r.goods {
		if g.CurrentStock.Add(g.CounterStock).LessThanOrEqual(g.ReorderLevel) {
			out = append(out, *g)
		}
	}
	return out, nil
}

var _ repository.PurchasedGoodRepository = (*stubPurchasedRepo)(nil)

// ── stubSkuRepo ───────────────────────────────────────────────────────────────

type stubSkuRepo struct {
	skus map[uuid.UUID]*model.SkuItem
}

func newStubSkuRepo() *stubSkuRepo {
	return &stubSkuRepo{skus: make(map[uuid.UUID]*model.SkuItem)}
}

func (r *stubSkuRepo) Create(_ context.Context, sku *model.SkuItem) error {
	if sku.ID == uuid.Nil {
		sku.ID = uuid.New()
	}
	r.skus[sku.ID] = sku
	return nil
}

func (r *stubSkuRepo) FindByID(_ context.Context, id uuid.UUID) (*model.SkuItem, error) {
	sku, ok := r.skus[id]
	if !ok {
		return nil, errNotFound
	}
	cp := *sku
	return &cp, nil
}

func (r *stubSkuRepo) List(_ context.Context) ([]model.SkuItem, error) {
	out := make([]model.SkuItem, 0, len(r.skus))
	for _, sku := range r.skus {
		out = append(out, *sku)
	}
	return out, nil
}

func (r *stubSkuRepo) Update(_ context.Context, sku *model.SkuItem) error {
	r.skus[sku.ID] = sku
	return nil
}

func (r *stubSkuRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(r.skus, id)
	return nil
}

func (r *stubSkuRepo) FindByIDTx(_ *gorm.DB, id uuid.UUID) (*model.SkuItem, error) {
	return r.FindByID(context.Background(), id)
}

func (r *stubSkuRepo) AddStallStockTx(_ *gorm.DB, id uuid.UUID, delta int) error {
	sku, ok := r.skus[id]
	if !ok {
		return repository.ErrStaleStock
	}
	if delta < 0 && sku.CurrentStallStock < -delta {
		return repository.ErrStaleStock
	}
	sku.CurrentStallStock += delta
	return nil
}

func (r *stubSkuRepo) ListLowStock(_ context.Context) ([]model.SkuItem, error) {
	var out []model.SkuItem
	for _, sku := range r.skus {
		if sku.CurrentStallStock <= sku.LowStockThreshold {
			out = append(out, *sku)
		}
	}
	return out, nil
}

func (r *stubSkuRepo) DB() *gorm.DB { return nil }

var _ repository.SkuRepository = (*stubSkuRepo)(nil)

// ── stubRecipeRepo ────────────────────────────────────────────────────────────

type stubRecipeRepo struct {
	semiRecipes map[uuid.UUID]*model.SemiProcessedRecipe
	skuRecipes  map[uuid.UUID]*model.SkuRecipe // keyed by SkuID
}

func newStubRecipeRepo() *stubRecipeRepo {
	return &stubRecipeRepo{
		semiRecipes: make(map[uuid.UUID]*model.SemiProcessedRecipe),
		skuRecipes:  make(map[uuid.UUID]*model.SkuRecipe),
	}
}

func (r *stubRecipeRepo) CreateSemiRecipe(_ context.Context, rec *model.SemiProcessedRecipe) error {
	if rec.ID == uuid.Nil {
		rec.ID = uuid.New()
	}
	r.semiRecipes[rec.ID] = rec
	return nil
}

func (r *stubRecipeRepo) FindSemiRecipeByID(_ context.Context, id uuid.UUID) (*model.SemiProcessedRecipe, error) {
	rec, ok := r.semiRecipes[id]
	if !ok {
		return nil, errNotFound
	}
	return rec, nil
}

func (r *stubRecipeRepo) ListSemiRecipes(_ context.Context) ([]model.SemiProcessedRecipe, error) {
	out := make([]model.SemiProcessedRecipe, 0, len(r.semiRecipes))
	for _, rec := range r.semiRecipes {
		out = append(out, *rec)
	}
	return out, nil
}

func (r *stubRecipeRepo) DeleteSemiRecipe(_ context.Context, id uuid.UUID) error {
	delete(r.semiRecipes, id)
	return nil
}

func (r *stubRecipeRepo) CreateSkuRecipe(_ context.Context, rec *model.SkuRecipe) error {
	if rec.ID == uuid.Nil {
		rec.ID = uuid.New()
	}
	r.skuRecipes[rec.SkuID] = rec
	return nil
}

func (r *stubRecipeRepo) FindSkuRecipeBySkuID(_ context.Context, skuID uuid.UUID) (*model.SkuRecipe, error) {
	rec, ok := r.skuRecipes[skuID]
	if !ok {
		return nil, errNotFound
	}
	return rec, nil
}

func (r *stubRecipeRepo) ListSkuRecipes(_ context.Context) ([]model.SkuRecipe, error) {
	out := make([]model.SkuRecipe, 0, len(r.skuRecipes))
	for _, rec := range r.skuRecipes {
		out = append(out, *rec)
	}
	return out, nil
}

func (r *stubRecipeRepo) DeleteSkuRecipe(_ context.Context, id uuid.UUID) error {
	for skuID, rec := range r.skuRecipes {
		if rec.ID == id {
			delete(r.skuRecipes, skuID)
		}
	}
	return nil
}

var _ repository.RecipeRepository = (*stubRecipeRepo)(nil)

// ── stubLedgerRepo ────────────────────────────────────────────────────────────

type stubLedgerRepo struct {
	cookingLogs  []model.BatchCookingLog
	transferLogs []model.TransferLog
}

func (r *stubLedgerRepo) CreateCookingLogTx(_ *gorm.DB, l *model.BatchCookingLog) error {
	r.cookingLogs = append(r.cookingLogs, *l)
	return nil
}

func (r *stubLedgerRepo) CreateTransferLogTx(_ *gorm.DB, l *model.TransferLog) error {
	r.transferLogs = append(r.transferLogs, *l)
	return nil
}

func (r *stubLedgerRepo) ListCookingLogs(_ context.Context, _ int) ([]model.BatchCookingLog, error) {
	return r.cookingLogs, nil
}

func (r *stubLedgerRepo) ListTransferLogs(_ context.Context, _ int) ([]model.TransferLog, error) {
	return r.transferLogs, nil
}

var _ repository.LedgerRepository = (*stubLedgerRepo)(nil)

// ── stubTxnRepo ───────────────────────────────────────────────────────────────

type stubTxnRepo struct {
	txns map[uuid.UUID]*model.Transaction
}

func newStubTxnRepo() *stubTxnRepo {
	return &stubTxnRepo{txns: make(map[uuid.UUID]*model.Transaction)}
}

func (r *stubTxnRepo) CreateTx(_ *gorm.DB, t *model.Transaction) error {
	for _, existing := range r.txns {
		if existing.TransactionID == t.TransactionID {
			return errors.New("duplicate transaction_id")
		}
	}
	r.txns[t.ID] = t
	return nil
}

func (r *stubTxnRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Transaction, error) {
	t, ok := r.txns[id]
	if !ok {
		return nil, errNotFound
	}
	return t, nil
}

func (r *stubTxnRepo) List(_ context.Context, _ repository.TransactionFilter) ([]model.Transaction, int64, error) {
	out := make([]model.Transaction, 0, len(r.txns))
	for _, t := range r.txns {
		out = append(out, *t)
	}
	return out, int64(len(out)), nil
}

func (r *stubTxnRepo) DB() *gorm.DB { return nil }

var _ repository.TransactionRepository = (*stubTxnRepo)(nil)

// ── recordingAudit ────────────────────────────────────────────────────────────

// recordingAudit captures audit events so tests can assert what was emitted.
type recordingAudit struct {
	events []model.ActivityLog
}

func (a *recordingAudit) Record(_ context.Context, action, category, description string, _ map[string]any, actor string) *model.ActivityLog {
	entry := model.ActivityLog{
		ID:          uuid.New(),
		Action:      action,
		Category:    category,
		Description: description,
		Actor:       actor,
	}
	a.events = append(a.events, entry)
	return &entry
}

var _ AuditSink = (*recordingAudit)(nil)
var _ AuditSink = NopAuditSink{}
