package repository

import (
	"context"

	"stallpos/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// SkuRepository is the data access contract for sellable SKUs.
type SkuRepository interface {
	Create(ctx context.Context, sku *model.SkuItem) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.SkuItem, error)
	List(ctx context.Context) ([]model.SkuItem, error)
	Update(ctx context.Context, sku *model.SkuItem) error
	Delete(ctx context.Context, id uuid.UUID) error

	// Used inside transactions — callers must pass the tx instance
	FindByIDTx(tx *gorm.DB, id uuid.UUID) (*model.SkuItem, error)
	// AddStallStockTx adjusts current_stall_stock by delta. Negative deltas are
	// guarded so stall stock can never go below zero; the guard failing returns
	// ErrStaleStock.
	AddStallStockTx(tx *gorm.DB, id uuid.UUID, delta int) error

	ListLowStock(ctx context.Context) ([]model.SkuItem, error)

	DB() *gorm.DB
}

type skuRepo struct{ db *gorm.DB }

func NewSkuRepository(db *gorm.DB) SkuRepository { return &skuRepo{db: db} }

func (r *skuRepo) Create(ctx context.Context, sku *model.SkuItem) error {
	return r.db.WithContext(ctx).Create(sku).Error
}

func (r *skuRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.SkuItem, error) {
	var sku model.SkuItem
	err := r.db.WithContext(ctx).First(&sku, id).Error
	return &sku, err
}

func (r *skuRepo) List(ctx context.Context) ([]model.SkuItem, error) {
	var skus []model.SkuItem
	err := r.db.WithContext(ctx).Order("name ASC").Find(&skus).Error
	return skus, err
}

func (r *skuRepo) Update(ctx context.Context, sku *model.SkuItem) error {
	return r.db.WithContext(ctx).Save(sku).Error
}

func (r *skuRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&model.SkuItem{}, id).Error
}

func (r *skuRepo) FindByIDTx(tx *gorm.DB, id uuid.UUID) (*model.SkuItem, error) {
	var sku model.SkuItem
	err := tx.First(&sku, id).Error
	return &sku, err
}

func (r *skuRepo) AddStallStockTx(tx *gorm.DB, id uuid.UUID, delta int) error {
	q := tx.Model(&model.SkuItem{}).Where("id = ?", id)
	if delta < 0 {
		q = q.Where("current_stall_stock >= ?", -delta)
	}
	res := q.Update("current_stall_stock", gorm.Expr("current_stall_stock + ?", delta))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrStaleStock
	}
	return nil
}

func (r *skuRepo) ListLowStock(ctx context.Context) ([]model.SkuItem, error) {
	var skus []model.SkuItem
	err := r.db.WithContext(ctx).
		Where("current_stall_stock <= low_stock_threshold").
		Order("name ASC").
		Find(&skus).Error
	return skus, err
}

func (r *skuRepo) DB() *gorm.DB { return r.db }
