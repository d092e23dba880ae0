package repository

import (
	"context"

	"stallpos/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// PurchasedGoodRepository is the data access contract for purchased goods with
// their dual warehouse / counter stock pools.
type PurchasedGoodRepository interface {
	Create(ctx context.Context, g *model.PurchasedGood) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.PurchasedGood, error)
	List(ctx context.Context) ([]model.PurchasedGood, error)
	Update(ctx context.Context, g *model.PurchasedGood) error
	Delete(ctx context.Context, id uuid.UUID) error

	// AddStock increments the warehouse pool (supplier restock).
	AddStock(ctx context.Context, id uuid.UUID, delta decimal.Decimal) error

	// Used inside transactions — callers must pass the tx instance
	FindByIDTx(tx *gorm.DB, id uuid.UUID) (*model.PurchasedGood, error)
	// DeductSplitTx drains fromCounter from counter_stock and fromWarehouse from
	// current_stock in one guarded UPDATE. Returns ErrStaleStock when either
	// pool no longer covers its share.
	DeductSplitTx(tx *gorm.DB, id uuid.UUID, fromCounter, fromWarehouse decimal.Decimal) error

	ListBelowReorder(ctx context.Context) ([]model.PurchasedGood, error)
}

type purchasedGoodRepo struct{ db *gorm.DB }

func NewPurchasedGoodRepository(db *gorm.DB) PurchasedGoodRepository {
	return &purchasedGoodRepo{db: db}
}

func (r *purchasedGoodRepo) Create(ctx context.Context, g *model.PurchasedGood) error {
	return r.db.WithContext(ctx).Create(g).Error
}

func (r *purchasedGoodRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.PurchasedGood, error) {
	var g model.PurchasedGood
	err := r.db.WithContext(ctx).First(&g, id).Error
	return &g, err
}

func (r *purchasedGoodRepo) List(ctx context.Context) ([]model.PurchasedGood, error) {
	var goods []model.PurchasedGood
	err := r.db.WithContext(ctx).Order("name ASC").Find(&goods).Error
	return goods, err
}

func (r *purchasedGoodRepo) Update(ctx context.Context, g *model.PurchasedGood) error {
	return r.db.WithContext(ctx).Save(g).Error
}

func (r *purchasedGoodRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&model.PurchasedGood{}, id).Error
}

func (r *purchasedGoodRepo) AddStock(ctx context.Context, id uuid.UUID, delta decimal.Decimal) error {
	res := r.db.WithContext(ctx).Model(&model.PurchasedGood{}).
		Where("id = ?", id).
		Update("current_stock", gorm.Expr("current_stock + ?", delta))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *purchasedGoodRepo) FindByIDTx(tx *gorm.DB, id uuid.UUID) (*model.PurchasedGood, error) {
	var g model.PurchasedGood
	err := tx.First(&g, id).Error
	return &g, err
}

func (r *purchasedGoodRepo) DeductSplitTx(tx *gorm.DB, id uuid.UUID, fromCounter, fromWarehouse decimal.Decimal) error {
	res := tx.Model(&model.PurchasedGood{}).
		Where("id = ? AND counter_stock >= ? AND current_stock >= ?", id, fromCounter, fromWarehouse).
		Updates(map[string]interface{}{
			"counter_stock": gorm.Expr("counter_stock - ?", fromCounter),
			"current_stock": gorm.Expr("current_stock - ?", fromWarehouse),
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrStaleStock
	}
	return nil
}

func (r *purchasedGoodRepo) ListBelowReorder(ctx context.Context) ([]model.PurchasedGood, error) {
	var goods []model.PurchasedGood
	err := r.db.WithContext(ctx).
		Where("current_stock + counter_stock <= reorder_level").
		Order("name ASC").
		Find(&goods).Error
	return goods, err
}
