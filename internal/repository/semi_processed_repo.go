package repository

import (
	"context"
	"time"

	"stallpos/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// SemiProcessedRepository is the data access contract for semi-processed items
// and their perishable batches. Batch preloads are always ordered by created_at
// so FIFO consumption can walk the slice front to back.
type SemiProcessedRepository interface {
	Create(ctx context.Context, item *model.SemiProcessedItem) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.SemiProcessedItem, error)
	List(ctx context.Context) ([]model.SemiProcessedItem, error)
	Update(ctx context.Context, item *model.SemiProcessedItem) error
	Delete(ctx context.Context, id uuid.UUID) error

	// PruneExpired removes all batches of one item whose expires_at <= now and
	// subtracts their quantity from current_stock, atomically. Returns the
	// quantity and count removed; (0, 0) when nothing was expired.
	PruneExpired(ctx context.Context, itemID uuid.UUID, now time.Time) (decimal.Decimal, int, error)

	// Used inside transactions — callers must pass the tx instance
	FindByIDTx(tx *gorm.DB, id uuid.UUID) (*model.SemiProcessedItem, error)
	FindByNameTx(tx *gorm.DB, name string) (*model.SemiProcessedItem, error)
	CreateTx(tx *gorm.DB, item *model.SemiProcessedItem) error
	AddStockTx(tx *gorm.DB, id uuid.UUID, delta decimal.Decimal) error
	CreateBatchTx(tx *gorm.DB, batch *model.SemiBatch) error
	UpdateBatchQuantityTx(tx *gorm.DB, batchRowID uuid.UUID, qty decimal.Decimal) error
	DeleteBatchTx(tx *gorm.DB, batchRowID uuid.UUID) error

	DB() *gorm.DB
}

type semiProcessedRepo struct{ db *gorm.DB }

func NewSemiProcessedRepository(db *gorm.DB) SemiProcessedRepository {
	return &semiProcessedRepo{db: db}
}

func batchOrder(db *gorm.DB) *gorm.DB { return db.Order("semi_batches.created_at ASC") }

func (r *semiProcessedRepo) Create(ctx context.Context, item *model.SemiProcessedItem) error {
	return r.db.WithContext(ctx).Create(item).Error
}

func (r *semiProcessedRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.SemiProcessedItem, error) {
	var item model.SemiProcessedItem
	err := r.db.WithContext(ctx).Preload("Batches", batchOrder).First(&item, id).Error
	return &item, err
}

func (r *semiProcessedRepo) List(ctx context.Context) ([]model.SemiProcessedItem, error) {
	var items []model.SemiProcessedItem
	err := r.db.WithContext(ctx).Preload("Batches", batchOrder).Order("name ASC").Find(&items).Error
	return items, err
}

func (r *semiProcessedRepo) Update(ctx context.Context, item *model.SemiProcessedItem) error {
	return r.db.WithContext(ctx).Save(item).Error
}

func (r *semiProcessedRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("item_id = ?", id).Delete(&model.SemiBatch{}).Error; err != nil {
			return err
		}
		return tx.Delete(&model.SemiProcessedItem{}, id).Error
	})
}

func (r *semiProcessedRepo) PruneExpired(ctx context.Context, itemID uuid.UUID, now time.Time) (decimal.Decimal, int, error) {
	removed := decimal.Zero
	count := 0
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var expired []model.SemiBatch
		if err := tx.Where("item_id = ? AND expires_at <= ?", itemID, now).Find(&expired).Error; err != nil {
			return err
		}
		if len(expired) == 0 {
			return nil
		}
		for _, b := range expired {
			removed = removed.Add(b.Quantity)
		}
		count = len(expired)
		if err := tx.Where("item_id = ? AND expires_at <= ?", itemID, now).Delete(&model.SemiBatch{}).Error; err != nil {
			return err
		}
		return tx.Model(&model.SemiProcessedItem{}).
			Where("id = ?", itemID).
			Update("current_stock", gorm.Expr("current_stock - ?", removed)).Error
	})
	if err != nil {
		return decimal.Zero, 0, err
	}
	return removed, count, nil
}

func (r *semiProcessedRepo) FindByIDTx(tx *gorm.DB, id uuid.UUID) (*model.SemiProcessedItem, error) {
	var item model.SemiProcessedItem
	err := tx.Preload("Batches", batchOrder).First(&item, id).Error
	return &item, err
}

func (r *semiProcessedRepo) FindByNameTx(tx *gorm.DB, name string) (*model.SemiProcessedItem, error) {
	var item model.SemiProcessedItem
	err := tx.Preload("Batches", batchOrder).Where("name = ?", name).First(&item).Error
	return &item, err
}

func (r *semiProcessedRepo) CreateTx(tx *gorm.DB, item *model.SemiProcessedItem) error {
	return tx.Create(item).Error
}

func (r *semiProcessedRepo) AddStockTx(tx *gorm.DB, id uuid.UUID, delta decimal.Decimal) error {
	res := tx.Model(&model.SemiProcessedItem{}).
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

func (r *semiProcessedRepo) CreateBatchTx(tx *gorm.DB, batch *model.SemiBatch) error {
	return tx.Create(batch).Error
}

func (r *semiProcessedRepo) UpdateBatchQuantityTx(tx *gorm.DB, batchRowID uuid.UUID, qty decimal.Decimal) error {
	return tx.Model(&model.SemiBatch{}).Where("id = ?", batchRowID).Update("quantity", qty).Error
}

func (r *semiProcessedRepo) DeleteBatchTx(tx *gorm.DB, batchRowID uuid.UUID) error {
	return tx.Delete(&model.SemiBatch{}, batchRowID).Error
}

func (r *semiProcessedRepo) DB() *gorm.DB { return r.db }
