package repository

import (
	"context"
	"errors"

	"stallpos/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// ErrStaleStock is returned by conditional stock updates when the guarded
// UPDATE matched no rows — the stock changed underneath us (or is insufficient).
// Inside a transaction the caller rolls back and surfaces an insufficiency.
var ErrStaleStock = errors.New("conditional stock update affected no rows")

// RawIngredientRepository defines the data access contract for raw ingredients.
// Services depend on this interface, not on the concrete GORM implementation,
// enabling clean unit testing via stubs.
type RawIngredientRepository interface {
	Create(ctx context.Context, ing *model.RawIngredient) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.RawIngredient, error)
	FindByName(ctx context.Context, name string) (*model.RawIngredient, error)
	List(ctx context.Context) ([]model.RawIngredient, error)
	Update(ctx context.Context, ing *model.RawIngredient) error
	Delete(ctx context.Context, id uuid.UUID) error

	// AddStock increments current_stock (admin replenishment).
	AddStock(ctx context.Context, id uuid.UUID, delta decimal.Decimal) error

	// Used inside transactions — callers must pass the tx instance
	FindByIDTx(tx *gorm.DB, id uuid.UUID) (*model.RawIngredient, error)
	// DeductStockTx decrements current_stock iff enough stock remains.
	// Returns ErrStaleStock when the guard fails.
	DeductStockTx(tx *gorm.DB, id uuid.UUID, qty decimal.Decimal) error

	ListBelowReorder(ctx context.Context) ([]model.RawIngredient, error)

	// DB exposes the underlying *gorm.DB so services can open transactions.
	DB() *gorm.DB
}

type rawIngredientRepo struct{ db *gorm.DB }

func NewRawIngredientRepository(db *gorm.DB) RawIngredientRepository {
	return &rawIngredientRepo{db: db}
}

func (r *rawIngredientRepo) Create(ctx context.Context, ing *model.RawIngredient) error {
	return r.db.WithContext(ctx).Create(ing).Error
}

func (r *rawIngredientRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.RawIngredient, error) {
	var ing model.RawIngredient
	err := r.db.WithContext(ctx).First(&ing, id).Error
	return &ing, err
}

func (r *rawIngredientRepo) FindByName(ctx context.Context, name string) (*model.RawIngredient, error) {
	var ing model.RawIngredient
	err := r.db.WithContext(ctx).Where("name = ?", name).First(&ing).Error
	return &ing, err
}

func (r *rawIngredientRepo) List(ctx context.Context) ([]model.RawIngredient, error) {
	var ings []model.RawIngredient
	err := r.db.WithContext(ctx).Order("name ASC").Find(&ings).Error
	return ings, err
}

func (r *rawIngredientRepo) Update(ctx context.Context, ing *model.RawIngredient) error {
	return r.db.WithContext(ctx).Save(ing).Error
}

func (r *rawIngredientRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&model.RawIngredient{}, id).Error
}

func (r *rawIngredientRepo) AddStock(ctx context.Context, id uuid.UUID, delta decimal.Decimal) error {
	res := r.db.WithContext(ctx).Model(&model.RawIngredient{}).
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

func (r *rawIngredientRepo) FindByIDTx(tx *gorm.DB, id uuid.UUID) (*model.RawIngredient, error) {
	var ing model.RawIngredient
	err := tx.First(&ing, id).Error
	return &ing, err
}

func (r *rawIngredientRepo) DeductStockTx(tx *gorm.DB, id uuid.UUID, qty decimal.Decimal) error {
	res := tx.Model(&model.RawIngredient{}).
		Where("id = ? AND current_stock >= ?", id, qty).
		Update("current_stock", gorm.Expr("current_stock - ?", qty))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrStaleStock
	}
	return nil
}

func (r *rawIngredientRepo) ListBelowReorder(ctx context.Context) ([]model.RawIngredient, error) {
	var ings []model.RawIngredient
	err := r.db.WithContext(ctx).
		Where("current_stock <= reorder_level").
		Order("name ASC").
		Find(&ings).Error
	return ings, err
}

func (r *rawIngredientRepo) DB() *gorm.DB { return r.db }
