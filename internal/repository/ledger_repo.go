package repository

import (
	"context"

	"stallpos/internal/model"

	"gorm.io/gorm"
)

// LedgerRepository persists the append-only transformation records. There are
// deliberately no update or delete methods: ledger rows are immutable.
type LedgerRepository interface {
	CreateCookingLogTx(tx *gorm.DB, l *model.BatchCookingLog) error
	CreateTransferLogTx(tx *gorm.DB, l *model.TransferLog) error

	ListCookingLogs(ctx context.Context, limit int) ([]model.BatchCookingLog, error)
	ListTransferLogs(ctx context.Context, limit int) ([]model.TransferLog, error)
}

type ledgerRepo struct{ db *gorm.DB }

func NewLedgerRepository(db *gorm.DB) LedgerRepository { return &ledgerRepo{db: db} }

func (r *ledgerRepo) CreateCookingLogTx(tx *gorm.DB, l *model.BatchCookingLog) error {
	return tx.Create(l).Error
}

func (r *ledgerRepo) CreateTransferLogTx(tx *gorm.DB, l *model.TransferLog) error {
	return tx.Create(l).Error
}

func (r *ledgerRepo) ListCookingLogs(ctx context.Context, limit int) ([]model.BatchCookingLog, error) {
	if limit <= 0 {
		limit = 100
	}
	var logs []model.BatchCookingLog
	err := r.db.WithContext(ctx).Preload("IngredientsUsed").
		Order("created_at DESC").Limit(limit).Find(&logs).Error
	return logs, err
}

func (r *ledgerRepo) ListTransferLogs(ctx context.Context, limit int) ([]model.TransferLog, error) {
	if limit <= 0 {
		limit = 100
	}
	var logs []model.TransferLog
	err := r.db.WithContext(ctx).Preload("IngredientsUsed").
		Order("created_at DESC").Limit(limit).Find(&logs).Error
	return logs, err
}
