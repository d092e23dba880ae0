package repository

import (
	"context"

	"stallpos/internal/model"

	"gorm.io/gorm"
)

// ActivityLogRepository persists the audit trail written by the worker pool.
type ActivityLogRepository interface {
	Create(ctx context.Context, l *model.ActivityLog) error
	List(ctx context.Context, category string, limit int) ([]model.ActivityLog, error)
}

type activityLogRepo struct{ db *gorm.DB }

func NewActivityLogRepository(db *gorm.DB) ActivityLogRepository {
	return &activityLogRepo{db: db}
}

func (r *activityLogRepo) Create(ctx context.Context, l *model.ActivityLog) error {
	return r.db.WithContext(ctx).Create(l).Error
}

func (r *activityLogRepo) List(ctx context.Context, category string, limit int) ([]model.ActivityLog, error) {
	if limit <= 0 {
		limit = 100
	}
	q := r.db.WithContext(ctx).Model(&model.ActivityLog{})
	if category != "" {
		q = q.Where("category = ?", category)
	}
	var logs []model.ActivityLog
	err := q.Order("created_at DESC").Limit(limit).Find(&logs).Error
	return logs, err
}
