package repository

import (
	"context"                      // Request scoped cancellation
	"fmt"                          // Error wrapping
	"time_manager/internal/domain" // Domain models

	"gorm.io/gorm" // ORM library
)

// ActivityLogRepository manages logged activity occurrences.
type ActivityLogRepository struct {
	store[domain.ActivityLog]
}

func NewActivityLogRepository(db *gorm.DB) *ActivityLogRepository {
	return &ActivityLogRepository{store[domain.ActivityLog]{db: db, name: "activity log"}}
}

func (r *ActivityLogRepository) ListByUser(ctx context.Context, userID uint) ([]domain.ActivityLog, error) {
	return r.listWhere(ctx, "user_id = ?", userID)
}

func (r *ActivityLogRepository) ListByActivity(ctx context.Context, activityID uint) ([]domain.ActivityLog, error) {
	return r.listWhere(ctx, "activity_id = ?", activityID)
}

// CountByActivity returns how many logs reference the activity.
func (r *ActivityLogRepository) CountByActivity(ctx context.Context, activityID uint) (int64, error) {
	return r.countWhere(ctx, "activity_id = ?", activityID)
}

// CountByUser returns how many logs belong to the user.
func (r *ActivityLogRepository) CountByUser(ctx context.Context, userID uint) (int64, error) {
	return r.countWhere(ctx, "user_id = ?", userID)
}

func (r *ActivityLogRepository) listWhere(ctx context.Context, cond string, arg uint) ([]domain.ActivityLog, error) {
	var rows []domain.ActivityLog
	if err := r.db.WithContext(ctx).Where(cond, arg).Order("start_time DESC").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("list activity logs: %w", err)
	}
	return rows, nil
}

func (r *ActivityLogRepository) countWhere(ctx context.Context, cond string, arg uint) (int64, error) {
	var n int64
	if err := r.db.WithContext(ctx).Model(&domain.ActivityLog{}).Where(cond, arg).Count(&n).Error; err != nil {
		return 0, fmt.Errorf("count activity logs: %w", err)
	}
	return n, nil
}
