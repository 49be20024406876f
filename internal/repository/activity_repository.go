package repository

import (
	"context"                      // Request scoped cancellation
	"fmt"                          // Error wrapping
	"time_manager/internal/domain" // Domain models

	"gorm.io/gorm" // ORM library
)

// ActivityListing is an activity row left-joined with one of its categories.
// Activities linked to several categories appear once per category.
type ActivityListing struct {
	ID           uint    `json:"id"`            // Activity ID
	Name         string  `json:"name"`          // Activity name
	Description  string  `json:"description"`   // Activity description
	CategoryID   *uint   `json:"category_id"`   // First linked category, nil when uncategorized
	CategoryName *string `json:"category_name"` // Name of that category
}

// ActivityRepository manages activities.
type ActivityRepository struct {
	store[domain.Activity]
}

func NewActivityRepository(db *gorm.DB) *ActivityRepository {
	return &ActivityRepository{store[domain.Activity]{db: db, name: "activity"}}
}

// ListWithCategory returns every activity with its category name, if any.
func (r *ActivityRepository) ListWithCategory(ctx context.Context) ([]ActivityListing, error) {
	var rows []ActivityListing
	err := r.db.WithContext(ctx).
		Table("activities AS a").
		Select("a.id, a.name, a.description, c.id AS category_id, c.name AS category_name").
		Joins("LEFT JOIN category_activities ca ON ca.activity_id = a.id").
		Joins("LEFT JOIN categories c ON c.id = ca.category_id").
		Order("a.id ASC, c.name ASC").
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("list activities: %w", err)
	}
	return rows, nil
}

// ListByUserAndCategory returns the activities of a category that the user has logged.
func (r *ActivityRepository) ListByUserAndCategory(ctx context.Context, userID, categoryID uint) ([]domain.Activity, error) {
	var rows []domain.Activity
	err := r.db.WithContext(ctx).
		Where("id IN (?)", r.db.Table("category_activities").Select("activity_id").Where("category_id = ?", categoryID)).
		Where("id IN (?)", r.db.Table("activity_logs").Select("activity_id").Where("user_id = ?", userID)).
		Order("id ASC").
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("list activities of user %d in category %d: %w", userID, categoryID, err)
	}
	return rows, nil
}
