package repository

import (
	"context"                      // Request scoped cancellation
	"time_manager/internal/domain" // Domain models

	"gorm.io/gorm" // ORM library
)

// CategoryRepository manages activity categories.
type CategoryRepository struct {
	store[domain.Category]
}

func NewCategoryRepository(db *gorm.DB) *CategoryRepository {
	return &CategoryRepository{store[domain.Category]{db: db, name: "category"}}
}

func (r *CategoryRepository) FindByName(ctx context.Context, name string) (*domain.Category, error) {
	return first[domain.Category](r.db.WithContext(ctx).Where("name = ?", name), r.name)
}

// FindByNameExcludingID looks for another category already using name.
func (r *CategoryRepository) FindByNameExcludingID(ctx context.Context, name string, id uint) (*domain.Category, error) {
	return first[domain.Category](r.db.WithContext(ctx).Where("name = ? AND id <> ?", name, id), r.name)
}
