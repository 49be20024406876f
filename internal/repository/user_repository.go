package repository

import (
	"context"                      // Request scoped cancellation
	"time_manager/internal/domain" // Domain models

	"gorm.io/gorm" // ORM library
)

// UserRepository manages user accounts.
type UserRepository struct {
	store[domain.User]
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{store[domain.User]{db: db, name: "user"}}
}

func (r *UserRepository) FindByUsername(ctx context.Context, username string) (*domain.User, error) {
	return first[domain.User](r.db.WithContext(ctx).Where("username = ?", username), r.name)
}

// FindByUsernameExcludingID looks for another account already using username.
func (r *UserRepository) FindByUsernameExcludingID(ctx context.Context, username string, id uint) (*domain.User, error) {
	return first[domain.User](r.db.WithContext(ctx).Where("username = ? AND id <> ?", username, id), r.name)
}
