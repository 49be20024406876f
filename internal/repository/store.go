package repository

import (
	"context" // Request scoped cancellation
	"errors"  // Error inspection
	"fmt"     // Error wrapping

	"gorm.io/gorm" // ORM library
)

// store implements the CRUD contract shared by every entity repository.
type store[T any] struct {
	db   *gorm.DB // Database handle
	name string   // Entity name used in error messages
}

// Create inserts v and fills its primary key.
func (s store[T]) Create(ctx context.Context, v *T) error {
	if err := s.db.WithContext(ctx).Create(v).Error; err != nil {
		return fmt.Errorf("create %s: %w", s.name, err)
	}
	return nil
}

// List returns every row ordered by id.
func (s store[T]) List(ctx context.Context) ([]T, error) {
	var rows []T
	if err := s.db.WithContext(ctx).Order("id ASC").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("list %s: %w", s.name, err)
	}
	return rows, nil
}

// Page returns one page of rows ordered by id and the total row count.
func (s store[T]) Page(ctx context.Context, offset, limit int) ([]T, int64, error) {
	var total int64
	if err := s.db.WithContext(ctx).Model(new(T)).Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("count %s: %w", s.name, err)
	}
	var rows []T
	if err := s.db.WithContext(ctx).Order("id ASC").Offset(offset).Limit(limit).Find(&rows).Error; err != nil {
		return nil, 0, fmt.Errorf("page %s: %w", s.name, err)
	}
	return rows, total, nil
}

// FindByID returns nil without error when the row does not exist.
func (s store[T]) FindByID(ctx context.Context, id uint) (*T, error) {
	return first[T](s.db.WithContext(ctx).Where("id = ?", id), s.name)
}

// Update writes fields to the row and returns the number of affected rows.
func (s store[T]) Update(ctx context.Context, id uint, fields map[string]any) (int64, error) {
	res := s.db.WithContext(ctx).Model(new(T)).Where("id = ?", id).Updates(fields)
	if res.Error != nil {
		return 0, fmt.Errorf("update %s %d: %w", s.name, id, res.Error)
	}
	return res.RowsAffected, nil
}

// Delete removes the row and returns the number of affected rows.
func (s store[T]) Delete(ctx context.Context, id uint) (int64, error) {
	res := s.db.WithContext(ctx).Delete(new(T), id)
	if res.Error != nil {
		return 0, fmt.Errorf("delete %s %d: %w", s.name, id, res.Error)
	}
	return res.RowsAffected, nil
}

// Exists reports whether a row with id is present.
func (s store[T]) Exists(ctx context.Context, id uint) (bool, error) {
	var n int64
	if err := s.db.WithContext(ctx).Model(new(T)).Where("id = ?", id).Count(&n).Error; err != nil {
		return false, fmt.Errorf("check %s %d: %w", s.name, id, err)
	}
	return n > 0, nil
}

// first runs the query for a single row, mapping gorm.ErrRecordNotFound to nil.
func first[T any](query *gorm.DB, name string) (*T, error) {
	var v T
	err := query.First(&v).Error
	switch {
	case err == nil:
		return &v, nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return nil, nil
	default:
		return nil, fmt.Errorf("find %s: %w", name, err)
	}
}
