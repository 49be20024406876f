package repository

import (
	"time_manager/internal/domain" // Domain models

	"gorm.io/gorm" // ORM library
)

// HabitRepository manages habits.
type HabitRepository struct {
	store[domain.Habit]
}

func NewHabitRepository(db *gorm.DB) *HabitRepository {
	return &HabitRepository{store[domain.Habit]{db: db, name: "habit"}}
}
