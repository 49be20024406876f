package repository

import (
	"context"                      // Request scoped cancellation
	"fmt"                          // Error wrapping
	"time_manager/internal/domain" // Domain models

	"gorm.io/gorm" // ORM library
)

// Definition names the join table of a relation and the columns holding its endpoints.
type Definition struct {
	Name        string // Human readable name used in errors
	Table       string // Join table
	LeftColumn  string // Column referencing the left endpoint
	RightColumn string // Column referencing the right endpoint
}

// Relation definitions, left endpoint first.
var (
	CategoryActivities = Definition{Name: "category activity", Table: "category_activities", LeftColumn: "activity_id", RightColumn: "category_id"}
	HabitActivities    = Definition{Name: "habit activity", Table: "habit_activities", LeftColumn: "habit_id", RightColumn: "activity_id"}
	UserProjects       = Definition{Name: "user project", Table: "user_projects", LeftColumn: "user_id", RightColumn: "project_id"}
	UserHabits         = Definition{Name: "user habit", Table: "user_habits", LeftColumn: "user_id", RightColumn: "habit_id"}
	ProjectLogs        = Definition{Name: "project activity log", Table: "project_activity_logs", LeftColumn: "project_id", RightColumn: "activity_log_id"}
)

// LinkStore persists the rows of one relation.
type LinkStore[R domain.Link] struct {
	db    *gorm.DB                 // Database handle
	def   Definition               // Join table layout
	build func(left, right uint) R // Builds a relation row from its endpoints
}

func NewLinkStore[R domain.Link](db *gorm.DB, def Definition, build func(left, right uint) R) *LinkStore[R] {
	return &LinkStore[R]{db: db, def: def, build: build}
}

// Definition returns the relation this store persists.
func (s *LinkStore[R]) Definition() Definition { return s.def }

// Exists reports whether the (left, right) pair is already linked.
func (s *LinkStore[R]) Exists(ctx context.Context, left, right uint) (bool, error) {
	var n int64
	err := s.db.WithContext(ctx).Table(s.def.Table).
		Where(s.def.LeftColumn+" = ? AND "+s.def.RightColumn+" = ?", left, right).
		Count(&n).Error
	if err != nil {
		return false, fmt.Errorf("check %s: %w", s.def.Name, err)
	}
	return n > 0, nil
}

// Create inserts the pair and returns the new relation id.
func (s *LinkStore[R]) Create(ctx context.Context, left, right uint) (uint, error) {
	row := s.build(left, right)
	if err := s.db.WithContext(ctx).Create(row).Error; err != nil {
		return 0, fmt.Errorf("create %s: %w", s.def.Name, err)
	}
	return row.RelationID(), nil
}

// FindByID returns the relation row; found is false when it does not exist.
func (s *LinkStore[R]) FindByID(ctx context.Context, relationID uint) (row R, found bool, err error) {
	row = s.build(0, 0)
	res := s.db.WithContext(ctx).Where("id = ?", relationID).Limit(1).Find(row)
	if res.Error != nil {
		return row, false, fmt.Errorf("find %s %d: %w", s.def.Name, relationID, res.Error)
	}
	return row, res.RowsAffected > 0, nil
}

// Delete removes a relation row by its own id.
func (s *LinkStore[R]) Delete(ctx context.Context, relationID uint) (int64, error) {
	res := s.db.WithContext(ctx).Where("id = ?", relationID).Delete(s.build(0, 0))
	if res.Error != nil {
		return 0, fmt.Errorf("delete %s %d: %w", s.def.Name, relationID, res.Error)
	}
	return res.RowsAffected, nil
}

// ListByLeft returns the relation rows of a left endpoint ordered by relation id.
func (s *LinkStore[R]) ListByLeft(ctx context.Context, left uint) ([]R, error) {
	return s.listWhere(ctx, s.def.LeftColumn, left)
}

// ListByRight returns the relation rows of a right endpoint ordered by relation id.
func (s *LinkStore[R]) ListByRight(ctx context.Context, right uint) ([]R, error) {
	return s.listWhere(ctx, s.def.RightColumn, right)
}

func (s *LinkStore[R]) listWhere(ctx context.Context, column string, id uint) ([]R, error) {
	var rows []R
	if err := s.db.WithContext(ctx).Where(column+" = ?", id).Order("id ASC").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("list %s: %w", s.def.Name, err)
	}
	return rows, nil
}

// Linked pairs a related entity with the id of the relation row that links it.
type Linked[T any] struct {
	RelationID uint `json:"relation_id"` // Surrogate id of the relation row
	Item       T    `json:"item"`        // Linked entity
}

// Entity is implemented by domain models addressable by primary key.
type Entity interface {
	EntityID() uint
}

// ListRelated loads the right endpoints linked to left, in relation order.
func ListRelated[T Entity, R domain.Link](ctx context.Context, s *LinkStore[R], left uint) ([]Linked[T], error) {
	links, err := s.ListByLeft(ctx, left)
	if err != nil {
		return nil, err
	}
	out := make([]Linked[T], 0, len(links))
	if len(links) == 0 {
		return out, nil
	}

	ids := make([]uint, len(links))
	for i, l := range links {
		ids[i] = l.Right()
	}
	var items []T
	if err := s.db.WithContext(ctx).Where("id IN ?", ids).Find(&items).Error; err != nil {
		return nil, fmt.Errorf("load %s endpoints: %w", s.def.Name, err)
	}
	byID := make(map[uint]T, len(items))
	for _, item := range items {
		byID[item.EntityID()] = item
	}
	for _, l := range links {
		if item, ok := byID[l.Right()]; ok {
			out = append(out, Linked[T]{RelationID: l.RelationID(), Item: item})
		}
	}
	return out, nil
}
