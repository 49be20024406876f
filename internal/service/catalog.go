package service

import (
	"context"                          // Request scoped cancellation
	"fmt"                              // Message formatting
	"strings"                          // Input normalization
	"time_manager/internal/domain"     // Domain models
	"time_manager/internal/repository" // Data access

	"github.com/sirupsen/logrus" // Logging library
)

// NamedInput registers an activity, category or habit.
type NamedInput struct {
	Name        string `json:"name" form:"name" validate:"required"`               // Display name
	Description string `json:"description" form:"description" validate:"required"` // Free text description
}

// NamedPatch edits a name and description; empty fields keep their stored value.
type NamedPatch struct {
	Name        string `json:"name" form:"name"`
	Description string `json:"description" form:"description"`
}

func (in NamedInput) trimmed() NamedInput {
	return NamedInput{Name: strings.TrimSpace(in.Name), Description: strings.TrimSpace(in.Description)}
}

// fields returns the columns the patch changes.
func (p NamedPatch) fields() map[string]any {
	fields := map[string]any{}
	if name := strings.TrimSpace(p.Name); name != "" {
		fields["name"] = name
	}
	if description := strings.TrimSpace(p.Description); description != "" {
		fields["description"] = description
	}
	return fields
}

const (
	msgCategoryTaken      = "El nombre de la categoría ya está en uso."
	msgCategoryTakenOther = "El nombre de la categoría ya está en uso por otra categoría."
)

// Categories manages activity categories.
type Categories struct {
	repos   *repository.Set
	reports *Reports
}

func NewCategories(repos *repository.Set, reports *Reports) *Categories {
	return &Categories{repos: repos, reports: reports}
}

// Register creates a category with a unique name.
func (s *Categories) Register(ctx context.Context, in NamedInput) (uint, error) {
	in = in.trimmed()
	if err := validateInput(in); err != nil {
		return 0, err
	}
	existing, err := s.repos.Categories.FindByName(ctx, in.Name)
	if err != nil {
		return 0, err
	}
	if existing != nil {
		return 0, Conflict(msgCategoryTaken)
	}
	category := domain.Category{Name: in.Name, Description: in.Description}
	if err := s.repos.Categories.Create(ctx, &category); err != nil {
		return 0, uniqueViolation(err, msgCategoryTaken)
	}
	logrus.WithFields(logrus.Fields{"category_id": category.ID, "name": category.Name}).Info("Category registered")
	return category.ID, nil
}

func (s *Categories) List(ctx context.Context) ([]domain.Category, error) {
	return s.repos.Categories.List(ctx)
}

// Get returns nil when the category does not exist.
func (s *Categories) Get(ctx context.Context, id uint) (*domain.Category, error) {
	return s.repos.Categories.FindByID(ctx, id)
}

func (s *Categories) Edit(ctx context.Context, id uint, patch NamedPatch) (int64, error) {
	category, err := s.repos.Categories.FindByID(ctx, id)
	if err != nil {
		return 0, err
	}
	if category == nil {
		return 0, NotFound(fmt.Sprintf("No se encontró la categoría con id: %d", id))
	}
	fields := patch.fields()
	if len(fields) == 0 {
		return 0, nil
	}
	if name, ok := fields["name"].(string); ok && name != category.Name {
		other, err := s.repos.Categories.FindByNameExcludingID(ctx, name, id)
		if err != nil {
			return 0, err
		}
		if other != nil {
			return 0, Conflict(msgCategoryTakenOther)
		}
	}
	n, err := s.repos.Categories.Update(ctx, id, fields)
	if err != nil {
		return 0, uniqueViolation(err, msgCategoryTakenOther)
	}
	s.reports.Invalidate(ctx)
	logrus.WithField("category_id", id).Info("Category updated")
	return n, nil
}

// Delete removes the category; its activity links are removed with it.
func (s *Categories) Delete(ctx context.Context, id uint) (int64, error) {
	exists, err := s.repos.Categories.Exists(ctx, id)
	if err != nil {
		return 0, err
	}
	if !exists {
		return 0, NotFound(fmt.Sprintf("No se encontró la categoría con id: %d", id))
	}
	n, err := s.repos.Categories.Delete(ctx, id)
	if err != nil {
		return 0, err
	}
	s.reports.Invalidate(ctx)
	logrus.WithField("category_id", id).Info("Category deleted")
	return n, nil
}

// Activities manages activities.
type Activities struct {
	repos   *repository.Set
	reports *Reports
}

func NewActivities(repos *repository.Set, reports *Reports) *Activities {
	return &Activities{repos: repos, reports: reports}
}

func (s *Activities) Register(ctx context.Context, in NamedInput) (uint, error) {
	in = in.trimmed()
	if err := validateInput(in); err != nil {
		return 0, err
	}
	activity := domain.Activity{Name: in.Name, Description: in.Description}
	if err := s.repos.Activities.Create(ctx, &activity); err != nil {
		return 0, err
	}
	logrus.WithFields(logrus.Fields{"activity_id": activity.ID, "name": activity.Name}).Info("Activity registered")
	return activity.ID, nil
}

// List returns every activity joined with its category name.
func (s *Activities) List(ctx context.Context) ([]repository.ActivityListing, error) {
	return s.repos.Activities.ListWithCategory(ctx)
}

// Get returns nil when the activity does not exist.
func (s *Activities) Get(ctx context.Context, id uint) (*domain.Activity, error) {
	return s.repos.Activities.FindByID(ctx, id)
}

func (s *Activities) Edit(ctx context.Context, id uint, patch NamedPatch) (int64, error) {
	exists, err := s.repos.Activities.Exists(ctx, id)
	if err != nil {
		return 0, err
	}
	if !exists {
		return 0, NotFound(fmt.Sprintf("No se encontró la actividad con id: %d", id))
	}
	fields := patch.fields()
	if len(fields) == 0 {
		return 0, nil
	}
	n, err := s.repos.Activities.Update(ctx, id, fields)
	if err != nil {
		return 0, err
	}
	s.reports.Invalidate(ctx)
	logrus.WithField("activity_id", id).Info("Activity updated")
	return n, nil
}

// Delete removes an activity that has never been logged, together with its category
// and habit links.
func (s *Activities) Delete(ctx context.Context, id uint) (int64, error) {
	exists, err := s.repos.Activities.Exists(ctx, id)
	if err != nil {
		return 0, err
	}
	if !exists {
		return 0, NotFound(fmt.Sprintf("No se encontró la actividad con id: %d", id))
	}
	logs, err := s.repos.ActivityLogs.CountByActivity(ctx, id)
	if err != nil {
		return 0, err
	}
	if logs > 0 {
		return 0, Conflict("La actividad tiene registros asociados.")
	}
	n, err := s.repos.Activities.Delete(ctx, id)
	if err != nil {
		return 0, err
	}
	s.reports.Invalidate(ctx)
	logrus.WithField("activity_id", id).Info("Activity deleted")
	return n, nil
}

// ListByUserAndCategory returns the activities of a category that the user has logged.
func (s *Activities) ListByUserAndCategory(ctx context.Context, userID, categoryID uint) ([]domain.Activity, error) {
	if err := requireExists(ctx, s.repos.Users.Exists, userID, msgUserMissing); err != nil {
		return nil, err
	}
	if err := requireExists(ctx, s.repos.Categories.Exists, categoryID, msgCategoryMissing); err != nil {
		return nil, err
	}
	return s.repos.Activities.ListByUserAndCategory(ctx, userID, categoryID)
}

// Habits manages habits.
type Habits struct {
	repos   *repository.Set
	reports *Reports
}

func NewHabits(repos *repository.Set, reports *Reports) *Habits {
	return &Habits{repos: repos, reports: reports}
}

func (s *Habits) Register(ctx context.Context, in NamedInput) (uint, error) {
	in = in.trimmed()
	if err := validateInput(in); err != nil {
		return 0, err
	}
	habit := domain.Habit{Name: in.Name, Description: in.Description}
	if err := s.repos.Habits.Create(ctx, &habit); err != nil {
		return 0, err
	}
	s.reports.Invalidate(ctx)
	logrus.WithFields(logrus.Fields{"habit_id": habit.ID, "name": habit.Name}).Info("Habit registered")
	return habit.ID, nil
}

func (s *Habits) List(ctx context.Context) ([]domain.Habit, error) {
	return s.repos.Habits.List(ctx)
}

// Get returns nil when the habit does not exist.
func (s *Habits) Get(ctx context.Context, id uint) (*domain.Habit, error) {
	return s.repos.Habits.FindByID(ctx, id)
}

func (s *Habits) Edit(ctx context.Context, id uint, patch NamedPatch) (int64, error) {
	exists, err := s.repos.Habits.Exists(ctx, id)
	if err != nil {
		return 0, err
	}
	if !exists {
		return 0, NotFound(fmt.Sprintf("No se encontró el hábito con id: %d", id))
	}
	fields := patch.fields()
	if len(fields) == 0 {
		return 0, nil
	}
	n, err := s.repos.Habits.Update(ctx, id, fields)
	if err != nil {
		return 0, err
	}
	s.reports.Invalidate(ctx)
	logrus.WithField("habit_id", id).Info("Habit updated")
	return n, nil
}

// Delete removes the habit; its activity and user links are removed with it.
func (s *Habits) Delete(ctx context.Context, id uint) (int64, error) {
	exists, err := s.repos.Habits.Exists(ctx, id)
	if err != nil {
		return 0, err
	}
	if !exists {
		return 0, NotFound(fmt.Sprintf("No se encontró el hábito con id: %d", id))
	}
	n, err := s.repos.Habits.Delete(ctx, id)
	if err != nil {
		return 0, err
	}
	s.reports.Invalidate(ctx)
	logrus.WithField("habit_id", id).Info("Habit deleted")
	return n, nil
}
