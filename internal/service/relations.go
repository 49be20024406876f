package service

import (
	"context"                          // Request scoped cancellation
	"fmt"                              // Message formatting
	"time_manager/internal/domain"     // Domain models
	"time_manager/internal/repository" // Data access

	"github.com/sirupsen/logrus" // Logging library
)

// existsFunc reports whether an endpoint id is present.
type existsFunc func(ctx context.Context, id uint) (bool, error)

// Missing entity messages, formatted with the id
const (
	msgUserMissing     = "El usuario con id %d no existe"
	msgActivityMissing = "La actividad con id %d no existe"
	msgCategoryMissing = "La categoría con id %d no existe"
	msgHabitMissing    = "El hábito con id %d no existe"
	msgProjectMissing  = "El proyecto con id %d no existe"
	msgLogMissing      = "La actividad realizada con id %d no existe"
)

// requireExists returns a NotFound built from format when id is absent.
func requireExists(ctx context.Context, exists existsFunc, id uint, format string) error {
	ok, err := exists(ctx, id)
	if err != nil {
		return err
	}
	if !ok {
		return NotFound(fmt.Sprintf(format, id))
	}
	return nil
}

// relation enforces the link contract for one relation type: both endpoints must exist,
// the pair must be new, and removal addresses the relation row by its own id.
type relation[R domain.Link] struct {
	store        *repository.LinkStore[R] // Relation rows
	leftExists   existsFunc               // Checks the owning entity
	rightExists  existsFunc               // Checks the linked entity
	leftMissing  string                   // format with the left id
	rightMissing string                   // format with the right id
	duplicate    string                   // Conflict message for an existing pair
}

func (r relation[R]) exists(ctx context.Context, left, right uint) (bool, error) {
	return r.store.Exists(ctx, left, right)
}

func (r relation[R]) checkEndpoints(ctx context.Context, left, right uint) error {
	if err := requireExists(ctx, r.leftExists, left, r.leftMissing); err != nil {
		return err
	}
	return requireExists(ctx, r.rightExists, right, r.rightMissing)
}

func (r relation[R]) create(ctx context.Context, left, right uint) (uint, error) {
	linked, err := r.exists(ctx, left, right)
	if err != nil {
		return 0, err
	}
	if linked {
		return 0, Conflict(r.duplicate)
	}
	id, err := r.store.Create(ctx, left, right)
	if err != nil {
		return 0, uniqueViolation(err, r.duplicate)
	}
	def := r.store.Definition()
	logrus.WithFields(logrus.Fields{
		"relation":      def.Table,
		"relation_id":   id,
		def.LeftColumn:  left,
		def.RightColumn: right,
	}).Info("Relation created")
	return id, nil
}

func (r relation[R]) link(ctx context.Context, left, right uint) (uint, error) {
	if err := r.checkEndpoints(ctx, left, right); err != nil {
		return 0, err
	}
	return r.create(ctx, left, right)
}

func (r relation[R]) remove(ctx context.Context, relationID uint) error {
	_, found, err := r.store.FindByID(ctx, relationID)
	if err != nil {
		return err
	}
	if !found {
		return NotFound(fmt.Sprintf("La relación con id %d no existe", relationID))
	}
	if _, err := r.store.Delete(ctx, relationID); err != nil {
		return err
	}
	logrus.WithFields(logrus.Fields{"relation": r.store.Definition().Table, "relation_id": relationID}).Info("Relation removed")
	return nil
}

// listFor loads the right endpoints of left after checking that left exists.
func listFor[T repository.Entity, R domain.Link](ctx context.Context, r relation[R], left uint) ([]repository.Linked[T], error) {
	if err := requireExists(ctx, r.leftExists, left, r.leftMissing); err != nil {
		return nil, err
	}
	return repository.ListRelated[T](ctx, r.store, left)
}

// Relations manages the many-to-many links between entities.
type Relations struct {
	repos   *repository.Set
	reports *Reports

	categoryActivity relation[*domain.CategoryActivity]
	habitActivity    relation[*domain.HabitActivity]
	userProject      relation[*domain.UserProject]
	userHabit        relation[*domain.UserHabit]
	projectLog       relation[*domain.ProjectActivityLog]
}

func NewRelations(repos *repository.Set, reports *Reports) *Relations {
	return &Relations{
		repos:   repos,
		reports: reports,
		categoryActivity: relation[*domain.CategoryActivity]{
			store:        repos.CategoryActivities,
			leftExists:   repos.Activities.Exists,
			rightExists:  repos.Categories.Exists,
			leftMissing:  msgActivityMissing,
			rightMissing: msgCategoryMissing,
			duplicate:    "Esta categoría ya está asociada a la actividad",
		},
		habitActivity: relation[*domain.HabitActivity]{
			store:        repos.HabitActivities,
			leftExists:   repos.Habits.Exists,
			rightExists:  repos.Activities.Exists,
			leftMissing:  msgHabitMissing,
			rightMissing: msgActivityMissing,
			duplicate:    "Esta actividad ya está asociada al hábito",
		},
		userProject: relation[*domain.UserProject]{
			store:        repos.UserProjects,
			leftExists:   repos.Users.Exists,
			rightExists:  repos.Projects.Exists,
			leftMissing:  msgUserMissing,
			rightMissing: msgProjectMissing,
			duplicate:    "Este proyecto ya está asociado al usuario",
		},
		userHabit: relation[*domain.UserHabit]{
			store:        repos.UserHabits,
			leftExists:   repos.Users.Exists,
			rightExists:  repos.Habits.Exists,
			leftMissing:  msgUserMissing,
			rightMissing: msgHabitMissing,
			duplicate:    "Este hábito ya está asociado al usuario",
		},
		projectLog: relation[*domain.ProjectActivityLog]{
			store:        repos.ProjectLogs,
			leftExists:   repos.Projects.Exists,
			rightExists:  repos.ActivityLogs.Exists,
			leftMissing:  msgProjectMissing,
			rightMissing: msgLogMissing,
			duplicate:    "Esta actividad realizada ya está asociada al proyecto",
		},
	}
}

// HasCategory reports whether the activity is linked to the category.
func (s *Relations) HasCategory(ctx context.Context, activityID, categoryID uint) (bool, error) {
	return s.categoryActivity.exists(ctx, activityID, categoryID)
}

func (s *Relations) AddCategory(ctx context.Context, activityID, categoryID uint) (uint, error) {
	id, err := s.categoryActivity.link(ctx, activityID, categoryID)
	if err == nil {
		s.reports.Invalidate(ctx)
	}
	return id, err
}

func (s *Relations) RemoveCategory(ctx context.Context, relationID uint) error {
	err := s.categoryActivity.remove(ctx, relationID)
	if err == nil {
		s.reports.Invalidate(ctx)
	}
	return err
}

// Categories returns the categories linked to an activity.
func (s *Relations) Categories(ctx context.Context, activityID uint) ([]repository.Linked[domain.Category], error) {
	return listFor[domain.Category](ctx, s.categoryActivity, activityID)
}

func (s *Relations) HasHabitActivity(ctx context.Context, habitID, activityID uint) (bool, error) {
	return s.habitActivity.exists(ctx, habitID, activityID)
}

func (s *Relations) AddHabitActivity(ctx context.Context, habitID, activityID uint) (uint, error) {
	id, err := s.habitActivity.link(ctx, habitID, activityID)
	if err == nil {
		s.reports.Invalidate(ctx)
	}
	return id, err
}

func (s *Relations) RemoveHabitActivity(ctx context.Context, relationID uint) error {
	err := s.habitActivity.remove(ctx, relationID)
	if err == nil {
		s.reports.Invalidate(ctx)
	}
	return err
}

// HabitActivities returns the activities linked to a habit.
func (s *Relations) HabitActivities(ctx context.Context, habitID uint) ([]repository.Linked[domain.Activity], error) {
	return listFor[domain.Activity](ctx, s.habitActivity, habitID)
}

func (s *Relations) HasUserProject(ctx context.Context, userID, projectID uint) (bool, error) {
	return s.userProject.exists(ctx, userID, projectID)
}

// AddUserProject links a project to a user. A project already owned by someone else
// cannot gain a second owner.
func (s *Relations) AddUserProject(ctx context.Context, userID, projectID uint) (uint, error) {
	if err := s.userProject.checkEndpoints(ctx, userID, projectID); err != nil {
		return 0, err
	}
	owners, err := s.repos.UserProjects.ListByRight(ctx, projectID)
	if err != nil {
		return 0, err
	}
	for _, owner := range owners {
		if owner.UserID != userID {
			return 0, Conflict("El proyecto ya tiene un propietario.")
		}
	}
	return s.userProject.create(ctx, userID, projectID)
}

func (s *Relations) RemoveUserProject(ctx context.Context, relationID uint) error {
	return s.userProject.remove(ctx, relationID)
}

// UserProjects returns the projects owned by a user.
func (s *Relations) UserProjects(ctx context.Context, userID uint) ([]repository.Linked[domain.Project], error) {
	return listFor[domain.Project](ctx, s.userProject, userID)
}

func (s *Relations) HasUserHabit(ctx context.Context, userID, habitID uint) (bool, error) {
	return s.userHabit.exists(ctx, userID, habitID)
}

func (s *Relations) AddUserHabit(ctx context.Context, userID, habitID uint) (uint, error) {
	return s.userHabit.link(ctx, userID, habitID)
}

func (s *Relations) RemoveUserHabit(ctx context.Context, relationID uint) error {
	return s.userHabit.remove(ctx, relationID)
}

// UserHabits returns the habits followed by a user.
func (s *Relations) UserHabits(ctx context.Context, userID uint) ([]repository.Linked[domain.Habit], error) {
	return listFor[domain.Habit](ctx, s.userHabit, userID)
}

func (s *Relations) HasProjectLog(ctx context.Context, projectID, activityLogID uint) (bool, error) {
	return s.projectLog.exists(ctx, projectID, activityLogID)
}

func (s *Relations) AddProjectLog(ctx context.Context, projectID, activityLogID uint) (uint, error) {
	id, err := s.projectLog.link(ctx, projectID, activityLogID)
	if err == nil {
		s.reports.Invalidate(ctx)
	}
	return id, err
}

func (s *Relations) RemoveProjectLog(ctx context.Context, relationID uint) error {
	err := s.projectLog.remove(ctx, relationID)
	if err == nil {
		s.reports.Invalidate(ctx)
	}
	return err
}

// ProjectLogs returns the activity logs linked to a project.
func (s *Relations) ProjectLogs(ctx context.Context, projectID uint) ([]repository.Linked[domain.ActivityLog], error) {
	return listFor[domain.ActivityLog](ctx, s.projectLog, projectID)
}
