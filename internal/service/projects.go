package service

import (
	"context"                          // Request scoped cancellation
	"fmt"                              // Message formatting
	"strings"                          // Input normalization
	"time_manager/internal/domain"     // Domain models
	"time_manager/internal/repository" // Data access

	"github.com/sirupsen/logrus" // Logging library
)

// ProjectInput registers a project owned by UserID.
type ProjectInput struct {
	Name        string `json:"name" form:"name" validate:"required"`
	Description string `json:"description" form:"description" validate:"required"`
	UserID      uint   `json:"user_id" form:"user_id" validate:"required"` // Owner of the project
}

// Projects manages projects.
type Projects struct {
	repos   *repository.Set // Data access
	reports *Reports        // Report cache to invalidate
}

func NewProjects(repos *repository.Set, reports *Reports) *Projects {
	return &Projects{repos: repos, reports: reports}
}

// Register creates the project and links it to its owner.
func (s *Projects) Register(ctx context.Context, in ProjectInput) (uint, error) {
	in.Name = strings.TrimSpace(in.Name)
	in.Description = strings.TrimSpace(in.Description)
	if err := validateInput(in); err != nil {
		return 0, err
	}
	if err := requireExists(ctx, s.repos.Users.Exists, in.UserID, msgUserMissing); err != nil {
		return 0, err
	}
	project := domain.Project{Name: in.Name, Description: in.Description}
	if err := s.repos.Projects.CreateOwned(ctx, &project, in.UserID); err != nil {
		return 0, err
	}
	logrus.WithFields(logrus.Fields{"project_id": project.ID, "user_id": in.UserID}).Info("Project registered")
	return project.ID, nil
}

func (s *Projects) List(ctx context.Context) ([]domain.Project, error) {
	return s.repos.Projects.List(ctx)
}

// Get returns nil when the project does not exist.
func (s *Projects) Get(ctx context.Context, id uint) (*domain.Project, error) {
	return s.repos.Projects.FindByID(ctx, id)
}

func (s *Projects) Edit(ctx context.Context, id uint, patch NamedPatch) (int64, error) {
	exists, err := s.repos.Projects.Exists(ctx, id)
	if err != nil {
		return 0, err
	}
	if !exists {
		return 0, NotFound(fmt.Sprintf("No se encontró el proyecto con id: %d", id))
	}
	fields := patch.fields()
	if len(fields) == 0 {
		return 0, nil
	}
	n, err := s.repos.Projects.Update(ctx, id, fields)
	if err != nil {
		return 0, err
	}
	s.reports.Invalidate(ctx)
	logrus.WithField("project_id", id).Info("Project updated")
	return n, nil
}

// Delete removes the project and every activity log linked to it atomically.
func (s *Projects) Delete(ctx context.Context, id uint) (int64, error) {
	exists, err := s.repos.Projects.Exists(ctx, id)
	if err != nil {
		return 0, err
	}
	if !exists {
		return 0, NotFound(fmt.Sprintf("No se encontró el proyecto con id: %d", id))
	}
	n, logs, err := s.repos.Projects.DeleteCascade(ctx, id)
	if err != nil {
		logrus.WithFields(logrus.Fields{"project_id": id, "error": err.Error()}).Error("Project cascade delete failed")
		return 0, err
	}
	s.reports.Invalidate(ctx)
	logrus.WithFields(logrus.Fields{"project_id": id, "activity_logs": logs}).Info("Project deleted")
	return n, nil
}
