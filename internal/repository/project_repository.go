package repository

import (
	"context"                      // Request scoped cancellation
	"fmt"                          // Error wrapping
	"time_manager/internal/domain" // Domain models

	"gorm.io/gorm" // ORM library
)

// ProjectRepository manages projects and their cascading removal.
type ProjectRepository struct {
	store[domain.Project]
}

func NewProjectRepository(db *gorm.DB) *ProjectRepository {
	return &ProjectRepository{store[domain.Project]{db: db, name: "project"}}
}

// CreateOwned inserts the project and its owner link in one transaction.
func (r *ProjectRepository) CreateOwned(ctx context.Context, project *domain.Project, userID uint) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(project).Error; err != nil {
			return err
		}
		return tx.Create(&domain.UserProject{UserID: userID, ProjectID: project.ID}).Error
	})
	if err != nil {
		return fmt.Errorf("create project owned by user %d: %w", userID, err)
	}
	return nil
}

// DeleteCascade removes the project together with every activity log linked to it.
// Relation rows pointing at the project or at the removed logs go with them through
// their ON DELETE CASCADE foreign keys. Nothing is removed unless every step succeeds.
// It returns the project rows and the log rows removed.
func (r *ProjectRepository) DeleteCascade(ctx context.Context, projectID uint) (projects, logs int64, err error) {
	err = r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		linked := tx.Model(&domain.ProjectActivityLog{}).Select("activity_log_id").Where("project_id = ?", projectID)
		res := tx.Where("id IN (?)", linked).Delete(&domain.ActivityLog{})
		if res.Error != nil {
			return fmt.Errorf("delete activity logs: %w", res.Error)
		}
		logs = res.RowsAffected

		res = tx.Delete(&domain.Project{}, projectID)
		if res.Error != nil {
			return fmt.Errorf("delete project: %w", res.Error)
		}
		projects = res.RowsAffected
		return nil
	})
	if err != nil {
		return 0, 0, fmt.Errorf("delete project %d: %w", projectID, err)
	}
	return projects, logs, nil
}
