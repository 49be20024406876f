package repository

import (
	"time_manager/internal/domain" // Domain models

	"gorm.io/gorm" // ORM library
)

// Set bundles every repository built on one database handle.
type Set struct {
	DB           *gorm.DB // Shared database handle
	Users        *UserRepository
	Activities   *ActivityRepository
	Categories   *CategoryRepository
	Habits       *HabitRepository
	Projects     *ProjectRepository
	ActivityLogs *ActivityLogRepository
	Reports      *ReportRepository // Read-only report queries

	CategoryActivities *LinkStore[*domain.CategoryActivity]
	HabitActivities    *LinkStore[*domain.HabitActivity]
	UserProjects       *LinkStore[*domain.UserProject]
	UserHabits         *LinkStore[*domain.UserHabit]
	ProjectLogs        *LinkStore[*domain.ProjectActivityLog]
}

func NewSet(db *gorm.DB) *Set {
	return &Set{
		DB:           db,
		Users:        NewUserRepository(db),
		Activities:   NewActivityRepository(db),
		Categories:   NewCategoryRepository(db),
		Habits:       NewHabitRepository(db),
		Projects:     NewProjectRepository(db),
		ActivityLogs: NewActivityLogRepository(db),
		Reports:      NewReportRepository(db),

		CategoryActivities: NewLinkStore(db, CategoryActivities, func(activityID, categoryID uint) *domain.CategoryActivity {
			return &domain.CategoryActivity{ActivityID: activityID, CategoryID: categoryID}
		}),
		HabitActivities: NewLinkStore(db, HabitActivities, func(habitID, activityID uint) *domain.HabitActivity {
			return &domain.HabitActivity{HabitID: habitID, ActivityID: activityID}
		}),
		UserProjects: NewLinkStore(db, UserProjects, func(userID, projectID uint) *domain.UserProject {
			return &domain.UserProject{UserID: userID, ProjectID: projectID}
		}),
		UserHabits: NewLinkStore(db, UserHabits, func(userID, habitID uint) *domain.UserHabit {
			return &domain.UserHabit{UserID: userID, HabitID: habitID}
		}),
		ProjectLogs: NewLinkStore(db, ProjectLogs, func(projectID, logID uint) *domain.ProjectActivityLog {
			return &domain.ProjectActivityLog{ProjectID: projectID, ActivityLogID: logID}
		}),
	}
}
