package service

import (
	"context"                          // Request scoped cancellation
	"time"                             // Time spans
	"time_manager/internal/domain"     // Domain models
	"time_manager/internal/repository" // Data access
	"time_manager/internal/utils"      // Shared helpers

	"github.com/redis/go-redis/v9" // Redis client
	"github.com/sirupsen/logrus"   // Logging library
)

// Cache keys of the global reports
const (
	keyTimeByCategory = "report:time-used:categories"
	keyTimeByProject  = "report:time-used:projects"
	keyOpenLogs       = "report:open-activities"
	keyIdleHabits     = "report:habits-without-activities"

	reportTTL = 60 * time.Second
	lastLogs  = 5
)

// Reports serves the reporting queries, caching the global ones in Redis when a client is set.
type Reports struct {
	repos *repository.Set              // Existence checks
	repo  *repository.ReportRepository // Report queries
	rdb   *redis.Client                // Optional report cache
}

func NewReports(repos *repository.Set, rdb *redis.Client) *Reports {
	return &Reports{repos: repos, repo: repos.Reports, rdb: rdb}
}

// Invalidate drops the cached global reports. Safe on a nil receiver.
func (r *Reports) Invalidate(ctx context.Context) {
	if r == nil {
		return
	}
	if err := utils.DeleteCache(ctx, r.rdb, keyTimeByCategory, keyTimeByProject, keyOpenLogs, keyIdleHabits); err != nil {
		logrus.WithField("error", err.Error()).Warn("Failed to invalidate report cache")
	}
}

func (r *Reports) TimeUsedByCategory(ctx context.Context) ([]repository.TimeUsed, error) {
	return cached(ctx, r.rdb, keyTimeByCategory, r.repo.TimeUsedByCategory)
}

func (r *Reports) TimeUsedByProject(ctx context.Context) ([]repository.TimeUsed, error) {
	return cached(ctx, r.rdb, keyTimeByProject, r.repo.TimeUsedByProject)
}

func (r *Reports) OpenActivities(ctx context.Context) ([]repository.LogDetail, error) {
	return cached(ctx, r.rdb, keyOpenLogs, r.repo.OpenLogs)
}

func (r *Reports) HabitsWithoutActivities(ctx context.Context) ([]domain.Habit, error) {
	return cached(ctx, r.rdb, keyIdleHabits, r.repo.HabitsWithoutLogs)
}

// LastActivities returns the five most recent logs of a user.
func (r *Reports) LastActivities(ctx context.Context, userID uint) ([]repository.LogDetail, error) {
	if err := requireExists(ctx, r.repos.Users.Exists, userID, msgUserMissing); err != nil {
		return nil, err
	}
	return r.repo.LastLogsByUser(ctx, userID, lastLogs)
}

func (r *Reports) ActivitiesByProject(ctx context.Context, projectID uint) ([]repository.LogDetail, error) {
	if err := requireExists(ctx, r.repos.Projects.Exists, projectID, msgProjectMissing); err != nil {
		return nil, err
	}
	return r.repo.LogsByProject(ctx, projectID)
}

// ActivitiesByHabit returns the habit's closed logs within [from, to].
func (r *Reports) ActivitiesByHabit(ctx context.Context, habitID uint, from, to time.Time) ([]repository.LogDetail, error) {
	if from.IsZero() || to.IsZero() {
		return nil, Validation("Debes proporcionar una fecha de inicio y una fecha de fin.")
	}
	if to.Before(from) {
		return nil, Validation(MsgInvalidTimeRange)
	}
	if err := requireExists(ctx, r.repos.Habits.Exists, habitID, msgHabitMissing); err != nil {
		return nil, err
	}
	return r.repo.LogsByHabit(ctx, habitID, from, to)
}

// SearchActivities finds logs by a fragment of the activity name.
func (r *Reports) SearchActivities(ctx context.Context, name string) ([]repository.LogDetail, error) {
	if name == "" {
		return nil, Validation("Debes proporcionar un nombre de actividad.")
	}
	return r.repo.SearchLogsByActivityName(ctx, name)
}

// cached serves key from Redis or computes it with load and stores it for reportTTL.
// Cache failures fall through to the database.
func cached[T any](ctx context.Context, rdb *redis.Client, key string, load func(context.Context) ([]T, error)) ([]T, error) {
	var rows []T
	found, err := utils.GetCache(ctx, rdb, key, &rows)
	if err == nil && found {
		return rows, nil
	}
	rows, err = load(ctx)
	if err != nil {
		return nil, err
	}
	if rows == nil {
		rows = []T{}
	}
	_ = utils.SetCache(ctx, rdb, key, rows, reportTTL) // Cache the report for 60 seconds
	return rows, nil
}
