package service

import (
	"context"                          // Request scoped cancellation
	"fmt"                              // Message formatting
	"time"                             // Time spans
	"time_manager/internal/domain"     // Domain models
	"time_manager/internal/repository" // Data access

	"github.com/sirupsen/logrus" // Logging library
)

// ActivityLogInput registers an occurrence of an activity. A nil EndTime leaves it open.
type ActivityLogInput struct {
	ActivityID uint       `json:"activity_id" form:"activity_id" validate:"required"`                              // Logged activity
	UserID     uint       `json:"user_id" form:"user_id" validate:"required"`                                      // User who performed it
	StartTime  time.Time  `json:"start_time" form:"start_time" time_format:"2006-01-02T15:04" validate:"required"` // Start of the occurrence
	EndTime    *time.Time `json:"end_time" form:"end_time" time_format:"2006-01-02T15:04"`                         // Nil leaves the log open
}

// ActivityLogPatch edits the times of a log; nil fields keep their stored value.
type ActivityLogPatch struct {
	StartTime *time.Time `json:"start_time" form:"start_time" time_format:"2006-01-02T15:04"`
	EndTime   *time.Time `json:"end_time" form:"end_time" time_format:"2006-01-02T15:04"`
}

// ActivityLogs manages logged occurrences.
type ActivityLogs struct {
	repos   *repository.Set // Data access
	reports *Reports        // Report cache to invalidate
}

func NewActivityLogs(repos *repository.Set, reports *Reports) *ActivityLogs {
	return &ActivityLogs{repos: repos, reports: reports}
}

// Register logs an activity for a user. Only one log may exist per activity.
func (s *ActivityLogs) Register(ctx context.Context, in ActivityLogInput) (uint, error) {
	if err := validateInput(in); err != nil {
		return 0, err
	}
	if in.EndTime != nil && in.EndTime.Before(in.StartTime) {
		return 0, Validation(MsgInvalidTimeRange)
	}
	count, err := s.repos.ActivityLogs.CountByActivity(ctx, in.ActivityID)
	if err != nil {
		return 0, err
	}
	if count > 0 {
		return 0, Conflict(MsgDuplicateLog)
	}
	if err := requireExists(ctx, s.repos.Activities.Exists, in.ActivityID, msgActivityMissing); err != nil {
		return 0, err
	}
	if err := requireExists(ctx, s.repos.Users.Exists, in.UserID, msgUserMissing); err != nil {
		return 0, err
	}

	log := domain.ActivityLog{ActivityID: in.ActivityID, UserID: in.UserID, StartTime: in.StartTime, EndTime: in.EndTime}
	if err := s.repos.ActivityLogs.Create(ctx, &log); err != nil {
		return 0, err
	}
	s.reports.Invalidate(ctx)
	logrus.WithFields(logrus.Fields{
		"activity_log_id": log.ID,
		"activity_id":     log.ActivityID,
		"user_id":         log.UserID,
		"open":            log.IsOpen(),
	}).Info("Activity logged")
	return log.ID, nil
}

func (s *ActivityLogs) List(ctx context.Context) ([]domain.ActivityLog, error) {
	return s.repos.ActivityLogs.List(ctx)
}

// Get returns nil when the log does not exist.
func (s *ActivityLogs) Get(ctx context.Context, id uint) (*domain.ActivityLog, error) {
	return s.repos.ActivityLogs.FindByID(ctx, id)
}

func (s *ActivityLogs) ListByUser(ctx context.Context, userID uint) ([]domain.ActivityLog, error) {
	if err := requireExists(ctx, s.repos.Users.Exists, userID, msgUserMissing); err != nil {
		return nil, err
	}
	return s.repos.ActivityLogs.ListByUser(ctx, userID)
}

func (s *ActivityLogs) ListByActivity(ctx context.Context, activityID uint) ([]domain.ActivityLog, error) {
	if err := requireExists(ctx, s.repos.Activities.Exists, activityID, msgActivityMissing); err != nil {
		return nil, err
	}
	return s.repos.ActivityLogs.ListByActivity(ctx, activityID)
}

// Edit changes the start and end times that are set in patch.
func (s *ActivityLogs) Edit(ctx context.Context, id uint, patch ActivityLogPatch) (int64, error) {
	log, err := s.repos.ActivityLogs.FindByID(ctx, id)
	if err != nil {
		return 0, err
	}
	if log == nil {
		return 0, NotFound(fmt.Sprintf("No se encontró el registro de actividad con id: %d", id))
	}
	fields := map[string]any{}
	start, end := log.StartTime, log.EndTime
	if patch.StartTime != nil && !patch.StartTime.IsZero() {
		start = *patch.StartTime
		fields["start_time"] = start
	}
	if patch.EndTime != nil && !patch.EndTime.IsZero() {
		end = patch.EndTime
		fields["end_time"] = *end
	}
	if len(fields) == 0 {
		return 0, nil
	}
	if end != nil && end.Before(start) {
		return 0, Validation(MsgInvalidTimeRange)
	}
	n, err := s.repos.ActivityLogs.Update(ctx, id, fields)
	if err != nil {
		return 0, err
	}
	s.reports.Invalidate(ctx)
	logrus.WithField("activity_log_id", id).Info("Activity log updated")
	return n, nil
}

// Delete removes the log; its project links are removed with it.
func (s *ActivityLogs) Delete(ctx context.Context, id uint) (int64, error) {
	exists, err := s.repos.ActivityLogs.Exists(ctx, id)
	if err != nil {
		return 0, err
	}
	if !exists {
		return 0, NotFound(fmt.Sprintf("No se encontró el registro de actividad con id: %d", id))
	}
	n, err := s.repos.ActivityLogs.Delete(ctx, id)
	if err != nil {
		return 0, err
	}
	s.reports.Invalidate(ctx)
	logrus.WithField("activity_log_id", id).Info("Activity log deleted")
	return n, nil
}
