package repository

import (
	"context"                      // Request scoped cancellation
	"fmt"                          // Error wrapping
	"sort"                         // Report ordering
	"time"                         // Time spans
	"time_manager/internal/domain" // Domain models

	"gorm.io/gorm" // ORM library
)

// TimeUsed is the total closed-log time spent under one category or project.
type TimeUsed struct {
	ID           uint   `json:"id"`            // Category or project ID
	Name         string `json:"name"`          // Display name
	TotalSeconds int64  `json:"total_seconds"` // Closed time in seconds
	TotalTime    string `json:"total_time"`    // Closed time as HH:MM:SS
}

// LogDetail is an activity log with the names needed to display it.
type LogDetail struct {
	ID           uint       `json:"id"`
	ActivityID   uint       `json:"activity_id"`   // Logged activity
	UserID       uint       `json:"user_id"`       // User who logged it
	ActivityName string     `json:"activity_name"` // Activity name
	CategoryName *string    `json:"category_name"` // Alphabetically first category, nil when uncategorized
	StartTime    time.Time  `json:"start_time"`    // Start of the log
	EndTime      *time.Time `json:"end_time"`      // Nil while the log is open
}

// ReportRepository runs the read-only reporting queries.
type ReportRepository struct {
	db *gorm.DB // Database handle
}

func NewReportRepository(db *gorm.DB) *ReportRepository {
	return &ReportRepository{db: db}
}

// spanRow is one log attributed to a category or project. Open logs have no EndTime.
type spanRow struct {
	ID        uint
	Name      string
	StartTime time.Time
	EndTime   *time.Time
}

// TimeUsedByCategory sums closed logs per category.
func (r *ReportRepository) TimeUsedByCategory(ctx context.Context) ([]TimeUsed, error) {
	var rows []spanRow
	err := r.db.WithContext(ctx).
		Table("activity_logs AS al").
		Select("c.id AS id, c.name AS name, al.start_time, al.end_time").
		Joins("JOIN category_activities ca ON ca.activity_id = al.activity_id").
		Joins("JOIN categories c ON c.id = ca.category_id").
		Where("al.end_time IS NOT NULL").
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("time used by category: %w", err)
	}
	return sumSpans(rows), nil
}

// TimeUsedByProject sums closed logs per project. Projects whose logs are all open are
// listed with a zero total.
func (r *ReportRepository) TimeUsedByProject(ctx context.Context) ([]TimeUsed, error) {
	var rows []spanRow
	err := r.db.WithContext(ctx).
		Table("activity_logs AS al").
		Select("p.id AS id, p.name AS name, al.start_time, al.end_time").
		Joins("JOIN project_activity_logs pal ON pal.activity_log_id = al.id").
		Joins("JOIN projects p ON p.id = pal.project_id").
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("time used by project: %w", err)
	}
	return sumSpans(rows), nil
}

// OpenLogs returns the logs that have no end time.
func (r *ReportRepository) OpenLogs(ctx context.Context) ([]LogDetail, error) {
	return r.scanDetails(r.details(ctx).Where("al.end_time IS NULL").Order("al.start_time ASC"), "open logs")
}

// LastLogsByUser returns the user's most recent logs, newest first.
func (r *ReportRepository) LastLogsByUser(ctx context.Context, userID uint, limit int) ([]LogDetail, error) {
	q := r.details(ctx).Where("al.user_id = ?", userID).Order("al.start_time DESC").Limit(limit)
	return r.scanDetails(q, "last logs by user")
}

// LogsByProject returns the logs linked to a project.
func (r *ReportRepository) LogsByProject(ctx context.Context, projectID uint) ([]LogDetail, error) {
	q := r.details(ctx).
		Joins("JOIN project_activity_logs pal ON pal.activity_log_id = al.id").
		Where("pal.project_id = ?", projectID).
		Order("al.start_time ASC")
	return r.scanDetails(q, "logs by project")
}

// LogsByHabit returns the closed logs of a habit's activities inside [from, to].
func (r *ReportRepository) LogsByHabit(ctx context.Context, habitID uint, from, to time.Time) ([]LogDetail, error) {
	q := r.details(ctx).
		Joins("JOIN habit_activities ha ON ha.activity_id = al.activity_id").
		Where("ha.habit_id = ? AND al.start_time >= ? AND al.end_time <= ?", habitID, from, to).
		Order("al.start_time ASC")
	return r.scanDetails(q, "logs by habit")
}

// SearchLogsByActivityName returns logs whose activity name contains name.
func (r *ReportRepository) SearchLogsByActivityName(ctx context.Context, name string) ([]LogDetail, error) {
	q := r.details(ctx).Where("a.name LIKE ?", "%"+name+"%").Order("al.start_time DESC")
	return r.scanDetails(q, "search logs")
}

// HabitsWithoutLogs returns habits none of whose activities has ever been logged.
// A habit with at least one logged activity is not idle, even if others were never logged.
func (r *ReportRepository) HabitsWithoutLogs(ctx context.Context) ([]domain.Habit, error) {
	logged := r.db.Table("habit_activities AS ha").
		Select("1").
		Joins("JOIN activity_logs al ON al.activity_id = ha.activity_id").
		Where("ha.habit_id = habits.id")
	var habits []domain.Habit
	if err := r.db.WithContext(ctx).Where("NOT EXISTS (?)", logged).Order("id ASC").Find(&habits).Error; err != nil {
		return nil, fmt.Errorf("habits without logs: %w", err)
	}
	return habits, nil
}

// details selects activity logs with the activity name and the first category name.
func (r *ReportRepository) details(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).
		Table("activity_logs AS al").
		Select(`al.id, al.activity_id, al.user_id, a.name AS activity_name,
			(SELECT MIN(c.name) FROM categories c JOIN category_activities ca ON ca.category_id = c.id
			 WHERE ca.activity_id = al.activity_id) AS category_name,
			al.start_time, al.end_time`).
		Joins("JOIN activities a ON a.id = al.activity_id")
}

func (r *ReportRepository) scanDetails(q *gorm.DB, what string) ([]LogDetail, error) {
	rows := []LogDetail{}
	if err := q.Scan(&rows).Error; err != nil {
		return nil, fmt.Errorf("%s: %w", what, err)
	}
	return rows, nil
}

// sumSpans totals the closed spans per id, sorted by name then id.
func sumSpans(rows []spanRow) []TimeUsed {
	totals := map[uint]*TimeUsed{}
	spent := map[uint]time.Duration{}
	for _, row := range rows {
		if _, ok := totals[row.ID]; !ok {
			totals[row.ID] = &TimeUsed{ID: row.ID, Name: row.Name}
		}
		if row.EndTime == nil {
			continue // Open log, no time spent yet
		}
		if d := row.EndTime.Sub(row.StartTime); d > 0 {
			spent[row.ID] += d
		}
	}
	out := make([]TimeUsed, 0, len(totals))
	for id, used := range totals {
		used.TotalSeconds = int64(spent[id] / time.Second)
		used.TotalTime = FormatDuration(spent[id])
		out = append(out, *used)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Name != out[j].Name {
			return out[i].Name < out[j].Name
		}
		return out[i].ID < out[j].ID
	})
	return out
}

// FormatDuration renders d as HH:MM:SS; hours may exceed 24.
func FormatDuration(d time.Duration) string {
	secs := int64(d / time.Second)
	return fmt.Sprintf("%02d:%02d:%02d", secs/3600, (secs%3600)/60, secs%60)
}
