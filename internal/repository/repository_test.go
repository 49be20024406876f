package repository_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"time_manager/internal/domain"
	"time_manager/internal/repository"
	"time_manager/internal/testutil"
)

func seed(t *testing.T, repos *repository.Set) (user domain.User, run, read domain.Activity, habit domain.Habit) {
	t.Helper()
	ctx := context.Background()
	user = domain.User{Name: "Ana", Username: "ana", Password: "hash", Role: domain.RoleUser}
	require.NoError(t, repos.Users.Create(ctx, &user))
	run = domain.Activity{Name: "Run", Description: "Morning run"}
	require.NoError(t, repos.Activities.Create(ctx, &run))
	read = domain.Activity{Name: "Read", Description: "Evening reading"}
	require.NoError(t, repos.Activities.Create(ctx, &read))
	habit = domain.Habit{Name: "Healthy", Description: "Move every day"}
	require.NoError(t, repos.Habits.Create(ctx, &habit))
	return user, run, read, habit
}

func TestStoreFindMissingReturnsNil(t *testing.T) {
	repos := repository.NewSet(testutil.NewDB(t))

	user, err := repos.Users.FindByID(context.Background(), 1)
	require.NoError(t, err)
	assert.Nil(t, user)

	n, err := repos.Users.Delete(context.Background(), 1)
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestUniqueUsernameIsDuplicatedKey(t *testing.T) {
	repos := repository.NewSet(testutil.NewDB(t))
	ctx := context.Background()
	require.NoError(t, repos.Users.Create(ctx, &domain.User{Name: "Ana", Username: "ana", Password: "x"}))

	err := repos.Users.Create(ctx, &domain.User{Name: "Ana 2", Username: "ana", Password: "y"})
	assert.True(t, errors.Is(err, gorm.ErrDuplicatedKey), "got %v", err)
}

func TestLinkStorePairIsUnique(t *testing.T) {
	repos := repository.NewSet(testutil.NewDB(t))
	ctx := context.Background()
	_, run, _, habit := seed(t, repos)

	id, err := repos.HabitActivities.Create(ctx, habit.ID, run.ID)
	require.NoError(t, err)

	_, err = repos.HabitActivities.Create(ctx, habit.ID, run.ID)
	assert.True(t, errors.Is(err, gorm.ErrDuplicatedKey), "got %v", err)

	row, found, err := repos.HabitActivities.FindByID(ctx, id)
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, habit.ID, row.Left())
	assert.Equal(t, run.ID, row.Right())

	_, found, err = repos.HabitActivities.FindByID(ctx, id+1)
	require.NoError(t, err)
	assert.False(t, found)
}

func TestListRelatedKeepsRelationOrder(t *testing.T) {
	repos := repository.NewSet(testutil.NewDB(t))
	ctx := context.Background()
	_, run, read, habit := seed(t, repos)

	first, err := repos.HabitActivities.Create(ctx, habit.ID, read.ID)
	require.NoError(t, err)
	second, err := repos.HabitActivities.Create(ctx, habit.ID, run.ID)
	require.NoError(t, err)

	linked, err := repository.ListRelated[domain.Activity](ctx, repos.HabitActivities, habit.ID)
	require.NoError(t, err)
	require.Len(t, linked, 2)
	assert.Equal(t, first, linked[0].RelationID)
	assert.Equal(t, "Read", linked[0].Item.Name)
	assert.Equal(t, second, linked[1].RelationID)
	assert.Equal(t, "Run", linked[1].Item.Name)
}

func TestHabitReports(t *testing.T) {
	repos := repository.NewSet(testutil.NewDB(t))
	ctx := context.Background()
	user, run, _, habit := seed(t, repos)
	idle := domain.Habit{Name: "Idle", Description: "Never done"}
	require.NoError(t, repos.Habits.Create(ctx, &idle))
	_, err := repos.HabitActivities.Create(ctx, habit.ID, run.ID)
	require.NoError(t, err)

	start := time.Date(2024, 3, 1, 7, 0, 0, 0, time.UTC)
	end := start.Add(30 * time.Minute)
	require.NoError(t, repos.ActivityLogs.Create(ctx, &domain.ActivityLog{ActivityID: run.ID, UserID: user.ID, StartTime: start, EndTime: &end}))

	habits, err := repos.Reports.HabitsWithoutLogs(ctx)
	require.NoError(t, err)
	require.Len(t, habits, 1)
	assert.Equal(t, "Idle", habits[0].Name)

	inRange, err := repos.Reports.LogsByHabit(ctx, habit.ID, start.Add(-time.Hour), start.Add(time.Hour))
	require.NoError(t, err)
	require.Len(t, inRange, 1)
	assert.Equal(t, "Run", inRange[0].ActivityName)

	outside, err := repos.Reports.LogsByHabit(ctx, habit.ID, start.Add(time.Hour), start.Add(2*time.Hour))
	require.NoError(t, err)
	assert.Empty(t, outside)
}

func TestTimeUsedByProject(t *testing.T) {
	repos := repository.NewSet(testutil.NewDB(t))
	ctx := context.Background()
	user, run, read, _ := seed(t, repos)
	project := domain.Project{Name: "Thesis", Description: "Final thesis"}
	require.NoError(t, repos.Projects.CreateOwned(ctx, &project, user.ID))

	start := time.Date(2024, 3, 1, 7, 0, 0, 0, time.UTC)
	end := start.Add(2 * time.Hour)
	closed := domain.ActivityLog{ActivityID: run.ID, UserID: user.ID, StartTime: start, EndTime: &end}
	open := domain.ActivityLog{ActivityID: read.ID, UserID: user.ID, StartTime: start}
	require.NoError(t, repos.ActivityLogs.Create(ctx, &closed))
	require.NoError(t, repos.ActivityLogs.Create(ctx, &open))
	_, err := repos.ProjectLogs.Create(ctx, project.ID, closed.ID)
	require.NoError(t, err)
	_, err = repos.ProjectLogs.Create(ctx, project.ID, open.ID)
	require.NoError(t, err)

	used, err := repos.Reports.TimeUsedByProject(ctx)
	require.NoError(t, err)
	require.Len(t, used, 1)
	assert.Equal(t, project.ID, used[0].ID)
	assert.Equal(t, "02:00:00", used[0].TotalTime)

	logs, err := repos.Reports.LogsByProject(ctx, project.ID)
	require.NoError(t, err)
	assert.Len(t, logs, 2)

	openLogs, err := repos.Reports.OpenLogs(ctx)
	require.NoError(t, err)
	require.Len(t, openLogs, 1)
	assert.Equal(t, "Read", openLogs[0].ActivityName)
	assert.Nil(t, openLogs[0].EndTime)
}

func TestTimeUsedByProjectKeepsNamesakesApart(t *testing.T) {
	repos := repository.NewSet(testutil.NewDB(t))
	ctx := context.Background()
	user, run, read, _ := seed(t, repos)
	first := domain.Project{Name: "Thesis", Description: "First draft"}
	second := domain.Project{Name: "Thesis", Description: "Second draft"}
	require.NoError(t, repos.Projects.CreateOwned(ctx, &first, user.ID))
	require.NoError(t, repos.Projects.CreateOwned(ctx, &second, user.ID))

	start := time.Date(2024, 3, 1, 7, 0, 0, 0, time.UTC)
	end := start.Add(time.Hour)
	closed := domain.ActivityLog{ActivityID: run.ID, UserID: user.ID, StartTime: start, EndTime: &end}
	open := domain.ActivityLog{ActivityID: read.ID, UserID: user.ID, StartTime: start}
	require.NoError(t, repos.ActivityLogs.Create(ctx, &closed))
	require.NoError(t, repos.ActivityLogs.Create(ctx, &open))
	_, err := repos.ProjectLogs.Create(ctx, first.ID, closed.ID)
	require.NoError(t, err)
	_, err = repos.ProjectLogs.Create(ctx, second.ID, open.ID)
	require.NoError(t, err)

	used, err := repos.Reports.TimeUsedByProject(ctx)
	require.NoError(t, err)
	require.Len(t, used, 2)
	assert.Equal(t, first.ID, used[0].ID)
	assert.EqualValues(t, 3600, used[0].TotalSeconds)
	assert.Equal(t, second.ID, used[1].ID)
	assert.Zero(t, used[1].TotalSeconds)
	assert.Equal(t, "00:00:00", used[1].TotalTime)
}

func TestHabitWithOneLoggedActivityIsNotIdle(t *testing.T) {
	repos := repository.NewSet(testutil.NewDB(t))
	ctx := context.Background()
	user, run, read, habit := seed(t, repos)
	_, err := repos.HabitActivities.Create(ctx, habit.ID, run.ID)
	require.NoError(t, err)
	_, err = repos.HabitActivities.Create(ctx, habit.ID, read.ID)
	require.NoError(t, err)
	require.NoError(t, repos.ActivityLogs.Create(ctx, &domain.ActivityLog{ActivityID: run.ID, UserID: user.ID, StartTime: time.Date(2024, 3, 1, 7, 0, 0, 0, time.UTC)}))

	habits, err := repos.Reports.HabitsWithoutLogs(ctx)
	require.NoError(t, err)
	assert.Empty(t, habits)
}

func TestDeleteCascadeCountsRows(t *testing.T) {
	repos := repository.NewSet(testutil.NewDB(t))
	ctx := context.Background()
	user, run, read, _ := seed(t, repos)
	project := domain.Project{Name: "Thesis", Description: "Final thesis"}
	require.NoError(t, repos.Projects.CreateOwned(ctx, &project, user.ID))
	start := time.Date(2024, 3, 1, 7, 0, 0, 0, time.UTC)
	for _, activity := range []domain.Activity{run, read} {
		log := domain.ActivityLog{ActivityID: activity.ID, UserID: user.ID, StartTime: start}
		require.NoError(t, repos.ActivityLogs.Create(ctx, &log))
		_, err := repos.ProjectLogs.Create(ctx, project.ID, log.ID)
		require.NoError(t, err)
	}

	projects, logs, err := repos.Projects.DeleteCascade(ctx, project.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 1, projects)
	assert.EqualValues(t, 2, logs)

	projects, logs, err = repos.Projects.DeleteCascade(ctx, project.ID)
	require.NoError(t, err)
	assert.Zero(t, projects)
	assert.Zero(t, logs)
}

func TestFormatDuration(t *testing.T) {
	assert.Equal(t, "00:00:00", repository.FormatDuration(0))
	assert.Equal(t, "01:01:01", repository.FormatDuration(time.Hour+time.Minute+time.Second))
	assert.Equal(t, "26:00:00", repository.FormatDuration(26*time.Hour))
}
