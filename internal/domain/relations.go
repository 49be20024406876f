package domain

// Link is implemented by every relation row. Left and Right are the two endpoint ids
// in the order the relation is addressed (for example activity then category).
type Link interface {
	RelationID() uint
	Left() uint
	Right() uint
}

// CategoryActivity links one Category to one Activity
type CategoryActivity struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	ActivityID uint      `gorm:"not null;uniqueIndex:idx_category_activity,priority:1" json:"activity_id"`
	Activity   *Activity `gorm:"constraint:OnDelete:CASCADE;" json:"-"`
	CategoryID uint      `gorm:"not null;uniqueIndex:idx_category_activity,priority:2;index" json:"category_id"`
	Category   *Category `gorm:"constraint:OnDelete:CASCADE;" json:"-"`
}

// HabitActivity links one Habit to one Activity
type HabitActivity struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	HabitID    uint      `gorm:"not null;uniqueIndex:idx_habit_activity,priority:1" json:"habit_id"`
	Habit      *Habit    `gorm:"constraint:OnDelete:CASCADE;" json:"-"`
	ActivityID uint      `gorm:"not null;uniqueIndex:idx_habit_activity,priority:2;index" json:"activity_id"`
	Activity   *Activity `gorm:"constraint:OnDelete:CASCADE;" json:"-"`
}

// UserProject links one User to one Project. A project has a single owner, which is
// enforced when linking rather than by the schema.
type UserProject struct {
	ID        uint     `gorm:"primaryKey" json:"id"`
	UserID    uint     `gorm:"not null;uniqueIndex:idx_user_project,priority:1" json:"user_id"`
	User      *User    `gorm:"constraint:OnDelete:CASCADE;" json:"-"`
	ProjectID uint     `gorm:"not null;uniqueIndex:idx_user_project,priority:2;index" json:"project_id"`
	Project   *Project `gorm:"constraint:OnDelete:CASCADE;" json:"-"`
}

// UserHabit links one User to one Habit
type UserHabit struct {
	ID      uint   `gorm:"primaryKey" json:"id"`
	UserID  uint   `gorm:"not null;uniqueIndex:idx_user_habit,priority:1" json:"user_id"`
	User    *User  `gorm:"constraint:OnDelete:CASCADE;" json:"-"`
	HabitID uint   `gorm:"not null;uniqueIndex:idx_user_habit,priority:2;index" json:"habit_id"`
	Habit   *Habit `gorm:"constraint:OnDelete:CASCADE;" json:"-"`
}

// ProjectActivityLog links one Project to one ActivityLog
type ProjectActivityLog struct {
	ID            uint         `gorm:"primaryKey" json:"id"`
	ProjectID     uint         `gorm:"not null;uniqueIndex:idx_project_activity_log,priority:1" json:"project_id"`
	Project       *Project     `gorm:"constraint:OnDelete:CASCADE;" json:"-"`
	ActivityLogID uint         `gorm:"not null;uniqueIndex:idx_project_activity_log,priority:2;index" json:"activity_log_id"`
	ActivityLog   *ActivityLog `gorm:"constraint:OnDelete:CASCADE;" json:"-"`
}

func (r *CategoryActivity) RelationID() uint { return r.ID }
func (r *CategoryActivity) Left() uint       { return r.ActivityID }
func (r *CategoryActivity) Right() uint      { return r.CategoryID }

func (r *HabitActivity) RelationID() uint { return r.ID }
func (r *HabitActivity) Left() uint       { return r.HabitID }
func (r *HabitActivity) Right() uint      { return r.ActivityID }

func (r *UserProject) RelationID() uint { return r.ID }
func (r *UserProject) Left() uint       { return r.UserID }
func (r *UserProject) Right() uint      { return r.ProjectID }

func (r *UserHabit) RelationID() uint { return r.ID }
func (r *UserHabit) Left() uint       { return r.UserID }
func (r *UserHabit) Right() uint      { return r.HabitID }

func (r *ProjectActivityLog) RelationID() uint { return r.ID }
func (r *ProjectActivityLog) Left() uint       { return r.ProjectID }
func (r *ProjectActivityLog) Right() uint      { return r.ActivityLogID }

// Models lists every table in migration order
func Models() []any {
	return []any{
		&User{}, &Activity{}, &Category{}, &Habit{}, &Project{}, &ActivityLog{},
		&CategoryActivity{}, &HabitActivity{}, &UserProject{}, &UserHabit{}, &ProjectActivityLog{},
	}
}
