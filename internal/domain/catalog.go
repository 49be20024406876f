package domain

// Activity Model
type Activity struct {
	ID          uint   `gorm:"primaryKey" json:"id"`          // Primary key
	Name        string `gorm:"size:100;not null" json:"name"` // Activity name
	Description string `gorm:"type:text" json:"description"`  // Free text description
}

// Category Model
type Category struct {
	ID          uint   `gorm:"primaryKey" json:"id"`                      // Primary key
	Name        string `gorm:"size:100;uniqueIndex;not null" json:"name"` // Unique category name
	Description string `gorm:"type:text" json:"description"`              // Free text description
}

// Habit Model
type Habit struct {
	ID          uint   `gorm:"primaryKey" json:"id"`          // Primary key
	Name        string `gorm:"size:100;not null" json:"name"` // Habit name
	Description string `gorm:"type:text" json:"description"`  // Free text description
}

// Project Model
type Project struct {
	ID          uint   `gorm:"primaryKey" json:"id"`          // Primary key
	Name        string `gorm:"size:100;not null" json:"name"` // Project name
	Description string `gorm:"type:text" json:"description"`  // Free text description
}

func (a Activity) EntityID() uint { return a.ID }
func (c Category) EntityID() uint { return c.ID }
func (h Habit) EntityID() uint    { return h.ID }
func (p Project) EntityID() uint  { return p.ID }
