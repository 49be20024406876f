package domain

// Roles a user can hold
const (
	RoleAdmin = "admin" // Full access, including user management
	RoleUser  = "user"  // Regular account
)

// User Model
type User struct {
	ID       uint   `gorm:"primaryKey" json:"id"`                         // Primary key
	Name     string `gorm:"size:100;not null" json:"name"`                // Display name
	Username string `gorm:"size:50;uniqueIndex;not null" json:"username"` // Unique username
	Password string `gorm:"size:100;not null" json:"-"`                   // Hashed password, never serialized
	Role     string `gorm:"size:10;not null;default:user" json:"role"`    // Role: user or admin
}

// EntityID returns the primary key
func (u User) EntityID() uint { return u.ID }
