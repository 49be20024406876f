package domain

import "time"

// ActivityLog Model. A nil EndTime marks an open (ongoing) occurrence.
type ActivityLog struct {
	ID         uint       `gorm:"primaryKey" json:"id"`                                    // Primary key
	ActivityID uint       `gorm:"not null;index" json:"activity_id"`                       // Foreign key to Activity
	Activity   *Activity  `gorm:"constraint:OnUpdate:CASCADE,OnDelete:RESTRICT;" json:"-"` // Logged activity
	UserID     uint       `gorm:"not null;index" json:"user_id"`                           // Foreign key to User
	User       *User      `gorm:"constraint:OnUpdate:CASCADE,OnDelete:RESTRICT;" json:"-"` // Owner of the log
	StartTime  time.Time  `gorm:"not null" json:"start_time"`                              // Start of the occurrence
	EndTime    *time.Time `json:"end_time"`                                                // End of the occurrence, nil while open
}

func (l ActivityLog) EntityID() uint { return l.ID }

// IsOpen reports whether the log has no end time yet
func (l ActivityLog) IsOpen() bool { return l.EndTime == nil }
