package entity

import (
	"time"

	"github.com/google/uuid"
)

// Schedule is a doctor availability window: a date range plus a daily time
// range. Flat record, no cross-schedule conflict checking.
type Schedule struct {
	ID          int       `gorm:"primaryKey;autoIncrement" json:"id"`
	DoctorID    uuid.UUID `gorm:"type:uuid;not null;index" json:"doctor_id"`
	Description string    `gorm:"type:varchar(250)" json:"description,omitempty"`
	DateStart   time.Time `gorm:"type:date;not null" json:"date_start"`
	DateEnd     time.Time `gorm:"type:date;not null" json:"date_end"`
	TimeStart   string    `gorm:"type:time;not null" json:"time_start"`
	TimeEnd     string    `gorm:"type:time;not null" json:"time_end"`
	IsActive    *bool     `gorm:"not null;default:true;index" json:"is_active"`
	CreatedAt   time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time `gorm:"autoUpdateTime" json:"updated_at"`

	// Relationships
	Doctor Doctor `gorm:"foreignKey:DoctorID" json:"doctor,omitempty"`
}

func (Schedule) TableName() string {
	return "schedules"
}

// Active reports the is_active flag, treating a nil pointer as inactive.
func (s *Schedule) Active() bool {
	return s.IsActive != nil && *s.IsActive
}
