package entity

import "time"

// Specialty is a soft-deletable lookup tag assignable to doctors. Inactive
// specialties are hidden from catalogs and refused for new assignment, but
// existing doctor links are never removed retroactively.
type Specialty struct {
	ID          int       `gorm:"primaryKey;autoIncrement" json:"id"`
	Description string    `gorm:"type:varchar(250);uniqueIndex;not null" json:"description"`
	IsActive    *bool     `gorm:"not null;default:true;index" json:"is_active"`
	CreatedAt   time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time `gorm:"autoUpdateTime" json:"updated_at"`

	// Relationships
	Doctors []Doctor `gorm:"many2many:doctor_specialties;joinForeignKey:SpecialtyID;joinReferences:DoctorID" json:"doctors,omitempty"`
}

func (Specialty) TableName() string {
	return "specialties"
}

// Active reports the is_active flag, treating a nil pointer as inactive.
func (s *Specialty) Active() bool {
	return s.IsActive != nil && *s.IsActive
}
