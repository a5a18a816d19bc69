package entity

import (
	"time"

	"github.com/google/uuid"
)

// Person is the demographic profile shared by patients and doctors.
// DNI is unique but nullable: self-registered accounts start with an empty
// person row that is filled in later.
type Person struct {
	ID        uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	UserID    *uuid.UUID `gorm:"type:uuid;uniqueIndex" json:"user_id,omitempty"`
	DNI       *string    `gorm:"type:varchar(8);uniqueIndex" json:"dni,omitempty"`
	FirstName string     `gorm:"type:varchar(250)" json:"first_name,omitempty"`
	LastName  string     `gorm:"type:varchar(250)" json:"last_name,omitempty"`
	Phone     string     `gorm:"type:varchar(9)" json:"phone,omitempty"`
	BirthDate *time.Time `gorm:"type:date" json:"birth_date,omitempty"`
	Gender    string     `gorm:"type:char(1);not null;default:'M'" json:"gender"`
	Direction string     `gorm:"type:varchar(250)" json:"direction,omitempty"`
	CreatedAt time.Time  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time  `gorm:"autoUpdateTime" json:"updated_at"`

	// Relationships
	User    *User    `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Patient *Patient `gorm:"foreignKey:PersonID" json:"patient,omitempty"`
	Doctor  *Doctor  `gorm:"foreignKey:PersonID" json:"doctor,omitempty"`
}

func (Person) TableName() string {
	return "people"
}

// Gender constants
const (
	GenderMale   = "M"
	GenderFemale = "F"
	GenderOther  = "O"
)

// Genders lists the valid gender codes.
var Genders = []string{GenderMale, GenderFemale, GenderOther}
