package entity

import "github.com/google/uuid"

// Patient extends a Person with clinical data. The person id is the
// identifying key, one patient row per person.
type Patient struct {
	PersonID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"person_id"`
	BloodGroup      string    `gorm:"type:varchar(3);not null;default:'O+'" json:"blood_group"`
	ContactPhone    string    `gorm:"type:varchar(9)" json:"contact_phone,omitempty"`
	Allergies       string    `gorm:"type:text" json:"allergies,omitempty"`
	ClinicalHistory string    `gorm:"type:text" json:"clinical_history,omitempty"`

	// Relationships
	Person Person `gorm:"foreignKey:PersonID" json:"person,omitempty"`
}

func (Patient) TableName() string {
	return "patients"
}

// DefaultBloodGroup is assigned when a patient is created without one.
const DefaultBloodGroup = "O+"

// BloodGroups lists the eight valid blood group codes.
var BloodGroups = []string{"A+", "A-", "B+", "B-", "AB+", "AB-", "O+", "O-"}

// IsValidBloodGroup reports whether v is one of the enumerated blood groups.
func IsValidBloodGroup(v string) bool {
	for _, bg := range BloodGroups {
		if v == bg {
			return true
		}
	}
	return false
}
