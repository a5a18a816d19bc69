package entity

import "github.com/google/uuid"

// Doctor extends a Person with license data and specialty links.
// CMP and RNE columns are varchar(15) but the business rule caps them at 12
// alphanumeric characters; validation enforces the 12-char boundary.
type Doctor struct {
	PersonID uuid.UUID `gorm:"type:uuid;primaryKey" json:"person_id"`
	CMP      *string   `gorm:"type:varchar(15);uniqueIndex" json:"cmp,omitempty"`
	RNE      *string   `gorm:"type:varchar(15);uniqueIndex" json:"rne,omitempty"`

	// Relationships
	Person      Person      `gorm:"foreignKey:PersonID" json:"person,omitempty"`
	Specialties []Specialty `gorm:"many2many:doctor_specialties;joinForeignKey:DoctorID;joinReferences:SpecialtyID" json:"specialties,omitempty"`
}

func (Doctor) TableName() string {
	return "doctors"
}
