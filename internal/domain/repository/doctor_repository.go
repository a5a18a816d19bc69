package repository

import (
	"clinic-backend/internal/domain/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type DoctorRepository interface {
	Create(db *gorm.DB, doctor *entity.Doctor) error
	Update(db *gorm.DB, doctor *entity.Doctor) error
	// FindByPersonID loads the doctor with its person, user and specialties.
	FindByPersonID(db *gorm.DB, personID uuid.UUID) (*entity.Doctor, error)
	// FindAllActive lists doctors whose owning identity is active.
	FindAllActive(db *gorm.DB) ([]entity.Doctor, error)
	// ReplaceSpecialties atomically sets the association to exactly the given
	// specialties, removing links not in the list.
	ReplaceSpecialties(db *gorm.DB, doctor *entity.Doctor, specialties []entity.Specialty) error
	ExistsByCMP(db *gorm.DB, cmp string, exclude *uuid.UUID) (bool, error)
	ExistsByRNE(db *gorm.DB, rne string, exclude *uuid.UUID) (bool, error)
}
