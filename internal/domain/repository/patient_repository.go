package repository

import (
	"clinic-backend/internal/domain/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type PatientRepository interface {
	Create(db *gorm.DB, patient *entity.Patient) error
	Update(db *gorm.DB, patient *entity.Patient) error
	// FindByPersonID loads the patient with its person and user.
	FindByPersonID(db *gorm.DB, personID uuid.UUID) (*entity.Patient, error)
	// FindAllActive lists patients whose owning identity is active.
	FindAllActive(db *gorm.DB) ([]entity.Patient, error)
}
