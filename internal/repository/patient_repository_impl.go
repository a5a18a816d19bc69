package repository

import (
	"errors"

	"clinic-backend/internal/domain/entity"
	domainRepo "clinic-backend/internal/domain/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type patientRepository struct{}

func NewPatientRepository() domainRepo.PatientRepository {
	return &patientRepository{}
}

func (r *patientRepository) Create(db *gorm.DB, patient *entity.Patient) error {
	return db.Create(patient).Error
}

func (r *patientRepository) Update(db *gorm.DB, patient *entity.Patient) error {
	return db.Save(patient).Error
}

func (r *patientRepository) FindByPersonID(db *gorm.DB, personID uuid.UUID) (*entity.Patient, error) {
	var patient entity.Patient
	err := db.Preload("Person").Preload("Person.User").
		Where("person_id = ?", personID).First(&patient).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &patient, nil
}

func (r *patientRepository) FindAllActive(db *gorm.DB) ([]entity.Patient, error) {
	var patients []entity.Patient
	err := db.Preload("Person").Preload("Person.User").
		Joins("JOIN people ON people.id = patients.person_id").
		Joins("JOIN users ON users.id = people.user_id").
		Where("users.is_active = ?", true).
		Find(&patients).Error
	return patients, err
}
