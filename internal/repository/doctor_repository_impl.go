package repository

import (
	"errors"

	"clinic-backend/internal/domain/entity"
	domainRepo "clinic-backend/internal/domain/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type doctorRepository struct{}

func NewDoctorRepository() domainRepo.DoctorRepository {
	return &doctorRepository{}
}

func (r *doctorRepository) Create(db *gorm.DB, doctor *entity.Doctor) error {
	// Omit the association so specialty links go through ReplaceSpecialties
	// only, never implicit upserts of specialty rows.
	return db.Omit("Specialties").Create(doctor).Error
}

func (r *doctorRepository) Update(db *gorm.DB, doctor *entity.Doctor) error {
	return db.Omit("Specialties").Save(doctor).Error
}

func (r *doctorRepository) FindByPersonID(db *gorm.DB, personID uuid.UUID) (*entity.Doctor, error) {
	var doctor entity.Doctor
	err := db.Preload("Person").Preload("Person.User").Preload("Specialties").
		Where("person_id = ?", personID).First(&doctor).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &doctor, nil
}

func (r *doctorRepository) FindAllActive(db *gorm.DB) ([]entity.Doctor, error) {
	var doctors []entity.Doctor
	err := db.Preload("Person").Preload("Person.User").Preload("Specialties").
		Joins("JOIN people ON people.id = doctors.person_id").
		Joins("JOIN users ON users.id = people.user_id").
		Where("users.is_active = ?", true).
		Find(&doctors).Error
	return doctors, err
}

func (r *doctorRepository) ReplaceSpecialties(db *gorm.DB, doctor *entity.Doctor, specialties []entity.Specialty) error {
	if err := db.Model(doctor).Association("Specialties").Replace(specialties); err != nil {
		return err
	}
	doctor.Specialties = specialties
	return nil
}

func (r *doctorRepository) ExistsByCMP(db *gorm.DB, cmp string, exclude *uuid.UUID) (bool, error) {
	return r.existsByCode(db, "cmp", cmp, exclude)
}

func (r *doctorRepository) ExistsByRNE(db *gorm.DB, rne string, exclude *uuid.UUID) (bool, error) {
	return r.existsByCode(db, "rne", rne, exclude)
}

func (r *doctorRepository) existsByCode(db *gorm.DB, column, value string, exclude *uuid.UUID) (bool, error) {
	query := db.Model(&entity.Doctor{}).Where(column+" = ?", value)
	if exclude != nil {
		query = query.Where("person_id <> ?", *exclude)
	}
	var count int64
	if err := query.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}
