package repository

import (
	"errors"

	"clinic-backend/internal/domain/entity"
	domainRepo "clinic-backend/internal/domain/repository"

	"gorm.io/gorm"
)

type specialtyRepository struct{}

func NewSpecialtyRepository() domainRepo.SpecialtyRepository {
	return &specialtyRepository{}
}

func (r *specialtyRepository) Create(db *gorm.DB, specialty *entity.Specialty) error {
	return db.Create(specialty).Error
}

func (r *specialtyRepository) Update(db *gorm.DB, specialty *entity.Specialty) error {
	return db.Save(specialty).Error
}

func (r *specialtyRepository) FindByID(db *gorm.DB, id int) (*entity.Specialty, error) {
	var specialty entity.Specialty
	err := db.Where("id = ?", id).First(&specialty).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &specialty, nil
}

func (r *specialtyRepository) FindAllActive(db *gorm.DB) ([]entity.Specialty, error) {
	var specialties []entity.Specialty
	err := db.Where("is_active = ?", true).Order("id asc").Find(&specialties).Error
	return specialties, err
}

func (r *specialtyRepository) FindActiveByIDs(db *gorm.DB, ids []int) ([]entity.Specialty, error) {
	var specialties []entity.Specialty
	if len(ids) == 0 {
		return specialties, nil
	}
	err := db.Where("id IN ? AND is_active = ?", ids, true).Order("id asc").Find(&specialties).Error
	return specialties, err
}

func (r *specialtyRepository) ExistsByDescription(db *gorm.DB, description string, excludeID int) (bool, error) {
	query := db.Model(&entity.Specialty{}).Where("description = ?", description)
	if excludeID != 0 {
		query = query.Where("id <> ?", excludeID)
	}
	var count int64
	if err := query.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}
