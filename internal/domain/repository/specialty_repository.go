package repository

import (
	"clinic-backend/internal/domain/entity"

	"gorm.io/gorm"
)

type SpecialtyRepository interface {
	Create(db *gorm.DB, specialty *entity.Specialty) error
	Update(db *gorm.DB, specialty *entity.Specialty) error
	FindByID(db *gorm.DB, id int) (*entity.Specialty, error)
	// FindAllActive lists active specialties in insertion order.
	FindAllActive(db *gorm.DB) ([]entity.Specialty, error)
	// FindActiveByIDs resolves ids to active specialties; ids of missing or
	// inactive rows are simply absent from the result.
	FindActiveByIDs(db *gorm.DB, ids []int) ([]entity.Specialty, error)
	ExistsByDescription(db *gorm.DB, description string, excludeID int) (bool, error)
}
