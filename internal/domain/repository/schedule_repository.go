package repository

import (
	"clinic-backend/internal/domain/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ScheduleRepository interface {
	Create(db *gorm.DB, schedule *entity.Schedule) error
	Update(db *gorm.DB, schedule *entity.Schedule) error
	FindByID(db *gorm.DB, id int) (*entity.Schedule, error)
	FindAllActive(db *gorm.DB) ([]entity.Schedule, error)
	FindActiveByDoctorID(db *gorm.DB, doctorID uuid.UUID) ([]entity.Schedule, error)
}
