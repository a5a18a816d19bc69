package repository

import (
	"errors"

	"clinic-backend/internal/domain/entity"
	domainRepo "clinic-backend/internal/domain/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type scheduleRepository struct{}

func NewScheduleRepository() domainRepo.ScheduleRepository {
	return &scheduleRepository{}
}

func (r *scheduleRepository) Create(db *gorm.DB, schedule *entity.Schedule) error {
	return db.Create(schedule).Error
}

func (r *scheduleRepository) Update(db *gorm.DB, schedule *entity.Schedule) error {
	return db.Save(schedule).Error
}

func (r *scheduleRepository) FindByID(db *gorm.DB, id int) (*entity.Schedule, error) {
	var schedule entity.Schedule
	err := db.Preload("Doctor").Preload("Doctor.Person").
		Where("id = ?", id).First(&schedule).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &schedule, nil
}

func (r *scheduleRepository) FindAllActive(db *gorm.DB) ([]entity.Schedule, error) {
	var schedules []entity.Schedule
	err := db.Preload("Doctor").Preload("Doctor.Person").
		Where("is_active = ?", true).Order("date_start asc").Find(&schedules).Error
	return schedules, err
}

func (r *scheduleRepository) FindActiveByDoctorID(db *gorm.DB, doctorID uuid.UUID) ([]entity.Schedule, error) {
	var schedules []entity.Schedule
	err := db.Where("doctor_id = ? AND is_active = ?", doctorID, true).
		Order("date_start asc").Find(&schedules).Error
	return schedules, err
}
