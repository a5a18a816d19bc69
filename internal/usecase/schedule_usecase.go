package usecase

import (
	"context"
	"errors"
	"time"

	"clinic-backend/internal/converter"
	"clinic-backend/internal/delivery/dto"
	"clinic-backend/internal/domain/entity"
	"clinic-backend/internal/domain/repository"
	"clinic-backend/pkg/fielderr"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

var (
	ErrScheduleNotFound = errors.New("schedule not found")
	ErrScheduleInactive = errors.New("schedule is already inactive")
)

const timeLayout = "15:04"

type ScheduleUsecase interface {
	CreateSchedule(ctx context.Context, req *dto.CreateScheduleRequest) (*dto.ScheduleResponse, error)
	GetSchedule(ctx context.Context, id int) (*dto.ScheduleResponse, error)
	GetAllSchedules(ctx context.Context) (*dto.ScheduleListResponse, error)
	GetSchedulesByDoctor(ctx context.Context, doctorID uuid.UUID) (*dto.ScheduleListResponse, error)
	UpdateSchedule(ctx context.Context, id int, req *dto.UpdateScheduleRequest) (*dto.ScheduleResponse, error)
	DeactivateSchedule(ctx context.Context, id int) (*dto.ScheduleResponse, error)
}

type scheduleUsecase struct {
	db           *gorm.DB
	log          *logrus.Logger
	scheduleRepo repository.ScheduleRepository
	doctorRepo   repository.DoctorRepository
}

func NewScheduleUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	scheduleRepo repository.ScheduleRepository,
	doctorRepo repository.DoctorRepository,
) ScheduleUsecase {
	return &scheduleUsecase{
		db:           db,
		log:          log,
		scheduleRepo: scheduleRepo,
		doctorRepo:   doctorRepo,
	}
}

// parseScheduleDate validates a yyyy-mm-dd value into the given field.
func parseScheduleDate(value, field string, ve fielderr.Errors) *time.Time {
	if value == "" {
		return nil
	}
	parsed, err := time.Parse(dateLayout, value)
	if err != nil {
		ve.Add(field, "must be a valid date in format yyyy-mm-dd")
		return nil
	}
	return &parsed
}

// parseScheduleTime validates an HH:MM value into the given field.
func parseScheduleTime(value, field string, ve fielderr.Errors) string {
	if value == "" {
		return ""
	}
	if _, err := time.Parse(timeLayout, value); err != nil {
		ve.Add(field, "must be a valid time in format HH:MM")
		return ""
	}
	return value
}

// checkScheduleRanges enforces date_start <= date_end and
// time_start <= time_end on the final values of the record.
func checkScheduleRanges(schedule *entity.Schedule, ve fielderr.Errors) {
	if !schedule.DateStart.IsZero() && !schedule.DateEnd.IsZero() && schedule.DateEnd.Before(schedule.DateStart) {
		ve.Add("date_end", "date_end must not be earlier than date_start")
	}
	if schedule.TimeStart != "" && schedule.TimeEnd != "" && schedule.TimeEnd < schedule.TimeStart {
		ve.Add("time_end", "time_end must not be earlier than time_start")
	}
}

func (u *scheduleUsecase) CreateSchedule(ctx context.Context, req *dto.CreateScheduleRequest) (*dto.ScheduleResponse, error) {
	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	doctor, err := u.doctorRepo.FindByPersonID(tx, req.DoctorID)
	if err != nil {
		u.log.Warnf("Failed to find doctor: %+v", err)
		return nil, err
	}
	if doctor == nil {
		return nil, ErrDoctorNotFound
	}

	ve := fielderr.New()
	schedule := &entity.Schedule{
		DoctorID:    req.DoctorID,
		Description: req.Description,
		TimeStart:   parseScheduleTime(req.TimeStart, "time_start", ve),
		TimeEnd:     parseScheduleTime(req.TimeEnd, "time_end", ve),
	}
	if dateStart := parseScheduleDate(req.DateStart, "date_start", ve); dateStart != nil {
		schedule.DateStart = *dateStart
	}
	if dateEnd := parseScheduleDate(req.DateEnd, "date_end", ve); dateEnd != nil {
		schedule.DateEnd = *dateEnd
	}
	if ve.Err() == nil {
		checkScheduleRanges(schedule, ve)
	}
	if err := ve.Err(); err != nil {
		return nil, err
	}

	if err := u.scheduleRepo.Create(tx, schedule); err != nil {
		u.log.Warnf("Failed to create schedule: %+v", err)
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	schedule.Doctor = *doctor
	return converter.ScheduleToResponse(schedule), nil
}

func (u *scheduleUsecase) GetSchedule(ctx context.Context, id int) (*dto.ScheduleResponse, error) {
	schedule, err := u.scheduleRepo.FindByID(u.db.WithContext(ctx), id)
	if err != nil {
		u.log.Warnf("Failed to find schedule: %+v", err)
		return nil, err
	}
	if schedule == nil || !schedule.Active() {
		return nil, ErrScheduleNotFound
	}

	return converter.ScheduleToResponse(schedule), nil
}

func (u *scheduleUsecase) GetAllSchedules(ctx context.Context) (*dto.ScheduleListResponse, error) {
	schedules, err := u.scheduleRepo.FindAllActive(u.db.WithContext(ctx))
	if err != nil {
		u.log.Warnf("Failed to find schedules: %+v", err)
		return nil, err
	}

	responses := converter.SchedulesToResponses(schedules)
	return &dto.ScheduleListResponse{
		Schedules: responses,
		Total:     len(responses),
	}, nil
}

func (u *scheduleUsecase) GetSchedulesByDoctor(ctx context.Context, doctorID uuid.UUID) (*dto.ScheduleListResponse, error) {
	db := u.db.WithContext(ctx)

	doctor, err := u.doctorRepo.FindByPersonID(db, doctorID)
	if err != nil {
		u.log.Warnf("Failed to find doctor: %+v", err)
		return nil, err
	}
	if doctor == nil {
		return nil, ErrDoctorNotFound
	}

	schedules, err := u.scheduleRepo.FindActiveByDoctorID(db, doctorID)
	if err != nil {
		u.log.Warnf("Failed to find schedules: %+v", err)
		return nil, err
	}

	responses := converter.SchedulesToResponses(schedules)
	return &dto.ScheduleListResponse{
		Schedules: responses,
		Total:     len(responses),
	}, nil
}

func (u *scheduleUsecase) UpdateSchedule(ctx context.Context, id int, req *dto.UpdateScheduleRequest) (*dto.ScheduleResponse, error) {
	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	schedule, err := u.scheduleRepo.FindByID(tx, id)
	if err != nil {
		u.log.Warnf("Failed to find schedule: %+v", err)
		return nil, err
	}
	if schedule == nil || !schedule.Active() {
		return nil, ErrScheduleNotFound
	}

	ve := fielderr.New()
	if dateStart := parseScheduleDate(req.DateStart, "date_start", ve); dateStart != nil {
		schedule.DateStart = *dateStart
	}
	if dateEnd := parseScheduleDate(req.DateEnd, "date_end", ve); dateEnd != nil {
		schedule.DateEnd = *dateEnd
	}
	if timeStart := parseScheduleTime(req.TimeStart, "time_start", ve); timeStart != "" {
		schedule.TimeStart = timeStart
	}
	if timeEnd := parseScheduleTime(req.TimeEnd, "time_end", ve); timeEnd != "" {
		schedule.TimeEnd = timeEnd
	}
	if req.Description != "" {
		schedule.Description = req.Description
	}
	// Range rules apply to the merged record, so a partial update cannot
	// invert an existing window.
	if ve.Err() == nil {
		checkScheduleRanges(schedule, ve)
	}
	if err := ve.Err(); err != nil {
		return nil, err
	}

	if err := u.scheduleRepo.Update(tx, schedule); err != nil {
		u.log.Warnf("Failed to update schedule: %+v", err)
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	return converter.ScheduleToResponse(schedule), nil
}

func (u *scheduleUsecase) DeactivateSchedule(ctx context.Context, id int) (*dto.ScheduleResponse, error) {
	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	schedule, err := u.scheduleRepo.FindByID(tx, id)
	if err != nil {
		u.log.Warnf("Failed to find schedule: %+v", err)
		return nil, err
	}
	if schedule == nil {
		return nil, ErrScheduleNotFound
	}
	if !schedule.Active() {
		return nil, ErrScheduleInactive
	}

	inactive := false
	schedule.IsActive = &inactive
	if err := u.scheduleRepo.Update(tx, schedule); err != nil {
		u.log.Warnf("Failed to deactivate schedule: %+v", err)
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	return converter.ScheduleToResponse(schedule), nil
}
