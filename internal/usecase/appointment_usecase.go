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
	ErrAppointmentNotFound  = errors.New("appointment not found")
	ErrAppointmentCancelled = errors.New("appointment is already cancelled")
)

type AppointmentUsecase interface {
	CreateAppointment(ctx context.Context, req *dto.CreateAppointmentRequest) (*dto.AppointmentResponse, error)
	GetAppointment(ctx context.Context, id int) (*dto.AppointmentResponse, error)
	GetAllAppointments(ctx context.Context) (*dto.AppointmentListResponse, error)
	GetAppointmentsByPatient(ctx context.Context, patientID uuid.UUID) (*dto.AppointmentListResponse, error)
	UpdateAppointment(ctx context.Context, id int, req *dto.UpdateAppointmentRequest) (*dto.AppointmentResponse, error)
	CancelAppointment(ctx context.Context, id int) (*dto.AppointmentResponse, error)
}

type appointmentUsecase struct {
	db              *gorm.DB
	log             *logrus.Logger
	appointmentRepo repository.AppointmentRepository
	doctorRepo      repository.DoctorRepository
	patientRepo     repository.PatientRepository
}

func NewAppointmentUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	appointmentRepo repository.AppointmentRepository,
	doctorRepo repository.DoctorRepository,
	patientRepo repository.PatientRepository,
) AppointmentUsecase {
	return &appointmentUsecase{
		db:              db,
		log:             log,
		appointmentRepo: appointmentRepo,
		doctorRepo:      doctorRepo,
		patientRepo:     patientRepo,
	}
}

// checkCancelledDate enforces that a cancellation cannot predate the visit.
func checkCancelledDate(scheduled time.Time, cancelled *time.Time, ve fielderr.Errors) {
	if cancelled != nil && !scheduled.IsZero() && cancelled.Before(scheduled) {
		ve.Add("cancelled_date", "cancelled_date must not be earlier than scheduled_date")
	}
}

func (u *appointmentUsecase) CreateAppointment(ctx context.Context, req *dto.CreateAppointmentRequest) (*dto.AppointmentResponse, error) {
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

	patient, err := u.patientRepo.FindByPersonID(tx, req.PatientID)
	if err != nil {
		u.log.Warnf("Failed to find patient: %+v", err)
		return nil, err
	}
	if patient == nil {
		return nil, ErrPatientNotFound
	}

	ve := fielderr.New()
	appointment := &entity.Appointment{
		DoctorID:  req.DoctorID,
		PatientID: req.PatientID,
		State:     entity.AppointmentStatePending,
	}
	if req.State != "" {
		appointment.State = entity.AppointmentState(req.State)
	}
	if scheduled := parseScheduleDate(req.ScheduledDate, "scheduled_date", ve); scheduled != nil {
		appointment.ScheduledDate = *scheduled
	}
	appointment.CancelledDate = parseScheduleDate(req.CancelledDate, "cancelled_date", ve)
	if ve.Err() == nil {
		checkCancelledDate(appointment.ScheduledDate, appointment.CancelledDate, ve)
	}
	if err := ve.Err(); err != nil {
		return nil, err
	}

	if err := u.appointmentRepo.Create(tx, appointment); err != nil {
		u.log.Warnf("Failed to create appointment: %+v", err)
		if isForeignKeyError(err, "doctor") {
			return nil, ErrDoctorNotFound
		}
		if isForeignKeyError(err, "patient") {
			return nil, ErrPatientNotFound
		}
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	appointment.Doctor = *doctor
	appointment.Patient = *patient
	return converter.AppointmentToResponse(appointment), nil
}

func (u *appointmentUsecase) GetAppointment(ctx context.Context, id int) (*dto.AppointmentResponse, error) {
	appointment, err := u.appointmentRepo.FindByID(u.db.WithContext(ctx), id)
	if err != nil {
		u.log.Warnf("Failed to find appointment: %+v", err)
		return nil, err
	}
	if appointment == nil {
		return nil, ErrAppointmentNotFound
	}

	return converter.AppointmentToResponse(appointment), nil
}

func (u *appointmentUsecase) GetAllAppointments(ctx context.Context) (*dto.AppointmentListResponse, error) {
	appointments, err := u.appointmentRepo.FindAll(u.db.WithContext(ctx))
	if err != nil {
		u.log.Warnf("Failed to find appointments: %+v", err)
		return nil, err
	}

	responses := converter.AppointmentsToResponses(appointments)
	return &dto.AppointmentListResponse{
		Appointments: responses,
		Total:        len(responses),
	}, nil
}

func (u *appointmentUsecase) GetAppointmentsByPatient(ctx context.Context, patientID uuid.UUID) (*dto.AppointmentListResponse, error) {
	db := u.db.WithContext(ctx)

	patient, err := u.patientRepo.FindByPersonID(db, patientID)
	if err != nil {
		u.log.Warnf("Failed to find patient: %+v", err)
		return nil, err
	}
	if patient == nil {
		return nil, ErrPatientNotFound
	}

	appointments, err := u.appointmentRepo.FindByPatientID(db, patientID)
	if err != nil {
		u.log.Warnf("Failed to find appointments: %+v", err)
		return nil, err
	}

	responses := converter.AppointmentsToResponses(appointments)
	return &dto.AppointmentListResponse{
		Appointments: responses,
		Total:        len(responses),
	}, nil
}

func (u *appointmentUsecase) UpdateAppointment(ctx context.Context, id int, req *dto.UpdateAppointmentRequest) (*dto.AppointmentResponse, error) {
	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	appointment, err := u.appointmentRepo.FindByID(tx, id)
	if err != nil {
		u.log.Warnf("Failed to find appointment: %+v", err)
		return nil, err
	}
	if appointment == nil {
		return nil, ErrAppointmentNotFound
	}

	ve := fielderr.New()
	if scheduled := parseScheduleDate(req.ScheduledDate, "scheduled_date", ve); scheduled != nil {
		appointment.ScheduledDate = *scheduled
	}
	if cancelled := parseScheduleDate(req.CancelledDate, "cancelled_date", ve); cancelled != nil {
		appointment.CancelledDate = cancelled
	}
	if req.State != "" {
		appointment.State = entity.AppointmentState(req.State)
	}
	// The rule applies to the merged record so a scheduled_date move cannot
	// slip past an existing cancellation.
	if ve.Err() == nil {
		checkCancelledDate(appointment.ScheduledDate, appointment.CancelledDate, ve)
	}
	if err := ve.Err(); err != nil {
		return nil, err
	}

	if err := u.appointmentRepo.Update(tx, appointment); err != nil {
		u.log.Warnf("Failed to update appointment: %+v", err)
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	return converter.AppointmentToResponse(appointment), nil
}

func (u *appointmentUsecase) CancelAppointment(ctx context.Context, id int) (*dto.AppointmentResponse, error) {
	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	appointment, err := u.appointmentRepo.FindByID(tx, id)
	if err != nil {
		u.log.Warnf("Failed to find appointment: %+v", err)
		return nil, err
	}
	if appointment == nil {
		return nil, ErrAppointmentNotFound
	}
	if appointment.State == entity.AppointmentStateCancelled {
		return nil, ErrAppointmentCancelled
	}

	// cancelled_date is never allowed below scheduled_date.
	cancelDate := time.Now().Truncate(24 * time.Hour)
	if cancelDate.Before(appointment.ScheduledDate) {
		cancelDate = appointment.ScheduledDate
	}
	appointment.Cancel(cancelDate)

	if err := u.appointmentRepo.Update(tx, appointment); err != nil {
		u.log.Warnf("Failed to cancel appointment: %+v", err)
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	return converter.AppointmentToResponse(appointment), nil
}
