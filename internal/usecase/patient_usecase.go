package usecase

import (
	"context"
	"errors"

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
	ErrPatientNotFound = errors.New("patient not found")
	ErrPatientInactive = errors.New("patient is already inactive")
)

type PatientUsecase interface {
	CreatePatient(ctx context.Context, req *dto.CreatePatientRequest) (*dto.PatientResponse, error)
	GetPatient(ctx context.Context, personID uuid.UUID) (*dto.PatientResponse, error)
	GetAllPatients(ctx context.Context) (*dto.PatientListResponse, error)
	UpdatePatient(ctx context.Context, personID uuid.UUID, req *dto.UpdatePatientRequest) (*dto.PatientResponse, error)
	DeactivatePatient(ctx context.Context, personID uuid.UUID) (*dto.PatientResponse, error)
}

type patientUsecase struct {
	db          *gorm.DB
	log         *logrus.Logger
	userRepo    repository.UserRepository
	personRepo  repository.PersonRepository
	patientRepo repository.PatientRepository
}

func NewPatientUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	userRepo repository.UserRepository,
	personRepo repository.PersonRepository,
	patientRepo repository.PatientRepository,
) PatientUsecase {
	return &patientUsecase{
		db:          db,
		log:         log,
		userRepo:    userRepo,
		personRepo:  personRepo,
		patientRepo: patientRepo,
	}
}

func (u *patientUsecase) CreatePatient(ctx context.Context, req *dto.CreatePatientRequest) (*dto.PatientResponse, error) {
	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	// Collect every field failure before any write.
	ve := fielderr.New()
	birthDate := validatePersonFields(ve, &req.Person)
	if err := checkIdentityPayload(tx, u.userRepo, req.Person.User, nil, ve); err != nil {
		u.log.Warnf("Failed to check identity uniqueness: %+v", err)
		return nil, err
	}
	if err := checkDNI(tx, u.personRepo, req.Person.DNI, nil, ve); err != nil {
		u.log.Warnf("Failed to check DNI uniqueness: %+v", err)
		return nil, err
	}
	if err := ve.Err(); err != nil {
		return nil, err
	}

	// Ordered writes: identity, person, patient row.
	user, err := buildIdentity(req.Person.User)
	if err != nil {
		u.log.Warnf("Failed to hash password: %+v", err)
		return nil, err
	}
	if err := u.userRepo.Create(tx, user); err != nil {
		u.log.Warnf("Failed to create user: %+v", err)
		return nil, mapProfileWriteError(err)
	}

	person := &entity.Person{UserID: &user.ID, Gender: req.Person.Gender}
	applyPersonUpdate(person, &req.Person, birthDate)
	if err := u.personRepo.Create(tx, person); err != nil {
		u.log.Warnf("Failed to create person: %+v", err)
		return nil, mapProfileWriteError(err)
	}

	patient := &entity.Patient{
		PersonID:        person.ID,
		BloodGroup:      req.BloodGroup,
		ContactPhone:    req.ContactPhone,
		Allergies:       req.Allergies,
		ClinicalHistory: req.ClinicalHistory,
	}
	if err := u.patientRepo.Create(tx, patient); err != nil {
		u.log.Warnf("Failed to create patient: %+v", err)
		return nil, mapProfileWriteError(err)
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	if patient.BloodGroup == "" {
		patient.BloodGroup = entity.DefaultBloodGroup
	}
	person.User = user
	patient.Person = *person
	return converter.PatientToResponse(patient), nil
}

func (u *patientUsecase) GetPatient(ctx context.Context, personID uuid.UUID) (*dto.PatientResponse, error) {
	patient, err := u.patientRepo.FindByPersonID(u.db.WithContext(ctx), personID)
	if err != nil {
		u.log.Warnf("Failed to find patient: %+v", err)
		return nil, err
	}
	if patient == nil {
		return nil, ErrPatientNotFound
	}

	return converter.PatientToResponse(patient), nil
}

func (u *patientUsecase) GetAllPatients(ctx context.Context) (*dto.PatientListResponse, error) {
	patients, err := u.patientRepo.FindAllActive(u.db.WithContext(ctx))
	if err != nil {
		u.log.Warnf("Failed to find patients: %+v", err)
		return nil, err
	}

	responses := converter.PatientsToResponses(patients)
	return &dto.PatientListResponse{
		Patients: responses,
		Total:    len(responses),
	}, nil
}

func (u *patientUsecase) UpdatePatient(ctx context.Context, personID uuid.UUID, req *dto.UpdatePatientRequest) (*dto.PatientResponse, error) {
	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	patient, err := u.patientRepo.FindByPersonID(tx, personID)
	if err != nil {
		u.log.Warnf("Failed to find patient: %+v", err)
		return nil, err
	}
	if patient == nil {
		return nil, ErrPatientNotFound
	}

	ve := fielderr.New()
	pv := validateUpdatePerson(tx, u.userRepo, u.personRepo, &patient.Person, req.Person, ve)
	if pv.err != nil {
		u.log.Warnf("Failed to check uniqueness: %+v", pv.err)
		return nil, pv.err
	}
	if err := ve.Err(); err != nil {
		return nil, err
	}

	// Identity first, then person scalars, then role scalars.
	if req.Person != nil && req.Person.User != nil {
		if patient.Person.User == nil {
			return nil, ErrIdentityMissing
		}
		if err := applyIdentityUpdate(patient.Person.User, req.Person.User); err != nil {
			u.log.Warnf("Failed to hash password: %+v", err)
			return nil, err
		}
		if err := u.userRepo.Update(tx, patient.Person.User); err != nil {
			u.log.Warnf("Failed to update user: %+v", err)
			return nil, mapProfileWriteError(err)
		}
	}

	if req.Person != nil {
		applyPersonUpdate(&patient.Person, req.Person, pv.birthDate)
		if err := u.personRepo.Update(tx, &patient.Person); err != nil {
			u.log.Warnf("Failed to update person: %+v", err)
			return nil, mapProfileWriteError(err)
		}
	}

	if req.BloodGroup != "" {
		patient.BloodGroup = req.BloodGroup
	}
	if req.ContactPhone != "" {
		patient.ContactPhone = req.ContactPhone
	}
	if req.Allergies != "" {
		patient.Allergies = req.Allergies
	}
	if req.ClinicalHistory != "" {
		patient.ClinicalHistory = req.ClinicalHistory
	}
	if err := u.patientRepo.Update(tx, patient); err != nil {
		u.log.Warnf("Failed to update patient: %+v", err)
		return nil, mapProfileWriteError(err)
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	return converter.PatientToResponse(patient), nil
}

func (u *patientUsecase) DeactivatePatient(ctx context.Context, personID uuid.UUID) (*dto.PatientResponse, error) {
	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	patient, err := u.patientRepo.FindByPersonID(tx, personID)
	if err != nil {
		u.log.Warnf("Failed to find patient: %+v", err)
		return nil, err
	}
	if patient == nil {
		return nil, ErrPatientNotFound
	}
	if patient.Person.User == nil {
		return nil, ErrIdentityMissing
	}
	if !patient.Person.User.Active() {
		return nil, ErrPatientInactive
	}

	// Soft delete cascades to the identity: the account loses access, every
	// row stays.
	inactive := false
	patient.Person.User.IsActive = &inactive
	if err := u.userRepo.Update(tx, patient.Person.User); err != nil {
		u.log.Warnf("Failed to deactivate user: %+v", err)
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	return converter.PatientToResponse(patient), nil
}
