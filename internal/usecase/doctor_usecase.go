package usecase

import (
	"context"
	"errors"
	"fmt"
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
	ErrDoctorNotFound = errors.New("doctor not found")
	ErrDoctorInactive = errors.New("doctor is already inactive")
)

type DoctorUsecase interface {
	CreateDoctor(ctx context.Context, req *dto.CreateDoctorRequest) (*dto.DoctorResponse, error)
	GetDoctor(ctx context.Context, personID uuid.UUID) (*dto.DoctorResponse, error)
	GetAllDoctors(ctx context.Context) (*dto.DoctorListResponse, error)
	UpdateDoctor(ctx context.Context, personID uuid.UUID, req *dto.UpdateDoctorRequest) (*dto.DoctorResponse, error)
	DeactivateDoctor(ctx context.Context, personID uuid.UUID) (*dto.DoctorResponse, error)

	// CheckCreateDoctor and CheckUpdateDoctor run the pre-write checks
	// without writing anything, so the delivery layer can report domain
	// conflicts together with format failures in a single response.
	CheckCreateDoctor(ctx context.Context, req *dto.CreateDoctorRequest) error
	CheckUpdateDoctor(ctx context.Context, personID uuid.UUID, req *dto.UpdateDoctorRequest) error
}

type doctorUsecase struct {
	db            *gorm.DB
	log           *logrus.Logger
	userRepo      repository.UserRepository
	personRepo    repository.PersonRepository
	doctorRepo    repository.DoctorRepository
	specialtyRepo repository.SpecialtyRepository
}

func NewDoctorUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	userRepo repository.UserRepository,
	personRepo repository.PersonRepository,
	doctorRepo repository.DoctorRepository,
	specialtyRepo repository.SpecialtyRepository,
) DoctorUsecase {
	return &doctorUsecase{
		db:            db,
		log:           log,
		userRepo:      userRepo,
		personRepo:    personRepo,
		doctorRepo:    doctorRepo,
		specialtyRepo: specialtyRepo,
	}
}

// resolveSpecialties maps the requested ids to active specialty rows. Every
// id must resolve; inactive or missing specialties fail the specialties field.
func (u *doctorUsecase) resolveSpecialties(tx *gorm.DB, ids []int, ve fielderr.Errors) ([]entity.Specialty, error) {
	specialties, err := u.specialtyRepo.FindActiveByIDs(tx, ids)
	if err != nil {
		return nil, err
	}

	found := make(map[int]bool, len(specialties))
	for _, s := range specialties {
		found[s.ID] = true
	}
	for _, id := range ids {
		if !found[id] {
			ve.Add("specialties", fmt.Sprintf("specialty %d does not exist or is not active", id))
		}
	}
	return specialties, nil
}

// checkLicenseCodes verifies CMP/RNE uniqueness before any write; format is
// already covered by the struct validator.
func (u *doctorUsecase) checkLicenseCodes(tx *gorm.DB, cmp, rne string, exclude *uuid.UUID, ve fielderr.Errors) error {
	if cmp != "" && !ve.Has("cmp") {
		exists, err := u.doctorRepo.ExistsByCMP(tx, cmp, exclude)
		if err != nil {
			return err
		}
		if exists {
			ve.Add("cmp", "the CMP is already registered")
		}
	}
	if rne != "" && !ve.Has("rne") {
		exists, err := u.doctorRepo.ExistsByRNE(tx, rne, exclude)
		if err != nil {
			return err
		}
		if exists {
			ve.Add("rne", "the RNE is already registered")
		}
	}
	return nil
}

// createChecks collects every field failure of a doctor create before any
// write and returns the parsed birth date and the resolved specialty rows.
func (u *doctorUsecase) createChecks(tx *gorm.DB, req *dto.CreateDoctorRequest, ve fielderr.Errors) (*time.Time, []entity.Specialty, error) {
	birthDate := validatePersonFields(ve, &req.Person)
	if err := checkIdentityPayload(tx, u.userRepo, req.Person.User, nil, ve); err != nil {
		u.log.Warnf("Failed to check identity uniqueness: %+v", err)
		return nil, nil, err
	}
	if err := checkDNI(tx, u.personRepo, req.Person.DNI, nil, ve); err != nil {
		u.log.Warnf("Failed to check DNI uniqueness: %+v", err)
		return nil, nil, err
	}
	if err := u.checkLicenseCodes(tx, req.CMP, req.RNE, nil, ve); err != nil {
		u.log.Warnf("Failed to check license codes: %+v", err)
		return nil, nil, err
	}
	specialties, err := u.resolveSpecialties(tx, req.Specialties, ve)
	if err != nil {
		u.log.Warnf("Failed to resolve specialties: %+v", err)
		return nil, nil, err
	}
	return birthDate, specialties, nil
}

// updateChecks collects every field failure of a partial doctor update.
func (u *doctorUsecase) updateChecks(tx *gorm.DB, doctor *entity.Doctor, req *dto.UpdateDoctorRequest, ve fielderr.Errors) (*time.Time, []entity.Specialty, error) {
	pv := validateUpdatePerson(tx, u.userRepo, u.personRepo, &doctor.Person, req.Person, ve)
	if pv.err != nil {
		u.log.Warnf("Failed to check uniqueness: %+v", pv.err)
		return nil, nil, pv.err
	}

	// Resubmitting the doctor's own codes is not a conflict.
	cmp := req.CMP
	if doctor.CMP != nil && *doctor.CMP == cmp {
		cmp = ""
	}
	rne := req.RNE
	if doctor.RNE != nil && *doctor.RNE == rne {
		rne = ""
	}
	if err := u.checkLicenseCodes(tx, cmp, rne, &doctor.PersonID, ve); err != nil {
		u.log.Warnf("Failed to check license codes: %+v", err)
		return nil, nil, err
	}

	// A nil specialty list leaves the associations untouched; an explicit
	// list, even empty, replaces the whole set.
	var specialties []entity.Specialty
	if req.Specialties != nil {
		var err error
		specialties, err = u.resolveSpecialties(tx, *req.Specialties, ve)
		if err != nil {
			u.log.Warnf("Failed to resolve specialties: %+v", err)
			return nil, nil, err
		}
	}
	return pv.birthDate, specialties, nil
}

func (u *doctorUsecase) CreateDoctor(ctx context.Context, req *dto.CreateDoctorRequest) (*dto.DoctorResponse, error) {
	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	doctor, err := u.createDoctor(tx, req)
	if err != nil {
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	return converter.DoctorToResponse(doctor), nil
}

func (u *doctorUsecase) createDoctor(tx *gorm.DB, req *dto.CreateDoctorRequest) (*entity.Doctor, error) {
	ve := fielderr.New()
	birthDate, specialties, err := u.createChecks(tx, req, ve)
	if err != nil {
		return nil, err
	}
	if err := ve.Err(); err != nil {
		return nil, err
	}

	// Ordered writes: identity, person, doctor row, association set.
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

	doctor := &entity.Doctor{PersonID: person.ID}
	if req.CMP != "" {
		cmp := req.CMP
		doctor.CMP = &cmp
	}
	if req.RNE != "" {
		rne := req.RNE
		doctor.RNE = &rne
	}
	if err := u.doctorRepo.Create(tx, doctor); err != nil {
		u.log.Warnf("Failed to create doctor: %+v", err)
		return nil, mapProfileWriteError(err)
	}

	if len(specialties) > 0 {
		if err := u.doctorRepo.ReplaceSpecialties(tx, doctor, specialties); err != nil {
			u.log.Warnf("Failed to set specialties: %+v", err)
			return nil, err
		}
	}

	person.User = user
	doctor.Person = *person
	return doctor, nil
}

func (u *doctorUsecase) GetDoctor(ctx context.Context, personID uuid.UUID) (*dto.DoctorResponse, error) {
	doctor, err := u.doctorRepo.FindByPersonID(u.db.WithContext(ctx), personID)
	if err != nil {
		u.log.Warnf("Failed to find doctor: %+v", err)
		return nil, err
	}
	if doctor == nil {
		return nil, ErrDoctorNotFound
	}

	return converter.DoctorToResponse(doctor), nil
}

func (u *doctorUsecase) GetAllDoctors(ctx context.Context) (*dto.DoctorListResponse, error) {
	return u.listDoctors(u.db.WithContext(ctx))
}

func (u *doctorUsecase) listDoctors(db *gorm.DB) (*dto.DoctorListResponse, error) {
	doctors, err := u.doctorRepo.FindAllActive(db)
	if err != nil {
		u.log.Warnf("Failed to find doctors: %+v", err)
		return nil, err
	}

	responses := converter.DoctorsToResponses(doctors)
	return &dto.DoctorListResponse{
		Doctors: responses,
		Total:   len(responses),
	}, nil
}

func (u *doctorUsecase) UpdateDoctor(ctx context.Context, personID uuid.UUID, req *dto.UpdateDoctorRequest) (*dto.DoctorResponse, error) {
	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	doctor, err := u.updateDoctor(tx, personID, req)
	if err != nil {
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	return converter.DoctorToResponse(doctor), nil
}

func (u *doctorUsecase) updateDoctor(tx *gorm.DB, personID uuid.UUID, req *dto.UpdateDoctorRequest) (*entity.Doctor, error) {
	doctor, err := u.doctorRepo.FindByPersonID(tx, personID)
	if err != nil {
		u.log.Warnf("Failed to find doctor: %+v", err)
		return nil, err
	}
	if doctor == nil {
		return nil, ErrDoctorNotFound
	}

	ve := fielderr.New()
	birthDate, specialties, err := u.updateChecks(tx, doctor, req, ve)
	if err != nil {
		return nil, err
	}
	if err := ve.Err(); err != nil {
		return nil, err
	}

	// Identity first, then person scalars, then role scalars, then the
	// association set.
	if req.Person != nil && req.Person.User != nil {
		if doctor.Person.User == nil {
			return nil, ErrIdentityMissing
		}
		if err := applyIdentityUpdate(doctor.Person.User, req.Person.User); err != nil {
			u.log.Warnf("Failed to hash password: %+v", err)
			return nil, err
		}
		if err := u.userRepo.Update(tx, doctor.Person.User); err != nil {
			u.log.Warnf("Failed to update user: %+v", err)
			return nil, mapProfileWriteError(err)
		}
	}

	if req.Person != nil {
		applyPersonUpdate(&doctor.Person, req.Person, birthDate)
		if err := u.personRepo.Update(tx, &doctor.Person); err != nil {
			u.log.Warnf("Failed to update person: %+v", err)
			return nil, mapProfileWriteError(err)
		}
	}

	if req.CMP != "" {
		value := req.CMP
		doctor.CMP = &value
	}
	if req.RNE != "" {
		value := req.RNE
		doctor.RNE = &value
	}
	if err := u.doctorRepo.Update(tx, doctor); err != nil {
		u.log.Warnf("Failed to update doctor: %+v", err)
		return nil, mapProfileWriteError(err)
	}

	if req.Specialties != nil {
		if err := u.doctorRepo.ReplaceSpecialties(tx, doctor, specialties); err != nil {
			u.log.Warnf("Failed to replace specialties: %+v", err)
			return nil, err
		}
	}

	return doctor, nil
}

func (u *doctorUsecase) DeactivateDoctor(ctx context.Context, personID uuid.UUID) (*dto.DoctorResponse, error) {
	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	doctor, err := u.deactivateDoctor(tx, personID)
	if err != nil {
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	return converter.DoctorToResponse(doctor), nil
}

func (u *doctorUsecase) deactivateDoctor(tx *gorm.DB, personID uuid.UUID) (*entity.Doctor, error) {
	doctor, err := u.doctorRepo.FindByPersonID(tx, personID)
	if err != nil {
		u.log.Warnf("Failed to find doctor: %+v", err)
		return nil, err
	}
	if doctor == nil {
		return nil, ErrDoctorNotFound
	}
	if doctor.Person.User == nil {
		return nil, ErrIdentityMissing
	}
	if !doctor.Person.User.Active() {
		return nil, ErrDoctorInactive
	}

	// Same cascade rule as patients: the identity is deactivated together
	// with the role record.
	inactive := false
	doctor.Person.User.IsActive = &inactive
	if err := u.userRepo.Update(tx, doctor.Person.User); err != nil {
		u.log.Warnf("Failed to deactivate user: %+v", err)
		return nil, err
	}

	return doctor, nil
}

func (u *doctorUsecase) CheckCreateDoctor(ctx context.Context, req *dto.CreateDoctorRequest) error {
	ve := fielderr.New()
	if _, _, err := u.createChecks(u.db.WithContext(ctx), req, ve); err != nil {
		return err
	}
	return ve.Err()
}

func (u *doctorUsecase) CheckUpdateDoctor(ctx context.Context, personID uuid.UUID, req *dto.UpdateDoctorRequest) error {
	db := u.db.WithContext(ctx)
	doctor, err := u.doctorRepo.FindByPersonID(db, personID)
	if err != nil {
		u.log.Warnf("Failed to find doctor: %+v", err)
		return err
	}
	if doctor == nil {
		return ErrDoctorNotFound
	}

	ve := fielderr.New()
	if _, _, err := u.updateChecks(db, doctor, req, ve); err != nil {
		return err
	}
	return ve.Err()
}
