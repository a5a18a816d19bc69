package usecase

import (
	"context"
	"errors"

	"clinic-backend/internal/converter"
	"clinic-backend/internal/delivery/dto"
	"clinic-backend/internal/domain/entity"
	"clinic-backend/internal/domain/repository"
	"clinic-backend/pkg/fielderr"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

var (
	ErrSpecialtyNotFound = errors.New("specialty not found")
	ErrSpecialtyInactive = errors.New("specialty is already inactive")
)

type SpecialtyUsecase interface {
	CreateSpecialty(ctx context.Context, req *dto.CreateSpecialtyRequest) (*dto.SpecialtyResponse, error)
	GetSpecialty(ctx context.Context, id int) (*dto.SpecialtyResponse, error)
	GetAllSpecialties(ctx context.Context) (*dto.SpecialtyListResponse, error)
	UpdateSpecialty(ctx context.Context, id int, req *dto.UpdateSpecialtyRequest) (*dto.SpecialtyResponse, error)
	DeactivateSpecialty(ctx context.Context, id int) (*dto.SpecialtyResponse, error)
}

type specialtyUsecase struct {
	db            *gorm.DB
	log           *logrus.Logger
	specialtyRepo repository.SpecialtyRepository
}

func NewSpecialtyUsecase(db *gorm.DB, log *logrus.Logger, specialtyRepo repository.SpecialtyRepository) SpecialtyUsecase {
	return &specialtyUsecase{
		db:            db,
		log:           log,
		specialtyRepo: specialtyRepo,
	}
}

func (u *specialtyUsecase) CreateSpecialty(ctx context.Context, req *dto.CreateSpecialtyRequest) (*dto.SpecialtyResponse, error) {
	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	ve := fielderr.New()
	exists, err := u.specialtyRepo.ExistsByDescription(tx, req.Description, 0)
	if err != nil {
		u.log.Warnf("Failed to check specialty description: %+v", err)
		return nil, err
	}
	if exists {
		ve.Add("description", "a specialty with this description already exists")
	}
	if err := ve.Err(); err != nil {
		return nil, err
	}

	specialty := &entity.Specialty{Description: req.Description}
	if err := u.specialtyRepo.Create(tx, specialty); err != nil {
		u.log.Warnf("Failed to create specialty: %+v", err)
		if isDuplicateKeyError(err, "description") {
			ve.Add("description", "a specialty with this description already exists")
			return nil, ve
		}
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	return converter.SpecialtyToResponse(specialty), nil
}

func (u *specialtyUsecase) GetSpecialty(ctx context.Context, id int) (*dto.SpecialtyResponse, error) {
	specialty, err := u.specialtyRepo.FindByID(u.db.WithContext(ctx), id)
	if err != nil {
		u.log.Warnf("Failed to find specialty: %+v", err)
		return nil, err
	}
	// Deactivated specialties are invisible to reads.
	if specialty == nil || !specialty.Active() {
		return nil, ErrSpecialtyNotFound
	}

	return converter.SpecialtyToResponse(specialty), nil
}

func (u *specialtyUsecase) GetAllSpecialties(ctx context.Context) (*dto.SpecialtyListResponse, error) {
	specialties, err := u.specialtyRepo.FindAllActive(u.db.WithContext(ctx))
	if err != nil {
		u.log.Warnf("Failed to find specialties: %+v", err)
		return nil, err
	}

	responses := converter.SpecialtiesToResponses(specialties)
	return &dto.SpecialtyListResponse{
		Specialties: responses,
		Total:       len(responses),
	}, nil
}

func (u *specialtyUsecase) UpdateSpecialty(ctx context.Context, id int, req *dto.UpdateSpecialtyRequest) (*dto.SpecialtyResponse, error) {
	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	specialty, err := u.specialtyRepo.FindByID(tx, id)
	if err != nil {
		u.log.Warnf("Failed to find specialty: %+v", err)
		return nil, err
	}
	if specialty == nil || !specialty.Active() {
		return nil, ErrSpecialtyNotFound
	}

	if req.Description != "" && req.Description != specialty.Description {
		ve := fielderr.New()
		exists, err := u.specialtyRepo.ExistsByDescription(tx, req.Description, specialty.ID)
		if err != nil {
			u.log.Warnf("Failed to check specialty description: %+v", err)
			return nil, err
		}
		if exists {
			ve.Add("description", "a specialty with this description already exists")
			return nil, ve
		}
		specialty.Description = req.Description
	}

	if err := u.specialtyRepo.Update(tx, specialty); err != nil {
		u.log.Warnf("Failed to update specialty: %+v", err)
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	return converter.SpecialtyToResponse(specialty), nil
}

func (u *specialtyUsecase) DeactivateSpecialty(ctx context.Context, id int) (*dto.SpecialtyResponse, error) {
	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	specialty, err := u.specialtyRepo.FindByID(tx, id)
	if err != nil {
		u.log.Warnf("Failed to find specialty: %+v", err)
		return nil, err
	}
	if specialty == nil {
		return nil, ErrSpecialtyNotFound
	}
	// Unlike reads, a repeated deactivation is a state conflict rather than
	// a missing resource.
	if !specialty.Active() {
		return nil, ErrSpecialtyInactive
	}

	inactive := false
	specialty.IsActive = &inactive
	if err := u.specialtyRepo.Update(tx, specialty); err != nil {
		u.log.Warnf("Failed to deactivate specialty: %+v", err)
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	return converter.SpecialtyToResponse(specialty), nil
}
