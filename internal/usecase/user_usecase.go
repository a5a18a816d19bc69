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
	ErrUserNotFound      = errors.New("user not found")
	ErrUserInactive      = errors.New("user is already inactive")
	ErrSuperuserDeletion = errors.New("superusers cannot be deactivated")
)

type UserUsecase interface {
	CreateUser(ctx context.Context, req *dto.CreateUserRequest) (*dto.UserResponse, error)
	GetUser(ctx context.Context, id uuid.UUID) (*dto.UserResponse, error)
	GetAllUsers(ctx context.Context) (*dto.UserListResponse, error)
	UpdateUser(ctx context.Context, id uuid.UUID, req *dto.UpdateUserRequest) (*dto.UserResponse, error)
	DeactivateUser(ctx context.Context, id uuid.UUID) (*dto.UserResponse, error)
}

type userUsecase struct {
	db          *gorm.DB
	log         *logrus.Logger
	userRepo    repository.UserRepository
	personRepo  repository.PersonRepository
	patientRepo repository.PatientRepository
}

func NewUserUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	userRepo repository.UserRepository,
	personRepo repository.PersonRepository,
	patientRepo repository.PatientRepository,
) UserUsecase {
	return &userUsecase{
		db:          db,
		log:         log,
		userRepo:    userRepo,
		personRepo:  personRepo,
		patientRepo: patientRepo,
	}
}

// CreateUser registers an account directly. Every account owns a person and a
// patient record from day one, the same shape the profile endpoints produce.
func (u *userUsecase) CreateUser(ctx context.Context, req *dto.CreateUserRequest) (*dto.UserResponse, error) {
	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	payload := &dto.UserPayload{
		Username: req.Username,
		Email:    req.Email,
		Password: req.Password,
	}

	ve := fielderr.New()
	if err := checkIdentityPayload(tx, u.userRepo, payload, nil, ve); err != nil {
		u.log.Warnf("Failed to check identity uniqueness: %+v", err)
		return nil, err
	}
	if err := ve.Err(); err != nil {
		return nil, err
	}

	user, err := buildIdentity(payload)
	if err != nil {
		u.log.Warnf("Failed to hash password: %+v", err)
		return nil, err
	}
	if req.IsAdmin != nil {
		user.IsAdmin = *req.IsAdmin
	}
	if err := u.userRepo.Create(tx, user); err != nil {
		u.log.Warnf("Failed to create user: %+v", err)
		return nil, mapProfileWriteError(err)
	}

	person := &entity.Person{UserID: &user.ID, Gender: entity.GenderMale}
	if err := u.personRepo.Create(tx, person); err != nil {
		u.log.Warnf("Failed to create person: %+v", err)
		return nil, mapProfileWriteError(err)
	}

	patient := &entity.Patient{PersonID: person.ID, BloodGroup: entity.DefaultBloodGroup}
	if err := u.patientRepo.Create(tx, patient); err != nil {
		u.log.Warnf("Failed to create patient: %+v", err)
		return nil, mapProfileWriteError(err)
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	return converter.UserToResponse(user), nil
}

func (u *userUsecase) GetUser(ctx context.Context, id uuid.UUID) (*dto.UserResponse, error) {
	user, err := u.userRepo.FindByID(u.db.WithContext(ctx), id)
	if err != nil {
		u.log.Warnf("Failed to find user: %+v", err)
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}

	return converter.UserToResponse(user), nil
}

func (u *userUsecase) GetAllUsers(ctx context.Context) (*dto.UserListResponse, error) {
	users, err := u.userRepo.FindAllActive(u.db.WithContext(ctx))
	if err != nil {
		u.log.Warnf("Failed to find users: %+v", err)
		return nil, err
	}

	responses := converter.UsersToResponses(users)
	return &dto.UserListResponse{
		Users: responses,
		Total: len(responses),
	}, nil
}

func (u *userUsecase) UpdateUser(ctx context.Context, id uuid.UUID, req *dto.UpdateUserRequest) (*dto.UserResponse, error) {
	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	user, err := u.userRepo.FindByID(tx, id)
	if err != nil {
		u.log.Warnf("Failed to find user: %+v", err)
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}

	payload := &dto.UserPayload{Username: req.Username, Email: req.Email}
	ve := fielderr.New()
	if err := checkIdentityPayload(tx, u.userRepo, payload, &user.ID, ve); err != nil {
		u.log.Warnf("Failed to check identity uniqueness: %+v", err)
		return nil, err
	}
	if err := ve.Err(); err != nil {
		return nil, err
	}

	if err := applyIdentityUpdate(user, payload); err != nil {
		u.log.Warnf("Failed to apply identity update: %+v", err)
		return nil, err
	}
	if err := u.userRepo.Update(tx, user); err != nil {
		u.log.Warnf("Failed to update user: %+v", err)
		return nil, mapProfileWriteError(err)
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	return converter.UserToResponse(user), nil
}

func (u *userUsecase) DeactivateUser(ctx context.Context, id uuid.UUID) (*dto.UserResponse, error) {
	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	user, err := u.userRepo.FindByID(tx, id)
	if err != nil {
		u.log.Warnf("Failed to find user: %+v", err)
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	if !user.Active() {
		return nil, ErrUserInactive
	}
	if user.IsSuperuser {
		return nil, ErrSuperuserDeletion
	}

	inactive := false
	user.IsActive = &inactive
	if err := u.userRepo.Update(tx, user); err != nil {
		u.log.Warnf("Failed to deactivate user: %+v", err)
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	return converter.UserToResponse(user), nil
}
