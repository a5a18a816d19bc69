package usecase

import (
	"context"
	"errors"
	"fmt"

	"clinic-backend/internal/converter"
	"clinic-backend/internal/delivery/dto"
	"clinic-backend/internal/domain/entity"
	"clinic-backend/internal/domain/repository"
	"clinic-backend/internal/infrastructure/email"
	"clinic-backend/internal/service"
	"clinic-backend/pkg/fielderr"
	"clinic-backend/pkg/resettoken"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidResetLink   = errors.New("invalid or expired reset link")
)

type AuthUsecase interface {
	Register(ctx context.Context, req *dto.RegisterRequest) (*dto.TokenResponse, error)
	Login(ctx context.Context, req *dto.LoginRequest) (*dto.TokenResponse, error)
	Logout(ctx context.Context, userID uuid.UUID) error
	GetProfile(ctx context.Context, userID uuid.UUID) (*dto.PersonResponse, error)
	UpdateProfile(ctx context.Context, userID uuid.UUID, req *dto.PersonPayload) (*dto.PersonResponse, error)
	ChangePassword(ctx context.Context, userID uuid.UUID, req *dto.ChangePasswordRequest) error
	RequestPasswordReset(ctx context.Context, req *dto.ResetPasswordRequest) error
	ConfirmPasswordReset(ctx context.Context, uid, token string, req *dto.ResetPasswordConfirmRequest) error
}

type authUsecase struct {
	db          *gorm.DB
	log         *logrus.Logger
	userRepo    repository.UserRepository
	personRepo  repository.PersonRepository
	patientRepo repository.PatientRepository
	tokenStore  service.TokenStore
	resetTokens *resettoken.Service
	mailer      email.Mailer
	resetBase   string
}

func NewAuthUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	userRepo repository.UserRepository,
	personRepo repository.PersonRepository,
	patientRepo repository.PatientRepository,
	tokenStore service.TokenStore,
	resetTokens *resettoken.Service,
	mailer email.Mailer,
	resetBase string,
) AuthUsecase {
	return &authUsecase{
		db:          db,
		log:         log,
		userRepo:    userRepo,
		personRepo:  personRepo,
		patientRepo: patientRepo,
		tokenStore:  tokenStore,
		resetTokens: resetTokens,
		mailer:      mailer,
		resetBase:   resetBase,
	}
}

// Register creates an account with its person and patient records, then
// issues a login token for it right away.
func (u *authUsecase) Register(ctx context.Context, req *dto.RegisterRequest) (*dto.TokenResponse, error) {
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

	token, err := u.tokenStore.GetOrCreate(ctx, user.ID)
	if err != nil {
		u.log.Warnf("Failed to issue token: %+v", err)
		return nil, err
	}

	return &dto.TokenResponse{Token: token, User: converter.UserToResponse(user)}, nil
}

func (u *authUsecase) Login(ctx context.Context, req *dto.LoginRequest) (*dto.TokenResponse, error) {
	user, err := u.userRepo.FindByEmail(u.db.WithContext(ctx), req.Email)
	if err != nil {
		u.log.Warnf("Failed to find user: %+v", err)
		return nil, err
	}
	// A missing account and a wrong password are reported differently; the
	// account lookup happens by email before any password check.
	if user == nil {
		return nil, ErrUserNotFound
	}
	if !user.Active() {
		return nil, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	token, err := u.tokenStore.GetOrCreate(ctx, user.ID)
	if err != nil {
		u.log.Warnf("Failed to issue token: %+v", err)
		return nil, err
	}

	return &dto.TokenResponse{Token: token, User: converter.UserToResponse(user)}, nil
}

func (u *authUsecase) Logout(ctx context.Context, userID uuid.UUID) error {
	if err := u.tokenStore.Delete(ctx, userID); err != nil {
		u.log.Warnf("Failed to delete token: %+v", err)
		return err
	}
	return nil
}

func (u *authUsecase) GetProfile(ctx context.Context, userID uuid.UUID) (*dto.PersonResponse, error) {
	person, err := u.personRepo.FindByUserID(u.db.WithContext(ctx), userID)
	if err != nil {
		u.log.Warnf("Failed to find person: %+v", err)
		return nil, err
	}
	if person == nil {
		return nil, ErrUserNotFound
	}

	resp := converter.PersonToResponse(person)
	return &resp, nil
}

func (u *authUsecase) UpdateProfile(ctx context.Context, userID uuid.UUID, req *dto.PersonPayload) (*dto.PersonResponse, error) {
	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	person, err := u.personRepo.FindByUserID(tx, userID)
	if err != nil {
		u.log.Warnf("Failed to find person: %+v", err)
		return nil, err
	}
	if person == nil {
		return nil, ErrUserNotFound
	}

	ve := fielderr.New()
	pv := validateUpdatePerson(tx, u.userRepo, u.personRepo, person, req, ve)
	if pv.err != nil {
		u.log.Warnf("Failed to check uniqueness: %+v", pv.err)
		return nil, pv.err
	}
	if err := ve.Err(); err != nil {
		return nil, err
	}

	if req.User != nil {
		if person.User == nil {
			return nil, ErrIdentityMissing
		}
		if err := applyIdentityUpdate(person.User, req.User); err != nil {
			u.log.Warnf("Failed to hash password: %+v", err)
			return nil, err
		}
		if err := u.userRepo.Update(tx, person.User); err != nil {
			u.log.Warnf("Failed to update user: %+v", err)
			return nil, mapProfileWriteError(err)
		}
	}

	applyPersonUpdate(person, req, pv.birthDate)
	if err := u.personRepo.Update(tx, person); err != nil {
		u.log.Warnf("Failed to update person: %+v", err)
		return nil, mapProfileWriteError(err)
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	resp := converter.PersonToResponse(person)
	return &resp, nil
}

func (u *authUsecase) ChangePassword(ctx context.Context, userID uuid.UUID, req *dto.ChangePasswordRequest) error {
	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	user, err := u.userRepo.FindByID(tx, userID)
	if err != nil {
		u.log.Warnf("Failed to find user: %+v", err)
		return err
	}
	if user == nil {
		return ErrUserNotFound
	}

	ve := fielderr.New()
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.CurrentPassword)); err != nil {
		ve.Add("current_password", "current password is incorrect")
	}
	if req.NewPassword != req.NewPasswordConfirm {
		ve.Add("new_password_confirm", "passwords do not match")
	}
	if err := ve.Err(); err != nil {
		return err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		u.log.Warnf("Failed to hash password: %+v", err)
		return err
	}
	user.Password = string(hashed)
	if err := u.userRepo.Update(tx, user); err != nil {
		u.log.Warnf("Failed to update user: %+v", err)
		return err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return err
	}

	return nil
}

// RequestPasswordReset emails a reset link when the account exists. The caller
// always gets a success so the endpoint cannot be used to probe for accounts.
func (u *authUsecase) RequestPasswordReset(ctx context.Context, req *dto.ResetPasswordRequest) error {
	user, err := u.userRepo.FindByEmail(u.db.WithContext(ctx), req.Email)
	if err != nil {
		u.log.Warnf("Failed to find user: %+v", err)
		return err
	}
	if user == nil || !user.Active() {
		return nil
	}

	token, err := u.resetTokens.Generate(user.ID)
	if err != nil {
		u.log.Warnf("Failed to generate reset token: %+v", err)
		return err
	}

	resetURL := fmt.Sprintf("%s/reset_password_confirm/%s/%s/", u.resetBase, resettoken.EncodeUID(user.ID), token)
	if err := u.mailer.SendPasswordReset(user.Email, resetURL); err != nil {
		u.log.Warnf("Failed to send reset email: %+v", err)
		return err
	}

	return nil
}

func (u *authUsecase) ConfirmPasswordReset(ctx context.Context, uid, token string, req *dto.ResetPasswordConfirmRequest) error {
	userID, err := resettoken.DecodeUID(uid)
	if err != nil {
		return ErrInvalidResetLink
	}
	tokenUserID, err := u.resetTokens.Validate(token)
	if err != nil || tokenUserID != userID {
		return ErrInvalidResetLink
	}

	ve := fielderr.New()
	if req.NewPassword != req.RepeatPassword {
		ve.Add("repeat_password", "passwords do not match")
	}
	if err := ve.Err(); err != nil {
		return err
	}

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	user, err := u.userRepo.FindByID(tx, userID)
	if err != nil {
		u.log.Warnf("Failed to find user: %+v", err)
		return err
	}
	if user == nil || !user.Active() {
		return ErrInvalidResetLink
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		u.log.Warnf("Failed to hash password: %+v", err)
		return err
	}
	user.Password = string(hashed)
	if err := u.userRepo.Update(tx, user); err != nil {
		u.log.Warnf("Failed to update user: %+v", err)
		return err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return err
	}

	// Old login tokens stop working once the password changes.
	if err := u.tokenStore.Delete(ctx, userID); err != nil {
		u.log.Warnf("Failed to revoke tokens: %+v", err)
	}

	return nil
}
