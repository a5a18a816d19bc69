package usecase

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"clinic-backend/internal/delivery/dto"
	"clinic-backend/internal/domain/entity"
	"clinic-backend/internal/domain/repository"
	"clinic-backend/pkg/fielderr"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Shared pieces of the nested profile upsert: identity resolution, person
// field validation and the static field-list partial update. Patient and
// doctor usecases drive the same ordering: identity, person, role row,
// associations, all inside one transaction.

const (
	dateLayout = "2006-01-02"

	// Placeholder identity synthesized for profiles created without
	// credentials. The account exists only so the deactivation cascade has
	// something to flip; the password is a known throwaway.
	placeholderPassword = "1234"

	minBirthYear = 1940
)

// ErrIdentityMissing signals a profile row without a linked user, which the
// create paths never produce.
var ErrIdentityMissing = errors.New("profile has no linked identity")

// validatePersonFields checks the value-level rules the struct validator
// cannot express and returns the parsed birth date when one is present.
func validatePersonFields(ve fielderr.Errors, payload *dto.PersonPayload) *time.Time {
	if payload.BirthDate == "" {
		return nil
	}
	birthDate, err := time.Parse(dateLayout, payload.BirthDate)
	if err != nil {
		ve.Add("birth_date", "the date format is invalid, it must be YYYY-MM-DD")
		return nil
	}
	currentYear := time.Now().Year()
	if birthDate.Year() < minBirthYear || birthDate.Year() > currentYear {
		ve.Add("birth_date", fmt.Sprintf("the year must be between %d and %d", minBirthYear, currentYear))
		return nil
	}
	return &birthDate
}

// checkIdentityPayload validates a nested identity block before any write:
// required fields when the block is present, and uniqueness against existing
// users. exclude removes the current owner from the conflict check.
func checkIdentityPayload(tx *gorm.DB, userRepo repository.UserRepository, payload *dto.UserPayload, exclude *uuid.UUID, ve fielderr.Errors) error {
	if payload == nil {
		return nil
	}

	if exclude == nil {
		if payload.Username == "" {
			ve.Add("username", "username is required")
		}
		if payload.Email == "" {
			ve.Add("email", "email is required")
		}
		if payload.Password == "" {
			ve.Add("password", "password is required")
		}
	}

	if payload.Email != "" && !ve.Has("email") {
		exists, err := userRepo.ExistsByEmail(tx, payload.Email, exclude)
		if err != nil {
			return err
		}
		if exists {
			ve.Add("email", "the email is already registered by another user")
		}
	}
	if payload.Username != "" && !ve.Has("username") {
		exists, err := userRepo.ExistsByUsername(tx, payload.Username, exclude)
		if err != nil {
			return err
		}
		if exists {
			ve.Add("username", "the username is already taken")
		}
	}

	return nil
}

// checkDNI verifies DNI uniqueness before any write. Format is validated by
// the struct validator first, so a malformed DNI never reaches this check.
func checkDNI(tx *gorm.DB, personRepo repository.PersonRepository, dni string, exclude *uuid.UUID, ve fielderr.Errors) error {
	if dni == "" || ve.Has("dni") {
		return nil
	}
	exists, err := personRepo.ExistsByDNI(tx, dni, exclude)
	if err != nil {
		return err
	}
	if exists {
		ve.Add("dni", "the DNI is already registered")
	}
	return nil
}

// buildIdentity turns a validated identity payload into a user row, or
// synthesizes a placeholder one when no payload was given.
func buildIdentity(payload *dto.UserPayload) (*entity.User, error) {
	user := &entity.User{}
	password := placeholderPassword

	if payload == nil {
		suffix := strings.ReplaceAll(uuid.New().String(), "-", "")[:16]
		user.Username = "user_" + suffix
		user.Email = fmt.Sprintf("test_%s@test.com", suffix)
	} else {
		user.Username = payload.Username
		user.Email = payload.Email
		password = payload.Password
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	user.Password = string(hashed)

	return user, nil
}

// applyIdentityUpdate copies present identity fields onto an existing user.
// Uniqueness was already checked with the owner excluded.
func applyIdentityUpdate(user *entity.User, payload *dto.UserPayload) error {
	if payload.Username != "" {
		user.Username = payload.Username
	}
	if payload.Email != "" {
		user.Email = payload.Email
	}
	if payload.Password != "" {
		hashed, err := bcrypt.GenerateFromPassword([]byte(payload.Password), bcrypt.DefaultCost)
		if err != nil {
			return err
		}
		user.Password = string(hashed)
	}
	return nil
}

// applyPersonUpdate copies present payload fields onto the person. The
// updatable fields are enumerated here explicitly; nothing walks the struct
// dynamically.
func applyPersonUpdate(person *entity.Person, payload *dto.PersonPayload, birthDate *time.Time) {
	if payload.DNI != "" {
		dni := payload.DNI
		person.DNI = &dni
	}
	if payload.FirstName != "" {
		person.FirstName = payload.FirstName
	}
	if payload.LastName != "" {
		person.LastName = payload.LastName
	}
	if payload.Phone != "" {
		person.Phone = payload.Phone
	}
	if payload.Gender != "" {
		person.Gender = payload.Gender
	}
	if payload.Direction != "" {
		person.Direction = payload.Direction
	}
	if birthDate != nil {
		person.BirthDate = birthDate
	}
}

// updateValidation carries the results of the pre-write checks of a partial
// update: the parsed birth date and any storage error hit while checking.
type updateValidation struct {
	birthDate *time.Time
	err       error
}

// validateUpdatePerson runs every pre-write check of a partial person update,
// excluding the current owner from the uniqueness conflicts.
func validateUpdatePerson(tx *gorm.DB, userRepo repository.UserRepository, personRepo repository.PersonRepository, current *entity.Person, payload *dto.PersonPayload, ve fielderr.Errors) updateValidation {
	var out updateValidation
	if payload == nil {
		return out
	}

	out.birthDate = validatePersonFields(ve, payload)

	if payload.DNI != "" && (current.DNI == nil || *current.DNI != payload.DNI) {
		if err := checkDNI(tx, personRepo, payload.DNI, &current.ID, ve); err != nil {
			out.err = err
			return out
		}
	}
	if payload.User != nil && current.User != nil {
		exclude := current.User.ID
		if err := checkIdentityPayload(tx, userRepo, payload.User, &exclude, ve); err != nil {
			out.err = err
		}
	}
	return out
}

// mapProfileWriteError converts a lost uniqueness race during the ordered
// writes into the same field error the pre-check would have produced.
func mapProfileWriteError(err error) error {
	for _, c := range []struct{ constraint, field, message string }{
		{"email", "email", "the email is already registered by another user"},
		{"username", "username", "the username is already taken"},
		{"dni", "dni", "the DNI is already registered"},
		{"cmp", "cmp", "the CMP is already registered"},
		{"rne", "rne", "the RNE is already registered"},
	} {
		if isDuplicateKeyError(err, c.constraint) {
			ve := fielderr.New()
			ve.Add(c.field, c.message)
			return ve
		}
	}
	return err
}
