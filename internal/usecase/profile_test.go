package usecase

import (
	"strings"
	"testing"
	"time"

	"clinic-backend/internal/delivery/dto"
	"clinic-backend/internal/domain/entity"
	"clinic-backend/pkg/fielderr"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// fakeUserRepo answers uniqueness checks from in-memory sets and ignores the
// db handle entirely.
type fakeUserRepo struct {
	emails    map[string]uuid.UUID
	usernames map[string]uuid.UUID
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{
		emails:    make(map[string]uuid.UUID),
		usernames: make(map[string]uuid.UUID),
	}
}

func (f *fakeUserRepo) Create(db *gorm.DB, user *entity.User) error {
	user.ID = uuid.New()
	return nil
}
func (f *fakeUserRepo) Update(db *gorm.DB, user *entity.User) error { return nil }
func (f *fakeUserRepo) FindByID(db *gorm.DB, id uuid.UUID) (*entity.User, error) {
	return nil, nil
}
func (f *fakeUserRepo) FindByEmail(db *gorm.DB, email string) (*entity.User, error) {
	return nil, nil
}
func (f *fakeUserRepo) FindAllActive(db *gorm.DB) ([]entity.User, error) { return nil, nil }

func (f *fakeUserRepo) ExistsByEmail(db *gorm.DB, email string, exclude *uuid.UUID) (bool, error) {
	owner, ok := f.emails[email]
	if !ok {
		return false, nil
	}
	if exclude != nil && owner == *exclude {
		return false, nil
	}
	return true, nil
}

func (f *fakeUserRepo) ExistsByUsername(db *gorm.DB, username string, exclude *uuid.UUID) (bool, error) {
	owner, ok := f.usernames[username]
	if !ok {
		return false, nil
	}
	if exclude != nil && owner == *exclude {
		return false, nil
	}
	return true, nil
}

type fakePersonRepo struct {
	dnis map[string]uuid.UUID
}

func newFakePersonRepo() *fakePersonRepo {
	return &fakePersonRepo{dnis: make(map[string]uuid.UUID)}
}

func (f *fakePersonRepo) Create(db *gorm.DB, person *entity.Person) error {
	person.ID = uuid.New()
	return nil
}
func (f *fakePersonRepo) Update(db *gorm.DB, person *entity.Person) error { return nil }
func (f *fakePersonRepo) FindByID(db *gorm.DB, id uuid.UUID) (*entity.Person, error) {
	return nil, nil
}
func (f *fakePersonRepo) FindByUserID(db *gorm.DB, userID uuid.UUID) (*entity.Person, error) {
	return nil, nil
}

func (f *fakePersonRepo) ExistsByDNI(db *gorm.DB, dni string, exclude *uuid.UUID) (bool, error) {
	owner, ok := f.dnis[dni]
	if !ok {
		return false, nil
	}
	if exclude != nil && owner == *exclude {
		return false, nil
	}
	return true, nil
}

func TestValidatePersonFields_ParsesBirthDate(t *testing.T) {
	ve := fielderr.New()
	birthDate := validatePersonFields(ve, &dto.PersonPayload{BirthDate: "1990-06-15"})

	require.NoError(t, ve.Err())
	require.NotNil(t, birthDate)
	assert.Equal(t, 1990, birthDate.Year())
	assert.Equal(t, time.June, birthDate.Month())
	assert.Equal(t, 15, birthDate.Day())
}

func TestValidatePersonFields_RejectsBadFormat(t *testing.T) {
	ve := fielderr.New()
	birthDate := validatePersonFields(ve, &dto.PersonPayload{BirthDate: "15/06/1990"})

	assert.Nil(t, birthDate)
	assert.True(t, ve.Has("birth_date"))
}

func TestValidatePersonFields_RejectsYearOutOfRange(t *testing.T) {
	for _, year := range []string{"1939-12-31", "2099-01-01"} {
		ve := fielderr.New()
		birthDate := validatePersonFields(ve, &dto.PersonPayload{BirthDate: year})

		assert.Nil(t, birthDate, year)
		assert.True(t, ve.Has("birth_date"), year)
	}
}

func TestValidatePersonFields_EmptyIsFine(t *testing.T) {
	ve := fielderr.New()
	birthDate := validatePersonFields(ve, &dto.PersonPayload{})

	assert.Nil(t, birthDate)
	assert.NoError(t, ve.Err())
}

func TestCheckIdentityPayload_CollectsEveryFailure(t *testing.T) {
	repo := newFakeUserRepo()

	ve := fielderr.New()
	err := checkIdentityPayload(nil, repo, &dto.UserPayload{}, nil, ve)

	require.NoError(t, err)
	assert.True(t, ve.Has("username"))
	assert.True(t, ve.Has("email"))
	assert.True(t, ve.Has("password"))
}

func TestCheckIdentityPayload_UniquenessConflicts(t *testing.T) {
	repo := newFakeUserRepo()
	repo.emails["taken@test.com"] = uuid.New()
	repo.usernames["taken"] = uuid.New()

	ve := fielderr.New()
	err := checkIdentityPayload(nil, repo, &dto.UserPayload{
		Username: "taken",
		Email:    "taken@test.com",
		Password: "secret",
	}, nil, ve)

	require.NoError(t, err)
	assert.True(t, ve.Has("email"))
	assert.True(t, ve.Has("username"))
	assert.False(t, ve.Has("password"))
}

func TestCheckIdentityPayload_ExcludeSkipsOwner(t *testing.T) {
	repo := newFakeUserRepo()
	ownerID := uuid.New()
	repo.emails["mine@test.com"] = ownerID

	ve := fielderr.New()
	err := checkIdentityPayload(nil, repo, &dto.UserPayload{Email: "mine@test.com"}, &ownerID, ve)

	require.NoError(t, err)
	assert.NoError(t, ve.Err())
}

func TestBuildIdentity_SynthesizesPlaceholder(t *testing.T) {
	user, err := buildIdentity(nil)
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(user.Username, "user_"))
	assert.Len(t, user.Username, len("user_")+16)
	assert.True(t, strings.HasPrefix(user.Email, "test_"))
	assert.True(t, strings.HasSuffix(user.Email, "@test.com"))

	// The placeholder credentials use the known throwaway password.
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(placeholderPassword)))
}

func TestBuildIdentity_PlaceholdersAreDistinct(t *testing.T) {
	a, err := buildIdentity(nil)
	require.NoError(t, err)
	b, err := buildIdentity(nil)
	require.NoError(t, err)

	assert.NotEqual(t, a.Username, b.Username)
	assert.NotEqual(t, a.Email, b.Email)
}

func TestBuildIdentity_UsesPayload(t *testing.T) {
	user, err := buildIdentity(&dto.UserPayload{
		Username: "jdoe",
		Email:    "jdoe@test.com",
		Password: "hunter22",
	})
	require.NoError(t, err)

	assert.Equal(t, "jdoe", user.Username)
	assert.Equal(t, "jdoe@test.com", user.Email)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.Password), []byte("hunter22")))
}

func TestApplyIdentityUpdate_OnlyPresentFields(t *testing.T) {
	original, err := bcrypt.GenerateFromPassword([]byte("old"), bcrypt.DefaultCost)
	require.NoError(t, err)
	user := &entity.User{Username: "jdoe", Email: "jdoe@test.com", Password: string(original)}

	require.NoError(t, applyIdentityUpdate(user, &dto.UserPayload{Email: "new@test.com"}))

	assert.Equal(t, "jdoe", user.Username)
	assert.Equal(t, "new@test.com", user.Email)
	assert.Equal(t, string(original), user.Password)
}

func TestApplyIdentityUpdate_RehashesPassword(t *testing.T) {
	user := &entity.User{Password: "irrelevant"}

	require.NoError(t, applyIdentityUpdate(user, &dto.UserPayload{Password: "new-secret"}))
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.Password), []byte("new-secret")))
}

func TestApplyPersonUpdate_StaticFieldList(t *testing.T) {
	existingDNI := "11111111"
	birthDate := time.Date(1985, time.March, 2, 0, 0, 0, 0, time.UTC)
	person := &entity.Person{
		DNI:       &existingDNI,
		FirstName: "Ana",
		LastName:  "Lopez",
		Gender:    entity.GenderFemale,
	}

	applyPersonUpdate(person, &dto.PersonPayload{
		FirstName: "Maria",
		Phone:     "987654321",
		Direction: "Av. Principal 123",
	}, &birthDate)

	// Presented fields are copied, the rest untouched.
	assert.Equal(t, "Maria", person.FirstName)
	assert.Equal(t, "Lopez", person.LastName)
	assert.Equal(t, "987654321", person.Phone)
	assert.Equal(t, "Av. Principal 123", person.Direction)
	assert.Equal(t, entity.GenderFemale, person.Gender)
	require.NotNil(t, person.DNI)
	assert.Equal(t, existingDNI, *person.DNI)
	require.NotNil(t, person.BirthDate)
	assert.Equal(t, 1985, person.BirthDate.Year())
}

func TestValidateUpdatePerson_SkipsUnchangedDNI(t *testing.T) {
	personRepo := newFakePersonRepo()
	userRepo := newFakeUserRepo()

	currentDNI := "12345678"
	current := &entity.Person{ID: uuid.New(), DNI: &currentDNI}
	personRepo.dnis[currentDNI] = current.ID

	ve := fielderr.New()
	out := validateUpdatePerson(nil, userRepo, personRepo, current, &dto.PersonPayload{DNI: currentDNI}, ve)

	require.NoError(t, out.err)
	assert.NoError(t, ve.Err())
}

func TestValidateUpdatePerson_ConflictingDNI(t *testing.T) {
	personRepo := newFakePersonRepo()
	userRepo := newFakeUserRepo()

	current := &entity.Person{ID: uuid.New()}
	personRepo.dnis["87654321"] = uuid.New()

	ve := fielderr.New()
	out := validateUpdatePerson(nil, userRepo, personRepo, current, &dto.PersonPayload{DNI: "87654321"}, ve)

	require.NoError(t, out.err)
	assert.True(t, ve.Has("dni"))
}

func TestValidateUpdatePerson_NilPayload(t *testing.T) {
	ve := fielderr.New()
	out := validateUpdatePerson(nil, newFakeUserRepo(), newFakePersonRepo(), &entity.Person{}, nil, ve)

	assert.NoError(t, out.err)
	assert.Nil(t, out.birthDate)
	assert.NoError(t, ve.Err())
}

func TestMapProfileWriteError_UniqueViolations(t *testing.T) {
	cases := []struct {
		constraint string
		field      string
	}{
		{"uni_users_email", "email"},
		{"uni_users_username", "username"},
		{"uni_people_dni", "dni"},
		{"uni_doctors_cmp", "cmp"},
		{"uni_doctors_rne", "rne"},
	}

	for _, tc := range cases {
		err := mapProfileWriteError(&pgconn.PgError{Code: "23505", ConstraintName: tc.constraint})

		fe, ok := fielderr.AsErrors(err)
		require.True(t, ok, tc.constraint)
		assert.True(t, fe.Has(tc.field), tc.constraint)
	}
}

func TestMapProfileWriteError_PassesThroughOtherErrors(t *testing.T) {
	err := mapProfileWriteError(gorm.ErrInvalidTransaction)
	assert.Equal(t, gorm.ErrInvalidTransaction, err)
}
