package usecase

import (
	"fmt"
	"io"
	"testing"

	"clinic-backend/internal/delivery/dto"
	"clinic-backend/internal/domain/entity"
	"clinic-backend/pkg/fielderr"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type fakeDoctorRepo struct {
	doctors      map[uuid.UUID]*entity.Doctor
	cmps         map[string]uuid.UUID
	rnes         map[string]uuid.UUID
	created      int
	replacements [][]entity.Specialty
}

func newFakeDoctorRepo() *fakeDoctorRepo {
	return &fakeDoctorRepo{
		doctors: make(map[uuid.UUID]*entity.Doctor),
		cmps:    make(map[string]uuid.UUID),
		rnes:    make(map[string]uuid.UUID),
	}
}

func (f *fakeDoctorRepo) Create(db *gorm.DB, doctor *entity.Doctor) error {
	f.created++
	f.doctors[doctor.PersonID] = doctor
	return nil
}

func (f *fakeDoctorRepo) Update(db *gorm.DB, doctor *entity.Doctor) error {
	f.doctors[doctor.PersonID] = doctor
	return nil
}

func (f *fakeDoctorRepo) FindByPersonID(db *gorm.DB, personID uuid.UUID) (*entity.Doctor, error) {
	doctor, ok := f.doctors[personID]
	if !ok {
		return nil, nil
	}
	return doctor, nil
}

func (f *fakeDoctorRepo) FindAllActive(db *gorm.DB) ([]entity.Doctor, error) {
	var doctors []entity.Doctor
	for _, d := range f.doctors {
		if d.Person.User != nil && d.Person.User.Active() {
			doctors = append(doctors, *d)
		}
	}
	return doctors, nil
}

func (f *fakeDoctorRepo) ReplaceSpecialties(db *gorm.DB, doctor *entity.Doctor, specialties []entity.Specialty) error {
	f.replacements = append(f.replacements, specialties)
	doctor.Specialties = specialties
	return nil
}

func (f *fakeDoctorRepo) ExistsByCMP(db *gorm.DB, cmp string, exclude *uuid.UUID) (bool, error) {
	owner, ok := f.cmps[cmp]
	if !ok {
		return false, nil
	}
	if exclude != nil && owner == *exclude {
		return false, nil
	}
	return true, nil
}

func (f *fakeDoctorRepo) ExistsByRNE(db *gorm.DB, rne string, exclude *uuid.UUID) (bool, error) {
	owner, ok := f.rnes[rne]
	if !ok {
		return false, nil
	}
	if exclude != nil && owner == *exclude {
		return false, nil
	}
	return true, nil
}

type fakeSpecialtyRepo struct {
	specialties map[int]entity.Specialty
}

func newFakeSpecialtyRepo(activeIDs ...int) *fakeSpecialtyRepo {
	f := &fakeSpecialtyRepo{specialties: make(map[int]entity.Specialty)}
	active := true
	for _, id := range activeIDs {
		f.specialties[id] = entity.Specialty{
			ID:          id,
			Description: fmt.Sprintf("specialty %d", id),
			IsActive:    &active,
		}
	}
	return f
}

func (f *fakeSpecialtyRepo) Create(db *gorm.DB, specialty *entity.Specialty) error { return nil }
func (f *fakeSpecialtyRepo) Update(db *gorm.DB, specialty *entity.Specialty) error { return nil }

func (f *fakeSpecialtyRepo) FindByID(db *gorm.DB, id int) (*entity.Specialty, error) {
	if s, ok := f.specialties[id]; ok {
		return &s, nil
	}
	return nil, nil
}

func (f *fakeSpecialtyRepo) FindAllActive(db *gorm.DB) ([]entity.Specialty, error) {
	var out []entity.Specialty
	for _, s := range f.specialties {
		if s.Active() {
			out = append(out, s)
		}
	}
	return out, nil
}

func (f *fakeSpecialtyRepo) FindActiveByIDs(db *gorm.DB, ids []int) ([]entity.Specialty, error) {
	var out []entity.Specialty
	for _, id := range ids {
		if s, ok := f.specialties[id]; ok && s.Active() {
			out = append(out, s)
		}
	}
	return out, nil
}

func (f *fakeSpecialtyRepo) ExistsByDescription(db *gorm.DB, description string, excludeID int) (bool, error) {
	return false, nil
}

type doctorFixture struct {
	usecase       *doctorUsecase
	userRepo      *fakeUserRepo
	personRepo    *fakePersonRepo
	doctorRepo    *fakeDoctorRepo
	specialtyRepo *fakeSpecialtyRepo
}

func newDoctorFixture(activeSpecialtyIDs ...int) *doctorFixture {
	f := &doctorFixture{
		userRepo:      newFakeUserRepo(),
		personRepo:    newFakePersonRepo(),
		doctorRepo:    newFakeDoctorRepo(),
		specialtyRepo: newFakeSpecialtyRepo(activeSpecialtyIDs...),
	}
	log := logrus.New()
	log.SetOutput(io.Discard)
	f.usecase = &doctorUsecase{
		log:           log,
		userRepo:      f.userRepo,
		personRepo:    f.personRepo,
		doctorRepo:    f.doctorRepo,
		specialtyRepo: f.specialtyRepo,
	}
	return f
}

// seedDoctor stores a doctor with an active identity directly in the fake.
func (f *doctorFixture) seedDoctor(specialties ...entity.Specialty) *entity.Doctor {
	active := true
	user := &entity.User{ID: uuid.New(), IsActive: &active}
	personID := uuid.New()
	doctor := &entity.Doctor{
		PersonID: personID,
		Person: entity.Person{
			ID:     personID,
			UserID: &user.ID,
			User:   user,
		},
		Specialties: specialties,
	}
	f.doctorRepo.doctors[personID] = doctor
	return doctor
}

func TestCreateDoctor_AssignsSpecialties(t *testing.T) {
	f := newDoctorFixture(1, 2)

	doctor, err := f.usecase.createDoctor(nil, &dto.CreateDoctorRequest{
		Person:      dto.PersonPayload{FirstName: "Ana", DNI: "12345678"},
		CMP:         "CMP001",
		Specialties: []int{1, 2},
	})

	require.NoError(t, err)
	require.NotNil(t, doctor)
	require.NotNil(t, doctor.CMP)
	assert.Equal(t, "CMP001", *doctor.CMP)
	assert.Len(t, doctor.Specialties, 2)

	require.Len(t, f.doctorRepo.replacements, 1)
	assert.Len(t, f.doctorRepo.replacements[0], 2)

	// No credentials in the payload, so a placeholder identity is linked.
	require.NotNil(t, doctor.Person.User)
	assert.NotEmpty(t, doctor.Person.User.Username)
}

func TestCreateDoctor_UnknownSpecialtyFails(t *testing.T) {
	f := newDoctorFixture(1)

	doctor, err := f.usecase.createDoctor(nil, &dto.CreateDoctorRequest{
		Person:      dto.PersonPayload{FirstName: "Ana"},
		Specialties: []int{1, 99},
	})

	assert.Nil(t, doctor)
	fe, ok := fielderr.AsErrors(err)
	require.True(t, ok)
	assert.True(t, fe.Has("specialties"))
	assert.Zero(t, f.doctorRepo.created)
}

func TestUpdateDoctor_NilSpecialtiesLeavesAssociations(t *testing.T) {
	f := newDoctorFixture(1, 2)
	active := true
	seeded := f.seedDoctor(entity.Specialty{ID: 1, Description: "specialty 1", IsActive: &active})

	doctor, err := f.usecase.updateDoctor(nil, seeded.PersonID, &dto.UpdateDoctorRequest{})

	require.NoError(t, err)
	assert.Empty(t, f.doctorRepo.replacements)
	require.Len(t, doctor.Specialties, 1)
	assert.Equal(t, 1, doctor.Specialties[0].ID)
}

func TestUpdateDoctor_EmptySpecialtiesClears(t *testing.T) {
	f := newDoctorFixture(1, 2)
	active := true
	seeded := f.seedDoctor(entity.Specialty{ID: 1, Description: "specialty 1", IsActive: &active})

	doctor, err := f.usecase.updateDoctor(nil, seeded.PersonID, &dto.UpdateDoctorRequest{
		Specialties: &[]int{},
	})

	require.NoError(t, err)
	require.Len(t, f.doctorRepo.replacements, 1)
	assert.Empty(t, f.doctorRepo.replacements[0])
	assert.Empty(t, doctor.Specialties)
}

func TestUpdateDoctor_ReplacesSpecialties(t *testing.T) {
	f := newDoctorFixture(1, 2)
	active := true
	seeded := f.seedDoctor(entity.Specialty{ID: 1, Description: "specialty 1", IsActive: &active})

	doctor, err := f.usecase.updateDoctor(nil, seeded.PersonID, &dto.UpdateDoctorRequest{
		Specialties: &[]int{2},
	})

	require.NoError(t, err)
	require.Len(t, doctor.Specialties, 1)
	assert.Equal(t, 2, doctor.Specialties[0].ID)
}

func TestUpdateDoctor_LicenseCodeConflicts(t *testing.T) {
	f := newDoctorFixture()
	seeded := f.seedDoctor()
	cmp := "CMP001"
	seeded.CMP = &cmp
	f.doctorRepo.cmps["CMP001"] = seeded.PersonID
	f.doctorRepo.cmps["CMP999"] = uuid.New()

	// Resubmitting the doctor's own code is not a conflict.
	doctor, err := f.usecase.updateDoctor(nil, seeded.PersonID, &dto.UpdateDoctorRequest{CMP: "CMP001"})
	require.NoError(t, err)
	require.NotNil(t, doctor.CMP)
	assert.Equal(t, "CMP001", *doctor.CMP)

	// Another doctor's code is.
	_, err = f.usecase.updateDoctor(nil, seeded.PersonID, &dto.UpdateDoctorRequest{CMP: "CMP999"})
	fe, ok := fielderr.AsErrors(err)
	require.True(t, ok)
	assert.True(t, fe.Has("cmp"))
}

func TestUpdateDoctor_NotFound(t *testing.T) {
	f := newDoctorFixture()

	_, err := f.usecase.updateDoctor(nil, uuid.New(), &dto.UpdateDoctorRequest{})
	assert.Equal(t, ErrDoctorNotFound, err)
}

func TestListDoctors_ExcludesDeactivated(t *testing.T) {
	f := newDoctorFixture()
	remaining := f.seedDoctor()
	deactivated := f.seedDoctor()

	doctor, err := f.usecase.deactivateDoctor(nil, deactivated.PersonID)
	require.NoError(t, err)
	assert.False(t, doctor.Person.User.Active())

	list, err := f.usecase.listDoctors(nil)
	require.NoError(t, err)
	require.Equal(t, 1, list.Total)
	assert.Equal(t, remaining.PersonID, list.Doctors[0].Person.ID)
}

func TestDeactivateDoctor_TwiceConflicts(t *testing.T) {
	f := newDoctorFixture()
	seeded := f.seedDoctor()

	_, err := f.usecase.deactivateDoctor(nil, seeded.PersonID)
	require.NoError(t, err)

	_, err = f.usecase.deactivateDoctor(nil, seeded.PersonID)
	assert.Equal(t, ErrDoctorInactive, err)
}
