package converter

import (
	"testing"
	"time"

	"clinic-backend/internal/domain/entity"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDoctorToResponse(t *testing.T) {
	cmp := "CMP12345"
	dni := "12345678"
	birthDate := time.Date(1980, time.January, 20, 0, 0, 0, 0, time.UTC)
	active := true

	doctor := &entity.Doctor{
		PersonID: uuid.New(),
		CMP:      &cmp,
		Person: entity.Person{
			DNI:       &dni,
			FirstName: "Carlos",
			BirthDate: &birthDate,
			Gender:    entity.GenderMale,
		},
		Specialties: []entity.Specialty{
			{ID: 3, Description: "Cardiology", IsActive: &active},
			{ID: 7, Description: "Pediatrics", IsActive: &active},
		},
	}

	resp := DoctorToResponse(doctor)
	require.NotNil(t, resp)

	assert.Equal(t, "CMP12345", resp.CMP)
	assert.Empty(t, resp.RNE)
	assert.Equal(t, []int{3, 7}, resp.Specialties)
	require.Len(t, resp.SpecialtiesDetail, 2)
	assert.Equal(t, "Cardiology", resp.SpecialtiesDetail[0].Description)

	assert.Equal(t, "12345678", resp.Person.DNI)
	assert.Equal(t, "1980-01-20", resp.Person.BirthDate)
}

func TestDoctorToResponse_Nil(t *testing.T) {
	assert.Nil(t, DoctorToResponse(nil))
}

func TestDoctorsToResponses_Empty(t *testing.T) {
	assert.Empty(t, DoctorsToResponses(nil))
}
