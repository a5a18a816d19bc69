package converter

import (
	"clinic-backend/internal/delivery/dto"
	"clinic-backend/internal/domain/entity"
)

// DoctorToResponse assembles the composed read view: base profile fields,
// the specialty id list and the resolved specialty objects.
func DoctorToResponse(doctor *entity.Doctor) *dto.DoctorResponse {
	if doctor == nil {
		return nil
	}

	resp := &dto.DoctorResponse{
		Person:            PersonToResponse(&doctor.Person),
		Specialties:       make([]int, len(doctor.Specialties)),
		SpecialtiesDetail: SpecialtiesToResponses(doctor.Specialties),
	}
	if doctor.CMP != nil {
		resp.CMP = *doctor.CMP
	}
	if doctor.RNE != nil {
		resp.RNE = *doctor.RNE
	}
	for i, specialty := range doctor.Specialties {
		resp.Specialties[i] = specialty.ID
	}
	return resp
}

// DoctorsToResponses converts a slice of Doctor entities.
func DoctorsToResponses(doctors []entity.Doctor) []dto.DoctorResponse {
	responses := make([]dto.DoctorResponse, len(doctors))
	for i := range doctors {
		responses[i] = *DoctorToResponse(&doctors[i])
	}
	return responses
}
