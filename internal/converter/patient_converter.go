package converter

import (
	"clinic-backend/internal/delivery/dto"
	"clinic-backend/internal/domain/entity"
)

// PatientToResponse converts a Patient entity with its person aggregate.
func PatientToResponse(patient *entity.Patient) *dto.PatientResponse {
	if patient == nil {
		return nil
	}

	return &dto.PatientResponse{
		Person:          PersonToResponse(&patient.Person),
		BloodGroup:      patient.BloodGroup,
		ContactPhone:    patient.ContactPhone,
		Allergies:       patient.Allergies,
		ClinicalHistory: patient.ClinicalHistory,
	}
}

// PatientsToResponses converts a slice of Patient entities.
func PatientsToResponses(patients []entity.Patient) []dto.PatientResponse {
	responses := make([]dto.PatientResponse, len(patients))
	for i := range patients {
		responses[i] = *PatientToResponse(&patients[i])
	}
	return responses
}
