package dto

// Request DTOs

type CreatePatientRequest struct {
	Person          PersonPayload `json:"person" validate:"required"`
	BloodGroup      string        `json:"blood_group" validate:"omitempty,oneof=A+ A- B+ B- AB+ AB- O+ O-"`
	ContactPhone    string        `json:"contact_phone" validate:"omitempty,phone9"`
	Allergies       string        `json:"allergies" validate:"omitempty"`
	ClinicalHistory string        `json:"clinical_history" validate:"omitempty"`
}

type UpdatePatientRequest struct {
	Person          *PersonPayload `json:"person" validate:"omitempty"`
	BloodGroup      string         `json:"blood_group" validate:"omitempty,oneof=A+ A- B+ B- AB+ AB- O+ O-"`
	ContactPhone    string         `json:"contact_phone" validate:"omitempty,phone9"`
	Allergies       string         `json:"allergies" validate:"omitempty"`
	ClinicalHistory string         `json:"clinical_history" validate:"omitempty"`
}

// Response DTOs

type PatientResponse struct {
	Person          PersonResponse `json:"person"`
	BloodGroup      string         `json:"blood_group"`
	ContactPhone    string         `json:"contact_phone,omitempty"`
	Allergies       string         `json:"allergies,omitempty"`
	ClinicalHistory string         `json:"clinical_history,omitempty"`
}

type PatientListResponse struct {
	Patients []PatientResponse `json:"patients"`
	Total    int               `json:"total"`
}
