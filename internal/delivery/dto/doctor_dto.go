package dto

// Request DTOs

type CreateDoctorRequest struct {
	Person      PersonPayload `json:"person" validate:"required"`
	CMP         string        `json:"cmp" validate:"omitempty,code12"`
	RNE         string        `json:"rne" validate:"omitempty,code12"`
	Specialties []int         `json:"specialties" validate:"omitempty,dive,gt=0"`
}

// UpdateDoctorRequest is a partial update. Specialties distinguishes absent
// (nil, associations untouched) from explicitly empty (replace with none).
type UpdateDoctorRequest struct {
	Person      *PersonPayload `json:"person" validate:"omitempty"`
	CMP         string         `json:"cmp" validate:"omitempty,code12"`
	RNE         string         `json:"rne" validate:"omitempty,code12"`
	Specialties *[]int         `json:"specialties" validate:"omitempty,dive,gt=0"`
}

// Response DTOs

// DoctorResponse is the composed read view: the base profile fields plus the
// resolved specialty objects assembled by the read path.
type DoctorResponse struct {
	Person            PersonResponse      `json:"person"`
	CMP               string              `json:"cmp,omitempty"`
	RNE               string              `json:"rne,omitempty"`
	Specialties       []int               `json:"specialties"`
	SpecialtiesDetail []SpecialtyResponse `json:"specialties_detail"`
}

type DoctorListResponse struct {
	Doctors []DoctorResponse `json:"doctors"`
	Total   int              `json:"total"`
}
