package dto

// Request DTOs

type CreateSpecialtyRequest struct {
	Description string `json:"description" validate:"required,max=250"`
}

type UpdateSpecialtyRequest struct {
	Description string `json:"description" validate:"omitempty,max=250"`
}

// Response DTOs

type SpecialtyResponse struct {
	ID          int    `json:"id"`
	Description string `json:"description"`
	IsActive    *bool  `json:"is_active,omitempty"`
}

type SpecialtyListResponse struct {
	Specialties []SpecialtyResponse `json:"specialties"`
	Total       int                 `json:"total"`
}
