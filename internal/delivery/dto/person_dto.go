package dto

import "github.com/google/uuid"

// PersonPayload carries the demographic fields of a profile. No field is
// strictly required; whatever is present is validated. BirthDate travels as
// YYYY-MM-DD and its year range is checked in the usecase.
type PersonPayload struct {
	DNI       string       `json:"dni" validate:"omitempty,dni"`
	FirstName string       `json:"first_name" validate:"omitempty,max=250"`
	LastName  string       `json:"last_name" validate:"omitempty,max=250"`
	Phone     string       `json:"phone" validate:"omitempty,phone9"`
	BirthDate string       `json:"birth_date" validate:"omitempty"`
	Gender    string       `json:"gender" validate:"omitempty,oneof=M F O"`
	Direction string       `json:"direction" validate:"omitempty,max=250"`
	User      *UserPayload `json:"user" validate:"omitempty"`
}

type PersonResponse struct {
	ID        uuid.UUID     `json:"id"`
	DNI       string        `json:"dni,omitempty"`
	FirstName string        `json:"first_name,omitempty"`
	LastName  string        `json:"last_name,omitempty"`
	Phone     string        `json:"phone,omitempty"`
	BirthDate string        `json:"birth_date,omitempty"`
	Gender    string        `json:"gender"`
	Direction string        `json:"direction,omitempty"`
	User      *UserResponse `json:"user,omitempty"`
}
