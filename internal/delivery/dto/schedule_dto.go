package dto

import "github.com/google/uuid"

// Request DTOs

type CreateScheduleRequest struct {
	DoctorID    uuid.UUID `json:"doctor_id" validate:"required"`
	Description string    `json:"description" validate:"omitempty,max=250"`
	DateStart   string    `json:"date_start" validate:"required"`
	DateEnd     string    `json:"date_end" validate:"required"`
	TimeStart   string    `json:"time_start" validate:"required"`
	TimeEnd     string    `json:"time_end" validate:"required"`
}

type UpdateScheduleRequest struct {
	Description string `json:"description" validate:"omitempty,max=250"`
	DateStart   string `json:"date_start" validate:"omitempty"`
	DateEnd     string `json:"date_end" validate:"omitempty"`
	TimeStart   string `json:"time_start" validate:"omitempty"`
	TimeEnd     string `json:"time_end" validate:"omitempty"`
}

// Response DTOs

type ScheduleResponse struct {
	ID          int             `json:"id"`
	DoctorID    uuid.UUID       `json:"doctor_id"`
	Description string          `json:"description,omitempty"`
	DateStart   string          `json:"date_start"`
	DateEnd     string          `json:"date_end"`
	TimeStart   string          `json:"time_start"`
	TimeEnd     string          `json:"time_end"`
	IsActive    *bool           `json:"is_active"`
	Doctor      *DoctorResponse `json:"doctor,omitempty"`
}

type ScheduleListResponse struct {
	Schedules []ScheduleResponse `json:"schedules"`
	Total     int                `json:"total"`
}
