package dto

import "github.com/google/uuid"

// Request DTOs

type CreateAppointmentRequest struct {
	DoctorID      uuid.UUID `json:"doctor_id" validate:"required"`
	PatientID     uuid.UUID `json:"patient_id" validate:"required"`
	ScheduledDate string    `json:"scheduled_date" validate:"required"`
	CancelledDate string    `json:"cancelled_date" validate:"omitempty"`
	State         string    `json:"state" validate:"omitempty,oneof=pending cancelled completed"`
}

type UpdateAppointmentRequest struct {
	ScheduledDate string `json:"scheduled_date" validate:"omitempty"`
	CancelledDate string `json:"cancelled_date" validate:"omitempty"`
	State         string `json:"state" validate:"omitempty,oneof=pending cancelled completed"`
}

// Response DTOs

type AppointmentResponse struct {
	ID            int              `json:"id"`
	ScheduledDate string           `json:"scheduled_date"`
	CancelledDate string           `json:"cancelled_date,omitempty"`
	State         string           `json:"state"`
	Doctor        *DoctorResponse  `json:"doctor,omitempty"`
	Patient       *PatientResponse `json:"patient,omitempty"`
}

type AppointmentListResponse struct {
	Appointments []AppointmentResponse `json:"appointments"`
	Total        int                   `json:"total"`
}
