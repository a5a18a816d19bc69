package entity

import (
	"time"

	"github.com/google/uuid"
)

// AppointmentState is the lifecycle state of an appointment
type AppointmentState string

const (
	AppointmentStatePending   AppointmentState = "pending"
	AppointmentStateCancelled AppointmentState = "cancelled"
	AppointmentStateCompleted AppointmentState = "completed"
)

// IsValidAppointmentState reports whether v is a known lifecycle state.
func IsValidAppointmentState(v AppointmentState) bool {
	switch v {
	case AppointmentStatePending, AppointmentStateCancelled, AppointmentStateCompleted:
		return true
	}
	return false
}

// Appointment links a doctor and a patient on a scheduled date. Plain record
// with field-level validation only; no conflict detection against schedules.
type Appointment struct {
	ID            int              `gorm:"primaryKey;autoIncrement" json:"id"`
	DoctorID      uuid.UUID        `gorm:"type:uuid;not null;index" json:"doctor_id"`
	PatientID     uuid.UUID        `gorm:"type:uuid;not null;index" json:"patient_id"`
	ScheduledDate time.Time        `gorm:"type:date;not null" json:"scheduled_date"`
	CancelledDate *time.Time       `gorm:"type:date" json:"cancelled_date,omitempty"`
	State         AppointmentState `gorm:"type:varchar(10);not null;default:'pending';index" json:"state"`
	CreatedAt     time.Time        `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt     time.Time        `gorm:"autoUpdateTime" json:"updated_at"`

	// Relationships
	Doctor  Doctor  `gorm:"foreignKey:DoctorID" json:"doctor,omitempty"`
	Patient Patient `gorm:"foreignKey:PatientID" json:"patient,omitempty"`
}

func (Appointment) TableName() string {
	return "appointments"
}

// IsPending checks if the appointment is still pending
func (a *Appointment) IsPending() bool {
	return a.State == AppointmentStatePending
}

// Cancel marks the appointment cancelled on the given date.
func (a *Appointment) Cancel(date time.Time) {
	a.State = AppointmentStateCancelled
	a.CancelledDate = &date
}
