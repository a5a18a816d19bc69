package converter

import (
	"clinic-backend/internal/delivery/dto"
	"clinic-backend/internal/domain/entity"

	"github.com/google/uuid"
)

func AppointmentToResponse(appointment *entity.Appointment) *dto.AppointmentResponse {
	if appointment == nil {
		return nil
	}

	resp := &dto.AppointmentResponse{
		ID:            appointment.ID,
		ScheduledDate: appointment.ScheduledDate.Format(dateLayout),
		State:         string(appointment.State),
	}
	if appointment.CancelledDate != nil {
		resp.CancelledDate = appointment.CancelledDate.Format(dateLayout)
	}
	if appointment.Doctor.PersonID != uuid.Nil {
		resp.Doctor = DoctorToResponse(&appointment.Doctor)
	}
	if appointment.Patient.PersonID != uuid.Nil {
		resp.Patient = PatientToResponse(&appointment.Patient)
	}
	return resp
}

func AppointmentsToResponses(appointments []entity.Appointment) []dto.AppointmentResponse {
	responses := make([]dto.AppointmentResponse, len(appointments))
	for i := range appointments {
		responses[i] = *AppointmentToResponse(&appointments[i])
	}
	return responses
}
