package converter

import (
	"clinic-backend/internal/delivery/dto"
	"clinic-backend/internal/domain/entity"

	"github.com/google/uuid"
)

func ScheduleToResponse(schedule *entity.Schedule) *dto.ScheduleResponse {
	if schedule == nil {
		return nil
	}

	resp := &dto.ScheduleResponse{
		ID:          schedule.ID,
		DoctorID:    schedule.DoctorID,
		Description: schedule.Description,
		DateStart:   schedule.DateStart.Format(dateLayout),
		DateEnd:     schedule.DateEnd.Format(dateLayout),
		TimeStart:   schedule.TimeStart,
		TimeEnd:     schedule.TimeEnd,
		IsActive:    schedule.IsActive,
	}
	if schedule.Doctor.PersonID != uuid.Nil {
		resp.Doctor = DoctorToResponse(&schedule.Doctor)
	}
	return resp
}

func SchedulesToResponses(schedules []entity.Schedule) []dto.ScheduleResponse {
	responses := make([]dto.ScheduleResponse, len(schedules))
	for i := range schedules {
		responses[i] = *ScheduleToResponse(&schedules[i])
	}
	return responses
}
