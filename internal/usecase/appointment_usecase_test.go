package usecase

import (
	"testing"
	"time"

	"clinic-backend/internal/domain/entity"
	"clinic-backend/pkg/fielderr"

	"github.com/stretchr/testify/assert"
)

func TestCheckCancelledDate(t *testing.T) {
	scheduled := time.Date(2026, time.April, 10, 0, 0, 0, 0, time.UTC)

	t.Run("before scheduled is rejected", func(t *testing.T) {
		cancelled := scheduled.AddDate(0, 0, -1)
		ve := fielderr.New()
		checkCancelledDate(scheduled, &cancelled, ve)
		assert.True(t, ve.Has("cancelled_date"))
	})

	t.Run("same day is allowed", func(t *testing.T) {
		cancelled := scheduled
		ve := fielderr.New()
		checkCancelledDate(scheduled, &cancelled, ve)
		assert.NoError(t, ve.Err())
	})

	t.Run("after scheduled is allowed", func(t *testing.T) {
		cancelled := scheduled.AddDate(0, 0, 3)
		ve := fielderr.New()
		checkCancelledDate(scheduled, &cancelled, ve)
		assert.NoError(t, ve.Err())
	})

	t.Run("nil cancelled date is ignored", func(t *testing.T) {
		ve := fielderr.New()
		checkCancelledDate(scheduled, nil, ve)
		assert.NoError(t, ve.Err())
	})
}

func TestAppointmentCancel(t *testing.T) {
	appointment := &entity.Appointment{
		ScheduledDate: time.Date(2026, time.April, 10, 0, 0, 0, 0, time.UTC),
		State:         entity.AppointmentStatePending,
	}

	date := time.Date(2026, time.April, 12, 0, 0, 0, 0, time.UTC)
	appointment.Cancel(date)

	assert.Equal(t, entity.AppointmentStateCancelled, appointment.State)
	assert.NotNil(t, appointment.CancelledDate)
	assert.Equal(t, date, *appointment.CancelledDate)
	assert.False(t, appointment.IsPending())
}

func TestIsValidAppointmentState(t *testing.T) {
	assert.True(t, entity.IsValidAppointmentState(entity.AppointmentStatePending))
	assert.True(t, entity.IsValidAppointmentState(entity.AppointmentStateCancelled))
	assert.True(t, entity.IsValidAppointmentState(entity.AppointmentStateCompleted))
	assert.False(t, entity.IsValidAppointmentState("rescheduled"))
}
