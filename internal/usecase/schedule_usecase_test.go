package usecase

import (
	"testing"
	"time"

	"clinic-backend/internal/domain/entity"
	"clinic-backend/pkg/fielderr"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseScheduleDate(t *testing.T) {
	ve := fielderr.New()
	parsed := parseScheduleDate("2026-02-01", "date_start", ve)

	require.NotNil(t, parsed)
	assert.Equal(t, time.Date(2026, time.February, 1, 0, 0, 0, 0, time.UTC), *parsed)
	assert.NoError(t, ve.Err())
}

func TestParseScheduleDate_Invalid(t *testing.T) {
	ve := fielderr.New()
	parsed := parseScheduleDate("01-02-2026", "date_start", ve)

	assert.Nil(t, parsed)
	assert.True(t, ve.Has("date_start"))
}

func TestParseScheduleTime(t *testing.T) {
	ve := fielderr.New()
	assert.Equal(t, "09:30", parseScheduleTime("09:30", "time_start", ve))
	assert.NoError(t, ve.Err())

	assert.Equal(t, "", parseScheduleTime("9:30pm", "time_end", ve))
	assert.True(t, ve.Has("time_end"))
}

func TestCheckScheduleRanges_InvertedDates(t *testing.T) {
	schedule := &entity.Schedule{
		DateStart: time.Date(2026, time.March, 10, 0, 0, 0, 0, time.UTC),
		DateEnd:   time.Date(2026, time.March, 1, 0, 0, 0, 0, time.UTC),
		TimeStart: "08:00",
		TimeEnd:   "12:00",
	}

	ve := fielderr.New()
	checkScheduleRanges(schedule, ve)

	assert.True(t, ve.Has("date_end"))
	assert.False(t, ve.Has("time_end"))
}

func TestCheckScheduleRanges_InvertedTimes(t *testing.T) {
	schedule := &entity.Schedule{
		DateStart: time.Date(2026, time.March, 1, 0, 0, 0, 0, time.UTC),
		DateEnd:   time.Date(2026, time.March, 10, 0, 0, 0, 0, time.UTC),
		TimeStart: "14:00",
		TimeEnd:   "09:00",
	}

	ve := fielderr.New()
	checkScheduleRanges(schedule, ve)

	assert.False(t, ve.Has("date_end"))
	assert.True(t, ve.Has("time_end"))
}

func TestCheckScheduleRanges_SingleDayWindow(t *testing.T) {
	day := time.Date(2026, time.March, 1, 0, 0, 0, 0, time.UTC)
	schedule := &entity.Schedule{
		DateStart: day,
		DateEnd:   day,
		TimeStart: "08:00",
		TimeEnd:   "08:00",
	}

	ve := fielderr.New()
	checkScheduleRanges(schedule, ve)

	// Equal boundaries are allowed on both ranges.
	assert.NoError(t, ve.Err())
}
