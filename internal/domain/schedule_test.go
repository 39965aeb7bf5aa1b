package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/m04kA/SMC-AppointmentService/pkg/types"
)

func availableDay(start, end string) WorkingDay {
	return WorkingDay{
		StylistID:   1,
		Weekday:     Monday,
		IsAvailable: true,
		WorkStartAt: types.TimeString(start),
		WorkEndAt:   types.TimeString(end),
	}
}

func TestWorkingDayFitsWindow(t *testing.T) {
	day := availableDay("09:00", "17:00")

	tests := []struct {
		name     string
		start    string
		duration int
		want     bool
	}{
		{"fits in the middle of the day", "10:00", 60, true},
		{"start at opening", "09:00", 60, true},
		{"ends exactly at closing", "16:00", 60, true},
		{"spills past closing", "16:30", 60, false},
		{"starts before opening", "08:30", 60, false},
		{"whole day", "09:00", 480, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, day.FitsWindow(types.TimeString(tt.start), tt.duration))
		})
	}
}

func TestWorkingDayUnavailable(t *testing.T) {
	day := NewUnavailableDay(1, Tuesday)
	assert.False(t, day.FitsWindow(types.TimeString("10:00"), 30))
}

func TestAppointmentOverlapsHalfOpenIntervals(t *testing.T) {
	base := time.Date(2025, 6, 2, 10, 0, 0, 0, time.UTC)

	appt := &Appointment{
		StartAt: base,
		Services: []AppointmentService{
			{DurationMinutes: 60},
		},
	}

	// [10:00, 11:00) vs [11:00, 12:00): back-to-back, no conflict
	assert.False(t, appt.Overlaps(base.Add(time.Hour), 60))
	// [10:00, 11:00) vs [10:30, 11:30): conflict
	assert.True(t, appt.Overlaps(base.Add(30*time.Minute), 60))
	// [10:00, 11:00) vs [09:00, 10:00): back-to-back before, no conflict
	assert.False(t, appt.Overlaps(base.Add(-time.Hour), 60))
	// [10:00, 11:00) vs [09:30, 10:30): conflict
	assert.True(t, appt.Overlaps(base.Add(-30*time.Minute), 60))
}

func TestAppointmentDurationSumsServices(t *testing.T) {
	appt := &Appointment{
		StartAt: time.Date(2025, 6, 2, 10, 0, 0, 0, time.UTC),
		Services: []AppointmentService{
			{DurationMinutes: 30, ClientPrice: 25.00},
			{DurationMinutes: 45, ClientPrice: 40.50},
		},
	}

	assert.Equal(t, 75, appt.DurationMinutes())
	assert.Equal(t, appt.StartAt.Add(75*time.Minute), appt.EndAt())
	assert.Equal(t, 65.50, appt.TotalClientPriceBeforeTax())
}

func TestStylistSettableStatuses(t *testing.T) {
	assert.True(t, IsStylistSettable(StatusCheckedOut))
	assert.True(t, IsStylistSettable(StatusNoShow))
	assert.True(t, IsStylistSettable(StatusCancelledByStylist))
	assert.False(t, IsStylistSettable(StatusScheduled))
	assert.False(t, IsStylistSettable(StatusCancelledByClient))
}
