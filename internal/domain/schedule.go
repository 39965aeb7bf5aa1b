package domain

import (
	"github.com/m04kA/SMC-AppointmentService/pkg/types"
)

// WorkingDay declared availability of a stylist for one ISO weekday.
// Invariant: when IsAvailable is true both times are set; when false
// both are cleared.
type WorkingDay struct {
	ID        int64
	StylistID int64
	Weekday   Weekday

	IsAvailable bool
	WorkStartAt types.TimeString
	WorkEndAt   types.TimeString
}

// NewUnavailableDay returns the lazily-created default for a weekday a
// stylist has never configured
func NewUnavailableDay(stylistID int64, weekday Weekday) WorkingDay {
	return WorkingDay{
		StylistID: stylistID,
		Weekday:   weekday,
	}
}

// FitsWindow reports whether a window starting at start (time of day in
// the stylist's local time) with the given duration fits entirely
// within the working day. The end boundary is inclusive: a window
// ending exactly at WorkEndAt is valid, spilling past it is not.
func (d WorkingDay) FitsWindow(start types.TimeString, durationMinutes int) bool {
	if !d.IsAvailable || d.WorkStartAt.IsZero() || d.WorkEndAt.IsZero() {
		return false
	}
	if start.IsBefore(d.WorkStartAt) {
		return false
	}
	end, err := start.AddMinutes(durationMinutes)
	if err != nil {
		// window runs past midnight, cannot fit a single working day
		return false
	}
	return !end.IsAfter(d.WorkEndAt)
}
