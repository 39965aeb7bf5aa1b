package domain

import (
	"time"

	"github.com/google/uuid"
)

// AppointmentStatus represents the status of an appointment
type AppointmentStatus string

const (
	StatusScheduled          AppointmentStatus = "scheduled"
	StatusNoShow             AppointmentStatus = "no_show"
	StatusCancelledByStylist AppointmentStatus = "cancelled_by_stylist"
	StatusCancelledByClient  AppointmentStatus = "cancelled_by_client"
	StatusCheckedOut         AppointmentStatus = "checked_out"
)

// StylistSettableStatuses statuses a stylist is allowed to set directly.
// Going back to scheduled and cancelling on behalf of the client are not allowed.
var StylistSettableStatuses = []AppointmentStatus{
	StatusCancelledByStylist,
	StatusNoShow,
	StatusCheckedOut,
}

// CancelledStatuses statuses that exclude an appointment from conflict
// detection and visit history
var CancelledStatuses = []AppointmentStatus{
	StatusCancelledByStylist,
	StatusCancelledByClient,
}

// IsValidStatus reports whether s is one of the known appointment statuses
func IsValidStatus(s AppointmentStatus) bool {
	switch s {
	case StatusScheduled, StatusNoShow, StatusCancelledByStylist,
		StatusCancelledByClient, StatusCheckedOut:
		return true
	}
	return false
}

// IsStylistSettable reports whether a stylist may set status s directly
func IsStylistSettable(s AppointmentStatus) bool {
	for _, allowed := range StylistSettableStatuses {
		if s == allowed {
			return true
		}
	}
	return false
}

// Appointment represents a booked visit of a client to a stylist.
// Client name is denormalized at creation time so history survives
// later changes to the client record.
type Appointment struct {
	ID         int64
	UUID       uuid.UUID
	StylistID  int64
	ClientUUID *uuid.UUID

	ClientFirstName string
	ClientLastName  string

	StartAt time.Time
	Status  AppointmentStatus

	Services []AppointmentService

	CreatedBy int64

	CreatedAt time.Time
	UpdatedAt time.Time
}

// AppointmentService is a snapshot of a stylist service taken at booking
// or checkout time. IsOriginal marks line items present at the initial
// creation of the appointment.
type AppointmentService struct {
	ID            int64
	UUID          uuid.UUID
	AppointmentID int64

	ServiceUUID     uuid.UUID
	ServiceName     string
	DurationMinutes int

	RegularPrice float64
	ClientPrice  float64

	IsOriginal bool
}

// IsCancelled returns true if the appointment was cancelled by either side
func (a *Appointment) IsCancelled() bool {
	return a.Status == StatusCancelledByStylist || a.Status == StatusCancelledByClient
}

// IsTerminal returns true if no further status transitions are allowed.
// Scheduled is the only non-terminal status.
func (a *Appointment) IsTerminal() bool {
	return a.Status != StatusScheduled
}

// DurationMinutes returns the total duration of all service line items
func (a *Appointment) DurationMinutes() int {
	total := 0
	for _, s := range a.Services {
		total += s.DurationMinutes
	}
	return total
}

// EndAt returns the end of the appointment window [StartAt, EndAt)
func (a *Appointment) EndAt() time.Time {
	return a.StartAt.Add(time.Duration(a.DurationMinutes()) * time.Minute)
}

// TotalClientPriceBeforeTax sums the client prices of all line items
func (a *Appointment) TotalClientPriceBeforeTax() float64 {
	total := 0.0
	for _, s := range a.Services {
		total += s.ClientPrice
	}
	return RoundToCents(total)
}

// Overlaps reports whether the appointment window intersects
// [start, start + durationMinutes). Half-open intervals: back-to-back
// appointments with an equal boundary do not overlap.
func (a *Appointment) Overlaps(start time.Time, durationMinutes int) bool {
	end := start.Add(time.Duration(durationMinutes) * time.Minute)
	return a.StartAt.Before(end) && start.Before(a.EndAt())
}

// AppointmentsFilter filter for fetching a stylist's appointments
type AppointmentsFilter struct {
	StylistID        int64
	From             *time.Time // window start (inclusive), nil = unbounded
	To               *time.Time // window end (exclusive), nil = unbounded
	IncludeCancelled bool
	Limit            int // 0 = no limit
}
