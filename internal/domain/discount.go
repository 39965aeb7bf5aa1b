package domain

import "time"

// Weekday ISO-8601 weekday, Monday == 1 .. Sunday == 7
type Weekday int

const (
	Monday Weekday = iota + 1
	Tuesday
	Wednesday
	Thursday
	Friday
	Saturday
	Sunday
)

// ISOWeekday returns the ISO weekday of t in its own location
func ISOWeekday(t time.Time) Weekday {
	wd := int(t.Weekday())
	if wd == 0 {
		wd = 7
	}
	return Weekday(wd)
}

func (w Weekday) String() string {
	names := [...]string{"", "Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday", "Sunday"}
	if w < Monday || w > Sunday {
		return "Unknown"
	}
	return names[w]
}

// Default discount percentages applied until a stylist saves their own
const (
	DefaultWeekdayDiscountPercent      = 20 // Monday..Thursday
	DefaultWeekendDiscountPercent      = 0  // Friday..Sunday
	DefaultFirstBookingDiscountPercent = 40
	DefaultRebookWithin1WeekPercent    = 35
	DefaultRebookWithin2WeeksPercent   = 25
)

// Rebook discount windows
const (
	RebookWindow1Week  = 7 * 24 * time.Hour
	RebookWindow2Weeks = 14 * 24 * time.Hour
)

// StylistDiscounts per-stylist discount configuration. IsConfigured is
// set only after the stylist explicitly saves discount settings; until
// then the defaults apply.
type StylistDiscounts struct {
	StylistID int64

	// WeekdayPercents indexed by ISO weekday 1..7
	WeekdayPercents map[Weekday]int

	FirstBookingPercent       int
	RebookWithin1WeekPercent  int
	RebookWithin2WeeksPercent int

	IsConfigured bool
}

// DefaultDiscounts returns the global default discount table:
// Monday-Thursday 20%, Friday-Sunday 0%, first booking 40%,
// rebook within 1 week 35%, rebook within 2 weeks 25%
func DefaultDiscounts(stylistID int64) StylistDiscounts {
	weekdays := make(map[Weekday]int, 7)
	for day := Monday; day <= Thursday; day++ {
		weekdays[day] = DefaultWeekdayDiscountPercent
	}
	for day := Friday; day <= Sunday; day++ {
		weekdays[day] = DefaultWeekendDiscountPercent
	}
	return StylistDiscounts{
		StylistID:                 stylistID,
		WeekdayPercents:           weekdays,
		FirstBookingPercent:       DefaultFirstBookingDiscountPercent,
		RebookWithin1WeekPercent:  DefaultRebookWithin1WeekPercent,
		RebookWithin2WeeksPercent: DefaultRebookWithin2WeeksPercent,
		IsConfigured:              false,
	}
}

// VisitHistory summarizes a client's booking history with a stylist
type VisitHistory struct {
	HasPastVisits bool
	// LastVisitEndAt end of the most recent non-cancelled appointment,
	// nil when the client has no prior visits
	LastVisitEndAt *time.Time
}

// ApplicablePercent returns the discount percentage for one service of
// an appointment starting at startAt (already in the stylist's local
// time). Discounts never stack: the maximum applicable one wins.
func (d StylistDiscounts) ApplicablePercent(startAt time.Time, history VisitHistory) int {
	effective := d
	if !d.IsConfigured {
		effective = DefaultDiscounts(d.StylistID)
	}

	best := effective.WeekdayPercents[ISOWeekday(startAt)]

	if !history.HasPastVisits {
		if effective.FirstBookingPercent > best {
			best = effective.FirstBookingPercent
		}
	} else if history.LastVisitEndAt != nil {
		sinceLastVisit := startAt.Sub(*history.LastVisitEndAt)
		if sinceLastVisit >= 0 {
			if sinceLastVisit <= RebookWindow1Week && effective.RebookWithin1WeekPercent > best {
				best = effective.RebookWithin1WeekPercent
			}
			if sinceLastVisit <= RebookWindow2Weeks && effective.RebookWithin2WeeksPercent > best {
				best = effective.RebookWithin2WeeksPercent
			}
		}
	}

	return ClampPercent(best)
}

// ClampPercent clamps a discount percentage to [0, 100]
func ClampPercent(p int) int {
	if p < 0 {
		return 0
	}
	if p > 100 {
		return 100
	}
	return p
}
