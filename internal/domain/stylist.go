package domain

import "time"

// StylistProfile stylist-level settings the pricing engine depends on
type StylistProfile struct {
	StylistID int64

	// Timezone IANA name of the stylist's salon timezone;
	// "now", weekdays and working hours are interpreted in it
	Timezone string

	IncludeTax     bool
	IncludeCardFee bool
}

// DefaultProfile returns the profile used until the stylist saves one
func DefaultProfile(stylistID int64) StylistProfile {
	return StylistProfile{
		StylistID:      stylistID,
		Timezone:       "UTC",
		IncludeTax:     true,
		IncludeCardFee: true,
	}
}

// Location resolves the stylist's timezone, falling back to UTC when
// the stored name is invalid
func (p StylistProfile) Location() *time.Location {
	loc, err := time.LoadLocation(p.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}
