package domain

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// Business validation constants
const (
	MinServiceDurationMinutes = 1
	MaxServiceDurationMinutes = 480 // 8 hours
	MaxServiceNameLength      = 150
	MaxClientNameLength       = 150

	MaxAppointmentsPerRequest = 100
)
