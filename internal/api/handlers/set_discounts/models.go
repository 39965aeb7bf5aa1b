package set_discounts

import (
	"github.com/m04kA/SMC-AppointmentService/internal/service/settings/models"
)

// SetDiscountsRequest HTTP request model
type SetDiscountsRequest struct {
	// WeekdayPercents проценты по дням недели, ISO 1..7
	WeekdayPercents map[int]int `json:"weekdayPercents"`

	FirstBookingPercent       int `json:"firstBookingPercent"`
	RebookWithin1WeekPercent  int `json:"rebookWithin1WeekPercent"`
	RebookWithin2WeeksPercent int `json:"rebookWithin2WeeksPercent"`
}

// ToServiceRequest конвертирует HTTP запрос в модель сервиса
func (r *SetDiscountsRequest) ToServiceRequest(stylistID int64) *models.SetDiscountsRequest {
	return &models.SetDiscountsRequest{
		StylistID:                 stylistID,
		WeekdayPercents:           r.WeekdayPercents,
		FirstBookingPercent:       r.FirstBookingPercent,
		RebookWithin1WeekPercent:  r.RebookWithin1WeekPercent,
		RebookWithin2WeeksPercent: r.RebookWithin2WeeksPercent,
	}
}
