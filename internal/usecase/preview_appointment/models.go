package preview_appointment

import (
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	pricingModels "github.com/m04kA/SMC-AppointmentService/internal/service/pricing/models"
)

// Request модель запроса на предварительный расчет записи
type Request struct {
	StylistID  int64       // ID стилиста
	ClientUUID *uuid.UUID  // Клиент из справочника (опционально)
	StartAt    time.Time   // Предполагаемое время начала
	Services   []uuid.UUID // Услуги из каталога стилиста

	// HasTaxIncluded и HasCardFeeIncluded переопределяют настройки
	// профиля для этого расчета; nil означает настройки профиля
	HasTaxIncluded     *bool
	HasCardFeeIncluded *bool
}

// ServiceLine расчет одной услуги
type ServiceLine struct {
	ServiceUUID     uuid.UUID
	ServiceName     string
	DurationMinutes int
	RegularPrice    float64
	ClientPrice     float64
}

// Conflict пересекающаяся запись, возвращаемая как информация
type Conflict struct {
	UUID    uuid.UUID
	StartAt time.Time
	EndAt   time.Time
	Status  string
}

// Response модель ответа с расчетом и списком пересечений.
// Пересечения не являются ошибкой: решение остается за вызывающим.
type Response struct {
	StartAt         time.Time
	EndAt           time.Time
	DurationMinutes int

	Services []ServiceLine

	DiscountPercent           int
	TotalClientPriceBeforeTax float64
	TotalTax                  float64
	TotalCardFee              float64
	GrandTotal                float64
	HasTaxIncluded            bool
	HasCardFeeIncluded        bool

	Conflicts []Conflict
}

// toResponse собирает ответ из расчета цен и найденных пересечений
func toResponse(startAt time.Time, quote *pricingModels.Quote, conflicts []*domain.Appointment) *Response {
	services := make([]ServiceLine, 0, len(quote.Services))
	totalDuration := 0
	for _, sq := range quote.Services {
		services = append(services, ServiceLine{
			ServiceUUID:     sq.Service.UUID,
			ServiceName:     sq.Service.Name,
			DurationMinutes: sq.Service.DurationMinutes,
			RegularPrice:    sq.RegularPrice,
			ClientPrice:     sq.ClientPrice,
		})
		totalDuration += sq.Service.DurationMinutes
	}

	conflictList := make([]Conflict, 0, len(conflicts))
	for _, appt := range conflicts {
		conflictList = append(conflictList, Conflict{
			UUID:    appt.UUID,
			StartAt: appt.StartAt,
			EndAt:   appt.EndAt(),
			Status:  string(appt.Status),
		})
	}

	return &Response{
		StartAt:         startAt,
		EndAt:           startAt.Add(time.Duration(totalDuration) * time.Minute),
		DurationMinutes: totalDuration,

		Services: services,

		DiscountPercent:           quote.DiscountPercent,
		TotalClientPriceBeforeTax: quote.Prices.TotalClientPriceBeforeTax,
		TotalTax:                  quote.Prices.TotalTax,
		TotalCardFee:              quote.Prices.TotalCardFee,
		GrandTotal:                quote.Prices.GrandTotal,
		HasTaxIncluded:            quote.Prices.HasTaxIncluded,
		HasCardFeeIncluded:        quote.Prices.HasCardFeeIncluded,

		Conflicts: conflictList,
	}
}
