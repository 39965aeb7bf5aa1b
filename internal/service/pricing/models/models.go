package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
)

// QuoteRequest запрос на расчет стоимости набора услуг
type QuoteRequest struct {
	StylistID  int64
	ClientUUID *uuid.UUID

	// StartAt время начала записи в часовом поясе стилиста
	StartAt time.Time

	Services []*domain.StylistService

	// IncludeTax и IncludeCardFee переопределяют настройки профиля
	// для этого расчета; nil означает настройки профиля
	IncludeTax     *bool
	IncludeCardFee *bool
}

// ServiceQuote расчет стоимости одной услуги
type ServiceQuote struct {
	Service         *domain.StylistService
	DiscountPercent int
	RegularPrice    float64
	ClientPrice     float64
}

// Quote итоговый расчет стоимости записи
type Quote struct {
	Services        []ServiceQuote
	DiscountPercent int
	Prices          domain.AppointmentPrices
}

// ToAppointmentServices конвертирует расчет в снапшоты услуг записи
func (q *Quote) ToAppointmentServices() []domain.AppointmentService {
	services := make([]domain.AppointmentService, 0, len(q.Services))
	for _, sq := range q.Services {
		services = append(services, domain.AppointmentService{
			ServiceUUID:     sq.Service.UUID,
			ServiceName:     sq.Service.Name,
			DurationMinutes: sq.Service.DurationMinutes,
			RegularPrice:    sq.RegularPrice,
			ClientPrice:     sq.ClientPrice,
			IsOriginal:      true,
		})
	}
	return services
}
