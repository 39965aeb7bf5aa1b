package update_appointment

import (
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
)

// Request модель запроса на смену статуса записи
type Request struct {
	StylistID       int64     // ID стилиста
	AppointmentUUID uuid.UUID // Публичный идентификатор записи

	Status string // Запрашиваемый статус

	// Services итоговый набор услуг для чекаута; для остальных
	// переходов игнорируется
	Services []uuid.UUID

	UpdatedBy int64 // ID стилиста, выполнившего переход
}

// ServiceLine снапшот услуги в ответе
type ServiceLine struct {
	UUID            uuid.UUID
	ServiceUUID     uuid.UUID
	ServiceName     string
	DurationMinutes int
	RegularPrice    float64
	ClientPrice     float64
	IsOriginal      bool
}

// Response модель ответа с обновленной записью
type Response struct {
	UUID       uuid.UUID
	StylistID  int64
	ClientUUID *uuid.UUID

	ClientFirstName string
	ClientLastName  string

	StartAt         time.Time
	EndAt           time.Time
	DurationMinutes int
	Status          string

	Services []ServiceLine

	TotalClientPriceBeforeTax float64
	TotalTax                  float64
	TotalCardFee              float64
	GrandTotal                float64
	HasTaxIncluded            bool
	HasCardFeeIncluded        bool

	CreatedAt time.Time
	UpdatedAt time.Time
}

// toResponse конвертирует обновленную запись в ответ
func toResponse(appt *domain.Appointment, prices domain.AppointmentPrices) *Response {
	services := make([]ServiceLine, 0, len(appt.Services))
	for _, svc := range appt.Services {
		services = append(services, ServiceLine{
			UUID:            svc.UUID,
			ServiceUUID:     svc.ServiceUUID,
			ServiceName:     svc.ServiceName,
			DurationMinutes: svc.DurationMinutes,
			RegularPrice:    svc.RegularPrice,
			ClientPrice:     svc.ClientPrice,
			IsOriginal:      svc.IsOriginal,
		})
	}

	return &Response{
		UUID:            appt.UUID,
		StylistID:       appt.StylistID,
		ClientUUID:      appt.ClientUUID,
		ClientFirstName: appt.ClientFirstName,
		ClientLastName:  appt.ClientLastName,

		StartAt:         appt.StartAt,
		EndAt:           appt.EndAt(),
		DurationMinutes: appt.DurationMinutes(),
		Status:          string(appt.Status),

		Services: services,

		TotalClientPriceBeforeTax: prices.TotalClientPriceBeforeTax,
		TotalTax:                  prices.TotalTax,
		TotalCardFee:              prices.TotalCardFee,
		GrandTotal:                prices.GrandTotal,
		HasTaxIncluded:            prices.HasTaxIncluded,
		HasCardFeeIncluded:        prices.HasCardFeeIncluded,

		CreatedAt: appt.CreatedAt,
		UpdatedAt: appt.UpdatedAt,
	}
}
