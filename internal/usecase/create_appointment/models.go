package create_appointment

import (
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
)

// Request модель запроса на создание записи
type Request struct {
	StylistID  int64       // ID стилиста
	ClientUUID *uuid.UUID  // Клиент из справочника (опционально, walk-in без него)
	StartAt    time.Time   // Время начала записи
	Services   []uuid.UUID // Услуги из каталога стилиста

	// Имена для walk-in клиентов без записи в справочнике
	ClientFirstName string
	ClientLastName  string

	// Force административный обход проверок прошедшего времени,
	// рабочих часов и пересечений
	Force bool

	CreatedBy int64 // ID стилиста, создавшего запись
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

// Response модель ответа с созданной записью
type Response struct {
	UUID       uuid.UUID
	StylistID  int64
	ClientUUID *uuid.UUID

	// Денормализованные имена клиента
	ClientFirstName string
	ClientLastName  string

	StartAt         time.Time
	EndAt           time.Time
	DurationMinutes int
	Status          string

	Services []ServiceLine

	DiscountPercent           int
	TotalClientPriceBeforeTax float64
	TotalTax                  float64
	TotalCardFee              float64
	GrandTotal                float64
	HasTaxIncluded            bool
	HasCardFeeIncluded        bool

	CreatedAt time.Time
	UpdatedAt time.Time
}

// toResponse конвертирует созданную запись и расчет цен в ответ
func toResponse(appt *domain.Appointment, discountPercent int, prices domain.AppointmentPrices) *Response {
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

		DiscountPercent:           discountPercent,
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
