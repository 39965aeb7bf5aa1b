package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
)

// Request модели

// ListAppointmentsRequest запрос на получение записей стилиста
type ListAppointmentsRequest struct {
	StylistID        int64      `json:"stylistId"`
	From             *time.Time `json:"from,omitempty"`             // Начало периода (опционально)
	To               *time.Time `json:"to,omitempty"`               // Конец периода (опционально)
	IncludeCancelled bool       `json:"includeCancelled,omitempty"` // Включить отмененные записи
	Limit            int        `json:"limit,omitempty"`
}

// ToDomainFilter конвертирует request в domain фильтр
func (r *ListAppointmentsRequest) ToDomainFilter() domain.AppointmentsFilter {
	limit := r.Limit
	if limit <= 0 || limit > domain.MaxAppointmentsPerRequest {
		limit = domain.MaxAppointmentsPerRequest
	}
	return domain.AppointmentsFilter{
		StylistID:        r.StylistID,
		From:             r.From,
		To:               r.To,
		IncludeCancelled: r.IncludeCancelled,
		Limit:            limit,
	}
}

// Response модели

// AppointmentServiceResponse снапшот услуги в составе записи
type AppointmentServiceResponse struct {
	UUID            uuid.UUID `json:"uuid"`
	ServiceUUID     uuid.UUID `json:"serviceUuid"`
	ServiceName     string    `json:"serviceName"`
	DurationMinutes int       `json:"durationMinutes"`
	RegularPrice    float64   `json:"regularPrice"`
	ClientPrice     float64   `json:"clientPrice"`
	IsOriginal      bool      `json:"isOriginal"`
}

// AppointmentResponse ответ с данными записи
type AppointmentResponse struct {
	UUID       uuid.UUID  `json:"uuid"`
	StylistID  int64      `json:"stylistId"`
	ClientUUID *uuid.UUID `json:"clientUuid,omitempty"`

	// Денормализованные имена клиента на момент создания записи
	ClientFirstName string `json:"clientFirstName"`
	ClientLastName  string `json:"clientLastName"`

	StartAt         time.Time `json:"startAt"`
	EndAt           time.Time `json:"endAt"`
	DurationMinutes int       `json:"durationMinutes"`
	Status          string    `json:"status"`

	Services []AppointmentServiceResponse `json:"services"`

	TotalClientPriceBeforeTax float64 `json:"totalClientPriceBeforeTax"`
	TotalTax                  float64 `json:"totalTax"`
	TotalCardFee              float64 `json:"totalCardFee"`
	GrandTotal                float64 `json:"grandTotal"`
	HasTaxIncluded            bool    `json:"hasTaxIncluded"`
	HasCardFeeIncluded        bool    `json:"hasCardFeeIncluded"`

	CreatedBy int64     `json:"createdBy"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// AppointmentListResponse ответ со списком записей
type AppointmentListResponse struct {
	Appointments []AppointmentResponse `json:"appointments"`
}

// TodayResponse сводка дня стилиста
type TodayResponse struct {
	Appointments []AppointmentResponse `json:"appointments"`

	TodayVisitsCount int     `json:"todayVisitsCount"`
	TodayVisitsValue float64 `json:"todayVisitsValue"`
	WeekVisitsCount  int     `json:"weekVisitsCount"`
	WeekVisitsValue  float64 `json:"weekVisitsValue"`
}

// Методы конвертации

// FromDomainAppointment конвертирует domain модель в DTO.
// Итоговые суммы считаются заранее по настройкам профиля стилиста.
func FromDomainAppointment(a *domain.Appointment, prices domain.AppointmentPrices) *AppointmentResponse {
	if a == nil {
		return nil
	}

	services := make([]AppointmentServiceResponse, 0, len(a.Services))
	for _, svc := range a.Services {
		services = append(services, AppointmentServiceResponse{
			UUID:            svc.UUID,
			ServiceUUID:     svc.ServiceUUID,
			ServiceName:     svc.ServiceName,
			DurationMinutes: svc.DurationMinutes,
			RegularPrice:    svc.RegularPrice,
			ClientPrice:     svc.ClientPrice,
			IsOriginal:      svc.IsOriginal,
		})
	}

	return &AppointmentResponse{
		UUID:            a.UUID,
		StylistID:       a.StylistID,
		ClientUUID:      a.ClientUUID,
		ClientFirstName: a.ClientFirstName,
		ClientLastName:  a.ClientLastName,

		StartAt:         a.StartAt,
		EndAt:           a.EndAt(),
		DurationMinutes: a.DurationMinutes(),
		Status:          string(a.Status),

		Services: services,

		TotalClientPriceBeforeTax: prices.TotalClientPriceBeforeTax,
		TotalTax:                  prices.TotalTax,
		TotalCardFee:              prices.TotalCardFee,
		GrandTotal:                prices.GrandTotal,
		HasTaxIncluded:            prices.HasTaxIncluded,
		HasCardFeeIncluded:        prices.HasCardFeeIncluded,

		CreatedBy: a.CreatedBy,
		CreatedAt: a.CreatedAt,
		UpdatedAt: a.UpdatedAt,
	}
}
