package models

import (
	"github.com/google/uuid"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	"github.com/m04kA/SMC-AppointmentService/pkg/types"
)

// Request модели

// WorkingDayInput один день недели в запросе на настройку расписания
type WorkingDayInput struct {
	Weekday     int    `json:"weekday"` // ISO 1..7, понедельник == 1
	IsAvailable bool   `json:"isAvailable"`
	WorkStartAt string `json:"workStartAt,omitempty"` // "HH:MM", обязателен при isAvailable
	WorkEndAt   string `json:"workEndAt,omitempty"`
}

// SetWorkingHoursRequest запрос на настройку рабочего расписания
type SetWorkingHoursRequest struct {
	StylistID int64             `json:"stylistId"`
	Days      []WorkingDayInput `json:"days"`
}

// SetDiscountsRequest запрос на настройку скидок
type SetDiscountsRequest struct {
	StylistID int64 `json:"stylistId"`

	// WeekdayPercents проценты по дням недели, ISO 1..7
	WeekdayPercents map[int]int `json:"weekdayPercents"`

	FirstBookingPercent       int `json:"firstBookingPercent"`
	RebookWithin1WeekPercent  int `json:"rebookWithin1WeekPercent"`
	RebookWithin2WeeksPercent int `json:"rebookWithin2WeeksPercent"`
}

// ToDomain конвертирует запрос в domain модель, помечая настройки
// как сохраненные стилистом
func (r *SetDiscountsRequest) ToDomain() domain.StylistDiscounts {
	weekdays := make(map[domain.Weekday]int, 7)
	for day := domain.Monday; day <= domain.Sunday; day++ {
		weekdays[day] = domain.ClampPercent(r.WeekdayPercents[int(day)])
	}
	return domain.StylistDiscounts{
		StylistID:                 r.StylistID,
		WeekdayPercents:           weekdays,
		FirstBookingPercent:       domain.ClampPercent(r.FirstBookingPercent),
		RebookWithin1WeekPercent:  domain.ClampPercent(r.RebookWithin1WeekPercent),
		RebookWithin2WeeksPercent: domain.ClampPercent(r.RebookWithin2WeeksPercent),
		IsConfigured:              true,
	}
}

// ServiceInput одна услуга в запросе на настройку каталога
type ServiceInput struct {
	// UUID существующей услуги; пустой для создания новой
	UUID *uuid.UUID `json:"uuid,omitempty"`

	// TemplateUUID шаблон, из которого услуга создана (опционально)
	TemplateUUID *uuid.UUID `json:"templateUuid,omitempty"`

	Name            string  `json:"name"`
	Description     string  `json:"description,omitempty"`
	BasePrice       float64 `json:"basePrice"`
	DurationMinutes int     `json:"durationMinutes"`
	IsEnabled       bool    `json:"isEnabled"`
}

// UpsertServicesRequest запрос на пакетное сохранение услуг стилиста
type UpsertServicesRequest struct {
	StylistID int64          `json:"stylistId"`
	Services  []ServiceInput `json:"services"`
}

// Response модели

// WorkingDayResponse один день рабочего расписания.
// BookedTimeMinutes и BookedAppointmentsCount считаются по записям
// текущей недели в часовом поясе стилиста.
type WorkingDayResponse struct {
	Weekday     int    `json:"weekday"`
	WeekdayName string `json:"weekdayName"`
	IsAvailable bool   `json:"isAvailable"`
	WorkStartAt string `json:"workStartAt,omitempty"`
	WorkEndAt   string `json:"workEndAt,omitempty"`

	BookedTimeMinutes       int `json:"bookedTimeMinutes"`
	BookedAppointmentsCount int `json:"bookedAppointmentsCount"`
}

// WorkingHoursResponse рабочее расписание на всю неделю.
// Всегда содержит все 7 дней ISO недели.
type WorkingHoursResponse struct {
	Days []WorkingDayResponse `json:"days"`
}

// DiscountsResponse настройки скидок стилиста
type DiscountsResponse struct {
	WeekdayPercents map[int]int `json:"weekdayPercents"`

	FirstBookingPercent       int `json:"firstBookingPercent"`
	RebookWithin1WeekPercent  int `json:"rebookWithin1WeekPercent"`
	RebookWithin2WeeksPercent int `json:"rebookWithin2WeeksPercent"`

	IsConfigured bool `json:"isConfigured"`
}

// StylistServiceResponse услуга из каталога стилиста
type StylistServiceResponse struct {
	UUID              uuid.UUID `json:"uuid"`
	Name              string    `json:"name"`
	Description       string    `json:"description,omitempty"`
	BasePrice         float64   `json:"basePrice"`
	DurationMinutes   int       `json:"durationMinutes"`
	IsEnabled         bool      `json:"isEnabled"`
	ServiceOriginUUID uuid.UUID `json:"serviceOriginUuid"`
}

// ServiceListResponse каталог услуг стилиста
type ServiceListResponse struct {
	Services []StylistServiceResponse `json:"services"`
}

// Методы конвертации

// FromDomainWorkingDay конвертирует domain модель в DTO
func FromDomainWorkingDay(d domain.WorkingDay) WorkingDayResponse {
	resp := WorkingDayResponse{
		Weekday:     int(d.Weekday),
		WeekdayName: d.Weekday.String(),
		IsAvailable: d.IsAvailable,
	}
	if d.IsAvailable {
		resp.WorkStartAt = d.WorkStartAt.String()
		resp.WorkEndAt = d.WorkEndAt.String()
	}
	return resp
}

// FromDomainDiscounts конвертирует domain модель в DTO
func FromDomainDiscounts(d domain.StylistDiscounts) *DiscountsResponse {
	weekdays := make(map[int]int, 7)
	for day := domain.Monday; day <= domain.Sunday; day++ {
		weekdays[int(day)] = d.WeekdayPercents[day]
	}
	return &DiscountsResponse{
		WeekdayPercents:           weekdays,
		FirstBookingPercent:       d.FirstBookingPercent,
		RebookWithin1WeekPercent:  d.RebookWithin1WeekPercent,
		RebookWithin2WeeksPercent: d.RebookWithin2WeeksPercent,
		IsConfigured:              d.IsConfigured,
	}
}

// FromDomainService конвертирует domain модель в DTO
func FromDomainService(s *domain.StylistService) StylistServiceResponse {
	return StylistServiceResponse{
		UUID:              s.UUID,
		Name:              s.Name,
		Description:       s.Description,
		BasePrice:         s.BasePrice,
		DurationMinutes:   s.DurationMinutes,
		IsEnabled:         s.IsEnabled,
		ServiceOriginUUID: s.ServiceOriginUUID,
	}
}

// ToDomainWorkingDay конвертирует входной день в domain модель
func (i WorkingDayInput) ToDomainWorkingDay(stylistID int64) domain.WorkingDay {
	day := domain.WorkingDay{
		StylistID:   stylistID,
		Weekday:     domain.Weekday(i.Weekday),
		IsAvailable: i.IsAvailable,
	}
	if i.IsAvailable {
		day.WorkStartAt = types.TimeString(i.WorkStartAt)
		day.WorkEndAt = types.TimeString(i.WorkEndAt)
	}
	return day
}
