package preview_appointment

import (
	"time"

	"github.com/google/uuid"

	previewAppointment "github.com/m04kA/SMC-AppointmentService/internal/usecase/preview_appointment"
)

// PreviewAppointmentRequest HTTP request model
type PreviewAppointmentRequest struct {
	ClientUUID *uuid.UUID  `json:"clientUuid,omitempty"`
	StartAt    string      `json:"startAt"` // RFC 3339
	Services   []uuid.UUID `json:"services"`

	// Переопределения настроек профиля; отсутствующее поле означает
	// настройки профиля
	HasTaxIncluded     *bool `json:"hasTaxIncluded,omitempty"`
	HasCardFeeIncluded *bool `json:"hasCardFeeIncluded,omitempty"`
}

// ServiceLineResponse расчет одной услуги
type ServiceLineResponse struct {
	ServiceUUID     uuid.UUID `json:"serviceUuid"`
	ServiceName     string    `json:"serviceName"`
	DurationMinutes int       `json:"durationMinutes"`
	RegularPrice    float64   `json:"regularPrice"`
	ClientPrice     float64   `json:"clientPrice"`
}

// ConflictResponse пересекающаяся запись
type ConflictResponse struct {
	UUID    uuid.UUID `json:"uuid"`
	StartAt string    `json:"startAt"`
	EndAt   string    `json:"endAt"`
	Status  string    `json:"status"`
}

// PreviewResponse HTTP response model
type PreviewResponse struct {
	StartAt         string `json:"startAt"`
	EndAt           string `json:"endAt"`
	DurationMinutes int    `json:"durationMinutes"`

	Services []ServiceLineResponse `json:"services"`

	DiscountPercent           int     `json:"discountPercent"`
	TotalClientPriceBeforeTax float64 `json:"totalClientPriceBeforeTax"`
	TotalTax                  float64 `json:"totalTax"`
	TotalCardFee              float64 `json:"totalCardFee"`
	GrandTotal                float64 `json:"grandTotal"`
	HasTaxIncluded            bool    `json:"hasTaxIncluded"`
	HasCardFeeIncluded        bool    `json:"hasCardFeeIncluded"`

	Conflicts []ConflictResponse `json:"conflicts"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *PreviewAppointmentRequest) ToUseCaseRequest(stylistID int64) (*previewAppointment.Request, error) {
	startAt, err := time.Parse(time.RFC3339, r.StartAt)
	if err != nil {
		return nil, err
	}

	return &previewAppointment.Request{
		StylistID:          stylistID,
		ClientUUID:         r.ClientUUID,
		StartAt:            startAt,
		Services:           r.Services,
		HasTaxIncluded:     r.HasTaxIncluded,
		HasCardFeeIncluded: r.HasCardFeeIncluded,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *previewAppointment.Response) *PreviewResponse {
	services := make([]ServiceLineResponse, 0, len(resp.Services))
	for _, svc := range resp.Services {
		services = append(services, ServiceLineResponse{
			ServiceUUID:     svc.ServiceUUID,
			ServiceName:     svc.ServiceName,
			DurationMinutes: svc.DurationMinutes,
			RegularPrice:    svc.RegularPrice,
			ClientPrice:     svc.ClientPrice,
		})
	}

	conflicts := make([]ConflictResponse, 0, len(resp.Conflicts))
	for _, conflict := range resp.Conflicts {
		conflicts = append(conflicts, ConflictResponse{
			UUID:    conflict.UUID,
			StartAt: conflict.StartAt.Format(time.RFC3339),
			EndAt:   conflict.EndAt.Format(time.RFC3339),
			Status:  conflict.Status,
		})
	}

	return &PreviewResponse{
		StartAt:         resp.StartAt.Format(time.RFC3339),
		EndAt:           resp.EndAt.Format(time.RFC3339),
		DurationMinutes: resp.DurationMinutes,

		Services: services,

		DiscountPercent:           resp.DiscountPercent,
		TotalClientPriceBeforeTax: resp.TotalClientPriceBeforeTax,
		TotalTax:                  resp.TotalTax,
		TotalCardFee:              resp.TotalCardFee,
		GrandTotal:                resp.GrandTotal,
		HasTaxIncluded:            resp.HasTaxIncluded,
		HasCardFeeIncluded:        resp.HasCardFeeIncluded,

		Conflicts: conflicts,
	}
}
