package update_appointment

import (
	"time"

	"github.com/google/uuid"

	updateAppointment "github.com/m04kA/SMC-AppointmentService/internal/usecase/update_appointment"
)

// UpdateAppointmentRequest HTTP request model
type UpdateAppointmentRequest struct {
	Status string `json:"status"`

	// Services итоговый набор услуг; используется только при чекауте
	Services []uuid.UUID `json:"services,omitempty"`
}

// ServiceLineResponse снапшот услуги в HTTP ответе
type ServiceLineResponse struct {
	UUID            uuid.UUID `json:"uuid"`
	ServiceUUID     uuid.UUID `json:"serviceUuid"`
	ServiceName     string    `json:"serviceName"`
	DurationMinutes int       `json:"durationMinutes"`
	RegularPrice    float64   `json:"regularPrice"`
	ClientPrice     float64   `json:"clientPrice"`
	IsOriginal      bool      `json:"isOriginal"`
}

// AppointmentResponse HTTP response model
type AppointmentResponse struct {
	UUID            uuid.UUID  `json:"uuid"`
	StylistID       int64      `json:"stylistId"`
	ClientUUID      *uuid.UUID `json:"clientUuid,omitempty"`
	ClientFirstName string     `json:"clientFirstName"`
	ClientLastName  string     `json:"clientLastName"`

	StartAt         string `json:"startAt"`
	EndAt           string `json:"endAt"`
	DurationMinutes int    `json:"durationMinutes"`
	Status          string `json:"status"`

	Services []ServiceLineResponse `json:"services"`

	TotalClientPriceBeforeTax float64 `json:"totalClientPriceBeforeTax"`
	TotalTax                  float64 `json:"totalTax"`
	TotalCardFee              float64 `json:"totalCardFee"`
	GrandTotal                float64 `json:"grandTotal"`
	HasTaxIncluded            bool    `json:"hasTaxIncluded"`
	HasCardFeeIncluded        bool    `json:"hasCardFeeIncluded"`

	CreatedAt string `json:"createdAt"`
	UpdatedAt string `json:"updatedAt"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *UpdateAppointmentRequest) ToUseCaseRequest(stylistID int64, apptUUID uuid.UUID) *updateAppointment.Request {
	return &updateAppointment.Request{
		StylistID:       stylistID,
		AppointmentUUID: apptUUID,
		Status:          r.Status,
		Services:        r.Services,
		UpdatedBy:       stylistID,
	}
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *updateAppointment.Response) *AppointmentResponse {
	services := make([]ServiceLineResponse, 0, len(resp.Services))
	for _, svc := range resp.Services {
		services = append(services, ServiceLineResponse{
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
		UUID:            resp.UUID,
		StylistID:       resp.StylistID,
		ClientUUID:      resp.ClientUUID,
		ClientFirstName: resp.ClientFirstName,
		ClientLastName:  resp.ClientLastName,

		StartAt:         resp.StartAt.Format(time.RFC3339),
		EndAt:           resp.EndAt.Format(time.RFC3339),
		DurationMinutes: resp.DurationMinutes,
		Status:          resp.Status,

		Services: services,

		TotalClientPriceBeforeTax: resp.TotalClientPriceBeforeTax,
		TotalTax:                  resp.TotalTax,
		TotalCardFee:              resp.TotalCardFee,
		GrandTotal:                resp.GrandTotal,
		HasTaxIncluded:            resp.HasTaxIncluded,
		HasCardFeeIncluded:        resp.HasCardFeeIncluded,

		CreatedAt: resp.CreatedAt.Format(time.RFC3339),
		UpdatedAt: resp.UpdatedAt.Format(time.RFC3339),
	}
}
