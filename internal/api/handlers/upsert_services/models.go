package upsert_services

import (
	"github.com/m04kA/SMC-AppointmentService/internal/service/settings/models"
)

// UpsertServicesRequest HTTP request model
type UpsertServicesRequest struct {
	Services []models.ServiceInput `json:"services"`
}

// ToServiceRequest конвертирует HTTP запрос в модель сервиса
func (r *UpsertServicesRequest) ToServiceRequest(stylistID int64) *models.UpsertServicesRequest {
	return &models.UpsertServicesRequest{
		StylistID: stylistID,
		Services:  r.Services,
	}
}
