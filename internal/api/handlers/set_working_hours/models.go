package set_working_hours

import (
	"github.com/m04kA/SMC-AppointmentService/internal/service/settings/models"
)

// SetWorkingHoursRequest HTTP request model
type SetWorkingHoursRequest struct {
	Days []models.WorkingDayInput `json:"days"`
}

// ToServiceRequest конвертирует HTTP запрос в модель сервиса
func (r *SetWorkingHoursRequest) ToServiceRequest(stylistID int64) *models.SetWorkingHoursRequest {
	return &models.SetWorkingHoursRequest{
		StylistID: stylistID,
		Days:      r.Days,
	}
}
