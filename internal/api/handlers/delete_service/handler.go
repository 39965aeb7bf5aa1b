package delete_service

import (
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-AppointmentService/internal/api/handlers"
	"github.com/m04kA/SMC-AppointmentService/internal/api/middleware"
	"github.com/m04kA/SMC-AppointmentService/internal/service/settings"
)

const (
	msgInvalidServiceUUID = "некорректный UUID услуги"
	msgServiceNotFound    = "услуга не найдена"
)

type Handler struct {
	service SettingsService
	logger  Logger
}

func NewHandler(service SettingsService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle DELETE /api/v1/stylist/services/{serviceUuid}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	serviceUUID, err := uuid.Parse(vars["serviceUuid"])
	if err != nil {
		h.logger.Warn("DELETE /stylist/services/{uuid} - Invalid service UUID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidServiceUUID)
		return
	}

	stylistID, ok := middleware.GetStylistID(r.Context())
	if !ok {
		handlers.RespondInternalError(w)
		return
	}

	if err := h.service.DeleteService(r.Context(), stylistID, serviceUUID); err != nil {
		switch {
		case errors.Is(err, settings.ErrServiceNotFound):
			h.logger.Warn("DELETE /stylist/services/{uuid} - Service not found: uuid=%s, stylist_id=%d", serviceUUID, stylistID)
			handlers.RespondNotFound(w, msgServiceNotFound)

		default:
			h.logger.Error("DELETE /stylist/services/{uuid} - Failed to delete service: uuid=%s, error=%v", serviceUUID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("DELETE /stylist/services/{uuid} - Service deleted: uuid=%s, stylist_id=%d", serviceUUID, stylistID)
	w.WriteHeader(http.StatusNoContent)
}
