package cancel_appointment

import (
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-AppointmentService/internal/api/handlers"
	"github.com/m04kA/SMC-AppointmentService/internal/api/middleware"
	"github.com/m04kA/SMC-AppointmentService/internal/service/appointments"
)

const (
	msgInvalidAppointmentUUID = "некорректный UUID записи"
	msgNotFound               = "запись не найдена"
	msgCannotCancel           = "запись уже находится в конечном статусе"
)

type Handler struct {
	service AppointmentService
	logger  Logger
}

func NewHandler(service AppointmentService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle DELETE /api/v1/appointments/{appointmentUuid}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	apptUUID, err := uuid.Parse(vars["appointmentUuid"])
	if err != nil {
		h.logger.Warn("DELETE /appointments/{uuid} - Invalid appointment UUID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidAppointmentUUID)
		return
	}

	stylistID, ok := middleware.GetStylistID(r.Context())
	if !ok {
		handlers.RespondInternalError(w)
		return
	}

	result, err := h.service.Cancel(r.Context(), stylistID, apptUUID)
	if err != nil {
		switch {
		case errors.Is(err, appointments.ErrAppointmentNotFound):
			h.logger.Warn("DELETE /appointments/{uuid} - Appointment not found: uuid=%s, stylist_id=%d", apptUUID, stylistID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, appointments.ErrCannotCancel):
			h.logger.Warn("DELETE /appointments/{uuid} - Already terminal: uuid=%s, stylist_id=%d", apptUUID, stylistID)
			handlers.RespondError(w, http.StatusConflict, msgCannotCancel)

		default:
			h.logger.Error("DELETE /appointments/{uuid} - Failed to cancel appointment: uuid=%s, error=%v", apptUUID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("DELETE /appointments/{uuid} - Appointment cancelled: uuid=%s, stylist_id=%d", apptUUID, stylistID)
	handlers.RespondJSON(w, http.StatusOK, result)
}
