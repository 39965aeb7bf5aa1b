package get_appointment

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

// Handle GET /api/v1/appointments/{appointmentUuid}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	apptUUID, err := uuid.Parse(vars["appointmentUuid"])
	if err != nil {
		h.logger.Warn("GET /appointments/{uuid} - Invalid appointment UUID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidAppointmentUUID)
		return
	}

	stylistID, ok := middleware.GetStylistID(r.Context())
	if !ok {
		handlers.RespondInternalError(w)
		return
	}

	appointment, err := h.service.GetByUUID(r.Context(), stylistID, apptUUID)
	if err != nil {
		switch {
		case errors.Is(err, appointments.ErrAppointmentNotFound):
			h.logger.Warn("GET /appointments/{uuid} - Appointment not found: uuid=%s, stylist_id=%d", apptUUID, stylistID)
			handlers.RespondNotFound(w, msgNotFound)

		default:
			h.logger.Error("GET /appointments/{uuid} - Failed to get appointment: uuid=%s, error=%v", apptUUID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /appointments/{uuid} - Appointment retrieved successfully: uuid=%s, stylist_id=%d", apptUUID, stylistID)
	handlers.RespondJSON(w, http.StatusOK, appointment)
}
