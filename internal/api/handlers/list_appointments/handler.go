package list_appointments

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-AppointmentService/internal/api/handlers"
	"github.com/m04kA/SMC-AppointmentService/internal/api/middleware"
	"github.com/m04kA/SMC-AppointmentService/internal/service/appointments"
)

const (
	msgInvalidQueryParams = "некорректные параметры запроса"
	msgInvalidPeriod      = "некорректный период: from должен быть раньше to"
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

// Handle GET /api/v1/appointments?from=...&to=...&include_cancelled=true&limit=50
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	stylistID, ok := middleware.GetStylistID(r.Context())
	if !ok {
		handlers.RespondInternalError(w)
		return
	}

	req, err := parseListRequest(stylistID, r.URL.Query())
	if err != nil {
		h.logger.Warn("GET /appointments - Invalid query params: stylist_id=%d, error=%v", stylistID, err)
		handlers.RespondBadRequest(w, msgInvalidQueryParams)
		return
	}

	result, err := h.service.List(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, appointments.ErrInvalidInput):
			h.logger.Warn("GET /appointments - Invalid period: stylist_id=%d, error=%v", stylistID, err)
			handlers.RespondBadRequest(w, msgInvalidPeriod)

		default:
			h.logger.Error("GET /appointments - Failed to list appointments: stylist_id=%d, error=%v", stylistID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /appointments - Appointments listed: stylist_id=%d, count=%d", stylistID, len(result.Appointments))
	handlers.RespondJSON(w, http.StatusOK, result)
}
