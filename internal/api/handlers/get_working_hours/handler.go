package get_working_hours

import (
	"net/http"

	"github.com/m04kA/SMC-AppointmentService/internal/api/handlers"
	"github.com/m04kA/SMC-AppointmentService/internal/api/middleware"
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

// Handle GET /api/v1/stylist/working-hours
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	stylistID, ok := middleware.GetStylistID(r.Context())
	if !ok {
		handlers.RespondInternalError(w)
		return
	}

	result, err := h.service.GetWorkingHours(r.Context(), stylistID)
	if err != nil {
		h.logger.Error("GET /stylist/working-hours - Failed to get schedule: stylist_id=%d, error=%v", stylistID, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /stylist/working-hours - Schedule retrieved: stylist_id=%d", stylistID)
	handlers.RespondJSON(w, http.StatusOK, result)
}
