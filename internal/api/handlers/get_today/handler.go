package get_today

import (
	"net/http"

	"github.com/m04kA/SMC-AppointmentService/internal/api/handlers"
	"github.com/m04kA/SMC-AppointmentService/internal/api/middleware"
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

// Handle GET /api/v1/stylist/today
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	stylistID, ok := middleware.GetStylistID(r.Context())
	if !ok {
		handlers.RespondInternalError(w)
		return
	}

	result, err := h.service.Today(r.Context(), stylistID)
	if err != nil {
		h.logger.Error("GET /stylist/today - Failed to build today summary: stylist_id=%d, error=%v", stylistID, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /stylist/today - Summary built: stylist_id=%d, today_visits=%d", stylistID, result.TodayVisitsCount)
	handlers.RespondJSON(w, http.StatusOK, result)
}
