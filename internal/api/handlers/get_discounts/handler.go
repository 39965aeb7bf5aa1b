package get_discounts

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

// Handle GET /api/v1/stylist/discounts
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	stylistID, ok := middleware.GetStylistID(r.Context())
	if !ok {
		handlers.RespondInternalError(w)
		return
	}

	result, err := h.service.GetDiscounts(r.Context(), stylistID)
	if err != nil {
		h.logger.Error("GET /stylist/discounts - Failed to get discounts: stylist_id=%d, error=%v", stylistID, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /stylist/discounts - Discounts retrieved: stylist_id=%d, configured=%t", stylistID, result.IsConfigured)
	handlers.RespondJSON(w, http.StatusOK, result)
}
