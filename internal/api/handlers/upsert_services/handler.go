package upsert_services

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-AppointmentService/internal/api/handlers"
	"github.com/m04kA/SMC-AppointmentService/internal/api/middleware"
	"github.com/m04kA/SMC-AppointmentService/internal/service/settings"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidServiceData = "некорректные данные услуги"
	msgServiceNotFound    = "услуга не найдена"
	msgTemplateNotFound   = "шаблон услуги не найден"
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

// Handle POST /api/v1/stylist/services
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	stylistID, ok := middleware.GetStylistID(r.Context())
	if !ok {
		handlers.RespondInternalError(w)
		return
	}

	var req UpsertServicesRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /stylist/services - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.UpsertServices(r.Context(), req.ToServiceRequest(stylistID))
	if err != nil {
		switch {
		case errors.Is(err, settings.ErrServiceNotFound):
			h.logger.Warn("POST /stylist/services - Service not found: stylist_id=%d", stylistID)
			handlers.RespondNotFound(w, msgServiceNotFound)

		case errors.Is(err, settings.ErrTemplateNotFound):
			h.logger.Warn("POST /stylist/services - Template not found: stylist_id=%d", stylistID)
			handlers.RespondNotFound(w, msgTemplateNotFound)

		case errors.Is(err, settings.ErrInvalidInput):
			h.logger.Warn("POST /stylist/services - Invalid service data: stylist_id=%d, error=%v", stylistID, err)
			handlers.RespondBadRequest(w, msgInvalidServiceData)

		default:
			h.logger.Error("POST /stylist/services - Failed to save services: stylist_id=%d, error=%v", stylistID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /stylist/services - Services saved: stylist_id=%d, count=%d", stylistID, len(result.Services))
	handlers.RespondJSON(w, http.StatusOK, result)
}
