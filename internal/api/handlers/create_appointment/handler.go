package create_appointment

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-AppointmentService/internal/api/handlers"
	"github.com/m04kA/SMC-AppointmentService/internal/api/middleware"
	createAppointment "github.com/m04kA/SMC-AppointmentService/internal/usecase/create_appointment"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidStartAt     = "некорректный формат времени начала, ожидается RFC 3339"
	msgAppointmentInPast  = "время начала записи уже прошло"
	msgOutsideHours       = "запись не помещается в рабочие часы"
	msgIntersection       = "запись пересекается с существующей"
	msgServiceNotFound    = "услуга не найдена"
	msgServiceRequired    = "требуется хотя бы одна услуга"
	msgClientNotFound     = "клиент не найден"
)

type Handler struct {
	useCase CreateAppointmentUseCase
	logger  Logger
}

func NewHandler(useCase CreateAppointmentUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/appointments?force_start=true
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	stylistID, ok := middleware.GetStylistID(r.Context())
	if !ok {
		handlers.RespondInternalError(w)
		return
	}

	var req CreateAppointmentRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /appointments - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	force := r.URL.Query().Get("force_start") == "true"

	useCaseReq, err := req.ToUseCaseRequest(stylistID, force)
	if err != nil {
		h.logger.Warn("POST /appointments - Failed to parse startAt: %v", err)
		handlers.RespondBadRequest(w, msgInvalidStartAt)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, createAppointment.ErrAppointmentInThePast):
			h.logger.Warn("POST /appointments - Start in the past: stylist_id=%d", stylistID)
			handlers.RespondBadRequest(w, msgAppointmentInPast)

		case errors.Is(err, createAppointment.ErrOutsideWorkingHours):
			h.logger.Warn("POST /appointments - Outside working hours: stylist_id=%d", stylistID)
			handlers.RespondBadRequest(w, msgOutsideHours)

		case errors.Is(err, createAppointment.ErrAppointmentIntersection):
			h.logger.Warn("POST /appointments - Intersection: stylist_id=%d", stylistID)
			handlers.RespondError(w, http.StatusConflict, msgIntersection)

		case errors.Is(err, createAppointment.ErrServiceDoesNotExist):
			h.logger.Warn("POST /appointments - Service not found: stylist_id=%d", stylistID)
			handlers.RespondNotFound(w, msgServiceNotFound)

		case errors.Is(err, createAppointment.ErrServiceRequired):
			h.logger.Warn("POST /appointments - No services: stylist_id=%d", stylistID)
			handlers.RespondBadRequest(w, msgServiceRequired)

		case errors.Is(err, createAppointment.ErrClientDoesNotExist):
			h.logger.Warn("POST /appointments - Client not found: stylist_id=%d", stylistID)
			handlers.RespondNotFound(w, msgClientNotFound)

		case errors.Is(err, createAppointment.ErrInvalidInput):
			h.logger.Warn("POST /appointments - Invalid input: stylist_id=%d, error=%v", stylistID, err)
			handlers.RespondBadRequest(w, msgInvalidRequestBody)

		default:
			h.logger.Error("POST /appointments - Failed to create appointment: stylist_id=%d, error=%v", stylistID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /appointments - Appointment created successfully: uuid=%s, stylist_id=%d", result.UUID, stylistID)
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result))
}
