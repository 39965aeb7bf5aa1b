package preview_appointment

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-AppointmentService/internal/api/handlers"
	"github.com/m04kA/SMC-AppointmentService/internal/api/middleware"
	previewAppointment "github.com/m04kA/SMC-AppointmentService/internal/usecase/preview_appointment"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidStartAt     = "некорректный формат времени начала, ожидается RFC 3339"
	msgServiceNotFound    = "услуга не найдена"
	msgServiceRequired    = "требуется хотя бы одна услуга"
)

type Handler struct {
	useCase PreviewAppointmentUseCase
	logger  Logger
}

func NewHandler(useCase PreviewAppointmentUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/appointments/preview
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	stylistID, ok := middleware.GetStylistID(r.Context())
	if !ok {
		handlers.RespondInternalError(w)
		return
	}

	var req PreviewAppointmentRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /appointments/preview - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest(stylistID)
	if err != nil {
		h.logger.Warn("POST /appointments/preview - Failed to parse startAt: %v", err)
		handlers.RespondBadRequest(w, msgInvalidStartAt)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, previewAppointment.ErrServiceDoesNotExist):
			h.logger.Warn("POST /appointments/preview - Service not found: stylist_id=%d", stylistID)
			handlers.RespondNotFound(w, msgServiceNotFound)

		case errors.Is(err, previewAppointment.ErrServiceRequired):
			h.logger.Warn("POST /appointments/preview - No services: stylist_id=%d", stylistID)
			handlers.RespondBadRequest(w, msgServiceRequired)

		case errors.Is(err, previewAppointment.ErrInvalidInput):
			h.logger.Warn("POST /appointments/preview - Invalid input: stylist_id=%d, error=%v", stylistID, err)
			handlers.RespondBadRequest(w, msgInvalidRequestBody)

		default:
			h.logger.Error("POST /appointments/preview - Failed to preview: stylist_id=%d, error=%v", stylistID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /appointments/preview - Preview built: stylist_id=%d, conflicts=%d", stylistID, len(result.Conflicts))
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
