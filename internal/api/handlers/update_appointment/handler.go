package update_appointment

import (
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-AppointmentService/internal/api/handlers"
	"github.com/m04kA/SMC-AppointmentService/internal/api/middleware"
	updateAppointment "github.com/m04kA/SMC-AppointmentService/internal/usecase/update_appointment"
)

const (
	msgInvalidAppointmentUUID = "некорректный UUID записи"
	msgInvalidRequestBody     = "некорректное тело запроса"
	msgNotFound               = "запись не найдена"
	msgStatusNotAllowed       = "переход в указанный статус запрещен"
	msgServiceNotFound        = "услуга не найдена"
	msgServiceRequired        = "для чекаута требуется хотя бы одна услуга"
)

type Handler struct {
	useCase UpdateAppointmentUseCase
	logger  Logger
}

func NewHandler(useCase UpdateAppointmentUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle PATCH /api/v1/appointments/{appointmentUuid}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	apptUUID, err := uuid.Parse(vars["appointmentUuid"])
	if err != nil {
		h.logger.Warn("PATCH /appointments/{uuid} - Invalid appointment UUID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidAppointmentUUID)
		return
	}

	stylistID, ok := middleware.GetStylistID(r.Context())
	if !ok {
		handlers.RespondInternalError(w)
		return
	}

	var req UpdateAppointmentRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PATCH /appointments/{uuid} - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.useCase.Execute(r.Context(), req.ToUseCaseRequest(stylistID, apptUUID))
	if err != nil {
		switch {
		case errors.Is(err, updateAppointment.ErrAppointmentNotFound):
			h.logger.Warn("PATCH /appointments/{uuid} - Appointment not found: uuid=%s, stylist_id=%d", apptUUID, stylistID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, updateAppointment.ErrStatusNotAllowed):
			h.logger.Warn("PATCH /appointments/{uuid} - Status not allowed: uuid=%s, status=%s", apptUUID, req.Status)
			handlers.RespondForbidden(w, msgStatusNotAllowed)

		case errors.Is(err, updateAppointment.ErrServiceRequired):
			h.logger.Warn("PATCH /appointments/{uuid} - Checkout without services: uuid=%s", apptUUID)
			handlers.RespondBadRequest(w, msgServiceRequired)

		case errors.Is(err, updateAppointment.ErrServiceDoesNotExist):
			h.logger.Warn("PATCH /appointments/{uuid} - Service not found: uuid=%s", apptUUID)
			handlers.RespondNotFound(w, msgServiceNotFound)

		case errors.Is(err, updateAppointment.ErrInvalidInput):
			h.logger.Warn("PATCH /appointments/{uuid} - Invalid input: uuid=%s, error=%v", apptUUID, err)
			handlers.RespondBadRequest(w, msgInvalidRequestBody)

		default:
			h.logger.Error("PATCH /appointments/{uuid} - Failed to update appointment: uuid=%s, error=%v", apptUUID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PATCH /appointments/{uuid} - Appointment updated: uuid=%s, status=%s, stylist_id=%d",
		apptUUID, result.Status, stylistID)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
