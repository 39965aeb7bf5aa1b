package list_appointments

import (
	"net/url"
	"strconv"
	"time"

	"github.com/m04kA/SMC-AppointmentService/internal/service/appointments/models"
)

// parseListRequest разбирает query-параметры списка записей.
// Поддерживаются from/to (RFC 3339), include_cancelled и limit.
func parseListRequest(stylistID int64, query url.Values) (*models.ListAppointmentsRequest, error) {
	req := &models.ListAppointmentsRequest{
		StylistID: stylistID,
	}

	if raw := query.Get("from"); raw != "" {
		from, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			return nil, err
		}
		req.From = &from
	}

	if raw := query.Get("to"); raw != "" {
		to, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			return nil, err
		}
		req.To = &to
	}

	req.IncludeCancelled = query.Get("include_cancelled") == "true"

	if raw := query.Get("limit"); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil {
			return nil, err
		}
		req.Limit = limit
	}

	return req, nil
}
