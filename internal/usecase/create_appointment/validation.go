package create_appointment

import (
	"fmt"
	"time"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.StylistID <= 0 {
		return fmt.Errorf("%w: stylistID must be positive", ErrInvalidInput)
	}

	if req.StartAt.IsZero() {
		return fmt.Errorf("%w: startAt is required", ErrInvalidInput)
	}

	// Пустой список услуг недопустим даже при force
	if len(req.Services) == 0 {
		return ErrServiceRequired
	}

	return nil
}

// validateNotInPast проверяет, что время начала не раньше текущего
// времени стилиста
func validateNotInPast(startAt, now time.Time) error {
	if startAt.Before(now) {
		return ErrAppointmentInThePast
	}
	return nil
}

// findConflicts отбирает записи, чьи окна пересекают окно
// [start, start + durationMinutes). Интервалы полуоткрытые: записи
// впритык друг к другу не конфликтуют.
func findConflicts(appointments []*domain.Appointment, start time.Time, durationMinutes int) []*domain.Appointment {
	conflicts := make([]*domain.Appointment, 0)
	for _, appt := range appointments {
		if appt.Overlaps(start, durationMinutes) {
			conflicts = append(conflicts, appt)
		}
	}
	return conflicts
}

// conflictWindow возвращает окно выборки записей для проверки
// пересечений. Суточного запаса в обе стороны достаточно: длительность
// записи ограничена одним рабочим днем.
func conflictWindow(start time.Time, durationMinutes int) (time.Time, time.Time) {
	from := start.Add(-24 * time.Hour)
	to := start.Add(time.Duration(durationMinutes)*time.Minute + 24*time.Hour)
	return from, to
}
