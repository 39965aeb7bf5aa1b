package middleware

import (
	"context"
	"net/http"
	"strconv"

	"github.com/m04kA/SMC-AppointmentService/internal/api/handlers"
)

type contextKey string

const stylistIDKey contextKey = "stylistID"

const msgMissingStylistID = "требуется заголовок X-Stylist-ID"

// Auth проверяет заголовок X-Stylist-ID и кладет идентификатор стилиста
// в контекст запроса
func Auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw := r.Header.Get("X-Stylist-ID")
		if raw == "" {
			handlers.RespondUnauthorized(w, msgMissingStylistID)
			return
		}

		stylistID, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || stylistID <= 0 {
			handlers.RespondUnauthorized(w, msgMissingStylistID)
			return
		}

		ctx := context.WithValue(r.Context(), stylistIDKey, stylistID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// GetStylistID извлекает идентификатор стилиста из контекста запроса
func GetStylistID(ctx context.Context) (int64, bool) {
	stylistID, ok := ctx.Value(stylistIDKey).(int64)
	return stylistID, ok
}
