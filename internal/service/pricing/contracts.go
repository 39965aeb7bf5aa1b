package pricing

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
)

// DiscountRepository интерфейс репозитория настроек скидок
type DiscountRepository interface {
	Get(ctx context.Context, stylistID int64) (*domain.StylistDiscounts, error)
}

// StylistRepository интерфейс репозитория профилей стилистов
type StylistRepository interface {
	GetProfile(ctx context.Context, stylistID int64) (*domain.StylistProfile, error)
}

// AppointmentRepository интерфейс репозитория записей для истории визитов
type AppointmentRepository interface {
	GetLastClientAppointment(ctx context.Context, stylistID int64, clientUUID uuid.UUID, before time.Time) (*domain.Appointment, error)
	HasClientAppointments(ctx context.Context, stylistID int64, clientUUID uuid.UUID) (bool, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
