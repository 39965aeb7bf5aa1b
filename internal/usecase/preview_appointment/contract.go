package preview_appointment

import (
	"context"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	pricingModels "github.com/m04kA/SMC-AppointmentService/internal/service/pricing/models"
)

// AppointmentRepository интерфейс репозитория записей
type AppointmentRepository interface {
	GetByStylistWithFilter(ctx context.Context, filter domain.AppointmentsFilter) ([]*domain.Appointment, error)
}

// CatalogRepository интерфейс репозитория каталога услуг
type CatalogRepository interface {
	GetActiveByUUID(ctx context.Context, stylistID int64, serviceUUID uuid.UUID) (*domain.StylistService, error)
}

// StylistRepository интерфейс репозитория профилей стилистов
type StylistRepository interface {
	GetProfile(ctx context.Context, stylistID int64) (*domain.StylistProfile, error)
}

// PricingService интерфейс сервиса расчета стоимости
type PricingService interface {
	Quote(ctx context.Context, req *pricingModels.QuoteRequest) (*pricingModels.Quote, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
