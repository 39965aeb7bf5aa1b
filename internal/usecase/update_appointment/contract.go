package update_appointment

import (
	"context"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	pricingModels "github.com/m04kA/SMC-AppointmentService/internal/service/pricing/models"
)

// AppointmentRepository интерфейс репозитория записей
type AppointmentRepository interface {
	GetByUUID(ctx context.Context, stylistID int64, apptUUID uuid.UUID) (*domain.Appointment, error)
	UpdateStatus(ctx context.Context, id int64, status domain.AppointmentStatus) error
	ReplaceServices(ctx context.Context, appointmentID int64, services []domain.AppointmentService) error
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

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
