package create_appointment

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	"github.com/m04kA/SMC-AppointmentService/internal/integrations/clientservice"
	pricingModels "github.com/m04kA/SMC-AppointmentService/internal/service/pricing/models"
)

// AppointmentRepository интерфейс репозитория записей
type AppointmentRepository interface {
	CreateWithServices(ctx context.Context, appt *domain.Appointment) (*domain.Appointment, error)
	GetByStylistWithFilter(ctx context.Context, filter domain.AppointmentsFilter) ([]*domain.Appointment, error)
}

// CatalogRepository интерфейс репозитория каталога услуг
type CatalogRepository interface {
	GetActiveByUUID(ctx context.Context, stylistID int64, serviceUUID uuid.UUID) (*domain.StylistService, error)
}

// ScheduleRepository интерфейс репозитория рабочего расписания
type ScheduleRepository interface {
	GetDay(ctx context.Context, stylistID int64, weekday domain.Weekday) (*domain.WorkingDay, error)
}

// StylistRepository интерфейс репозитория профилей стилистов
type StylistRepository interface {
	GetProfile(ctx context.Context, stylistID int64) (*domain.StylistProfile, error)
}

// PricingService интерфейс сервиса расчета стоимости
type PricingService interface {
	Quote(ctx context.Context, req *pricingModels.QuoteRequest) (*pricingModels.Quote, error)
}

// ClientServiceClient интерфейс клиента для ClientService
type ClientServiceClient interface {
	GetClientWithGracefulDegradation(ctx context.Context, clientUUID uuid.UUID) (*clientservice.ClientProfile, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
