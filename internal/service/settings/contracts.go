package settings

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
)

// ScheduleRepository интерфейс репозитория рабочего расписания
type ScheduleRepository interface {
	GetWeek(ctx context.Context, stylistID int64) ([]*domain.WorkingDay, error)
	UpsertDay(ctx context.Context, day domain.WorkingDay) error
}

// AppointmentRepository интерфейс репозитория записей для загрузки
// занятого времени текущей недели
type AppointmentRepository interface {
	GetByStylistWithFilter(ctx context.Context, filter domain.AppointmentsFilter) ([]*domain.Appointment, error)
}

// StylistRepository интерфейс репозитория профилей стилистов
type StylistRepository interface {
	GetProfile(ctx context.Context, stylistID int64) (*domain.StylistProfile, error)
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// RealTimeProvider реализация TimeProvider на основе системных часов
type RealTimeProvider struct{}

func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}

// DiscountRepository интерфейс репозитория настроек скидок
type DiscountRepository interface {
	Get(ctx context.Context, stylistID int64) (*domain.StylistDiscounts, error)
	Upsert(ctx context.Context, d domain.StylistDiscounts) error
}

// CatalogRepository интерфейс репозитория каталога услуг
type CatalogRepository interface {
	GetActiveByStylist(ctx context.Context, stylistID int64) ([]*domain.StylistService, error)
	GetActiveByUUID(ctx context.Context, stylistID int64, serviceUUID uuid.UUID) (*domain.StylistService, error)
	Create(ctx context.Context, svc *domain.StylistService) (*domain.StylistService, error)
	Update(ctx context.Context, svc *domain.StylistService) (*domain.StylistService, error)
	SoftDelete(ctx context.Context, stylistID int64, serviceUUID uuid.UUID) error
	GetTemplateByUUID(ctx context.Context, templateUUID uuid.UUID) (*domain.ServiceTemplate, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
