package preview_appointment

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	catalogRepo "github.com/m04kA/SMC-AppointmentService/internal/infra/storage/catalog"
	stylistRepo "github.com/m04kA/SMC-AppointmentService/internal/infra/storage/stylist"
	pricingModels "github.com/m04kA/SMC-AppointmentService/internal/service/pricing/models"
)

// UseCase use case предварительного расчета записи.
// Ничего не записывает: при неизменном состоянии повторный вызов с теми
// же входными данными дает тот же результат.
type UseCase struct {
	appointmentRepo AppointmentRepository
	catalogRepo     CatalogRepository
	stylistRepo     StylistRepository
	pricingService  PricingService
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	appointmentRepo AppointmentRepository,
	catalogRepo CatalogRepository,
	stylistRepo StylistRepository,
	pricingService PricingService,
	logger Logger,
) *UseCase {
	return &UseCase{
		appointmentRepo: appointmentRepo,
		catalogRepo:     catalogRepo,
		stylistRepo:     stylistRepo,
		pricingService:  pricingService,
		logger:          logger,
	}
}

// Execute выполняет предварительный расчет записи.
//
// Шаги:
// 1. Валидация входных данных
// 2. Разрешаем услуги из каталога
// 3. Рассчитываем скидку и цены на указанное время
// 4. Ищем пересечения с существующими записями; пересечения
//    возвращаются как информация, а не ошибка
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("PreviewAppointment: stylist=%d, services=%d, startAt=%s",
		req.StylistID, len(req.Services), req.StartAt.Format(time.RFC3339))

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("PreviewAppointment: validation failed: %v", err)
		return nil, err
	}

	profile, err := uc.getProfile(ctx, req.StylistID)
	if err != nil {
		return nil, err
	}
	startLocal := req.StartAt.In(profile.Location())

	// 2. Разрешаем услуги
	services := make([]*domain.StylistService, 0, len(req.Services))
	totalDuration := 0
	for _, serviceUUID := range req.Services {
		svc, err := uc.catalogRepo.GetActiveByUUID(ctx, req.StylistID, serviceUUID)
		if err != nil {
			if errors.Is(err, catalogRepo.ErrServiceNotFound) {
				uc.logger.Warn("PreviewAppointment: service uuid=%s not found for stylist=%d", serviceUUID, req.StylistID)
				return nil, ErrServiceDoesNotExist
			}
			uc.logger.Error("PreviewAppointment: failed to get service uuid=%s: %v", serviceUUID, err)
			return nil, fmt.Errorf("%w: failed to get service: %v", ErrInternal, err)
		}
		services = append(services, svc)
		totalDuration += svc.DurationMinutes
	}

	// 3. Расчет цен
	quote, err := uc.pricingService.Quote(ctx, &pricingModels.QuoteRequest{
		StylistID:      req.StylistID,
		ClientUUID:     req.ClientUUID,
		StartAt:        startLocal,
		Services:       services,
		IncludeTax:     req.HasTaxIncluded,
		IncludeCardFee: req.HasCardFeeIncluded,
	})
	if err != nil {
		uc.logger.Error("PreviewAppointment: failed to quote prices: %v", err)
		return nil, fmt.Errorf("%w: failed to quote prices: %v", ErrInternal, err)
	}

	// 4. Информационный поиск пересечений
	from := startLocal.Add(-24 * time.Hour)
	to := startLocal.Add(time.Duration(totalDuration)*time.Minute + 24*time.Hour)
	existing, err := uc.appointmentRepo.GetByStylistWithFilter(ctx, domain.AppointmentsFilter{
		StylistID: req.StylistID,
		From:      &from,
		To:        &to,
	})
	if err != nil {
		uc.logger.Error("PreviewAppointment: failed to get appointments: %v", err)
		return nil, fmt.Errorf("%w: failed to get appointments: %v", ErrInternal, err)
	}

	conflicts := make([]*domain.Appointment, 0)
	for _, appt := range existing {
		if appt.Overlaps(startLocal, totalDuration) {
			conflicts = append(conflicts, appt)
		}
	}

	uc.logger.Info("PreviewAppointment: stylist=%d discount=%d%% conflicts=%d",
		req.StylistID, quote.DiscountPercent, len(conflicts))

	return toResponse(startLocal, quote, conflicts), nil
}

func validateRequest(req *Request) error {
	if req.StylistID <= 0 {
		return fmt.Errorf("%w: stylistID must be positive", ErrInvalidInput)
	}
	if req.StartAt.IsZero() {
		return fmt.Errorf("%w: startAt is required", ErrInvalidInput)
	}
	if len(req.Services) == 0 {
		return ErrServiceRequired
	}
	return nil
}

func (uc *UseCase) getProfile(ctx context.Context, stylistID int64) (domain.StylistProfile, error) {
	profile, err := uc.stylistRepo.GetProfile(ctx, stylistID)
	if err != nil {
		if errors.Is(err, stylistRepo.ErrProfileNotFound) {
			return domain.DefaultProfile(stylistID), nil
		}
		uc.logger.Error("PreviewAppointment: failed to get profile for stylist=%d: %v", stylistID, err)
		return domain.StylistProfile{}, fmt.Errorf("%w: failed to get profile: %v", ErrInternal, err)
	}
	return *profile, nil
}
