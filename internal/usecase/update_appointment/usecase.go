package update_appointment

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	appointmentRepo "github.com/m04kA/SMC-AppointmentService/internal/infra/storage/appointment"
	catalogRepo "github.com/m04kA/SMC-AppointmentService/internal/infra/storage/catalog"
	stylistRepo "github.com/m04kA/SMC-AppointmentService/internal/infra/storage/stylist"
	pricingModels "github.com/m04kA/SMC-AppointmentService/internal/service/pricing/models"
)

// UseCase use case смены статуса записи стилистом, включая чекаут
type UseCase struct {
	appointmentRepo AppointmentRepository
	catalogRepo     CatalogRepository
	stylistRepo     StylistRepository
	pricingService  PricingService
	txManager       TransactionManager
	logger          Logger

	taxRate     float64
	cardFeeRate float64
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	appointmentRepo AppointmentRepository,
	catalogRepo CatalogRepository,
	stylistRepo StylistRepository,
	pricingService PricingService,
	txManager TransactionManager,
	logger Logger,
	taxRate float64,
	cardFeeRate float64,
) *UseCase {
	if taxRate <= 0 {
		taxRate = domain.DefaultTaxRate
	}
	if cardFeeRate <= 0 {
		cardFeeRate = domain.DefaultCardFeeRate
	}
	return &UseCase{
		appointmentRepo: appointmentRepo,
		catalogRepo:     catalogRepo,
		stylistRepo:     stylistRepo,
		pricingService:  pricingService,
		txManager:       txManager,
		logger:          logger,
		taxRate:         taxRate,
		cardFeeRate:     cardFeeRate,
	}
}

// Execute выполняет переход статуса записи.
// Чекаут заменяет снапшоты услуг и пересчитывает цены на ИСХОДНОЕ время
// начала записи: скидки и пересечения при чекауте не перепроверяются.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("UpdateAppointment: stylist=%d, appointment=%s, status=%s",
		req.StylistID, req.AppointmentUUID, req.Status)

	// 1. Валидация статуса: стилисту доступен только allow-list
	status := domain.AppointmentStatus(req.Status)
	if !domain.IsValidStatus(status) || !domain.IsStylistSettable(status) {
		uc.logger.Warn("UpdateAppointment: status %q not allowed for stylist", req.Status)
		return nil, ErrStatusNotAllowed
	}

	var result *domain.Appointment

	// 2. Переход и замена услуг в сериализуемой транзакции:
	// читатели видят либо старый, либо новый набор снапшотов целиком
	err := uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		appt, err := uc.appointmentRepo.GetByUUID(txCtx, req.StylistID, req.AppointmentUUID)
		if err != nil {
			if errors.Is(err, appointmentRepo.ErrAppointmentNotFound) {
				uc.logger.Warn("UpdateAppointment: appointment %s not found", req.AppointmentUUID)
				return ErrAppointmentNotFound
			}
			uc.logger.Error("UpdateAppointment: failed to get appointment %s: %v", req.AppointmentUUID, err)
			return fmt.Errorf("%w: failed to get appointment: %v", ErrInternal, err)
		}

		// Повторный переход из конечного статуса недопустим
		if appt.IsTerminal() {
			uc.logger.Warn("UpdateAppointment: appointment %s already in terminal status %s", req.AppointmentUUID, appt.Status)
			return ErrStatusNotAllowed
		}

		if status == domain.StatusCheckedOut {
			if err := uc.checkout(txCtx, req, appt); err != nil {
				return err
			}
		}

		if err := uc.appointmentRepo.UpdateStatus(txCtx, appt.ID, status); err != nil {
			uc.logger.Error("UpdateAppointment: failed to update status of %s: %v", req.AppointmentUUID, err)
			return fmt.Errorf("%w: failed to update status: %v", ErrInternal, err)
		}

		appt.Status = status
		result = appt
		return nil
	})

	if err != nil {
		return nil, err
	}

	uc.logger.Info("UpdateAppointment: appointment %s moved to %s", req.AppointmentUUID, result.Status)

	return toResponse(result, uc.prices(ctx, result)), nil
}

// checkout заменяет снапшоты услуг записи итоговым набором.
// Цены пересчитываются на исходное время начала; is_original
// сохраняется по идентичности услуги: услуги из первоначального набора
// остаются оригинальными, добавленные на чекауте - нет.
func (uc *UseCase) checkout(ctx context.Context, req *Request, appt *domain.Appointment) error {
	if len(req.Services) == 0 {
		uc.logger.Warn("UpdateAppointment: checkout of %s without services", req.AppointmentUUID)
		return ErrServiceRequired
	}

	services := make([]*domain.StylistService, 0, len(req.Services))
	for _, serviceUUID := range req.Services {
		svc, err := uc.catalogRepo.GetActiveByUUID(ctx, req.StylistID, serviceUUID)
		if err != nil {
			if errors.Is(err, catalogRepo.ErrServiceNotFound) {
				uc.logger.Warn("UpdateAppointment: service uuid=%s not found for stylist=%d", serviceUUID, req.StylistID)
				return ErrServiceDoesNotExist
			}
			uc.logger.Error("UpdateAppointment: failed to get service uuid=%s: %v", serviceUUID, err)
			return fmt.Errorf("%w: failed to get service: %v", ErrInternal, err)
		}
		services = append(services, svc)
	}

	quote, err := uc.pricingService.Quote(ctx, &pricingModels.QuoteRequest{
		StylistID:  req.StylistID,
		ClientUUID: appt.ClientUUID,
		StartAt:    appt.StartAt,
		Services:   services,
	})
	if err != nil {
		uc.logger.Error("UpdateAppointment: failed to quote prices for %s: %v", req.AppointmentUUID, err)
		return fmt.Errorf("%w: failed to quote prices: %v", ErrInternal, err)
	}

	originalByService := make(map[string]bool, len(appt.Services))
	for _, svc := range appt.Services {
		if svc.IsOriginal {
			originalByService[svc.ServiceUUID.String()] = true
		}
	}

	newServices := quote.ToAppointmentServices()
	for i := range newServices {
		newServices[i].IsOriginal = originalByService[newServices[i].ServiceUUID.String()]
	}

	if err := uc.appointmentRepo.ReplaceServices(ctx, appt.ID, newServices); err != nil {
		uc.logger.Error("UpdateAppointment: failed to replace services of %s: %v", req.AppointmentUUID, err)
		return fmt.Errorf("%w: failed to replace services: %v", ErrInternal, err)
	}

	appt.Services = newServices
	return nil
}

// prices рассчитывает итоговые суммы по настройкам профиля стилиста
func (uc *UseCase) prices(ctx context.Context, appt *domain.Appointment) domain.AppointmentPrices {
	includeTax, includeCardFee := true, true

	profile, err := uc.stylistRepo.GetProfile(ctx, appt.StylistID)
	if err == nil {
		includeTax, includeCardFee = profile.IncludeTax, profile.IncludeCardFee
	} else if !errors.Is(err, stylistRepo.ErrProfileNotFound) {
		uc.logger.Warn("UpdateAppointment: failed to get profile for stylist=%d, using defaults: %v", appt.StylistID, err)
	}

	return domain.CalculateAppointmentPrices(
		appt.TotalClientPriceBeforeTax(),
		uc.taxRate,
		uc.cardFeeRate,
		includeTax,
		includeCardFee,
	)
}
