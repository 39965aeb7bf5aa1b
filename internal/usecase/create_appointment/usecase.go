package create_appointment

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	catalogRepo "github.com/m04kA/SMC-AppointmentService/internal/infra/storage/catalog"
	scheduleRepo "github.com/m04kA/SMC-AppointmentService/internal/infra/storage/schedule"
	stylistRepo "github.com/m04kA/SMC-AppointmentService/internal/infra/storage/stylist"
	clientClient "github.com/m04kA/SMC-AppointmentService/internal/integrations/clientservice"
	pricingModels "github.com/m04kA/SMC-AppointmentService/internal/service/pricing/models"
	"github.com/m04kA/SMC-AppointmentService/pkg/types"
)

// UseCase use case для создания записи
type UseCase struct {
	appointmentRepo AppointmentRepository
	catalogRepo     CatalogRepository
	scheduleRepo    ScheduleRepository
	stylistRepo     StylistRepository
	pricingService  PricingService
	clientClient    ClientServiceClient
	txManager       TransactionManager
	timeProvider    TimeProvider
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	appointmentRepo AppointmentRepository,
	catalogRepo CatalogRepository,
	scheduleRepo ScheduleRepository,
	stylistRepo StylistRepository,
	pricingService PricingService,
	clientClient ClientServiceClient,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		appointmentRepo: appointmentRepo,
		catalogRepo:     catalogRepo,
		scheduleRepo:    scheduleRepo,
		stylistRepo:     stylistRepo,
		pricingService:  pricingService,
		clientClient:    clientClient,
		txManager:       txManager,
		timeProvider:    &RealTimeProvider{},
		logger:          logger,
	}
}

// Execute выполняет use case создания записи.
// Использует сериализуемую транзакцию: проверка пересечений и вставка
// записи со снапшотами услуг выполняются атомарно.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateAppointment: stylist=%d, services=%d, startAt=%s, force=%t",
		req.StylistID, len(req.Services), req.StartAt.Format(time.RFC3339), req.Force)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateAppointment: validation failed: %v", err)
		return nil, err
	}

	// 2. Профиль стилиста и его локальное время
	profile, err := uc.getProfile(ctx, req.StylistID)
	if err != nil {
		return nil, err
	}
	startLocal := req.StartAt.In(profile.Location())
	now := uc.timeProvider.Now().In(profile.Location())

	// 3. Разрешаем услуги из каталога. Force не обходит эту проверку:
	// запись с несуществующей услугой создать нельзя
	services, err := uc.resolveServices(ctx, req.StylistID, req.Services)
	if err != nil {
		return nil, err
	}

	totalDuration := 0
	for _, svc := range services {
		totalDuration += svc.DurationMinutes
	}

	// 4. Денормализуем имена клиента
	firstName, lastName, err := uc.resolveClientNames(ctx, req)
	if err != nil {
		return nil, err
	}

	// 5. Проверки времени, обходимые force
	if !req.Force {
		if err := validateNotInPast(startLocal, now); err != nil {
			uc.logger.Warn("CreateAppointment: start time %s is in the past", startLocal.Format(time.RFC3339))
			return nil, err
		}

		if err := uc.validateWorkingHours(ctx, req.StylistID, startLocal, totalDuration); err != nil {
			return nil, err
		}
	}

	var result *domain.Appointment
	var quote *pricingModels.Quote

	// 6. Проверка пересечений и вставка в сериализуемой транзакции
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 6.1. Проверяем пересечения с блокировкой строк (FOR UPDATE)
		if !req.Force {
			from, to := conflictWindow(startLocal, totalDuration)
			existing, err := uc.appointmentRepo.GetByStylistWithFilter(txCtx, domain.AppointmentsFilter{
				StylistID: req.StylistID,
				From:      &from,
				To:        &to,
			})
			if err != nil {
				uc.logger.Error("CreateAppointment: failed to get appointments: %v", err)
				return fmt.Errorf("%w: failed to get appointments: %v", ErrInternal, err)
			}

			if conflicts := findConflicts(existing, startLocal, totalDuration); len(conflicts) > 0 {
				uc.logger.Warn("CreateAppointment: %d conflicting appointments for stylist=%d", len(conflicts), req.StylistID)
				return ErrAppointmentIntersection
			}
		}

		// 6.2. Рассчитываем цены на время начала записи
		quote, err = uc.pricingService.Quote(txCtx, &pricingModels.QuoteRequest{
			StylistID:  req.StylistID,
			ClientUUID: req.ClientUUID,
			StartAt:    startLocal,
			Services:   services,
		})
		if err != nil {
			uc.logger.Error("CreateAppointment: failed to quote prices: %v", err)
			return fmt.Errorf("%w: failed to quote prices: %v", ErrInternal, err)
		}

		// 6.3. Создаем запись со снапшотами услуг
		appointment := &domain.Appointment{
			StylistID:       req.StylistID,
			ClientUUID:      req.ClientUUID,
			ClientFirstName: firstName,
			ClientLastName:  lastName,
			StartAt:         startLocal,
			Status:          domain.StatusScheduled,
			Services:        quote.ToAppointmentServices(),
			CreatedBy:       req.CreatedBy,
		}

		created, err := uc.appointmentRepo.CreateWithServices(txCtx, appointment)
		if err != nil {
			uc.logger.Error("CreateAppointment: failed to create appointment: %v", err)
			return fmt.Errorf("%w: failed to create appointment: %v", ErrInternal, err)
		}

		result = created
		return nil
	})

	if err != nil {
		return nil, err
	}

	uc.logger.Info("CreateAppointment: successfully created appointment uuid=%s", result.UUID)

	return toResponse(result, quote.DiscountPercent, quote.Prices), nil
}

// getProfile загружает профиль стилиста, подставляя дефолтный при отсутствии
func (uc *UseCase) getProfile(ctx context.Context, stylistID int64) (domain.StylistProfile, error) {
	profile, err := uc.stylistRepo.GetProfile(ctx, stylistID)
	if err != nil {
		if errors.Is(err, stylistRepo.ErrProfileNotFound) {
			return domain.DefaultProfile(stylistID), nil
		}
		uc.logger.Error("CreateAppointment: failed to get profile for stylist=%d: %v", stylistID, err)
		return domain.StylistProfile{}, fmt.Errorf("%w: failed to get profile: %v", ErrInternal, err)
	}
	return *profile, nil
}

// resolveServices загружает активные услуги стилиста по их идентификаторам
func (uc *UseCase) resolveServices(ctx context.Context, stylistID int64, uuids []uuid.UUID) ([]*domain.StylistService, error) {
	services := make([]*domain.StylistService, 0, len(uuids))
	for _, serviceUUID := range uuids {
		svc, err := uc.catalogRepo.GetActiveByUUID(ctx, stylistID, serviceUUID)
		if err != nil {
			if errors.Is(err, catalogRepo.ErrServiceNotFound) {
				uc.logger.Warn("CreateAppointment: service uuid=%s not found for stylist=%d", serviceUUID, stylistID)
				return nil, ErrServiceDoesNotExist
			}
			uc.logger.Error("CreateAppointment: failed to get service uuid=%s: %v", serviceUUID, err)
			return nil, fmt.Errorf("%w: failed to get service: %v", ErrInternal, err)
		}
		services = append(services, svc)
	}
	return services, nil
}

// resolveClientNames определяет денормализованные имена клиента.
// Для клиента из справочника имена берутся из ClientService; при его
// недоступности используются переданные в запросе.
func (uc *UseCase) resolveClientNames(ctx context.Context, req *Request) (string, string, error) {
	if req.ClientUUID == nil {
		return req.ClientFirstName, req.ClientLastName, nil
	}

	client, err := uc.clientClient.GetClientWithGracefulDegradation(ctx, *req.ClientUUID)
	if err != nil {
		if errors.Is(err, clientClient.ErrClientNotFound) {
			uc.logger.Warn("CreateAppointment: client uuid=%s not found", req.ClientUUID)
			return "", "", ErrClientDoesNotExist
		}
		if errors.Is(err, clientClient.ErrServiceDegraded) {
			// ClientService недоступен, создаем запись с именами из запроса
			return req.ClientFirstName, req.ClientLastName, nil
		}
		uc.logger.Error("CreateAppointment: failed to get client uuid=%s: %v", req.ClientUUID, err)
		return "", "", fmt.Errorf("%w: failed to get client: %v", ErrInternal, err)
	}

	return client.FirstName, client.LastName, nil
}

// validateWorkingHours проверяет, что запись помещается в рабочие часы
// стилиста в день начала. Ненастроенный день считается недоступным.
func (uc *UseCase) validateWorkingHours(ctx context.Context, stylistID int64, startLocal time.Time, totalDuration int) error {
	weekday := domain.ISOWeekday(startLocal)

	day, err := uc.scheduleRepo.GetDay(ctx, stylistID, weekday)
	if err != nil {
		if errors.Is(err, scheduleRepo.ErrDayNotFound) {
			uc.logger.Warn("CreateAppointment: stylist=%d has no working hours on %s", stylistID, weekday)
			return ErrOutsideWorkingHours
		}
		uc.logger.Error("CreateAppointment: failed to get working day for stylist=%d: %v", stylistID, err)
		return fmt.Errorf("%w: failed to get working day: %v", ErrInternal, err)
	}

	if !day.FitsWindow(types.NewTimeString(startLocal), totalDuration) {
		uc.logger.Warn("CreateAppointment: window %s+%dmin does not fit working hours of stylist=%d",
			startLocal.Format(domain.TimeFormat), totalDuration, stylistID)
		return ErrOutsideWorkingHours
	}

	return nil
}
