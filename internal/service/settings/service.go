package settings

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	catalogRepo "github.com/m04kA/SMC-AppointmentService/internal/infra/storage/catalog"
	discountRepo "github.com/m04kA/SMC-AppointmentService/internal/infra/storage/discount"
	stylistRepo "github.com/m04kA/SMC-AppointmentService/internal/infra/storage/stylist"
	"github.com/m04kA/SMC-AppointmentService/internal/service/settings/models"
	"github.com/m04kA/SMC-AppointmentService/pkg/ptr"
	"github.com/m04kA/SMC-AppointmentService/pkg/types"
)

// Service сервис настроек стилиста: рабочее расписание, скидки и
// каталог услуг
type Service struct {
	scheduleRepo    ScheduleRepository
	discountRepo    DiscountRepository
	catalogRepo     CatalogRepository
	appointmentRepo AppointmentRepository
	stylistRepo     StylistRepository
	txManager       TransactionManager
	timeProvider    TimeProvider
	logger          Logger
}

// NewService создает новый экземпляр сервиса настроек
func NewService(
	scheduleRepo ScheduleRepository,
	discountRepo DiscountRepository,
	catalogRepo CatalogRepository,
	appointmentRepo AppointmentRepository,
	stylistRepo StylistRepository,
	txManager TransactionManager,
	timeProvider TimeProvider,
	logger Logger,
) *Service {
	return &Service{
		scheduleRepo:    scheduleRepo,
		discountRepo:    discountRepo,
		catalogRepo:     catalogRepo,
		appointmentRepo: appointmentRepo,
		stylistRepo:     stylistRepo,
		txManager:       txManager,
		timeProvider:    timeProvider,
		logger:          logger,
	}
}

// GetWorkingHours возвращает рабочее расписание стилиста на всю неделю
// вместе с занятым временем по дням текущей недели. Дни, которые
// стилист никогда не настраивал, возвращаются как недоступные, не
// создавая строк в БД.
func (s *Service) GetWorkingHours(ctx context.Context, stylistID int64) (*models.WorkingHoursResponse, error) {
	s.logger.Info("GetWorkingHours: fetching schedule for stylist=%d", stylistID)

	saved, err := s.scheduleRepo.GetWeek(ctx, stylistID)
	if err != nil {
		s.logger.Error("GetWorkingHours: repository error for stylist=%d: %v", stylistID, err)
		return nil, fmt.Errorf("%w: GetWorkingHours - repository error: %v", ErrInternal, err)
	}

	booked, err := s.weekBookedTime(ctx, stylistID)
	if err != nil {
		return nil, err
	}

	byWeekday := make(map[domain.Weekday]*domain.WorkingDay, len(saved))
	for _, day := range saved {
		byWeekday[day.Weekday] = day
	}

	resp := &models.WorkingHoursResponse{Days: make([]models.WorkingDayResponse, 0, 7)}
	for weekday := domain.Monday; weekday <= domain.Sunday; weekday++ {
		day, ok := byWeekday[weekday]
		if !ok {
			defaultDay := domain.NewUnavailableDay(stylistID, weekday)
			day = &defaultDay
		}
		dayResp := models.FromDomainWorkingDay(*day)
		dayResp.BookedTimeMinutes = booked[weekday].minutes
		dayResp.BookedAppointmentsCount = booked[weekday].count
		resp.Days = append(resp.Days, dayResp)
	}

	return resp, nil
}

// bookedDay занятое время одного дня недели
type bookedDay struct {
	minutes int
	count   int
}

// weekBookedTime считает занятое время по записям текущей недели.
// Границы недели считаются в часовом поясе стилиста, неделя начинается
// с понедельника; отмененные записи не учитываются.
func (s *Service) weekBookedTime(ctx context.Context, stylistID int64) (map[domain.Weekday]bookedDay, error) {
	profile, err := s.stylistRepo.GetProfile(ctx, stylistID)
	if err != nil {
		if !errors.Is(err, stylistRepo.ErrProfileNotFound) {
			s.logger.Error("GetWorkingHours: profile repository error for stylist=%d: %v", stylistID, err)
			return nil, fmt.Errorf("%w: GetWorkingHours - profile repository error: %v", ErrInternal, err)
		}
		defaultProfile := domain.DefaultProfile(stylistID)
		profile = &defaultProfile
	}

	now := s.timeProvider.Now().In(profile.Location())
	dayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	weekStart := dayStart.AddDate(0, 0, -(int(domain.ISOWeekday(now)) - 1))
	weekEnd := weekStart.AddDate(0, 0, 7)

	appts, err := s.appointmentRepo.GetByStylistWithFilter(ctx, domain.AppointmentsFilter{
		StylistID: stylistID,
		From:      ptr.Ptr(weekStart),
		To:        ptr.Ptr(weekEnd),
	})
	if err != nil {
		s.logger.Error("GetWorkingHours: appointment repository error for stylist=%d: %v", stylistID, err)
		return nil, fmt.Errorf("%w: GetWorkingHours - appointment repository error: %v", ErrInternal, err)
	}

	booked := make(map[domain.Weekday]bookedDay, 7)
	for _, appt := range appts {
		weekday := domain.ISOWeekday(appt.StartAt.In(profile.Location()))
		day := booked[weekday]
		day.minutes += appt.DurationMinutes()
		day.count++
		booked[weekday] = day
	}

	return booked, nil
}

// SetWorkingHours сохраняет рабочее расписание стилиста.
// Для доступного дня оба времени обязательны и начало должно быть
// раньше конца; для недоступного дня времена очищаются.
func (s *Service) SetWorkingHours(ctx context.Context, req *models.SetWorkingHoursRequest) (*models.WorkingHoursResponse, error) {
	s.logger.Info("SetWorkingHours: saving %d days for stylist=%d", len(req.Days), req.StylistID)

	if len(req.Days) == 0 {
		return nil, fmt.Errorf("%w: days are required", ErrInvalidInput)
	}

	days := make([]domain.WorkingDay, 0, len(req.Days))
	for _, input := range req.Days {
		if input.Weekday < int(domain.Monday) || input.Weekday > int(domain.Sunday) {
			return nil, fmt.Errorf("%w: weekday must be in 1..7, got %d", ErrInvalidInput, input.Weekday)
		}
		if input.IsAvailable {
			if err := s.validateDayTimes(input); err != nil {
				return nil, err
			}
		}
		days = append(days, input.ToDomainWorkingDay(req.StylistID))
	}

	err := s.txManager.Do(ctx, func(ctx context.Context) error {
		for _, day := range days {
			if err := s.scheduleRepo.UpsertDay(ctx, day); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		s.logger.Error("SetWorkingHours: failed to save schedule for stylist=%d: %v", req.StylistID, err)
		return nil, fmt.Errorf("%w: SetWorkingHours - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("SetWorkingHours: successfully saved schedule for stylist=%d", req.StylistID)
	return s.GetWorkingHours(ctx, req.StylistID)
}

// GetDiscounts возвращает настройки скидок стилиста.
// Пока стилист не сохранял свои настройки, возвращается дефолтная
// таблица с is_configured=false.
func (s *Service) GetDiscounts(ctx context.Context, stylistID int64) (*models.DiscountsResponse, error) {
	s.logger.Info("GetDiscounts: fetching discounts for stylist=%d", stylistID)

	discounts, err := s.discountRepo.Get(ctx, stylistID)
	if err != nil {
		if errors.Is(err, discountRepo.ErrDiscountsNotFound) {
			defaults := domain.DefaultDiscounts(stylistID)
			return models.FromDomainDiscounts(defaults), nil
		}
		s.logger.Error("GetDiscounts: repository error for stylist=%d: %v", stylistID, err)
		return nil, fmt.Errorf("%w: GetDiscounts - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainDiscounts(*discounts), nil
}

// SetDiscounts сохраняет настройки скидок стилиста и помечает их
// настроенными: с этого момента дефолтная таблица больше не применяется
func (s *Service) SetDiscounts(ctx context.Context, req *models.SetDiscountsRequest) (*models.DiscountsResponse, error) {
	s.logger.Info("SetDiscounts: saving discounts for stylist=%d", req.StylistID)

	discounts := req.ToDomain()
	if err := s.discountRepo.Upsert(ctx, discounts); err != nil {
		s.logger.Error("SetDiscounts: failed to save discounts for stylist=%d: %v", req.StylistID, err)
		return nil, fmt.Errorf("%w: SetDiscounts - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("SetDiscounts: successfully saved discounts for stylist=%d", req.StylistID)
	return models.FromDomainDiscounts(discounts), nil
}

// ListServices возвращает активные услуги стилиста
func (s *Service) ListServices(ctx context.Context, stylistID int64) (*models.ServiceListResponse, error) {
	services, err := s.catalogRepo.GetActiveByStylist(ctx, stylistID)
	if err != nil {
		s.logger.Error("ListServices: repository error for stylist=%d: %v", stylistID, err)
		return nil, fmt.Errorf("%w: ListServices - repository error: %v", ErrInternal, err)
	}

	resp := &models.ServiceListResponse{Services: make([]models.StylistServiceResponse, 0, len(services))}
	for _, svc := range services {
		resp.Services = append(resp.Services, models.FromDomainService(svc))
	}
	return resp, nil
}

// UpsertServices пакетно сохраняет услуги стилиста.
//
// Шаги для каждой услуги:
// 1. Валидируем название, цену и длительность
// 2. Разрешаем origin uuid: услуга, совпадающая со своим шаблоном по
//    названию и цене, наследует uuid шаблона; кастомизированная
//    получает собственный
// 3. Создаем новую или обновляем существующую услугу
func (s *Service) UpsertServices(ctx context.Context, req *models.UpsertServicesRequest) (*models.ServiceListResponse, error) {
	s.logger.Info("UpsertServices: saving %d services for stylist=%d", len(req.Services), req.StylistID)

	if len(req.Services) == 0 {
		return nil, fmt.Errorf("%w: services are required", ErrInvalidInput)
	}

	err := s.txManager.Do(ctx, func(ctx context.Context) error {
		for _, input := range req.Services {
			if err := s.upsertService(ctx, req.StylistID, input); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, ErrInvalidInput) || errors.Is(err, ErrServiceNotFound) || errors.Is(err, ErrTemplateNotFound) {
			return nil, err
		}
		s.logger.Error("UpsertServices: failed to save services for stylist=%d: %v", req.StylistID, err)
		return nil, fmt.Errorf("%w: UpsertServices - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("UpsertServices: successfully saved services for stylist=%d", req.StylistID)
	return s.ListServices(ctx, req.StylistID)
}

// DeleteService помечает услугу стилиста удаленной. Снапшоты услуги в
// существующих записях остаются нетронутыми.
func (s *Service) DeleteService(ctx context.Context, stylistID int64, serviceUUID uuid.UUID) error {
	s.logger.Info("DeleteService: deleting service uuid=%s for stylist=%d", serviceUUID, stylistID)

	if err := s.catalogRepo.SoftDelete(ctx, stylistID, serviceUUID); err != nil {
		if errors.Is(err, catalogRepo.ErrServiceNotFound) {
			s.logger.Warn("DeleteService: service uuid=%s not found", serviceUUID)
			return ErrServiceNotFound
		}
		s.logger.Error("DeleteService: repository error for service uuid=%s: %v", serviceUUID, err)
		return fmt.Errorf("%w: DeleteService - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("DeleteService: successfully deleted service uuid=%s", serviceUUID)
	return nil
}

func (s *Service) upsertService(ctx context.Context, stylistID int64, input models.ServiceInput) error {
	if input.Name == "" {
		return fmt.Errorf("%w: service name is required", ErrInvalidInput)
	}
	if input.BasePrice < 0 {
		return fmt.Errorf("%w: base price must not be negative", ErrInvalidInput)
	}
	if input.DurationMinutes <= 0 {
		return fmt.Errorf("%w: duration must be positive", ErrInvalidInput)
	}

	if input.UUID == nil {
		origin, err := s.resolveOrigin(ctx, input, uuid.Nil)
		if err != nil {
			return err
		}
		_, err = s.catalogRepo.Create(ctx, &domain.StylistService{
			StylistID:         stylistID,
			Name:              input.Name,
			Description:       input.Description,
			BasePrice:         input.BasePrice,
			DurationMinutes:   input.DurationMinutes,
			IsEnabled:         input.IsEnabled,
			ServiceOriginUUID: origin,
		})
		return err
	}

	existing, err := s.catalogRepo.GetActiveByUUID(ctx, stylistID, *input.UUID)
	if err != nil {
		if errors.Is(err, catalogRepo.ErrServiceNotFound) {
			return ErrServiceNotFound
		}
		return err
	}

	origin, err := s.resolveOrigin(ctx, input, existing.ServiceOriginUUID)
	if err != nil {
		return err
	}

	existing.Name = input.Name
	existing.Description = input.Description
	existing.BasePrice = input.BasePrice
	existing.DurationMinutes = input.DurationMinutes
	existing.IsEnabled = input.IsEnabled
	existing.ServiceOriginUUID = origin

	_, err = s.catalogRepo.Update(ctx, existing)
	return err
}

// resolveOrigin определяет origin uuid услуги. Услуга, совпадающая со
// своим шаблоном, наследует uuid шаблона; кастомизированная или не
// привязанная к шаблону получает собственный. current сохраняется для
// обновлений без указания шаблона.
func (s *Service) resolveOrigin(ctx context.Context, input models.ServiceInput, current uuid.UUID) (uuid.UUID, error) {
	if input.TemplateUUID == nil {
		if current != uuid.Nil {
			return current, nil
		}
		return uuid.New(), nil
	}

	tpl, err := s.catalogRepo.GetTemplateByUUID(ctx, *input.TemplateUUID)
	if err != nil {
		if errors.Is(err, catalogRepo.ErrTemplateNotFound) {
			return uuid.Nil, ErrTemplateNotFound
		}
		return uuid.Nil, err
	}

	if tpl.Matches(input.Name, input.BasePrice) {
		return tpl.UUID, nil
	}
	return uuid.New(), nil
}

func (s *Service) validateDayTimes(input models.WorkingDayInput) error {
	start := types.TimeString(input.WorkStartAt)
	end := types.TimeString(input.WorkEndAt)

	if start.IsZero() || end.IsZero() {
		return fmt.Errorf("%w: available day requires workStartAt and workEndAt", ErrInvalidInput)
	}
	if err := start.Validate(); err != nil {
		return fmt.Errorf("%w: invalid workStartAt format: %v", ErrInvalidInput, err)
	}
	if err := end.Validate(); err != nil {
		return fmt.Errorf("%w: invalid workEndAt format: %v", ErrInvalidInput, err)
	}
	if !start.IsBefore(end) {
		return fmt.Errorf("%w: workStartAt must be before workEndAt", ErrInvalidInput)
	}
	return nil
}
