package appointments

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	appointmentRepo "github.com/m04kA/SMC-AppointmentService/internal/infra/storage/appointment"
	stylistRepo "github.com/m04kA/SMC-AppointmentService/internal/infra/storage/stylist"
	"github.com/m04kA/SMC-AppointmentService/internal/service/appointments/models"
	"github.com/m04kA/SMC-AppointmentService/pkg/ptr"
)

// Service сервис для чтения и отмены записей
type Service struct {
	appointmentRepo AppointmentRepository
	stylistRepo     StylistRepository
	timeProvider    TimeProvider
	logger          Logger

	taxRate     float64
	cardFeeRate float64
}

// NewService создает новый экземпляр сервиса записей
func NewService(
	appointmentRepo AppointmentRepository,
	stylistRepo StylistRepository,
	timeProvider TimeProvider,
	logger Logger,
	taxRate float64,
	cardFeeRate float64,
) *Service {
	if taxRate <= 0 {
		taxRate = domain.DefaultTaxRate
	}
	if cardFeeRate <= 0 {
		cardFeeRate = domain.DefaultCardFeeRate
	}
	return &Service{
		appointmentRepo: appointmentRepo,
		stylistRepo:     stylistRepo,
		timeProvider:    timeProvider,
		logger:          logger,
		taxRate:         taxRate,
		cardFeeRate:     cardFeeRate,
	}
}

// GetByUUID получает запись стилиста по публичному идентификатору
func (s *Service) GetByUUID(ctx context.Context, stylistID int64, apptUUID uuid.UUID) (*models.AppointmentResponse, error) {
	s.logger.Info("GetByUUID: fetching appointment uuid=%s for stylist=%d", apptUUID, stylistID)

	appt, err := s.appointmentRepo.GetByUUID(ctx, stylistID, apptUUID)
	if err != nil {
		if errors.Is(err, appointmentRepo.ErrAppointmentNotFound) {
			s.logger.Warn("GetByUUID: appointment uuid=%s not found", apptUUID)
			return nil, ErrAppointmentNotFound
		}
		s.logger.Error("GetByUUID: repository error for appointment uuid=%s: %v", apptUUID, err)
		return nil, fmt.Errorf("%w: GetByUUID - repository error: %v", ErrInternal, err)
	}

	profile := s.profile(ctx, stylistID)

	return models.FromDomainAppointment(appt, s.prices(appt, profile)), nil
}

// List получает записи стилиста с фильтрацией по периоду
func (s *Service) List(ctx context.Context, req *models.ListAppointmentsRequest) (*models.AppointmentListResponse, error) {
	s.logger.Info("List: fetching appointments for stylist=%d, includeCancelled=%t", req.StylistID, req.IncludeCancelled)

	if req.From != nil && req.To != nil && !req.From.Before(*req.To) {
		return nil, fmt.Errorf("%w: from must be before to", ErrInvalidInput)
	}

	appts, err := s.appointmentRepo.GetByStylistWithFilter(ctx, req.ToDomainFilter())
	if err != nil {
		s.logger.Error("List: repository error for stylist=%d: %v", req.StylistID, err)
		return nil, fmt.Errorf("%w: List - repository error: %v", ErrInternal, err)
	}

	profile := s.profile(ctx, req.StylistID)

	resp := &models.AppointmentListResponse{
		Appointments: make([]models.AppointmentResponse, 0, len(appts)),
	}
	for _, appt := range appts {
		resp.Appointments = append(resp.Appointments, *models.FromDomainAppointment(appt, s.prices(appt, profile)))
	}

	s.logger.Info("List: successfully fetched %d appointments for stylist=%d", len(appts), req.StylistID)
	return resp, nil
}

// Today возвращает сводку дня стилиста: записи на сегодня и суммы за
// сегодня и за текущую неделю. Границы дня и недели считаются в
// часовом поясе стилиста, неделя начинается с понедельника.
func (s *Service) Today(ctx context.Context, stylistID int64) (*models.TodayResponse, error) {
	s.logger.Info("Today: building day overview for stylist=%d", stylistID)

	profile := s.profile(ctx, stylistID)
	now := s.timeProvider.Now().In(profile.Location())

	dayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	dayEnd := dayStart.Add(24 * time.Hour)

	weekStart := dayStart.AddDate(0, 0, -(int(domain.ISOWeekday(now)) - 1))
	weekEnd := weekStart.AddDate(0, 0, 7)

	weekAppts, err := s.appointmentRepo.GetByStylistWithFilter(ctx, domain.AppointmentsFilter{
		StylistID: stylistID,
		From:      ptr.Ptr(weekStart),
		To:        ptr.Ptr(weekEnd),
	})
	if err != nil {
		s.logger.Error("Today: repository error for stylist=%d: %v", stylistID, err)
		return nil, fmt.Errorf("%w: Today - repository error: %v", ErrInternal, err)
	}

	resp := &models.TodayResponse{
		Appointments: make([]models.AppointmentResponse, 0),
	}

	for _, appt := range weekAppts {
		prices := s.prices(appt, profile)

		resp.WeekVisitsCount++
		resp.WeekVisitsValue = domain.RoundToCents(resp.WeekVisitsValue + prices.GrandTotal)

		if !appt.StartAt.Before(dayStart) && appt.StartAt.Before(dayEnd) {
			resp.TodayVisitsCount++
			resp.TodayVisitsValue = domain.RoundToCents(resp.TodayVisitsValue + prices.GrandTotal)
			resp.Appointments = append(resp.Appointments, *models.FromDomainAppointment(appt, prices))
		}
	}

	s.logger.Info("Today: stylist=%d today=%d week=%d", stylistID, resp.TodayVisitsCount, resp.WeekVisitsCount)
	return resp, nil
}

// Cancel отменяет запись от имени стилиста.
// Записи в конечных статусах отменить нельзя.
func (s *Service) Cancel(ctx context.Context, stylistID int64, apptUUID uuid.UUID) (*models.AppointmentResponse, error) {
	s.logger.Info("Cancel: cancelling appointment uuid=%s for stylist=%d", apptUUID, stylistID)

	appt, err := s.appointmentRepo.GetByUUID(ctx, stylistID, apptUUID)
	if err != nil {
		if errors.Is(err, appointmentRepo.ErrAppointmentNotFound) {
			s.logger.Warn("Cancel: appointment uuid=%s not found", apptUUID)
			return nil, ErrAppointmentNotFound
		}
		s.logger.Error("Cancel: repository error for appointment uuid=%s: %v", apptUUID, err)
		return nil, fmt.Errorf("%w: Cancel - repository error: %v", ErrInternal, err)
	}

	if appt.IsTerminal() {
		s.logger.Warn("Cancel: appointment uuid=%s already in terminal status %s", apptUUID, appt.Status)
		return nil, ErrCannotCancel
	}

	if err := s.appointmentRepo.UpdateStatus(ctx, appt.ID, domain.StatusCancelledByStylist); err != nil {
		s.logger.Error("Cancel: failed to update status for appointment uuid=%s: %v", apptUUID, err)
		return nil, fmt.Errorf("%w: Cancel - update status error: %v", ErrInternal, err)
	}

	appt.Status = domain.StatusCancelledByStylist

	profile := s.profile(ctx, stylistID)

	s.logger.Info("Cancel: successfully cancelled appointment uuid=%s", apptUUID)
	return models.FromDomainAppointment(appt, s.prices(appt, profile)), nil
}

// profile загружает профиль стилиста, подставляя дефолтный при отсутствии
func (s *Service) profile(ctx context.Context, stylistID int64) domain.StylistProfile {
	profile, err := s.stylistRepo.GetProfile(ctx, stylistID)
	if err != nil {
		if !errors.Is(err, stylistRepo.ErrProfileNotFound) {
			s.logger.Warn("profile: repository error for stylist=%d, using defaults: %v", stylistID, err)
		}
		return domain.DefaultProfile(stylistID)
	}
	return *profile
}

func (s *Service) prices(appt *domain.Appointment, profile domain.StylistProfile) domain.AppointmentPrices {
	return domain.CalculateAppointmentPrices(
		appt.TotalClientPriceBeforeTax(),
		s.taxRate,
		s.cardFeeRate,
		profile.IncludeTax,
		profile.IncludeCardFee,
	)
}
