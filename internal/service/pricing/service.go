package pricing

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	appointmentRepo "github.com/m04kA/SMC-AppointmentService/internal/infra/storage/appointment"
	discountRepo "github.com/m04kA/SMC-AppointmentService/internal/infra/storage/discount"
	stylistRepo "github.com/m04kA/SMC-AppointmentService/internal/infra/storage/stylist"
	"github.com/m04kA/SMC-AppointmentService/internal/service/pricing/models"
)

// Service сервис расчета стоимости записей.
// Повторные вызовы с одинаковыми входными данными дают одинаковый
// результат: расчет зависит только от настроек стилиста, набора услуг,
// времени начала и истории визитов клиента на момент времени начала.
type Service struct {
	discountRepo    DiscountRepository
	stylistRepo     StylistRepository
	appointmentRepo AppointmentRepository
	logger          Logger

	taxRate     float64
	cardFeeRate float64
}

// NewService создает новый экземпляр сервиса расчета стоимости.
// Ставки передаются из конфигурации; нулевые значения заменяются
// ставками по умолчанию (NYC sales tax и комиссия эквайринга).
func NewService(
	discountRepo DiscountRepository,
	stylistRepo StylistRepository,
	appointmentRepo AppointmentRepository,
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
		discountRepo:    discountRepo,
		stylistRepo:     stylistRepo,
		appointmentRepo: appointmentRepo,
		logger:          logger,
		taxRate:         taxRate,
		cardFeeRate:     cardFeeRate,
	}
}

// Quote рассчитывает стоимость набора услуг на заданное время начала.
//
// Шаги:
// 1. Загружаем профиль стилиста (настройки налога и комиссии)
// 2. Загружаем настройки скидок (или дефолтные, если не настроены)
// 3. Собираем историю визитов клиента на момент времени начала
// 4. Выбираем максимальную применимую скидку и считаем цены
func (s *Service) Quote(ctx context.Context, req *models.QuoteRequest) (*models.Quote, error) {
	if len(req.Services) == 0 {
		return nil, fmt.Errorf("%w: Quote - no services", ErrInvalidInput)
	}

	// 1. Профиль стилиста
	profile, err := s.stylistRepo.GetProfile(ctx, req.StylistID)
	if err != nil {
		if !errors.Is(err, stylistRepo.ErrProfileNotFound) {
			s.logger.Error("Quote: profile repository error for stylist=%d: %v", req.StylistID, err)
			return nil, fmt.Errorf("%w: Quote - profile repository error: %v", ErrInternal, err)
		}
		defaultProfile := domain.DefaultProfile(req.StylistID)
		profile = &defaultProfile
	}

	includeTax := profile.IncludeTax
	if req.IncludeTax != nil {
		includeTax = *req.IncludeTax
	}
	includeCardFee := profile.IncludeCardFee
	if req.IncludeCardFee != nil {
		includeCardFee = *req.IncludeCardFee
	}

	// 2. Настройки скидок
	discounts, err := s.discountRepo.Get(ctx, req.StylistID)
	if err != nil {
		if !errors.Is(err, discountRepo.ErrDiscountsNotFound) {
			s.logger.Error("Quote: discount repository error for stylist=%d: %v", req.StylistID, err)
			return nil, fmt.Errorf("%w: Quote - discount repository error: %v", ErrInternal, err)
		}
		defaults := domain.DefaultDiscounts(req.StylistID)
		discounts = &defaults
	}

	// 3. История визитов клиента
	history, err := s.visitHistory(ctx, req)
	if err != nil {
		return nil, err
	}

	// 4. Скидка и цены
	percent := discounts.ApplicablePercent(req.StartAt, history)

	quote := &models.Quote{
		Services:        make([]models.ServiceQuote, 0, len(req.Services)),
		DiscountPercent: percent,
	}

	var totalBeforeTax float64
	for _, svc := range req.Services {
		clientPrice := domain.CalculateClientPrice(svc.BasePrice, percent)
		quote.Services = append(quote.Services, models.ServiceQuote{
			Service:         svc,
			DiscountPercent: percent,
			RegularPrice:    svc.BasePrice,
			ClientPrice:     clientPrice,
		})
		totalBeforeTax += clientPrice
	}

	quote.Prices = domain.CalculateAppointmentPrices(
		totalBeforeTax,
		s.taxRate,
		s.cardFeeRate,
		includeTax,
		includeCardFee,
	)

	s.logger.Info("Quote: stylist=%d services=%d discount=%d%% total=%.2f grand_total=%.2f",
		req.StylistID, len(req.Services), percent, totalBeforeTax, quote.Prices.GrandTotal)

	return quote, nil
}

// visitHistory собирает историю визитов клиента у стилиста на момент
// времени начала. Запись без клиента считается первым визитом.
func (s *Service) visitHistory(ctx context.Context, req *models.QuoteRequest) (domain.VisitHistory, error) {
	if req.ClientUUID == nil {
		return domain.VisitHistory{HasPastVisits: false}, nil
	}

	last, err := s.appointmentRepo.GetLastClientAppointment(ctx, req.StylistID, *req.ClientUUID, req.StartAt)
	if err != nil {
		if errors.Is(err, appointmentRepo.ErrAppointmentNotFound) {
			// Записи клиента могут начинаться позже времени начала
			// (расчет задним числом). Такой клиент уже не первый, но
			// rebook-скидки по завершенному визиту не получает.
			has, hasErr := s.appointmentRepo.HasClientAppointments(ctx, req.StylistID, *req.ClientUUID)
			if hasErr != nil {
				s.logger.Error("Quote: appointment repository error for stylist=%d client=%s: %v", req.StylistID, req.ClientUUID, hasErr)
				return domain.VisitHistory{}, fmt.Errorf("%w: Quote - appointment repository error: %v", ErrInternal, hasErr)
			}
			return domain.VisitHistory{HasPastVisits: has}, nil
		}
		s.logger.Error("Quote: appointment repository error for stylist=%d client=%s: %v", req.StylistID, req.ClientUUID, err)
		return domain.VisitHistory{}, fmt.Errorf("%w: Quote - appointment repository error: %v", ErrInternal, err)
	}

	endAt := last.EndAt()
	return domain.VisitHistory{HasPastVisits: true, LastVisitEndAt: &endAt}, nil
}
