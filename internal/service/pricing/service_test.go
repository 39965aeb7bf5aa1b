package pricing

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	appointmentRepo "github.com/m04kA/SMC-AppointmentService/internal/infra/storage/appointment"
	discountRepo "github.com/m04kA/SMC-AppointmentService/internal/infra/storage/discount"
	stylistRepo "github.com/m04kA/SMC-AppointmentService/internal/infra/storage/stylist"
	"github.com/m04kA/SMC-AppointmentService/internal/service/pricing/models"
	"github.com/m04kA/SMC-AppointmentService/pkg/ptr"
)

// Моки зависимостей

type discountRepoMock struct {
	discounts *domain.StylistDiscounts
}

func (m *discountRepoMock) Get(_ context.Context, _ int64) (*domain.StylistDiscounts, error) {
	if m.discounts == nil {
		return nil, discountRepo.ErrDiscountsNotFound
	}
	return m.discounts, nil
}

type stylistRepoMock struct {
	profile *domain.StylistProfile
}

func (m *stylistRepoMock) GetProfile(_ context.Context, _ int64) (*domain.StylistProfile, error) {
	if m.profile == nil {
		return nil, stylistRepo.ErrProfileNotFound
	}
	return m.profile, nil
}

type appointmentRepoMock struct {
	last   *domain.Appointment
	hasAny bool
}

func (m *appointmentRepoMock) GetLastClientAppointment(_ context.Context, _ int64, _ uuid.UUID, _ time.Time) (*domain.Appointment, error) {
	if m.last == nil {
		return nil, appointmentRepo.ErrAppointmentNotFound
	}
	return m.last, nil
}

func (m *appointmentRepoMock) HasClientAppointments(_ context.Context, _ int64, _ uuid.UUID) (bool, error) {
	return m.hasAny || m.last != nil, nil
}

type loggerMock struct{}

func (l *loggerMock) Info(_ string, _ ...interface{})  {}
func (l *loggerMock) Warn(_ string, _ ...interface{})  {}
func (l *loggerMock) Error(_ string, _ ...interface{}) {}

const testStylistID = int64(42)

// Понедельник
var testMondayStart = time.Date(2025, 6, 2, 10, 0, 0, 0, time.UTC)

func testService(basePrice float64, duration int) *domain.StylistService {
	return &domain.StylistService{
		UUID:            uuid.New(),
		StylistID:       testStylistID,
		Name:            "Haircut",
		BasePrice:       basePrice,
		DurationMinutes: duration,
		IsEnabled:       true,
	}
}

func newTestService(discounts *domain.StylistDiscounts, profile *domain.StylistProfile, last *domain.Appointment) *Service {
	return NewService(
		&discountRepoMock{discounts: discounts},
		&stylistRepoMock{profile: profile},
		&appointmentRepoMock{last: last},
		&loggerMock{},
		0, 0,
	)
}

func TestQuote_FirstBookingDefaultDiscount(t *testing.T) {
	svc := newTestService(nil, nil, nil)

	quote, err := svc.Quote(context.Background(), &models.QuoteRequest{
		StylistID: testStylistID,
		StartAt:   testMondayStart,
		Services:  []*domain.StylistService{testService(100.00, 60)},
	})

	require.NoError(t, err)
	// Скидка первого визита 40% перекрывает скидку понедельника 20%
	assert.Equal(t, 40, quote.DiscountPercent)
	require.Len(t, quote.Services, 1)
	assert.Equal(t, 100.00, quote.Services[0].RegularPrice)
	assert.Equal(t, 60.00, quote.Services[0].ClientPrice)

	assert.Equal(t, 60.00, quote.Prices.TotalClientPriceBeforeTax)
	assert.Equal(t, 5.33, quote.Prices.TotalTax)
	assert.Equal(t, 1.65, quote.Prices.TotalCardFee)
	assert.Equal(t, 66.98, quote.Prices.GrandTotal)
	assert.True(t, quote.Prices.HasTaxIncluded)
	assert.True(t, quote.Prices.HasCardFeeIncluded)
}

func TestQuote_RebookWithinOneWeek(t *testing.T) {
	clientUUID := uuid.New()
	discounts := domain.DefaultDiscounts(testStylistID)
	discounts.IsConfigured = true
	discounts.WeekdayPercents[domain.Monday] = 10

	// Последний визит закончился за 3 дня до нового начала
	last := &domain.Appointment{
		StylistID: testStylistID,
		StartAt:   testMondayStart.AddDate(0, 0, -3).Add(-time.Hour),
		Status:    domain.StatusCheckedOut,
		Services: []domain.AppointmentService{
			{DurationMinutes: 60},
		},
	}

	svc := newTestService(&discounts, nil, last)

	quote, err := svc.Quote(context.Background(), &models.QuoteRequest{
		StylistID:  testStylistID,
		ClientUUID: &clientUUID,
		StartAt:    testMondayStart,
		Services:   []*domain.StylistService{testService(80.00, 30)},
	})

	require.NoError(t, err)
	assert.Equal(t, domain.DefaultRebookWithin1WeekPercent, quote.DiscountPercent)
	assert.Equal(t, 52.00, quote.Services[0].ClientPrice)
}

func TestQuote_RebookWithinTwoWeeks(t *testing.T) {
	clientUUID := uuid.New()
	discounts := domain.DefaultDiscounts(testStylistID)
	discounts.IsConfigured = true
	discounts.WeekdayPercents[domain.Monday] = 10

	last := &domain.Appointment{
		StylistID: testStylistID,
		StartAt:   testMondayStart.AddDate(0, 0, -10),
		Status:    domain.StatusCheckedOut,
		Services: []domain.AppointmentService{
			{DurationMinutes: 60},
		},
	}

	svc := newTestService(&discounts, nil, last)

	quote, err := svc.Quote(context.Background(), &models.QuoteRequest{
		StylistID:  testStylistID,
		ClientUUID: &clientUUID,
		StartAt:    testMondayStart,
		Services:   []*domain.StylistService{testService(100.00, 30)},
	})

	require.NoError(t, err)
	assert.Equal(t, domain.DefaultRebookWithin2WeeksPercent, quote.DiscountPercent)
}

func TestQuote_StaleVisitFallsBackToWeekday(t *testing.T) {
	clientUUID := uuid.New()
	discounts := domain.DefaultDiscounts(testStylistID)
	discounts.IsConfigured = true

	// Визит месячной давности не дает rebook-скидки
	last := &domain.Appointment{
		StylistID: testStylistID,
		StartAt:   testMondayStart.AddDate(0, -1, 0),
		Status:    domain.StatusCheckedOut,
		Services: []domain.AppointmentService{
			{DurationMinutes: 60},
		},
	}

	svc := newTestService(&discounts, nil, last)

	quote, err := svc.Quote(context.Background(), &models.QuoteRequest{
		StylistID:  testStylistID,
		ClientUUID: &clientUUID,
		StartAt:    testMondayStart,
		Services:   []*domain.StylistService{testService(100.00, 30)},
	})

	require.NoError(t, err)
	assert.Equal(t, domain.DefaultWeekdayDiscountPercent, quote.DiscountPercent)
}

func TestQuote_ProfileDisablesTaxAndCardFee(t *testing.T) {
	profile := &domain.StylistProfile{
		StylistID:      testStylistID,
		Timezone:       "UTC",
		IncludeTax:     false,
		IncludeCardFee: false,
	}

	svc := newTestService(nil, profile, nil)

	quote, err := svc.Quote(context.Background(), &models.QuoteRequest{
		StylistID: testStylistID,
		StartAt:   testMondayStart,
		Services:  []*domain.StylistService{testService(100.00, 60)},
	})

	require.NoError(t, err)
	assert.Equal(t, 0.00, quote.Prices.TotalTax)
	assert.Equal(t, 0.00, quote.Prices.TotalCardFee)
	assert.Equal(t, quote.Prices.TotalClientPriceBeforeTax, quote.Prices.GrandTotal)
	assert.False(t, quote.Prices.HasTaxIncluded)
	assert.False(t, quote.Prices.HasCardFeeIncluded)
}

func TestQuote_RequestOverridesProfileTaxFlag(t *testing.T) {
	// Профиль включает налог и комиссию, запрос выключает только налог
	svc := newTestService(nil, nil, nil)

	quote, err := svc.Quote(context.Background(), &models.QuoteRequest{
		StylistID:  testStylistID,
		StartAt:    testMondayStart,
		Services:   []*domain.StylistService{testService(100.00, 60)},
		IncludeTax: ptr.Ptr(false),
	})

	require.NoError(t, err)
	assert.Equal(t, 0.00, quote.Prices.TotalTax)
	assert.False(t, quote.Prices.HasTaxIncluded)
	assert.Equal(t, 1.65, quote.Prices.TotalCardFee)
	assert.True(t, quote.Prices.HasCardFeeIncluded)
	assert.Equal(t, 61.65, quote.Prices.GrandTotal)
}

func TestQuote_RequestOverridesProfileCardFeeFlag(t *testing.T) {
	profile := &domain.StylistProfile{
		StylistID:      testStylistID,
		Timezone:       "UTC",
		IncludeTax:     false,
		IncludeCardFee: false,
	}

	svc := newTestService(nil, profile, nil)

	quote, err := svc.Quote(context.Background(), &models.QuoteRequest{
		StylistID:      testStylistID,
		StartAt:        testMondayStart,
		Services:       []*domain.StylistService{testService(100.00, 60)},
		IncludeCardFee: ptr.Ptr(true),
	})

	require.NoError(t, err)
	assert.Equal(t, 0.00, quote.Prices.TotalTax)
	assert.Equal(t, 1.65, quote.Prices.TotalCardFee)
	assert.True(t, quote.Prices.HasCardFeeIncluded)
}

func TestQuote_FutureVisitsOnlyClientIsNotFirstTime(t *testing.T) {
	clientUUID := uuid.New()
	discounts := domain.DefaultDiscounts(testStylistID)
	discounts.IsConfigured = true

	// У клиента есть записи, но все начинаются позже времени начала.
	// Скидка первого визита не положена, rebook-скидки тоже нет.
	svc := NewService(
		&discountRepoMock{discounts: &discounts},
		&stylistRepoMock{},
		&appointmentRepoMock{last: nil, hasAny: true},
		&loggerMock{},
		0, 0,
	)

	quote, err := svc.Quote(context.Background(), &models.QuoteRequest{
		StylistID:  testStylistID,
		ClientUUID: &clientUUID,
		StartAt:    testMondayStart,
		Services:   []*domain.StylistService{testService(100.00, 30)},
	})

	require.NoError(t, err)
	assert.Equal(t, domain.DefaultWeekdayDiscountPercent, quote.DiscountPercent)
}

func TestQuote_NoServices(t *testing.T) {
	svc := newTestService(nil, nil, nil)

	_, err := svc.Quote(context.Background(), &models.QuoteRequest{
		StylistID: testStylistID,
		StartAt:   testMondayStart,
	})

	assert.ErrorIs(t, err, ErrInvalidInput)
}
