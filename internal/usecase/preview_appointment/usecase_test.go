package preview_appointment

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	catalogRepo "github.com/m04kA/SMC-AppointmentService/internal/infra/storage/catalog"
	stylistRepo "github.com/m04kA/SMC-AppointmentService/internal/infra/storage/stylist"
	pricingModels "github.com/m04kA/SMC-AppointmentService/internal/service/pricing/models"
)

type appointmentRepoMock struct {
	existing []*domain.Appointment
}

func (m *appointmentRepoMock) GetByStylistWithFilter(_ context.Context, _ domain.AppointmentsFilter) ([]*domain.Appointment, error) {
	return m.existing, nil
}

type catalogRepoMock struct {
	services map[uuid.UUID]*domain.StylistService
}

func (m *catalogRepoMock) GetActiveByUUID(_ context.Context, _ int64, serviceUUID uuid.UUID) (*domain.StylistService, error) {
	svc, ok := m.services[serviceUUID]
	if !ok {
		return nil, catalogRepo.ErrServiceNotFound
	}
	return svc, nil
}

type stylistRepoMock struct{}

func (m *stylistRepoMock) GetProfile(_ context.Context, _ int64) (*domain.StylistProfile, error) {
	return nil, stylistRepo.ErrProfileNotFound
}

type pricingServiceMock struct {
	lastReq *pricingModels.QuoteRequest
}

func (m *pricingServiceMock) Quote(_ context.Context, req *pricingModels.QuoteRequest) (*pricingModels.Quote, error) {
	m.lastReq = req
	quote := &pricingModels.Quote{DiscountPercent: 20}
	var total float64
	for _, svc := range req.Services {
		clientPrice := domain.CalculateClientPrice(svc.BasePrice, 20)
		quote.Services = append(quote.Services, pricingModels.ServiceQuote{
			Service:      svc,
			RegularPrice: svc.BasePrice,
			ClientPrice:  clientPrice,
		})
		total += clientPrice
	}
	quote.Prices = domain.CalculateAppointmentPrices(total, domain.DefaultTaxRate, domain.DefaultCardFeeRate, true, true)
	return quote, nil
}

type loggerMock struct{}

func (l *loggerMock) Info(string, ...interface{})  {}
func (l *loggerMock) Warn(string, ...interface{})  {}
func (l *loggerMock) Error(string, ...interface{}) {}

var testStart = time.Date(2025, 6, 2, 10, 0, 0, 0, time.UTC)

func newTestUseCase(existing []*domain.Appointment) (*UseCase, uuid.UUID) {
	serviceUUID := uuid.New()
	svc := &domain.StylistService{
		UUID:            serviceUUID,
		StylistID:       1,
		Name:            "Haircut",
		BasePrice:       100.00,
		DurationMinutes: 60,
		IsEnabled:       true,
	}

	uc := NewUseCase(
		&appointmentRepoMock{existing: existing},
		&catalogRepoMock{services: map[uuid.UUID]*domain.StylistService{serviceUUID: svc}},
		&stylistRepoMock{},
		&pricingServiceMock{},
		&loggerMock{},
	)
	return uc, serviceUUID
}

func TestExecuteReturnsPricesAndConflictsWithoutError(t *testing.T) {
	conflicting := &domain.Appointment{
		UUID:     uuid.New(),
		StartAt:  testStart.Add(30 * time.Minute),
		Status:   domain.StatusScheduled,
		Services: []domain.AppointmentService{{DurationMinutes: 60}},
	}
	uc, serviceUUID := newTestUseCase([]*domain.Appointment{conflicting})

	resp, err := uc.Execute(context.Background(), &Request{
		StylistID: 1,
		StartAt:   testStart,
		Services:  []uuid.UUID{serviceUUID},
	})

	require.NoError(t, err)
	assert.Equal(t, 80.00, resp.TotalClientPriceBeforeTax)
	assert.Equal(t, 89.30, resp.GrandTotal)
	require.Len(t, resp.Conflicts, 1)
	assert.Equal(t, conflicting.UUID, resp.Conflicts[0].UUID)
}

func TestExecuteIgnoresBackToBackAppointments(t *testing.T) {
	adjacent := &domain.Appointment{
		UUID:     uuid.New(),
		StartAt:  testStart.Add(time.Hour),
		Status:   domain.StatusScheduled,
		Services: []domain.AppointmentService{{DurationMinutes: 60}},
	}
	uc, serviceUUID := newTestUseCase([]*domain.Appointment{adjacent})

	resp, err := uc.Execute(context.Background(), &Request{
		StylistID: 1,
		StartAt:   testStart,
		Services:  []uuid.UUID{serviceUUID},
	})

	require.NoError(t, err)
	assert.Empty(t, resp.Conflicts)
}

func TestExecuteIsIdempotent(t *testing.T) {
	uc, serviceUUID := newTestUseCase(nil)

	req := &Request{
		StylistID: 1,
		StartAt:   testStart,
		Services:  []uuid.UUID{serviceUUID},
	}

	first, err := uc.Execute(context.Background(), req)
	require.NoError(t, err)
	second, err := uc.Execute(context.Background(), req)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestExecuteForwardsTaxAndCardFeeOverrides(t *testing.T) {
	serviceUUID := uuid.New()
	svc := &domain.StylistService{
		UUID:            serviceUUID,
		StylistID:       1,
		Name:            "Haircut",
		BasePrice:       100.00,
		DurationMinutes: 60,
		IsEnabled:       true,
	}
	pricing := &pricingServiceMock{}

	uc := NewUseCase(
		&appointmentRepoMock{},
		&catalogRepoMock{services: map[uuid.UUID]*domain.StylistService{serviceUUID: svc}},
		&stylistRepoMock{},
		pricing,
		&loggerMock{},
	)

	hasTax := false
	hasCardFee := true
	_, err := uc.Execute(context.Background(), &Request{
		StylistID:          1,
		StartAt:            testStart,
		Services:           []uuid.UUID{serviceUUID},
		HasTaxIncluded:     &hasTax,
		HasCardFeeIncluded: &hasCardFee,
	})

	require.NoError(t, err)
	require.NotNil(t, pricing.lastReq)
	require.NotNil(t, pricing.lastReq.IncludeTax)
	assert.False(t, *pricing.lastReq.IncludeTax)
	require.NotNil(t, pricing.lastReq.IncludeCardFee)
	assert.True(t, *pricing.lastReq.IncludeCardFee)
}

func TestExecuteRequiresServices(t *testing.T) {
	uc, _ := newTestUseCase(nil)

	_, err := uc.Execute(context.Background(), &Request{
		StylistID: 1,
		StartAt:   testStart,
	})

	assert.ErrorIs(t, err, ErrServiceRequired)
}

func TestExecuteRejectsUnknownService(t *testing.T) {
	uc, _ := newTestUseCase(nil)

	_, err := uc.Execute(context.Background(), &Request{
		StylistID: 1,
		StartAt:   testStart,
		Services:  []uuid.UUID{uuid.New()},
	})

	assert.ErrorIs(t, err, ErrServiceDoesNotExist)
}
