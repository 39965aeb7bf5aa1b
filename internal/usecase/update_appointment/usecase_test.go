package update_appointment

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	appointmentRepo "github.com/m04kA/SMC-AppointmentService/internal/infra/storage/appointment"
	catalogRepo "github.com/m04kA/SMC-AppointmentService/internal/infra/storage/catalog"
	stylistRepo "github.com/m04kA/SMC-AppointmentService/internal/infra/storage/stylist"
	pricingModels "github.com/m04kA/SMC-AppointmentService/internal/service/pricing/models"
)

type appointmentRepoMock struct {
	appt *domain.Appointment

	updatedStatus    *domain.AppointmentStatus
	replacedServices []domain.AppointmentService
}

func (m *appointmentRepoMock) GetByUUID(_ context.Context, _ int64, apptUUID uuid.UUID) (*domain.Appointment, error) {
	if m.appt == nil || m.appt.UUID != apptUUID {
		return nil, appointmentRepo.ErrAppointmentNotFound
	}
	return m.appt, nil
}

func (m *appointmentRepoMock) UpdateStatus(_ context.Context, _ int64, status domain.AppointmentStatus) error {
	m.updatedStatus = &status
	return nil
}

func (m *appointmentRepoMock) ReplaceServices(_ context.Context, _ int64, services []domain.AppointmentService) error {
	m.replacedServices = services
	return nil
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
	lastStartAt time.Time
}

func (m *pricingServiceMock) Quote(_ context.Context, req *pricingModels.QuoteRequest) (*pricingModels.Quote, error) {
	m.lastStartAt = req.StartAt
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

type txManagerMock struct{}

func (m *txManagerMock) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type loggerMock struct{}

func (l *loggerMock) Info(string, ...interface{})  {}
func (l *loggerMock) Warn(string, ...interface{})  {}
func (l *loggerMock) Error(string, ...interface{}) {}

var testStart = time.Date(2025, 6, 2, 10, 0, 0, 0, time.UTC)

func scheduledAppointment(serviceUUID uuid.UUID) *domain.Appointment {
	return &domain.Appointment{
		ID:        1,
		UUID:      uuid.New(),
		StylistID: 1,
		StartAt:   testStart,
		Status:    domain.StatusScheduled,
		Services: []domain.AppointmentService{
			{
				UUID:            uuid.New(),
				ServiceUUID:     serviceUUID,
				ServiceName:     "Haircut",
				DurationMinutes: 60,
				RegularPrice:    100.00,
				ClientPrice:     80.00,
				IsOriginal:      true,
			},
		},
	}
}

func newTestUseCase(appt *domain.Appointment, catalog map[uuid.UUID]*domain.StylistService) (*UseCase, *appointmentRepoMock, *pricingServiceMock) {
	apptRepo := &appointmentRepoMock{appt: appt}
	pricing := &pricingServiceMock{}
	uc := NewUseCase(
		apptRepo,
		&catalogRepoMock{services: catalog},
		&stylistRepoMock{},
		pricing,
		&txManagerMock{},
		&loggerMock{},
		0, 0,
	)
	return uc, apptRepo, pricing
}

func TestExecuteTransitionsToNoShow(t *testing.T) {
	serviceUUID := uuid.New()
	appt := scheduledAppointment(serviceUUID)
	uc, apptRepo, _ := newTestUseCase(appt, nil)

	resp, err := uc.Execute(context.Background(), &Request{
		StylistID:       1,
		AppointmentUUID: appt.UUID,
		Status:          string(domain.StatusNoShow),
	})

	require.NoError(t, err)
	assert.Equal(t, string(domain.StatusNoShow), resp.Status)
	require.NotNil(t, apptRepo.updatedStatus)
	assert.Equal(t, domain.StatusNoShow, *apptRepo.updatedStatus)
	assert.Nil(t, apptRepo.replacedServices)
}

func TestExecuteRejectsDisallowedStatuses(t *testing.T) {
	serviceUUID := uuid.New()
	appt := scheduledAppointment(serviceUUID)
	uc, _, _ := newTestUseCase(appt, nil)

	for _, status := range []string{
		string(domain.StatusScheduled),
		string(domain.StatusCancelledByClient),
		"unknown_status",
	} {
		t.Run(status, func(t *testing.T) {
			_, err := uc.Execute(context.Background(), &Request{
				StylistID:       1,
				AppointmentUUID: appt.UUID,
				Status:          status,
			})
			assert.ErrorIs(t, err, ErrStatusNotAllowed)
		})
	}
}

func TestExecuteRejectsTransitionFromTerminalStatus(t *testing.T) {
	serviceUUID := uuid.New()
	appt := scheduledAppointment(serviceUUID)
	appt.Status = domain.StatusCheckedOut
	uc, _, _ := newTestUseCase(appt, nil)

	_, err := uc.Execute(context.Background(), &Request{
		StylistID:       1,
		AppointmentUUID: appt.UUID,
		Status:          string(domain.StatusNoShow),
	})

	assert.ErrorIs(t, err, ErrStatusNotAllowed)
}

func TestExecuteAppointmentNotFound(t *testing.T) {
	uc, _, _ := newTestUseCase(nil, nil)

	_, err := uc.Execute(context.Background(), &Request{
		StylistID:       1,
		AppointmentUUID: uuid.New(),
		Status:          string(domain.StatusNoShow),
	})

	assert.ErrorIs(t, err, ErrAppointmentNotFound)
}

func TestExecuteCheckoutRequiresServices(t *testing.T) {
	serviceUUID := uuid.New()
	appt := scheduledAppointment(serviceUUID)
	uc, _, _ := newTestUseCase(appt, nil)

	_, err := uc.Execute(context.Background(), &Request{
		StylistID:       1,
		AppointmentUUID: appt.UUID,
		Status:          string(domain.StatusCheckedOut),
	})

	assert.ErrorIs(t, err, ErrServiceRequired)
}

func TestExecuteCheckoutReplacesServicesPreservingIsOriginal(t *testing.T) {
	originalUUID := uuid.New()
	addedUUID := uuid.New()

	appt := scheduledAppointment(originalUUID)
	catalog := map[uuid.UUID]*domain.StylistService{
		originalUUID: {UUID: originalUUID, StylistID: 1, Name: "Haircut", BasePrice: 100.00, DurationMinutes: 60, IsEnabled: true},
		addedUUID:    {UUID: addedUUID, StylistID: 1, Name: "Blowout", BasePrice: 40.00, DurationMinutes: 30, IsEnabled: true},
	}
	uc, apptRepo, pricing := newTestUseCase(appt, catalog)

	resp, err := uc.Execute(context.Background(), &Request{
		StylistID:       1,
		AppointmentUUID: appt.UUID,
		Status:          string(domain.StatusCheckedOut),
		Services:        []uuid.UUID{originalUUID, addedUUID},
	})

	require.NoError(t, err)
	assert.Equal(t, string(domain.StatusCheckedOut), resp.Status)

	// цены пересчитаны на исходное время начала записи
	assert.Equal(t, testStart, pricing.lastStartAt)

	require.Len(t, apptRepo.replacedServices, 2)
	byService := make(map[uuid.UUID]domain.AppointmentService)
	for _, svc := range apptRepo.replacedServices {
		byService[svc.ServiceUUID] = svc
	}
	assert.True(t, byService[originalUUID].IsOriginal)
	assert.False(t, byService[addedUUID].IsOriginal)
}

func TestExecuteCheckoutRejectsUnknownService(t *testing.T) {
	originalUUID := uuid.New()
	appt := scheduledAppointment(originalUUID)
	uc, _, _ := newTestUseCase(appt, map[uuid.UUID]*domain.StylistService{})

	_, err := uc.Execute(context.Background(), &Request{
		StylistID:       1,
		AppointmentUUID: appt.UUID,
		Status:          string(domain.StatusCheckedOut),
		Services:        []uuid.UUID{uuid.New()},
	})

	assert.ErrorIs(t, err, ErrServiceDoesNotExist)
}
