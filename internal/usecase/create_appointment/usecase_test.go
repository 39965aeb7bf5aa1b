package create_appointment

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	catalogRepo "github.com/m04kA/SMC-AppointmentService/internal/infra/storage/catalog"
	scheduleRepo "github.com/m04kA/SMC-AppointmentService/internal/infra/storage/schedule"
	stylistRepo "github.com/m04kA/SMC-AppointmentService/internal/infra/storage/stylist"
	"github.com/m04kA/SMC-AppointmentService/internal/integrations/clientservice"
	pricingModels "github.com/m04kA/SMC-AppointmentService/internal/service/pricing/models"
	"github.com/m04kA/SMC-AppointmentService/pkg/types"
)

// Моки зависимостей

type appointmentRepoMock struct {
	existing []*domain.Appointment
	created  *domain.Appointment
}

func (m *appointmentRepoMock) CreateWithServices(_ context.Context, appt *domain.Appointment) (*domain.Appointment, error) {
	appt.ID = 1
	appt.UUID = uuid.New()
	appt.CreatedAt = time.Now()
	appt.UpdatedAt = appt.CreatedAt
	m.created = appt
	return appt, nil
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

type scheduleRepoMock struct {
	days map[domain.Weekday]*domain.WorkingDay
}

func (m *scheduleRepoMock) GetDay(_ context.Context, _ int64, weekday domain.Weekday) (*domain.WorkingDay, error) {
	day, ok := m.days[weekday]
	if !ok {
		return nil, scheduleRepo.ErrDayNotFound
	}
	return day, nil
}

type stylistRepoMock struct{}

func (m *stylistRepoMock) GetProfile(_ context.Context, _ int64) (*domain.StylistProfile, error) {
	return nil, stylistRepo.ErrProfileNotFound
}

type pricingServiceMock struct{}

func (m *pricingServiceMock) Quote(_ context.Context, req *pricingModels.QuoteRequest) (*pricingModels.Quote, error) {
	quote := &pricingModels.Quote{DiscountPercent: 20}
	var total float64
	for _, svc := range req.Services {
		clientPrice := domain.CalculateClientPrice(svc.BasePrice, 20)
		quote.Services = append(quote.Services, pricingModels.ServiceQuote{
			Service:         svc,
			DiscountPercent: 20,
			RegularPrice:    svc.BasePrice,
			ClientPrice:     clientPrice,
		})
		total += clientPrice
	}
	quote.Prices = domain.CalculateAppointmentPrices(total, domain.DefaultTaxRate, domain.DefaultCardFeeRate, true, true)
	return quote, nil
}

type clientServiceMock struct {
	known map[uuid.UUID]*clientservice.ClientProfile
}

func (m *clientServiceMock) GetClientWithGracefulDegradation(_ context.Context, clientUUID uuid.UUID) (*clientservice.ClientProfile, error) {
	profile, ok := m.known[clientUUID]
	if !ok {
		return nil, clientservice.ErrClientNotFound
	}
	return profile, nil
}

type txManagerMock struct{}

func (m *txManagerMock) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type timeProviderMock struct {
	now time.Time
}

func (m *timeProviderMock) Now() time.Time {
	return m.now
}

type loggerMock struct{}

func (l *loggerMock) Info(string, ...interface{})  {}
func (l *loggerMock) Warn(string, ...interface{})  {}
func (l *loggerMock) Error(string, ...interface{}) {}

// Фикстуры

var (
	testNow         = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC) // Sunday
	testMondayStart = time.Date(2025, 6, 2, 10, 0, 0, 0, time.UTC)
)

func fullWeekSchedule() *scheduleRepoMock {
	days := make(map[domain.Weekday]*domain.WorkingDay, 7)
	for weekday := domain.Monday; weekday <= domain.Sunday; weekday++ {
		days[weekday] = &domain.WorkingDay{
			StylistID:   1,
			Weekday:     weekday,
			IsAvailable: true,
			WorkStartAt: types.TimeString("09:00"),
			WorkEndAt:   types.TimeString("18:00"),
		}
	}
	return &scheduleRepoMock{days: days}
}

func newTestUseCase(apptRepo *appointmentRepoMock, schedule *scheduleRepoMock, svc *domain.StylistService) (*UseCase, uuid.UUID) {
	serviceUUID := uuid.New()
	if svc == nil {
		svc = &domain.StylistService{
			StylistID:       1,
			Name:            "Haircut",
			BasePrice:       100.00,
			DurationMinutes: 60,
			IsEnabled:       true,
		}
	}
	svc.UUID = serviceUUID

	uc := NewUseCase(
		apptRepo,
		&catalogRepoMock{services: map[uuid.UUID]*domain.StylistService{serviceUUID: svc}},
		schedule,
		&stylistRepoMock{},
		&pricingServiceMock{},
		&clientServiceMock{known: map[uuid.UUID]*clientservice.ClientProfile{}},
		&txManagerMock{},
		&loggerMock{},
	)
	uc.timeProvider = &timeProviderMock{now: testNow}
	return uc, serviceUUID
}

// Тесты

func TestExecuteCreatesAppointment(t *testing.T) {
	apptRepo := &appointmentRepoMock{}
	uc, serviceUUID := newTestUseCase(apptRepo, fullWeekSchedule(), nil)

	resp, err := uc.Execute(context.Background(), &Request{
		StylistID:       1,
		StartAt:         testMondayStart,
		Services:        []uuid.UUID{serviceUUID},
		ClientFirstName: "Jane",
		ClientLastName:  "Doe",
		CreatedBy:       1,
	})

	require.NoError(t, err)
	assert.Equal(t, string(domain.StatusScheduled), resp.Status)
	assert.Equal(t, 60, resp.DurationMinutes)
	assert.Equal(t, 20, resp.DiscountPercent)
	assert.Equal(t, 80.00, resp.TotalClientPriceBeforeTax)
	assert.Equal(t, 7.10, resp.TotalTax)
	assert.Equal(t, 2.20, resp.TotalCardFee)
	assert.Equal(t, 89.30, resp.GrandTotal)
	assert.Equal(t, "Jane", resp.ClientFirstName)

	require.NotNil(t, apptRepo.created)
	require.Len(t, apptRepo.created.Services, 1)
	assert.True(t, apptRepo.created.Services[0].IsOriginal)
}

func TestExecuteRequiresServices(t *testing.T) {
	uc, _ := newTestUseCase(&appointmentRepoMock{}, fullWeekSchedule(), nil)

	_, err := uc.Execute(context.Background(), &Request{
		StylistID: 1,
		StartAt:   testMondayStart,
	})

	assert.ErrorIs(t, err, ErrServiceRequired)
}

func TestExecuteRejectsUnknownService(t *testing.T) {
	uc, _ := newTestUseCase(&appointmentRepoMock{}, fullWeekSchedule(), nil)

	_, err := uc.Execute(context.Background(), &Request{
		StylistID: 1,
		StartAt:   testMondayStart,
		Services:  []uuid.UUID{uuid.New()},
	})

	assert.ErrorIs(t, err, ErrServiceDoesNotExist)
}

func TestExecuteRejectsPastStart(t *testing.T) {
	uc, serviceUUID := newTestUseCase(&appointmentRepoMock{}, fullWeekSchedule(), nil)

	_, err := uc.Execute(context.Background(), &Request{
		StylistID: 1,
		StartAt:   testNow.Add(-time.Hour),
		Services:  []uuid.UUID{serviceUUID},
	})

	assert.ErrorIs(t, err, ErrAppointmentInThePast)
}

func TestExecuteRejectsOutsideWorkingHours(t *testing.T) {
	uc, serviceUUID := newTestUseCase(&appointmentRepoMock{}, &scheduleRepoMock{days: map[domain.Weekday]*domain.WorkingDay{}}, nil)

	_, err := uc.Execute(context.Background(), &Request{
		StylistID: 1,
		StartAt:   testMondayStart,
		Services:  []uuid.UUID{serviceUUID},
	})

	assert.ErrorIs(t, err, ErrOutsideWorkingHours)
}

func TestExecuteRejectsWindowSpillingPastClosing(t *testing.T) {
	uc, serviceUUID := newTestUseCase(&appointmentRepoMock{}, fullWeekSchedule(), nil)

	// 17:30 + 60min runs past the 18:00 closing
	_, err := uc.Execute(context.Background(), &Request{
		StylistID: 1,
		StartAt:   time.Date(2025, 6, 2, 17, 30, 0, 0, time.UTC),
		Services:  []uuid.UUID{serviceUUID},
	})

	assert.ErrorIs(t, err, ErrOutsideWorkingHours)
}

func TestExecuteDetectsIntersection(t *testing.T) {
	existing := &domain.Appointment{
		StartAt:  testMondayStart.Add(30 * time.Minute),
		Status:   domain.StatusScheduled,
		Services: []domain.AppointmentService{{DurationMinutes: 60}},
	}
	uc, serviceUUID := newTestUseCase(&appointmentRepoMock{existing: []*domain.Appointment{existing}}, fullWeekSchedule(), nil)

	_, err := uc.Execute(context.Background(), &Request{
		StylistID: 1,
		StartAt:   testMondayStart,
		Services:  []uuid.UUID{serviceUUID},
	})

	assert.ErrorIs(t, err, ErrAppointmentIntersection)
}

func TestExecuteAllowsBackToBack(t *testing.T) {
	// existing [11:00, 12:00), new [10:00, 11:00): equal boundary, no conflict
	existing := &domain.Appointment{
		StartAt:  testMondayStart.Add(time.Hour),
		Status:   domain.StatusScheduled,
		Services: []domain.AppointmentService{{DurationMinutes: 60}},
	}
	uc, serviceUUID := newTestUseCase(&appointmentRepoMock{existing: []*domain.Appointment{existing}}, fullWeekSchedule(), nil)

	_, err := uc.Execute(context.Background(), &Request{
		StylistID: 1,
		StartAt:   testMondayStart,
		Services:  []uuid.UUID{serviceUUID},
	})

	assert.NoError(t, err)
}

func TestExecuteForceBypassesTimeChecks(t *testing.T) {
	existing := &domain.Appointment{
		StartAt:  testNow.Add(-2 * time.Hour),
		Status:   domain.StatusScheduled,
		Services: []domain.AppointmentService{{DurationMinutes: 60}},
	}
	// нет расписания, время в прошлом, есть пересечение - force обходит все три
	uc, serviceUUID := newTestUseCase(
		&appointmentRepoMock{existing: []*domain.Appointment{existing}},
		&scheduleRepoMock{days: map[domain.Weekday]*domain.WorkingDay{}},
		nil,
	)

	resp, err := uc.Execute(context.Background(), &Request{
		StylistID: 1,
		StartAt:   testNow.Add(-90 * time.Minute),
		Services:  []uuid.UUID{serviceUUID},
		Force:     true,
	})

	require.NoError(t, err)
	assert.Equal(t, string(domain.StatusScheduled), resp.Status)
}

func TestExecuteForceStillRequiresExistingService(t *testing.T) {
	uc, _ := newTestUseCase(&appointmentRepoMock{}, fullWeekSchedule(), nil)

	_, err := uc.Execute(context.Background(), &Request{
		StylistID: 1,
		StartAt:   testMondayStart,
		Services:  []uuid.UUID{uuid.New()},
		Force:     true,
	})

	assert.ErrorIs(t, err, ErrServiceDoesNotExist)
}

func TestExecuteRejectsUnknownClient(t *testing.T) {
	uc, serviceUUID := newTestUseCase(&appointmentRepoMock{}, fullWeekSchedule(), nil)

	unknownClient := uuid.New()
	_, err := uc.Execute(context.Background(), &Request{
		StylistID:  1,
		ClientUUID: &unknownClient,
		StartAt:    testMondayStart,
		Services:   []uuid.UUID{serviceUUID},
	})

	assert.ErrorIs(t, err, ErrClientDoesNotExist)
}
