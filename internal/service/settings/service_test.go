package settings

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	catalogRepo "github.com/m04kA/SMC-AppointmentService/internal/infra/storage/catalog"
	discountRepo "github.com/m04kA/SMC-AppointmentService/internal/infra/storage/discount"
	stylistRepo "github.com/m04kA/SMC-AppointmentService/internal/infra/storage/stylist"
	"github.com/m04kA/SMC-AppointmentService/internal/service/settings/models"
	"github.com/m04kA/SMC-AppointmentService/pkg/ptr"
	"github.com/m04kA/SMC-AppointmentService/pkg/types"
)

// Моки зависимостей

type scheduleRepoMock struct {
	week     []*domain.WorkingDay
	upserted []domain.WorkingDay
}

func (m *scheduleRepoMock) GetWeek(_ context.Context, _ int64) ([]*domain.WorkingDay, error) {
	return m.week, nil
}

func (m *scheduleRepoMock) UpsertDay(_ context.Context, day domain.WorkingDay) error {
	m.upserted = append(m.upserted, day)
	return nil
}

type discountRepoMock struct {
	saved *domain.StylistDiscounts
}

func (m *discountRepoMock) Get(_ context.Context, _ int64) (*domain.StylistDiscounts, error) {
	if m.saved == nil {
		return nil, discountRepo.ErrDiscountsNotFound
	}
	return m.saved, nil
}

func (m *discountRepoMock) Upsert(_ context.Context, discounts domain.StylistDiscounts) error {
	m.saved = &discounts
	return nil
}

type catalogRepoMock struct {
	services  map[uuid.UUID]*domain.StylistService
	templates map[uuid.UUID]*domain.ServiceTemplate

	created []*domain.StylistService
	updated []*domain.StylistService
	deleted []uuid.UUID
}

func (m *catalogRepoMock) GetActiveByStylist(_ context.Context, _ int64) ([]*domain.StylistService, error) {
	list := make([]*domain.StylistService, 0, len(m.services))
	for _, svc := range m.services {
		list = append(list, svc)
	}
	return list, nil
}

func (m *catalogRepoMock) GetActiveByUUID(_ context.Context, _ int64, serviceUUID uuid.UUID) (*domain.StylistService, error) {
	svc, ok := m.services[serviceUUID]
	if !ok {
		return nil, catalogRepo.ErrServiceNotFound
	}
	return svc, nil
}

func (m *catalogRepoMock) Create(_ context.Context, svc *domain.StylistService) (*domain.StylistService, error) {
	svc.ID = int64(len(m.created) + 1)
	svc.UUID = uuid.New()
	m.created = append(m.created, svc)
	if m.services == nil {
		m.services = make(map[uuid.UUID]*domain.StylistService)
	}
	m.services[svc.UUID] = svc
	return svc, nil
}

func (m *catalogRepoMock) Update(_ context.Context, svc *domain.StylistService) (*domain.StylistService, error) {
	m.updated = append(m.updated, svc)
	m.services[svc.UUID] = svc
	return svc, nil
}

func (m *catalogRepoMock) SoftDelete(_ context.Context, _ int64, serviceUUID uuid.UUID) error {
	if _, ok := m.services[serviceUUID]; !ok {
		return catalogRepo.ErrServiceNotFound
	}
	m.deleted = append(m.deleted, serviceUUID)
	delete(m.services, serviceUUID)
	return nil
}

func (m *catalogRepoMock) GetTemplateByUUID(_ context.Context, templateUUID uuid.UUID) (*domain.ServiceTemplate, error) {
	tpl, ok := m.templates[templateUUID]
	if !ok {
		return nil, catalogRepo.ErrTemplateNotFound
	}
	return tpl, nil
}

type appointmentRepoMock struct {
	week       []*domain.Appointment
	lastFilter domain.AppointmentsFilter
}

func (m *appointmentRepoMock) GetByStylistWithFilter(_ context.Context, filter domain.AppointmentsFilter) ([]*domain.Appointment, error) {
	m.lastFilter = filter
	return m.week, nil
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

type timeProviderMock struct {
	now time.Time
}

func (m *timeProviderMock) Now() time.Time {
	return m.now
}

type txManagerMock struct{}

func (m *txManagerMock) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type loggerMock struct{}

func (l *loggerMock) Info(_ string, _ ...interface{})  {}
func (l *loggerMock) Warn(_ string, _ ...interface{})  {}
func (l *loggerMock) Error(_ string, _ ...interface{}) {}

const testStylistID = int64(42)

// Среда
var testNow = time.Date(2025, 6, 4, 14, 0, 0, 0, time.UTC)

func newTestService(schedule *scheduleRepoMock, discounts *discountRepoMock, catalog *catalogRepoMock) *Service {
	return newTestServiceWithAppointments(schedule, discounts, catalog, &appointmentRepoMock{})
}

func newTestServiceWithAppointments(schedule *scheduleRepoMock, discounts *discountRepoMock, catalog *catalogRepoMock, appointments *appointmentRepoMock) *Service {
	if schedule == nil {
		schedule = &scheduleRepoMock{}
	}
	if discounts == nil {
		discounts = &discountRepoMock{}
	}
	if catalog == nil {
		catalog = &catalogRepoMock{}
	}
	return NewService(
		schedule,
		discounts,
		catalog,
		appointments,
		&stylistRepoMock{},
		&txManagerMock{},
		&timeProviderMock{now: testNow},
		&loggerMock{},
	)
}

// Рабочее расписание

func TestGetWorkingHours_FillsMissingDaysAsUnavailable(t *testing.T) {
	monday := domain.WorkingDay{
		StylistID:   testStylistID,
		Weekday:     domain.Monday,
		IsAvailable: true,
		WorkStartAt: types.TimeString("09:00"),
		WorkEndAt:   types.TimeString("18:00"),
	}
	schedule := &scheduleRepoMock{week: []*domain.WorkingDay{&monday}}
	svc := newTestService(schedule, nil, nil)

	resp, err := svc.GetWorkingHours(context.Background(), testStylistID)

	require.NoError(t, err)
	require.Len(t, resp.Days, 7)
	assert.True(t, resp.Days[0].IsAvailable)
	assert.Equal(t, "09:00", resp.Days[0].WorkStartAt)
	for _, day := range resp.Days[1:] {
		assert.False(t, day.IsAvailable)
		assert.Empty(t, day.WorkStartAt)
	}
	// Чтение не создает строк в БД
	assert.Empty(t, schedule.upserted)
}

func TestGetWorkingHours_IncludesBookedTimeForCurrentWeek(t *testing.T) {
	appointments := &appointmentRepoMock{week: []*domain.Appointment{
		{
			UUID:     uuid.New(),
			StartAt:  time.Date(2025, 6, 2, 10, 0, 0, 0, time.UTC), // понедельник
			Status:   domain.StatusScheduled,
			Services: []domain.AppointmentService{{DurationMinutes: 60}},
		},
		{
			UUID:     uuid.New(),
			StartAt:  time.Date(2025, 6, 2, 13, 0, 0, 0, time.UTC),
			Status:   domain.StatusScheduled,
			Services: []domain.AppointmentService{{DurationMinutes: 30}},
		},
		{
			UUID:     uuid.New(),
			StartAt:  time.Date(2025, 6, 4, 9, 0, 0, 0, time.UTC), // среда
			Status:   domain.StatusCheckedOut,
			Services: []domain.AppointmentService{{DurationMinutes: 45}},
		},
	}}
	svc := newTestServiceWithAppointments(nil, nil, nil, appointments)

	resp, err := svc.GetWorkingHours(context.Background(), testStylistID)

	require.NoError(t, err)
	require.Len(t, resp.Days, 7)

	assert.Equal(t, 90, resp.Days[0].BookedTimeMinutes)
	assert.Equal(t, 2, resp.Days[0].BookedAppointmentsCount)
	assert.Equal(t, 45, resp.Days[2].BookedTimeMinutes)
	assert.Equal(t, 1, resp.Days[2].BookedAppointmentsCount)
	for _, i := range []int{1, 3, 4, 5, 6} {
		assert.Zero(t, resp.Days[i].BookedTimeMinutes)
		assert.Zero(t, resp.Days[i].BookedAppointmentsCount)
	}

	// Запрошена ровно текущая неделя, с понедельника по понедельник
	require.NotNil(t, appointments.lastFilter.From)
	require.NotNil(t, appointments.lastFilter.To)
	assert.Equal(t, time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC), *appointments.lastFilter.From)
	assert.Equal(t, time.Date(2025, 6, 9, 0, 0, 0, 0, time.UTC), *appointments.lastFilter.To)
}

func TestSetWorkingHours_SavesDays(t *testing.T) {
	schedule := &scheduleRepoMock{}
	svc := newTestService(schedule, nil, nil)

	_, err := svc.SetWorkingHours(context.Background(), &models.SetWorkingHoursRequest{
		StylistID: testStylistID,
		Days: []models.WorkingDayInput{
			{Weekday: 1, IsAvailable: true, WorkStartAt: "10:00", WorkEndAt: "19:00"},
			{Weekday: 2, IsAvailable: false},
		},
	})

	require.NoError(t, err)
	require.Len(t, schedule.upserted, 2)
	assert.Equal(t, domain.Monday, schedule.upserted[0].Weekday)
	assert.True(t, schedule.upserted[0].IsAvailable)
	assert.False(t, schedule.upserted[1].IsAvailable)
}

func TestSetWorkingHours_RejectsInvertedTimes(t *testing.T) {
	svc := newTestService(nil, nil, nil)

	_, err := svc.SetWorkingHours(context.Background(), &models.SetWorkingHoursRequest{
		StylistID: testStylistID,
		Days: []models.WorkingDayInput{
			{Weekday: 1, IsAvailable: true, WorkStartAt: "19:00", WorkEndAt: "10:00"},
		},
	})

	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestSetWorkingHours_RequiresTimesForAvailableDay(t *testing.T) {
	svc := newTestService(nil, nil, nil)

	_, err := svc.SetWorkingHours(context.Background(), &models.SetWorkingHoursRequest{
		StylistID: testStylistID,
		Days: []models.WorkingDayInput{
			{Weekday: 3, IsAvailable: true},
		},
	})

	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestSetWorkingHours_RejectsUnknownWeekday(t *testing.T) {
	svc := newTestService(nil, nil, nil)

	_, err := svc.SetWorkingHours(context.Background(), &models.SetWorkingHoursRequest{
		StylistID: testStylistID,
		Days: []models.WorkingDayInput{
			{Weekday: 8, IsAvailable: false},
		},
	})

	assert.ErrorIs(t, err, ErrInvalidInput)
}

// Скидки

func TestGetDiscounts_DefaultsUntilConfigured(t *testing.T) {
	svc := newTestService(nil, &discountRepoMock{}, nil)

	resp, err := svc.GetDiscounts(context.Background(), testStylistID)

	require.NoError(t, err)
	assert.False(t, resp.IsConfigured)
	assert.Equal(t, domain.DefaultWeekdayDiscountPercent, resp.WeekdayPercents[1])
	assert.Equal(t, domain.DefaultWeekendDiscountPercent, resp.WeekdayPercents[6])
	assert.Equal(t, domain.DefaultFirstBookingDiscountPercent, resp.FirstBookingPercent)
}

func TestSetDiscounts_ClampsAndMarksConfigured(t *testing.T) {
	repo := &discountRepoMock{}
	svc := newTestService(nil, repo, nil)

	resp, err := svc.SetDiscounts(context.Background(), &models.SetDiscountsRequest{
		StylistID: testStylistID,
		WeekdayPercents: map[int]int{
			1: 150,
			2: -10,
			3: 15,
		},
		FirstBookingPercent:       45,
		RebookWithin1WeekPercent:  30,
		RebookWithin2WeeksPercent: 20,
	})

	require.NoError(t, err)
	assert.True(t, resp.IsConfigured)
	assert.Equal(t, 100, resp.WeekdayPercents[1])
	assert.Equal(t, 0, resp.WeekdayPercents[2])
	assert.Equal(t, 15, resp.WeekdayPercents[3])

	require.NotNil(t, repo.saved)
	assert.True(t, repo.saved.IsConfigured)
}

// Каталог услуг

func TestUpsertServices_MatchingTemplateInheritsOrigin(t *testing.T) {
	tpl := &domain.ServiceTemplate{
		UUID:            uuid.New(),
		Name:            "Haircut",
		BasePrice:       60.00,
		DurationMinutes: 45,
	}
	catalog := &catalogRepoMock{templates: map[uuid.UUID]*domain.ServiceTemplate{tpl.UUID: tpl}}
	svc := newTestService(nil, nil, catalog)

	_, err := svc.UpsertServices(context.Background(), &models.UpsertServicesRequest{
		StylistID: testStylistID,
		Services: []models.ServiceInput{
			{
				TemplateUUID:    ptr.Ptr(tpl.UUID),
				Name:            "Haircut",
				BasePrice:       60.00,
				DurationMinutes: 45,
				IsEnabled:       true,
			},
		},
	})

	require.NoError(t, err)
	require.Len(t, catalog.created, 1)
	assert.Equal(t, tpl.UUID, catalog.created[0].ServiceOriginUUID)
}

func TestUpsertServices_CustomizedServiceGetsOwnOrigin(t *testing.T) {
	tpl := &domain.ServiceTemplate{
		UUID:            uuid.New(),
		Name:            "Haircut",
		BasePrice:       60.00,
		DurationMinutes: 45,
	}
	catalog := &catalogRepoMock{templates: map[uuid.UUID]*domain.ServiceTemplate{tpl.UUID: tpl}}
	svc := newTestService(nil, nil, catalog)

	_, err := svc.UpsertServices(context.Background(), &models.UpsertServicesRequest{
		StylistID: testStylistID,
		Services: []models.ServiceInput{
			{
				TemplateUUID:    ptr.Ptr(tpl.UUID),
				Name:            "Haircut Deluxe",
				BasePrice:       85.00,
				DurationMinutes: 60,
				IsEnabled:       true,
			},
		},
	})

	require.NoError(t, err)
	require.Len(t, catalog.created, 1)
	assert.NotEqual(t, tpl.UUID, catalog.created[0].ServiceOriginUUID)
	assert.NotEqual(t, uuid.Nil, catalog.created[0].ServiceOriginUUID)
}

func TestUpsertServices_UpdateKeepsCurrentOrigin(t *testing.T) {
	origin := uuid.New()
	existing := &domain.StylistService{
		ID:                1,
		UUID:              uuid.New(),
		StylistID:         testStylistID,
		Name:              "Haircut",
		BasePrice:         60.00,
		DurationMinutes:   45,
		IsEnabled:         true,
		ServiceOriginUUID: origin,
		CreatedAt:         time.Now(),
	}
	catalog := &catalogRepoMock{services: map[uuid.UUID]*domain.StylistService{existing.UUID: existing}}
	svc := newTestService(nil, nil, catalog)

	_, err := svc.UpsertServices(context.Background(), &models.UpsertServicesRequest{
		StylistID: testStylistID,
		Services: []models.ServiceInput{
			{
				UUID:            ptr.Ptr(existing.UUID),
				Name:            "Haircut",
				BasePrice:       70.00,
				DurationMinutes: 45,
				IsEnabled:       true,
			},
		},
	})

	require.NoError(t, err)
	require.Len(t, catalog.updated, 1)
	assert.Equal(t, origin, catalog.updated[0].ServiceOriginUUID)
	assert.Equal(t, 70.00, catalog.updated[0].BasePrice)
}

func TestUpsertServices_UnknownServiceRejected(t *testing.T) {
	svc := newTestService(nil, nil, &catalogRepoMock{services: map[uuid.UUID]*domain.StylistService{}})

	_, err := svc.UpsertServices(context.Background(), &models.UpsertServicesRequest{
		StylistID: testStylistID,
		Services: []models.ServiceInput{
			{
				UUID:            ptr.Ptr(uuid.New()),
				Name:            "Haircut",
				BasePrice:       60.00,
				DurationMinutes: 45,
			},
		},
	})

	assert.ErrorIs(t, err, ErrServiceNotFound)
}

func TestUpsertServices_InvalidInputRejected(t *testing.T) {
	svc := newTestService(nil, nil, nil)

	_, err := svc.UpsertServices(context.Background(), &models.UpsertServicesRequest{
		StylistID: testStylistID,
		Services: []models.ServiceInput{
			{Name: "", BasePrice: 60.00, DurationMinutes: 45},
		},
	})

	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestDeleteService_NotFound(t *testing.T) {
	svc := newTestService(nil, nil, &catalogRepoMock{services: map[uuid.UUID]*domain.StylistService{}})

	err := svc.DeleteService(context.Background(), testStylistID, uuid.New())

	assert.ErrorIs(t, err, ErrServiceNotFound)
}
