package discount

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	"github.com/m04kA/SMC-AppointmentService/pkg/dbmetrics"
	"github.com/m04kA/SMC-AppointmentService/pkg/psqlbuilder"
)

// Repository репозиторий настроек скидок стилистов.
// Настройки хранятся одной строкой на стилиста с колонкой на каждый
// день недели.
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория скидок
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Get получает настройки скидок стилиста
func (r *Repository) Get(ctx context.Context, stylistID int64) (*domain.StylistDiscounts, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"stylist_id",
		"monday_percent",
		"tuesday_percent",
		"wednesday_percent",
		"thursday_percent",
		"friday_percent",
		"saturday_percent",
		"sunday_percent",
		"first_booking_percent",
		"rebook_within_1_week_percent",
		"rebook_within_2_weeks_percent",
		"is_configured",
	).
		From("stylist_discounts").
		Where(squirrel.Eq{"stylist_id": stylistID}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Get - build select query: %v", ErrBuildQuery, err)
	}

	d := domain.StylistDiscounts{WeekdayPercents: make(map[domain.Weekday]int, 7)}
	var mon, tue, wed, thu, fri, sat, sun int

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&d.StylistID,
		&mon, &tue, &wed, &thu, &fri, &sat, &sun,
		&d.FirstBookingPercent,
		&d.RebookWithin1WeekPercent,
		&d.RebookWithin2WeeksPercent,
		&d.IsConfigured,
	)
	if err == sql.ErrNoRows {
		return nil, ErrDiscountsNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: Get - scan row: %v", ErrScanRow, err)
	}

	d.WeekdayPercents[domain.Monday] = mon
	d.WeekdayPercents[domain.Tuesday] = tue
	d.WeekdayPercents[domain.Wednesday] = wed
	d.WeekdayPercents[domain.Thursday] = thu
	d.WeekdayPercents[domain.Friday] = fri
	d.WeekdayPercents[domain.Saturday] = sat
	d.WeekdayPercents[domain.Sunday] = sun

	return &d, nil
}

// Upsert сохраняет настройки скидок стилиста, перезаписывая существующие
func (r *Repository) Upsert(ctx context.Context, d domain.StylistDiscounts) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("stylist_discounts").
		Columns(
			"stylist_id",
			"monday_percent",
			"tuesday_percent",
			"wednesday_percent",
			"thursday_percent",
			"friday_percent",
			"saturday_percent",
			"sunday_percent",
			"first_booking_percent",
			"rebook_within_1_week_percent",
			"rebook_within_2_weeks_percent",
			"is_configured",
		).
		Values(
			d.StylistID,
			d.WeekdayPercents[domain.Monday],
			d.WeekdayPercents[domain.Tuesday],
			d.WeekdayPercents[domain.Wednesday],
			d.WeekdayPercents[domain.Thursday],
			d.WeekdayPercents[domain.Friday],
			d.WeekdayPercents[domain.Saturday],
			d.WeekdayPercents[domain.Sunday],
			d.FirstBookingPercent,
			d.RebookWithin1WeekPercent,
			d.RebookWithin2WeeksPercent,
			d.IsConfigured,
		).
		Suffix("ON CONFLICT (stylist_id) DO UPDATE SET " +
			"monday_percent = EXCLUDED.monday_percent, " +
			"tuesday_percent = EXCLUDED.tuesday_percent, " +
			"wednesday_percent = EXCLUDED.wednesday_percent, " +
			"thursday_percent = EXCLUDED.thursday_percent, " +
			"friday_percent = EXCLUDED.friday_percent, " +
			"saturday_percent = EXCLUDED.saturday_percent, " +
			"sunday_percent = EXCLUDED.sunday_percent, " +
			"first_booking_percent = EXCLUDED.first_booking_percent, " +
			"rebook_within_1_week_percent = EXCLUDED.rebook_within_1_week_percent, " +
			"rebook_within_2_weeks_percent = EXCLUDED.rebook_within_2_weeks_percent, " +
			"is_configured = EXCLUDED.is_configured, " +
			"updated_at = NOW()").
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Upsert - build insert query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: Upsert - execute insert: %v", ErrExecQuery, err)
	}

	return nil
}
