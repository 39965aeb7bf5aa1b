package schedule

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	"github.com/m04kA/SMC-AppointmentService/pkg/dbmetrics"
	"github.com/m04kA/SMC-AppointmentService/pkg/psqlbuilder"
)

// Repository репозиторий рабочего расписания стилистов
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория расписания
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetDay получает рабочий день стилиста для конкретного дня недели
func (r *Repository) GetDay(ctx context.Context, stylistID int64, weekday domain.Weekday) (*domain.WorkingDay, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("stylist_id", "weekday", "is_available", "work_start_at", "work_end_at").
		From("stylist_working_days").
		Where(squirrel.Eq{"stylist_id": stylistID, "weekday": int(weekday)}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetDay - build select query: %v", ErrBuildQuery, err)
	}

	var day domain.WorkingDay
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&day.StylistID,
		&day.Weekday,
		&day.IsAvailable,
		&day.WorkStartAt,
		&day.WorkEndAt,
	)
	if err == sql.ErrNoRows {
		return nil, ErrDayNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetDay - scan row: %v", ErrScanRow, err)
	}

	return &day, nil
}

// GetWeek получает все сохраненные рабочие дни стилиста, отсортированные
// по дню недели. Дней может быть меньше семи, если стилист еще не
// настраивал расписание полностью.
func (r *Repository) GetWeek(ctx context.Context, stylistID int64) ([]*domain.WorkingDay, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("stylist_id", "weekday", "is_available", "work_start_at", "work_end_at").
		From("stylist_working_days").
		Where(squirrel.Eq{"stylist_id": stylistID}).
		OrderBy("weekday ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetWeek - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetWeek - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	days := make([]*domain.WorkingDay, 0, 7)
	for rows.Next() {
		var day domain.WorkingDay
		err := rows.Scan(
			&day.StylistID,
			&day.Weekday,
			&day.IsAvailable,
			&day.WorkStartAt,
			&day.WorkEndAt,
		)
		if err != nil {
			return nil, fmt.Errorf("%w: GetWeek - scan row: %v", ErrScanRow, err)
		}
		days = append(days, &day)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetWeek - rows error: %v", ErrScanRow, err)
	}

	return days, nil
}

// UpsertDay сохраняет рабочий день стилиста, перезаписывая существующий
func (r *Repository) UpsertDay(ctx context.Context, day domain.WorkingDay) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("stylist_working_days").
		Columns("stylist_id", "weekday", "is_available", "work_start_at", "work_end_at").
		Values(day.StylistID, int(day.Weekday), day.IsAvailable, day.WorkStartAt, day.WorkEndAt).
		Suffix("ON CONFLICT (stylist_id, weekday) DO UPDATE SET " +
			"is_available = EXCLUDED.is_available, " +
			"work_start_at = EXCLUDED.work_start_at, " +
			"work_end_at = EXCLUDED.work_end_at, " +
			"updated_at = NOW()").
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: UpsertDay - build insert query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: UpsertDay - execute insert: %v", ErrExecQuery, err)
	}

	return nil
}
