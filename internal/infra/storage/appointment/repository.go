package appointment

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	"github.com/m04kA/SMC-AppointmentService/pkg/dbmetrics"
	"github.com/m04kA/SMC-AppointmentService/pkg/psqlbuilder"
)

// Repository репозиторий для работы с записями на прием и их услугами
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория записей
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

const appointmentColumns = "id, uuid, stylist_id, client_uuid, client_first_name, client_last_name, " +
	"start_at, status, created_by, created_at, updated_at"

// CreateWithServices создает запись вместе со снапшотами услуг.
// Вызывается внутри транзакции (через txmanager), чтобы запись и её
// услуги появлялись атомарно: читатели никогда не видят запись без услуг.
func (r *Repository) CreateWithServices(ctx context.Context, appt *domain.Appointment) (*domain.Appointment, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	if appt.UUID == uuid.Nil {
		appt.UUID = uuid.New()
	}

	query, args, err := psqlbuilder.Insert("appointments").
		Columns(
			"uuid",
			"stylist_id",
			"client_uuid",
			"client_first_name",
			"client_last_name",
			"start_at",
			"status",
			"created_by",
		).
		Values(
			appt.UUID,
			appt.StylistID,
			appt.ClientUUID,
			appt.ClientFirstName,
			appt.ClientLastName,
			appt.StartAt,
			appt.Status,
			appt.CreatedBy,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: CreateWithServices - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&appt.ID,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("%w: CreateWithServices - execute insert: %v", ErrExecQuery, err)
	}

	appt.CreatedAt = createdAt.Time
	appt.UpdatedAt = updatedAt.Time

	if err := r.insertServices(ctx, executor, appt.ID, appt.Services); err != nil {
		return nil, err
	}

	return appt, nil
}

// GetByUUID получает запись стилиста по её публичному идентификатору
// вместе со снапшотами услуг
func (r *Repository) GetByUUID(ctx context.Context, stylistID int64, apptUUID uuid.UUID) (*domain.Appointment, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(appointmentColumns).
		From("appointments").
		Where(squirrel.Eq{"stylist_id": stylistID, "uuid": apptUUID}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByUUID - build select query: %v", ErrBuildQuery, err)
	}

	appt, err := r.scanAppointment(executor.QueryRowContext(ctx, query, args...))
	if err != nil {
		return nil, err
	}

	if err := r.attachServices(ctx, executor, []*domain.Appointment{appt}); err != nil {
		return nil, err
	}

	return appt, nil
}

// GetByStylistWithFilter получает записи стилиста с фильтрацией по
// периоду и включению отмененных. Услуги подгружаются одним запросом
// для всех найденных записей.
//
// Если вызов идет внутри транзакции и период задан с обеих сторон,
// добавляется FOR UPDATE - это путь проверки пересечений при создании.
func (r *Repository) GetByStylistWithFilter(ctx context.Context, filter domain.AppointmentsFilter) ([]*domain.Appointment, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(appointmentColumns).
		From("appointments").
		Where(squirrel.Eq{"stylist_id": filter.StylistID})

	// Фильтрация по периоду
	if filter.From != nil {
		selectBuilder = selectBuilder.Where(squirrel.GtOrEq{"start_at": *filter.From})
	}
	if filter.To != nil {
		selectBuilder = selectBuilder.Where(squirrel.Lt{"start_at": *filter.To})
	}

	// Отмененные записи не участвуют в проверке пересечений и истории
	if !filter.IncludeCancelled {
		cancelled := make([]string, len(domain.CancelledStatuses))
		for i, s := range domain.CancelledStatuses {
			cancelled[i] = string(s)
		}
		selectBuilder = selectBuilder.Where(squirrel.NotEq{"status": cancelled})
	}

	selectBuilder = selectBuilder.OrderBy("start_at ASC")

	if filter.Limit > 0 {
		selectBuilder = selectBuilder.Limit(uint64(filter.Limit))
	}

	// Блокировка строк при проверке пересечений внутри транзакции
	if dbmetrics.IsInTransaction(ctx) && filter.From != nil && filter.To != nil {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByStylistWithFilter - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByStylistWithFilter - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	appts, err := r.scanAppointments(rows)
	if err != nil {
		return nil, err
	}

	if err := r.attachServices(ctx, executor, appts); err != nil {
		return nil, err
	}

	return appts, nil
}

// GetLastClientAppointment получает последнюю неотмененную запись клиента
// у стилиста, начавшуюся раньше before. Используется политикой скидок.
func (r *Repository) GetLastClientAppointment(ctx context.Context, stylistID int64, clientUUID uuid.UUID, before time.Time) (*domain.Appointment, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	cancelled := make([]string, len(domain.CancelledStatuses))
	for i, s := range domain.CancelledStatuses {
		cancelled[i] = string(s)
	}

	query, args, err := psqlbuilder.Select(appointmentColumns).
		From("appointments").
		Where(squirrel.Eq{"stylist_id": stylistID, "client_uuid": clientUUID}).
		Where(squirrel.Lt{"start_at": before}).
		Where(squirrel.NotEq{"status": cancelled}).
		OrderBy("start_at DESC").
		Limit(1).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetLastClientAppointment - build select query: %v", ErrBuildQuery, err)
	}

	appt, err := r.scanAppointment(executor.QueryRowContext(ctx, query, args...))
	if err != nil {
		return nil, err
	}

	if err := r.attachServices(ctx, executor, []*domain.Appointment{appt}); err != nil {
		return nil, err
	}

	return appt, nil
}

// HasClientAppointments проверяет, есть ли у клиента хоть одна
// неотмененная запись у стилиста независимо от времени начала
func (r *Repository) HasClientAppointments(ctx context.Context, stylistID int64, clientUUID uuid.UUID) (bool, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	cancelled := make([]string, len(domain.CancelledStatuses))
	for i, s := range domain.CancelledStatuses {
		cancelled[i] = string(s)
	}

	query, args, err := psqlbuilder.Select("1").
		From("appointments").
		Where(squirrel.Eq{"stylist_id": stylistID, "client_uuid": clientUUID}).
		Where(squirrel.NotEq{"status": cancelled}).
		Limit(1).
		ToSql()

	if err != nil {
		return false, fmt.Errorf("%w: HasClientAppointments - build select query: %v", ErrBuildQuery, err)
	}

	var one int
	err = executor.QueryRowContext(ctx, query, args...).Scan(&one)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("%w: HasClientAppointments - execute query: %v", ErrExecQuery, err)
	}

	return true, nil
}

// UpdateStatus обновляет статус записи
func (r *Repository) UpdateStatus(ctx context.Context, id int64, status domain.AppointmentStatus) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("appointments").
		Set("status", status).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrAppointmentNotFound
	}

	return nil
}

// ReplaceServices полностью заменяет снапшоты услуг записи.
// Вызывается только внутри транзакции (чекаут): читатели видят либо
// полностью старый, либо полностью новый набор услуг.
func (r *Repository) ReplaceServices(ctx context.Context, appointmentID int64, services []domain.AppointmentService) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("appointment_services").
		Where(squirrel.Eq{"appointment_id": appointmentID}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: ReplaceServices - build delete query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: ReplaceServices - execute delete: %v", ErrExecQuery, err)
	}

	return r.insertServices(ctx, executor, appointmentID, services)
}

// insertServices вставляет снапшоты услуг для записи
func (r *Repository) insertServices(ctx context.Context, executor DBExecutor, appointmentID int64, services []domain.AppointmentService) error {
	if len(services) == 0 {
		return nil
	}

	insertBuilder := psqlbuilder.Insert("appointment_services").
		Columns(
			"uuid",
			"appointment_id",
			"service_uuid",
			"service_name",
			"duration_minutes",
			"regular_price",
			"client_price",
			"is_original",
		)

	for i := range services {
		if services[i].UUID == uuid.Nil {
			services[i].UUID = uuid.New()
		}
		services[i].AppointmentID = appointmentID

		insertBuilder = insertBuilder.Values(
			services[i].UUID,
			appointmentID,
			services[i].ServiceUUID,
			services[i].ServiceName,
			services[i].DurationMinutes,
			services[i].RegularPrice,
			services[i].ClientPrice,
			services[i].IsOriginal,
		)
	}

	query, args, err := insertBuilder.ToSql()
	if err != nil {
		return fmt.Errorf("%w: insertServices - build insert query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: insertServices - execute insert: %v", ErrExecQuery, err)
	}

	return nil
}

// attachServices подгружает снапшоты услуг для набора записей одним запросом
func (r *Repository) attachServices(ctx context.Context, executor DBExecutor, appts []*domain.Appointment) error {
	if len(appts) == 0 {
		return nil
	}

	ids := make([]int64, len(appts))
	byID := make(map[int64]*domain.Appointment, len(appts))
	for i, appt := range appts {
		ids[i] = appt.ID
		byID[appt.ID] = appt
		appt.Services = nil
	}

	query, args, err := psqlbuilder.Select(
		"id",
		"uuid",
		"appointment_id",
		"service_uuid",
		"service_name",
		"duration_minutes",
		"regular_price",
		"client_price",
		"is_original",
	).
		From("appointment_services").
		Where(squirrel.Eq{"appointment_id": ids}).
		OrderBy("id ASC").
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: attachServices - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: attachServices - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	for rows.Next() {
		var svc domain.AppointmentService
		err := rows.Scan(
			&svc.ID,
			&svc.UUID,
			&svc.AppointmentID,
			&svc.ServiceUUID,
			&svc.ServiceName,
			&svc.DurationMinutes,
			&svc.RegularPrice,
			&svc.ClientPrice,
			&svc.IsOriginal,
		)
		if err != nil {
			return fmt.Errorf("%w: attachServices - scan row: %v", ErrScanRow, err)
		}

		if appt, ok := byID[svc.AppointmentID]; ok {
			appt.Services = append(appt.Services, svc)
		}
	}

	if err := rows.Err(); err != nil {
		return fmt.Errorf("%w: attachServices - rows error: %v", ErrScanRow, err)
	}

	return nil
}

// rowScanner общий интерфейс *sql.Row и *sql.Rows
type rowScanner interface {
	Scan(dest ...interface{}) error
}

func (r *Repository) scanAppointment(row rowScanner) (*domain.Appointment, error) {
	var appt domain.Appointment
	var createdAt, updatedAt sql.NullTime

	err := row.Scan(
		&appt.ID,
		&appt.UUID,
		&appt.StylistID,
		&appt.ClientUUID,
		&appt.ClientFirstName,
		&appt.ClientLastName,
		&appt.StartAt,
		&appt.Status,
		&appt.CreatedBy,
		&createdAt,
		&updatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, ErrAppointmentNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: scanAppointment - scan row: %v", ErrScanRow, err)
	}

	appt.CreatedAt = createdAt.Time
	appt.UpdatedAt = updatedAt.Time

	return &appt, nil
}

func (r *Repository) scanAppointments(rows *sql.Rows) ([]*domain.Appointment, error) {
	appts := make([]*domain.Appointment, 0)

	for rows.Next() {
		appt, err := r.scanAppointment(rows)
		if err != nil {
			return nil, err
		}
		appts = append(appts, appt)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanAppointments - rows error: %v", ErrScanRow, err)
	}

	return appts, nil
}
