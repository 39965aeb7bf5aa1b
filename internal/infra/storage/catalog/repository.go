package catalog

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	"github.com/m04kA/SMC-AppointmentService/pkg/dbmetrics"
	"github.com/m04kA/SMC-AppointmentService/pkg/psqlbuilder"
)

// Repository репозиторий каталога услуг: услуги стилистов и шаблоны
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория каталога
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

const serviceColumns = "id, uuid, stylist_id, name, description, base_price, duration_minutes, " +
	"is_enabled, service_origin_uuid, deleted_at, created_at, updated_at"

// GetActiveByUUID получает активную (не удаленную) услугу стилиста
func (r *Repository) GetActiveByUUID(ctx context.Context, stylistID int64, serviceUUID uuid.UUID) (*domain.StylistService, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(serviceColumns).
		From("stylist_services").
		Where(squirrel.Eq{"stylist_id": stylistID, "uuid": serviceUUID, "deleted_at": nil}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetActiveByUUID - build select query: %v", ErrBuildQuery, err)
	}

	return r.scanService(executor.QueryRowContext(ctx, query, args...))
}

// GetActiveByStylist получает все активные услуги стилиста
func (r *Repository) GetActiveByStylist(ctx context.Context, stylistID int64) ([]*domain.StylistService, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(serviceColumns).
		From("stylist_services").
		Where(squirrel.Eq{"stylist_id": stylistID, "deleted_at": nil}).
		OrderBy("name ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetActiveByStylist - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetActiveByStylist - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	services := make([]*domain.StylistService, 0)
	for rows.Next() {
		svc, err := r.scanService(rows)
		if err != nil {
			return nil, err
		}
		services = append(services, svc)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetActiveByStylist - rows error: %v", ErrScanRow, err)
	}

	return services, nil
}

// Create создает услугу стилиста
func (r *Repository) Create(ctx context.Context, svc *domain.StylistService) (*domain.StylistService, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	if svc.UUID == uuid.Nil {
		svc.UUID = uuid.New()
	}

	query, args, err := psqlbuilder.Insert("stylist_services").
		Columns(
			"uuid",
			"stylist_id",
			"name",
			"description",
			"base_price",
			"duration_minutes",
			"is_enabled",
			"service_origin_uuid",
		).
		Values(
			svc.UUID,
			svc.StylistID,
			svc.Name,
			svc.Description,
			svc.BasePrice,
			svc.DurationMinutes,
			svc.IsEnabled,
			svc.ServiceOriginUUID,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(&svc.ID, &createdAt, &updatedAt)
	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	svc.CreatedAt = createdAt.Time
	svc.UpdatedAt = updatedAt.Time

	return svc, nil
}

// Update обновляет услугу стилиста
func (r *Repository) Update(ctx context.Context, svc *domain.StylistService) (*domain.StylistService, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("stylist_services").
		Set("name", svc.Name).
		Set("description", svc.Description).
		Set("base_price", svc.BasePrice).
		Set("duration_minutes", svc.DurationMinutes).
		Set("is_enabled", svc.IsEnabled).
		Set("service_origin_uuid", svc.ServiceOriginUUID).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": svc.ID, "deleted_at": nil}).
		Suffix("RETURNING updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Update - build update query: %v", ErrBuildQuery, err)
	}

	var updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(&updatedAt)
	if err == sql.ErrNoRows {
		return nil, ErrServiceNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: Update - execute update: %v", ErrExecQuery, err)
	}

	svc.UpdatedAt = updatedAt.Time

	return svc, nil
}

// SoftDelete помечает услугу стилиста удаленной. Снапшоты в существующих
// записях при этом не трогаются.
func (r *Repository) SoftDelete(ctx context.Context, stylistID int64, serviceUUID uuid.UUID) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("stylist_services").
		Set("deleted_at", squirrel.Expr("NOW()")).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"stylist_id": stylistID, "uuid": serviceUUID, "deleted_at": nil}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: SoftDelete - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: SoftDelete - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: SoftDelete - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrServiceNotFound
	}

	return nil
}

// GetTemplateByUUID получает шаблон услуги
func (r *Repository) GetTemplateByUUID(ctx context.Context, templateUUID uuid.UUID) (*domain.ServiceTemplate, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("uuid", "name", "base_price", "duration_minutes").
		From("service_templates").
		Where(squirrel.Eq{"uuid": templateUUID}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetTemplateByUUID - build select query: %v", ErrBuildQuery, err)
	}

	var tpl domain.ServiceTemplate
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&tpl.UUID,
		&tpl.Name,
		&tpl.BasePrice,
		&tpl.DurationMinutes,
	)
	if err == sql.ErrNoRows {
		return nil, ErrTemplateNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetTemplateByUUID - scan row: %v", ErrScanRow, err)
	}

	return &tpl, nil
}

// rowScanner общий интерфейс *sql.Row и *sql.Rows
type rowScanner interface {
	Scan(dest ...interface{}) error
}

func (r *Repository) scanService(row rowScanner) (*domain.StylistService, error) {
	var svc domain.StylistService
	var deletedAt, createdAt, updatedAt sql.NullTime

	err := row.Scan(
		&svc.ID,
		&svc.UUID,
		&svc.StylistID,
		&svc.Name,
		&svc.Description,
		&svc.BasePrice,
		&svc.DurationMinutes,
		&svc.IsEnabled,
		&svc.ServiceOriginUUID,
		&deletedAt,
		&createdAt,
		&updatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, ErrServiceNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: scanService - scan row: %v", ErrScanRow, err)
	}

	if deletedAt.Valid {
		svc.DeletedAt = &deletedAt.Time
	}
	svc.CreatedAt = createdAt.Time
	svc.UpdatedAt = updatedAt.Time

	return &svc, nil
}
