package stylist

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	"github.com/m04kA/SMC-AppointmentService/pkg/dbmetrics"
	"github.com/m04kA/SMC-AppointmentService/pkg/psqlbuilder"
)

// Repository репозиторий профилей стилистов
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория профилей
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetProfile получает профиль стилиста
func (r *Repository) GetProfile(ctx context.Context, stylistID int64) (*domain.StylistProfile, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("stylist_id", "timezone", "include_tax", "include_card_fee").
		From("stylist_profiles").
		Where(squirrel.Eq{"stylist_id": stylistID}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetProfile - build select query: %v", ErrBuildQuery, err)
	}

	var profile domain.StylistProfile
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&profile.StylistID,
		&profile.Timezone,
		&profile.IncludeTax,
		&profile.IncludeCardFee,
	)
	if err == sql.ErrNoRows {
		return nil, ErrProfileNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetProfile - scan row: %v", ErrScanRow, err)
	}

	return &profile, nil
}

// UpsertProfile сохраняет профиль стилиста, перезаписывая существующий
func (r *Repository) UpsertProfile(ctx context.Context, profile domain.StylistProfile) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("stylist_profiles").
		Columns("stylist_id", "timezone", "include_tax", "include_card_fee").
		Values(profile.StylistID, profile.Timezone, profile.IncludeTax, profile.IncludeCardFee).
		Suffix("ON CONFLICT (stylist_id) DO UPDATE SET " +
			"timezone = EXCLUDED.timezone, " +
			"include_tax = EXCLUDED.include_tax, " +
			"include_card_fee = EXCLUDED.include_card_fee, " +
			"updated_at = NOW()").
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: UpsertProfile - build insert query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: UpsertProfile - execute insert: %v", ErrExecQuery, err)
	}

	return nil
}
