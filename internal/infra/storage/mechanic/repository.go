package mechanic

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-GarageService/internal/domain"
	"github.com/m04kA/SMC-GarageService/pkg/dbmetrics"
	"github.com/m04kA/SMC-GarageService/pkg/psqlbuilder"
)

var mechanicColumns = []string{
	"id",
	"name",
	"email",
	"contact",
	"specialization",
	"experience",
	"shift",
	"hourly_rate",
	"available",
	"available_slots",
	"total_slots",
	"created_at",
	"updated_at",
}

// Repository репозиторий для работы с механиками
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория механиков
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetByID получает механика по ID.
// Внутри транзакции блокирует строку (FOR UPDATE) — slot ledger захватывает
// счётчик слотов до проверки вместимости, сериализуя конкурирующие брони и
// реактивации на одном механике.
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Mechanic, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(mechanicColumns...).
		From("mechanics").
		Where(squirrel.Eq{"id": id})

	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	var m domain.Mechanic
	var createdAt, updatedAt sql.NullTime

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&m.ID,
		&m.Name,
		&m.Email,
		&m.Contact,
		&m.Specialization,
		&m.Experience,
		&m.Shift,
		&m.HourlyRate,
		&m.Available,
		&m.AvailableSlots,
		&m.TotalSlots,
		&createdAt,
		&updatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, ErrMechanicNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan mechanic: %v", ErrScanRow, err)
	}

	m.CreatedAt = createdAt.Time
	m.UpdatedAt = updatedAt.Time

	return &m, nil
}

// List получает всех механиков, отсортированных по имени
func (r *Repository) List(ctx context.Context) ([]*domain.Mechanic, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(mechanicColumns...).
		From("mechanics").
		OrderBy("name ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: List - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: List - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	mechanics := make([]*domain.Mechanic, 0)

	for rows.Next() {
		var m domain.Mechanic
		var createdAt, updatedAt sql.NullTime

		err := rows.Scan(
			&m.ID,
			&m.Name,
			&m.Email,
			&m.Contact,
			&m.Specialization,
			&m.Experience,
			&m.Shift,
			&m.HourlyRate,
			&m.Available,
			&m.AvailableSlots,
			&m.TotalSlots,
			&createdAt,
			&updatedAt,
		)

		if err != nil {
			return nil, fmt.Errorf("%w: List - scan row: %v", ErrScanRow, err)
		}

		m.CreatedAt = createdAt.Time
		m.UpdatedAt = updatedAt.Time

		mechanics = append(mechanics, &m)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: List - rows error: %v", ErrScanRow, err)
	}

	return mechanics, nil
}

// UpdateSlots записывает новое значение available_slots механика.
// Вызывается только slot ledger'ом и только внутри транзакции, в которой
// строка механика уже заблокирована.
func (r *Repository) UpdateSlots(ctx context.Context, id int64, availableSlots int) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("mechanics").
		Set("available_slots", availableSlots).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: UpdateSlots - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: UpdateSlots - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: UpdateSlots - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrMechanicNotFound
	}

	return nil
}
