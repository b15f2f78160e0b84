package workstation

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/eduhub/WSB-BookingService/internal/domain"
	"github.com/eduhub/WSB-BookingService/pkg/dbmetrics"
	"github.com/eduhub/WSB-BookingService/pkg/psqlbuilder"
)

var workstationColumns = []string{
	"id",
	"room_id",
	"name",
	"status",
	"created_at",
	"updated_at",
}

// Repository read-модель рабочих мест. Административный CRUD живет
// во внешнем контуре, здесь только чтение для планирования слотов.
type Repository struct {
	db dbmetrics.DBExecutor
}

// NewRepository создает новый экземпляр репозитория рабочих мест
func NewRepository(db dbmetrics.DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetByID получает рабочее место по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Workstation, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(workstationColumns...).
		From("workstations").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	var ws domain.Workstation
	var createdAt, updatedAt sql.NullTime

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&ws.ID,
		&ws.RoomID,
		&ws.Name,
		&ws.Status,
		&createdAt,
		&updatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, ErrWorkstationNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan workstation: %v", ErrScanRow, err)
	}

	ws.CreatedAt = createdAt.Time
	ws.UpdatedAt = updatedAt.Time

	return &ws, nil
}

// GetByRoom получает все рабочие места комнаты
func (r *Repository) GetByRoom(ctx context.Context, roomID int64) ([]*domain.Workstation, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(workstationColumns...).
		From("workstations").
		Where(squirrel.Eq{"room_id": roomID}).
		OrderBy("name ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByRoom - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByRoom - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	workstations := make([]*domain.Workstation, 0)
	for rows.Next() {
		var ws domain.Workstation
		var createdAt, updatedAt sql.NullTime

		if err := rows.Scan(&ws.ID, &ws.RoomID, &ws.Name, &ws.Status, &createdAt, &updatedAt); err != nil {
			return nil, fmt.Errorf("%w: GetByRoom - scan row: %v", ErrScanRow, err)
		}

		ws.CreatedAt = createdAt.Time
		ws.UpdatedAt = updatedAt.Time
		workstations = append(workstations, &ws)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetByRoom - rows error: %v", ErrScanRow, err)
	}

	return workstations, nil
}
