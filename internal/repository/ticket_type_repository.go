package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/campus-kit/society-events/internal/domain"
)

// TicketTypeRepository reads purchasable ticket categories.
type TicketTypeRepository interface {
	GetByID(ctx context.Context, id string) (*domain.TicketType, error)
	ListByEvent(ctx context.Context, eventID string) ([]domain.TicketType, error)
}

type ticketTypeRepository struct {
	pool *pgxpool.Pool
}

// NewTicketTypeRepository instantiates repository.
func NewTicketTypeRepository(pool *pgxpool.Pool) TicketTypeRepository {
	return &ticketTypeRepository{pool: pool}
}

func (r *ticketTypeRepository) GetByID(ctx context.Context, id string) (*domain.TicketType, error) {
	const query = `
        SELECT id, event_id, name, price, quantity, archived, created_at
        FROM ticket_types WHERE id=$1`
	var tt domain.TicketType
	if err := r.pool.QueryRow(ctx, query, id).Scan(
		&tt.ID,
		&tt.EventID,
		&tt.Name,
		&tt.Price,
		&tt.Quantity,
		&tt.Archived,
		&tt.CreatedAt,
	); err != nil {
		return nil, err
	}
	return &tt, nil
}

func (r *ticketTypeRepository) ListByEvent(ctx context.Context, eventID string) ([]domain.TicketType, error) {
	const query = `
        SELECT id, event_id, name, price, quantity, archived, created_at
        FROM ticket_types WHERE event_id=$1 AND archived=false ORDER BY created_at`
	rows, err := r.pool.Query(ctx, query, eventID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanTicketTypes(rows)
}

func scanTicketTypes(rows pgx.Rows) ([]domain.TicketType, error) {
	var result []domain.TicketType
	for rows.Next() {
		var tt domain.TicketType
		if err := rows.Scan(
			&tt.ID,
			&tt.EventID,
			&tt.Name,
			&tt.Price,
			&tt.Quantity,
			&tt.Archived,
			&tt.CreatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, tt)
	}
	return result, rows.Err()
}
