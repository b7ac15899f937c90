package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/campus-kit/society-events/internal/domain"
)

// TicketRepository encapsulates ticket persistence.
type TicketRepository interface {
	GetByID(ctx context.Context, id string) (*domain.Ticket, error)
	ListByPurchase(ctx context.Context, purchaseID string) ([]domain.Ticket, error)
	ListByUser(ctx context.Context, userID string) ([]domain.Ticket, error)
	UpdateStatus(ctx context.Context, id string, status domain.TicketStatus) error
}

type ticketRepository struct {
	pool *pgxpool.Pool
}

// NewTicketRepository instantiates repository.
func NewTicketRepository(pool *pgxpool.Pool) TicketRepository {
	return &ticketRepository{pool: pool}
}

func (r *ticketRepository) GetByID(ctx context.Context, id string) (*domain.Ticket, error) {
	const query = `
        SELECT id, purchase_id, ticket_type_id, event_id, user_id, code, status, created_at, updated_at
        FROM tickets WHERE id=$1`
	var ticket domain.Ticket
	if err := r.pool.QueryRow(ctx, query, id).Scan(
		&ticket.ID,
		&ticket.PurchaseID,
		&ticket.TicketTypeID,
		&ticket.EventID,
		&ticket.UserID,
		&ticket.Code,
		&ticket.Status,
		&ticket.CreatedAt,
		&ticket.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &ticket, nil
}

func (r *ticketRepository) ListByPurchase(ctx context.Context, purchaseID string) ([]domain.Ticket, error) {
	const query = `
        SELECT id, purchase_id, ticket_type_id, event_id, user_id, code, status, created_at, updated_at
        FROM tickets WHERE purchase_id=$1 ORDER BY created_at`
	rows, err := r.pool.Query(ctx, query, purchaseID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanTickets(rows)
}

func (r *ticketRepository) ListByUser(ctx context.Context, userID string) ([]domain.Ticket, error) {
	const query = `
        SELECT id, purchase_id, ticket_type_id, event_id, user_id, code, status, created_at, updated_at
        FROM tickets WHERE user_id=$1 ORDER BY created_at DESC`
	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanTickets(rows)
}

func (r *ticketRepository) UpdateStatus(ctx context.Context, id string, status domain.TicketStatus) error {
	const query = `UPDATE tickets SET status=$1, updated_at=NOW() WHERE id=$2`
	cmd, err := r.pool.Exec(ctx, query, status, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func scanTickets(rows pgx.Rows) ([]domain.Ticket, error) {
	var result []domain.Ticket
	for rows.Next() {
		var ticket domain.Ticket
		if err := rows.Scan(
			&ticket.ID,
			&ticket.PurchaseID,
			&ticket.TicketTypeID,
			&ticket.EventID,
			&ticket.UserID,
			&ticket.Code,
			&ticket.Status,
			&ticket.CreatedAt,
			&ticket.UpdatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, ticket)
	}
	return result, rows.Err()
}
