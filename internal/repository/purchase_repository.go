package repository

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/campus-kit/society-events/internal/domain"
)

// PurchaseRepository persists checkout transactions.
type PurchaseRepository interface {
	// CreateWithTickets writes the purchase row and every ticket row in a
	// single transaction. On any failure nothing is persisted.
	CreateWithTickets(ctx context.Context, purchase *domain.Purchase, tickets []*domain.Ticket) error
	ListByUserBeforeDate(ctx context.Context, userID string, cutoff time.Time) ([]domain.Purchase, error)
	ListByUserAfterDate(ctx context.Context, userID string, cutoff time.Time) ([]domain.Purchase, error)
}

type purchaseRepository struct {
	pool *pgxpool.Pool
}

// NewPurchaseRepository instantiates repository.
func NewPurchaseRepository(pool *pgxpool.Pool) PurchaseRepository {
	return &purchaseRepository{pool: pool}
}

func (r *purchaseRepository) CreateWithTickets(ctx context.Context, purchase *domain.Purchase, tickets []*domain.Ticket) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx) //nolint:errcheck

	// The purchase id is assigned by the caller so ticket codes minted
	// before the insert can already reference it.
	const purchaseQuery = `
        INSERT INTO purchases (id, user_id, event_id, total, payment_method)
        VALUES ($1, $2, $3, $4, $5)
        RETURNING created_at`
	if err := tx.QueryRow(ctx, purchaseQuery,
		purchase.ID,
		purchase.UserID,
		purchase.EventID,
		purchase.Total,
		purchase.PaymentMethod,
	).Scan(&purchase.CreatedAt); err != nil {
		return err
	}

	const ticketQuery = `
        INSERT INTO tickets (purchase_id, ticket_type_id, event_id, user_id, code, status)
        VALUES ($1, $2, $3, $4, $5, $6)
        RETURNING id, created_at, updated_at`
	for _, ticket := range tickets {
		ticket.PurchaseID = purchase.ID
		if err := tx.QueryRow(ctx, ticketQuery,
			ticket.PurchaseID,
			ticket.TicketTypeID,
			ticket.EventID,
			ticket.UserID,
			ticket.Code,
			ticket.Status,
		).Scan(&ticket.ID, &ticket.CreatedAt, &ticket.UpdatedAt); err != nil {
			return err
		}
	}

	return tx.Commit(ctx)
}

func (r *purchaseRepository) ListByUserBeforeDate(ctx context.Context, userID string, cutoff time.Time) ([]domain.Purchase, error) {
	const query = `
        SELECT p.id, p.user_id, p.event_id, p.total, p.payment_method, p.archived, p.created_at
        FROM purchases p JOIN events e ON e.id = p.event_id
        WHERE p.user_id=$1 AND p.archived=false AND e.date <= $2
        ORDER BY p.created_at DESC`
	return r.list(ctx, query, userID, cutoff)
}

func (r *purchaseRepository) ListByUserAfterDate(ctx context.Context, userID string, cutoff time.Time) ([]domain.Purchase, error) {
	const query = `
        SELECT p.id, p.user_id, p.event_id, p.total, p.payment_method, p.archived, p.created_at
        FROM purchases p JOIN events e ON e.id = p.event_id
        WHERE p.user_id=$1 AND p.archived=false AND e.date >= $2
        ORDER BY e.date`
	return r.list(ctx, query, userID, cutoff)
}

func (r *purchaseRepository) list(ctx context.Context, query string, args ...any) ([]domain.Purchase, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanPurchases(rows)
}

func scanPurchases(rows pgx.Rows) ([]domain.Purchase, error) {
	var result []domain.Purchase
	for rows.Next() {
		var purchase domain.Purchase
		if err := rows.Scan(
			&purchase.ID,
			&purchase.UserID,
			&purchase.EventID,
			&purchase.Total,
			&purchase.PaymentMethod,
			&purchase.Archived,
			&purchase.CreatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, purchase)
	}
	return result, rows.Err()
}
