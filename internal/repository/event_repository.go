package repository

import (
	"context"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/campus-kit/society-events/internal/domain"
)

// EventRepository encapsulates event persistence.
type EventRepository interface {
	Create(ctx context.Context, event *domain.Event, types []*domain.TicketType) error
	Update(ctx context.Context, event *domain.Event) error
	GetByID(ctx context.Context, id string) (*domain.Event, error)
	ListUpcoming(ctx context.Context, now time.Time) ([]domain.Event, error)
	SearchByName(ctx context.Context, term string) ([]domain.Event, error)
	Archive(ctx context.Context, id string) error
}

type eventRepository struct {
	pool *pgxpool.Pool
}

// NewEventRepository instantiates repository.
func NewEventRepository(pool *pgxpool.Pool) EventRepository {
	return &eventRepository{pool: pool}
}

// Create persists the event and its ticket types in one transaction so a
// failure on any type leaves no partial event behind.
func (r *eventRepository) Create(ctx context.Context, event *domain.Event, types []*domain.TicketType) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx) //nolint:errcheck

	const eventQuery = `
        INSERT INTO events (society_id, name, description, date, location, banner_url)
        VALUES ($1, $2, $3, $4, $5, $6)
        RETURNING id, created_at, updated_at`
	if err := tx.QueryRow(ctx, eventQuery,
		event.SocietyID,
		event.Name,
		event.Description,
		event.Date,
		event.Location,
		event.BannerURL,
	).Scan(&event.ID, &event.CreatedAt, &event.UpdatedAt); err != nil {
		return err
	}

	const typeQuery = `
        INSERT INTO ticket_types (event_id, name, price, quantity)
        VALUES ($1, $2, $3, $4)
        RETURNING id, created_at`
	for _, tt := range types {
		tt.EventID = event.ID
		if err := tx.QueryRow(ctx, typeQuery,
			tt.EventID,
			tt.Name,
			tt.Price,
			tt.Quantity,
		).Scan(&tt.ID, &tt.CreatedAt); err != nil {
			return err
		}
	}

	return tx.Commit(ctx)
}

func (r *eventRepository) Update(ctx context.Context, event *domain.Event) error {
	const query = `
        UPDATE events SET name=$1, description=$2, date=$3, location=$4, banner_url=$5, updated_at=NOW()
        WHERE id=$6`
	cmd, err := r.pool.Exec(ctx, query,
		event.Name,
		event.Description,
		event.Date,
		event.Location,
		event.BannerURL,
		event.ID,
	)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *eventRepository) GetByID(ctx context.Context, id string) (*domain.Event, error) {
	const query = `
        SELECT id, society_id, name, description, date, location, banner_url, archived, created_at, updated_at
        FROM events WHERE id=$1`
	return scanEvent(r.pool.QueryRow(ctx, query, id))
}

func (r *eventRepository) ListUpcoming(ctx context.Context, now time.Time) ([]domain.Event, error) {
	const query = `
        SELECT id, society_id, name, description, date, location, banner_url, archived, created_at, updated_at
        FROM events WHERE archived=false AND date >= $1 ORDER BY date`
	rows, err := r.pool.Query(ctx, query, now)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanEvents(rows)
}

func (r *eventRepository) SearchByName(ctx context.Context, term string) ([]domain.Event, error) {
	const query = `
        SELECT id, society_id, name, description, date, location, banner_url, archived, created_at, updated_at
        FROM events WHERE archived=false AND LOWER(name) LIKE $1 ORDER BY date`
	pattern := "%" + strings.ToLower(strings.TrimSpace(term)) + "%"
	rows, err := r.pool.Query(ctx, query, pattern)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanEvents(rows)
}

func (r *eventRepository) Archive(ctx context.Context, id string) error {
	const query = `UPDATE events SET archived=true, updated_at=NOW() WHERE id=$1`
	cmd, err := r.pool.Exec(ctx, query, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func scanEvent(row pgx.Row) (*domain.Event, error) {
	var event domain.Event
	if err := row.Scan(
		&event.ID,
		&event.SocietyID,
		&event.Name,
		&event.Description,
		&event.Date,
		&event.Location,
		&event.BannerURL,
		&event.Archived,
		&event.CreatedAt,
		&event.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &event, nil
}

func scanEvents(rows pgx.Rows) ([]domain.Event, error) {
	var result []domain.Event
	for rows.Next() {
		var event domain.Event
		if err := rows.Scan(
			&event.ID,
			&event.SocietyID,
			&event.Name,
			&event.Description,
			&event.Date,
			&event.Location,
			&event.BannerURL,
			&event.Archived,
			&event.CreatedAt,
			&event.UpdatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, event)
	}
	return result, rows.Err()
}
