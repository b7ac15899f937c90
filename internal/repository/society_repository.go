package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/campus-kit/society-events/internal/domain"
)

// SocietyRepository encapsulates society persistence.
type SocietyRepository interface {
	Create(ctx context.Context, society *domain.Society) error
	Update(ctx context.Context, society *domain.Society) error
	GetByID(ctx context.Context, id string) (*domain.Society, error)
	GetByName(ctx context.Context, name string) (*domain.Society, error)
	ListActive(ctx context.Context) ([]domain.Society, error)
	Archive(ctx context.Context, id string) error
}

type societyRepository struct {
	pool *pgxpool.Pool
}

// NewSocietyRepository instantiates repository.
func NewSocietyRepository(pool *pgxpool.Pool) SocietyRepository {
	return &societyRepository{pool: pool}
}

func (r *societyRepository) Create(ctx context.Context, society *domain.Society) error {
	const query = `
        INSERT INTO societies (name, description, category, contact_email)
        VALUES ($1, $2, $3, $4)
        RETURNING id, created_at, updated_at`
	return r.pool.QueryRow(ctx, query,
		society.Name,
		society.Description,
		society.Category,
		society.ContactEmail,
	).Scan(&society.ID, &society.CreatedAt, &society.UpdatedAt)
}

func (r *societyRepository) Update(ctx context.Context, society *domain.Society) error {
	const query = `
        UPDATE societies SET name=$1, description=$2, category=$3, contact_email=$4, updated_at=NOW()
        WHERE id=$5`
	cmd, err := r.pool.Exec(ctx, query,
		society.Name,
		society.Description,
		society.Category,
		society.ContactEmail,
		society.ID,
	)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *societyRepository) GetByID(ctx context.Context, id string) (*domain.Society, error) {
	const query = `
        SELECT id, name, description, category, contact_email, archived, created_at, updated_at
        FROM societies WHERE id=$1`
	return scanSociety(r.pool.QueryRow(ctx, query, id))
}

func (r *societyRepository) GetByName(ctx context.Context, name string) (*domain.Society, error) {
	const query = `
        SELECT id, name, description, category, contact_email, archived, created_at, updated_at
        FROM societies WHERE name=$1`
	return scanSociety(r.pool.QueryRow(ctx, query, name))
}

func (r *societyRepository) ListActive(ctx context.Context) ([]domain.Society, error) {
	const query = `
        SELECT id, name, description, category, contact_email, archived, created_at, updated_at
        FROM societies WHERE archived=false ORDER BY name`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.Society
	for rows.Next() {
		var society domain.Society
		if err := rows.Scan(
			&society.ID,
			&society.Name,
			&society.Description,
			&society.Category,
			&society.ContactEmail,
			&society.Archived,
			&society.CreatedAt,
			&society.UpdatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, society)
	}
	return result, rows.Err()
}

func (r *societyRepository) Archive(ctx context.Context, id string) error {
	const query = `UPDATE societies SET archived=true, updated_at=NOW() WHERE id=$1`
	cmd, err := r.pool.Exec(ctx, query, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func scanSociety(row pgx.Row) (*domain.Society, error) {
	var society domain.Society
	if err := row.Scan(
		&society.ID,
		&society.Name,
		&society.Description,
		&society.Category,
		&society.ContactEmail,
		&society.Archived,
		&society.CreatedAt,
		&society.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &society, nil
}
