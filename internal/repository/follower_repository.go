package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/campus-kit/society-events/internal/domain"
)

// FollowerRepository manages follow relationships. Unfollow archives the
// row; a later follow reactivates it.
type FollowerRepository interface {
	Create(ctx context.Context, follower *domain.Follower) error
	Get(ctx context.Context, userID, societyID string) (*domain.Follower, error)
	SetArchived(ctx context.Context, userID, societyID string, archived bool) error
	ListActiveBySociety(ctx context.Context, societyID string) ([]domain.Follower, error)
	ListActiveByUser(ctx context.Context, userID string) ([]domain.Follower, error)
}

type followerRepository struct {
	pool *pgxpool.Pool
}

// NewFollowerRepository instantiates repository.
func NewFollowerRepository(pool *pgxpool.Pool) FollowerRepository {
	return &followerRepository{pool: pool}
}

func (r *followerRepository) Create(ctx context.Context, follower *domain.Follower) error {
	const query = `
        INSERT INTO followers (user_id, society_id)
        VALUES ($1, $2)
        RETURNING id, created_at, updated_at`
	return r.pool.QueryRow(ctx, query,
		follower.UserID,
		follower.SocietyID,
	).Scan(&follower.ID, &follower.CreatedAt, &follower.UpdatedAt)
}

func (r *followerRepository) Get(ctx context.Context, userID, societyID string) (*domain.Follower, error) {
	const query = `
        SELECT id, user_id, society_id, archived, created_at, updated_at
        FROM followers WHERE user_id=$1 AND society_id=$2`
	var follower domain.Follower
	if err := r.pool.QueryRow(ctx, query, userID, societyID).Scan(
		&follower.ID,
		&follower.UserID,
		&follower.SocietyID,
		&follower.Archived,
		&follower.CreatedAt,
		&follower.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &follower, nil
}

func (r *followerRepository) SetArchived(ctx context.Context, userID, societyID string, archived bool) error {
	const query = `
        UPDATE followers SET archived=$1, updated_at=NOW()
        WHERE user_id=$2 AND society_id=$3`
	cmd, err := r.pool.Exec(ctx, query, archived, userID, societyID)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *followerRepository) ListActiveBySociety(ctx context.Context, societyID string) ([]domain.Follower, error) {
	const query = `
        SELECT id, user_id, society_id, archived, created_at, updated_at
        FROM followers WHERE society_id=$1 AND archived=false ORDER BY created_at`
	rows, err := r.pool.Query(ctx, query, societyID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanFollowers(rows)
}

func (r *followerRepository) ListActiveByUser(ctx context.Context, userID string) ([]domain.Follower, error) {
	const query = `
        SELECT id, user_id, society_id, archived, created_at, updated_at
        FROM followers WHERE user_id=$1 AND archived=false ORDER BY created_at`
	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanFollowers(rows)
}

func scanFollowers(rows pgx.Rows) ([]domain.Follower, error) {
	var result []domain.Follower
	for rows.Next() {
		var follower domain.Follower
		if err := rows.Scan(
			&follower.ID,
			&follower.UserID,
			&follower.SocietyID,
			&follower.Archived,
			&follower.CreatedAt,
			&follower.UpdatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, follower)
	}
	return result, rows.Err()
}
