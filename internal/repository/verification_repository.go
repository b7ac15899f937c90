package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/campus-kit/society-events/internal/domain"
)

// VerificationRepository manages single-use verification codes.
type VerificationRepository interface {
	Create(ctx context.Context, verification *domain.Verification) error
	GetByCode(ctx context.Context, code, userID string, vType domain.VerificationType) (*domain.Verification, error)
	Delete(ctx context.Context, id string) error
}

type verificationRepository struct {
	pool *pgxpool.Pool
}

// NewVerificationRepository constructs repository.
func NewVerificationRepository(pool *pgxpool.Pool) VerificationRepository {
	return &verificationRepository{pool: pool}
}

func (r *verificationRepository) Create(ctx context.Context, verification *domain.Verification) error {
	const query = `
        INSERT INTO verifications (user_id, code, type)
        VALUES ($1, $2, $3)
        RETURNING id, created_at`
	return r.pool.QueryRow(ctx, query,
		verification.UserID,
		verification.Code,
		verification.Type,
	).Scan(&verification.ID, &verification.CreatedAt)
}

func (r *verificationRepository) GetByCode(ctx context.Context, code, userID string, vType domain.VerificationType) (*domain.Verification, error) {
	const query = `
        SELECT id, user_id, code, type, created_at
        FROM verifications WHERE code=$1 AND user_id=$2 AND type=$3`
	var verification domain.Verification
	if err := r.pool.QueryRow(ctx, query, code, userID, vType).Scan(
		&verification.ID,
		&verification.UserID,
		&verification.Code,
		&verification.Type,
		&verification.CreatedAt,
	); err != nil {
		return nil, err
	}
	return &verification, nil
}

func (r *verificationRepository) Delete(ctx context.Context, id string) error {
	const query = `DELETE FROM verifications WHERE id=$1`
	_, err := r.pool.Exec(ctx, query, id)
	return err
}
