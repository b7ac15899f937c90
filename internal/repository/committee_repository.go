package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/campus-kit/society-events/internal/domain"
)

// CommitteeRepository manages committee membership rows.
type CommitteeRepository interface {
	Add(ctx context.Context, member *domain.CommitteeMember) error
	Remove(ctx context.Context, societyID, userID string) error
	UpdateRole(ctx context.Context, societyID, userID, roleLabel string) error
	GetMember(ctx context.Context, societyID, userID string) (*domain.CommitteeMember, error)
	ListBySociety(ctx context.Context, societyID string) ([]domain.CommitteeMember, error)
	ListByUser(ctx context.Context, userID string) ([]domain.CommitteeMember, error)
	PromotePresident(ctx context.Context, societyID, userID string) error
}

type committeeRepository struct {
	pool *pgxpool.Pool
}

// NewCommitteeRepository instantiates repository.
func NewCommitteeRepository(pool *pgxpool.Pool) CommitteeRepository {
	return &committeeRepository{pool: pool}
}

func (r *committeeRepository) Add(ctx context.Context, member *domain.CommitteeMember) error {
	const query = `
        INSERT INTO committee_members (user_id, society_id, role_label, is_president)
        VALUES ($1, $2, $3, $4)
        RETURNING id, created_at`
	return r.pool.QueryRow(ctx, query,
		member.UserID,
		member.SocietyID,
		member.RoleLabel,
		member.IsPresident,
	).Scan(&member.ID, &member.CreatedAt)
}

func (r *committeeRepository) Remove(ctx context.Context, societyID, userID string) error {
	const query = `DELETE FROM committee_members WHERE society_id=$1 AND user_id=$2`
	cmd, err := r.pool.Exec(ctx, query, societyID, userID)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *committeeRepository) UpdateRole(ctx context.Context, societyID, userID, roleLabel string) error {
	const query = `UPDATE committee_members SET role_label=$1 WHERE society_id=$2 AND user_id=$3`
	cmd, err := r.pool.Exec(ctx, query, roleLabel, societyID, userID)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *committeeRepository) GetMember(ctx context.Context, societyID, userID string) (*domain.CommitteeMember, error) {
	const query = `
        SELECT id, user_id, society_id, role_label, is_president, created_at
        FROM committee_members WHERE society_id=$1 AND user_id=$2`
	var member domain.CommitteeMember
	if err := r.pool.QueryRow(ctx, query, societyID, userID).Scan(
		&member.ID,
		&member.UserID,
		&member.SocietyID,
		&member.RoleLabel,
		&member.IsPresident,
		&member.CreatedAt,
	); err != nil {
		return nil, err
	}
	return &member, nil
}

func (r *committeeRepository) ListBySociety(ctx context.Context, societyID string) ([]domain.CommitteeMember, error) {
	const query = `
        SELECT id, user_id, society_id, role_label, is_president, created_at
        FROM committee_members WHERE society_id=$1 ORDER BY created_at`
	rows, err := r.pool.Query(ctx, query, societyID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanCommitteeMembers(rows)
}

func (r *committeeRepository) ListByUser(ctx context.Context, userID string) ([]domain.CommitteeMember, error) {
	const query = `
        SELECT id, user_id, society_id, role_label, is_president, created_at
        FROM committee_members WHERE user_id=$1 ORDER BY created_at`
	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanCommitteeMembers(rows)
}

// PromotePresident demotes the sitting president and promotes the given
// member in a single transaction.
func (r *committeeRepository) PromotePresident(ctx context.Context, societyID, userID string) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx) //nolint:errcheck

	if _, err := tx.Exec(ctx,
		`UPDATE committee_members SET is_president=false WHERE society_id=$1 AND is_president=true`,
		societyID,
	); err != nil {
		return err
	}

	cmd, err := tx.Exec(ctx,
		`UPDATE committee_members SET is_president=true WHERE society_id=$1 AND user_id=$2`,
		societyID, userID,
	)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}

	return tx.Commit(ctx)
}

func scanCommitteeMembers(rows pgx.Rows) ([]domain.CommitteeMember, error) {
	var result []domain.CommitteeMember
	for rows.Next() {
		var member domain.CommitteeMember
		if err := rows.Scan(
			&member.ID,
			&member.UserID,
			&member.SocietyID,
			&member.RoleLabel,
			&member.IsPresident,
			&member.CreatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, member)
	}
	return result, rows.Err()
}
