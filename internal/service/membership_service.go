package service

import (
	"context"

	"github.com/jackc/pgx/v5"

	"github.com/campus-kit/society-events/internal/domain"
	"github.com/campus-kit/society-events/internal/repository"
	apperrors "github.com/campus-kit/society-events/pkg/util"
)

// MembershipService handles follower relationships between users and
// societies.
type MembershipService struct {
	followers repository.FollowerRepository
	societies repository.SocietyRepository
	committee repository.CommitteeRepository
	users     repository.UserRepository
}

// MembershipDependencies bundles repositories for membership service.
type MembershipDependencies struct {
	FollowerRepo  repository.FollowerRepository
	SocietyRepo   repository.SocietyRepository
	CommitteeRepo repository.CommitteeRepository
	UserRepo      repository.UserRepository
}

// NewMembershipService constructs the service.
func NewMembershipService(deps MembershipDependencies) *MembershipService {
	return &MembershipService{
		followers: deps.FollowerRepo,
		societies: deps.SocietyRepo,
		committee: deps.CommitteeRepo,
		users:     deps.UserRepo,
	}
}

// Follow makes the user a follower of the society. A previously archived
// row is reactivated; an active row is a conflict.
func (s *MembershipService) Follow(ctx context.Context, userID, societyID string) error {
	if err := s.requireSociety(ctx, societyID); err != nil {
		return err
	}

	follower, err := s.followers.Get(ctx, userID, societyID)
	if err != nil {
		if err != pgx.ErrNoRows {
			return err
		}
		return s.followers.Create(ctx, &domain.Follower{UserID: userID, SocietyID: societyID})
	}

	if !follower.Archived {
		return apperrors.NewBadRequest("user is already a member")
	}
	return s.followers.SetArchived(ctx, userID, societyID, false)
}

// Unfollow archives the follower row.
func (s *MembershipService) Unfollow(ctx context.Context, userID, societyID string) error {
	if err := s.requireSociety(ctx, societyID); err != nil {
		return err
	}

	follower, err := s.followers.Get(ctx, userID, societyID)
	if err != nil {
		if err == pgx.ErrNoRows {
			return apperrors.NewBadRequest("user is not a member")
		}
		return err
	}
	if follower.Archived {
		return apperrors.NewBadRequest("user is not a member")
	}
	return s.followers.SetArchived(ctx, userID, societyID, true)
}

// IsMember reports whether the user actively follows the society.
func (s *MembershipService) IsMember(ctx context.Context, userID, societyID string) (bool, error) {
	follower, err := s.followers.Get(ctx, userID, societyID)
	if err != nil {
		if err == pgx.ErrNoRows {
			return false, nil
		}
		return false, err
	}
	return !follower.Archived, nil
}

// ListMembers returns the active followers of a society with their
// identities resolved. Only committee members may call it.
func (s *MembershipService) ListMembers(ctx context.Context, callerID, societyID string) ([]domain.User, error) {
	if _, err := s.committee.GetMember(ctx, societyID, callerID); err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.NewBadRequest("user is not a committee member")
		}
		return nil, err
	}

	followers, err := s.followers.ListActiveBySociety(ctx, societyID)
	if err != nil {
		return nil, err
	}
	if len(followers) == 0 {
		return nil, apperrors.NewNotFound("members", nil)
	}

	ids := make([]string, 0, len(followers))
	for _, follower := range followers {
		ids = append(ids, follower.UserID)
	}
	return s.users.ListByIDs(ctx, ids)
}

// ListFollowedSocieties returns ids of societies the user follows.
func (s *MembershipService) ListFollowedSocieties(ctx context.Context, userID string) ([]string, error) {
	followers, err := s.followers.ListActiveByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if len(followers) == 0 {
		return nil, apperrors.NewNotFound("societies", nil)
	}
	ids := make([]string, 0, len(followers))
	for _, follower := range followers {
		ids = append(ids, follower.SocietyID)
	}
	return ids, nil
}

func (s *MembershipService) requireSociety(ctx context.Context, societyID string) error {
	if _, err := s.societies.GetByID(ctx, societyID); err != nil {
		if err == pgx.ErrNoRows {
			return apperrors.NewNotFound("society", nil)
		}
		return err
	}
	return nil
}
