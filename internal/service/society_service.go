package service

import (
	"context"

	"github.com/jackc/pgx/v5"

	"github.com/campus-kit/society-events/internal/domain"
	"github.com/campus-kit/society-events/internal/repository"
	apperrors "github.com/campus-kit/society-events/pkg/util"
)

// SocietyService coordinates society and committee workflows.
type SocietyService struct {
	societies repository.SocietyRepository
	committee repository.CommitteeRepository
	users     repository.UserRepository
}

// SocietyDependencies bundles repositories for society service.
type SocietyDependencies struct {
	SocietyRepo   repository.SocietyRepository
	CommitteeRepo repository.CommitteeRepository
	UserRepo      repository.UserRepository
}

// NewSocietyService constructs the service.
func NewSocietyService(deps SocietyDependencies) *SocietyService {
	return &SocietyService{
		societies: deps.SocietyRepo,
		committee: deps.CommitteeRepo,
		users:     deps.UserRepo,
	}
}

// SocietyCreateInput describes society creation payload.
type SocietyCreateInput struct {
	Name         string
	Description  string
	Category     domain.SocietyCategory
	ContactEmail string
}

// SocietyUpdateInput carries partial fields; empty strings keep the
// previous value.
type SocietyUpdateInput struct {
	SocietyID    string
	Name         string
	Description  string
	Category     string
	ContactEmail string
}

// CommitteeRoster pairs membership rows with resolved user identities.
type CommitteeRoster struct {
	Member domain.CommitteeMember
	User   *domain.User
}

// CreateSociety registers a society; the creator becomes its founding
// president.
func (s *SocietyService) CreateSociety(ctx context.Context, creatorID string, input SocietyCreateInput) (*domain.Society, error) {
	if _, err := s.societies.GetByName(ctx, input.Name); err == nil {
		return nil, apperrors.NewConflict("society already exists", nil)
	} else if err != pgx.ErrNoRows {
		return nil, err
	}

	society := &domain.Society{
		Name:         input.Name,
		Description:  input.Description,
		Category:     input.Category,
		ContactEmail: input.ContactEmail,
	}
	if society.Category == "" {
		society.Category = domain.SocietyCategoryOther
	}
	if err := s.societies.Create(ctx, society); err != nil {
		return nil, err
	}

	founder := &domain.CommitteeMember{
		UserID:      creatorID,
		SocietyID:   society.ID,
		RoleLabel:   "President",
		IsPresident: true,
	}
	if err := s.committee.Add(ctx, founder); err != nil {
		return nil, err
	}
	return society, nil
}

// ListSocieties returns non-archived societies.
func (s *SocietyService) ListSocieties(ctx context.Context) ([]domain.Society, error) {
	return s.societies.ListActive(ctx)
}

// GetSociety resolves a society by id. The committee roster is included
// only for authenticated callers; archived societies still resolve.
func (s *SocietyService) GetSociety(ctx context.Context, societyID string, authenticated bool) (*domain.Society, []CommitteeRoster, error) {
	society, err := s.societies.GetByID(ctx, societyID)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil, apperrors.NewBadRequest("invalid societyId")
		}
		return nil, nil, err
	}
	if !authenticated {
		return society, nil, nil
	}

	members, err := s.committee.ListBySociety(ctx, societyID)
	if err != nil {
		return nil, nil, err
	}
	roster := make([]CommitteeRoster, 0, len(members))
	for _, member := range members {
		user, err := s.users.GetByID(ctx, member.UserID)
		if err != nil && err != pgx.ErrNoRows {
			return nil, nil, err
		}
		roster = append(roster, CommitteeRoster{Member: member, User: user})
	}
	return society, roster, nil
}

// UpdateSociety applies partial field updates; committee members only.
func (s *SocietyService) UpdateSociety(ctx context.Context, callerID string, input SocietyUpdateInput) (*domain.Society, error) {
	society, err := s.societies.GetByID(ctx, input.SocietyID)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.NewBadRequest("invalid societyId")
		}
		return nil, err
	}

	if err := s.requireCommittee(ctx, input.SocietyID, callerID); err != nil {
		return nil, err
	}

	if input.Name != "" {
		society.Name = input.Name
	}
	if input.Description != "" {
		society.Description = input.Description
	}
	if input.Category != "" {
		society.Category = domain.SocietyCategory(input.Category)
	}
	if input.ContactEmail != "" {
		society.ContactEmail = input.ContactEmail
	}

	if err := s.societies.Update(ctx, society); err != nil {
		return nil, err
	}
	return society, nil
}

// ArchiveSociety soft-deletes a society; president or platform admin only.
func (s *SocietyService) ArchiveSociety(ctx context.Context, caller *domain.User, societyID string) error {
	if _, err := s.societies.GetByID(ctx, societyID); err != nil {
		if err == pgx.ErrNoRows {
			return apperrors.NewBadRequest("invalid societyId")
		}
		return err
	}

	if caller.Role != domain.UserRoleAdmin {
		member, err := s.committee.GetMember(ctx, societyID, caller.ID)
		if err != nil {
			if err == pgx.ErrNoRows {
				return apperrors.NewUnauthorized("president required")
			}
			return err
		}
		if !member.IsPresident {
			return apperrors.NewUnauthorized("president required")
		}
	}

	return s.societies.Archive(ctx, societyID)
}

// AddCommitteeMember adds a user to the committee; president only.
func (s *SocietyService) AddCommitteeMember(ctx context.Context, callerID, societyID, userID, roleLabel string) (*domain.CommitteeMember, error) {
	if err := s.requirePresident(ctx, societyID, callerID); err != nil {
		return nil, err
	}

	if _, err := s.users.GetByID(ctx, userID); err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.NewNotFound("user", nil)
		}
		return nil, err
	}

	if _, err := s.committee.GetMember(ctx, societyID, userID); err == nil {
		return nil, apperrors.NewConflict("user is already a committee member", nil)
	} else if err != pgx.ErrNoRows {
		return nil, err
	}

	if roleLabel == "" {
		roleLabel = "Member"
	}
	member := &domain.CommitteeMember{
		UserID:    userID,
		SocietyID: societyID,
		RoleLabel: roleLabel,
	}
	if err := s.committee.Add(ctx, member); err != nil {
		return nil, err
	}
	return member, nil
}

// UpdateCommitteeMember changes a member's role label and, when
// requested, transfers the presidency. The incumbent is demoted in the
// same transaction as the promotion.
func (s *SocietyService) UpdateCommitteeMember(ctx context.Context, callerID, societyID, userID, roleLabel string, makePresident bool) error {
	if err := s.requirePresident(ctx, societyID, callerID); err != nil {
		return err
	}

	if _, err := s.committee.GetMember(ctx, societyID, userID); err != nil {
		if err == pgx.ErrNoRows {
			return apperrors.NewNotFound("committee member", nil)
		}
		return err
	}

	if roleLabel != "" {
		if err := s.committee.UpdateRole(ctx, societyID, userID, roleLabel); err != nil {
			return err
		}
	}
	if makePresident {
		if err := s.committee.PromotePresident(ctx, societyID, userID); err != nil {
			return err
		}
	}
	return nil
}

// RemoveCommitteeMember deletes a membership row; president only. The
// sitting president cannot be removed, only reassigned.
func (s *SocietyService) RemoveCommitteeMember(ctx context.Context, callerID, societyID, userID string) error {
	if err := s.requirePresident(ctx, societyID, callerID); err != nil {
		return err
	}

	member, err := s.committee.GetMember(ctx, societyID, userID)
	if err != nil {
		if err == pgx.ErrNoRows {
			return apperrors.NewNotFound("committee member", nil)
		}
		return err
	}
	if member.IsPresident {
		return apperrors.NewBadRequest("cannot remove the society president")
	}

	return s.committee.Remove(ctx, societyID, userID)
}

// IsCommitteeMember reports whether the user sits on the society's
// committee.
func (s *SocietyService) IsCommitteeMember(ctx context.Context, societyID, userID string) (bool, error) {
	_, err := s.committee.GetMember(ctx, societyID, userID)
	if err == nil {
		return true, nil
	}
	if err == pgx.ErrNoRows {
		return false, nil
	}
	return false, err
}

// HasAnyCommitteeRole reports whether the user sits on any committee.
func (s *SocietyService) HasAnyCommitteeRole(ctx context.Context, userID string) (bool, error) {
	memberships, err := s.committee.ListByUser(ctx, userID)
	if err != nil {
		return false, err
	}
	return len(memberships) > 0, nil
}

func (s *SocietyService) requireCommittee(ctx context.Context, societyID, userID string) error {
	ok, err := s.IsCommitteeMember(ctx, societyID, userID)
	if err != nil {
		return err
	}
	if !ok {
		return apperrors.NewUnauthorized("committee membership required")
	}
	return nil
}

func (s *SocietyService) requirePresident(ctx context.Context, societyID, userID string) error {
	member, err := s.committee.GetMember(ctx, societyID, userID)
	if err != nil {
		if err == pgx.ErrNoRows {
			return apperrors.NewUnauthorized("president required")
		}
		return err
	}
	if !member.IsPresident {
		return apperrors.NewUnauthorized("president required")
	}
	return nil
}
