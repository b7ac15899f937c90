package dto

import (
	"time"

	"github.com/campus-kit/society-events/internal/domain"
)

// SocietyCreateRequest payload for registering a society.
type SocietyCreateRequest struct {
	Name         string `json:"name" validate:"required,max=100"`
	Description  string `json:"description" validate:"max=1000"`
	Category     string `json:"category" validate:"omitempty,oneof=ACADEMIC CULTURAL SPORTS SOCIAL VOLUNTEER OTHER"`
	ContactEmail string `json:"contactEmail" validate:"omitempty,email"`
}

// SocietyUpdateRequest carries partial fields; omitted fields keep their
// previous value.
type SocietyUpdateRequest struct {
	Name         string `json:"name" validate:"omitempty,max=100"`
	Description  string `json:"description" validate:"omitempty,max=1000"`
	Category     string `json:"category" validate:"omitempty,oneof=ACADEMIC CULTURAL SPORTS SOCIAL VOLUNTEER OTHER"`
	ContactEmail string `json:"contactEmail" validate:"omitempty,email"`
}

// CommitteeAddRequest adds a user to a society committee.
type CommitteeAddRequest struct {
	UserID string `json:"userId" validate:"required"`
	Role   string `json:"role" validate:"omitempty,max=50"`
}

// CommitteeUpdateRequest changes a member's role or transfers presidency.
type CommitteeUpdateRequest struct {
	UserID        string `json:"userId" validate:"required"`
	Role          string `json:"role" validate:"omitempty,max=50"`
	MakePresident bool   `json:"makePresident"`
}

// CommitteeRemoveRequest deletes a committee membership.
type CommitteeRemoveRequest struct {
	UserID string `json:"userId" validate:"required"`
}

// SocietyResponse is the public view of a society.
type SocietyResponse struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Description  string    `json:"description"`
	Category     string    `json:"category"`
	ContactEmail string    `json:"contactEmail"`
	Archived     bool      `json:"archived"`
	CreatedAt    time.Time `json:"createdAt"`
}

// CommitteeMemberResponse pairs a membership row with its user identity.
type CommitteeMemberResponse struct {
	UserID      string `json:"userId"`
	Name        string `json:"name,omitempty"`
	Email       string `json:"email,omitempty"`
	Role        string `json:"role"`
	IsPresident bool   `json:"isPresident"`
}

// NewSocietyResponse maps a domain society.
func NewSocietyResponse(society *domain.Society) SocietyResponse {
	return SocietyResponse{
		ID:           society.ID,
		Name:         society.Name,
		Description:  society.Description,
		Category:     string(society.Category),
		ContactEmail: society.ContactEmail,
		Archived:     society.Archived,
		CreatedAt:    society.CreatedAt,
	}
}

// NewSocietyListResponse maps a slice of societies.
func NewSocietyListResponse(societies []domain.Society) []SocietyResponse {
	out := make([]SocietyResponse, 0, len(societies))
	for i := range societies {
		out = append(out, NewSocietyResponse(&societies[i]))
	}
	return out
}

// NewCommitteeMemberResponse maps a membership with an optional user.
func NewCommitteeMemberResponse(member domain.CommitteeMember, user *domain.User) CommitteeMemberResponse {
	resp := CommitteeMemberResponse{
		UserID:      member.UserID,
		Role:        member.RoleLabel,
		IsPresident: member.IsPresident,
	}
	if user != nil {
		resp.Name = user.Name
		resp.Email = user.Email
	}
	return resp
}
