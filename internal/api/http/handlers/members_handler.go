package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/campus-kit/society-events/internal/api/dto"
	"github.com/campus-kit/society-events/internal/auth"
	"github.com/campus-kit/society-events/internal/service"
	"github.com/campus-kit/society-events/internal/validation"
	apperrors "github.com/campus-kit/society-events/pkg/util"
)

// MembersHandler exposes follower endpoints.
type MembersHandler struct {
	membership *service.MembershipService
}

// NewMembersHandler constructs handler.
func NewMembersHandler(membershipService *service.MembershipService) *MembersHandler {
	return &MembersHandler{membership: membershipService}
}

// Follow handles POST /members/follow.
func (h *MembersHandler) Follow(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}

	var req societyIDRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewBadRequest("invalid payload")
	}
	if err := validation.Check(req); err != nil {
		return err
	}

	if err := h.membership.Follow(c.UserContext(), principal.User.ID, req.SocietyID); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"message": "society followed"})
}

// Unfollow handles POST /members/unfollow.
func (h *MembersHandler) Unfollow(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}

	var req societyIDRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewBadRequest("invalid payload")
	}
	if err := validation.Check(req); err != nil {
		return err
	}

	if err := h.membership.Unfollow(c.UserContext(), principal.User.ID, req.SocietyID); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"message": "society unfollowed"})
}

// Check handles POST /members/check.
func (h *MembersHandler) Check(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}

	var req societyIDRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewBadRequest("invalid payload")
	}
	if err := validation.Check(req); err != nil {
		return err
	}

	isMember, err := h.membership.IsMember(c.UserContext(), principal.User.ID, req.SocietyID)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"isMember": isMember})
}

// List handles POST /members/list; committee members only.
func (h *MembersHandler) List(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}

	var req societyIDRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewBadRequest("invalid payload")
	}
	if err := validation.Check(req); err != nil {
		return err
	}

	members, err := h.membership.ListMembers(c.UserContext(), principal.User.ID, req.SocietyID)
	if err != nil {
		return err
	}

	out := make([]dto.UserResponse, 0, len(members))
	for i := range members {
		out = append(out, dto.NewUserResponse(&members[i]))
	}
	return c.JSON(fiber.Map{"members": out})
}

// Societies handles POST /members/societies: ids of societies the caller
// follows.
func (h *MembersHandler) Societies(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}

	ids, err := h.membership.ListFollowedSocieties(c.UserContext(), principal.User.ID)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"societies": ids})
}
