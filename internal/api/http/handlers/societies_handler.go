package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/campus-kit/society-events/internal/api/dto"
	"github.com/campus-kit/society-events/internal/auth"
	"github.com/campus-kit/society-events/internal/domain"
	"github.com/campus-kit/society-events/internal/service"
	"github.com/campus-kit/society-events/internal/validation"
	apperrors "github.com/campus-kit/society-events/pkg/util"
)

// SocietiesHandler exposes society and committee endpoints.
type SocietiesHandler struct {
	societies *service.SocietyService
}

// NewSocietiesHandler constructs handler.
func NewSocietiesHandler(societyService *service.SocietyService) *SocietiesHandler {
	return &SocietiesHandler{societies: societyService}
}

type societyIDRequest struct {
	SocietyID string `json:"societyId" validate:"required"`
}

// Create handles POST /societies/create.
func (h *SocietiesHandler) Create(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}

	var req dto.SocietyCreateRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewBadRequest("invalid payload")
	}
	if err := validation.Check(req); err != nil {
		return err
	}

	society, err := h.societies.CreateSociety(c.UserContext(), principal.User.ID, service.SocietyCreateInput{
		Name:         req.Name,
		Description:  req.Description,
		Category:     domain.SocietyCategory(req.Category),
		ContactEmail: req.ContactEmail,
	})
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"society": dto.NewSocietyResponse(society)})
}

// List handles GET /societies.
func (h *SocietiesHandler) List(c *fiber.Ctx) error {
	societies, err := h.societies.ListSocieties(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"societies": dto.NewSocietyListResponse(societies)})
}

// Get handles POST /societies. The committee roster is included only
// when the caller presented a valid token.
func (h *SocietiesHandler) Get(c *fiber.Ctx) error {
	var req societyIDRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewBadRequest("invalid payload")
	}
	if err := validation.Check(req); err != nil {
		return err
	}

	_, authenticated := auth.PrincipalFromContext(c)
	society, roster, err := h.societies.GetSociety(c.UserContext(), req.SocietyID, authenticated)
	if err != nil {
		return err
	}

	response := fiber.Map{"society": dto.NewSocietyResponse(society)}
	if authenticated {
		members := make([]dto.CommitteeMemberResponse, 0, len(roster))
		for _, entry := range roster {
			members = append(members, dto.NewCommitteeMemberResponse(entry.Member, entry.User))
		}
		response["committee"] = members
	}
	return c.JSON(response)
}

// Update handles POST /societies/update.
func (h *SocietiesHandler) Update(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}

	var req struct {
		SocietyID string `json:"societyId" validate:"required"`
		dto.SocietyUpdateRequest
	}
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewBadRequest("invalid payload")
	}
	if err := validation.Check(req); err != nil {
		return err
	}

	society, err := h.societies.UpdateSociety(c.UserContext(), principal.User.ID, service.SocietyUpdateInput{
		SocietyID:    req.SocietyID,
		Name:         req.Name,
		Description:  req.Description,
		Category:     req.Category,
		ContactEmail: req.ContactEmail,
	})
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"society": dto.NewSocietyResponse(society)})
}

// Delete handles POST /societies/delete (archive).
func (h *SocietiesHandler) Delete(c *fiber.Ctx) error {
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

	if err := h.societies.ArchiveSociety(c.UserContext(), principal.User, req.SocietyID); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"message": "society archived"})
}

// CommitteeAdd handles POST /societies/committee/add.
func (h *SocietiesHandler) CommitteeAdd(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}

	var req struct {
		SocietyID string `json:"societyId" validate:"required"`
		dto.CommitteeAddRequest
	}
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewBadRequest("invalid payload")
	}
	if err := validation.Check(req); err != nil {
		return err
	}

	member, err := h.societies.AddCommitteeMember(c.UserContext(), principal.User.ID, req.SocietyID, req.UserID, req.Role)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"member": dto.NewCommitteeMemberResponse(*member, nil)})
}

// CommitteeUpdate handles POST /societies/committee/update.
func (h *SocietiesHandler) CommitteeUpdate(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}

	var req struct {
		SocietyID string `json:"societyId" validate:"required"`
		dto.CommitteeUpdateRequest
	}
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewBadRequest("invalid payload")
	}
	if err := validation.Check(req); err != nil {
		return err
	}

	if err := h.societies.UpdateCommitteeMember(c.UserContext(), principal.User.ID, req.SocietyID, req.UserID, req.Role, req.MakePresident); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"message": "committee member updated"})
}

// CommitteeRemove handles POST /societies/committee/remove.
func (h *SocietiesHandler) CommitteeRemove(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}

	var req struct {
		SocietyID string `json:"societyId" validate:"required"`
		dto.CommitteeRemoveRequest
	}
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewBadRequest("invalid payload")
	}
	if err := validation.Check(req); err != nil {
		return err
	}

	if err := h.societies.RemoveCommitteeMember(c.UserContext(), principal.User.ID, req.SocietyID, req.UserID); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"message": "committee member removed"})
}
