package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/campus-kit/society-events/internal/api/dto"
	"github.com/campus-kit/society-events/internal/auth"
	"github.com/campus-kit/society-events/internal/service"
	"github.com/campus-kit/society-events/internal/validation"
	apperrors "github.com/campus-kit/society-events/pkg/util"
)

// TicketsHandler exposes ticket listing and redemption endpoints.
type TicketsHandler struct {
	purchases *service.PurchaseService
}

// NewTicketsHandler constructs handler.
func NewTicketsHandler(purchaseService *service.PurchaseService) *TicketsHandler {
	return &TicketsHandler{purchases: purchaseService}
}

// List handles POST /tickets: every ticket owned by the caller.
func (h *TicketsHandler) List(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}

	tickets, err := h.purchases.ListTickets(c.UserContext(), principal.User.ID)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"tickets": dto.NewTicketListResponse(tickets)})
}

// Use handles POST /tickets/use: door-staff redemption.
func (h *TicketsHandler) Use(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}

	var req dto.UseTicketRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewBadRequest("invalid payload")
	}
	if err := validation.Check(req); err != nil {
		return err
	}

	ticket, err := h.purchases.UseTicket(c.UserContext(), principal.User.ID, req.TicketID)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"ticket": dto.NewTicketResponse(ticket)})
}
