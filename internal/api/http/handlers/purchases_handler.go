package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/campus-kit/society-events/internal/api/dto"
	"github.com/campus-kit/society-events/internal/auth"
	"github.com/campus-kit/society-events/internal/service"
	"github.com/campus-kit/society-events/internal/validation"
	apperrors "github.com/campus-kit/society-events/pkg/util"
)

// PurchasesHandler exposes checkout and purchase history endpoints.
type PurchasesHandler struct {
	purchases *service.PurchaseService
}

// NewPurchasesHandler constructs handler.
func NewPurchasesHandler(purchaseService *service.PurchaseService) *PurchasesHandler {
	return &PurchasesHandler{purchases: purchaseService}
}

// Create handles POST /purchase/create.
func (h *PurchasesHandler) Create(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}

	var req dto.PurchaseCreateRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewBadRequest("invalid payload")
	}
	if err := validation.Check(req); err != nil {
		return err
	}

	input := service.PurchaseCreateInput{
		Status:  req.Status,
		Method:  req.Method,
		Total:   req.Total,
		EventID: req.EventID,
	}
	for _, t := range req.TicketQuantities.Types {
		input.Types = append(input.Types, service.TicketQuantityInput{
			TypeID:   t.ID,
			Quantity: t.Quantity,
		})
	}

	if err := h.purchases.CreatePurchase(c.UserContext(), principal.User, input); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"message": "purchase completed"})
}

// Past handles POST /purchase: purchases for events already held.
func (h *PurchasesHandler) Past(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}

	entries, err := h.purchases.PastPurchases(c.UserContext(), principal.User.ID)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"purchases": toPurchaseResponses(entries)})
}

// Future handles POST /purchase/future: purchases for upcoming events.
func (h *PurchasesHandler) Future(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}

	entries, err := h.purchases.FutureTickets(c.UserContext(), principal.User.ID)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"purchases": toPurchaseResponses(entries)})
}

func toPurchaseResponses(entries []service.PurchaseHistoryEntry) []dto.PurchaseResponse {
	out := make([]dto.PurchaseResponse, 0, len(entries))
	for _, entry := range entries {
		resp := dto.PurchaseResponse{
			ID:            entry.Purchase.ID,
			EventID:       entry.Purchase.EventID,
			Total:         entry.Purchase.Total,
			PaymentMethod: entry.Purchase.PaymentMethod,
			CreatedAt:     entry.Purchase.CreatedAt,
			Tickets:       dto.NewTicketListResponse(entry.Tickets),
		}
		if entry.Event != nil {
			event := dto.NewEventResponse(entry.Event)
			resp.Event = &event
		}
		out = append(out, resp)
	}
	return out
}
