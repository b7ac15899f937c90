package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/campus-kit/society-events/internal/api/dto"
	"github.com/campus-kit/society-events/internal/auth"
	"github.com/campus-kit/society-events/internal/service"
	"github.com/campus-kit/society-events/internal/validation"
	apperrors "github.com/campus-kit/society-events/pkg/util"
)

// EventsHandler exposes the event catalog endpoints.
type EventsHandler struct {
	events    *service.EventService
	societies *service.SocietyService
}

// NewEventsHandler constructs handler.
func NewEventsHandler(eventService *service.EventService, societyService *service.SocietyService) *EventsHandler {
	return &EventsHandler{events: eventService, societies: societyService}
}

type eventIDRequest struct {
	EventID string `json:"eventId" validate:"required"`
}

// List handles GET /events. Each entry carries its society summary so
// the catalog renders organiser names without extra lookups.
func (h *EventsHandler) List(c *fiber.Ctx) error {
	listing, err := h.events.ListUpcoming(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"events": dto.NewEventSummaryListResponse(listing)})
}

// Get handles POST /events. IsCommittee is computed only when a token
// accompanies the request.
func (h *EventsHandler) Get(c *fiber.Ctx) error {
	var req eventIDRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewBadRequest("invalid payload")
	}
	if err := validation.Check(req); err != nil {
		return err
	}

	callerID := ""
	if principal, ok := auth.PrincipalFromContext(c); ok {
		callerID = principal.User.ID
	}

	details, err := h.events.GetEvent(c.UserContext(), req.EventID, callerID)
	if err != nil {
		return err
	}

	response := dto.EventDetailsResponse{
		Event:       dto.NewEventResponse(details.Event),
		TicketTypes: make([]dto.TicketTypeResponse, 0, len(details.TicketTypes)),
		IsCommittee: details.IsCommittee,
	}
	for i := range details.TicketTypes {
		response.TicketTypes = append(response.TicketTypes, dto.NewTicketTypeResponse(&details.TicketTypes[i]))
	}
	if details.Society != nil {
		society := dto.NewSocietyResponse(details.Society)
		response.Society = &society
	}
	return c.JSON(response)
}

// Create handles POST /events/create.
func (h *EventsHandler) Create(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}

	var req dto.EventCreateRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewBadRequest("invalid payload")
	}
	if err := validation.Check(req); err != nil {
		return err
	}

	input := service.EventCreateInput{
		Name:        req.Name,
		Description: req.Description,
		Date:        req.Date,
		Location:    req.Location,
		BannerURL:   req.BannerURL,
		SocietyID:   req.SocietyID,
	}
	for _, tt := range req.TicketTypes {
		input.TicketTypes = append(input.TicketTypes, service.TicketTypeInput{
			Name:     tt.Name,
			Price:    tt.Price,
			Quantity: tt.Quantity,
		})
	}

	event, types, err := h.events.CreateEvent(c.UserContext(), principal.User.ID, input)
	if err != nil {
		return err
	}

	typeResponses := make([]dto.TicketTypeResponse, 0, len(types))
	for _, tt := range types {
		typeResponses = append(typeResponses, dto.NewTicketTypeResponse(tt))
	}
	return c.JSON(fiber.Map{
		"event":        dto.NewEventResponse(event),
		"ticket_types": typeResponses,
	})
}

// Update handles POST /events/update.
func (h *EventsHandler) Update(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}

	var req struct {
		EventID string `json:"eventId" validate:"required"`
		dto.EventUpdateRequest
	}
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewBadRequest("invalid payload")
	}
	if err := validation.Check(req); err != nil {
		return err
	}

	event, err := h.events.UpdateEvent(c.UserContext(), principal.User.ID, service.EventUpdateInput{
		EventID:     req.EventID,
		Name:        req.Name,
		Description: req.Description,
		Date:        req.Date,
		Location:    req.Location,
		BannerURL:   req.BannerURL,
	})
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"event": dto.NewEventResponse(event)})
}

// Delete handles POST /events/delete (archive).
func (h *EventsHandler) Delete(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}

	var req eventIDRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewBadRequest("invalid payload")
	}
	if err := validation.Check(req); err != nil {
		return err
	}

	if err := h.events.ArchiveEvent(c.UserContext(), principal.User.ID, req.EventID); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"message": "event archived"})
}

// Search handles POST /events/search; no auth.
func (h *EventsHandler) Search(c *fiber.Ctx) error {
	var req struct {
		Name string `json:"name" validate:"required"`
	}
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewBadRequest("invalid payload")
	}
	if err := validation.Check(req); err != nil {
		return err
	}

	events, err := h.events.SearchEvents(c.UserContext(), req.Name)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"events": dto.NewEventListResponse(events)})
}

// Auth handles POST /events/auth: 200 when the caller sits on any
// committee, else 401.
func (h *EventsHandler) Auth(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}

	hasRole, err := h.societies.HasAnyCommitteeRole(c.UserContext(), principal.User.ID)
	if err != nil {
		return err
	}
	if !hasRole {
		return apperrors.NewUnauthorized("committee membership required")
	}
	return c.JSON(fiber.Map{"message": "authorized"})
}
