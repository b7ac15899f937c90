package dto

import (
	"time"

	"github.com/campus-kit/society-events/internal/domain"
)

// TicketQuantityRequest requests N tickets of one type.
type TicketQuantityRequest struct {
	ID       string `json:"id" validate:"required"`
	Quantity int    `json:"quantity" validate:"required,gt=0"`
}

// TicketQuantities wraps the per-type requests of a checkout.
type TicketQuantities struct {
	Types []TicketQuantityRequest `json:"types" validate:"required,min=1,dive"`
}

// PurchaseCreateRequest payload for checkout.
type PurchaseCreateRequest struct {
	Status           string           `json:"status" validate:"required"`
	Method           string           `json:"method" validate:"required"`
	Total            float64          `json:"total" validate:"gte=0"`
	EventID          string           `json:"eventId" validate:"required"`
	TicketQuantities TicketQuantities `json:"ticket_quantities" validate:"required"`
}

// UseTicketRequest redeems a ticket at the door.
type UseTicketRequest struct {
	TicketID string `json:"ticketId" validate:"required"`
}

// TicketResponse is the owner's view of a ticket.
type TicketResponse struct {
	ID         string    `json:"id"`
	PurchaseID string    `json:"purchaseId"`
	EventID    string    `json:"eventId"`
	Code       string    `json:"code"`
	Status     string    `json:"status"`
	CreatedAt  time.Time `json:"createdAt"`
}

// PurchaseResponse is one purchase with its tickets and event.
type PurchaseResponse struct {
	ID            string           `json:"id"`
	EventID       string           `json:"eventId"`
	Total         float64          `json:"total"`
	PaymentMethod string           `json:"paymentMethod"`
	CreatedAt     time.Time        `json:"createdAt"`
	Event         *EventResponse   `json:"event,omitempty"`
	Tickets       []TicketResponse `json:"tickets"`
}

// NewTicketResponse maps a domain ticket.
func NewTicketResponse(ticket *domain.Ticket) TicketResponse {
	return TicketResponse{
		ID:         ticket.ID,
		PurchaseID: ticket.PurchaseID,
		EventID:    ticket.EventID,
		Code:       ticket.Code,
		Status:     string(ticket.Status),
		CreatedAt:  ticket.CreatedAt,
	}
}

// NewTicketListResponse maps a slice of tickets.
func NewTicketListResponse(tickets []domain.Ticket) []TicketResponse {
	out := make([]TicketResponse, 0, len(tickets))
	for i := range tickets {
		out = append(out, NewTicketResponse(&tickets[i]))
	}
	return out
}
