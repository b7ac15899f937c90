package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/campus-kit/society-events/internal/domain"
	"github.com/campus-kit/society-events/internal/events"
	"github.com/campus-kit/society-events/internal/repository"
	apperrors "github.com/campus-kit/society-events/pkg/util"
)

// PurchaseService owns the ticket issuance and redemption workflow.
type PurchaseService struct {
	purchases   repository.PurchaseRepository
	tickets     repository.TicketRepository
	ticketTypes repository.TicketTypeRepository
	eventsRepo  repository.EventRepository
	committee   repository.CommitteeRepository
	dispatcher  events.Dispatcher
}

// PurchaseDependencies bundles repositories for purchase service.
type PurchaseDependencies struct {
	PurchaseRepo   repository.PurchaseRepository
	TicketRepo     repository.TicketRepository
	TicketTypeRepo repository.TicketTypeRepository
	EventRepo      repository.EventRepository
	CommitteeRepo  repository.CommitteeRepository
	Dispatcher     events.Dispatcher
}

// NewPurchaseService constructs the service.
func NewPurchaseService(deps PurchaseDependencies) *PurchaseService {
	return &PurchaseService{
		purchases:   deps.PurchaseRepo,
		tickets:     deps.TicketRepo,
		ticketTypes: deps.TicketTypeRepo,
		eventsRepo:  deps.EventRepo,
		committee:   deps.CommitteeRepo,
		dispatcher:  deps.Dispatcher,
	}
}

// TicketQuantityInput requests N tickets of one type.
type TicketQuantityInput struct {
	TypeID   string
	Quantity int
}

// PurchaseCreateInput describes a checkout request.
type PurchaseCreateInput struct {
	Status  string
	Method  string
	Total   float64
	EventID string
	Types   []TicketQuantityInput
}

// PurchaseHistoryEntry is a purchase with its tickets and event.
type PurchaseHistoryEntry struct {
	Purchase domain.Purchase
	Tickets  []domain.Ticket
	Event    *domain.Event
}

// Payment is simulated; every purchase records the same method label.
const paymentMethodLabel = "paypal"

// CreatePurchase converts a checkout request into one purchase row and
// one ticket row per requested unit. Every referenced ticket type is
// validated before anything is written, and the writes share one
// transaction, so a rejected request leaves no rows behind.
//
// Ticket type quantity is advisory: no capacity check is made against
// outstanding tickets.
func (s *PurchaseService) CreatePurchase(ctx context.Context, caller *domain.User, input PurchaseCreateInput) error {
	event, err := s.eventsRepo.GetByID(ctx, input.EventID)
	if err != nil {
		if err == pgx.ErrNoRows {
			return apperrors.NewBadRequest("invalid eventId")
		}
		return err
	}

	resolved := make(map[string]*domain.TicketType, len(input.Types))
	for _, req := range input.Types {
		if req.Quantity <= 0 {
			return apperrors.NewBadRequest("invalid ticket_quantities")
		}
		tt, err := s.ticketTypes.GetByID(ctx, req.TypeID)
		if err != nil {
			if err == pgx.ErrNoRows {
				return apperrors.NewBadRequest("invalid ticket type ID")
			}
			return err
		}
		if tt.EventID != event.ID {
			return apperrors.NewBadRequest("ticket type does not belong to event")
		}
		resolved[req.TypeID] = tt
	}

	purchase := &domain.Purchase{
		ID:            uuid.NewString(),
		UserID:        caller.ID,
		EventID:       event.ID,
		Total:         input.Total,
		PaymentMethod: paymentMethodLabel,
	}

	var tickets []*domain.Ticket
	var codes []events.TicketCode
	quantity := 0
	for _, req := range input.Types {
		tt := resolved[req.TypeID]
		for i := 0; i < req.Quantity; i++ {
			quantity++
			code, err := domain.TicketPayload{
				TicketTypeName: tt.Name,
				TicketTypeID:   tt.ID,
				UserID:         caller.ID,
				EventID:        event.ID,
				PurchaseID:     purchase.ID,
				Secret:         uuid.NewString(),
			}.Encode()
			if err != nil {
				return err
			}
			tickets = append(tickets, &domain.Ticket{
				PurchaseID:   purchase.ID,
				TicketTypeID: tt.ID,
				EventID:      event.ID,
				UserID:       caller.ID,
				Code:         code,
				Status:       domain.TicketStatusValid,
			})
			codes = append(codes, events.TicketCode{
				QRData: code,
				Label:  fmt.Sprintf("%s %s %d", tt.Name, event.Name, quantity),
			})
		}
	}

	if err := s.purchases.CreateWithTickets(ctx, purchase, tickets); err != nil {
		return err
	}

	s.publish(ctx, events.Event{
		Type:   events.EventPurchaseCompleted,
		UserID: caller.ID,
		Payload: events.PurchaseCompletedPayload{
			Email:         caller.Email,
			PurchaseID:    purchase.ID,
			Event:         event,
			PaymentMethod: input.Method,
			Total:         input.Total,
			Quantity:      quantity,
			Tickets:       codes,
		},
	})
	return nil
}

// UseTicket redeems a ticket at the door. Only committee members of the
// society owning the ticket's event may redeem, and USED is terminal: a
// second redemption is rejected, never silently accepted.
func (s *PurchaseService) UseTicket(ctx context.Context, callerID, ticketID string) (*domain.Ticket, error) {
	ticket, err := s.tickets.GetByID(ctx, ticketID)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.NewBadRequest("invalid ticket ID")
		}
		return nil, err
	}

	event, err := s.eventsRepo.GetByID(ctx, ticket.EventID)
	if err != nil {
		return nil, err
	}

	if _, err := s.committee.GetMember(ctx, event.SocietyID, callerID); err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.NewUnauthorized("committee membership required")
		}
		return nil, err
	}

	if ticket.Status == domain.TicketStatusUsed {
		return nil, apperrors.NewBadRequest("Ticket already used")
	}

	if err := s.tickets.UpdateStatus(ctx, ticket.ID, domain.TicketStatusUsed); err != nil {
		return nil, err
	}
	ticket.Status = domain.TicketStatusUsed
	return ticket, nil
}

// ListTickets returns every ticket owned by the caller.
func (s *PurchaseService) ListTickets(ctx context.Context, userID string) ([]domain.Ticket, error) {
	return s.tickets.ListByUser(ctx, userID)
}

// PastPurchases returns the caller's purchases for events already held,
// each with its tickets and event.
func (s *PurchaseService) PastPurchases(ctx context.Context, userID string) ([]PurchaseHistoryEntry, error) {
	purchases, err := s.purchases.ListByUserBeforeDate(ctx, userID, time.Now())
	if err != nil {
		return nil, err
	}
	return s.expand(ctx, purchases)
}

// FutureTickets returns the caller's purchases for upcoming events.
func (s *PurchaseService) FutureTickets(ctx context.Context, userID string) ([]PurchaseHistoryEntry, error) {
	purchases, err := s.purchases.ListByUserAfterDate(ctx, userID, time.Now())
	if err != nil {
		return nil, err
	}
	return s.expand(ctx, purchases)
}

// expand attaches tickets and the event to each purchase with
// per-purchase lookups.
func (s *PurchaseService) expand(ctx context.Context, purchases []domain.Purchase) ([]PurchaseHistoryEntry, error) {
	entries := make([]PurchaseHistoryEntry, 0, len(purchases))
	for _, purchase := range purchases {
		tickets, err := s.tickets.ListByPurchase(ctx, purchase.ID)
		if err != nil {
			return nil, err
		}
		event, err := s.eventsRepo.GetByID(ctx, purchase.EventID)
		if err != nil && err != pgx.ErrNoRows {
			return nil, err
		}
		entries = append(entries, PurchaseHistoryEntry{
			Purchase: purchase,
			Tickets:  tickets,
			Event:    event,
		})
	}
	return entries, nil
}

func (s *PurchaseService) publish(ctx context.Context, event events.Event) {
	if s.dispatcher == nil {
		return
	}
	if event.ID == "" {
		event.ID = uuid.NewString()
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}
	_ = s.dispatcher.Publish(ctx, event)
}
