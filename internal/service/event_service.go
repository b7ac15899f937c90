package service

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/campus-kit/society-events/internal/cache"
	"github.com/campus-kit/society-events/internal/domain"
	"github.com/campus-kit/society-events/internal/repository"
	apperrors "github.com/campus-kit/society-events/pkg/util"
)

// EventService coordinates the event catalog.
type EventService struct {
	events      repository.EventRepository
	ticketTypes repository.TicketTypeRepository
	societies   repository.SocietyRepository
	committee   repository.CommitteeRepository
	cache       *cache.EventCache
}

// EventDependencies bundles repositories for event service.
type EventDependencies struct {
	EventRepo      repository.EventRepository
	TicketTypeRepo repository.TicketTypeRepository
	SocietyRepo    repository.SocietyRepository
	CommitteeRepo  repository.CommitteeRepository
	Cache          *cache.EventCache
}

// NewEventService constructs the service.
func NewEventService(deps EventDependencies) *EventService {
	return &EventService{
		events:      deps.EventRepo,
		ticketTypes: deps.TicketTypeRepo,
		societies:   deps.SocietyRepo,
		committee:   deps.CommitteeRepo,
		cache:       deps.Cache,
	}
}

// TicketTypeInput describes one purchasable category on a new event.
type TicketTypeInput struct {
	Name     string
	Price    float64
	Quantity int
}

// EventCreateInput describes event creation payload.
type EventCreateInput struct {
	Name        string
	Description string
	Date        time.Time
	Location    string
	BannerURL   string
	SocietyID   string
	TicketTypes []TicketTypeInput
}

// EventUpdateInput carries partial fields; zero values keep the previous
// value.
type EventUpdateInput struct {
	EventID     string
	Name        string
	Description string
	Date        *time.Time
	Location    string
	BannerURL   string
}

// EventDetails is an event with its ticket types and owning society.
type EventDetails struct {
	Event       *domain.Event
	TicketTypes []domain.TicketType
	Society     *domain.Society
	IsCommittee bool
}

// ListUpcoming returns non-archived future events with their owning
// society attached, served from the redis cache when warm.
func (s *EventService) ListUpcoming(ctx context.Context) ([]domain.EventSummary, error) {
	if cached := s.cache.GetUpcoming(ctx); cached != nil {
		return cached, nil
	}
	events, err := s.events.ListUpcoming(ctx, time.Now())
	if err != nil {
		return nil, err
	}

	societies := make(map[string]*domain.Society)
	listing := make([]domain.EventSummary, 0, len(events))
	for i := range events {
		society, seen := societies[events[i].SocietyID]
		if !seen {
			society, err = s.societies.GetByID(ctx, events[i].SocietyID)
			if err != nil {
				if err != pgx.ErrNoRows {
					return nil, err
				}
				society = nil
			}
			societies[events[i].SocietyID] = society
		}
		listing = append(listing, domain.EventSummary{Event: events[i], Society: society})
	}

	s.cache.SetUpcoming(ctx, listing)
	return listing, nil
}

// GetEvent resolves an event with ticket types and society. IsCommittee
// is computed only when callerID is non-empty.
func (s *EventService) GetEvent(ctx context.Context, eventID, callerID string) (*EventDetails, error) {
	event, err := s.events.GetByID(ctx, eventID)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.NewBadRequest("invalid eventId")
		}
		return nil, err
	}

	types, err := s.ticketTypes.ListByEvent(ctx, event.ID)
	if err != nil {
		return nil, err
	}
	society, err := s.societies.GetByID(ctx, event.SocietyID)
	if err != nil && err != pgx.ErrNoRows {
		return nil, err
	}

	details := &EventDetails{Event: event, TicketTypes: types, Society: society}
	if callerID != "" {
		if _, err := s.committee.GetMember(ctx, event.SocietyID, callerID); err == nil {
			details.IsCommittee = true
		} else if err != pgx.ErrNoRows {
			return nil, err
		}
	}
	return details, nil
}

// CreateEvent publishes a future-dated event with its ticket types;
// committee members of the owning society only.
func (s *EventService) CreateEvent(ctx context.Context, callerID string, input EventCreateInput) (*domain.Event, []*domain.TicketType, error) {
	if len(input.TicketTypes) == 0 {
		return nil, nil, apperrors.NewBadRequest("missing ticket types")
	}
	for _, tt := range input.TicketTypes {
		if tt.Price <= 0 {
			return nil, nil, apperrors.NewUnprocessable("invalid price")
		}
		if tt.Quantity <= 0 {
			return nil, nil, apperrors.NewUnprocessable("invalid quantity")
		}
		if tt.Name == "" {
			return nil, nil, apperrors.NewBadRequest("missing ticket type name")
		}
	}

	if _, err := s.societies.GetByID(ctx, input.SocietyID); err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil, apperrors.NewBadRequest("invalid societyId")
		}
		return nil, nil, err
	}

	if err := s.requireCommittee(ctx, input.SocietyID, callerID); err != nil {
		return nil, nil, err
	}

	if input.Date.Before(time.Now()) {
		return nil, nil, apperrors.NewBadRequest("invalid date")
	}

	event := &domain.Event{
		SocietyID:   input.SocietyID,
		Name:        input.Name,
		Description: input.Description,
		Date:        input.Date,
		Location:    input.Location,
		BannerURL:   input.BannerURL,
	}
	types := make([]*domain.TicketType, 0, len(input.TicketTypes))
	for _, tt := range input.TicketTypes {
		types = append(types, &domain.TicketType{
			Name:     tt.Name,
			Price:    tt.Price,
			Quantity: tt.Quantity,
		})
	}

	if err := s.events.Create(ctx, event, types); err != nil {
		return nil, nil, err
	}
	s.cache.Invalidate(ctx)
	return event, types, nil
}

// UpdateEvent applies partial field updates; committee members only.
func (s *EventService) UpdateEvent(ctx context.Context, callerID string, input EventUpdateInput) (*domain.Event, error) {
	event, err := s.events.GetByID(ctx, input.EventID)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.NewBadRequest("invalid eventId")
		}
		return nil, err
	}

	if err := s.requireCommittee(ctx, event.SocietyID, callerID); err != nil {
		return nil, err
	}

	if input.Date != nil {
		if input.Date.Before(time.Now()) {
			return nil, apperrors.NewBadRequest("invalid date")
		}
		event.Date = *input.Date
	}
	if input.Name != "" {
		event.Name = input.Name
	}
	if input.Description != "" {
		event.Description = input.Description
	}
	if input.Location != "" {
		event.Location = input.Location
	}
	if input.BannerURL != "" {
		event.BannerURL = input.BannerURL
	}

	if err := s.events.Update(ctx, event); err != nil {
		return nil, err
	}
	s.cache.Invalidate(ctx)
	return event, nil
}

// ArchiveEvent soft-deletes an event; committee members only.
func (s *EventService) ArchiveEvent(ctx context.Context, callerID, eventID string) error {
	event, err := s.events.GetByID(ctx, eventID)
	if err != nil {
		if err == pgx.ErrNoRows {
			return apperrors.NewBadRequest("invalid eventId")
		}
		return err
	}

	if err := s.requireCommittee(ctx, event.SocietyID, callerID); err != nil {
		return err
	}

	if err := s.events.Archive(ctx, eventID); err != nil {
		return err
	}
	s.cache.Invalidate(ctx)
	return nil
}

// SearchEvents matches a case-insensitive substring of the event name.
func (s *EventService) SearchEvents(ctx context.Context, term string) ([]domain.Event, error) {
	return s.events.SearchByName(ctx, term)
}

func (s *EventService) requireCommittee(ctx context.Context, societyID, callerID string) error {
	if _, err := s.committee.GetMember(ctx, societyID, callerID); err != nil {
		if err == pgx.ErrNoRows {
			return apperrors.NewUnauthorized("committee membership required")
		}
		return err
	}
	return nil
}
