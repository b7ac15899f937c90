package dto

import (
	"time"

	"github.com/campus-kit/society-events/internal/domain"
)

// TicketTypeRequest describes one purchasable category on a new event.
type TicketTypeRequest struct {
	Name     string  `json:"name" validate:"required,max=100"`
	Price    float64 `json:"price" validate:"required,gt=0"`
	Quantity int     `json:"quantity" validate:"required,gt=0"`
}

// EventCreateRequest payload for publishing an event.
type EventCreateRequest struct {
	Name        string              `json:"name" validate:"required,max=200"`
	Description string              `json:"description" validate:"required,max=2000"`
	Date        time.Time           `json:"date" validate:"required"`
	Location    string              `json:"location" validate:"required,max=200"`
	BannerURL   string              `json:"bannerUrl" validate:"omitempty,url"`
	SocietyID   string              `json:"societyId" validate:"required"`
	TicketTypes []TicketTypeRequest `json:"ticketTypes" validate:"required,min=1,dive"`
}

// EventUpdateRequest carries partial fields; omitted fields keep their
// previous value.
type EventUpdateRequest struct {
	Name        string     `json:"name" validate:"omitempty,max=200"`
	Description string     `json:"description" validate:"omitempty,max=2000"`
	Date        *time.Time `json:"date"`
	Location    string     `json:"location" validate:"omitempty,max=200"`
	BannerURL   string     `json:"bannerUrl" validate:"omitempty,url"`
}

// EventResponse is the public view of an event.
type EventResponse struct {
	ID          string    `json:"id"`
	SocietyID   string    `json:"societyId"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Date        time.Time `json:"date"`
	Location    string    `json:"location"`
	BannerURL   string    `json:"bannerUrl"`
	Archived    bool      `json:"archived"`
}

// TicketTypeResponse is the public view of a ticket type.
type TicketTypeResponse struct {
	ID       string  `json:"id"`
	EventID  string  `json:"eventId"`
	Name     string  `json:"name"`
	Price    float64 `json:"price"`
	Quantity int     `json:"quantity"`
}

// EventDetailsResponse bundles an event with its ticket types and owner.
type EventDetailsResponse struct {
	Event       EventResponse        `json:"event"`
	TicketTypes []TicketTypeResponse `json:"ticketTypes"`
	Society     *SocietyResponse     `json:"society,omitempty"`
	IsCommittee bool                 `json:"isCommittee"`
}

// NewEventResponse maps a domain event.
func NewEventResponse(event *domain.Event) EventResponse {
	return EventResponse{
		ID:          event.ID,
		SocietyID:   event.SocietyID,
		Name:        event.Name,
		Description: event.Description,
		Date:        event.Date,
		Location:    event.Location,
		BannerURL:   event.BannerURL,
		Archived:    event.Archived,
	}
}

// EventSummaryResponse is one catalog listing entry: event fields plus
// the society running it.
type EventSummaryResponse struct {
	EventResponse
	Society *SocietyResponse `json:"society,omitempty"`
}

// NewEventListResponse maps a slice of events.
func NewEventListResponse(events []domain.Event) []EventResponse {
	out := make([]EventResponse, 0, len(events))
	for i := range events {
		out = append(out, NewEventResponse(&events[i]))
	}
	return out
}

// NewEventSummaryListResponse maps the catalog listing.
func NewEventSummaryListResponse(listing []domain.EventSummary) []EventSummaryResponse {
	out := make([]EventSummaryResponse, 0, len(listing))
	for i := range listing {
		entry := EventSummaryResponse{EventResponse: NewEventResponse(&listing[i].Event)}
		if listing[i].Society != nil {
			society := NewSocietyResponse(listing[i].Society)
			entry.Society = &society
		}
		out = append(out, entry)
	}
	return out
}

// NewTicketTypeResponse maps a domain ticket type.
func NewTicketTypeResponse(tt *domain.TicketType) TicketTypeResponse {
	return TicketTypeResponse{
		ID:       tt.ID,
		EventID:  tt.EventID,
		Name:     tt.Name,
		Price:    tt.Price,
		Quantity: tt.Quantity,
	}
}
