package domain

import "time"

// Event is published by a society and carries one or more ticket types.
type Event struct {
	ID          string
	SocietyID   string
	Name        string
	Description string
	Date        time.Time
	Location    string
	BannerURL   string
	Archived    bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// EventSummary is one entry of the public catalog listing: the event
// together with the society that runs it. Society is nil only when the
// owning row has gone missing.
type EventSummary struct {
	Event   Event
	Society *Society
}

// TicketType is a purchasable category for an event. Quantity is
// advisory: nothing decrements it on purchase.
type TicketType struct {
	ID        string
	EventID   string
	Name      string
	Price     float64
	Quantity  int
	Archived  bool
	CreatedAt time.Time
}
