package domain

import "time"

// Purchase records one checkout transaction producing one or more tickets.
// Payment is simulated; the method label is fixed at creation.
type Purchase struct {
	ID            string
	UserID        string
	EventID       string
	Total         float64
	PaymentMethod string
	Archived      bool
	CreatedAt     time.Time
}
