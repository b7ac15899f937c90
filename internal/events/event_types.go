package events

import (
	"time"

	"github.com/campus-kit/society-events/internal/domain"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventUserSignedUp           EventType = "user_signed_up"
	EventPasswordResetRequested EventType = "password_reset_requested"
	EventPurchaseCompleted      EventType = "purchase_completed"
)

// Event represents a domain event emitted by services.
type Event struct {
	ID        string      `json:"id"`
	Type      EventType   `json:"type"`
	UserID    string      `json:"user_id"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload"`
}

// UserSignedUpPayload carries everything the welcome email needs.
type UserSignedUpPayload struct {
	Name             string `json:"name"`
	Email            string `json:"email"`
	VerificationCode string `json:"verification_code"`
}

// PasswordResetRequestedPayload carries the reset link data.
type PasswordResetRequestedPayload struct {
	Name             string `json:"name"`
	Email            string `json:"email"`
	VerificationCode string `json:"verification_code"`
}

// TicketCode pairs the QR-encodable payload with a display label.
type TicketCode struct {
	QRData string `json:"qrData"`
	Label  string `json:"label"`
}

// PurchaseCompletedPayload carries the confirmation email data.
type PurchaseCompletedPayload struct {
	Email         string        `json:"email"`
	PurchaseID    string        `json:"purchase_id"`
	Event         *domain.Event `json:"event"`
	PaymentMethod string        `json:"payment_method"`
	Total         float64       `json:"total"`
	Quantity      int           `json:"quantity"`
	Tickets       []TicketCode  `json:"tickets"`
}
