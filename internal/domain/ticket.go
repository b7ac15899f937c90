package domain

import (
	"encoding/base64"
	"encoding/json"
	"time"
)

// TicketStatus enumerates ticket lifecycle states. USED is terminal.
type TicketStatus string

const (
	TicketStatusValid TicketStatus = "VALID"
	TicketStatusUsed  TicketStatus = "USED"
)

// Ticket is a single admission unit produced by a purchase. Code holds
// the base64 payload that door staff scan as a QR code.
type Ticket struct {
	ID           string
	PurchaseID   string
	TicketTypeID string
	EventID      string
	UserID       string
	Code         string
	Status       TicketStatus
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// TicketPayload is the data embedded in a ticket code.
type TicketPayload struct {
	TicketTypeName string `json:"ticketTypeName"`
	TicketTypeID   string `json:"ticketTypeID"`
	UserID         string `json:"userID"`
	EventID        string `json:"eventID"`
	PurchaseID     string `json:"purchaseID"`
	Secret         string `json:"ticketSecret"`
}

// Encode serializes the payload as base64 JSON.
func (p TicketPayload) Encode() (string, error) {
	raw, err := json.Marshal(p)
	if err != nil {
		return "", err
	}
	return base64.StdEncoding.EncodeToString(raw), nil
}

// DecodeTicketPayload reverses Encode.
func DecodeTicketPayload(code string) (*TicketPayload, error) {
	raw, err := base64.StdEncoding.DecodeString(code)
	if err != nil {
		return nil, err
	}
	var payload TicketPayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		return nil, err
	}
	return &payload, nil
}
