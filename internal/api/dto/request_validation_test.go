package dto

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/campus-kit/society-events/internal/validation"
	apperrors "github.com/campus-kit/society-events/pkg/util"
)

func validationDetails(t *testing.T, err error) map[string]any {
	t.Helper()
	require.Error(t, err)
	var domainErr *apperrors.DomainError
	require.True(t, errors.As(err, &domainErr))
	assert.Equal(t, "VALIDATION_FAILED", domainErr.Code)
	return domainErr.Details
}

func TestPurchaseCreateRequestRequiresStatusAndMethod(t *testing.T) {
	req := PurchaseCreateRequest{
		Status:  "completed",
		Method:  "paypal",
		Total:   20,
		EventID: "event-1",
		TicketQuantities: TicketQuantities{
			Types: []TicketQuantityRequest{{ID: "type-1", Quantity: 2}},
		},
	}
	require.NoError(t, validation.Check(req))

	req.Status = ""
	req.Method = ""
	details := validationDetails(t, validation.Check(req))
	assert.Equal(t, "is required", details["status"])
	assert.Equal(t, "is required", details["method"])
}

func TestEventCreateRequestRequiresDescription(t *testing.T) {
	req := EventCreateRequest{
		Name:      "Opening Night",
		Date:      time.Now().Add(24 * time.Hour),
		Location:  "Main Theatre",
		SocietyID: "society-1",
		TicketTypes: []TicketTypeRequest{
			{Name: "Standard", Price: 12, Quantity: 80},
		},
	}
	details := validationDetails(t, validation.Check(req))
	assert.Equal(t, "is required", details["description"])

	req.Description = "An evening of one-act plays."
	require.NoError(t, validation.Check(req))
}
