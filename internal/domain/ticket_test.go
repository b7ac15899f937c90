package domain

import (
	"encoding/base64"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTicketPayloadRoundTrip(t *testing.T) {
	payload := TicketPayload{
		TicketTypeName: "General Admission",
		TicketTypeID:   "tt-1",
		UserID:         "user-1",
		EventID:        "event-1",
		PurchaseID:     "purchase-1",
		Secret:         "deadbeef",
	}

	code, err := payload.Encode()
	require.NoError(t, err)

	decoded, err := DecodeTicketPayload(code)
	require.NoError(t, err)
	assert.Equal(t, payload, *decoded)
}

func TestTicketPayloadFieldNames(t *testing.T) {
	code, err := TicketPayload{Secret: "s", UserID: "u"}.Encode()
	require.NoError(t, err)

	raw, err := base64.StdEncoding.DecodeString(code)
	require.NoError(t, err)

	var fields map[string]any
	require.NoError(t, json.Unmarshal(raw, &fields))
	assert.Contains(t, fields, "ticketSecret")
	assert.Contains(t, fields, "userID")
	assert.Contains(t, fields, "ticketTypeName")
}

func TestDecodeTicketPayloadRejectsGarbage(t *testing.T) {
	_, err := DecodeTicketPayload("%%% not base64 %%%")
	assert.Error(t, err)

	notJSON := base64.StdEncoding.EncodeToString([]byte("plain text"))
	_, err = DecodeTicketPayload(notJSON)
	assert.Error(t, err)
}
