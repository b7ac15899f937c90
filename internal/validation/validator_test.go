package validation

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/campus-kit/society-events/pkg/util"
)

type samplePayload struct {
	Email    string  `json:"email" validate:"required,email"`
	Quantity int     `json:"quantity" validate:"required,gt=0"`
	Total    float64 `json:"total" validate:"gte=0"`
}

func TestCheckValid(t *testing.T) {
	err := Check(samplePayload{Email: "a@b.com", Quantity: 2, Total: 10})
	assert.NoError(t, err)
}

func TestCheckReportsJSONFieldNames(t *testing.T) {
	err := Check(samplePayload{Email: "not-an-email", Quantity: -1, Total: -5})
	require.Error(t, err)

	var domainErr *apperrors.DomainError
	require.True(t, errors.As(err, &domainErr))
	assert.Equal(t, "VALIDATION_FAILED", domainErr.Code)
	assert.Contains(t, domainErr.Details, "email")
	assert.Contains(t, domainErr.Details, "quantity")
	assert.Contains(t, domainErr.Details, "total")
	assert.NotContains(t, domainErr.Details, "Email")
}

func TestCheckRequired(t *testing.T) {
	err := Check(samplePayload{})
	require.Error(t, err)

	var domainErr *apperrors.DomainError
	require.True(t, errors.As(err, &domainErr))
	assert.Equal(t, "is required", domainErr.Details["email"])
}
