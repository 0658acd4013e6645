package handlers

import (
	"errors"
	"fmt"
	"testing"

	"github.com/pocketbase/pocketbase/tools/router"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"academy-system/internal/status"
)

func TestApiError_StatusCodes(t *testing.T) {
	tests := []struct {
		name string
		err  error
		code int
	}{
		{"unauthenticated", status.ErrUnauthenticated, 401},
		{"not found", status.ErrNotFound, 404},
		{"invalid plan", status.ErrInvalidPlan, 400},
		{"inactive subscription", status.ErrSubscriptionInactive, 403},
		{"already booked", status.ErrAlreadyBooked, 409},
		{"class full", status.ErrClassFull, 409},
		{"below zero", status.ErrBelowZero, 409},
		{"capacity exceeded", status.ErrCapacityExceeded, 409},
		{"unknown", errors.New("boom"), 500},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Wrapped errors map the same as bare sentinels.
			wrapped := fmt.Errorf("context: %w", tt.err)

			var apiErr *router.ApiError
			require.ErrorAs(t, apiError(wrapped), &apiErr)
			assert.Equal(t, tt.code, apiErr.Status)
		})
	}
}

func TestApiError_DistinctMessages(t *testing.T) {
	full := apiError(status.ErrClassFull).(*router.ApiError)
	inactive := apiError(status.ErrSubscriptionInactive).(*router.ApiError)

	assert.NotEqual(t, full.Message, inactive.Message)
}
