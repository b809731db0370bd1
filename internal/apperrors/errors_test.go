package apperrors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHTTPStatus(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"not found", fmt.Errorf("purchase p1: %w", ErrNotFound), http.StatusNotFound},
		{"validation", ErrValidation, http.StatusBadRequest},
		{"unauthorized", ErrUnauthorized, http.StatusUnauthorized},
		{"forbidden", ErrForbidden, http.StatusForbidden},
		{"insufficient funds", fmt.Errorf("company: %w", ErrInsufficientFunds), http.StatusUnprocessableEntity},
		{"already resolved", ErrAlreadyResolved, http.StatusConflict},
		{"duplicate", ErrDuplicate, http.StatusConflict},
		{"invariant", ErrInvariantViolation, http.StatusInternalServerError},
		{"app error code", NewAppError(http.StatusBadGateway, "upstream", errors.New("boom")), http.StatusBadGateway},
		{"app error wrapping sentinel", NewAppError(500, "find site", ErrNotFound), http.StatusNotFound},
		{"unknown", errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, HTTPStatus(tt.err))
		})
	}
}

func TestAppErrorUnwrap(t *testing.T) {
	err := NewAppError(500, "failed to save", ErrDuplicate)
	assert.True(t, errors.Is(err, ErrDuplicate))
	assert.Equal(t, "failed to save: resource already exists", err.Error())
	assert.Equal(t, "bare", NewAppError(500, "bare", nil).Error())
}
