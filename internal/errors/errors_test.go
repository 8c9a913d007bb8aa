package errors

import (
	stderrors "errors"
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
		{"invalid input", InvalidInput("bad", nil), http.StatusBadRequest},
		{"validation", ValidationError([]string{"a", "b"}), http.StatusBadRequest},
		{"not found", NotFound("missing", nil), http.StatusNotFound},
		{"unauthorized", Unauthorized("who", nil), http.StatusUnauthorized},
		{"forbidden", Forbidden("no", nil), http.StatusForbidden},
		{"rate limited", RateLimited("slow down"), http.StatusTooManyRequests},
		{"relay", RelayError("upstream", stderrors.New("boom")), http.StatusBadGateway},
		{"database", DatabaseError("db", nil), http.StatusInternalServerError},
		{"wrapped", fmt.Errorf("context: %w", NotFound("missing", nil)), http.StatusNotFound},
		{"plain", stderrors.New("plain"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, HTTPStatus(tt.err))
		})
	}
}

func TestValidationError_JoinsProblems(t *testing.T) {
	err := ValidationError([]string{"Name must be at least 2 characters", "Spam detected"})

	assert.Equal(t, ErrCodeValidationError, err.Code)
	assert.Equal(t, "Name must be at least 2 characters, Spam detected", err.Message)
	assert.Len(t, err.Problems, 2)
	assert.True(t, HasCode(err, ErrCodeValidationError))
}

func TestAppError_UnwrapAndContext(t *testing.T) {
	cause := stderrors.New("connection refused")
	err := DatabaseError("failed to save lead", cause).WithOperation("CreateLead").WithDetails("leads table")

	assert.ErrorIs(t, err, cause)
	assert.Equal(t, "CreateLead", err.Operation)
	assert.Equal(t, "leads table", err.Details)
	assert.Contains(t, err.Error(), "caused by: connection refused")
	assert.NotEmpty(t, err.File)

	_, ok := As(stderrors.New("other"))
	assert.False(t, ok)
}
