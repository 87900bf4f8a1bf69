package errors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMapErrorToHTTP(t *testing.T) {
	tests := []struct {
		err          error
		expectStatus int
		expectCode   string
	}{
		{ErrEmailTaken, http.StatusConflict, "EMAIL_TAKEN"},
		{ErrInvalidCredentials, http.StatusUnauthorized, "INVALID_CREDENTIALS"},
		{ErrInvalidRefreshToken, http.StatusUnauthorized, "INVALID_REFRESH_TOKEN"},
		{ErrProfileNotFound, http.StatusNotFound, "PROFILE_NOT_FOUND"},
		{ErrOnboardingComplete, http.StatusConflict, "ONBOARDING_ALREADY_COMPLETE"},
		{ErrOnboardingRequired, http.StatusConflict, "ONBOARDING_REQUIRED"},
		{ErrUniversityNotFound, http.StatusNotFound, "UNIVERSITY_NOT_FOUND"},
		{ErrNotShortlisted, http.StatusNotFound, "NOT_SHORTLISTED"},
		{ErrShortlistLocked, http.StatusConflict, "SHORTLIST_LOCKED"},
		{ErrTaskNotFound, http.StatusNotFound, "TASK_NOT_FOUND"},
		{ErrDocumentNotFound, http.StatusNotFound, "DOCUMENT_NOT_FOUND"},
		{ErrUpstreamTimeout, http.StatusGatewayTimeout, "AI_TIMEOUT"},
		{ErrUpstream, http.StatusBadGateway, "AI_UPSTREAM"},
	}

	for _, tt := range tests {
		t.Run(tt.expectCode, func(t *testing.T) {
			httpErr := MapErrorToHTTP(tt.err)
			assert.Equal(t, tt.expectStatus, httpErr.StatusCode)
			assert.Equal(t, tt.expectCode, httpErr.Code)
			assert.Equal(t, tt.err.Error(), httpErr.Message)
		})
	}
}

func TestMapErrorToHTTP_WrappedError(t *testing.T) {
	wrapped := fmt.Errorf("%w: connection refused", ErrUpstream)
	httpErr := MapErrorToHTTP(wrapped)
	assert.Equal(t, http.StatusBadGateway, httpErr.StatusCode)
	assert.Equal(t, "AI_UPSTREAM", httpErr.Code)
}

func TestMapErrorToHTTP_UnknownError(t *testing.T) {
	httpErr := MapErrorToHTTP(errors.New("something odd"))
	assert.Equal(t, http.StatusInternalServerError, httpErr.StatusCode)
	assert.Equal(t, "INTERNAL_ERROR", httpErr.Code)
	// Internals never leak to the client.
	assert.Equal(t, "internal server error", httpErr.Message)
}
