package errors

import (
	"errors"
	"net/http"
)

var (
	// ErrEmailTaken is returned when signing up with an already registered email.
	ErrEmailTaken = errors.New("email already registered")
	// ErrInvalidCredentials is returned when email or password is incorrect.
	ErrInvalidCredentials = errors.New("invalid email or password")
	// ErrInvalidRefreshToken is returned when a refresh token is invalid or expired.
	ErrInvalidRefreshToken = errors.New("invalid or expired refresh token")
	// ErrProfileNotFound is returned when a user has no profile record.
	ErrProfileNotFound = errors.New("profile not found")
	// ErrOnboardingComplete is returned when onboarding is finalized twice.
	ErrOnboardingComplete = errors.New("onboarding already completed")
	// ErrOnboardingRequired is returned when a feature is gated behind onboarding.
	ErrOnboardingRequired = errors.New("complete onboarding first")
	// ErrUniversityNotFound is returned when a university does not exist.
	ErrUniversityNotFound = errors.New("university not found")
	// ErrNotShortlisted is returned when a user acts on a university outside their shortlist.
	ErrNotShortlisted = errors.New("university not in shortlist")
	// ErrShortlistLocked is returned when removing a locked shortlist entry.
	ErrShortlistLocked = errors.New("cannot remove a locked university; unlock it first")
	// ErrTaskNotFound is returned when a task is missing or owned by another user.
	ErrTaskNotFound = errors.New("task not found")
	// ErrDocumentNotFound is returned when a document is missing or owned by another user.
	ErrDocumentNotFound = errors.New("document not found")
	// ErrUpstream is returned when the AI provider fails.
	ErrUpstream = errors.New("ai provider request failed")
	// ErrUpstreamTimeout is returned when the AI provider does not answer in time.
	ErrUpstreamTimeout = errors.New("ai provider request timed out")
)

// ErrorResponse represents a standardized error response.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

// HTTPError represents an HTTP error with status code.
type HTTPError struct {
	StatusCode int
	Message    string
	Code       string
}

func (e *HTTPError) Error() string {
	return e.Message
}

// NewHTTPError creates a new HTTP error.
func NewHTTPError(statusCode int, message, code string) *HTTPError {
	return &HTTPError{
		StatusCode: statusCode,
		Message:    message,
		Code:       code,
	}
}

// ToErrorResponse converts an HTTPError to ErrorResponse.
func (e *HTTPError) ToErrorResponse() ErrorResponse {
	return ErrorResponse{
		Error: e.Message,
		Code:  e.Code,
	}
}

// MapErrorToHTTP maps domain errors to HTTP errors.
func MapErrorToHTTP(err error) *HTTPError {
	switch {
	case errors.Is(err, ErrEmailTaken):
		return NewHTTPError(http.StatusConflict, err.Error(), "EMAIL_TAKEN")
	case errors.Is(err, ErrInvalidCredentials):
		return NewHTTPError(http.StatusUnauthorized, err.Error(), "INVALID_CREDENTIALS")
	case errors.Is(err, ErrInvalidRefreshToken):
		return NewHTTPError(http.StatusUnauthorized, err.Error(), "INVALID_REFRESH_TOKEN")
	case errors.Is(err, ErrProfileNotFound):
		return NewHTTPError(http.StatusNotFound, err.Error(), "PROFILE_NOT_FOUND")
	case errors.Is(err, ErrOnboardingComplete):
		return NewHTTPError(http.StatusConflict, err.Error(), "ONBOARDING_ALREADY_COMPLETE")
	case errors.Is(err, ErrOnboardingRequired):
		return NewHTTPError(http.StatusConflict, err.Error(), "ONBOARDING_REQUIRED")
	case errors.Is(err, ErrUniversityNotFound):
		return NewHTTPError(http.StatusNotFound, err.Error(), "UNIVERSITY_NOT_FOUND")
	case errors.Is(err, ErrNotShortlisted):
		return NewHTTPError(http.StatusNotFound, err.Error(), "NOT_SHORTLISTED")
	case errors.Is(err, ErrShortlistLocked):
		return NewHTTPError(http.StatusConflict, err.Error(), "SHORTLIST_LOCKED")
	case errors.Is(err, ErrTaskNotFound):
		return NewHTTPError(http.StatusNotFound, err.Error(), "TASK_NOT_FOUND")
	case errors.Is(err, ErrDocumentNotFound):
		return NewHTTPError(http.StatusNotFound, err.Error(), "DOCUMENT_NOT_FOUND")
	case errors.Is(err, ErrUpstreamTimeout):
		return NewHTTPError(http.StatusGatewayTimeout, err.Error(), "AI_TIMEOUT")
	case errors.Is(err, ErrUpstream):
		return NewHTTPError(http.StatusBadGateway, err.Error(), "AI_UPSTREAM")
	default:
		return NewHTTPError(http.StatusInternalServerError, "internal server error", "INTERNAL_ERROR")
	}
}
