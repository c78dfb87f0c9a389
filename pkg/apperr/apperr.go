package apperr

import (
	"errors"
	"fmt"
	"net/http"
)

// Domain error kinds. Usecases wrap these with fmt.Errorf("...: %w", Err...)
// so callers can branch with errors.Is while keeping a readable message.
var (
	ErrNotFound           = errors.New("not found")
	ErrItemExists         = errors.New("item already exists")
	ErrEventTimeViolated  = errors.New("event time window violated")
	ErrAPICommunication   = errors.New("strava api communication error")
	ErrTokenRefreshFailed = errors.New("token refresh failed")
	ErrCredentialNotFound = errors.New("credential not found")
)

// Specializations of the duplicate case. They wrap ErrItemExists so callers
// that only care about "already done" keep working with errors.Is.
var (
	ErrCompetitorAssigned = fmt.Errorf("competitor already assigned to event: %w", ErrItemExists)
	ErrSegmentAssigned    = fmt.Errorf("segment already assigned to event: %w", ErrItemExists)
)

// StatusCode maps a domain error to the HTTP status the delivery layer responds with.
func StatusCode(err error) int {
	switch {
	case errors.Is(err, ErrNotFound), errors.Is(err, ErrCredentialNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrItemExists):
		return http.StatusConflict
	case errors.Is(err, ErrEventTimeViolated):
		return http.StatusBadRequest
	case errors.Is(err, ErrAPICommunication), errors.Is(err, ErrTokenRefreshFailed):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
