package apperr_test

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"stravarace-backend/pkg/apperr"
)

func TestStatusCode(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want int
	}{
		{"not found", apperr.ErrNotFound, http.StatusNotFound},
		{"credential not found", apperr.ErrCredentialNotFound, http.StatusNotFound},
		{"item exists", apperr.ErrItemExists, http.StatusConflict},
		{"competitor assigned", apperr.ErrCompetitorAssigned, http.StatusConflict},
		{"segment assigned", apperr.ErrSegmentAssigned, http.StatusConflict},
		{"time violated", apperr.ErrEventTimeViolated, http.StatusBadRequest},
		{"api communication", apperr.ErrAPICommunication, http.StatusBadGateway},
		{"token refresh", apperr.ErrTokenRefreshFailed, http.StatusBadGateway},
		{"wrapped", fmt.Errorf("event e1: %w", apperr.ErrNotFound), http.StatusNotFound},
		{"unknown", errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := apperr.StatusCode(tc.err); got != tc.want {
				t.Fatalf("StatusCode(%v) = %d, want %d", tc.err, got, tc.want)
			}
		})
	}
}

func TestSpecializedErrorsWrapItemExists(t *testing.T) {
	if !errors.Is(apperr.ErrCompetitorAssigned, apperr.ErrItemExists) {
		t.Fatal("ErrCompetitorAssigned must match ErrItemExists")
	}
	if !errors.Is(apperr.ErrSegmentAssigned, apperr.ErrItemExists) {
		t.Fatal("ErrSegmentAssigned must match ErrItemExists")
	}
}
