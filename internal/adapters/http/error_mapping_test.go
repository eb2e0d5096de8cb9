package httpadapter

import (
	"errors"
	"net/http"
	"testing"

	"org-assistant/internal/core/domain"
)

func TestMapErrorToHTTPStatus(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want int
	}{
		{"invalid input", domain.WrapError(domain.ErrInvalidInput, "op", errors.New("bad")), http.StatusBadRequest},
		{"not found", domain.WrapError(domain.ErrNotFound, "op", errors.New("gone")), http.StatusNotFound},
		{"temporary", domain.WrapError(domain.ErrTemporary, "op", errors.New("later")), http.StatusServiceUnavailable},
		{"unknown", errors.New("boom"), http.StatusInternalServerError},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := mapErrorToHTTPStatus(tc.err); got != tc.want {
				t.Fatalf("mapErrorToHTTPStatus() = %d, want %d", got, tc.want)
			}
		})
	}
}
