package apperr_test

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/garnizeh/jobboard/internal/apperr"
)

func TestStatusAndCode(t *testing.T) {
	cause := errors.New("disk on fire")
	cases := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
		wantMsg    string
	}{
		{"Unauthenticated", apperr.New(apperr.ErrUnauthenticated, "missing token"), http.StatusUnauthorized, "unauthenticated", "missing token"},
		{"Forbidden", apperr.New(apperr.ErrForbidden, "admin only"), http.StatusForbidden, "forbidden", "admin only"},
		{"Conflict", apperr.New(apperr.ErrConflict, "already applied"), http.StatusBadRequest, "conflict", "already applied"},
		{"InvalidInput", apperr.New(apperr.ErrInvalidInput, "role must be a string"), http.StatusBadRequest, "invalid_input", "role must be a string"},
		{"NotFound", apperr.New(apperr.ErrNotFound, "job not found"), http.StatusNotFound, "not_found", "job not found"},
		{"Internal hides cause", apperr.Internal("list jobs", cause), http.StatusInternalServerError, "internal", "internal server error"},
		{"Wrapped twice", fmt.Errorf("handler: %w", apperr.New(apperr.ErrForbidden, "nope")), http.StatusForbidden, "forbidden", "nope"},
		{"Plain error", cause, http.StatusInternalServerError, "internal", "internal server error"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if got := apperr.Status(c.err); got != c.wantStatus {
				t.Fatalf("Status = %d, want %d", got, c.wantStatus)
			}
			if got := apperr.Code(c.err); got != c.wantCode {
				t.Fatalf("Code = %q, want %q", got, c.wantCode)
			}
			if got := apperr.Message(c.err); got != c.wantMsg {
				t.Fatalf("Message = %q, want %q", got, c.wantMsg)
			}
		})
	}
}

func TestWrapKeepsCause(t *testing.T) {
	cause := errors.New("boom")
	err := apperr.Wrap(apperr.ErrConflict, "dup", cause)
	if !errors.Is(err, cause) {
		t.Fatalf("expected cause to be reachable")
	}
	if !errors.Is(err, apperr.ErrConflict) {
		t.Fatalf("expected kind to be reachable")
	}
	if errors.Is(err, apperr.ErrInternal) {
		t.Fatalf("unexpected kind match")
	}
}
