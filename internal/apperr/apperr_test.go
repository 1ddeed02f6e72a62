package apperr

import (
	"errors"
	"fmt"
	"net/http"
	"testing"
)

func TestStatusMapping(t *testing.T) {
	cases := []struct {
		err  *Error
		want int
	}{
		{Validation("bad"), http.StatusBadRequest},
		{Unauthorized("who"), http.StatusUnauthorized},
		{Forbidden("no"), http.StatusForbidden},
		{NotFound("gone"), http.StatusNotFound},
		{Conflict("dup"), http.StatusConflict},
		{&Error{Message: "boom"}, http.StatusInternalServerError},
	}
	for _, tc := range cases {
		if got := tc.err.Status(); got != tc.want {
			t.Fatalf("%q: status=%d want=%d", tc.err.Message, got, tc.want)
		}
	}
}

func TestAsUnwrapsWrappedErrors(t *testing.T) {
	sentinel := NotFound("order not found")
	wrapped := fmt.Errorf("load: %w", sentinel)

	e, ok := As(wrapped)
	if !ok || e != sentinel {
		t.Fatalf("As did not find sentinel: %v", e)
	}
	if !errors.Is(wrapped, sentinel) {
		t.Fatalf("errors.Is should match sentinel")
	}
	if !IsKind(wrapped, KindNotFound) || IsKind(wrapped, KindValidation) {
		t.Fatalf("IsKind mismatch")
	}
	if _, ok := As(errors.New("plain")); ok {
		t.Fatalf("plain error must not classify")
	}
}
