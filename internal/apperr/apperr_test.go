package apperr

import (
	"errors"
	"fmt"
	"net/http"
	"testing"
)

func TestStatusOf(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"not found", NotFound("student not found: %s", "S001"), http.StatusNotFound},
		{"bad request", BadRequest("month is required"), http.StatusBadRequest},
		{"conflict", Conflict("duplicate"), http.StatusConflict},
		{"unauthorized", Unauthorized("bad credentials"), http.StatusUnauthorized},
		{"forbidden", Forbidden("admins only"), http.StatusForbidden},
		{"wrapped", fmt.Errorf("lookup: %w", NotFound("gone")), http.StatusNotFound},
		{"plain error", errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := StatusOf(tt.err); got != tt.want {
				t.Errorf("StatusOf = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestIsNotFound(t *testing.T) {
	if !IsNotFound(NotFound("x")) {
		t.Error("NotFound not detected")
	}
	if !IsNotFound(fmt.Errorf("wrap: %w", NotFound("x"))) {
		t.Error("wrapped NotFound not detected")
	}
	if IsNotFound(BadRequest("x")) {
		t.Error("BadRequest reported as NotFound")
	}
	if IsNotFound(errors.New("x")) {
		t.Error("plain error reported as NotFound")
	}
}
