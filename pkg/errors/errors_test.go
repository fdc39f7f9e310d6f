package errors

import (
	"errors"
	"net/http"
	"testing"
)

func TestAppError_Error(t *testing.T) {
	tests := []struct {
		name     string
		appErr   *AppError
		expected string
	}{
		{
			name: "without underlying error",
			appErr: &AppError{
				Code:    CodeNotFound,
				Message: "booking not found",
			},
			expected: "NOT_FOUND: booking not found",
		},
		{
			name: "with underlying error",
			appErr: &AppError{
				Code:    CodeInternal,
				Message: "internal error",
				Err:     errors.New("connection refused"),
			},
			expected: "INTERNAL_ERROR: internal error (caused by: connection refused)",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.appErr.Error(); got != tt.expected {
				t.Errorf("Error() = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestConstructors(t *testing.T) {
	tests := []struct {
		name       string
		err        *AppError
		wantCode   string
		wantStatus int
	}{
		{"not found", NotFound("Booking"), CodeNotFound, http.StatusNotFound},
		{"validation", Validation("invalid booking", nil), CodeValidation, http.StatusUnprocessableEntity},
		{"invalid input", InvalidInput("missing email"), CodeInvalidInput, http.StatusBadRequest},
		{"unauthorized", Unauthorized("no credential"), CodeUnauthorized, http.StatusUnauthorized},
		{"forbidden", Forbidden("not an admin"), CodeForbidden, http.StatusForbidden},
		{"conflict", Conflict("duplicate booking"), CodeConflict, http.StatusConflict},
		{"internal", Internal("boom", errors.New("cause")), CodeInternal, http.StatusInternalServerError},
		{"unavailable", Unavailable("document store", errors.New("down")), CodeUnavailable, http.StatusServiceUnavailable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.err.Code != tt.wantCode {
				t.Errorf("Code = %s, want %s", tt.err.Code, tt.wantCode)
			}
			if tt.err.StatusCode() != tt.wantStatus {
				t.Errorf("StatusCode() = %d, want %d", tt.err.StatusCode(), tt.wantStatus)
			}
		})
	}
}

func TestUnavailable_Message(t *testing.T) {
	err := Unavailable("payment gateway", nil)
	if err.Message != "payment gateway is temporarily unavailable" {
		t.Errorf("unexpected message: %s", err.Message)
	}
}

func TestUnwrap(t *testing.T) {
	cause := errors.New("original")
	appErr := Internal("wrapped", cause)

	if unwrapped := errors.Unwrap(appErr); unwrapped != cause {
		t.Errorf("Unwrap() = %v, want %v", unwrapped, cause)
	}
}

func TestAsAppError(t *testing.T) {
	appErr := NotFound("User")
	if got := AsAppError(appErr); got != appErr {
		t.Error("AsAppError() should return the same AppError")
	}

	plain := errors.New("plain error")
	wrapped := AsAppError(plain)
	if wrapped.Code != CodeInternal {
		t.Errorf("AsAppError() code = %s, want %s", wrapped.Code, CodeInternal)
	}
	if wrapped.Err != plain {
		t.Error("AsAppError() should keep the original error as cause")
	}
}

func TestHasCode(t *testing.T) {
	if !HasCode(Conflict("dup"), CodeConflict) {
		t.Error("HasCode() should match a conflict error")
	}
	if HasCode(NotFound("User"), CodeConflict) {
		t.Error("HasCode() should not match a different code")
	}
	if HasCode(errors.New("plain"), CodeConflict) {
		t.Error("HasCode() should be false for non-AppError values")
	}
}
