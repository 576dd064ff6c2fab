package errors

import (
	"errors"
	"net/http"
	"testing"
)

func TestNew(t *testing.T) {
	err := New(CodeValidation, "validation failed", http.StatusUnprocessableEntity)

	if err.Code != CodeValidation {
		t.Errorf("expected code %s, got %s", CodeValidation, err.Code)
	}
	if err.Message != "validation failed" {
		t.Errorf("expected message 'validation failed', got %s", err.Message)
	}
	if err.HTTPStatus != http.StatusUnprocessableEntity {
		t.Errorf("expected status %d, got %d", http.StatusUnprocessableEntity, err.HTTPStatus)
	}
}

func TestWrap(t *testing.T) {
	originalErr := errors.New("database connection failed")
	wrapped := Wrap(originalErr, CodeInternal, "internal error", http.StatusInternalServerError)

	if wrapped.Err != originalErr {
		t.Errorf("expected wrapped error to contain original error")
	}
	if !errors.Is(wrapped, originalErr) {
		t.Errorf("expected errors.Is to unwrap to original error")
	}
}

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
				Err:     errors.New("database connection failed"),
			},
			expected: "INTERNAL_ERROR: internal error (caused by: database connection failed)",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.appErr.Error(); got != tt.expected {
				t.Errorf("expected %q, got %q", tt.expected, got)
			}
		})
	}
}

func TestSlotTaken_UsesBadRequest(t *testing.T) {
	err := SlotTaken("slot already booked")

	if err.Code != CodeSlotTaken {
		t.Errorf("expected code %s, got %s", CodeSlotTaken, err.Code)
	}
	if err.StatusCode() != http.StatusBadRequest {
		t.Errorf("expected status 400 for slot conflicts, got %d", err.StatusCode())
	}
}

func TestAsAppError(t *testing.T) {
	appErr := NotFoundWithID("Booking", "abc123")
	if got := AsAppError(appErr); got != appErr {
		t.Errorf("expected AsAppError to pass through AppError unchanged")
	}

	plain := errors.New("driver: bad connection")
	converted := AsAppError(plain)
	if converted.Code != CodeInternal {
		t.Errorf("expected unknown errors to become %s, got %s", CodeInternal, converted.Code)
	}
	if converted.Message == plain.Error() {
		t.Errorf("internal error detail must not leak into the client message")
	}
}
