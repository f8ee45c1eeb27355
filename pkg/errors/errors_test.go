package errors

import (
	"errors"
	"net/http"
	"testing"
	"time"
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
	cause := errors.New("connection refused")
	wrapped := Wrap(cause, CodeInternal, "internal error", http.StatusInternalServerError)

	if !errors.Is(wrapped, cause) {
		t.Errorf("expected wrapped error to unwrap to the cause")
	}
	if wrapped.Code != CodeInternal {
		t.Errorf("expected code %s, got %s", CodeInternal, wrapped.Code)
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
				Message: "resource not found",
			},
			expected: "NOT_FOUND: resource not found",
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
			got := tt.appErr.Error()
			if got != tt.expected {
				t.Errorf("Error() = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestAdvanceTooFar_Details(t *testing.T) {
	date := time.Date(2026, 9, 10, 0, 0, 0, 0, time.UTC)
	earliest := time.Date(2026, 9, 5, 0, 0, 0, 0, time.UTC)

	err := AdvanceTooFar(date, earliest)

	if err.Code != CodeAdvanceTooFar {
		t.Fatalf("expected code %s, got %s", CodeAdvanceTooFar, err.Code)
	}
	if err.Details["earliest_date"] != "2026-09-05" {
		t.Errorf("expected earliest_date 2026-09-05, got %v", err.Details["earliest_date"])
	}
	if err.Details["date"] != "2026-09-10" {
		t.Errorf("expected date 2026-09-10, got %v", err.Details["date"])
	}
}

func TestPastDate_Status(t *testing.T) {
	err := PastDate(time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC))
	if err.HTTPStatus != http.StatusBadRequest {
		t.Errorf("expected status 400, got %d", err.HTTPStatus)
	}
}

func TestAsAppError_PassThrough(t *testing.T) {
	original := Conflict("slot already booked")
	got := AsAppError(original)
	if got != original {
		t.Errorf("expected the same AppError back")
	}
}

func TestAsAppError_WrapsUnknown(t *testing.T) {
	got := AsAppError(errors.New("boom"))
	if got.Code != CodeInternal {
		t.Errorf("expected code %s, got %s", CodeInternal, got.Code)
	}
}
