package errors

import (
	"fmt"
	"net/http"
	"time"
)

const (
	CodeNotFound       = "NOT_FOUND"
	CodeValidation     = "VALIDATION_ERROR"
	CodeConflict       = "CONFLICT"
	CodeInternal       = "INTERNAL_ERROR"
	CodeInvalidInput   = "INVALID_INPUT"
	CodePastDate       = "PAST_DATE"
	CodeNoAvailability = "NO_AVAILABILITY_CONFIGURED"
	CodeAdvanceTooFar  = "ADVANCE_BOOKING_TOO_FAR"
	CodeUnavailable    = "SERVICE_UNAVAILABLE"
)

const dateLayout = "2006-01-02"

// AppError is the error type every service layer returns. Code identifies
// the failure kind for transport mapping, Details carries the identifiers
// and dates a caller needs to render a specific message.
type AppError struct {
	Code       string         `json:"code"`
	Message    string         `json:"message"`
	HTTPStatus int            `json:"-"`
	Details    map[string]any `json:"details,omitempty"`
	Err        error          `json:"-"`
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s (caused by: %v)", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

func (e *AppError) StatusCode() int {
	return e.HTTPStatus
}

func (e *AppError) WithDetails(details map[string]any) *AppError {
	e.Details = details
	return e
}

func New(code, message string, httpStatus int) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		HTTPStatus: httpStatus,
	}
}

func Wrap(err error, code, message string, httpStatus int) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		HTTPStatus: httpStatus,
		Err:        err,
	}
}

func NotFound(resource string) *AppError {
	return &AppError{
		Code:       CodeNotFound,
		Message:    fmt.Sprintf("%s not found", resource),
		HTTPStatus: http.StatusNotFound,
	}
}

func NotFoundWithID(resource, id string) *AppError {
	return &AppError{
		Code:       CodeNotFound,
		Message:    fmt.Sprintf("%s not found", resource),
		HTTPStatus: http.StatusNotFound,
		Details: map[string]any{
			"resource": resource,
			"id":       id,
		},
	}
}

func Validation(message string, details map[string]any) *AppError {
	return &AppError{
		Code:       CodeValidation,
		Message:    message,
		HTTPStatus: http.StatusUnprocessableEntity,
		Details:    details,
	}
}

func InvalidInput(message string) *AppError {
	return &AppError{
		Code:       CodeInvalidInput,
		Message:    message,
		HTTPStatus: http.StatusBadRequest,
	}
}

func Conflict(message string) *AppError {
	return &AppError{
		Code:       CodeConflict,
		Message:    message,
		HTTPStatus: http.StatusConflict,
	}
}

// PastDate rejects any request targeting a day before today.
func PastDate(date time.Time) *AppError {
	return &AppError{
		Code:       CodePastDate,
		Message:    "Requested date is in the past",
		HTTPStatus: http.StatusBadRequest,
		Details: map[string]any{
			"date": date.Format(dateLayout),
		},
	}
}

// NoAvailability means no recurring setting matches the section, date and
// weekday combination at all.
func NoAvailability(sectionID string, date time.Time) *AppError {
	return &AppError{
		Code:       CodeNoAvailability,
		Message:    "No availability is configured for this section on the requested date",
		HTTPStatus: http.StatusNotFound,
		Details: map[string]any{
			"section_id": sectionID,
			"date":       date.Format(dateLayout),
		},
	}
}

// AdvanceTooFar means matching settings exist but the requested date is
// beyond every setting's advance-booking horizon. earliest is the first day
// on which booking the requested date becomes possible.
func AdvanceTooFar(date, earliest time.Time) *AppError {
	return &AppError{
		Code:       CodeAdvanceTooFar,
		Message:    "Requested date is beyond the advance-booking horizon",
		HTTPStatus: http.StatusUnprocessableEntity,
		Details: map[string]any{
			"date":          date.Format(dateLayout),
			"earliest_date": earliest.Format(dateLayout),
		},
	}
}

func Internal(message string, err error) *AppError {
	return &AppError{
		Code:       CodeInternal,
		Message:    message,
		HTTPStatus: http.StatusInternalServerError,
		Err:        err,
	}
}

// Unavailable wraps a data-store failure. The engine never retries; the
// caller or transport layer decides.
func Unavailable(store string, err error) *AppError {
	return &AppError{
		Code:       CodeUnavailable,
		Message:    fmt.Sprintf("%s is temporarily unavailable", store),
		HTTPStatus: http.StatusServiceUnavailable,
		Err:        err,
	}
}

func IsAppError(err error) bool {
	_, ok := err.(*AppError)
	return ok
}

func AsAppError(err error) *AppError {
	if appErr, ok := err.(*AppError); ok {
		return appErr
	}
	return Internal("An unexpected error occurred", err)
}
