package response

import (
	"errors"
	"net/http"

	"github.com/stemsi/enrollment-backend/internal/model"
)

// ErrCode is a typed error code enum for consistent API error identification.
type ErrCode string

const (
	// ─── Validation ────────────────────────────────────────────────────
	ErrValidation      ErrCode = "VALIDATION_ERROR"
	ErrInvalidArgument ErrCode = "INVALID_ARGUMENT"

	// ─── Enrollment ────────────────────────────────────────────────────
	ErrNotFound         ErrCode = "NOT_FOUND"
	ErrDuplicateKey     ErrCode = "DUPLICATE_KEY"
	ErrCapacityExceeded ErrCode = "CAPACITY_EXCEEDED"
	ErrEmptyCollection  ErrCode = "EMPTY_COLLECTION"

	// ─── Rate Limiting ─────────────────────────────────────────────────
	ErrRateLimitExceeded ErrCode = "RATE_LIMIT_EXCEEDED"

	// ─── Server ────────────────────────────────────────────────────────
	ErrInternal ErrCode = "INTERNAL_ERROR"
)

// GetMessage returns a human-readable message for a given error code.
func GetMessage(code ErrCode) string {
	switch code {
	case ErrValidation:
		return "Validation failed. Please check your input."
	case ErrInvalidArgument:
		return "The request contains an invalid value."

	case ErrNotFound:
		return "Course not found."
	case ErrDuplicateKey:
		return "The resource already exists."
	case ErrCapacityExceeded:
		return "Enrollment is not available: the course is full."
	case ErrEmptyCollection:
		return "No students to remove."

	case ErrRateLimitExceeded:
		return "Too many requests. Please try again later."

	case ErrInternal:
		return "An internal server error occurred."
	default:
		return "An unexpected error occurred."
	}
}

// FromError maps an enrollment error to its HTTP status, error code and
// optional field details.
func FromError(err error) (int, ErrCode, map[string]string) {
	var capErr *model.CapacityError
	switch {
	case errors.As(err, &capErr):
		return http.StatusConflict, ErrCapacityExceeded, map[string]string{
			"reason": string(capErr.Reason),
			"detail": capErr.Error(),
		}
	case errors.Is(err, model.ErrInvalidArgument):
		return http.StatusBadRequest, ErrInvalidArgument, map[string]string{"detail": err.Error()}
	case errors.Is(err, model.ErrNotFound):
		return http.StatusNotFound, ErrNotFound, nil
	case errors.Is(err, model.ErrDuplicateKey):
		return http.StatusConflict, ErrDuplicateKey, map[string]string{"detail": err.Error()}
	case errors.Is(err, model.ErrEmptyCollection):
		return http.StatusConflict, ErrEmptyCollection, nil
	default:
		return http.StatusInternalServerError, ErrInternal, nil
	}
}
