package api

import (
	"errors"
	"net/http"

	"github.com/gaspigz/taskManagerClg/internal/api/shared"
	"github.com/gaspigz/taskManagerClg/internal/domain"
)

// unexpectedMessage is the only message clients see for unclassified errors.
const unexpectedMessage = "An unexpected error occurred"

// MapErrorToStatusCode maps domain errors to HTTP status codes. Anything that
// is not part of the domain taxonomy maps to 500.
func MapErrorToStatusCode(err error) int {
	switch {
	case errors.Is(err, domain.ErrUnauthenticated),
		errors.Is(err, domain.ErrInvalidCredentials):
		return http.StatusUnauthorized

	case errors.Is(err, domain.ErrForbidden):
		return http.StatusForbidden

	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound

	case errors.Is(err, domain.ErrConflict):
		return http.StatusConflict

	case errors.Is(err, domain.ErrInvalidTransition),
		errors.Is(err, domain.ErrInvalidFilter),
		errors.Is(err, domain.ErrValidation):
		return http.StatusBadRequest

	default:
		return http.StatusInternalServerError
	}
}

// GetSafeErrorMessage returns a stable client-facing message for err. Field
// validation errors keep their field and reason since both come from fixed
// strings in the domain package.
func GetSafeErrorMessage(err error) string {
	if err == nil {
		return unexpectedMessage
	}

	var verr *domain.ValidationError
	if errors.As(err, &verr) {
		return "Invalid " + verr.Error()
	}

	switch {
	case errors.Is(err, domain.ErrInvalidCredentials):
		return "Invalid credentials"
	case errors.Is(err, domain.ErrUnauthenticated):
		return "Authentication required"
	case errors.Is(err, domain.ErrForbidden):
		return "You do not have permission to perform this action"
	case errors.Is(err, domain.ErrNotFound):
		return "Resource not found"
	case errors.Is(err, domain.ErrConflict):
		return "Resource already exists"
	case errors.Is(err, domain.ErrInvalidTransition):
		return "Invalid status transition"
	case errors.Is(err, domain.ErrInvalidFilter):
		return "Invalid filter parameters"
	case errors.Is(err, domain.ErrValidation):
		return "Validation failed"
	default:
		return unexpectedMessage
	}
}

// HandleAPIError writes the error response for err. customMessage replaces
// the safe message for known errors; unexpected errors always get the
// generic message.
func HandleAPIError(w http.ResponseWriter, r *http.Request, err error, customMessage string) {
	status := MapErrorToStatusCode(err)

	message := GetSafeErrorMessage(err)
	if customMessage != "" && status != http.StatusInternalServerError {
		message = customMessage
	}

	shared.RespondWithErrorAndLog(w, r, status, message, err)
}
