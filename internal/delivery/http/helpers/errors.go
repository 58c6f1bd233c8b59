package helpers

import (
	"errors"
	"log/slog"
	"net/http"

	"devevent/internal/domain"
	"devevent/internal/schema"
)

// WriteServiceError maps a service error onto the API envelope. Unexpected
// errors are logged and reported as 500 without their cause.
func WriteServiceError(w http.ResponseWriter, r *http.Request, logger *slog.Logger, err error) {
	var fieldErr *domain.FieldError
	switch {
	case errors.As(err, &fieldErr):
		WriteJSONFieldError(w, fieldErr.Field, fieldErr.Message)
	case errors.Is(err, domain.ErrMalformedDate):
		WriteJSONFieldError(w, domain.FieldDate, domain.ErrMalformedDate.Error())
	case errors.Is(err, domain.ErrMalformedTime):
		WriteJSONFieldError(w, domain.FieldTime, domain.ErrMalformedTime.Error())
	case errors.Is(err, domain.ErrEventNotFound):
		WriteJSONFieldError(w, domain.FieldEventID, domain.ErrEventNotFound.Error())
	case schema.IsRejection(err):
		WriteJSONError(w, http.StatusBadRequest, ErrCodeBadRequest, err.Error())
	case errors.Is(err, domain.ErrNotFound):
		WriteJSONError(w, http.StatusNotFound, ErrCodeNotFound, "event not found")
	case errors.Is(err, domain.ErrDuplicateSlug):
		WriteJSONError(w, http.StatusConflict, ErrCodeConflict, domain.ErrDuplicateSlug.Error())
	case errors.Is(err, domain.ErrUnauthorized):
		WriteJSONError(w, http.StatusUnauthorized, ErrCodeUnauthorized, "unauthorized")
	default:
		logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		WriteJSONError(w, http.StatusInternalServerError, ErrCodeInternalError, "internal server error")
	}
}
