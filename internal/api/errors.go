package api

import (
	"errors"
	"net/http"

	"proxymint/internal/domain"
)

// httpStatusFromDomainError maps domain errors to HTTP status codes.
func httpStatusFromDomainError(err error) int {
	var notFound *domain.NotFoundError
	var authorization *domain.AuthorizationError
	var validation *domain.ValidationError
	var state *domain.StateError
	var resource *domain.ResourceError

	switch {
	case errors.As(err, &notFound):
		return http.StatusNotFound
	case errors.As(err, &authorization):
		return http.StatusForbidden
	case errors.As(err, &validation):
		return http.StatusBadRequest
	case errors.As(err, &state):
		return http.StatusConflict
	case errors.As(err, &resource):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}
