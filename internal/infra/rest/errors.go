package rest

import (
	"net/http"
	"strings"

	domainerrors "gigmarket/internal/domain/errors"
)

// mapError translates a backend failure into the closed error kind set.
// The backend distinguishes failures by message text rather than structured
// codes, so this adapter is the single place allowed to match substrings;
// call sites branch on the returned kinds with errors.Is.
func mapError(statusCode int, message string) error {
	lower := strings.ToLower(message)

	switch statusCode {
	case http.StatusUnauthorized:
		if strings.Contains(lower, "password") || strings.Contains(lower, "credentials") {
			return domainerrors.ErrInvalidCredentials.WithDetails(message)
		}

		return domainerrors.ErrUnauthorized.WithDetails(message)
	case http.StatusForbidden:
		if strings.Contains(lower, "verify") || strings.Contains(lower, "verified") {
			return domainerrors.ErrUnverifiedEmail.WithDetails(message)
		}

		return domainerrors.ErrForbidden.WithDetails(message)
	case http.StatusNotFound:
		return domainerrors.ErrNotFound.WithDetails(message)
	case http.StatusConflict:
		if strings.Contains(lower, "email") {
			return domainerrors.ErrEmailTaken.WithDetails(message)
		}

		return domainerrors.ErrConflict.WithDetails(message)
	case http.StatusBadRequest:
		return domainerrors.ErrValidationFailed.WithDetails(message)
	case http.StatusUnprocessableEntity:
		return domainerrors.ErrUpdateFailed.WithDetails(message)
	default:
		return domainerrors.ErrUnknown.WithDetails(message)
	}
}
