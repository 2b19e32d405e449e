package http

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	accountDomain "bbl-backend/internal/domain/account"
	loanDomain "bbl-backend/internal/domain/loan"
	marketDomain "bbl-backend/internal/domain/market"
)

// PrincipalHeader carries the caller's identity, set by the authenticating
// front layer. Same convention the idempotency middleware keys on.
const PrincipalHeader = "Ax-Principal-Id"

// callerPrincipal extracts and validates the identity header; empty string
// means the request is anonymous and must be rejected by the handler.
func callerPrincipal(c echo.Context) string {
	p := strings.ToLower(strings.TrimSpace(c.Request().Header.Get(PrincipalHeader)))
	if !reHex32.MatchString(p) {
		return ""
	}
	return p
}

// statusForError maps domain failures onto HTTP codes. Anything unmapped is
// a 500: those are infrastructure faults, not request rejections.
func statusForError(err error) int {
	switch {
	case errors.Is(err, loanDomain.ErrInvalidAmount),
		errors.Is(err, marketDomain.ErrInvalidPrice):
		return http.StatusBadRequest
	case errors.Is(err, loanDomain.ErrLTVExceeded):
		return http.StatusUnprocessableEntity
	case errors.Is(err, loanDomain.ErrNotFound),
		errors.Is(err, accountDomain.ErrProfileNotFound):
		return http.StatusNotFound
	case errors.Is(err, loanDomain.ErrUnauthorized):
		return http.StatusForbidden
	case errors.Is(err, loanDomain.ErrAlreadyClosed):
		return http.StatusConflict
	case errors.Is(err, marketDomain.ErrPriceUnavailable):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

func errorJSON(c echo.Context, err error) error {
	code := statusForError(err)
	msg := err.Error()
	if code == http.StatusInternalServerError {
		msg = "internal error"
	}
	return c.JSON(code, ErrorResponse{Error: msg})
}
