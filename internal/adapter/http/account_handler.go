package http

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"bbl-backend/internal/usecase/account"
)

type AccountHandler struct{ uc *account.Usecase }

func NewAccountHandler(uc *account.Usecase) *AccountHandler { return &AccountHandler{uc: uc} }

// CreateProfile is idempotent: a repeat call returns the stored profile
// unchanged with 200 instead of 201.
func (h *AccountHandler) CreateProfile(c echo.Context) error {
	caller := callerPrincipal(c)
	if caller == "" {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "missing or invalid " + PrincipalHeader})
	}
	existing, err := h.uc.Get(c.Request().Context(), caller)
	if err == nil {
		return c.JSON(http.StatusOK, existing)
	}
	p, err := h.uc.Ensure(c.Request().Context(), caller)
	if err != nil {
		return errorJSON(c, err)
	}
	return c.JSON(http.StatusCreated, p)
}

func (h *AccountHandler) GetProfile(c echo.Context) error {
	principal := c.Param("principal")
	if !reHex32.MatchString(principal) {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid principal path param"})
	}
	p, err := h.uc.Get(c.Request().Context(), principal)
	if err != nil {
		return errorJSON(c, err)
	}
	return c.JSON(http.StatusOK, p)
}
