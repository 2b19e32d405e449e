package http

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"bbl-backend/internal/usecase/loan"
)

type LoanHandler struct{ uc *loan.Usecase }

func NewLoanHandler(uc *loan.Usecase) *LoanHandler { return &LoanHandler{uc: uc} }

type requestLoanReq struct {
	CollateralSats uint64 `json:"collateral_sats" validate:"required,gt=0"`
	RequestedCents uint64 `json:"requested_cents" validate:"required,gt=0"`
	DurationDays   uint32 `json:"duration_days"   validate:"required,gt=0,lte=3650"`
}

func (h *LoanHandler) RequestLoan(c echo.Context) error {
	caller := callerPrincipal(c)
	if caller == "" {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "missing or invalid " + PrincipalHeader})
	}
	var req requestLoanReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Error:   "validation failed",
			Details: ToFieldErrors(err),
		})
	}

	dto, err := h.uc.Request(c.Request().Context(), loan.RequestInput{
		Borrower:       caller,
		CollateralSats: req.CollateralSats,
		RequestedCents: req.RequestedCents,
		DurationDays:   req.DurationDays,
	})
	if err != nil {
		return errorJSON(c, err)
	}
	return c.JSON(http.StatusCreated, dto)
}

func (h *LoanHandler) RepayLoan(c echo.Context) error {
	caller := callerPrincipal(c)
	if caller == "" {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "missing or invalid " + PrincipalHeader})
	}
	loanID, err := parseLoanID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid loan_id path param"})
	}
	dto, err := h.uc.Repay(c.Request().Context(), loanID, caller)
	if err != nil {
		return errorJSON(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}

func (h *LoanHandler) GetLoan(c echo.Context) error {
	loanID, err := parseLoanID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid loan_id path param"})
	}
	dto, err := h.uc.Get(c.Request().Context(), loanID)
	if err != nil {
		return errorJSON(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}

func (h *LoanHandler) ListUserLoans(c echo.Context) error {
	principal := c.Param("principal")
	if !reHex32.MatchString(principal) {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid principal path param"})
	}
	loans, err := h.uc.ListByBorrower(c.Request().Context(), principal)
	if err != nil {
		return errorJSON(c, err)
	}
	return c.JSON(http.StatusOK, loans)
}

func (h *LoanHandler) MaxLoan(c echo.Context) error {
	sats, err := strconv.ParseUint(c.QueryParam("collateral_sats"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid collateral_sats query param"})
	}
	return c.JSON(http.StatusOK, map[string]uint64{
		"collateral_sats": sats,
		"max_loan_cents":  h.uc.MaxLoan(sats),
	})
}

func parseLoanID(c echo.Context) (uint64, error) {
	return strconv.ParseUint(c.Param("loan_id"), 10, 64)
}
