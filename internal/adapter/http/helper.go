package http

import (
	"errors"
	"net/http"
	"strings"

	fundingDomain "agrifund-engine/internal/domain/funding"
	loanDomain "agrifund-engine/internal/domain/loan"
	"agrifund-engine/internal/pricing"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"
)

// respondError maps domain errors onto HTTP codes so callers can tell
// "try a smaller amount" from "this loan is no longer open".
func respondError(c echo.Context, err error) error {
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound),
		errors.Is(err, loanDomain.ErrNotFound),
		errors.Is(err, loanDomain.ErrInstallmentNotFound):
		return c.JSON(http.StatusNotFound, ErrorResponse{Error: err.Error()})
	case errors.Is(err, fundingDomain.ErrAmountNonPositive),
		errors.Is(err, fundingDomain.ErrExceedsContribution),
		errors.Is(err, pricing.ErrInvalidScore):
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
	case errors.Is(err, loanDomain.ErrIneligibleScore):
		return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{Error: err.Error()})
	case errors.Is(err, fundingDomain.ErrLoanNotFundable),
		errors.Is(err, fundingDomain.ErrCapacityExceeded),
		errors.Is(err, fundingDomain.ErrWithdrawalNotPermitted),
		errors.Is(err, loanDomain.ErrNotFunded),
		errors.Is(err, loanDomain.ErrNotDisbursed),
		errors.Is(err, loanDomain.ErrTerminalState),
		errors.Is(err, loanDomain.ErrInvalidTransition),
		errors.Is(err, loanDomain.ErrInstallmentNotDue):
		return c.JSON(http.StatusConflict, ErrorResponse{Error: err.Error()})
	default:
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
	}
}

// ---- test helpers ----

func containsFieldMsg(list []FieldError, field, substr string) bool {
	for _, e := range list {
		if e.Field == field && strings.Contains(e.Message, substr) {
			return true
		}
	}
	return false
}
