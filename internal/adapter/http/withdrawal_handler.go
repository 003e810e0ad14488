package http

import (
	"net/http"

	"agrifund-engine/internal/usecase/funding"

	"github.com/labstack/echo/v4"
)

type WithdrawalHandler struct{ uc *funding.Usecase }

func NewWithdrawalHandler(uc *funding.Usecase) *WithdrawalHandler {
	return &WithdrawalHandler{uc: uc}
}

type withdrawReq struct {
	InvestorID string `json:"investor_id" validate:"required,hex32"`
	Amount     int64  `json:"amount"      validate:"required,gt=0"`
}

func (h *WithdrawalHandler) Withdraw(c echo.Context) error {
	loanID := c.Param("loan_id")
	if loanID == "" {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "missing loan_id path param"})
	}
	var req withdrawReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Error:   "validation failed",
			Details: ToFieldErrors(err),
		})
	}
	dto, err := h.uc.Withdraw(c.Request().Context(), funding.WithdrawInput{
		LoanID:     loanID,
		InvestorID: req.InvestorID,
		Amount:     req.Amount,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}
