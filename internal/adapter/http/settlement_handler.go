package http

import (
	"net/http"

	"agrifund-engine/internal/usecase/funding"
	"agrifund-engine/internal/usecase/lifecycle"

	"github.com/labstack/echo/v4"
)

// SettlementHandler receives the payment rail's confirmations. These
// callbacks are the only path by which money enters the ledger: the
// engine records confirmed transfers, it never initiates them.
type SettlementHandler struct {
	funding   *funding.Usecase
	lifecycle *lifecycle.Usecase
}

func NewSettlementHandler(f *funding.Usecase, l *lifecycle.Usecase) *SettlementHandler {
	return &SettlementHandler{funding: f, lifecycle: l}
}

type contributionSettledReq struct {
	LoanID        string `json:"loan_id"        validate:"required,hex32"`
	InvestorID    string `json:"investor_id"    validate:"required,hex32"`
	Amount        int64  `json:"amount"         validate:"required,gt=0"`
	SettlementRef string `json:"settlement_ref" validate:"required"`
}

func (h *SettlementHandler) ContributionSettled(c echo.Context) error {
	var req contributionSettledReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Error:   "validation failed",
			Details: ToFieldErrors(err),
		})
	}
	dto, err := h.funding.Contribute(c.Request().Context(), funding.ContributeInput{
		LoanID:        req.LoanID,
		InvestorID:    req.InvestorID,
		Amount:        req.Amount,
		SettlementRef: req.SettlementRef,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusCreated, dto)
}

type disbursementConfirmedReq struct {
	LoanID string `json:"loan_id" validate:"required,hex32"`
}

func (h *SettlementHandler) DisbursementConfirmed(c echo.Context) error {
	var req disbursementConfirmedReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Error:   "validation failed",
			Details: ToFieldErrors(err),
		})
	}
	if err := h.lifecycle.ConfirmDisbursement(c.Request().Context(), req.LoanID); err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]string{"loan_id": req.LoanID, "status": "disbursed"})
}

type installmentPaidReq struct {
	LoanID string `json:"loan_id" validate:"required,hex32"`
	Idx    int    `json:"idx"     validate:"required,gte=1"`
}

func (h *SettlementHandler) InstallmentPaid(c echo.Context) error {
	var req installmentPaidReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Error:   "validation failed",
			Details: ToFieldErrors(err),
		})
	}
	if err := h.lifecycle.RecordInstallmentPaid(c.Request().Context(), req.LoanID, req.Idx); err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]any{"loan_id": req.LoanID, "idx": req.Idx, "status": "paid"})
}
