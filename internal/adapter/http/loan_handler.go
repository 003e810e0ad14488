package http

import (
	"net/http"

	"agrifund-engine/internal/usecase/loanreq"

	"github.com/labstack/echo/v4"
)

type LoanHandler struct{ uc *loanreq.Usecase }

func NewLoanHandler(uc *loanreq.Usecase) *LoanHandler { return &LoanHandler{uc: uc} }

type createLoanReq struct {
	BorrowerID  string            `json:"borrower_id" validate:"required,hex32"`
	Principal   int64             `json:"principal"   validate:"required,gt=0"`
	FarmContext map[string]string `json:"farm_context"`
}

func (h *LoanHandler) CreateLoan(c echo.Context) error {
	var req createLoanReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Error:   "validation failed",
			Details: ToFieldErrors(err),
		})
	}
	dto, err := h.uc.Create(c.Request().Context(), loanreq.CreateLoanInput{
		BorrowerID:  req.BorrowerID,
		Principal:   req.Principal,
		FarmContext: req.FarmContext,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusCreated, dto)
}

func (h *LoanHandler) GetLoan(c echo.Context) error {
	dto, err := h.uc.Get(c.Request().Context(), c.Param("loan_id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}

func (h *LoanHandler) GetProgress(c echo.Context) error {
	dto, err := h.uc.Progress(c.Request().Context(), c.Param("loan_id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}

func (h *LoanHandler) GetSchedule(c echo.Context) error {
	rows, err := h.uc.Schedule(c.Request().Context(), c.Param("loan_id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]any{
		"loan_id":      c.Param("loan_id"),
		"installments": rows,
	})
}
