package http

import (
	"net/http"
	"strconv"

	"agrifund-engine/internal/usecase/lifecycle"

	"github.com/labstack/echo/v4"
)

// LifecycleHandler exposes the explicit declarations that come from
// outside the engine: default (grace policy decided elsewhere),
// liquidation (collateral seizure), and overdue marking.
type LifecycleHandler struct{ uc *lifecycle.Usecase }

func NewLifecycleHandler(uc *lifecycle.Usecase) *LifecycleHandler {
	return &LifecycleHandler{uc: uc}
}

func (h *LifecycleHandler) DeclareDefault(c echo.Context) error {
	if err := h.uc.DeclareDefault(c.Request().Context(), c.Param("loan_id")); err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]string{"loan_id": c.Param("loan_id"), "status": "defaulted"})
}

func (h *LifecycleHandler) Liquidate(c echo.Context) error {
	if err := h.uc.Liquidate(c.Request().Context(), c.Param("loan_id")); err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]string{"loan_id": c.Param("loan_id"), "status": "liquidated"})
}

func (h *LifecycleHandler) MarkInstallmentOverdue(c echo.Context) error {
	idx, err := strconv.Atoi(c.Param("idx"))
	if err != nil || idx < 1 {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid installment index"})
	}
	if err := h.uc.MarkInstallmentOverdue(c.Request().Context(), c.Param("loan_id"), idx); err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]any{"loan_id": c.Param("loan_id"), "idx": idx, "status": "overdue"})
}
