package http

import (
	"net/http"

	"agrifund-engine/internal/usecase/reputation"

	"github.com/labstack/echo/v4"
)

type ReputationHandler struct{ uc *reputation.Usecase }

func NewReputationHandler(uc *reputation.Usecase) *ReputationHandler {
	return &ReputationHandler{uc: uc}
}

func (h *ReputationHandler) GetReputation(c echo.Context) error {
	borrowerID := c.Param("borrower_id")
	if !reHex32.MatchString(borrowerID) {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid borrower_id"})
	}
	rec, err := h.uc.Get(c.Request().Context(), borrowerID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, rec)
}
