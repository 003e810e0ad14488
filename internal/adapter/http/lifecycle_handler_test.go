package http

import (
	"context"
	stdhttp "net/http"
	"net/http/httptest"
	"strings"
	"testing"

	loanDomain "agrifund-engine/internal/domain/loan"
	repDomain "agrifund-engine/internal/domain/reputation"
	"agrifund-engine/internal/domain/uow"
	"agrifund-engine/internal/testutil/loanmock"
	"agrifund-engine/internal/testutil/reputationmock"
	lifecycleuc "agrifund-engine/internal/usecase/lifecycle"

	"github.com/labstack/echo/v4"
)

func lifecycleCtx(e *echo.Echo, path, loanID string) (echo.Context, *httptest.ResponseRecorder) {
	req := httptest.NewRequest(stdhttp.MethodPost, path, nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("loan_id")
	c.SetParamValues(loanID)
	return c, rec
}

func TestDeclareDefault_Success(t *testing.T) {
	e := newEchoWithValidator()

	l := fundableLoan(loanDomain.StatusDisbursed)
	rep := &reputationmock.InMemory{}
	repos := uow.Repos{Loans: &loanmock.Repo{}, Reputation: rep}
	h := NewLifecycleHandler(lifecycleuc.NewUsecase(passthroughFor(l, repos)))

	c, rec := lifecycleCtx(e, "/loans/"+l.LoanID+"/default", l.LoanID)
	if err := h.DeclareDefault(c); err != nil {
		t.Fatalf("DeclareDefault error: %v", err)
	}
	if rec.Code != stdhttp.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if l.Status != loanDomain.StatusDefaulted {
		t.Fatalf("loan status = %s, want defaulted", l.Status)
	}
	rows, _ := rep.ListByBorrower(c.Request().Context(), l.BorrowerID)
	if len(rows) != 1 || rows[0].Outcome != repDomain.OutcomeDefaulted {
		t.Fatalf("outcome not recorded: %+v", rows)
	}
}

func TestDeclareDefault_Terminal(t *testing.T) {
	e := newEchoWithValidator()

	l := fundableLoan(loanDomain.StatusRepaid)
	repos := uow.Repos{Loans: &loanmock.Repo{}}
	h := NewLifecycleHandler(lifecycleuc.NewUsecase(passthroughFor(l, repos)))

	c, rec := lifecycleCtx(e, "/loans/"+l.LoanID+"/default", l.LoanID)
	if err := h.DeclareDefault(c); err != nil {
		t.Fatalf("DeclareDefault error: %v", err)
	}
	if rec.Code != stdhttp.StatusConflict {
		t.Fatalf("status = %d, want 409 on a settled loan", rec.Code)
	}
}

func TestLiquidate_Success(t *testing.T) {
	e := newEchoWithValidator()

	l := fundableLoan(loanDomain.StatusFunded)
	repos := uow.Repos{Loans: &loanmock.Repo{}}
	h := NewLifecycleHandler(lifecycleuc.NewUsecase(passthroughFor(l, repos)))

	c, rec := lifecycleCtx(e, "/loans/"+l.LoanID+"/liquidation", l.LoanID)
	if err := h.Liquidate(c); err != nil {
		t.Fatalf("Liquidate error: %v", err)
	}
	if rec.Code != stdhttp.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if l.Status != loanDomain.StatusLiquidated {
		t.Fatalf("loan status = %s, want liquidated", l.Status)
	}
}

func TestMarkInstallmentOverdue_BadIdx(t *testing.T) {
	e := newEchoWithValidator()
	h := NewLifecycleHandler(lifecycleuc.NewUsecase(passthroughFor(nil, uow.Repos{})))

	loanID := strings.Repeat("a", 32)
	req := httptest.NewRequest(stdhttp.MethodPost, "/loans/"+loanID+"/installments/zero/overdue", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("loan_id", "idx")
	c.SetParamValues(loanID, "zero")

	if err := h.MarkInstallmentOverdue(c); err != nil {
		t.Fatalf("MarkInstallmentOverdue error: %v", err)
	}
	if rec.Code != stdhttp.StatusBadRequest {
		t.Fatalf("status = %d, want 400 for a non-numeric index", rec.Code)
	}
}

func TestMarkInstallmentOverdue_Success(t *testing.T) {
	e := newEchoWithValidator()

	l := fundableLoan(loanDomain.StatusDisbursed)
	ins := &loanDomain.Installment{LoanID: l.ID, Idx: 2, Status: loanDomain.InstallmentPending}
	repos := uow.Repos{
		Loans: &loanmock.Repo{},
		Installments: &loanmock.InstallmentRepo{
			GetByLoanAndIdxFn: func(ctx context.Context, loanNumericID uint64, idx int) (*loanDomain.Installment, error) {
				return ins, nil
			},
		},
	}
	h := NewLifecycleHandler(lifecycleuc.NewUsecase(passthroughFor(l, repos)))

	req := httptest.NewRequest(stdhttp.MethodPost, "/loans/"+l.LoanID+"/installments/2/overdue", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("loan_id", "idx")
	c.SetParamValues(l.LoanID, "2")

	if err := h.MarkInstallmentOverdue(c); err != nil {
		t.Fatalf("MarkInstallmentOverdue error: %v", err)
	}
	if rec.Code != stdhttp.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if ins.Status != loanDomain.InstallmentOverdue {
		t.Fatalf("installment status = %s, want overdue", ins.Status)
	}
}
