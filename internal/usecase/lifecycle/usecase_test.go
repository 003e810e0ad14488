package lifecycle

import (
	"context"
	"errors"
	"testing"
	"time"

	loanDomain "agrifund-engine/internal/domain/loan"
	repDomain "agrifund-engine/internal/domain/reputation"
	"agrifund-engine/internal/domain/uow"
	"agrifund-engine/internal/testutil/fundingmock"
	"agrifund-engine/internal/testutil/loanmock"
	"agrifund-engine/internal/testutil/reputationmock"
	"agrifund-engine/internal/testutil/uowmock"

	"gorm.io/gorm"
)

const (
	loanID     = "aaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa"
	borrowerID = "bbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbb"
)

// harness wires a single loan plus mutable installments behind a
// passthrough unit of work.
type harness struct {
	loan         *loanDomain.Loan
	installments []*loanDomain.Installment
	outcomes     *reputationmock.InMemory
	uc           *Usecase
}

func newHarness(status loanDomain.Status, installmentStatuses ...loanDomain.InstallmentStatus) *harness {
	h := &harness{
		loan: &loanDomain.Loan{
			ID:         1,
			LoanID:     loanID,
			BorrowerID: borrowerID,
			Principal:  100000,
			Status:     status,
		},
		outcomes: &reputationmock.InMemory{},
	}
	for i, st := range installmentStatuses {
		h.installments = append(h.installments, &loanDomain.Installment{
			LoanID: 1, Idx: i + 1, Principal: 100000 / int64(len(installmentStatuses)),
			DueDate: time.Now().UTC().AddDate(0, 0, 30*(i+1)),
			Status:  st,
		})
	}

	find := func(idx int) (*loanDomain.Installment, error) {
		for _, ins := range h.installments {
			if ins.Idx == idx {
				return ins, nil
			}
		}
		return nil, gorm.ErrRecordNotFound
	}

	repos := uow.Repos{
		Loans: &loanmock.Repo{},
		Installments: &loanmock.InstallmentRepo{
			GetByLoanAndIdxFn: func(_ context.Context, _ uint64, idx int) (*loanDomain.Installment, error) {
				return find(idx)
			},
			SaveFn: func(_ context.Context, _ *loanDomain.Installment) error { return nil },
			CountUnpaidFn: func(_ context.Context, _ uint64) (int64, error) {
				var n int64
				for _, ins := range h.installments {
					if ins.Status != loanDomain.InstallmentPaid {
						n++
					}
				}
				return n, nil
			},
		},
		Contributions: &fundingmock.Repo{},
		Reputation:    h.outcomes,
	}
	tx := uowmock.Passthrough(repos, func(id string) (*loanDomain.Loan, error) {
		if id != loanID {
			return nil, gorm.ErrRecordNotFound
		}
		return h.loan, nil
	})
	h.uc = NewUsecase(tx)
	return h
}

// ----- disbursement -----

func TestConfirmDisbursement_FromFunded(t *testing.T) {
	h := newHarness(loanDomain.StatusFunded)
	if err := h.uc.ConfirmDisbursement(context.Background(), loanID); err != nil {
		t.Fatalf("ConfirmDisbursement: %v", err)
	}
	if h.loan.Status != loanDomain.StatusDisbursed {
		t.Fatalf("status = %s, want disbursed", h.loan.Status)
	}
}

func TestConfirmDisbursement_NotFunded(t *testing.T) {
	h := newHarness(loanDomain.StatusRequested)
	err := h.uc.ConfirmDisbursement(context.Background(), loanID)
	if !errors.Is(err, loanDomain.ErrNotFunded) {
		t.Fatalf("got %v, want ErrNotFunded", err)
	}
	if h.loan.Status != loanDomain.StatusRequested {
		t.Fatalf("status must be unchanged, got %s", h.loan.Status)
	}
}

// ----- repayment -----

func TestRecordInstallmentPaid_ProgressesToRepaid(t *testing.T) {
	h := newHarness(loanDomain.StatusDisbursed,
		loanDomain.InstallmentPending, loanDomain.InstallmentPending)

	if err := h.uc.RecordInstallmentPaid(context.Background(), loanID, 1); err != nil {
		t.Fatalf("pay 1: %v", err)
	}
	if h.loan.Status != loanDomain.StatusDisbursed {
		t.Fatalf("loan must stay disbursed with one installment open")
	}
	if h.installments[0].Status != loanDomain.InstallmentPaid || h.installments[0].PaidAt == nil {
		t.Fatalf("installment 1 not marked paid: %+v", h.installments[0])
	}

	if err := h.uc.RecordInstallmentPaid(context.Background(), loanID, 2); err != nil {
		t.Fatalf("pay 2: %v", err)
	}
	if h.loan.Status != loanDomain.StatusRepaid {
		t.Fatalf("status = %s, want repaid after last installment", h.loan.Status)
	}

	outs, _ := h.outcomes.ListByBorrower(context.Background(), borrowerID)
	if len(outs) != 1 || outs[0].Outcome != repDomain.OutcomeRepaid {
		t.Fatalf("outcome rows: %+v", outs)
	}
}

func TestRecordInstallmentPaid_OverdueCanBePaid(t *testing.T) {
	h := newHarness(loanDomain.StatusDisbursed, loanDomain.InstallmentOverdue)
	if err := h.uc.RecordInstallmentPaid(context.Background(), loanID, 1); err != nil {
		t.Fatalf("paying an overdue installment: %v", err)
	}
	if h.loan.Status != loanDomain.StatusRepaid {
		t.Fatalf("status = %s, want repaid", h.loan.Status)
	}
}

func TestRecordInstallmentPaid_ReplayIsNoop(t *testing.T) {
	h := newHarness(loanDomain.StatusDisbursed,
		loanDomain.InstallmentPending, loanDomain.InstallmentPending)

	if err := h.uc.RecordInstallmentPaid(context.Background(), loanID, 1); err != nil {
		t.Fatalf("pay: %v", err)
	}
	// replay the same settlement callback
	if err := h.uc.RecordInstallmentPaid(context.Background(), loanID, 1); err != nil {
		t.Fatalf("replay must be a no-op, got %v", err)
	}
	if h.loan.Status != loanDomain.StatusDisbursed {
		t.Fatalf("replay must not advance the loan")
	}
}

func TestRecordInstallmentPaid_WrongState(t *testing.T) {
	h := newHarness(loanDomain.StatusFunded, loanDomain.InstallmentPending)
	err := h.uc.RecordInstallmentPaid(context.Background(), loanID, 1)
	if !errors.Is(err, loanDomain.ErrNotDisbursed) {
		t.Fatalf("got %v, want ErrNotDisbursed", err)
	}
}

func TestRecordInstallmentPaid_UnknownIdx(t *testing.T) {
	h := newHarness(loanDomain.StatusDisbursed, loanDomain.InstallmentPending)
	err := h.uc.RecordInstallmentPaid(context.Background(), loanID, 9)
	if !errors.Is(err, loanDomain.ErrInstallmentNotFound) {
		t.Fatalf("got %v, want ErrInstallmentNotFound", err)
	}
}

// ----- overdue -----

func TestMarkInstallmentOverdue(t *testing.T) {
	h := newHarness(loanDomain.StatusDisbursed, loanDomain.InstallmentPending)
	if err := h.uc.MarkInstallmentOverdue(context.Background(), loanID, 1); err != nil {
		t.Fatalf("MarkInstallmentOverdue: %v", err)
	}
	if h.installments[0].Status != loanDomain.InstallmentOverdue {
		t.Fatalf("status = %s", h.installments[0].Status)
	}
	// marking again is a no-op
	if err := h.uc.MarkInstallmentOverdue(context.Background(), loanID, 1); err != nil {
		t.Fatalf("repeat: %v", err)
	}
}

func TestMarkInstallmentOverdue_PaidRejected(t *testing.T) {
	h := newHarness(loanDomain.StatusDisbursed, loanDomain.InstallmentPaid)
	err := h.uc.MarkInstallmentOverdue(context.Background(), loanID, 1)
	if !errors.Is(err, loanDomain.ErrInstallmentNotDue) {
		t.Fatalf("got %v, want ErrInstallmentNotDue (paid is final)", err)
	}
}

// ----- default & liquidation -----

func TestDeclareDefault(t *testing.T) {
	h := newHarness(loanDomain.StatusDisbursed, loanDomain.InstallmentOverdue)
	if err := h.uc.DeclareDefault(context.Background(), loanID); err != nil {
		t.Fatalf("DeclareDefault: %v", err)
	}
	if h.loan.Status != loanDomain.StatusDefaulted {
		t.Fatalf("status = %s", h.loan.Status)
	}
	outs, _ := h.outcomes.ListByBorrower(context.Background(), borrowerID)
	if len(outs) != 1 || outs[0].Outcome != repDomain.OutcomeDefaulted {
		t.Fatalf("outcome rows: %+v", outs)
	}
}

func TestDeclareDefault_RequiresDisbursed(t *testing.T) {
	for _, st := range []loanDomain.Status{loanDomain.StatusRequested, loanDomain.StatusFunded} {
		h := newHarness(st)
		err := h.uc.DeclareDefault(context.Background(), loanID)
		if !errors.Is(err, loanDomain.ErrNotDisbursed) {
			t.Fatalf("from %s: got %v, want ErrNotDisbursed", st, err)
		}
	}
}

func TestLiquidate_FromActiveStates(t *testing.T) {
	for _, st := range []loanDomain.Status{loanDomain.StatusFunded, loanDomain.StatusDisbursed} {
		h := newHarness(st)
		if err := h.uc.Liquidate(context.Background(), loanID); err != nil {
			t.Fatalf("Liquidate from %s: %v", st, err)
		}
		if h.loan.Status != loanDomain.StatusLiquidated {
			t.Fatalf("status = %s", h.loan.Status)
		}
	}
}

func TestLiquidate_FromRequested(t *testing.T) {
	h := newHarness(loanDomain.StatusRequested)
	err := h.uc.Liquidate(context.Background(), loanID)
	if !errors.Is(err, loanDomain.ErrInvalidTransition) {
		t.Fatalf("got %v, want ErrInvalidTransition", err)
	}
}

// ----- terminal immutability -----

func TestTerminalStatesAreWriteOnce(t *testing.T) {
	terminals := []loanDomain.Status{
		loanDomain.StatusRepaid, loanDomain.StatusDefaulted, loanDomain.StatusLiquidated,
	}
	for _, st := range terminals {
		h := newHarness(st, loanDomain.InstallmentPending)

		ops := map[string]func() error{
			"disburse":  func() error { return h.uc.ConfirmDisbursement(context.Background(), loanID) },
			"pay":       func() error { return h.uc.RecordInstallmentPaid(context.Background(), loanID, 1) },
			"overdue":   func() error { return h.uc.MarkInstallmentOverdue(context.Background(), loanID, 1) },
			"default":   func() error { return h.uc.DeclareDefault(context.Background(), loanID) },
			"liquidate": func() error { return h.uc.Liquidate(context.Background(), loanID) },
		}
		for name, op := range ops {
			if err := op(); !errors.Is(err, loanDomain.ErrTerminalState) {
				t.Fatalf("%s from %s: got %v, want ErrTerminalState", name, st, err)
			}
			if h.loan.Status != st {
				t.Fatalf("%s mutated a terminal loan: %s → %s", name, st, h.loan.Status)
			}
		}
	}
}
