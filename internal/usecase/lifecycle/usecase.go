// Package lifecycle owns every status transition after a loan is
// funded. Transitions run inside the per-loan row-locking transaction;
// terminal states are write-once.
package lifecycle

import (
	"context"
	"errors"
	"time"

	loanDomain "agrifund-engine/internal/domain/loan"
	repDomain "agrifund-engine/internal/domain/reputation"
	"agrifund-engine/internal/domain/uow"
)

type Usecase struct {
	uow uow.UnitOfWork
}

func NewUsecase(tx uow.UnitOfWork) *Usecase { return &Usecase{uow: tx} }

// ConfirmDisbursement moves funded→disbursed on the settlement rail's
// confirmation that principal reached the borrower.
func (u *Usecase) ConfirmDisbursement(ctx context.Context, loanID string) error {
	return u.uow.WithinLoanTx(ctx, loanID, func(r uow.Repos, l *loanDomain.Loan) error {
		if l.Status.Terminal() {
			return loanDomain.ErrTerminalState
		}
		if l.Status != loanDomain.StatusFunded {
			return loanDomain.ErrNotFunded
		}
		return transition(ctx, r, l, loanDomain.StatusDisbursed)
	})
}

// RecordInstallmentPaid marks one installment paid. Paying the last
// open installment moves the loan to repaid and records the borrower
// outcome in the same transaction. Replaying an already-paid
// installment is a no-op.
func (u *Usecase) RecordInstallmentPaid(ctx context.Context, loanID string, idx int) error {
	return u.uow.WithinLoanTx(ctx, loanID, func(r uow.Repos, l *loanDomain.Loan) error {
		ins, err := r.Installments.GetByLoanAndIdx(ctx, l.ID, idx)
		if err != nil {
			return loanDomain.ErrInstallmentNotFound
		}
		if ins.Status == loanDomain.InstallmentPaid {
			return nil
		}
		if l.Status.Terminal() {
			return loanDomain.ErrTerminalState
		}
		if l.Status != loanDomain.StatusDisbursed {
			return loanDomain.ErrNotDisbursed
		}

		now := time.Now().UTC()
		ins.Status = loanDomain.InstallmentPaid
		ins.PaidAt = &now
		if err := r.Installments.Save(ctx, ins); err != nil {
			return err
		}

		unpaid, err := r.Installments.CountUnpaid(ctx, l.ID)
		if err != nil {
			return err
		}
		if unpaid == 0 {
			if err := transition(ctx, r, l, loanDomain.StatusRepaid); err != nil {
				return err
			}
			return recordOutcome(ctx, r, l, repDomain.OutcomeRepaid)
		}
		return nil
	})
}

// MarkInstallmentOverdue is the grace-policy collaborator's input: the
// engine never decides lateness itself.
func (u *Usecase) MarkInstallmentOverdue(ctx context.Context, loanID string, idx int) error {
	return u.uow.WithinLoanTx(ctx, loanID, func(r uow.Repos, l *loanDomain.Loan) error {
		if l.Status.Terminal() {
			return loanDomain.ErrTerminalState
		}
		if l.Status != loanDomain.StatusDisbursed {
			return loanDomain.ErrNotDisbursed
		}
		ins, err := r.Installments.GetByLoanAndIdx(ctx, l.ID, idx)
		if err != nil {
			return loanDomain.ErrInstallmentNotFound
		}
		switch ins.Status {
		case loanDomain.InstallmentOverdue:
			return nil
		case loanDomain.InstallmentPaid:
			return loanDomain.ErrInstallmentNotDue
		}
		ins.Status = loanDomain.InstallmentOverdue
		return r.Installments.Save(ctx, ins)
	})
}

// DeclareDefault moves disbursed→defaulted on an explicit declaration.
func (u *Usecase) DeclareDefault(ctx context.Context, loanID string) error {
	return u.uow.WithinLoanTx(ctx, loanID, func(r uow.Repos, l *loanDomain.Loan) error {
		if l.Status.Terminal() {
			return loanDomain.ErrTerminalState
		}
		if l.Status != loanDomain.StatusDisbursed {
			return loanDomain.ErrNotDisbursed
		}
		if err := transition(ctx, r, l, loanDomain.StatusDefaulted); err != nil {
			return err
		}
		return recordOutcome(ctx, r, l, repDomain.OutcomeDefaulted)
	})
}

// Liquidate is the collateral-seizure exit, available from either
// active post-funding state.
func (u *Usecase) Liquidate(ctx context.Context, loanID string) error {
	return u.uow.WithinLoanTx(ctx, loanID, func(r uow.Repos, l *loanDomain.Loan) error {
		if l.Status.Terminal() {
			return loanDomain.ErrTerminalState
		}
		if l.Status != loanDomain.StatusFunded && l.Status != loanDomain.StatusDisbursed {
			return loanDomain.ErrInvalidTransition
		}
		return transition(ctx, r, l, loanDomain.StatusLiquidated)
	})
}

func transition(ctx context.Context, r uow.Repos, l *loanDomain.Loan, to loanDomain.Status) error {
	l.Status = to
	l.StatusUpdatedAt = time.Now().UTC()
	return r.Loans.Save(ctx, l)
}

func recordOutcome(ctx context.Context, r uow.Repos, l *loanDomain.Loan, out repDomain.Outcome) error {
	err := r.Reputation.Record(ctx, &repDomain.OutcomeRecord{
		BorrowerID: l.BorrowerID,
		LoanID:     l.LoanID,
		Outcome:    out,
	})
	if errors.Is(err, repDomain.ErrDuplicate) {
		return nil
	}
	return err
}
