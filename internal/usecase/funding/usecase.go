package funding

import (
	"context"
	"time"

	"agrifund-engine/internal/config"
	domain "agrifund-engine/internal/domain/funding"
	loanDomain "agrifund-engine/internal/domain/loan"
	"agrifund-engine/internal/domain/uow"
	"agrifund-engine/internal/schedule"
	"agrifund-engine/pkg/id"
)

// Usecase is the funding ledger's write side. Contribute and Withdraw
// are the only writers of a loan's contribution rows and of its cached
// FundedAmount; both run their read-validate-append sequence under a
// per-loan mutex and a row-locking db transaction.
type Usecase struct {
	uow      uow.UnitOfWork
	locks    *loanLocks
	overflow config.OverflowPolicy
}

func NewUsecase(tx uow.UnitOfWork, overflow config.OverflowPolicy) *Usecase {
	return &Usecase{uow: tx, locks: newLoanLocks(), overflow: overflow}
}

// Contribute records a settlement-confirmed investor contribution. It
// is only ever invoked by the settlement callback, so a timed-out
// transfer simply never reaches the ledger.
//
// If the new sum reaches the principal the requested→funded transition
// fires in the same transaction, with the amortization schedule
// attached atomically. The transition fires at most once per loan: a
// later call sees status funded and fails with ErrLoanNotFundable.
func (u *Usecase) Contribute(ctx context.Context, in ContributeInput) (*ContributionDTO, error) {
	if in.Amount <= 0 {
		return nil, domain.ErrAmountNonPositive
	}

	mu := u.locks.get(in.LoanID)
	mu.Lock()
	defer mu.Unlock()

	var dto *ContributionDTO
	err := u.uow.WithinLoanTx(ctx, in.LoanID, func(r uow.Repos, l *loanDomain.Loan) error {
		if l.Status != loanDomain.StatusRequested {
			return domain.ErrLoanNotFundable
		}

		// The cached column is never trusted inside the critical
		// section; the ledger sum is authoritative.
		funded, err := r.Contributions.SumByLoan(ctx, l.ID)
		if err != nil {
			return err
		}
		remaining := l.Principal - funded

		accepted := in.Amount
		clamped := false
		if accepted > remaining {
			if u.overflow == config.OverflowReject {
				return domain.ErrCapacityExceeded
			}
			accepted = remaining
			clamped = true
		}

		seq, err := r.Contributions.NextSeq(ctx, l.ID, in.InvestorID)
		if err != nil {
			return err
		}
		c := &domain.Contribution{
			ContributionID: id.NewID32(),
			LoanID:         l.ID,
			InvestorID:     in.InvestorID,
			Seq:            seq,
			Amount:         accepted,
			SettlementRef:  in.SettlementRef,
		}
		if err := r.Contributions.Append(ctx, c); err != nil {
			return err
		}

		now := time.Now().UTC()
		l.FundedAmount = funded + accepted
		if l.FundedAmount == l.Principal {
			lines, err := schedule.Generate(l.Principal, l.RateBps, l.TermDays, l.InstallmentCount, now)
			if err != nil {
				return err
			}
			for i := range lines {
				lines[i].LoanID = l.ID
			}
			if err := r.Installments.CreateBatch(ctx, lines); err != nil {
				return err
			}
			l.Status = loanDomain.StatusFunded
			l.StatusUpdatedAt = now
		}
		if err := r.Loans.Save(ctx, l); err != nil {
			return err
		}

		dto = &ContributionDTO{
			ContributionID: c.ContributionID,
			LoanID:         l.LoanID,
			InvestorID:     in.InvestorID,
			Accepted:       accepted,
			Clamped:        clamped,
			Funded:         l.FundedAmount,
			Remaining:      l.Principal - l.FundedAmount,
			LoanStatus:     string(l.Status),
			CreatedAt:      now,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return dto, nil
}

// Withdraw records an investor early exit as a compensating negative
// ledger row. Only uncommitted capital may leave: once the loan is
// funded the request fails, it never regresses a funded loan back to
// requested.
func (u *Usecase) Withdraw(ctx context.Context, in WithdrawInput) (*WithdrawalDTO, error) {
	if in.Amount <= 0 {
		return nil, domain.ErrAmountNonPositive
	}

	mu := u.locks.get(in.LoanID)
	mu.Lock()
	defer mu.Unlock()

	var dto *WithdrawalDTO
	err := u.uow.WithinLoanTx(ctx, in.LoanID, func(r uow.Repos, l *loanDomain.Loan) error {
		if l.Status != loanDomain.StatusRequested {
			return domain.ErrWithdrawalNotPermitted
		}

		balance, err := r.Contributions.SumByLoanAndInvestor(ctx, l.ID, in.InvestorID)
		if err != nil {
			return err
		}
		if in.Amount > balance {
			return domain.ErrExceedsContribution
		}

		seq, err := r.Contributions.NextSeq(ctx, l.ID, in.InvestorID)
		if err != nil {
			return err
		}
		rev := &domain.Contribution{
			ContributionID: id.NewID32(),
			LoanID:         l.ID,
			InvestorID:     in.InvestorID,
			Seq:            seq,
			Amount:         -in.Amount,
		}
		if err := r.Contributions.Append(ctx, rev); err != nil {
			return err
		}

		l.FundedAmount -= in.Amount
		if err := r.Loans.Save(ctx, l); err != nil {
			return err
		}

		dto = &WithdrawalDTO{
			LoanID:     l.LoanID,
			InvestorID: in.InvestorID,
			Amount:     in.Amount,
			Funded:     l.FundedAmount,
			Remaining:  l.Principal - l.FundedAmount,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return dto, nil
}
