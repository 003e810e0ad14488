package uow

import (
	"context"

	"agrifund-engine/internal/domain/funding"
	"agrifund-engine/internal/domain/loan"
	"agrifund-engine/internal/domain/reputation"
)

// Repos bundles the repositories bound to one transaction.
type Repos struct {
	Loans         loan.Repository
	Installments  loan.InstallmentRepository
	Contributions funding.Repository
	Reputation    reputation.Repository
}

type UnitOfWork interface {
	// WithinTx runs fn inside a single db transaction.
	WithinTx(ctx context.Context, fn func(r Repos) error) error
	// WithinLoanTx locks the loan row first, then passes it in. This is
	// the per-loan critical section used by funding and lifecycle flows.
	WithinLoanTx(ctx context.Context, loanID string, fn func(r Repos, l *loan.Loan) error) error
}
