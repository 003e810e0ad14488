package fundingmock

import (
	"context"
	"errors"

	domain "agrifund-engine/internal/domain/funding"
)

var errUnimplemented = errors.New("fundingmock: method not implemented")

// Repo is a function-backed mock that satisfies domain.Repository.
type Repo struct {
	AppendFn               func(ctx context.Context, c *domain.Contribution) error
	SumByLoanFn            func(ctx context.Context, loanNumericID uint64) (int64, error)
	SumByLoanAndInvestorFn func(ctx context.Context, loanNumericID uint64, investorID string) (int64, error)
	NextSeqFn              func(ctx context.Context, loanNumericID uint64, investorID string) (int, error)
	ListByLoanFn           func(ctx context.Context, loanNumericID uint64) ([]domain.Contribution, error)
}

var _ domain.Repository = (*Repo)(nil)

func (m *Repo) Append(ctx context.Context, c *domain.Contribution) error {
	if m.AppendFn != nil {
		return m.AppendFn(ctx, c)
	}
	return nil
}

func (m *Repo) SumByLoan(ctx context.Context, loanNumericID uint64) (int64, error) {
	if m.SumByLoanFn != nil {
		return m.SumByLoanFn(ctx, loanNumericID)
	}
	return 0, errUnimplemented
}

func (m *Repo) SumByLoanAndInvestor(ctx context.Context, loanNumericID uint64, investorID string) (int64, error) {
	if m.SumByLoanAndInvestorFn != nil {
		return m.SumByLoanAndInvestorFn(ctx, loanNumericID, investorID)
	}
	return 0, errUnimplemented
}

func (m *Repo) NextSeq(ctx context.Context, loanNumericID uint64, investorID string) (int, error) {
	if m.NextSeqFn != nil {
		return m.NextSeqFn(ctx, loanNumericID, investorID)
	}
	return 1, nil
}

func (m *Repo) ListByLoan(ctx context.Context, loanNumericID uint64) ([]domain.Contribution, error) {
	if m.ListByLoanFn != nil {
		return m.ListByLoanFn(ctx, loanNumericID)
	}
	return nil, errUnimplemented
}
