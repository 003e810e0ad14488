package funding

import "context"

type Repository interface {
	Append(ctx context.Context, c *Contribution) error
	// SumByLoan is the live funded amount: the sum of all rows for the
	// loan, reversals included.
	SumByLoan(ctx context.Context, loanNumericID uint64) (int64, error)
	SumByLoanAndInvestor(ctx context.Context, loanNumericID uint64, investorID string) (int64, error)
	NextSeq(ctx context.Context, loanNumericID uint64, investorID string) (int, error)
	ListByLoan(ctx context.Context, loanNumericID uint64) ([]Contribution, error)
}
