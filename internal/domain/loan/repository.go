package loan

import "context"

type Repository interface {
	Create(ctx context.Context, l *Loan) error
	GetByLoanID(ctx context.Context, loanID string) (*Loan, error)
	// GetByLoanIDForUpdate locks the loan row for the duration of the
	// surrounding transaction (SELECT ... FOR UPDATE on MySQL).
	GetByLoanIDForUpdate(ctx context.Context, loanID string) (*Loan, error)
	GetPendingLoanByBorrowerID(ctx context.Context, borrowerID string) (*Loan, error)
	Save(ctx context.Context, l *Loan) error
}

type InstallmentRepository interface {
	// CreateBatch inserts a full schedule in one statement; the caller
	// runs it inside the funded-transition transaction.
	CreateBatch(ctx context.Context, installments []Installment) error
	ListByLoan(ctx context.Context, loanNumericID uint64) ([]Installment, error)
	GetByLoanAndIdx(ctx context.Context, loanNumericID uint64, idx int) (*Installment, error)
	Save(ctx context.Context, ins *Installment) error
	CountUnpaid(ctx context.Context, loanNumericID uint64) (int64, error)
}
