package reputation

import "context"

type Repository interface {
	// Record inserts an outcome row; inserting a duplicate
	// (borrower, loan) pair must return ErrDuplicate so callers can
	// treat replays as no-ops.
	Record(ctx context.Context, r *OutcomeRecord) error
	// ListByBorrower returns the borrower's outcomes oldest first.
	ListByBorrower(ctx context.Context, borrowerID string) ([]OutcomeRecord, error)
}
