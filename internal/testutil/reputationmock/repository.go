package reputationmock

import (
	"context"
	"errors"

	domain "agrifund-engine/internal/domain/reputation"
)

var errUnimplemented = errors.New("reputationmock: method not implemented")

// Repo is a function-backed mock that satisfies domain.Repository.
type Repo struct {
	RecordFn         func(ctx context.Context, r *domain.OutcomeRecord) error
	ListByBorrowerFn func(ctx context.Context, borrowerID string) ([]domain.OutcomeRecord, error)
}

var _ domain.Repository = (*Repo)(nil)

func (m *Repo) Record(ctx context.Context, r *domain.OutcomeRecord) error {
	if m.RecordFn != nil {
		return m.RecordFn(ctx, r)
	}
	return nil
}

func (m *Repo) ListByBorrower(ctx context.Context, borrowerID string) ([]domain.OutcomeRecord, error) {
	if m.ListByBorrowerFn != nil {
		return m.ListByBorrowerFn(ctx, borrowerID)
	}
	return nil, errUnimplemented
}

// InMemory is a tiny real implementation for tests that need the
// idempotent-insert behavior rather than canned responses.
type InMemory struct {
	rows []domain.OutcomeRecord
}

var _ domain.Repository = (*InMemory)(nil)

func (m *InMemory) Record(_ context.Context, r *domain.OutcomeRecord) error {
	for _, row := range m.rows {
		if row.BorrowerID == r.BorrowerID && row.LoanID == r.LoanID {
			return domain.ErrDuplicate
		}
	}
	m.rows = append(m.rows, *r)
	return nil
}

func (m *InMemory) ListByBorrower(_ context.Context, borrowerID string) ([]domain.OutcomeRecord, error) {
	var out []domain.OutcomeRecord
	for _, row := range m.rows {
		if row.BorrowerID == borrowerID {
			out = append(out, row)
		}
	}
	return out, nil
}
