package loanmock

import (
	"context"
	"errors"

	domain "agrifund-engine/internal/domain/loan"
)

var errUnimplemented = errors.New("loanmock: method not implemented")

// Repo is a function-backed mock that satisfies domain.Repository.
// Fill in only the function fields a test needs.
type Repo struct {
	CreateFn                     func(ctx context.Context, l *domain.Loan) error
	GetByLoanIDFn                func(ctx context.Context, loanID string) (*domain.Loan, error)
	GetByLoanIDForUpdateFn       func(ctx context.Context, loanID string) (*domain.Loan, error)
	GetPendingLoanByBorrowerIDFn func(ctx context.Context, borrowerID string) (*domain.Loan, error)
	SaveFn                       func(ctx context.Context, l *domain.Loan) error
}

var _ domain.Repository = (*Repo)(nil)

func (m *Repo) Create(ctx context.Context, l *domain.Loan) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, l)
	}
	return nil
}

func (m *Repo) GetByLoanID(ctx context.Context, loanID string) (*domain.Loan, error) {
	if m.GetByLoanIDFn != nil {
		return m.GetByLoanIDFn(ctx, loanID)
	}
	return nil, errUnimplemented
}

func (m *Repo) GetByLoanIDForUpdate(ctx context.Context, loanID string) (*domain.Loan, error) {
	if m.GetByLoanIDForUpdateFn != nil {
		return m.GetByLoanIDForUpdateFn(ctx, loanID)
	}
	return nil, errUnimplemented
}

func (m *Repo) GetPendingLoanByBorrowerID(ctx context.Context, borrowerID string) (*domain.Loan, error) {
	if m.GetPendingLoanByBorrowerIDFn != nil {
		return m.GetPendingLoanByBorrowerIDFn(ctx, borrowerID)
	}
	return nil, errUnimplemented
}

func (m *Repo) Save(ctx context.Context, l *domain.Loan) error {
	if m.SaveFn != nil {
		return m.SaveFn(ctx, l)
	}
	return nil
}

// InstallmentRepo mocks domain.InstallmentRepository the same way.
type InstallmentRepo struct {
	CreateBatchFn    func(ctx context.Context, installments []domain.Installment) error
	ListByLoanFn     func(ctx context.Context, loanNumericID uint64) ([]domain.Installment, error)
	GetByLoanAndIdxFn func(ctx context.Context, loanNumericID uint64, idx int) (*domain.Installment, error)
	SaveFn           func(ctx context.Context, ins *domain.Installment) error
	CountUnpaidFn    func(ctx context.Context, loanNumericID uint64) (int64, error)
}

var _ domain.InstallmentRepository = (*InstallmentRepo)(nil)

func (m *InstallmentRepo) CreateBatch(ctx context.Context, installments []domain.Installment) error {
	if m.CreateBatchFn != nil {
		return m.CreateBatchFn(ctx, installments)
	}
	return nil
}

func (m *InstallmentRepo) ListByLoan(ctx context.Context, loanNumericID uint64) ([]domain.Installment, error) {
	if m.ListByLoanFn != nil {
		return m.ListByLoanFn(ctx, loanNumericID)
	}
	return nil, errUnimplemented
}

func (m *InstallmentRepo) GetByLoanAndIdx(ctx context.Context, loanNumericID uint64, idx int) (*domain.Installment, error) {
	if m.GetByLoanAndIdxFn != nil {
		return m.GetByLoanAndIdxFn(ctx, loanNumericID, idx)
	}
	return nil, errUnimplemented
}

func (m *InstallmentRepo) Save(ctx context.Context, ins *domain.Installment) error {
	if m.SaveFn != nil {
		return m.SaveFn(ctx, ins)
	}
	return nil
}

func (m *InstallmentRepo) CountUnpaid(ctx context.Context, loanNumericID uint64) (int64, error) {
	if m.CountUnpaidFn != nil {
		return m.CountUnpaidFn(ctx, loanNumericID)
	}
	return 0, errUnimplemented
}
