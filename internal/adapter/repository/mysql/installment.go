package mysql

import (
	"context"

	loanDomain "agrifund-engine/internal/domain/loan"

	"gorm.io/gorm"
)

type InstallmentRepository struct{ db *gorm.DB }

func NewInstallmentRepository(db *gorm.DB) *InstallmentRepository {
	return &InstallmentRepository{db: db}
}

func (r *InstallmentRepository) CreateBatch(ctx context.Context, installments []loanDomain.Installment) error {
	if len(installments) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Create(&installments).Error
}

func (r *InstallmentRepository) ListByLoan(ctx context.Context, loanNumericID uint64) ([]loanDomain.Installment, error) {
	var out []loanDomain.Installment
	res := r.db.WithContext(ctx).
		Where("loan_id = ?", loanNumericID).
		Order("idx ASC").
		Find(&out)
	return out, res.Error
}

func (r *InstallmentRepository) GetByLoanAndIdx(ctx context.Context, loanNumericID uint64, idx int) (*loanDomain.Installment, error) {
	var out loanDomain.Installment
	res := r.db.WithContext(ctx).
		Where("loan_id = ? AND idx = ?", loanNumericID, idx).
		First(&out)
	return &out, res.Error
}

func (r *InstallmentRepository) Save(ctx context.Context, ins *loanDomain.Installment) error {
	return r.db.WithContext(ctx).Save(ins).Error
}

func (r *InstallmentRepository) CountUnpaid(ctx context.Context, loanNumericID uint64) (int64, error) {
	var n int64
	res := r.db.WithContext(ctx).
		Model(&loanDomain.Installment{}).
		Where("loan_id = ? AND status <> ?", loanNumericID, loanDomain.InstallmentPaid).
		Count(&n)
	return n, res.Error
}
