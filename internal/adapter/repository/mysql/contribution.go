package mysql

import (
	"context"

	fundingDomain "agrifund-engine/internal/domain/funding"

	"gorm.io/gorm"
)

type ContributionRepository struct{ db *gorm.DB }

func NewContributionRepository(db *gorm.DB) *ContributionRepository {
	return &ContributionRepository{db: db}
}

// Append inserts one ledger row. There is deliberately no update or
// delete method on this repository.
func (r *ContributionRepository) Append(ctx context.Context, c *fundingDomain.Contribution) error {
	return r.db.WithContext(ctx).Create(c).Error
}

func (r *ContributionRepository) SumByLoan(ctx context.Context, loanNumericID uint64) (int64, error) {
	var sum int64
	res := r.db.WithContext(ctx).
		Model(&fundingDomain.Contribution{}).
		Where("loan_id = ?", loanNumericID).
		Select("COALESCE(SUM(amount), 0)").
		Scan(&sum)
	return sum, res.Error
}

func (r *ContributionRepository) SumByLoanAndInvestor(ctx context.Context, loanNumericID uint64, investorID string) (int64, error) {
	var sum int64
	res := r.db.WithContext(ctx).
		Model(&fundingDomain.Contribution{}).
		Where("loan_id = ? AND investor_id = ?", loanNumericID, investorID).
		Select("COALESCE(SUM(amount), 0)").
		Scan(&sum)
	return sum, res.Error
}

func (r *ContributionRepository) NextSeq(ctx context.Context, loanNumericID uint64, investorID string) (int, error) {
	var max int
	res := r.db.WithContext(ctx).
		Model(&fundingDomain.Contribution{}).
		Where("loan_id = ? AND investor_id = ?", loanNumericID, investorID).
		Select("COALESCE(MAX(seq), 0)").
		Scan(&max)
	return max + 1, res.Error
}

func (r *ContributionRepository) ListByLoan(ctx context.Context, loanNumericID uint64) ([]fundingDomain.Contribution, error) {
	var out []fundingDomain.Contribution
	res := r.db.WithContext(ctx).
		Where("loan_id = ?", loanNumericID).
		Order("id ASC").
		Find(&out)
	return out, res.Error
}
