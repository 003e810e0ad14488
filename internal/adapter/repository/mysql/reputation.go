package mysql

import (
	"context"
	"errors"
	"strings"

	repDomain "agrifund-engine/internal/domain/reputation"

	"gorm.io/gorm"
)

type ReputationRepository struct{ db *gorm.DB }

func NewReputationRepository(db *gorm.DB) *ReputationRepository {
	return &ReputationRepository{db: db}
}

// Record relies on the (borrower_id, loan_id) unique index for
// idempotency: a replayed terminal event surfaces as ErrDuplicate.
func (r *ReputationRepository) Record(ctx context.Context, o *repDomain.OutcomeRecord) error {
	err := r.db.WithContext(ctx).Create(o).Error
	if err != nil && isUniqueViolation(err) {
		return repDomain.ErrDuplicate
	}
	return err
}

func (r *ReputationRepository) ListByBorrower(ctx context.Context, borrowerID string) ([]repDomain.OutcomeRecord, error) {
	var out []repDomain.OutcomeRecord
	res := r.db.WithContext(ctx).
		Where("borrower_id = ?", borrowerID).
		Order("recorded_at ASC, id ASC").
		Find(&out)
	return out, res.Error
}

func isUniqueViolation(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := err.Error()
	// mysql: "Duplicate entry", sqlite: "UNIQUE constraint failed"
	return strings.Contains(msg, "Duplicate entry") || strings.Contains(msg, "UNIQUE constraint failed")
}
