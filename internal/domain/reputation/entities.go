package reputation

import (
	"errors"
	"time"
)

var (
	ErrUnknownOutcome = errors.New("unknown loan outcome")
	// ErrDuplicate marks a replayed (borrower, loan) outcome.
	ErrDuplicate = errors.New("outcome already recorded for this loan")
)

type Outcome string

const (
	OutcomeRepaid    Outcome = "repaid"
	OutcomeDefaulted Outcome = "defaulted"
)

// OutcomeRecord is one terminal loan result for a borrower. The unique
// (borrower, loan) index makes outcome recording idempotent: replaying
// the same terminal event is a no-op.
type OutcomeRecord struct {
	ID         uint64    `gorm:"primaryKey;column:id" json:"-"`
	BorrowerID string    `gorm:"size:32;index:idx_outcomes_borrower;uniqueIndex:ux_outcomes_borrower_loan" json:"borrower_id"`
	LoanID     string    `gorm:"size:32;uniqueIndex:ux_outcomes_borrower_loan" json:"loan_id"`
	Outcome    Outcome   `gorm:"type:enum('repaid','defaulted')" json:"outcome"`
	RecordedAt time.Time `gorm:"autoCreateTime" json:"recorded_at"`
}

func (OutcomeRecord) TableName() string { return "reputation_outcomes" }

// Record is a read model, always recomputed from the outcome history.
// RepaymentRate and Score are derived, never stored, so they cannot
// drift from the counts.
type Record struct {
	BorrowerID    string  `json:"borrower_id"`
	TotalLoans    int     `json:"total_loans"`
	RepaidCount   int     `json:"repaid_count"`
	DefaultedCount int    `json:"defaulted_count"`
	RepaymentRate float64 `json:"repayment_rate"`
	Score         int     `json:"score"`
}
