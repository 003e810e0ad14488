package funding

import (
	"errors"
	"time"
)

var (
	ErrLoanNotFundable      = errors.New("loan is not open for funding")
	ErrAmountNonPositive    = errors.New("amount must be positive")
	ErrCapacityExceeded     = errors.New("contribution exceeds remaining capacity")
	ErrWithdrawalNotPermitted = errors.New("withdrawal is not permitted in the loan's current state")
	ErrExceedsContribution  = errors.New("withdrawal exceeds the investor's contributed balance")
)

// Contribution is one append-only ledger row. A withdrawal is recorded
// as a compensating row with a negative Amount; rows are never edited
// or deleted. Seq increases per (loan, investor) so retried settlement
// callbacks can be deduplicated by the unique index.
type Contribution struct {
	ID             uint64    `gorm:"primaryKey;column:id" json:"-"`
	ContributionID string    `gorm:"size:32;uniqueIndex:ux_contributions_public_id" json:"contribution_id"`
	LoanID         uint64    `gorm:"not null;index:idx_contributions_loan;uniqueIndex:ux_contributions_loan_investor_seq" json:"-"`
	InvestorID     string    `gorm:"size:32;index:idx_contributions_loan_investor;uniqueIndex:ux_contributions_loan_investor_seq" json:"investor_id"`
	Seq            int       `gorm:"not null;uniqueIndex:ux_contributions_loan_investor_seq" json:"seq"`
	Amount         int64     `gorm:"not null" json:"amount"`
	SettlementRef  string    `gorm:"size:64" json:"settlement_ref"`
	CreatedAt      time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (Contribution) TableName() string { return "contributions" }
