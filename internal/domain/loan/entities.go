package loan

import (
	"errors"
	"time"

	"gorm.io/gorm"
)

type Status string

const (
	StatusRequested  Status = "requested"
	StatusFunded     Status = "funded"
	StatusDisbursed  Status = "disbursed"
	StatusRepaid     Status = "repaid"
	StatusDefaulted  Status = "defaulted"
	StatusLiquidated Status = "liquidated"
)

// Terminal reports whether no further status transition is permitted.
func (s Status) Terminal() bool {
	return s == StatusRepaid || s == StatusDefaulted || s == StatusLiquidated
}

var (
	ErrNotFound          = errors.New("loan not found")
	ErrNotFunded         = errors.New("loan is not funded")
	ErrNotDisbursed      = errors.New("loan is not disbursed")
	ErrTerminalState     = errors.New("loan is in a terminal state")
	ErrInvalidTransition = errors.New("invalid loan state transition")
	ErrIneligibleScore   = errors.New("borrower score is below the eligible tier")
)

// Loan is the aggregate root of the funding and repayment lifecycle.
// All monetary fields are integer minor units (cents). FundedAmount is
// a derived cache of the contribution ledger and is only ever written
// from inside the per-loan funding critical section.
type Loan struct {
	ID               uint64         `gorm:"primaryKey;column:id" json:"-"`
	LoanID           string         `gorm:"size:32;uniqueIndex:ux_loans_loan_id_active" json:"loan_id"`
	BorrowerID       string         `gorm:"size:32;index:idx_loans_borrower_active" json:"borrower_id"`
	Principal        int64          `gorm:"not null" json:"principal"`
	FundedAmount     int64          `gorm:"not null;default:0" json:"funded_amount"`
	Score            int            `gorm:"not null" json:"score"`
	RateBps          int            `gorm:"not null" json:"rate_bps"`
	TermDays         int            `gorm:"not null" json:"term_days"`
	InstallmentCount int            `gorm:"not null" json:"installment_count"`
	Status           Status         `gorm:"type:enum('requested','funded','disbursed','repaid','defaulted','liquidated');default:'requested'" json:"status"`
	StatusUpdatedAt  time.Time      `gorm:"autoCreateTime" json:"status_updated_at"`
	CreatedAt        time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt        time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt        gorm.DeletedAt `gorm:"index" json:"-"`
}

func (Loan) TableName() string { return "loans" }

// Remaining is the capacity still open to investors.
func (l *Loan) Remaining() int64 { return l.Principal - l.FundedAmount }

type InstallmentStatus string

const (
	InstallmentPending InstallmentStatus = "pending"
	InstallmentPaid    InstallmentStatus = "paid"
	InstallmentOverdue InstallmentStatus = "overdue"
)

var (
	ErrInstallmentNotFound = errors.New("installment not found")
	ErrInstallmentNotDue   = errors.New("installment is not in a payable state")
)

// Installment is one row of a loan's amortization schedule. The set is
// created atomically when the loan becomes funded and is immutable
// except for the status and PaidAt columns.
type Installment struct {
	ID        uint64            `gorm:"primaryKey;column:id" json:"-"`
	LoanID    uint64            `gorm:"not null;uniqueIndex:ux_installments_loan_idx" json:"-"`
	Idx       int               `gorm:"not null;uniqueIndex:ux_installments_loan_idx" json:"idx"`
	DueDate   time.Time         `gorm:"not null" json:"due_date"`
	Principal int64             `gorm:"not null" json:"principal"`
	Interest  int64             `gorm:"not null" json:"interest"`
	Total     int64             `gorm:"not null" json:"total"`
	Status    InstallmentStatus `gorm:"type:enum('pending','paid','overdue');default:'pending'" json:"status"`
	PaidAt    *time.Time        `json:"paid_at,omitempty"`
	CreatedAt time.Time         `gorm:"autoCreateTime" json:"-"`
	UpdatedAt time.Time         `gorm:"autoUpdateTime" json:"-"`
}

func (Installment) TableName() string { return "installments" }
