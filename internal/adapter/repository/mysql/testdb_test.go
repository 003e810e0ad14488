package mysql

import (
	"testing"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// --- SQLite-friendly schemas only for tests (no ENUM columns) ---

type loanSQLite struct {
	ID               uint64         `gorm:"primaryKey;column:id"`
	LoanID           string         `gorm:"size:32;column:loan_id;uniqueIndex:ux_loans_loan_id_active"`
	BorrowerID       string         `gorm:"size:32;column:borrower_id"`
	Principal        int64          `gorm:"column:principal"`
	FundedAmount     int64          `gorm:"column:funded_amount"`
	Score            int            `gorm:"column:score"`
	RateBps          int            `gorm:"column:rate_bps"`
	TermDays         int            `gorm:"column:term_days"`
	InstallmentCount int            `gorm:"column:installment_count"`
	Status           string         `gorm:"type:text;column:status"` // ← no enum
	StatusUpdatedAt  time.Time      `gorm:"column:status_updated_at"`
	CreatedAt        time.Time      `gorm:"column:created_at"`
	UpdatedAt        time.Time      `gorm:"column:updated_at"`
	DeletedAt        gorm.DeletedAt `gorm:"column:deleted_at"`
}

func (loanSQLite) TableName() string { return "loans" }

type installmentSQLite struct {
	ID        uint64     `gorm:"primaryKey;column:id"`
	LoanID    uint64     `gorm:"column:loan_id;uniqueIndex:ux_installments_loan_idx"`
	Idx       int        `gorm:"column:idx;uniqueIndex:ux_installments_loan_idx"`
	DueDate   time.Time  `gorm:"column:due_date"`
	Principal int64      `gorm:"column:principal"`
	Interest  int64      `gorm:"column:interest"`
	Total     int64      `gorm:"column:total"`
	Status    string     `gorm:"type:text;column:status"`
	PaidAt    *time.Time `gorm:"column:paid_at"`
	CreatedAt time.Time  `gorm:"column:created_at"`
	UpdatedAt time.Time  `gorm:"column:updated_at"`
}

func (installmentSQLite) TableName() string { return "installments" }

type contributionSQLite struct {
	ID             uint64    `gorm:"primaryKey;column:id"`
	ContributionID string    `gorm:"size:32;column:contribution_id;uniqueIndex:ux_contributions_public_id"`
	LoanID         uint64    `gorm:"column:loan_id;uniqueIndex:ux_contributions_loan_investor_seq"`
	InvestorID     string    `gorm:"size:32;column:investor_id;uniqueIndex:ux_contributions_loan_investor_seq"`
	Seq            int       `gorm:"column:seq;uniqueIndex:ux_contributions_loan_investor_seq"`
	Amount         int64     `gorm:"column:amount"`
	SettlementRef  string    `gorm:"size:64;column:settlement_ref"`
	CreatedAt      time.Time `gorm:"column:created_at"`
}

func (contributionSQLite) TableName() string { return "contributions" }

type outcomeSQLite struct {
	ID         uint64    `gorm:"primaryKey;column:id"`
	BorrowerID string    `gorm:"size:32;column:borrower_id;uniqueIndex:ux_outcomes_borrower_loan"`
	LoanID     string    `gorm:"size:32;column:loan_id;uniqueIndex:ux_outcomes_borrower_loan"`
	Outcome    string    `gorm:"type:text;column:outcome"`
	RecordedAt time.Time `gorm:"column:recorded_at"`
}

func (outcomeSQLite) TableName() string { return "reputation_outcomes" }

// openTestDB creates an in-memory sqlite DB and migrates ONLY the
// sqlite-safe schemas.
func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := db.AutoMigrate(&loanSQLite{}, &installmentSQLite{}, &contributionSQLite{}, &outcomeSQLite{}); err != nil {
		t.Fatalf("auto-migrate: %v", err)
	}
	return db
}
