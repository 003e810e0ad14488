package funding

import "time"

type ContributeInput struct {
	LoanID        string
	InvestorID    string
	Amount        int64
	SettlementRef string
}

// ContributionDTO reports what the ledger actually accepted. Accepted
// can be lower than the requested amount only under the clamp policy,
// and Clamped is set so the caller is always told.
type ContributionDTO struct {
	ContributionID string    `json:"contribution_id"`
	LoanID         string    `json:"loan_id"`
	InvestorID     string    `json:"investor_id"`
	Accepted       int64     `json:"accepted"`
	Clamped        bool      `json:"clamped"`
	Funded         int64     `json:"funded"`
	Remaining      int64     `json:"remaining"`
	LoanStatus     string    `json:"loan_status"`
	CreatedAt      time.Time `json:"created_at"`
}

type WithdrawInput struct {
	LoanID     string
	InvestorID string
	Amount     int64
}

type WithdrawalDTO struct {
	LoanID     string `json:"loan_id"`
	InvestorID string `json:"investor_id"`
	Amount     int64  `json:"amount"`
	Funded     int64  `json:"funded"`
	Remaining  int64  `json:"remaining"`
}
