package loanreq

import (
	"time"

	"agrifund-engine/internal/domain/loan"
)

type CreateLoanInput struct {
	BorrowerID  string            `json:"borrower_id"`
	Principal   int64             `json:"principal"`
	FarmContext map[string]string `json:"farm_context"`
}

type LoanDTO struct {
	LoanID           string    `json:"loan_id"`
	BorrowerID       string    `json:"borrower_id"`
	Principal        int64     `json:"principal"`
	FundedAmount     int64     `json:"funded_amount"`
	Score            int       `json:"score"`
	RateBps          int       `json:"rate_bps"`
	TermDays         int       `json:"term_days"`
	InstallmentCount int       `json:"installment_count"`
	Status           string    `json:"status"`
	CreatedAt        time.Time `json:"created_at"`
}

type ProgressDTO struct {
	LoanID    string  `json:"loan_id"`
	Funded    int64   `json:"funded"`
	Remaining int64   `json:"remaining"`
	Percent   float64 `json:"percent"`
}

type InstallmentDTO struct {
	Idx       int        `json:"idx"`
	DueDate   time.Time  `json:"due_date"`
	Principal int64      `json:"principal"`
	Interest  int64      `json:"interest"`
	Total     int64      `json:"total"`
	Status    string     `json:"status"`
	PaidAt    *time.Time `json:"paid_at,omitempty"`
}

func toDTO(l *loan.Loan) *LoanDTO {
	return &LoanDTO{
		LoanID:           l.LoanID,
		BorrowerID:       l.BorrowerID,
		Principal:        l.Principal,
		FundedAmount:     l.FundedAmount,
		Score:            l.Score,
		RateBps:          l.RateBps,
		TermDays:         l.TermDays,
		InstallmentCount: l.InstallmentCount,
		Status:           string(l.Status),
		CreatedAt:        l.CreatedAt,
	}
}
