package loanreq

import (
	"context"
	"errors"
	"fmt"
	"time"

	"agrifund-engine/internal/domain/funding"
	"agrifund-engine/internal/domain/loan"
	"agrifund-engine/internal/pricing"
	"agrifund-engine/pkg/id"

	"gorm.io/gorm"
)

// Scorer is the external risk-scoring collaborator. It is invoked once
// per loan request; the result is cached on the Loan and never
// re-applied to an already-priced loan.
type Scorer interface {
	GetScore(ctx context.Context, borrowerID string, farmContext map[string]string) (int, error)
}

type Usecase struct {
	loans         loan.Repository
	installments  loan.InstallmentRepository
	contributions funding.Repository
	scorer        Scorer
	tiers         *pricing.Table
	installmentN  int
}

func NewUsecase(loans loan.Repository, installments loan.InstallmentRepository, contributions funding.Repository, scorer Scorer, tiers *pricing.Table, installmentCount int) *Usecase {
	return &Usecase{
		loans:         loans,
		installments:  installments,
		contributions: contributions,
		scorer:        scorer,
		tiers:         tiers,
		installmentN:  installmentCount,
	}
}

func (u *Usecase) Create(ctx context.Context, in CreateLoanInput) (*LoanDTO, error) {
	if len(in.BorrowerID) != 32 || in.Principal <= 0 {
		return nil, errors.New("invalid input")
	}

	// Block if the borrower already has an open loan request.
	pending, err := u.loans.GetPendingLoanByBorrowerID(ctx, in.BorrowerID)
	switch {
	case err == nil:
		return nil, fmt.Errorf("borrower %s already has a pending loan: %s", in.BorrowerID, pending.LoanID)
	case !errors.Is(err, gorm.ErrRecordNotFound):
		return nil, err
	}

	score, err := u.scorer.GetScore(ctx, in.BorrowerID, in.FarmContext)
	if err != nil {
		return nil, fmt.Errorf("risk score lookup: %w", err)
	}
	terms, err := u.tiers.DeriveTerms(score)
	if err != nil {
		return nil, err
	}
	if !terms.Eligible {
		return nil, loan.ErrIneligibleScore
	}

	l := &loan.Loan{
		LoanID:           id.NewID32(),
		BorrowerID:       in.BorrowerID,
		Principal:        in.Principal,
		Score:            score,
		RateBps:          terms.RateBps,
		TermDays:         terms.TermDays,
		InstallmentCount: u.installmentN,
		Status:           loan.StatusRequested,
		StatusUpdatedAt:  time.Now().UTC(),
	}
	if err := u.loans.Create(ctx, l); err != nil {
		return nil, err
	}
	return toDTO(l), nil
}

func (u *Usecase) Get(ctx context.Context, loanID string) (*LoanDTO, error) {
	l, err := u.loans.GetByLoanID(ctx, loanID)
	if err != nil {
		return nil, err
	}
	return toDTO(l), nil
}

// Progress recomputes the funded sum from the ledger rather than
// trusting the cached column, so a reporting caller can never observe
// drift.
func (u *Usecase) Progress(ctx context.Context, loanID string) (*ProgressDTO, error) {
	l, err := u.loans.GetByLoanID(ctx, loanID)
	if err != nil {
		return nil, err
	}
	funded, err := u.contributions.SumByLoan(ctx, l.ID)
	if err != nil {
		return nil, err
	}
	return &ProgressDTO{
		LoanID:    l.LoanID,
		Funded:    funded,
		Remaining: l.Principal - funded,
		Percent:   float64(funded) / float64(l.Principal) * 100,
	}, nil
}

func (u *Usecase) Schedule(ctx context.Context, loanID string) ([]InstallmentDTO, error) {
	l, err := u.loans.GetByLoanID(ctx, loanID)
	if err != nil {
		return nil, err
	}
	rows, err := u.installments.ListByLoan(ctx, l.ID)
	if err != nil {
		return nil, err
	}
	out := make([]InstallmentDTO, 0, len(rows))
	for _, ins := range rows {
		out = append(out, InstallmentDTO{
			Idx:       ins.Idx,
			DueDate:   ins.DueDate,
			Principal: ins.Principal,
			Interest:  ins.Interest,
			Total:     ins.Total,
			Status:    string(ins.Status),
			PaidAt:    ins.PaidAt,
		})
	}
	return out, nil
}
