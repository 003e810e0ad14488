// Package reputation folds a borrower's terminal loan outcomes into a
// rolling score. The score is always recomputed from the full outcome
// history; only the outcome rows are stored.
package reputation

import (
	"context"
	"errors"
	"math"

	domain "agrifund-engine/internal/domain/reputation"
)

// neutralScore is what a borrower with no terminal history gets.
const neutralScore = 500

type Usecase struct {
	repo  domain.Repository
	decay float64
}

// NewUsecase takes the recency decay factor in (0,1]: each older
// outcome weighs decay times the one after it.
func NewUsecase(repo domain.Repository, decay float64) *Usecase {
	return &Usecase{repo: repo, decay: decay}
}

// RecordOutcome appends a terminal outcome and returns the recomputed
// record. Replaying the same (borrower, loan) pair is a no-op and
// yields the same record as a single application.
func (u *Usecase) RecordOutcome(ctx context.Context, borrowerID, loanID string, outcome domain.Outcome) (*domain.Record, error) {
	if outcome != domain.OutcomeRepaid && outcome != domain.OutcomeDefaulted {
		return nil, domain.ErrUnknownOutcome
	}
	err := u.repo.Record(ctx, &domain.OutcomeRecord{
		BorrowerID: borrowerID,
		LoanID:     loanID,
		Outcome:    outcome,
	})
	if err != nil && !errors.Is(err, domain.ErrDuplicate) {
		return nil, err
	}
	return u.Get(ctx, borrowerID)
}

func (u *Usecase) Get(ctx context.Context, borrowerID string) (*domain.Record, error) {
	history, err := u.repo.ListByBorrower(ctx, borrowerID)
	if err != nil {
		return nil, err
	}
	rec := Compute(borrowerID, history, u.decay)
	return &rec, nil
}

// Compute is the pure scoring fold. Outcomes must be oldest first; the
// most recent outcome carries the largest weight. With no history the
// score is neutral.
func Compute(borrowerID string, history []domain.OutcomeRecord, decay float64) domain.Record {
	rec := domain.Record{BorrowerID: borrowerID}
	if len(history) == 0 {
		rec.Score = neutralScore
		return rec
	}

	var weighted, totalWeight float64
	weight := 1.0
	// Walk newest→oldest so the newest outcome has weight 1.
	for i := len(history) - 1; i >= 0; i-- {
		switch history[i].Outcome {
		case domain.OutcomeRepaid:
			rec.RepaidCount++
			weighted += weight
		case domain.OutcomeDefaulted:
			rec.DefaultedCount++
		}
		totalWeight += weight
		weight *= decay
	}
	rec.TotalLoans = rec.RepaidCount + rec.DefaultedCount
	rec.RepaymentRate = float64(rec.RepaidCount) / float64(rec.TotalLoans)
	rec.Score = int(math.Round(1000 * weighted / totalWeight))
	return rec
}
