// Package schedule generates amortization schedules in integer minor
// units. Generation is pure: the same inputs always yield the same
// schedule, which is what makes a stored schedule auditable.
package schedule

import (
	"errors"
	"math"
	"time"

	"agrifund-engine/internal/domain/loan"
)

var (
	ErrInvalidPrincipal    = errors.New("schedule: principal must be positive")
	ErrInvalidRate         = errors.New("schedule: rate must be non-negative")
	ErrInvalidTerm         = errors.New("schedule: term must cover at least one day per installment")
	ErrInvalidInstallments = errors.New("schedule: installment count must be positive")
)

// bpsDenom converts basis points over a yearly term into a per-day
// fraction: rateBps * days / bpsDenom.
const bpsDenom = 10000 * 365

// Generate builds an equal-total-payment schedule: interest accrues on
// the declining balance at a fixed per-period rate derived from rateBps
// and the period length, and the final installment absorbs the rounding
// remainder so the principal components sum exactly to principal.
func Generate(principal int64, rateBps, termDays, installments int, start time.Time) ([]loan.Installment, error) {
	switch {
	case principal <= 0:
		return nil, ErrInvalidPrincipal
	case rateBps < 0:
		return nil, ErrInvalidRate
	case installments <= 0:
		return nil, ErrInvalidInstallments
	case termDays < installments:
		return nil, ErrInvalidTerm
	}

	periodDays := termDays / installments
	// Per-period rate as a fraction; float64 is used only for the fixed
	// annuity payment constant, every component stays integer.
	r := float64(rateBps) * float64(periodDays) / float64(bpsDenom)

	var payment int64
	if r == 0 {
		payment = ceilDiv(principal, int64(installments))
	} else {
		factor := math.Pow(1+r, float64(installments))
		payment = int64(math.Round(float64(principal) * r * factor / (factor - 1)))
	}

	out := make([]loan.Installment, 0, installments)
	balance := principal
	due := start.UTC()
	for i := 1; i <= installments; i++ {
		due = due.AddDate(0, 0, periodDays)
		interest := roundDiv(balance*int64(rateBps)*int64(periodDays), bpsDenom)
		principalPart := payment - interest
		if principalPart < 0 {
			principalPart = 0
		}
		if i == installments || principalPart > balance {
			principalPart = balance
		}
		out = append(out, loan.Installment{
			Idx:       i,
			DueDate:   due,
			Principal: principalPart,
			Interest:  interest,
			Total:     principalPart + interest,
			Status:    loan.InstallmentPending,
		})
		balance -= principalPart
	}
	return out, nil
}

func ceilDiv(a, b int64) int64 { return (a + b - 1) / b }

// roundDiv divides rounding half away from zero; operands here are
// always non-negative.
func roundDiv(a, b int64) int64 { return (a + b/2) / b }
