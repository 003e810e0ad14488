// Package pricing maps a borrower risk score to loan terms. The tier
// table is policy, injected at startup; the engine never hard-codes
// rates.
package pricing

import (
	"errors"
	"fmt"
	"sort"
)

var ErrInvalidScore = errors.New("score must be within [0,1000]")

// Tier applies to every score >= MinScore not claimed by a higher tier.
type Tier struct {
	MinScore int
	RateBps  int
	TermDays int
}

type Terms struct {
	RateBps  int
	TermDays int
	Eligible bool
}

// Table is an immutable tier policy. Scores below the lowest tier's
// MinScore are ineligible.
type Table struct {
	tiers []Tier // sorted descending by MinScore
}

func NewTable(tiers []Tier) (*Table, error) {
	if len(tiers) == 0 {
		return nil, errors.New("pricing: empty tier table")
	}
	sorted := make([]Tier, len(tiers))
	copy(sorted, tiers)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].MinScore > sorted[j].MinScore })
	for i, t := range sorted {
		if t.MinScore < 0 || t.MinScore > 1000 {
			return nil, fmt.Errorf("pricing: tier %d min score %d out of range", i, t.MinScore)
		}
		if t.RateBps <= 0 || t.TermDays <= 0 {
			return nil, fmt.Errorf("pricing: tier %d has non-positive rate or term", i)
		}
		if i > 0 && sorted[i-1].MinScore == t.MinScore {
			return nil, fmt.Errorf("pricing: duplicate tier at min score %d", t.MinScore)
		}
	}
	return &Table{tiers: sorted}, nil
}

// Default is the launch policy: 750+ prime, 650+ standard, 500+ starter,
// below 500 ineligible.
func Default() *Table {
	t, _ := NewTable([]Tier{
		{MinScore: 750, RateBps: 500, TermDays: 730},
		{MinScore: 650, RateBps: 700, TermDays: 540},
		{MinScore: 500, RateBps: 1000, TermDays: 365},
	})
	return t
}

// DeriveTerms is pure and deterministic. A score outside [0,1000] is a
// caller contract violation, not an ineligible borrower.
func (t *Table) DeriveTerms(score int) (Terms, error) {
	if score < 0 || score > 1000 {
		return Terms{}, ErrInvalidScore
	}
	for _, tier := range t.tiers {
		if score >= tier.MinScore {
			return Terms{RateBps: tier.RateBps, TermDays: tier.TermDays, Eligible: true}, nil
		}
	}
	return Terms{}, nil
}
