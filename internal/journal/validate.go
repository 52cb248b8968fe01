package journal

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/cleared-dev/finstat/internal/model"
)

// ValidationError describes a single invariant violation.
type ValidationError struct {
	Invariant   int
	EntryID     string
	Description string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("invariant %d [%s]: %s", e.Invariant, e.EntryID, e.Description)
}

// AccountChecker tests whether an account ID exists in the chart of accounts.
type AccountChecker interface {
	Exists(id int) bool
}

var hundred = decimal.NewFromInt(100)

// ValidateLegs enforces 5 invariants on a set of journal legs for a given
// month. Voided legs only need a known account and a date in the month.
func ValidateLegs(legs []model.Leg, accounts AccountChecker, year, month int) []ValidationError {
	var errs []ValidationError

	// Group legs by entry.
	groups := make(map[string][]model.Leg)
	var groupOrder []string
	for _, leg := range legs {
		if !leg.Counts() {
			continue
		}
		g := leg.EntryGroup()
		if _, seen := groups[g]; !seen {
			groupOrder = append(groupOrder, g)
		}
		groups[g] = append(groups[g], leg)
	}

	// Invariant 1: Entry groups balance (sum(debits) == sum(credits) per group).
	for _, g := range groupOrder {
		totalDebit := decimal.Zero
		totalCredit := decimal.Zero
		for _, leg := range groups[g] {
			totalDebit = totalDebit.Add(leg.Debit)
			totalCredit = totalCredit.Add(leg.Credit)
		}
		if !totalDebit.Equal(totalCredit) {
			errs = append(errs, ValidationError{
				Invariant:   1,
				EntryID:     g,
				Description: fmt.Sprintf("debits (%s) != credits (%s)", totalDebit.StringFixed(2), totalCredit.StringFixed(2)),
			})
		}
	}

	for _, leg := range legs {
		// Invariant 2: Exactly one of debit/credit per row.
		hasDebit := !leg.Debit.IsZero()
		hasCredit := !leg.Credit.IsZero()
		if hasDebit == hasCredit {
			errs = append(errs, ValidationError{
				Invariant:   2,
				EntryID:     leg.EntryID,
				Description: "leg must have exactly one of debit or credit",
			})
		}

		// Invariant 3: Valid account references.
		if !accounts.Exists(leg.AccountID) {
			errs = append(errs, ValidationError{
				Invariant:   3,
				EntryID:     leg.EntryID,
				Description: fmt.Sprintf("unknown account %d", leg.AccountID),
			})
		}

		// Invariant 4: Date within month.
		if leg.Date.Year() != year || int(leg.Date.Month()) != month {
			errs = append(errs, ValidationError{
				Invariant:   4,
				EntryID:     leg.EntryID,
				Description: fmt.Sprintf("date %s not in %04d-%02d", leg.Date.Format(dateFormat), year, month),
			})
		}

		// Invariant 5: Exact decimals, no more than 2 decimal places.
		if !twoPlaces(leg.Debit) {
			errs = append(errs, ValidationError{
				Invariant:   5,
				EntryID:     leg.EntryID,
				Description: fmt.Sprintf("debit %s has more than 2 decimal places", leg.Debit),
			})
		}
		if !twoPlaces(leg.Credit) {
			errs = append(errs, ValidationError{
				Invariant:   5,
				EntryID:     leg.EntryID,
				Description: fmt.Sprintf("credit %s has more than 2 decimal places", leg.Credit),
			})
		}
	}

	return errs
}

func twoPlaces(d decimal.Decimal) bool {
	return d.IsZero() || d.Mul(hundred).Equal(d.Mul(hundred).Floor())
}
