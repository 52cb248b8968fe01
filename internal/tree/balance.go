package tree

import "github.com/shopspring/decimal"

// Balance sums aggregated root amounts by normal side.
type Balance struct {
	Debit  decimal.Decimal
	Credit decimal.Decimal
}

// Difference returns debits minus credits.
func (b Balance) Difference() decimal.Decimal {
	return b.Debit.Sub(b.Credit)
}

// Balanced reports whether debits equal credits.
func (b Balance) Balanced() bool {
	return b.Difference().IsZero()
}

// TrialBalance totals the account roots of an aggregated forest. Synthetic
// and ratio nodes are ignored.
func TrialBalance(roots []*Node) Balance {
	b := Balance{Debit: decimal.Zero, Credit: decimal.Zero}
	for _, r := range roots {
		if r.Kind != KindAccount {
			continue
		}
		if r.Account.Debit {
			b.Debit = b.Debit.Add(r.Amount)
		} else {
			b.Credit = b.Credit.Add(r.Amount)
		}
	}
	return b
}
