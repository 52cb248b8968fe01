package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// EntryStatus represents the lifecycle state of a journal entry.
type EntryStatus string

const (
	StatusAutoConfirmed      EntryStatus = "auto-confirmed"
	StatusPendingReview      EntryStatus = "pending-review"
	StatusUserConfirmed      EntryStatus = "user-confirmed"
	StatusUserCorrected      EntryStatus = "user-corrected"
	StatusVoided             EntryStatus = "voided"
	StatusBootstrapConfirmed EntryStatus = "bootstrap-confirmed"
)

// Leg is a single row in journal.csv (one side of a double-entry).
type Leg struct {
	EntryID      string    // "YYYY-MM-NNNx" where x = a,b,c...
	Date         time.Time //nolint:revive // plain field name is clearest
	AccountID    int
	Description  string
	Debit        decimal.Decimal // zero if credit side
	Credit       decimal.Decimal // zero if debit side
	Counterparty string
	Reference    string
	Status       EntryStatus
	Notes        string
}

// EntryGroup returns the base entry ID (without leg suffix).
// "2025-01-001a" -> "2025-01-001"
func (l Leg) EntryGroup() string {
	i := len(l.EntryID)
	for i > 0 && l.EntryID[i-1] >= 'a' && l.EntryID[i-1] <= 'z' {
		i--
	}
	return l.EntryID[:i]
}

// Signed returns debit minus credit, the raw posting direction of the leg.
func (l Leg) Signed() decimal.Decimal {
	return l.Debit.Sub(l.Credit)
}

// Counts reports whether the leg contributes to balances.
func (l Leg) Counts() bool {
	return l.Status != StatusVoided
}

// LineItemTotals maps an account ID to its signed (debit minus credit) total for a period.
type LineItemTotals map[int]decimal.Decimal

// Get returns the total for an account, zero when absent.
func (t LineItemTotals) Get(accountID int) decimal.Decimal {
	if amt, ok := t[accountID]; ok {
		return amt
	}
	return decimal.Zero
}

// Add folds amount into the account's running total.
func (t LineItemTotals) Add(accountID int, amount decimal.Decimal) {
	t[accountID] = t.Get(accountID).Add(amount)
}
