// Package sheet turns aggregated account forests into statutory statements:
// per-statement post-processing, flattened account maps, and the ordered
// display rows dictated by a layout table.
package sheet

import (
	"fmt"
	"strings"

	"github.com/cleared-dev/finstat/internal/model"
	"github.com/cleared-dev/finstat/internal/tree"
)

// Type identifies a financial statement.
type Type string

const (
	TypeBalanceSheet    Type = "balance_sheet"
	TypeIncomeStatement Type = "income_statement"
	TypeCashFlow        Type = "cash_flow"
)

// Types lists every supported statement in display order.
var Types = []Type{TypeBalanceSheet, TypeIncomeStatement, TypeCashFlow}

// ParseType accepts the canonical name, a dashed variant, or a short alias.
func ParseType(s string) (Type, error) {
	switch strings.ReplaceAll(strings.ToLower(strings.TrimSpace(s)), "-", "_") {
	case "balance_sheet", "bs":
		return TypeBalanceSheet, nil
	case "income_statement", "is", "pl", "profit_and_loss":
		return TypeIncomeStatement, nil
	case "cash_flow", "cf":
		return TypeCashFlow, nil
	}
	return "", fmt.Errorf("unknown statement type %q", s)
}

// Valid reports whether t is a supported statement.
func (t Type) Valid() bool {
	switch t {
	case TypeBalanceSheet, TypeIncomeStatement, TypeCashFlow:
		return true
	}
	return false
}

// Title returns a human-readable statement name.
func (t Type) Title() string {
	switch t {
	case TypeBalanceSheet:
		return "Balance Sheet"
	case TypeIncomeStatement:
		return "Income Statement"
	case TypeCashFlow:
		return "Cash Flow Statement"
	}
	return string(t)
}

// Includes reports whether root accounts of type at belong to the statement.
// The cash-flow statement is derived and owns no accounts.
func (t Type) Includes(at model.AccountType) bool {
	switch t {
	case TypeBalanceSheet:
		return at == model.AccountTypeAsset || at == model.AccountTypeLiability || at == model.AccountTypeEquity
	case TypeIncomeStatement:
		return at == model.AccountTypeRevenue || at == model.AccountTypeExpense
	}
	return false
}

// Select returns the roots that belong to the statement, in forest order.
func (t Type) Select(roots []*tree.Node) []*tree.Node {
	var out []*tree.Node
	for _, r := range roots {
		if t.Includes(r.Account.Type) {
			out = append(out, r)
		}
	}
	return out
}
