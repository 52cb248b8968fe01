package cashflow

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/cleared-dev/finstat/internal/model"
	"github.com/cleared-dev/finstat/internal/sheet"
	"github.com/cleared-dev/finstat/internal/tree"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

// leaf is a flat root node carrying an already aggregated amount.
func leaf(code string, debit bool, amount string) *tree.Node {
	return &tree.Node{
		Account: model.Account{Code: code, ParentCode: code, Name: code, Debit: debit},
		Amount:  dec(amount),
	}
}

func accountMap(nodes ...*tree.Node) sheet.AccountMap {
	return sheet.NewAccountMap(nodes, "")
}

func mustMapping(t *testing.T, sections ...MappingNode) Mapping {
	t.Helper()
	m, err := NewMapping("test", sections, Reconciliation{})
	require.NoError(t, err)
	return m
}

func rowCodes(rows []sheet.Row) []string {
	out := make([]string, len(rows))
	for i, r := range rows {
		out[i] = r.Code
	}
	return out
}

func amounts(rows []sheet.Row) map[string]string {
	out := make(map[string]string, len(rows))
	for _, r := range rows {
		out[r.Code] = r.Amount.Decimal.String()
	}
	return out
}
