package sheet

import (
	"github.com/shopspring/decimal"

	"github.com/cleared-dev/finstat/internal/model"
	"github.com/cleared-dev/finstat/internal/tree"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func acct(id int, code, parent, name string, typ model.AccountType, debit bool) model.Account {
	return model.Account{ID: id, Code: code, ParentCode: parent, Name: name, Type: typ, Debit: debit}
}

// incomeForest is the REV/COST/EXP scenario: revenue 10000 credited, cost
// 4000 and expense 3000 debited.
func incomeForest() []*tree.Node {
	f := tree.Build([]model.Account{
		acct(1, "REV", "REV", "Revenue", model.AccountTypeRevenue, false),
		acct(2, "COST", "COST", "Cost", model.AccountTypeExpense, true),
		acct(3, "EXP", "EXP", "Expense", model.AccountTypeExpense, true),
	})
	totals := model.LineItemTotals{1: dec("-10000"), 2: dec("4000"), 3: dec("3000")}
	return tree.AggregateAll(f.Roots, totals, 1)
}

func scenarioCodes() IncomeCodes {
	codes := DefaultIncomeCodes()
	codes.Revenue = "REV"
	codes.Cost = "COST"
	codes.Expense = "EXP"
	return codes
}

// balanceForest aggregates a small balance sheet: cash 600, receivables 400,
// payables 300, equity 700.
func balanceForest() []*tree.Node {
	f := tree.Build([]model.Account{
		acct(1, "1", "1", "Assets", model.AccountTypeAsset, true),
		acct(1101, "1101", "1", "Cash", model.AccountTypeAsset, true),
		acct(1102, "1102", "1", "Receivables", model.AccountTypeAsset, true),
		acct(2, "2", "2", "Liabilities", model.AccountTypeLiability, false),
		acct(2101, "2101", "2", "Payables", model.AccountTypeLiability, false),
		acct(3, "3", "3", "Equity", model.AccountTypeEquity, false),
	})
	totals := model.LineItemTotals{1101: dec("600"), 1102: dec("400"), 2101: dec("-300"), 3: dec("-700")}
	return tree.AggregateAll(f.Roots, totals, 1)
}
