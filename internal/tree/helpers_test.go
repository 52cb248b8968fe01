package tree

import (
	"github.com/shopspring/decimal"

	"github.com/cleared-dev/finstat/internal/model"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func acct(id int, code, parent string, debit bool) model.Account {
	return model.Account{ID: id, Code: code, ParentCode: parent, Name: code, Debit: debit}
}

func codes(nodes []*Node) []string {
	out := make([]string, len(nodes))
	for i, n := range nodes {
		out[i] = n.Code()
	}
	return out
}
