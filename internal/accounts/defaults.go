package accounts

import (
	"strconv"

	"github.com/cleared-dev/finstat/internal/model"
)

type chartRow struct {
	code, parent, name string
	typ                model.AccountType
	contra             bool
}

// DefaultChart returns the shared default chart of accounts for an entity
// type. Account codes line up with the built-in statement layouts and the
// default cash-flow mapping.
func DefaultChart(entityType string) []model.Account {
	equity := []chartRow{
		{"3", "3", "Equity", model.AccountTypeEquity, false},
		{"3101", "3", "Share capital", model.AccountTypeEquity, false},
		{"3102", "3", "Retained earnings", model.AccountTypeEquity, false},
	}
	if entityType == "llc_single_member" {
		equity = []chartRow{
			{"3", "3", "Member's equity", model.AccountTypeEquity, false},
			{"3101", "3", "Member contributions", model.AccountTypeEquity, false},
			{"3102", "3", "Retained earnings", model.AccountTypeEquity, false},
		}
	}

	rows := []chartRow{
		{"1", "1", "Assets", model.AccountTypeAsset, false},
		{"11", "1", "Current assets", model.AccountTypeAsset, false},
		{"1101", "11", "Cash and bank", model.AccountTypeAsset, false},
		{"1102", "11", "Accounts receivable", model.AccountTypeAsset, false},
		{"1103", "11", "Inventory", model.AccountTypeAsset, false},
		{"12", "1", "Non-current assets", model.AccountTypeAsset, false},
		{"1201", "12", "Property and equipment", model.AccountTypeAsset, false},
		{"1202", "12", "Accumulated depreciation", model.AccountTypeAsset, true},
		{"2", "2", "Liabilities", model.AccountTypeLiability, false},
		{"21", "2", "Current liabilities", model.AccountTypeLiability, false},
		{"2101", "21", "Accounts payable", model.AccountTypeLiability, false},
		{"2102", "21", "Accrued liabilities", model.AccountTypeLiability, false},
		{"22", "2", "Non-current liabilities", model.AccountTypeLiability, false},
		{"2201", "22", "Long-term borrowings", model.AccountTypeLiability, false},
	}
	rows = append(rows, equity...)
	rows = append(rows,
		chartRow{"4", "4", "Revenue", model.AccountTypeRevenue, false},
		chartRow{"4101", "4", "Sales revenue", model.AccountTypeRevenue, false},
		chartRow{"4102", "4", "Other income", model.AccountTypeRevenue, false},
		chartRow{"5", "5", "Cost of revenue", model.AccountTypeExpense, false},
		chartRow{"5101", "5", "Cost of goods sold", model.AccountTypeExpense, false},
		chartRow{"6", "6", "Operating expenses", model.AccountTypeExpense, false},
		chartRow{"6101", "6", "Salaries and wages", model.AccountTypeExpense, false},
		chartRow{"6102", "6", "Rent", model.AccountTypeExpense, false},
		chartRow{"6103", "6", "Depreciation", model.AccountTypeExpense, false},
	)
	return buildChart(rows)
}

// buildChart derives ids, root codes and levels from the parent chain.
// Parents must precede their children.
func buildChart(rows []chartRow) []model.Account {
	byCode := make(map[string]model.Account, len(rows))
	out := make([]model.Account, 0, len(rows))
	for _, r := range rows {
		id, _ := strconv.Atoi(r.code)
		a := model.Account{
			ID:         id,
			Code:       r.code,
			ParentCode: r.parent,
			RootCode:   r.code,
			Name:       r.name,
			Type:       r.typ,
			Debit:      r.typ.DebitNormal() != r.contra,
			CompanyID:  model.SharedCompany,
			Level:      1,
		}
		if p, ok := byCode[r.parent]; ok && r.parent != r.code {
			a.RootCode = p.RootCode
			a.Level = p.Level + 1
		}
		if r.contra {
			a.Description = "Contra account"
		}
		byCode[a.Code] = a
		out = append(out, a)
	}
	return out
}
