package sheet

import (
	"github.com/shopspring/decimal"

	"github.com/cleared-dev/finstat/internal/model"
	"github.com/cleared-dev/finstat/internal/tree"
)

// ratioPlaces is the precision of the revenue-to-cost ratio.
const ratioPlaces = 4

// Processor is the statement-specific transform applied after aggregation.
// Implementations must not modify their input.
type Processor interface {
	Process(roots []*tree.Node) []*tree.Node
}

// Identity leaves the forest untouched.
type Identity struct{}

// Process returns a copy of the root slice.
func (Identity) Process(roots []*tree.Node) []*tree.Node {
	out := make([]*tree.Node, len(roots))
	copy(out, roots)
	return out
}

// IncomeCodes names the roots the income processor reads and the nodes it
// synthesizes.
type IncomeCodes struct {
	Revenue       string `yaml:"revenue_code"`
	Cost          string `yaml:"cost_code"`
	Expense       string `yaml:"expense_code"`
	NetIncome     string `yaml:"net_income_code"`
	NetIncomeName string `yaml:"net_income_name"`
	Ratio         string `yaml:"ratio_code"`
	RatioName     string `yaml:"ratio_name"`
}

// DefaultIncomeCodes matches the default chart of accounts.
func DefaultIncomeCodes() IncomeCodes {
	return IncomeCodes{
		Revenue:       "4",
		Cost:          "5",
		Expense:       "6",
		NetIncome:     "NI",
		NetIncomeName: "Net income",
		Ratio:         "RATIO",
		RatioName:     "Revenue to cost and expense ratio",
	}
}

// IncomeProcessor appends a net-income node (revenue - cost - expense) and a
// revenue/(cost+expense) ratio node to an income-statement forest.
type IncomeProcessor struct {
	Codes IncomeCodes
}

// Process implements Processor.
func (p IncomeProcessor) Process(roots []*tree.Node) []*tree.Node {
	revenue := amountOf(roots, p.Codes.Revenue)
	cost := amountOf(roots, p.Codes.Cost)
	expense := amountOf(roots, p.Codes.Expense)

	out := make([]*tree.Node, len(roots), len(roots)+2)
	copy(out, roots)
	return append(out,
		synthetic(p.Codes.NetIncome, p.Codes.NetIncomeName, revenue.Sub(cost).Sub(expense), tree.KindSynthetic),
		synthetic(p.Codes.Ratio, p.Codes.RatioName, IncomeRatio(revenue, cost, expense), tree.KindRatio),
	)
}

// IncomeRatio returns revenue / (cost + expense), or zero when the divisor is zero.
func IncomeRatio(revenue, cost, expense decimal.Decimal) decimal.Decimal {
	divisor := cost.Add(expense)
	if divisor.IsZero() {
		return decimal.Zero
	}
	return revenue.DivRound(divisor, ratioPlaces)
}

// ProcessorFor selects the processor for a statement type.
func ProcessorFor(t Type, codes IncomeCodes) Processor {
	if t == TypeIncomeStatement {
		return IncomeProcessor{Codes: codes}
	}
	return Identity{}
}

func amountOf(roots []*tree.Node, code string) decimal.Decimal {
	if code == "" {
		return decimal.Zero
	}
	if n := tree.FindIn(roots, code); n != nil {
		return n.Amount
	}
	return decimal.Zero
}

func synthetic(code, name string, amount decimal.Decimal, kind tree.Kind) *tree.Node {
	n := &tree.Node{
		Account: model.Account{
			Code:       code,
			ParentCode: code,
			RootCode:   code,
			Name:       name,
		},
		Amount: amount,
		Kind:   kind,
	}
	// Net income closes into equity and is credit-normal.
	if kind == tree.KindSynthetic {
		n.Account.Type = model.AccountTypeEquity
	}
	return n
}
