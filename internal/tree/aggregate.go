package tree

import (
	"github.com/shopspring/decimal"

	"github.com/cleared-dev/finstat/internal/model"
)

// Aggregate returns a new tree whose amounts are the post-order sums of the
// line-item totals. Each node's amount is expressed on its own normal side:
// a debit-normal account keeps debit minus credit, a credit-normal account
// inverts it. A child whose normal side differs from its parent's (a contra
// account) is subtracted rather than added.
//
// Children outside companyID's scope are dropped from the result only after
// their parent's amount is final, so hidden accounts still count toward
// every ancestor. The input tree is not modified.
func Aggregate(root *Node, totals model.LineItemTotals, companyID int) *Node {
	return PostOrder(root, 0, childrenOf, func(n *Node, _ int, kids []*Node) *Node {
		out := &Node{Account: n.Account, Kind: n.Kind, Amount: n.Amount}
		if n.Kind == KindAccount {
			out.Amount = normalSide(n.Account, totals.Get(n.Account.ID))
		}
		for _, k := range kids {
			out.Amount = out.Amount.Add(contribution(n.Account, k))
		}
		for _, k := range kids {
			if k.Account.VisibleTo(companyID) {
				out.Children = append(out.Children, k)
			}
		}
		return out
	})
}

// AggregateAll aggregates every root of a forest. Roots outside
// companyID's scope are left out, the same way hidden children are.
func AggregateAll(roots []*Node, totals model.LineItemTotals, companyID int) []*Node {
	out := make([]*Node, 0, len(roots))
	for _, r := range roots {
		n := Aggregate(r, totals, companyID)
		if n.Account.VisibleTo(companyID) {
			out = append(out, n)
		}
	}
	return out
}

func normalSide(a model.Account, raw decimal.Decimal) decimal.Decimal {
	if a.Debit {
		return raw
	}
	return raw.Neg()
}

func contribution(parent model.Account, child *Node) decimal.Decimal {
	if child.Account.Debit == parent.Debit {
		return child.Amount
	}
	return child.Amount.Neg()
}
