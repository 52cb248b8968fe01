// Package tree builds chart-of-accounts forests from flat account records and
// aggregates period totals bottom-up under debit/credit sign conventions.
package tree

import (
	"github.com/shopspring/decimal"

	"github.com/cleared-dev/finstat/internal/model"
)

// Kind distinguishes real accounts from nodes synthesized after aggregation.
type Kind int

const (
	KindAccount Kind = iota
	KindSynthetic
	KindRatio
)

// Node is an account enriched with an aggregated amount. A node owns its
// children exclusively; it never appears under two parents.
type Node struct {
	Account  model.Account
	Amount   decimal.Decimal
	Kind     Kind
	Children []*Node
}

// Code returns the account code of the node.
func (n *Node) Code() string {
	return n.Account.Code
}

// Walk visits n and its descendants in pre-order. Returning false from fn
// skips the children of the visited node.
func (n *Node) Walk(fn func(node *Node, depth int) bool) {
	n.walk(fn, 0)
}

func (n *Node) walk(fn func(*Node, int) bool, depth int) {
	if !fn(n, depth) {
		return
	}
	for _, c := range n.Children {
		c.walk(fn, depth+1)
	}
}

// Find returns the first node with the given code in pre-order, or nil.
func (n *Node) Find(code string) *Node {
	var found *Node
	n.Walk(func(node *Node, _ int) bool {
		if found != nil {
			return false
		}
		if node.Code() == code {
			found = node
			return false
		}
		return true
	})
	return found
}

// FindIn searches every root of a forest.
func FindIn(roots []*Node, code string) *Node {
	for _, r := range roots {
		if n := r.Find(code); n != nil {
			return n
		}
	}
	return nil
}

func childrenOf(n *Node) []*Node {
	return n.Children
}
