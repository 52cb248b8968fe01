package tree

import "github.com/cleared-dev/finstat/internal/model"

// Forest is the result of building a chart of accounts. Roots holds one tree
// per top-level statement category; the remaining fields list the account
// codes that could not be attached.
type Forest struct {
	Roots      []*Node
	Orphans    []string // parent code not present in the working set
	Cycles     []string // parent pointers never reach a root
	Duplicates []string // repeated code, first occurrence kept
}

// Complete reports whether every account landed in the forest.
func (f Forest) Complete() bool {
	return len(f.Orphans) == 0 && len(f.Cycles) == 0 && len(f.Duplicates) == 0
}

// Build turns flat account records into a forest. Roots and children keep
// the order of the input. Accounts whose parent cannot be resolved are left
// out of the forest and reported instead.
func Build(accounts []model.Account) Forest {
	var f Forest

	index := make(map[string]*Node, len(accounts))
	nodes := make([]*Node, 0, len(accounts))
	for _, a := range accounts {
		if _, dup := index[a.Code]; dup {
			f.Duplicates = append(f.Duplicates, a.Code)
			continue
		}
		n := &Node{Account: a}
		index[a.Code] = n
		nodes = append(nodes, n)
	}

	var detached []*Node
	for _, n := range nodes {
		if n.Account.IsRoot() {
			f.Roots = append(f.Roots, n)
			continue
		}
		parent, ok := index[n.Account.ParentCode]
		if !ok {
			f.Orphans = append(f.Orphans, n.Code())
			detached = append(detached, n)
			continue
		}
		parent.Children = append(parent.Children, n)
	}

	reached := make(map[*Node]bool, len(nodes))
	mark := func(n *Node, _ int) bool {
		if reached[n] {
			return false
		}
		reached[n] = true
		return true
	}
	for _, r := range f.Roots {
		r.Walk(mark)
	}
	for _, o := range detached {
		o.Walk(mark)
	}
	for _, n := range nodes {
		if !reached[n] {
			f.Cycles = append(f.Cycles, n.Code())
		}
	}

	return f
}
