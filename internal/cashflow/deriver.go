package cashflow

import (
	"github.com/shopspring/decimal"

	"github.com/cleared-dev/finstat/internal/sheet"
	"github.com/cleared-dev/finstat/internal/tree"
)

// Deriver evaluates a mapping against statement maps.
type Deriver struct {
	mapping Mapping
}

// NewDeriver returns a deriver for m.
func NewDeriver(m Mapping) *Deriver {
	return &Deriver{mapping: m}
}

// Mapping returns the mapping the deriver evaluates.
func (d *Deriver) Mapping() Mapping {
	return d.mapping
}

// evaluation is the result of one mapping node: its own row and the rows
// of the node and all of its descendants, in output order.
type evaluation struct {
	row  sheet.Row
	rows []sheet.Row
}

// Derive merges bs and is (is wins on a shared code) and evaluates every
// section. Sections appear in declared order; within a section rows follow
// declared child order, a node placed "after" following its descendants.
// Codes missing from both maps contribute zero. Neither input is modified.
func (d *Deriver) Derive(bs, is sheet.AccountMap) []sheet.Row {
	ref := bs.Merge(is)

	var out []sheet.Row
	for i := range d.mapping.sections {
		ev := tree.PostOrder(&d.mapping.sections[i], 0, childNodes, func(n *MappingNode, depth int, kids []evaluation) evaluation {
			return evaluate(ref, n, depth, kids)
		})
		out = append(out, ev.rows...)
	}
	return out
}

func childNodes(n *MappingNode) []*MappingNode {
	out := make([]*MappingNode, len(n.Children))
	for i := range n.Children {
		out[i] = &n.Children[i]
	}
	return out
}

func evaluate(ref sheet.AccountMap, n *MappingNode, depth int, kids []evaluation) evaluation {
	var acc folder
	for _, code := range n.From {
		acc.fold(n.Reducer, contribution(ref, code, n.Debit))
	}
	for _, k := range kids {
		acc.fold(n.Reducer, k.row.Amount.Decimal)
	}

	debit := n.Debit
	row := sheet.Row{
		Code:   n.Code,
		Name:   n.Name,
		Amount: decimal.NewNullDecimal(acc.total),
		Indent: depth,
		Debit:  &debit,
	}

	rows := make([]sheet.Row, 0, 1+len(kids))
	if n.Position != PositionAfter {
		rows = append(rows, row)
	}
	for _, k := range kids {
		rows = append(rows, k.rows...)
	}
	if n.Position == PositionAfter {
		rows = append(rows, row)
	}
	return evaluation{row: row, rows: rows}
}

// contribution returns the amount of code as seen from a node declaring
// the given side: negated when the account's normal side differs.
func contribution(ref sheet.AccountMap, code string, debit bool) decimal.Decimal {
	e, ok := ref.Get(code)
	if !ok {
		return decimal.Zero
	}
	if e.Account.Debit != debit {
		return e.Amount.Neg()
	}
	return e.Amount
}

// folder seeds the total with the first contribution.
type folder struct {
	total  decimal.Decimal
	seeded bool
}

func (f *folder) fold(r Reducer, x decimal.Decimal) {
	if !f.seeded {
		f.total = x
		f.seeded = true
		return
	}
	f.total = r.Apply(f.total, x)
}

// Reconcile compares the sum of the reconciliation sections with the cash
// line. It returns the difference (sections minus cash) and whether a
// check is configured.
func (d *Deriver) Reconcile(rows []sheet.Row) (decimal.Decimal, bool) {
	rec := d.mapping.reconcile
	if !rec.Enabled() {
		return decimal.Zero, false
	}
	byCode := make(map[string]decimal.Decimal, len(rows))
	for _, r := range rows {
		if _, ok := byCode[r.Code]; !ok {
			byCode[r.Code] = r.Amount.Decimal
		}
	}
	sum := decimal.Zero
	for _, code := range rec.Sections {
		sum = sum.Add(byCode[code])
	}
	return sum.Sub(byCode[rec.Cash]), true
}
