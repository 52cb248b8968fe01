package sheet

import (
	"github.com/shopspring/decimal"

	"github.com/cleared-dev/finstat/internal/model"
	"github.com/cleared-dev/finstat/internal/tree"
)

// percentPlaces is the precision of stored percentages.
const percentPlaces = 2

var hundred = decimal.NewFromInt(100)

// Entry is a flattened snapshot of one aggregated node.
type Entry struct {
	Account    model.Account
	Amount     decimal.Decimal
	Kind       tree.Kind
	Percentage decimal.NullDecimal // share of the base amount, in percent
}

// AccountMap is a code-keyed, insertion-ordered projection of an aggregated
// forest. The zero value is an empty map. AccountMap values are never
// modified after construction; Merge and Delta return new maps.
type AccountMap struct {
	entries map[string]Entry
	order   []string
}

// NewAccountMap flattens roots in pre-order. Percentages are computed
// against the amount of the base code; they are null when base is empty,
// missing or zero, and always null for ratio nodes. If a code occurs twice
// the first occurrence is kept.
func NewAccountMap(roots []*tree.Node, base string) AccountMap {
	m := AccountMap{entries: make(map[string]Entry)}
	for _, r := range roots {
		r.Walk(func(n *tree.Node, _ int) bool {
			m.put(Entry{Account: n.Account, Amount: n.Amount, Kind: n.Kind}, false)
			return true
		})
	}

	baseEntry, ok := m.entries[base]
	if base == "" || !ok || baseEntry.Amount.IsZero() {
		return m
	}
	for code, e := range m.entries {
		if e.Kind == tree.KindRatio {
			continue
		}
		e.Percentage = decimal.NewNullDecimal(e.Amount.Mul(hundred).DivRound(baseEntry.Amount, percentPlaces))
		m.entries[code] = e
	}
	return m
}

func (m *AccountMap) put(e Entry, replace bool) {
	code := e.Account.Code
	if _, exists := m.entries[code]; exists {
		if replace {
			m.entries[code] = e
		}
		return
	}
	m.entries[code] = e
	m.order = append(m.order, code)
}

// Get returns the entry for code.
func (m AccountMap) Get(code string) (Entry, bool) {
	e, ok := m.entries[code]
	return e, ok
}

// Amount returns the amount for code, zero when absent.
func (m AccountMap) Amount(code string) decimal.Decimal {
	if e, ok := m.entries[code]; ok {
		return e.Amount
	}
	return decimal.Zero
}

// Codes returns the codes in insertion order.
func (m AccountMap) Codes() []string {
	out := make([]string, len(m.order))
	copy(out, m.order)
	return out
}

// Len returns the number of entries.
func (m AccountMap) Len() int {
	return len(m.order)
}

// Merge returns a new map holding the union of m and other. On a code
// collision the entry from other wins but keeps m's position.
func (m AccountMap) Merge(other AccountMap) AccountMap {
	out := AccountMap{entries: make(map[string]Entry, m.Len()+other.Len())}
	for _, code := range m.order {
		out.put(m.entries[code], false)
	}
	for _, code := range other.order {
		out.put(other.entries[code], true)
	}
	return out
}

// Collisions returns the codes present in both maps, in m's order.
func (m AccountMap) Collisions(other AccountMap) []string {
	var out []string
	for _, code := range m.order {
		if _, ok := other.entries[code]; ok {
			out = append(out, code)
		}
	}
	return out
}

// Delta returns the change from opening to current for every code in
// either map. Codes only present in opening appear negated. Percentages are
// not meaningful for movements and are left null.
func Delta(current, opening AccountMap) AccountMap {
	out := AccountMap{entries: make(map[string]Entry, current.Len())}
	for _, code := range current.order {
		e := current.entries[code]
		e.Amount = e.Amount.Sub(opening.Amount(code))
		e.Percentage = decimal.NullDecimal{}
		out.put(e, false)
	}
	for _, code := range opening.order {
		if _, ok := current.entries[code]; ok {
			continue
		}
		e := opening.entries[code]
		e.Amount = e.Amount.Neg()
		e.Percentage = decimal.NullDecimal{}
		out.put(e, false)
	}
	return out
}
