package sheet

import (
	"strconv"

	"github.com/shopspring/decimal"
)

// Map projects an account map onto a layout. Rows follow the layout order
// exactly; a code missing from the map yields a row without amount. A row
// repeating the id, code and name of an earlier row is dropped.
func Map(m AccountMap, l Layout) []Row {
	rows := make([]Row, 0, l.Len())
	seen := make(map[string]bool, l.Len())
	for _, lr := range l.rows {
		r := mapRow(m, lr)
		k := r.key()
		if seen[k] {
			continue
		}
		seen[k] = true
		rows = append(rows, r)
	}
	return rows
}

func mapRow(m AccountMap, lr LayoutRow) Row {
	r := Row{Code: lr.Code, Name: lr.Label, Indent: lr.Indent, Heading: lr.Heading}
	if lr.Heading {
		return r
	}
	e, ok := m.Get(lr.Code)
	if !ok {
		if r.Name == "" {
			r.Name = lr.Code
		}
		return r
	}
	if r.Name == "" {
		r.Name = e.Account.Name
	}
	debit := e.Account.Debit
	r.ID = e.Account.ID
	r.Amount = decimal.NewNullDecimal(e.Amount)
	r.Percentage = e.Percentage
	r.Debit = &debit
	return r
}

// MapComparative maps current and prior maps onto the same layout. Rows
// are resolved per layout row, so an account present in only one period
// still yields a single row. Rows whose amount and percentage are zero or
// absent in both periods are omitted, and so are duplicates.
func MapComparative(current, prior AccountMap, l Layout) []ComparativeRow {
	out := make([]ComparativeRow, 0, l.Len())
	seen := make(map[string]bool, l.Len())
	for _, lr := range l.rows {
		cur := mapRow(current, lr)
		prev := mapRow(prior, lr)
		id := cur
		if !cur.Amount.Valid && prev.Amount.Valid {
			id = prev
		}
		k := id.key()
		if seen[k] {
			continue
		}
		seen[k] = true
		cr := pair(id, cur.Cell(), prev.Cell())
		if cr.Suppressed() {
			continue
		}
		out = append(out, cr)
	}
	return out
}

// Comparative pairs single-period rows by code, keeping the current order;
// codes only present in prior follow at the end. The suppression rule of
// MapComparative applies.
func Comparative(current, prior []Row) []ComparativeRow {
	priorByCode := make(map[string]Row, len(prior))
	for _, p := range prior {
		if _, ok := priorByCode[p.Code]; !ok {
			priorByCode[p.Code] = p
		}
	}

	out := make([]ComparativeRow, 0, len(current))
	seen := make(map[string]bool, len(current))
	add := func(cr ComparativeRow) {
		if seen[cr.Code] {
			return
		}
		seen[cr.Code] = true
		if !cr.Suppressed() {
			out = append(out, cr)
		}
	}
	for _, r := range current {
		add(pair(r, r.Cell(), priorByCode[r.Code].Cell()))
	}
	for _, p := range prior {
		add(pair(p, Cell{}, p.Cell()))
	}
	return out
}

func pair(r Row, cur, prev Cell) ComparativeRow {
	return ComparativeRow{
		ID:      r.ID,
		Code:    r.Code,
		Name:    r.Name,
		Indent:  r.Indent,
		Debit:   r.Debit,
		Heading: r.Heading,
		Current: cur,
		Prior:   prev,
	}
}

func rowKey(id int, code, name string) string {
	return strconv.Itoa(id) + "\x00" + code + "\x00" + name
}
