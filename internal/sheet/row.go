package sheet

import "github.com/shopspring/decimal"

// dash renders an absent value.
const dash = "-"

// Cell is one period's amount and percentage in a display row.
type Cell struct {
	Amount     decimal.NullDecimal
	Percentage decimal.NullDecimal
}

// Blank reports whether the cell renders as zeros or dashes only.
func (c Cell) Blank() bool {
	return blank(c.Amount) && blank(c.Percentage)
}

// AmountText renders the amount with two decimals, or a dash.
func (c Cell) AmountText() string {
	if !c.Amount.Valid {
		return dash
	}
	return c.Amount.Decimal.StringFixed(2)
}

// PercentText renders the percentage as "NN.NN%", or a dash.
func (c Cell) PercentText() string {
	if !c.Percentage.Valid {
		return dash
	}
	return c.Percentage.Decimal.StringFixed(percentPlaces) + "%"
}

func blank(d decimal.NullDecimal) bool {
	return !d.Valid || d.Decimal.IsZero()
}

// Row is a single-period display row.
type Row struct {
	ID         int
	Code       string
	Name       string
	Amount     decimal.NullDecimal
	Percentage decimal.NullDecimal
	Indent     int
	Debit      *bool
	Heading    bool
}

// Cell returns the row's amount and percentage.
func (r Row) Cell() Cell {
	return Cell{Amount: r.Amount, Percentage: r.Percentage}
}

func (r Row) key() string {
	return rowKey(r.ID, r.Code, r.Name)
}

// ComparativeRow pairs a row with its prior-period values.
type ComparativeRow struct {
	ID      int
	Code    string
	Name    string
	Indent  int
	Debit   *bool
	Heading bool
	Current Cell
	Prior   Cell
}

// Suppressed reports whether the row carries nothing in either period.
// Headings are never suppressed.
func (r ComparativeRow) Suppressed() bool {
	return !r.Heading && r.Current.Blank() && r.Prior.Blank()
}
