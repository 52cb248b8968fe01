package sheet

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultLayouts(t *testing.T) {
	bs, err := DefaultLayout(TypeBalanceSheet)
	require.NoError(t, err)
	assert.Equal(t, TypeBalanceSheet, bs.Type())
	assert.Equal(t, "1", bs.Base())
	assert.NotEmpty(t, bs.Version())
	assert.True(t, bs.Rows()[0].Heading)

	is, err := DefaultLayout(TypeIncomeStatement)
	require.NoError(t, err)
	assert.Equal(t, "4", is.Base())
	codes := make([]string, 0, is.Len())
	for _, r := range is.Rows() {
		codes = append(codes, r.Code)
	}
	assert.Contains(t, codes, "NI")
	assert.Contains(t, codes, "RATIO")

	_, err = DefaultLayout(TypeCashFlow)
	assert.ErrorIs(t, err, ErrInvalidLayout)
}

func TestLayoutRowsAreCopies(t *testing.T) {
	l, err := DefaultLayout(TypeIncomeStatement)
	require.NoError(t, err)

	rows := l.Rows()
	rows[0].Code = "mutated"

	assert.NotEqual(t, "mutated", l.Rows()[0].Code)
}

func TestLoadLayout(t *testing.T) {
	src := `
type: income_statement
version: "2024.3"
base: "4"
rows:
  - code: "4"
    label: Revenue
  - code: "6"
    indent: 1
`
	l, err := LoadLayout(strings.NewReader(src))
	require.NoError(t, err)
	assert.Equal(t, "2024.3", l.Version())
	require.Equal(t, 2, l.Len())
	assert.Equal(t, LayoutRow{Code: "6", Indent: 1}, l.Rows()[1])
}

func TestLoadLayout_Invalid(t *testing.T) {
	tests := map[string]string{
		"bad yaml":         "rows: [",
		"unknown type":     "type: ledger\nrows: []\n",
		"cash flow layout": "type: cash_flow\nrows: []\n",
		"missing code":     "type: balance_sheet\nrows:\n  - label: Cash\n",
		"heading no label": "type: balance_sheet\nrows:\n  - heading: true\n",
		"negative indent":  "type: balance_sheet\nrows:\n  - code: \"1\"\n    indent: -1\n",
	}
	for name, src := range tests {
		_, err := LoadLayout(strings.NewReader(src))
		assert.ErrorIs(t, err, ErrInvalidLayout, name)
	}
}
