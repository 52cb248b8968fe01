package sheet

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cleared-dev/finstat/internal/tree"
)

func TestNewAccountMap_PreOrder(t *testing.T) {
	m := NewAccountMap(balanceForest(), "1")

	assert.Equal(t, []string{"1", "1101", "1102", "2", "2101", "3"}, m.Codes())
	assert.Equal(t, 6, m.Len())
}

func TestNewAccountMap_Percentages(t *testing.T) {
	m := NewAccountMap(balanceForest(), "1")

	cash, ok := m.Get("1101")
	require.True(t, ok)
	assert.Equal(t, "600", cash.Amount.String())
	require.True(t, cash.Percentage.Valid)
	assert.Equal(t, "60", cash.Percentage.Decimal.String())

	total, _ := m.Get("1")
	assert.Equal(t, "100", total.Percentage.Decimal.String())
}

func TestNewAccountMap_NoBase(t *testing.T) {
	m := NewAccountMap(balanceForest(), "")
	cash, _ := m.Get("1101")
	assert.False(t, cash.Percentage.Valid)

	m = NewAccountMap(balanceForest(), "missing")
	cash, _ = m.Get("1101")
	assert.False(t, cash.Percentage.Valid)
}

func TestNewAccountMap_RatioHasNoPercentage(t *testing.T) {
	roots := IncomeProcessor{Codes: scenarioCodes()}.Process(incomeForest())
	m := NewAccountMap(roots, "REV")

	ratio, ok := m.Get("RATIO")
	require.True(t, ok)
	assert.Equal(t, tree.KindRatio, ratio.Kind)
	assert.False(t, ratio.Percentage.Valid)

	ni, _ := m.Get("NI")
	assert.Equal(t, "30", ni.Percentage.Decimal.String())
}

func TestAccountMap_MissingCode(t *testing.T) {
	var m AccountMap
	_, ok := m.Get("1101")
	assert.False(t, ok)
	assert.True(t, m.Amount("1101").IsZero())
	assert.Empty(t, m.Codes())
}

func TestAccountMap_Merge(t *testing.T) {
	bs := NewAccountMap(balanceForest(), "1")
	is := NewAccountMap(IncomeProcessor{Codes: scenarioCodes()}.Process(incomeForest()), "REV")

	merged := bs.Merge(is)

	assert.Equal(t, bs.Len()+is.Len(), merged.Len())
	assert.Equal(t, "600", merged.Amount("1101").String())
	assert.Equal(t, "3000", merged.Amount("NI").String())
	assert.Equal(t, 6, bs.Len(), "inputs are untouched")
	assert.Equal(t, 5, is.Len())
}

func TestAccountMap_MergeCollisionOtherWins(t *testing.T) {
	a := NewAccountMap([]*tree.Node{{Account: acct(1, "X", "X", "From A", "", true), Amount: dec("1")}}, "")
	b := NewAccountMap([]*tree.Node{{Account: acct(2, "X", "X", "From B", "", true), Amount: dec("2")}}, "")

	merged := a.Merge(b)

	e, _ := merged.Get("X")
	assert.Equal(t, "From B", e.Account.Name)
	assert.Equal(t, []string{"X"}, a.Collisions(b))
	orig, _ := a.Get("X")
	assert.Equal(t, "From A", orig.Account.Name)
}

func TestDelta(t *testing.T) {
	current := NewAccountMap([]*tree.Node{
		{Account: acct(1, "1101", "1101", "Cash", "", true), Amount: dec("900")},
		{Account: acct(2, "1102", "1102", "Receivables", "", true), Amount: dec("100")},
	}, "1101")
	opening := NewAccountMap([]*tree.Node{
		{Account: acct(1, "1101", "1101", "Cash", "", true), Amount: dec("600")},
		{Account: acct(3, "1103", "1103", "Inventory", "", true), Amount: dec("50")},
	}, "")

	d := Delta(current, opening)

	assert.Equal(t, []string{"1101", "1102", "1103"}, d.Codes())
	assert.Equal(t, "300", d.Amount("1101").String())
	assert.Equal(t, "100", d.Amount("1102").String())
	assert.Equal(t, "-50", d.Amount("1103").String())
	cash, _ := d.Get("1101")
	assert.False(t, cash.Percentage.Valid)
	assert.Equal(t, "900", current.Amount("1101").String(), "current is untouched")
}
