package tree

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cleared-dev/finstat/internal/model"
)

func TestAggregate_SumsChildren(t *testing.T) {
	f := Build([]model.Account{
		acct(1, "R", "R", true),
		acct(2, "A", "R", true),
		acct(3, "B", "R", true),
	})
	totals := model.LineItemTotals{2: dec("100"), 3: dec("50")}

	got := Aggregate(f.Roots[0], totals, 1)

	assert.Equal(t, "150", got.Amount.String())
	require.Len(t, got.Children, 2)
	assert.Equal(t, "100", got.Children[0].Amount.String())
	assert.Equal(t, "50", got.Children[1].Amount.String())
}

func TestAggregate_OwnTotalPlusChildren(t *testing.T) {
	f := Build([]model.Account{
		acct(1, "R", "R", true),
		acct(2, "A", "R", true),
		acct(3, "A1", "A", true),
	})
	totals := model.LineItemTotals{1: dec("5"), 2: dec("10"), 3: dec("20")}

	got := Aggregate(f.Roots[0], totals, 1)

	assert.Equal(t, "35", got.Amount.String())
	assert.Equal(t, "30", got.Children[0].Amount.String())
}

func TestAggregate_CreditNormalInvertsSign(t *testing.T) {
	f := Build([]model.Account{
		acct(4, "4", "4", false),
		acct(41, "41", "4", false),
	})
	// Raw totals are debit minus credit, so a credit posting is negative.
	totals := model.LineItemTotals{41: dec("-1200")}

	got := Aggregate(f.Roots[0], totals, 1)

	assert.Equal(t, "1200", got.Amount.String())
}

func TestAggregate_ContraAccountSubtracts(t *testing.T) {
	f := Build([]model.Account{
		acct(12, "12", "12", true),
		acct(1201, "1201", "12", true),
		acct(1202, "1202", "12", false), // accumulated depreciation
	})
	totals := model.LineItemTotals{1201: dec("1000"), 1202: dec("-300")}

	got := Aggregate(f.Roots[0], totals, 1)

	assert.Equal(t, "700", got.Amount.String())
	assert.Equal(t, "300", got.Children[1].Amount.String(), "contra account reports on its own side")
}

func TestAggregate_MissingTotalsDefaultToZero(t *testing.T) {
	f := Build([]model.Account{
		acct(1, "R", "R", true),
		acct(2, "A", "R", true),
	})

	got := Aggregate(f.Roots[0], nil, 1)

	assert.True(t, got.Amount.IsZero())
	assert.True(t, got.Children[0].Amount.IsZero())
}

func TestAggregate_FilterAfterAggregate(t *testing.T) {
	foreign := acct(3, "B", "R", true)
	foreign.CompanyID = 99
	accounts := []model.Account{
		acct(1, "R", "R", true),
		acct(2, "A", "R", true),
		foreign,
	}
	totals := model.LineItemTotals{2: dec("100"), 3: dec("50")}

	hidden := Aggregate(Build(accounts).Roots[0], totals, 1)
	visible := Aggregate(Build(accounts).Roots[0], totals, 99)

	assert.True(t, hidden.Amount.Equal(visible.Amount), "hiding a child must not change the parent")
	assert.Equal(t, "150", hidden.Amount.String())
	assert.Equal(t, []string{"A"}, codes(hidden.Children))
	assert.Equal(t, []string{"A", "B"}, codes(visible.Children))
}

func TestAggregateAll_HidesForeignRoots(t *testing.T) {
	foreign := acct(9, "9", "9", true)
	foreign.CompanyID = 2
	accounts := []model.Account{acct(1, "1", "1", true), foreign}
	totals := model.LineItemTotals{1: dec("10"), 9: dec("5")}

	assert.Equal(t, []string{"1"}, codes(AggregateAll(Build(accounts).Roots, totals, 1)))
	assert.Equal(t, []string{"1", "9"}, codes(AggregateAll(Build(accounts).Roots, totals, 2)))
}

func TestAggregate_DoesNotMutateInput(t *testing.T) {
	f := Build([]model.Account{
		acct(1, "R", "R", true),
		acct(2, "A", "R", true),
	})
	root := f.Roots[0]
	totals := model.LineItemTotals{2: dec("100")}

	first := Aggregate(root, totals, 1)
	second := Aggregate(root, totals, 1)

	assert.True(t, root.Amount.IsZero())
	assert.True(t, root.Children[0].Amount.IsZero())
	assert.NotSame(t, root, first)
	assert.NotSame(t, first.Children[0], second.Children[0])
	assert.True(t, first.Amount.Equal(second.Amount))
}

func TestTrialBalance_Balanced(t *testing.T) {
	f := Build([]model.Account{
		acct(1, "1", "1", true),
		acct(1101, "1101", "1", true),
		acct(2, "2", "2", false),
		acct(2101, "2101", "2", false),
		acct(3, "3", "3", false),
		acct(4, "4", "4", false),
		acct(6, "6", "6", true),
	})
	// Balanced postings: cash 1000 from equity, 400 payable, sale 700, expense 250.
	totals := model.LineItemTotals{
		1101: dec("1850"), // 1000 + 400 + 700 - 250
		2101: dec("-400"),
		3:    dec("-1000"),
		4:    dec("-700"),
		6:    dec("250"),
	}

	roots := AggregateAll(f.Roots, totals, 1)
	b := TrialBalance(roots)

	assert.Equal(t, "2100", b.Debit.String())
	assert.Equal(t, "2100", b.Credit.String())
	assert.True(t, b.Balanced())
}

func TestTrialBalance_IgnoresSyntheticNodes(t *testing.T) {
	roots := []*Node{
		{Account: acct(1, "1", "1", true), Amount: dec("10")},
		{Account: acct(0, "NI", "NI", false), Amount: dec("10"), Kind: KindSynthetic},
	}

	b := TrialBalance(roots)

	assert.Equal(t, "10", b.Debit.String())
	assert.True(t, b.Credit.IsZero())
	assert.False(t, b.Balanced())
}
