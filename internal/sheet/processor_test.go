package sheet

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cleared-dev/finstat/internal/tree"
)

func TestIncomeProcessor_NetIncomeScenario(t *testing.T) {
	roots := incomeForest()

	got := IncomeProcessor{Codes: scenarioCodes()}.Process(roots)

	require.Len(t, got, 5)
	ni := got[3]
	assert.Equal(t, "NI", ni.Code())
	assert.Equal(t, tree.KindSynthetic, ni.Kind)
	assert.Equal(t, "3000", ni.Amount.String())
	assert.False(t, ni.Account.Debit, "net income is credit-normal")

	ratio := got[4]
	assert.Equal(t, "RATIO", ratio.Code())
	assert.Equal(t, tree.KindRatio, ratio.Kind)
	assert.Equal(t, "1.4286", ratio.Amount.String())
}

func TestIncomeProcessor_DoesNotMutateInput(t *testing.T) {
	roots := incomeForest()
	before := make([]*tree.Node, len(roots))
	copy(before, roots)

	first := IncomeProcessor{Codes: scenarioCodes()}.Process(roots)
	second := IncomeProcessor{Codes: scenarioCodes()}.Process(roots)

	assert.Len(t, roots, 3)
	assert.Equal(t, before, roots)
	assert.True(t, first[3].Amount.Equal(second[3].Amount), "deterministic for the same input")
	assert.NotSame(t, first[3], second[3])
}

func TestIncomeProcessor_MissingRoots(t *testing.T) {
	got := IncomeProcessor{Codes: DefaultIncomeCodes()}.Process(nil)

	require.Len(t, got, 2)
	assert.True(t, got[0].Amount.IsZero())
	assert.True(t, got[1].Amount.IsZero(), "zero divisor yields a zero ratio")
}

func TestIncomeRatio_DivideByZero(t *testing.T) {
	assert.True(t, IncomeRatio(dec("500"), dec("0"), dec("0")).IsZero())
	assert.Equal(t, "2", IncomeRatio(dec("500"), dec("200"), dec("50")).String())
}

func TestIdentity(t *testing.T) {
	roots := balanceForest()

	got := Identity{}.Process(roots)

	assert.Equal(t, roots, got)
	got[0] = nil
	assert.NotNil(t, roots[0], "result is a separate slice")
}

func TestProcessorFor(t *testing.T) {
	assert.IsType(t, IncomeProcessor{}, ProcessorFor(TypeIncomeStatement, DefaultIncomeCodes()))
	assert.IsType(t, Identity{}, ProcessorFor(TypeBalanceSheet, DefaultIncomeCodes()))
	assert.IsType(t, Identity{}, ProcessorFor(TypeCashFlow, DefaultIncomeCodes()))
}
