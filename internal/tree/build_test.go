package tree

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cleared-dev/finstat/internal/model"
)

func TestBuild_Roots(t *testing.T) {
	f := Build([]model.Account{
		acct(1, "1", "1", true),
		acct(2, "2", "2", false),
		acct(11, "11", "1", true),
	})

	require.Len(t, f.Roots, 2)
	assert.Equal(t, []string{"1", "2"}, codes(f.Roots))
	assert.Equal(t, []string{"11"}, codes(f.Roots[0].Children))
	assert.True(t, f.Complete())
}

func TestBuild_ChildBeforeParent(t *testing.T) {
	f := Build([]model.Account{
		acct(1101, "1101", "11", true),
		acct(11, "11", "1", true),
		acct(1102, "1102", "11", true),
		acct(1, "1", "1", true),
	})

	require.Len(t, f.Roots, 1)
	current := f.Roots[0].Children[0]
	assert.Equal(t, "11", current.Code())
	assert.Equal(t, []string{"1101", "1102"}, codes(current.Children), "children keep input order")
}

func TestBuild_Orphan(t *testing.T) {
	f := Build([]model.Account{
		acct(1, "1", "1", true),
		acct(1101, "1101", "11", true),
		acct(110101, "110101", "1101", true),
	})

	require.Len(t, f.Roots, 1)
	assert.Empty(t, f.Roots[0].Children)
	assert.Equal(t, []string{"1101"}, f.Orphans, "only the account with the missing parent is reported")
	assert.Empty(t, f.Cycles, "descendants of an orphan are not cycles")
	assert.False(t, f.Complete())
}

func TestBuild_Cycle(t *testing.T) {
	f := Build([]model.Account{
		acct(1, "1", "1", true),
		acct(8, "A", "B", true),
		acct(9, "B", "A", true),
	})

	require.Len(t, f.Roots, 1)
	assert.ElementsMatch(t, []string{"A", "B"}, f.Cycles)
	assert.Empty(t, f.Orphans)
}

func TestBuild_Duplicate(t *testing.T) {
	first := acct(1, "1", "1", true)
	first.Name = "Assets"
	second := acct(2, "1", "1", true)
	second.Name = "Assets again"

	f := Build([]model.Account{first, second})

	require.Len(t, f.Roots, 1)
	assert.Equal(t, "Assets", f.Roots[0].Account.Name)
	assert.Equal(t, []string{"1"}, f.Duplicates)
}

func TestBuild_Empty(t *testing.T) {
	f := Build(nil)
	assert.Empty(t, f.Roots)
	assert.True(t, f.Complete())
}

func TestFind(t *testing.T) {
	f := Build([]model.Account{
		acct(1, "1", "1", true),
		acct(11, "11", "1", true),
		acct(1101, "1101", "11", true),
		acct(2, "2", "2", false),
	})

	n := FindIn(f.Roots, "1101")
	require.NotNil(t, n)
	assert.Equal(t, 1101, n.Account.ID)
	assert.Nil(t, FindIn(f.Roots, "9999"))
}

func TestWalkDepth(t *testing.T) {
	f := Build([]model.Account{
		acct(1, "1", "1", true),
		acct(11, "11", "1", true),
		acct(1101, "1101", "11", true),
	})

	depths := map[string]int{}
	f.Roots[0].Walk(func(n *Node, depth int) bool {
		depths[n.Code()] = depth
		return true
	})
	assert.Equal(t, map[string]int{"1": 0, "11": 1, "1101": 2}, depths)
}
