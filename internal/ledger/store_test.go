package ledger

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cleared-dev/finstat/internal/accounts"
	"github.com/cleared-dev/finstat/internal/journal"
	"github.com/cleared-dev/finstat/internal/model"
)

func day(y, m, d int) time.Time {
	return time.Date(y, time.Month(m), d, 0, 0, 0, 0, time.UTC)
}

func decimalOf(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestStore_Testdata(t *testing.T) {
	s := NewStore("../../testdata")
	ctx := context.Background()

	accts, err := s.Accounts(ctx, 1)
	require.NoError(t, err)
	assert.Len(t, accts, 27)

	feb, err := s.LineItemTotals(ctx, 1, model.Period{From: day(2025, 2, 1), To: day(2025, 2, 28)})
	require.NoError(t, err)
	assert.Equal(t, "-1950", feb.Get(1101).String())
	assert.Equal(t, "-7000", feb.Get(4101).String())
	assert.True(t, feb.Get(3101).IsZero(), "January postings are outside the window")

	cum, err := s.LineItemTotals(ctx, 1, model.AsOf(day(2025, 2, 28)))
	require.NoError(t, err)
	assert.Equal(t, "50950", cum.Get(1101).String())
	assert.Equal(t, "-400", cum.Get(1202).String())
}

func TestStore_MissingChart(t *testing.T) {
	_, err := NewStore(t.TempDir()).Accounts(context.Background(), 1)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestStore_CanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewStore("../../testdata").LineItemTotals(ctx, 1, model.AsOf(day(2025, 1, 31)))
	assert.ErrorIs(t, err, context.Canceled)
}

func TestStore_Check(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, accounts.NewService(accounts.DefaultChart("corporation")).Save(dir))
	j := journal.NewService(dir)
	require.NoError(t, j.WriteMonth(2025, 1, []model.Leg{
		{EntryID: "2025-01-001a", Date: day(2025, 1, 3), AccountID: 6101, Debit: decimalOf("10")},
		{EntryID: "2025-01-001b", Date: day(2025, 1, 3), AccountID: 1101, Credit: decimalOf("9")},
	}))
	require.NoError(t, j.WriteMonth(2025, 3, []model.Leg{
		{EntryID: "2025-03-001a", Date: day(2025, 3, 3), AccountID: 4242, Debit: decimalOf("1")},
	}))

	errs, err := NewStore(dir).Check(context.Background(), model.Period{From: day(2025, 1, 1), To: day(2025, 1, 31)})
	require.NoError(t, err)
	require.Len(t, errs, 1)
	assert.Equal(t, 1, errs[0].Invariant)
	assert.Equal(t, "2025-01-001", errs[0].EntryID)
}

func TestStore_CheckTestdata(t *testing.T) {
	errs, err := NewStore("../../testdata").Check(context.Background(), model.AsOf(day(2025, 12, 31)))
	require.NoError(t, err)
	assert.Empty(t, errs)
}
