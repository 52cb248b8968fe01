// Package ledger reads charts of accounts and period totals from a finstat
// repository on disk.
package ledger

import (
	"context"
	"fmt"

	"github.com/cleared-dev/finstat/internal/accounts"
	"github.com/cleared-dev/finstat/internal/journal"
	"github.com/cleared-dev/finstat/internal/model"
)

// Store serves one repository: accounts/chart-of-accounts.csv plus the
// monthly journal files. A repository holds the books of a single entity,
// so the chart is returned whole and company ids only drive display
// filtering downstream.
type Store struct {
	root    string
	journal *journal.Service
}

// NewStore returns a store rooted at dir.
func NewStore(dir string) *Store {
	return &Store{root: dir, journal: journal.NewService(dir)}
}

// Root returns the repository directory.
func (s *Store) Root() string {
	return s.root
}

// Accounts loads the chart of accounts.
func (s *Store) Accounts(ctx context.Context, _ int) ([]model.Account, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	svc, err := accounts.Load(s.root)
	if err != nil {
		return nil, err
	}
	return svc.All(), nil
}

// LineItemTotals sums debit minus credit per account for the non-voided
// legs dated inside p.
func (s *Store) LineItemTotals(ctx context.Context, _ int, p model.Period) (model.LineItemTotals, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	legs, err := s.journal.ReadPeriod(p)
	if err != nil {
		return nil, fmt.Errorf("reading journal for %s: %w", p, err)
	}
	return journal.Totals(legs, p), nil
}

// Check validates every journal month overlapping p against the chart.
func (s *Store) Check(ctx context.Context, p model.Period) ([]journal.ValidationError, error) {
	svc, err := accounts.Load(s.root)
	if err != nil {
		return nil, err
	}
	months, err := s.journal.Months()
	if err != nil {
		return nil, err
	}

	var errs []journal.ValidationError
	for _, m := range months {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		legs, err := s.journal.ReadMonth(m.Year, m.Month)
		if err != nil {
			return nil, err
		}
		if !inPeriod(legs, p) {
			continue
		}
		errs = append(errs, journal.ValidateLegs(legs, svc, m.Year, m.Month)...)
	}
	return errs, nil
}

func inPeriod(legs []model.Leg, p model.Period) bool {
	for _, l := range legs {
		if p.Contains(l.Date) {
			return true
		}
	}
	return false
}
