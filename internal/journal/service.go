package journal

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strconv"

	"github.com/cleared-dev/finstat/internal/model"
)

// Service reads journal files from a repo laid out as
// <root>/YYYY/MM/journal.csv.
type Service struct {
	repoRoot string
}

// NewService creates a journal Service.
func NewService(repoRoot string) *Service {
	return &Service{repoRoot: repoRoot}
}

// Month identifies one journal file.
type Month struct {
	Year  int
	Month int
}

// ReadMonth reads all legs for a given year/month. A missing file yields no
// legs.
func (s *Service) ReadMonth(year, month int) ([]model.Leg, error) {
	path := s.monthPath(year, month)
	f, err := os.Open(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("opening journal %s: %w", path, err)
	}
	defer f.Close()

	legs, err := ReadLegs(f)
	if err != nil {
		return nil, fmt.Errorf("reading journal %s: %w", path, err)
	}
	return legs, nil
}

// WriteMonth replaces the journal file of a month.
func (s *Service) WriteMonth(year, month int, legs []model.Leg) error {
	path := s.monthPath(year, month)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating journal dir: %w", err)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating journal: %w", err)
	}
	defer f.Close()

	if err := WriteLegs(f, legs); err != nil {
		return fmt.Errorf("writing journal %s: %w", path, err)
	}
	return nil
}

// Months lists the months that have a journal file, oldest first.
func (s *Service) Months() ([]Month, error) {
	paths, err := filepath.Glob(filepath.Join(s.repoRoot, "[0-9][0-9][0-9][0-9]", "[0-9][0-9]", "journal.csv"))
	if err != nil {
		return nil, fmt.Errorf("listing journals: %w", err)
	}
	var months []Month
	for _, p := range paths {
		monthDir := filepath.Dir(p)
		y, _ := strconv.Atoi(filepath.Base(filepath.Dir(monthDir)))
		m, _ := strconv.Atoi(filepath.Base(monthDir))
		if m < 1 || m > 12 {
			continue
		}
		months = append(months, Month{Year: y, Month: m})
	}
	sort.Slice(months, func(i, j int) bool {
		if months[i].Year != months[j].Year {
			return months[i].Year < months[j].Year
		}
		return months[i].Month < months[j].Month
	})
	return months, nil
}

// ReadPeriod reads the legs of every month overlapping p. Legs outside p
// in those months are included; use Totals to filter by date.
func (s *Service) ReadPeriod(p model.Period) ([]model.Leg, error) {
	months, err := s.Months()
	if err != nil {
		return nil, err
	}
	var legs []model.Leg
	for _, m := range months {
		if !overlaps(m, p) {
			continue
		}
		ml, err := s.ReadMonth(m.Year, m.Month)
		if err != nil {
			return nil, err
		}
		legs = append(legs, ml...)
	}
	return legs, nil
}

func overlaps(m Month, p model.Period) bool {
	key := m.Year*12 + m.Month
	if key > p.To.Year()*12+int(p.To.Month()) {
		return false
	}
	return p.Cumulative() || key >= p.From.Year()*12+int(p.From.Month())
}

// Totals sums debit minus credit per account over the legs dated inside p.
// Voided legs are skipped.
func Totals(legs []model.Leg, p model.Period) model.LineItemTotals {
	totals := make(model.LineItemTotals)
	for _, leg := range legs {
		if !leg.Counts() || !p.Contains(leg.Date) {
			continue
		}
		totals.Add(leg.AccountID, leg.Signed())
	}
	return totals
}

func (s *Service) monthPath(year, month int) string {
	return filepath.Join(s.repoRoot, fmt.Sprintf("%04d", year), fmt.Sprintf("%02d", month), "journal.csv")
}
