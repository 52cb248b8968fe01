package report

import (
	"fmt"
	"sort"
	"strconv"

	"github.com/shopspring/decimal"

	"github.com/cleared-dev/finstat/internal/model"
	"github.com/cleared-dev/finstat/internal/tree"
)

// gapSet collects gaps once per kind and code.
type gapSet struct {
	gaps []Gap
	seen map[string]bool
}

func (s *gapSet) add(g Gap) {
	if s.seen == nil {
		s.seen = make(map[string]bool)
	}
	k := string(g.Kind) + "\x00" + g.Code
	if s.seen[k] {
		return
	}
	s.seen[k] = true
	s.gaps = append(s.gaps, g)
}

func (s *gapSet) forest(f tree.Forest) {
	for _, c := range f.Orphans {
		s.add(Gap{Kind: GapOrphan, Code: c, Detail: "parent account not found; excluded from totals"})
	}
	for _, c := range f.Cycles {
		s.add(Gap{Kind: GapCycle, Code: c, Detail: "parent chain never reaches a root; excluded from totals"})
	}
	for _, c := range f.Duplicates {
		s.add(Gap{Kind: GapDuplicate, Code: c, Detail: "code repeated in chart; first occurrence kept"})
	}
}

// unknown reports totals posted to ids missing from the chart.
func (s *gapSet) unknown(accounts []model.Account, totals model.LineItemTotals) {
	known := make(map[int]bool, len(accounts))
	for _, a := range accounts {
		known[a.ID] = true
	}
	var ids []int
	for id, amt := range totals {
		if !known[id] && !amt.IsZero() {
			ids = append(ids, id)
		}
	}
	sort.Ints(ids)
	for _, id := range ids {
		s.add(Gap{
			Kind:   GapUnknownAccount,
			Code:   strconv.Itoa(id),
			Detail: fmt.Sprintf("line items of %s posted to an account missing from the chart", totals.Get(id).StringFixed(2)),
		})
	}
}

func (s *gapSet) collisions(codes []string) {
	for _, c := range codes {
		s.add(Gap{Kind: GapCollision, Code: c, Detail: "code present in both balance sheet and income statement; income statement used"})
	}
}

func (s *gapSet) unreconciled(label string, diff decimal.Decimal) {
	s.add(Gap{
		Kind:   GapUnreconciled,
		Code:   label,
		Detail: fmt.Sprintf("operating, investing and financing totals differ from the change in cash by %s", diff.StringFixed(2)),
	})
}

// reserved reports chart accounts whose code is taken by a synthesized
// income-statement node. The account shadows the synthesized value.
func (s *gapSet) reserved(f tree.Forest, codes ...string) {
	for _, c := range codes {
		if c == "" {
			continue
		}
		if n := tree.FindIn(f.Roots, c); n != nil && n.Kind == tree.KindAccount {
			s.add(Gap{
				Kind:   GapReservedCode,
				Code:   c,
				Detail: fmt.Sprintf("account %q uses a code reserved for a computed income-statement line; computed value dropped", n.Account.Name),
			})
		}
	}
}
