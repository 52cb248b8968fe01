package report

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/cleared-dev/finstat/internal/cashflow"
	"github.com/cleared-dev/finstat/internal/model"
	"github.com/cleared-dev/finstat/internal/sheet"
	"github.com/cleared-dev/finstat/internal/tree"
)

// Options configures a Service. Zero values select the built-in layouts,
// mapping and income codes.
type Options struct {
	Layouts      map[sheet.Type]sheet.Layout
	Mapping      *cashflow.Mapping
	Income       sheet.IncomeCodes
	ComparePrior bool
	Logger       *slog.Logger
	Clock        func() time.Time
}

// Service generates statements. It holds no per-request state and is safe
// for concurrent use.
type Service struct {
	repo    Repository
	layouts map[sheet.Type]sheet.Layout
	deriver *cashflow.Deriver
	income  sheet.IncomeCodes
	prior   bool
	logger  *slog.Logger
	now     func() time.Time
	newID   func() (uuid.UUID, error)
}

// NewService resolves opts against the built-in tables.
func NewService(repo Repository, opts Options) (*Service, error) {
	s := &Service{
		repo:    repo,
		layouts: make(map[sheet.Type]sheet.Layout),
		income:  opts.Income,
		prior:   opts.ComparePrior,
		logger:  opts.Logger,
		now:     opts.Clock,
		newID:   uuid.NewRandom,
	}
	if s.logger == nil {
		s.logger = slog.New(slog.DiscardHandler)
	}
	if s.now == nil {
		s.now = time.Now
	}
	if s.income == (sheet.IncomeCodes{}) {
		s.income = sheet.DefaultIncomeCodes()
	}

	for _, t := range []sheet.Type{sheet.TypeBalanceSheet, sheet.TypeIncomeStatement} {
		if l, ok := opts.Layouts[t]; ok {
			if l.Type() != t {
				return nil, fmt.Errorf("%w: %s layout configured for %s", sheet.ErrInvalidLayout, l.Type(), t)
			}
			s.layouts[t] = l
			continue
		}
		l, err := sheet.DefaultLayout(t)
		if err != nil {
			return nil, err
		}
		s.layouts[t] = l
	}

	if opts.Mapping != nil {
		s.deriver = cashflow.NewDeriver(*opts.Mapping)
	} else {
		m, err := cashflow.DefaultMapping()
		if err != nil {
			return nil, err
		}
		s.deriver = cashflow.NewDeriver(m)
	}
	return s, nil
}

// Generate builds the requested statement for the period and, when
// comparison is enabled, the prior period of equal length. Any repository
// failure aborts generation with ErrUpstreamFetch.
func (s *Service) Generate(ctx context.Context, req Request) (*Report, error) {
	if !req.Type.Valid() {
		return nil, fmt.Errorf("%w: %q", ErrUnknownStatement, req.Type)
	}
	if err := checkPeriod(req.Period); err != nil {
		return nil, err
	}

	cur := req.Period
	prior := cur.Prior()
	periods := s.plan(req.Type, cur)
	if s.prior {
		periods = append(periods, s.plan(req.Type, prior)...)
	}

	data, err := s.fetch(ctx, req.CompanyID, periods)
	if err != nil {
		return nil, err
	}

	var gaps gapSet
	forest := tree.Build(data.accounts)
	gaps.forest(forest)
	if req.Type != sheet.TypeBalanceSheet {
		gaps.reserved(forest, s.income.NetIncome, s.income.Ratio)
	}
	for _, p := range periods {
		gaps.unknown(data.accounts, data.get(p))
	}

	st := statement{svc: s, forest: forest, companyID: req.CompanyID, data: data, gaps: &gaps}
	rep := &Report{
		Type:      req.Type,
		CompanyID: req.CompanyID,
		Period:    cur,
	}
	if s.prior {
		rep.Prior = prior
	}

	switch req.Type {
	case sheet.TypeCashFlow:
		curRows := st.cashFlow(cur)
		var priorRows []sheet.Row
		if s.prior {
			priorRows = st.cashFlow(prior)
		}
		rep.Rows = sheet.Comparative(curRows, priorRows)
		rep.Version = s.deriver.Mapping().Version()
	default:
		layout := s.layouts[req.Type]
		curMap := st.accountMap(req.Type, window(req.Type, cur), layout.Base())
		var priorMap sheet.AccountMap
		if s.prior {
			priorMap = st.accountMap(req.Type, window(req.Type, prior), layout.Base())
		}
		rep.Rows = sheet.MapComparative(curMap, priorMap, layout)
		rep.Version = layout.Version()
	}

	id, err := s.newID()
	if err != nil {
		return nil, fmt.Errorf("report: generating run id: %w", err)
	}
	rep.ID = id
	rep.Gaps = gaps.gaps
	rep.GeneratedAt = s.now().UTC()

	for _, g := range rep.Gaps {
		s.logger.Warn("data integrity gap",
			slog.String("run_id", id.String()),
			slog.String("kind", string(g.Kind)),
			slog.String("code", g.Code),
			slog.String("detail", g.Detail))
	}
	s.logger.Info("report generated",
		slog.String("run_id", id.String()),
		slog.String("statement", string(req.Type)),
		slog.Int("company_id", req.CompanyID),
		slog.String("period", cur.String()),
		slog.Int("rows", len(rep.Rows)),
		slog.Int("gaps", len(rep.Gaps)))
	return rep, nil
}

// TrialBalance is the aggregated chart as of a date.
type TrialBalance struct {
	AsOf    time.Time
	Roots   []*tree.Node
	Balance tree.Balance
	Gaps    []Gap
}

// TrialBalance aggregates every root of the chart as of asOf.
func (s *Service) TrialBalance(ctx context.Context, companyID int, asOf time.Time) (*TrialBalance, error) {
	p := model.AsOf(asOf)
	if err := checkPeriod(p); err != nil {
		return nil, err
	}
	data, err := s.fetch(ctx, companyID, []model.Period{p})
	if err != nil {
		return nil, err
	}

	var gaps gapSet
	forest := tree.Build(data.accounts)
	gaps.forest(forest)
	totals := data.get(p)
	gaps.unknown(data.accounts, totals)

	roots := tree.AggregateAll(forest.Roots, totals, companyID)
	return &TrialBalance{
		AsOf:    p.To,
		Roots:   roots,
		Balance: tree.TrialBalance(roots),
		Gaps:    gaps.gaps,
	}, nil
}

// Chart returns the chart-of-accounts forest of a company and its gaps.
func (s *Service) Chart(ctx context.Context, companyID int) (tree.Forest, []Gap, error) {
	accounts, err := s.repo.Accounts(ctx, companyID)
	if err != nil {
		s.logger.Error("fetch accounts", slog.Any("error", err))
		return tree.Forest{}, nil, fmt.Errorf("%w: accounts: %w", ErrUpstreamFetch, err)
	}
	var gaps gapSet
	forest := tree.Build(accounts)
	gaps.forest(forest)
	return forest, gaps.gaps, nil
}

func checkPeriod(p model.Period) error {
	if p.To.IsZero() {
		return errors.New("report: period has no end date")
	}
	if !p.Cumulative() && p.From.After(p.To) {
		return fmt.Errorf("report: period %s starts after it ends", p)
	}
	return nil
}

// window is the totals window a statement reads for period p: balance
// sheets are cumulative, income statements cover the period.
func window(t sheet.Type, p model.Period) model.Period {
	if t == sheet.TypeBalanceSheet {
		return model.AsOf(p.To)
	}
	return p
}

// plan lists the totals windows a statement needs for period p.
func (s *Service) plan(t sheet.Type, p model.Period) []model.Period {
	if t != sheet.TypeCashFlow {
		return []model.Period{window(t, p)}
	}
	out := []model.Period{model.AsOf(p.To), p}
	if !p.Cumulative() {
		out = append(out, p.Opening())
	}
	return out
}

type fetched struct {
	accounts []model.Account
	totals   map[string]model.LineItemTotals
}

func (f fetched) get(p model.Period) model.LineItemTotals {
	return f.totals[p.String()]
}

// fetch loads the accounts and every distinct totals window concurrently.
// The first failure cancels the remaining calls.
func (s *Service) fetch(ctx context.Context, companyID int, periods []model.Period) (fetched, error) {
	var distinct []model.Period
	seen := make(map[string]bool, len(periods))
	for _, p := range periods {
		if !seen[p.String()] {
			seen[p.String()] = true
			distinct = append(distinct, p)
		}
	}

	g, gctx := errgroup.WithContext(ctx)

	var accounts []model.Account
	g.Go(func() error {
		a, err := s.repo.Accounts(gctx, companyID)
		if err != nil {
			return fmt.Errorf("accounts: %w", err)
		}
		accounts = a
		return nil
	})

	results := make([]model.LineItemTotals, len(distinct))
	for i, p := range distinct {
		g.Go(func() error {
			t, err := s.repo.LineItemTotals(gctx, companyID, p)
			if err != nil {
				return fmt.Errorf("line items %s: %w", p, err)
			}
			results[i] = t
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		s.logger.Error("fetch ledger data", slog.Int("company_id", companyID), slog.Any("error", err))
		return fetched{}, fmt.Errorf("%w: %w", ErrUpstreamFetch, err)
	}

	out := fetched{accounts: accounts, totals: make(map[string]model.LineItemTotals, len(distinct))}
	for i, p := range distinct {
		t := results[i]
		if t == nil {
			t = model.LineItemTotals{}
		}
		out.totals[p.String()] = t
	}
	return out, nil
}

// statement carries the per-request inputs shared by every column.
type statement struct {
	svc       *Service
	forest    tree.Forest
	companyID int
	data      fetched
	gaps      *gapSet
}

func (st statement) accountMap(t sheet.Type, p model.Period, base string) sheet.AccountMap {
	roots := tree.AggregateAll(t.Select(st.forest.Roots), st.data.get(p), st.companyID)
	return sheet.NewAccountMap(sheet.ProcessorFor(t, st.svc.income).Process(roots), base)
}

// cashFlow derives the cash-flow rows of p from the balance-sheet movement
// over p and the income statement of p.
func (st statement) cashFlow(p model.Period) []sheet.Row {
	end := st.accountMap(sheet.TypeBalanceSheet, model.AsOf(p.To), "")
	var opening sheet.AccountMap
	if !p.Cumulative() {
		opening = st.accountMap(sheet.TypeBalanceSheet, p.Opening(), "")
	}
	income := st.accountMap(sheet.TypeIncomeStatement, p, "")
	movement := sheet.Delta(end, opening)

	st.gaps.collisions(movement.Collisions(income))
	rows := st.svc.deriver.Derive(movement, income)
	if diff, ok := st.svc.deriver.Reconcile(rows); ok && !diff.IsZero() {
		st.gaps.unreconciled(p.String(), diff)
	}
	return rows
}
