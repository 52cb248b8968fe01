// Package report assembles financial statements for a company and period
// from a ledger repository.
package report

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/cleared-dev/finstat/internal/model"
	"github.com/cleared-dev/finstat/internal/sheet"
)

var (
	// ErrUpstreamFetch wraps every repository failure. No partial report
	// is returned alongside it.
	ErrUpstreamFetch = errors.New("report: upstream fetch failed")

	// ErrUnknownStatement is returned for an unsupported statement type.
	ErrUnknownStatement = errors.New("report: unknown statement")
)

// Repository supplies the chart of accounts and period totals.
type Repository interface {
	Accounts(ctx context.Context, companyID int) ([]model.Account, error)
	LineItemTotals(ctx context.Context, companyID int, p model.Period) (model.LineItemTotals, error)
}

// Request selects the statement to generate.
type Request struct {
	CompanyID int
	Type      sheet.Type
	Period    model.Period
}

// Report is a generated statement with its current and prior columns.
type Report struct {
	ID          uuid.UUID
	Type        sheet.Type
	CompanyID   int
	Period      model.Period
	Prior       model.Period
	Version     string // layout or mapping version
	Rows        []sheet.ComparativeRow
	Gaps        []Gap
	GeneratedAt time.Time
}

// GapKind classifies a data integrity problem found while generating.
type GapKind string

const (
	GapOrphan         GapKind = "orphan"
	GapCycle          GapKind = "cycle"
	GapDuplicate      GapKind = "duplicate"
	GapUnknownAccount GapKind = "unknown_account"
	GapCollision      GapKind = "collision"
	GapUnreconciled   GapKind = "unreconciled"
	GapReservedCode   GapKind = "reserved_code"
)

// Gap is a non-fatal problem: the report still renders, possibly with
// partial data.
type Gap struct {
	Kind   GapKind
	Code   string
	Detail string
}

func (g Gap) String() string {
	if g.Code == "" {
		return fmt.Sprintf("%s: %s", g.Kind, g.Detail)
	}
	return fmt.Sprintf("%s [%s]: %s", g.Kind, g.Code, g.Detail)
}
