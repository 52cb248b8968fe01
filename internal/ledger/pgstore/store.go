// Package pgstore serves accounts and period totals from PostgreSQL.
package pgstore

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/cleared-dev/finstat/internal/model"
)

// ErrNotInitialised is returned by a store without a connection.
var ErrNotInitialised = errors.New("pgstore: not initialised")

// DB is the subset of pgxpool.Pool the store needs.
type DB interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	CopyFrom(ctx context.Context, table pgx.Identifier, columns []string, src pgx.CopyFromSource) (int64, error)
	Begin(ctx context.Context) (pgx.Tx, error)
}

// Store reads the ledger tables. It is safe for concurrent use.
type Store struct {
	db DB
}

// New wraps an existing connection.
func New(db DB) *Store {
	return &Store{db: db}
}

// Open creates a connection pool for dsn and verifies it.
func Open(ctx context.Context, dsn string) (*pgxpool.Pool, error) {
	config, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("pgstore: parse config: %w", err)
	}

	pool, err := pgxpool.NewWithConfig(ctx, config)
	if err != nil {
		return nil, fmt.Errorf("pgstore: new pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("pgstore: ping: %w", err)
	}

	return pool, nil
}

// Migrate creates the ledger tables when missing.
func (s *Store) Migrate(ctx context.Context) error {
	if s == nil || s.db == nil {
		return ErrNotInitialised
	}
	if _, err := s.db.Exec(ctx, Schema); err != nil {
		return fmt.Errorf("pgstore: migrate: %w", err)
	}
	return nil
}

// Accounts returns the shared chart plus the accounts owned by companyID,
// ordered by code.
func (s *Store) Accounts(ctx context.Context, companyID int) ([]model.Account, error) {
	if s == nil || s.db == nil {
		return nil, ErrNotInitialised
	}
	const query = `
SELECT id, code, parent_code, root_code, name, type, debit, company_id, level, description
FROM accounts
WHERE company_id = 0 OR company_id = $1
ORDER BY code`
	rows, err := s.db.Query(ctx, query, companyID)
	if err != nil {
		return nil, fmt.Errorf("pgstore: query accounts: %w", err)
	}
	defer rows.Close()

	var out []model.Account
	for rows.Next() {
		var a model.Account
		var typ string
		if err := rows.Scan(&a.ID, &a.Code, &a.ParentCode, &a.RootCode, &a.Name, &typ, &a.Debit, &a.CompanyID, &a.Level, &a.Description); err != nil {
			return nil, fmt.Errorf("pgstore: scan account: %w", err)
		}
		a.Type = model.AccountType(typ)
		out = append(out, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("pgstore: read accounts: %w", err)
	}
	return out, nil
}

// LineItemTotals sums debit minus credit per account over the company's
// non-voided journal lines dated inside p.
func (s *Store) LineItemTotals(ctx context.Context, companyID int, p model.Period) (model.LineItemTotals, error) {
	if s == nil || s.db == nil {
		return nil, ErrNotInitialised
	}
	const query = `
SELECT account_id, SUM(debit - credit)::text
FROM journal_lines
WHERE company_id = $1
  AND status <> 'voided'
  AND ($2::date IS NULL OR entry_date >= $2::date)
  AND entry_date <= $3::date
GROUP BY account_id`
	var from *time.Time
	if !p.Cumulative() {
		f := p.From
		from = &f
	}
	rows, err := s.db.Query(ctx, query, companyID, from, p.To)
	if err != nil {
		return nil, fmt.Errorf("pgstore: query totals: %w", err)
	}
	defer rows.Close()

	totals := make(model.LineItemTotals)
	for rows.Next() {
		var id int
		var sum string
		if err := rows.Scan(&id, &sum); err != nil {
			return nil, fmt.Errorf("pgstore: scan total: %w", err)
		}
		amt, err := decimal.NewFromString(sum)
		if err != nil {
			return nil, fmt.Errorf("pgstore: account %d total %q: %w", id, sum, err)
		}
		totals[id] = amt
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("pgstore: read totals: %w", err)
	}
	return totals, nil
}

// InsertAccounts upserts chart rows.
func (s *Store) InsertAccounts(ctx context.Context, accounts []model.Account) error {
	if s == nil || s.db == nil {
		return ErrNotInitialised
	}
	return upsertAccounts(ctx, s.db, accounts)
}

// InsertLegs stores journal legs for a company.
func (s *Store) InsertLegs(ctx context.Context, companyID int, legs []model.Leg) error {
	if s == nil || s.db == nil {
		return ErrNotInitialised
	}
	return copyLegs(ctx, s.db, companyID, legs)
}

// ClearLegs deletes every journal line of a company.
func (s *Store) ClearLegs(ctx context.Context, companyID int) error {
	if s == nil || s.db == nil {
		return ErrNotInitialised
	}
	return clearLegs(ctx, s.db, companyID)
}

// ReplaceLedger upserts the chart and swaps the company's journal lines for
// legs in one transaction. On error the stored ledger is left unchanged.
func (s *Store) ReplaceLedger(ctx context.Context, companyID int, accounts []model.Account, legs []model.Leg) error {
	if s == nil || s.db == nil {
		return ErrNotInitialised
	}
	tx, err := s.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("pgstore: begin: %w", err)
	}
	defer tx.Rollback(ctx) //nolint:errcheck

	if err := upsertAccounts(ctx, tx, accounts); err != nil {
		return err
	}
	if err := clearLegs(ctx, tx, companyID); err != nil {
		return err
	}
	if err := copyLegs(ctx, tx, companyID, legs); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("pgstore: commit: %w", err)
	}
	return nil
}

// execer is implemented by both the pool and a transaction.
type execer interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	CopyFrom(ctx context.Context, table pgx.Identifier, columns []string, src pgx.CopyFromSource) (int64, error)
}

func upsertAccounts(ctx context.Context, db execer, accounts []model.Account) error {
	const stmt = `
INSERT INTO accounts (id, code, parent_code, root_code, name, type, debit, company_id, level, description)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
ON CONFLICT (id) DO UPDATE SET
  code = EXCLUDED.code, parent_code = EXCLUDED.parent_code, root_code = EXCLUDED.root_code,
  name = EXCLUDED.name, type = EXCLUDED.type, debit = EXCLUDED.debit,
  company_id = EXCLUDED.company_id, level = EXCLUDED.level, description = EXCLUDED.description`
	for _, a := range accounts {
		if _, err := db.Exec(ctx, stmt, a.ID, a.Code, a.ParentCode, a.RootCode, a.Name, string(a.Type), a.Debit, a.CompanyID, a.Level, a.Description); err != nil {
			return fmt.Errorf("pgstore: insert account %s: %w", a.Code, err)
		}
	}
	return nil
}

func clearLegs(ctx context.Context, db execer, companyID int) error {
	if _, err := db.Exec(ctx, `DELETE FROM journal_lines WHERE company_id = $1`, companyID); err != nil {
		return fmt.Errorf("pgstore: clear journal lines: %w", err)
	}
	return nil
}

var legColumns = []string{"entry_id", "company_id", "entry_date", "account_id", "description", "debit", "credit", "status"}

func copyLegs(ctx context.Context, db execer, companyID int, legs []model.Leg) error {
	if len(legs) == 0 {
		return nil
	}
	rows := make([][]any, len(legs))
	for i, l := range legs {
		rows[i] = []any{l.EntryID, companyID, l.Date, l.AccountID, l.Description, numeric(l.Debit), numeric(l.Credit), string(l.Status)}
	}
	n, err := db.CopyFrom(ctx, pgx.Identifier{"journal_lines"}, legColumns, pgx.CopyFromRows(rows))
	if err != nil {
		return fmt.Errorf("pgstore: copy journal lines: %w", err)
	}
	if n != int64(len(legs)) {
		return fmt.Errorf("pgstore: copied %d of %d journal lines", n, len(legs))
	}
	return nil
}

func numeric(d decimal.Decimal) pgtype.Numeric {
	return pgtype.Numeric{Int: d.Coefficient(), Exp: d.Exponent(), Valid: true}
}
