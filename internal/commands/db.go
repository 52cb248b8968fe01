package commands

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/spf13/cobra"

	"github.com/cleared-dev/finstat/internal/accounts"
	"github.com/cleared-dev/finstat/internal/journal"
	"github.com/cleared-dev/finstat/internal/ledger/pgstore"
	"github.com/cleared-dev/finstat/internal/model"
)

func newDBCommand(repoDir *string) *cobra.Command {
	var dsn string

	dbCmd := &cobra.Command{
		Use:   "db",
		Short: "PostgreSQL ledger operations",
	}
	dbCmd.PersistentFlags().StringVar(&dsn, "dsn", "", "connection string (default: storage.postgres_dsn or FINSTAT_PG_DSN)")

	connect := func(cmd *cobra.Command) (*env, *pgxpool.Pool, error) {
		e, err := loadEnv(cmd, *repoDir)
		if err != nil {
			return nil, nil, err
		}
		if dsn == "" {
			dsn = e.cfg.Storage.PostgresDSN
		}
		if dsn == "" {
			return nil, nil, errors.New("no postgres dsn configured")
		}
		pool, err := pgstore.Open(cmd.Context(), dsn)
		if err != nil {
			return nil, nil, err
		}
		return e, pool, nil
	}

	dbCmd.AddCommand(&cobra.Command{
		Use:   "migrate",
		Short: "Create the ledger tables",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, pool, err := connect(cmd)
			if err != nil {
				return err
			}
			defer pool.Close()

			if err := pgstore.New(pool).Migrate(cmd.Context()); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), okStyle.Render("Schema up to date"))
			return nil
		},
	})

	dbCmd.AddCommand(&cobra.Command{
		Use:   "push",
		Short: "Replace the PostgreSQL ledger with the chart and journals of the repository",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			e, pool, err := connect(cmd)
			if err != nil {
				return err
			}
			defer pool.Close()

			n, err := push(cmd.Context(), pgstore.New(pool), e)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s %d journal lines\n", okStyle.Render("Pushed"), n)
			return nil
		},
	})

	return dbCmd
}

// ledgerWriter is the part of pgstore.Store that push needs.
type ledgerWriter interface {
	Migrate(ctx context.Context) error
	ReplaceLedger(ctx context.Context, companyID int, accounts []model.Account, legs []model.Leg) error
}

// push reads the whole repository first, then replaces the stored ledger in
// one transaction.
func push(ctx context.Context, store ledgerWriter, e *env) (int, error) {
	svc, err := accounts.Load(e.root)
	if err != nil {
		return 0, err
	}

	js := journal.NewService(e.root)
	months, err := js.Months()
	if err != nil {
		return 0, err
	}
	var legs []model.Leg
	for _, m := range months {
		month, err := js.ReadMonth(m.Year, m.Month)
		if err != nil {
			return 0, fmt.Errorf("reading %04d-%02d: %w", m.Year, m.Month, err)
		}
		legs = append(legs, month...)
		e.logger.Debug("read journal month", "year", m.Year, "month", m.Month, "lines", len(month))
	}

	if err := store.Migrate(ctx); err != nil {
		return 0, err
	}
	if err := store.ReplaceLedger(ctx, e.cfg.Business.CompanyID, svc.All(), legs); err != nil {
		return 0, err
	}
	e.logger.Info("pushed ledger", "company_id", e.cfg.Business.CompanyID, "accounts", len(svc.All()), "lines", len(legs))
	return len(legs), nil
}
