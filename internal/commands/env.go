package commands

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/cleared-dev/finstat/internal/config"
	"github.com/cleared-dev/finstat/internal/ledger"
	"github.com/cleared-dev/finstat/internal/ledger/pgstore"
	"github.com/cleared-dev/finstat/internal/logging"
	"github.com/cleared-dev/finstat/internal/report"
)

const dateLayout = "2006-01-02"

// env is the per-invocation state shared by the repository commands.
type env struct {
	root   string
	cfg    *config.Config
	logger *slog.Logger
}

func loadEnv(cmd *cobra.Command, repoDir string) (*env, error) {
	root, err := filepath.Abs(repoDir)
	if err != nil {
		return nil, fmt.Errorf("resolving path: %w", err)
	}
	cfg, err := config.Load(filepath.Join(root, config.FileName))
	if err != nil {
		return nil, err
	}
	logger, err := logging.New(cmd.ErrOrStderr(), cfg.Log.Format, cfg.Log.Level)
	if err != nil {
		return nil, fmt.Errorf("configuring logging: %w", err)
	}
	return &env{root: root, cfg: cfg, logger: logger}, nil
}

// repository opens the configured ledger store. The returned func releases
// it.
func (e *env) repository(ctx context.Context) (report.Repository, func(), error) {
	if e.cfg.Storage.Driver != config.DriverPostgres {
		return ledger.NewStore(e.root), func() {}, nil
	}
	pool, err := pgstore.Open(ctx, e.cfg.Storage.PostgresDSN)
	if err != nil {
		return nil, nil, err
	}
	e.logger.Debug("connected to postgres", slog.String("host", pool.Config().ConnConfig.Host))
	return pgstore.New(pool), pool.Close, nil
}

func (e *env) service(repo report.Repository, comparePrior bool) (*report.Service, error) {
	layouts, err := e.cfg.Layouts(e.root)
	if err != nil {
		return nil, err
	}
	mapping, err := e.cfg.Mapping(e.root)
	if err != nil {
		return nil, err
	}
	return report.NewService(repo, report.Options{
		Layouts:      layouts,
		Mapping:      mapping,
		Income:       e.cfg.Reports.Income,
		ComparePrior: comparePrior,
		Logger:       e.logger,
	})
}

func parseDate(flag, value string) (time.Time, error) {
	t, err := time.Parse(dateLayout, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("--%s: want YYYY-MM-DD, got %q", flag, value)
	}
	return t, nil
}
