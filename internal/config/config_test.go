package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cleared-dev/finstat/internal/sheet"
)

func TestRoundTrip(t *testing.T) {
	cfg := Default("Test Biz", "llc_single_member", 3)
	cfg.Reports.Layouts.BalanceSheet = "layouts/bs.yaml"

	path := filepath.Join(t.TempDir(), FileName)
	err := Save(path, cfg)
	require.NoError(t, err)

	got, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, cfg.Business, got.Business)
	assert.Equal(t, cfg.Fiscal.YearStart, got.Fiscal.YearStart)
	assert.Equal(t, cfg.Reports, got.Reports)
	assert.Equal(t, cfg.Storage, got.Storage)
	assert.Equal(t, cfg.Log, got.Log)
}

func TestDefaults(t *testing.T) {
	cfg := Default("My Company", "corporation", 1)

	assert.Equal(t, "My Company", cfg.Business.Name)
	assert.Equal(t, 1, cfg.Business.CompanyID)
	assert.Equal(t, "01-01", cfg.Fiscal.YearStart)
	assert.Equal(t, sheet.DefaultIncomeCodes(), cfg.Reports.Income)
	assert.True(t, cfg.Reports.ComparePrior)
	assert.Equal(t, DriverFile, cfg.Storage.Driver)
	assert.Equal(t, "text", cfg.Log.Format)
	assert.Equal(t, "info", cfg.Log.Level)
}

func TestLoadNotFound(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nonexistent.yaml"))
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestYAMLFormat(t *testing.T) {
	cfg := Default("Test Biz", "llc_single_member", 1)
	path := filepath.Join(t.TempDir(), FileName)
	require.NoError(t, Save(path, cfg))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	contents := string(data)

	assert.Contains(t, contents, "name: Test Biz")
	assert.Contains(t, contents, "company_id: 1")
	assert.Contains(t, contents, "year_start: 01-01")
	assert.Contains(t, contents, "revenue_code: \"4\"")
	assert.Contains(t, contents, "driver: file")
	assert.NotContains(t, contents, "postgres_dsn")
}

func TestEnvOverlay(t *testing.T) {
	t.Setenv("FINSTAT_STORAGE_DRIVER", "postgres")
	t.Setenv("FINSTAT_PG_DSN", "postgres://u:p@localhost/finstat")
	t.Setenv("FINSTAT_LOG_LEVEL", "debug")

	path := filepath.Join(t.TempDir(), FileName)
	require.NoError(t, Save(path, Default("Env", "corporation", 1)))

	got, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, DriverPostgres, got.Storage.Driver)
	assert.Equal(t, "postgres://u:p@localhost/finstat", got.Storage.PostgresDSN)
	assert.Equal(t, "debug", got.Log.Level)
	assert.Equal(t, "text", got.Log.Format, "unset variables keep file values")
}

func TestValidate(t *testing.T) {
	cfg := Default("x", "corporation", 1)
	cfg.Storage.Driver = DriverPostgres
	assert.Error(t, cfg.Validate(), "postgres without dsn")

	cfg = Default("x", "corporation", 1)
	cfg.Storage.Driver = "sqlite"
	assert.Error(t, cfg.Validate())

	cfg = Default("x", "corporation", 1)
	cfg.Fiscal.YearStart = "13-01"
	assert.Error(t, cfg.Validate())
}

func TestYearStartFor(t *testing.T) {
	f := FiscalConfig{YearStart: "07-01"}
	assert.Equal(t, time.Date(2024, 7, 1, 0, 0, 0, 0, time.UTC), f.YearStartFor(time.Date(2025, 3, 31, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC), f.YearStartFor(time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC)))

	calendar := FiscalConfig{YearStart: "01-01"}
	assert.Equal(t, time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC), calendar.YearStartFor(time.Date(2025, 12, 31, 0, 0, 0, 0, time.UTC)))
}

func TestOverrides(t *testing.T) {
	root := t.TempDir()
	layout := "type: income_statement\nversion: v9\nbase: \"4\"\nrows:\n  - code: NI\n"
	mapping := "version: m9\nsections:\n  - code: CFO\n    from: [NI]\n"
	require.NoError(t, os.WriteFile(filepath.Join(root, "is.yaml"), []byte(layout), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(root, "cf.yaml"), []byte(mapping), 0o644))

	cfg := Default("x", "corporation", 1)
	layouts, err := cfg.Layouts(root)
	require.NoError(t, err)
	assert.Empty(t, layouts)
	m, err := cfg.Mapping(root)
	require.NoError(t, err)
	assert.Nil(t, m)

	cfg.Reports.Layouts.IncomeStatement = "is.yaml"
	cfg.Reports.CashFlowMapping = filepath.Join(root, "cf.yaml")
	layouts, err = cfg.Layouts(root)
	require.NoError(t, err)
	require.Contains(t, layouts, sheet.TypeIncomeStatement)
	assert.Equal(t, "v9", layouts[sheet.TypeIncomeStatement].Version())

	m, err = cfg.Mapping(root)
	require.NoError(t, err)
	require.NotNil(t, m)
	assert.Equal(t, "m9", m.Version())

	cfg.Reports.Layouts.BalanceSheet = "missing.yaml"
	_, err = cfg.Layouts(root)
	assert.ErrorIs(t, err, os.ErrNotExist)
}
