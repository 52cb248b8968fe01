// Package config loads the finstat.yaml repository configuration.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v3"

	"github.com/cleared-dev/finstat/internal/cashflow"
	"github.com/cleared-dev/finstat/internal/sheet"
)

// FileName is the configuration file at the repository root.
const FileName = "finstat.yaml"

// Storage drivers.
const (
	DriverFile     = "file"
	DriverPostgres = "postgres"
)

// Config represents the top-level finstat.yaml configuration.
type Config struct {
	Business BusinessConfig `yaml:"business"`
	Fiscal   FiscalConfig   `yaml:"fiscal"`
	Reports  ReportsConfig  `yaml:"reports"`
	Storage  StorageConfig  `yaml:"storage"`
	Log      LogConfig      `yaml:"log"`
}

// BusinessConfig identifies the reporting entity.
type BusinessConfig struct {
	Name       string `yaml:"name"`
	EntityType string `yaml:"entity_type"`
	CompanyID  int    `yaml:"company_id"`
}

// FiscalConfig defines the fiscal year boundaries.
type FiscalConfig struct {
	YearStart string `yaml:"year_start"` // "MM-DD" format, e.g. "01-01"
}

// ReportsConfig selects statement tables. Empty paths use the built-in
// tables; relative paths resolve against the repository root.
type ReportsConfig struct {
	Layouts         LayoutsConfig     `yaml:"layouts,omitempty"`
	CashFlowMapping string            `yaml:"cash_flow_mapping,omitempty"`
	Income          sheet.IncomeCodes `yaml:"income"`
	ComparePrior    bool              `yaml:"compare_prior"`
}

// LayoutsConfig holds optional layout override files.
type LayoutsConfig struct {
	BalanceSheet    string `yaml:"balance_sheet,omitempty"`
	IncomeStatement string `yaml:"income_statement,omitempty"`
}

// StorageConfig selects the ledger repository.
type StorageConfig struct {
	Driver      string `yaml:"driver"`
	PostgresDSN string `yaml:"postgres_dsn,omitempty"`
}

// LogConfig controls structured logging.
type LogConfig struct {
	Format string `yaml:"format"`
	Level  string `yaml:"level"`
}

// env holds the environment overrides. Unset variables leave the file
// values alone.
type env struct {
	PGDSN         string `envconfig:"PG_DSN"`
	StorageDriver string `envconfig:"STORAGE_DRIVER"`
	LogFormat     string `envconfig:"LOG_FORMAT"`
	LogLevel      string `envconfig:"LOG_LEVEL"`
}

// Load reads a finstat.yaml file from disk and applies FINSTAT_*
// environment overrides.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.ApplyEnv(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Save writes a Config to a YAML file.
func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}

// Default returns a Config with sensible defaults for a new repository.
func Default(businessName, entityType string, companyID int) *Config {
	return &Config{
		Business: BusinessConfig{
			Name:       businessName,
			EntityType: entityType,
			CompanyID:  companyID,
		},
		Fiscal: FiscalConfig{
			YearStart: "01-01",
		},
		Reports: ReportsConfig{
			Income:       sheet.DefaultIncomeCodes(),
			ComparePrior: true,
		},
		Storage: StorageConfig{
			Driver: DriverFile,
		},
		Log: LogConfig{
			Format: "text",
			Level:  "info",
		},
	}
}

// ApplyEnv overlays FINSTAT_PG_DSN, FINSTAT_STORAGE_DRIVER,
// FINSTAT_LOG_FORMAT and FINSTAT_LOG_LEVEL.
func (c *Config) ApplyEnv() error {
	var e env
	if err := envconfig.Process("finstat", &e); err != nil {
		return fmt.Errorf("reading environment: %w", err)
	}
	if e.PGDSN != "" {
		c.Storage.PostgresDSN = e.PGDSN
	}
	if e.StorageDriver != "" {
		c.Storage.Driver = e.StorageDriver
	}
	if e.LogFormat != "" {
		c.Log.Format = e.LogFormat
	}
	if e.LogLevel != "" {
		c.Log.Level = e.LogLevel
	}
	return nil
}

// Validate checks the values that would otherwise fail late.
func (c *Config) Validate() error {
	switch c.Storage.Driver {
	case "", DriverFile:
	case DriverPostgres:
		if c.Storage.PostgresDSN == "" {
			return fmt.Errorf("config: storage driver %q needs postgres_dsn", DriverPostgres)
		}
	default:
		return fmt.Errorf("config: unknown storage driver %q", c.Storage.Driver)
	}
	if c.Fiscal.YearStart != "" {
		if _, _, err := c.Fiscal.monthDay(); err != nil {
			return err
		}
	}
	return nil
}

func (f FiscalConfig) monthDay() (time.Month, int, error) {
	mm, dd, ok := strings.Cut(f.YearStart, "-")
	m, errM := strconv.Atoi(mm)
	d, errD := strconv.Atoi(dd)
	if !ok || errM != nil || errD != nil || m < 1 || m > 12 || d < 1 || d > 28 {
		return 0, 0, fmt.Errorf("config: invalid fiscal year_start %q (want MM-DD, day 1-28)", f.YearStart)
	}
	return time.Month(m), d, nil
}

// YearStartFor returns the first day of the fiscal year containing t.
func (f FiscalConfig) YearStartFor(t time.Time) time.Time {
	m, d, err := f.monthDay()
	if err != nil {
		m, d = time.January, 1
	}
	start := time.Date(t.Year(), m, d, 0, 0, 0, 0, time.UTC)
	if start.After(t) {
		start = start.AddDate(-1, 0, 0)
	}
	return start
}

// Layouts loads the configured layout overrides. Types without an
// override are absent from the result.
func (c *Config) Layouts(root string) (map[sheet.Type]sheet.Layout, error) {
	out := make(map[sheet.Type]sheet.Layout)
	for t, path := range map[sheet.Type]string{
		sheet.TypeBalanceSheet:    c.Reports.Layouts.BalanceSheet,
		sheet.TypeIncomeStatement: c.Reports.Layouts.IncomeStatement,
	} {
		if path == "" {
			continue
		}
		f, err := os.Open(resolve(root, path))
		if err != nil {
			return nil, fmt.Errorf("opening %s layout: %w", t, err)
		}
		l, err := sheet.LoadLayout(f)
		f.Close()
		if err != nil {
			return nil, fmt.Errorf("loading %s: %w", path, err)
		}
		out[t] = l
	}
	return out, nil
}

// Mapping loads the configured cash-flow mapping, or nil for the built-in
// one.
func (c *Config) Mapping(root string) (*cashflow.Mapping, error) {
	if c.Reports.CashFlowMapping == "" {
		return nil, nil
	}
	f, err := os.Open(resolve(root, c.Reports.CashFlowMapping))
	if err != nil {
		return nil, fmt.Errorf("opening cash-flow mapping: %w", err)
	}
	defer f.Close()
	m, err := cashflow.LoadMapping(f)
	if err != nil {
		return nil, fmt.Errorf("loading %s: %w", c.Reports.CashFlowMapping, err)
	}
	return &m, nil
}

func resolve(root, path string) string {
	if filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(root, path)
}
