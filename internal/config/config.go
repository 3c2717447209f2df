// Package config loads and validates finmock settings from TOML.
package config

import (
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"
)

// ErrInvalidConfig is wrapped by every validation failure.
var ErrInvalidConfig = errors.New("invalid config")

// Config holds all finmock configuration.
type Config struct {
	Output     OutputConfig     `toml:"output"`
	Generate   GenerateConfig   `toml:"generate"`
	Mix        MixConfig        `toml:"mix"`
	Amounts    AmountsConfig    `toml:"amounts"`
	Budget     BudgetConfig     `toml:"budget"`
	GCP        GCPConfig        `toml:"gcp"`
	GCS        GCSConfig        `toml:"gcs"`
	BigQuery   BigQueryConfig   `toml:"bigquery"`
	Appearance AppearanceConfig `toml:"appearance"`
}

// OutputConfig controls where generated tables are written.
type OutputConfig struct {
	Dir        string `toml:"dir"`
	SQLitePath string `toml:"sqlite_path,omitempty"`
}

// GenerateConfig holds the sampling parameters.
type GenerateConfig struct {
	Transactions int    `toml:"transactions"`
	StartDate    string `toml:"start_date"`
	EndDate      string `toml:"end_date"`
	Currency     string `toml:"currency"`
	Seed         uint64 `toml:"seed"`
	CostCenters  int    `toml:"cost_centers"`
}

// MixConfig holds the probability of each P&L category per transaction.
type MixConfig struct {
	Revenue float64 `toml:"revenue"`
	COGS    float64 `toml:"cogs"`
	OPEX    float64 `toml:"opex"`
}

// AmountProfile parameterizes a log-normal magnitude: exp(Mu + Sigma*Z).
type AmountProfile struct {
	Mu    float64 `toml:"mu"`
	Sigma float64 `toml:"sigma"`
}

// AmountsConfig holds one amount profile per category.
type AmountsConfig struct {
	Revenue AmountProfile `toml:"revenue"`
	COGS    AmountProfile `toml:"cogs"`
	OPEX    AmountProfile `toml:"opex"`
}

// BudgetConfig holds the multipliers applied to monthly actuals.
type BudgetConfig struct {
	RevenueFactor float64 `toml:"revenue_factor"`
	CostFactor    float64 `toml:"cost_factor"`
}

// GCPConfig holds credentials shared by the GCS and BigQuery clients.
type GCPConfig struct {
	Project         string `toml:"project,omitempty"`
	CredentialsFile string `toml:"credentials_file,omitempty"`
}

// GCSConfig names the upload destination for publish.
type GCSConfig struct {
	Bucket string `toml:"bucket,omitempty"`
	Prefix string `toml:"prefix,omitempty"`
}

// BigQueryConfig names the load destination for publish.
type BigQueryConfig struct {
	Dataset  string `toml:"dataset,omitempty"`
	Location string `toml:"location,omitempty"`
}

// AppearanceConfig holds theme settings.
type AppearanceConfig struct {
	Theme string `toml:"theme"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	return Config{
		Output: OutputConfig{
			Dir: "data_raw",
		},
		Generate: GenerateConfig{
			Transactions: 220_000,
			StartDate:    "2024-01-01",
			EndDate:      "2026-01-01",
			Currency:     "EUR",
			Seed:         42,
			CostCenters:  45,
		},
		Mix:     DefaultMix,
		Amounts: DefaultAmounts,
		Budget:  DefaultBudget,
		GCS: GCSConfig{
			Prefix: "finmock",
		},
		BigQuery: BigQueryConfig{
			Location: "EU",
		},
		Appearance: AppearanceConfig{
			Theme: "flexoki-dark",
		},
	}
}

// Dir returns the XDG-compliant config directory.
func Dir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "finmock")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "finmock")
}

// Path returns the full path to the default config file.
func Path() string {
	return filepath.Join(Dir(), "config.toml")
}

// LoadFrom reads the config file at path. A missing file yields defaults.
func LoadFrom(path string) (Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("reading config: %w", err)
	}

	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing config: %w", err)
	}

	return cfg, nil
}

// SaveTo writes the config to path, creating parent directories.
func SaveTo(path string, cfg Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating config dir: %w", err)
	}

	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o600)
	if err != nil {
		return fmt.Errorf("creating config file: %w", err)
	}

	if err := toml.NewEncoder(f).Encode(cfg); err != nil {
		_ = f.Close()
		return fmt.Errorf("encoding config: %w", err)
	}
	return f.Close()
}

// Exists returns true if a config file exists at path.
func Exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// StartTime parses the configured start date.
func (g GenerateConfig) StartTime() (time.Time, error) {
	return parseDate("start_date", g.StartDate)
}

// EndTime parses the configured end date.
func (g GenerateConfig) EndTime() (time.Time, error) {
	return parseDate("end_date", g.EndDate)
}

// ParseDate parses a YYYY-MM-DD date as UTC midnight.
func ParseDate(s string) (time.Time, error) {
	return parseDate("date", s)
}

func parseDate(field, s string) (time.Time, error) {
	t, err := time.ParseInLocation("2006-01-02", s, time.UTC)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %s %q is not YYYY-MM-DD", ErrInvalidConfig, field, s)
	}
	return t, nil
}

// Validate checks the generation parameters before any sampling starts.
func (c Config) Validate() error {
	g := c.Generate
	if c.Output.Dir == "" {
		return fmt.Errorf("%w: output dir is empty", ErrInvalidConfig)
	}
	if g.Transactions < 0 {
		return fmt.Errorf("%w: transactions must be >= 0, got %d", ErrInvalidConfig, g.Transactions)
	}
	if g.CostCenters < 1 {
		return fmt.Errorf("%w: cost_centers must be >= 1, got %d", ErrInvalidConfig, g.CostCenters)
	}
	if g.Currency == "" {
		return fmt.Errorf("%w: currency is empty", ErrInvalidConfig)
	}

	start, err := g.StartTime()
	if err != nil {
		return err
	}
	end, err := g.EndTime()
	if err != nil {
		return err
	}
	if end.Before(start) {
		return fmt.Errorf("%w: end_date %s is before start_date %s", ErrInvalidConfig, g.EndDate, g.StartDate)
	}

	m := c.Mix
	weights := []struct {
		name string
		w    float64
	}{{"revenue", m.Revenue}, {"cogs", m.COGS}, {"opex", m.OPEX}}
	for _, x := range weights {
		if x.w < 0 {
			return fmt.Errorf("%w: mix.%s must be >= 0, got %g", ErrInvalidConfig, x.name, x.w)
		}
	}
	if sum := m.Revenue + m.COGS + m.OPEX; math.Abs(sum-1) > 1e-9 {
		return fmt.Errorf("%w: mix weights sum to %g, want 1", ErrInvalidConfig, sum)
	}

	profiles := []struct {
		name string
		p    AmountProfile
	}{{"revenue", c.Amounts.Revenue}, {"cogs", c.Amounts.COGS}, {"opex", c.Amounts.OPEX}}
	for _, x := range profiles {
		if x.p.Sigma <= 0 {
			return fmt.Errorf("%w: amounts.%s.sigma must be > 0, got %g", ErrInvalidConfig, x.name, x.p.Sigma)
		}
	}

	if c.Budget.RevenueFactor <= 0 || c.Budget.CostFactor <= 0 {
		return fmt.Errorf("%w: budget factors must be > 0", ErrInvalidConfig)
	}

	return nil
}
