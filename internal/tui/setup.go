package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/theirongolddev/finmock/internal/config"
	"github.com/theirongolddev/finmock/internal/model"
	"github.com/theirongolddev/finmock/internal/tui/theme"

	"github.com/charmbracelet/huh"
)

// SetupValues holds the wizard's form fields as edited strings.
type SetupValues struct {
	OutputDir    string
	Transactions string
	Seed         string
	StartDate    string
	EndDate      string
	Currency     string
	SQLitePath   string
	Theme        string

	Publish     bool
	Project     string
	Bucket      string
	BQDataset   string
	Credentials string
}

// SetupValuesFrom seeds the wizard with the current configuration.
func SetupValuesFrom(cfg config.Config) SetupValues {
	return SetupValues{
		OutputDir:    cfg.Output.Dir,
		Transactions: strconv.Itoa(cfg.Generate.Transactions),
		Seed:         strconv.FormatUint(cfg.Generate.Seed, 10),
		StartDate:    cfg.Generate.StartDate,
		EndDate:      cfg.Generate.EndDate,
		Currency:     cfg.Generate.Currency,
		SQLitePath:   cfg.Output.SQLitePath,
		Theme:        cfg.Appearance.Theme,
		Publish:      cfg.GCS.Bucket != "",
		Project:      cfg.GCP.Project,
		Bucket:       cfg.GCS.Bucket,
		BQDataset:    cfg.BigQuery.Dataset,
		Credentials:  cfg.GCP.CredentialsFile,
	}
}

// NewSetupForm builds the interactive setup wizard bound to v.
func NewSetupForm(v *SetupValues) *huh.Form {
	themeOpts := huh.NewOptions(theme.Names()...)

	return huh.NewForm(
		huh.NewGroup(
			huh.NewNote().
				Title("finmock setup").
				Description("Defaults for generating the mock P&L dataset."),
			huh.NewInput().Title("Output directory").Value(&v.OutputDir).Validate(required("output directory")),
			huh.NewInput().Title("Transactions").Value(&v.Transactions).Validate(nonNegativeInt),
			huh.NewInput().Title("Seed").Value(&v.Seed).Validate(validSeed),
		),
		huh.NewGroup(
			huh.NewInput().Title("Start date").Placeholder(model.DateLayout).Value(&v.StartDate).Validate(validDate),
			huh.NewInput().Title("End date (inclusive)").Placeholder(model.DateLayout).Value(&v.EndDate).Validate(validDate),
			huh.NewInput().Title("Currency").Value(&v.Currency).Validate(required("currency")),
			huh.NewInput().Title("SQLite database").Description("Leave blank to skip").Value(&v.SQLitePath),
		),
		huh.NewGroup(
			huh.NewSelect[string]().Title("Preview theme").Options(themeOpts...).Value(&v.Theme),
			huh.NewConfirm().Title("Configure Google Cloud publishing?").Value(&v.Publish),
		),
		huh.NewGroup(
			huh.NewInput().Title("GCP project").Value(&v.Project),
			huh.NewInput().Title("GCS bucket").Value(&v.Bucket),
			huh.NewInput().Title("BigQuery dataset").Description("Leave blank to upload only").Value(&v.BQDataset),
			huh.NewInput().Title("Credentials file").Description("Blank uses application default credentials").Value(&v.Credentials),
		).WithHideFunc(func() bool { return !v.Publish }),
	).WithTheme(huh.ThemeCharm())
}

// ApplySetup copies the wizard values into cfg and validates the result.
func ApplySetup(cfg *config.Config, v SetupValues) error {
	n, err := strconv.Atoi(strings.TrimSpace(v.Transactions))
	if err != nil {
		return fmt.Errorf("transactions: %w", err)
	}
	seed, err := strconv.ParseUint(strings.TrimSpace(v.Seed), 10, 64)
	if err != nil {
		return fmt.Errorf("seed: %w", err)
	}

	cfg.Output.Dir = strings.TrimSpace(v.OutputDir)
	cfg.Output.SQLitePath = strings.TrimSpace(v.SQLitePath)
	cfg.Generate.Transactions = n
	cfg.Generate.Seed = seed
	cfg.Generate.StartDate = strings.TrimSpace(v.StartDate)
	cfg.Generate.EndDate = strings.TrimSpace(v.EndDate)
	cfg.Generate.Currency = strings.ToUpper(strings.TrimSpace(v.Currency))
	cfg.Appearance.Theme = v.Theme

	if v.Publish {
		cfg.GCP.Project = strings.TrimSpace(v.Project)
		cfg.GCP.CredentialsFile = strings.TrimSpace(v.Credentials)
		cfg.GCS.Bucket = strings.TrimSpace(v.Bucket)
		cfg.BigQuery.Dataset = strings.TrimSpace(v.BQDataset)
	}

	return cfg.Validate()
}

func required(field string) func(string) error {
	return func(s string) error {
		if strings.TrimSpace(s) == "" {
			return fmt.Errorf("%s is required", field)
		}
		return nil
	}
}

func nonNegativeInt(s string) error {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n < 0 {
		return fmt.Errorf("enter a whole number of at least 0")
	}
	return nil
}

func validSeed(s string) error {
	if _, err := strconv.ParseUint(strings.TrimSpace(s), 10, 64); err != nil {
		return fmt.Errorf("enter a non-negative integer")
	}
	return nil
}

func validDate(s string) error {
	if _, err := config.ParseDate(strings.TrimSpace(s)); err != nil {
		return fmt.Errorf("use %s", model.DateLayout)
	}
	return nil
}
