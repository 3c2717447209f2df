// Package cmd implements the finmock CLI commands.
package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/theirongolddev/finmock/internal/config"
	"github.com/theirongolddev/finmock/internal/logger"

	"github.com/spf13/cobra"
)

var (
	flagConfig       string
	flagOut          string
	flagTransactions int
	flagSeed         uint64
	flagStart        string
	flagEnd          string
	flagCurrency     string
	flagQuiet        bool
	flagVerbose      bool
	flagLogFormat    string
)

var rootCmd = &cobra.Command{
	Use:   "finmock",
	Short: "Mock financial dataset generator",
	Long: "Generate a reproducible mock P&L dataset: general-ledger postings, " +
		"a monthly budget, and the account and cost-center dimensions, written as CSV.",
	SilenceUsage:      true,
	PersistentPreRunE: initLogger,
	RunE:              runGenerate,
}

// Execute is the main entry point called from main.go.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		stop()
		os.Exit(1)
	}
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&flagConfig, "config", "", "Config file (default "+config.Path()+")")
	pf.StringVarP(&flagOut, "out", "o", "", "Output directory for the CSV tables")
	pf.IntVarP(&flagTransactions, "transactions", "n", 0, "Number of GL transactions to generate")
	pf.Uint64Var(&flagSeed, "seed", 0, "Random seed")
	pf.StringVar(&flagStart, "start", "", "First posting date (YYYY-MM-DD)")
	pf.StringVar(&flagEnd, "end", "", "Last posting date, inclusive (YYYY-MM-DD)")
	pf.StringVar(&flagCurrency, "currency", "", "Currency code written on every posting")
	pf.BoolVarP(&flagQuiet, "quiet", "q", false, "Only log warnings and errors")
	pf.BoolVarP(&flagVerbose, "verbose", "v", false, "Log debug output")
	pf.StringVar(&flagLogFormat, "log-format", "console", "Log format: console or json")

	addGenerateFlags(rootCmd)
}

func initLogger(cmd *cobra.Command, _ []string) error {
	log, err := logger.ForFormat(flagLogFormat, os.Stderr, flagVerbose, flagQuiet)
	if err != nil {
		return err
	}
	cmd.SetContext(logger.WithContext(cmd.Context(), log))
	return nil
}

// loadConfig resolves the effective configuration: defaults, then the
// config file, then any flags set on the command line. It also returns
// where the file values came from.
func loadConfig(cmd *cobra.Command) (config.Config, string, error) {
	path := flagConfig
	if path == "" {
		path = config.Path()
	}

	cfg := config.DefaultConfig()
	source := "defaults"
	switch {
	case config.Exists(path):
		loaded, err := config.LoadFrom(path)
		if err != nil {
			return cfg, "", err
		}
		cfg, source = loaded, path
	case flagConfig != "":
		return cfg, "", fmt.Errorf("config file %s not found", path)
	}

	applyFlags(cmd, &cfg)
	return cfg, source, nil
}

func applyFlags(cmd *cobra.Command, cfg *config.Config) {
	flags := cmd.Flags()
	if flags.Changed("out") {
		cfg.Output.Dir = flagOut
	}
	if flags.Changed("transactions") {
		cfg.Generate.Transactions = flagTransactions
	}
	if flags.Changed("seed") {
		cfg.Generate.Seed = flagSeed
	}
	if flags.Changed("start") {
		cfg.Generate.StartDate = flagStart
	}
	if flags.Changed("end") {
		cfg.Generate.EndDate = flagEnd
	}
	if flags.Changed("currency") {
		cfg.Generate.Currency = flagCurrency
	}
	if flags.Changed("sqlite") {
		cfg.Output.SQLitePath = flagSQLite
	}
}

// configPath returns the file setup and config read and write.
func configPath() string {
	if flagConfig != "" {
		return flagConfig
	}
	return config.Path()
}
