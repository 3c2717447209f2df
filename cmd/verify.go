package cmd

import (
	"fmt"
	"os"

	"github.com/theirongolddev/finmock/internal/cli"
	"github.com/theirongolddev/finmock/internal/generator"
	"github.com/theirongolddev/finmock/internal/logger"
	"github.com/theirongolddev/finmock/internal/model"
	"github.com/theirongolddev/finmock/internal/pipeline"
	"github.com/theirongolddev/finmock/internal/store"

	"github.com/spf13/cobra"
)

var flagNoCounts bool

var verifyCmd = &cobra.Command{
	Use:   "verify [dir]",
	Short: "Re-read the CSV tables and check dataset invariants",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runVerify,
}

func init() {
	verifyCmd.Flags().BoolVar(&flagNoCounts, "no-counts", false, "Skip the configured row-count checks")
	verifyCmd.Flags().StringVar(&flagSQLite, "sqlite", "", "Also check this SQLite database against the CSV tables")
	rootCmd.AddCommand(verifyCmd)
}

func runVerify(cmd *cobra.Command, args []string) error {
	log := logger.FromContext(cmd.Context())

	cfg, _, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	dir := cfg.Output.Dir
	if len(args) == 1 {
		dir = args[0]
	}

	res, err := pipeline.Load(dir, nil)
	if err != nil {
		return err
	}
	ds := res.Dataset
	log.Debug().Str("dir", dir).Int("transactions", len(ds.Transactions)).Msg("tables loaded")

	exp := pipeline.Expectations{Budget: cfg.Budget}
	if !flagNoCounts {
		exp.Transactions = cfg.Generate.Transactions
		exp.CostCenters = cfg.Generate.CostCenters
		exp.Accounts = len(generator.BuildAccounts())
	}
	violations := pipeline.Verify(ds, exp)

	var run store.RunInfo
	if cmd.Flags().Changed("sqlite") {
		var storeViolations []pipeline.Violation
		run, storeViolations, err = verifySQLite(cfg.Output.SQLitePath, ds)
		if err != nil {
			return err
		}
		log.Debug().Str("path", cfg.Output.SQLitePath).Str("run_id", run.ID).Msg("sqlite checked")
		violations = append(violations, storeViolations...)
	}

	fmt.Println()
	fmt.Println(cli.RenderTitle("VERIFY  " + dir))
	fmt.Println()
	fmt.Print(cli.RenderTable(cli.Table{
		Headers: []string{"Table", "Rows"},
		Rows: [][]string{
			{"fact_gl", cli.FormatNumber(int64(len(ds.Transactions)))},
			{"fact_budget_monthly", cli.FormatNumber(int64(len(ds.Budget)))},
			{"dim_account", cli.FormatNumber(int64(len(ds.Accounts)))},
			{"dim_costcenter", cli.FormatNumber(int64(len(ds.CostCenters)))},
		},
	}))
	fmt.Println()

	if run.ID != "" {
		fmt.Println("  " + cli.RenderMuted(fmt.Sprintf("sqlite run %s  seed %d  %s rows  %s",
			run.ID, run.Seed, cli.FormatNumber(int64(run.Transactions)), run.CreatedAt.Format("2006-01-02 15:04"))))
		fmt.Println()
	}

	if res.ParseErrors > 0 {
		fmt.Println("  " + cli.RenderStatus(false, fmt.Sprintf("%d malformed rows skipped", res.ParseErrors)))
	}

	const maxShown = 20
	for i, v := range violations {
		if i == maxShown {
			fmt.Println("  " + cli.RenderMuted(fmt.Sprintf("... and %d more", len(violations)-maxShown)))
			break
		}
		fmt.Println("  " + cli.RenderStatus(false, v.String()))
	}

	if len(violations) > 0 || res.ParseErrors > 0 {
		fmt.Println()
		return fmt.Errorf("verify %s: %d violations, %d malformed rows", dir, len(violations), res.ParseErrors)
	}
	fmt.Println("  " + cli.RenderStatus(true, "all invariants hold"))
	fmt.Println()
	return nil
}

// verifySQLite compares the database at path with the reloaded tables and
// returns the run it records.
func verifySQLite(path string, ds *model.Dataset) (store.RunInfo, []pipeline.Violation, error) {
	if _, err := os.Stat(path); err != nil {
		return store.RunInfo{}, nil, fmt.Errorf("sqlite database: %w", err)
	}
	db, err := store.Open(path)
	if err != nil {
		return store.RunInfo{}, nil, fmt.Errorf("opening sqlite: %w", err)
	}
	defer func() { _ = db.Close() }()

	run, ok, err := db.LastRun()
	if err != nil {
		return store.RunInfo{}, nil, fmt.Errorf("reading run: %w", err)
	}
	if !ok {
		return run, []pipeline.Violation{{Rule: "sqlite-run", Detail: path + " records no generation run"}}, nil
	}

	snap, err := readSnapshot(db)
	if err != nil {
		return run, nil, err
	}
	return run, pipeline.VerifyStore(ds, snap), nil
}
