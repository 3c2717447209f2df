package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/theirongolddev/finmock/internal/cli"
	"github.com/theirongolddev/finmock/internal/config"
	"github.com/theirongolddev/finmock/internal/export"
	"github.com/theirongolddev/finmock/internal/logger"
	"github.com/theirongolddev/finmock/internal/model"
	"github.com/theirongolddev/finmock/internal/pipeline"
	"github.com/theirongolddev/finmock/internal/store"

	"github.com/spf13/cobra"
)

var flagSQLite string

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate the dataset and write the CSV tables",
	Args:  cobra.NoArgs,
	RunE:  runGenerate,
}

func init() {
	addGenerateFlags(generateCmd)
	rootCmd.AddCommand(generateCmd)
}

func addGenerateFlags(c *cobra.Command) {
	c.Flags().StringVar(&flagSQLite, "sqlite", "", "Also load the tables into this SQLite database")
}

func runGenerate(cmd *cobra.Command, _ []string) error {
	log := logger.FromContext(cmd.Context())

	cfg, source, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	log.Debug().Str("config", source).Msg("configuration resolved")

	start := time.Now()
	progressFn := func(current, total int) {
		if flagQuiet {
			return
		}
		fmt.Fprintf(os.Stderr, "\r  Sampling [%s/%s]", cli.FormatNumber(int64(current)), cli.FormatNumber(int64(total)))
		if current == total {
			fmt.Fprintln(os.Stderr)
		}
	}

	ds, err := pipeline.Generate(cfg, progressFn)
	if err != nil {
		return fmt.Errorf("generating dataset: %w", err)
	}
	log.Debug().
		Int("transactions", len(ds.Transactions)).
		Int("budget_lines", len(ds.Budget)).
		Dur("elapsed", time.Since(start)).
		Msg("dataset generated")

	files, err := export.WriteDataset(cfg.Output.Dir, ds)
	if err != nil {
		return err
	}
	for _, f := range files {
		log.Debug().Str("file", f.Path).Int("rows", f.Rows).Int64("bytes", f.Bytes).Msg("table written")
	}

	var (
		run  store.RunInfo
		snap pipeline.StoreSnapshot
	)
	if cfg.Output.SQLitePath != "" {
		run, snap, err = saveSQLite(cfg, ds)
		if err != nil {
			return err
		}
		log.Info().Str("path", cfg.Output.SQLitePath).Str("run_id", run.ID).Msg("loaded into sqlite")
	}

	printGenerateSummary(cfg, ds, files, time.Since(start))
	if cfg.Output.SQLitePath != "" {
		printSQLiteSummary(cfg.Output.SQLitePath, run, snap)
	}
	return nil
}

// saveSQLite loads ds into the configured database and reads back what
// the database now holds.
func saveSQLite(cfg config.Config, ds *model.Dataset) (store.RunInfo, pipeline.StoreSnapshot, error) {
	db, err := store.Open(cfg.Output.SQLitePath)
	if err != nil {
		return store.RunInfo{}, pipeline.StoreSnapshot{}, fmt.Errorf("opening sqlite: %w", err)
	}
	defer func() { _ = db.Close() }()

	run := store.RunInfo{
		ID:           store.NewRunID(),
		Seed:         cfg.Generate.Seed,
		Transactions: len(ds.Transactions),
		StartDate:    cfg.Generate.StartDate,
		EndDate:      cfg.Generate.EndDate,
		Currency:     cfg.Generate.Currency,
		CreatedAt:    time.Now(),
	}
	if err := db.SaveDataset(ds, run); err != nil {
		return run, pipeline.StoreSnapshot{}, fmt.Errorf("saving to sqlite: %w", err)
	}
	snap, err := readSnapshot(db)
	return run, snap, err
}

func readSnapshot(db *store.DB) (pipeline.StoreSnapshot, error) {
	counts, err := db.TableCounts()
	if err != nil {
		return pipeline.StoreSnapshot{}, err
	}
	totals, err := db.CategoryTotals()
	if err != nil {
		return pipeline.StoreSnapshot{}, fmt.Errorf("summing categories: %w", err)
	}
	return pipeline.StoreSnapshot{Counts: counts, Totals: totals}, nil
}

func printSQLiteSummary(path string, run store.RunInfo, snap pipeline.StoreSnapshot) {
	rows := make([][]string, 0, len(snap.Counts)+len(snap.Totals)+1)
	for _, table := range []string{model.TableGL, model.TableBudget, model.TableAccount, model.TableCostCenter} {
		rows = append(rows, []string{table, cli.FormatNumber(int64(snap.Counts[table]))})
	}
	rows = append(rows, []string{"---"})
	for _, c := range model.Categories {
		rows = append(rows, []string{"Σ " + string(c), cli.FormatMoney(snap.Totals[c], run.Currency)})
	}

	fmt.Print(cli.RenderTable(cli.Table{
		Title:   "SQLite " + path,
		Headers: []string{"Table", "Rows / total"},
		Rows:    rows,
	}))
	fmt.Printf("  %s\n\n", cli.RenderMuted("run "+run.ID))
}

func printGenerateSummary(cfg config.Config, ds *model.Dataset, files []export.FileResult, elapsed time.Duration) {
	fmt.Println()
	fmt.Println(cli.RenderTitle(fmt.Sprintf("FINMOCK  seed %d  %s → %s",
		cfg.Generate.Seed, cfg.Generate.StartDate, cfg.Generate.EndDate)))
	fmt.Println()

	var totalBytes int64
	fileRows := make([][]string, 0, len(files)+2)
	for _, f := range files {
		totalBytes += f.Bytes
		fileRows = append(fileRows, []string{f.Path, cli.FormatNumber(int64(f.Rows)), cli.FormatBytes(f.Bytes)})
	}
	fileRows = append(fileRows, []string{"---"}, []string{"Total", "", cli.FormatBytes(totalBytes)})

	fmt.Print(cli.RenderTable(cli.Table{
		Title:   "Written",
		Headers: []string{"File", "Rows", "Size"},
		Rows:    fileRows,
	}))
	fmt.Println()

	s := pipeline.Summarize(ds)
	plRows := make([][]string, 0, len(s.Categories)+2)
	for _, c := range s.Categories {
		plRows = append(plRows, []string{
			string(c.Category),
			cli.FormatNumber(int64(c.Transactions)),
			cli.FormatMoney(c.Actual, ""),
			cli.FormatMoney(c.Budget, ""),
			cli.FormatVariance(c.Actual, c.Budget),
		})
	}
	plRows = append(plRows, []string{"---"}, []string{
		"Operating net",
		cli.FormatNumber(int64(s.Transactions)),
		cli.FormatMoney(s.OperatingNet, ""),
		cli.FormatMoney(s.BudgetNet, ""),
		cli.FormatVariance(s.OperatingNet, s.BudgetNet),
	})

	fmt.Print(cli.RenderTable(cli.Table{
		Title:   "P&L (" + cfg.Generate.Currency + ")",
		Headers: []string{"Category", "Postings", "Actual", "Budget", "Variance"},
		Rows:    plRows,
	}))

	months := pipeline.AggregateMonths(ds)
	nets := make([]float64, len(months))
	for i, m := range months {
		nets[i] = m.Net
	}
	fmt.Printf("\n  Monthly net  %s\n", cli.RenderSparkline(nets))
	fmt.Printf("  %s\n\n", cli.RenderMuted(fmt.Sprintf("Gross margin %s · %d months · %s",
		cli.FormatPercent(s.GrossMargin), s.Months, cli.FormatDuration(elapsed))))
}
