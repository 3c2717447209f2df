package cmd

import (
	"fmt"
	"strings"

	"github.com/theirongolddev/finmock/internal/cli"
	"github.com/theirongolddev/finmock/internal/cloud"
	"github.com/theirongolddev/finmock/internal/logger"
	"github.com/theirongolddev/finmock/internal/source"
	"github.com/theirongolddev/finmock/internal/store"

	"github.com/spf13/cobra"
)

var (
	flagBucket     string
	flagPrefix     string
	flagProject    string
	flagBQDataset  string
	flagRunID      string
	flagNoBigQuery bool
)

var publishCmd = &cobra.Command{
	Use:   "publish [dir]",
	Short: "Upload the CSV tables to GCS and load them into BigQuery",
	Long: "Upload the four tables to gs://<bucket>/<prefix>/<run-id>/ and, when a " +
		"BigQuery dataset is configured, replace the matching tables with a load job.",
	Args: cobra.MaximumNArgs(1),
	RunE: runPublish,
}

func init() {
	publishCmd.Flags().StringVar(&flagBucket, "bucket", "", "GCS bucket (overrides [gcs] bucket)")
	publishCmd.Flags().StringVar(&flagPrefix, "prefix", "", "Object prefix (overrides [gcs] prefix)")
	publishCmd.Flags().StringVar(&flagProject, "project", "", "GCP project (overrides [gcp] project)")
	publishCmd.Flags().StringVar(&flagBQDataset, "dataset", "", "BigQuery dataset (overrides [bigquery] dataset)")
	publishCmd.Flags().StringVar(&flagRunID, "run-id", "", "Run id used in object names (default: random UUID)")
	publishCmd.Flags().BoolVar(&flagNoBigQuery, "no-bigquery", false, "Upload only, skip the BigQuery load")
	rootCmd.AddCommand(publishCmd)
}

func runPublish(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	log := logger.FromContext(ctx)

	cfg, _, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	flags := cmd.Flags()
	if flags.Changed("bucket") {
		cfg.GCS.Bucket = flagBucket
	}
	if flags.Changed("prefix") {
		cfg.GCS.Prefix = flagPrefix
	}
	if flags.Changed("project") {
		cfg.GCP.Project = flagProject
	}
	if flags.Changed("dataset") {
		cfg.BigQuery.Dataset = flagBQDataset
	}

	dir := cfg.Output.Dir
	if len(args) == 1 {
		dir = args[0]
	}
	files, err := source.ScanDir(dir)
	if err != nil {
		return fmt.Errorf("scanning %s: %w", dir, err)
	}
	if missing := source.MissingFiles(files); len(missing) > 0 {
		return fmt.Errorf("%s is missing %s; run finmock generate first", dir, strings.Join(missing, ", "))
	}

	runID := flagRunID
	if runID == "" {
		runID = store.NewRunID()
	}
	opts := cloud.ClientOptions(cfg.GCP.CredentialsFile)

	up, err := cloud.NewUploader(ctx, cfg.GCS.Bucket, opts...)
	if err != nil {
		return err
	}
	defer func() { _ = up.Close() }()

	uploads, err := up.UploadTables(ctx, files, cfg.GCS.Prefix, runID)
	if err != nil {
		return err
	}
	rows := make([][]string, len(uploads))
	for i, u := range uploads {
		log.Debug().Str("uri", u.URI).Int64("bytes", u.Bytes).Msg("uploaded")
		rows[i] = []string{u.URI, cli.FormatBytes(u.Bytes)}
	}

	fmt.Println()
	fmt.Println(cli.RenderTitle("PUBLISH  run " + runID))
	fmt.Println()
	fmt.Print(cli.RenderTable(cli.Table{Title: "Uploaded", Headers: []string{"Object", "Size"}, Rows: rows}))

	if flagNoBigQuery || cfg.BigQuery.Dataset == "" {
		log.Info().Msg("bigquery load skipped")
		fmt.Println()
		return nil
	}

	wh, err := cloud.NewWarehouse(ctx, cfg.GCP.Project, cfg.BigQuery.Dataset, cfg.BigQuery.Location, opts...)
	if err != nil {
		return err
	}
	defer func() { _ = wh.Close() }()

	if err := wh.EnsureDataset(ctx); err != nil {
		return err
	}
	loads, err := wh.LoadTables(ctx, uploads)
	if err != nil {
		return err
	}

	loadRows := make([][]string, len(loads))
	for i, l := range loads {
		loadRows[i] = []string{cfg.BigQuery.Dataset + "." + l.Table, cli.FormatNumber(l.Rows), l.JobID}
	}
	fmt.Println()
	fmt.Print(cli.RenderTable(cli.Table{
		Title:    "Loaded into " + cfg.GCP.Project,
		Headers:  []string{"Table", "Rows", "Job"},
		Rows:     loadRows,
		LeftCols: 1,
	}))
	fmt.Println()
	return nil
}
