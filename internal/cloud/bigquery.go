package cloud

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"cloud.google.com/go/bigquery"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"

	"github.com/theirongolddev/finmock/internal/model"
)

// TableSchemas maps each output file to its BigQuery schema. Column order
// matches the CSV headers so positional CSV loading lines up.
var TableSchemas = map[string]bigquery.Schema{
	model.FileGL: {
		{Name: "txn_id", Type: bigquery.StringFieldType, Required: true},
		{Name: "txn_date", Type: bigquery.DateFieldType, Required: true},
		{Name: "amount", Type: bigquery.NumericFieldType, Required: true},
		{Name: "currency", Type: bigquery.StringFieldType, Required: true},
		{Name: "account_id", Type: bigquery.StringFieldType, Required: true},
		{Name: "cost_center_id", Type: bigquery.StringFieldType, Required: true},
		{Name: "country", Type: bigquery.StringFieldType},
		{Name: "vendor_customer", Type: bigquery.StringFieldType},
		{Name: "description", Type: bigquery.StringFieldType},
	},
	model.FileBudget: {
		{Name: "month_start", Type: bigquery.DateFieldType, Required: true},
		{Name: "account_id", Type: bigquery.StringFieldType, Required: true},
		{Name: "cost_center_id", Type: bigquery.StringFieldType, Required: true},
		{Name: "budget_amount", Type: bigquery.NumericFieldType, Required: true},
	},
	model.FileAccount: {
		{Name: "account_id", Type: bigquery.StringFieldType, Required: true},
		{Name: "account_name", Type: bigquery.StringFieldType},
		{Name: "pl_level_1", Type: bigquery.StringFieldType},
		{Name: "pl_level_2", Type: bigquery.StringFieldType},
		{Name: "pl_level_3", Type: bigquery.StringFieldType},
		{Name: "sort_pl1", Type: bigquery.IntegerFieldType},
	},
	model.FileCostCenter: {
		{Name: "cost_center_id", Type: bigquery.StringFieldType, Required: true},
		{Name: "cost_center_name", Type: bigquery.StringFieldType},
		{Name: "department", Type: bigquery.StringFieldType},
		{Name: "region", Type: bigquery.StringFieldType},
		{Name: "manager", Type: bigquery.StringFieldType},
	},
}

// TableID turns an output file name into a BigQuery table id.
func TableID(file string) string {
	return strings.TrimSuffix(file, ".csv")
}

// LoadResult reports one completed load job.
type LoadResult struct {
	Table string
	JobID string
	Rows  int64
}

// Warehouse loads uploaded tables into one BigQuery dataset.
type Warehouse struct {
	client   *bigquery.Client
	dataset  string
	location string
}

// NewWarehouse creates a BigQuery client for project.
func NewWarehouse(ctx context.Context, project, dataset, location string, opts ...option.ClientOption) (*Warehouse, error) {
	if project == "" {
		return nil, fmt.Errorf("gcp project is not configured")
	}
	if dataset == "" {
		return nil, fmt.Errorf("bigquery dataset is not configured")
	}
	client, err := bigquery.NewClient(ctx, project, opts...)
	if err != nil {
		return nil, fmt.Errorf("bigquery.NewClient: %w", err)
	}
	client.Location = location
	return &Warehouse{client: client, dataset: dataset, location: location}, nil
}

// Close releases the BigQuery client.
func (w *Warehouse) Close() error {
	return w.client.Close()
}

// EnsureDataset creates the dataset if it does not exist yet.
func (w *Warehouse) EnsureDataset(ctx context.Context) error {
	err := w.client.Dataset(w.dataset).Create(ctx, &bigquery.DatasetMetadata{
		Location:    w.location,
		Description: "finmock synthetic P&L dataset",
	})
	if err == nil || isAlreadyExists(err) {
		return nil
	}
	return fmt.Errorf("creating dataset %s: %w", w.dataset, err)
}

func isAlreadyExists(err error) bool {
	var apiErr *googleapi.Error
	return errors.As(err, &apiErr) && apiErr.Code == http.StatusConflict
}

// LoadTables runs one truncating CSV load job per uploaded table.
func (w *Warehouse) LoadTables(ctx context.Context, uploads []Uploaded) ([]LoadResult, error) {
	out := make([]LoadResult, 0, len(uploads))
	for _, u := range uploads {
		res, err := w.loadTable(ctx, u)
		if err != nil {
			return out, err
		}
		out = append(out, res)
	}
	return out, nil
}

func (w *Warehouse) loadTable(ctx context.Context, u Uploaded) (LoadResult, error) {
	schema, ok := TableSchemas[u.Name]
	if !ok {
		return LoadResult{}, fmt.Errorf("no schema for %s", u.Name)
	}
	table := TableID(u.Name)

	ref := bigquery.NewGCSReference(u.URI)
	ref.SourceFormat = bigquery.CSV
	ref.SkipLeadingRows = 1
	ref.Schema = schema

	loader := w.client.Dataset(w.dataset).Table(table).LoaderFrom(ref)
	loader.WriteDisposition = bigquery.WriteTruncate
	loader.CreateDisposition = bigquery.CreateIfNeeded

	job, err := loader.Run(ctx)
	if err != nil {
		return LoadResult{}, fmt.Errorf("starting load into %s: %w", table, err)
	}
	status, err := job.Wait(ctx)
	if err != nil {
		return LoadResult{}, fmt.Errorf("waiting for load into %s: %w", table, err)
	}
	if err := status.Err(); err != nil {
		return LoadResult{}, fmt.Errorf("load into %s failed: %w", table, err)
	}

	res := LoadResult{Table: table, JobID: job.ID()}
	if stats, ok := status.Statistics.Details.(*bigquery.LoadStatistics); ok {
		res.Rows = stats.OutputRows
	}
	return res, nil
}
