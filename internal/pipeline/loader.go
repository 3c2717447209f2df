package pipeline

import (
	"fmt"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/theirongolddev/finmock/internal/model"
	"github.com/theirongolddev/finmock/internal/source"
)

// LoadResult holds a dataset reloaded from disk plus parse diagnostics.
type LoadResult struct {
	Dataset     *model.Dataset
	Files       []source.DiscoveredFile
	ParseErrors int
}

// Load reads the four table files from dir. Files are parsed in parallel,
// one worker per file. Every table must be present.
func Load(dir string, progressFn ProgressFunc) (*LoadResult, error) {
	files, err := source.ScanDir(dir)
	if err != nil {
		return nil, fmt.Errorf("scanning %s: %w", dir, err)
	}
	if missing := source.MissingFiles(files); len(missing) > 0 {
		return nil, fmt.Errorf("%s is missing %s", dir, strings.Join(missing, ", "))
	}

	results := make([]source.ParseResult, len(files))
	var wg sync.WaitGroup
	var processed atomic.Int64

	wg.Add(len(files))
	for i := range files {
		go func(idx int) {
			defer wg.Done()
			results[idx] = source.ParseFile(files[idx])
			n := processed.Add(1)
			if progressFn != nil {
				progressFn(int(n), len(files))
			}
		}(i)
	}
	wg.Wait()

	result := &LoadResult{Dataset: &model.Dataset{}, Files: files}
	for _, pr := range results {
		if pr.Err != nil {
			return nil, fmt.Errorf("parsing %s: %w", pr.File.Name, pr.Err)
		}
		result.ParseErrors += pr.ParseErrors
		ds := result.Dataset
		switch pr.File.Name {
		case model.FileGL:
			ds.Transactions = pr.Transactions
		case model.FileBudget:
			ds.Budget = pr.Budget
		case model.FileAccount:
			ds.Accounts = pr.Accounts
		case model.FileCostCenter:
			ds.CostCenters = pr.CostCenters
		}
	}

	return result, nil
}
