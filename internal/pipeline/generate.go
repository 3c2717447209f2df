// Package pipeline orchestrates dataset generation, reloading, and P&L aggregation.
package pipeline

import (
	"fmt"

	"github.com/theirongolddev/finmock/internal/config"
	"github.com/theirongolddev/finmock/internal/generator"
	"github.com/theirongolddev/finmock/internal/model"
)

// ProgressFunc is called during sampling to report progress.
type ProgressFunc = generator.ProgressFunc

// Generate validates cfg and builds the full dataset: dimensions first, then
// postings, then the monthly budget derived from them.
func Generate(cfg config.Config, progressFn ProgressFunc) (*model.Dataset, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	params, err := generator.ParamsFromConfig(cfg)
	if err != nil {
		return nil, err
	}

	rng := generator.NewRand(cfg.Generate.Seed)
	ccs := generator.BuildCostCenters(rng, cfg.Generate.CostCenters)
	accounts := generator.BuildAccounts()

	sampler, err := generator.NewSampler(rng, params, accounts, ccs)
	if err != nil {
		return nil, fmt.Errorf("preparing sampler: %w", err)
	}
	txns := sampler.Sample(progressFn)

	return &model.Dataset{
		CostCenters:  ccs,
		Accounts:     accounts,
		Transactions: txns,
		Budget:       AggregateBudget(txns, accounts, cfg.Budget),
	}, nil
}
