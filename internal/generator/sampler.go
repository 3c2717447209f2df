package generator

import (
	"fmt"
	"time"

	"github.com/theirongolddev/finmock/internal/config"
	"github.com/theirongolddev/finmock/internal/model"
)

// Countries, Customers and Vendors are the uniform pools for postings.
var (
	Countries = []string{"AT", "DE", "PL", "HU", "CZ"}
	Customers = numbered("Customer", 59)
	Vendors   = numbered("Vendor", 79)
)

func numbered(prefix string, n int) []string {
	out := make([]string, n)
	for i := range out {
		out[i] = fmt.Sprintf("%s_%03d", prefix, i+1)
	}
	return out
}

// Params holds everything the sampler needs besides the dimensions.
type Params struct {
	Transactions int
	Start        time.Time
	End          time.Time // inclusive
	Currency     string
	Mix          config.MixConfig
	Amounts      config.AmountsConfig
}

// ParamsFromConfig extracts sampling parameters from a validated config.
func ParamsFromConfig(cfg config.Config) (Params, error) {
	start, err := cfg.Generate.StartTime()
	if err != nil {
		return Params{}, err
	}
	end, err := cfg.Generate.EndTime()
	if err != nil {
		return Params{}, err
	}
	return Params{
		Transactions: cfg.Generate.Transactions,
		Start:        start,
		End:          end,
		Currency:     cfg.Generate.Currency,
		Mix:          cfg.Mix,
		Amounts:      cfg.Amounts,
	}, nil
}

// ProgressFunc reports sampling progress: current rows out of total.
type ProgressFunc func(current, total int)

// Sampler draws ledger postings against a fixed set of dimensions.
type Sampler struct {
	rng        *Rand
	params     Params
	weights    []float64
	byCategory map[model.PLCategory][]string
	ccIDs      []string
	days       int
}

// NewSampler prepares a sampler. Every category with a positive weight must
// have at least one account.
func NewSampler(r *Rand, p Params, accounts []model.Account, ccs []model.CostCenter) (*Sampler, error) {
	if len(ccs) == 0 {
		return nil, fmt.Errorf("sampler: no cost centers")
	}
	if p.End.Before(p.Start) {
		return nil, fmt.Errorf("sampler: end %s before start %s",
			p.End.Format(model.DateLayout), p.Start.Format(model.DateLayout))
	}

	byCat := AccountsByCategory(accounts)
	weights := make([]float64, len(model.Categories))
	for i, c := range model.Categories {
		weights[i] = p.Mix.Weight(c)
		if weights[i] > 0 && len(byCat[c]) == 0 {
			return nil, fmt.Errorf("sampler: category %s has weight %g but no accounts", c, weights[i])
		}
	}

	ccIDs := make([]string, len(ccs))
	for i, cc := range ccs {
		ccIDs[i] = cc.ID
	}

	return &Sampler{
		rng:        r,
		params:     p,
		weights:    weights,
		byCategory: byCat,
		ccIDs:      ccIDs,
		days:       int(p.End.Sub(p.Start).Hours()/24) + 1,
	}, nil
}

// Next samples the posting with 1-based sequence number seq, returning it
// together with the category it was drawn for.
func (s *Sampler) Next(seq int) (model.Transaction, model.PLCategory) {
	r := s.rng
	cat := model.Categories[r.Weighted(s.weights)]

	txn := model.Transaction{
		ID:           fmt.Sprintf("TX%06d", seq),
		Currency:     s.params.Currency,
		AccountID:    pick(r, s.byCategory[cat]),
		CostCenterID: pick(r, s.ccIDs),
		Date:         s.params.Start.AddDate(0, 0, r.IntN(s.days)),
		Country:      pick(r, Countries),
	}

	if cat == model.Revenue {
		txn.VendorCustomer = pick(r, Customers)
		txn.Description = "Invoice"
	} else {
		txn.VendorCustomer = pick(r, Vendors)
		txn.Description = "Expense"
	}

	prof := s.params.Amounts.Profile(cat)
	amt := model.Round2(r.LogNormal(prof.Mu, prof.Sigma))
	if amt < 0.01 {
		amt = 0.01
	}
	if cat.IsCost() {
		amt = -amt
	}
	txn.Amount = amt

	return txn, cat
}

// Sample draws the configured number of postings.
func (s *Sampler) Sample(progressFn ProgressFunc) []model.Transaction {
	n := s.params.Transactions
	txns := make([]model.Transaction, n)
	for i := range txns {
		txns[i], _ = s.Next(i + 1)
		if progressFn != nil && ((i+1)%10_000 == 0 || i+1 == n) {
			progressFn(i+1, n)
		}
	}
	return txns
}
