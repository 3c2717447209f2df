package config

import "github.com/theirongolddev/finmock/internal/model"

// DefaultMix is the share of transactions per P&L category.
var DefaultMix = MixConfig{
	Revenue: 0.18,
	COGS:    0.22,
	OPEX:    0.60,
}

// DefaultAmounts holds the log-normal parameters per category.
// Revenue postings are fewer but larger; OPEX has many small entries.
var DefaultAmounts = AmountsConfig{
	Revenue: AmountProfile{Mu: 8.1, Sigma: 0.55},
	COGS:    AmountProfile{Mu: 7.7, Sigma: 0.50},
	OPEX:    AmountProfile{Mu: 6.8, Sigma: 0.65},
}

// DefaultBudget plans revenue slightly optimistic and costs slightly lower.
var DefaultBudget = BudgetConfig{
	RevenueFactor: 1.03,
	CostFactor:    0.98,
}

// Weight returns the sampling probability of a category.
func (m MixConfig) Weight(c model.PLCategory) float64 {
	switch c {
	case model.Revenue:
		return m.Revenue
	case model.COGS:
		return m.COGS
	case model.OPEX:
		return m.OPEX
	}
	return 0
}

// Profile returns the amount profile of a category.
// Unknown categories get the zero profile.
func (a AmountsConfig) Profile(c model.PLCategory) AmountProfile {
	switch c {
	case model.Revenue:
		return a.Revenue
	case model.COGS:
		return a.COGS
	case model.OPEX:
		return a.OPEX
	}
	return AmountProfile{}
}

// Factor returns the budget multiplier for a category.
func (b BudgetConfig) Factor(c model.PLCategory) float64 {
	if c.IsCost() {
		return b.CostFactor
	}
	return b.RevenueFactor
}
