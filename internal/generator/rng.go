// Package generator builds the dimension tables and samples ledger postings.
//
// All randomness flows through a single seeded Rand so that a given seed and
// configuration always produce the same dataset.
package generator

import (
	"math"
	"math/rand/v2"
)

// Rand is a deterministic random source with the draws the generator needs.
type Rand struct {
	r *rand.Rand
}

// NewRand returns a PCG-backed source seeded from seed.
func NewRand(seed uint64) *Rand {
	return &Rand{r: rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))}
}

// IntN returns a uniform integer in [0, n).
func (r *Rand) IntN(n int) int {
	return r.r.IntN(n)
}

// Weighted returns an index into weights, chosen with probability
// proportional to its weight. Weights need not sum to 1.
func (r *Rand) Weighted(weights []float64) int {
	total := 0.0
	for _, w := range weights {
		total += w
	}
	x := r.r.Float64() * total
	for i, w := range weights {
		if x < w {
			return i
		}
		x -= w
	}
	// Float rounding can leave x just past the last bucket.
	for i := len(weights) - 1; i >= 0; i-- {
		if weights[i] > 0 {
			return i
		}
	}
	return len(weights) - 1
}

// LogNormal draws exp(mu + sigma*Z) with Z standard normal.
func (r *Rand) LogNormal(mu, sigma float64) float64 {
	return math.Exp(mu + sigma*r.r.NormFloat64())
}

func pick[T any](r *Rand, xs []T) T {
	return xs[r.IntN(len(xs))]
}
