package generator

import (
	"testing"

	"github.com/theirongolddev/finmock/internal/config"
)

func BenchmarkSample(b *testing.B) {
	cfg := config.DefaultConfig()
	cfg.Generate.Transactions = 10_000
	p, err := ParamsFromConfig(cfg)
	if err != nil {
		b.Fatal(err)
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		r := NewRand(42)
		s, err := NewSampler(r, p, BuildAccounts(), BuildCostCenters(r, 45))
		if err != nil {
			b.Fatal(err)
		}
		_ = s.Sample(nil)
	}
}
