package experiment

import (
	"context"
	"fmt"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/san-kum/galaxy/internal/config"
	"github.com/san-kum/galaxy/internal/engine"
)

// Ensemble runs one configuration under consecutive seeds. Every run owns
// its engine, so runs proceed in parallel.
type Ensemble struct {
	cfg    *config.Config
	params map[string]float64
	runs   int
	limit  int
}

func NewEnsemble(cfg *config.Config, params map[string]float64, runs int) *Ensemble {
	return &Ensemble{cfg: cfg, params: params, runs: runs, limit: runtime.NumCPU()}
}

// SetLimit caps the number of concurrent runs; n < 1 means one.
func (e *Ensemble) SetLimit(n int) {
	if n < 1 {
		n = 1
	}
	e.limit = n
}

// Run returns one result per seed, in seed order. The first failure cancels
// the remaining runs.
func (e *Ensemble) Run(ctx context.Context) ([]*engine.Result, error) {
	if e.runs <= 0 {
		return nil, fmt.Errorf("ensemble needs at least one run, got %d", e.runs)
	}
	results := make([]*engine.Result, e.runs)

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(e.limit)
	for i := 0; i < e.runs; i++ {
		g.Go(func() error {
			cfg := *e.cfg
			cfg.Host.Seed = (e.cfg.Host.Seed + i) & 0xFFFF

			exp := New(&cfg)
			if err := exp.Setup(e.params); err != nil {
				return fmt.Errorf("run %d: %w", i, err)
			}
			r, err := exp.Run(ctx)
			if err != nil {
				return fmt.Errorf("run %d: %w", i, err)
			}
			results[i] = r
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// Seed returns the seed used by run i.
func (e *Ensemble) Seed(i int) int { return (e.cfg.Host.Seed + i) & 0xFFFF }

// MeanMetrics averages every metric over results.
func MeanMetrics(results []*engine.Result) map[string]float64 {
	mean := make(map[string]float64)
	if len(results) == 0 {
		return mean
	}
	for _, r := range results {
		for name, v := range r.Metrics {
			mean[name] += v
		}
	}
	for name := range mean {
		mean[name] /= float64(len(results))
	}
	return mean
}
