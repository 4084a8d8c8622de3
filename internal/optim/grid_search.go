// Package optim tunes controller parameters by exhaustive search.
package optim

import (
	"context"
	"fmt"
	"math"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/san-kum/galaxy/internal/experiment"
)

type GridSearch struct {
	paramNames []string
	ranges     [][]float64
	limit      int
}

func NewGridSearch(params []string, ranges [][]float64) *GridSearch {
	return &GridSearch{paramNames: params, ranges: ranges, limit: runtime.NumCPU()}
}

// SetLimit caps the number of experiments running at once.
func (g *GridSearch) SetLimit(n int) {
	if n < 1 {
		n = 1
	}
	g.limit = n
}

// Trial is one evaluated grid point.
type Trial struct {
	Params map[string]float64
	Value  float64
}

// Search runs an experiment per grid point and returns the point with the
// lowest value of metricName, along with every trial in grid order. Ties go
// to the earlier point.
func (g *GridSearch) Search(
	ctx context.Context,
	buildExperiment func(params map[string]float64) (*experiment.Experiment, error),
	metricName string,
) (Trial, []Trial, error) {
	if len(g.paramNames) != len(g.ranges) {
		return Trial{}, nil, fmt.Errorf("%d parameter names for %d ranges", len(g.paramNames), len(g.ranges))
	}

	var points []map[string]float64
	g.collect(0, make(map[string]float64), &points)
	if len(points) == 0 {
		return Trial{}, nil, fmt.Errorf("empty grid")
	}

	trials := make([]Trial, len(points))
	eg, ctx := errgroup.WithContext(ctx)
	eg.SetLimit(g.limit)
	for i, params := range points {
		eg.Go(func() error {
			exp, err := buildExperiment(params)
			if err != nil {
				return err
			}
			result, err := exp.Run(ctx)
			if err != nil {
				return err
			}
			val, ok := result.Metrics[metricName]
			if !ok {
				return fmt.Errorf("metric %s not recorded", metricName)
			}
			trials[i] = Trial{Params: params, Value: val}
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return Trial{}, nil, err
	}

	best := Trial{Value: math.Inf(1)}
	for _, t := range trials {
		if t.Value < best.Value {
			best = t
		}
	}
	return best, trials, nil
}

// collect enumerates the grid depth first, last parameter varying fastest.
func (g *GridSearch) collect(depth int, current map[string]float64, out *[]map[string]float64) {
	if depth == len(g.paramNames) {
		point := make(map[string]float64, len(current))
		for k, v := range current {
			point[k] = v
		}
		*out = append(*out, point)
		return
	}

	paramName := g.paramNames[depth]
	for _, val := range g.ranges[depth] {
		current[paramName] = val
		g.collect(depth+1, current, out)
	}
	delete(current, paramName)
}
