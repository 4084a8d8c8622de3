package automation

import (
	"context"
	"fmt"
	"io"
	"sort"

	"github.com/san-kum/galaxy/internal/config"
	"github.com/san-kum/galaxy/internal/experiment"
)

// sweepParams are the configuration knobs a sweep can vary.
var sweepParams = map[string]func(c *config.Config, v int){
	"eccentricity":   func(c *config.Config, v int) { c.Orbit.Eccentricity = v },
	"time_step":      func(c *config.Config, v int) { c.Field.TimeStep = v },
	"center_gain":    func(c *config.Config, v int) { c.Field.CenterGain = v },
	"ring_gain":      func(c *config.Config, v int) { c.Field.RingGain = v },
	"enemy_interval": func(c *config.Config, v int) { c.Host.EnemyInterval = v },
	"decay_amount":   func(c *config.Config, v int) { c.Field.DecayAmount = v },
}

// SweepParams lists the names accepted by ParameterSweep.Param.
func SweepParams() []string {
	names := make([]string, 0, len(sweepParams))
	for name := range sweepParams {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ParameterSweep runs a preset across evenly spaced values of one integer
// parameter.
type ParameterSweep struct {
	Preset    string
	Param     string
	Min, Max  int
	NumSteps  int
	Refreshes int
}

type SweepResult struct {
	ParamValue int
	Metrics    map[string]float64
	Frames     uint64
}

func RunSweep(ctx context.Context, sweep *ParameterSweep, out io.Writer) ([]SweepResult, error) {
	set, ok := sweepParams[sweep.Param]
	if !ok {
		return nil, fmt.Errorf("unknown sweep parameter: %s (available: %v)", sweep.Param, SweepParams())
	}
	if sweep.NumSteps < 2 {
		return nil, fmt.Errorf("sweep needs at least 2 steps, got %d", sweep.NumSteps)
	}
	base := config.DefaultConfig()
	if sweep.Preset != "" {
		base = config.GetPreset(sweep.Preset)
		if base == nil {
			return nil, fmt.Errorf("unknown preset: %s", sweep.Preset)
		}
	}

	results := make([]SweepResult, 0, sweep.NumSteps)
	for i := 0; i < sweep.NumSteps; i++ {
		val := sweep.Min + i*(sweep.Max-sweep.Min)/(sweep.NumSteps-1)

		cfg := *base
		set(&cfg, val)
		if sweep.Refreshes > 0 {
			cfg.Host.Refreshes = sweep.Refreshes
		}

		exp := experiment.New(&cfg)
		if err := exp.Setup(nil); err != nil {
			return nil, fmt.Errorf("%s=%d: %w", sweep.Param, val, err)
		}
		result, err := exp.Run(ctx)
		if err != nil {
			return nil, err
		}

		results = append(results, SweepResult{
			ParamValue: val,
			Metrics:    result.Metrics,
			Frames:     result.Frames,
		})
		fmt.Fprintf(out, "sweep %d/%d: %s=%d\n", i+1, sweep.NumSteps, sweep.Param, val)
	}

	return results, nil
}
