// Package automation runs scripted sequences of headless experiments and
// parameter sweeps.
package automation

import (
	"context"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/galaxy/internal/config"
	"github.com/san-kum/galaxy/internal/engine"
	"github.com/san-kum/galaxy/internal/experiment"
	"github.com/san-kum/galaxy/internal/storage"
)

// Scenario defines a scripted sequence of runs.
type Scenario struct {
	Name        string         `yaml:"name"`
	Description string         `yaml:"description"`
	Steps       []ScenarioStep `yaml:"steps"`
}

// ScenarioStep is one run. Preset picks the base configuration; the other
// fields override it when set.
type ScenarioStep struct {
	Preset     string             `yaml:"preset"`
	Controller string             `yaml:"controller"`
	Refreshes  int                `yaml:"refreshes"`
	Seed       *int               `yaml:"seed"`
	Params     map[string]float64 `yaml:"params"`
	SaveAs     string             `yaml:"save_as"`
}

// StepResult is the outcome of one step. RunID is empty when no store was
// given.
type StepResult struct {
	Name   string
	RunID  string
	Result *engine.Result
}

func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var scenario Scenario
	if err := yaml.Unmarshal(data, &scenario); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	if len(scenario.Steps) == 0 {
		return nil, fmt.Errorf("scenario %s has no steps", path)
	}
	return &scenario, nil
}

// Config resolves the step into a validated configuration.
func (s ScenarioStep) Config() (*config.Config, error) {
	cfg := config.DefaultConfig()
	if s.Preset != "" {
		cfg = config.GetPreset(s.Preset)
		if cfg == nil {
			return nil, fmt.Errorf("unknown preset: %s", s.Preset)
		}
	}
	if s.Controller != "" {
		cfg.Host.Controller = s.Controller
	}
	if s.Refreshes > 0 {
		cfg.Host.Refreshes = s.Refreshes
	}
	if s.Seed != nil {
		cfg.Host.Seed = *s.Seed
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (s ScenarioStep) name(i int) string {
	switch {
	case s.SaveAs != "":
		return s.SaveAs
	case s.Preset != "":
		return s.Preset
	}
	return fmt.Sprintf("step%d", i+1)
}

// RunScenario executes every step in order, saving each run to st when st
// is non-nil and reporting progress to out.
func RunScenario(ctx context.Context, scenario *Scenario, st *storage.Store, out io.Writer) ([]StepResult, error) {
	results := make([]StepResult, 0, len(scenario.Steps))

	for i, step := range scenario.Steps {
		name := step.name(i)
		fmt.Fprintf(out, "running step %d/%d: %s\n", i+1, len(scenario.Steps), name)

		cfg, err := step.Config()
		if err != nil {
			return results, fmt.Errorf("step %d: %w", i+1, err)
		}

		exp := experiment.New(cfg)
		if err := exp.Setup(step.Params); err != nil {
			return results, fmt.Errorf("step %d setup: %w", i+1, err)
		}

		result, err := exp.Run(ctx)
		if err != nil {
			return results, fmt.Errorf("step %d run: %w", i+1, err)
		}

		sr := StepResult{Name: name, Result: result}
		if st != nil {
			sr.RunID, err = st.Save(storage.RunMetadata{
				Preset:       name,
				Seed:         uint16(cfg.Host.Seed),
				Width:        cfg.Display.Width,
				Height:       cfg.Display.Height,
				N:            cfg.Field.N,
				Eccentricity: uint8(cfg.Orbit.Eccentricity),
				Decay:        cfg.Field.Decay,
				Controller:   cfg.Host.Controller,
			}, result)
			if err != nil {
				return results, fmt.Errorf("step %d save: %w", i+1, err)
			}
		}
		results = append(results, sr)
	}

	return results, nil
}
