// Package experiment assembles an engine, a controller and metrics from a
// configuration and runs it headless.
package experiment

import (
	"context"
	"fmt"

	"github.com/san-kum/galaxy/internal/config"
	"github.com/san-kum/galaxy/internal/engine"
)

type Experiment struct {
	cfg        *config.Config
	registry   *Registry
	engine     *engine.Engine
	controller engine.Controller
}

func New(cfg *config.Config) *Experiment {
	return &Experiment{
		cfg:      cfg,
		registry: NewRegistry(),
	}
}

// Setup builds the engine and attaches the configured controller and every
// registered metric. params tunes the controller.
func (e *Experiment) Setup(params map[string]float64) error {
	ec, err := e.cfg.EngineConfig()
	if err != nil {
		return err
	}
	eng, err := engine.New(ec)
	if err != nil {
		return err
	}
	ctrl, err := e.registry.GetController(e.cfg.Host.Controller, params)
	if err != nil {
		return err
	}
	for _, m := range e.registry.DefaultMetrics() {
		eng.AddMetric(m)
	}
	e.engine = eng
	e.controller = ctrl
	return nil
}

func (e *Experiment) Run(ctx context.Context) (*engine.Result, error) {
	if e.engine == nil {
		return nil, fmt.Errorf("experiment not setup")
	}
	return e.engine.Run(ctx, e.cfg.Host.Refreshes, e.controller)
}

// Engine returns the underlying engine for adding observers.
func (e *Experiment) Engine() *engine.Engine {
	return e.engine
}

func (e *Experiment) Registry() *Registry {
	return e.registry
}
