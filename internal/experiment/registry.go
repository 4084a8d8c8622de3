package experiment

import (
	"fmt"
	"sort"

	"github.com/san-kum/galaxy/internal/actor"
	"github.com/san-kum/galaxy/internal/controllers"
	"github.com/san-kum/galaxy/internal/engine"
	"github.com/san-kum/galaxy/internal/metrics"
)

type Registry struct {
	controllers map[string]func(map[string]float64) engine.Controller
	metrics     map[string]func() engine.Metric
}

func NewRegistry() *Registry {
	r := &Registry{
		controllers: make(map[string]func(map[string]float64) engine.Controller),
		metrics:     make(map[string]func() engine.Metric),
	}

	r.controllers["none"] = func(params map[string]float64) engine.Controller {
		return controllers.NewNone()
	}
	r.controllers["pursuit"] = func(params map[string]float64) engine.Controller {
		kp, kd := params["kp"], params["kd"]
		if kp == 0 {
			kp = 128
		}
		if kd == 0 {
			kd = 64
		}
		kind := actor.Guardian
		if params["gardener"] != 0 {
			kind = actor.Gardener
		}
		return controllers.NewPursuit(int32(kp), int32(kd), kind)
	}

	r.metrics["lit_pixels"] = func() engine.Metric { return metrics.NewLitPixels() }
	r.metrics["frame_rate"] = func() engine.Metric { return metrics.NewFrameRate() }
	r.metrics["infection"] = func() engine.Metric { return metrics.NewInfection() }
	r.metrics["active_actors"] = func() engine.Metric { return metrics.NewActiveActors() }
	r.metrics["spawn_rate"] = func() engine.Metric { return metrics.NewSpawnRate() }

	return r
}

func (r *Registry) GetController(name string, params map[string]float64) (engine.Controller, error) {
	fn, ok := r.controllers[name]
	if !ok {
		return nil, fmt.Errorf("unknown controller: %s", name)
	}
	return fn(params), nil
}

func (r *Registry) GetMetric(name string) (engine.Metric, error) {
	fn, ok := r.metrics[name]
	if !ok {
		return nil, fmt.Errorf("unknown metric: %s", name)
	}
	return fn(), nil
}

func (r *Registry) ListControllers() []string {
	return sortedKeys(r.controllers)
}

func (r *Registry) ListMetrics() []string {
	return sortedKeys(r.metrics)
}

// DefaultMetrics returns one fresh instance of every registered metric.
func (r *Registry) DefaultMetrics() []engine.Metric {
	names := r.ListMetrics()
	out := make([]engine.Metric, 0, len(names))
	for _, name := range names {
		out = append(out, r.metrics[name]())
	}
	return out
}

func sortedKeys[V any](m map[string]V) []string {
	names := make([]string, 0, len(m))
	for name := range m {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
