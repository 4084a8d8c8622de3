package experiment

import (
	"context"
	"testing"

	"github.com/san-kum/galaxy/internal/config"
	"github.com/san-kum/galaxy/internal/engine"
)

func TestEnsembleRun(t *testing.T) {
	cfg := config.GetPreset("tiny")
	cfg.Host.Refreshes = 60
	cfg.Host.Seed = 0xFFFF

	ens := NewEnsemble(cfg, nil, 3)
	ens.SetLimit(2)
	results, err := ens.Run(context.Background())
	if err != nil {
		t.Fatalf("ensemble failed: %v", err)
	}
	if len(results) != 3 {
		t.Fatalf("expected 3 results, got %d", len(results))
	}
	for i, r := range results {
		if r == nil || r.Refreshes != 60 {
			t.Errorf("run %d incomplete: %+v", i, r)
		}
	}
	if ens.Seed(1) != 0 {
		t.Errorf("seed should wrap to 0, got %d", ens.Seed(1))
	}

	// matches a single experiment with the same seed
	single := *cfg
	single.Host.Seed = ens.Seed(2)
	exp := New(&single)
	if err := exp.Setup(nil); err != nil {
		t.Fatal(err)
	}
	want, err := exp.Run(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if want.Metrics["lit_pixels"] != results[2].Metrics["lit_pixels"] {
		t.Error("ensemble run should be reproducible from its seed")
	}
}

func TestEnsembleErrors(t *testing.T) {
	cfg := config.GetPreset("tiny")
	if _, err := NewEnsemble(cfg, nil, 0).Run(context.Background()); err == nil {
		t.Error("expected error for zero runs")
	}

	bad := config.GetPreset("tiny")
	bad.Host.Controller = "lqr"
	if _, err := NewEnsemble(bad, nil, 2).Run(context.Background()); err == nil {
		t.Error("expected setup error to propagate")
	}
}

func TestMeanMetrics(t *testing.T) {
	results := []*engine.Result{
		{Metrics: map[string]float64{"infection": 0.2, "lit_pixels": 0.5}},
		{Metrics: map[string]float64{"infection": 0.4, "lit_pixels": 0.3}},
	}
	mean := MeanMetrics(results)
	if d := mean["infection"] - 0.3; d > 1e-12 || d < -1e-12 {
		t.Errorf("expected mean infection 0.3, got %v", mean["infection"])
	}
	if len(MeanMetrics(nil)) != 0 {
		t.Error("no results should give no metrics")
	}
}
