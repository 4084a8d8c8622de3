package main

import (
	"math"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"

	"github.com/san-kum/galaxy/internal/config"
	"github.com/san-kum/galaxy/internal/orbit"
)

func seedCommand(t *testing.T, args ...string) *cobra.Command {
	t.Helper()
	cmd := &cobra.Command{Use: "test"}
	cmd.Flags().IntVar(&seed, "seed", config.DefaultSeed, "")
	if err := cmd.ParseFlags(args); err != nil {
		t.Fatal(err)
	}
	return cmd
}

func TestLoadConfig(t *testing.T) {
	defer func() { preset, configFile = "", "" }()

	tests := []struct {
		name     string
		preset   string
		args     []string
		wantName string
		wantSeed int
		wantErr  bool
	}{
		{"defaults", "", nil, "default", config.DefaultSeed, false},
		{"preset", "storm", nil, "storm", config.DefaultSeed, false},
		{"seed flag", "calm", []string{"--seed", "7"}, "calm", 7, false},
		{"unknown preset", "nope", nil, "", 0, true},
		{"seed out of range", "", []string{"--seed", "70000"}, "", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			preset, configFile = tt.preset, ""
			cfg, name, err := loadConfig(seedCommand(t, tt.args...))
			if tt.wantErr {
				if err == nil {
					t.Error("expected error")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if name != tt.wantName || cfg.Host.Seed != tt.wantSeed {
				t.Errorf("got %s seed %d, want %s seed %d", name, cfg.Host.Seed, tt.wantName, tt.wantSeed)
			}
		})
	}
}

func TestLoadConfigFile(t *testing.T) {
	defer func() { preset, configFile = "", "" }()

	path := filepath.Join(t.TempDir(), "mine.yaml")
	cfg := config.GetPreset("tiny")
	if err := config.Save(path, cfg); err != nil {
		t.Fatal(err)
	}

	preset, configFile = "storm", path
	got, name, err := loadConfig(seedCommand(t))
	if err != nil {
		t.Fatal(err)
	}
	if name != "mine" || got.Display.Width != cfg.Display.Width {
		t.Errorf("config file should win over preset, got %s %d", name, got.Display.Width)
	}
}

func TestPursuitParamsKind(t *testing.T) {
	defer func() { spawnKind = "guardian" }()

	tests := []struct {
		kind     string
		gardener float64
		wantErr  bool
	}{
		{"guardian", 0, false},
		{"gardener", 1, false},
		{"enemy", 0, true},
		{"comet", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.kind, func(t *testing.T) {
			spawnKind = tt.kind
			params, err := pursuitParams()
			if tt.wantErr {
				if err == nil {
					t.Error("expected error")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if params["gardener"] != tt.gardener {
				t.Errorf("gardener param %v, want %v", params["gardener"], tt.gardener)
			}
		})
	}
}

func TestTracePointsCircle(t *testing.T) {
	anchor := orbit.Point{X: 160, Y: 90}
	el, angle := orbit.Fit(orbit.Point{X: 200, Y: 90}, anchor, 0, orbit.Bounds{MaxRadius: orbit.MaxRadius})

	points, dist := tracePoints(el, angle, anchor, 64)
	if len(points) != 64 || len(dist) != 64 {
		t.Fatalf("expected 64 samples, got %d/%d", len(points), len(dist))
	}
	for i, d := range dist {
		if math.Abs(d-float64(el.Radius)) > 3 {
			t.Errorf("step %d: distance %.2f from focus, want about %d", i, d, el.Radius)
		}
	}
}
