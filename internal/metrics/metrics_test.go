package metrics

import (
	"math"
	"testing"

	"github.com/san-kum/galaxy/internal/actor"
	"github.com/san-kum/galaxy/internal/engine"
)

type fakeView struct {
	lit, infected, rows int
}

func (f *fakeView) Size() (int, int)        { return 10, 10 }
func (f *fakeView) Reticle() (int16, int16) { return 0, 0 }
func (f *fakeView) Enemies() []actor.Actor  { return nil }
func (f *fakeView) Workers() []actor.Actor  { return nil }
func (f *fakeView) Cooldown() int           { return 0 }
func (f *fakeView) Lit() int                { return f.lit }
func (f *fakeView) InfectedRows() int       { return f.infected }
func (f *fakeView) Rows() int               { return f.rows }
func (f *fakeView) FieldFrames() uint64     { return 0 }

func TestLitPixels(t *testing.T) {
	m := NewLitPixels()
	m.Observe(&fakeView{lit: 20}, engine.Frame{})
	m.Observe(&fakeView{lit: 40}, engine.Frame{})

	if math.Abs(m.Value()-0.3) > 1e-9 {
		t.Errorf("expected mean coverage 0.3, got %f", m.Value())
	}

	m.Reset()
	if m.Value() != 0 {
		t.Error("expected zero after reset")
	}
}

func TestFrameRate(t *testing.T) {
	m := NewFrameRate()
	for _, c := range []int{0, 1, 0, 1} {
		m.Observe(&fakeView{}, engine.Frame{Completed: c})
	}
	if m.Value() != 0.5 {
		t.Errorf("expected 0.5 frames per refresh, got %f", m.Value())
	}
}

func TestInfection(t *testing.T) {
	m := NewInfection()
	m.Observe(&fakeView{infected: 0, rows: 100}, engine.Frame{})
	m.Observe(&fakeView{infected: 50, rows: 100}, engine.Frame{})

	if m.Value() != 0.25 {
		t.Errorf("expected mean 0.25, got %f", m.Value())
	}
	if m.Peak() != 0.5 {
		t.Errorf("expected peak 0.5, got %f", m.Peak())
	}

	m.Reset()
	m.Observe(&fakeView{rows: 0}, engine.Frame{})
	if m.Value() != 0 {
		t.Error("empty field should not count")
	}
}

func TestActiveActors(t *testing.T) {
	m := NewActiveActors()
	f := engine.Frame{Sprites: []actor.Sprite{{Visible: true}, {Visible: false}, {Visible: true}}}
	m.Observe(&fakeView{}, f)
	m.Observe(&fakeView{}, engine.Frame{})
	if m.Value() != 1 {
		t.Errorf("expected mean 1 active, got %f", m.Value())
	}
}

func TestSpawnRate(t *testing.T) {
	m := NewSpawnRate()
	m.Observe(&fakeView{}, engine.Frame{Spawned: true, EnemySpawn: true})
	m.Observe(&fakeView{}, engine.Frame{Declined: true})
	m.Observe(&fakeView{}, engine.Frame{})
	m.Observe(&fakeView{}, engine.Frame{})

	if m.Value() != 0.5 {
		t.Errorf("expected 0.5 spawns per refresh, got %f", m.Value())
	}
	if m.Declined() != 1 {
		t.Errorf("expected 1 declined, got %d", m.Declined())
	}
}

func TestMetricsWithEngine(t *testing.T) {
	cfg := engine.DefaultConfig()
	cfg.Width, cfg.Height = 64, 36
	cfg.Field.N = 16
	e, err := engine.New(cfg)
	if err != nil {
		t.Fatal(err)
	}
	rate := NewFrameRate()
	lit := NewLitPixels()
	e.AddMetric(rate)
	e.AddMetric(lit)

	result, err := e.Run(t.Context(), 200, nil)
	if err != nil {
		t.Fatal(err)
	}
	if result.Metrics["frame_rate"] <= 0 {
		t.Error("expected frames to complete")
	}
	if result.Metrics["lit_pixels"] <= 0 || result.Metrics["lit_pixels"] > 1 {
		t.Errorf("coverage out of range: %f", result.Metrics["lit_pixels"])
	}
}
