package engine

import "github.com/san-kum/galaxy/internal/actor"

// Input is one refresh worth of debounced player input.
type Input struct {
	DX, DY int8
	Spawn  bool
	Kind   actor.Kind // worker kind to spawn at the reticle
	// EccentricityDelta nudges the global eccentricity, saturating at 0 and 255.
	EccentricityDelta int8
}

// View is the read-only state a Controller, Metric or Observer may inspect.
type View interface {
	Size() (w, h int)
	Reticle() (x, y int16)
	Enemies() []actor.Actor
	Workers() []actor.Actor
	Cooldown() int
	Lit() int
	InfectedRows() int
	Rows() int
	FieldFrames() uint64
}

// Controller produces the input for each refresh.
type Controller interface {
	Compute(v View, refresh uint64) Input
}

type Metric interface {
	Name() string
	Observe(v View, f Frame)
	Value() float64
	Reset()
}

type Observer interface {
	OnRefresh(v View, f Frame)
}

// Frame reports what one refresh did.
type Frame struct {
	Refresh     uint64
	Completed   int // field frames finished during this refresh
	Sprites     []actor.Sprite
	Reticle     actor.Transform
	Spawned     bool // a worker was spawned from input
	EnemySpawn  bool // the periodic enemy spawn fired
	Declined    bool // a spawn was requested but the pool was full
	CoolingDown bool
}

// Sample is one row of the per-refresh series kept by Run.
type Sample struct {
	Refresh      uint64
	FieldFrames  uint64
	Lit          int
	Enemies      int
	Workers      int
	InfectedRows int
}

type Result struct {
	Samples   []Sample
	Metrics   map[string]float64
	Refreshes int
	Frames    uint64
}

// Series returns one column of the samples by name.
func (r *Result) Series(name string) []float64 {
	out := make([]float64, 0, len(r.Samples))
	for _, s := range r.Samples {
		var v float64
		switch name {
		case "lit":
			v = float64(s.Lit)
		case "enemies":
			v = float64(s.Enemies)
		case "workers":
			v = float64(s.Workers)
		case "infected":
			v = float64(s.InfectedRows)
		case "frames":
			v = float64(s.FieldFrames)
		default:
			return nil
		}
		out = append(out, v)
	}
	return out
}

// SeriesNames lists the names accepted by Series.
func SeriesNames() []string {
	return []string{"lit", "enemies", "workers", "infected", "frames"}
}
