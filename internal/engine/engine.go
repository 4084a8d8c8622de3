// Package engine runs the host loop: one actor refresh plus a fixed number
// of bounded field ticks per display refresh.
package engine

import (
	"context"
	"fmt"

	"github.com/san-kum/galaxy/internal/actor"
	"github.com/san-kum/galaxy/internal/field"
	"github.com/san-kum/galaxy/internal/fixed"
	"github.com/san-kum/galaxy/internal/orbit"
	"github.com/san-kum/galaxy/internal/raster"
)

// Display bounds. Actor positions are Q12.4 int16, so the anchor plus the
// widest orbit (2*orbit.MaxRadius) must stay at or below 2047 pixels.
// Height is bounded by the field's 8-bit row cache.
const (
	MaxWidth  = 1024
	MaxHeight = 255
)

type Config struct {
	Width, Height        int
	Field                field.Config
	Actors               actor.Config
	FieldTicksPerRefresh int
	SpawnCooldown        int // refreshes between input spawns
	EnemyInterval        int // refreshes between automatic enemy spawns; 0 disables
	Seed                 uint16
	Randomize            bool
	SampleEvery          int // Run keeps one sample per this many refreshes
}

func DefaultConfig() Config {
	return Config{
		Width:                raster.DefaultWidth,
		Height:               raster.DefaultHeight,
		Field:                field.DefaultConfig(),
		Actors:               actor.DefaultConfig(),
		FieldTicksPerRefresh: 4,
		SpawnCooldown:        15,
		EnemyInterval:        240,
		Seed:                 12345,
		Randomize:            true,
		SampleEvery:          1,
	}
}

func (c Config) validate() error {
	if c.Width < 1 || c.Width > MaxWidth || c.Height < 1 || c.Height > MaxHeight {
		return fmt.Errorf("display size %dx%d not within %dx%d", c.Width, c.Height, MaxWidth, MaxHeight)
	}
	if c.FieldTicksPerRefresh < 0 {
		return fmt.Errorf("field ticks per refresh must not be negative, got %d", c.FieldTicksPerRefresh)
	}
	if c.SpawnCooldown < 0 || c.EnemyInterval < 0 {
		return fmt.Errorf("cooldown and enemy interval must not be negative")
	}
	return nil
}

type Engine struct {
	cfg       Config
	surface   *raster.Framebuffer
	field     *field.Simulator
	actors    *actor.Manager
	rand      *fixed.Rand
	refresh   uint64
	cooldown  int
	metrics   []Metric
	observers []Observer
}

// New wires a framebuffer, field and actor manager together. The actor
// anchor and screen bounds always follow the display size.
func New(cfg Config) (*Engine, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	cfg.Actors.Width = int16(cfg.Width)
	cfg.Actors.Height = int16(cfg.Height)
	cfg.Actors.Anchor = orbit.Point{X: int16(cfg.Width / 2), Y: int16(cfg.Height / 2)}

	fb := raster.New(cfg.Width, cfg.Height)
	sim, err := field.New(cfg.Field, fb)
	if err != nil {
		return nil, err
	}

	e := &Engine{
		cfg:       cfg,
		surface:   fb,
		field:     sim,
		actors:    actor.NewManager(cfg.Actors),
		metrics:   make([]Metric, 0),
		observers: make([]Observer, 0),
	}
	sim.SetZones(e.actors)
	e.Reset()
	return e, nil
}

func (e *Engine) AddMetric(m Metric)     { e.metrics = append(e.metrics, m) }
func (e *Engine) AddObserver(o Observer) { e.observers = append(e.observers, o) }

// Reset returns to the state right after New.
func (e *Engine) Reset() {
	e.field.Init()
	if e.cfg.Randomize {
		e.field.Randomize(e.cfg.Seed)
	}
	e.actors.Reset()
	e.rand = fixed.NewRand(e.cfg.Seed)
	e.refresh = 0
	e.cooldown = 0
}

// Refresh runs one display refresh.
func (e *Engine) Refresh(in Input) Frame {
	e.refresh++
	f := Frame{Refresh: e.refresh}

	f.Sprites = e.actors.Tick()
	f.Reticle = e.actors.Reticle().Tick()

	if e.cooldown > 0 {
		e.cooldown--
	}
	if in.Spawn {
		if e.cooldown > 0 {
			f.CoolingDown = true
		} else {
			x, y := e.actors.Reticle().Center()
			f.Spawned = e.actors.Spawn(in.Kind, x, y)
			f.Declined = !f.Spawned
			e.cooldown = e.cfg.SpawnCooldown
		}
	}

	if in.EccentricityDelta != 0 {
		ecc := int(e.actors.Eccentricity()) + int(in.EccentricityDelta)
		if ecc < 0 {
			ecc = 0
		}
		if ecc > 255 {
			ecc = 255
		}
		e.actors.SetEccentricity(uint8(ecc))
	}
	e.actors.UpdateReticle(in.DX, in.DY)

	if e.cfg.EnemyInterval > 0 && e.refresh%uint64(e.cfg.EnemyInterval) == 0 {
		x := int16(e.rand.Intn(e.cfg.Width))
		y := int16(e.rand.Intn(e.cfg.Height))
		f.EnemySpawn = e.actors.Spawn(actor.Enemy, x, y)
	}

	for k := 0; k < e.cfg.FieldTicksPerRefresh; k++ {
		if e.field.Tick() {
			f.Completed++
		}
	}
	return f
}

// Run drives refreshes with inputs from ctrl until the count is reached or
// ctx is cancelled. A nil ctrl means no input.
func (e *Engine) Run(ctx context.Context, refreshes int, ctrl Controller) (*Result, error) {
	if refreshes <= 0 {
		return nil, fmt.Errorf("refreshes must be positive, got %d", refreshes)
	}
	every := e.cfg.SampleEvery
	if every < 1 {
		every = 1
	}

	result := &Result{
		Samples: make([]Sample, 0, refreshes/every+1),
		Metrics: make(map[string]float64),
	}
	for _, m := range e.metrics {
		m.Reset()
	}

	startFrames := e.field.Frames()
	for i := 0; i < refreshes; i++ {
		select {
		case <-ctx.Done():
			e.finish(result, startFrames)
			return result, ctx.Err()
		default:
		}

		var in Input
		if ctrl != nil {
			in = ctrl.Compute(e, e.refresh+1)
		}
		f := e.Refresh(in)

		for _, m := range e.metrics {
			m.Observe(e, f)
		}
		for _, obs := range e.observers {
			obs.OnRefresh(e, f)
		}

		if i%every == 0 {
			result.Samples = append(result.Samples, e.sample())
		}
		result.Refreshes++
	}

	e.finish(result, startFrames)
	return result, nil
}

func (e *Engine) finish(result *Result, startFrames uint64) {
	result.Frames = e.field.Frames() - startFrames
	for _, m := range e.metrics {
		result.Metrics[m.Name()] = m.Value()
	}
}

func (e *Engine) sample() Sample {
	return Sample{
		Refresh:      e.refresh,
		FieldFrames:  e.field.Frames(),
		Lit:          e.surface.Lit(),
		Enemies:      e.actors.Count(actor.Enemy),
		Workers:      e.actors.Count(actor.Guardian) + e.actors.Count(actor.Gardener),
		InfectedRows: e.field.InfectedRows(),
	}
}

func (e *Engine) Size() (w, h int)             { return e.cfg.Width, e.cfg.Height }
func (e *Engine) Reticle() (x, y int16)        { return e.actors.Reticle().Center() }
func (e *Engine) Enemies() []actor.Actor       { return e.actors.Enemies() }
func (e *Engine) Workers() []actor.Actor       { return e.actors.Workers() }
func (e *Engine) Cooldown() int                { return e.cooldown }
func (e *Engine) Lit() int                     { return e.surface.Lit() }
func (e *Engine) InfectedRows() int            { return e.field.InfectedRows() }
func (e *Engine) Rows() int                    { return e.cfg.Field.N }
func (e *Engine) FieldFrames() uint64          { return e.field.Frames() }
func (e *Engine) RefreshCount() uint64         { return e.refresh }
func (e *Engine) Surface() *raster.Framebuffer { return e.surface }
func (e *Engine) Field() *field.Simulator      { return e.field }
func (e *Engine) Actors() *actor.Manager       { return e.actors }
func (e *Engine) Config() Config               { return e.cfg }
