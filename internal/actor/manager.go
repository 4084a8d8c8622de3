package actor

import (
	"github.com/san-kum/galaxy/internal/field"
	"github.com/san-kum/galaxy/internal/fixed"
	"github.com/san-kum/galaxy/internal/orbit"
)

// contactShift brings Q12.4 positions to 2-pixel units before squaring.
const contactShift = 5

// Config sizes the pools and tunes the interaction rules.
type Config struct {
	Anchor          orbit.Point // orbit focus, pixels
	Width, Height   int16       // screen size, pixels
	EnemyCapacity   int
	WorkerCapacity  int
	EnemyMinRadius  uint8
	WorkerMinRadius uint8
	MaxRadius       uint8
	Eccentricity    uint8 // initial global setting
	ContactRadius   int16 // pixels
	ZoneHalf        int16 // half-size of an infect/heal box, pixels
	AnimPeriod      int16 // ticks per animation frame
	AnimFrames      uint8
}

// DefaultConfig matches a 320x180 display.
func DefaultConfig() Config {
	return Config{
		Anchor:          orbit.Point{X: 160, Y: 90},
		Width:           320,
		Height:          180,
		EnemyCapacity:   8,
		WorkerCapacity:  8,
		EnemyMinRadius:  20,
		WorkerMinRadius: 12,
		MaxRadius:       orbit.MaxRadius,
		Eccentricity:    64,
		ContactRadius:   8,
		ZoneHalf:        6,
		AnimPeriod:      8,
		AnimFrames:      4,
	}
}

// Manager owns the enemy and worker pools.
// Pools never compact; a destroyed actor leaves a hole reused first-fit.
type Manager struct {
	cfg          Config
	enemies      []Actor
	workers      []Actor
	eccentricity uint8
	reticle      Reticle
	zones        []field.Zone
	sprites      []Sprite
}

// NewManager builds empty pools.
func NewManager(cfg Config) *Manager {
	if cfg.AnimFrames == 0 {
		cfg.AnimFrames = 1
	}
	if cfg.AnimPeriod < 1 {
		cfg.AnimPeriod = 1
	}
	return &Manager{
		cfg:          cfg,
		enemies:      make([]Actor, cfg.EnemyCapacity),
		workers:      make([]Actor, cfg.WorkerCapacity),
		eccentricity: cfg.Eccentricity,
		reticle:      NewReticle(cfg.Width, cfg.Height),
		zones:        make([]field.Zone, 0, cfg.EnemyCapacity+cfg.WorkerCapacity),
		sprites:      make([]Sprite, 0, cfg.EnemyCapacity+cfg.WorkerCapacity),
	}
}

// SetEccentricity changes the setting frozen into future spawns.
func (m *Manager) SetEccentricity(e uint8) { m.eccentricity = e }

// Eccentricity returns the current global setting.
func (m *Manager) Eccentricity() uint8 { return m.eccentricity }

func (m *Manager) pool(kind Kind) []Actor {
	if kind.IsWorker() {
		return m.workers
	}
	return m.enemies
}

func (m *Manager) bounds(kind Kind) orbit.Bounds {
	lo := m.cfg.EnemyMinRadius
	if kind.IsWorker() {
		lo = m.cfg.WorkerMinRadius
	}
	return orbit.Bounds{MinRadius: lo, MaxRadius: m.cfg.MaxRadius}
}

// Spawn activates the first free slot of the kind's pool with an orbit whose
// apoapsis is (x, y). A full pool declines and returns false.
func (m *Manager) Spawn(kind Kind, x, y int16) bool {
	pool := m.pool(kind)
	for slot := range pool {
		if pool[slot].Active {
			continue
		}
		el, angle := orbit.Fit(orbit.Point{X: x, Y: y}, m.cfg.Anchor, m.eccentricity, m.bounds(kind))
		pos := orbit.Position(angle, el, m.cfg.Anchor)
		pool[slot] = Actor{
			Active:    true,
			Kind:      kind,
			X:         pos.X,
			Y:         pos.Y,
			Angle:     angle,
			Elements:  el,
			Infecting: kind == Enemy,
		}
		return true
	}
	return false
}

// Deactivate frees a slot without moving any other actor.
func (m *Manager) Deactivate(kind Kind, slot int) {
	pool := m.pool(kind)
	if slot < 0 || slot >= len(pool) {
		return
	}
	pool[slot].Active = false
}

// Tick advances every active actor one step, resolves contacts and returns
// one sprite per slot. The returned slice is reused by the next Tick.
func (m *Manager) Tick() []Sprite {
	m.integrate(m.enemies)
	m.integrate(m.workers)
	m.interact()
	m.animate(m.enemies)
	m.animate(m.workers)

	m.sprites = m.sprites[:0]
	m.sprites = appendSprites(m.sprites, m.enemies)
	m.sprites = appendSprites(m.sprites, m.workers)
	return m.sprites
}

func (m *Manager) integrate(pool []Actor) {
	for k := range pool {
		a := &pool[k]
		if !a.Active {
			continue
		}
		var pos orbit.Point
		pos, a.Angle = orbit.Step(a.Angle, a.Elements, m.cfg.Anchor)
		a.X, a.Y = pos.X, pos.Y
	}
}

func (m *Manager) interact() {
	reach := m.cfg.ContactRadius >> 1
	reachSq := int(reach) * int(reach)

	for wi := range m.workers {
		w := &m.workers[wi]
		if !w.Active {
			continue
		}
		wx, wy := w.X>>contactShift, w.Y>>contactShift
		for ei := range m.enemies {
			e := &m.enemies[ei]
			if !e.Active {
				continue
			}
			dx := fixed.Abs16(e.X>>contactShift - wx)
			dy := fixed.Abs16(e.Y>>contactShift - wy)
			if dx > reach || dy > reach {
				continue
			}
			if int(dx)*int(dx)+int(dy)*int(dy) > reachSq {
				continue
			}
			switch w.Kind {
			case Guardian:
				e.Active = false
			case Gardener:
				e.Infecting = false
			}
		}
	}
}

func (m *Manager) animate(pool []Actor) {
	for k := range pool {
		a := &pool[k]
		if !a.Active {
			continue
		}
		a.Timer++
		if a.Timer >= m.cfg.AnimPeriod {
			a.Timer = 0
			a.Frame = (a.Frame + 1) % m.cfg.AnimFrames
		}
	}
}

func appendSprites(out []Sprite, pool []Actor) []Sprite {
	for k := range pool {
		a := &pool[k]
		x, y := a.Pixel()
		out = append(out, Sprite{
			Kind:      a.Kind,
			Slot:      k,
			Visible:   a.Active,
			X:         x,
			Y:         y,
			Frame:     a.Frame,
			Infecting: a.Infecting,
		})
	}
	return out
}

// Zones reports the boxes where the field is currently infected or healed:
// infecting enemies infect, gardeners heal. The slice is reused between calls.
func (m *Manager) Zones() []field.Zone {
	m.zones = m.zones[:0]
	half := m.cfg.ZoneHalf
	for k := range m.enemies {
		e := &m.enemies[k]
		if e.Active && e.Infecting {
			m.zones = append(m.zones, box(e, half, field.EffectInfect))
		}
	}
	for k := range m.workers {
		w := &m.workers[k]
		if w.Active && w.Kind == Gardener {
			m.zones = append(m.zones, box(w, half, field.EffectHeal))
		}
	}
	return m.zones
}

func box(a *Actor, half int16, effect field.Effect) field.Zone {
	x, y := a.Pixel()
	return field.Zone{MinX: x - half, MinY: y - half, MaxX: x + half, MaxY: y + half, Effect: effect}
}

// Enemies returns a copy of the enemy pool.
func (m *Manager) Enemies() []Actor { return append([]Actor(nil), m.enemies...) }

// Workers returns a copy of the worker pool.
func (m *Manager) Workers() []Actor { return append([]Actor(nil), m.workers...) }

// Count returns the number of active actors of the kind.
func (m *Manager) Count(kind Kind) int {
	n := 0
	for _, a := range m.pool(kind) {
		if a.Active && a.Kind == kind {
			n++
		}
	}
	return n
}

// ActiveTotal returns the number of active actors in both pools.
func (m *Manager) ActiveTotal() int {
	n := 0
	for _, a := range m.enemies {
		if a.Active {
			n++
		}
	}
	for _, a := range m.workers {
		if a.Active {
			n++
		}
	}
	return n
}

// Reticle returns the player's reticle.
func (m *Manager) Reticle() *Reticle { return &m.reticle }

// UpdateReticle moves the reticle by already-debounced deltas.
func (m *Manager) UpdateReticle(dx, dy int8) { m.reticle.Move(dx, dy) }

// Reset deactivates every actor and recentres the reticle.
func (m *Manager) Reset() {
	for k := range m.enemies {
		m.enemies[k] = Actor{}
	}
	for k := range m.workers {
		m.workers[k] = Actor{}
	}
	m.eccentricity = m.cfg.Eccentricity
	m.reticle = NewReticle(m.cfg.Width, m.cfg.Height)
}
