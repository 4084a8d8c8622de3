// Package field advances the galaxy particle field in bounded slices.
//
// The field has no per-particle positions. Every particle (i, j) is derived
// from two shared feedback accumulators that the previous particle left
// behind, so particles must be processed in strict row-major order. The work
// is split into three resumable phases (Decay, Time, Particles), each with
// its own batch size, so one Tick call never does more than a fixed amount
// of work regardless of field size.
package field

import (
	"errors"

	"github.com/san-kum/galaxy/internal/fixed"
)

// Phase is the state of the tick machine.
type Phase uint8

const (
	PhaseDecay Phase = iota
	PhaseTime
	PhaseParticles
)

func (p Phase) String() string {
	switch p {
	case PhaseDecay:
		return "decay"
	case PhaseTime:
		return "time"
	case PhaseParticles:
		return "particles"
	}
	return "unknown"
}

// Health is the per-row infection state.
type Health uint8

const (
	Normal Health = iota
	Infected
)

// noPosition marks a particle with nothing drawn.
const noPosition = 0xFFFF

// Config tunes the field. Zero values are not valid; start from DefaultConfig.
type Config struct {
	N             int   // particles per side; N*N total
	DecayBatch    int   // cells visited per decay call
	ParticleBatch int   // particles processed per particle call
	TimeStep      int16 // Q8.8 radians added per frame
	TimePeriod    int16 // time wraps here; ~2π keeps the motion seamless
	Scale         int16 // screen pixels per 1.0 of u/v, at most 64
	CenterGain    uint8
	RingGain      uint8
	Erase         bool // erase the cached position before redrawing
	Decay         DecayRule
}

// DefaultConfig returns the tuning used by the demo.
func DefaultConfig() Config {
	return Config{
		N:             100,
		DecayBatch:    3200,
		ParticleBatch: 500,
		TimeStep:      25,
		TimePeriod:    1608,
		Scale:         60,
		CenterGain:    8,
		RingGain:      3,
		Decay:         Halve{},
	}
}

// Validate checks the bounds the 16-bit arithmetic depends on.
func (c Config) Validate() error {
	switch {
	case c.N < 2 || c.N > 256:
		return errors.New("field: n must be in [2,256]")
	case c.DecayBatch < 1:
		return errors.New("field: decay batch must be positive")
	case c.ParticleBatch < 1:
		return errors.New("field: particle batch must be positive")
	case c.TimePeriod < 1 || c.TimePeriod > 4096:
		return errors.New("field: time period must be in [1,4096]")
	case c.TimeStep < 0 || c.TimeStep >= c.TimePeriod:
		return errors.New("field: time step must be in [0,period)")
	case c.Scale < 1 || c.Scale > 64:
		return errors.New("field: scale must be in [1,64]")
	case c.CenterGain > MaxLevel || c.RingGain > MaxLevel:
		return errors.New("field: gains must not exceed 15")
	case c.Decay == nil:
		return errors.New("field: decay rule required")
	}
	return nil
}

// Row holds the per-i constants cached when the outer index advances.
type Row struct {
	Angle    fixed.Angle // i radians in angle units
	RowAngle fixed.Angle // i * 256 / N
	Channel  Channel
}

// Feedback computes one particle: the new accumulators and the (u, v) sums.
// It is a pure function of its inputs.
func Feedback(fx, fy, t int16, row Row) (nfx, nfy, u, v int16) {
	a1 := row.Angle + fixed.RadiansToAngle(fy)
	a2 := row.RowAngle + fixed.RadiansToAngle(fx)

	s1, c1 := fixed.SinCos(a1)
	s2, c2 := fixed.SinCos(a2)

	u = s1 + s2
	v = c1 + c2
	return u + t, v, u, v
}

// Simulator owns the field state and the resumable tick machine.
type Simulator struct {
	cfg     Config
	surface Surface
	zones   ZoneSource
	w, h    int
	cx, cy  int16

	fx, fy, time int16

	phase Phase
	// decay cursor
	parity       int
	decayX       int
	decayY       int
	decayVisited int
	decayTotal   int
	// particle cursor
	i, j int
	row  Row

	rows   []Row
	health []Health
	lastX  []uint16
	lastY  []uint8
	frames uint64
}

// New builds a simulator over surface and clears it.
func New(cfg Config, surface Surface) (*Simulator, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if surface == nil {
		return nil, errors.New("field: surface required")
	}
	w, h := surface.Size()
	if w < 1 || h < 1 || w > noPosition || h > 255 {
		return nil, errors.New("field: surface size out of range")
	}

	s := &Simulator{
		cfg:     cfg,
		surface: surface,
		w:       w,
		h:       h,
		cx:      int16(w / 2),
		cy:      int16(h / 2),
		rows:    make([]Row, cfg.N),
		health:  make([]Health, cfg.N),
		lastX:   make([]uint16, cfg.N*cfg.N),
		lastY:   make([]uint8, cfg.N*cfg.N),
	}
	for i := range s.rows {
		ch := ChannelPink
		if i >= cfg.N/2 {
			ch = ChannelCyan
		}
		s.rows[i] = Row{
			Angle:    fixed.Angle(i * fixed.RadianUnits),
			RowAngle: fixed.Angle(i * 256 / cfg.N),
			Channel:  ch,
		}
	}
	s.Init()
	return s, nil
}

// SetZones attaches the source consulted during the particle phase.
func (s *Simulator) SetZones(z ZoneSource) { s.zones = z }

// Init clears the surface and resets all state to a fresh Decay phase.
func (s *Simulator) Init() {
	for y := 0; y < s.h; y++ {
		for x := 0; x < s.w; x++ {
			s.surface.SetPixel(x, y, 0)
		}
	}
	s.fx, s.fy, s.time = 0, 0, 0
	s.phase = PhaseDecay
	s.i, s.j = 0, 0
	s.row = s.rows[0]
	s.frames = 0
	s.startDecayPass(0)
	for k := range s.lastX {
		s.lastX[k] = noPosition
	}
	for k := range s.health {
		s.health[k] = Normal
	}
}

// Randomize seeds the accumulators and time as a pure function of seed.
func (s *Simulator) Randomize(seed uint16) {
	r := fixed.NewRand(seed)
	s.fx = int16(r.Next()%512) - 256
	s.fy = int16(r.Next()%512) - 256
	s.time = int16(r.Next() % uint16(s.cfg.TimePeriod))
}

// Tick performs one bounded slice of work and reports whether a full
// Decay → Time → Particles frame has just completed.
func (s *Simulator) Tick() bool {
	switch s.phase {
	case PhaseDecay:
		s.decayBatch()
	case PhaseTime:
		s.advanceTime()
	case PhaseParticles:
		return s.particleBatch()
	}
	return false
}

func (s *Simulator) startDecayPass(parity int) {
	total := s.w * s.h
	s.parity = parity
	s.decayVisited = 0
	s.decayTotal = (total - parity + 1) / 2
	s.decayX = parity % s.w
	s.decayY = parity / s.w
}

func (s *Simulator) decayBatch() {
	n := s.cfg.DecayBatch
	if remaining := s.decayTotal - s.decayVisited; n > remaining {
		n = remaining
	}
	rule := s.cfg.Decay
	for k := 0; k < n; k++ {
		if c := s.surface.GetPixel(s.decayX, s.decayY); c != 0 {
			if d := ApplyCell(rule, c); d != c {
				s.surface.SetPixel(s.decayX, s.decayY, d)
			}
		}
		s.decayX += 2
		for s.decayX >= s.w {
			s.decayX -= s.w
			s.decayY++
		}
	}
	s.decayVisited += n

	if s.decayVisited >= s.decayTotal {
		s.startDecayPass(s.parity ^ 1)
		s.phase = PhaseTime
	}
}

func (s *Simulator) advanceTime() {
	s.time += s.cfg.TimeStep
	if s.time >= s.cfg.TimePeriod {
		s.time -= s.cfg.TimePeriod
	}
	s.i, s.j = 0, 0
	s.row = s.rows[0]
	s.phase = PhaseParticles
}

func (s *Simulator) particleBatch() bool {
	var zones []Zone
	if s.zones != nil {
		zones = s.zones.Zones()
	}

	n := s.cfg.N
	for k := 0; k < s.cfg.ParticleBatch && s.i < n; k++ {
		s.particle(zones)
		s.j++
		if s.j >= n {
			s.j = 0
			s.i++
			if s.i < n {
				s.row = s.rows[s.i]
			}
		}
	}

	if s.i < n {
		return false
	}
	s.i, s.j = 0, 0
	s.row = s.rows[0]
	s.phase = PhaseDecay
	s.frames++
	return true
}

func (s *Simulator) particle(zones []Zone) {
	var u, v int16
	s.fx, s.fy, u, v = Feedback(s.fx, s.fy, s.time, s.row)

	sx := s.cx + (u*s.cfg.Scale)>>8
	r := (v * s.cfg.Scale) >> 8
	sy := s.cy + r - r>>2

	for _, z := range zones {
		if z.Contains(sx, sy) {
			if z.Effect == EffectInfect {
				s.health[s.i] = Infected
			} else {
				s.health[s.i] = Normal
			}
		}
	}

	k := s.i*s.cfg.N + s.j
	if s.cfg.Erase && s.lastX[k] != noPosition {
		s.surface.SetPixel(int(s.lastX[k]), int(s.lastY[k]), 0)
	}

	if sx < 0 || int(sx) >= s.w || sy < 0 || int(sy) >= s.h {
		s.lastX[k] = noPosition
		return
	}

	ch := s.row.Channel
	if s.health[s.i] == Infected {
		ch = ChannelBoth
	}
	x, y := int(sx), int(sy)
	s.blend(x, y, ch, s.cfg.CenterGain)
	s.blend(x-1, y, ch, s.cfg.RingGain)
	s.blend(x+1, y, ch, s.cfg.RingGain)
	s.blend(x, y-1, ch, s.cfg.RingGain)
	s.blend(x, y+1, ch, s.cfg.RingGain)

	s.lastX[k] = uint16(sx)
	s.lastY[k] = uint8(sy)
}

func (s *Simulator) blend(x, y int, ch Channel, gain uint8) {
	if gain == 0 || x < 0 || y < 0 || x >= s.w || y >= s.h {
		return
	}
	c := s.surface.GetPixel(x, y)
	if n := Add(c, ch, gain); n != c {
		s.surface.SetPixel(x, y, n)
	}
}

// Phase returns the state the next Tick will run.
func (s *Simulator) Phase() Phase { return s.phase }

// Frames returns the number of completed frames since Init.
func (s *Simulator) Frames() uint64 { return s.frames }

// Accumulators returns the shared feedback state.
func (s *Simulator) Accumulators() (fx, fy, t int16) { return s.fx, s.fy, s.time }

// Cursor returns the next particle to be processed.
func (s *Simulator) Cursor() (i, j int) { return s.i, s.j }

// DecayCursor returns the active parity and the cells visited in this pass.
func (s *Simulator) DecayCursor() (parity, visited, total int) {
	return s.parity, s.decayVisited, s.decayTotal
}

// Health returns the infection state of row i; out-of-range rows are Normal.
func (s *Simulator) Health(i int) Health {
	if i < 0 || i >= len(s.health) {
		return Normal
	}
	return s.health[i]
}

// InfectedRows counts rows currently infected.
func (s *Simulator) InfectedRows() int {
	n := 0
	for _, h := range s.health {
		if h == Infected {
			n++
		}
	}
	return n
}

// Config returns the active configuration.
func (s *Simulator) Config() Config { return s.cfg }
