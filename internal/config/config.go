package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/galaxy/internal/actor"
	"github.com/san-kum/galaxy/internal/engine"
	"github.com/san-kum/galaxy/internal/field"
	"github.com/san-kum/galaxy/internal/orbit"
)

const (
	DefaultWidth        = 320
	DefaultHeight       = 180
	DefaultN            = 100
	DefaultEccentricity = 64
	DefaultSeed         = 12345
	DefaultRefreshRate  = 60
	DefaultRefreshes    = 3600
)

// ErrInvalid is wrapped by every validation failure.
var ErrInvalid = errors.New("invalid config")

type Config struct {
	Display Display `yaml:"display"`
	Field   Field   `yaml:"field"`
	Orbit   Orbit   `yaml:"orbit"`
	Actors  Actors  `yaml:"actors"`
	Host    Host    `yaml:"host"`
}

type Display struct {
	Width  int    `yaml:"width"`
	Height int    `yaml:"height"`
	Theme  string `yaml:"theme"`
}

type Field struct {
	N             int    `yaml:"n"`
	DecayBatch    int    `yaml:"decay_batch"`
	ParticleBatch int    `yaml:"particle_batch"`
	TimeStep      int    `yaml:"time_step"`
	TimePeriod    int    `yaml:"time_period"`
	Scale         int    `yaml:"scale"`
	CenterGain    int    `yaml:"center_gain"`
	RingGain      int    `yaml:"ring_gain"`
	Erase         bool   `yaml:"erase"`
	Decay         string `yaml:"decay"`
	DecayAmount   int    `yaml:"decay_amount"`
}

type Orbit struct {
	Eccentricity    int `yaml:"eccentricity"`
	EnemyMinRadius  int `yaml:"enemy_min_radius"`
	WorkerMinRadius int `yaml:"worker_min_radius"`
	MaxRadius       int `yaml:"max_radius"`
}

type Actors struct {
	EnemyCapacity  int `yaml:"enemy_capacity"`
	WorkerCapacity int `yaml:"worker_capacity"`
	ContactRadius  int `yaml:"contact_radius"`
	ZoneHalf       int `yaml:"zone_half"`
	AnimPeriod     int `yaml:"anim_period"`
	AnimFrames     int `yaml:"anim_frames"`
}

type Host struct {
	FieldTicksPerRefresh int    `yaml:"field_ticks_per_refresh"`
	SpawnCooldown        int    `yaml:"spawn_cooldown"`
	EnemyInterval        int    `yaml:"enemy_interval"`
	Seed                 int    `yaml:"seed"`
	Randomize            bool   `yaml:"randomize"`
	Controller           string `yaml:"controller"`
	RefreshRate          int    `yaml:"refresh_rate"`
	Refreshes            int    `yaml:"refreshes"`
}

func DefaultConfig() *Config {
	return &Config{
		Display: Display{
			Width:  DefaultWidth,
			Height: DefaultHeight,
			Theme:  "neon",
		},
		Field: Field{
			N:             DefaultN,
			DecayBatch:    3200,
			ParticleBatch: 500,
			TimeStep:      25,
			TimePeriod:    1608,
			Scale:         60,
			CenterGain:    8,
			RingGain:      3,
			Decay:         "halve",
			DecayAmount:   1,
		},
		Orbit: Orbit{
			Eccentricity:    DefaultEccentricity,
			EnemyMinRadius:  20,
			WorkerMinRadius: 12,
			MaxRadius:       orbit.MaxRadius,
		},
		Actors: Actors{
			EnemyCapacity:  8,
			WorkerCapacity: 8,
			ContactRadius:  8,
			ZoneHalf:       6,
			AnimPeriod:     8,
			AnimFrames:     4,
		},
		Host: Host{
			FieldTicksPerRefresh: 4,
			SpawnCooldown:        15,
			EnemyInterval:        240,
			Seed:                 DefaultSeed,
			Randomize:            true,
			Controller:           "none",
			RefreshRate:          DefaultRefreshRate,
			Refreshes:            DefaultRefreshes,
		},
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

func invalid(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalid, fmt.Sprintf(format, args...))
}

func inRange(v, lo, hi int) bool { return v >= lo && v <= hi }

// Validate checks every range the fixed-point core depends on. The display
// is capped so actor positions stay inside Q12.4.
func (c *Config) Validate() error {
	if !inRange(c.Display.Width, 1, engine.MaxWidth) || !inRange(c.Display.Height, 1, engine.MaxHeight) {
		return invalid("display %dx%d out of range", c.Display.Width, c.Display.Height)
	}
	if !inRange(c.Orbit.Eccentricity, 0, 255) {
		return invalid("eccentricity %d not in [0,255]", c.Orbit.Eccentricity)
	}
	if !inRange(c.Orbit.MaxRadius, 1, orbit.MaxRadius) {
		return invalid("max radius %d not in [1,%d]", c.Orbit.MaxRadius, orbit.MaxRadius)
	}
	if !inRange(c.Orbit.EnemyMinRadius, 0, c.Orbit.MaxRadius) || !inRange(c.Orbit.WorkerMinRadius, 0, c.Orbit.MaxRadius) {
		return invalid("min radius must be in [0,max radius]")
	}
	if !inRange(c.Actors.EnemyCapacity, 0, 64) || !inRange(c.Actors.WorkerCapacity, 0, 64) {
		return invalid("pool capacities must be in [0,64]")
	}
	if !inRange(c.Actors.ContactRadius, 0, 64) || !inRange(c.Actors.ZoneHalf, 0, 64) {
		return invalid("contact radius and zone size must be in [0,64]")
	}
	if !inRange(c.Actors.AnimPeriod, 1, 255) || !inRange(c.Actors.AnimFrames, 1, 255) {
		return invalid("animation period and frames must be in [1,255]")
	}
	if c.Host.FieldTicksPerRefresh < 0 || c.Host.SpawnCooldown < 0 || c.Host.EnemyInterval < 0 {
		return invalid("host counters must not be negative")
	}
	if !inRange(c.Host.Seed, 0, 0xFFFF) {
		return invalid("seed %d not in [0,65535]", c.Host.Seed)
	}
	if c.Host.RefreshRate < 1 {
		return invalid("refresh rate must be positive")
	}
	if _, err := c.FieldConfig(); err != nil {
		return err
	}
	return nil
}

// FieldConfig builds the simulator tuning.
func (c *Config) FieldConfig() (field.Config, error) {
	f := c.Field
	for _, v := range []int{f.TimeStep, f.TimePeriod, f.Scale} {
		if !inRange(v, -32768, 32767) {
			return field.Config{}, invalid("field value %d overflows 16 bits", v)
		}
	}
	if !inRange(f.CenterGain, 0, 255) || !inRange(f.RingGain, 0, 255) || !inRange(f.DecayAmount, 0, 15) {
		return field.Config{}, invalid("field gains out of range")
	}
	rule, err := field.NewDecayRule(f.Decay, uint8(f.DecayAmount))
	if err != nil {
		return field.Config{}, fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	fc := field.Config{
		N:             f.N,
		DecayBatch:    f.DecayBatch,
		ParticleBatch: f.ParticleBatch,
		TimeStep:      int16(f.TimeStep),
		TimePeriod:    int16(f.TimePeriod),
		Scale:         int16(f.Scale),
		CenterGain:    uint8(f.CenterGain),
		RingGain:      uint8(f.RingGain),
		Erase:         f.Erase,
		Decay:         rule,
	}
	if err := fc.Validate(); err != nil {
		return field.Config{}, fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	return fc, nil
}

// ActorConfig builds the pool tuning. Call Validate first; values are
// narrowed without checks.
func (c *Config) ActorConfig() actor.Config {
	return actor.Config{
		Anchor:          orbit.Point{X: int16(c.Display.Width / 2), Y: int16(c.Display.Height / 2)},
		Width:           int16(c.Display.Width),
		Height:          int16(c.Display.Height),
		EnemyCapacity:   c.Actors.EnemyCapacity,
		WorkerCapacity:  c.Actors.WorkerCapacity,
		EnemyMinRadius:  uint8(c.Orbit.EnemyMinRadius),
		WorkerMinRadius: uint8(c.Orbit.WorkerMinRadius),
		MaxRadius:       uint8(c.Orbit.MaxRadius),
		Eccentricity:    uint8(c.Orbit.Eccentricity),
		ContactRadius:   int16(c.Actors.ContactRadius),
		ZoneHalf:        int16(c.Actors.ZoneHalf),
		AnimPeriod:      int16(c.Actors.AnimPeriod),
		AnimFrames:      uint8(c.Actors.AnimFrames),
	}
}

// EngineConfig validates and builds the whole host configuration.
func (c *Config) EngineConfig() (engine.Config, error) {
	if err := c.Validate(); err != nil {
		return engine.Config{}, err
	}
	fc, err := c.FieldConfig()
	if err != nil {
		return engine.Config{}, err
	}
	return engine.Config{
		Width:                c.Display.Width,
		Height:               c.Display.Height,
		Field:                fc,
		Actors:               c.ActorConfig(),
		FieldTicksPerRefresh: c.Host.FieldTicksPerRefresh,
		SpawnCooldown:        c.Host.SpawnCooldown,
		EnemyInterval:        c.Host.EnemyInterval,
		Seed:                 uint16(c.Host.Seed),
		Randomize:            c.Host.Randomize,
		SampleEvery:          1,
	}, nil
}
