package config

import "sort"

func preset(mutate func(c *Config)) *Config {
	c := DefaultConfig()
	mutate(c)
	return c
}

var Presets = map[string]*Config{
	"calm": preset(func(c *Config) {
		c.Field.TimeStep = 10
		c.Field.RingGain = 2
		c.Host.EnemyInterval = 0
	}),
	"dense": preset(func(c *Config) {
		c.Field.N = 160
		c.Field.ParticleBatch = 800
		c.Field.Decay = "subtract"
		c.Field.DecayAmount = 2
		c.Host.FieldTicksPerRefresh = 6
	}),
	"storm": preset(func(c *Config) {
		c.Field.TimeStep = 60
		c.Orbit.Eccentricity = 160
		c.Host.EnemyInterval = 60
		c.Host.SpawnCooldown = 8
	}),
	"tiny": preset(func(c *Config) {
		c.Display.Width = 96
		c.Display.Height = 54
		c.Field.N = 32
		c.Field.Scale = 20
		c.Field.DecayBatch = 800
		c.Field.ParticleBatch = 128
		c.Orbit.MaxRadius = 24
		c.Orbit.EnemyMinRadius = 8
		c.Orbit.WorkerMinRadius = 6
		c.Host.Refreshes = 600
	}),
}

// GetPreset returns a copy of the named preset, or nil.
func GetPreset(name string) *Config {
	p, ok := Presets[name]
	if !ok {
		return nil
	}
	cfg := *p
	return &cfg
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
