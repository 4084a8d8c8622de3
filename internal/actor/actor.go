// Package actor manages the fixed-capacity pools of orbiting enemies and
// workers and the player's reticle.
package actor

import (
	"github.com/san-kum/galaxy/internal/orbit"
)

// Kind identifies what an actor does.
type Kind uint8

const (
	// Enemy is hostile and infects the field while its Infecting flag is set.
	Enemy Kind = iota
	// Guardian seeks enemies and destroys them on contact.
	Guardian
	// Gardener heals: it clears an enemy's Infecting flag on contact and
	// heals field particles passing under it.
	Gardener
)

var kindNames = map[Kind]string{
	Enemy:    "enemy",
	Guardian: "guardian",
	Gardener: "gardener",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return "unknown"
}

// IsWorker reports whether the kind lives in the worker pool.
func (k Kind) IsWorker() bool { return k == Guardian || k == Gardener }

// ParseKind maps a name back to a Kind.
func ParseKind(name string) (Kind, bool) {
	for k, n := range kindNames {
		if n == name {
			return k, true
		}
	}
	return 0, false
}

// Actor is one pooled orbiting body.
type Actor struct {
	Active bool
	Kind   Kind
	X, Y   int16  // Q12.4
	Angle  uint16 // Q8.8 phase
	orbit.Elements
	Timer     int16
	Frame     uint8
	Infecting bool
}

// Pixel returns the actor position in whole pixels.
func (a *Actor) Pixel() (x, y int16) {
	return a.X >> 4, a.Y >> 4
}

// Sprite is the per-slot update handed to the display device.
type Sprite struct {
	Kind      Kind
	Slot      int
	Visible   bool
	X, Y      int16 // pixels
	Frame     uint8
	Infecting bool
}
