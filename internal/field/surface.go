package field

// Surface is the raster the field draws into.
type Surface interface {
	SetPixel(x, y int, c uint8)
	GetPixel(x, y int) uint8
	Size() (w, h int)
}

// Effect is what a zone does to particles passing through it.
type Effect uint8

const (
	EffectInfect Effect = iota
	EffectHeal
)

func (e Effect) String() string {
	switch e {
	case EffectInfect:
		return "infect"
	case EffectHeal:
		return "heal"
	}
	return "unknown"
}

// Zone is a screen-space box, inclusive on all edges.
type Zone struct {
	MinX, MinY, MaxX, MaxY int16
	Effect                 Effect
}

// Contains reports whether the pixel lies inside the zone.
func (z Zone) Contains(x, y int16) bool {
	return x >= z.MinX && x <= z.MaxX && y >= z.MinY && y <= z.MaxY
}

// ZoneSource supplies the zones active during a particle batch.
type ZoneSource interface {
	Zones() []Zone
}
