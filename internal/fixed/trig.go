package fixed

import "math"

// Amplitude is the largest magnitude stored in the sine table (≈1.0 in Q8.8).
const Amplitude = Unit - 1

// Quarter turn in angle units
const Quarter Angle = 64

// sinLUT is built once at start-up; lookups afterwards are pure indexing.
var sinLUT [256]int16

func init() {
	for i := 0; i < len(sinLUT); i++ {
		rad := 2.0 * math.Pi * float64(i) / float64(len(sinLUT))
		sinLUT[i] = int16(math.Round(math.Sin(rad) * Amplitude))
	}
}

// Sin returns sin(a) scaled to ±Amplitude.
func Sin(a Angle) int16 { return sinLUT[a] }

// Cos returns cos(a) scaled to ±Amplitude.
func Cos(a Angle) int16 { return sinLUT[a+Quarter] }

// SinCos returns both lookups for one angle
func SinCos(a Angle) (s, c int16) {
	return sinLUT[a], sinLUT[a+Quarter]
}

// AngleFromVector estimates atan2 for screen coordinates (y grows down):
// 0 = +x, 64 = +y, 128 = -x, 192 = -y.
// Within an octant the angle is approximated linearly as min*32/max, which is
// off by at most ~4 units near 22.5°. The division is a spawn-time cost.
// The zero vector returns 0.
func AngleFromVector(dx, dy int16) Angle {
	if dx == 0 && dy == 0 {
		return 0
	}

	ax, ay := int32(dx), int32(dy)
	if ax < 0 {
		ax = -ax
	}
	if ay < 0 {
		ay = -ay
	}

	maxV, minV := ax, ay
	if ay > ax {
		maxV, minV = ay, ax
	}
	base := Angle((minV * 32) / maxV)

	if ax >= ay {
		// x dominant: octants 0, 3, 4, 7
		if dx >= 0 {
			if dy >= 0 {
				return base
			}
			return 0 - base
		}
		if dy >= 0 {
			return 128 - base
		}
		return 128 + base
	}

	// y dominant: octants 1, 2, 5, 6; base is measured from the y axis
	if dy >= 0 {
		if dx >= 0 {
			return 64 - base
		}
		return 64 + base
	}
	if dx >= 0 {
		return 192 + base
	}
	return 192 - base
}

// OctagonalDistance approximates sqrt(dx²+dy²) as max + min/2.
func OctagonalDistance(dx, dy int16) int16 {
	ax, ay := Abs16(dx), Abs16(dy)
	if ax > ay {
		return ax + ay>>1
	}
	return ay + ax>>1
}
