package fixed

// Rand is a 16-bit xorshift generator. Its sequence depends only on the seed.
type Rand struct {
	state uint16
}

// NewRand seeds a generator; a zero seed is replaced since xorshift would stall.
func NewRand(seed uint16) *Rand {
	if seed == 0 {
		seed = 0xACE1
	}
	return &Rand{state: seed}
}

// Next advances the generator (7/9/8 triple, full 65535 period).
func (r *Rand) Next() uint16 {
	x := r.state
	x ^= x << 7
	x ^= x >> 9
	x ^= x << 8
	r.state = x
	return x
}

// Intn returns a value in [0, n); n <= 0 yields 0.
func (r *Rand) Intn(n int) int {
	if n <= 0 {
		return 0
	}
	return int(r.Next()) % n
}
