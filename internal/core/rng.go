package core

// RNG is a small deterministic uniform generator with copyable state.
// Structure generation threads one stream through every call that needs
// variation, so call order fully determines output; the mesh builder owns a
// second stream whose state can be saved and restored around sibling
// traversals (see State/Restore).
type RNG struct {
	s uint64
}

// State is an opaque snapshot of an RNG stream.
type State uint64

// NewRNG creates a deterministic RNG using the provided seed. Distinct seeds
// diverge from the first draw; seed 0 is valid.
func NewRNG(seed int64) *RNG {
	r := &RNG{}
	r.Seed(seed)
	return r
}

// Seed resets the stream to the state implied by seed.
func (r *RNG) Seed(seed int64) {
	// splitmix64 scramble so consecutive seeds do not produce correlated
	// early draws.
	z := uint64(seed) + 0x9e3779b97f4a7c15
	z = (z ^ (z >> 30)) * 0xbf58476d1ce4e5b9
	z = (z ^ (z >> 27)) * 0x94d049bb133111eb
	z ^= z >> 31
	if z == 0 {
		z = 0x9e3779b97f4a7c15
	}
	r.s = z
}

func (r *RNG) next() uint64 {
	s := r.s
	s ^= s >> 12
	s ^= s << 25
	s ^= s >> 27
	r.s = s
	return s * 0x2545f4914f6cdd1d
}

// Float returns a uniform value in [0, 1).
func (r *RNG) Float() float64 {
	return float64(r.next()>>11) / (1 << 53)
}

// Uniform returns a uniform value in [-v, +v].
func (r *RNG) Uniform(v float64) float64 {
	return (2*r.Float() - 1) * v
}

// IntN returns a uniform int in [0, n). n must be positive.
func (r *RNG) IntN(n int) int {
	if n <= 0 {
		return 0
	}
	return int(r.next() % uint64(n))
}

// Byte returns a uniform value in [0, 255].
func (r *RNG) Byte() uint8 {
	return uint8(r.next() >> 56)
}

// State snapshots the stream so a caller can rewind it with Restore.
func (r *RNG) State() State { return State(r.s) }

// Restore rewinds the stream to a snapshot taken with State.
func (r *RNG) Restore(st State) { r.s = uint64(st) }
