package gen

import (
	"encoding/binary"
	"math"
	"math/rand/v2"
)

// Rand is a seedable source of uniform and normal samples.
//
// It also implements io.Reader so byte-oriented consumers such as UUID
// generation draw from the same stream. A Rand is not safe for concurrent
// use.
type Rand struct {
	rng  *rand.Rand
	seed uint64
}

// pcgIncrement is the fixed stream selector paired with every seed.
const pcgIncrement = 0x9e3779b97f4a7c15

// NewRand returns a Rand producing the sequence determined by seed.
func NewRand(seed uint64) *Rand {
	return &Rand{
		rng:  rand.New(rand.NewPCG(seed, pcgIncrement)),
		seed: seed,
	}
}

// Seed returns the seed r was created with.
func (r *Rand) Seed() uint64 { return r.seed }

// RandomSeed returns a seed drawn from the runtime's entropy source.
func RandomSeed() uint64 { return rand.Uint64() }

// Float64 returns a uniform sample in [0, 1).
func (r *Rand) Float64() float64 { return r.rng.Float64() }

// NormFloat64 returns a standard normal sample.
func (r *Rand) NormFloat64() float64 { return r.rng.NormFloat64() }

// Bool returns true with probability one half.
func (r *Rand) Bool() bool { return r.rng.Uint64()&1 == 1 }

// Index returns floor(n*u) for a uniform u, i.e. an index in [0, n).
func (r *Rand) Index(n int) int {
	i := int(math.Floor(float64(n) * r.Float64()))
	if i >= n {
		i = n - 1
	}

	return i
}

// Int returns min + floor((max-min)*u). When min < max the result lies in
// [min, max); max itself is never returned. An inverted range yields a
// value in [max, min].
//
// The offset from min is computed in uint64 so spans wider than
// math.MaxInt64 stay uniform.
func (r *Rand) Int(minv, maxv int64) int64 {
	u := r.Float64()

	if minv <= maxv {
		span := uint64(maxv) - uint64(minv)

		off := uint64(math.Floor(float64(span) * u))
		if span > 0 && off >= span {
			off = span - 1
		}

		return int64(uint64(minv) + off)
	}

	// floor of a negative product rounds away from min.
	span := uint64(minv) - uint64(maxv)

	off := uint64(math.Ceil(float64(span) * u))
	if off > span {
		off = span
	}

	return int64(uint64(minv) - off)
}

// Float returns min + (max-min)*u.
func (r *Rand) Float(minv, maxv float64) float64 {
	return minv + (maxv-minv)*r.Float64()
}

// Read fills p with random bytes. It never returns an error.
func (r *Rand) Read(p []byte) (int, error) {
	var buf [8]byte

	n := 0
	for n < len(p) {
		binary.LittleEndian.PutUint64(buf[:], r.rng.Uint64())
		n += copy(p[n:], buf[:])
	}

	return n, nil
}
