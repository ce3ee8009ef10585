package rand

import (
	"math"
	"math/rand"
)

// A Generator is a rand.Source64, so any family can drive the standard
// library's distributions.
var _ rand.Source64 = (*Generator)(nil)

// Rand returns a standard library generator which draws from gen. The two
// share state.
func (gen *Generator) Rand() *rand.Rand {
	return rand.New(gen)
}

// Seed implements math/rand.Source. It is equivalent to Reseed.
func (gen *Generator) Seed(seed int64) { gen.Reseed(uint64(seed)) }

// Int63 implements math/rand.Source.
func (gen *Generator) Int63() int64 { return int64(gen.Uint64() & math.MaxInt64) }

// Uint64 implements math/rand.Source64 and returns 64 uniform bits.
func (gen *Generator) Uint64() uint64 { return gen.bits64() }

// Uint32 returns 32 uniform bits.
func (gen *Generator) Uint32() uint32 { return gen.bits32() }
