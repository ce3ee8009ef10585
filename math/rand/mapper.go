package rand

import (
	"math"
	"math/bits"
)

// 2^-53
const float53 = 1.0 / (1 << 53)

// Float64 returns a float uniformly at random within the range [0, 1) with
// 53 bits of precision. It never returns 1.
func (gen *Generator) Float64() float64 {
	switch b := gen.src.bits(); {
	case b >= 64:
		return float64(gen.src.next()>>11) * float53
	case b == 63:
		return float64(gen.src.next()>>10) * float53
	case b == 32:
		a, c := gen.src.next()>>5, gen.src.next()>>6
		return float64(a<<26|c) * float53
	default:
		a, c := gen.src.next()>>4, gen.src.next()>>5
		return float64(a<<26|c) * float53
	}
}

// bits32 returns 32 uniform bits. 31-bit families consume two draws.
func (gen *Generator) bits32() uint32 {
	switch b := gen.src.bits(); {
	case b >= 64:
		return uint32(gen.src.next() >> 32)
	case b == 63:
		return uint32(gen.src.next() >> 31)
	case b == 32:
		return uint32(gen.src.next())
	default:
		a, c := gen.src.next(), gen.src.next()
		return uint32(a<<1 | c>>30)
	}
}

// bits64 returns 64 uniform bits: one draw for 64- and 128-bit families, two
// for 32- and 63-bit families and three for 31-bit families.
func (gen *Generator) bits64() uint64 {
	switch b := gen.src.bits(); {
	case b >= 64:
		return gen.src.next()
	case b == 63:
		a, c := gen.src.next(), gen.src.next()
		return a<<1 | c>>62
	case b == 32:
		a, c := gen.src.next(), gen.src.next()
		return a<<32 | c
	default:
		a, c, d := gen.src.next(), gen.src.next(), gen.src.next()
		return a<<33 | c<<2 | d>>29
	}
}

// uint32n returns a value in [0, bound) using Lemire's multiply-high method
// with rejection.
func (gen *Generator) uint32n(bound uint32) uint32 {
	m := uint64(gen.bits32()) * uint64(bound)
	if low := uint32(m); low < bound {
		thresh := -bound % bound
		for low < thresh {
			m = uint64(gen.bits32()) * uint64(bound)
			low = uint32(m)
		}
	}
	return uint32(m >> 32)
}

// uint64n returns a value in [0, bound). Bounds of at most 2^32 take the
// 32-bit path.
func (gen *Generator) uint64n(bound uint64) uint64 {
	switch {
	case bound <= math.MaxUint32:
		return uint64(gen.uint32n(uint32(bound)))
	case bound == 1<<32:
		return uint64(gen.bits32())
	}
	hi, lo := bits.Mul64(gen.bits64(), bound)
	if lo < bound {
		thresh := -bound % bound
		for lo < thresh {
			hi, lo = bits.Mul64(gen.bits64(), bound)
		}
	}
	return hi
}
