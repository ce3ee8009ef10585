package rand

import (
	"lukechampine.com/uint128"
)

// lcgAdvance returns the multiplier and increment which advance the
// generator x -> mult*x + plus (mod 2^64) by delta steps in a single affine
// step. Results for smaller power-of-two moduli are the truncations of these.
func lcgAdvance(mult, plus, delta uint64) (uint64, uint64) {
	accMult, accPlus := uint64(1), uint64(0)
	for delta > 0 {
		if delta&1 != 0 {
			accMult *= mult
			accPlus = accPlus*mult + plus
		}
		plus *= mult + 1
		mult *= mult
		delta >>= 1
	}
	return accMult, accPlus
}

// lcgAdvance128 is lcgAdvance modulo 2^128.
func lcgAdvance128(mult, plus, delta uint128.Uint128) (uint128.Uint128, uint128.Uint128) {
	accMult, accPlus := uint128.From64(1), uint128.Zero
	for !delta.IsZero() {
		if delta.Lo&1 != 0 {
			accMult = accMult.MulWrap(mult)
			accPlus = accPlus.MulWrap(mult).AddWrap(plus)
		}
		plus = plus.MulWrap(mult.AddWrap64(1))
		mult = mult.MulWrap(mult)
		delta = delta.Rsh(1)
	}
	return accMult, accPlus
}

const (
	fastRand32Mult = 69069
	fastRand63Mult = 9219741426499971445
	mask63         = 1<<63 - 1
)

// fastRand32 is the 32-bit LCG x = 69069x + 1 (mod 2^32).
//
// State layout: x uint32 (4 bytes).
type fastRand32 struct {
	x uint32
}

func (g *fastRand32) seed(seed uint64) { g.x = newExpander(seed).next32() }

func (g *fastRand32) next() uint64 {
	g.x = fastRand32Mult*g.x + 1
	return uint64(g.x)
}

func (g *fastRand32) bits() int { return 32 }

func (g *fastRand32) marshal(w *stateWriter) { w.u32(g.x) }

func (g *fastRand32) unmarshal(r *stateReader) error {
	r.u32(&g.x)
	return r.err
}

func (g *fastRand32) clone() source {
	c := *g
	return &c
}

func (g *fastRand32) jump() {
	mult, plus := lcgAdvance(fastRand32Mult, 1, 1<<16)
	g.x = uint32(mult)*g.x + uint32(plus)
}

func (g *fastRand32) jumpExponent() int { return 16 }

// fastRand63 is the 63-bit LCG x = 9219741426499971445x + 1 (mod 2^63).
//
// State layout: x uint64 (8 bytes), x < 2^63.
type fastRand63 struct {
	x uint64
}

func (g *fastRand63) seed(seed uint64) { g.x = newExpander(seed).next63() }

func (g *fastRand63) next() uint64 {
	g.x = (fastRand63Mult*g.x + 1) & mask63
	return g.x
}

func (g *fastRand63) bits() int { return 63 }

func (g *fastRand63) marshal(w *stateWriter) { w.u64(g.x) }

func (g *fastRand63) unmarshal(r *stateReader) error {
	r.u64(&g.x)
	if r.err == nil && g.x > mask63 {
		return invalidState("fastrand63 word %#x exceeds 63 bits", g.x)
	}
	return r.err
}

func (g *fastRand63) clone() source {
	c := *g
	return &c
}

func (g *fastRand63) jump() {
	mult, plus := lcgAdvance(fastRand63Mult, 1, 1<<32)
	g.x = (mult*g.x + plus) & mask63
}

func (g *fastRand63) jumpExponent() int { return 32 }
