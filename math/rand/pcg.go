package rand

import (
	"math/bits"

	"lukechampine.com/uint128"
)

// O'Neill's permuted congruential generators. The underlying LCG only has
// full period for odd increments, so snapshots with an even increment are
// rejected.

const (
	pcg32Mult       = 6364136223846793005
	pcg32DefaultSeq = 721347520444481703
)

var (
	pcg64Mult       = uint128.New(0x4385df649fccf645, 0x2360ed051fc65da4)
	pcg64DefaultInc = uint128.New(0x14057b7ef767814f, 0x5851f42d4c957f2d)
)

// pcg32 is pcg32 (XSH-RR, 64-bit state, 32-bit output), which outputs a
// permutation of the state before the step.
//
// State layout: state uint64, inc uint64 (16 bytes), inc odd.
type pcg32 struct {
	state, inc uint64
}

func (gen *pcg32) seed(seed uint64) {
	gen.srandom(newExpander(seed).next(), pcg32DefaultSeq)
}

// srandom is pcg32_srandom_r.
func (gen *pcg32) srandom(initState, initSeq uint64) {
	gen.inc = initSeq<<1 | 1
	gen.state = 0
	gen.step()
	gen.state += initState
	gen.step()
}

func (gen *pcg32) step() { gen.state = gen.state*pcg32Mult + gen.inc }

func pcgXshRR(state uint64) uint32 {
	xorshifted := uint32(((state >> 18) ^ state) >> 27)
	rot := int(state >> 59)
	return bits.RotateLeft32(xorshifted, -rot)
}

func (gen *pcg32) next32() uint32 {
	old := gen.state
	gen.step()
	return pcgXshRR(old)
}

func (gen *pcg32) next() uint64 { return uint64(gen.next32()) }
func (gen *pcg32) bits() int    { return 32 }

func (gen *pcg32) marshal(w *stateWriter) { w.u64(gen.state, gen.inc) }

func (gen *pcg32) unmarshal(r *stateReader) error {
	r.u64(&gen.state)
	r.u64(&gen.inc)
	if r.err == nil && gen.inc&1 == 0 {
		return invalidState("pcg increment %#x is even", gen.inc)
	}
	return r.err
}

func (gen *pcg32) clone() source {
	c := *gen
	return &c
}

func (gen *pcg32) advance(delta uint64) {
	mult, plus := lcgAdvance(pcg32Mult, gen.inc, delta)
	gen.state = mult*gen.state + plus
}

func (gen *pcg32) jump()             { gen.advance(1 << 32) }
func (gen *pcg32) jumpExponent() int { return 32 }

// pcg64 is pcg64 (XSL-RR, 128-bit state, 64-bit output), which steps
// before permuting.
//
// State layout: state uint128, inc uint128 (32 bytes), inc odd.
type pcg64 struct {
	state, inc uint128.Uint128
}

func (gen *pcg64) seed(seed uint64) {
	sm := newExpander(seed)
	lo := sm.next()
	hi := sm.next()
	gen.srandom(uint128.New(lo, hi), pcg64DefaultInc)
}

// srandom is pcg64_srandom_r with an already-formed increment.
func (gen *pcg64) srandom(initState, inc uint128.Uint128) {
	gen.inc = inc.Or64(1)
	gen.state = uint128.Zero
	gen.step()
	gen.state = gen.state.AddWrap(initState)
	gen.step()
}

func (gen *pcg64) step() { gen.state = gen.state.MulWrap(pcg64Mult).AddWrap(gen.inc) }

func (gen *pcg64) next() uint64 {
	gen.step()
	rot := int(gen.state.Hi >> 58)
	return bits.RotateLeft64(gen.state.Hi^gen.state.Lo, -rot)
}

func (gen *pcg64) bits() int { return 64 }

func (gen *pcg64) marshal(w *stateWriter) { w.u128(gen.state, gen.inc) }

func (gen *pcg64) unmarshal(r *stateReader) error {
	r.u128(&gen.state)
	r.u128(&gen.inc)
	if r.err == nil && gen.inc.Lo&1 == 0 {
		return invalidState("pcg increment %s is even", gen.inc)
	}
	return r.err
}

func (gen *pcg64) clone() source {
	c := *gen
	return &c
}

func (gen *pcg64) advance(delta uint128.Uint128) {
	mult, plus := lcgAdvance128(pcg64Mult, gen.inc, delta)
	gen.state = mult.MulWrap(gen.state).AddWrap(plus)
}

func (gen *pcg64) jump()             { gen.advance(uint128.New(0, 1)) }
func (gen *pcg64) jumpExponent() int { return 64 }

const (
	k1024TableSize   = 1024
	k1024TableMask   = k1024TableSize - 1
	k1024TickMask    = 1<<16 - 1
	rxsMult32        = 277803737
	rxsUnmult32      = 2897767785
	oneseqMult32     = 747796405
	oneseqInc32      = 2891336453
)

// pcg32k1024 is pcg32_k1024: a pcg32 whose output is xored with an entry of
// a 1024-word extension table. The entry is selected by the low bits of the
// base state and the table is advanced whenever the low 16 bits of the base
// state are zero, giving a period of 2^32832.
//
// State layout: state uint64, inc uint64, then 1024 uint32 table words
// (4112 bytes), inc odd.
type pcg32k1024 struct {
	base pcg32
	ext  [k1024TableSize]uint32
}

func (gen *pcg32k1024) seed(seed uint64) {
	sm := newExpander(seed)
	gen.base.srandom(sm.next(), pcg32DefaultSeq)
	sm.fill32(gen.ext[:])
}

func (gen *pcg32k1024) next() uint64 {
	state := gen.base.state
	index := state & k1024TableMask
	if state&k1024TickMask == 0 {
		gen.advanceTable()
	}
	rhs := gen.ext[index]
	return uint64(gen.base.next32() ^ rhs)
}

// advanceTable steps every table entry as an independent RXS-M-XS generator,
// carrying into the next entry whenever one wraps to zero.
func (gen *pcg32k1024) advanceTable() {
	carry := false
	for i := range gen.ext {
		if carry {
			carry = externalStep(&gen.ext[i], uint32(i+1))
		}
		carry2 := externalStep(&gen.ext[i], uint32(i+1))
		carry = carry || carry2
	}
}

// externalStep recovers the state behind an RXS-M-XS output, advances it with
// an increment that depends on the table position and replaces the output.
// It reports whether the new output is zero.
func externalStep(randval *uint32, i uint32) bool {
	state := rxsUnoutput32(*randval)
	state = state*oneseqMult32 + oneseqInc32 + i*2
	result := rxsOutput32(state)
	*randval = result
	return result == 0
}

func rxsOutput32(x uint32) uint32 {
	rshift := (x >> 28) & 15
	x ^= x >> (4 + rshift)
	x *= rxsMult32
	return x ^ x>>22
}

func rxsUnoutput32(x uint32) uint32 {
	x ^= x >> 22
	x *= rxsUnmult32
	rshift := (x >> 28) & 15
	return unxorshift32(x, uint(4+rshift))
}

// unxorshift32 inverts y = x ^ x>>shift.
func unxorshift32(y uint32, shift uint) uint32 {
	x := y
	for covered := shift; covered < 32; covered += shift {
		x = y ^ x>>shift
	}
	return x
}

func (gen *pcg32k1024) bits() int { return 32 }

func (gen *pcg32k1024) marshal(w *stateWriter) {
	gen.base.marshal(w)
	w.u32(gen.ext[:]...)
}

func (gen *pcg32k1024) unmarshal(r *stateReader) error {
	if err := gen.base.unmarshal(r); err != nil {
		return err
	}
	r.u32s(gen.ext[:])
	return r.err
}

func (gen *pcg32k1024) clone() source {
	c := *gen
	return &c
}
