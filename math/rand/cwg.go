package rand

import (
	"lukechampine.com/uint128"
)

// Działa's Collatz-Weyl generators. The Weyl increment s must be odd; the
// other words may take any value. Seeding starts a and weyl at zero.

// cwg64 is CWG64.
//
// State layout: x, a, weyl, s uint64 (32 bytes), s odd.
type cwg64 struct {
	x, a, weyl, s uint64
}

func (gen *cwg64) seed(seed uint64) {
	sm := newExpander(seed)
	gen.x = sm.next()
	gen.s = sm.next() | 1
	gen.a, gen.weyl = 0, 0
}

func (gen *cwg64) next() uint64 {
	old := gen.x
	gen.a += old
	gen.weyl += gen.s
	gen.x = (old>>1)*(gen.a|1) ^ gen.weyl
	return gen.a>>48 ^ gen.x
}

func (gen *cwg64) bits() int { return 64 }

func (gen *cwg64) marshal(w *stateWriter) { w.u64(gen.x, gen.a, gen.weyl, gen.s) }

func (gen *cwg64) unmarshal(r *stateReader) error {
	r.u64(&gen.x)
	r.u64(&gen.a)
	r.u64(&gen.weyl)
	r.u64(&gen.s)
	if r.err == nil && gen.s&1 == 0 {
		return invalidState("cwg64 Weyl increment %#x is even", gen.s)
	}
	return r.err
}

func (gen *cwg64) clone() source {
	c := *gen
	return &c
}

// cwg128_64 is CWG128-64, with a 128-bit x and 64-bit a, weyl and s.
//
// State layout: x uint128, then a, weyl, s uint64 (40 bytes), s odd.
type cwg128_64 struct {
	x          uint128.Uint128
	a, weyl, s uint64
}

func (gen *cwg128_64) seed(seed uint64) {
	sm := newExpander(seed)
	lo := sm.next()
	hi := sm.next()
	gen.x = uint128.New(lo, hi)
	gen.s = sm.next() | 1
	gen.a, gen.weyl = 0, 0
}

func (gen *cwg128_64) next() uint64 {
	gen.a += gen.x.Lo
	gen.weyl += gen.s
	gen.x = gen.x.Or64(1).MulWrap64(gen.a >> 1).Xor64(gen.weyl)
	return gen.a>>48 ^ gen.x.Hi
}

func (gen *cwg128_64) bits() int { return 64 }

func (gen *cwg128_64) marshal(w *stateWriter) {
	w.u128(gen.x)
	w.u64(gen.a, gen.weyl, gen.s)
}

func (gen *cwg128_64) unmarshal(r *stateReader) error {
	r.u128(&gen.x)
	r.u64(&gen.a)
	r.u64(&gen.weyl)
	r.u64(&gen.s)
	if r.err == nil && gen.s&1 == 0 {
		return invalidState("cwg128_64 Weyl increment %#x is even", gen.s)
	}
	return r.err
}

func (gen *cwg128_64) clone() source {
	c := *gen
	return &c
}

// cwg128 is CWG128, with 128-bit words throughout and 128-bit output.
//
// State layout: x, a, weyl, s uint128 (64 bytes), s odd.
type cwg128 struct {
	x, a, weyl, s uint128.Uint128
}

func (gen *cwg128) seed(seed uint64) {
	sm := newExpander(seed)
	xlo, xhi := sm.next(), sm.next()
	slo, shi := sm.next(), sm.next()
	gen.x = uint128.New(xlo, xhi)
	gen.s = uint128.New(slo|1, shi)
	gen.a, gen.weyl = uint128.Zero, uint128.Zero
}

func (gen *cwg128) next128() uint128.Uint128 {
	gen.a = gen.a.AddWrap(gen.x)
	gen.weyl = gen.weyl.AddWrap(gen.s)
	gen.x = gen.x.Or64(1).MulWrap(gen.a.Rsh(1)).Xor(gen.weyl)
	return gen.a.Rsh(96).Xor(gen.x)
}

func (gen *cwg128) next() uint64 { return gen.next128().Hi }
func (gen *cwg128) bits() int    { return 128 }

func (gen *cwg128) marshal(w *stateWriter) { w.u128(gen.x, gen.a, gen.weyl, gen.s) }

func (gen *cwg128) unmarshal(r *stateReader) error {
	r.u128(&gen.x)
	r.u128(&gen.a)
	r.u128(&gen.weyl)
	r.u128(&gen.s)
	if r.err == nil && gen.s.Lo&1 == 0 {
		return invalidState("cwg128 Weyl increment %s is even", gen.s)
	}
	return r.err
}

func (gen *cwg128) clone() source {
	c := *gen
	return &c
}
