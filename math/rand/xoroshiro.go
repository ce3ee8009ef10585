package rand

import (
	"math/bits"
)

// Blackman and Vigna's xoshiro/xoroshiro generators. All of them are linear
// over GF(2), so the all-zero state is a fixed point: seeding replaces it
// with word 0 = 1 and snapshots containing it are rejected.
//
// Jumps multiply the state by a fixed polynomial in the transition matrix.
// A polynomial with only bit k set advances by exactly k steps.

var (
	xoshiro256Jump = []uint64{
		0x180ec6d33cfd0aba, 0xd5a61266f0c9392c,
		0xa9582618e03fc9aa, 0x39abdc4529b1661c,
	}
	xoshiro256LongJump = []uint64{
		0x76e15d3efefdcbbf, 0xc5004e441c522fb3,
		0x77710069854ee241, 0x39109bb02acbe635,
	}
	xoshiro512Jump = []uint64{
		0x33ed89b6e7a353f9, 0x760083d7955323be,
		0x2837f2fbb5f22fae, 0x4b8c5674d309511c,
		0xb11ac47a7ba28c25, 0xf1be7667092bcc1c,
		0x53851efdb6df0aaf, 0x1ebbc8b23eaf25db,
	}
	xoroshiro1024Jump = []uint64{
		0x931197d8e3177f17, 0xb59422e0b9138c5f,
		0xf06a6afb49d668bb, 0xacb8a6412c8a1401,
		0x12304ec85f0b3468, 0xb7dfe7079209891e,
		0x405b7eec77d9eb14, 0x34ead68280c44e4a,
		0xe0e4ba3e0ac9e366, 0x8f46eda8348905b7,
		0x328bf4dbad90d6ff, 0xc8fd6fb31c9effc3,
		0xe899d452d4b67652, 0x45f387286ade3205,
		0x03864f454a8920bd, 0xa68fa28725b1b384,
	}
	xoroshiro128Jump = []uint64{0xdf900294d8f554a5, 0x170865df4b3201fc}
)

func xorSeed(s []uint64, seed uint64) {
	newExpander(seed).fill64(s)
	if allZero64(s) {
		s[0] = 1
	}
}

func xorUnmarshal(name string, r *stateReader, s []uint64) error {
	r.u64s(s)
	if r.err != nil {
		return r.err
	}
	if allZero64(s) {
		return invalidState("%s state is all zero", name)
	}
	return nil
}

// jumpPoly replaces s with poly(T) s, where step applies T to s in place.
func jumpPoly(s []uint64, poly []uint64, step func() uint64) {
	var buf [16]uint64
	acc := buf[:len(s)]
	for _, word := range poly {
		for b := uint(0); b < 64; b++ {
			if word&(1<<b) != 0 {
				for k := range acc {
					acc[k] ^= s[k]
				}
			}
			step()
		}
	}
	copy(s, acc)
}

// xoshiro256 is xoshiro256**.
//
// State layout: 4 uint64 words (32 bytes).
type xoshiro256 struct {
	s [4]uint64
}

func (gen *xoshiro256) seed(seed uint64) { xorSeed(gen.s[:], seed) }

func (gen *xoshiro256) next() uint64 {
	s := &gen.s
	result := bits.RotateLeft64(s[1]*5, 7) * 9
	t := s[1] << 17

	s[2] ^= s[0]
	s[3] ^= s[1]
	s[1] ^= s[2]
	s[0] ^= s[3]
	s[2] ^= t
	s[3] = bits.RotateLeft64(s[3], 45)

	return result
}

func (gen *xoshiro256) bits() int { return 64 }

func (gen *xoshiro256) marshal(w *stateWriter) { w.u64(gen.s[:]...) }

func (gen *xoshiro256) unmarshal(r *stateReader) error {
	return xorUnmarshal("xoroshiro256", r, gen.s[:])
}

func (gen *xoshiro256) clone() source {
	c := *gen
	return &c
}

func (gen *xoshiro256) jump()                 { jumpPoly(gen.s[:], xoshiro256Jump, gen.next) }
func (gen *xoshiro256) jumpExponent() int     { return 128 }
func (gen *xoshiro256) longJump()             { jumpPoly(gen.s[:], xoshiro256LongJump, gen.next) }
func (gen *xoshiro256) longJumpExponent() int { return 192 }

// xoshiro512 is xoshiro512**.
//
// State layout: 8 uint64 words (64 bytes).
type xoshiro512 struct {
	s [8]uint64
}

func (gen *xoshiro512) seed(seed uint64) { xorSeed(gen.s[:], seed) }

func (gen *xoshiro512) next() uint64 {
	s := &gen.s
	result := bits.RotateLeft64(s[1]*5, 7) * 9
	t := s[1] << 11

	s[2] ^= s[0]
	s[5] ^= s[1]
	s[1] ^= s[2]
	s[7] ^= s[3]
	s[3] ^= s[4]
	s[4] ^= s[5]
	s[0] ^= s[6]
	s[6] ^= s[7]
	s[6] ^= t
	s[7] = bits.RotateLeft64(s[7], 21)

	return result
}

func (gen *xoshiro512) bits() int { return 64 }

func (gen *xoshiro512) marshal(w *stateWriter) { w.u64(gen.s[:]...) }

func (gen *xoshiro512) unmarshal(r *stateReader) error {
	return xorUnmarshal("xoroshiro512", r, gen.s[:])
}

func (gen *xoshiro512) clone() source {
	c := *gen
	return &c
}

func (gen *xoshiro512) jump()             { jumpPoly(gen.s[:], xoshiro512Jump, gen.next) }
func (gen *xoshiro512) jumpExponent() int { return 256 }

// xoroshiro1024 is xoroshiro1024**. The cursor p marks the logical start of
// the ring.
//
// State layout: 16 uint64 words (128 bytes), then p uint32.
type xoroshiro1024 struct {
	s [16]uint64
	p int
}

func (gen *xoroshiro1024) seed(seed uint64) {
	xorSeed(gen.s[:], seed)
	gen.p = 0
}

func (gen *xoroshiro1024) next() uint64 {
	q := gen.p
	gen.p = (gen.p + 1) & 15
	s0 := gen.s[gen.p]
	s15 := gen.s[q]
	result := bits.RotateLeft64(s0*5, 7) * 9

	s15 ^= s0
	gen.s[q] = bits.RotateLeft64(s0, 25) ^ s15 ^ (s15 << 27)
	gen.s[gen.p] = bits.RotateLeft64(s15, 36)

	return result
}

func (gen *xoroshiro1024) bits() int { return 64 }

func (gen *xoroshiro1024) marshal(w *stateWriter) {
	w.u64(gen.s[:]...)
	w.cursor(gen.p)
}

func (gen *xoroshiro1024) unmarshal(r *stateReader) error {
	r.u64s(gen.s[:])
	gen.p = r.cursor(len(gen.s))
	if r.err != nil {
		return r.err
	}
	if allZero64(gen.s[:]) {
		return invalidState("xoroshiro1024 state is all zero")
	}
	return nil
}

func (gen *xoroshiro1024) clone() source {
	c := *gen
	return &c
}

func (gen *xoroshiro1024) jump() { gen.jumpWith(xoroshiro1024Jump) }

// jumpWith is jumpPoly for a ring whose logical order starts at p.
func (gen *xoroshiro1024) jumpWith(poly []uint64) {
	var t [16]uint64
	for _, word := range poly {
		for b := uint(0); b < 64; b++ {
			if word&(1<<b) != 0 {
				for j := range t {
					t[j] ^= gen.s[(j+gen.p)&15]
				}
			}
			gen.next()
		}
	}
	for j := range t {
		gen.s[(j+gen.p)&15] = t[j]
	}
}

func (gen *xoroshiro1024) jumpExponent() int { return 512 }

// xoroshiro128 is xoroshiro128+ with the 24/16/37 parameters.
//
// State layout: 2 uint64 words (16 bytes).
type xoroshiro128 struct {
	s [2]uint64
}

func (gen *xoroshiro128) seed(seed uint64) { xorSeed(gen.s[:], seed) }

func (gen *xoroshiro128) next() uint64 {
	s0, s1 := gen.s[0], gen.s[1]
	result := s0 + s1

	s1 ^= s0
	gen.s[0] = bits.RotateLeft64(s0, 24) ^ s1 ^ (s1 << 16)
	gen.s[1] = bits.RotateLeft64(s1, 37)

	return result
}

func (gen *xoroshiro128) bits() int { return 64 }

func (gen *xoroshiro128) marshal(w *stateWriter) { w.u64(gen.s[:]...) }

func (gen *xoroshiro128) unmarshal(r *stateReader) error {
	return xorUnmarshal("xoroshiro128", r, gen.s[:])
}

func (gen *xoroshiro128) clone() source {
	c := *gen
	return &c
}

func (gen *xoroshiro128) jump()             { jumpPoly(gen.s[:], xoroshiro128Jump, gen.next) }
func (gen *xoroshiro128) jumpExponent() int { return 64 }
