package rand

import (
	crand "crypto/rand"
	"encoding/binary"
	"time"
)

// goldenGamma is the SplitMix64 Weyl increment, 2^64 divided by the golden
// ratio and rounded to the nearest odd integer.
const goldenGamma = 0x9e3779b97f4a7c15

// mix64 is the SplitMix64 avalanche function.
func mix64(z uint64) uint64 {
	z = (z ^ (z >> 30)) * 0xbf58476d1ce4e5b9
	z = (z ^ (z >> 27)) * 0x94d049bb133111eb
	return z ^ (z >> 31)
}

// splitMix64 expands a single seed into as many state words as a family
// needs. Nearby seeds give unrelated words because every output passes
// through mix64.
type splitMix64 struct {
	state uint64
}

func newExpander(seed uint64) *splitMix64 {
	return &splitMix64{state: seed}
}

func (sm *splitMix64) next() uint64 {
	sm.state += goldenGamma
	return mix64(sm.state)
}

func (sm *splitMix64) next32() uint32 { return uint32(sm.next() >> 32) }

// next31 returns a value in [0, 2^31 - 1), the range of the Mersenne-prime
// MRG families.
func (sm *splitMix64) next31() uint32 {
	return uint32((sm.next() >> 33) % mrgModulus)
}

func (sm *splitMix64) next63() uint64 { return sm.next() >> 1 }

func (sm *splitMix64) fill64(dst []uint64) {
	for i := range dst {
		dst[i] = sm.next()
	}
}

func (sm *splitMix64) fill32(dst []uint32) {
	for i := range dst {
		dst[i] = sm.next32()
	}
}

func (sm *splitMix64) fill31(dst []uint32) {
	for i := range dst {
		dst[i] = sm.next31()
	}
}

// timeSeed returns a seed built from the current time and, when available,
// eight bytes of system entropy.
func timeSeed() uint64 {
	seed := uint64(time.Now().UnixNano())
	var buf [8]byte
	if _, err := crand.Read(buf[:]); err == nil {
		seed ^= binary.LittleEndian.Uint64(buf[:])
	}
	return mix64(seed)
}

func allZero32(xs []uint32) bool {
	for _, x := range xs {
		if x != 0 {
			return false
		}
	}
	return true
}

func allZero64(xs []uint64) bool {
	for _, x := range xs {
		if x != 0 {
			return false
		}
	}
	return true
}

// splitMixSource exposes the seeding expander as a family of its own.
//
// State layout: state uint64 (8 bytes).
type splitMixSource struct {
	sm splitMix64
}

func (s *splitMixSource) seed(seed uint64) { s.sm.state = seed }
func (s *splitMixSource) next() uint64     { return s.sm.next() }
func (s *splitMixSource) bits() int        { return 64 }

func (s *splitMixSource) marshal(w *stateWriter) { w.u64(s.sm.state) }

func (s *splitMixSource) unmarshal(r *stateReader) error {
	r.u64(&s.sm.state)
	return r.err
}

func (s *splitMixSource) clone() source {
	c := *s
	return &c
}

// jump advances by 2^32 steps, which is a single addition of the Weyl
// increment scaled by the step count.
func (s *splitMixSource) jump() {
	gamma := uint64(goldenGamma)
	s.sm.state += gamma << 32
}

func (s *splitMixSource) jumpExponent() int { return 32 }
