package rand

// The WELL generators of Panneton, L'Ecuyer and Matsumoto. Each keeps a
// ring of R words and a cursor i. The two large generators only read the
// bits of word i-1 outside a mask, so a state is degenerate when every word
// is zero apart from those unread bits. Seeding forces word 0 to 1 when the
// expansion produces a degenerate state and snapshots of one are rejected.

// wellZero returns true if seq with cursor i is zero in every bit the
// recurrence reads. unread holds the ignored bits of word i-1.
func wellZero(seq []uint32, i int, unread uint32) bool {
	last := (i + len(seq) - 1) % len(seq)
	for k, x := range seq {
		if k == last {
			x &^= unread
		}
		if x != 0 {
			return false
		}
	}
	return true
}

func wellSeed(seq []uint32, seed uint64, unread uint32) {
	newExpander(seed).fill32(seq)
	if wellZero(seq, 0, unread) {
		seq[0] = 1
	}
}

func wellUnmarshal(
	name string, r *stateReader, seq []uint32, unread uint32,
) (int, error) {
	r.u32s(seq)
	i := r.cursor(len(seq))
	if r.err != nil {
		return 0, r.err
	}
	if wellZero(seq, i, unread) {
		return 0, invalidState("%s state is all zero", name)
	}
	return i, nil
}

// well512a is WELL512a.
//
// State layout: 16 uint32 words (64 bytes), then cursor uint32.
type well512a struct {
	s [16]uint32
	i int
}

func (gen *well512a) seed(seed uint64) {
	wellSeed(gen.s[:], seed, 0)
	gen.i = 0
}

func (gen *well512a) next() uint64 {
	i := gen.i
	z0 := gen.s[(i+15)&15]
	v0 := gen.s[i]
	vm1 := gen.s[(i+13)&15]
	vm2 := gen.s[(i+9)&15]

	z1 := (v0 ^ v0<<16) ^ (vm1 ^ vm1<<15)
	z2 := vm2 ^ vm2>>11
	newV1 := z1 ^ z2
	gen.s[i] = newV1
	gen.s[(i+15)&15] = (z0 ^ z0<<2) ^ (z1 ^ z1<<18) ^ z2<<28 ^
		(newV1 ^ (newV1<<5)&0xda442d24)

	gen.i = (i + 15) & 15
	return uint64(gen.s[gen.i])
}

func (gen *well512a) bits() int { return 32 }

func (gen *well512a) marshal(w *stateWriter) {
	w.u32(gen.s[:]...)
	w.cursor(gen.i)
}

func (gen *well512a) unmarshal(r *stateReader) (err error) {
	gen.i, err = wellUnmarshal("well512a", r, gen.s[:], 0)
	return err
}

func (gen *well512a) clone() source {
	c := *gen
	return &c
}

// well1024a is WELL1024a.
//
// State layout: 32 uint32 words (128 bytes), then cursor uint32.
type well1024a struct {
	s [32]uint32
	i int
}

func (gen *well1024a) seed(seed uint64) {
	wellSeed(gen.s[:], seed, 0)
	gen.i = 0
}

func (gen *well1024a) next() uint64 {
	i := gen.i
	z0 := gen.s[(i+31)&31]
	v0 := gen.s[i]
	vm1 := gen.s[(i+3)&31]
	vm2 := gen.s[(i+24)&31]
	vm3 := gen.s[(i+10)&31]

	z1 := v0 ^ (vm1 ^ vm1>>8)
	z2 := (vm2 ^ vm2<<19) ^ (vm3 ^ vm3<<14)
	gen.s[i] = z1 ^ z2
	gen.s[(i+31)&31] = (z0 ^ z0<<11) ^ (z1 ^ z1<<7) ^ (z2 ^ z2<<13)

	gen.i = (i + 31) & 31
	return uint64(gen.s[gen.i])
}

func (gen *well1024a) bits() int { return 32 }

func (gen *well1024a) marshal(w *stateWriter) {
	w.u32(gen.s[:]...)
	w.cursor(gen.i)
}

func (gen *well1024a) unmarshal(r *stateReader) (err error) {
	gen.i, err = wellUnmarshal("well1024a", r, gen.s[:], 0)
	return err
}

func (gen *well1024a) clone() source {
	c := *gen
	return &c
}

const (
	well19937R = 624
	well44497R = 1391

	// Bits of word i-1 which the large generators never read.
	well19937Unread = 0x7fffffff
	well44497Unread = 0x00007fff
)

// well19937c is the WELL19937a recurrence with Matsumoto-Kurita tempering.
//
// State layout: 624 uint32 words (2496 bytes), then cursor uint32.
type well19937c struct {
	s [well19937R]uint32
	i int
}

func (gen *well19937c) seed(seed uint64) {
	wellSeed(gen.s[:], seed, well19937Unread)
	gen.i = 0
}

func (gen *well19937c) at(k int) int { return (gen.i + k) % well19937R }

func (gen *well19937c) next() uint64 {
	const maskU, maskL = well19937Unread, ^uint32(well19937Unread)
	i, prev1, prev2 := gen.i, gen.at(well19937R-1), gen.at(well19937R-2)
	z0 := (gen.s[prev1] & maskL) | (gen.s[prev2] & maskU)
	v0 := gen.s[i]
	vm1 := gen.s[gen.at(70)]
	vm2 := gen.s[gen.at(179)]
	vm3 := gen.s[gen.at(449)]

	z1 := (v0 ^ v0<<25) ^ (vm1 ^ vm1>>27)
	z2 := vm2>>9 ^ (vm3 ^ vm3>>1)
	newV1 := z1 ^ z2
	gen.s[i] = newV1
	gen.s[prev1] = z0 ^ (z1 ^ z1<<9) ^ (z2 ^ z2<<21) ^ (newV1 ^ newV1>>21)

	gen.i = prev1
	y := gen.s[gen.i]
	y ^= (y << 7) & 0xe46e1700
	y ^= (y << 15) & 0x9b868000
	return uint64(y)
}

func (gen *well19937c) bits() int { return 32 }

func (gen *well19937c) marshal(w *stateWriter) {
	w.u32(gen.s[:]...)
	w.cursor(gen.i)
}

func (gen *well19937c) unmarshal(r *stateReader) (err error) {
	gen.i, err = wellUnmarshal("well19937c", r, gen.s[:], well19937Unread)
	return err
}

func (gen *well19937c) clone() source {
	c := *gen
	return &c
}

// well44497b is the WELL44497a recurrence with Matsumoto-Kurita tempering.
//
// State layout: 1391 uint32 words (5564 bytes), then cursor uint32.
type well44497b struct {
	s [well44497R]uint32
	i int
}

func (gen *well44497b) seed(seed uint64) {
	wellSeed(gen.s[:], seed, well44497Unread)
	gen.i = 0
}

func (gen *well44497b) at(k int) int { return (gen.i + k) % well44497R }

// mat5 is the WELL44497 M5 transformation with r = 9.
func mat5(v uint32) uint32 {
	t := ((v << 9) ^ (v >> 23)) & 0xfbffffff
	if v&0x00020000 != 0 {
		t ^= 0xb729fcec
	}
	return t
}

func (gen *well44497b) next() uint64 {
	const maskU, maskL = well44497Unread, ^uint32(well44497Unread)
	i, prev1, prev2 := gen.i, gen.at(well44497R-1), gen.at(well44497R-2)
	z0 := (gen.s[prev1] & maskL) | (gen.s[prev2] & maskU)
	v0 := gen.s[i]
	vm1 := gen.s[gen.at(23)]
	vm2 := gen.s[gen.at(481)]
	vm3 := gen.s[gen.at(229)]

	z1 := (v0 ^ v0<<24) ^ (vm1 ^ vm1>>30)
	z2 := (vm2 ^ vm2<<10) ^ vm3<<26
	newV1 := z1 ^ z2
	gen.s[i] = newV1
	gen.s[prev1] = z0 ^ (z1 ^ z1>>20) ^ mat5(z2) ^ newV1

	gen.i = prev1
	y := gen.s[gen.i]
	y ^= (y << 7) & 0x93dd1400
	y ^= (y << 15) & 0xfa118000
	return uint64(y)
}

func (gen *well44497b) bits() int { return 32 }

func (gen *well44497b) marshal(w *stateWriter) {
	w.u32(gen.s[:]...)
	w.cursor(gen.i)
}

func (gen *well44497b) unmarshal(r *stateReader) (err error) {
	gen.i, err = wellUnmarshal("well44497b", r, gen.s[:], well44497Unread)
	return err
}

func (gen *well44497b) clone() source {
	c := *gen
	return &c
}
