package rand

const (
	// mrgModulus is the Mersenne prime 2^31 - 1 used by the DX generators.
	mrgModulus = 1<<31 - 1

	mrg1457Mult  = 1<<26 + 1<<19
	mrg49507Mult = 1<<26 + 1<<7
)

// mrg287 is Marsaglia's LFIB4, x_i = x_{i-55} + x_{i-119} + x_{i-179} +
// x_{i-256} (mod 2^32). The cursor wraps with the uint8 width.
//
// State layout: 256 uint32 words (1024 bytes), then cursor uint32.
type mrg287 struct {
	seq [256]uint32
	c   uint8
}

func (gen *mrg287) seed(seed uint64) {
	newExpander(seed).fill32(gen.seq[:])
	if !hasOdd32(gen.seq[:]) {
		gen.seq[0] |= 1
	}
	gen.c = 0
}

func (gen *mrg287) next() uint64 {
	c := gen.c
	gen.seq[c] += gen.seq[c-55] + gen.seq[c-119] + gen.seq[c-179]
	gen.c++
	return uint64(gen.seq[c])
}

func (gen *mrg287) bits() int { return 32 }

func (gen *mrg287) marshal(w *stateWriter) {
	w.u32(gen.seq[:]...)
	w.cursor(int(gen.c))
}

func (gen *mrg287) unmarshal(r *stateReader) error {
	r.u32s(gen.seq[:])
	gen.c = uint8(r.cursor(len(gen.seq)))
	if r.err != nil {
		return r.err
	}
	if !hasOdd32(gen.seq[:]) {
		return invalidState("mrgrand287 state has no odd word")
	}
	return nil
}

func (gen *mrg287) clone() source {
	c := *gen
	return &c
}

func hasOdd32(xs []uint32) bool {
	for _, x := range xs {
		if x&1 == 1 {
			return true
		}
	}
	return false
}

// mrgSeed fills seq with values in [0, mrgModulus) and forces a non-zero
// word.
func mrgSeed(seq []uint32, seed uint64) {
	newExpander(seed).fill31(seq)
	if allZero32(seq) {
		seq[0] = 1
	}
}

func mrgValidate(name string, seq []uint32) error {
	for i, x := range seq {
		if x >= mrgModulus {
			return invalidState("%s word %d = %d is not below 2^31-1", name, i, x)
		}
	}
	if allZero32(seq) {
		return invalidState("%s state is all zero", name)
	}
	return nil
}

// mrg1457 is Deng and Xu's DX-47-3,
// x_i = (2^26 + 2^19)(x_{i-1} + x_{i-24} + x_{i-47}) (mod 2^31 - 1).
// The cursor points at x_{i-47}.
//
// State layout: 47 uint32 words (188 bytes), then cursor uint32.
type mrg1457 struct {
	seq [47]uint32
	c   int
}

func (gen *mrg1457) seed(seed uint64) {
	mrgSeed(gen.seq[:], seed)
	gen.c = 0
}

func (gen *mrg1457) next() uint64 {
	n := len(gen.seq)
	prev1 := gen.c - 1
	if prev1 < 0 {
		prev1 += n
	}
	prev24 := gen.c - 24
	if prev24 < 0 {
		prev24 += n
	}
	sum := uint64(gen.seq[prev1]) + uint64(gen.seq[prev24]) + uint64(gen.seq[gen.c])
	x := uint32((mrg1457Mult * (sum % mrgModulus)) % mrgModulus)
	gen.seq[gen.c] = x

	gen.c++
	if gen.c == n {
		gen.c = 0
	}
	return uint64(x)
}

func (gen *mrg1457) bits() int { return 31 }

func (gen *mrg1457) marshal(w *stateWriter) {
	w.u32(gen.seq[:]...)
	w.cursor(gen.c)
}

func (gen *mrg1457) unmarshal(r *stateReader) error {
	r.u32s(gen.seq[:])
	gen.c = r.cursor(len(gen.seq))
	if r.err != nil {
		return r.err
	}
	return mrgValidate("mrgrand1457", gen.seq[:])
}

func (gen *mrg1457) clone() source {
	c := *gen
	return &c
}

// mrg49507 is Deng and Xu's DX-1597-2-7,
// x_i = -(2^26 + 2^7)(x_{i-7} + x_{i-1597}) (mod 2^31 - 1).
// The cursor points at x_{i-1597}.
//
// State layout: 1597 uint32 words (6388 bytes), then cursor uint32.
type mrg49507 struct {
	seq [1597]uint32
	c   int
}

func (gen *mrg49507) seed(seed uint64) {
	mrgSeed(gen.seq[:], seed)
	gen.c = 0
}

func (gen *mrg49507) next() uint64 {
	n := len(gen.seq)
	prev7 := gen.c - 7
	if prev7 < 0 {
		prev7 += n
	}
	sum := (uint64(gen.seq[prev7]) + uint64(gen.seq[gen.c])) % mrgModulus
	x := uint32((mrgModulus - (mrg49507Mult*sum)%mrgModulus) % mrgModulus)
	gen.seq[gen.c] = x

	gen.c++
	if gen.c == n {
		gen.c = 0
	}
	return uint64(x)
}

func (gen *mrg49507) bits() int { return 31 }

func (gen *mrg49507) marshal(w *stateWriter) {
	w.u32(gen.seq[:]...)
	w.cursor(gen.c)
}

func (gen *mrg49507) unmarshal(r *stateReader) error {
	r.u32s(gen.seq[:])
	gen.c = r.cursor(len(gen.seq))
	if r.err != nil {
		return r.err
	}
	return mrgValidate("mrgrand49507", gen.seq[:])
}

func (gen *mrg49507) clone() source {
	c := *gen
	return &c
}
