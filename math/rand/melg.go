package rand

// melgParams describes one member of Harase and Kimoto's 64-bit maximally
// equidistributed F2-linear generators.
type melgParams struct {
	nn, mm       int
	matrixA      uint64
	p            uint
	shiftL       uint
	shiftR       uint
	lag1, shift1 int
	mask1        uint64
}

var (
	melg607Params = melgParams{
		nn: 9, mm: 5, matrixA: 0x81f1fd68012348bc, p: 31,
		shiftL: 36, shiftR: 31,
		lag1: 3, shift1: 5, mask1: 0x66edc62a6bf8c826,
	}
	melg19937Params = melgParams{
		nn: 311, mm: 81, matrixA: 0x5c32e06df730fc42, p: 33,
		shiftL: 23, shiftR: 33,
		lag1: 19, shift1: 16, mask1: 0x6aede6fd97b338ec,
	}
	melg44497Params = melgParams{
		nn: 695, mm: 373, matrixA: 0x4fa9ca36f293c9a9, p: 17,
		shiftL: 24, shiftR: 17,
		lag1: 95, shift1: 6, mask1: 0x06fbbee29aaefd91,
	}
)

// melg is a MELG-64 generator: a ring of nn words and the extra word lung,
// advanced by a twisted recurrence and tempered by a lagged word.
//
// State layout: nn uint64 words, then lung uint64 (8*nn + 8 bytes), then
// cursor uint32. States which are zero apart from the unread low bits of the
// word at the cursor are rejected.
type melg struct {
	*melgParams
	s     []uint64
	lung  uint64
	i     int
	maskU uint64
	maskL uint64
}

func newMelg(p *melgParams) *melg {
	maskU := ^uint64(0) << (64 - p.p)
	return &melg{
		melgParams: p,
		s:          make([]uint64, p.nn),
		maskU:      maskU,
		maskL:      ^maskU,
	}
}

func (gen *melg) seed(seed uint64) {
	sm := newExpander(seed)
	sm.fill64(gen.s)
	gen.lung = sm.next()
	gen.i = 0
	if gen.zero() {
		gen.lung = 1
	}
}

// zero returns true if the state is zero in every bit the recurrence reads.
// The low bits of the word at the cursor are never read.
func (gen *melg) zero() bool {
	if gen.lung != 0 || gen.s[gen.i]&gen.maskU != 0 {
		return false
	}
	for k, x := range gen.s {
		if k != gen.i && x != 0 {
			return false
		}
	}
	return true
}

func (gen *melg) next() uint64 {
	i := gen.i
	next := i + 1
	if next == gen.nn {
		next = 0
	}
	x := (gen.s[i] & gen.maskU) | (gen.s[next] & gen.maskL)
	var twist uint64
	if x&1 == 1 {
		twist = gen.matrixA
	}
	gen.lung = (x >> 1) ^ twist ^ gen.s[(i+gen.mm)%gen.nn] ^
		(gen.lung ^ gen.lung<<gen.shiftL)
	gen.s[i] = x ^ (gen.lung ^ gen.lung>>gen.shiftR)

	out := gen.s[i] ^ gen.s[i]<<gen.shift1
	out ^= gen.s[(i+gen.lag1)%gen.nn] & gen.mask1

	gen.i = next
	return out
}

func (gen *melg) bits() int { return 64 }

func (gen *melg) marshal(w *stateWriter) {
	w.u64(gen.s...)
	w.u64(gen.lung)
	w.cursor(gen.i)
}

func (gen *melg) unmarshal(r *stateReader) error {
	r.u64s(gen.s)
	r.u64(&gen.lung)
	gen.i = r.cursor(gen.nn)
	if r.err != nil {
		return r.err
	}
	if gen.zero() {
		return invalidState("melg state is all zero")
	}
	return nil
}

func (gen *melg) clone() source {
	c := *gen
	c.s = append([]uint64(nil), gen.s...)
	return &c
}
