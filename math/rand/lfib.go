package rand

// lfibGenerator is an additive lagged Fibonacci generator,
// x_i = x_{i-short} + x_{i-long} (mod 2^64), over a ring buffer of the last
// long values. The leader cursor points at x_{i-long}, the slot that the
// next output overwrites.
//
// The sequence has full period only if at least one word is odd, so seeding
// forces an odd word and snapshots with no odd word are rejected.
//
// State layout: long uint64 words (8*long bytes), then leader uint32.
type lfibGenerator struct {
	seq    []uint64
	short  int
	leader int
}

func newLFib(long, short int) *lfibGenerator {
	return &lfibGenerator{seq: make([]uint64, long), short: short}
}

func (gen *lfibGenerator) seed(seed uint64) {
	newExpander(seed).fill64(gen.seq)
	gen.fixParity()
	gen.leader = 0
}

func (gen *lfibGenerator) fixParity() {
	for _, x := range gen.seq {
		if x&1 == 1 {
			return
		}
	}
	gen.seq[0] |= 1
}

func (gen *lfibGenerator) next() uint64 {
	follower := gen.leader - gen.short
	if follower < 0 {
		follower += len(gen.seq)
	}
	next := gen.seq[gen.leader] + gen.seq[follower]
	gen.seq[gen.leader] = next

	gen.leader++
	if gen.leader == len(gen.seq) {
		gen.leader = 0
	}
	return next
}

func (gen *lfibGenerator) bits() int { return 64 }

func (gen *lfibGenerator) marshal(w *stateWriter) {
	w.u64(gen.seq...)
	w.cursor(gen.leader)
}

func (gen *lfibGenerator) unmarshal(r *stateReader) error {
	r.u64s(gen.seq)
	gen.leader = r.cursor(len(gen.seq))
	if r.err != nil {
		return r.err
	}
	for _, x := range gen.seq {
		if x&1 == 1 {
			return nil
		}
	}
	return invalidState("lagged Fibonacci state has no odd word")
}

func (gen *lfibGenerator) clone() source {
	c := *gen
	c.seq = append([]uint64(nil), gen.seq...)
	return &c
}
