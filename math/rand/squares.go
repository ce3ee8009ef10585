package rand

// squares is Widynski's Squares counter-based generator. Each output is a
// keyed hash of the counter, so the only mutable state is ctr. rounds32
// selects the four-round 32-bit variant, otherwise the five-round 64-bit
// variant is used.
//
// State layout: ctr uint64, key uint64 (16 bytes), key odd.
type squares struct {
	ctr, key uint64
	rounds32 bool
}

func (gen *squares) seed(seed uint64) {
	sm := newExpander(seed)
	gen.key = squaresKey(sm)
	gen.ctr = sm.next()
}

// squaresKey draws a key whose 16 hex digits are non-zero, whose high eight
// digits are distinct, in which no two adjacent digits are equal and whose
// last digit is odd.
func squaresKey(sm *splitMix64) uint64 {
	var key uint64
	var used uint16
	prev := uint64(0)
	for i := 0; i < 16; i++ {
		var d uint64
		for {
			d = 1 + sm.next()%15
			if d == prev || (i < 8 && used&(1<<d) != 0) || (i == 15 && d&1 == 0) {
				continue
			}
			break
		}
		used |= 1 << d
		prev = d
		key = key<<4 | d
	}
	return key
}

func swapHalves(x uint64) uint64 { return x>>32 | x<<32 }

func (gen *squares) next() uint64 {
	x := gen.ctr * gen.key
	y := x
	z := y + gen.key
	gen.ctr++

	x = swapHalves(x*x + y)
	x = swapHalves(x*x + z)
	x = swapHalves(x*x + y)
	if gen.rounds32 {
		return (x*x + z) >> 32
	}
	t := x*x + z
	x = swapHalves(t)
	return t ^ (x*x+y)>>32
}

func (gen *squares) bits() int {
	if gen.rounds32 {
		return 32
	}
	return 64
}

func (gen *squares) marshal(w *stateWriter) { w.u64(gen.ctr, gen.key) }

func (gen *squares) unmarshal(r *stateReader) error {
	r.u64(&gen.ctr)
	r.u64(&gen.key)
	if r.err == nil && gen.key&1 == 0 {
		return invalidState("squares key %#x is even", gen.key)
	}
	return r.err
}

func (gen *squares) clone() source {
	c := *gen
	return &c
}

func (gen *squares) jump()             { gen.ctr += 1 << 32 }
func (gen *squares) jumpExponent() int { return 32 }
