package rand

// xorshift is Marsaglia's xor128. The all-zero state is a fixed point, so
// seeding replaces it and snapshots containing it are rejected.
//
// State layout: x, y, z, w uint32 (16 bytes).
type xorshift struct {
	x, y, z, w uint32
}

func (gen *xorshift) seed(seed uint64) {
	sm := newExpander(seed)
	gen.x, gen.y, gen.z, gen.w = sm.next32(), sm.next32(), sm.next32(), sm.next32()
	if gen.x|gen.y|gen.z|gen.w == 0 {
		gen.x = 1
	}
}

func (gen *xorshift) next() uint64 {
	t := gen.x ^ (gen.x << 11)
	gen.x, gen.y, gen.z = gen.y, gen.z, gen.w
	gen.w = gen.w ^ (gen.w >> 19) ^ (t ^ (t >> 8))
	return uint64(gen.w)
}

func (gen *xorshift) bits() int { return 32 }

func (gen *xorshift) marshal(w *stateWriter) { w.u32(gen.x, gen.y, gen.z, gen.w) }

func (gen *xorshift) unmarshal(r *stateReader) error {
	r.u32(&gen.x)
	r.u32(&gen.y)
	r.u32(&gen.z)
	r.u32(&gen.w)
	if r.err == nil && gen.x|gen.y|gen.z|gen.w == 0 {
		return invalidState("xorshift state is all zero")
	}
	return r.err
}

func (gen *xorshift) clone() source {
	c := *gen
	return &c
}
