package rand

const (
	mtN        = 624
	mtM        = 397
	mtMatrixA  = 0x9908b0df
	upperMask  = 0x80000000
	lowerMask  = 0x7fffffff
	temperingB = 0x9d2c5680
	temperingC = 0xefc60000
)

// mt19937 is the Matsumoto-Nishimura Mersenne twister. Unlike the other
// families it is seeded with init_genrand on the two halves of the seed
// xored together, so that seeds below 2^32 reproduce the published
// sequences.
//
// State layout: 624 uint32 words (2496 bytes), then mti uint32 in [0, 624].
type mt19937 struct {
	mt  [mtN]uint32
	mti int
}

func (gen *mt19937) seed(seed uint64) {
	gen.initGenrand(uint32(seed) ^ uint32(seed>>32))
}

func (gen *mt19937) initGenrand(s uint32) {
	gen.mt[0] = s
	for i := 1; i < mtN; i++ {
		gen.mt[i] = 1812433253*(gen.mt[i-1]^(gen.mt[i-1]>>30)) + uint32(i)
	}
	gen.mti = mtN
}

func (gen *mt19937) twist() {
	mag01 := [2]uint32{0, mtMatrixA}
	var y uint32
	var kk int
	for kk = 0; kk < mtN-mtM; kk++ {
		y = (gen.mt[kk] & upperMask) | (gen.mt[kk+1] & lowerMask)
		gen.mt[kk] = gen.mt[kk+mtM] ^ (y >> 1) ^ mag01[y&1]
	}
	for ; kk < mtN-1; kk++ {
		y = (gen.mt[kk] & upperMask) | (gen.mt[kk+1] & lowerMask)
		gen.mt[kk] = gen.mt[kk+(mtM-mtN)] ^ (y >> 1) ^ mag01[y&1]
	}
	y = (gen.mt[mtN-1] & upperMask) | (gen.mt[0] & lowerMask)
	gen.mt[mtN-1] = gen.mt[mtM-1] ^ (y >> 1) ^ mag01[y&1]
	gen.mti = 0
}

func (gen *mt19937) next() uint64 {
	if gen.mti >= mtN {
		gen.twist()
	}
	y := gen.mt[gen.mti]
	gen.mti++

	y ^= y >> 11
	y ^= (y << 7) & temperingB
	y ^= (y << 15) & temperingC
	y ^= y >> 18
	return uint64(y)
}

func (gen *mt19937) bits() int { return 32 }

func (gen *mt19937) marshal(w *stateWriter) {
	w.u32(gen.mt[:]...)
	w.cursor(gen.mti)
}

func (gen *mt19937) unmarshal(r *stateReader) error {
	r.u32s(gen.mt[:])
	gen.mti = r.cursor(mtN + 1)
	if r.err != nil {
		return r.err
	}
	// The twist never reads the low bits of mt[0].
	if gen.mt[0]&upperMask == 0 && allZero32(gen.mt[1:]) {
		return invalidState("mt19937 state is all zero")
	}
	return nil
}

func (gen *mt19937) clone() source {
	c := *gen
	return &c
}
