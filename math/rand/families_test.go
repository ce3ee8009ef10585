package rand

import (
	"errors"
	"testing"

	"lukechampine.com/uint128"
)

func checkSequence(t *testing.T, name string, next func() uint64, want []uint64) {
	t.Helper()
	for i := range want {
		if got := next(); got != want[i] {
			t.Errorf("%s: output %d = %d, expected %d", name, i, got, want[i])
			return
		}
	}
}

// TestSeedOneVectors pins the public seeding path. Seed 1 expands to the
// SplitMix64 word 0x910a2dec89025cc1, so fastrand32 starts from its high
// half, 2433363436, and fastrand63 from its high 63 bits.
func TestSeedOneVectors(t *testing.T) {
	sm := mustNew(t, SplitMix64, 1)
	checkSequence(t, "splitmix64", sm.Next, []uint64{
		0x910a2dec89025cc1, 0xbeeb8da1658eec67, 0xf893a2eefb32555e,
	})

	fr32 := mustNew(t, FastRand32, 1)
	checkSequence(t, "fastrand32", fr32.Next, []uint64{
		3613901309, 2230136986, 2919349587, 726979192, 3558122009,
	})

	fr63 := mustNew(t, FastRand63, 1)
	checkSequence(t, "fastrand63", fr63.Next, []uint64{
		2200989151377986017, 6073416033862841558, 3883210547407823,
	})

	named, err := NewNamed("FastRand32", 1)
	if err != nil {
		t.Fatal(err.Error())
	}
	checkSequence(t, "named fastrand32", named.Next, []uint64{3613901309})
}

func TestReferenceVectors(t *testing.T) {
	mt := mustNew(t, Mt19937, 5489)
	checkSequence(t, "mt19937", mt.Next, []uint64{
		3499211612, 581869302, 3890346734, 3586334585, 545404204,
	})

	pcg := &pcg32{}
	pcg.srandom(42, 54)
	checkSequence(t, "pcg32", pcg.next, []uint64{
		0xa15c02b7, 0x7b47f409, 0xba1d3330, 0x83d2f293, 0xbfa4784b, 0xcbed606e,
	})

	xo256 := &xoshiro256{s: [4]uint64{1, 2, 3, 4}}
	checkSequence(t, "xoshiro256**", xo256.next, []uint64{
		11520, 0, 1509978240, 1215971899390074240, 1216172134540287360,
	})

	xo128 := &xoroshiro128{s: [2]uint64{1, 2}}
	checkSequence(t, "xoroshiro128+", xo128.next, []uint64{
		3, 412333834243, 2360170716294286339,
		9295852285959843169, 2797080929874688578,
	})

	sm := mustNew(t, SplitMix64, 0)
	checkSequence(t, "splitmix64", sm.Next, []uint64{
		0xe220a8397b1dcdaf, 0x6e789e6aa1b965f4, 0x06c45d188009454f,
		0xf88bb8a8724c81ec, 0x1b39896a51a8749b,
	})
}

// stepPoly returns a polynomial which advances a linear generator by k steps.
func stepPoly(k uint) []uint64 {
	poly := make([]uint64, k/64+1)
	poly[k/64] = 1 << (k % 64)
	return poly
}

func TestJumpPolynomials(t *testing.T) {
	type linear interface {
		source
		jumpWith(poly []uint64)
	}
	makers := map[string]func() linear{
		"xoshiro256":    func() linear { return &polyJumper{new(xoshiro256)} },
		"xoshiro512":    func() linear { return &polyJumper{new(xoshiro512)} },
		"xoroshiro128":  func() linear { return &polyJumper{new(xoroshiro128)} },
		"xoroshiro1024": func() linear { return new(xoroshiro1024) },
	}

	for name, mk := range makers {
		for _, k := range []uint{0, 1, 5, 63, 64, 67, 200} {
			jumped, stepped := mk(), mk()
			jumped.seed(11)
			stepped.seed(11)
			for i := 0; i < 3; i++ {
				jumped.next()
				stepped.next()
			}

			jumped.jumpWith(stepPoly(k))
			for i := uint(0); i < k; i++ {
				stepped.next()
			}
			for i := 0; i < 50; i++ {
				if x, y := jumped.next(), stepped.next(); x != y {
					t.Errorf("%s: jump by %d differs from stepping at draw %d", name, k, i)
					break
				}
			}
		}
	}
}

// polyJumper exposes jumpPoly for the fixed-layout xor generators.
type polyJumper struct {
	source
}

func (p *polyJumper) jumpWith(poly []uint64) {
	switch g := p.source.(type) {
	case *xoshiro256:
		jumpPoly(g.s[:], poly, g.next)
	case *xoshiro512:
		jumpPoly(g.s[:], poly, g.next)
	case *xoroshiro128:
		jumpPoly(g.s[:], poly, g.next)
	}
}

func TestLCGAdvance(t *testing.T) {
	for _, delta := range []uint64{0, 1, 2, 17, 1000, 1 << 16} {
		x := uint64(12345)
		for i := uint64(0); i < delta; i++ {
			x = fastRand63Mult*x + 1
		}
		mult, plus := lcgAdvance(fastRand63Mult, 1, delta)
		if got := mult*12345 + plus; got != x {
			t.Errorf("lcgAdvance(%d) = %#x, expected %#x", delta, got, x)
		}

		inc := uint128.From64(77)
		y := uint128.From64(12345)
		for i := uint64(0); i < delta; i++ {
			y = y.MulWrap(pcg64Mult).AddWrap(inc)
		}
		m128, p128 := lcgAdvance128(pcg64Mult, inc, uint128.From64(delta))
		if got := m128.MulWrap(uint128.From64(12345)).AddWrap(p128); got != y {
			t.Errorf("lcgAdvance128(%d) = %s, expected %s", delta, got, y)
		}
	}
}

func TestLCGJumps(t *testing.T) {
	jumped, stepped := &fastRand32{x: 99}, &fastRand32{x: 99}
	jumped.jump()
	for i := 0; i < 1<<16; i++ {
		stepped.next()
	}
	if jumped.x != stepped.x {
		t.Errorf("fastrand32 jump = %#x, expected %#x", jumped.x, stepped.x)
	}

	p1, p2 := &pcg32{}, &pcg32{}
	p1.srandom(42, 54)
	p2.srandom(42, 54)
	p1.advance(4321)
	for i := 0; i < 4321; i++ {
		p2.next()
	}
	if p1.next() != p2.next() {
		t.Errorf("pcg32 advance differs from stepping")
	}

	q1, q2 := mustNew(t, Pcg128_64, 3), mustNew(t, Pcg128_64, 3)
	q1.src.(*pcg64).advance(uint128.From64(999))
	for i := 0; i < 999; i++ {
		q2.Next()
	}
	if q1.Next() != q2.Next() {
		t.Errorf("pcg64 advance differs from stepping")
	}

	f1, f2 := &fastRand63{x: 5}, &fastRand63{x: 5}
	mult, plus := lcgAdvance(fastRand63Mult, 1, 1<<10)
	f1.x = (mult*f1.x + plus) & mask63
	for i := 0; i < 1<<10; i++ {
		f2.next()
	}
	if f1.x != f2.x {
		t.Errorf("fastrand63 advance differs from stepping")
	}
}

func TestJump(t *testing.T) {
	exponents := map[Family]int{
		FastRand32: 16, FastRand63: 32, Xoroshiro256: 128, Xoroshiro512: 256,
		Xoroshiro1024: 512, Pcg64_32: 32, Pcg128_64: 64,
		Squares32: 32, Squares64: 32, SplitMix64: 32, Xoroshiro128: 64,
	}
	for _, f := range Families() {
		gen := mustNew(t, f, 21)
		if got := gen.JumpExponent(); got != exponents[f] {
			t.Errorf("%s: JumpExponent() = %d, expected %d", f, got, exponents[f])
		}

		c := gen.Clone()
		err := c.Jump()
		if _, ok := exponents[f]; !ok {
			if !errors.Is(err, ErrJumpUnsupported) {
				t.Errorf("%s: Jump returned %v, expected ErrJumpUnsupported", f, err)
			}
			continue
		}
		if err != nil {
			t.Errorf("%s: Jump: %v", f, err)
			continue
		}
		same := 0
		for i := 0; i < 100; i++ {
			if gen.Next() == c.Next() {
				same++
			}
		}
		if same > 10 {
			t.Errorf("%s: jumped stream matches the original on %d of 100 draws", f, same)
		}
	}

	gen := mustNew(t, Xoroshiro256, 1)
	if err := gen.LongJump(); err != nil || gen.LongJumpExponent() != 192 {
		t.Errorf("xoroshiro256 LongJump: %v, exponent %d", err, gen.LongJumpExponent())
	}
	gen = mustNew(t, Mt19937, 1)
	if err := gen.LongJump(); !errors.Is(err, ErrJumpUnsupported) {
		t.Errorf("mt19937 LongJump returned %v", err)
	}
}

func TestSquaresJump(t *testing.T) {
	gen := &squares{}
	gen.seed(8)
	ctr := gen.ctr
	gen.jump()
	if gen.ctr != ctr+1<<32 {
		t.Errorf("squares jump moved the counter by %d", gen.ctr-ctr)
	}
}

func TestSquaresKey(t *testing.T) {
	for seed := uint64(0); seed < 200; seed++ {
		key := squaresKey(newExpander(seed))
		var seen uint16
		prev := uint64(0)
		for i := 0; i < 16; i++ {
			d := (key >> (60 - 4*uint(i))) & 0xf
			if d == 0 || d == prev {
				t.Fatalf("key %#x: digit %d = %x", key, i, d)
			}
			if i < 8 {
				if seen&(1<<d) != 0 {
					t.Fatalf("key %#x: repeated high digit %x", key, d)
				}
				seen |= 1 << d
			}
			prev = d
		}
		if key&1 == 0 {
			t.Fatalf("key %#x is even", key)
		}
	}
}

func TestRXSInverse(t *testing.T) {
	sm := newExpander(1)
	for i := 0; i < 10000; i++ {
		x := sm.next32()
		if got := rxsUnoutput32(rxsOutput32(x)); got != x {
			t.Fatalf("rxsUnoutput32(rxsOutput32(%#x)) = %#x", x, got)
		}
	}
	m, u := uint32(rxsMult32), uint32(rxsUnmult32)
	if m*u != 1 {
		t.Errorf("RXS multipliers are not inverses")
	}
}

func TestPcg1024TableAdvance(t *testing.T) {
	gen := &pcg32k1024{}
	gen.seed(5)
	before := gen.ext
	gen.base.state &^= k1024TickMask
	gen.next()
	if gen.ext == before {
		t.Errorf("table did not advance when the low state bits were zero")
	}

	gen.seed(5)
	gen.base.state |= 1
	gen.next()
	if gen.ext != before {
		t.Errorf("table advanced with non-zero low state bits")
	}
}

func TestMRGRecurrence(t *testing.T) {
	gen := &mrg1457{}
	gen.seed(4)
	var hist [47 + 100]uint64
	for i, x := range gen.seq {
		hist[i] = uint64(x)
	}
	for i := 47; i < len(hist); i++ {
		hist[i] = gen.next()
		want := (mrg1457Mult * ((hist[i-1] + hist[i-24] + hist[i-47]) % mrgModulus)) % mrgModulus
		if hist[i] != want {
			t.Fatalf("mrgrand1457 step %d = %d, expected %d", i, hist[i], want)
		}
	}

	lf := newLFib(17, 5)
	lf.seed(4)
	lhist := append([]uint64{}, lf.seq...)
	for i := 17; i < 200; i++ {
		lhist = append(lhist, lf.next())
		if want := lhist[i-5] + lhist[i-17]; lhist[i] != want {
			t.Fatalf("lfib78 step %d = %#x, expected %#x", i, lhist[i], want)
		}
	}

	m287 := &mrg287{}
	m287.seed(4)
	mhist := make([]uint32, 0, 600)
	mhist = append(mhist, m287.seq[:]...)
	for i := 256; i < 600; i++ {
		mhist = append(mhist, uint32(m287.next()))
		want := mhist[i-55] + mhist[i-119] + mhist[i-179] + mhist[i-256]
		if mhist[i] != want {
			t.Fatalf("mrgrand287 step %d = %#x, expected %#x", i, mhist[i], want)
		}
	}
}

func TestNext128(t *testing.T) {
	a, b := mustNew(t, Cwg128, 6), mustNew(t, Cwg128, 6)
	for i := 0; i < 100; i++ {
		if x, y := a.Next128(), b.Next(); x.Hi != y {
			t.Fatalf("Next128().Hi = %#x, Next() = %#x", x.Hi, y)
		}
	}
	c, d := mustNew(t, Pcg128_64, 6), mustNew(t, Pcg128_64, 6)
	if x, y := c.Next128(), d.Next(); x != uint128.From64(y) {
		t.Errorf("Next128 of a 64-bit family = %s, expected %d", x, y)
	}
}

func TestSeedRepairs(t *testing.T) {
	seq := make([]uint32, 4)
	mrgSeed(seq, 0)
	if allZero32(seq) {
		t.Errorf("mrgSeed produced an all-zero state")
	}
	for _, x := range seq {
		if x >= mrgModulus {
			t.Errorf("mrgSeed produced %d", x)
		}
	}

	lf := newLFib(17, 5)
	for i := range lf.seq {
		lf.seq[i] = 2
	}
	lf.fixParity()
	if lf.seq[0]&1 != 1 {
		t.Errorf("fixParity left every word even")
	}
}
