/*package rand provides implementations of a large number of deterministic
pseudo random number generators behind a single Generator type.

Here are some usage examples for these generators.

	// Generate a single value
	gen, err := New(Xoroshiro256, 1337)
	x := gen.Uniform(3, 7)

	// Multiple random floats (faster)
	xs := make([]float64, 100)
	gen.UniformAt(3, 7, xs)

	// Random int in [3, 7)
	y, err := gen.IntRange(3, 7)

	// Use the time as a seed
	gen2, err := NewTimeSeed(Pcg64_32)

	// Independent streams
	a, _ := New(Xoroshiro256, 7)
	b := a.Clone()
	b.Jump()

Every family is a bit-exact rendition of its published recurrence, so equal
seeds give identical streams on every platform. None of these generators are
suitable for cryptography. A Generator is owned by a single goroutine; use
Clone and Jump to get streams for other goroutines.
*/
package rand

import (
	"fmt"
	"sort"
	"strings"

	"lukechampine.com/uint128"
)

// source is the interface implemented by every family. Generator builds the
// user-facing functionality on top of it.
type source interface {
	// seed fills the state from a single 64-bit seed and repairs any
	// degenerate state the expansion produced.
	seed(seed uint64)
	// next advances the state and returns one raw output of bits() bits.
	next() uint64
	bits() int
	marshal(w *stateWriter)
	// unmarshal reads the state and rejects degenerate snapshots.
	unmarshal(r *stateReader) error
	clone() source
}

// jumper is implemented by families with a jump-ahead function.
type jumper interface {
	jump()
	jumpExponent() int
}

// longJumper is implemented by families with a second, longer jump.
type longJumper interface {
	longJump()
	longJumpExponent() int
}

// wide is implemented by families whose raw output is 128 bits. For these
// next() returns the high 64 bits.
type wide interface {
	next128() uint128.Uint128
}

// Family is a flag used to indicate the desired algorithm for a random
// number generator.
type Family uint8

const (
	FastRand32 Family = iota
	FastRand63
	LFib78
	LFib116
	LFib668
	LFib1340
	MRGRand287
	MRGRand1457
	MRGRand49507
	Well512a
	Well1024a
	Well19937c
	Well44497b
	Xoroshiro256
	Xoroshiro512
	Xoroshiro1024
	Pcg64_32
	Pcg128_64
	Pcg1024_32
	Cwg64
	Cwg128_64
	Cwg128
	Squares32
	Squares64
	Melg607
	Melg19937
	Melg44497
	Mt19937
	SplitMix64
	Xorshift
	Xoroshiro128
	numFamilies
)

var familyNames = [numFamilies]string{
	FastRand32:    "fastrand32",
	FastRand63:    "fastrand63",
	LFib78:        "lfib78",
	LFib116:       "lfib116",
	LFib668:       "lfib668",
	LFib1340:      "lfib1340",
	MRGRand287:    "mrgrand287",
	MRGRand1457:   "mrgrand1457",
	MRGRand49507:  "mrgrand49507",
	Well512a:      "well512a",
	Well1024a:     "well1024a",
	Well19937c:    "well19937c",
	Well44497b:    "well44497b",
	Xoroshiro256:  "xoroshiro256",
	Xoroshiro512:  "xoroshiro512",
	Xoroshiro1024: "xoroshiro1024",
	Pcg64_32:      "pcg64_32",
	Pcg128_64:     "pcg128_64",
	Pcg1024_32:    "pcg1024_32",
	Cwg64:         "cwg64",
	Cwg128_64:     "cwg128_64",
	Cwg128:        "cwg128",
	Squares32:     "squares32",
	Squares64:     "squares64",
	Melg607:       "melg607",
	Melg19937:     "melg19937",
	Melg44497:     "melg44497",
	Mt19937:       "mt19937",
	SplitMix64:    "splitmix64",
	Xorshift:      "xorshift",
	Xoroshiro128:  "xoroshiro128",
}

// String returns the canonical name of the family.
func (f Family) String() string {
	if f >= numFamilies {
		return fmt.Sprintf("Family(%d)", uint8(f))
	}
	return familyNames[f]
}

// Families returns every supported family in declaration order.
func Families() []Family {
	out := make([]Family, numFamilies)
	for i := range out {
		out[i] = Family(i)
	}
	return out
}

// Names returns the canonical family names, sorted.
func Names() []string {
	out := make([]string, numFamilies)
	copy(out, familyNames[:])
	sort.Strings(out)
	return out
}

// Lookup returns the family with the given name. Names are matched without
// regard to case.
func Lookup(name string) (Family, error) {
	lower := strings.ToLower(strings.TrimSpace(name))
	for i, n := range familyNames {
		if n == lower {
			return Family(i), nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownFamily, name)
}

func newSource(f Family) (source, error) {
	switch f {
	case FastRand32:
		return new(fastRand32), nil
	case FastRand63:
		return new(fastRand63), nil
	case LFib78:
		return newLFib(17, 5), nil
	case LFib116:
		return newLFib(55, 24), nil
	case LFib668:
		return newLFib(607, 273), nil
	case LFib1340:
		return newLFib(1279, 861), nil
	case MRGRand287:
		return new(mrg287), nil
	case MRGRand1457:
		return new(mrg1457), nil
	case MRGRand49507:
		return new(mrg49507), nil
	case Well512a:
		return new(well512a), nil
	case Well1024a:
		return new(well1024a), nil
	case Well19937c:
		return new(well19937c), nil
	case Well44497b:
		return new(well44497b), nil
	case Xoroshiro256:
		return new(xoshiro256), nil
	case Xoroshiro512:
		return new(xoshiro512), nil
	case Xoroshiro1024:
		return new(xoroshiro1024), nil
	case Pcg64_32:
		return new(pcg32), nil
	case Pcg128_64:
		return new(pcg64), nil
	case Pcg1024_32:
		return new(pcg32k1024), nil
	case Cwg64:
		return new(cwg64), nil
	case Cwg128_64:
		return new(cwg128_64), nil
	case Cwg128:
		return new(cwg128), nil
	case Squares32:
		return &squares{rounds32: true}, nil
	case Squares64:
		return new(squares), nil
	case Melg607:
		return newMelg(&melg607Params), nil
	case Melg19937:
		return newMelg(&melg19937Params), nil
	case Melg44497:
		return newMelg(&melg44497Params), nil
	case Mt19937:
		return new(mt19937), nil
	case SplitMix64:
		return new(splitMixSource), nil
	case Xorshift:
		return new(xorshift), nil
	case Xoroshiro128:
		return new(xoroshiro128), nil
	}
	return nil, fmt.Errorf("%w: %s", ErrUnknownFamily, f)
}

// Generator is a random number generator.
type Generator struct {
	family Family
	src    source
}

// NewTimeSeed returns a new random number generator that uses the current
// time and system entropy as the seed.
func NewTimeSeed(f Family) (*Generator, error) {
	return New(f, timeSeed())
}

// New returns a new random number generator.
func New(f Family, seed uint64) (*Generator, error) {
	src, err := newSource(f)
	if err != nil {
		return nil, err
	}
	src.seed(seed)
	return &Generator{family: f, src: src}, nil
}

// NewNamed is New with the family given by its canonical name.
func NewNamed(name string, seed uint64) (*Generator, error) {
	f, err := Lookup(name)
	if err != nil {
		return nil, err
	}
	return New(f, seed)
}

// Family returns the generator's algorithm.
func (gen *Generator) Family() Family { return gen.family }

// Bits returns the number of significant bits in each value returned by Next.
// 128-bit families report 128.
func (gen *Generator) Bits() int { return gen.src.bits() }

// Reseed restarts the generator as if it had been created with New(f, seed).
func (gen *Generator) Reseed(seed uint64) { gen.src.seed(seed) }

// Next returns the family's next raw output. For 128-bit families this is
// the high half of the output.
func (gen *Generator) Next() uint64 { return gen.src.next() }

// Next128 returns the next full 128-bit output of a 128-bit family. Other
// families return Next widened to 128 bits.
func (gen *Generator) Next128() uint128.Uint128 {
	if w, ok := gen.src.(wide); ok {
		return w.next128()
	}
	return uint128.From64(gen.src.next())
}

// Fill writes consecutive raw outputs to every element of target.
func (gen *Generator) Fill(target []uint64) {
	for i := range target {
		target[i] = gen.src.next()
	}
}

// Clone returns an independent copy of the generator. The copy produces the
// same sequence as the original.
func (gen *Generator) Clone() *Generator {
	return &Generator{family: gen.family, src: gen.src.clone()}
}

// Jump advances the generator by 2^JumpExponent() steps.
func (gen *Generator) Jump() error {
	j, ok := gen.src.(jumper)
	if !ok {
		return fmt.Errorf("%w: %s", ErrJumpUnsupported, gen.family)
	}
	j.jump()
	return nil
}

// JumpExponent returns the base-2 logarithm of the distance covered by Jump,
// or 0 if the family has no jump function.
func (gen *Generator) JumpExponent() int {
	if j, ok := gen.src.(jumper); ok {
		return j.jumpExponent()
	}
	return 0
}

// LongJump advances the generator by 2^LongJumpExponent() steps. Streams
// split off with LongJump can each be split further with Jump.
func (gen *Generator) LongJump() error {
	j, ok := gen.src.(longJumper)
	if !ok {
		return fmt.Errorf("%w: %s has no long jump", ErrJumpUnsupported, gen.family)
	}
	j.longJump()
	return nil
}

// LongJumpExponent returns the base-2 logarithm of the distance covered by
// LongJump, or 0 if the family has none.
func (gen *Generator) LongJumpExponent() int {
	if j, ok := gen.src.(longJumper); ok {
		return j.longJumpExponent()
	}
	return 0
}

// State returns a snapshot of the generator's state. The layout is
// documented on each family's type.
func (gen *Generator) State() []byte {
	w := &stateWriter{}
	gen.src.marshal(w)
	return w.buf
}

// SetState restores a snapshot returned by State. Malformed or degenerate
// snapshots return an error wrapping ErrInvalidState and leave the generator
// unchanged.
func (gen *Generator) SetState(state []byte) error {
	src := gen.src.clone()
	r := &stateReader{buf: state}
	if err := src.unmarshal(r); err != nil {
		return fmt.Errorf("%s: %w", gen.family, err)
	}
	if err := r.finish(); err != nil {
		return fmt.Errorf("%s: %w", gen.family, err)
	}
	gen.src = src
	return nil
}

// Intn returns an integer uniformly at random within the range [0, bound).
func (gen *Generator) Intn(bound int) (int, error) {
	if bound <= 0 {
		return 0, fmt.Errorf("%w: %d", ErrInvalidBound, bound)
	}
	return int(gen.uint64n(uint64(bound))), nil
}

// IntRange returns an integer uniformly at random within the range
// [low, high).
func (gen *Generator) IntRange(low, high int) (int, error) {
	if high <= low {
		return 0, fmt.Errorf("%w: [%d, %d)", ErrInvalidRange, low, high)
	}
	span := uint64(high) - uint64(low)
	return low + int(gen.uint64n(span)), nil
}

// UniformInt is IntRange for callers that have already validated the range.
// It panics if high <= low.
func (gen *Generator) UniformInt(low, high int) int {
	x, err := gen.IntRange(low, high)
	if err != nil {
		panic(err.Error())
	}
	return x
}

// Uniform returns a float uniformly at random within the range [low, high).
func (gen *Generator) Uniform(low, high float64) float64 {
	if low == 0.0 && high == 1.0 {
		return gen.Float64()
	}
	return (gen.Float64() * (high - low)) + low
}

// UniformAt writes floats generated uniformly at random in the range
// [low, high) to every element in a target slice.
func (gen *Generator) UniformAt(low, high float64, target []float64) {
	for i := range target {
		target[i] = gen.Float64()
	}
	if low == 0.0 && high == 1.0 {
		return
	}
	for i := range target {
		target[i] = target[i]*(high-low) + low
	}
}
