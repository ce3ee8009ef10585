/*package quality runs statistical and behavioral checks against the
generator families: chi-square uniformity of Float64, containment of bounded
integers, reproducibility from a seed and snapshot round trips.*/
package quality

import (
	"bytes"
	"errors"
	"fmt"

	"gonum.org/v1/gonum/stat/distuv"

	"github.com/phil-mansfield/randlib/math/rand"
)

// ErrFailed is wrapped by every check failure.
var ErrFailed = errors.New("quality check failed")

// DefaultAlpha is the smallest chi-square p-value which passes.
const DefaultAlpha = 0.001

// Result is the outcome of a chi-square test.
type Result struct {
	Statistic float64
	DF        int
	P         float64
}

// Pass returns true if the p-value exceeds alpha.
func (r Result) Pass(alpha float64) bool { return r.P > alpha }

// ChiSquare bins draws values of g.Float64 into bins equal-width bins and
// tests the counts against a uniform distribution.
func ChiSquare(g *rand.Generator, draws, bins int) Result {
	return chiSquareOf(g.Float64, draws, bins)
}

// chiSquareOf is ChiSquare over any source of values in [0, 1).
func chiSquareOf(next func() float64, draws, bins int) Result {
	counts := make([]float64, bins)
	for i := 0; i < draws; i++ {
		counts[int(next()*float64(bins))]++
	}

	expected := float64(draws) / float64(bins)
	stat := 0.0
	for _, c := range counts {
		d := c - expected
		stat += d * d / expected
	}
	df := bins - 1
	return Result{
		Statistic: stat,
		DF:        df,
		P:         distuv.ChiSquared{K: float64(df)}.Survival(stat),
	}
}

// RangeCheck draws values from g.Intn(bound) and checks each lies in
// [0, bound).
func RangeCheck(g *rand.Generator, bound, draws int) error {
	for i := 0; i < draws; i++ {
		x, err := g.Intn(bound)
		if err != nil {
			return err
		}
		if x < 0 || x >= bound {
			return fmt.Errorf("%w: %s: Intn(%d) returned %d on draw %d",
				ErrFailed, g.Family(), bound, x, i)
		}
	}
	return nil
}

// Determinism checks that two generators built from the same family and
// seed produce identical streams.
func Determinism(f rand.Family, seed uint64, draws int) error {
	a, err := rand.New(f, seed)
	if err != nil {
		return err
	}
	b, err := rand.New(f, seed)
	if err != nil {
		return err
	}
	for i := 0; i < draws; i++ {
		if x, y := a.Next(), b.Next(); x != y {
			return fmt.Errorf("%w: %s: draw %d differs for seed %d: %#x != %#x",
				ErrFailed, f, i, seed, x, y)
		}
	}
	return nil
}

// RoundTrip snapshots g, draws values, restores the snapshot into a fresh
// generator and checks that it reproduces those values. g is advanced by
// draws values.
func RoundTrip(g *rand.Generator, draws int) error {
	state := g.State()
	want := make([]uint64, draws)
	g.Fill(want)

	h, err := rand.New(g.Family(), 0)
	if err != nil {
		return err
	}
	if err := h.SetState(state); err != nil {
		return err
	}
	if !bytes.Equal(h.State(), state) {
		return fmt.Errorf("%w: %s: restored snapshot differs", ErrFailed, g.Family())
	}
	for i := range want {
		if x := h.Next(); x != want[i] {
			return fmt.Errorf("%w: %s: restored draw %d = %#x, expected %#x",
				ErrFailed, g.Family(), i, x, want[i])
		}
	}
	return nil
}

// Config controls the size of a Suite run.
type Config struct {
	Seed  uint64
	Draws int
	Bins  int
	Bound int
	Alpha float64
}

// DefaultConfig returns the sizes used by the library's own tests.
func DefaultConfig() Config {
	return Config{Seed: 2024, Draws: 100000, Bins: 64, Bound: 1000, Alpha: DefaultAlpha}
}

// Report collects the results of Suite for one family.
type Report struct {
	Family rand.Family
	Chi    Result
	Errors []error
}

// Pass returns true if every check in the report passed.
func (r *Report) Pass() bool { return len(r.Errors) == 0 }

// Suite runs every check against family f.
func Suite(f rand.Family, c Config) *Report {
	r := &Report{Family: f}
	g, err := rand.New(f, c.Seed)
	if err != nil {
		r.Errors = append(r.Errors, err)
		return r
	}

	r.Chi = ChiSquare(g, c.Draws, c.Bins)
	if !r.Chi.Pass(c.Alpha) {
		r.Errors = append(r.Errors, fmt.Errorf(
			"%w: %s: chi-square %.2f with %d degrees of freedom has p = %.3g",
			ErrFailed, f, r.Chi.Statistic, r.Chi.DF, r.Chi.P))
	}
	if err := RangeCheck(g, c.Bound, c.Draws); err != nil {
		r.Errors = append(r.Errors, err)
	}
	if err := Determinism(f, c.Seed, c.Draws/10); err != nil {
		r.Errors = append(r.Errors, err)
	}
	if err := RoundTrip(g, 1000); err != nil {
		r.Errors = append(r.Errors, err)
	}
	return r
}
