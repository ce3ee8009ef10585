package quality

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/phil-mansfield/randlib/math/rand"
)

func TestSuite(t *testing.T) {
	c := DefaultConfig()
	c.Draws = 20000
	c.Alpha = 1e-6
	for _, f := range rand.Families() {
		r := Suite(f, c)
		require.Equal(t, f, r.Family)
		require.True(t, r.Pass(), "%s: %v", f, r.Errors)
		require.Equal(t, c.Bins-1, r.Chi.DF)
	}
}

func TestChiSquareDetectsBias(t *testing.T) {
	g, err := rand.New(rand.Xoroshiro256, 1)
	require.NoError(t, err)

	good := ChiSquare(g, 10000, 16)
	require.True(t, good.Pass(DefaultAlpha))

	// Squaring a uniform variate piles the mass up near zero.
	biased := chiSquareOf(func() float64 { x := g.Float64(); return x * x }, 10000, 16)
	require.False(t, biased.Pass(DefaultAlpha))
	require.Less(t, biased.P, 1e-10)
}

func TestRangeCheck(t *testing.T) {
	g, err := rand.New(rand.Pcg64_32, 3)
	require.NoError(t, err)
	require.NoError(t, RangeCheck(g, 7, 10000))

	err = RangeCheck(g, 0, 10)
	require.True(t, errors.Is(err, rand.ErrInvalidBound))
}

func TestRoundTrip(t *testing.T) {
	for _, f := range []rand.Family{rand.Mt19937, rand.LFib668, rand.Cwg128} {
		g, err := rand.New(f, 12)
		require.NoError(t, err)
		require.NoError(t, RoundTrip(g, 500))
	}
}

func TestDeterminism(t *testing.T) {
	require.NoError(t, Determinism(rand.Melg44497, 5, 5000))

	_, err := rand.New(rand.Family(200), 0)
	require.Error(t, err)
	require.True(t, errors.Is(Determinism(rand.Family(200), 5, 10), rand.ErrUnknownFamily))
}
