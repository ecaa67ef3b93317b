package tategb_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/padicgb/tategb"
	"github.com/padicgb/tategb/tatealg"
)

func fieldRing() *tatealg.Ring {
	return tatealg.NewFieldRing(3, tatealg.Deglex, []string{"x", "y"})
}

func mustParse(t *testing.T, ring *tatealg.Ring, prec int, expr string) *tatealg.Element {
	t.Helper()
	e, err := tatealg.Parse(ring, prec, expr)
	require.NoError(t, err)
	return e
}

func TestBuchbergerProducesAMinimalMonicBasis(t *testing.T) {
	ring := fieldRing()
	f1 := mustParse(t, ring, 20, "x^2 + y")
	f2 := mustParse(t, ring, 20, "x*y + x")

	basis, err := tategb.Buchberger[tatealg.Term, *tatealg.Element](
		[]*tatealg.Element{f1, f2}, ring, ring,
		tategb.BuchbergerOptions{Precision: 20, Mode: tategb.Field},
	)
	require.NoError(t, err)
	require.NotEmpty(t, basis)

	for i, g := range basis {
		require.False(t, g.IsZero())
		lead := g.LeadingTerm()
		coef := leadingCoefficientIsOne(t, g)
		require.Truef(t, coef, "basis element %d is not monic", i)

		for j, h := range basis {
			if i == j {
				continue
			}
			require.Falsef(t, h.LeadingTerm().Divides(lead, tategb.Field),
				"basis element %d's leading term is divisible by element %d's: not minimal", i, j)
		}
	}
}

func leadingCoefficientIsOne(t *testing.T, e *tatealg.Element) bool {
	t.Helper()
	m := e.Monic()
	return m.Equal(e) || e.Equal(m)
}

func TestBuchbergerInvalidPrecisionIsRejected(t *testing.T) {
	ring := fieldRing()
	f1 := mustParse(t, ring, 20, "x + 1")

	_, err := tategb.Buchberger[tatealg.Term, *tatealg.Element](
		[]*tatealg.Element{f1}, ring, ring,
		tategb.BuchbergerOptions{Precision: 0, Mode: tategb.Field},
	)
	require.Error(t, err)
	tgErr, ok := tategb.AsError(err)
	require.True(t, ok)
	require.Equal(t, tategb.KindInvalidPrecision, tgErr.Kind)
}

func TestF5AgreesWithBuchbergerOnMembership(t *testing.T) {
	ring := fieldRing()
	f1 := mustParse(t, ring, 20, "x^2 + y")
	f2 := mustParse(t, ring, 20, "x*y + x")

	bb, err := tategb.Buchberger[tatealg.Term, *tatealg.Element](
		[]*tatealg.Element{f1, f2}, ring, ring,
		tategb.BuchbergerOptions{Precision: 20, Mode: tategb.Field},
	)
	require.NoError(t, err)

	f5, err := tategb.F5[tatealg.Term, *tatealg.Element](
		[]*tatealg.Element{f1, f2}, ring, ring,
		tategb.F5Options{Precision: 20, Mode: tategb.Field},
	)
	require.NoError(t, err)
	require.NotEmpty(t, f5)
	require.NotEmpty(t, bb)

	// Each basis reduces every element of the other to zero, so both
	// decide membership the same way.
	for i, g := range f5 {
		_, r := g.QuoRem(bb, false, tategb.Field)
		require.Truef(t, r.IsZero(), "F5 basis element %d is not reduced to zero by the Buchberger basis", i)
	}
	for i, g := range bb {
		_, r := g.QuoRem(f5, false, tategb.Field)
		require.Truef(t, r.IsZero(), "Buchberger basis element %d is not reduced to zero by the F5 basis", i)
	}
}
