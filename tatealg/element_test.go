package tatealg

import (
	"math/big"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"

	"github.com/padicgb/tategb"
)

func testRing(field bool) *Ring {
	vars := []string{"x", "y"}
	if field {
		return NewFieldRing(3, Deglex, vars)
	}
	return NewIntegerRing(3, Deglex, vars)
}

func TestParseAndArithmetic(t *testing.T) {
	ring := testRing(true)
	f, err := Parse(ring, 20, "3*x^2 + 5*x*y^2")
	require.NoError(t, err)
	g, err := Parse(ring, 20, "5*x^2*y + 3")
	require.NoError(t, err)

	require.False(t, f.IsZero())
	require.False(t, g.IsZero())

	sum := f.Add(g)
	require.False(t, sum.IsZero())

	diff := f.Add(f.Neg())
	require.True(t, diff.IsZero())
}

func TestMonicNormalisesLeadingCoefficient(t *testing.T) {
	ring := testRing(true)
	f, err := Parse(ring, 20, "5*x^2 + 3*y")
	require.NoError(t, err)

	m := f.Monic()
	want := []int{2, 0}
	if diff := cmp.Diff(want, m.LeadingTerm().Exponent()); diff != "" {
		t.Errorf("leading exponent mismatch (-want +got):\n%s", diff)
	}
	if got := m.leadingCoeff(); got.Cmp(big.NewRat(1, 1)) != 0 {
		t.Errorf("monic leading coefficient = %s, want 1", got.RatString())
	}
}

func TestSPolynomialCancelsLeadingTerms(t *testing.T) {
	ring := testRing(true)
	f, err := Parse(ring, 20, "x^2 + y")
	require.NoError(t, err)
	g, err := Parse(ring, 20, "x^2 + x")
	require.NoError(t, err)

	s := f.SPolynomial(g)
	if s.IsZero() {
		t.Fatal("S-polynomial of x^2+y and x^2+x should not be zero")
	}
	for exp := range s.Terms() {
		if exp.Exponent()[0] == 2 && exp.Exponent()[1] == 0 {
			t.Errorf("S-polynomial should have cancelled the shared leading monomial x^2")
		}
	}
}

func TestQuoRemReduceTail(t *testing.T) {
	ring := testRing(true)
	f, err := Parse(ring, 20, "x^2 + x")
	require.NoError(t, err)
	g, err := Parse(ring, 20, "x + 1")
	require.NoError(t, err)

	_, r := f.QuoRem([]*Element{g}, true, tategb.Field)
	require.True(t, r.IsZero() || r.PrecisionAbsolute() == f.PrecisionAbsolute())
}

func TestPositivePiShiftRaisesValuation(t *testing.T) {
	ring := testRing(false)
	f, err := Parse(ring, 20, "x + 1")
	require.NoError(t, err)

	shifted := f.PositivePiShift(1)
	if shifted.Valuation() < f.Valuation()+1 {
		t.Errorf("pi-shift should raise valuation by at least 1, got %d -> %d", f.Valuation(), shifted.Valuation())
	}
}
