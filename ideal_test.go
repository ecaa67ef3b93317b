package tategb_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/padicgb/tategb"
	"github.com/padicgb/tategb/tatealg"
)

func TestIdealContainsGenerators(t *testing.T) {
	ring := fieldRing()
	f1 := mustParse(t, ring, 20, "x^2 + y")
	f2 := mustParse(t, ring, 20, "x*y + x")

	ideal := tategb.NewIdeal[tatealg.Term, *tatealg.Element]([]*tatealg.Element{f1, f2}, ring, ring)

	ok, err := ideal.Contains(f1, tategb.GroebnerBasisOptions{})
	require.NoError(t, err)
	require.True(t, ok, "an ideal must contain its own generators")

	zero := tatealg.Zero(ring, 20)
	ok, err = ideal.Contains(zero, tategb.GroebnerBasisOptions{})
	require.NoError(t, err)
	require.True(t, ok, "every ideal contains zero")
}

func TestIdealCachesBasisAcrossCalls(t *testing.T) {
	ring := fieldRing()
	f1 := mustParse(t, ring, 20, "x^2 + y")
	ideal := tategb.NewIdeal[tatealg.Term, *tatealg.Element]([]*tatealg.Element{f1}, ring, ring)

	opts := tategb.GroebnerBasisOptions{Precision: 15, Algorithm: tategb.AlgorithmBuchberger}
	basis1, err := ideal.GroebnerBasis(opts)
	require.NoError(t, err)
	basis2, err := ideal.GroebnerBasis(opts)
	require.NoError(t, err)
	require.Equal(t, len(basis1), len(basis2))
}

func TestIdealUnknownAlgorithmFails(t *testing.T) {
	ring := fieldRing()
	f1 := mustParse(t, ring, 20, "x + 1")
	ideal := tategb.NewIdeal[tatealg.Term, *tatealg.Element]([]*tatealg.Element{f1}, ring, ring)

	_, err := ideal.GroebnerBasis(tategb.GroebnerBasisOptions{Algorithm: tategb.Algorithm("bogus")})
	require.Error(t, err)
	tgErr, ok := tategb.AsError(err)
	require.True(t, ok)
	require.Equal(t, tategb.KindNotImplementedAlgorithm, tgErr.Kind)
}

func TestIdealIsSaturatedOverField(t *testing.T) {
	ring := fieldRing()
	f1 := mustParse(t, ring, 20, "x + 1")
	ideal := tategb.NewIdeal[tatealg.Term, *tatealg.Element]([]*tatealg.Element{f1}, ring, ring)

	ok, err := ideal.IsSaturated(tategb.GroebnerBasisOptions{})
	require.NoError(t, err)
	require.True(t, ok, "every ideal over a field base is trivially saturated")
}

func TestIdealSaturateOverIntegersIsIdempotent(t *testing.T) {
	ring := tatealg.NewIntegerRing(3, tatealg.Deglex, []string{"x", "y"})
	f1 := mustParse(t, ring, 20, "3*x + 9")
	ideal := tategb.NewIdeal[tatealg.Term, *tatealg.Element]([]*tatealg.Element{f1}, ring, ring)

	unsatOK, err := ideal.IsSaturated(tategb.GroebnerBasisOptions{Algorithm: tategb.AlgorithmBuchbergerIntegral})
	require.NoError(t, err)
	require.False(t, unsatOK, "3*x + 9 has leading valuation 1, so the ideal is not yet saturated")

	sat, err := ideal.Saturate(tategb.GroebnerBasisOptions{Algorithm: tategb.AlgorithmBuchbergerIntegral})
	require.NoError(t, err)

	satOK, err := sat.IsSaturated(tategb.GroebnerBasisOptions{Algorithm: tategb.AlgorithmBuchbergerIntegral})
	require.NoError(t, err)
	require.True(t, satOK, "saturation must produce an ideal whose leading coefficients are units")

	sat2, err := sat.Saturate(tategb.GroebnerBasisOptions{Algorithm: tategb.AlgorithmBuchbergerIntegral})
	require.NoError(t, err)

	ok, err := sat.ContainsIdeal(sat2, tategb.GroebnerBasisOptions{Algorithm: tategb.AlgorithmBuchbergerIntegral})
	require.NoError(t, err)
	require.True(t, ok)
}

// TestEndToEndScenarioOneFieldBasisShape exercises spec.md §8 scenario 1: a
// 3-adic field basis for f = 3x²+5xy², g = 5x²y+3 has three elements whose
// leading monomials are x³, x²y, y², in decreasing order.
func TestEndToEndScenarioOneFieldBasisShape(t *testing.T) {
	ring := tatealg.NewFieldRing(3, tatealg.Deglex, []string{"x", "y"})
	f := mustParse(t, ring, 10, "3*x^2 + 5*x*y^2")
	g := mustParse(t, ring, 10, "5*x^2*y + 3")
	ideal := tategb.NewIdeal[tatealg.Term, *tatealg.Element]([]*tatealg.Element{f, g}, ring, ring)

	basis, err := ideal.GroebnerBasis(tategb.GroebnerBasisOptions{Precision: 10, Algorithm: tategb.AlgorithmBuchberger})
	require.NoError(t, err)
	require.Len(t, basis, 3)

	wantExponents := [][]int{{3, 0}, {2, 1}, {0, 2}}
	for i, g := range basis {
		require.Truef(t, leadingCoefficientIsOne(t, g), "basis element %d must be monic in field mode", i)
		require.Equal(t, wantExponents[i], g.LeadingTerm().Exponent(), "basis element %d has an unexpected leading monomial", i)
	}
}

// TestEndToEndScenarioTwoIntegerBasisShapeAndSaturation exercises spec.md §8
// scenario 2: the same generators over the ring of integers produce a
// four-element, unsaturated basis, whose saturation has integral leading
// coefficients equal to 1 (i.e. the saturated basis is monic).
func TestEndToEndScenarioTwoIntegerBasisShapeAndSaturation(t *testing.T) {
	ring := tatealg.NewIntegerRing(3, tatealg.Deglex, []string{"x", "y"})
	f := mustParse(t, ring, 10, "3*x^2 + 5*x*y^2")
	g := mustParse(t, ring, 10, "5*x^2*y + 3")
	ideal := tategb.NewIdeal[tatealg.Term, *tatealg.Element]([]*tatealg.Element{f, g}, ring, ring)

	opts := tategb.GroebnerBasisOptions{Precision: 10, Algorithm: tategb.AlgorithmBuchbergerIntegral}
	basis, err := ideal.GroebnerBasis(opts)
	require.NoError(t, err)
	require.Len(t, basis, 4)

	wantShapes := map[[2]int]bool{{2, 1}: true, {1, 2}: true, {3, 0}: true, {0, 2}: true}
	for _, g := range basis {
		exp := g.LeadingTerm().Exponent()
		require.Truef(t, wantShapes[[2]int{exp[0], exp[1]}], "unexpected leading monomial %v in scenario-2 integer basis", exp)
	}

	satOK, err := ideal.IsSaturated(opts)
	require.NoError(t, err)
	require.False(t, satOK, "scenario 2's integer basis is not saturated")

	sat, err := ideal.Saturate(opts)
	require.NoError(t, err)
	satBasis, err := sat.GroebnerBasis(opts)
	require.NoError(t, err)
	require.Len(t, satBasis, 4)
	for i, g := range satBasis {
		require.Zerof(t, g.Valuation(), "saturated basis element %d must have valuation 0 (leading coefficient 1)", i)
		exp := g.LeadingTerm().Exponent()
		require.Truef(t, wantShapes[[2]int{exp[0], exp[1]}], "unexpected leading monomial %v in scenario-2 saturated basis", exp)
	}
}

// TestEndToEndScenarioThreeIntegralModeIsAtLeastAsPreciseAsField exercises
// spec.md §8 scenario 3: over the 2-adic field at precision 5, the integral
// driver's basis is at least as precise, term by term, as the field driver's
// basis on the same generators, and strictly more precise on at least one
// term for this particular input.
func TestEndToEndScenarioThreeIntegralModeIsAtLeastAsPreciseAsField(t *testing.T) {
	ring := tatealg.NewFieldRing(2, tatealg.Deglex, []string{"x", "y"})
	f := mustParse(t, ring, 5, "x^2*y^6 + x^4 + 25*y^2 + 2*x^3*y^3 + 10*x*y^4 + 10*x^2*y")
	g := mustParse(t, ring, 5, "x^4*y^5 + x^5*y^2 + x^4 + 5*x^2*y + 2*x^5*y^4 + 2*x^6*y + 6*x^3*y^3")
	h := mustParse(t, ring, 5, "2*x^6*y^4 + 2*x^4 + 4*x^5*y^2 + 8*x^8*y^2 + 8*x^7*y^3 + 8*x^6*y")

	integralBasis, err := tategb.Buchberger[tatealg.Term, *tatealg.Element](
		[]*tatealg.Element{f, g, h}, ring, ring,
		tategb.BuchbergerOptions{Precision: 5, Mode: tategb.Integral},
	)
	require.NoError(t, err)
	fieldBasis, err := tategb.Buchberger[tatealg.Term, *tatealg.Element](
		[]*tatealg.Element{f, g, h}, ring, ring,
		tategb.BuchbergerOptions{Precision: 5, Mode: tategb.Field},
	)
	require.NoError(t, err)

	require.Equal(t, len(integralBasis), len(fieldBasis), "both drivers must agree on basis shape")
	strictlyMorePrecise := false
	for i := range integralBasis {
		require.Equal(t, integralBasis[i].LeadingTerm().Exponent(), fieldBasis[i].LeadingTerm().Exponent(),
			"basis element %d's leading monomial must agree between drivers", i)
		require.GreaterOrEqualf(t, integralBasis[i].PrecisionAbsolute(), fieldBasis[i].PrecisionAbsolute(),
			"basis element %d: integral-mode precision must be at least field-mode precision", i)
		if integralBasis[i].PrecisionAbsolute() > fieldBasis[i].PrecisionAbsolute() {
			strictlyMorePrecise = true
		}
	}
	require.True(t, strictlyMorePrecise, "integral mode must be strictly more precise than field mode for at least one element")
}

// TestEndToEndScenarioFourIdealOrdering exercises spec.md §8 scenario 4:
// A.ideal([f]) < A.ideal([f,g]), A.ideal([1]) < A.ideal([f,g]) is false, and
// A.ideal([f,g]) < A.ideal([1]) is true.
func TestEndToEndScenarioFourIdealOrdering(t *testing.T) {
	ring := fieldRing()
	f := mustParse(t, ring, 20, "x^2 + y")
	g := mustParse(t, ring, 20, "x*y + x")
	one := mustParse(t, ring, 20, "1")

	iF := tategb.NewIdeal[tatealg.Term, *tatealg.Element]([]*tatealg.Element{f}, ring, ring)
	iFG := tategb.NewIdeal[tatealg.Term, *tatealg.Element]([]*tatealg.Element{f, g}, ring, ring)
	iOne := tategb.NewIdeal[tatealg.Term, *tatealg.Element]([]*tatealg.Element{one}, ring, ring)

	ok, err := tategb.Compare[tatealg.Term, *tatealg.Element](iF, iFG, tategb.OpLess, tategb.GroebnerBasisOptions{})
	require.NoError(t, err)
	require.True(t, ok, "A.ideal([f]) < A.ideal([f,g])")

	ok, err = tategb.Compare[tatealg.Term, *tatealg.Element](iOne, iFG, tategb.OpLess, tategb.GroebnerBasisOptions{})
	require.NoError(t, err)
	require.False(t, ok, "A.ideal([1]) < A.ideal([f,g]) must be false")

	ok, err = tategb.Compare[tatealg.Term, *tatealg.Element](iFG, iOne, tategb.OpLess, tategb.GroebnerBasisOptions{})
	require.NoError(t, err)
	require.True(t, ok, "A.ideal([f,g]) < A.ideal([1])")
}

// TestEndToEndScenarioFiveF4IsNotImplemented exercises spec.md §8 scenario 5:
// requesting algorithm="F4" fails with KindNotImplementedAlgorithm.
func TestEndToEndScenarioFiveF4IsNotImplemented(t *testing.T) {
	ring := fieldRing()
	f1 := mustParse(t, ring, 20, "x + 1")
	ideal := tategb.NewIdeal[tatealg.Term, *tatealg.Element]([]*tatealg.Element{f1}, ring, ring)

	_, err := ideal.GroebnerBasis(tategb.GroebnerBasisOptions{Algorithm: tategb.Algorithm("F4")})
	require.Error(t, err)
	tgErr, ok := tategb.AsError(err)
	require.True(t, ok)
	require.Equal(t, tategb.KindNotImplementedAlgorithm, tgErr.Kind)
}

func TestCompareEqualIdeals(t *testing.T) {
	ring := fieldRing()
	f1 := mustParse(t, ring, 20, "x^2 + y")
	i1 := tategb.NewIdeal[tatealg.Term, *tatealg.Element]([]*tatealg.Element{f1}, ring, ring)
	i2 := tategb.NewIdeal[tatealg.Term, *tatealg.Element]([]*tatealg.Element{f1}, ring, ring)

	ok, err := tategb.Compare[tatealg.Term, *tatealg.Element](i1, i2, tategb.OpEqual, tategb.GroebnerBasisOptions{})
	require.NoError(t, err)
	require.True(t, ok)
}
