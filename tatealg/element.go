// Package tatealg is a concrete Tate algebra over a rational prime
// uniformizer, instantiating the tategb engine's Term, Element, BaseRing,
// and TermMonoid interfaces: the reference algebra the teacher's own
// field package plays for nag's generic Field[K] engine.
package tatealg

import (
	"fmt"
	"iter"
	"math/big"
	"sort"

	"github.com/jba/omap"

	"github.com/padicgb/tategb"
)

// Element is the element arithmetic kernel implementation consumed by the
// tategb engine via its generic Element interface: a finite sum of
// monomial terms whose coefficients are exact big.Rat values, each tagged
// by a single element-wide absolute precision bound, exactly the
// representation SPEC_FULL.md §6 records as the resolved precision
// Open Question. The backing store is a jba/omap ordered map keyed by
// monomial under the pure monomial order, the same structural choice
// nag.Polynomial makes for its term map; the Tate order (valuation-first)
// used by the engine is computed on demand rather than baked into the
// map's own ordering, since it depends on each coefficient's actual value.
type Element struct {
	ring *Ring
	m    *omap.MapFunc[string, termEntry]
	prec int
}

// termEntry is one stored (monomial, coefficient) pair; the map key is the
// monomial's canonical string so the map's own order (pure lexicographic
// on that string) never needs to agree with the Tate order.
type termEntry struct {
	exp  Monomial
	coef *big.Rat
}

func keyOrder(a, b string) int {
	if a == b {
		return 0
	}
	if a < b {
		return -1
	}
	return 1
}

// CoeffTerm is one input term to NewElement: a coefficient at a monomial.
type CoeffTerm struct {
	Exp  Monomial
	Coef *big.Rat
}

// NewElement builds an element over ring from terms, truncated to the
// given absolute precision.
func NewElement(ring *Ring, prec int, terms ...CoeffTerm) *Element {
	e := &Element{ring: ring, m: omap.NewMapFunc[string, termEntry](keyOrder), prec: prec}
	for _, t := range terms {
		e.addTerm(t.Exp, t.Coef)
	}
	e.applyPrecision()
	return e
}

// Zero returns the zero element of ring at the given absolute precision.
func Zero(ring *Ring, prec int) *Element {
	return NewElement(ring, prec)
}

func (e *Element) clone() *Element {
	z := &Element{ring: e.ring, m: omap.NewMapFunc[string, termEntry](keyOrder), prec: e.prec}
	for k, v := range e.m.All() {
		z.m.Set(k, termEntry{exp: append(Monomial(nil), v.exp...), coef: new(big.Rat).Set(v.coef)})
	}
	return z
}

func (e *Element) addTerm(exp Monomial, c *big.Rat) {
	if c.Sign() == 0 {
		return
	}
	key := monomialKey(exp)
	if cur, ok := e.m.Get(key); ok {
		sum := new(big.Rat).Add(cur.coef, c)
		if sum.Sign() == 0 {
			e.m.Delete(key)
		} else {
			e.m.Set(key, termEntry{exp: cur.exp, coef: sum})
		}
		return
	}
	e.m.Set(key, termEntry{exp: append(Monomial(nil), exp...), coef: new(big.Rat).Set(c)})
}

// applyPrecision drops every stored term whose coefficient valuation is at
// or beyond the element's absolute precision bound.
func (e *Element) applyPrecision() {
	var drop []string
	for k, v := range e.m.All() {
		if ratValuation(v.coef, e.ring.Prime) >= e.prec {
			drop = append(drop, k)
		}
	}
	for _, k := range drop {
		e.m.Delete(k)
	}
}

// sortedTerms returns the element's (Term, coefficient) pairs sorted
// strictly decreasing under the Tate term order.
func (e *Element) sortedTerms() []struct {
	t    Term
	coef *big.Rat
} {
	out := make([]struct {
		t    Term
		coef *big.Rat
	}, 0, e.m.Len())
	for _, v := range e.m.All() {
		t := Term{exp: v.exp, val: ratValuation(v.coef, e.ring.Prime), order: e.ring.Order}
		out = append(out, struct {
			t    Term
			coef *big.Rat
		}{t: t, coef: v.coef})
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].t.Compare(out[j].t) > 0
	})
	return out
}

func (e *Element) Terms() iter.Seq[Term] {
	sorted := e.sortedTerms()
	return func(yield func(Term) bool) {
		for _, st := range sorted {
			if !yield(st.t) {
				return
			}
		}
	}
}

func (e *Element) LeadingTerm() Term {
	sorted := e.sortedTerms()
	if len(sorted) == 0 {
		panic("tatealg: LeadingTerm of zero element")
	}
	return sorted[0].t
}

func (e *Element) leadingCoeff() *big.Rat {
	sorted := e.sortedTerms()
	if len(sorted) == 0 {
		return big.NewRat(0, 1)
	}
	return sorted[0].coef
}

func (e *Element) Valuation() int {
	if e.IsZero() {
		return tategb.ValuationInfinity
	}
	return e.LeadingTerm().LeadValuation()
}

func (e *Element) PrecisionAbsolute() int { return e.prec }

func (e *Element) AddBigOh(n int) *Element {
	z := e.clone()
	if n < z.prec {
		z.prec = n
	}
	z.applyPrecision()
	return z
}

func (e *Element) IsZero() bool { return e.m.Len() == 0 }

func (e *Element) Equal(other *Element) bool {
	if e.prec != other.prec {
		return false
	}
	if e.m.Len() != other.m.Len() {
		return false
	}
	for k, v := range e.m.All() {
		ov, ok := other.m.Get(k)
		if !ok || v.coef.Cmp(ov.coef) != 0 {
			return false
		}
	}
	return true
}

// Monic returns e divided by its leading coefficient (field-mode
// normalisation, spec.md §4.5).
func (e *Element) Monic() *Element {
	if e.IsZero() {
		return e
	}
	inv := new(big.Rat).Inv(e.leadingCoeff())
	return e.scalarMulRat(inv)
}

// PositivePiShift multiplies e by p^k, k > 0; the absolute precision rises
// by k along with every term's valuation.
func (e *Element) PositivePiShift(k int) *Element {
	if k <= 0 {
		panic("tatealg: PositivePiShift requires k > 0")
	}
	z := e.scalarMulRat(pPow(e.ring.Prime, k))
	z.prec = tategb.AddClamped(e.prec, k)
	return z
}

// scalarMulRat multiplies every coefficient of e by c, an exact rational
// (not necessarily a power of the uniformizer); used internally by Monic,
// NormalizeLeadingUnit, and the coefficient-cancelling construction of
// SPolynomial and QuoRem.
func (e *Element) scalarMulRat(c *big.Rat) *Element {
	z := &Element{ring: e.ring, m: omap.NewMapFunc[string, termEntry](keyOrder), prec: e.prec}
	for k, v := range e.m.All() {
		nc := new(big.Rat).Mul(v.coef, c)
		if nc.Sign() == 0 {
			continue
		}
		z.m.Set(k, termEntry{exp: v.exp, coef: nc})
	}
	return z
}

// shiftMonomial multiplies every monomial of e by exp, leaving coefficients
// untouched.
func (e *Element) shiftMonomial(exp Monomial) *Element {
	z := &Element{ring: e.ring, m: omap.NewMapFunc[string, termEntry](keyOrder), prec: e.prec}
	for _, v := range e.m.All() {
		ne := monomialAdd(v.exp, exp)
		z.m.Set(monomialKey(ne), termEntry{exp: ne, coef: new(big.Rat).Set(v.coef)})
	}
	return z
}

func (e *Element) sub(other *Element) *Element {
	z := e.clone()
	for _, v := range other.m.All() {
		z.addTerm(v.exp, new(big.Rat).Neg(v.coef))
	}
	if other.prec < z.prec {
		z.prec = other.prec
	}
	z.applyPrecision()
	return z
}

// ScalarMulTerm multiplies e by the canonical representative of t:
// p^(t.LeadValuation()) times the monomial t.Exponent(), with no unit part
// (DESIGN.md's element.go note on why ScalarMulTerm never needs a full
// coefficient, only the Term's own monomial and valuation).
func (e *Element) ScalarMulTerm(t Term) *Element {
	shifted := e.shiftMonomial(t.exp)
	if t.val == 0 {
		return shifted
	}
	return shifted.scalarMulRat(pPow(e.ring.Prime, t.val))
}

// SPolynomial returns the S-polynomial of e and other: the classical
// commutative-algebra construction (cancel leading monomials exactly,
// using the real leading-coefficient ratio so the leading terms cancel
// bit-for-bit), independent of the Tate valuation order used elsewhere —
// the valuation of the result's own leading term falls out naturally once
// the cancelling coefficients are multiplied through.
func (e *Element) SPolynomial(other *Element) *Element {
	lf, cf := e.LeadingTerm(), e.leadingCoeff()
	lg, cg := other.LeadingTerm(), other.leadingCoeff()
	lcmExp := monomialMax(lf.exp, lg.exp)
	monoF, _ := monomialSub(lcmExp, lf.exp)
	monoG, _ := monomialSub(lcmExp, lg.exp)

	termF := e.shiftMonomial(monoF).scalarMulRat(cg)
	termG := other.shiftMonomial(monoG).scalarMulRat(cf)
	result := termF.sub(termG)
	if other.prec < result.prec {
		result.prec = other.prec
	}
	result.applyPrecision()
	return result
}

// QuoRem implements the reduction loop of spec.md §4.2, generalised from
// nag.Divide: repeatedly take the running remainder's current leading term
// (under the Tate order), look for a divisor whose leading term divides it
// under mode, and subtract the exact multiple that cancels it. When
// reduceTail is false, reduction stops as soon as the current leading term
// is not divisible by any divisor, and the rest of the working value is
// dumped into the remainder unreduced, matching classical non-tail
// reduction; when true, the loop continues past irreducible terms instead
// of stopping, so every term of the final remainder is checked.
func (e *Element) QuoRem(divisors []*Element, reduceTail bool, mode tategb.Mode) ([]*Element, *Element) {
	quotients := make([]*Element, len(divisors))
	for i := range quotients {
		quotients[i] = Zero(e.ring, e.prec)
	}
	remainder := Zero(e.ring, e.prec)
	v := e.clone()

	for !v.IsZero() {
		lt := v.LeadingTerm()
		lc := v.leadingCoeff()

		basis := -1
		var quotExp Monomial
		for i, g := range divisors {
			if g == nil || g.IsZero() {
				continue
			}
			gl := g.LeadingTerm()
			if !gl.Divides(lt, mode) {
				continue
			}
			qexp, ok := monomialSub(lt.exp, gl.exp)
			if !ok {
				continue
			}
			basis, quotExp = i, qexp
			break
		}

		if basis == -1 {
			if !reduceTail {
				remainder = remainder.addElementCopy(v)
				break
			}
			remainder.addTerm(lt.exp, lc)
			v.addTerm(lt.exp, new(big.Rat).Neg(lc))
			continue
		}

		g := divisors[basis]
		gc := g.leadingCoeff()
		coef := new(big.Rat).Quo(lc, gc)

		quotients[basis].addTerm(quotExp, coef)
		scaled := g.shiftMonomial(quotExp).scalarMulRat(coef)
		v = v.sub(scaled)
	}

	for i := range quotients {
		quotients[i].applyPrecision()
	}
	remainder.applyPrecision()
	return quotients, remainder
}

// Mul returns the product e*other, used by the expression evaluator
// (tatealg/parse.go) to build elements from parsed trees; the engine
// itself never needs a general product, only SPolynomial and ScalarMulTerm.
func (e *Element) Mul(other *Element) *Element {
	z := Zero(e.ring, e.prec)
	if e.IsZero() || other.IsZero() {
		z.prec = e.prec
		if other.prec < z.prec {
			z.prec = other.prec
		}
		return z
	}
	for _, a := range e.m.All() {
		for _, b := range other.m.All() {
			z.addTerm(monomialAdd(a.exp, b.exp), new(big.Rat).Mul(a.coef, b.coef))
		}
	}
	resultPrec := tategb.AddClamped(e.prec, ratValuation(other.leadingCoeff(), e.ring.Prime))
	alt := tategb.AddClamped(other.prec, ratValuation(e.leadingCoeff(), e.ring.Prime))
	if alt < resultPrec {
		resultPrec = alt
	}
	z.prec = resultPrec
	z.applyPrecision()
	return z
}

// Add returns the sum e+other.
func (e *Element) Add(other *Element) *Element {
	return e.addElementCopy(other)
}

// Neg returns -e.
func (e *Element) Neg() *Element {
	return e.scalarMulRat(big.NewRat(-1, 1))
}

func (e *Element) addElementCopy(other *Element) *Element {
	z := e.clone()
	for _, v := range other.m.All() {
		z.addTerm(v.exp, v.coef)
	}
	if other.prec < z.prec {
		z.prec = other.prec
	}
	z.applyPrecision()
	return z
}

// String renders e in a form similar to the teacher's Polynomial.String,
// generalised to p-adic coefficients and commutative multi-variable
// monomials.
func (e *Element) String() string {
	if e.IsZero() {
		return "O(pi^" + fmt.Sprint(e.prec) + ")"
	}
	out := ""
	for _, st := range e.sortedTerms() {
		out += fmt.Sprintf(" + (%s)", st.coef.RatString())
		for i, exp := range st.t.exp {
			if exp == 0 {
				continue
			}
			name := fmt.Sprintf("x%d", i)
			if e.ring != nil && i < len(e.ring.Vars) {
				name = e.ring.Vars[i]
			}
			if exp == 1 {
				out += "*" + name
			} else {
				out += fmt.Sprintf("*%s^%d", name, exp)
			}
		}
	}
	return out
}
