package tatealg

import (
	"math/big"

	"github.com/padicgb/tategb"
)

// Ring is a concrete base ring for a Tate algebra over a rational prime
// uniformizer: either the fraction field K (Field true) or the ring of
// integers O (Field false), implementing the tategb.BaseRing[*Element]
// capability. It plays the role the teacher's field.prime type plays for
// nag.Field[K]: a single concrete coefficient domain instantiating the
// engine's generic interfaces.
type Ring struct {
	// Prime is the rational prime used as the Tate algebra's uniformizer.
	Prime int64
	// Field selects K (true) or O (false).
	Field bool
	// Order is the monomial order applied after valuation in the Tate
	// term order (SPEC_FULL.md §6's resolved Open Question).
	Order MonomialOrder
	// Vars names the algebra's variables, in exponent-vector order.
	Vars []string
}

// NewFieldRing returns the fraction-field base ring K.
func NewFieldRing(prime int64, order MonomialOrder, vars []string) *Ring {
	return &Ring{Prime: prime, Field: true, Order: order, Vars: vars}
}

// NewIntegerRing returns the ring-of-integers base ring O.
func NewIntegerRing(prime int64, order MonomialOrder, vars []string) *Ring {
	return &Ring{Prime: prime, Field: false, Order: order, Vars: vars}
}

func (r *Ring) IsField() bool { return r.Field }

// One returns the multiplicative identity term, satisfying
// tategb.TermMonoid[Term].
func (r *Ring) One() Term {
	return Term{exp: make(Monomial, len(r.Vars)), val: 0, order: r.Order}
}

// FromExponentValuation builds a term from an explicit exponent vector and
// valuation, satisfying tategb.TermMonoid[Term]'s construction capability
// (spec.md §6: "Term: construction from exponent+valuation").
func (r *Ring) FromExponentValuation(exp []int, val int) Term {
	return NewTerm(Monomial(exp), val, r.Order)
}

// NormalizeLeadingUnit rescales e so its leading coefficient is an exact
// power of the uniformizer, dividing out the unit part (spec.md §4.5's
// ring-of-integers normalisation).
func (r *Ring) NormalizeLeadingUnit(e *Element) *Element {
	if e.IsZero() {
		return e
	}
	lead := e.leadingCoeff()
	v := ratValuation(lead, r.Prime)
	unit := new(big.Rat).Quo(lead, pPow(r.Prime, v))
	inv := new(big.Rat).Inv(unit)
	return e.scalarMulRat(inv)
}

// intValuation returns the p-adic valuation of a non-zero big.Int.
func intValuation(n *big.Int, p int64) int {
	m := new(big.Int).Abs(n)
	if m.Sign() == 0 {
		return tategb.ValuationInfinity
	}
	bp := big.NewInt(p)
	v := 0
	q, rem := new(big.Int), new(big.Int)
	for {
		q.QuoRem(m, bp, rem)
		if rem.Sign() != 0 {
			break
		}
		m.Set(q)
		v++
	}
	return v
}

// ratValuation returns the p-adic valuation of a non-zero big.Rat, or
// tategb.ValuationInfinity for zero.
func ratValuation(x *big.Rat, p int64) int {
	if x.Sign() == 0 {
		return tategb.ValuationInfinity
	}
	return intValuation(x.Num(), p) - intValuation(x.Denom(), p)
}

// pPow returns p^v as an exact rational, accepting negative v.
func pPow(p int64, v int) *big.Rat {
	abs := v
	if abs < 0 {
		abs = -abs
	}
	pow := new(big.Int).Exp(big.NewInt(p), big.NewInt(int64(abs)), nil)
	if v < 0 {
		return new(big.Rat).SetFrac(big.NewInt(1), pow)
	}
	return new(big.Rat).SetFrac(pow, big.NewInt(1))
}
