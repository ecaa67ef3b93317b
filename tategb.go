// Package tategb implements the valuation-aware Gröbner-basis engine for
// ideals of Tate algebras over a complete discrete valuation ring (DVR) and
// its fraction field.
//
// The package does not construct Tate algebras, terms, or elements itself:
// those are external collaborators, consumed through the [Term], [Element],
// [BaseRing], and [TermMonoid] interfaces below. Callers supply a concrete
// algebra (see the sibling tatealg package for a reference implementation)
// and this package computes canonical Gröbner bases and the ideal-theoretic
// operations built on top of them: membership, inclusion, comparison,
// saturation, and the is-saturated predicate.
package tategb

import "iter"

// Mode selects whether divisibility and normalisation account for the
// π-valuation of the dividing term (Integral, working over the valuation
// ring O) or only for the monomial (Field, working over the fraction field
// K).
type Mode int

const (
	// Field mode: divisibility and normalisation consider only monomials;
	// the computed basis is monic.
	Field Mode = iota
	// Integral mode: divisibility also requires the dividing term to have
	// valuation no greater than the dividend's; over a ring-of-integers
	// base, leading coefficients are normalised to exact powers of the
	// uniformizer. Over a field base the unit part of the leading
	// coefficient is not normalised.
	Integral
)

func (m Mode) String() string {
	if m == Integral {
		return "integral"
	}
	return "field"
}

// Algorithm names a Gröbner-basis algorithm.
type Algorithm string

const (
	AlgorithmBuchberger         Algorithm = "buchberger"
	AlgorithmBuchbergerIntegral Algorithm = "buchberger-integral"
	AlgorithmF5                 Algorithm = "F5"
)

// Term is the term kernel this engine consumes. Implementations are
// immutable values. Term is generic over itself so that LCM, Quotient, and
// ordering comparisons are typed without an intermediate interface{} cast.
type Term[T any] interface {
	// LeadValuation returns the coefficient valuation of the term, or
	// [ValuationInfinity] for the zero term.
	LeadValuation() int
	// Exponent returns the monomial exponent vector.
	Exponent() []int
	// Compare returns -1, 0, or 1 as t is less than, equal to, or greater
	// than other under the Tate term order (valuation first, then the
	// ambient monomial order; see SPEC_FULL.md §6's Open Question
	// resolution).
	Compare(other T) int
	// LCM returns the least common multiple of t and other's monomials,
	// with valuation min(t, other).
	LCM(other T) T
	// Divides reports whether t divides other. In Integral mode this also
	// requires t's valuation to be <= other's.
	Divides(other T, mode Mode) bool
	// IsCoprimeWith reports whether t and other's monomials share no
	// common variable.
	IsCoprimeWith(other T) bool
	// Quotient returns other / t as a monomial quotient; ok is false if t
	// does not monomially divide other.
	Quotient(other T) (q T, ok bool)
}

// ValuationInfinity represents the valuation of the zero term/element.
const ValuationInfinity = int(^uint(0) >> 1) // math.MaxInt without importing math for one constant

// Element is the element arithmetic kernel this engine consumes.
// Implementations are immutable values: every method that would mutate
// state instead returns a new Element.
type Element[T any, E any] interface {
	// Terms iterates the terms of the element, leading term first.
	Terms() iter.Seq[T]
	// LeadingTerm returns the element's leading term. Panics if IsZero.
	LeadingTerm() T
	// Valuation returns the valuation of the leading coefficient
	// (equivalently LeadingTerm().LeadValuation()).
	Valuation() int
	// PrecisionAbsolute returns the absolute precision bound N, meaning
	// the element is known modulo O(π^N).
	PrecisionAbsolute() int
	// AddBigOh returns the element truncated to absolute precision n (no
	// increase in precision is possible; n above the current precision
	// is a no-op).
	AddBigOh(n int) E
	// IsZero reports whether every term has been truncated away.
	IsZero() bool
	// Equal reports value equality, including precision.
	Equal(other E) bool
	// Monic returns the element divided by its leading coefficient.
	Monic() E
	// PositivePiShift returns the element multiplied by π^k (k > 0).
	PositivePiShift(k int) E
	// SPolynomial returns the S-polynomial of the element and other.
	SPolynomial(other E) E
	// ScalarMulTerm returns the element multiplied by the given term.
	ScalarMulTerm(t T) E
	// QuoRem divides the element by the ordered family divisors. If
	// reduceTail, every term of the remainder (not just the leading one)
	// is guaranteed non-divisible by any divisor's leading term.
	QuoRem(divisors []E, reduceTail bool, mode Mode) (quotients []E, remainder E)
}

// BaseRing is the base-ring capability this engine consumes: whether the
// base is a field (K) or a genuine DVR (O), and the normalisation that
// rescales an element so its leading coefficient is an exact power of the
// uniformizer (spec.md §4.5's ring-of-integers case). This is exposed as a
// single element-level operation, rather than as an inverse-of-unit
// primitive on Term, because a Term (spec.md §3) carries only a monomial
// and a coefficient *valuation* — the actual unit part of a coefficient is
// Element/coefficient-kernel state the engine never otherwise inspects.
type BaseRing[E any] interface {
	IsField() bool
	// NormalizeLeadingUnit returns e multiplied by the inverse of the unit
	// part of its leading coefficient.
	NormalizeLeadingUnit(e E) E
}

// TermMonoid supplies the multiplicative identity term, used to seed
// products during canonicalisation and signature bookkeeping, and the
// term-construction capability of spec.md §6 ("Term: construction from
// exponent+valuation, ..."), needed by the F5 driver's signature
// bookkeeping to build the true monomial product of two terms (exponents
// summed, valuations summed) rather than their LCM.
type TermMonoid[T any] interface {
	One() T
	// FromExponentValuation builds a term from an explicit exponent
	// vector and coefficient valuation, under the monoid's own monomial
	// order, with no further normalisation.
	FromExponentValuation(exp []int, val int) T
}
