package tategb

import (
	"fmt"

	deadlock "github.com/sasha-s/go-deadlock"
)

// cacheKey is the Gröbner basis memoisation key of spec.md §5: the tuple
// (precision, algorithm, mode).
type cacheKey struct {
	precision int
	algorithm Algorithm
	mode      Mode
}

func (k cacheKey) String() string {
	return fmt.Sprintf("precision=%d algorithm=%s mode=%s", k.precision, k.algorithm, k.mode)
}

// Ideal is a finite generator list plus a memoised canonical Gröbner basis
// (spec.md §3). The basis cache is written at most once per cacheKey;
// concurrent readers see either the uncomputed sentinel or the fully
// computed basis, never a partial result (spec.md §5).
//
// The cache's mutex is a deadlock-detecting one rather than a plain
// sync.Mutex: spec.md §5 documents as an explicit invariant that "no
// operation is re-entrant with respect to the same ideal's basis cache",
// which is exactly the condition go-deadlock is built to surface quickly
// (as a logged stack trace) instead of as a silent hang.
type Ideal[T Term[T], E Element[T, E]] struct {
	Generators []E
	Ring       BaseRing[E]
	Monoid     TermMonoid[T]

	mu    deadlock.Mutex
	cache map[cacheKey][]E
}

// DefaultPrecision is used by GroebnerBasis and the convenience methods
// below when the caller does not specify one.
const DefaultPrecision = 20

// NewIdeal returns an ideal generated by gens.
func NewIdeal[T Term[T], E Element[T, E]](gens []E, ring BaseRing[E], monoid TermMonoid[T]) *Ideal[T, E] {
	return &Ideal[T, E]{Generators: gens, Ring: ring, Monoid: monoid}
}

// GroebnerBasisOptions configures a single groebner_basis call (spec.md
// §6).
type GroebnerBasisOptions struct {
	Precision int // 0 means DefaultPrecision
	Algorithm Algorithm
	Verbose   int
	Cancel    CancelToken
	Logger    *Verbose
}

// GroebnerBasis returns the canonical Gröbner basis of the ideal, computing
// and caching it on first need for the given (precision, algorithm)
// combination. Unknown algorithms fail with KindNotImplementedAlgorithm.
// On cancellation the cache is left untouched.
func (I *Ideal[T, E]) GroebnerBasis(opts GroebnerBasisOptions) ([]E, error) {
	precision := opts.Precision
	if precision == 0 {
		precision = DefaultPrecision
	}
	if precision < 0 {
		return nil, errInvalidPrecision(precision)
	}
	algo := opts.Algorithm
	if algo == "" {
		algo = AlgorithmBuchberger
	}
	mode := Field
	if algo == AlgorithmBuchbergerIntegral {
		mode = Integral
	}

	key := cacheKey{precision: precision, algorithm: algo, mode: mode}

	I.mu.Lock()
	if I.cache == nil {
		I.cache = make(map[cacheKey][]E)
	}
	if cached, ok := I.cache[key]; ok {
		I.mu.Unlock()
		return cached, nil
	}
	I.mu.Unlock()

	verbose := opts.Logger
	if verbose == nil {
		verbose = &Verbose{Level: opts.Verbose}
	}

	var basis []E
	var err error
	switch algo {
	case AlgorithmBuchberger, AlgorithmBuchbergerIntegral:
		basis, err = Buchberger[T, E](I.Generators, I.Ring, I.Monoid, BuchbergerOptions{
			Precision: precision, Mode: mode, Cancel: opts.Cancel, Verbose: verbose,
		})
	case AlgorithmF5:
		basis, err = F5[T, E](I.Generators, I.Ring, I.Monoid, F5Options{
			Precision: precision, Mode: Field, Cancel: opts.Cancel, Verbose: verbose,
		})
	default:
		return nil, errNotImplementedAlgorithm(algo)
	}
	if err != nil {
		return nil, err
	}

	I.mu.Lock()
	I.cache[key] = basis
	I.mu.Unlock()
	return basis, nil
}

// Contains reports whether x is a member of the ideal: x reduces to zero
// against the ideal's canonical Gröbner basis.
func (I *Ideal[T, E]) Contains(x E, opts GroebnerBasisOptions) (bool, error) {
	basis, err := I.GroebnerBasis(opts)
	if err != nil {
		return false, err
	}
	if len(basis) == 0 {
		return x.IsZero(), nil
	}
	// requireNonzero=true: membership must certify that x genuinely
	// reduces to zero, not merely that it was truncated away by a
	// precision shortfall (spec.md §7's KindPrecisionExhausted).
	_, r, err := reduce[T, E](x, basis, modeOf(opts), false, true)
	if err != nil {
		return false, err
	}
	return r.IsZero(), nil
}

// ContainsIdeal reports whether every generator of other is a member of I
// (spec.md §4.6's Contains).
func (I *Ideal[T, E]) ContainsIdeal(other *Ideal[T, E], opts GroebnerBasisOptions) (bool, error) {
	for _, g := range other.Generators {
		ok, err := I.Contains(g, opts)
		if err != nil {
			return false, err
		}
		if !ok {
			return false, nil
		}
	}
	return true, nil
}

// CompareOp is a rich comparison operator for ideal comparison, lifted from
// Contains per spec.md §4.6.
type CompareOp int

const (
	OpLess CompareOp = iota
	OpLessEqual
	OpEqual
	OpGreaterEqual
	OpGreater
	OpNotEqual
)

// Compare evaluates `I op other`, expressing every rich comparison operator
// via two-way containment.
func Compare[T Term[T], E Element[T, E]](I, other *Ideal[T, E], op CompareOp, opts GroebnerBasisOptions) (bool, error) {
	iInOther, err := other.ContainsIdeal(I, opts)
	if err != nil {
		return false, err
	}
	otherInI, err := I.ContainsIdeal(other, opts)
	if err != nil {
		return false, err
	}

	switch op {
	case OpLessEqual:
		return iInOther, nil
	case OpGreaterEqual:
		return otherInI, nil
	case OpEqual:
		return iInOther && otherInI, nil
	case OpNotEqual:
		return !(iInOther && otherInI), nil
	case OpLess:
		return iInOther && !otherInI, nil
	case OpGreater:
		return otherInI && !iInOther, nil
	default:
		return false, errNotImplementedAlgorithm(Algorithm(fmt.Sprintf("compare-op-%d", op)))
	}
}

// IsSaturated reports whether the ideal equals its own saturation
// (spec.md §4.6): always true over a field base; over an integer base,
// true iff every element of the canonical basis has valuation 0.
func (I *Ideal[T, E]) IsSaturated(opts GroebnerBasisOptions) (bool, error) {
	if I.Ring.IsField() {
		return true, nil
	}
	basis, err := I.GroebnerBasis(opts)
	if err != nil {
		return false, err
	}
	for _, g := range basis {
		if g.Valuation() != 0 {
			return false, nil
		}
	}
	return true, nil
}

// Saturate returns the saturation {f : exists n, π^n f in I} of the ideal
// (spec.md §4.6): the identity over a field base, or the ideal generated
// by the monic rescaling of each canonical-basis element over an integer
// base.
func (I *Ideal[T, E]) Saturate(opts GroebnerBasisOptions) (*Ideal[T, E], error) {
	if I.Ring.IsField() {
		return I, nil
	}
	basis, err := I.GroebnerBasis(opts)
	if err != nil {
		return nil, err
	}
	rescaled := make([]E, len(basis))
	for i, g := range basis {
		rescaled[i] = g.Monic()
	}
	return NewIdeal[T, E](rescaled, I.Ring, I.Monoid), nil
}

func modeOf(opts GroebnerBasisOptions) Mode {
	if opts.Algorithm == AlgorithmBuchbergerIntegral {
		return Integral
	}
	return Field
}
