package tategb

// F5Options configures the signature-based driver of spec.md §4.4.
type F5Options struct {
	Precision int
	Mode      Mode
	Cancel    CancelToken
	Verbose   *Verbose
}

// signedElement pairs a basis element with the signature term that
// produced it. A nil-ish zero signature (sigNone true) marks an element
// that was already in the basis when the current generator was taken up,
// per spec.md §4.4 ("Signatures are terms... with a 'null'
// sentinel for initial generators").
type signedElement[T Term[T], E Element[T, E]] struct {
	sig     T
	sigNone bool
	elem    E
}

type jPair[T Term[T], E Element[T, E]] struct {
	sig     T
	sigNone bool
	elem    E
}

// F5 computes a Gröbner basis using the signature-based driver of spec.md
// §4.4. Only the first (complete) signature variant is implemented; the
// vopot variant is explicitly out of scope per spec.md §9.
func F5[T Term[T], E Element[T, E]](f []E, ring BaseRing[E], monoid TermMonoid[T], opts F5Options) ([]E, error) {
	if opts.Precision <= 0 {
		return nil, errInvalidPrecision(opts.Precision)
	}
	v := opts.Verbose.orDefault()
	corr := v.begin("F5 mode=%s precision=%d", opts.Mode, opts.Precision)
	defer v.end(corr)

	var sgb []signedElement[T, E]

	for _, raw := range f {
		if err := opts.Cancel.check(); err != nil {
			return nil, err
		}
		if raw.IsZero() {
			continue
		}
		g := raw.AddBigOh(AddClamped(raw.Valuation(), opts.Precision))
		if g.IsZero() {
			continue
		}

		// Signatures are relative to the generator being added: the basis
		// built so far takes the null signature, the new generator the
		// unit term, and syzygy signatures start afresh.
		for i := range sgb {
			sgb[i].sigNone = true
		}
		var syzygies []T // syzygy signatures of this pass, for the syzygy criterion

		q := newJPairQueue[T, E]()
		one := monoid.One()
		q.push(jPair[T, E]{sig: one, sigNone: false, elem: g})
		for _, se := range sgb {
			if jp, ok := buildJPair[T, E](monoid, jPair[T, E]{sig: se.sig, sigNone: se.sigNone, elem: se.elem}, jPair[T, E]{sig: one, sigNone: false, elem: g}); ok {
				q.push(jp)
			}
		}

		for {
			if err := opts.Cancel.check(); err != nil {
				return nil, err
			}
			jp, ok := q.popMin()
			if !ok {
				break
			}

			if dividesAnySyzygy[T](jp.sig, jp.sigNone, syzygies) {
				v.logf(corr, 3, "dropped by syzygy criterion")
				continue
			}
			if coveredBy[T, E](monoid, jp, sgb) {
				v.logf(corr, 3, "dropped by cover criterion")
				continue
			}

			reducers := regularReducers[T, E](monoid, jp, sgb)
			_, r, err := reduce[T, E](jp.elem, reducers, opts.Mode, false, false)
			if err != nil {
				return nil, err
			}
			if r.IsZero() {
				if !jp.sigNone {
					syzygies = append(syzygies, jp.sig)
				}
				continue
			}

			newSE := signedElement[T, E]{sig: jp.sig, sigNone: jp.sigNone, elem: r}
			for _, se := range sgb {
				if jp2, ok := buildJPair[T, E](monoid, jPair[T, E]{sig: se.sig, sigNone: se.sigNone, elem: se.elem}, jPair[T, E]{sig: newSE.sig, sigNone: newSE.sigNone, elem: newSE.elem}); ok {
					q.push(jp2)
				}
			}
			sgb = append(sgb, newSE)
		}
	}

	result := make([]E, 0, len(sgb))
	for _, se := range sgb {
		result = append(result, se.elem)
	}
	v.logf(corr, 1, "signature loop finished with %d basis elements", len(result))
	return canonicalise[T, E](result, ring, monoid, opts.Mode, v, corr)
}

// buildJPair constructs the J-pair of two signed pairs per spec.md §4.4:
// let t = lcm(lead(v1), lead(v2)), ti = t/lead(vi); the J-pair is the one
// with the larger signature ti*si, or the non-null one if one signature is
// null. If the resulting signatures are equal, the pair is redundant and
// omitted (ok = false) — spec.md §9 notes this is the documented
// redundancy-pruning path of the first F5 variant, preserved here.
func buildJPair[T Term[T], E Element[T, E]](monoid TermMonoid[T], a, b jPair[T, E]) (jPair[T, E], bool) {
	if a.elem.IsZero() || b.elem.IsZero() {
		return jPair[T, E]{}, false
	}
	t := a.elem.LeadingTerm().LCM(b.elem.LeadingTerm())
	t1, ok1 := a.elem.LeadingTerm().Quotient(t)
	t2, ok2 := b.elem.LeadingTerm().Quotient(t)
	if !ok1 || !ok2 {
		return jPair[T, E]{}, false
	}

	sig1, none1 := t1, a.sigNone
	if !a.sigNone {
		sig1 = termProduct[T](monoid, t1, a.sig)
	}
	sig2, none2 := t2, b.sigNone
	if !b.sigNone {
		sig2 = termProduct[T](monoid, t2, b.sig)
	}

	switch {
	case none1 && none2:
		// Both operands carry the null signature, so there is no
		// signature order between them. The pair is kept, still with a
		// null signature, as the multiple of whichever operand has the
		// larger leading term; it is a multiple of that one operand, not
		// an S-polynomial combination of the two. F5 never builds such a
		// pair: one side of every J-pair it forms is the current
		// generator or an element derived from it, and those carry real
		// signatures.
		if a.elem.LeadingTerm().Compare(b.elem.LeadingTerm()) >= 0 {
			return jPair[T, E]{sig: t1, sigNone: true, elem: a.elem.ScalarMulTerm(t1)}, true
		}
		return jPair[T, E]{sig: t2, sigNone: true, elem: b.elem.ScalarMulTerm(t2)}, true
	case none1:
		return jPair[T, E]{sig: sig2, sigNone: false, elem: b.elem.ScalarMulTerm(t2)}, true
	case none2:
		return jPair[T, E]{sig: sig1, sigNone: false, elem: a.elem.ScalarMulTerm(t1)}, true
	}

	switch sig1.Compare(sig2) {
	case 0:
		return jPair[T, E]{}, false
	case 1:
		return jPair[T, E]{sig: sig1, sigNone: false, elem: a.elem.ScalarMulTerm(t1)}, true
	default:
		return jPair[T, E]{sig: sig2, sigNone: false, elem: b.elem.ScalarMulTerm(t2)}, true
	}
}

// termProduct returns the true monomial product of a and b — exponents
// summed, valuations summed — via the term monoid's construction
// capability (spec.md §6: "Term: construction from exponent+valuation").
// LCM only equals the product when a and b are coprime; the signature
// bookkeeping of spec.md §4.4 ("t_i * S") needs the actual product, since
// a quotient multiplier t_i and the signature S it multiplies are not
// guaranteed to share no variable.
func termProduct[T Term[T]](monoid TermMonoid[T], a, b T) T {
	ae, be := a.Exponent(), b.Exponent()
	n := len(ae)
	if len(be) > n {
		n = len(be)
	}
	exp := make([]int, n)
	for i := 0; i < n; i++ {
		var av, bv int
		if i < len(ae) {
			av = ae[i]
		}
		if i < len(be) {
			bv = be[i]
		}
		exp[i] = av + bv
	}
	return monoid.FromExponentValuation(exp, a.LeadValuation()+b.LeadValuation())
}

func dividesAnySyzygy[T Term[T]](sig T, sigNone bool, syzygies []T) bool {
	if sigNone {
		return false
	}
	for _, s := range syzygies {
		if s.Divides(sig, Field) {
			return true
		}
	}
	return false
}

// coveredBy implements the cover criterion of spec.md §4.4: drop jp if
// some (S, V) in sgb has S dividing jp's signature and (s/S)*lead(V) <
// lead(jp.elem).
func coveredBy[T Term[T], E Element[T, E]](monoid TermMonoid[T], jp jPair[T, E], sgb []signedElement[T, E]) bool {
	if jp.sigNone {
		return false
	}
	for _, se := range sgb {
		if se.sigNone || se.elem.IsZero() {
			continue
		}
		if !se.sig.Divides(jp.sig, Field) {
			continue
		}
		quot, ok := se.sig.Quotient(jp.sig)
		if !ok {
			continue
		}
		induced := termProduct[T](monoid, quot, se.elem.LeadingTerm())
		if induced.Compare(jp.elem.LeadingTerm()) == -1 {
			return true
		}
	}
	return false
}

// regularReducers returns the elements of sgb usable as reducers for jp
// under the regular-reduction rule: only reducers whose induced signature
// t*S is strictly less than jp's signature may be used (spec.md §4.4).
// Initial (null-signature) elements may always reduce.
func regularReducers[T Term[T], E Element[T, E]](monoid TermMonoid[T], jp jPair[T, E], sgb []signedElement[T, E]) []E {
	out := make([]E, 0, len(sgb))
	for _, se := range sgb {
		if se.elem.IsZero() {
			continue
		}
		if se.sigNone || jp.sigNone {
			out = append(out, se.elem)
			continue
		}
		quot, ok := jp.elem.LeadingTerm().Quotient(se.elem.LeadingTerm())
		if !ok {
			continue
		}
		induced := termProduct[T](monoid, quot, se.sig)
		if induced.Compare(jp.sig) == -1 {
			out = append(out, se.elem)
		}
	}
	return out
}

// jPairQueue is the min-heap of pending J-pairs, reusing pairQueue's
// ordering on (valuation, exponent) of the J-pair's element.
type jPairQueue[T Term[T], E Element[T, E]] struct {
	inner *pairQueue[T, E]
	byIdx []jPair[T, E]
}

func newJPairQueue[T Term[T], E Element[T, E]]() *jPairQueue[T, E] {
	return &jPairQueue[T, E]{inner: newPairQueue[T, E]()}
}

func (q *jPairQueue[T, E]) push(jp jPair[T, E]) {
	idx := len(q.byIdx)
	q.byIdx = append(q.byIdx, jp)
	q.inner.push(pairRecord[T, E]{v: jp.elem.Valuation(), e: expDegree(jp.elem.LeadingTerm()), i: idx, j: idx, s: jp.elem})
}

func (q *jPairQueue[T, E]) popMin() (jPair[T, E], bool) {
	pr, ok := q.inner.popMin()
	if !ok {
		var zero jPair[T, E]
		return zero, false
	}
	return q.byIdx[pr.i], true
}
