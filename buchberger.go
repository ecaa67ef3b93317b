package tategb

// BuchbergerOptions configures the valuation-aware Buchberger driver of
// spec.md §4.3.
type BuchbergerOptions struct {
	Precision int
	Mode      Mode
	Cancel    CancelToken
	Verbose   *Verbose
}

// basisSlot is one entry of the Buchberger driver's working basis: the
// element itself, plus a tombstone flag (spec.md §9: "slots are nulled...
// pair-pop skips pairs referencing null slots").
type basisSlot[E any] struct {
	elem      E
	tombstone bool
}

// Buchberger computes a Gröbner basis of the ideal generated by f using the
// valuation-aware Buchberger algorithm of spec.md §4.3. ring and monoid are
// the base-ring and term-monoid capabilities of spec.md §6.
func Buchberger[T Term[T], E Element[T, E]](f []E, ring BaseRing[E], monoid TermMonoid[T], opts BuchbergerOptions) ([]E, error) {
	if opts.Precision <= 0 {
		return nil, errInvalidPrecision(opts.Precision)
	}
	v := opts.Verbose.orDefault()
	corr := v.begin("buchberger mode=%s precision=%d", opts.Mode, opts.Precision)
	defer v.end(corr)

	// Phase 1: truncate. Replace each generator by g + O(π^(val(g)+p)),
	// discard those that become zero.
	gens := make([]E, 0, len(f))
	for _, g := range f {
		if g.IsZero() {
			continue
		}
		tg := g.AddBigOh(AddClamped(g.Valuation(), opts.Precision))
		if tg.IsZero() {
			continue
		}
		gens = append(gens, tg)
	}
	v.logf(corr, 2, "truncated %d generators to %d non-zero", len(f), len(gens))
	if len(gens) == 0 {
		return nil, nil
	}

	// Phase 2: initial minimisation. Drop any generator whose leading term
	// is divisible under mode by another's.
	gens = minimiseByLeadingTerm[T, E](gens, opts.Mode)
	v.logf(corr, 2, "initial minimisation left %d generators", len(gens))

	gb := make([]basisSlot[E], len(gens))
	for i, g := range gens {
		gb[i] = basisSlot[E]{elem: g}
	}

	q := newPairQueue[T, E]()
	for i := 1; i <= len(gb); i++ {
		q = seedPairs[T, E](q, gb[:i], opts.Mode)
	}

	reduceHappened := false
	for {
		if err := opts.Cancel.check(); err != nil {
			return nil, err
		}
		if q.empty() {
			break
		}

		if reduceHappened {
			if err := interReduceWorking[T, E](gb, opts.Mode); err != nil {
				return nil, err
			}
			if err := opts.Cancel.check(); err != nil {
				return nil, err
			}
			reduceHappened = false
		}

		pr, ok := q.popMin()
		if !ok {
			break
		}

		if pr.i == -1 && pr.j == -1 {
			// Rescued element sentinel: re-insert the rescued basis
			// element carried in pr.s, unreduced, as if freshly produced.
			gb, reduceHappened = insertReduced[T, E](gb, q, pr.s, opts.Mode, v, corr)
			continue
		}
		if pr.i >= len(gb) || pr.j >= len(gb) || gb[pr.i].tombstone || gb[pr.j].tombstone {
			continue
		}

		live := liveElements[T, E](gb)
		_, r, err := reduce[T, E](pr.s, live, opts.Mode, false, false)
		if err != nil {
			return nil, err
		}
		if r.IsZero() {
			continue
		}

		gb, reduceHappened = insertReduced[T, E](gb, q, r, opts.Mode, v, corr)
	}

	result := liveElements[T, E](gb)
	v.logf(corr, 1, "main loop finished with %d live basis elements", len(result))
	return canonicalise[T, E](result, ring, monoid, opts.Mode, v, corr)
}

// insertReduced appends r to the working basis, pushes new pairs against
// every live element whose leading term is not coprime with r's, and
// shrinks the working basis (spec.md §4.3 step 4d–4f): any element whose
// leading term is divisible by r's is tombstoned and re-queued as a
// rescued-element sentinel so nothing is lost. spec.md allows skipping the
// rescue when the shrunk element is already reachable through a pending
// pair; this driver always rescues, which costs a redundant reduction in
// that case but never loses an element.
func insertReduced[T Term[T], E Element[T, E]](gb []basisSlot[E], q *pairQueue[T, E], r E, mode Mode, v *Verbose, corr string) ([]basisSlot[E], bool) {
	j := len(gb)
	gb = append(gb, basisSlot[E]{elem: r})

	for k := 0; k < j; k++ {
		if gb[k].tombstone {
			continue
		}
		if gb[k].elem.LeadingTerm().IsCoprimeWith(r.LeadingTerm()) {
			continue
		}
		s := gb[k].elem.SPolynomial(r)
		if s.IsZero() {
			continue
		}
		q.push(pairRecord[T, E]{v: s.Valuation(), e: expDegree(s.LeadingTerm()), i: k, j: j, s: s})
	}

	rLead := r.LeadingTerm()
	for k := 0; k < j; k++ {
		if gb[k].tombstone {
			continue
		}
		if !rLead.Divides(gb[k].elem.LeadingTerm(), mode) {
			continue
		}
		// Rescue: the shrunk element must not be lost even though its
		// slot is about to be tombstoned. v/e are set from the rescued
		// element itself so it pops in its true priority order rather
		// than jumping the queue ahead of every pair with a non-zero
		// valuation.
		rescued := gb[k].elem
		q.push(pairRecord[T, E]{v: rescued.Valuation(), e: expDegree(rescued.LeadingTerm()), i: -1, j: -1, s: rescued})
		gb[k].tombstone = true
	}

	v.logf(corr, 3, "inserted basis element at slot %d", j)
	return gb, true
}

// interReduceWorking is the π-shift inter-reduction pass of spec.md §4.3
// step 4a: multiply each live element by π (positive shift) and
// quotient-remainder it against every other live element of the working
// basis (its own unshifted copy is left out) with tail reduction enabled,
// storing the remainder back in place. This is the "surprising
// step" noted in spec.md §4.3 and §9: reductions over a DVR can lower a
// leading valuation and hide terms behind precision, and re-exposing them
// before the next pop keeps the reduced form stable under further
// cancellation.
func interReduceWorking[T Term[T], E Element[T, E]](gb []basisSlot[E], mode Mode) error {
	for i := range gb {
		if gb[i].tombstone {
			continue
		}
		others := make([]E, 0, len(gb)-1)
		for k := range gb {
			if k == i || gb[k].tombstone {
				continue
			}
			others = append(others, gb[k].elem)
		}
		shifted := gb[i].elem.PositivePiShift(1)
		_, r, err := reduce[T, E](shifted, others, mode, true, false)
		if err != nil {
			return err
		}
		gb[i].elem = r
	}
	return nil
}

// minimiseByLeadingTerm drops any generator whose leading term is
// divisible under mode by another generator's leading term (spec.md §4.3
// step 2, and the minimality invariant of spec.md §3).
func minimiseByLeadingTerm[T Term[T], E Element[T, E]](gens []E, mode Mode) []E {
	keep := make([]bool, len(gens))
	for i := range gens {
		keep[i] = true
	}
	for i := range gens {
		if !keep[i] {
			continue
		}
		for j := range gens {
			if i == j || !keep[j] {
				continue
			}
			if gens[j].LeadingTerm().Divides(gens[i].LeadingTerm(), mode) {
				keep[i] = false
				break
			}
		}
	}
	out := make([]E, 0, len(gens))
	for i, k := range keep {
		if k {
			out = append(out, gens[i])
		}
	}
	return out
}

// seedPairs is spec.md §4.3 step 3: for every i<j among gens, if leading
// terms are not coprime, compute the S-polynomial; if non-zero, push a
// pair record.
func seedPairs[T Term[T], E Element[T, E]](q *pairQueue[T, E], gens []basisSlot[E], mode Mode) *pairQueue[T, E] {
	j := len(gens) - 1
	if j < 0 {
		return q
	}
	gj := gens[j].elem
	for i := 0; i < j; i++ {
		if gens[i].tombstone {
			continue
		}
		gi := gens[i].elem
		if gi.LeadingTerm().IsCoprimeWith(gj.LeadingTerm()) {
			continue
		}
		s := gi.SPolynomial(gj)
		if s.IsZero() {
			continue
		}
		q.push(pairRecord[T, E]{v: s.Valuation(), e: expDegree(s.LeadingTerm()), i: i, j: j, s: s})
	}
	return q
}

func liveElements[T Term[T], E Element[T, E]](gb []basisSlot[E]) []E {
	out := make([]E, 0, len(gb))
	for _, slot := range gb {
		if !slot.tombstone {
			out = append(out, slot.elem)
		}
	}
	return out
}

// expDegree returns the total degree of a term's monomial, used as the
// tie-breaking exponent key of spec.md §3's critical pair record.
func expDegree[T Term[T]](t T) int {
	sum := 0
	for _, e := range t.Exponent() {
		sum += e
	}
	return sum
}

// AddClamped returns a+b, saturating at ValuationInfinity instead of
// overflowing once either operand is already at or near it.
func AddClamped(a, b int) int {
	if a >= ValuationInfinity-b {
		return ValuationInfinity
	}
	return a + b
}
