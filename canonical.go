package tategb

import "sort"

// canonicalise applies the final pass of spec.md §4.5, shared by both
// drivers: field-mode monic scaling, or (for integral mode interpreted
// over a field base) a monomial-only minimisation pass followed by one
// tail-reduction pass with a preceding π-shift, or (for a genuine
// ring-of-integers base) rescaling leading coefficients to exact powers of
// the uniformizer; finally, sort strictly decreasing by leading term.
func canonicalise[T Term[T], E Element[T, E]](g []E, ring BaseRing[E], monoid TermMonoid[T], mode Mode, v *Verbose, corr string) ([]E, error) {
	if len(g) == 0 {
		return nil, nil
	}

	switch {
	case mode == Field:
		for i := range g {
			g[i] = g[i].Monic()
		}
	case mode == Integral && ring.IsField():
		g = minimiseByLeadingTerm[T, E](g, Field)
		for i := range g {
			shifted := g[i].PositivePiShift(1)
			r, err := reduceOrErr[T, E](shifted, withoutSelf(g, i), Field, true)
			if err != nil {
				return nil, err
			}
			g[i] = r
		}
	default:
		for i := range g {
			g[i] = ring.NormalizeLeadingUnit(g[i])
		}
	}

	g, err := interReduce[T, E](g, mode)
	if err != nil {
		return nil, err
	}
	sort.Slice(g, func(i, j int) bool {
		return g[i].LeadingTerm().Compare(g[j].LeadingTerm()) > 0
	})

	v.logf(corr, 1, "canonicalisation produced %d elements", len(g))
	return g, nil
}

// reduceOrErr discards the quotients of reduce, keeping only the
// remainder and the precision-exhaustion error.
func reduceOrErr[T Term[T], E Element[T, E]](f E, divisors []E, mode Mode, reduceTail bool) (E, error) {
	_, r, err := reduce[T, E](f, divisors, mode, reduceTail, false)
	return r, err
}

// interReduce is the inter-reduction of spec.md §4.5: each element is
// reduced against the rest of the basis (tail reduction on) until no
// further reduction occurs, dropping any element that reduces to zero.
func interReduce[T Term[T], E Element[T, E]](g []E, mode Mode) ([]E, error) {
	changed := true
	for changed {
		changed = false
		for i := 0; i < len(g); i++ {
			others := withoutSelf(g, i)
			if len(others) == 0 {
				continue
			}
			r, err := reduceOrErr[T, E](g[i], others, mode, true)
			if err != nil {
				return nil, err
			}
			if r.IsZero() {
				g = append(g[:i], g[i+1:]...)
				changed = true
				i--
				continue
			}
			if !r.Equal(g[i]) {
				g[i] = r
				changed = true
			}
		}
	}
	return g, nil
}

func withoutSelf[E any](g []E, i int) []E {
	out := make([]E, 0, len(g)-1)
	out = append(out, g[:i]...)
	out = append(out, g[i+1:]...)
	return out
}
