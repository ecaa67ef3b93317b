package tategb

// reduce is the multi-divisor reduction of spec.md §4.2: repeatedly select
// the largest term of the running remainder, find any divisor in D whose
// leading term divides it under mode, and subtract the appropriate
// multiple (via the element kernel's QuoRem, which already implements this
// loop over a whole divisor family at once). QuoRem is called once: with
// reduceTail set, the Element contract already guarantees that no term of
// the remainder is divisible by any divisor's leading term.
//
// requireNonzero implements spec.md §4.2's require_nonzero_remainder flag.
// A remainder can come out zero for two reasons that the element kernel
// does not itself distinguish: f is genuinely a combination of divisors, or
// every surviving term was truncated away by the running absolute
// precision before the reduction could be certified either way. When
// requireNonzero is set, reduce treats the second case — a zero remainder
// whose absolute precision has been driven down to the point of carrying
// no information (spec.md §7's "terms vanish into O(π^∞) before a
// non-zero result can be certified") — as a KindPrecisionExhausted error
// rather than a silent zero, per spec.md §7's "surfaced to the caller, not
// recovered internally".
func reduce[T Term[T], E Element[T, E]](f E, divisors []E, mode Mode, reduceTail bool, requireNonzero bool) (quotients []E, remainder E, err error) {
	if f.IsZero() {
		return nil, f, nil
	}
	live := make([]E, 0, len(divisors))
	for _, d := range divisors {
		if !isZeroElement[T, E](d) {
			live = append(live, d)
		}
	}
	if len(live) == 0 {
		return nil, f, nil
	}

	quotients, remainder = f.QuoRem(live, reduceTail, mode)
	if requireNonzero && remainder.IsZero() && remainder.PrecisionAbsolute() <= 0 {
		return nil, remainder, errPrecisionExhausted(
			"reduction remainder vanished at absolute precision 0 before a non-zero result could be certified")
	}
	return quotients, remainder, nil
}

// isZeroElement reports whether e is the zero element. A free function
// (rather than a method requirement) because the zero value of a generic E
// is not necessarily meaningful; callers always have a concrete element in
// hand to ask.
func isZeroElement[T Term[T], E Element[T, E]](e E) bool {
	return e.IsZero()
}
