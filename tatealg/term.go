package tatealg

import "github.com/padicgb/tategb"

// Monomial is a commutative exponent vector, one entry per variable.
// Unlike the teacher's Monomial (a noncommutative word of symbols), Tate
// algebra variables commute, so only the exponent of each variable matters.
type Monomial []int

// MonomialOrder compares two monomials of equal conceptual variable count,
// the same role the teacher's Order plays for noncommutative words. The
// return value matches cmp.Compare.
type MonomialOrder func(x, y Monomial) int

// Deglex compares by total degree first, then lexicographically, mirroring
// nag.Deglex generalised from a symbol sequence to an exponent vector.
func Deglex(x, y Monomial) int {
	dx, dy := degree(x), degree(y)
	if dx != dy {
		if dx < dy {
			return -1
		}
		return 1
	}
	n := len(x)
	if len(y) > n {
		n = len(y)
	}
	for i := 0; i < n; i++ {
		xi, yi := at(x, i), at(y, i)
		if xi != yi {
			if xi < yi {
				return -1
			}
			return 1
		}
	}
	return 0
}

func degree(m Monomial) int {
	d := 0
	for _, e := range m {
		d += e
	}
	return d
}

func at(m Monomial, i int) int {
	if i >= len(m) {
		return 0
	}
	return m[i]
}

func monomialLen(a, b Monomial) int {
	n := len(a)
	if len(b) > n {
		n = len(b)
	}
	return n
}

func monomialMax(a, b Monomial) Monomial {
	n := monomialLen(a, b)
	out := make(Monomial, n)
	for i := 0; i < n; i++ {
		ai, bi := at(a, i), at(b, i)
		if ai > bi {
			out[i] = ai
		} else {
			out[i] = bi
		}
	}
	return out
}

// monomialSub returns a - b componentwise; ok is false if any component
// would go negative (b does not monomially divide a).
func monomialSub(a, b Monomial) (Monomial, bool) {
	n := monomialLen(a, b)
	out := make(Monomial, n)
	for i := 0; i < n; i++ {
		d := at(a, i) - at(b, i)
		if d < 0 {
			return nil, false
		}
		out[i] = d
	}
	return out, true
}

func monomialAdd(a, b Monomial) Monomial {
	n := monomialLen(a, b)
	out := make(Monomial, n)
	for i := 0; i < n; i++ {
		out[i] = at(a, i) + at(b, i)
	}
	return out
}

func monomialDivides(a, b Monomial) bool {
	for i, e := range a {
		if e > at(b, i) {
			return false
		}
	}
	return true
}

func monomialCoprime(a, b Monomial) bool {
	n := monomialLen(a, b)
	for i := 0; i < n; i++ {
		if at(a, i) > 0 && at(b, i) > 0 {
			return false
		}
	}
	return true
}

func monomialKey(m Monomial) string {
	buf := make([]byte, 0, len(m)*3)
	for i, e := range m {
		if i > 0 {
			buf = append(buf, ',')
		}
		buf = appendInt(buf, e)
	}
	return string(buf)
}

func appendInt(buf []byte, v int) []byte {
	if v == 0 {
		return append(buf, '0')
	}
	neg := v < 0
	if neg {
		v = -v
	}
	start := len(buf)
	for v > 0 {
		buf = append(buf, byte('0'+v%10))
		v /= 10
	}
	if neg {
		buf = append(buf, '-')
	}
	// reverse the digits just appended
	for i, j := start, len(buf)-1; i < j; i, j = i+1, j-1 {
		buf[i], buf[j] = buf[j], buf[i]
	}
	return buf
}

// Term is the term kernel implementation consumed by the tategb engine via
// its generic Term interface: a monomial exponent vector paired with the
// p-adic valuation of the coefficient that carries it.
type Term struct {
	exp   Monomial
	val   int
	order MonomialOrder
}

// NewTerm builds a Term over the given exponent vector, coefficient
// valuation, and monomial order.
func NewTerm(exp Monomial, val int, order MonomialOrder) Term {
	e := make(Monomial, len(exp))
	copy(e, exp)
	return Term{exp: e, val: val, order: order}
}

func (t Term) LeadValuation() int { return t.val }

func (t Term) Exponent() []int {
	out := make([]int, len(t.exp))
	copy(out, t.exp)
	return out
}

// Compare implements the Tate term order resolved in SPEC_FULL.md §6:
// valuation first (lower valuation, closer to a unit, sorts greater), then
// the ambient monomial order as a tiebreak.
func (t Term) Compare(other Term) int {
	if t.val != other.val {
		if t.val < other.val {
			return 1
		}
		return -1
	}
	return t.order(t.exp, other.exp)
}

func (t Term) LCM(other Term) Term {
	v := t.val
	if other.val < v {
		v = other.val
	}
	return Term{exp: monomialMax(t.exp, other.exp), val: v, order: t.order}
}

// Divides reports whether t divides other. In Integral mode t's valuation
// must also be no greater than other's, per spec.md §3's integral
// divisibility rule.
func (t Term) Divides(other Term, mode tategb.Mode) bool {
	if mode == tategb.Integral && t.val > other.val {
		return false
	}
	return monomialDivides(t.exp, other.exp)
}

func (t Term) IsCoprimeWith(other Term) bool {
	return monomialCoprime(t.exp, other.exp)
}

// Quotient returns other/t: the monomial quotient (false if t does not
// monomially divide other) paired with the valuation difference
// other.val - t.val, used as a faithful canonical multiplier by the F5
// driver's signature bookkeeping (DESIGN.md's element.go note).
func (t Term) Quotient(other Term) (Term, bool) {
	exp, ok := monomialSub(other.exp, t.exp)
	if !ok {
		return Term{}, false
	}
	return Term{exp: exp, val: other.val - t.val, order: t.order}, true
}
