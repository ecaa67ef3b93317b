package tatealg

import (
	"testing"

	"github.com/padicgb/tategb"
)

func TestTermCompareValuationFirst(t *testing.T) {
	tests := []struct {
		name string
		a, b Term
		want int
	}{
		{
			name: "lower valuation is larger regardless of monomial",
			a:    NewTerm(Monomial{5, 0}, 1, Deglex),
			b:    NewTerm(Monomial{0, 0}, 2, Deglex),
			want: 1,
		},
		{
			name: "equal valuation falls back to monomial order",
			a:    NewTerm(Monomial{2, 0}, 0, Deglex),
			b:    NewTerm(Monomial{1, 1}, 0, Deglex),
			want: 1,
		},
		{
			name: "identical terms compare equal",
			a:    NewTerm(Monomial{1, 1}, 3, Deglex),
			b:    NewTerm(Monomial{1, 1}, 3, Deglex),
			want: 0,
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.a.Compare(tc.b); got != tc.want {
				t.Errorf("Compare() = %d, want %d", got, tc.want)
			}
		})
	}
}

func TestTermDivides(t *testing.T) {
	x2 := NewTerm(Monomial{2, 0}, 0, Deglex)
	x2y := NewTerm(Monomial{2, 1}, 0, Deglex)
	x2y0 := NewTerm(Monomial{2, 0}, 1, Deglex)

	if !x2.Divides(x2y, tategb.Field) {
		t.Error("x^2 should divide x^2*y in field mode")
	}
	if x2y.Divides(x2, tategb.Field) {
		t.Error("x^2*y should not divide x^2 in field mode")
	}
	if !x2.Divides(x2y0, tategb.Field) {
		t.Error("valuation is ignored in field mode")
	}
	if x2y0.Divides(x2, tategb.Integral) {
		t.Error("a term of higher valuation must not divide a term of lower valuation in integral mode")
	}
}

func TestTermLCMAndQuotient(t *testing.T) {
	a := NewTerm(Monomial{2, 0}, 1, Deglex)
	b := NewTerm(Monomial{0, 3}, 2, Deglex)

	l := a.LCM(b)
	want := Monomial{2, 3}
	for i, e := range want {
		if l.Exponent()[i] != e {
			t.Fatalf("LCM exponent = %v, want %v", l.Exponent(), want)
		}
	}
	if l.LeadValuation() != 1 {
		t.Errorf("LCM valuation = %d, want 1 (min)", l.LeadValuation())
	}

	q, ok := a.Quotient(l)
	if !ok {
		t.Fatal("expected a to divide its own LCM")
	}
	if q.Exponent()[0] != 0 || q.Exponent()[1] != 3 {
		t.Errorf("quotient exponent = %v, want [0 3]", q.Exponent())
	}
}

func TestTermIsCoprimeWith(t *testing.T) {
	x := NewTerm(Monomial{1, 0}, 0, Deglex)
	y := NewTerm(Monomial{0, 1}, 0, Deglex)
	xy := NewTerm(Monomial{1, 1}, 0, Deglex)

	if !x.IsCoprimeWith(y) {
		t.Error("x and y share no variable")
	}
	if x.IsCoprimeWith(xy) {
		t.Error("x and x*y share variable x")
	}
}
