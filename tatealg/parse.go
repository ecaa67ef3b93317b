package tatealg

import (
	"bytes"
	"fmt"
	"math/big"
	"strconv"

	"github.com/pkg/errors"

	"github.com/padicgb/tategb/tatealg/parse"
	"github.com/padicgb/tategb/tatealg/parse/scan"
)

// Parse parses input (e.g. "3*x^2 + 5*x*y^2") into an Element over ring,
// at the given absolute precision, generalising nag.Parse from
// single-character noncommutative symbols and integer coefficients to
// multi-character commutative variable names and rational p-adic
// coefficients.
func Parse(ring *Ring, prec int, input string) (*Element, error) {
	n, err := parse.Parse(scan.NewScanner(bytes.NewBufferString(input)))
	if err != nil {
		return nil, errors.Wrap(err, "")
	}
	variables := make(map[string]int, len(ring.Vars))
	for i, v := range ring.Vars {
		variables[v] = i
	}
	e, err := evaluate(n, ring, variables, prec)
	if err != nil {
		return nil, errors.Wrap(err, "")
	}
	return e, nil
}

func evaluate(n *parse.Node, ring *Ring, variables map[string]int, prec int) (*Element, error) {
	switch n.Token.Type {
	case scan.Parenthesis:
		return evaluateParenthesis(n, ring, variables, prec)
	case scan.Operator:
		return evaluateOperator(n, ring, variables, prec)
	case scan.Int:
		return evaluateInt(n, ring, prec)
	case scan.Identifier:
		return evaluateIdentifier(n, ring, variables, prec)
	default:
		return nil, errors.Errorf("unknown node %#v", n)
	}
}

func evaluateParenthesis(n *parse.Node, ring *Ring, variables map[string]int, prec int) (*Element, error) {
	if n.Left == nil {
		return nil, errors.Errorf("%#v", n)
	}
	return evaluate(n.Left, ring, variables, prec)
}

func evaluateOperator(n *parse.Node, ring *Ring, variables map[string]int, prec int) (*Element, error) {
	switch n.Token.Text {
	case "+":
		return evaluatePlus(n, ring, variables, prec)
	case "-":
		return evaluateMinus(n, ring, variables, prec)
	case "*":
		return evaluateMultiply(n, ring, variables, prec)
	case "/":
		return evaluateDivide(n, ring, prec)
	case "^":
		return evaluatePower(n, ring, variables, prec)
	default:
		return nil, errors.Errorf("%#v", n)
	}
}

func evaluateIdentifier(n *parse.Node, ring *Ring, variables map[string]int, prec int) (*Element, error) {
	idx, ok := variables[n.Token.Text]
	if !ok {
		return nil, errors.Errorf("unknown variable %q", n.Token.Text)
	}
	exp := make(Monomial, len(ring.Vars))
	exp[idx] = 1
	return NewElement(ring, prec, CoeffTerm{Exp: exp, Coef: big.NewRat(1, 1)}), nil
}

func evaluatePlus(n *parse.Node, ring *Ring, variables map[string]int, prec int) (*Element, error) {
	left, right, err := evaluateLeftRight(n, ring, variables, prec)
	if err != nil {
		return nil, errors.Wrap(err, fmt.Sprintf("%#v", n))
	}
	return left.Add(right), nil
}

func evaluateMinus(n *parse.Node, ring *Ring, variables map[string]int, prec int) (*Element, error) {
	left, right, err := evaluateLeftRight(n, ring, variables, prec)
	if err != nil {
		return nil, errors.Wrap(err, fmt.Sprintf("%#v", n))
	}
	return left.Add(right.Neg()), nil
}

func evaluateMultiply(n *parse.Node, ring *Ring, variables map[string]int, prec int) (*Element, error) {
	left, right, err := evaluateLeftRight(n, ring, variables, prec)
	if err != nil {
		return nil, errors.Wrap(err, fmt.Sprintf("%#v", n))
	}
	return left.Mul(right), nil
}

func evaluateDivide(n *parse.Node, ring *Ring, prec int) (*Element, error) {
	if n.Left == nil || n.Right == nil {
		return nil, errors.Errorf("%#v", n)
	}
	num, err := strconv.ParseInt(n.Left.Token.Text, 10, 64)
	if err != nil {
		return nil, errors.Wrap(err, fmt.Sprintf("%#v", n))
	}
	denom, err := strconv.ParseInt(n.Right.Token.Text, 10, 64)
	if err != nil {
		return nil, errors.Wrap(err, fmt.Sprintf("%#v", n))
	}
	exp := make(Monomial, len(ring.Vars))
	return NewElement(ring, prec, CoeffTerm{Exp: exp, Coef: big.NewRat(num, denom)}), nil
}

func evaluatePower(n *parse.Node, ring *Ring, variables map[string]int, prec int) (*Element, error) {
	if n.Left == nil || n.Right == nil {
		return nil, errors.Errorf("%#v", n)
	}
	left, err := evaluate(n.Left, ring, variables, prec)
	if err != nil {
		return nil, errors.Wrap(err, fmt.Sprintf("%#v", n))
	}
	power, err := strconv.Atoi(n.Right.Token.Text)
	if err != nil {
		return nil, errors.Wrap(err, fmt.Sprintf("%#v", n))
	}
	exp := make(Monomial, len(ring.Vars))
	z := NewElement(ring, prec, CoeffTerm{Exp: exp, Coef: big.NewRat(1, 1)})
	for i := 0; i < power; i++ {
		z = z.Mul(left)
	}
	return z, nil
}

func evaluateInt(n *parse.Node, ring *Ring, prec int) (*Element, error) {
	i, err := strconv.ParseInt(n.Token.Text, 10, 64)
	if err != nil {
		return nil, errors.Wrap(err, fmt.Sprintf("%#v", n))
	}
	exp := make(Monomial, len(ring.Vars))
	return NewElement(ring, prec, CoeffTerm{Exp: exp, Coef: big.NewRat(i, 1)}), nil
}

func evaluateLeftRight(n *parse.Node, ring *Ring, variables map[string]int, prec int) (*Element, *Element, error) {
	if n.Left == nil || n.Right == nil {
		return nil, nil, errors.Errorf("%#v", n)
	}
	left, err := evaluate(n.Left, ring, variables, prec)
	if err != nil {
		return nil, nil, errors.Wrap(err, fmt.Sprintf("%#v", n))
	}
	right, err := evaluate(n.Right, ring, variables, prec)
	if err != nil {
		return nil, nil, errors.Wrap(err, fmt.Sprintf("%#v", n))
	}
	return left, right, nil
}
