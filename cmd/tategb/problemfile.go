package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/alecthomas/participle/v2"
	"github.com/fatih/color"
	"github.com/pkg/errors"
)

// ProblemFile is the parsed form of the one-directive-per-line problem
// file format documented in SPEC_FULL.md §5: uniformizer, variables, base
// ring, precision, algorithm, and a repeatable list of generator
// expressions.
type ProblemFile struct {
	Directives []*Directive `@@*`
}

type Directive struct {
	Uniformizer *int     `  "uniformizer" @Int`
	Variables   []string `| "variables" @Ident+`
	Base        *string  `| "base" @("field" | "integers")`
	Precision   *int     `| "precision" @Int`
	Algorithm   *string  `| "algorithm" @Ident`
	Generator   *string  `| "generator" @ExprText`
}

var problemParser = participle.MustBuild[ProblemFile](
	participle.Lexer(problemLexer),
	participle.Elide("Comment", "Whitespace", "NewLine", "ExprWhitespace"),
	participle.UseLookahead(2),
)

// ParseProblemFile reads and parses the problem file at path.
func ParseProblemFile(path string) (*ProblemFile, error) {
	source, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "reading problem file")
	}
	pf, err := problemParser.ParseString(path, string(source))
	if err != nil {
		reportParseError(string(source), err)
		return nil, errors.Wrap(err, "parsing problem file")
	}
	return pf, nil
}

func reportParseError(src string, err error) {
	pe, ok := err.(participle.Error)
	if !ok {
		color.Red("unexpected error: %s", err)
		return
	}
	pos := pe.Position()
	lines := strings.Split(src, "\n")
	if pos.Line <= 0 || pos.Line > len(lines) {
		color.Red("syntax error at unknown location: %s", err)
		return
	}
	color.Red("syntax error at line %d, column %d: %s", pos.Line, pos.Column, pe.Message())
	fmt.Println(lines[pos.Line-1])
}

// Problem is the resolved configuration a ProblemFile describes, after
// folding repeated/overriding directives into single values.
type Problem struct {
	Uniformizer int64
	Variables   []string
	BaseField   bool
	Precision   int
	Algorithm   string
	Generators  []string
}

// Resolve folds a ProblemFile's directive list into a Problem, applying
// the defaults of SPEC_FULL.md §5 (field base, DefaultPrecision,
// Buchberger algorithm) when a directive is absent.
func (pf *ProblemFile) Resolve() (*Problem, error) {
	p := &Problem{BaseField: true, Precision: 20, Algorithm: "buchberger"}
	for _, d := range pf.Directives {
		switch {
		case d.Uniformizer != nil:
			p.Uniformizer = int64(*d.Uniformizer)
		case len(d.Variables) > 0:
			p.Variables = d.Variables
		case d.Base != nil:
			p.BaseField = *d.Base == "field"
		case d.Precision != nil:
			p.Precision = *d.Precision
		case d.Algorithm != nil:
			p.Algorithm = *d.Algorithm
		case d.Generator != nil:
			p.Generators = append(p.Generators, strings.TrimSpace(*d.Generator))
		}
	}
	if p.Uniformizer == 0 {
		return nil, errors.New("problem file must set uniformizer")
	}
	if len(p.Variables) == 0 {
		return nil, errors.New("problem file must set variables")
	}
	return p, nil
}
