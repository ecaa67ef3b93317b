// Command tategb is a small CLI driver for the Tate algebra Gröbner-basis
// engine: it reads a problem file (SPEC_FULL.md §5), computes the
// canonical basis of the described ideal, and prints it. This is the
// outer layer the library itself (tategb, tatealg) never needed, and is
// where the CLI-facing domain-stack libraries (participle, fatih/color,
// iancoleman/strcase) attach.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/iancoleman/strcase"

	"github.com/padicgb/tategb"
	"github.com/padicgb/tategb/tatealg"
)

func main() {
	algoFlag := flag.String("algorithm", "", "override the problem file's algorithm directive")
	verbose := flag.Int("verbose", 0, "verbosity level 0-4")
	flag.Parse()

	if flag.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "usage: tategb [-algorithm NAME] [-verbose N] <problem-file>")
		os.Exit(2)
	}

	if err := run(flag.Arg(0), *algoFlag, *verbose); err != nil {
		color.Red("error: %s", err)
		os.Exit(1)
	}
}

func run(path, algoOverride string, verbose int) error {
	pf, err := ParseProblemFile(path)
	if err != nil {
		return err
	}
	problem, err := pf.Resolve()
	if err != nil {
		return err
	}
	if algoOverride != "" {
		problem.Algorithm = algoOverride
	}

	ring := newRing(problem)
	gens := make([]*tatealg.Element, 0, len(problem.Generators))
	for _, g := range problem.Generators {
		e, err := tatealg.Parse(ring, problem.Precision, g)
		if err != nil {
			return err
		}
		gens = append(gens, e)
	}

	ideal := tategb.NewIdeal[tatealg.Term, *tatealg.Element](gens, ring, ring)
	algo := normalizeAlgorithm(problem.Algorithm)

	basis, err := ideal.GroebnerBasis(tategb.GroebnerBasisOptions{
		Precision: problem.Precision,
		Algorithm: algo,
		Verbose:   verbose,
	})
	if err != nil {
		if tgErr, ok := tategb.AsError(err); ok {
			return fmt.Errorf("%s: %s", tgErr.Kind, tgErr.Message)
		}
		return err
	}

	color.Green("Gröbner basis (%d elements):", len(basis))
	for _, g := range basis {
		fmt.Println(" ", g.String())
	}
	return nil
}

func newRing(p *Problem) *tatealg.Ring {
	if p.BaseField {
		return tatealg.NewFieldRing(p.Uniformizer, tatealg.Deglex, p.Variables)
	}
	return tatealg.NewIntegerRing(p.Uniformizer, tatealg.Deglex, p.Variables)
}

// normalizeAlgorithm accepts either the problem file's canonical spelling
// ("buchberger-integral") or a CamelCase CLI override ("BuchbergerIntegral"),
// using strcase to fold the latter to the former before dispatch.
func normalizeAlgorithm(name string) tategb.Algorithm {
	kebab := strcase.ToKebab(name)
	switch kebab {
	case "buchberger":
		return tategb.AlgorithmBuchberger
	case "buchberger-integral":
		return tategb.AlgorithmBuchbergerIntegral
	case "f-5", "f5":
		return tategb.AlgorithmF5
	default:
		return tategb.Algorithm(name)
	}
}
