package main

import "github.com/alecthomas/participle/v2/lexer"

// problemLexer tokenises the problem file format of SPEC_FULL.md §5. It is
// a stateful lexer in the shape of kanso-lang-kanso's grammar.KansoLexer:
// the "generator" keyword pushes the lexer into an "Expr" state that
// captures the remainder of the line as a single token, since a generator
// is an arbitrary Tate element expression (parsed separately by
// tatealg.Parse), not a token stream this grammar itself needs to
// understand.
var problemLexer = lexer.MustStateful(lexer.Rules{
	"Root": {
		{"Comment", `#[^\n]*`, nil},
		{"Whitespace", `[ \t]+`, nil},
		{"NewLine", `\r?\n`, nil},
		{"GeneratorKw", `generator\b`, lexer.Push("Expr")},
		{"Ident", `[a-zA-Z][a-zA-Z0-9_-]*`, nil},
		{"Int", `[0-9]+`, nil},
	},
	"Expr": {
		{"ExprWhitespace", `[ \t]+`, nil},
		{"ExprText", `[^\r\n]+`, lexer.Pop()},
	},
})
