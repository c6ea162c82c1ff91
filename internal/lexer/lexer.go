// Package lexer defines the token stream consumed by internal/parser: a
// participle.Lexer built from a small set of simple rules, ordered so
// that every multi-character operator is tried before the
// single-character punctuation class it would otherwise be swallowed
// by (spec.md's external collaborator contract: "==, !=, <=, >=" before
// "all other single-character punctuation").
package lexer

import (
	"github.com/alecthomas/participle/v2/lexer"
)

// Rules is the token grammar shared by every parser.Parse call. Lexing
// comments and whitespace is not part of spec.md's external collaborator
// contract, but every surface-syntax example implies C-like source text,
// so line comments are accepted and elided the way the rest of the
// retrieved pack's participle-based front ends do.
var Rules = lexer.MustSimple([]lexer.SimpleRule{
	{Name: "Whitespace", Pattern: `[ \t\r\n]+`},
	{Name: "Comment", Pattern: `//[^\n]*`},
	{Name: "Int", Pattern: `[0-9]+`},
	{Name: "Ident", Pattern: `[a-zA-Z_][a-zA-Z0-9_]*`},

	// Multi-character operators: must be tried before the single-char
	// Punct class so "==" is not lexed as two "=" tokens, and so on for
	// every pair spec.md's contract names. AndThenOp ('>>') and Arrow
	// ('->') are not in spec.md's external-collaborator operator list,
	// but spec.md §6's pretty-print grammar independently specifies
	// ">>" as the andThen operator's surface spelling and "->" as the
	// Lambda arrow, so the lexer must recognize both as units for the
	// printer's output to round-trip back through the parser.
	{Name: "EqEq", Pattern: `==`},
	{Name: "NotEq", Pattern: `!=`},
	{Name: "LessEq", Pattern: `<=`},
	{Name: "GreaterEq", Pattern: `>=`},
	{Name: "AndThenOp", Pattern: `>>`},
	{Name: "Arrow", Pattern: `->`},

	// Single-character punctuation, tried last. '\' introduces a
	// Lambda; every other character here is passed through literally
	// per spec.md's contract.
	{Name: "Punct", Pattern: `[(){}\[\],;:=<>+\-*&.\\]`},
})
