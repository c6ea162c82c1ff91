// Package builtins defines the reserved words of the core language: the
// keywords that introduce expression and statement forms, and the
// literal keywords that denote the built-in type and boolean literals
// (spec.md §2).
package builtins

import "codeberg.org/saruga/dtlc/internal/ast"

// Keyword identifies a reserved word that is not available as an
// identifier.
type Keyword struct {
	Text string
}

// Table maps every reserved word to its definition. Only Lookup and
// IsReserved read it; the lexer and parser do not, so the grammar does
// not reject a reserved word where it expects a name.
var Table = make(map[string]*Keyword)

func register(text string) {
	Table[text] = &Keyword{Text: text}
}

func init() {
	registerLiteralKeywords()
	registerFormKeywords()
}

// Lookup returns the keyword definition for text, or nil if text is an
// ordinary identifier.
func Lookup(text string) *Keyword {
	return Table[text]
}

// IsReserved reports whether text cannot be used as an identifier.
func IsReserved(text string) bool {
	return Table[text] != nil
}

// ----------------------------------------------------------------------------
// Literal keywords (spec.md §2's LiteralKind variants)
// ----------------------------------------------------------------------------

// literalKeywords maps a reserved word directly onto the LiteralKind it
// produces in the parser's literal-keyword position.
var literalKeywords = map[string]ast.LiteralKind{
	"type": ast.LitType,
	"void": ast.LitVoid,
	"u8":   ast.LitU8,
	"s8":   ast.LitS8,
	"u16":  ast.LitU16,
	"s16":  ast.LitS16,
	"u32":  ast.LitU32,
	"s32":  ast.LitS32,
	"u64":  ast.LitU64,
	"s64":  ast.LitS64,
	"bool": ast.LitBoolType,
}

func registerLiteralKeywords() {
	for text := range literalKeywords {
		register(text)
	}
	register("true")
	register("false")
}

// LiteralKeyword returns the LiteralKind a built-in type keyword
// produces, and whether text names one.
func LiteralKeyword(text string) (ast.LiteralKind, bool) {
	kind, ok := literalKeywords[text]
	return kind, ok
}

// keywordForLiteral is the inverse of literalKeywords, built once at
// init time for the printer's benefit.
var keywordForLiteral = make(map[ast.LiteralKind]string, len(literalKeywords))

func init() {
	for text, kind := range literalKeywords {
		keywordForLiteral[kind] = text
	}
}

// KeywordForLiteral returns the reserved word a built-in LiteralKind
// prints as, and whether kind names a printable keyword (it does not
// cover LitIntegral/LitBoolean, which print as a value, not a keyword).
func KeywordForLiteral(kind ast.LiteralKind) (string, bool) {
	text, ok := keywordForLiteral[kind]
	return text, ok
}

// ----------------------------------------------------------------------------
// Form keywords (expression and statement syntax)
// ----------------------------------------------------------------------------

// formKeywords lists the words that introduce a grammar production
// rather than a literal value. There is deliberately no "func" or
// "decl": a top-level definition and a declaration statement both open
// with a type expression (spec.md §6's "ReturnType name(...)" and
// "Type name = expr;" forms), and Lambda and Pack are introduced by
// punctuation (\ and [ ]) rather than a keyword.
var formKeywords = []string{
	"struct", "union",
	"return",
	"if", "else",
}

func registerFormKeywords() {
	for _, text := range formKeywords {
		register(text)
	}
}
