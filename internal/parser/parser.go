// Package parser turns dtlc source text into an internal/ast
// TranslationUnit. The concrete syntax tree is described declaratively
// as tagged Go structs consumed by
// github.com/alecthomas/participle/v2 (mirroring the grammar-as-structs
// style used throughout the retrieved pack's participle-based parsers,
// e.g. the dingo and stencil front ends); a separate conversion pass
// (convert.go) walks that tree into internal/ast values, the same
// two-phase "parse, then lower" shape the dingo example's
// convertToGoAST follows.
package parser

import (
	"fmt"

	"github.com/alecthomas/participle/v2"
	plex "github.com/alecthomas/participle/v2/lexer"

	"codeberg.org/saruga/dtlc/internal/lexer"
)

// ----------------------------------------------------------------------------
// Concrete syntax tree
// ----------------------------------------------------------------------------

// File is the root production: zero or more top-level function
// definitions, no statements permitted outside them (spec.md §6).
type File struct {
	Pos       plex.Position
	TopLevels []*TopLevel `parser:"@@*"`
}

// TopLevel is `ReturnType name(param-list) { statement-list }`.
type TopLevel struct {
	Pos        plex.Position
	ReturnType *AndThenExpr `parser:"@@"`
	Name       string       `parser:"@Ident"`
	Params     []*ParamDecl `parser:"'(' ( @@ ( ',' @@ )* )? ')'"`
	Body       *Block       `parser:"@@"`
}

// ParamDecl is a (type, optional name) pair shared by FuncType's
// bracket list and a top-level's parameter list.
type ParamDecl struct {
	Type *AndThenExpr `parser:"@@"`
	Name *string      `parser:"@Ident?"`
}

// ----------------------------------------------------------------------------
// Expressions, precedence climbing lowest to highest:
// andThen (>>) < comparison < additive < unary (&, *) < postfix < primary
// ----------------------------------------------------------------------------

// AndThenExpr is the entry point into expression grammar.
type AndThenExpr struct {
	Pos  plex.Position
	Left *CompareExpr   `parser:"@@"`
	Rest []*CompareExpr `parser:"( AndThenOp @@ )*"`
}

// CompareExpr is a single (non-chaining) comparison.
type CompareExpr struct {
	Pos   plex.Position
	Left  *AddExpr `parser:"@@"`
	Op    *string  `parser:"( @( EqEq | NotEq | LessEq | GreaterEq | '<' | '>' )"`
	Right *AddExpr `parser:"  @@ )?"`
}

// AddExpr is a left-associative chain of + and -.
type AddExpr struct {
	Pos  plex.Position
	Left *UnaryExpr `parser:"@@"`
	Rest []*AddOp   `parser:"@@*"`
}

// AddOp is one link of an AddExpr chain.
type AddOp struct {
	Op    string     `parser:"@( '+' | '-' )"`
	Right *UnaryExpr `parser:"@@"`
}

// UnaryExpr is an optional prefix & (Reference) or * (Dereference)
// applied to a postfix expression.
type UnaryExpr struct {
	Pos     plex.Position
	Op      *string      `parser:"( @( '&' | '*' ) )?"`
	Operand *PostfixExpr `parser:"@@"`
}

// PostfixExpr is a primary expression followed by any number of member
// accesses, calls, pointer-type markers, or FuncType bracket lists.
type PostfixExpr struct {
	Pos     plex.Position
	Primary *PrimaryExpr `parser:"@@"`
	Ops     []*PostfixOp `parser:"@@*"`
}

// PostfixOp is one postfix operation: `.field`, `(args)`, a trailing
// `*` (Pointer), or `[params]` (FuncType).
type PostfixOp struct {
	Member  *string    `parser:"(   '.' @Ident"`
	Call    *ArgList   `parser:"  | @@"`
	Pointer bool       `parser:"  | @'*'"`
	Bracket *ParamList `parser:"  | '[' @@ ']' )"`
}

// ArgList is a parenthesized, comma-separated call-argument list.
type ArgList struct {
	Args []*AndThenExpr `parser:"'(' ( @@ ( ',' @@ )* )? ')'"`
}

// ParamList is a comma-separated, possibly-empty parameter list (used
// inside a FuncType's brackets).
type ParamList struct {
	Params []*ParamDecl `parser:"( @@ ( ',' @@ )* )?"`
}

// PrimaryExpr is a literal, identifier, struct/union type, pack value,
// lambda, or parenthesized sub-expression.
type PrimaryExpr struct {
	Pos    plex.Position
	Struct *StructLit   `parser:"(   @@"`
	Union  *UnionLit    `parser:"  | @@"`
	Pack   *PackLit     `parser:"  | @@"`
	Lambda *LambdaLit   `parser:"  | @@"`
	Int    *uint64      `parser:"  | @Int"`
	Paren  *AndThenExpr `parser:"  | '(' @@ ')'"`
	Ident  *string      `parser:"  | @Ident )"`
}

// StructLit is `struct { T0 f0; T1 f1; }`.
type StructLit struct {
	Fields []*FieldDecl `parser:"'struct' '{' @@* '}'"`
}

// UnionLit is `union { T0 f0; T1 f1; }`.
type UnionLit struct {
	Fields []*FieldDecl `parser:"'union' '{' @@* '}'"`
}

// FieldDecl is one `Type name;` field of a Struct or Union.
type FieldDecl struct {
	Type *AndThenExpr `parser:"@@"`
	Name string       `parser:"@Ident ';'"`
}

// PackLit is `[type]{.f0 = e0, .f1 = e1, ...}`.
type PackLit struct {
	Type   *AndThenExpr `parser:"'[' @@ ']'"`
	Fields []*FieldInit `parser:"'{' ( @@ ( ',' @@ )* )? '}'"`
}

// FieldInit is one `.name = value` element of a Pack.
type FieldInit struct {
	Name  string       `parser:"'.' @Ident '='"`
	Value *AndThenExpr `parser:"@@"`
}

// LambdaLit is `\(T0 x0, T1 x1, ...) -> body`. Every parameter name is
// mandatory, unlike a FuncType's ParamDecl.
type LambdaLit struct {
	Params []*LambdaParam `parser:"'\\\\' '(' ( @@ ( ',' @@ )* )? ')' '->'"`
	Body   *AndThenExpr   `parser:"@@"`
}

// LambdaParam is a mandatory-named Lambda parameter.
type LambdaParam struct {
	Type *AndThenExpr `parser:"@@"`
	Name string       `parser:"@Ident"`
}

// ----------------------------------------------------------------------------
// Statements
// ----------------------------------------------------------------------------

// Block is a brace-delimited statement list.
type Block struct {
	Pos   plex.Position
	Stmts []*Stmt `parser:"'{' @@* '}'"`
}

// Stmt is any one statement production, tried in an order chosen so
// that keyword-led forms (return, if, a nested block) are attempted
// before the two forms that both start with an arbitrary expression
// (DeclStmt and ExprStmt); participle backtracks into ExprStmt when
// DeclStmt's mandatory trailing name does not follow the parsed type.
type Stmt struct {
	Pos    plex.Position
	Empty  bool        `parser:"(   @';'"`
	Return *ReturnStmt `parser:"  | @@"`
	Block  *Block      `parser:"  | @@"`
	If     *IfStmt     `parser:"  | @@"`
	Decl   *DeclStmt   `parser:"  | @@"`
	Expr   *ExprStmt   `parser:"  | @@ )"`
}

// ReturnStmt is `return expr;`.
type ReturnStmt struct {
	Value *AndThenExpr `parser:"'return' @@ ';'"`
}

// ExprStmt is `expr;` evaluated for effect.
type ExprStmt struct {
	Expr *AndThenExpr `parser:"@@ ';'"`
}

// DeclStmt is `Type name;` or `Type name = expr;`.
type DeclStmt struct {
	Type    *AndThenExpr `parser:"@@"`
	Name    string       `parser:"@Ident"`
	Initial *AndThenExpr `parser:"( '=' @@ )?"`
}

// IfStmt is a chain of if / else-if / else over blocks. ElseIf recurses
// so `else if (...) {...}` chains into a single production; Else is the
// chain's terminal `else {...}`, if present.
type IfStmt struct {
	Cond   *AndThenExpr `parser:"'if' '(' @@ ')'"`
	Then   *Block       `parser:"@@"`
	ElseIf *IfStmt      `parser:"( 'else' ( @@"`
	Else   *Block       `parser:"    | @@ ) )?"`
}

// ----------------------------------------------------------------------------
// Parser construction
// ----------------------------------------------------------------------------

var participleParser = participle.MustBuild[File](
	participle.Lexer(lexer.Rules),
	participle.Elide("Whitespace", "Comment"),
	participle.UseLookahead(8),
)

// ParseString parses src (named by filename for error messages) into a
// concrete syntax tree File. Syntactic errors are returned as-is;
// Convert (convert.go) lowers the result into internal/ast.
func ParseString(filename, src string) (*File, error) {
	f, err := participleParser.ParseString(filename, src)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", filename, err)
	}
	return f, nil
}
