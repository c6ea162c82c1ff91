// Package printer renders an internal/ast TranslationUnit back to source
// text, following the byte-for-byte surface grammar the core's term
// representation is specified against. This is a pretty-printer only:
// the teacher's whitespace/identifier minification, source maps, and
// dead-code elimination are WGSL-minifier concerns this project does
// not carry (see DESIGN.md).
package printer

import (
	"strconv"
	"strings"

	"codeberg.org/saruga/dtlc/internal/ast"
	"codeberg.org/saruga/dtlc/internal/builtins"
)

// Printer renders a TranslationUnit to source text.
type Printer struct {
	buf    strings.Builder
	indent int
}

// New creates a Printer.
func New() *Printer {
	return &Printer{}
}

// Print renders tu and returns the resulting source text. Blank lines
// separate successive top-level definitions.
func Print(tu *ast.TranslationUnit) string {
	p := New()
	p.printTranslationUnit(tu)
	return p.buf.String()
}

// ----------------------------------------------------------------------------
// Output helpers
// ----------------------------------------------------------------------------

func (p *Printer) print(s string) {
	p.buf.WriteString(s)
}

func (p *Printer) printNewline() {
	p.buf.WriteByte('\n')
	for i := 0; i < p.indent; i++ {
		p.buf.WriteString("    ")
	}
}

// ----------------------------------------------------------------------------
// Translation units and top-levels
// ----------------------------------------------------------------------------

func (p *Printer) printTranslationUnit(tu *ast.TranslationUnit) {
	for i, top := range tu.TopLevels {
		if i > 0 {
			p.print("\n\n")
		}
		p.printTopLevel(top)
	}
}

// printTopLevel renders `Ret name(P0 n0, ...) = \n    body;`.
func (p *Printer) printTopLevel(top *ast.TopLevel) {
	p.printExpr(top.ReturnType)
	p.print(" ")
	p.print(top.Name.Name)
	p.print("(")
	for i, param := range top.Params {
		if i > 0 {
			p.print(", ")
		}
		p.printParam(param)
	}
	p.print(") = ")
	p.indent++
	p.printNewline()
	p.printExpr(top.Body)
	p.print(";")
	p.indent--
}

func (p *Printer) printParam(param ast.Param) {
	p.printExpr(param.Type)
	if param.Name != nil {
		p.print(" ")
		p.print(param.Name.Name)
	}
}

// ----------------------------------------------------------------------------
// Expressions
// ----------------------------------------------------------------------------

// needsParens reports whether e must be wrapped in parentheses when it
// appears as a sub-expression: everything except Literal, Ident,
// Struct, and Union.
func needsParens(e ast.Expr) bool {
	switch e.(type) {
	case *ast.LiteralExpr, *ast.IdentExpr, *ast.StructExpr, *ast.UnionExpr:
		return false
	default:
		return true
	}
}

func (p *Printer) printSub(e ast.Expr) {
	if needsParens(e) {
		p.print("(")
		p.printExpr(e)
		p.print(")")
		return
	}
	p.printExpr(e)
}

func (p *Printer) printExpr(e ast.Expr) {
	switch n := e.(type) {
	case *ast.LiteralExpr:
		p.printLiteral(n.Value)

	case *ast.IdentExpr:
		p.print(n.Name.Name)

	case *ast.BinOpExpr:
		p.printSub(n.Left)
		p.print(" ")
		p.print(operatorText(n.Op))
		p.print(" ")
		p.printSub(n.Right)

	case *ast.IfThenElseExpr:
		p.print("if (")
		p.printExpr(n.Cond)
		p.print(") ")
		p.printSub(n.Then)
		p.print(" else ")
		p.printSub(n.Else)

	case *ast.FuncTypeExpr:
		p.printSub(n.Ret)
		p.print("[")
		for i, param := range n.Params {
			if i > 0 {
				p.print(", ")
			}
			p.printParam(param)
		}
		p.print("]")

	case *ast.LambdaExpr:
		p.print("\\(")
		for i, param := range n.Params {
			if i > 0 {
				p.print(", ")
			}
			p.printParam(param)
		}
		p.print(") -> ")
		p.printExpr(n.Body)

	case *ast.CallExpr:
		p.printSub(n.Callee)
		p.print("(")
		for i, arg := range n.Args {
			if i > 0 {
				p.print(", ")
			}
			p.printExpr(arg)
		}
		p.print(")")

	case *ast.StructExpr:
		p.printFieldList("struct", n.Fields)

	case *ast.UnionExpr:
		p.printFieldList("union", n.Fields)

	case *ast.PackExpr:
		p.print("[")
		p.printExpr(n.Type)
		p.print("]{")
		for i, f := range n.Fields {
			if i > 0 {
				p.print(", ")
			}
			p.print(".")
			p.print(f.Name.Name)
			p.print(" = ")
			p.printExpr(f.Value)
		}
		p.print("}")

	case *ast.MemberExpr:
		p.printSub(n.Record)
		p.print(".")
		p.print(n.Field.Name)

	case *ast.PointerExpr:
		p.printSub(n.Inner)
		p.print("*")

	case *ast.ReferenceExpr:
		p.print("&")
		p.printSub(n.Inner)

	case *ast.DereferenceExpr:
		p.print("*")
		p.printSub(n.Inner)

	case *ast.StmtExpr:
		p.printStmt(n.Stmt)

	default:
		p.print("<?expr?>")
	}
}

func (p *Printer) printFieldList(keyword string, fields []ast.Param) {
	p.print(keyword)
	p.print(" { ")
	for _, f := range fields {
		p.printExpr(f.Type)
		p.print(" ")
		if f.Name != nil {
			p.print(f.Name.Name)
		}
		p.print("; ")
	}
	p.print("}")
}

func (p *Printer) printLiteral(lit ast.Literal) {
	if text, ok := builtins.KeywordForLiteral(lit.Kind); ok {
		p.print(text)
		return
	}
	switch lit.Kind {
	case ast.LitIntegral:
		p.print(strconv.FormatUint(lit.Integral, 10))
	case ast.LitBoolean:
		if lit.Boolean {
			p.print("true")
		} else {
			p.print("false")
		}
	default:
		p.print("<?literal?>")
	}
}

func operatorText(op ast.Operator) string {
	switch op {
	case ast.OpEq:
		return "=="
	case ast.OpNe:
		return "!="
	case ast.OpLt:
		return "<"
	case ast.OpLe:
		return "<="
	case ast.OpGt:
		return ">"
	case ast.OpGe:
		return ">="
	case ast.OpAdd:
		return "+"
	case ast.OpSub:
		return "-"
	case ast.OpAndThen:
		return ">>"
	default:
		return "?"
	}
}

// ----------------------------------------------------------------------------
// Statements
// ----------------------------------------------------------------------------

func (p *Printer) printBlock(b *ast.Block) {
	p.print("{")
	p.indent++
	for _, s := range b.Stmts {
		p.printNewline()
		p.printStmt(s)
	}
	p.indent--
	p.printNewline()
	p.print("}")
}

func (p *Printer) printStmt(s ast.Stmt) {
	switch n := s.(type) {
	case *ast.EmptyStmt:
		p.print(";")

	case *ast.ExprStmt:
		p.printExpr(n.Expr)
		p.print(";")

	case *ast.ReturnStmt:
		p.print("return ")
		p.printExpr(n.Value)
		p.print(";")

	case *ast.BlockStmt:
		p.printBlock(n.Block)

	case *ast.DeclStmt:
		p.printExpr(n.Type)
		p.print(" ")
		p.print(n.Name.Name)
		if n.Initial != nil {
			p.print(" = ")
			p.printExpr(n.Initial)
		}
		p.print(";")

	case *ast.IfThenElseStmt:
		p.printIfThenElseStmt(n)

	default:
		p.print("<?stmt?>")
	}
}

func (p *Printer) printIfThenElseStmt(n *ast.IfThenElseStmt) {
	for i, clause := range n.Clauses {
		if i == 0 {
			p.print("if (")
		} else {
			p.print(" else if (")
		}
		p.printExpr(clause.Cond)
		p.print(") ")
		p.printBlock(clause.Then)
	}
	if n.Else != nil {
		p.print(" else ")
		p.printBlock(n.Else)
	}
}
