package parser

import (
	"testing"

	"codeberg.org/saruga/dtlc/internal/ast"
	"codeberg.org/saruga/dtlc/internal/symbol"
	"codeberg.org/saruga/dtlc/internal/test"
)

func mustParse(t *testing.T, src string) (*ast.TranslationUnit, *symbol.Registry) {
	t.Helper()
	cst, err := ParseString("test.dtlc", src)
	if err != nil {
		t.Fatalf("ParseString: %v", err)
	}
	reg := symbol.NewRegistry()
	tu, err := Convert(reg, cst)
	if err != nil {
		t.Fatalf("Convert: %v", err)
	}
	return tu, reg
}

func TestParseSimpleTopLevel(t *testing.T) {
	tu, reg := mustParse(t, "u32 double(u32 n) { return n + n; }")
	if len(tu.TopLevels) != 1 {
		t.Fatalf("expected one top-level, got %d", len(tu.TopLevels))
	}
	top := tu.TopLevels[0]
	n := reg.Intern("n")

	wantRet := &ast.LiteralExpr{Value: ast.Literal{Kind: ast.LitU32}}
	if !ast.Equal(top.ReturnType, wantRet) {
		t.Fatalf("expected u32 return type, got %#v", top.ReturnType)
	}
	test.AssertEqual(t, top.Name, reg.Intern("double"))
	if len(top.Params) != 1 {
		t.Fatalf("expected a single parameter, got %#v", top.Params)
	}
	test.AssertEqual(t, top.Params[0].Name, n)

	wantBody := &ast.StmtExpr{Stmt: &ast.BlockStmt{Block: &ast.Block{Stmts: []ast.Stmt{
		&ast.ReturnStmt{Value: &ast.BinOpExpr{
			Op:    ast.OpAdd,
			Left:  &ast.IdentExpr{Name: n},
			Right: &ast.IdentExpr{Name: n},
		}},
	}}}}
	if !ast.Equal(top.Body, wantBody) {
		t.Fatalf("expected return n + n;, got %#v", top.Body)
	}
}

func TestParseStruct(t *testing.T) {
	tu, reg := mustParse(t, "type pointT() { return struct { u32 x; u32 y; }; }")
	top := tu.TopLevels[0]
	x := reg.Intern("x")
	y := reg.Intern("y")
	want := &ast.StmtExpr{Stmt: &ast.BlockStmt{Block: &ast.Block{Stmts: []ast.Stmt{
		&ast.ReturnStmt{Value: &ast.StructExpr{Fields: []ast.Param{
			{Type: &ast.LiteralExpr{Value: ast.Literal{Kind: ast.LitU32}}, Name: x},
			{Type: &ast.LiteralExpr{Value: ast.Literal{Kind: ast.LitU32}}, Name: y},
		}}},
	}}}}
	if !ast.Equal(top.Body, want) {
		t.Fatalf("expected struct { u32 x; u32 y; }, got %#v", top.Body)
	}
}

func TestParseComparisonAndAndThen(t *testing.T) {
	tu, reg := mustParse(t, "bool isBig(u32 n) { return n >= 100 >> n != 0; }")
	top := tu.TopLevels[0]
	n := reg.Intern("n")
	want := &ast.StmtExpr{Stmt: &ast.BlockStmt{Block: &ast.Block{Stmts: []ast.Stmt{
		&ast.ReturnStmt{Value: &ast.BinOpExpr{
			Op: ast.OpAndThen,
			Left: &ast.BinOpExpr{
				Op:    ast.OpGe,
				Left:  &ast.IdentExpr{Name: n},
				Right: &ast.LiteralExpr{Value: ast.Literal{Kind: ast.LitIntegral, Integral: 100}},
			},
			Right: &ast.BinOpExpr{
				Op:    ast.OpNe,
				Left:  &ast.IdentExpr{Name: n},
				Right: &ast.LiteralExpr{Value: ast.Literal{Kind: ast.LitIntegral, Integral: 0}},
			},
		}},
	}}}}
	if !ast.Equal(top.Body, want) {
		t.Fatalf("expected n >= 100 >> n != 0, got %#v", top.Body)
	}
}

func TestParseLambdaAndCall(t *testing.T) {
	tu, reg := mustParse(t, "u32 apply(u32 n) { return (\\(u32 x) -> x)(n); }")
	top := tu.TopLevels[0]
	n := reg.Intern("n")
	x := reg.Intern("x")
	want := &ast.StmtExpr{Stmt: &ast.BlockStmt{Block: &ast.Block{Stmts: []ast.Stmt{
		&ast.ReturnStmt{Value: &ast.CallExpr{
			Callee: &ast.LambdaExpr{
				Params: []ast.Param{{Type: &ast.LiteralExpr{Value: ast.Literal{Kind: ast.LitU32}}, Name: x}},
				Body:   &ast.IdentExpr{Name: x},
			},
			Args: []ast.Expr{&ast.IdentExpr{Name: n}},
		}},
	}}}}
	if !ast.Equal(top.Body, want) {
		t.Fatalf("expected ((\\\\(u32 x) -> x))(n), got %#v", top.Body)
	}
}

func TestParseDeclAndIfElse(t *testing.T) {
	tu, reg := mustParse(t, `u32 pick(bool c) {
		u32 zero = 0;
		if (c) {
			return zero;
		} else {
			return zero;
		}
	}`)
	top := tu.TopLevels[0]
	c := reg.Intern("c")
	zero := reg.Intern("zero")
	want := &ast.StmtExpr{Stmt: &ast.BlockStmt{Block: &ast.Block{Stmts: []ast.Stmt{
		&ast.DeclStmt{
			Type:    &ast.LiteralExpr{Value: ast.Literal{Kind: ast.LitU32}},
			Name:    zero,
			Initial: &ast.LiteralExpr{Value: ast.Literal{Kind: ast.LitIntegral, Integral: 0}},
		},
		&ast.IfThenElseStmt{
			Clauses: []ast.CondBlock{{
				Cond: &ast.IdentExpr{Name: c},
				Then: &ast.Block{Stmts: []ast.Stmt{
					&ast.ReturnStmt{Value: &ast.IdentExpr{Name: zero}},
				}},
			}},
			Else: &ast.Block{Stmts: []ast.Stmt{
				&ast.ReturnStmt{Value: &ast.IdentExpr{Name: zero}},
			}},
		},
	}}}}
	if !ast.Equal(top.Body, want) {
		t.Fatalf("expected decl followed by if/else, got %#v", top.Body)
	}
}

func TestParseRejectsGarbage(t *testing.T) {
	if _, err := ParseString("bad.dtlc", "not a valid top level $$$"); err == nil {
		t.Fatalf("expected a parse error for invalid syntax")
	}
}
