package ast

import (
	"testing"

	"codeberg.org/saruga/dtlc/internal/symbol"
)

func TestFreeVarsIdentIsItself(t *testing.T) {
	reg := symbol.NewRegistry()
	x := reg.Intern("x")
	fv := FreeVars(ident(x))
	if fv.Len() != 1 || !fv.Contains(x) {
		t.Fatalf("expected {x}, got %v", fv.Slice())
	}
}

func TestFreeVarsLambdaRemovesBoundParam(t *testing.T) {
	reg := symbol.NewRegistry()
	x := reg.Intern("x")
	y := reg.Intern("y")
	lam := &LambdaExpr{
		Params: []Param{{Type: intLit(0), Name: x}},
		Body:   &BinOpExpr{Op: OpAdd, Left: ident(x), Right: ident(y)},
	}
	fv := FreeVars(lam)
	if fv.Contains(x) {
		t.Fatalf("expected the bound parameter x to not be free")
	}
	if !fv.Contains(y) {
		t.Fatalf("expected the free variable y to appear")
	}
}

func TestFreeVarsFuncTypeLaterParamSeesEarlierBinding(t *testing.T) {
	reg := symbol.NewRegistry()
	n := reg.Intern("n")
	ft := &FuncTypeExpr{
		Params: []Param{
			{Type: &LiteralExpr{Value: Literal{Kind: LitU32}}, Name: n},
			{Type: ident(n)}, // references the earlier param n, unnamed itself
		},
		Ret: ident(n),
	}
	fv := FreeVars(ft)
	if fv.Contains(n) {
		t.Fatalf("expected n to be bound throughout the FuncType, got free vars %v", fv.Slice())
	}
}

func TestFreeVarsStructEachFieldSeesOnlyEarlierFields(t *testing.T) {
	reg := symbol.NewRegistry()
	f := reg.Intern("f")
	g := reg.Intern("g")
	st := &StructExpr{Fields: []Param{
		{Type: intLit(0), Name: f},
		{Type: ident(f), Name: g},
	}}
	fv := FreeVars(st)
	if fv.Contains(f) {
		t.Fatalf("expected f to be bound by its own field within the struct")
	}
}

func TestFreeVarsUnionFieldsDoNotBind(t *testing.T) {
	reg := symbol.NewRegistry()
	f := reg.Intern("f")
	u := &UnionExpr{Fields: []Param{
		{Type: ident(f), Name: f},
	}}
	fv := FreeVars(u)
	if !fv.Contains(f) {
		t.Fatalf("expected a union field name to label, not bind, so f stays free in its own type")
	}
}

func TestFreeVarsBlockDeclarationScopesLaterStatementsOnly(t *testing.T) {
	reg := symbol.NewRegistry()
	x := reg.Intern("x")
	block := &Block{Stmts: []Stmt{
		&DeclStmt{Type: &LiteralExpr{Value: Literal{Kind: LitU32}}, Name: x, Initial: intLit(0)},
		&ReturnStmt{Value: ident(x)},
	}}
	fv := FreeVarsBlock(block)
	if fv.Contains(x) {
		t.Fatalf("expected x to be bound for the statement after its declaration, got free vars %v", fv.Slice())
	}
}

func TestFreeVarsBlockInitializerDoesNotSeeItsOwnDeclaration(t *testing.T) {
	reg := symbol.NewRegistry()
	x := reg.Intern("x")
	onlyDecl := &Block{Stmts: []Stmt{
		&DeclStmt{Type: &LiteralExpr{Value: Literal{Kind: LitU32}}, Name: x, Initial: ident(x)},
	}}
	fv := FreeVarsBlock(onlyDecl)
	if !fv.Contains(x) {
		t.Fatalf("expected x in its own initializer to be free (the declaration does not scope over itself)")
	}
}
