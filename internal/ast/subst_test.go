package ast

import (
	"testing"

	"codeberg.org/saruga/dtlc/internal/symbol"
)

func intLit(n uint64) Expr {
	return &LiteralExpr{Value: Literal{Kind: LitIntegral, Integral: n}}
}

func ident(s *symbol.Symbol) Expr {
	return &IdentExpr{Name: s}
}

// Concrete scenario 1 (spec.md §8): substituting into a shadowed parameter
// leaves the binder and everything after it untouched.
func TestSubstShadowedParameterStops(t *testing.T) {
	reg := symbol.NewRegistry()
	x := reg.Intern("x")
	y := reg.Intern("y")

	// \(u32 x) -> x + y, substituting x -> 7 must not touch the body at
	// all: x is re-bound by the parameter itself.
	lam := &LambdaExpr{
		Params: []Param{{Type: &LiteralExpr{Value: Literal{Kind: LitU32}}, Name: x}},
		Body:   &BinOpExpr{Op: OpAdd, Left: ident(x), Right: ident(y)},
	}
	var term Expr = lam
	if !Subst(reg, &term, x, intLit(7)) {
		t.Fatalf("expected ok")
	}
	got := term.(*LambdaExpr)
	body := got.Body.(*BinOpExpr)
	if _, ok := body.Left.(*IdentExpr); !ok {
		t.Fatalf("shadowed parameter body must be unchanged, got %#v", body.Left)
	}
}

// Concrete scenario 2: plain substitution of a free identifier.
func TestSubstPlainReplacement(t *testing.T) {
	reg := symbol.NewRegistry()
	x := reg.Intern("x")

	var term Expr = ident(x)
	if !Subst(reg, &term, x, intLit(42)) {
		t.Fatalf("expected ok")
	}
	lit, ok := term.(*LiteralExpr)
	if !ok || lit.Value.Integral != 42 {
		t.Fatalf("expected literal 42, got %#v", term)
	}
}

func TestSubstLeavesOtherIdentsAlone(t *testing.T) {
	reg := symbol.NewRegistry()
	x := reg.Intern("x")
	y := reg.Intern("y")

	var term Expr = ident(y)
	if !Subst(reg, &term, x, intLit(1)) {
		t.Fatalf("expected ok")
	}
	if _, ok := term.(*IdentExpr); !ok {
		t.Fatalf("unrelated identifier must be untouched")
	}
}

// Concrete scenario 3: capture-avoiding rename. Substituting y -> x into
// \(u32 x) -> x + y must rename the parameter rather than let the
// incoming free x be captured.
func TestSubstCaptureAvoidingRename(t *testing.T) {
	reg := symbol.NewRegistry()
	x := reg.Intern("x")
	y := reg.Intern("y")

	lam := &LambdaExpr{
		Params: []Param{{Type: &LiteralExpr{Value: Literal{Kind: LitU32}}, Name: x}},
		Body:   &BinOpExpr{Op: OpAdd, Left: ident(x), Right: ident(y)},
	}
	var term Expr = lam
	if !Subst(reg, &term, y, ident(x)) {
		t.Fatalf("expected ok")
	}
	got := term.(*LambdaExpr)
	if got.Params[0].Name == x {
		t.Fatalf("parameter must have been renamed away from x to avoid capture")
	}
	body := got.Body.(*BinOpExpr)
	left := body.Left.(*IdentExpr)
	right := body.Right.(*IdentExpr)
	if left.Name != got.Params[0].Name {
		t.Fatalf("reference to the old parameter name must track the rename")
	}
	if right.Name != x {
		t.Fatalf("the substituted-in free x must survive untouched")
	}
}

func TestSubstFuncTypeRenamesAllLaterParams(t *testing.T) {
	// spec.md §9: the source renamed into the same parameter's type
	// rather than every later one. FuncType(x: u32, y: x, z: x) -> x,
	// substituting T -> x (x is free in the replacement, so the x binder
	// would capture it) must rename x throughout params y and z and the
	// return type, not just y.
	reg := symbol.NewRegistry()
	x := reg.Intern("x")
	y := reg.Intern("y")
	z := reg.Intern("z")
	capT := reg.Intern("T")

	ft := &FuncTypeExpr{
		Params: []Param{
			{Type: &LiteralExpr{Value: Literal{Kind: LitU32}}, Name: x},
			{Type: ident(x), Name: y},
			{Type: ident(x), Name: z},
		},
		Ret: ident(x),
	}
	var term Expr = ft
	if !Subst(reg, &term, capT, ident(x)) {
		t.Fatalf("expected ok")
	}
	got := term.(*FuncTypeExpr)
	renamed := got.Params[0].Name
	if renamed == x {
		t.Fatalf("x parameter must be renamed to avoid capturing the substituted-in x")
	}
	if got.Params[1].Type.(*IdentExpr).Name != renamed {
		t.Fatalf("param y's type must reference the renamed binder, got %v", got.Params[1].Type)
	}
	if got.Params[2].Type.(*IdentExpr).Name != renamed {
		t.Fatalf("param z's type must reference the renamed binder, got %v", got.Params[2].Type)
	}
	if got.Ret.(*IdentExpr).Name != renamed {
		t.Fatalf("return type must reference the renamed binder, got %v", got.Ret)
	}
}

func TestSubstStructFieldShadowStops(t *testing.T) {
	reg := symbol.NewRegistry()
	x := reg.Intern("x")

	st := &StructExpr{
		Fields: []Param{
			{Type: &LiteralExpr{Value: Literal{Kind: LitType}}, Name: x},
			{Type: ident(x), Name: reg.Intern("next")},
		},
	}
	var term Expr = st
	if !Subst(reg, &term, x, intLit(9)) {
		t.Fatalf("expected ok")
	}
	got := term.(*StructExpr)
	if _, ok := got.Fields[1].Type.(*IdentExpr); !ok {
		t.Fatalf("field after the shadowing field name must be untouched")
	}
}

func TestSubstStructFieldCaptureRefuses(t *testing.T) {
	reg := symbol.NewRegistry()
	f := reg.Intern("f")

	// Struct{f: Type, g: f}, substituting T -> f: f is free in the
	// replacement and is also a field name, so no renaming is performed
	// (field names are public) and substitution must refuse.
	st := &StructExpr{
		Fields: []Param{
			{Type: &LiteralExpr{Value: Literal{Kind: LitType}}, Name: f},
			{Type: ident(f), Name: reg.Intern("g")},
		},
	}
	capT := reg.Intern("T")
	var term Expr = st
	if Subst(reg, &term, capT, ident(f)) {
		t.Fatalf("expected substitution into a Struct field to refuse on capture")
	}
}

// Concrete scenario: declaration shadowing within a block. A Decl
// rebinding the substitution target must stop propagation into later
// statements, while the declaration's own initializer (which the name
// does not scope over) is still substituted.
func TestSubstBlockDeclShadowsLaterStatements(t *testing.T) {
	reg := symbol.NewRegistry()
	x := reg.Intern("x")

	block := &Block{Stmts: []Stmt{
		&DeclStmt{Type: &LiteralExpr{Value: Literal{Kind: LitU32}}, Name: x, Initial: ident(x)},
		&ExprStmt{Expr: ident(x)},
	}}
	if !SubstBlock(reg, block, x, intLit(3)) {
		t.Fatalf("expected ok")
	}
	decl := block.Stmts[0].(*DeclStmt)
	if _, ok := decl.Initial.(*LiteralExpr); !ok {
		t.Fatalf("declaration initializer is substituted before the name shadows anything, got %#v", decl.Initial)
	}
	later := block.Stmts[1].(*ExprStmt)
	if _, ok := later.Expr.(*IdentExpr); !ok {
		t.Fatalf("statement after the shadowing declaration must be untouched, got %#v", later.Expr)
	}
}

func TestSubstBlockDeclCaptureRenames(t *testing.T) {
	reg := symbol.NewRegistry()
	x := reg.Intern("x")
	y := reg.Intern("y")

	// { decl x: u32 = 0; return x + y } substituting y -> x must rename
	// the declared x, since the incoming free x would otherwise be
	// captured by the declaration.
	block := &Block{Stmts: []Stmt{
		&DeclStmt{Type: &LiteralExpr{Value: Literal{Kind: LitU32}}, Name: x, Initial: intLit(0)},
		&ReturnStmt{Value: &BinOpExpr{Op: OpAdd, Left: ident(x), Right: ident(y)}},
	}}
	if !SubstBlock(reg, block, y, ident(x)) {
		t.Fatalf("expected ok")
	}
	decl := block.Stmts[0].(*DeclStmt)
	if decl.Name == x {
		t.Fatalf("declared x must be renamed to avoid capturing the substituted-in x")
	}
	ret := block.Stmts[1].(*ReturnStmt).Value.(*BinOpExpr)
	if ret.Left.(*IdentExpr).Name != decl.Name {
		t.Fatalf("reference to the old declared name must track the rename")
	}
	if ret.Right.(*IdentExpr).Name != x {
		t.Fatalf("the substituted-in free x must survive untouched")
	}
}

func TestSubstIfThenElseRecursesAllBranches(t *testing.T) {
	reg := symbol.NewRegistry()
	x := reg.Intern("x")

	stmt := &IfThenElseStmt{
		Clauses: []CondBlock{
			{Cond: ident(x), Then: &Block{Stmts: []Stmt{&ExprStmt{Expr: ident(x)}}}},
		},
		Else: &Block{Stmts: []Stmt{&ExprStmt{Expr: ident(x)}}},
	}
	if !SubstStmt(reg, stmt, x, intLit(5)) {
		t.Fatalf("expected ok")
	}
	if _, ok := stmt.Clauses[0].Cond.(*LiteralExpr); !ok {
		t.Fatalf("condition must be substituted")
	}
	if _, ok := stmt.Clauses[0].Then.Stmts[0].(*ExprStmt).Expr.(*LiteralExpr); !ok {
		t.Fatalf("then-branch must be substituted")
	}
	if _, ok := stmt.Else.Stmts[0].(*ExprStmt).Expr.(*LiteralExpr); !ok {
		t.Fatalf("else-branch must be substituted")
	}
}
