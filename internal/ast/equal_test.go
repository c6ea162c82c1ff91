package ast

import (
	"testing"

	"codeberg.org/saruga/dtlc/internal/symbol"
)

func TestEqualLiteralsBySameKindAndPayload(t *testing.T) {
	if !Equal(intLit(3), intLit(3)) {
		t.Fatalf("expected equal integral literals to compare equal")
	}
	if Equal(intLit(3), intLit(4)) {
		t.Fatalf("expected different integral literals to compare unequal")
	}
}

func TestEqualIdentComparesBySymbolIdentity(t *testing.T) {
	reg := symbol.NewRegistry()
	x1 := reg.Intern("x")
	x2 := reg.Intern("x")
	y := reg.Intern("y")
	if x1 != x2 {
		t.Fatalf("expected Intern to be idempotent")
	}
	if !Equal(ident(x1), ident(x2)) {
		t.Fatalf("expected the same interned symbol to compare equal")
	}
	if Equal(ident(x1), ident(y)) {
		t.Fatalf("expected distinct symbols to compare unequal")
	}
}

func TestEqualIsNotAlphaEquivalent(t *testing.T) {
	reg := symbol.NewRegistry()
	x := reg.Intern("x")
	y := reg.Intern("y")
	a := &LambdaExpr{Params: []Param{{Type: intLit(0), Name: x}}, Body: ident(x)}
	b := &LambdaExpr{Params: []Param{{Type: intLit(0), Name: y}}, Body: ident(y)}
	if Equal(a, b) {
		t.Fatalf("expected Equal to distinguish two lambdas bound to different symbols (not alpha-equivalence)")
	}
}

func TestEqualBinOpComparesOperator(t *testing.T) {
	reg := symbol.NewRegistry()
	x := reg.Intern("x")
	a := &BinOpExpr{Op: OpAdd, Left: ident(x), Right: intLit(1)}
	b := &BinOpExpr{Op: OpSub, Left: ident(x), Right: intLit(1)}
	if Equal(a, b) {
		t.Fatalf("expected differing operators to make BinOp unequal")
	}
}

func TestEqualStructFieldsArePositionallyOrdered(t *testing.T) {
	reg := symbol.NewRegistry()
	f := reg.Intern("f")
	g := reg.Intern("g")
	a := &StructExpr{Fields: []Param{{Type: intLit(0), Name: f}, {Type: intLit(0), Name: g}}}
	b := &StructExpr{Fields: []Param{{Type: intLit(0), Name: g}, {Type: intLit(0), Name: f}}}
	if Equal(a, b) {
		t.Fatalf("expected field order to matter for structural equality")
	}
}

func TestEqualPackRequiresMatchingFieldNamesInOrder(t *testing.T) {
	reg := symbol.NewRegistry()
	f := reg.Intern("f")
	g := reg.Intern("g")
	a := &PackExpr{Type: intLit(0), Fields: []FieldInit{{Name: f, Value: intLit(1)}}}
	b := &PackExpr{Type: intLit(0), Fields: []FieldInit{{Name: g, Value: intLit(1)}}}
	if Equal(a, b) {
		t.Fatalf("expected mismatched pack field names to compare unequal")
	}
}

func TestEqualStmtBlockAndNilHandling(t *testing.T) {
	if !EqualBlock(nil, nil) {
		t.Fatalf("expected two nil blocks to be equal")
	}
	if EqualBlock(&Block{}, nil) {
		t.Fatalf("expected a nil block to differ from a non-nil empty block")
	}
	a := &Block{Stmts: []Stmt{&ReturnStmt{Value: intLit(1)}}}
	b := &Block{Stmts: []Stmt{&ReturnStmt{Value: intLit(1)}}}
	if !EqualBlock(a, b) {
		t.Fatalf("expected structurally identical blocks to be equal")
	}
}

func TestEqualNilExprHandling(t *testing.T) {
	if !Equal(nil, nil) {
		t.Fatalf("expected nil == nil")
	}
	if Equal(nil, intLit(0)) || Equal(intLit(0), nil) {
		t.Fatalf("expected nil to differ from any non-nil expression")
	}
}
