package typecheck

import (
	"codeberg.org/saruga/dtlc/internal/ast"
	"codeberg.org/saruga/dtlc/internal/symbol"
)

// renaming is a bijective correspondence between binders introduced on
// the left and on the right of an alphaEqual comparison, built up as the
// traversal descends into binding forms. ast.Equal (component D)
// deliberately compares binders by identity rather than position
// (spec.md §4.D), so alphaEqual exists beside it rather than inside it:
// the type checker is the one client that needs the weaker,
// renaming-tolerant notion of equality, everywhere else identity
// comparison is exactly what spec.md calls for.
type renaming struct {
	leftToRight map[*symbol.Symbol]*symbol.Symbol
	rightToLeft map[*symbol.Symbol]*symbol.Symbol
}

func newRenaming() *renaming {
	return &renaming{
		leftToRight: make(map[*symbol.Symbol]*symbol.Symbol),
		rightToLeft: make(map[*symbol.Symbol]*symbol.Symbol),
	}
}

func (r *renaming) bind(l, rr *symbol.Symbol) *renaming {
	out := &renaming{
		leftToRight: make(map[*symbol.Symbol]*symbol.Symbol, len(r.leftToRight)+1),
		rightToLeft: make(map[*symbol.Symbol]*symbol.Symbol, len(r.rightToLeft)+1),
	}
	for k, v := range r.leftToRight {
		out.leftToRight[k] = v
	}
	for k, v := range r.rightToLeft {
		out.rightToLeft[k] = v
	}
	out.leftToRight[l] = rr
	out.rightToLeft[rr] = l
	return out
}

// sameName reports whether l and rr refer to the same binder under the
// renaming built up so far: either they are literally the same symbol
// (neither side rebound anything between them), or the renaming maps l
// to rr and rr back to l.
func (r *renaming) sameName(l, rr *symbol.Symbol) bool {
	if l == rr {
		_, leftRebound := r.leftToRight[l]
		_, rightRebound := r.rightToLeft[rr]
		if !leftRebound && !rightRebound {
			return true
		}
	}
	return r.leftToRight[l] == rr && r.rightToLeft[rr] == l
}

func alphaEqual(x, y ast.Expr, r *renaming) bool {
	if x == nil || y == nil {
		return x == nil && y == nil
	}
	switch a := x.(type) {
	case *ast.LiteralExpr:
		b, ok := y.(*ast.LiteralExpr)
		return ok && ast.Equal(a, b)

	case *ast.IdentExpr:
		b, ok := y.(*ast.IdentExpr)
		return ok && r.sameName(a.Name, b.Name)

	case *ast.BinOpExpr:
		b, ok := y.(*ast.BinOpExpr)
		return ok && a.Op == b.Op && alphaEqual(a.Left, b.Left, r) && alphaEqual(a.Right, b.Right, r)

	case *ast.IfThenElseExpr:
		b, ok := y.(*ast.IfThenElseExpr)
		return ok && alphaEqual(a.Cond, b.Cond, r) && alphaEqual(a.Then, b.Then, r) && alphaEqual(a.Else, b.Else, r)

	case *ast.FuncTypeExpr:
		b, ok := y.(*ast.FuncTypeExpr)
		if !ok {
			return false
		}
		next, ok := alphaEqualParams(a.Params, b.Params, r)
		return ok && alphaEqual(a.Ret, b.Ret, next)

	case *ast.LambdaExpr:
		b, ok := y.(*ast.LambdaExpr)
		if !ok {
			return false
		}
		next, ok := alphaEqualParams(a.Params, b.Params, r)
		return ok && alphaEqual(a.Body, b.Body, next)

	case *ast.CallExpr:
		b, ok := y.(*ast.CallExpr)
		if !ok || len(a.Args) != len(b.Args) || !alphaEqual(a.Callee, b.Callee, r) {
			return false
		}
		for i := range a.Args {
			if !alphaEqual(a.Args[i], b.Args[i], r) {
				return false
			}
		}
		return true

	case *ast.StructExpr:
		b, ok := y.(*ast.StructExpr)
		if !ok {
			return false
		}
		_, ok = alphaEqualParams(a.Fields, b.Fields, r)
		return ok

	case *ast.UnionExpr:
		// Field names label but do not scope (spec.md §4.F), so a Union
		// compares its fields positionally without extending the
		// renaming: two unions are alpha-equal only if their field
		// names literally match, unlike Struct's binders.
		b, ok := y.(*ast.UnionExpr)
		if !ok || len(a.Fields) != len(b.Fields) {
			return false
		}
		for i := range a.Fields {
			if a.Fields[i].Name != b.Fields[i].Name || !alphaEqual(a.Fields[i].Type, b.Fields[i].Type, r) {
				return false
			}
		}
		return true

	case *ast.PackExpr:
		b, ok := y.(*ast.PackExpr)
		if !ok || !alphaEqual(a.Type, b.Type, r) || len(a.Fields) != len(b.Fields) {
			return false
		}
		for i := range a.Fields {
			if a.Fields[i].Name != b.Fields[i].Name || !alphaEqual(a.Fields[i].Value, b.Fields[i].Value, r) {
				return false
			}
		}
		return true

	case *ast.MemberExpr:
		b, ok := y.(*ast.MemberExpr)
		return ok && a.Field == b.Field && alphaEqual(a.Record, b.Record, r)

	case *ast.PointerExpr:
		b, ok := y.(*ast.PointerExpr)
		return ok && alphaEqual(a.Inner, b.Inner, r)

	case *ast.ReferenceExpr:
		b, ok := y.(*ast.ReferenceExpr)
		return ok && alphaEqual(a.Inner, b.Inner, r)

	case *ast.DereferenceExpr:
		b, ok := y.(*ast.DereferenceExpr)
		return ok && alphaEqual(a.Inner, b.Inner, r)

	case *ast.StmtExpr:
		b, ok := y.(*ast.StmtExpr)
		return ok && alphaEqualStmt(a.Stmt, b.Stmt, r)

	default:
		return false
	}
}

// alphaEqualParams compares two binder lists pairwise, extending the
// renaming with each bound pair (Name == nil, e.g. an unnamed FuncType
// parameter, never extends it). Returns the extended renaming and
// whether every position matched.
func alphaEqualParams(a, b []ast.Param, r *renaming) (*renaming, bool) {
	if len(a) != len(b) {
		return r, false
	}
	cur := r
	for i := range a {
		if !alphaEqual(a[i].Type, b[i].Type, cur) {
			return r, false
		}
		switch {
		case a[i].Name == nil && b[i].Name == nil:
		case a[i].Name != nil && b[i].Name != nil:
			cur = cur.bind(a[i].Name, b[i].Name)
		default:
			return r, false
		}
	}
	return cur, true
}

func alphaEqualStmt(x, y ast.Stmt, r *renaming) bool {
	if x == nil || y == nil {
		return x == nil && y == nil
	}
	switch a := x.(type) {
	case *ast.EmptyStmt:
		_, ok := y.(*ast.EmptyStmt)
		return ok

	case *ast.ExprStmt:
		b, ok := y.(*ast.ExprStmt)
		return ok && alphaEqual(a.Expr, b.Expr, r)

	case *ast.ReturnStmt:
		b, ok := y.(*ast.ReturnStmt)
		return ok && alphaEqual(a.Value, b.Value, r)

	case *ast.BlockStmt:
		b, ok := y.(*ast.BlockStmt)
		return ok && alphaEqualBlock(a.Block, b.Block, r)

	case *ast.DeclStmt:
		b, ok := y.(*ast.DeclStmt)
		if !ok || !alphaEqual(a.Type, b.Type, r) {
			return false
		}
		if (a.Initial == nil) != (b.Initial == nil) {
			return false
		}
		if a.Initial != nil && !alphaEqual(a.Initial, b.Initial, r) {
			return false
		}
		return true

	case *ast.IfThenElseStmt:
		b, ok := y.(*ast.IfThenElseStmt)
		if !ok || len(a.Clauses) != len(b.Clauses) {
			return false
		}
		for i := range a.Clauses {
			if !alphaEqual(a.Clauses[i].Cond, b.Clauses[i].Cond, r) || !alphaEqualBlock(a.Clauses[i].Then, b.Clauses[i].Then, r) {
				return false
			}
		}
		return alphaEqualBlock(a.Else, b.Else, r)

	default:
		return false
	}
}

// alphaEqualBlock compares two blocks statement by statement, extending
// the renaming across a DeclStmt exactly as substBlockRange's shadowing
// rule does: the declared name scopes over the statements that follow
// it within this block.
func alphaEqualBlock(a, b *ast.Block, r *renaming) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	if len(a.Stmts) != len(b.Stmts) {
		return false
	}
	cur := r
	for i := range a.Stmts {
		if !alphaEqualStmt(a.Stmts[i], b.Stmts[i], cur) {
			return false
		}
		da, aok := a.Stmts[i].(*ast.DeclStmt)
		db, bok := b.Stmts[i].(*ast.DeclStmt)
		if aok != bok {
			return false
		}
		if aok {
			cur = cur.bind(da.Name, db.Name)
		}
	}
	return true
}
