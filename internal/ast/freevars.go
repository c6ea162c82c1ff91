package ast

import (
	"codeberg.org/saruga/dtlc/internal/symbol"
	"codeberg.org/saruga/dtlc/internal/symbolset"
)

// FreeVars returns the set of identifiers occurring free in term, honoring
// every binder (spec.md's component F). The caller owns the returned set.
func FreeVars(term Expr) *symbolset.Set {
	if term == nil {
		return symbolset.Empty()
	}
	switch e := term.(type) {
	case *LiteralExpr:
		return symbolset.Empty()

	case *IdentExpr:
		return symbolset.Of(e.Name)

	case *BinOpExpr:
		s := FreeVars(e.Left)
		s.Union(FreeVars(e.Right))
		return s

	case *IfThenElseExpr:
		s := FreeVars(e.Cond)
		s.Union(FreeVars(e.Then))
		s.Union(FreeVars(e.Else))
		return s

	case *FuncTypeExpr:
		return freeVarsBinderList(e.Params, e.Ret)

	case *LambdaExpr:
		return freeVarsBinderList(e.Params, e.Body)

	case *CallExpr:
		s := FreeVars(e.Callee)
		for _, a := range e.Args {
			s.Union(FreeVars(a))
		}
		return s

	case *StructExpr:
		s := symbolset.Empty()
		for i, f := range e.Fields {
			fv := FreeVars(f.Type)
			for _, earlier := range e.Fields[:i] {
				if earlier.Name != nil {
					fv.Delete(earlier.Name)
				}
			}
			s.Union(fv)
			fv.Free()
		}
		return s

	case *UnionExpr:
		s := symbolset.Empty()
		for _, f := range e.Fields {
			s.Union(FreeVars(f.Type))
		}
		return s

	case *PackExpr:
		s := FreeVars(e.Type)
		for _, f := range e.Fields {
			s.Union(FreeVars(f.Value))
		}
		return s

	case *MemberExpr:
		return FreeVars(e.Record)

	case *PointerExpr:
		return FreeVars(e.Inner)

	case *ReferenceExpr:
		return FreeVars(e.Inner)

	case *DereferenceExpr:
		return FreeVars(e.Inner)

	case *StmtExpr:
		return FreeVarsStmt(e.Stmt)

	default:
		panic("ast.FreeVars: unhandled expression node")
	}
}

// freeVarsBinderList computes freeVars(body) ∖ boundNames united with, for
// each parameter i, freeVars(Params[i].Type) ∖ {names of params before i}.
// Shared by FuncType and Lambda: FuncType's parameter names may be absent
// (an absent name simply does not bind, handled by the p.Name != nil
// guards below), Lambda's are required by the grammar but the binding
// arithmetic is identical either way.
func freeVarsBinderList(params []Param, body Expr) *symbolset.Set {
	result := FreeVars(body)
	for _, p := range params {
		if p.Name != nil {
			result.Delete(p.Name)
		}
	}
	for i, p := range params {
		fv := FreeVars(p.Type)
		for _, earlier := range params[:i] {
			if earlier.Name != nil {
				fv.Delete(earlier.Name)
			}
		}
		result.Union(fv)
		fv.Free()
	}
	return result
}

// FreeVarsStmt returns the free variables of a statement.
func FreeVarsStmt(s Stmt) *symbolset.Set {
	if s == nil {
		return symbolset.Empty()
	}
	switch st := s.(type) {
	case *EmptyStmt:
		return symbolset.Empty()

	case *ExprStmt:
		return FreeVars(st.Expr)

	case *ReturnStmt:
		return FreeVars(st.Value)

	case *BlockStmt:
		return FreeVarsBlock(st.Block)

	case *DeclStmt:
		s := FreeVars(st.Type)
		if st.Initial != nil {
			s.Union(FreeVars(st.Initial))
		}
		return s

	case *IfThenElseStmt:
		s := symbolset.Empty()
		for _, c := range st.Clauses {
			s.Union(FreeVars(c.Cond))
			s.Union(FreeVarsBlock(c.Then))
		}
		s.Union(FreeVarsBlock(st.Else))
		return s

	default:
		panic("ast.FreeVarsStmt: unhandled statement node")
	}
}

// declaredName reports the name a statement declares into the enclosing
// block's later statements, or nil if it declares none.
func declaredName(s Stmt) *symbol.Symbol {
	if d, ok := s.(*DeclStmt); ok {
		return d.Name
	}
	return nil
}

// FreeVarsBlock computes the free variables of a block by the
// right-to-left fold in spec.md §4.F: starting from ∅, walk statements
// from last to first; when a statement is a Decl with name d, delete d
// from the accumulated set (it must not leak past its own declaration)
// before unioning in the statement's own free variables. This is what
// makes a declaration bind all later statements in the block without
// binding its own initializer.
func FreeVarsBlock(b *Block) *symbolset.Set {
	result := symbolset.Empty()
	if b == nil {
		return result
	}
	for i := len(b.Stmts) - 1; i >= 0; i-- {
		stmt := b.Stmts[i]
		if name := declaredName(stmt); name != nil {
			result.Delete(name)
		}
		fv := FreeVarsStmt(stmt)
		result.Union(fv)
		fv.Free()
	}
	return result
}
