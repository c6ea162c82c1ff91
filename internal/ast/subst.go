package ast

import (
	"codeberg.org/saruga/dtlc/internal/symbol"
)

// Subst replaces every free occurrence of name within *term by a deep copy
// of replacement, renaming any intervening binder that would otherwise
// capture a free variable of replacement (spec.md's component G).
// replacement is never mutated or consumed; *term is mutated in place —
// term is a pointer to the slot holding the subtree (a struct field, a
// statement's expression, a parameter's type) so that an Ident occurrence
// can be overwritten by an arbitrary replacement node, not just have its
// own fields patched. Returns false when the substitution cannot safely
// proceed (spec.md §7's "substitution refusal": α-renaming a Struct or
// Pack field name would be required, and field names are part of a
// record type's public interface, so no renaming is attempted).
func Subst(reg *symbol.Registry, term *Expr, name *symbol.Symbol, replacement Expr) bool {
	switch e := (*term).(type) {
	case *LiteralExpr:
		return true

	case *IdentExpr:
		if e.Name == name {
			*term = Copy(replacement)
		}
		return true

	case *BinOpExpr:
		if !Subst(reg, &e.Left, name, replacement) {
			return false
		}
		return Subst(reg, &e.Right, name, replacement)

	case *IfThenElseExpr:
		if !Subst(reg, &e.Cond, name, replacement) {
			return false
		}
		if !Subst(reg, &e.Then, name, replacement) {
			return false
		}
		return Subst(reg, &e.Else, name, replacement)

	case *CallExpr:
		if !Subst(reg, &e.Callee, name, replacement) {
			return false
		}
		for i := range e.Args {
			if !Subst(reg, &e.Args[i], name, replacement) {
				return false
			}
		}
		return true

	case *MemberExpr:
		return Subst(reg, &e.Record, name, replacement)

	case *PointerExpr:
		return Subst(reg, &e.Inner, name, replacement)

	case *ReferenceExpr:
		return Subst(reg, &e.Inner, name, replacement)

	case *DereferenceExpr:
		return Subst(reg, &e.Inner, name, replacement)

	case *UnionExpr:
		// Field names do not bind (spec.md §4.G): recurse into every
		// field type unconditionally.
		for i := range e.Fields {
			if !Subst(reg, &e.Fields[i].Type, name, replacement) {
				return false
			}
		}
		return true

	case *FuncTypeExpr:
		return substBinderList(reg, e.Params, &e.Ret, name, replacement)

	case *LambdaExpr:
		return substBinderList(reg, e.Params, &e.Body, name, replacement)

	case *StructExpr:
		return substFieldTypes(reg, e.Fields, name, replacement)

	case *PackExpr:
		// The freeVars(Pack) rule (spec.md §4.F) includes freeVars(type),
		// so a successful substitution must reach it too even though the
		// field-by-field walk in spec.md §4.G only enumerates the
		// assignment expressions; omitting this would violate invariant
		// 5 (freeVars(result) ⊆ (freeVars(term) ∖ {name}) ∪ freeVars(r)).
		if !Subst(reg, &e.Type, name, replacement) {
			return false
		}
		return substFieldInits(reg, e.Fields, name, replacement)

	case *StmtExpr:
		return SubstStmt(reg, e.Stmt, name, replacement)

	default:
		panic("ast.Subst: unhandled expression node")
	}
}

// substBinderList implements the FuncType/Lambda substitution rule
// (spec.md §4.G): F is computed once; each parameter's type is
// substituted in order; a parameter name equal to name shadows it for
// everything after (stop, ok); a parameter name free in replacement would
// be captured, so it is renamed via a fresh gensym and that rename is
// propagated into every later parameter type and into tail before the
// outer loop's own substitution reaches them.
func substBinderList(reg *symbol.Registry, params []Param, tail *Expr, name *symbol.Symbol, replacement Expr) bool {
	F := FreeVars(replacement)
	defer F.Free()

	for i := range params {
		if !Subst(reg, &params[i].Type, name, replacement) {
			return false
		}
		if params[i].Name == name {
			return true
		}
		if params[i].Name != nil && F.Contains(params[i].Name) {
			old := params[i].Name
			fresh := reg.Gensym(old)
			params[i].Name = fresh
			freshIdent := Expr(&IdentExpr{Name: fresh})
			if !substBinderList(reg, params[i+1:], tail, old, freshIdent) {
				return false
			}
		}
	}
	return Subst(reg, tail, name, replacement)
}

// substFieldTypes implements Struct's substitution rule: no renaming of
// field names is attempted on capture, since they are part of the
// struct's public type identity; capture is reported as failure instead.
func substFieldTypes(reg *symbol.Registry, fields []Param, name *symbol.Symbol, replacement Expr) bool {
	F := FreeVars(replacement)
	defer F.Free()

	for i := range fields {
		if !Subst(reg, &fields[i].Type, name, replacement) {
			return false
		}
		if fields[i].Name == name {
			return true
		}
		if fields[i].Name != nil && F.Contains(fields[i].Name) {
			return false
		}
	}
	return true
}

// substFieldInits implements Pack's substitution rule, mirroring
// substFieldTypes over assignment expressions instead of field types.
func substFieldInits(reg *symbol.Registry, fields []FieldInit, name *symbol.Symbol, replacement Expr) bool {
	F := FreeVars(replacement)
	defer F.Free()

	for i := range fields {
		if !Subst(reg, &fields[i].Value, name, replacement) {
			return false
		}
		if fields[i].Name == name {
			return true
		}
		if fields[i].Name != nil && F.Contains(fields[i].Name) {
			return false
		}
	}
	return true
}

// SubstStmt substitutes into a single statement's own expression fields.
// It does not decide whether a Decl's name shadows or captures later
// sibling statements — that is SubstBlock's responsibility, since the
// scoping unit for a declaration is the enclosing block, not the
// statement itself.
func SubstStmt(reg *symbol.Registry, s Stmt, name *symbol.Symbol, replacement Expr) bool {
	switch st := s.(type) {
	case *EmptyStmt:
		return true

	case *ExprStmt:
		return Subst(reg, &st.Expr, name, replacement)

	case *ReturnStmt:
		return Subst(reg, &st.Value, name, replacement)

	case *BlockStmt:
		return SubstBlock(reg, st.Block, name, replacement)

	case *DeclStmt:
		if !Subst(reg, &st.Type, name, replacement) {
			return false
		}
		if st.Initial != nil {
			if !Subst(reg, &st.Initial, name, replacement) {
				return false
			}
		}
		return true

	case *IfThenElseStmt:
		for i := range st.Clauses {
			if !Subst(reg, &st.Clauses[i].Cond, name, replacement) {
				return false
			}
			if !SubstBlock(reg, st.Clauses[i].Then, name, replacement) {
				return false
			}
		}
		return SubstBlock(reg, st.Else, name, replacement)

	default:
		panic("ast.SubstStmt: unhandled statement node")
	}
}

// SubstBlock substitutes name -> replacement through a block, honoring
// the rule that a Decl binds every statement after it in the same block
// (spec.md §4.F/§4.G) but not its own initializer. A nil block is a
// no-op.
func SubstBlock(reg *symbol.Registry, block *Block, name *symbol.Symbol, replacement Expr) bool {
	if block == nil {
		return true
	}
	return substBlockRange(reg, block.Stmts, name, replacement)
}

// substBlockRange substitutes into stmts in order. When it reaches a Decl
// whose name shadows the target, it stops propagating into the
// remainder (the target is no longer free there). When a Decl's name
// would be captured by replacement's free variables, it renames that
// declaration via gensym and recurses once to propagate the rename
// through the remainder before the outer loop's own substitution
// continues into it — mirroring substBinderList's same two-pass shape at
// block granularity.
func substBlockRange(reg *symbol.Registry, stmts []Stmt, name *symbol.Symbol, replacement Expr) bool {
	F := FreeVars(replacement)
	defer F.Free()

	for i := 0; i < len(stmts); i++ {
		if !SubstStmt(reg, stmts[i], name, replacement) {
			return false
		}
		decl, ok := stmts[i].(*DeclStmt)
		if !ok {
			continue
		}
		if decl.Name == name {
			return true
		}
		if decl.Name != nil && F.Contains(decl.Name) {
			old := decl.Name
			fresh := reg.Gensym(old)
			decl.Name = fresh
			freshIdent := Expr(&IdentExpr{Name: fresh})
			if !substBlockRange(reg, stmts[i+1:], old, freshIdent) {
				return false
			}
		}
	}
	return true
}
