// Package typecheck implements the external type checker and evaluator
// contracts declared (but not specified) by spec.md §4's data model: type
// inference, type checking against an expected type, type-level
// equality up to α-equivalence, and a small reduction evaluator used to
// bring type-level terms to a comparable normal form. It is the
// principal client of internal/ast's equality, copy, free-variable, and
// substitution operations, mirroring how the teacher's validator package
// drives its own ast package to do the analogous job for WGSL.
package typecheck

import (
	"fmt"

	"codeberg.org/saruga/dtlc/internal/ast"
	"codeberg.org/saruga/dtlc/internal/diagnostic"
	"codeberg.org/saruga/dtlc/internal/symbol"
)

// Env binds names to their types within the scope currently being
// checked. It is never mutated destructively across a recursive
// descent: each extension returns a new map sharing the parent's
// entries, the same "persistent environment" shape spec.md implies by
// passing a context by reference into every operation.
type Env map[*symbol.Symbol]ast.Expr

// extend returns a new Env equal to e plus (name -> typ), without
// mutating e.
func (e Env) extend(name *symbol.Symbol, typ ast.Expr) Env {
	out := make(Env, len(e)+1)
	for k, v := range e {
		out[k] = v
	}
	out[name] = typ
	return out
}

// Checker holds the state threaded through a single translation unit's
// worth of type checking: the symbol registry (needed by ast.Subst for
// gensym) and the diagnostics accumulated so far.
type Checker struct {
	Reg   *symbol.Registry
	Diags *diagnostic.List
}

// NewChecker creates a Checker over reg, reporting into diags.
func NewChecker(reg *symbol.Registry, diags *diagnostic.List) *Checker {
	return &Checker{Reg: reg, Diags: diags}
}

var typeOfType ast.Expr = &ast.LiteralExpr{Value: ast.Literal{Kind: ast.LitType}}
var typeOfBool ast.Expr = &ast.LiteralExpr{Value: ast.Literal{Kind: ast.LitBoolType}}
var typeOfU64 ast.Expr = &ast.LiteralExpr{Value: ast.Literal{Kind: ast.LitU64}}

func isTypeLiteral(k ast.LiteralKind) bool {
	switch k {
	case ast.LitType, ast.LitVoid, ast.LitU8, ast.LitS8, ast.LitU16, ast.LitS16,
		ast.LitU32, ast.LitS32, ast.LitU64, ast.LitS64, ast.LitBoolType:
		return true
	default:
		return false
	}
}

// TypeInfer synthesizes the type of expr under env, or reports a
// diagnostic and returns nil.
func (c *Checker) TypeInfer(env Env, expr ast.Expr) ast.Expr {
	switch e := expr.(type) {
	case *ast.LiteralExpr:
		if isTypeLiteral(e.Value.Kind) {
			return typeOfType
		}
		if e.Value.Kind == ast.LitIntegral {
			return typeOfU64
		}
		return typeOfBool

	case *ast.IdentExpr:
		if t, ok := env[e.Name]; ok {
			return t
		}
		c.Diags.AddError(pos(e), diagnostic.CodeUndefinedSymbol, "undefined symbol %q", e.Name)
		return nil

	case *ast.BinOpExpr:
		lt := c.TypeInfer(env, e.Left)
		rt := c.TypeInfer(env, e.Right)
		if lt == nil || rt == nil {
			return nil
		}
		if !c.TypeEqual(env, lt, rt) {
			c.Diags.AddError(pos(e), diagnostic.CodeInvalidOperand, "operand type mismatch")
			return nil
		}
		switch e.Op {
		case ast.OpEq, ast.OpNe, ast.OpLt, ast.OpLe, ast.OpGt, ast.OpGe:
			return typeOfBool
		case ast.OpAndThen:
			return rt
		default: // OpAdd, OpSub
			return lt
		}

	case *ast.IfThenElseExpr:
		ct := c.TypeInfer(env, e.Cond)
		if ct == nil {
			return nil
		}
		tt := c.TypeInfer(env, e.Then)
		et := c.TypeInfer(env, e.Else)
		if tt == nil || et == nil {
			return nil
		}
		if !c.TypeEqual(env, tt, et) {
			c.Diags.AddError(pos(e), diagnostic.CodeTypeMismatch, "then/else branches disagree on type")
			return nil
		}
		return tt

	case *ast.FuncTypeExpr, *ast.StructExpr, *ast.UnionExpr:
		if !c.checkBinderListIsWellFormed(env, expr) {
			return nil
		}
		return typeOfType

	case *ast.LambdaExpr:
		bodyEnv := env
		for _, p := range e.Params {
			if c.TypeInfer(bodyEnv, p.Type) == nil {
				return nil
			}
			if p.Name != nil {
				bodyEnv = bodyEnv.extend(p.Name, p.Type)
			}
		}
		bodyTy := c.TypeInfer(bodyEnv, e.Body)
		if bodyTy == nil {
			return nil
		}
		return &ast.FuncTypeExpr{Params: e.Params, Ret: bodyTy}

	case *ast.CallExpr:
		return c.inferCall(env, e)

	case *ast.PackExpr:
		return c.inferPack(env, e)

	case *ast.MemberExpr:
		return c.inferMember(env, e)

	case *ast.PointerExpr:
		if c.TypeInfer(env, e.Inner) == nil {
			return nil
		}
		return typeOfType

	case *ast.ReferenceExpr:
		t := c.TypeInfer(env, e.Inner)
		if t == nil {
			return nil
		}
		return &ast.PointerExpr{Inner: t}

	case *ast.DereferenceExpr:
		t := c.TypeEval(env, c.TypeInfer(env, e.Inner))
		ptr, ok := t.(*ast.PointerExpr)
		if !ok {
			c.Diags.AddError(pos(e), diagnostic.CodeNotAPointer, "dereference of a non-pointer")
			return nil
		}
		return ptr.Inner

	case *ast.StmtExpr:
		return c.inferStmt(env, e.Stmt)

	default:
		panic(fmt.Sprintf("typecheck.TypeInfer: unhandled expression %T", expr))
	}
}

func (c *Checker) checkBinderListIsWellFormed(env Env, expr ast.Expr) bool {
	var params []ast.Param
	var ret ast.Expr
	switch e := expr.(type) {
	case *ast.FuncTypeExpr:
		params, ret = e.Params, e.Ret
	case *ast.StructExpr:
		params = e.Fields
	case *ast.UnionExpr:
		params = e.Fields
	}
	cur := env
	for _, p := range params {
		if c.TypeInfer(cur, p.Type) == nil {
			return false
		}
		if p.Name != nil {
			cur = cur.extend(p.Name, p.Type)
		}
	}
	if ret != nil {
		return c.TypeInfer(cur, ret) != nil
	}
	return true
}

func (c *Checker) inferCall(env Env, e *ast.CallExpr) ast.Expr {
	calleeTy := c.TypeEval(env, c.TypeInfer(env, e.Callee))
	if calleeTy == nil {
		return nil
	}
	ft, ok := calleeTy.(*ast.FuncTypeExpr)
	if !ok {
		c.Diags.AddError(pos(e), diagnostic.CodeNotCallable, "call of a non-function")
		return nil
	}
	if len(e.Args) != len(ft.Params) {
		c.Diags.AddError(pos(e), diagnostic.CodeInvalidArgCount, "expected %d argument(s), got %d", len(ft.Params), len(e.Args))
		return nil
	}
	// Dependent application: after checking argument i against (possibly
	// already-substituted) parameter i's type, substitute param i's name
	// for the argument in every remaining parameter type and in Ret, so
	// later parameters see concrete values for earlier ones.
	ret := ast.Copy(ft.Ret)
	remaining := make([]ast.Param, len(ft.Params))
	for i, p := range ft.Params {
		remaining[i] = ast.Param{Type: ast.Copy(p.Type), Name: p.Name}
	}
	for i, arg := range e.Args {
		if !c.TypeCheck(env, arg, remaining[i].Type) {
			return nil
		}
		name := remaining[i].Name
		if name == nil {
			continue
		}
		for j := i + 1; j < len(remaining); j++ {
			if !ast.Subst(c.Reg, &remaining[j].Type, name, arg) {
				c.Diags.AddError(pos(e), diagnostic.CodeCaptureRefused, "dependent substitution refused for parameter %q", name)
				return nil
			}
		}
		if !ast.Subst(c.Reg, &ret, name, arg) {
			c.Diags.AddError(pos(e), diagnostic.CodeCaptureRefused, "dependent substitution refused for return type")
			return nil
		}
	}
	return ret
}

func (c *Checker) inferPack(env Env, e *ast.PackExpr) ast.Expr {
	if c.TypeInfer(env, e.Type) == nil {
		return nil
	}
	structTy := c.TypeEval(env, e.Type)
	st, ok := structTy.(*ast.StructExpr)
	if !ok {
		c.Diags.AddError(pos(e), diagnostic.CodeNotAStructValue, "pack of a non-struct type")
		return nil
	}
	if len(e.Fields) != len(st.Fields) {
		c.Diags.AddError(pos(e), diagnostic.CodeMissingField, "expected %d field(s), got %d", len(st.Fields), len(e.Fields))
		return nil
	}
	for i, f := range e.Fields {
		want := st.Fields[i]
		if f.Name != want.Name {
			c.Diags.AddError(pos(e), diagnostic.CodeUnexpectedField, "expected field %q, got %q", want.Name, f.Name)
			return nil
		}
		if !c.TypeCheck(env, f.Value, want.Type) {
			return nil
		}
	}
	return e.Type
}

func (c *Checker) inferMember(env Env, e *ast.MemberExpr) ast.Expr {
	recTy := c.TypeEval(env, c.TypeInfer(env, e.Record))
	st, ok := recTy.(*ast.StructExpr)
	if !ok {
		c.Diags.AddError(pos(e), diagnostic.CodeNotAStructValue, "member access on a non-struct value")
		return nil
	}
	for _, f := range st.Fields {
		if f.Name == e.Field {
			return f.Type
		}
	}
	c.Diags.AddError(pos(e), diagnostic.CodeNoSuchMember, "no field named %q", e.Field)
	return nil
}

func (c *Checker) inferStmt(env Env, s ast.Stmt) ast.Expr {
	switch st := s.(type) {
	case *ast.ExprStmt:
		return c.TypeInfer(env, st.Expr)
	case *ast.ReturnStmt:
		return c.TypeInfer(env, st.Value)
	case *ast.BlockStmt:
		return c.inferBlock(env, st.Block)
	default:
		// Empty, Decl and IfThenElse statements do not themselves
		// produce a value when reached in expression position; they
		// contribute Void.
		if !c.checkStmtWellFormed(env, s) {
			return nil
		}
		return &ast.LiteralExpr{Value: ast.Literal{Kind: ast.LitVoid}}
	}
}

// inferBlock type-checks every statement in order, threading
// declarations into the environment of the statements that follow them,
// and yields the type of the last statement when it is an expression,
// return or nested block statement (Void for any other last statement,
// or an empty block) -- the usual "a block is an expression whose value
// is its last statement" reading of a C-like body.
func (c *Checker) inferBlock(env Env, b *ast.Block) ast.Expr {
	if b == nil || len(b.Stmts) == 0 {
		return &ast.LiteralExpr{Value: ast.Literal{Kind: ast.LitVoid}}
	}
	cur := env
	for i, s := range b.Stmts {
		last := i == len(b.Stmts)-1
		if decl, ok := s.(*ast.DeclStmt); ok {
			if c.TypeInfer(cur, decl.Type) == nil {
				return nil
			}
			if decl.Initial != nil && !c.TypeCheck(cur, decl.Initial, decl.Type) {
				return nil
			}
			cur = cur.extend(decl.Name, decl.Type)
			if last {
				return &ast.LiteralExpr{Value: ast.Literal{Kind: ast.LitVoid}}
			}
			continue
		}
		if last {
			return c.inferStmt(cur, s)
		}
		if c.inferStmt(cur, s) == nil {
			return nil
		}
	}
	return &ast.LiteralExpr{Value: ast.Literal{Kind: ast.LitVoid}}
}

func (c *Checker) checkStmtWellFormed(env Env, s ast.Stmt) bool {
	switch st := s.(type) {
	case *ast.EmptyStmt:
		return true
	case *ast.DeclStmt:
		if c.TypeInfer(env, st.Type) == nil {
			return false
		}
		if st.Initial != nil {
			return c.TypeCheck(env, st.Initial, st.Type)
		}
		return true
	case *ast.IfThenElseStmt:
		for _, cl := range st.Clauses {
			if c.TypeInfer(env, cl.Cond) == nil {
				return false
			}
			if c.inferBlock(env, cl.Then) == nil {
				return false
			}
		}
		return c.inferBlock(env, st.Else) != nil
	default:
		return c.inferStmt(env, s) != nil
	}
}

// TypeCheck verifies that expr has type want under env. An integral
// literal checks against any built-in integer type, even though
// TypeInfer alone gives it u64.
func (c *Checker) TypeCheck(env Env, expr ast.Expr, want ast.Expr) bool {
	if lit, ok := expr.(*ast.LiteralExpr); ok && lit.Value.Kind == ast.LitIntegral {
		if w, ok := c.TypeEval(env, want).(*ast.LiteralExpr); ok {
			switch w.Value.Kind {
			case ast.LitU8, ast.LitS8, ast.LitU16, ast.LitS16, ast.LitU32, ast.LitS32, ast.LitU64, ast.LitS64:
				return true
			}
		}
	}
	got := c.TypeInfer(env, expr)
	if got == nil {
		return false
	}
	if !c.TypeEqual(env, got, want) {
		c.Diags.AddError(pos(expr), diagnostic.CodeTypeMismatch, "type mismatch")
		return false
	}
	return true
}

// TypeEval reduces a type-level term toward a normal form: constant
// folding of BinOp over literal operands and IfThenElse over a literal
// boolean condition. This is deliberately small: it does not call
// ast.Subst and performs no β-reduction, so a Call, an identifier or any
// other form is returned as it is.
func (c *Checker) TypeEval(env Env, t ast.Expr) ast.Expr {
	if t == nil {
		return nil
	}
	switch e := t.(type) {
	case *ast.BinOpExpr:
		l := c.TypeEval(env, e.Left)
		r := c.TypeEval(env, e.Right)
		if lv, ok := l.(*ast.LiteralExpr); ok {
			if rv, ok := r.(*ast.LiteralExpr); ok {
				if folded, ok := foldBinOp(e.Op, lv.Value, rv.Value); ok {
					return &ast.LiteralExpr{Value: folded}
				}
			}
		}
		return &ast.BinOpExpr{Op: e.Op, Left: l, Right: r}

	case *ast.IfThenElseExpr:
		cond := c.TypeEval(env, e.Cond)
		if lit, ok := cond.(*ast.LiteralExpr); ok && lit.Value.Kind == ast.LitBoolean {
			if lit.Value.Boolean {
				return c.TypeEval(env, e.Then)
			}
			return c.TypeEval(env, e.Else)
		}
		return &ast.IfThenElseExpr{Cond: cond, Then: c.TypeEval(env, e.Then), Else: c.TypeEval(env, e.Else)}

	case *ast.IdentExpr:
		return e

	default:
		return t
	}
}

func foldBinOp(op ast.Operator, l, r ast.Literal) (ast.Literal, bool) {
	if l.Kind == ast.LitIntegral && r.Kind == ast.LitIntegral {
		switch op {
		case ast.OpAdd:
			return ast.Literal{Kind: ast.LitIntegral, Integral: l.Integral + r.Integral}, true
		case ast.OpSub:
			return ast.Literal{Kind: ast.LitIntegral, Integral: l.Integral - r.Integral}, true
		case ast.OpEq:
			return boolLit(l.Integral == r.Integral), true
		case ast.OpNe:
			return boolLit(l.Integral != r.Integral), true
		case ast.OpLt:
			return boolLit(l.Integral < r.Integral), true
		case ast.OpLe:
			return boolLit(l.Integral <= r.Integral), true
		case ast.OpGt:
			return boolLit(l.Integral > r.Integral), true
		case ast.OpGe:
			return boolLit(l.Integral >= r.Integral), true
		}
	}
	return ast.Literal{}, false
}

func boolLit(b bool) ast.Literal {
	return ast.Literal{Kind: ast.LitBoolean, Boolean: b}
}

// TypeEqual decides α-equivalence of two type-level terms after
// reduction: it evaluates both sides with TypeEval, then compares them
// up to consistent renaming of bound names, since ast.Equal (component
// D) intentionally compares binders by identity rather than position.
func (c *Checker) TypeEqual(env Env, t1, t2 ast.Expr) bool {
	a := c.TypeEval(env, t1)
	b := c.TypeEval(env, t2)
	return alphaEqual(a, b, newRenaming())
}

func pos(e ast.Expr) diagnostic.Position {
	loc := e.Location()
	return diagnostic.Position{Line: loc.Line, Column: loc.Column}
}
