package parser

import (
	"fmt"

	plex "github.com/alecthomas/participle/v2/lexer"

	"codeberg.org/saruga/dtlc/internal/ast"
	"codeberg.org/saruga/dtlc/internal/builtins"
	"codeberg.org/saruga/dtlc/internal/symbol"
)

// converter lowers a participle concrete syntax tree into internal/ast
// values, interning every identifier it meets through reg (mirroring
// the dingo example's convertToGoAST, which threads a single
// conversion context through an otherwise-stateless recursive walk).
type converter struct {
	reg *symbol.Registry
}

// locatable is satisfied by every concrete ast.Expr/ast.Stmt node: each
// embeds a baseExpr or baseStmt, which provides SetLoc.
type locatable interface {
	SetLoc(ast.Loc)
}

// at stamps a freshly-constructed node with pos and returns it, letting
// every convert* function build a node and record its origin in one
// expression.
func at[T locatable](n T, pos plex.Position) T {
	n.SetLoc(toLoc(pos))
	return n
}

// Convert lowers file into a TranslationUnit.
func Convert(reg *symbol.Registry, file *File) (*ast.TranslationUnit, error) {
	c := &converter{reg: reg}
	tops := make([]*ast.TopLevel, len(file.TopLevels))
	for i, tl := range file.TopLevels {
		top, err := c.convertTopLevel(tl)
		if err != nil {
			return nil, err
		}
		tops[i] = top
	}
	return &ast.TranslationUnit{TopLevels: tops}, nil
}

func toLoc(pos plex.Position) ast.Loc {
	return ast.Loc{Line: pos.Line, Column: pos.Column, Valid: true}
}

func (c *converter) convertTopLevel(tl *TopLevel) (*ast.TopLevel, error) {
	retType, err := c.convertExpr(tl.ReturnType)
	if err != nil {
		return nil, err
	}
	params, err := c.convertParamDecls(tl.Params)
	if err != nil {
		return nil, err
	}
	body, err := c.convertBlock(tl.Body)
	if err != nil {
		return nil, err
	}
	return &ast.TopLevel{
		Name:       c.reg.Intern(tl.Name),
		ReturnType: retType,
		Params:     params,
		Body:       at(&ast.StmtExpr{Stmt: at(&ast.BlockStmt{Block: body}, tl.Body.Pos)}, tl.Pos),
	}, nil
}

func (c *converter) convertParamDecls(decls []*ParamDecl) ([]ast.Param, error) {
	out := make([]ast.Param, len(decls))
	for i, d := range decls {
		typ, err := c.convertExpr(d.Type)
		if err != nil {
			return nil, err
		}
		var name *symbol.Symbol
		if d.Name != nil {
			name = c.reg.Intern(*d.Name)
		}
		out[i] = ast.Param{Type: typ, Name: name}
	}
	return out, nil
}

// ----------------------------------------------------------------------------
// Expressions
// ----------------------------------------------------------------------------

func (c *converter) convertExpr(e *AndThenExpr) (ast.Expr, error) {
	left, err := c.convertCompare(e.Left)
	if err != nil {
		return nil, err
	}
	for _, rhs := range e.Rest {
		right, err := c.convertCompare(rhs)
		if err != nil {
			return nil, err
		}
		left = at(&ast.BinOpExpr{Op: ast.OpAndThen, Left: left, Right: right}, e.Pos)
	}
	return left, nil
}

func (c *converter) convertCompare(e *CompareExpr) (ast.Expr, error) {
	left, err := c.convertAdd(e.Left)
	if err != nil {
		return nil, err
	}
	if e.Op == nil {
		return left, nil
	}
	right, err := c.convertAdd(e.Right)
	if err != nil {
		return nil, err
	}
	op, err := compareOp(*e.Op)
	if err != nil {
		return nil, err
	}
	return at(&ast.BinOpExpr{Op: op, Left: left, Right: right}, e.Pos), nil
}

func compareOp(tok string) (ast.Operator, error) {
	switch tok {
	case "==":
		return ast.OpEq, nil
	case "!=":
		return ast.OpNe, nil
	case "<":
		return ast.OpLt, nil
	case "<=":
		return ast.OpLe, nil
	case ">":
		return ast.OpGt, nil
	case ">=":
		return ast.OpGe, nil
	default:
		return 0, fmt.Errorf("parser: unrecognized comparison operator %q", tok)
	}
}

func (c *converter) convertAdd(e *AddExpr) (ast.Expr, error) {
	left, err := c.convertUnary(e.Left)
	if err != nil {
		return nil, err
	}
	for _, op := range e.Rest {
		right, err := c.convertUnary(op.Right)
		if err != nil {
			return nil, err
		}
		kind := ast.OpAdd
		if op.Op == "-" {
			kind = ast.OpSub
		}
		left = at(&ast.BinOpExpr{Op: kind, Left: left, Right: right}, e.Pos)
	}
	return left, nil
}

func (c *converter) convertUnary(e *UnaryExpr) (ast.Expr, error) {
	inner, err := c.convertPostfix(e.Operand)
	if err != nil {
		return nil, err
	}
	if e.Op == nil {
		return inner, nil
	}
	switch *e.Op {
	case "&":
		return at(&ast.ReferenceExpr{Inner: inner}, e.Pos), nil
	case "*":
		return at(&ast.DereferenceExpr{Inner: inner}, e.Pos), nil
	default:
		return nil, fmt.Errorf("parser: unrecognized unary operator %q", *e.Op)
	}
}

func (c *converter) convertPostfix(e *PostfixExpr) (ast.Expr, error) {
	cur, err := c.convertPrimary(e.Primary)
	if err != nil {
		return nil, err
	}
	for _, op := range e.Ops {
		switch {
		case op.Member != nil:
			cur = at(&ast.MemberExpr{Record: cur, Field: c.reg.Intern(*op.Member)}, e.Pos)
		case op.Call != nil:
			args := make([]ast.Expr, len(op.Call.Args))
			for i, a := range op.Call.Args {
				conv, err := c.convertExpr(a)
				if err != nil {
					return nil, err
				}
				args[i] = conv
			}
			cur = at(&ast.CallExpr{Callee: cur, Args: args}, e.Pos)
		case op.Pointer:
			cur = at(&ast.PointerExpr{Inner: cur}, e.Pos)
		case op.Bracket != nil:
			params, err := c.convertParamDecls(op.Bracket.Params)
			if err != nil {
				return nil, err
			}
			cur = at(&ast.FuncTypeExpr{Params: params, Ret: cur}, e.Pos)
		}
	}
	return cur, nil
}

func (c *converter) convertPrimary(e *PrimaryExpr) (ast.Expr, error) {
	switch {
	case e.Struct != nil:
		fields, err := c.convertFieldDecls(e.Struct.Fields)
		if err != nil {
			return nil, err
		}
		return at(&ast.StructExpr{Fields: fields}, e.Pos), nil

	case e.Union != nil:
		fields, err := c.convertFieldDecls(e.Union.Fields)
		if err != nil {
			return nil, err
		}
		return at(&ast.UnionExpr{Fields: fields}, e.Pos), nil

	case e.Pack != nil:
		typ, err := c.convertExpr(e.Pack.Type)
		if err != nil {
			return nil, err
		}
		fields := make([]ast.FieldInit, len(e.Pack.Fields))
		for i, f := range e.Pack.Fields {
			val, err := c.convertExpr(f.Value)
			if err != nil {
				return nil, err
			}
			fields[i] = ast.FieldInit{Name: c.reg.Intern(f.Name), Value: val}
		}
		return at(&ast.PackExpr{Type: typ, Fields: fields}, e.Pos), nil

	case e.Lambda != nil:
		params := make([]ast.Param, len(e.Lambda.Params))
		for i, p := range e.Lambda.Params {
			typ, err := c.convertExpr(p.Type)
			if err != nil {
				return nil, err
			}
			params[i] = ast.Param{Type: typ, Name: c.reg.Intern(p.Name)}
		}
		body, err := c.convertExpr(e.Lambda.Body)
		if err != nil {
			return nil, err
		}
		return at(&ast.LambdaExpr{Params: params, Body: body}, e.Pos), nil

	case e.Int != nil:
		return at(&ast.LiteralExpr{Value: ast.Literal{Kind: ast.LitIntegral, Integral: *e.Int}}, e.Pos), nil

	case e.Paren != nil:
		return c.convertExpr(e.Paren)

	case e.Ident != nil:
		return c.convertIdent(*e.Ident, e.Pos), nil

	default:
		return nil, fmt.Errorf("parser: empty primary expression")
	}
}

// convertIdent resolves an identifier-shaped token to a built-in
// literal keyword, a boolean literal, or a plain identifier reference,
// in that priority order (spec.md's reserved-word list takes the name
// away from ordinary identifier use).
func (c *converter) convertIdent(text string, pos plex.Position) ast.Expr {
	if kind, ok := builtins.LiteralKeyword(text); ok {
		return at(&ast.LiteralExpr{Value: ast.Literal{Kind: kind}}, pos)
	}
	if text == "true" || text == "false" {
		return at(&ast.LiteralExpr{Value: ast.Literal{Kind: ast.LitBoolean, Boolean: text == "true"}}, pos)
	}
	return at(&ast.IdentExpr{Name: c.reg.Intern(text)}, pos)
}

func (c *converter) convertFieldDecls(decls []*FieldDecl) ([]ast.Param, error) {
	out := make([]ast.Param, len(decls))
	for i, d := range decls {
		typ, err := c.convertExpr(d.Type)
		if err != nil {
			return nil, err
		}
		out[i] = ast.Param{Type: typ, Name: c.reg.Intern(d.Name)}
	}
	return out, nil
}

// ----------------------------------------------------------------------------
// Statements
// ----------------------------------------------------------------------------

func (c *converter) convertBlock(b *Block) (*ast.Block, error) {
	if b == nil {
		return &ast.Block{}, nil
	}
	stmts := make([]ast.Stmt, len(b.Stmts))
	for i, s := range b.Stmts {
		conv, err := c.convertStmt(s)
		if err != nil {
			return nil, err
		}
		stmts[i] = conv
	}
	return &ast.Block{Stmts: stmts}, nil
}

func (c *converter) convertStmt(s *Stmt) (ast.Stmt, error) {
	switch {
	case s.Empty:
		return at(&ast.EmptyStmt{}, s.Pos), nil

	case s.Return != nil:
		val, err := c.convertExpr(s.Return.Value)
		if err != nil {
			return nil, err
		}
		return at(&ast.ReturnStmt{Value: val}, s.Pos), nil

	case s.Block != nil:
		blk, err := c.convertBlock(s.Block)
		if err != nil {
			return nil, err
		}
		return at(&ast.BlockStmt{Block: blk}, s.Pos), nil

	case s.If != nil:
		return c.convertIf(s.If, s.Pos)

	case s.Decl != nil:
		typ, err := c.convertExpr(s.Decl.Type)
		if err != nil {
			return nil, err
		}
		var initial ast.Expr
		if s.Decl.Initial != nil {
			initial, err = c.convertExpr(s.Decl.Initial)
			if err != nil {
				return nil, err
			}
		}
		return at(&ast.DeclStmt{
			Type:    typ,
			Name:    c.reg.Intern(s.Decl.Name),
			Initial: initial,
		}, s.Pos), nil

	case s.Expr != nil:
		e, err := c.convertExpr(s.Expr.Expr)
		if err != nil {
			return nil, err
		}
		return at(&ast.ExprStmt{Expr: e}, s.Pos), nil

	default:
		return nil, fmt.Errorf("parser: empty statement")
	}
}

// convertIf flattens a recursive if/else-if/else CST chain into a
// single ast.IfThenElseStmt carrying every clause.
func (c *converter) convertIf(chain *IfStmt, pos plex.Position) (*ast.IfThenElseStmt, error) {
	var clauses []ast.CondBlock
	var elseBlock *ast.Block
	cur := chain
	for cur != nil {
		cond, err := c.convertExpr(cur.Cond)
		if err != nil {
			return nil, err
		}
		then, err := c.convertBlock(cur.Then)
		if err != nil {
			return nil, err
		}
		clauses = append(clauses, ast.CondBlock{Cond: cond, Then: then})
		if cur.Else != nil {
			elseBlock, err = c.convertBlock(cur.Else)
			if err != nil {
				return nil, err
			}
			cur = nil
			continue
		}
		cur = cur.ElseIf
	}
	return at(&ast.IfThenElseStmt{Clauses: clauses, Else: elseBlock}, pos), nil
}
