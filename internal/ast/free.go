package ast

// Free recursively releases a term's owned subtrees and zeroes its own
// storage (spec.md's component H). Symbol handles are borrowed from a
// registry, never owned by the node, so Free clears the pointer fields
// that reference them without attempting to deallocate the symbols
// themselves. Freeing an already-freed (zeroed) node is a no-op: its
// child fields are already nil, so recursing into them returns
// immediately. The caller must not use x, or any subtree reachable from
// it before the call, afterward.
func Free(x Expr) {
	if x == nil {
		return
	}
	switch e := x.(type) {
	case *LiteralExpr:
		e.Value = Literal{}

	case *IdentExpr:
		e.Name = nil

	case *BinOpExpr:
		Free(e.Left)
		Free(e.Right)
		e.Left, e.Right = nil, nil
		e.Op = 0

	case *IfThenElseExpr:
		Free(e.Cond)
		Free(e.Then)
		Free(e.Else)
		e.Cond, e.Then, e.Else = nil, nil, nil

	case *FuncTypeExpr:
		freeParams(e.Params)
		Free(e.Ret)
		e.Params = nil
		e.Ret = nil

	case *LambdaExpr:
		freeParams(e.Params)
		Free(e.Body)
		e.Params = nil
		e.Body = nil

	case *CallExpr:
		Free(e.Callee)
		for _, a := range e.Args {
			Free(a)
		}
		e.Callee = nil
		e.Args = nil

	case *StructExpr:
		freeParams(e.Fields)
		e.Fields = nil

	case *UnionExpr:
		freeParams(e.Fields)
		e.Fields = nil

	case *PackExpr:
		Free(e.Type)
		for i := range e.Fields {
			Free(e.Fields[i].Value)
			e.Fields[i].Value = nil
			e.Fields[i].Name = nil
		}
		e.Type = nil
		e.Fields = nil

	case *MemberExpr:
		Free(e.Record)
		e.Record = nil
		e.Field = nil

	case *PointerExpr:
		Free(e.Inner)
		e.Inner = nil

	case *ReferenceExpr:
		Free(e.Inner)
		e.Inner = nil

	case *DereferenceExpr:
		Free(e.Inner)
		e.Inner = nil

	case *StmtExpr:
		FreeStmt(e.Stmt)
		e.Stmt = nil

	default:
		panic("ast.Free: unhandled expression node")
	}
}

func freeParams(params []Param) {
	for i := range params {
		Free(params[i].Type)
		params[i].Type = nil
		params[i].Name = nil
	}
}

// FreeStmt recursively releases a statement's owned subtrees.
func FreeStmt(s Stmt) {
	if s == nil {
		return
	}
	switch st := s.(type) {
	case *EmptyStmt:
		// no owned storage

	case *ExprStmt:
		Free(st.Expr)
		st.Expr = nil

	case *ReturnStmt:
		Free(st.Value)
		st.Value = nil

	case *BlockStmt:
		FreeBlock(st.Block)
		st.Block = nil

	case *DeclStmt:
		Free(st.Type)
		st.Type = nil
		if st.Initial != nil {
			Free(st.Initial)
			st.Initial = nil
		}
		st.Name = nil

	case *IfThenElseStmt:
		for i := range st.Clauses {
			Free(st.Clauses[i].Cond)
			FreeBlock(st.Clauses[i].Then)
			st.Clauses[i].Cond = nil
			st.Clauses[i].Then = nil
		}
		st.Clauses = nil
		FreeBlock(st.Else)
		st.Else = nil

	default:
		panic("ast.FreeStmt: unhandled statement node")
	}
}

// FreeBlock recursively releases every statement in a block. A nil block
// is a no-op.
func FreeBlock(b *Block) {
	if b == nil {
		return
	}
	for _, s := range b.Stmts {
		FreeStmt(s)
	}
	b.Stmts = nil
}
