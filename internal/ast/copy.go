package ast

// Copy produces an independent tree with the same structural shape and
// payloads as x (spec.md's component E). Child expressions are copied
// recursively; interned symbol handles are shared, never copied;
// locations are copied verbatim.
func Copy(x Expr) Expr {
	if x == nil {
		return nil
	}
	switch e := x.(type) {
	case *LiteralExpr:
		return &LiteralExpr{baseExpr: e.baseExpr, Value: e.Value}

	case *IdentExpr:
		return &IdentExpr{baseExpr: e.baseExpr, Name: e.Name}

	case *BinOpExpr:
		return &BinOpExpr{baseExpr: e.baseExpr, Op: e.Op, Left: Copy(e.Left), Right: Copy(e.Right)}

	case *IfThenElseExpr:
		return &IfThenElseExpr{baseExpr: e.baseExpr, Cond: Copy(e.Cond), Then: Copy(e.Then), Else: Copy(e.Else)}

	case *FuncTypeExpr:
		return &FuncTypeExpr{baseExpr: e.baseExpr, Params: copyParams(e.Params), Ret: Copy(e.Ret)}

	case *LambdaExpr:
		return &LambdaExpr{baseExpr: e.baseExpr, Params: copyParams(e.Params), Body: Copy(e.Body)}

	case *CallExpr:
		return &CallExpr{baseExpr: e.baseExpr, Callee: Copy(e.Callee), Args: copyExprs(e.Args)}

	case *StructExpr:
		return &StructExpr{baseExpr: e.baseExpr, Fields: copyParams(e.Fields)}

	case *UnionExpr:
		return &UnionExpr{baseExpr: e.baseExpr, Fields: copyParams(e.Fields)}

	case *PackExpr:
		fields := make([]FieldInit, len(e.Fields))
		for i, f := range e.Fields {
			fields[i] = FieldInit{Name: f.Name, Value: Copy(f.Value)}
		}
		return &PackExpr{baseExpr: e.baseExpr, Type: Copy(e.Type), Fields: fields}

	case *MemberExpr:
		return &MemberExpr{baseExpr: e.baseExpr, Record: Copy(e.Record), Field: e.Field}

	case *PointerExpr:
		return &PointerExpr{baseExpr: e.baseExpr, Inner: Copy(e.Inner)}

	case *ReferenceExpr:
		return &ReferenceExpr{baseExpr: e.baseExpr, Inner: Copy(e.Inner)}

	case *DereferenceExpr:
		return &DereferenceExpr{baseExpr: e.baseExpr, Inner: Copy(e.Inner)}

	case *StmtExpr:
		return &StmtExpr{baseExpr: e.baseExpr, Stmt: CopyStmt(e.Stmt)}

	default:
		panic("ast.Copy: unhandled expression node")
	}
}

func copyParams(params []Param) []Param {
	out := make([]Param, len(params))
	for i, p := range params {
		out[i] = Param{Type: Copy(p.Type), Name: p.Name}
	}
	return out
}

func copyExprs(exprs []Expr) []Expr {
	out := make([]Expr, len(exprs))
	for i, e := range exprs {
		out[i] = Copy(e)
	}
	return out
}

// CopyStmt produces an independent copy of a statement.
func CopyStmt(s Stmt) Stmt {
	if s == nil {
		return nil
	}
	switch st := s.(type) {
	case *EmptyStmt:
		return &EmptyStmt{baseStmt: st.baseStmt}

	case *ExprStmt:
		return &ExprStmt{baseStmt: st.baseStmt, Expr: Copy(st.Expr)}

	case *ReturnStmt:
		return &ReturnStmt{baseStmt: st.baseStmt, Value: Copy(st.Value)}

	case *BlockStmt:
		return &BlockStmt{baseStmt: st.baseStmt, Block: CopyBlock(st.Block)}

	case *DeclStmt:
		var initial Expr
		if st.Initial != nil {
			initial = Copy(st.Initial)
		}
		return &DeclStmt{baseStmt: st.baseStmt, Type: Copy(st.Type), Name: st.Name, Initial: initial}

	case *IfThenElseStmt:
		clauses := make([]CondBlock, len(st.Clauses))
		for i, c := range st.Clauses {
			clauses[i] = CondBlock{Cond: Copy(c.Cond), Then: CopyBlock(c.Then)}
		}
		return &IfThenElseStmt{baseStmt: st.baseStmt, Clauses: clauses, Else: CopyBlock(st.Else)}

	default:
		panic("ast.CopyStmt: unhandled statement node")
	}
}

// CopyBlock produces an independent copy of a block. Copying a nil block
// returns nil.
func CopyBlock(b *Block) *Block {
	if b == nil {
		return nil
	}
	stmts := make([]Stmt, len(b.Stmts))
	for i, s := range b.Stmts {
		stmts[i] = CopyStmt(s)
	}
	return &Block{Stmts: stmts}
}
