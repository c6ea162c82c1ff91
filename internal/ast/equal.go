package ast

// Equal decides structural equality of two expressions: same tag,
// pairwise-equal payloads, recursively (spec.md's component D). This is
// not α-equivalence — binders are compared by symbol identity, exactly as
// spec.md §4.D requires; a client wanting α-equivalence normalizes first.
func Equal(x, y Expr) bool {
	if x == nil || y == nil {
		return x == nil && y == nil
	}
	switch a := x.(type) {
	case *LiteralExpr:
		b, ok := y.(*LiteralExpr)
		return ok && equalLiteral(a.Value, b.Value)

	case *IdentExpr:
		b, ok := y.(*IdentExpr)
		return ok && a.Name == b.Name

	case *BinOpExpr:
		b, ok := y.(*BinOpExpr)
		// spec.md §9 flags the source's `op != op` inversion bug; this
		// compares operators with == as intended.
		return ok && a.Op == b.Op && Equal(a.Left, b.Left) && Equal(a.Right, b.Right)

	case *IfThenElseExpr:
		b, ok := y.(*IfThenElseExpr)
		return ok && Equal(a.Cond, b.Cond) && Equal(a.Then, b.Then) && Equal(a.Else, b.Else)

	case *FuncTypeExpr:
		b, ok := y.(*FuncTypeExpr)
		return ok && equalParams(a.Params, b.Params) && Equal(a.Ret, b.Ret)

	case *LambdaExpr:
		b, ok := y.(*LambdaExpr)
		return ok && equalParams(a.Params, b.Params) && Equal(a.Body, b.Body)

	case *CallExpr:
		b, ok := y.(*CallExpr)
		if !ok || !Equal(a.Callee, b.Callee) || len(a.Args) != len(b.Args) {
			return false
		}
		for i := range a.Args {
			if !Equal(a.Args[i], b.Args[i]) {
				return false
			}
		}
		return true

	case *StructExpr:
		b, ok := y.(*StructExpr)
		return ok && equalParams(a.Fields, b.Fields)

	case *UnionExpr:
		b, ok := y.(*UnionExpr)
		return ok && equalParams(a.Fields, b.Fields)

	case *PackExpr:
		b, ok := y.(*PackExpr)
		if !ok || !Equal(a.Type, b.Type) || len(a.Fields) != len(b.Fields) {
			return false
		}
		for i := range a.Fields {
			if a.Fields[i].Name != b.Fields[i].Name || !Equal(a.Fields[i].Value, b.Fields[i].Value) {
				return false
			}
		}
		return true

	case *MemberExpr:
		b, ok := y.(*MemberExpr)
		return ok && a.Field == b.Field && Equal(a.Record, b.Record)

	case *PointerExpr:
		b, ok := y.(*PointerExpr)
		return ok && Equal(a.Inner, b.Inner)

	case *ReferenceExpr:
		b, ok := y.(*ReferenceExpr)
		return ok && Equal(a.Inner, b.Inner)

	case *DereferenceExpr:
		b, ok := y.(*DereferenceExpr)
		return ok && Equal(a.Inner, b.Inner)

	case *StmtExpr:
		b, ok := y.(*StmtExpr)
		// spec.md §9: statement-wrapped equality was TODO in the source;
		// this specifies it as structural equality over statements.
		return ok && EqualStmt(a.Stmt, b.Stmt)

	default:
		return false
	}
}

func equalLiteral(a, b Literal) bool {
	if a.Kind != b.Kind {
		return false
	}
	switch a.Kind {
	case LitIntegral:
		return a.Integral == b.Integral
	case LitBoolean:
		return a.Boolean == b.Boolean
	default:
		return true
	}
}

func equalParams(a, b []Param) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i].Name != b[i].Name || !Equal(a[i].Type, b[i].Type) {
			return false
		}
	}
	return true
}

// EqualStmt decides structural equality of two statements.
func EqualStmt(x, y Stmt) bool {
	if x == nil || y == nil {
		return x == nil && y == nil
	}
	switch a := x.(type) {
	case *EmptyStmt:
		_, ok := y.(*EmptyStmt)
		return ok

	case *ExprStmt:
		b, ok := y.(*ExprStmt)
		return ok && Equal(a.Expr, b.Expr)

	case *ReturnStmt:
		b, ok := y.(*ReturnStmt)
		return ok && Equal(a.Value, b.Value)

	case *BlockStmt:
		b, ok := y.(*BlockStmt)
		return ok && EqualBlock(a.Block, b.Block)

	case *DeclStmt:
		b, ok := y.(*DeclStmt)
		if !ok || a.Name != b.Name || !Equal(a.Type, b.Type) {
			return false
		}
		if (a.Initial == nil) != (b.Initial == nil) {
			return false
		}
		return a.Initial == nil || Equal(a.Initial, b.Initial)

	case *IfThenElseStmt:
		b, ok := y.(*IfThenElseStmt)
		if !ok || len(a.Clauses) != len(b.Clauses) {
			return false
		}
		for i := range a.Clauses {
			if !Equal(a.Clauses[i].Cond, b.Clauses[i].Cond) || !EqualBlock(a.Clauses[i].Then, b.Clauses[i].Then) {
				return false
			}
		}
		return EqualBlock(a.Else, b.Else)

	default:
		return false
	}
}

// EqualBlock decides structural equality of two blocks. A nil block
// equals only another nil block.
func EqualBlock(a, b *Block) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	if len(a.Stmts) != len(b.Stmts) {
		return false
	}
	for i := range a.Stmts {
		if !EqualStmt(a.Stmts[i], b.Stmts[i]) {
			return false
		}
	}
	return true
}
