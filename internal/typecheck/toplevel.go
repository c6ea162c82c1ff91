package typecheck

import (
	"codeberg.org/saruga/dtlc/internal/ast"
	"codeberg.org/saruga/dtlc/internal/diagnostic"
	"codeberg.org/saruga/dtlc/internal/symbol"
)

// TopologicalSort orders tu's top-levels so that every top-level
// referenced by another's signature or body comes first, the way the
// teacher's uniformity analyzer walks a function body to decide
// control-flow properties before accepting a whole module. A cycle
// (direct or indirect self-reference) is reported against the
// top-level where it is discovered and the whole sort fails.
func TopologicalSort(diags *diagnostic.List, tu *ast.TranslationUnit) ([]*ast.TopLevel, bool) {
	byName := make(map[*symbol.Symbol]*ast.TopLevel, len(tu.TopLevels))
	for _, top := range tu.TopLevels {
		byName[top.Name] = top
	}

	const (
		unvisited = iota
		visiting
		done
	)
	state := make(map[*symbol.Symbol]int, len(tu.TopLevels))
	var order []*ast.TopLevel

	var visit func(top *ast.TopLevel) bool
	visit = func(top *ast.TopLevel) bool {
		switch state[top.Name] {
		case done:
			return true
		case visiting:
			diags.AddError(pos(top.ReturnType), diagnostic.CodeCyclicTopLevels,
				"cyclic dependency involving top-level %q", top.Name)
			return false
		}
		state[top.Name] = visiting
		for _, dep := range topLevelDeps(top) {
			depTop, ok := byName[dep]
			if !ok {
				continue // refers to a name outside this translation unit's top-levels
			}
			if !visit(depTop) {
				return false
			}
		}
		state[top.Name] = done
		order = append(order, top)
		return true
	}

	for _, top := range tu.TopLevels {
		if !visit(top) {
			return nil, false
		}
	}
	return order, true
}

// topLevelDeps is the set of other top-level names top's signature and
// body refer to freely, minus its own parameter names (which shadow any
// same-named top-level within top's own scope).
func topLevelDeps(top *ast.TopLevel) []*symbol.Symbol {
	fv := ast.FreeVars(top.ReturnType)
	fv.Union(ast.FreeVars(top.Body))
	for _, p := range top.Params {
		fv.Union(ast.FreeVars(p.Type))
		if p.Name != nil {
			fv.Delete(p.Name)
		}
	}
	return fv.Slice()
}

// CheckTranslationUnit type-checks every top-level definition in tu,
// in dependency order, so a top-level calling another already has that
// callee's signature available in env. It returns false as soon as
// TopologicalSort fails or any top-level fails to check; Checker.Diags
// holds the full diagnostic list either way.
func (c *Checker) CheckTranslationUnit(tu *ast.TranslationUnit) bool {
	order, ok := TopologicalSort(c.Diags, tu)
	if !ok {
		return false
	}
	env := Env{}
	for _, top := range order {
		sig := c.TypeCheckTopLevel(env, top)
		if sig == nil {
			return false
		}
		env = env.extend(top.Name, sig)
	}
	return true
}

// TypeCheckTopLevel checks a single top-level definition's body against
// its declared return type and returns the dependent FuncType other
// top-levels should see it as, or nil on failure.
func (c *Checker) TypeCheckTopLevel(env Env, top *ast.TopLevel) ast.Expr {
	bodyEnv := env
	for _, p := range top.Params {
		if c.TypeInfer(bodyEnv, p.Type) == nil {
			return nil
		}
		if p.Name != nil {
			bodyEnv = bodyEnv.extend(p.Name, p.Type)
		}
	}
	if c.TypeInfer(bodyEnv, top.ReturnType) == nil {
		return nil
	}
	if !c.TypeCheck(bodyEnv, top.Body, top.ReturnType) {
		return nil
	}
	return &ast.FuncTypeExpr{Params: top.Params, Ret: top.ReturnType}
}
