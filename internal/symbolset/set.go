// Package symbolset implements the finite set of interned symbols used by
// free-variable analysis and capture-avoiding substitution (spec.md's
// component B).
package symbolset

import "codeberg.org/saruga/dtlc/internal/symbol"

// Set is a finite, unordered, duplicate-collapsing set of symbols.
type Set struct {
	m map[*symbol.Symbol]struct{}
}

// Empty returns a new, empty set.
func Empty() *Set {
	return &Set{m: make(map[*symbol.Symbol]struct{})}
}

// Of returns a set containing exactly the given symbols.
func Of(syms ...*symbol.Symbol) *Set {
	s := Empty()
	for _, sym := range syms {
		s.Add(sym)
	}
	return s
}

// Add inserts sym into the set. Inserting a member already present is a
// no-op.
func (s *Set) Add(sym *symbol.Symbol) {
	s.m[sym] = struct{}{}
}

// Delete removes sym from the set, if present.
func (s *Set) Delete(sym *symbol.Symbol) {
	delete(s.m, sym)
}

// Contains reports whether sym is a member of the set.
func (s *Set) Contains(sym *symbol.Symbol) bool {
	_, ok := s.m[sym]
	return ok
}

// Union mutates dst in place so dst = dst ∪ src. src is left unmodified.
func (dst *Set) Union(src *Set) {
	for sym := range src.m {
		dst.m[sym] = struct{}{}
	}
}

// Len returns the number of members.
func (s *Set) Len() int {
	return len(s.m)
}

// Slice returns the members in no particular order.
func (s *Set) Slice() []*symbol.Symbol {
	out := make([]*symbol.Symbol, 0, len(s.m))
	for sym := range s.m {
		out = append(out, sym)
	}
	return out
}

// Free releases the set's storage. Freeing an already-freed set is a
// no-op. Per spec.md's resource-discipline requirement, every operation
// that acquires a temporary set (substitution's freeVars(replacement),
// in particular) must call Free on every exit path, including early
// returns on failure.
func (s *Set) Free() {
	s.m = nil
}
