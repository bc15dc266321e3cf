// Package assump implements the assumption set (§4.2): the pending
// requirements that free names accumulate while the constraint generator
// walks bottom-up, before any enclosing binder has been reached. This is
// what lets generation proceed without a pre-existing environment and
// makes mutually recursive top-level bindings (letrec) fall out for
// free: a use just accumulates an assumption, and whichever binder (or
// batch-level discharge) comes along later resolves it.
package assump

import (
	"sort"

	ast "github.com/tmplang/typecheck/internal/syntax"
	"github.com/tmplang/typecheck/internal/itype"
)

// Set maps a free name to the list of inference types it has been used
// at so far. It is mutated only by the generator (§5).
type Set[A any] struct {
	m map[ast.Name][]*itype.IType[A]
}

// New returns an empty assumption set.
func New[A any]() *Set[A] {
	return &Set[A]{m: make(map[ast.Name][]*itype.IType[A])}
}

// Add appends t to n's assumption list.
func (s *Set[A]) Add(n ast.Name, t *itype.IType[A]) {
	s.m[n] = append(s.m[n], t)
}

// Lookup returns n's assumption list, or nil if n has none pending.
func (s *Set[A]) Lookup(n ast.Name) []*itype.IType[A] {
	return s.m[n]
}

// Delete removes n's entry entirely.
func (s *Set[A]) Delete(n ast.Name) {
	delete(s.m, n)
}

// SetList replaces n's assumption list wholesale.
func (s *Set[A]) SetList(n ast.Name, list []*itype.IType[A]) {
	if list == nil {
		delete(s.m, n)
		return
	}
	s.m[n] = list
}

// Names returns the currently-pending names in sorted order, for
// deterministic iteration by callers such as the incremental driver.
func (s *Set[A]) Names() []ast.Name {
	out := make([]ast.Name, 0, len(s.m))
	for n := range s.m {
		out = append(out, n)
	}
	sort.Strings(out)
	return out
}

// WithBindings implements the lexical-scoping save/restore/collect
// pattern from §4.2: it saves the current assumption lists for names,
// clears them, runs action, collects whatever assumptions accumulated
// during action, restores the saved lists, and returns the collected
// lists paired with action's result.
//
// This is a package-level function rather than a method because it
// needs its own type parameter for action's result, and Go methods
// cannot introduce additional type parameters beyond the receiver's.
func WithBindings[A any, R any](s *Set[A], ns []ast.Name, action func() R) (map[ast.Name][]*itype.IType[A], R) {
	saved := make(map[ast.Name][]*itype.IType[A], len(ns))
	for _, n := range ns {
		saved[n] = s.m[n]
		delete(s.m, n)
	}

	result := action()

	collected := make(map[ast.Name][]*itype.IType[A], len(ns))
	for _, n := range ns {
		collected[n] = s.m[n]
		delete(s.m, n)
	}

	for _, n := range ns {
		if lst := saved[n]; lst != nil {
			s.m[n] = lst
		}
	}

	return collected, result
}
