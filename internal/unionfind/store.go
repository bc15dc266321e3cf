// Package unionfind is the mutable equivalence-class store the solver
// unifies over (§4.4). Classes are keyed by unification-variable id;
// known shapes are never shared by id, so unifying two known shapes
// never touches the store at all — only a variable's class can have a
// representative installed into it.
package unionfind

import "github.com/tmplang/typecheck/internal/itype"

type class[A any] struct {
	parent int // == its own id when this class is a root
	rank   int

	// shape is nil while the class is still an unresolved variable;
	// once set, it is the class's representative descriptor.
	shape  *itype.IType[A]
	fields []itype.FieldConstraint[A]
}

// Store is local to exactly one check session (§5): it must never be
// shared across sessions, and is mutated only by the solver.
type Store[A any] struct {
	classes map[int]*class[A]
}

// New returns an empty store.
func New[A any]() *Store[A] {
	return &Store[A]{classes: make(map[int]*class[A])}
}

// ensureFrom is getPoint (§4.4): "if t is an unresolved variable id x,
// return the map's point for x, creating one (with descriptor t) if
// absent." The initial descriptor for a never-before-seen variable is
// the variable's own field-constraint list — this is how a freshly
// created variable that was built already carrying fields (EPrj's
// record-projection variable, §4.3) gets those fields into the store
// the first time anything resolves it, without the generator ever
// touching the store itself (§5: the store is solver-owned).
func (s *Store[A]) ensureFrom(t *itype.IType[A]) *class[A] {
	c, ok := s.classes[t.VarID]
	if !ok {
		c = &class[A]{parent: t.VarID, fields: t.Fields}
		s.classes[t.VarID] = c
	}
	return c
}

func (s *Store[A]) ensure(id int) *class[A] {
	c, ok := s.classes[id]
	if !ok {
		c = &class[A]{parent: id}
		s.classes[id] = c
	}
	return c
}

// find returns the root id of x's class, path-compressing along the way.
func (s *Store[A]) find(x int) int {
	c := s.ensure(x)
	if c.parent != x {
		root := s.find(c.parent)
		c.parent = root
		return root
	}
	return x
}

// Repr is getPoint+dereference combined (§4.4): it returns the current
// representative descriptor for t. A known shape is its own
// representative. An unresolved variable with no shape installed in its
// class yet comes back as a canonical Var for its class's root id.
func (s *Store[A]) Repr(t *itype.IType[A]) *itype.IType[A] {
	if t.Shape != itype.ShapeVar {
		return t
	}
	s.ensureFrom(t)
	root := s.find(t.VarID)
	if sh := s.classes[root].shape; sh != nil {
		return sh
	}
	if root == t.VarID {
		return t
	}
	return itype.Var(t.Ann, root)
}

// FieldsOf returns the field-constraint list currently attached to t's
// class (or to t itself, if t is a known shape not tracked by the
// store).
func (s *Store[A]) FieldsOf(t *itype.IType[A]) []itype.FieldConstraint[A] {
	if t.Shape != itype.ShapeVar {
		return t.Fields
	}
	s.ensureFrom(t)
	root := s.find(t.VarID)
	return s.classes[root].fields
}

// Union merges the classes of t1 and t2 (§4.4): the new representative's
// shape is t2's current representative (as supplied by the caller), and
// its field list is exactly the `fields` argument — merging field lists
// is the unifier's job (§4.5.2), not the store's.
func (s *Store[A]) Union(fields []itype.FieldConstraint[A], t1, t2 *itype.IType[A]) {
	switch {
	case t1.Shape == itype.ShapeVar && t2.Shape == itype.ShapeVar:
		r1, r2 := s.find(t1.VarID), s.find(t2.VarID)
		c1, c2 := s.classes[r1], s.classes[r2]
		if r1 == r2 {
			c2.fields = fields
			return
		}
		// union by rank, but the representative descriptor (if any)
		// must come from whichever side had one installed, preferring
		// t2's as the spec directs.
		shape := c2.shape
		if shape == nil {
			shape = c1.shape
		}
		if c1.rank < c2.rank {
			c1.parent = r2
			c2.shape, c2.fields = shape, fields
		} else if c1.rank > c2.rank {
			c2.parent = r1
			c1.shape, c1.fields = shape, fields
		} else {
			c2.parent = r1
			c1.rank++
			c1.shape, c1.fields = shape, fields
		}

	case t1.Shape == itype.ShapeVar:
		root := s.find(t1.VarID)
		c := s.classes[root]
		c.shape, c.fields = t2, fields

	case t2.Shape == itype.ShapeVar:
		root := s.find(t2.VarID)
		c := s.classes[root]
		c.shape, c.fields = t1, fields

	default:
		// Both sides are known shapes: neither is backed by a class, so
		// there is nothing in the store to update. Equality of the two
		// shapes is the unifier's concern, already established before
		// Union is ever called on this path.
	}
}
