// Package unify is the most-general-unifier procedure (§4.5): occurs
// check, field unification, and the merge policy that feeds the
// union-find store. A Unifier is single-use for one session and shares
// its Store with nothing else (§5).
package unify

import (
	"sort"

	"github.com/tmplang/typecheck/internal/itype"
	"github.com/tmplang/typecheck/internal/typeerr"
	"github.com/tmplang/typecheck/internal/unionfind"
)

// Unifier drives mgu over a single session's union-find store.
type Unifier[A any] struct {
	Store *unionfind.Store[A]
}

// New returns a Unifier over store.
func New[A any](store *unionfind.Store[A]) *Unifier[A] {
	return &Unifier[A]{Store: store}
}

// Unify is mgu(t1, t2) from §4.5: it reads both operands' current class
// representatives, then dispatches on their outer shapes.
func (u *Unifier[A]) Unify(t1, t2 *itype.IType[A]) *typeerr.Error[A] {
	t1 = u.Store.Repr(t1)
	t2 = u.Store.Repr(t2)

	if t1.Shape == itype.ShapeVar {
		return u.unifyVar(t1, t2)
	}
	if t2.Shape == itype.ShapeVar {
		return u.unifyVar(t2, t1)
	}

	switch t1.Shape {
	case itype.ShapeRef:
		if t2.Shape != itype.ShapeRef || t1.TypeName != t2.TypeName {
			return u.mismatch(t1, t2)
		}
		_, err := u.unifyFieldLists(u.Store.FieldsOf(t1), u.Store.FieldsOf(t2))
		return err

	case itype.ShapeLit:
		if t2.Shape != itype.ShapeLit || t1.Lit != t2.Lit {
			return u.mismatch(t1, t2)
		}
		return u.rejectFields(t1, t2)

	case itype.ShapeArrow:
		if t2.Shape != itype.ShapeArrow {
			return u.mismatch(t1, t2)
		}
		if err := u.Unify(t1.Param, t2.Param); err != nil {
			return err
		}
		if err := u.Unify(t1.Result, t2.Result); err != nil {
			return err
		}
		return u.rejectFields(t1, t2)

	case itype.ShapeList:
		if t2.Shape != itype.ShapeList {
			return u.mismatch(t1, t2)
		}
		if err := u.Unify(t1.Elem, t2.Elem); err != nil {
			return err
		}
		return u.rejectFields(t1, t2)

	default:
		return u.mismatch(t1, t2)
	}
}

// unifyVar is §4.5.1. By construction t1=Unify's caller already resolved
// x to its class's current representative via Store.Repr, so x is
// guaranteed to be the canonical (still-unresolved) variable of its own
// class: the multi-step recursive descent the spec describes for
// unifyVar is exactly what Store.Repr's path-compressed find already
// performs, so the only remaining work here is safeUnion.
func (u *Unifier[A]) unifyVar(x, other *itype.IType[A]) *typeerr.Error[A] {
	return u.safeUnion(x, other)
}

// safeUnion is §4.5.1's safeUnion(c, z, u, rows).
func (u *Unifier[A]) safeUnion(z, other *itype.IType[A]) *typeerr.Error[A] {
	if other.Shape == itype.ShapeVar && other.VarID == z.VarID {
		return nil
	}
	if occurs(u.Store, z.VarID, other) {
		return typeerr.InfiniteType[A](z.String(), other.String(), other.Ann)
	}
	merged, err := u.unifyFieldLists(u.Store.FieldsOf(z), u.Store.FieldsOf(other))
	if err != nil {
		return err
	}
	u.Store.Union(merged, z, other)
	return nil
}

// occurs is the occurs check: z must not be reachable from t through
// arrow, list, variable, or field-constraint children, after resolving
// each child against the current store state.
func occurs[A any](s *unionfind.Store[A], z int, t *itype.IType[A]) bool {
	t = s.Repr(t)
	if t.Shape == itype.ShapeVar && t.VarID == z {
		return true
	}
	switch t.Shape {
	case itype.ShapeArrow:
		if occurs(s, z, t.Param) || occurs(s, z, t.Result) {
			return true
		}
	case itype.ShapeList:
		if occurs(s, z, t.Elem) {
			return true
		}
	}
	for _, f := range s.FieldsOf(t) {
		if occurs(s, z, f.Type) {
			return true
		}
	}
	return false
}

// unifyFieldLists is §4.5.2: index both lists by name, mgu the types of
// shared names, and keep names present on only one side.
func (u *Unifier[A]) unifyFieldLists(a, b []itype.FieldConstraint[A]) ([]itype.FieldConstraint[A], *typeerr.Error[A]) {
	if len(a) == 0 && len(b) == 0 {
		return nil, nil
	}
	byName := make(map[string]itype.FieldConstraint[A], len(a)+len(b))
	inA := make(map[string]bool, len(a))
	inB := make(map[string]bool, len(b))
	for _, f := range a {
		inA[f.Name] = true
		byName[f.Name] = f
	}
	for _, f := range b {
		inB[f.Name] = true
		if existing, ok := byName[f.Name]; ok && inA[f.Name] {
			if err := u.Unify(existing.Type, f.Type); err != nil {
				return nil, err
			}
			byName[f.Name] = itype.FieldConstraint[A]{Name: f.Name, Type: u.Store.Repr(existing.Type)}
		} else {
			byName[f.Name] = f
		}
	}
	names := make([]string, 0, len(byName))
	for n := range byName {
		names = append(names, n)
	}
	sort.Strings(names)
	merged := make([]itype.FieldConstraint[A], 0, len(names))
	for _, n := range names {
		merged = append(merged, byName[n])
	}
	return merged, nil
}

func (u *Unifier[A]) rejectFields(t1, t2 *itype.IType[A]) *typeerr.Error[A] {
	f1, f2 := u.Store.FieldsOf(t1), u.Store.FieldsOf(t2)
	if len(f1) == 0 && len(f2) == 0 {
		return nil
	}
	bad := t1
	fields := f1
	if len(fields) == 0 {
		bad, fields = t2, f2
	}
	return invalidFieldsErr(bad, fields)
}

func (u *Unifier[A]) mismatch(t1, t2 *itype.IType[A]) *typeerr.Error[A] {
	return typeerr.Unification[A](t1.String(), t2.String(), t1.Ann)
}

func invalidFieldsErr[A any](t *itype.IType[A], fields []itype.FieldConstraint[A]) *typeerr.Error[A] {
	fs := make([]typeerr.FieldAt[A], len(fields))
	for i, f := range fields {
		fs[i] = typeerr.FieldAt[A]{Field: f.Name, Ann: f.Type.Ann}
	}
	return typeerr.InvalidRecordFields[A](nil, fs, t.Ann)
}
